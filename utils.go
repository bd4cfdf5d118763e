package main

import (
	"html"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

var (
	rtfBreak   = regexp.MustCompile(`\\(par|line)\b ?`)
	rtfTab     = regexp.MustCompile(`\\tab\b ?`)
	rtfControl = regexp.MustCompile(`\\[a-zA-Z]+-?[0-9]* ?`)
	htmlBreak  = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>`)
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
)

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") && (strings.Contains(t, "<html") || strings.Contains(t, "<body") ||
		strings.Contains(t, "<div") || strings.Contains(t, "<span") || strings.Contains(t, "<p"))
}

// extractTextFromRTF keeps paragraph breaks and drops control words and
// group braces.
func extractTextFromRTF(rtf string) string {
	rtf = rtfBreak.ReplaceAllString(rtf, "\n")
	rtf = rtfTab.ReplaceAllString(rtf, "\t")
	rtf = strings.NewReplacer(`\\`, "\x00", `\{`, "\x01", `\}`, "\x02").Replace(rtf)
	rtf = rtfControl.ReplaceAllString(rtf, "")
	rtf = strings.NewReplacer("{", "", "}", "").Replace(rtf)
	return strings.NewReplacer("\x00", `\`, "\x01", "{", "\x02", "}").Replace(rtf)
}

func extractTextFromHTML(s string) string {
	s = htmlBreak.ReplaceAllString(s, "\n")
	return html.UnescapeString(htmlTag.ReplaceAllString(s, ""))
}

// cleanClipboardText turns rich clipboard content into plain text with
// unix line endings and no control characters.
func cleanClipboardText(text string) string {
	switch {
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// singleLine prepares pasted text for a one-line input. Multi-line fields
// keep their breaks as a literal \n escape.
func singleLine(text string, multiline bool) string {
	text = strings.ReplaceAll(text, "\t", " ")
	if multiline {
		return strings.ReplaceAll(text, "\n", `\n`)
	}
	return strings.Join(strings.Fields(text), " ")
}

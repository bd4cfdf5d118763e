package main

import (
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var logLevel = LevelInfo

func parseLogLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// setupLogging reads .env, then RINGDRAW_LOG and RINGDRAW_LOG_LEVEL. The
// terminal belongs to the UI, so without RINGDRAW_LOG logs are discarded.
func setupLogging() (io.Closer, error) {
	_ = godotenv.Load()
	logLevel = parseLogLevel(os.Getenv("RINGDRAW_LOG_LEVEL"))

	path := os.Getenv("RINGDRAW_LOG")
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "ringdraw")
	if err != nil {
		return nil, err
	}
	return f, nil
}

func Debugf(format string, v ...interface{}) {
	if logLevel <= LevelDebug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if logLevel <= LevelInfo {
		log.Printf("[INFO] "+format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if logLevel <= LevelWarn {
		log.Printf("[WARN] "+format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	log.Printf("[ERROR] "+format, v...)
}

package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportPNG(t *testing.T) {
	e := NewEditor(DefaultConfig())
	e.AddShape(ShapeDoubleCurved)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := ExportPNG(path, e.Document(), e.Config(), 300); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Export is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Errorf("Expected 300x300, got %dx%d", b.Dx(), b.Dy())
	}

	// Sample the first ring's band away from its centred label.
	p := PolarToCartesian(diagramCenter(), 140, 8)
	r, g, b, _ := img.At(int(p.X*0.3), int(p.Y*0.3)).RGBA()
	if r>>8 != 0xe2 || g>>8 != 0xe8 || b>>8 != 0xf0 {
		t.Errorf("Expected arc fill #e2e8f0 inside the band, got %02x%02x%02x", r>>8, g>>8, b>>8)
	}
}

func TestExportRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := Document{SectorCount: 4, ChannelTexts: map[int]string{}}
	if err := ExportPNG(filepath.Join(dir, "a.png"), empty, DefaultConfig(), 100); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Expected ErrNothingToExport, got %v", err)
	}
	if err := ExportSVG(filepath.Join(dir, "a.svg"), empty, DefaultConfig()); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Expected ErrNothingToExport, got %v", err)
	}
	if err := ExportPNG(filepath.Join(dir, "b.png"), NewDocument(), DefaultConfig(), 0); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("Expected ErrInvalidNumber for size 0, got %v", err)
	}
}

func TestExportSVG(t *testing.T) {
	e := NewEditor(DefaultConfig())
	e.SetChannelText(0, "A & B")
	e.AddShape(ShapeDoubleCurved)
	e.ClearSelection()

	path := filepath.Join(t.TempDir(), "out.svg")
	if err := ExportSVG(path, e.Document(), e.Config()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"<svg",
		`id="p-0-0"`,
		`id="ol-3"`,
		"Option 1",
		"Label D",
		"A &amp; B",
		`marker-start="url(#arrowhead-shape-1)"`,
		`orient="auto-start-reverse"`,
		"translate(500 500) rotate(0) translate(-50 -15)",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(out, "stroke-dasharray:4 4") {
		t.Error("Export should not include selection decorations")
	}
}

func TestRenderSVGSelection(t *testing.T) {
	e := NewEditor(DefaultConfig())
	id, _ := e.AddShape(ShapeSingle)
	out := RenderSVGString(e.Document(), e.Config(), e.Selection())
	if !strings.Contains(out, "stroke-dasharray:4 4") || !strings.Contains(out, rotateHandleColor) {
		t.Errorf("Selected %s should show outline and handles", id)
	}

	e.SelectArc(0, 1)
	out = RenderSVGString(e.Document(), e.Config(), e.Selection())
	if !strings.Contains(out, "stroke:"+selectionColor+";stroke-width:66") {
		t.Error("Selected arc should get a wider underlay")
	}
}

func TestRenderSVGLowerHalfUsesReversedPath(t *testing.T) {
	l := NewLayout(4, 1, DefaultConfig())
	out := RenderSVGString(NewDocument(), DefaultConfig(), Selection{})
	// Sector 1 spans 90..180 and sector 2 spans 180..270; both face down.
	for _, k := range []int{1, 2} {
		if !strings.Contains(out, l.Cell(0, k).Path.D) || !l.Cell(0, k).Path.Reversed {
			t.Errorf("Sector %d should use its reversed text path", k)
		}
	}
}

func TestRenderSVGSkipsChannelsWithoutRings(t *testing.T) {
	e := NewEditor(DefaultConfig())
	e.SetChannelText(1, "Orphan")
	if err := e.RemoveRing(e.Document().Rings[0].ID); err != nil {
		t.Fatal(err)
	}
	if out := RenderSVGString(e.Document(), e.Config(), Selection{}); strings.Contains(out, "Orphan") {
		t.Error("Channel labels need at least one ring")
	}
}

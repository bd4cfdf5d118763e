package main

import (
	"strings"
	"testing"
)

func TestViewportTransform(t *testing.T) {
	v := Viewport{Cols: 100, Rows: 50}
	if v.Pixels() != 100 || !approx(v.Scale(), 10) {
		t.Fatalf("Expected 100 px at scale 10, got %d at %v", v.Pixels(), v.Scale())
	}
	p, ok := v.ScreenToDiagram(0, 0)
	if !ok || !approx(p.X, 5) || !approx(p.Y, 10) {
		t.Errorf("Expected (5,10), got %v (%v)", p, ok)
	}
	p, _ = v.ScreenToDiagram(49, 24)
	if !approx(p.X, 495) || !approx(p.Y, 490) {
		t.Errorf("Expected (495,490), got %v", p)
	}

	// Wide terminals are limited by height.
	w := Viewport{Left: 2, Top: 1, Cols: 300, Rows: 40}
	if w.Pixels() != 80 {
		t.Errorf("Expected 80 px, got %d", w.Pixels())
	}
	p, _ = w.ScreenToDiagram(2, 1)
	if !approx(p.X, 0.5*12.5) || !approx(p.Y, 12.5) {
		t.Errorf("Expected origin offset applied, got %v", p)
	}
}

func TestViewportUnmounted(t *testing.T) {
	var v Viewport
	if _, ok := v.ScreenToDiagram(10, 10); ok {
		t.Error("Unsized viewport should refuse to map")
	}
	if v.Contains(0, 0) || v.Render(NewDocument(), DefaultConfig(), Selection{}) != "" {
		t.Error("Unsized viewport should be empty")
	}
}

func TestViewportContains(t *testing.T) {
	v := Viewport{Cols: 100, Rows: 30}
	if !v.Contains(59, 29) {
		t.Error("Expected last preview cell inside")
	}
	if v.Contains(60, 0) || v.Contains(0, 30) || v.Contains(-1, 0) {
		t.Error("Cells past the square image should be outside")
	}
}

func TestViewportRender(t *testing.T) {
	v := Viewport{Cols: 40, Rows: 20}
	out := v.Render(NewDocument(), DefaultConfig(), Selection{})
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Errorf("Expected 20 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, "▀"); n != 40 {
			t.Errorf("line %d: expected 40 half blocks, got %d", i, n)
		}
	}
}

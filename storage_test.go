package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	e := NewEditor(DefaultConfig())
	e.AddRing()
	e.SetSectorCount(5)
	e.SetChannelText(2, "Flow")
	e.SetCenterText("Hub\nLine")
	id, _ := e.AddShape(ShapeDoubleCurved)
	curve, rot := -12.5, 30.0
	e.UpdateShape(id, ShapePatch{CurveAmount: &curve, Rotation: &rot})
	gap := 25.0
	e.UpdateConfig(ConfigPatch{GapSize: &gap})

	path := filepath.Join(t.TempDir(), "diagram.json")
	if err := SaveDocument(path, e.Document(), e.Config()); err != nil {
		t.Fatal(err)
	}
	doc, cfg, err := LoadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(doc, e.Document()) {
		t.Errorf("Document changed across save/load:\n got %+v\nwant %+v", doc, e.Document())
	}
	if cfg != e.Config() {
		t.Errorf("Expected config %+v, got %+v", e.Config(), cfg)
	}
}

func TestLoadRepairsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	data := `{
  "document": {
    "centerText": "x",
    "sectorCount": 3,
    "rings": [{"id": "ring-7", "cells": [{"text": "a", "fillColor": "#ffffff", "textColor": "#000000"}]}, {"cells": []}],
    "outerLabels": ["A"],
    "channelTexts": {"1": "keep", "5": "drop"},
    "shapes": [{"id": "shape-4", "kind": "double"}, {"id": "shape-5", "kind": "star"}]
  }
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	doc, cfg, err := LoadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("Loaded document still invalid: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Missing config should fall back to defaults, got %+v", cfg)
	}
	if doc.Rings[0].Cells[0].Text != "a" || doc.Rings[0].Cells[2] != defaultArcCell() {
		t.Errorf("Unexpected cells: %+v", doc.Rings[0].Cells)
	}
	if doc.Rings[1].ID != "ring-8" {
		t.Errorf("Expected missing ring id to become ring-8, got %q", doc.Rings[1].ID)
	}
	if doc.ChannelText(1) != "keep" || doc.ChannelText(5) != "" {
		t.Errorf("Unexpected channel texts: %v", doc.ChannelTexts)
	}
	if len(doc.Shapes) != 1 || doc.Shapes[0].ID != "shape-4" {
		t.Errorf("Expected only shape-4 to survive, got %+v", doc.Shapes)
	}
	if doc.NextShapeID != 5 {
		t.Errorf("Expected next shape id 5, got %d", doc.NextShapeID)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte(`{"document": {"sectorCount": 4}, "config": {"gapSize": -3}}`), 0644)
	if _, _, err := LoadDocument(path); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("Expected ErrInvalidNumber, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := LoadDocument(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestNextID(t *testing.T) {
	if n := nextID("ring-", []string{"ring-2", "ring-10", "other-50", "ring-x"}); n != 11 {
		t.Errorf("Expected 11, got %d", n)
	}
	if n := nextID("shape-", nil); n != 1 {
		t.Errorf("Expected 1, got %d", n)
	}
}

func TestLoadSanitizesColorsAndSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostile.json")
	data := `{
  "document": {
    "sectorCount": 1,
    "rings": [{"id": "ring-1", "cells": [{"text": "a", "fillColor": "red;stroke:url(x)", "textColor": "ABC"}]}],
    "shapes": [{"id": "shape-1", "kind": "single", "color": "\"/><script>", "size": {"width": 0, "height": -5}}]
  }
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	doc, _, err := LoadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	cell := doc.Rings[0].Cells[0]
	if cell.FillColor != defaultArcFill || cell.TextColor != "#aabbcc" {
		t.Errorf("Unexpected cell colours: %+v", cell)
	}
	s := doc.Shapes[0]
	if s.Color != defaultShapeColor {
		t.Errorf("Expected default shape colour, got %q", s.Color)
	}
	if s.Size.Width != minShapeWidth || s.Size.Height != minShapeHeight {
		t.Errorf("Expected minimum size, got %+v", s.Size)
	}
}

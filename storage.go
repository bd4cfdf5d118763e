package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// diagramFile is the on-disk layout: the document and config as plain records.
type diagramFile struct {
	Document Document      `json:"document"`
	Config   DiagramConfig `json:"config"`
}

func SaveDocument(filename string, doc Document, cfg DiagramConfig) error {
	data, err := json.MarshalIndent(diagramFile{Document: doc, Config: cfg}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		return err
	}
	Infof("saved %s (%d rings, %d shapes)", filename, len(doc.Rings), len(doc.Shapes))
	return nil
}

// LoadDocument reads a saved diagram and repairs anything that would break
// the per-sector invariants instead of rejecting the file.
func LoadDocument(filename string) (Document, DiagramConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Document{}, DiagramConfig{}, err
	}
	f := diagramFile{Config: DefaultConfig()}
	if err := json.Unmarshal(data, &f); err != nil {
		return Document{}, DiagramConfig{}, fmt.Errorf("decode %s: %w", filename, err)
	}
	if _, err := (ConfigPatch{
		GapSize:        &f.Config.GapSize,
		LevelThickness: &f.Config.LevelThickness,
		CenterRadius:   &f.Config.CenterRadius,
		ArcPadding:     &f.Config.ArcPadding,
	}).apply(DefaultConfig()); err != nil {
		return Document{}, DiagramConfig{}, fmt.Errorf("%s: %w", filename, err)
	}

	doc := f.Document
	if doc.ChannelTexts == nil {
		doc.ChannelTexts = map[int]string{}
	}
	ringIDs := make([]string, 0, len(doc.Rings))
	for _, r := range doc.Rings {
		ringIDs = append(ringIDs, r.ID)
	}
	if n := nextID("ring-", ringIDs); doc.NextRingID < n {
		doc.NextRingID = n
	}
	for i := range doc.Rings {
		if doc.Rings[i].ID == "" {
			doc.Rings[i].ID = doc.newRingID()
		}
		for j, c := range doc.Rings[i].Cells {
			c.FillColor = loadedColor(c.FillColor, defaultArcFill)
			c.TextColor = loadedColor(c.TextColor, defaultArcTextColor)
			doc.Rings[i].Cells[j] = c
		}
	}
	shapes := doc.Shapes[:0]
	for _, s := range doc.Shapes {
		if _, err := ParseShapeKind(string(s.Kind)); err != nil {
			Warnf("dropping shape %s from %s: %v", s.ID, filename, err)
			continue
		}
		s.Color = loadedColor(s.Color, defaultShapeColor)
		if !isFinite(s.Size.Width) || s.Size.Width < minShapeWidth {
			s.Size.Width = minShapeWidth
		}
		if !isFinite(s.Size.Height) || s.Size.Height < minShapeHeight {
			s.Size.Height = minShapeHeight
		}
		shapes = append(shapes, s)
	}
	doc.Shapes = shapes
	shapeIDs := doc.shapeIDs()
	if n := nextID("shape-", shapeIDs); doc.NextShapeID < n {
		doc.NextShapeID = n
	}
	for i := range doc.Shapes {
		if doc.Shapes[i].ID == "" {
			doc.Shapes[i].ID = doc.newShapeID()
		}
	}
	doc.resizeSectors(clampSectors(doc.SectorCount))
	return doc, f.Config, nil
}

// loadedColor falls back to def for anything that is not a hex colour.
func loadedColor(s, def string) string {
	c, err := normalizeColor(s)
	if err != nil {
		return def
	}
	return c
}

func (d Document) shapeIDs() []string {
	ids := make([]string, len(d.Shapes))
	for i, s := range d.Shapes {
		ids[i] = s.ID
	}
	return ids
}

// nextID returns one past the largest numeric suffix among ids with prefix.
func nextID(prefix string, ids []string) int {
	next := 1
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil || !strings.HasPrefix(id, prefix) {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return next
}

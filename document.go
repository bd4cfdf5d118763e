package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	ErrNoRing        = errors.New("ring not found")
	ErrNoShape       = errors.New("shape not found")
	ErrCellRange     = errors.New("arc cell out of range")
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidColor  = errors.New("invalid colour")
)

type ArcCell struct {
	Text      string `json:"text"`
	FillColor string `json:"fillColor"`
	TextColor string `json:"textColor"`
}

func defaultArcCell() ArcCell {
	return ArcCell{Text: defaultArcText, FillColor: defaultArcFill, TextColor: defaultArcTextColor}
}

// Ring keeps one cell per sector. ID is stable across reordering.
type Ring struct {
	ID    string    `json:"id"`
	Cells []ArcCell `json:"cells"`
}

type Document struct {
	CenterText   string         `json:"centerText"`
	SectorCount  int            `json:"sectorCount"`
	Rings        []Ring         `json:"rings"`
	OuterLabels  []string       `json:"outerLabels"`
	ChannelTexts map[int]string `json:"channelTexts"`
	Shapes       []Shape        `json:"shapes"`
	NextRingID   int            `json:"nextRingId"`
	NextShapeID  int            `json:"nextShapeId"`
}

// NewDocument is the starting diagram: one ring of four cells.
func NewDocument() Document {
	d := Document{
		CenterText:   "Center\nTopic",
		SectorCount:  4,
		OuterLabels:  []string{"Label A", "Label B", "Label C", "Label D"},
		ChannelTexts: map[int]string{},
		NextRingID:   1,
		NextShapeID:  1,
	}
	cells := make([]ArcCell, 4)
	for i := range cells {
		cells[i] = ArcCell{Text: fmt.Sprintf("Option %d", i+1), FillColor: defaultArcFill, TextColor: "#1e293b"}
	}
	d.Rings = []Ring{{ID: d.newRingID(), Cells: cells}}
	return d
}

func (d *Document) newRingID() string {
	id := fmt.Sprintf("ring-%d", d.NextRingID)
	d.NextRingID++
	return id
}

func (d *Document) newShapeID() string {
	id := fmt.Sprintf("shape-%d", d.NextShapeID)
	d.NextShapeID++
	return id
}

func (d Document) Clone() Document {
	c := d
	c.Rings = make([]Ring, len(d.Rings))
	for i, r := range d.Rings {
		c.Rings[i] = Ring{ID: r.ID, Cells: append([]ArcCell(nil), r.Cells...)}
	}
	c.OuterLabels = append([]string(nil), d.OuterLabels...)
	c.ChannelTexts = make(map[int]string, len(d.ChannelTexts))
	for k, v := range d.ChannelTexts {
		c.ChannelTexts[k] = v
	}
	c.Shapes = make([]Shape, len(d.Shapes))
	for i, s := range d.Shapes {
		c.Shapes[i] = s.clone()
	}
	return c
}

func (d Document) ringIndex(id string) int {
	for i, r := range d.Rings {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (d Document) shapeIndex(id string) int {
	for i, s := range d.Shapes {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Shape returns a copy of the shape with id.
func (d Document) Shape(id string) (Shape, bool) {
	if i := d.shapeIndex(id); i >= 0 {
		return d.Shapes[i].clone(), true
	}
	return Shape{}, false
}

// ChannelText returns "" for gaps without a label.
func (d Document) ChannelText(sector int) string {
	return d.ChannelTexts[sector]
}

// Validate checks the per-sector length invariants.
func (d Document) Validate() error {
	if d.SectorCount < minSectors || d.SectorCount > maxSectors {
		return fmt.Errorf("sector count %d outside [%d,%d]", d.SectorCount, minSectors, maxSectors)
	}
	for _, r := range d.Rings {
		if len(r.Cells) != d.SectorCount {
			return fmt.Errorf("ring %s has %d cells, want %d", r.ID, len(r.Cells), d.SectorCount)
		}
	}
	if len(d.OuterLabels) != d.SectorCount {
		return fmt.Errorf("%d outer labels, want %d", len(d.OuterLabels), d.SectorCount)
	}
	return nil
}

// resizeSectors grows or truncates every per-sector list together.
func (d *Document) resizeSectors(n int) {
	for i := range d.Rings {
		cells := make([]ArcCell, n)
		for k := range cells {
			if k < len(d.Rings[i].Cells) {
				cells[k] = d.Rings[i].Cells[k]
			} else {
				cells[k] = defaultArcCell()
			}
		}
		d.Rings[i].Cells = cells
	}
	labels := d.OuterLabels
	for len(labels) < n {
		labels = append(labels, fmt.Sprintf("Label %d", len(labels)+1))
	}
	d.OuterLabels = append([]string(nil), labels[:n]...)
	for k := range d.ChannelTexts {
		if k >= n || k < 0 {
			delete(d.ChannelTexts, k)
		}
	}
	d.SectorCount = n
}

func clampSectors(n int) int {
	if n < minSectors {
		return minSectors
	}
	if n > maxSectors {
		return maxSectors
	}
	return n
}

type ArcField int

const (
	ArcText ArcField = iota
	ArcFill
	ArcTextColor
)

// ArcUpdate changes exactly one field of a cell.
type ArcUpdate struct {
	Field ArcField
	Value string
}

func SetArcText(v string) ArcUpdate      { return ArcUpdate{Field: ArcText, Value: v} }
func SetArcFill(v string) ArcUpdate      { return ArcUpdate{Field: ArcFill, Value: v} }
func SetArcTextColor(v string) ArcUpdate { return ArcUpdate{Field: ArcTextColor, Value: v} }

func (u ArcUpdate) apply(c ArcCell) (ArcCell, error) {
	switch u.Field {
	case ArcText:
		c.Text = u.Value
	case ArcFill:
		hex, err := normalizeColor(u.Value)
		if err != nil {
			return c, err
		}
		c.FillColor = hex
	case ArcTextColor:
		hex, err := normalizeColor(u.Value)
		if err != nil {
			return c, err
		}
		c.TextColor = hex
	default:
		return c, fmt.Errorf("unknown arc field %d", u.Field)
	}
	return c, nil
}

// ConfigPatch sets only the non-nil fields.
type ConfigPatch struct {
	GapSize        *float64
	LevelThickness *float64
	CenterRadius   *float64
	ArcPadding     *float64
}

func (p ConfigPatch) apply(c DiagramConfig) (DiagramConfig, error) {
	fields := []struct {
		name string
		v    *float64
		dst  *float64
	}{
		{"gap size", p.GapSize, &c.GapSize},
		{"level thickness", p.LevelThickness, &c.LevelThickness},
		{"center radius", p.CenterRadius, &c.CenterRadius},
		{"arc padding", p.ArcPadding, &c.ArcPadding},
	}
	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if !isFinite(*f.v) || *f.v < 0 {
			return c, fmt.Errorf("%s %v: %w", f.name, *f.v, ErrInvalidNumber)
		}
		*f.dst = *f.v
	}
	return c, nil
}

// ShapePatch sets only the non-nil fields. ResetCurve drops a curve
// override so the height-derived default applies again.
type ShapePatch struct {
	Kind        *ShapeKind
	Position    *Point
	Rotation    *float64
	Size        *Size
	Color       *string
	CurveAmount *float64
	ResetCurve  bool
}

func (p ShapePatch) apply(s Shape) (Shape, error) {
	if p.Kind != nil {
		if _, err := ParseShapeKind(string(*p.Kind)); err != nil {
			return s, err
		}
		s.Kind = *p.Kind
	}
	if p.Position != nil {
		if !isFinite(p.Position.X) || !isFinite(p.Position.Y) {
			return s, fmt.Errorf("position: %w", ErrInvalidNumber)
		}
		s.Position = *p.Position
	}
	if p.Rotation != nil {
		if !isFinite(*p.Rotation) {
			return s, fmt.Errorf("rotation: %w", ErrInvalidNumber)
		}
		s.Rotation = *p.Rotation
	}
	if p.Size != nil {
		if !isFinite(p.Size.Width) || !isFinite(p.Size.Height) || p.Size.Width <= 0 || p.Size.Height <= 0 {
			return s, fmt.Errorf("size: %w", ErrInvalidNumber)
		}
		s.Size = *p.Size
	}
	if p.Color != nil {
		hex, err := normalizeColor(*p.Color)
		if err != nil {
			return s, err
		}
		s.Color = hex
	}
	if p.ResetCurve {
		s.CurveAmount = nil
	}
	if p.CurveAmount != nil {
		if !isFinite(*p.CurveAmount) {
			return s, fmt.Errorf("curve amount: %w", ErrInvalidNumber)
		}
		v := *p.CurveAmount
		s.CurveAmount = &v
	}
	return s, nil
}

type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectArc
	SelectShape
)

// Selection is one slot: an arc cell or a shape, never both.
type Selection struct {
	Kind    SelectionKind
	Ring    int
	Sector  int
	ShapeID string
}

func (s Selection) IsArc(ring, sector int) bool {
	return s.Kind == SelectArc && s.Ring == ring && s.Sector == sector
}

func (s Selection) IsShape(id string) bool {
	return s.Kind == SelectShape && s.ShapeID == id
}

// Editor owns the document, config and selection. It is the only writer;
// every exported mutation is applied whole or not at all.
type Editor struct {
	doc       Document
	config    DiagramConfig
	selection Selection
	history   History
}

func NewEditor(cfg DiagramConfig) *Editor {
	return &Editor{doc: NewDocument(), config: cfg}
}

// Document returns a deep copy; callers cannot mutate the editor through it.
func (e *Editor) Document() Document {
	return e.doc.Clone()
}

func (e *Editor) Config() DiagramConfig {
	return e.config
}

func (e *Editor) Layout() Layout {
	return NewLayout(e.doc.SectorCount, len(e.doc.Rings), e.config)
}

// Selection drops references to rings, cells or shapes that no longer exist.
func (e *Editor) Selection() Selection {
	switch e.selection.Kind {
	case SelectArc:
		s := e.selection
		if s.Ring < 0 || s.Ring >= len(e.doc.Rings) || s.Sector < 0 || s.Sector >= e.doc.SectorCount {
			e.selection = Selection{}
		}
	case SelectShape:
		if e.doc.shapeIndex(e.selection.ShapeID) < 0 {
			e.selection = Selection{}
		}
	}
	return e.selection
}

// SelectedShape resolves a shape selection, if any.
func (e *Editor) SelectedShape() (Shape, bool) {
	sel := e.Selection()
	if sel.Kind != SelectShape {
		return Shape{}, false
	}
	return e.doc.Shape(sel.ShapeID)
}

func (e *Editor) SetCenterText(text string) {
	if text == e.doc.CenterText {
		return
	}
	e.record()
	e.doc.CenterText = text
}

// SetSectorCount clamps n into [1,12] and resizes every ring, the outer
// labels and the channel texts. Cells that survive keep their content.
func (e *Editor) SetSectorCount(n int) {
	n = clampSectors(n)
	if n == e.doc.SectorCount {
		return
	}
	e.record()
	e.doc.resizeSectors(n)
	Debugf("sector count set to %d", n)
}

// AddRing appends a ring of default cells and returns its id.
func (e *Editor) AddRing() string {
	e.record()
	cells := make([]ArcCell, e.doc.SectorCount)
	for i := range cells {
		cells[i] = defaultArcCell()
	}
	id := e.doc.newRingID()
	e.doc.Rings = append(e.doc.Rings, Ring{ID: id, Cells: cells})
	return id
}

// RemoveRing deletes the ring with id and clears the selection.
func (e *Editor) RemoveRing(id string) error {
	i := e.doc.ringIndex(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrNoRing)
	}
	e.record()
	e.doc.Rings = append(e.doc.Rings[:i:i], e.doc.Rings[i+1:]...)
	e.selection = Selection{}
	return nil
}

func (e *Editor) UpdateArcCell(ring, sector int, u ArcUpdate) error {
	if ring < 0 || ring >= len(e.doc.Rings) || sector < 0 || sector >= e.doc.SectorCount {
		return fmt.Errorf("cell (%d,%d): %w", ring, sector, ErrCellRange)
	}
	cell, err := u.apply(e.doc.Rings[ring].Cells[sector])
	if err != nil {
		return err
	}
	if cell == e.doc.Rings[ring].Cells[sector] {
		return nil
	}
	e.record()
	e.doc.Rings[ring].Cells[sector] = cell
	return nil
}

func (e *Editor) SetOuterLabel(sector int, text string) error {
	if sector < 0 || sector >= e.doc.SectorCount {
		return fmt.Errorf("outer label %d: %w", sector, ErrCellRange)
	}
	if e.doc.OuterLabels[sector] == text {
		return nil
	}
	e.record()
	e.doc.OuterLabels[sector] = text
	return nil
}

// SetChannelText labels the gap after sector. An empty text removes it.
func (e *Editor) SetChannelText(sector int, text string) error {
	if sector < 0 || sector >= e.doc.SectorCount {
		return fmt.Errorf("channel %d: %w", sector, ErrCellRange)
	}
	if e.doc.ChannelTexts[sector] == text {
		return nil
	}
	e.record()
	if text == "" {
		delete(e.doc.ChannelTexts, sector)
	} else {
		e.doc.ChannelTexts[sector] = text
	}
	return nil
}

func (e *Editor) UpdateConfig(p ConfigPatch) error {
	cfg, err := p.apply(e.config)
	if err != nil {
		return err
	}
	if cfg == e.config {
		return nil
	}
	e.record()
	e.config = cfg
	return nil
}

// AddShape appends a shape with default geometry at the canvas centre and
// selects it.
func (e *Editor) AddShape(kind ShapeKind) (string, error) {
	if _, err := ParseShapeKind(string(kind)); err != nil {
		return "", err
	}
	e.record()
	s := Shape{
		ID:       e.doc.newShapeID(),
		Kind:     kind,
		Position: diagramCenter(),
		Size:     Size{Width: 100, Height: 30},
		Color:    defaultShapeColor,
	}
	e.doc.Shapes = append(e.doc.Shapes, s)
	e.selection = Selection{Kind: SelectShape, ShapeID: s.ID}
	Debugf("added %s shape %s", kind, s.ID)
	return s.ID, nil
}

func (e *Editor) UpdateShape(id string, p ShapePatch) error {
	i := e.doc.shapeIndex(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrNoShape)
	}
	s, err := p.apply(e.doc.Shapes[i].clone())
	if err != nil {
		return err
	}
	e.record()
	e.doc.Shapes[i] = s
	return nil
}

// setShape replaces a shape without touching history; gestures record once
// when they finish.
func (e *Editor) setShape(s Shape) bool {
	i := e.doc.shapeIndex(s.ID)
	if i < 0 {
		return false
	}
	e.doc.Shapes[i] = s.clone()
	return true
}

func (e *Editor) RemoveShape(id string) error {
	i := e.doc.shapeIndex(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrNoShape)
	}
	e.record()
	e.doc.Shapes = append(e.doc.Shapes[:i:i], e.doc.Shapes[i+1:]...)
	if e.selection.IsShape(id) {
		e.selection = Selection{}
	}
	return nil
}

// BringShapeToFront moves the shape to the end of the draw order.
func (e *Editor) BringShapeToFront(id string) error {
	i := e.doc.shapeIndex(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrNoShape)
	}
	if i == len(e.doc.Shapes)-1 {
		return nil
	}
	e.record()
	s := e.doc.Shapes[i]
	e.doc.Shapes = append(e.doc.Shapes[:i:i], e.doc.Shapes[i+1:]...)
	e.doc.Shapes = append(e.doc.Shapes, s)
	return nil
}

func (e *Editor) SelectArc(ring, sector int) error {
	if ring < 0 || ring >= len(e.doc.Rings) || sector < 0 || sector >= e.doc.SectorCount {
		return fmt.Errorf("cell (%d,%d): %w", ring, sector, ErrCellRange)
	}
	e.selection = Selection{Kind: SelectArc, Ring: ring, Sector: sector}
	return nil
}

func (e *Editor) SelectShape(id string) error {
	if e.doc.shapeIndex(id) < 0 {
		return fmt.Errorf("%s: %w", id, ErrNoShape)
	}
	e.selection = Selection{Kind: SelectShape, ShapeID: id}
	return nil
}

func (e *Editor) ClearSelection() {
	e.selection = Selection{}
}

// CellGeometry panics for a ring index outside the document.
func (e *Editor) CellGeometry(ring, sector int) CellGeometry {
	return e.Layout().Cell(ring, sector)
}

func (e *Editor) ChannelGeometry(sector int) ChannelGeometry {
	return e.Layout().Channel(sector)
}

// ShapeIDs lists shapes in draw order.
func (e *Editor) ShapeIDs() []string {
	return e.doc.shapeIDs()
}

// ChannelSectors returns the labelled gaps in ascending order.
func (d Document) ChannelSectors() []int {
	keys := make([]int, 0, len(d.ChannelTexts))
	for k := range d.ChannelTexts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// ParseSectorCount rejects anything that is not an integer; range clamping
// happens in SetSectorCount.
func ParseSectorCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("sector count %q: %w", s, ErrInvalidNumber)
	}
	return n, nil
}

func ParseConfigValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !isFinite(v) || v < 0 {
		return 0, fmt.Errorf("value %q: %w", s, ErrInvalidNumber)
	}
	return v, nil
}

// parseNumber accepts any finite float, negative included.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !isFinite(v) {
		return 0, fmt.Errorf("value %q: %w", s, ErrInvalidNumber)
	}
	return v, nil
}

// normalizeColor accepts #rgb or #rrggbb and returns lower-case #rrggbb.
func normalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	return c.Clamped().Hex(), nil
}

// displayRotation folds an unbounded rotation into [0,360) for the panel.
func displayRotation(deg float64) float64 {
	return math.Round(NormalizeAngle(deg))
}

package main

import (
	"fmt"
	"math"
	"strings"
)

type ShapeKind string

const (
	ShapeSingle       ShapeKind = "single"
	ShapeDouble       ShapeKind = "double"
	ShapeSingleCurved ShapeKind = "single-curved"
	ShapeDoubleCurved ShapeKind = "double-curved"
)

var shapeKinds = []ShapeKind{ShapeSingle, ShapeDouble, ShapeSingleCurved, ShapeDoubleCurved}

func ParseShapeKind(s string) (ShapeKind, error) {
	for _, k := range shapeKinds {
		if string(k) == strings.ToLower(strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown shape kind %q", s)
}

func (k ShapeKind) Curved() bool {
	return k == ShapeSingleCurved || k == ShapeDoubleCurved
}

func (k ShapeKind) Double() bool {
	return k == ShapeDouble || k == ShapeDoubleCurved
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Shape is a free-floating arrow. Position is the centre of its local box and
// is unrelated to the ring/sector grid.
type Shape struct {
	ID          string    `json:"id"`
	Kind        ShapeKind `json:"kind"`
	Position    Point     `json:"position"`
	Rotation    float64   `json:"rotation"`
	Size        Size      `json:"size"`
	Color       string    `json:"color"`
	CurveAmount *float64  `json:"curveAmount,omitempty"`
}

// EffectiveCurve is the control point displacement; unset means -height/2.
func (s Shape) EffectiveCurve() float64 {
	if s.CurveAmount != nil {
		return *s.CurveAmount
	}
	return -s.Size.Height * 0.5
}

func (s Shape) clone() Shape {
	c := s
	if s.CurveAmount != nil {
		v := *s.CurveAmount
		c.CurveAmount = &v
	}
	return c
}

type PathOp int

const (
	PathMove PathOp = iota
	PathLine
	PathQuad
	PathClose
)

// PathCmd is one path segment. Ctrl is only used by PathQuad.
type PathCmd struct {
	Op   PathOp
	To   Point
	Ctrl Point
}

// ArrowPath is an arrow glyph in its local box [0,w]x[0,h].
type ArrowPath struct {
	Cmds        []PathCmd
	Filled      bool
	MarkerStart bool
	MarkerEnd   bool
}

// MarkerPlacement is an arrowhead marker anchored on a path end, pointing
// along Angle (screen degrees).
type MarkerPlacement struct {
	At    Point
	Angle float64
}

func (a ArrowPath) String() string {
	parts := make([]string, 0, len(a.Cmds))
	for _, c := range a.Cmds {
		switch c.Op {
		case PathMove:
			parts = append(parts, "M "+fmtNum(c.To.X)+" "+fmtNum(c.To.Y))
		case PathLine:
			parts = append(parts, "L "+fmtNum(c.To.X)+" "+fmtNum(c.To.Y))
		case PathQuad:
			parts = append(parts, "Q "+fmtNum(c.Ctrl.X)+" "+fmtNum(c.Ctrl.Y)+" "+fmtNum(c.To.X)+" "+fmtNum(c.To.Y))
		case PathClose:
			parts = append(parts, "Z")
		}
	}
	return strings.Join(parts, " ")
}

// Markers returns the arrowhead placements for curved arrows. The start
// marker points away from the curve, like orient=auto-start-reverse.
func (a ArrowPath) Markers() []MarkerPlacement {
	var quad *PathCmd
	var from Point
	for i := range a.Cmds {
		if a.Cmds[i].Op == PathQuad {
			quad = &a.Cmds[i]
			if i > 0 {
				from = a.Cmds[i-1].To
			}
			break
		}
	}
	if quad == nil {
		return nil
	}
	var out []MarkerPlacement
	if a.MarkerStart {
		out = append(out, MarkerPlacement{At: from, Angle: AngleBetween(quad.Ctrl, from)})
	}
	if a.MarkerEnd {
		out = append(out, MarkerPlacement{At: quad.To, Angle: AngleBetween(quad.Ctrl, quad.To)})
	}
	return out
}

// markerGlyph is "M0,0 L12,6 L0,12 L3,6 Z" with its reference at (10,6).
var markerGlyph = []Point{{0, 0}, {12, 6}, {0, 12}, {3, 6}}

const markerGlyphPath = "M0,0 L12,6 L0,12 L3,6 Z"

// Polygon places the marker glyph in the arrow's local space.
func (m MarkerPlacement) Polygon() []Point {
	ref := Point{X: 10, Y: 6}
	out := make([]Point, len(markerGlyph))
	for i, q := range markerGlyph {
		out[i] = RotatePoint(q.Sub(ref), Point{}, m.Angle).Add(m.At)
	}
	return out
}

// BuildArrowPath draws an arrow in the local box [0,width]x[0,height],
// centred vertically on height/2. Rotation and position are never applied
// here; see ShapeTransform.
func BuildArrowPath(kind ShapeKind, width, height float64, curveAmount *float64) ArrowPath {
	midY := height / 2
	if kind.Curved() {
		curve := -height * 0.5
		if curveAmount != nil {
			curve = *curveAmount
		}
		pad := math.Min(curvePadding, width/4)
		start := Point{X: pad, Y: midY + curve*0.2}
		end := Point{X: width - pad, Y: midY + curve*0.2}
		ctrl := Point{X: width / 2, Y: midY - curve}
		return ArrowPath{
			Cmds: []PathCmd{
				{Op: PathMove, To: start},
				{Op: PathQuad, Ctrl: ctrl, To: end},
			},
			MarkerStart: kind.Double(),
			MarkerEnd:   true,
		}
	}

	headWidth := height * 0.5
	head := math.Min(width*0.15, height*0.5)
	if kind.Double() {
		head = math.Min(head, width/3)
	} else {
		head = math.Min(head, width/2)
	}

	shaftStart := 0.0
	if kind.Double() {
		shaftStart = head
	}
	shaftEnd := width - head
	cmds := []PathCmd{
		{Op: PathMove, To: Point{X: shaftStart, Y: midY}},
		{Op: PathLine, To: Point{X: shaftEnd, Y: midY}},
	}
	cmds = append(cmds, arrowHead(Point{X: width, Y: midY}, shaftEnd, headWidth)...)
	if kind.Double() {
		cmds = append(cmds, arrowHead(Point{X: 0, Y: midY}, head, headWidth)...)
	}
	return ArrowPath{Cmds: cmds, Filled: true}
}

func arrowHead(tip Point, baseX, headWidth float64) []PathCmd {
	return []PathCmd{
		{Op: PathMove, To: Point{X: baseX, Y: tip.Y - headWidth/2}},
		{Op: PathLine, To: tip},
		{Op: PathLine, To: Point{X: baseX, Y: tip.Y + headWidth/2}},
		{Op: PathClose},
	}
}

func ShapeArrowPath(s Shape) ArrowPath {
	return BuildArrowPath(s.Kind, s.Size.Width, s.Size.Height, s.CurveAmount)
}

// ShapePath is the local path string for s; it never depends on rotation
// or position.
func ShapePath(s Shape) string {
	return ShapeArrowPath(s).String()
}

// ShapeTransform places the local box so that Position is its centre.
func ShapeTransform(s Shape) string {
	return fmt.Sprintf("translate(%s %s) rotate(%s) translate(%s %s)",
		fmtNum(s.Position.X), fmtNum(s.Position.Y), fmtNum(s.Rotation),
		fmtNum(-s.Size.Width/2), fmtNum(-s.Size.Height/2))
}

type ShapeHandle int

const (
	HandleNone ShapeHandle = iota
	HandleBody
	HandleResize
	HandleRotate
)

// toLocal maps p into the shape's centre-origin, unrotated frame.
func (s Shape) toLocal(p Point) Point {
	return RotatePoint(p, s.Position, -s.Rotation).Sub(s.Position)
}

func (s Shape) ResizeHandle() Point {
	return RotatePoint(s.Position.Add(Point{X: s.Size.Width / 2}), s.Position, s.Rotation)
}

func (s Shape) RotateHandle() Point {
	return RotatePoint(s.Position.Add(Point{Y: -s.Size.Height/2 - rotateHandleDistance}), s.Position, s.Rotation)
}

// HitTest reports which part of s lies under p. Handles only exist while
// the shape is selected; tolerance widens every target.
func (s Shape) HitTest(p Point, tolerance float64, selected bool) ShapeHandle {
	if selected {
		reach := handleSize/2 + tolerance
		if Distance(p, s.RotateHandle()) <= reach {
			return HandleRotate
		}
		if Distance(p, s.ResizeHandle()) <= reach {
			return HandleResize
		}
	}
	local := s.toLocal(p)
	if math.Abs(local.X) <= s.Size.Width/2+tolerance && math.Abs(local.Y) <= s.Size.Height/2+tolerance {
		return HandleBody
	}
	return HandleNone
}

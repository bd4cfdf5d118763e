package main

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoTransform   = errors.New("coordinate transform unavailable")
	ErrGestureActive = errors.New("gesture already in progress")
)

// CoordinateTransform is supplied by whatever surface draws the diagram.
// ok is false until the surface knows its size.
type CoordinateTransform interface {
	ScreenToDiagram(x, y float64) (p Point, ok bool)
}

// PointerEvent is a pointer position in screen space.
type PointerEvent struct {
	X, Y float64
}

// Controller turns pointer events into editor mutations. At most one
// gesture runs at a time and every move is computed from the snapshot taken
// when the gesture started, so repeated or dropped moves cannot drift.
type Controller struct {
	editor    *Editor
	transform CoordinateTransform

	// Tolerance widens hit targets, in diagram units.
	Tolerance float64

	state      GestureState
	shapeID    string
	start      Point
	snapshot   Shape
	before     editorState
	subscribed bool
}

func NewController(e *Editor, t CoordinateTransform) *Controller {
	return &Controller{editor: e, transform: t}
}

func (c *Controller) SetTransform(t CoordinateTransform) {
	c.transform = t
}

func (c *Controller) State() GestureState {
	return c.state
}

// Tracking reports whether the controller currently listens to the global
// pointer stream. The host forwards moves and releases from anywhere while
// this is true.
func (c *Controller) Tracking() bool {
	return c.subscribed
}

func (c *Controller) toDiagram(ev PointerEvent) (Point, error) {
	if c.transform == nil {
		return Point{}, ErrNoTransform
	}
	p, ok := c.transform.ScreenToDiagram(ev.X, ev.Y)
	if !ok {
		return Point{}, ErrNoTransform
	}
	return p, nil
}

// PointerDown handles a press on the diagram: a shape body or handle starts
// a gesture, an arc cell is selected, empty canvas clears the selection.
func (c *Controller) PointerDown(ev PointerEvent) error {
	if c.state != GestureIdle {
		// The release for the previous gesture never arrived.
		Warnf("pointer down during %s gesture, ending it", c.state)
		c.finish()
	}
	p, err := c.toDiagram(ev)
	if err != nil {
		return err
	}

	sel := c.editor.Selection()
	shapes := c.editor.doc.Shapes
	for i := len(shapes) - 1; i >= 0; i-- {
		s := shapes[i]
		var kind GestureState
		switch s.HitTest(p, c.Tolerance, sel.IsShape(s.ID)) {
		case HandleBody:
			kind = GestureDragging
		case HandleResize:
			kind = GestureResizing
		case HandleRotate:
			kind = GestureRotating
		default:
			continue
		}
		return c.begin(s.ID, kind, p)
	}

	if ring, sector, ok := c.editor.Layout().HitTestArc(p); ok {
		return c.editor.SelectArc(ring, sector)
	}
	c.editor.ClearSelection()
	return nil
}

// BeginGesture starts a gesture on a known shape, e.g. from a handle the
// host has already hit-tested.
func (c *Controller) BeginGesture(id string, kind GestureState, ev PointerEvent) error {
	if c.state != GestureIdle {
		return ErrGestureActive
	}
	if kind == GestureIdle {
		return fmt.Errorf("cannot begin an idle gesture")
	}
	p, err := c.toDiagram(ev)
	if err != nil {
		return err
	}
	return c.begin(id, kind, p)
}

func (c *Controller) begin(id string, kind GestureState, p Point) error {
	s, ok := c.editor.doc.Shape(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNoShape)
	}
	if err := c.editor.SelectShape(id); err != nil {
		return err
	}
	c.state = kind
	c.shapeID = id
	c.start = p
	c.snapshot = s
	c.before = c.editor.snapshot()
	c.subscribed = true
	Debugf("gesture %s started on %s at (%.1f, %.1f)", kind, id, p.X, p.Y)
	return nil
}

// PointerMove updates the active gesture. It is a no-op while idle.
func (c *Controller) PointerMove(ev PointerEvent) error {
	if !c.subscribed {
		return nil
	}
	p, err := c.toDiagram(ev)
	if err != nil {
		return err
	}
	s := c.apply(p)
	if !c.editor.setShape(s) {
		// Deleted mid-gesture; nothing left to manipulate.
		c.reset()
		return fmt.Errorf("%s: %w", c.shapeID, ErrNoShape)
	}
	return nil
}

// apply computes the shape for pointer p from the gesture snapshot.
func (c *Controller) apply(p Point) Shape {
	s := c.snapshot.clone()
	center := c.snapshot.Position
	switch c.state {
	case GestureDragging:
		s.Position = c.snapshot.Position.Add(p.Sub(c.start))
	case GestureResizing:
		d0 := Distance(center, c.start)
		if d0 == 0 {
			return s
		}
		scale := Distance(center, p) / d0
		w := math.Max(minShapeWidth, c.snapshot.Size.Width*scale)
		h := math.Max(minShapeHeight, c.snapshot.Size.Height*scale)
		s.Size = Size{Width: w, Height: h}
		if s.Kind.Curved() && c.snapshot.Size.Height > 0 {
			curve := c.snapshot.EffectiveCurve() * h / c.snapshot.Size.Height
			s.CurveAmount = &curve
		}
	case GestureRotating:
		delta := AngleBetween(center, p) - AngleBetween(center, c.start)
		s.Rotation = c.snapshot.Rotation + delta
	}
	return s
}

// PointerUp ends any gesture wherever the release happens.
func (c *Controller) PointerUp(PointerEvent) {
	c.Finish()
}

// Finish ends the current gesture and keeps its result.
func (c *Controller) Finish() {
	if c.state == GestureIdle {
		return
	}
	c.finish()
}

// Cancel restores the shape to its gesture-start state.
func (c *Controller) Cancel() {
	if c.state == GestureIdle {
		return
	}
	c.editor.setShape(c.snapshot)
	Debugf("gesture %s on %s cancelled", c.state, c.shapeID)
	c.reset()
}

// finish records one undo entry if the gesture changed anything.
func (c *Controller) finish() {
	if cur, ok := c.editor.doc.Shape(c.shapeID); ok && !shapesEqual(cur, c.snapshot) {
		c.editor.history.push(c.before)
	}
	Debugf("gesture %s on %s finished", c.state, c.shapeID)
	c.reset()
}

func (c *Controller) reset() {
	c.state = GestureIdle
	c.shapeID = ""
	c.snapshot = Shape{}
	c.before = editorState{}
	c.subscribed = false
}

func shapesEqual(a, b Shape) bool {
	if a.ID != b.ID || a.Kind != b.Kind || a.Position != b.Position || a.Rotation != b.Rotation ||
		a.Size != b.Size || a.Color != b.Color {
		return false
	}
	if (a.CurveAmount == nil) != (b.CurveAmount == nil) {
		return false
	}
	return a.CurveAmount == nil || *a.CurveAmount == *b.CurveAmount
}

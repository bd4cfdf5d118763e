package main

import (
	"testing"
)

func TestStraightArrowPaths(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		want string
	}{
		{ShapeSingle, "M 0 15 L 85 15 M 85 7.5 L 100 15 L 85 22.5 Z"},
		{ShapeDouble, "M 15 15 L 85 15 M 85 7.5 L 100 15 L 85 22.5 Z M 15 7.5 L 0 15 L 15 22.5 Z"},
	}
	for _, tt := range tests {
		ap := BuildArrowPath(tt.kind, 100, 30, nil)
		if got := ap.String(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.kind, tt.want, got)
		}
		if !ap.Filled {
			t.Errorf("%s: straight heads should be filled", tt.kind)
		}
		if ap.MarkerStart || ap.MarkerEnd || len(ap.Markers()) != 0 {
			t.Errorf("%s: straight arrows should not use markers", tt.kind)
		}
	}
}

func TestCurvedArrowPath(t *testing.T) {
	ap := BuildArrowPath(ShapeSingleCurved, 100, 30, nil)
	if got, want := ap.String(), "M 15 12 Q 50 30 85 12"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if ap.MarkerStart || !ap.MarkerEnd {
		t.Errorf("single-curved: expected end marker only, got start=%v end=%v", ap.MarkerStart, ap.MarkerEnd)
	}

	curve := 10.0
	ap = BuildArrowPath(ShapeDoubleCurved, 100, 30, &curve)
	if got, want := ap.String(), "M 15 17 Q 50 5 85 17"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	markers := ap.Markers()
	if len(markers) != 2 {
		t.Fatalf("Expected 2 markers, got %d", len(markers))
	}
	if markers[0].At != (Point{X: 15, Y: 17}) || markers[1].At != (Point{X: 85, Y: 17}) {
		t.Errorf("Markers should sit on the path ends, got %v and %v", markers[0].At, markers[1].At)
	}
	// Start marker points away from the control point, end marker too.
	if markers[0].Angle < 90 && markers[0].Angle > -90 {
		t.Errorf("Start marker should point left, got %v", markers[0].Angle)
	}
	if markers[1].Angle > 90 || markers[1].Angle < -90 {
		t.Errorf("End marker should point right, got %v", markers[1].Angle)
	}
}

func TestNarrowCurvedArrowPadding(t *testing.T) {
	ap := BuildArrowPath(ShapeSingleCurved, 40, 30, nil)
	if got, want := ap.String(), "M 10 12 Q 20 30 30 12"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestShapePathIgnoresRotation(t *testing.T) {
	s := Shape{ID: "shape-1", Kind: ShapeDoubleCurved, Position: Point{X: 500, Y: 500}, Size: Size{Width: 100, Height: 30}}
	before := ShapePath(s)
	s.Rotation = 45
	s.Position = Point{X: 120, Y: 80}
	if after := ShapePath(s); after != before {
		t.Errorf("Path changed with rotation/position: %q vs %q", before, after)
	}
	if got, want := ShapeTransform(s), "translate(120 80) rotate(45) translate(-50 -15)"; got != want {
		t.Errorf("Expected transform %q, got %q", want, got)
	}
}

func TestEffectiveCurve(t *testing.T) {
	s := Shape{Size: Size{Width: 100, Height: 40}}
	if c := s.EffectiveCurve(); c != -20 {
		t.Errorf("Expected default curve -20, got %v", c)
	}
	v := 7.0
	s.CurveAmount = &v
	if c := s.EffectiveCurve(); c != 7 {
		t.Errorf("Expected override 7, got %v", c)
	}
}

func TestShapeHandles(t *testing.T) {
	s := Shape{Kind: ShapeSingle, Position: Point{X: 500, Y: 500}, Size: Size{Width: 100, Height: 30}}
	if h := s.ResizeHandle(); !approx(h.X, 550) || !approx(h.Y, 500) {
		t.Errorf("Expected resize handle (550,500), got %v", h)
	}
	if h := s.RotateHandle(); !approx(h.X, 500) || !approx(h.Y, 455) {
		t.Errorf("Expected rotate handle (500,455), got %v", h)
	}

	s.Rotation = 90
	if h := s.ResizeHandle(); !approx(h.X, 500) || !approx(h.Y, 550) {
		t.Errorf("Expected rotated resize handle (500,550), got %v", h)
	}
}

func TestShapeHitTest(t *testing.T) {
	s := Shape{Kind: ShapeSingle, Position: Point{X: 500, Y: 500}, Size: Size{Width: 100, Height: 30}}
	if h := s.HitTest(Point{X: 550, Y: 500}, 0, true); h != HandleResize {
		t.Errorf("Expected resize handle, got %v", h)
	}
	if h := s.HitTest(Point{X: 550, Y: 500}, 0, false); h != HandleBody {
		t.Errorf("Handles only exist while selected; expected body, got %v", h)
	}
	if h := s.HitTest(Point{X: 500, Y: 455}, 0, true); h != HandleRotate {
		t.Errorf("Expected rotate handle, got %v", h)
	}
	if h := s.HitTest(Point{X: 500, Y: 455}, 0, false); h != HandleNone {
		t.Errorf("Expected miss, got %v", h)
	}

	s.Rotation = 90
	if h := s.HitTest(Point{X: 500, Y: 540}, 0, false); h != HandleBody {
		t.Errorf("Rotated body should cover (500,540), got %v", h)
	}
	if h := s.HitTest(Point{X: 560, Y: 500}, 0, false); h != HandleNone {
		t.Errorf("Rotated body should not cover (560,500), got %v", h)
	}
	if h := s.HitTest(Point{X: 518, Y: 500}, 5, false); h != HandleBody {
		t.Errorf("Tolerance should widen the body, got %v", h)
	}
}

func TestParseShapeKind(t *testing.T) {
	for _, k := range []string{"single", "double", "single-curved", "double-curved"} {
		if _, err := ParseShapeKind(k); err != nil {
			t.Errorf("%s: unexpected error %v", k, err)
		}
	}
	if _, err := ParseShapeKind("triple"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

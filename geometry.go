package main

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position in diagram space. The diagram is a square of side
// canvasSize with y growing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ArcPath is an arc path ready for text layout. Reversed reports that the
// path runs start->end instead of end->start so text stays upright.
type ArcPath struct {
	D        string
	Reversed bool
}

func diagramCenter() Point {
	return Point{X: canvasSize / 2, Y: canvasSize / 2}
}

// PolarToCartesian maps an angle measured clockwise from 12 o'clock.
func PolarToCartesian(center Point, radius, angleDeg float64) Point {
	rad := (angleDeg - 90) * math.Pi / 180.0
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// PolarFromCartesian is the inverse of PolarToCartesian. The angle is in [0,360).
func PolarFromCartesian(center Point, p Point) (radius, angleDeg float64) {
	dx := p.X - center.X
	dy := p.Y - center.Y
	radius = math.Hypot(dx, dy)
	angleDeg = NormalizeAngle(math.Atan2(dy, dx)*180/math.Pi + 90)
	return radius, angleDeg
}

// DescribeArc returns an SVG arc from the endAngle projection back to the
// startAngle projection.
func DescribeArc(center Point, radius, startAngle, endAngle float64) string {
	start := PolarToCartesian(center, radius, endAngle)
	end := PolarToCartesian(center, radius, startAngle)
	return arcCommand(start, end, radius, largeArcFlag(startAngle, endAngle), 0)
}

// DescribeTextArc flips the winding when the arc midpoint sits strictly
// inside the lower hemisphere (90, 270). Callers must not reverse it again.
func DescribeTextArc(center Point, radius, startAngle, endAngle float64) ArcPath {
	mid := NormalizeAngle((startAngle + endAngle) / 2)
	if mid > 90 && mid < 270 {
		start := PolarToCartesian(center, radius, startAngle)
		end := PolarToCartesian(center, radius, endAngle)
		return ArcPath{
			D:        arcCommand(start, end, radius, largeArcFlag(startAngle, endAngle), 1),
			Reversed: true,
		}
	}
	return ArcPath{D: DescribeArc(center, radius, startAngle, endAngle)}
}

func largeArcFlag(startAngle, endAngle float64) int {
	if endAngle-startAngle <= 180 {
		return 0
	}
	return 1
}

func arcCommand(from, to Point, radius float64, large, sweep int) string {
	return strings.Join([]string{
		"M", fmtNum(from.X), fmtNum(from.Y),
		"A", fmtNum(radius), fmtNum(radius), "0", strconv.Itoa(large), strconv.Itoa(sweep), fmtNum(to.X), fmtNum(to.Y),
	}, " ")
}

// NormalizeAngle folds any angle into [0,360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// AngleBetween is the screen angle of b seen from a, in degrees.
func AngleBetween(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// RotatePoint rotates p around center by angleDeg (clockwise on screen).
func RotatePoint(p, center Point, angleDeg float64) Point {
	rad := angleDeg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// fmtNum keeps path strings short and stable across platforms.
func fmtNum(v float64) string {
	r := math.Round(v*10000) / 10000
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

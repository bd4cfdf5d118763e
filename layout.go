package main

import (
	"fmt"
	"math"
)

// DiagramConfig holds the global layout parameters, all in diagram units.
type DiagramConfig struct {
	GapSize        float64 `json:"gapSize"`
	LevelThickness float64 `json:"levelThickness"`
	CenterRadius   float64 `json:"centerRadius"`
	ArcPadding     float64 `json:"arcPadding"`
}

func DefaultConfig() DiagramConfig {
	return DiagramConfig{
		GapSize:        20,
		LevelThickness: 60,
		CenterRadius:   70,
		ArcPadding:     10,
	}
}

// Layout derives cell, label and channel geometry. It holds no state of its
// own and is rebuilt for every render.
type Layout struct {
	Sectors int
	Rings   int
	Config  DiagramConfig
	Center  Point
}

// CellGeometry is the angular and radial extent of one arc cell.
type CellGeometry struct {
	Ring        int
	Sector      int
	Radius      float64
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
	Path        ArcPath
}

// ChannelGeometry is the radial gap line after sector Sector.
type ChannelGeometry struct {
	Sector      int
	Angle       float64
	InnerRadius float64
	OuterRadius float64
}

func (c ChannelGeometry) Length() float64 {
	return c.OuterRadius - c.InnerRadius
}

// Anchor is where the channel label is centred.
func (c ChannelGeometry) Anchor(center Point) Point {
	return PolarToCartesian(center, (c.InnerRadius+c.OuterRadius)/2, c.Angle)
}

// LabelRotation turns horizontal text so it runs along the radial line.
func (c ChannelGeometry) LabelRotation() float64 {
	return c.Angle + 90
}

func (c ChannelGeometry) Color() string {
	return channelPalette[c.Sector%len(channelPalette)]
}

// NewLayout expects sectors >= 1. Clamping to the editable range is the
// document's job; any positive count is laid out.
func NewLayout(sectors, rings int, cfg DiagramConfig) Layout {
	return Layout{
		Sectors: sectors,
		Rings:   rings,
		Config:  cfg,
		Center:  diagramCenter(),
	}
}

// RingRadius is the centre line of ring i (0 is innermost).
func (l Layout) RingRadius(ring int) float64 {
	c := l.Config
	return c.CenterRadius + c.GapSize + float64(ring)*(c.LevelThickness+c.GapSize) + c.LevelThickness/2
}

func (l Layout) AngularStep() float64 {
	return 360 / float64(l.Sectors)
}

// AngularPadding converts the linear arc padding into degrees at radius, so
// the visible gap between cells is the same width on every ring.
func (l Layout) AngularPadding(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return (l.Config.ArcPadding / radius) * (180 / math.Pi)
}

func (l Layout) Cell(ring, sector int) CellGeometry {
	if ring < 0 || ring >= l.Rings {
		panic(fmt.Sprintf("ring index %d out of range [0,%d)", ring, l.Rings))
	}
	radius := l.RingRadius(ring)
	step := l.AngularStep()
	pad := l.AngularPadding(radius)
	start := float64(sector)*step + pad/2
	end := float64(sector+1)*step - pad/2
	return CellGeometry{
		Ring:        ring,
		Sector:      sector,
		Radius:      radius,
		InnerRadius: radius - l.Config.LevelThickness/2,
		OuterRadius: radius + l.Config.LevelThickness/2,
		StartAngle:  start,
		EndAngle:    end,
		Path:        DescribeTextArc(l.Center, radius, start, end),
	}
}

// OuterBoundary is the outer edge of the outermost ring.
func (l Layout) OuterBoundary() float64 {
	c := l.Config
	return c.CenterRadius + float64(l.Rings)*(c.LevelThickness+c.GapSize)
}

func (l Layout) OuterLabelRadius() float64 {
	if l.Rings == 0 {
		return l.Config.CenterRadius + outerLabelOffset
	}
	return l.RingRadius(l.Rings-1) + l.Config.LevelThickness/2 + outerLabelOffset
}

// OuterLabelPath follows the outermost ring's cell for sector at label radius.
func (l Layout) OuterLabelPath(sector int) ArcPath {
	cell := l.Cell(l.Rings-1, sector)
	return DescribeTextArc(l.Center, l.OuterLabelRadius(), cell.StartAngle, cell.EndAngle)
}

// Channel starts at the innermost ring's inner edge, not at the center disc.
func (l Layout) Channel(sector int) ChannelGeometry {
	inner := l.Config.CenterRadius + l.Config.GapSize
	return ChannelGeometry{
		Sector:      sector,
		Angle:       float64(sector+1) * l.AngularStep(),
		InnerRadius: inner,
		OuterRadius: math.Max(l.OuterBoundary(), inner),
	}
}

// HitTestArc finds the cell under p. Padding gaps, ring gaps and the center
// disc are misses.
func (l Layout) HitTestArc(p Point) (ring, sector int, ok bool) {
	if l.Sectors < 1 {
		return -1, -1, false
	}
	radius, angle := PolarFromCartesian(l.Center, p)
	half := l.Config.LevelThickness / 2
	for i := 0; i < l.Rings; i++ {
		r := l.RingRadius(i)
		if radius < r-half || radius > r+half {
			continue
		}
		k := int(angle / l.AngularStep())
		if k >= l.Sectors {
			k = l.Sectors - 1
		}
		cell := l.Cell(i, k)
		if angle >= cell.StartAngle && angle <= cell.EndAngle {
			return i, k, true
		}
		return -1, -1, false
	}
	return -1, -1, false
}

package main

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	boldFont     *truetype.Font
	boldFontErr  error
	boldFontOnce sync.Once
	faceCache    = map[int]font.Face{}
)

// fontFace returns a bold face at size pixels, cached per rounded size.
func fontFace(size float64) (font.Face, error) {
	boldFontOnce.Do(func() {
		boldFont, boldFontErr = truetype.Parse(gobold.TTF)
	})
	if boldFontErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", boldFontErr)
	}
	key := int(math.Max(1, math.Round(size)))
	if f, ok := faceCache[key]; ok {
		return f, nil
	}
	f := truetype.NewFace(boldFont, &truetype.Options{
		Size:    float64(key),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faceCache[key] = f
	return f, nil
}

type rasterOptions struct {
	Size      int
	Selection Selection
	// MinTextSize hides text whose scaled size would fall below it.
	MinTextSize float64
}

// raster draws diagram-space geometry into a square pixel context.
type raster struct {
	dc    *gg.Context
	scale float64
	opts  rasterOptions
}

func (r *raster) px(v float64) float64 { return v * r.scale }

func (r *raster) pt(p Point) (float64, float64) { return p.X * r.scale, p.Y * r.scale }

func (r *raster) setFont(size float64) bool {
	scaled := r.px(size)
	if scaled < r.opts.MinTextSize || scaled < 1 {
		return false
	}
	face, err := fontFace(scaled)
	if err != nil {
		Errorf("raster: %v", err)
		return false
	}
	r.dc.SetFontFace(face)
	return true
}

// renderRaster draws doc into a new context of opts.Size square pixels.
func renderRaster(doc Document, cfg DiagramConfig, opts rasterOptions) *gg.Context {
	dc := gg.NewContext(opts.Size, opts.Size)
	r := &raster{dc: dc, scale: float64(opts.Size) / canvasSize, opts: opts}
	dc.SetHexColor("#ffffff")
	dc.Clear()

	l := NewLayout(doc.SectorCount, len(doc.Rings), cfg)
	for i, ring := range doc.Rings {
		for k, cell := range ring.Cells {
			g := l.Cell(i, k)
			if opts.Selection.IsArc(i, k) {
				r.strokeArc(l.Center, g.Radius, g.StartAngle, g.EndAngle, cfg.LevelThickness+6, selectionColor)
			}
			r.strokeArc(l.Center, g.Radius, g.StartAngle, g.EndAngle, cfg.LevelThickness, cell.FillColor)
			if r.setFont(arcFontSize) {
				r.arcText(cell.Text, cell.TextColor, l.Center, g.Radius, g.StartAngle, g.EndAngle, g.Path.Reversed)
			}
			if i == len(doc.Rings)-1 && r.setFont(outerFontSize) {
				label := l.OuterLabelPath(k)
				r.arcText(doc.OuterLabels[k], outerLabelColor, l.Center, l.OuterLabelRadius(), g.StartAngle, g.EndAngle, label.Reversed)
			}
		}
	}

	if len(doc.Rings) > 0 && r.setFont(channelFontSize) {
		for _, k := range doc.ChannelSectors() {
			if k >= doc.SectorCount || doc.ChannelTexts[k] == "" {
				continue
			}
			ch := l.Channel(k)
			x, y := r.pt(ch.Anchor(l.Center))
			dc.Push()
			dc.RotateAbout(gg.Radians(ch.LabelRotation()), x, y)
			dc.SetHexColor(ch.Color())
			dc.DrawStringAnchored(doc.ChannelTexts[k], x, y, 0.5, 0.35)
			dc.Pop()
		}
	}

	cx, cy := r.pt(l.Center)
	dc.DrawCircle(cx, cy, r.px(cfg.CenterRadius))
	dc.SetHexColor("#ffffff")
	dc.FillPreserve()
	dc.SetHexColor("#cccccc")
	dc.SetLineWidth(math.Max(1, r.px(1)))
	dc.Stroke()
	if r.setFont(centerFontSize) {
		lines := strings.Split(doc.CenterText, "\n")
		top := cy - float64(len(lines)-1)*r.px(centerFontSize)*0.6
		dc.SetHexColor("#1e293b")
		for i, line := range lines {
			dc.DrawStringAnchored(line, cx, top+float64(i)*r.px(centerFontSize)*1.2, 0.5, 0.35)
		}
	}

	for _, s := range doc.Shapes {
		r.shape(s, opts.Selection.IsShape(s.ID))
	}
	return dc
}

// strokeArc converts the clockwise-from-top kernel angles to gg's radians.
func (r *raster) strokeArc(center Point, radius, start, end, width float64, color string) {
	cx, cy := r.pt(center)
	r.dc.NewSubPath()
	r.dc.DrawArc(cx, cy, r.px(radius), gg.Radians(start-90), gg.Radians(end-90))
	r.dc.SetLineWidth(math.Max(1, r.px(width)))
	r.dc.SetLineCap(gg.LineCapButt)
	r.dc.SetHexColor(color)
	r.dc.Stroke()
}

// arcText lays glyphs one by one along the arc, centred on its midpoint.
// Reversed arcs run counter-clockwise with glyphs turned to face inward, so
// lower-hemisphere text reads left to right like the upper half.
func (r *raster) arcText(text, color string, center Point, radius, start, end float64, reversed bool) {
	if text == "" || radius <= 0 {
		return
	}
	dc := r.dc
	pr := r.px(radius)
	total, _ := dc.MeasureString(text)
	span := total / pr * 180 / math.Pi
	mid := (start + end) / 2

	dir := 1.0
	turn := 0.0
	angle := mid - span/2
	if reversed {
		dir = -1
		turn = 180
		angle = mid + span/2
	}

	dc.SetHexColor(color)
	cx, cy := r.pt(center)
	for _, ch := range text {
		glyph := string(ch)
		w, _ := dc.MeasureString(glyph)
		half := w / 2 / pr * 180 / math.Pi
		theta := angle + dir*half
		p := PolarToCartesian(Point{X: cx, Y: cy}, pr, theta)
		dc.Push()
		dc.RotateAbout(gg.Radians(theta+turn), p.X, p.Y)
		dc.DrawStringAnchored(glyph, p.X, p.Y, 0.5, 0.35)
		dc.Pop()
		angle += dir * 2 * half
	}
}

func (r *raster) shape(s Shape, selected bool) {
	dc := r.dc
	ap := ShapeArrowPath(s)
	x, y := r.pt(s.Position)

	dc.Push()
	dc.Translate(x, y)
	dc.Rotate(gg.Radians(s.Rotation))
	dc.Translate(-r.px(s.Size.Width/2), -r.px(s.Size.Height/2))

	dc.NewSubPath()
	for _, c := range ap.Cmds {
		switch c.Op {
		case PathMove:
			dc.MoveTo(r.px(c.To.X), r.px(c.To.Y))
		case PathLine:
			dc.LineTo(r.px(c.To.X), r.px(c.To.Y))
		case PathQuad:
			dc.QuadraticTo(r.px(c.Ctrl.X), r.px(c.Ctrl.Y), r.px(c.To.X), r.px(c.To.Y))
		case PathClose:
			dc.ClosePath()
		}
	}
	dc.SetHexColor(s.Color)
	dc.SetLineWidth(math.Max(1, r.px(2)))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	if ap.Filled {
		dc.FillPreserve()
	}
	dc.Stroke()

	for _, m := range ap.Markers() {
		for i, p := range m.Polygon() {
			if i == 0 {
				dc.MoveTo(r.px(p.X), r.px(p.Y))
			} else {
				dc.LineTo(r.px(p.X), r.px(p.Y))
			}
		}
		dc.ClosePath()
		dc.Fill()
	}
	dc.Pop()

	if selected {
		r.selectionHandles(s)
	}
}

func (r *raster) selectionHandles(s Shape) {
	dc := r.dc
	x, y := r.pt(s.Position)
	w, h := r.px(s.Size.Width), r.px(s.Size.Height)
	dc.Push()
	dc.Translate(x, y)
	dc.Rotate(gg.Radians(s.Rotation))
	dc.SetDash(4, 4)
	dc.SetLineWidth(1)
	dc.SetHexColor(selectionColor)
	dc.DrawRectangle(-w/2-2, -h/2-2, w+4, h+4)
	dc.Stroke()
	dc.SetDash()
	dc.Pop()

	radius := math.Max(2, r.px(handleSize/2))
	rx, ry := r.pt(s.ResizeHandle())
	dc.DrawCircle(rx, ry, radius)
	dc.SetHexColor(selectionColor)
	dc.Fill()
	ox, oy := r.pt(s.RotateHandle())
	dc.DrawCircle(ox, oy, radius)
	dc.SetHexColor(rotateHandleColor)
	dc.Fill()
}

package main

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	arcFontSize     = 22
	outerFontSize   = 20
	channelFontSize = 14
	centerFontSize  = 16
)

// RenderSVG draws the whole diagram. Selection decorations are included so
// the same output can back an interactive surface; pass Selection{} for a
// clean export.
func RenderSVG(w io.Writer, doc Document, cfg DiagramConfig, sel Selection) {
	l := NewLayout(doc.SectorCount, len(doc.Rings), cfg)
	size := int(canvasSize)

	canvas := svg.New(w)
	canvas.Startview(size, size, 0, 0, size, size)
	canvas.Rect(0, 0, size, size, "fill:#ffffff")

	writeMarkerDefs(canvas, doc.Shapes)

	for i, ring := range doc.Rings {
		canvas.Group(fmt.Sprintf(`id="%s"`, xmlAttr(ring.ID)))
		for k, cell := range ring.Cells {
			g := l.Cell(i, k)
			pathID := fmt.Sprintf("p-%d-%d", i, k)
			if sel.IsArc(i, k) {
				canvas.Path(g.Path.D, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", selectionColor, fmtNum(cfg.LevelThickness+6)))
			}
			canvas.Path(g.Path.D, fmt.Sprintf(`id="%s"`, pathID),
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", cell.FillColor, fmtNum(cfg.LevelThickness)))
			textOnPath(canvas, pathID, cell.Text, cell.TextColor, arcFontSize)

			if i == len(doc.Rings)-1 {
				labelID := fmt.Sprintf("ol-%d", k)
				canvas.Path(l.OuterLabelPath(k).D, fmt.Sprintf(`id="%s"`, labelID), "fill:none")
				textOnPath(canvas, labelID, doc.OuterLabels[k], outerLabelColor, outerFontSize)
			}
		}
		canvas.Gend()
	}

	for _, k := range doc.ChannelSectors() {
		text := doc.ChannelTexts[k]
		if k >= doc.SectorCount || text == "" || len(doc.Rings) == 0 {
			continue
		}
		ch := l.Channel(k)
		a := ch.Anchor(l.Center)
		canvas.Text(int(math.Round(a.X)), int(math.Round(a.Y)), text,
			fmt.Sprintf(`transform="rotate(%s %s %s)"`, fmtNum(ch.LabelRotation()), fmtNum(a.X), fmtNum(a.Y)),
			fmt.Sprintf("fill:%s;font-size:%dpx;font-weight:bold;text-anchor:middle;dominant-baseline:middle;letter-spacing:1px", ch.Color(), channelFontSize))
	}

	c := int(canvasSize / 2)
	canvas.Circle(c, c, int(math.Round(cfg.CenterRadius)), "fill:#ffffff;stroke:#cccccc")
	lines := strings.Split(doc.CenterText, "\n")
	top := float64(c) - float64(len(lines)-1)*centerFontSize*0.6
	for i, line := range lines {
		canvas.Text(c, int(math.Round(top+float64(i)*centerFontSize*1.2)), line,
			fmt.Sprintf("fill:#1e293b;font-size:%dpx;font-weight:bold;text-anchor:middle;dominant-baseline:middle", centerFontSize))
	}

	for _, s := range doc.Shapes {
		drawShapeSVG(canvas, s, sel.IsShape(s.ID))
	}

	canvas.End()
}

// RenderSVGString is RenderSVG into memory.
func RenderSVGString(doc Document, cfg DiagramConfig, sel Selection) string {
	var buf bytes.Buffer
	RenderSVG(&buf, doc, cfg, sel)
	return buf.String()
}

func markerID(s Shape) string {
	return "arrowhead-" + s.ID
}

func writeMarkerDefs(canvas *svg.SVG, shapes []Shape) {
	var curved []Shape
	for _, s := range shapes {
		if s.Kind.Curved() {
			curved = append(curved, s)
		}
	}
	if len(curved) == 0 {
		return
	}
	canvas.Def()
	for _, s := range curved {
		orient := "auto"
		if s.Kind.Double() {
			orient = "auto-start-reverse"
		}
		canvas.Marker(markerID(s), 10, 6, int(markerSize), int(markerSize),
			fmt.Sprintf(`orient="%s"`, orient), `markerUnits="userSpaceOnUse"`)
		canvas.Path(markerGlyphPath, "fill:"+s.Color)
		canvas.MarkerEnd()
	}
	canvas.DefEnd()
}

// textOnPath centres text along a path. The path already carries the
// upright winding, so it is referenced as-is.
func textOnPath(canvas *svg.SVG, pathID, text, color string, fontSize int) {
	if text == "" {
		return
	}
	fmt.Fprintf(canvas.Writer,
		`<text style="fill:%s;font-size:%dpx;font-weight:bold"><textPath xlink:href="#%s" href="#%s" startOffset="50%%" text-anchor="middle" dominant-baseline="middle">`,
		color, fontSize, pathID, pathID)
	xml.EscapeText(canvas.Writer, []byte(text))
	fmt.Fprintln(canvas.Writer, `</textPath></text>`)
}

func drawShapeSVG(canvas *svg.SVG, s Shape, selected bool) {
	ap := ShapeArrowPath(s)
	canvas.Gtransform(ShapeTransform(s))
	attrs := []string{`stroke-linecap="round"`, `stroke-linejoin="round"`}
	fill := "none"
	if ap.Filled {
		fill = s.Color
	}
	if ap.MarkerStart {
		attrs = append(attrs, fmt.Sprintf(`marker-start="url(#%s)"`, markerID(s)))
	}
	if ap.MarkerEnd && s.Kind.Curved() {
		attrs = append(attrs, fmt.Sprintf(`marker-end="url(#%s)"`, markerID(s)))
	}
	attrs = append(attrs, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", fill, s.Color))
	canvas.Path(ap.String(), attrs...)
	canvas.Gend()

	if !selected {
		return
	}
	w, h := s.Size.Width, s.Size.Height
	canvas.Gtransform(fmt.Sprintf("translate(%s %s) rotate(%s)", fmtNum(s.Position.X), fmtNum(s.Position.Y), fmtNum(s.Rotation)))
	canvas.Path(fmt.Sprintf("M %s %s h %s v %s h %s Z", fmtNum(-w/2-2), fmtNum(-h/2-2), fmtNum(w+4), fmtNum(h+4), fmtNum(-w-4)),
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:4 4", selectionColor))
	rotY := -h/2 - rotateHandleDistance
	canvas.Path(fmt.Sprintf("M 0 %s L 0 %s", fmtNum(-h/2-5), fmtNum(rotY)),
		fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:2 2", rotateHandleColor))
	canvas.Circle(int(math.Round(w/2)), 0, int(handleSize/2), fmt.Sprintf("fill:%s;stroke:#ffffff;stroke-width:1", selectionColor))
	canvas.Circle(0, int(math.Round(rotY)), int(handleSize/2), fmt.Sprintf("fill:%s;stroke:#ffffff;stroke-width:1", rotateHandleColor))
	canvas.Gend()
}

func xmlAttr(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

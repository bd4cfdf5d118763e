package main

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Viewport is the terminal area showing the diagram. Each cell holds two
// stacked pixels drawn with an upper half block, so pixels are square and
// one uniform scale maps cells to diagram units.
type Viewport struct {
	Left, Top  int
	Cols, Rows int
}

func (v Viewport) Mounted() bool {
	return v.Cols > 0 && v.Rows > 0
}

// Pixels is the side of the square preview image.
func (v Viewport) Pixels() int {
	return min(v.Cols, v.Rows*2)
}

// Scale is diagram units per preview pixel.
func (v Viewport) Scale() float64 {
	if !v.Mounted() {
		return 0
	}
	return canvasSize / float64(v.Pixels())
}

// ScreenToDiagram maps a terminal cell to the diagram point under its
// centre. Cells outside the preview still map, so gestures can leave it.
func (v Viewport) ScreenToDiagram(x, y float64) (Point, bool) {
	if !v.Mounted() {
		return Point{}, false
	}
	s := v.Scale()
	return Point{
		X: (x - float64(v.Left) + 0.5) * s,
		Y: ((y-float64(v.Top))*2 + 1) * s,
	}, true
}

func (v Viewport) Contains(x, y int) bool {
	if !v.Mounted() {
		return false
	}
	col, row := x-v.Left, y-v.Top
	return col >= 0 && row >= 0 && col < v.Pixels() && row*2 < v.Pixels()
}

// Render rasterizes the diagram at preview size and prints it as half
// blocks, merging runs of identical colours into one styled segment.
func (v Viewport) Render(doc Document, cfg DiagramConfig, sel Selection) string {
	if !v.Mounted() {
		return ""
	}
	n := v.Pixels()
	img := renderRaster(doc, cfg, rasterOptions{Size: n, Selection: sel, MinTextSize: 7}).Image()

	rows := (n + 1) / 2
	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		var b strings.Builder
		runTop, runBottom, runLen := "", "", 0
		flush := func() {
			if runLen == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(runTop)).Background(lipgloss.Color(runBottom))
			b.WriteString(style.Render(strings.Repeat("▀", runLen)))
			runLen = 0
		}
		for col := 0; col < n; col++ {
			top := pixelHex(img, col, row*2)
			bottom := pixelHex(img, col, row*2+1)
			if top != runTop || bottom != runBottom {
				flush()
				runTop, runBottom = top, bottom
			}
			runLen++
		}
		flush()
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func pixelHex(img image.Image, x, y int) string {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return "#ffffff"
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return "#ffffff"
	}
	return c.Hex()
}

package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpExportPNG
	FileOpExportSVG
)

type ConfirmAction int

const (
	ConfirmRemoveRing ConfirmAction = iota
	ConfirmRemoveShape
	ConfirmQuit
	ConfirmNewDiagram
	ConfirmOverwriteFile
)

type GestureState int

const (
	GestureIdle GestureState = iota
	GestureDragging
	GestureResizing
	GestureRotating
)

func (g GestureState) String() string {
	switch g {
	case GestureDragging:
		return "dragging"
	case GestureResizing:
		return "resizing"
	case GestureRotating:
		return "rotating"
	default:
		return "idle"
	}
}

const (
	canvasSize = 1000.0

	minSectors = 1
	maxSectors = 12

	outerLabelOffset = 15.0

	minShapeWidth        = 50.0
	minShapeHeight       = 20.0
	rotateHandleDistance = 30.0
	handleSize           = 8.0
	curvePadding         = 15.0
	markerSize           = 12.0

	historyLimit = 100
)

const (
	defaultArcText      = "New"
	defaultArcFill      = "#e2e8f0"
	defaultArcTextColor = "#333333"
	defaultShapeColor   = "#3b82f6"
	outerLabelColor     = "#94a3b8"
	selectionColor      = "#3b82f6"
	rotateHandleColor   = "#10b981"
)

// channelPalette colours channel labels by sector index.
var channelPalette = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444",
	"#8b5cf6", "#ec4899", "#06b6d4", "#84cc16",
	"#f97316", "#6366f1", "#14b8a6", "#a855f7",
	"#e11d48", "#0ea5e9", "#22c55e", "#fbbf24",
}

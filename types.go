package main

import "github.com/charmbracelet/bubbles/textinput"

type model struct {
	width      int
	height     int
	editor     *Editor
	controller *Controller
	viewport   Viewport
	config     *Config
	mode       Mode
	help       bool
	helpScroll int

	// editing
	input     textinput.Model
	field     editField
	editSel   Selection

	// file input
	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	currentFile       string

	confirmAction  ConfirmAction
	confirmRingID  string
	confirmShapeID string

	errorMessage   string
	successMessage string
}

// editField names the property an edit prompt writes to.
type editField int

const (
	fieldCenterText editField = iota
	fieldArcText
	fieldArcFill
	fieldArcTextColor
	fieldOuterLabel
	fieldChannelText
	fieldSectorCount
	fieldGapSize
	fieldLevelThickness
	fieldCenterRadius
	fieldArcPadding
	fieldShapeColor
	fieldShapeRotation
	fieldShapeWidth
	fieldShapeHeight
	fieldShapeCurve
)

func (f editField) String() string {
	switch f {
	case fieldCenterText:
		return "Center text"
	case fieldArcText:
		return "Arc text"
	case fieldArcFill:
		return "Arc fill"
	case fieldArcTextColor:
		return "Arc text colour"
	case fieldOuterLabel:
		return "Outer label"
	case fieldChannelText:
		return "Channel text"
	case fieldSectorCount:
		return "Sectors"
	case fieldGapSize:
		return "Gap size"
	case fieldLevelThickness:
		return "Level thickness"
	case fieldCenterRadius:
		return "Center radius"
	case fieldArcPadding:
		return "Arc padding"
	case fieldShapeColor:
		return "Shape colour"
	case fieldShapeRotation:
		return "Rotation"
	case fieldShapeWidth:
		return "Width"
	case fieldShapeHeight:
		return "Height"
	case fieldShapeCurve:
		return "Curve amount"
	default:
		return "Field"
	}
}

// multiline fields show line breaks as a literal \n while editing.
func (f editField) multiline() bool {
	return f == fieldCenterText
}

func (f editField) needsArc() bool {
	switch f {
	case fieldArcText, fieldArcFill, fieldArcTextColor, fieldOuterLabel, fieldChannelText:
		return true
	}
	return false
}

func (f editField) needsShape() bool {
	switch f {
	case fieldShapeColor, fieldShapeRotation, fieldShapeWidth, fieldShapeHeight, fieldShapeCurve:
		return true
	}
	return false
}

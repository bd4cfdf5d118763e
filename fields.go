package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	errNoArcSelected   = errors.New("select an arc first")
	errNoShapeSelected = errors.New("select a shape first")
)

// fieldValue is the current text of f for the selection it would edit.
func fieldValue(e *Editor, f editField, sel Selection) (string, error) {
	doc := e.Document()
	cfg := e.Config()
	if f.needsArc() && sel.Kind != SelectArc {
		return "", errNoArcSelected
	}
	var shape Shape
	if f.needsShape() {
		s, ok := doc.Shape(sel.ShapeID)
		if sel.Kind != SelectShape || !ok {
			return "", errNoShapeSelected
		}
		shape = s
	}

	switch f {
	case fieldCenterText:
		return strings.ReplaceAll(doc.CenterText, "\n", `\n`), nil
	case fieldArcText:
		return doc.Rings[sel.Ring].Cells[sel.Sector].Text, nil
	case fieldArcFill:
		return doc.Rings[sel.Ring].Cells[sel.Sector].FillColor, nil
	case fieldArcTextColor:
		return doc.Rings[sel.Ring].Cells[sel.Sector].TextColor, nil
	case fieldOuterLabel:
		return doc.OuterLabels[sel.Sector], nil
	case fieldChannelText:
		return doc.ChannelText(sel.Sector), nil
	case fieldSectorCount:
		return fmt.Sprint(doc.SectorCount), nil
	case fieldGapSize:
		return fmtNum(cfg.GapSize), nil
	case fieldLevelThickness:
		return fmtNum(cfg.LevelThickness), nil
	case fieldCenterRadius:
		return fmtNum(cfg.CenterRadius), nil
	case fieldArcPadding:
		return fmtNum(cfg.ArcPadding), nil
	case fieldShapeColor:
		return shape.Color, nil
	case fieldShapeRotation:
		return fmtNum(displayRotation(shape.Rotation)), nil
	case fieldShapeWidth:
		return fmtNum(shape.Size.Width), nil
	case fieldShapeHeight:
		return fmtNum(shape.Size.Height), nil
	case fieldShapeCurve:
		if shape.CurveAmount == nil {
			return "", nil
		}
		return fmtNum(*shape.CurveAmount), nil
	}
	return "", fmt.Errorf("unknown field %d", f)
}

// applyField writes value to f. Nothing changes when value is rejected.
func applyField(e *Editor, f editField, sel Selection, value string) error {
	if f.needsArc() && sel.Kind != SelectArc {
		return errNoArcSelected
	}
	if f.needsShape() && sel.Kind != SelectShape {
		return errNoShapeSelected
	}

	switch f {
	case fieldCenterText:
		e.SetCenterText(strings.ReplaceAll(value, `\n`, "\n"))
		return nil
	case fieldArcText:
		return e.UpdateArcCell(sel.Ring, sel.Sector, SetArcText(value))
	case fieldArcFill:
		return e.UpdateArcCell(sel.Ring, sel.Sector, SetArcFill(value))
	case fieldArcTextColor:
		return e.UpdateArcCell(sel.Ring, sel.Sector, SetArcTextColor(value))
	case fieldOuterLabel:
		return e.SetOuterLabel(sel.Sector, value)
	case fieldChannelText:
		return e.SetChannelText(sel.Sector, strings.TrimSpace(value))
	case fieldSectorCount:
		n, err := ParseSectorCount(value)
		if err != nil {
			return err
		}
		e.SetSectorCount(n)
		return nil
	case fieldGapSize, fieldLevelThickness, fieldCenterRadius, fieldArcPadding:
		v, err := ParseConfigValue(value)
		if err != nil {
			return err
		}
		var p ConfigPatch
		switch f {
		case fieldGapSize:
			p.GapSize = &v
		case fieldLevelThickness:
			p.LevelThickness = &v
		case fieldCenterRadius:
			p.CenterRadius = &v
		case fieldArcPadding:
			p.ArcPadding = &v
		}
		return e.UpdateConfig(p)
	}

	shape, ok := e.doc.Shape(sel.ShapeID)
	if !ok {
		return fmt.Errorf("%s: %w", sel.ShapeID, ErrNoShape)
	}
	var p ShapePatch
	switch f {
	case fieldShapeColor:
		p.Color = &value
	case fieldShapeCurve:
		if strings.TrimSpace(value) == "" {
			p.ResetCurve = true
			break
		}
		v, err := parseNumber(value)
		if err != nil {
			return err
		}
		p.CurveAmount = &v
	default:
		v, err := parseNumber(value)
		if err != nil {
			return err
		}
		switch f {
		case fieldShapeRotation:
			p.Rotation = &v
		case fieldShapeWidth:
			p.Size = &Size{Width: math.Max(minShapeWidth, v), Height: shape.Size.Height}
		case fieldShapeHeight:
			p.Size = &Size{Width: shape.Size.Width, Height: math.Max(minShapeHeight, v)}
		default:
			return fmt.Errorf("unknown field %d", f)
		}
	}
	return e.UpdateShape(sel.ShapeID, p)
}

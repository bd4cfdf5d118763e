package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

var ErrNothingToExport = errors.New("nothing to export")

func exportable(doc Document) error {
	if len(doc.Rings) == 0 && len(doc.Shapes) == 0 && doc.CenterText == "" {
		return ErrNothingToExport
	}
	return nil
}

// ExportPNG rasterizes the diagram without any selection decoration.
func ExportPNG(filename string, doc Document, cfg DiagramConfig, size int) error {
	if err := exportable(doc); err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("export size %d: %w", size, ErrInvalidNumber)
	}
	dc := renderRaster(doc, cfg, rasterOptions{Size: size})
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	Infof("exported %s (%dx%d)", filename, size, size)
	return nil
}

func ExportSVG(filename string, doc Document, cfg DiagramConfig) error {
	if err := exportable(doc); err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	RenderSVG(file, doc, cfg, Selection{})
	if err := file.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	Infof("exported %s", filename)
	return nil
}

// copySVGToClipboard puts the clean SVG markup on the system clipboard.
func copySVGToClipboard(doc Document, cfg DiagramConfig) error {
	if err := exportable(doc); err != nil {
		return err
	}
	return clipboard.WriteAll(RenderSVGString(doc, cfg, Selection{}))
}

// Package pdfocr renders the text boxes of a WordMaze as invisible, searchable
// PDF text layers.
//
// The text is positioned over the page so that it is:
// - Fully searchable
// - Selectable with mouse drag operations
// - Toggleable in compatible PDF readers, since each page gets its own layer
//
// Main Functions:
//
// - Render: Creates a new PDF, drawing figures with image content beneath the text layer
// - Overlay: Adds the text layer over the pages of an existing PDF
// - CheckExistingOCRLayers: Detects existing OCR layers to prevent duplication
package pdfocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/wordmaze/pkg/wordmaze"
)

// Render creates a new PDF with one page per WordMaze page, starting at
// config.StartPage. Page sizes are the page shapes times config.Scale.
func Render(maze *wordmaze.WordMaze, config OCRConfig) ([]byte, error) {
	pages, err := preparePages(maze, config)
	if err != nil {
		return nil, err
	}

	scale := config.scale()
	logger := getLogger(config)
	pdf := fpdf.New("P", "pt", "A4", "")

	for i, page := range pages {
		pageNum := i + 1 // 1-based page number in the resulting PDF
		w, h := page.Shape.Width*scale, page.Shape.Height*scale
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		n := 0
		for fig := range page.Figures() {
			n++
			if len(fig.Content) == 0 {
				continue
			}
			if err := drawFigure(pdf, fig, fmt.Sprintf("p%df%d", pageNum, n), scale); err != nil {
				fmt.Fprintf(logger, "Warning: skipping figure %d on page %d: %v\n", n, pageNum, err)
			}
		}

		err := drawOCRLayer(pdf, page, pageNum, config)
		if err != nil {
			return nil, fmt.Errorf("failed to draw OCR layer for page %d: %w", pageNum, err)
		}
	}

	return output(pdf)
}

// Overlay imports the pages of an existing PDF and draws the text layer over them.
// Page i of the WordMaze (counting from config.StartPage) is laid over page i of
// the input. Inputs that already carry an OCR layer are refused unless config.Force is set.
func Overlay(inputPDFData []byte, maze *wordmaze.WordMaze, config OCRConfig) ([]byte, error) {
	if len(inputPDFData) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	pages, err := preparePages(maze, config)
	if err != nil {
		return nil, err
	}

	logger := getLogger(config)
	if config.DumpPDF {
		dumpPDFStructure(inputPDFData, 2000, logger)
	}

	layerResult, err := CheckExistingOCRLayers(inputPDFData, config.LayerName)
	if err != nil {
		return nil, fmt.Errorf("layer detection failed: %w", err)
	}

	if len(layerResult.Layers) > 0 {
		fmt.Fprintln(logger, "Existing layers detected in PDF:")
		for i, layer := range layerResult.Layers {
			if config.Debug {
				fmt.Fprintf(logger, "  %d. %q\n", i+1, layer)
			} else {
				fmt.Fprintf(logger, "  %d. %s\n", i+1, layer)
			}
		}
	}
	for _, warning := range layerResult.Warnings {
		fmt.Fprintln(logger, "Warning:", warning)
	}

	if layerResult.HasOCRLayer && !config.Force {
		return nil, fmt.Errorf("file already has OCR (layer '%s'), use force to reapply",
			layerResult.OCRLayerName)
	} else if layerResult.HasOCRLayer {
		fmt.Fprintln(logger, "Warning: file already has OCR; reapplying will result in duplicate OCR data")
	}

	scale := config.scale()
	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(inputPDFData))

	for i, page := range pages {
		pageNum := i + 1
		w, h := page.Shape.Width*scale, page.Shape.Height*scale
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		tpl := importer.ImportPageFromStream(pdf, &rs, pageNum, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, w, 0)

		err := drawOCRLayer(pdf, page, pageNum, config)
		if err != nil {
			return nil, fmt.Errorf("failed to draw OCR layer for page %d: %w", pageNum, err)
		}
	}

	return output(pdf)
}

// preparePages validates the input and returns the pages to render, rebased to TopLeft
func preparePages(maze *wordmaze.WordMaze, config OCRConfig) ([]*wordmaze.Page, error) {
	if maze == nil || maze.Len() == 0 {
		return nil, fmt.Errorf("WordMaze contains no pages")
	}
	if err := config.validate(maze.Len()); err != nil {
		return nil, err
	}

	// PDF drawing coordinates run from the top of the page
	rebased, err := maze.Rebase(wordmaze.TopLeft)
	if err != nil {
		return nil, err
	}
	return rebased.Slice()[config.StartPage-1:], nil
}

// drawFigure places the image content of a figure at its box
func drawFigure(pdf *fpdf.Fpdf, fig wordmaze.Figure, name string, scale float64) error {
	content, imageType, err := pdfImage(fig)
	if err != nil {
		return err
	}

	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(content))
	if err := pdf.Error(); err != nil {
		pdf.ClearError()
		return err
	}
	pdf.ImageOptions(name, fig.X1*scale, fig.Y1*scale, fig.Width()*scale, fig.Height()*scale, false, opts, 0, "")
	return nil
}

// pdfImage returns the figure content in a format fpdf can embed, re-encoding
// anything other than JPEG, PNG and GIF as PNG
func pdfImage(fig wordmaze.Figure) ([]byte, string, error) {
	imageType := fig.ImageType
	if imageType == "" {
		detected, err := wordmaze.DetectImageType(fig.Content)
		if err != nil {
			return nil, "", err
		}
		imageType = detected
	}

	switch imageType {
	case "JPEG", "JPG", "PNG", "GIF":
		return fig.Content, imageType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(fig.Content))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s image: %w", imageType, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("failed to re-encode %s image: %w", imageType, err)
	}
	return buf.Bytes(), "PNG", nil
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

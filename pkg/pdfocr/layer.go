package pdfocr

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/wordmaze/pkg/wordmaze"
)

// layerTitle names the text layer of a page
func layerTitle(layerName string, pageNum int) string {
	if pageNum > 0 {
		return fmt.Sprintf("%s (Page %d)", layerName, pageNum)
	}
	return layerName
}

// drawOCRLayer draws the text boxes of a page onto a layer of the current pdf page.
// The page must use the TopLeft origin.
func drawOCRLayer(pdf *fpdf.Fpdf, page *wordmaze.Page, pageNum int, config OCRConfig) error {
	font := config.Font
	layer := pdf.AddLayer(layerTitle(config.LayerName, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont(font.Name, font.Style, font.Size)

	if config.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
		pdf.SetDrawColor(255, 0, 0)
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	failed, words := 0, 0
	for tb := range page.TextBoxes() {
		box := tb.AsTextBox()
		if box.Text == "" {
			continue
		}
		words++
		if !drawWord(pdf, box, config.scale(), font, config.Debug) {
			failed++
		}
	}

	if !config.Debug {
		pdf.SetAlpha(1.0, "Normal")
	}
	pdf.EndLayer()

	if config.tooManyEncodingErrors(failed, words) {
		return fmt.Errorf("character encoding issues in %d of %d words", failed, words)
	}
	return nil
}

// drawWord renders a single text box, stretching the text to the box width.
// It reports false when the text could not be encoded for the core fonts.
func drawWord(pdf *fpdf.Fpdf, tb wordmaze.TextBox, scale float64, font FontConfig, debug bool) bool {
	x, y := tb.X1*scale, tb.Y1*scale
	width := tb.Width() * scale

	encoded := true
	latin1, err := charmap.ISO8859_1.NewEncoder().String(tb.Text)
	if err != nil {
		encoded = false
		latin1 = tb.Text
	}

	if strWidth := pdf.GetStringWidth(latin1); strWidth > 0 && width > 0 {
		pdf.SetFontSize(font.Size * width / strWidth)
	}
	size, _ := pdf.GetFontSize()
	pdf.Text(x, y+size*font.Ascent, latin1)
	pdf.SetFontSize(font.Size)

	if debug {
		pdf.Rect(x, y, width, tb.Height()*scale, "D")
	}
	return encoded
}

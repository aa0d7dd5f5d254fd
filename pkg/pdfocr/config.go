package pdfocr

import (
	"fmt"
	"io"
)

// OCRConfig controls how Render and Overlay draw the text layer
type OCRConfig struct {
	LayerName string     // Layers are named "<LayerName> (Page N)"
	StartPage int        // 1-based index of the first WordMaze page to draw
	Scale     float64    // PDF points per page unit, e.g. 72/300 for 300 dpi hOCR (0 = 1)
	Font      FontConfig // Font the invisible text is set in

	// Share of a page's text boxes allowed to fail ISO-8859-1 encoding
	// before drawing the page is an error
	MaxEncodingErrors float64

	Debug   bool // Show the text in red, framed by its box
	Force   bool // Overlay only: draw even if the input already has the layer
	DumpPDF bool // Overlay only: dump the head of the input PDF before drawing

	LogWarnings bool      // Report layers, skipped figures and forced redraws
	Logger      io.Writer // Where reports go (nil = stdout)
}

// FontConfig describes the core font used for the text layer
type FontConfig struct {
	Name   string  // Core font family, e.g. "Helvetica"
	Style  string  // "", "B", "I" or "BI"
	Size   float64 // Size in points before a word is stretched to its box
	Ascent float64 // Height of the baseline below the box top, as a share of the font size
}

// DefaultFont is Helvetica, whose metrics every PDF reader has built in
var DefaultFont = FontConfig{Name: "Helvetica", Size: 10, Ascent: 0.718}

// DefaultConfig returns the settings for an invisible layer drawn from the
// first page at one point per page unit
func DefaultConfig() OCRConfig {
	return OCRConfig{
		LayerName:         "OCR Text",
		StartPage:         1,
		Scale:             1,
		Font:              DefaultFont,
		MaxEncodingErrors: 0.1,
		LogWarnings:       true,
	}
}

func (c OCRConfig) scale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

// tooManyEncodingErrors reports whether failed out of words exceeds MaxEncodingErrors
func (c OCRConfig) tooManyEncodingErrors(failed, words int) bool {
	return words > 0 && float64(failed) > c.MaxEncodingErrors*float64(words)
}

func (c OCRConfig) validate(pages int) error {
	if c.StartPage < 1 {
		return fmt.Errorf("start page must be at least 1, got %d", c.StartPage)
	}
	if c.StartPage > pages {
		return fmt.Errorf("start page %d is beyond the last page (%d)", c.StartPage, pages)
	}
	if c.Font.Name == "" {
		return fmt.Errorf("no font configured")
	}
	return nil
}

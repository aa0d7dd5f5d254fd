package hocr

// HOCR is a parsed hOCR document
type HOCR struct {
	Title       string            // Document title
	Description string            // Document description
	Language    string            // Document language
	Metadata    map[string]string // ocr-system, ocr-capabilities and similar meta tags
	Pages       []Page            // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string      // Unique identifier
	Title      string      // Original title attribute
	PageNumber int         // ppageno property
	ImageName  string      // Source image filename
	Lang       string      // Language code for this page
	BBox       BoundingBox // Page extent, origin at the top left corner
	Areas      []Area      // Content areas (columns)
	Paragraphs []Paragraph // Paragraphs directly under page
	Lines      []Line      // Lines directly under page (no parent)
	Floats     []Float     // Photos, images and tables
}

// Class assign 'ocr_page' to 'Page' struct
func (Page) Class() string { return "ocr_page" }

// Area is a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	ID         string
	Lang       string
	BBox       BoundingBox
	Paragraphs []Paragraph
	Lines      []Line // Lines directly under area
	Words      []Word // Words directly under area (no line parent)
}

// Class assign 'ocr_carea' to 'Area' struct
func (Area) Class() string { return "ocr_carea" }

// Paragraph is a paragraph within an area
// Corresponds to hOCR element with class: 'ocr_par'
type Paragraph struct {
	ID    string
	Lang  string
	BBox  BoundingBox
	Lines []Line
	Words []Word // Words directly under paragraph (no line parent)
}

// Class assign 'ocr_par' to 'Paragraph' struct
func (Paragraph) Class() string { return "ocr_par" }

// Line is a line of text
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	ID       string
	Lang     string
	BBox     BoundingBox
	Baseline string
	Words    []Word
}

// Class assign 'ocr_line' to 'Line' struct
func (Line) Class() string { return "ocr_line" }

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string
	Text       string
	BBox       BoundingBox
	Confidence float64 // x_wconf, 0 to 100
	Lang       string
}

// Class assign 'ocrx_word' to 'Word' struct
func (Word) Class() string { return "ocrx_word" }

// FloatKind tells which kind of floating element a Float is
type FloatKind string

const (
	FloatPhoto FloatKind = "ocr_photo"
	FloatImage FloatKind = "ocr_image"
	FloatTable FloatKind = "ocr_table"
)

// Float is an element outside the text flow: a photo, an image or a table.
// Corresponds to hOCR elements with class 'ocr_photo', 'ocr_image' or 'ocr_table'.
type Float struct {
	ID      string
	Kind    FloatKind
	BBox    BoundingBox
	Image   string   // image property, a file name or URL
	Caption *Caption // Optional 'ocr_caption' child
}

// Class returns the hOCR class of the float
func (f Float) Class() string { return string(f.Kind) }

// Caption is the caption of a float
// Corresponds to hOCR element with class: 'ocr_caption'
type Caption struct {
	ID    string
	BBox  BoundingBox
	Lines []Line
}

// Class assign 'ocr_caption' to 'Caption' struct
func (Caption) Class() string { return "ocr_caption" }

// BoundingBox is an hOCR 'bbox' property: x1, y1 is the top left corner and
// x2, y2 the bottom right one
type BoundingBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// NewBoundingBox creates a bounding box from the values of a 'bbox' property
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// IsZero reports whether the box was never set
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

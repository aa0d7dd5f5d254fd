package wordmaze

import (
	"bytes"

	"github.com/gardar/wordmaze/pkg/record"
)

// Element is any record that can be placed on a page
type Element interface {
	record.Record
	Bounds() Box
}

// TextElement is an element carrying recognized text.
// TextBox and PageTextBox both implement it.
type TextElement interface {
	Element
	AsTextBox() TextBox
}

// Floating is an element that may carry a caption.
// FloatingElement, Table and Figure implement it.
type Floating interface {
	Element
	CaptionBox() *TextBox
}

// TextBox is a box of recognized text
type TextBox struct {
	Box
	Text       string
	Confidence float64
}

// NewTextBox builds a text box with validated geometry
func NewTextBox(text string, confidence float64, opts ...BoxOption) (TextBox, error) {
	box, err := NewBox(opts...)
	if err != nil {
		return TextBox{}, err
	}
	return TextBox{Box: box, Text: text, Confidence: confidence}, nil
}

// AsTextBox returns the text box itself
func (t TextBox) AsTextBox() TextBox { return t }

func (t TextBox) TypeName() string {
	return textBoxSchema.Name()
}

func (t TextBox) Fields() []record.Field {
	return textBoxSchema.Fields(t)
}

func (t TextBox) Replace(changes map[string]any) (record.Record, error) {
	return textBoxSchema.Replace(t, changes)
}

// FloatingElement is an element placed outside the text flow, with an optional caption
type FloatingElement struct {
	Box
	Caption *TextBox
}

// CaptionBox returns the caption, or nil
func (f FloatingElement) CaptionBox() *TextBox { return f.Caption }

func (f FloatingElement) TypeName() string {
	return floatingSchema.Name()
}

func (f FloatingElement) Fields() []record.Field {
	return floatingSchema.Fields(f)
}

func (f FloatingElement) Replace(changes map[string]any) (record.Record, error) {
	return floatingSchema.Replace(f, changes)
}

// Table is a floating table region
type Table struct {
	FloatingElement
}

// NewTable builds a table with validated geometry and an optional caption
func NewTable(caption *TextBox, opts ...BoxOption) (Table, error) {
	box, err := NewBox(opts...)
	if err != nil {
		return Table{}, err
	}
	return Table{FloatingElement{Box: box, Caption: cloneTextBox(caption)}}, nil
}

func (t Table) TypeName() string {
	return tableSchema.Name()
}

func (t Table) Fields() []record.Field {
	return tableSchema.Fields(t)
}

func (t Table) Replace(changes map[string]any) (record.Record, error) {
	return tableSchema.Replace(t, changes)
}

// Figure is a floating image region
type Figure struct {
	FloatingElement
	Content   []byte
	ImageType string
}

// NewFigure builds a figure with validated geometry and an optional caption.
// When imageType is empty it is detected from content, if possible.
func NewFigure(content []byte, imageType string, caption *TextBox, opts ...BoxOption) (Figure, error) {
	box, err := NewBox(opts...)
	if err != nil {
		return Figure{}, err
	}
	if imageType == "" && len(content) > 0 {
		if detected, err := DetectImageType(content); err == nil {
			imageType = detected
		}
	}
	return Figure{
		FloatingElement: FloatingElement{Box: box, Caption: cloneTextBox(caption)},
		Content:         bytes.Clone(content),
		ImageType:       imageType,
	}, nil
}

func (f Figure) TypeName() string {
	return figureSchema.Name()
}

func (f Figure) Fields() []record.Field {
	return figureSchema.Fields(f)
}

func (f Figure) Replace(changes map[string]any) (record.Record, error) {
	return figureSchema.Replace(f, changes)
}

// PageTextBox is a text box annotated with the zero-based index of its page.
// It is produced when flattening a WordMaze.
type PageTextBox struct {
	TextBox
	Page int
}

func (p PageTextBox) TypeName() string {
	return pageTextBoxSchema.Name()
}

func (p PageTextBox) Fields() []record.Field {
	return pageTextBoxSchema.Fields(p)
}

func (p PageTextBox) Replace(changes map[string]any) (record.Record, error) {
	return pageTextBoxSchema.Replace(p, changes)
}

func cloneTextBox(t *TextBox) *TextBox {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

var textBoxSchema = record.Extend("TextBox", boxSchema,
	func(t TextBox) Box { return t.Box },
	func(t TextBox, b Box) TextBox { t.Box = b; return t },
	record.Value("text", func(t TextBox) string { return t.Text }, func(t *TextBox, v string) { t.Text = v }),
	record.Float("confidence", func(t TextBox) float64 { return t.Confidence }, func(t *TextBox, v float64) { t.Confidence = v }),
).Normalize(func(t TextBox) (TextBox, error) {
	t.Box = t.Box.normalized()
	return t, nil
})

var floatingSchema = record.Extend("FloatingElement", boxSchema,
	func(f FloatingElement) Box { return f.Box },
	func(f FloatingElement, b Box) FloatingElement { f.Box = b; return f },
	record.Nested("caption", func(f FloatingElement) *TextBox { return f.Caption }, func(f *FloatingElement, v *TextBox) { f.Caption = v }),
).Normalize(func(f FloatingElement) (FloatingElement, error) {
	f.Box = f.Box.normalized()
	return f, nil
})

var tableSchema = record.Extend("Table", floatingSchema,
	func(t Table) FloatingElement { return t.FloatingElement },
	func(t Table, f FloatingElement) Table { t.FloatingElement = f; return t },
).Normalize(func(t Table) (Table, error) {
	t.Box = t.Box.normalized()
	return t, nil
})

var figureSchema = record.Extend("Figure", floatingSchema,
	func(f Figure) FloatingElement { return f.FloatingElement },
	func(f Figure, fe FloatingElement) Figure { f.FloatingElement = fe; return f },
	record.Bytes("content", func(f Figure) []byte { return f.Content }, func(f *Figure, v []byte) { f.Content = v }),
	record.Value("image_type", func(f Figure) string { return f.ImageType }, func(f *Figure, v string) { f.ImageType = v }),
).Normalize(func(f Figure) (Figure, error) {
	f.Box = f.Box.normalized()
	return f, nil
})

var pageTextBoxSchema = record.Extend("PageTextBox", textBoxSchema,
	func(p PageTextBox) TextBox { return p.TextBox },
	func(p PageTextBox, t TextBox) PageTextBox { p.TextBox = t; return p },
	record.Value("page", func(p PageTextBox) int { return p.Page }, func(p *PageTextBox, v int) { p.Page = v }),
).Normalize(func(p PageTextBox) (PageTextBox, error) {
	p.Box = p.Box.normalized()
	return p, nil
})

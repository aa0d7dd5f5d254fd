package hocr

import (
	"iter"
	"strings"
)

// AllLines iterates over every line of the page: lines of areas, then of
// paragraphs, then lines directly under the page. Words found directly under
// an area or a paragraph are yielded together as one line bounded by their
// union.
func (p Page) AllLines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, area := range p.Areas {
			if !yieldArea(area, yield) {
				return
			}
		}
		for _, par := range p.Paragraphs {
			if !yieldParagraph(par, yield) {
				return
			}
		}
		for _, line := range p.Lines {
			if !yield(line) {
				return
			}
		}
	}
}

// Words iterates over every word of the page, in AllLines order
func (p Page) Words() iter.Seq[Word] {
	return func(yield func(Word) bool) {
		for line := range p.AllLines() {
			for _, word := range line.Words {
				if !yield(word) {
					return
				}
			}
		}
	}
}

func yieldArea(area Area, yield func(Line) bool) bool {
	for _, par := range area.Paragraphs {
		if !yieldParagraph(par, yield) {
			return false
		}
	}
	for _, line := range area.Lines {
		if !yield(line) {
			return false
		}
	}
	if len(area.Words) > 0 {
		return yield(looseLine(area.Words))
	}
	return true
}

func yieldParagraph(par Paragraph, yield func(Line) bool) bool {
	for _, line := range par.Lines {
		if !yield(line) {
			return false
		}
	}
	if len(par.Words) > 0 {
		return yield(looseLine(par.Words))
	}
	return true
}

func looseLine(words []Word) Line {
	line := Line{Words: words}
	for i, w := range words {
		if i == 0 {
			line.BBox = w.BBox
			continue
		}
		line.BBox = union(line.BBox, w.BBox)
	}
	return line
}

func union(a, b BoundingBox) BoundingBox {
	return BoundingBox{
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
		X2: max(a.X2, b.X2),
		Y2: max(a.Y2, b.Y2),
	}
}

// LineText joins the words of a line with single spaces
func LineText(line Line) string {
	texts := make([]string, 0, len(line.Words))
	for _, w := range line.Words {
		if w.Text != "" {
			texts = append(texts, w.Text)
		}
	}
	return strings.Join(texts, " ")
}

// ExtractHOCRText extracts all text from an HOCR document
// The text is ordered by page, with lines separated by newlines
// and pages separated by double newlines
func ExtractHOCRText(hocrDoc *HOCR) string {
	var builder strings.Builder

	for i, page := range hocrDoc.Pages {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		first := true
		for line := range page.AllLines() {
			text := LineText(line)
			if text == "" {
				continue
			}
			if !first {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
			first = false
		}
	}

	return builder.String()
}

package wordmaze

import (
	"fmt"
	"iter"
	"strings"

	"github.com/gardar/wordmaze/pkg/record"
)

// Page is an ordered sequence of elements laid out on a page of a given shape.
// Element coordinates are relative to Shape and measured from Origin.
type Page struct {
	record.Sequence[Element]
	Shape  Shape
	Origin Origin
}

// NewPage creates a page holding a copy of elements
func NewPage(shape Shape, origin Origin, elements ...Element) *Page {
	p := &Page{Shape: shape, Origin: origin}
	p.Replace(elements)
	return p
}

// TextBoxes iterates over the text elements of the page, TextBox and PageTextBox alike
func (p *Page) TextBoxes() iter.Seq[TextElement] {
	return record.OfType[TextElement](&p.Sequence)
}

// Figures iterates over the figures of the page
func (p *Page) Figures() iter.Seq[Figure] {
	return record.OfType[Figure](&p.Sequence)
}

// Tables iterates over the tables of the page
func (p *Page) Tables() iter.Seq[Table] {
	return record.OfType[Table](&p.Sequence)
}

// Map returns a new page with m applied to every element
func (p *Page) Map(m record.Mapper[Element]) (*Page, error) {
	seq, err := p.Sequence.Map(m)
	if err != nil {
		return nil, err
	}
	out := *p
	out.Sequence = *seq
	return &out, nil
}

// Filter returns a new page with the elements satisfying pred
func (p *Page) Filter(pred record.Predicate[Element]) (*Page, error) {
	seq, err := p.Sequence.Filter(pred)
	if err != nil {
		return nil, err
	}
	out := *p
	out.Sequence = *seq
	return &out, nil
}

// Rebase returns the page with its coordinates measured from origin.
//
// Rebasing to the current origin returns p itself. Between TopLeft and
// BottomLeft every y edge is mirrored about the page height, captions
// included; any other pair fails with a *RebaseError.
//
// Rebasing there and back restores the coordinates exactly only when they and
// the page height are integer-valued; otherwise float64 rounding may move them
// by an ulp.
func (p *Page) Rebase(origin Origin) (*Page, error) {
	if origin == p.Origin {
		return p, nil
	}
	if !flippable(p.Origin, origin) {
		return nil, &RebaseError{From: p.Origin, To: origin}
	}

	height := p.Shape.Height
	m, err := record.MapRecord(func(e Element) (Element, error) {
		return flipY(e, height)
	})
	if err != nil {
		return nil, err
	}
	out, err := p.Map(m)
	if err != nil {
		return nil, fmt.Errorf("rebase from %s to %s: %w", p.Origin, origin, err)
	}
	out.Origin = origin
	return out, nil
}

func flippable(from, to Origin) bool {
	return (from == TopLeft && to == BottomLeft) || (from == BottomLeft && to == TopLeft)
}

func flipY(e Element, height float64) (Element, error) {
	b := e.Bounds()
	changes := map[string]any{
		"y1": height - b.Y2,
		"y2": height - b.Y1,
	}
	if f, ok := e.(Floating); ok {
		if caption := f.CaptionBox(); caption != nil {
			flipped, err := flipY(*caption, height)
			if err != nil {
				return nil, err
			}
			changes["caption"] = flipped
		}
	}

	r, err := e.Replace(changes)
	if err != nil {
		return nil, err
	}
	out, ok := r.(Element)
	if !ok {
		return nil, fmt.Errorf("%w: %s replaced into %T", record.ErrRecordType, e.TypeName(), r)
	}
	return out, nil
}

// Equal reports whether two pages have the same shape, origin and elements
func (p *Page) Equal(other *Page) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Shape != other.Shape || p.Origin != other.Origin || p.Len() != other.Len() {
		return false
	}
	for i, e := range p.All() {
		if !record.Equal(e, other.At(i)) {
			return false
		}
	}
	return true
}

func (p *Page) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Page(shape=%+v, origin=%s, [", p.Shape, p.Origin)
	for i, e := range p.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s%+v", e.TypeName(), e)
	}
	sb.WriteString("])")
	return sb.String()
}

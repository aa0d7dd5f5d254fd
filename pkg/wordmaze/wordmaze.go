package wordmaze

import (
	"fmt"
	"iter"

	"github.com/gardar/wordmaze/pkg/record"
	"github.com/gardar/wordmaze/pkg/sequence"
)

// WordMaze is an ordered sequence of pages
type WordMaze struct {
	sequence.Sequence[*Page]
}

// New creates a WordMaze from pages
func New(pages ...*Page) *WordMaze {
	w := &WordMaze{}
	w.Replace(pages)
	return w
}

// Shapes returns the shape of every page, in page order
func (w *WordMaze) Shapes() []Shape {
	shapes := make([]Shape, 0, w.Len())
	for page := range w.Values() {
		shapes = append(shapes, page.Shape)
	}
	return shapes
}

// TextBoxes iterates over the text elements of every page, in page order and
// then element order, each annotated with the zero-based index of its page.
// Figures, tables and plain boxes are skipped.
func (w *WordMaze) TextBoxes() iter.Seq[PageTextBox] {
	return func(yield func(PageTextBox) bool) {
		for i, page := range w.All() {
			for tb := range page.TextBoxes() {
				if !yield(PageTextBox{TextBox: tb.AsTextBox(), Page: i}) {
					return
				}
			}
		}
	}
}

// Tuples iterates over the flattened values of TextBoxes
func (w *WordMaze) Tuples() iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for tb := range w.TextBoxes() {
			if !yield(record.AsTuple(tb, true)) {
				return
			}
		}
	}
}

// Dicts iterates over the flattened fields of TextBoxes
func (w *WordMaze) Dicts() iter.Seq[map[string]any] {
	return func(yield func(map[string]any) bool) {
		for tb := range w.TextBoxes() {
			if !yield(record.AsDict(tb, true)) {
				return
			}
		}
	}
}

// Map returns a new WordMaze with m applied to the elements of every page
func (w *WordMaze) Map(m record.Mapper[Element]) (*WordMaze, error) {
	return w.eachPage(func(p *Page) (*Page, error) { return p.Map(m) })
}

// Filter returns a new WordMaze whose pages keep the elements satisfying pred.
// Pages are never removed, even when left empty.
func (w *WordMaze) Filter(pred record.Predicate[Element]) (*WordMaze, error) {
	return w.eachPage(func(p *Page) (*Page, error) { return p.Filter(pred) })
}

// Rebase returns a new WordMaze with every page rebased to origin
func (w *WordMaze) Rebase(origin Origin) (*WordMaze, error) {
	return w.eachPage(func(p *Page) (*Page, error) { return p.Rebase(origin) })
}

func (w *WordMaze) eachPage(fn func(*Page) (*Page, error)) (*WordMaze, error) {
	pages := make([]*Page, 0, w.Len())
	for i, page := range w.All() {
		out, err := fn(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, out)
	}
	out := *w
	out.Replace(pages)
	return &out, nil
}

package wordmaze

import (
	"fmt"

	"github.com/gardar/wordmaze/pkg/record"
)

// Box is an axis-aligned rectangle with X1 <= X2 and Y1 <= Y2
type Box struct {
	X1 float64 // Left edge
	X2 float64 // Right edge
	Y1 float64 // Edge nearest the page origin
	Y2 float64 // Edge farthest from the page origin
}

// BoxOption sets one edge or size of a box under construction
type BoxOption func(*boxSpec)

type boxSpec struct {
	x1, x2, width  *float64
	y1, y2, height *float64
}

// X1 sets the left edge
func X1(v float64) BoxOption { return func(s *boxSpec) { s.x1 = &v } }

// X2 sets the right edge
func X2(v float64) BoxOption { return func(s *boxSpec) { s.x2 = &v } }

// Y1 sets the lower y edge
func Y1(v float64) BoxOption { return func(s *boxSpec) { s.y1 = &v } }

// Y2 sets the upper y edge
func Y2(v float64) BoxOption { return func(s *boxSpec) { s.y2 = &v } }

// Width sets the horizontal size
func Width(v float64) BoxOption { return func(s *boxSpec) { s.width = &v } }

// Height sets the vertical size
func Height(v float64) BoxOption { return func(s *boxSpec) { s.height = &v } }

// Edges sets all four edges at once
func Edges(x1, x2, y1, y2 float64) BoxOption {
	return func(s *boxSpec) {
		s.x1, s.x2, s.y1, s.y2 = &x1, &x2, &y1, &y2
	}
}

// NewBox builds a box from edges and sizes.
//
// On each axis exactly one of the three describing values must be left unset:
// one of x1, x2, width and one of y1, y2, height. A missing edge is derived from
// the other edge and the size. Edges given in the wrong order are swapped.
// Negative sizes are rejected.
func NewBox(opts ...BoxOption) (Box, error) {
	var spec boxSpec
	for _, opt := range opts {
		opt(&spec)
	}

	x1, x2, err := resolveAxis(spec.x1, spec.x2, spec.width, "x1", "x2", "width")
	if err != nil {
		return Box{}, err
	}
	y1, y2, err := resolveAxis(spec.y1, spec.y2, spec.height, "y1", "y2", "height")
	if err != nil {
		return Box{}, err
	}
	return Box{X1: x1, X2: x2, Y1: y1, Y2: y2}, nil
}

func resolveAxis(lo, hi, size *float64, loName, hiName, sizeName string) (float64, float64, error) {
	unset := 0
	for _, v := range []*float64{lo, hi, size} {
		if v == nil {
			unset++
		}
	}
	if unset != 1 {
		return 0, 0, fmt.Errorf("%w: exactly one of *%s*, *%s*, *%s* must be unset",
			ErrGeometry, loName, hiName, sizeName)
	}
	if size != nil && *size < 0 {
		return 0, 0, fmt.Errorf("%w: *%s* must be unset or >= 0, got %v",
			ErrGeometry, sizeName, *size)
	}

	switch {
	case lo == nil:
		return *hi - *size, *hi, nil
	case hi == nil:
		return *lo, *lo + *size, nil
	case *lo > *hi:
		return *hi, *lo, nil
	default:
		return *lo, *hi, nil
	}
}

// Width returns X2 - X1
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height returns Y2 - Y1
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// XMid returns the horizontal center
func (b Box) XMid() float64 { return (b.X1 + b.X2) / 2 }

// YMid returns the vertical center
func (b Box) YMid() float64 { return (b.Y1 + b.Y2) / 2 }

// Bounds returns the box itself
func (b Box) Bounds() Box { return b }

func (b Box) TypeName() string {
	return boxSchema.Name()
}

func (b Box) Fields() []record.Field {
	return boxSchema.Fields(b)
}

// Replace returns a copy of the box with fields replaced; swapped edges are reordered
func (b Box) Replace(changes map[string]any) (record.Record, error) {
	return boxSchema.Replace(b, changes)
}

// normalized swaps edges given in the wrong order
func (b Box) normalized() Box {
	if b.X1 > b.X2 {
		b.X1, b.X2 = b.X2, b.X1
	}
	if b.Y1 > b.Y2 {
		b.Y1, b.Y2 = b.Y2, b.Y1
	}
	return b
}

var boxSchema = record.NewSchema("Box",
	record.Float("x1", func(b Box) float64 { return b.X1 }, func(b *Box, v float64) { b.X1 = v }),
	record.Float("x2", func(b Box) float64 { return b.X2 }, func(b *Box, v float64) { b.X2 = v }),
	record.Float("y1", func(b Box) float64 { return b.Y1 }, func(b *Box, v float64) { b.Y1 = v }),
	record.Float("y2", func(b Box) float64 { return b.Y2 }, func(b *Box, v float64) { b.Y2 = v }),
).Normalize(func(b Box) (Box, error) { return b.normalized(), nil })

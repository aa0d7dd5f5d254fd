package wordmaze

import (
	"fmt"
	"strings"
)

// Shape is the extent of a page, in the unit its element coordinates use
type Shape struct {
	Height float64
	Width  float64
}

// Origin is the page corner that y coordinates are measured from
type Origin int

const (
	TopLeft Origin = iota
	BottomLeft
)

func (o Origin) String() string {
	switch o {
	case TopLeft:
		return "TOP_LEFT"
	case BottomLeft:
		return "BOTTOM_LEFT"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// ParseOrigin accepts TOP_LEFT and BOTTOM_LEFT in any case, with '_' or '-'
func ParseOrigin(s string) (Origin, error) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_") {
	case "TOP_LEFT":
		return TopLeft, nil
	case "BOTTOM_LEFT":
		return BottomLeft, nil
	}
	return 0, fmt.Errorf("unknown origin %q", s)
}

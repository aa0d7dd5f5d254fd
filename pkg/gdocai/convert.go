package gdocai

import (
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/gardar/wordmaze/pkg/wordmaze"
)

// Level selects which layout elements become text boxes
type Level int

const (
	LevelToken Level = iota
	LevelLine
	LevelParagraph
	LevelBlock
)

func (l Level) String() string {
	switch l {
	case LevelToken:
		return "token"
	case LevelLine:
		return "line"
	case LevelParagraph:
		return "paragraph"
	case LevelBlock:
		return "block"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel accepts token, line, paragraph and block
func ParseLevel(s string) (Level, error) {
	for l := LevelToken; l <= LevelBlock; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// Config holds settings for converting Document AI results
type Config struct {
	Level            Level     // Layout elements that become text boxes
	IncludeTables    bool      // Add a Table for every detected table
	IncludePageImage bool      // Add the page image as a Figure covering the page
	Logger           io.Writer // Warnings about skipped elements (nil = discard)
}

// DefaultConfig returns a config converting tokens and tables
func DefaultConfig() Config {
	return Config{
		Level:         LevelToken,
		IncludeTables: true,
	}
}

// ToWordMaze converts a Document AI document into a WordMaze.
//
// Each page becomes a Page with the TopLeft origin, shaped after the page
// dimension. Layout elements at cfg.Level become TextBoxes whose text comes
// from their text anchors and whose confidence is the layout confidence.
// Elements without a usable bounding polygon are skipped with a warning.
func ToWordMaze(doc *documentaipb.Document, cfg Config) (*wordmaze.WordMaze, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if len(doc.GetPages()) == 0 {
		return nil, fmt.Errorf("document contains no pages")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = io.Discard
	}

	text := []rune(doc.GetText())
	maze := wordmaze.New()
	for i, page := range doc.GetPages() {
		p, err := convertPage(page, text, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		maze.Append(p)
	}
	return maze, nil
}

func convertPage(page *documentaipb.Document_Page, text []rune, cfg Config, logger io.Writer) (*wordmaze.Page, error) {
	dim := page.GetDimension()
	if dim == nil || dim.Width <= 0 || dim.Height <= 0 {
		return nil, fmt.Errorf("page %d has no dimension", page.GetPageNumber())
	}
	shape := wordmaze.Shape{Height: float64(dim.Height), Width: float64(dim.Width)}

	var elements []wordmaze.Element
	for i, layout := range layouts(page, cfg.Level) {
		x1, x2, y1, y2, ok := polyBounds(layout.GetBoundingPoly(), dim)
		if !ok {
			fmt.Fprintf(logger, "Warning: skipping %s %d on page %d without bounding polygon\n",
				cfg.Level, i, page.GetPageNumber())
			continue
		}
		tb, err := wordmaze.NewTextBox(
			cleanText(textFromLayout(layout, text)),
			float64(layout.GetConfidence()),
			wordmaze.Edges(x1, x2, y1, y2),
		)
		if err != nil {
			return nil, err
		}
		elements = append(elements, tb)
	}

	if cfg.IncludeTables {
		for i, table := range page.GetTables() {
			x1, x2, y1, y2, ok := polyBounds(table.GetLayout().GetBoundingPoly(), dim)
			if !ok {
				fmt.Fprintf(logger, "Warning: skipping table %d on page %d without bounding polygon\n",
					i, page.GetPageNumber())
				continue
			}
			t, err := wordmaze.NewTable(nil, wordmaze.Edges(x1, x2, y1, y2))
			if err != nil {
				return nil, err
			}
			elements = append(elements, t)
		}
	}

	if cfg.IncludePageImage {
		content, err := ExtractImageFromPage(page)
		if err != nil {
			fmt.Fprintf(logger, "Warning: page %d: %v\n", page.GetPageNumber(), err)
		} else {
			fig, err := wordmaze.NewFigure(content, imageType(page.GetImage().GetMimeType()), nil,
				wordmaze.Edges(0, shape.Width, 0, shape.Height))
			if err != nil {
				return nil, err
			}
			elements = append(elements, fig)
		}
	}

	return wordmaze.NewPage(shape, wordmaze.TopLeft, elements...), nil
}

// layouts returns the layouts of the page elements at level, in document order
func layouts(page *documentaipb.Document_Page, level Level) []*documentaipb.Document_Page_Layout {
	var out []*documentaipb.Document_Page_Layout
	switch level {
	case LevelLine:
		for _, l := range page.GetLines() {
			out = append(out, l.GetLayout())
		}
	case LevelParagraph:
		for _, p := range page.GetParagraphs() {
			out = append(out, p.GetLayout())
		}
	case LevelBlock:
		for _, b := range page.GetBlocks() {
			out = append(out, b.GetLayout())
		}
	default:
		for _, t := range page.GetTokens() {
			out = append(out, t.GetLayout())
		}
	}
	return out
}

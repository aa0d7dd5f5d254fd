package hocr

import (
	"fmt"
	"io"
	"strings"

	"github.com/gardar/wordmaze/pkg/wordmaze"
)

// Options holds settings for converting hOCR into a WordMaze
type Options struct {
	Logger    io.Writer                         // Warnings about skipped elements (nil = discard)
	LoadImage func(name string) ([]byte, error) // Loads the image of a photo float (nil = no content)
}

// DefaultOptions returns options that drop warnings and image content
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() io.Writer {
	if o.Logger == nil {
		return io.Discard
	}
	return o.Logger
}

// ToWordMaze converts a parsed hOCR document into a WordMaze.
//
// Every ocr_page becomes a Page with the TopLeft origin, shaped after its bbox.
// Coordinates are made relative to the page bbox. Words become TextBoxes with
// their x_wconf scaled to the 0-1 range, photos and images become Figures, and
// tables become Tables. Words without a bbox are skipped with a warning.
func ToWordMaze(doc *HOCR, opts Options) (*wordmaze.WordMaze, error) {
	if doc == nil {
		return nil, fmt.Errorf("HOCR struct is nil")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("HOCR data contains no pages")
	}

	logger := opts.logger()
	maze := wordmaze.New()
	for i, page := range doc.Pages {
		p, err := convertPage(page, opts, logger)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		maze.Append(p)
	}
	return maze, nil
}

func convertPage(page Page, opts Options, logger io.Writer) (*wordmaze.Page, error) {
	if page.BBox.IsZero() {
		return nil, fmt.Errorf("page %q has no bbox", page.ID)
	}
	origin := page.BBox
	shape := wordmaze.Shape{
		Height: origin.Y2 - origin.Y1,
		Width:  origin.X2 - origin.X1,
	}

	var elements []wordmaze.Element
	for word := range page.Words() {
		if word.BBox.IsZero() {
			fmt.Fprintf(logger, "Warning: skipping word %q (%s) without bbox\n", word.Text, word.ID)
			continue
		}
		tb, err := wordmaze.NewTextBox(word.Text, word.Confidence/100, edges(word.BBox, origin))
		if err != nil {
			return nil, fmt.Errorf("word %s: %w", word.ID, err)
		}
		elements = append(elements, tb)
	}

	for _, float := range page.Floats {
		if float.BBox.IsZero() {
			fmt.Fprintf(logger, "Warning: skipping %s %s without bbox\n", float.Kind, float.ID)
			continue
		}
		el, err := convertFloat(float, origin, opts, logger)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", float.Kind, float.ID, err)
		}
		elements = append(elements, el)
	}

	return wordmaze.NewPage(shape, wordmaze.TopLeft, elements...), nil
}

func convertFloat(float Float, origin BoundingBox, opts Options, logger io.Writer) (wordmaze.Element, error) {
	caption := convertCaption(float.Caption, origin)

	if float.Kind == FloatTable {
		return wordmaze.NewTable(caption, edges(float.BBox, origin))
	}

	var content []byte
	if float.Image != "" && opts.LoadImage != nil {
		data, err := opts.LoadImage(float.Image)
		if err != nil {
			fmt.Fprintf(logger, "Warning: failed to load image %q: %v\n", float.Image, err)
		} else {
			content = data
		}
	}
	return wordmaze.NewFigure(content, "", caption, edges(float.BBox, origin))
}

func convertCaption(caption *Caption, origin BoundingBox) *wordmaze.TextBox {
	if caption == nil {
		return nil
	}

	var texts []string
	var total float64
	var words int
	bbox := caption.BBox
	for _, line := range caption.Lines {
		if text := LineText(line); text != "" {
			texts = append(texts, text)
		}
		for _, w := range line.Words {
			total += w.Confidence
			words++
		}
		if bbox.IsZero() {
			bbox = line.BBox
		} else if !line.BBox.IsZero() {
			bbox = union(bbox, line.BBox)
		}
	}

	tb := wordmaze.TextBox{
		Box:  relative(bbox, origin),
		Text: strings.Join(texts, " "),
	}
	if words > 0 {
		tb.Confidence = total / float64(words) / 100
	}
	return &tb
}

// edges returns the box option placing bbox relative to the page origin
func edges(bbox, origin BoundingBox) wordmaze.BoxOption {
	b := relative(bbox, origin)
	return wordmaze.Edges(b.X1, b.X2, b.Y1, b.Y2)
}

func relative(bbox, origin BoundingBox) wordmaze.Box {
	b := wordmaze.Box{
		X1: bbox.X1 - origin.X1,
		X2: bbox.X2 - origin.X1,
		Y1: bbox.Y1 - origin.Y1,
		Y2: bbox.Y2 - origin.Y1,
	}
	if b.X1 > b.X2 {
		b.X1, b.X2 = b.X2, b.X1
	}
	if b.Y1 > b.Y2 {
		b.Y1, b.Y2 = b.Y2, b.Y1
	}
	return b
}

// FromWordMaze builds an hOCR document from a WordMaze.
//
// Pages are rebased to the TopLeft origin first. Every text element becomes an
// ocr_line holding a single word, figures become ocr_image floats and tables
// ocr_table floats, each with its caption. Plain boxes have no hOCR
// counterpart and are left out.
func FromWordMaze(maze *wordmaze.WordMaze) (*HOCR, error) {
	if maze == nil {
		return nil, fmt.Errorf("WordMaze is nil")
	}
	rebased, err := maze.Rebase(wordmaze.TopLeft)
	if err != nil {
		return nil, fmt.Errorf("failed to rebase pages: %w", err)
	}

	doc := &HOCR{
		Metadata: map[string]string{
			"ocr-system":          "wordmaze",
			"ocr-capabilities":    "ocr_page ocr_line ocrx_word ocr_image ocr_table ocr_caption",
			"ocr-number-of-pages": fmt.Sprint(rebased.Len()),
		},
	}

	for i, page := range rebased.All() {
		n := i + 1
		p := Page{
			ID:         fmt.Sprintf("page_%d", n),
			PageNumber: i,
			BBox:       NewBoundingBox(0, 0, page.Shape.Width, page.Shape.Height),
		}

		var lines, floats int
		for el := range page.Values() {
			switch e := el.(type) {
			case wordmaze.TextElement:
				lines++
				p.Lines = append(p.Lines, textLine(e.AsTextBox(), fmt.Sprintf("%d_%d", n, lines)))
			case wordmaze.Floating:
				kind := FloatImage
				if _, ok := e.(wordmaze.Table); ok {
					kind = FloatTable
				}
				floats++
				id := fmt.Sprintf("%d_%d", n, floats)
				f := Float{ID: "float_" + id, Kind: kind, BBox: bboxOf(e.Bounds())}
				if c := e.CaptionBox(); c != nil {
					f.Caption = &Caption{
						ID:    "caption_" + id,
						BBox:  bboxOf(c.Box),
						Lines: []Line{textLine(*c, "c"+id)},
					}
				}
				p.Floats = append(p.Floats, f)
			}
		}
		doc.Pages = append(doc.Pages, p)
	}
	return doc, nil
}

func textLine(tb wordmaze.TextBox, id string) Line {
	bbox := bboxOf(tb.Box)
	return Line{
		ID:   "line_" + id,
		BBox: bbox,
		Words: []Word{{
			ID:         "word_" + id,
			Text:       tb.Text,
			BBox:       bbox,
			Confidence: tb.Confidence * 100,
		}},
	}
}

func bboxOf(b wordmaze.Box) BoundingBox {
	return NewBoundingBox(b.X1, b.Y1, b.X2, b.Y2)
}

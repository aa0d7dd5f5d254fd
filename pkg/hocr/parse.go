package hocr

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Classes that hold a single line of text. Tesseract tags headers, captions and
// text floats with their own class instead of ocr_line.
var lineClasses = []string{"ocr_line", "ocr_header", "ocr_textfloat", "ocr_caption"}

var floatClasses = []string{string(FloatPhoto), string(FloatImage), string(FloatTable)}

// ParseHOCR converts raw hOCR data into a structured HOCR object.
// Data declared as ISO-8859-1, ISO-8859-15 or windows-1252 is decoded to UTF-8.
func ParseHOCR(data []byte) (HOCR, error) {
	var result HOCR
	result.Metadata = make(map[string]string)

	decoded, err := decodeCharset(data)
	if err != nil {
		return result, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR HTML: %w", err)
	}

	extractDocumentMeta(&result, doc)

	for _, n := range collect(doc, "ocr_page") {
		result.Pages = append(result.Pages, processPage(n))
	}

	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in HOCR data")
	}
	return result, nil
}

// decodeCharset converts data to UTF-8 according to its meta charset declaration
func decodeCharset(data []byte) ([]byte, error) {
	name := declaredCharset(data)
	var enc encoding.Encoding
	switch name {
	case "", "utf-8", "utf8":
		return data, nil
	case "iso-8859-1", "latin1", "latin-1":
		enc = charmap.ISO8859_1
	case "iso-8859-15", "latin-9":
		enc = charmap.ISO8859_15
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported charset %q", name)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return decoded, nil
}

func declaredCharset(data []byte) string {
	const key = "charset="
	i := bytes.Index(bytes.ToLower(data), []byte(key))
	if i < 0 {
		return ""
	}
	rest := bytes.TrimLeft(data[i+len(key):], "\"' ")
	end := bytes.IndexAny(rest, "\"';> \t\r\n/")
	if end < 0 {
		end = len(rest)
	}
	return strings.ToLower(string(rest[:end]))
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns nil if the title has no complete, numeric bbox property
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		v[i] = f
	}
	result := NewBoundingBox(v[0], v[1], v[2], v[3])
	return &result
}

// extractDocumentMeta extracts document-level metadata from the head section
func extractDocumentMeta(result *HOCR, doc *html.Node) {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "html" {
			if lang := getAttrVal(c, "lang"); lang != "" {
				result.Language = lang
			} else if lang := getAttrVal(c, "xml:lang"); lang != "" {
				result.Language = lang
			}
		}
	}

	head := findElement(doc, "head")
	if head == nil {
		return
	}

	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "title":
			if c.FirstChild != nil {
				result.Title = c.FirstChild.Data
			}
		case "meta":
			name, content := getAttrVal(c, "name"), getAttrVal(c, "content")
			if name == "" || content == "" {
				continue
			}
			switch name {
			case "ocr-system", "ocr-capabilities", "ocr-number-of-pages", "ocr-langs":
				result.Metadata[name] = content
			case "description":
				result.Description = content
			case "dc.language":
				result.Language = content
			}
		}
	}
}

// processPage extracts page information and its children
func processPage(n *html.Node) Page {
	page := Page{
		ID:    getAttrVal(n, "id"),
		Lang:  getAttrVal(n, "lang"),
		Title: getAttrVal(n, "title"),
	}
	if bbox := ParseBoundingBoxFromTitle(page.Title); bbox != nil {
		page.BBox = *bbox
	}
	props := ParseTitle(page.Title)
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(strings.Join(image, " "), "\"")
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		page.PageNumber, _ = strconv.Atoi(ppageno[0])
	}

	classes := slices.Concat([]string{"ocr_carea", "ocr_par"}, floatClasses, lineClasses)
	for _, c := range collect(n, classes...) {
		switch class := nodeClass(c, classes...); {
		case class == "ocr_carea":
			page.Areas = append(page.Areas, processArea(c))
		case class == "ocr_par":
			page.Paragraphs = append(page.Paragraphs, processParagraph(c))
		case slices.Contains(floatClasses, class):
			page.Floats = append(page.Floats, processFloat(c, FloatKind(class)))
		default:
			page.Lines = append(page.Lines, processLine(c))
		}
	}
	return page
}

// processArea extracts area information and its children (paragraphs, lines, words)
func processArea(n *html.Node) Area {
	area := Area{ID: getAttrVal(n, "id"), Lang: getAttrVal(n, "lang"), BBox: nodeBBox(n)}

	classes := slices.Concat([]string{"ocr_par", "ocrx_word"}, lineClasses)
	for _, c := range collect(n, classes...) {
		switch nodeClass(c, classes...) {
		case "ocr_par":
			area.Paragraphs = append(area.Paragraphs, processParagraph(c))
		case "ocrx_word":
			area.Words = append(area.Words, processWord(c))
		default:
			area.Lines = append(area.Lines, processLine(c))
		}
	}
	return area
}

// processParagraph extracts paragraph information and its children (lines, words)
func processParagraph(n *html.Node) Paragraph {
	paragraph := Paragraph{ID: getAttrVal(n, "id"), Lang: getAttrVal(n, "lang"), BBox: nodeBBox(n)}

	classes := append([]string{"ocrx_word"}, lineClasses...)
	for _, c := range collect(n, classes...) {
		if nodeClass(c, classes...) == "ocrx_word" {
			paragraph.Words = append(paragraph.Words, processWord(c))
		} else {
			paragraph.Lines = append(paragraph.Lines, processLine(c))
		}
	}
	return paragraph
}

// processLine extracts line information and its words
func processLine(n *html.Node) Line {
	line := Line{ID: getAttrVal(n, "id"), Lang: getAttrVal(n, "lang"), BBox: nodeBBox(n)}
	if baseline, ok := ParseTitle(getAttrVal(n, "title"))["baseline"]; ok {
		line.Baseline = strings.Join(baseline, " ")
	}
	for _, c := range collect(n, "ocrx_word") {
		line.Words = append(line.Words, processWord(c))
	}
	return line
}

// processWord extracts a word's text and properties
func processWord(n *html.Node) Word {
	word := Word{ID: getAttrVal(n, "id"), Lang: getAttrVal(n, "lang"), BBox: nodeBBox(n)}

	props := ParseTitle(getAttrVal(n, "title"))
	if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}
	if lang, ok := props["lang"]; ok && len(lang) > 0 {
		word.Lang = lang[0]
	}
	word.Text = extractTextContent(n)
	return word
}

// processFloat extracts a photo, image or table and its optional caption
func processFloat(n *html.Node, kind FloatKind) Float {
	float := Float{ID: getAttrVal(n, "id"), Kind: kind, BBox: nodeBBox(n)}
	if image, ok := ParseTitle(getAttrVal(n, "title"))["image"]; ok && len(image) > 0 {
		float.Image = strings.Trim(strings.Join(image, " "), "\"")
	}

	captions := collect(n, "ocr_caption")
	if len(captions) == 0 {
		return float
	}
	c := captions[0]
	caption := &Caption{ID: getAttrVal(c, "id"), BBox: nodeBBox(c)}
	for _, l := range collect(c, "ocr_line") {
		caption.Lines = append(caption.Lines, processLine(l))
	}
	if len(caption.Lines) == 0 {
		// a caption tagged as a single line holds its words directly
		caption.Lines = []Line{processLine(c)}
	}
	float.Caption = caption
	return float
}

// collect returns the outermost descendants of n carrying one of classes, in document order
func collect(n *html.Node, classes ...string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if nodeClass(c, classes...) != "" {
				found = append(found, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return found
}

// nodeClass returns the first class of n that is one of classes, or ""
func nodeClass(n *html.Node, classes ...string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, class := range strings.Fields(getAttrVal(n, "class")) {
		if slices.Contains(classes, class) {
			return class
		}
	}
	return ""
}

func nodeBBox(n *html.Node) BoundingBox {
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		return *bbox
	}
	return BoundingBox{}
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(extractTextContent(c))
	}
	return strings.TrimSpace(sb.String())
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}

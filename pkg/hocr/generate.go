package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

var hocrTemplate = template.Must(template.New("hocr.tmpl").Funcs(template.FuncMap{
	"bbox":      formatBBox,
	"num":       formatNumber,
	"pageTitle": pageTitle,
}).ParseFS(templateFS, "templates/hocr.tmpl"))

// GenerateHOCRDocument creates an hOCR HTML document from the HOCR struct
// Uses the embedded template to generate a complete HTML document
func GenerateHOCRDocument(doc *HOCR) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("HOCR struct is nil")
	}

	var buf bytes.Buffer
	if err := hocrTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return buf.String(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBBox(b BoundingBox) string {
	return fmt.Sprintf("bbox %s %s %s %s",
		formatNumber(b.X1), formatNumber(b.Y1), formatNumber(b.X2), formatNumber(b.Y2))
}

func pageTitle(p Page) string {
	parts := make([]string, 0, 3)
	if p.ImageName != "" {
		parts = append(parts, fmt.Sprintf("image %q", p.ImageName))
	}
	parts = append(parts, formatBBox(p.BBox), fmt.Sprintf("ppageno %d", p.PageNumber))
	return strings.Join(parts, "; ")
}

package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// textFromLayout extracts text from a layout's text anchor segments
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText []rune) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	var result strings.Builder
	total := int64(len(fullText))

	for _, seg := range layout.TextAnchor.TextSegments {
		start := max(seg.StartIndex, 0)
		end := min(seg.EndIndex, total)
		if start > end {
			start = end
		}
		result.WriteString(string(fullText[start:end]))
	}
	return result.String()
}

// cleanText collapses the line breaks and trailing separator Document AI
// keeps in the text of each element
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}

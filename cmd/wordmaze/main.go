// wordmaze is a command-line tool for inspecting and converting OCR results.
//
// It reads hOCR files or saved Google Document AI responses into a WordMaze,
// optionally drops low-confidence text and changes the coordinate origin, and
// then exports the text boxes, summarizes the pages or renders a searchable PDF
// text layer.
//
// Usage:
//
//	wordmaze <command> (--hocr FILE | --docai FILE) [options]
//
// Commands:
//
//	export    Print the flattened text boxes as JSON lines, hOCR or plain text
//	summary   Print a table of pages with their shapes and element counts
//	pdf       Write a PDF with an invisible OCR text layer
//
// Input options:
//
//	--hocr string            Path to an hOCR file
//	--docai string           Path to a Document AI response saved as JSON
//	--level string           Document AI layout level: token, line, paragraph, block (default token)
//	--origin string          Coordinate origin: top-left or bottom-left (default top-left)
//	--min-confidence float   Drop text boxes below this confidence (0-1)
//	--config string          YAML file with defaults for the options above
//
// Examples:
//
//	wordmaze export --hocr page.hocr --origin bottom-left --format dicts
//	wordmaze summary --docai response.json --level line
//	wordmaze pdf --hocr book.hocr --pdf book.pdf --output book_searchable.pdf
package main

func main() {
	Execute()
}

// Package gdocai converts Google Document AI results into the wordmaze record model.
//
// Document AI responses carry every recognized element (tokens, lines,
// paragraphs, blocks, tables) with a layout: a text anchor into the document
// text, a confidence and a bounding polygon in normalized or pixel
// coordinates. This package reads saved responses and turns each page into a
// wordmaze Page shaped after the page dimension, with the TopLeft origin
// Document AI uses.
//
// Main Functions:
//
// - LoadDocumentJSON: Reads a saved Document or ProcessResponse in JSON form
// - ToWordMaze: Converts a Document into a WordMaze
// - ExtractImageFromPage: Gets the rendered page image, if the response has one
// - ToJSON: Serializes protos and plain Go values as JSON
package gdocai

import (
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"
)

// LoadDocumentJSON decodes a Document AI result saved as JSON. Both a bare
// Document and a full ProcessResponse are accepted.
func LoadDocumentJSON(data []byte) (*documentaipb.Document, error) {
	opts := protojson.UnmarshalOptions{DiscardUnknown: true}

	var resp documentaipb.ProcessResponse
	if err := opts.Unmarshal(data, &resp); err == nil && resp.GetDocument() != nil {
		return resp.GetDocument(), nil
	}

	var doc documentaipb.Document
	if err := opts.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode Document AI JSON: %w", err)
	}
	if len(doc.GetPages()) == 0 {
		return nil, fmt.Errorf("Document AI JSON contains no pages")
	}
	return &doc, nil
}

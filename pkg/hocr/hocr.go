// Package hocr reads and writes hOCR, the HTML-based format for OCR results,
// and converts it to and from the wordmaze record model.
//
// This package provides:
//
// - An object model of the hOCR hierarchy, including photos, images and tables
// - Functions for parsing hOCR HTML into structured Go types
// - Functions for generating hOCR HTML from Go structures
// - Conversion between hOCR documents and WordMaze pages
//
// The package implements the hierarchical structure defined in the hOCR format:
// Document → Pages → Areas → Paragraphs → Lines → Words, with floats
// (ocr_photo, ocr_image, ocr_table) and their captions beside the text flow.
//
// Key Types:
//
// - HOCR: Top-level structure representing an entire hOCR document
// - Page: Represents a single page with class 'ocr_page'
// - Area: Represents a content area with class 'ocr_carea'
// - Paragraph: Represents a paragraph with class 'ocr_par'
// - Line: Represents a line of text with class 'ocr_line'
// - Word: Represents a single word with class 'ocrx_word'
// - Float: Represents a photo, image or table
// - BoundingBox: A 'bbox' property, measured from the top left corner
//
// Main Functions:
//
// - ParseHOCR: Parses hOCR data from HTML into the object model
// - GenerateHOCRDocument: Generates hOCR HTML from the object model
// - ToWordMaze: Converts a parsed document into a WordMaze
// - FromWordMaze: Builds a document from a WordMaze
package hocr

// Package wordmaze represents text extraction results (OCR and PDF layout
// output) as geometry-aware records.
//
// The package provides:
//
// - A record model of page elements built around a validated bounding [Box]
// - Pages that carry a physical [Shape] and a coordinate [Origin]
// - A multi-page [WordMaze] with cross-page flattened views
// - Field-level mapping and filtering through the record package
//
// The element hierarchy is:
//
//	Box
//	├── TextBox (text, confidence)
//	│   └── PageTextBox (page)
//	└── FloatingElement (caption)
//	    ├── Table
//	    └── Figure (content, image_type)
//
// Every variant embeds the fields of its parent, so a TextBox has the fields
// x1, x2, y1, y2, text and confidence in that order. Records are values: every
// transformation returns new records and new pages, never touching its input.
//
// Key Types:
//
// - Box: x1 <= x2 and y1 <= y2, with derived width, height and midpoints
// - Page: a shape, an origin and an ordered sequence of elements
// - WordMaze: an ordered sequence of pages
//
// Main Functions:
//
// - NewBox, NewTextBox, NewTable, NewFigure: validated construction
// - Page.Rebase: move a page between the top-left and bottom-left origins
// - Page.Map, Page.Filter, WordMaze.Map, WordMaze.Filter: copy-on-write transforms
// - WordMaze.TextBoxes, WordMaze.Tuples, WordMaze.Dicts: flattened views
package wordmaze

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gardar/wordmaze/pkg/gdocai"
	"github.com/gardar/wordmaze/pkg/hocr"
	"github.com/gardar/wordmaze/pkg/record"
	"github.com/gardar/wordmaze/pkg/wordmaze"
)

// loadMaze reads the selected input, drops low-confidence text and rebases the
// result to the requested origin
func loadMaze(opts inputOptions, logger io.Writer) (*wordmaze.WordMaze, error) {
	var maze *wordmaze.WordMaze
	var err error

	switch {
	case opts.hocrPath != "" && opts.docaiPath != "":
		return nil, fmt.Errorf("provide only one of --hocr and --docai")
	case opts.hocrPath != "":
		maze, err = loadHOCR(opts.hocrPath, logger)
	case opts.docaiPath != "":
		maze, err = loadDocAI(opts, logger)
	default:
		return nil, fmt.Errorf("must provide --hocr or --docai")
	}
	if err != nil {
		return nil, err
	}

	if opts.minConfidence > 0 {
		maze, err = dropUncertain(maze, opts.minConfidence)
		if err != nil {
			return nil, err
		}
	}

	origin, err := wordmaze.ParseOrigin(opts.origin)
	if err != nil {
		return nil, err
	}
	return maze.Rebase(origin)
}

func loadHOCR(path string, logger io.Writer) (*wordmaze.WordMaze, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hOCR file: %w", err)
	}
	doc, err := hocr.ParseHOCR(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR file: %w", err)
	}

	// Image paths in hOCR are relative to the hOCR file
	dir := filepath.Dir(path)
	opts := hocr.Options{
		Logger: logger,
		LoadImage: func(name string) ([]byte, error) {
			if !filepath.IsAbs(name) {
				name = filepath.Join(dir, name)
			}
			return os.ReadFile(name)
		},
	}
	return hocr.ToWordMaze(&doc, opts)
}

func loadDocAI(opts inputOptions, logger io.Writer) (*wordmaze.WordMaze, error) {
	data, err := os.ReadFile(opts.docaiPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read Document AI file: %w", err)
	}
	doc, err := gdocai.LoadDocumentJSON(data)
	if err != nil {
		return nil, err
	}

	cfg := gdocai.DefaultConfig()
	cfg.Level, err = gdocai.ParseLevel(opts.level)
	if err != nil {
		return nil, err
	}
	cfg.IncludePageImage = opts.pageImages
	cfg.Logger = logger
	return gdocai.ToWordMaze(doc, cfg)
}

// dropUncertain removes the text boxes whose confidence is below threshold.
// Figures and tables are kept.
func dropUncertain(maze *wordmaze.WordMaze, threshold float64) (*wordmaze.WordMaze, error) {
	pred, err := record.FilterTypeFields[wordmaze.Element, wordmaze.TextElement](map[string]record.FieldPredicate{
		"confidence": record.Test(func(c float64) bool { return c >= threshold }),
	})
	if err != nil {
		return nil, err
	}
	return maze.Filter(pred)
}

// warnings returns where skipped-input warnings go
func warnings(verbose bool) io.Writer {
	if verbose {
		return os.Stderr
	}
	return io.Discard
}

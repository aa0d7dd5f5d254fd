package main

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/spf13/cobra"

	"github.com/gardar/wordmaze/pkg/hocr"
	"github.com/gardar/wordmaze/pkg/wordmaze"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the text boxes of every page",
	Long: `Print the text boxes of every page, tagged with their page index.

Formats:
  tuples  one JSON array per text box: x1, x2, y1, y2, text, confidence, page
  dicts   one JSON object per text box
  hocr    an hOCR document
  text    plain text, one line per text box and a blank line between pages`,
	RunE: func(cmd *cobra.Command, args []string) error {
		maze, err := loadMaze(input, warnings(input.verbose))
		if err != nil {
			return err
		}
		return export(cmd.OutOrStdout(), maze, exportFormat)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "tuples", "Output format (tuples, dicts, hocr, text)")
	rootCmd.AddCommand(exportCmd)
}

func export(w io.Writer, maze *wordmaze.WordMaze, format string) error {
	switch format {
	case "tuples":
		return writeJSONLines(w, maze.Tuples())
	case "dicts":
		return writeJSONLines(w, maze.Dicts())
	case "hocr", "text":
		doc, err := hocr.FromWordMaze(maze)
		if err != nil {
			return err
		}
		if format == "text" {
			_, err = fmt.Fprintln(w, hocr.ExtractHOCRText(doc))
			return err
		}
		out, err := hocr.GenerateHOCRDocument(doc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unknown format %q (want tuples, dicts, hocr or text)", format)
	}
}

func writeJSONLines[T any](w io.Writer, values iter.Seq[T]) error {
	enc := json.NewEncoder(w)
	for v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

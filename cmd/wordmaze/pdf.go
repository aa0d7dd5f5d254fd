package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gardar/wordmaze/pkg/pdfocr"
	"github.com/gardar/wordmaze/pkg/wordmaze"
)

type pdfOptions struct {
	output    string
	basePDF   string
	imageDir  string
	layerName string
	startPage int
	scale     float64
	debug     bool
	force     bool
	overwrite bool
	dumpPDF   bool
}

var pdfOpts = pdfOptions{
	layerName: pdfocr.DefaultConfig().LayerName,
	startPage: 1,
	scale:     1,
}

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Write a PDF with an invisible OCR text layer",
	Long: `Write a PDF with an invisible, searchable OCR text layer.

With --pdf the layer is laid over the pages of an existing PDF. Otherwise a new
PDF is created, with the page images from --image-dir (sorted by name) or the
figures of each page beneath the text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if pdfOpts.output == "" {
			return fmt.Errorf("must provide --output")
		}
		if pdfOpts.basePDF != "" && pdfOpts.imageDir != "" {
			return fmt.Errorf("provide only one of --pdf and --image-dir")
		}
		if _, err := os.Stat(pdfOpts.output); err == nil && !pdfOpts.overwrite {
			return fmt.Errorf("output file %s already exists, use --overwrite to overwrite", pdfOpts.output)
		}

		// PDF pages are drawn from the top
		in := input
		in.origin = wordmaze.TopLeft.String()
		maze, err := loadMaze(in, warnings(in.verbose))
		if err != nil {
			return err
		}

		config := pdfocr.DefaultConfig()
		config.Debug = pdfOpts.debug
		config.Force = pdfOpts.force
		config.LayerName = pdfOpts.layerName
		config.StartPage = pdfOpts.startPage
		config.Scale = pdfOpts.scale
		config.DumpPDF = pdfOpts.dumpPDF
		config.Logger = out

		var finalPDF []byte
		if pdfOpts.basePDF != "" {
			inputData, err := os.ReadFile(pdfOpts.basePDF)
			if err != nil {
				return fmt.Errorf("failed to read input PDF: %w", err)
			}
			finalPDF, err = pdfocr.Overlay(inputData, maze, config)
			if err != nil {
				return fmt.Errorf("error applying OCR to existing PDF: %w", err)
			}
		} else {
			if pdfOpts.force {
				fmt.Fprintln(out, "Warning: --force is only applicable when --pdf is set. Ignoring --force.")
			}
			if pdfOpts.imageDir != "" {
				images, err := readImages(pdfOpts.imageDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Found %d image files in %s\n", len(images), pdfOpts.imageDir)
				maze, err = withPageImages(maze, images)
				if err != nil {
					return err
				}
			}
			finalPDF, err = pdfocr.Render(maze, config)
			if err != nil {
				return fmt.Errorf("error creating PDF: %w", err)
			}
		}

		if err := os.WriteFile(pdfOpts.output, finalPDF, 0666); err != nil {
			return fmt.Errorf("failed to write output PDF: %w", err)
		}
		fmt.Fprintln(out, "OCR-enhanced PDF created:", pdfOpts.output)
		return nil
	},
}

func init() {
	flags := pdfCmd.Flags()
	flags.StringVarP(&pdfOpts.output, "output", "o", "", "Output PDF path")
	flags.StringVar(&pdfOpts.basePDF, "pdf", "", "Existing PDF to add the OCR layer to")
	flags.StringVar(&pdfOpts.imageDir, "image-dir", "", "Directory containing one image per page")
	flags.StringVar(&pdfOpts.layerName, "layer-name", pdfOpts.layerName, "Base name of the OCR layer")
	flags.IntVar(&pdfOpts.startPage, "start-page", pdfOpts.startPage, "First page to render (1-based)")
	flags.Float64Var(&pdfOpts.scale, "scale", pdfOpts.scale, "PDF points per page unit")
	flags.BoolVar(&pdfOpts.debug, "debug", false, "Show the OCR text and its boxes in red")
	flags.BoolVar(&pdfOpts.force, "force", false, "Reapply OCR even if an OCR layer is already detected")
	flags.BoolVar(&pdfOpts.overwrite, "overwrite", false, "Overwrite the output PDF if it already exists")
	flags.BoolVar(&pdfOpts.dumpPDF, "debug-pdf", false, "Dump PDF structure for debugging")
	rootCmd.AddCommand(pdfCmd)
}

// readImages reads every file of dir in name order
func readImages(dir string) ([][]byte, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, fmt.Errorf("error accessing image directory: %w", err)
	}
	sort.Strings(paths)

	var images [][]byte
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", path, err)
		}
		images = append(images, data)
	}
	return images, nil
}

// withPageImages puts image i beneath the elements of page i, as a figure
// covering the whole page
func withPageImages(maze *wordmaze.WordMaze, images [][]byte) (*wordmaze.WordMaze, error) {
	if len(images) < maze.Len() {
		return nil, fmt.Errorf("not enough images (%d) for pages (%d)", len(images), maze.Len())
	}

	pages := make([]*wordmaze.Page, 0, maze.Len())
	for i, page := range maze.All() {
		if len(images[i]) == 0 {
			return nil, fmt.Errorf("image %d is empty", i+1)
		}
		if _, err := wordmaze.DetectImageType(images[i]); err != nil {
			return nil, fmt.Errorf("image %d has invalid format: %w", i+1, err)
		}
		fig, err := wordmaze.NewFigure(images[i], "", nil,
			wordmaze.X1(0), wordmaze.Width(page.Shape.Width),
			wordmaze.Y1(0), wordmaze.Height(page.Shape.Height))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		elements := append([]wordmaze.Element{fig}, page.Slice()...)
		pages = append(pages, wordmaze.NewPage(page.Shape, page.Origin, elements...))
	}
	return wordmaze.New(pages...), nil
}

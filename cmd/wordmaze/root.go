package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/wordmaze/internal/version"
)

// inputOptions selects and prepares the WordMaze every command works on
type inputOptions struct {
	configPath    string
	hocrPath      string
	docaiPath     string
	level         string
	origin        string
	minConfidence float64
	pageImages    bool
	verbose       bool
}

var input inputOptions

var rootCmd = &cobra.Command{
	Use:   "wordmaze",
	Short: "Inspect and convert OCR results as pages of positioned text",
	Long: `wordmaze reads OCR results (hOCR or Google Document AI JSON) into pages of
text boxes, figures and tables, and exports, summarizes or renders them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if input.configPath == "" {
			return nil
		}
		cfg, err := loadConfig(input.configPath)
		if err != nil {
			return err
		}
		applyConfig(cfg, cmd.Flags().Changed)
		return nil
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("wordmaze %s\n", version.String()))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&input.configPath, "config", "", "YAML file with default options")
	flags.StringVar(&input.hocrPath, "hocr", "", "Path to an hOCR file")
	flags.StringVar(&input.docaiPath, "docai", "", "Path to a Document AI response saved as JSON")
	flags.StringVar(&input.level, "level", "token", "Document AI layout level (token, line, paragraph, block)")
	flags.StringVar(&input.origin, "origin", "top-left", "Coordinate origin (top-left, bottom-left)")
	flags.Float64Var(&input.minConfidence, "min-confidence", 0, "Drop text boxes below this confidence (0-1)")
	flags.BoolVar(&input.pageImages, "page-images", false, "Add Document AI page images as figures")
	flags.BoolVarP(&input.verbose, "verbose", "v", false, "Print warnings about skipped input")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gardar/wordmaze/pkg/wordmaze"
)

var (
	// headerStyle for bold red column titles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160")).
			Padding(0, 1)

	// cellStyle for table cells
	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// dimStyle for muted totals
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a table of pages with their shapes and element counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		maze, err := loadMaze(input, warnings(input.verbose))
		if err != nil {
			return err
		}
		return summarize(cmd.OutOrStdout(), maze)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

// pageStats counts the elements of a page
type pageStats struct {
	textBoxes  int
	figures    int
	tables     int
	confidence float64 // mean text box confidence
}

func statsOf(page *wordmaze.Page) pageStats {
	var s pageStats
	for tb := range page.TextBoxes() {
		s.textBoxes++
		s.confidence += tb.AsTextBox().Confidence
	}
	if s.textBoxes > 0 {
		s.confidence /= float64(s.textBoxes)
	}
	for range page.Figures() {
		s.figures++
	}
	for range page.Tables() {
		s.tables++
	}
	return s
}

func summarize(w io.Writer, maze *wordmaze.WordMaze) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("160"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Page", "Width", "Height", "Origin", "Text boxes", "Figures", "Tables", "Confidence")

	var total pageStats
	for i, page := range maze.All() {
		s := statsOf(page)
		total.textBoxes += s.textBoxes
		total.figures += s.figures
		total.tables += s.tables
		t.Row(
			strconv.Itoa(i),
			formatNumber(page.Shape.Width),
			formatNumber(page.Shape.Height),
			page.Origin.String(),
			strconv.Itoa(s.textBoxes),
			strconv.Itoa(s.figures),
			strconv.Itoa(s.tables),
			strconv.FormatFloat(s.confidence, 'f', 2, 64),
		)
	}

	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d pages, %d text boxes, %d figures, %d tables",
		maze.Len(), total.textBoxes, total.figures, total.tables)))
	return err
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

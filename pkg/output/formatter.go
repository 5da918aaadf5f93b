// Package output provides formatters for displaying memory profile results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/danpilch/memprof/pkg/memquery"
	"github.com/danpilch/memprof/pkg/profiler"
)

// Format represents the output format type.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatTSV   Format = "tsv"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatTSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Formatter handles output formatting.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new formatter.
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

// RenderSummary outputs a profile summary in the configured format.
func (f *Formatter) RenderSummary(title string, s profiler.Summary) error {
	switch f.format {
	case FormatJSON:
		return f.renderJSON(s)
	case FormatTSV:
		return f.renderSummaryTSV(s)
	default:
		return f.renderSummaryTable(title, s)
	}
}

// renderJSON outputs a value as indented JSON.
func (f *Formatter) renderJSON(v any) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderSummaryTable outputs a styled summary table with a sample trend.
func (f *Formatter) renderSummaryTable(title string, s profiler.Summary) error {
	fmt.Fprintln(f.writer, titleStyle.Render(title))
	fmt.Fprintln(f.writer, dimStyle.Render(strings.Repeat("═", 50)))
	fmt.Fprintln(f.writer)

	rows := [][]string{
		{"Initial memory", fmt.Sprintf("%.2f MB", s.InitialMegabytes())},
		{"Peak memory", fmt.Sprintf("%.2f MB", s.PeakMegabytes())},
		{"Average memory", fmt.Sprintf("%.2f MB", s.AverageMegabytes())},
		{"Memory increase", fmt.Sprintf("%.2f MB", s.DeltaMegabytes())},
		{"Duration", s.Duration.Round(time.Millisecond).String()},
		{"Samples", fmt.Sprintf("%d", len(s.Samples))},
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("METRIC", "VALUE").
		Rows(rows...)

	fmt.Fprintln(f.writer, t)

	if spark := Sparkline(s.Samples); spark != "" {
		fmt.Fprintf(f.writer, "Trend: %s\n", spark)
	}

	return nil
}

// renderSummaryTSV outputs the summary as tab-separated values.
func (f *Formatter) renderSummaryTSV(s profiler.Summary) error {
	fmt.Fprintln(f.writer, "INITIAL_BYTES\tPEAK_BYTES\tAVERAGE_BYTES\tDELTA_BYTES\tDURATION_SECONDS\tSAMPLES")
	fmt.Fprintf(f.writer, "%d\t%d\t%d\t%d\t%.4f\t%d\n",
		s.Initial, s.Peak, s.Average, s.Delta,
		s.Duration.Seconds(), len(s.Samples))
	return nil
}

// RenderSnapshot outputs a point-in-time snapshot in the configured format.
func (f *Formatter) RenderSnapshot(s memquery.Snapshot) error {
	switch f.format {
	case FormatJSON:
		return f.renderJSON(s)
	case FormatTSV:
		fmt.Fprintln(f.writer, "RSS_BYTES\tVMS_BYTES\tPERCENT")
		fmt.Fprintf(f.writer, "%d\t%d\t%.2f\n", s.RSS, s.VMS, s.Percent)
		return nil
	default:
		fmt.Fprintln(f.writer, titleStyle.Render("Memory Snapshot"))
		fmt.Fprintf(f.writer, "  RSS:     %s\n", boldStyle.Render(fmt.Sprintf("%.2f MB", s.RSSMegabytes())))
		fmt.Fprintf(f.writer, "  VMS:     %s\n", boldStyle.Render(fmt.Sprintf("%.2f MB", s.VMSMegabytes())))
		fmt.Fprintf(f.writer, "  Percent: %s\n", boldStyle.Render(fmt.Sprintf("%.2f%%", s.Percent)))
		return nil
	}
}

package baseline

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/memprof/pkg/profiler"
)

// Severity indicates the magnitude of a metric drift.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityRegress  Severity = "regression"
)

// Comparison holds the drift analysis for a single metric.
type Comparison struct {
	Metric      string
	BaselineVal float64
	CurrentVal  float64
	DeltaPct    float64
	Severity    Severity
}

var (
	blTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	blHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	blDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	blOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	blWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	blErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blMinor  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Compare calculates drift between a saved baseline and a fresh summary.
// Memory metrics are compared in MB; growth is what counts as a regression,
// so positive drift degrades severity faster than shrinkage.
func Compare(base *Baseline, current profiler.Summary) []Comparison {
	metrics := []struct {
		name    string
		baseVal float64
		curVal  float64
	}{
		{"initial_mb", float64(base.InitialBytes) / 1024 / 1024, current.InitialMegabytes()},
		{"peak_mb", float64(base.PeakBytes) / 1024 / 1024, current.PeakMegabytes()},
		{"average_mb", float64(base.AverageBytes) / 1024 / 1024, current.AverageMegabytes()},
		{"delta_mb", float64(base.DeltaBytes) / 1024 / 1024, current.DeltaMegabytes()},
		{"duration_s", base.DurationSeconds, current.Duration.Seconds()},
	}

	var comparisons []Comparison
	for _, m := range metrics {
		var deltaPct float64
		if m.baseVal != 0 {
			deltaPct = ((m.curVal - m.baseVal) / math.Abs(m.baseVal)) * 100
		} else if m.curVal != 0 {
			deltaPct = 100
		}

		comparisons = append(comparisons, Comparison{
			Metric:      m.name,
			BaselineVal: m.baseVal,
			CurrentVal:  m.curVal,
			DeltaPct:    deltaPct,
			Severity:    classifySeverity(deltaPct),
		})
	}

	return comparisons
}

func classifySeverity(deltaPct float64) Severity {
	absDelta := math.Abs(deltaPct)
	if absDelta < 5 {
		return SeverityNone
	}
	if absDelta < 15 {
		return SeverityMinor
	}
	if absDelta < 30 {
		return SeverityModerate
	}
	if deltaPct > 0 {
		return SeverityRegress
	}
	return SeverityMajor
}

// RenderComparison outputs a styled comparison table.
func RenderComparison(w io.Writer, base *Baseline, comparisons []Comparison) {
	fmt.Fprintln(w, blTitle.Render("Baseline Comparison"))
	fmt.Fprintln(w, blDim.Render(strings.Repeat("═", 80)))
	fmt.Fprintf(w, "Comparing against %s (from %s)\n\n",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%q", base.Name)),
		blDim.Render(base.Timestamp.Format("2006-01-02 15:04:05")))

	fmt.Fprintf(w, "  %s %s %s %s %s\n",
		blHeader.Render("METRIC        "),
		blHeader.Render("BASELINE  "),
		blHeader.Render("CURRENT   "),
		blHeader.Render("DELTA    "),
		blHeader.Render("SEVERITY  "))
	fmt.Fprintln(w, "  "+blDim.Render(strings.Repeat("─", 70)))

	regressions := 0
	for _, c := range comparisons {
		deltaStr := fmt.Sprintf("%+.1f%%", c.DeltaPct)
		var sevStr string
		switch c.Severity {
		case SeverityRegress:
			sevStr = blErr.Render("REGRESSION")
			regressions++
		case SeverityMajor:
			sevStr = blErr.Render("MAJOR")
			regressions++
		case SeverityModerate:
			sevStr = blWarn.Render("moderate")
		case SeverityMinor:
			sevStr = blMinor.Render("minor")
		default:
			sevStr = blOK.Render("none")
		}

		fmt.Fprintf(w, "  %-15s %-12.2f %-12.2f %-10s %s\n",
			c.Metric, c.BaselineVal, c.CurrentVal, deltaStr, sevStr)
	}

	fmt.Fprintln(w)
	if regressions > 0 {
		fmt.Fprintf(w, "  %s\n", blErr.Render(fmt.Sprintf("%d potential regressions detected.", regressions)))
	} else {
		fmt.Fprintf(w, "  %s\n", blOK.Render("No significant regressions detected."))
	}
}

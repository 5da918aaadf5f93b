// Package benchmark provides self-benchmarking of memory query overhead.
//
// Polling memory while a workload runs is only useful if the query itself is
// cheap; this package measures per-query latency percentiles and the tool's
// own allocation footprint so the sampling interval can be chosen with
// confidence.
package benchmark

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Probe is a named memory query to benchmark.
type Probe struct {
	Name string
	Read func() (uint64, error)
}

// Options configures a benchmark run.
type Options struct {
	Iterations int
	Warmup     int
}

// DefaultOptions returns sensible benchmark defaults.
func DefaultOptions() Options {
	return Options{
		Iterations: 50,
		Warmup:     5,
	}
}

// Result holds benchmark results for a single probe.
type Result struct {
	Probe     string
	Latencies []time.Duration
	P50       time.Duration
	P95       time.Duration
	P99       time.Duration
	RSSStdDev float64
	Errors    int
}

// Overhead holds the tool's own resource usage.
type Overhead struct {
	AllocBytes uint64
	AllocCount uint64
	GCPauses   uint32
}

var (
	bmTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bmHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	bmDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Run benchmarks each probe with the given options.
func Run(probes []Probe, opts Options) []Result {
	var results []Result

	for _, probe := range probes {
		// Warmup
		for i := 0; i < opts.Warmup; i++ {
			probe.Read()
		}

		latencies := make([]time.Duration, opts.Iterations)
		var values []float64
		errors := 0

		for i := 0; i < opts.Iterations; i++ {
			start := time.Now()
			rss, err := probe.Read()
			latencies[i] = time.Since(start)

			if err != nil {
				errors++
				continue
			}
			values = append(values, float64(rss))
		}

		sort.Slice(latencies, func(i, j int) bool {
			return latencies[i] < latencies[j]
		})

		results = append(results, Result{
			Probe:     probe.Name,
			Latencies: latencies,
			P50:       percentile(latencies, 0.50),
			P95:       percentile(latencies, 0.95),
			P99:       percentile(latencies, 0.99),
			RSSStdDev: stddev(values),
			Errors:    errors,
		})
	}

	return results
}

// MeasureOverhead returns the tool's own memory overhead.
func MeasureOverhead() Overhead {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return Overhead{
		AllocBytes: m.TotalAlloc,
		AllocCount: m.Mallocs,
		GCPauses:   m.NumGC,
	}
}

// RenderResults outputs styled benchmark results.
func RenderResults(w io.Writer, results []Result, overhead Overhead) {
	fmt.Fprintln(w, bmTitle.Render("Query Overhead Benchmark"))
	fmt.Fprintln(w, bmDim.Render(strings.Repeat("═", 70)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s %s %s %s\n",
		bmHeader.Render("PROBE              "),
		bmHeader.Render("P50        "),
		bmHeader.Render("P95        "),
		bmHeader.Render("P99        "),
		bmHeader.Render("RSS STDDEV  "))
	fmt.Fprintln(w, "  "+bmDim.Render(strings.Repeat("─", 70)))

	for _, r := range results {
		fmt.Fprintf(w, "  %-20s %-12v %-12v %-12v %s\n",
			r.Probe, r.P50, r.P95, r.P99, formatBytes(uint64(r.RSSStdDev)))
		if r.Errors > 0 {
			fmt.Fprintf(w, "  %s\n", bmDim.Render(fmt.Sprintf("%d of %d queries failed", r.Errors, len(r.Latencies))))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, bmTitle.Render("Tool Overhead"))
	fmt.Fprintln(w, bmDim.Render(strings.Repeat("─", 40)))
	fmt.Fprintf(w, "  Memory allocated: %s\n", lipgloss.NewStyle().Bold(true).Render(formatBytes(overhead.AllocBytes)))
	fmt.Fprintf(w, "  Allocations:      %s\n", lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d", overhead.AllocCount)))
	fmt.Fprintf(w, "  GC pauses:        %s\n", lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d", overhead.GCPauses)))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum, sumSq float64
	for _, v := range values {
		sum += v
		sumSq += v * v
	}
	n := float64(len(values))
	mean := sum / n
	variance := (sumSq / n) - (mean * mean)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

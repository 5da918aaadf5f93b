// Package profiler measures process memory usage around a unit of work.
//
// A Profiler polls the process's resident set size on a fixed interval while
// the wrapped work executes, then folds the samples into a Summary. Two
// scope styles are provided: Measure/Wrap for a single function call, and
// StartBlock/End for an arbitrary block of caller code.
package profiler

import "time"

// Sample is one timestamped memory measurement taken during polling.
type Sample struct {
	At  time.Time `json:"at"`
	RSS uint64    `json:"rss_bytes"`
}

// Summary aggregates a sample series into the statistics reported for one
// measured unit of work. The initial measurement is always the first sample,
// so Peak >= Initial and the series is never empty.
type Summary struct {
	Initial  uint64        `json:"initial_bytes"`
	Peak     uint64        `json:"peak_bytes"`
	Average  uint64        `json:"average_bytes"`
	Delta    uint64        `json:"delta_bytes"`
	Duration time.Duration `json:"duration"`
	Samples  []Sample      `json:"samples"`
}

// InitialMegabytes returns the initial resident set in MiB.
func (s Summary) InitialMegabytes() float64 { return toMB(s.Initial) }

// PeakMegabytes returns the peak resident set in MiB.
func (s Summary) PeakMegabytes() float64 { return toMB(s.Peak) }

// AverageMegabytes returns the mean resident set in MiB.
func (s Summary) AverageMegabytes() float64 { return toMB(s.Average) }

// DeltaMegabytes returns the peak-over-initial increase in MiB.
func (s Summary) DeltaMegabytes() float64 { return toMB(s.Delta) }

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}

// summarize folds a non-empty sample series into a Summary. The first sample
// is the initial measurement taken before the work started.
func summarize(samples []Sample, duration time.Duration) Summary {
	initial := samples[0].RSS
	peak := initial
	var total uint64
	for _, s := range samples {
		if s.RSS > peak {
			peak = s.RSS
		}
		total += s.RSS
	}

	return Summary{
		Initial:  initial,
		Peak:     peak,
		Average:  total / uint64(len(samples)),
		Delta:    peak - initial,
		Duration: duration,
		Samples:  samples,
	}
}

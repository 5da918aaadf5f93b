package profiler

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/memprof/pkg/memquery"
)

// DefaultInterval is the poll cadence used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// ErrInvalidInterval is returned by New when the configured poll interval is
// zero or negative.
var ErrInvalidInterval = errors.New("poll interval must be positive")

// Option configures a Profiler.
type Option func(*Profiler)

// WithInterval sets the poll interval. Must be positive.
func WithInterval(d time.Duration) Option {
	return func(p *Profiler) { p.interval = d }
}

// WithReader sets the memory reader. Defaults to the current process.
func WithReader(r memquery.Reader) Option {
	return func(p *Profiler) { p.reader = r }
}

// WithLogger sets the logger that receives summary reports.
func WithLogger(l *logrus.Logger) Option {
	return func(p *Profiler) { p.logger = l }
}

// Profiler measures process memory usage around units of work. A single
// Profiler may be used for any number of measurements; each measurement owns
// its own sample buffer, so concurrent use is safe.
type Profiler struct {
	interval time.Duration
	reader   memquery.Reader
	logger   *logrus.Logger
}

// New creates a Profiler. Configuration is validated here, before any
// measurement starts: a non-positive interval fails with ErrInvalidInterval.
func New(opts ...Option) (*Profiler, error) {
	p := &Profiler{
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, p.interval)
	}
	if p.reader == nil {
		p.reader = memquery.Self()
	}
	if p.logger == nil {
		p.logger = logrus.New()
	}

	return p, nil
}

// Interval returns the configured poll interval.
func (p *Profiler) Interval() time.Duration {
	return p.interval
}

// Snapshot takes a single synchronous memory reading with no polling.
func (p *Profiler) Snapshot() (memquery.Snapshot, error) {
	return p.reader.Snapshot()
}

// Measure runs work while polling process memory at the profiler's interval,
// and returns the work's result alongside a Summary of the sample series.
//
// The initial measurement is taken before work starts and the final one
// after it returns. If work fails, its error is returned unchanged after the
// sampling goroutine has been stopped; no summary is produced and nothing is
// logged. On success the summary is also logged at Info level as a reporting
// side effect.
func Measure[T any](p *Profiler, work func() (T, error)) (T, Summary, error) {
	var zero T

	initial, err := p.reader.ResidentBytes()
	if err != nil {
		return zero, Summary{}, err
	}

	start := time.Now()
	s := startSampler(p.reader, p.interval, Sample{At: start, RSS: initial})

	result, workErr := work()
	duration := time.Since(start)

	samples := s.halt()
	if workErr != nil {
		return zero, Summary{}, workErr
	}

	// Final measurement after the work completed. A failure here is not
	// fatal; the series already holds at least the initial sample.
	if final, err := p.reader.ResidentBytes(); err == nil {
		samples = append(samples, Sample{At: time.Now(), RSS: final})
	}

	summary := summarize(samples, duration)
	p.logSummary("function", summary)
	return result, summary, nil
}

// Wrap returns a function that behaves like fn but also measures memory
// usage around the call. Note the changed signature: callers of the wrapped
// function receive the Summary in addition to fn's own results.
func Wrap[T any](p *Profiler, fn func() (T, error)) func() (T, Summary, error) {
	return func() (T, Summary, error) {
		return Measure(p, fn)
	}
}

// logSummary emits the report for a completed measurement. Logging is a side
// effect only; it never affects returned values.
func (p *Profiler) logSummary(scope string, s Summary) {
	p.logger.WithFields(logrus.Fields{
		"scope":      scope,
		"initial_mb": fmt.Sprintf("%.2f", s.InitialMegabytes()),
		"peak_mb":    fmt.Sprintf("%.2f", s.PeakMegabytes()),
		"average_mb": fmt.Sprintf("%.2f", s.AverageMegabytes()),
		"delta_mb":   fmt.Sprintf("%.2f", s.DeltaMegabytes()),
		"duration":   s.Duration.Round(time.Millisecond).String(),
		"samples":    len(s.Samples),
	}).Info("memory profile")
}

package profiler

import (
	"time"

	"github.com/danpilch/memprof/pkg/memquery"
)

// sampler runs the background poll loop for one measurement. Each Measure or
// Block owns its own sampler; the sample slice is handed over on the done
// channel when the loop stops, so no locking is needed.
type sampler struct {
	reader   memquery.Reader
	interval time.Duration
	stop     chan struct{}
	done     chan []Sample
}

// startSampler begins polling in a new goroutine. The first sample is the
// initial measurement taken by the caller before the work started.
func startSampler(reader memquery.Reader, interval time.Duration, first Sample) *sampler {
	s := &sampler{
		reader:   reader,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan []Sample, 1),
	}
	go s.loop(first)
	return s
}

func (s *sampler) loop(first Sample) {
	samples := []Sample{first}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.done <- samples
			return
		case <-ticker.C:
			rss, err := s.reader.ResidentBytes()
			if err != nil {
				// Transient poll failure; the series is still floored by
				// the initial sample.
				continue
			}
			samples = append(samples, Sample{At: time.Now(), RSS: rss})
		}
	}
}

// halt stops the poll loop and returns the collected series. It blocks until
// the sampling goroutine has exited.
func (s *sampler) halt() []Sample {
	close(s.stop)
	return <-s.done
}

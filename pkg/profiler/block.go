package profiler

import (
	"sync"
	"time"
)

// Block profiles an arbitrary block of caller code with scoped semantics:
//
//	block, err := p.StartBlock()
//	if err != nil { ... }
//	defer block.End()
//
// End is safe on every exit path, including a panic unwinding through the
// defer, and runs the exit logic exactly once. The computed summary stays
// available on the handle after the scope closes.
type Block struct {
	p       *Profiler
	start   time.Time
	s       *sampler
	once    sync.Once
	summary Summary
	ended   bool
}

// StartBlock records the starting measurement and begins background polling
// at the profiler's interval.
func (p *Profiler) StartBlock() (*Block, error) {
	initial, err := p.reader.ResidentBytes()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	return &Block{
		p:     p,
		start: start,
		s:     startSampler(p.reader, p.interval, Sample{At: start, RSS: initial}),
	}, nil
}

// End closes the scope: it stops the poll loop, takes the final measurement,
// computes and logs the summary, and stores it on the handle. Subsequent
// calls are no-ops.
func (b *Block) End() {
	b.once.Do(func() {
		duration := time.Since(b.start)
		samples := b.s.halt()

		if final, err := b.p.reader.ResidentBytes(); err == nil {
			samples = append(samples, Sample{At: time.Now(), RSS: final})
		}

		b.summary = summarize(samples, duration)
		b.ended = true
		b.p.logSummary("block", b.summary)
	})
}

// Summary returns the computed summary. The second return is false until End
// has run.
func (b *Block) Summary() (Summary, bool) {
	return b.summary, b.ended
}

package crosscheck

import (
	"fmt"

	"github.com/danpilch/memprof/pkg/profiler"
)

// SanityResult holds the outcome of one structural constraint check.
type SanityResult struct {
	Check   string
	Passed  bool
	Details string
}

// RunSanityChecks validates a profile summary against the constraints every
// well-formed summary must satisfy.
func RunSanityChecks(s profiler.Summary) []SanityResult {
	var results []SanityResult

	results = append(results, SanityResult{
		Check:   "sample series non-empty",
		Passed:  len(s.Samples) > 0,
		Details: fmt.Sprintf("%d samples", len(s.Samples)),
	})

	results = append(results, SanityResult{
		Check:   "initial <= peak",
		Passed:  s.Initial <= s.Peak,
		Details: fmt.Sprintf("initial=%d peak=%d", s.Initial, s.Peak),
	})

	results = append(results, SanityResult{
		Check:   "delta = peak - initial",
		Passed:  s.Delta == s.Peak-s.Initial,
		Details: fmt.Sprintf("delta=%d", s.Delta),
	})

	results = append(results, SanityResult{
		Check:   "duration non-negative",
		Passed:  s.Duration >= 0,
		Details: s.Duration.String(),
	})

	if len(s.Samples) > 0 {
		min, max := s.Samples[0].RSS, s.Samples[0].RSS
		for _, sample := range s.Samples {
			if sample.RSS < min {
				min = sample.RSS
			}
			if sample.RSS > max {
				max = sample.RSS
			}
		}
		results = append(results, SanityResult{
			Check:   "average within sample bounds",
			Passed:  s.Average >= min && s.Average <= max,
			Details: fmt.Sprintf("min=%d avg=%d max=%d", min, s.Average, max),
		})
	}

	return results
}

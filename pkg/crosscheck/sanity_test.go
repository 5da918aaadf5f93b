package crosscheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danpilch/memprof/pkg/profiler"
)

func goodSummary() profiler.Summary {
	now := time.Now()
	return profiler.Summary{
		Initial:  100,
		Peak:     300,
		Average:  200,
		Delta:    200,
		Duration: 50 * time.Millisecond,
		Samples: []profiler.Sample{
			{At: now, RSS: 100},
			{At: now.Add(10 * time.Millisecond), RSS: 300},
			{At: now.Add(20 * time.Millisecond), RSS: 200},
		},
	}
}

func TestRunSanityChecks_WellFormedSummary(t *testing.T) {
	results := RunSanityChecks(goodSummary())
	assert.NotEmpty(t, results)
	for _, r := range results {
		assert.True(t, r.Passed, "check %q failed: %s", r.Check, r.Details)
	}
}

func TestRunSanityChecks_DetectsCorruptSummary(t *testing.T) {
	s := goodSummary()
	s.Delta = 999 // inconsistent with peak - initial
	s.Average = 5000

	results := RunSanityChecks(s)

	failed := map[string]bool{}
	for _, r := range results {
		if !r.Passed {
			failed[r.Check] = true
		}
	}
	assert.True(t, failed["delta = peak - initial"])
	assert.True(t, failed["average within sample bounds"])
}

func TestRunSanityChecks_EmptySeries(t *testing.T) {
	results := RunSanityChecks(profiler.Summary{})

	var sawEmptyCheck bool
	for _, r := range results {
		if r.Check == "sample series non-empty" {
			sawEmptyCheck = true
			assert.False(t, r.Passed)
		}
	}
	assert.True(t, sawEmptyCheck)
}

package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpilch/memprof/pkg/workload"
)

// TestMeasure_ObservesAllocationGrowth runs against the real OS query: an
// allocation held during the work should be visible as peak above initial.
func TestMeasure_ObservesAllocationGrowth(t *testing.T) {
	p := newTestProfiler(t, nil, 10*time.Millisecond)

	checksum, summary, err := Measure(p, func() (uint64, error) {
		return workload.Allocate(64, 100*time.Millisecond), nil
	})
	require.NoError(t, err)

	assert.NotZero(t, checksum)
	assert.Greater(t, summary.Peak, summary.Initial)
	assert.Equal(t, summary.Peak-summary.Initial, summary.Delta)
	// 64 MiB held across several polls should move the needle by well over
	// a quarter of its size even with allocator slack.
	assert.Greater(t, summary.Delta, uint64(16*1024*1024))
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	samples := []Sample{
		{At: now, RSS: 100},
		{At: now.Add(10 * time.Millisecond), RSS: 300},
		{At: now.Add(20 * time.Millisecond), RSS: 200},
	}

	s := summarize(samples, 25*time.Millisecond)

	assert.Equal(t, uint64(100), s.Initial)
	assert.Equal(t, uint64(300), s.Peak)
	assert.Equal(t, uint64(200), s.Average)
	assert.Equal(t, uint64(200), s.Delta)
	assert.Equal(t, 25*time.Millisecond, s.Duration)
	assert.Len(t, s.Samples, 3)
}

func TestSummary_MegabyteHelpers(t *testing.T) {
	s := Summary{
		Initial: 10 * 1024 * 1024,
		Peak:    20 * 1024 * 1024,
		Average: 15 * 1024 * 1024,
		Delta:   10 * 1024 * 1024,
	}

	assert.InDelta(t, 10.0, s.InitialMegabytes(), 0.001)
	assert.InDelta(t, 20.0, s.PeakMegabytes(), 0.001)
	assert.InDelta(t, 15.0, s.AverageMegabytes(), 0.001)
	assert.InDelta(t, 10.0, s.DeltaMegabytes(), 0.001)
}

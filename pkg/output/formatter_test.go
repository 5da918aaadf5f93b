package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpilch/memprof/pkg/memquery"
	"github.com/danpilch/memprof/pkg/profiler"
)

func testSummary() profiler.Summary {
	now := time.Now()
	return profiler.Summary{
		Initial:  10 * 1024 * 1024,
		Peak:     25 * 1024 * 1024,
		Average:  18 * 1024 * 1024,
		Delta:    15 * 1024 * 1024,
		Duration: 250 * time.Millisecond,
		Samples: []profiler.Sample{
			{At: now, RSS: 10 * 1024 * 1024},
			{At: now.Add(100 * time.Millisecond), RSS: 25 * 1024 * 1024},
			{At: now.Add(200 * time.Millisecond), RSS: 20 * 1024 * 1024},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input       string
		want        Format
		expectError bool
	}{
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"tsv", FormatTSV, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderSummary_Table(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable, &buf)

	require.NoError(t, f.RenderSummary("Memory Profile: test", testSummary()))

	out := buf.String()
	assert.Contains(t, out, "Memory Profile: test")
	assert.Contains(t, out, "Peak memory")
	assert.Contains(t, out, "25.00 MB")
	assert.Contains(t, out, "Memory increase")
	assert.Contains(t, out, "Trend:")
}

func TestRenderSummary_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)

	require.NoError(t, f.RenderSummary("ignored", testSummary()))

	var decoded profiler.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, uint64(25*1024*1024), decoded.Peak)
	assert.Len(t, decoded.Samples, 3)
}

func TestRenderSummary_TSV(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTSV, &buf)

	require.NoError(t, f.RenderSummary("ignored", testSummary()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "PEAK_BYTES")
	assert.Contains(t, lines[1], "26214400")
}

func TestRenderSnapshot_Table(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable, &buf)

	snap := memquery.Snapshot{RSS: 10 * 1024 * 1024, VMS: 30 * 1024 * 1024, Percent: 2.5}
	require.NoError(t, f.RenderSnapshot(snap))

	out := buf.String()
	assert.Contains(t, out, "RSS")
	assert.Contains(t, out, "10.00 MB")
	assert.Contains(t, out, "2.50%")
}

func TestRenderSnapshot_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)

	snap := memquery.Snapshot{RSS: 1024, VMS: 4096, Percent: 0.1}
	require.NoError(t, f.RenderSnapshot(snap))

	var decoded memquery.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, snap, decoded)
}

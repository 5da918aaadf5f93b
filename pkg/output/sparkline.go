package output

import (
	"strings"

	"github.com/danpilch/memprof/pkg/profiler"
)

// sparkline block characters from lowest to highest
var sparkBlocks = []rune{
	'▁', // ▁
	'▂', // ▂
	'▃', // ▃
	'▄', // ▄
	'▅', // ▅
	'▆', // ▆
	'▇', // ▇
	'█', // █
}

// maxSparkWidth caps the rendered trend so long sample series stay readable;
// the series is downsampled evenly when it is wider.
const maxSparkWidth = 40

// Sparkline renders a sample series as a Unicode sparkline of RSS values.
func Sparkline(samples []profiler.Sample) string {
	if len(samples) < 2 {
		return ""
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s.RSS)
	}
	if len(values) > maxSparkWidth {
		values = downsample(values, maxSparkWidth)
	}

	return renderSparkline(values)
}

// downsample picks n evenly spaced values from the series.
func downsample(values []float64, n int) []float64 {
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		out[i] = values[int(float64(i)*step)]
	}
	return out
}

func renderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var b strings.Builder
	rng := max - min
	for _, v := range values {
		idx := 0
		if rng > 0 {
			idx = int((v - min) / rng * float64(len(sparkBlocks)-1))
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(sparkBlocks[idx])
	}

	return b.String()
}

//go:build darwin

package crosscheck

import (
	"golang.org/x/sys/unix"
)

// platformReadings gathers RSS from Darwin-specific sources. getrusage
// reports the high-water mark rather than the instantaneous set, so it can
// legitimately sit above the other sources.
func platformReadings() []Reading {
	var readings []Reading

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
		// ru_maxrss is in bytes on Darwin.
		readings = append(readings, Reading{
			Source: "getrusage",
			RSS:    uint64(ru.Maxrss),
		})
	}

	return readings
}

//go:build linux

package crosscheck

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// platformReadings gathers RSS from Linux-specific sources. getrusage
// reports the high-water mark rather than the instantaneous set, so it can
// legitimately sit above the other sources.
func platformReadings() []Reading {
	var readings []Reading

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
		// ru_maxrss is in kilobytes on Linux.
		readings = append(readings, Reading{
			Source: "getrusage",
			RSS:    uint64(ru.Maxrss) * 1024,
		})
	}

	if rss, err := statmRSS(); err == nil {
		readings = append(readings, Reading{
			Source: "/proc/statm",
			RSS:    rss,
		})
	}

	return readings
}

// statmRSS reads the resident page count from /proc/self/statm.
func statmRSS() (uint64, error) {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0, fmt.Errorf("cannot parse /proc/self/statm: %q", string(data))
	}

	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse resident pages: %w", err)
	}

	return pages * uint64(os.Getpagesize()), nil
}

package crosscheck

import (
	"github.com/danpilch/memprof/pkg/memquery"
)

// GatherRSS collects RSS readings for the current process from every source
// available on this platform. The gopsutil reading is mandatory; platform
// sources are best effort.
func GatherRSS() ([]Reading, error) {
	rss, err := memquery.Self().ResidentBytes()
	if err != nil {
		return nil, err
	}

	readings := []Reading{{Source: "gopsutil", RSS: rss}}
	readings = append(readings, platformReadings()...)
	return readings, nil
}

// Package memquery queries the operating system for process memory usage.
package memquery

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

const bytesPerMB = 1024 * 1024

// Snapshot is a point-in-time view of one process's memory usage.
type Snapshot struct {
	RSS     uint64  `json:"rss_bytes"`
	VMS     uint64  `json:"vms_bytes"`
	Percent float64 `json:"percent"`
}

// RSSMegabytes returns the resident set size in MiB.
func (s Snapshot) RSSMegabytes() float64 {
	return float64(s.RSS) / bytesPerMB
}

// VMSMegabytes returns the virtual memory size in MiB.
func (s Snapshot) VMSMegabytes() float64 {
	return float64(s.VMS) / bytesPerMB
}

// QueryError reports a failed OS memory query.
type QueryError struct {
	Op  string
	PID int32
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("memquery: %s for pid %d: %v", e.Op, e.PID, e.Err)
}

// Unwrap returns the underlying OS error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Reader reads memory usage for a single process. Implementations must be
// safe to call repeatedly; each call performs a fresh OS query.
type Reader interface {
	// ResidentBytes returns the current resident set size in bytes.
	ResidentBytes() (uint64, error)

	// Snapshot returns resident, virtual, and percent-of-system memory.
	Snapshot() (Snapshot, error)
}

// ProcessReader reads memory usage for one PID via gopsutil.
type ProcessReader struct {
	pid int32
}

// Self returns a reader for the current process.
func Self() *ProcessReader {
	return &ProcessReader{pid: int32(os.Getpid())}
}

// ForPID returns a reader for an arbitrary process.
func ForPID(pid int32) *ProcessReader {
	return &ProcessReader{pid: pid}
}

// PID returns the process ID this reader targets.
func (r *ProcessReader) PID() int32 {
	return r.pid
}

// ResidentBytes returns the current resident set size in bytes.
func (r *ProcessReader) ResidentBytes() (uint64, error) {
	info, err := r.memoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

// Snapshot returns the process's current memory usage. The percent field is
// the resident set as a fraction of total system memory, as reported by the
// OS.
func (r *ProcessReader) Snapshot() (Snapshot, error) {
	proc, err := process.NewProcess(r.pid)
	if err != nil {
		return Snapshot{}, &QueryError{Op: "open process", PID: r.pid, Err: err}
	}

	info, err := proc.MemoryInfo()
	if err != nil {
		return Snapshot{}, &QueryError{Op: "memory info", PID: r.pid, Err: err}
	}

	percent, err := proc.MemoryPercent()
	if err != nil {
		return Snapshot{}, &QueryError{Op: "memory percent", PID: r.pid, Err: err}
	}

	return Snapshot{
		RSS:     info.RSS,
		VMS:     info.VMS,
		Percent: float64(percent),
	}, nil
}

func (r *ProcessReader) memoryInfo() (*process.MemoryInfoStat, error) {
	proc, err := process.NewProcess(r.pid)
	if err != nil {
		return nil, &QueryError{Op: "open process", PID: r.pid, Err: err}
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return nil, &QueryError{Op: "memory info", PID: r.pid, Err: err}
	}
	return info, nil
}

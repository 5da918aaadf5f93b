// Package workload provides synthetic memory loads for demos and tests.
package workload

import (
	"time"
)

const pageSize = 4096

// Allocate reserves approximately mb MiB, touches every page so the memory
// actually becomes resident, holds it for the given duration, and returns a
// checksum over the buffer so the allocation cannot be optimized away.
func Allocate(mb int, hold time.Duration) uint64 {
	if mb <= 0 {
		return 0
	}

	buf := make([]byte, mb*1024*1024)
	for i := 0; i < len(buf); i += pageSize {
		buf[i] = byte(i >> 12)
	}

	if hold > 0 {
		time.Sleep(hold)
	}

	var sum uint64
	for i := 0; i < len(buf); i += pageSize {
		sum += uint64(buf[i])
	}
	return sum
}

// Churn repeatedly allocates and releases chunkMB MiB for the given number
// of rounds, sleeping between rounds so a poll loop can observe the swings.
func Churn(chunkMB, rounds int, pause time.Duration) uint64 {
	var sum uint64
	for i := 0; i < rounds; i++ {
		sum += Allocate(chunkMB, pause)
	}
	return sum
}

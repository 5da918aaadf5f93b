package memquery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelf_Snapshot(t *testing.T) {
	snap, err := Self().Snapshot()
	require.NoError(t, err)

	assert.Greater(t, snap.RSS, uint64(0))
	assert.Greater(t, snap.VMS, uint64(0))
	assert.GreaterOrEqual(t, snap.Percent, 0.0)
	assert.LessOrEqual(t, snap.Percent, 100.0)
}

func TestSelf_ResidentBytes(t *testing.T) {
	rss, err := Self().ResidentBytes()
	require.NoError(t, err)
	assert.Greater(t, rss, uint64(0))
}

func TestSelf_ConsistentUnitsAcrossCalls(t *testing.T) {
	first, err := Self().ResidentBytes()
	require.NoError(t, err)
	second, err := Self().ResidentBytes()
	require.NoError(t, err)

	// Both readings are in bytes; in a steady test process they must be the
	// same order of magnitude.
	assert.Less(t, first, second*10)
	assert.Less(t, second, first*10)
}

func TestForPID_NonexistentProcess(t *testing.T) {
	// PID beyond any realistic pid_max.
	r := ForPID(1 << 22)
	_, err := r.ResidentBytes()
	require.Error(t, err)

	var qerr *QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, int32(1<<22), qerr.PID)
	assert.NotEmpty(t, qerr.Op)
}

func TestSnapshot_MegabyteHelpers(t *testing.T) {
	s := Snapshot{RSS: 10 * 1024 * 1024, VMS: 30 * 1024 * 1024}
	assert.InDelta(t, 10.0, s.RSSMegabytes(), 0.001)
	assert.InDelta(t, 30.0, s.VMSMegabytes(), 0.001)
}

func TestQueryError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := &QueryError{Op: "memory info", PID: 42, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "memory info")
	assert.Contains(t, err.Error(), "42")
}

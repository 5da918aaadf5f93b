package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocate_ZeroAndNegative(t *testing.T) {
	assert.Zero(t, Allocate(0, 0))
	assert.Zero(t, Allocate(-5, 0))
}

func TestAllocate_Deterministic(t *testing.T) {
	// 1 MiB touches 256 pages with values 0..255.
	want := uint64(255 * 256 / 2)
	assert.Equal(t, want, Allocate(1, 0))
	assert.Equal(t, want, Allocate(1, 0))
}

func TestChurn(t *testing.T) {
	single := Allocate(1, 0)
	assert.Equal(t, 3*single, Churn(1, 3, 0))
	assert.Zero(t, Churn(1, 0, 0))
}

// Package crosscheck validates RSS readings from independent OS sources.
package crosscheck

import (
	"math"
	"sort"
)

// ValidationStatus indicates the confidence level of a cross-checked reading.
type ValidationStatus string

const (
	StatusValid    ValidationStatus = "valid"
	StatusSuspect  ValidationStatus = "suspect"
	StatusConflict ValidationStatus = "conflict"
)

// Reading is one RSS measurement from a specific source.
type Reading struct {
	Source string
	RSS    uint64
}

// ValidationResult holds the cross-check outcome for a set of readings.
type ValidationResult struct {
	Readings     []Reading
	Consensus    float64
	MaxDeviation float64
	Status       ValidationStatus
}

// Validator cross-checks RSS readings from multiple sources.
type Validator struct {
	SuspectThreshold  float64 // deviation % to mark suspect (default 5%)
	ConflictThreshold float64 // deviation % to mark conflict (default 20%)
}

// NewValidator creates a validator with default thresholds.
func NewValidator() *Validator {
	return &Validator{
		SuspectThreshold:  5.0,
		ConflictThreshold: 20.0,
	}
}

// CrossCheck compares RSS readings against each other. Consensus is the
// median; status degrades as the worst deviation from consensus grows.
func (v *Validator) CrossCheck(readings []Reading) ValidationResult {
	result := ValidationResult{
		Readings: readings,
		Status:   StatusValid,
	}

	if len(readings) == 0 {
		return result
	}

	if len(readings) == 1 {
		result.Consensus = float64(readings[0].RSS)
		return result
	}

	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = float64(r.RSS)
	}
	sort.Float64s(values)

	if len(values)%2 == 0 {
		result.Consensus = (values[len(values)/2-1] + values[len(values)/2]) / 2
	} else {
		result.Consensus = values[len(values)/2]
	}

	for _, val := range values {
		if result.Consensus == 0 {
			if val != 0 {
				result.MaxDeviation = 100.0
			}
			continue
		}
		dev := math.Abs(val-result.Consensus) / result.Consensus * 100
		if dev > result.MaxDeviation {
			result.MaxDeviation = dev
		}
	}

	if result.MaxDeviation >= v.ConflictThreshold {
		result.Status = StatusConflict
	} else if result.MaxDeviation >= v.SuspectThreshold {
		result.Status = StatusSuspect
	}

	return result
}

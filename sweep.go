package evalkit

import (
	"fmt"
	"math"
)

// thresholdTolerance absorbs float error when deciding whether 1 is a
// multiple of the sweep step.
const thresholdTolerance = 1e-9

// maxThresholds caps the grid a single sweep may evaluate.
const maxThresholds = 1e7

// Sample is a scored observation with its true label (0 or 1).
type Sample struct {
	Probability float64 `json:"probability" csv:"probability"`
	Label       int     `json:"label" csv:"label"`
}

// ThresholdMetrics holds sweep metrics for one threshold. Undefined
// precision or recall are reported as 0 here.
type ThresholdMetrics struct {
	Threshold float64 `json:"threshold"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Counts    Counts  `json:"counts"`
}

// SweepResult holds per-threshold metrics in ascending threshold order and
// the entry with the highest F1.
type SweepResult struct {
	Points           []ThresholdMetrics `json:"points"`
	OptimalThreshold float64            `json:"optimalThreshold"`
	MaxF1            float64            `json:"maxF1"`
}

// Thresholds returns 0, step, 2·step, ... up to and including 1. When 1 is
// not a multiple of step it is appended as the final threshold. Steps
// smaller than 1e-7 would produce more than ten million thresholds and are
// rejected with ErrInvalidInput.
func Thresholds(step float64) ([]float64, error) {
	if math.IsNaN(step) || step <= 0 || step > 1 {
		return nil, fmt.Errorf("%w: threshold step %v not in (0, 1]", ErrInvalidInput, step)
	}
	inv := 1 / step
	if math.IsInf(inv, 0) || inv > maxThresholds {
		return nil, fmt.Errorf("%w: threshold step %v gives more than %d thresholds", ErrInvalidInput, step, int(maxThresholds))
	}

	n := int(math.Floor(inv + thresholdTolerance))
	thresholds := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		thresholds = append(thresholds, float64(i)*step)
	}

	if last := thresholds[len(thresholds)-1]; last >= 1-thresholdTolerance {
		thresholds[len(thresholds)-1] = 1
	} else {
		thresholds = append(thresholds, 1)
	}
	return thresholds, nil
}

// CountsAt classifies samples as positive when probability >= t and tallies
// the outcomes against their labels.
func CountsAt(samples []Sample, t float64) Counts {
	var c Counts
	for _, s := range samples {
		predicted := s.Probability >= t
		switch {
		case predicted && s.Label == 1:
			c.TruePositive++
		case predicted:
			c.FalsePositive++
		case s.Label == 1:
			c.FalseNegative++
		default:
			c.TrueNegative++
		}
	}
	return c
}

// Sweep evaluates precision, recall and F1 at every threshold from
// Thresholds(step). The optimal threshold is the first, and therefore
// smallest, one reaching the maximum F1. An empty sample set yields all-zero
// metrics and an optimal threshold of 0.
func Sweep(samples []Sample, step float64) (SweepResult, error) {
	if err := validateSamples(samples); err != nil {
		return SweepResult{}, err
	}
	thresholds, err := Thresholds(step)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{
		Points: make([]ThresholdMetrics, 0, len(thresholds)),
		MaxF1:  -1,
	}

	for _, t := range thresholds {
		c := CountsAt(samples, t)
		m, err := ComputeMetrics(c)
		if err != nil {
			return SweepResult{}, err
		}

		p, r := m.Precision.ValueOrZero(), m.Recall.ValueOrZero()
		var f float64
		if p+r > 0 {
			f = 2 * p * r / (p + r)
		}

		result.Points = append(result.Points, ThresholdMetrics{
			Threshold: t,
			Precision: p,
			Recall:    r,
			F1:        f,
			Counts:    c,
		})

		// Strict comparison keeps the smallest threshold on ties.
		if f > result.MaxF1 {
			result.MaxF1 = f
			result.OptimalThreshold = t
		}
	}

	return result, nil
}

func validateSamples(samples []Sample) error {
	for i, s := range samples {
		if math.IsNaN(s.Probability) {
			return fmt.Errorf("%w: sample %d has NaN probability", ErrInvalidInput, i)
		}
		if s.Label != 0 && s.Label != 1 {
			return fmt.Errorf("%w: sample %d has label %d, want 0 or 1", ErrInvalidInput, i, s.Label)
		}
	}
	return nil
}

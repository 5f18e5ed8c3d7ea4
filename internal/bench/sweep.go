package bench

import (
	"fmt"
	"math"
	"sort"

	evalkit "github.com/jamesainslie/go-evalkit"
)

// SweepResult holds metrics for one threshold value.
type SweepResult struct {
	Threshold float64
	Metrics   Metrics
}

// SweepThresholds generates threshold values from min up to (excluding) max
// with the given step. Values are computed as min+i*step so they do not drift.
func SweepThresholds(min, max, step float64) []float64 {
	if step <= 0 || max <= min {
		return nil
	}

	n := int(math.Ceil((max-min)/step - 1e-9))
	thresholds := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		thresholds = append(thresholds, min+float64(i)*step)
	}
	return thresholds
}

// Sweep evaluates multiple thresholds and returns results sorted by weighted
// score, best first. Equal scores keep the lower threshold first.
func Sweep(samples []evalkit.Sample, cfg Config, thresholds []float64) ([]SweepResult, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", evalkit.ErrInvalidInput)
	}

	results := make([]SweepResult, 0, len(thresholds))
	for _, threshold := range thresholds {
		cfg.Threshold = threshold
		m, err := Evaluate(samples, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, SweepResult{
			Threshold: threshold,
			Metrics:   m,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results, nil
}

package bench

import (
	evalkit "github.com/jamesainslie/go-evalkit"
)

// Config holds evaluation parameters.
type Config struct {
	Threshold       float64
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:       0.5,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results. Undefined metrics are reported as 0.
type Metrics struct {
	Counts        evalkit.Counts
	Accuracy      float64
	Precision     float64
	Recall        float64
	F1            float64
	Specificity   float64
	WeightedScore float64
}

// Evaluate classifies samples at cfg.Threshold and scores the result.
func Evaluate(samples []evalkit.Sample, cfg Config) (Metrics, error) {
	return score(evalkit.CountsAt(samples, cfg.Threshold), cfg)
}

func score(c evalkit.Counts, cfg Config) (Metrics, error) {
	set, err := evalkit.ComputeMetrics(c)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		Counts:      c,
		Accuracy:    set.Accuracy.ValueOrZero(),
		Precision:   set.Precision.ValueOrZero(),
		Recall:      set.Recall.ValueOrZero(),
		F1:          set.F1.ValueOrZero(),
		Specificity: set.Specificity.ValueOrZero(),
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m, nil
}

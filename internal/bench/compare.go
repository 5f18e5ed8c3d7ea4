package bench

import (
	"fmt"
	"sort"

	evalkit "github.com/jamesainslie/go-evalkit"
)

// ModelSummary ranks one model on its pooled samples.
type ModelSummary struct {
	Model            string
	Samples          int
	AUC              float64
	OptimalThreshold float64
	MaxF1            float64
	Metrics          Metrics // at cfg.Threshold
}

// Compare scores every model in runs and returns them ordered by AUC, best
// first. Each model's samples must contain both classes.
func Compare(runs []*Run, cfg Config, step float64) ([]ModelSummary, error) {
	models, pooled := GroupByModel(runs)
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: no runs", evalkit.ErrInvalidInput)
	}

	summaries := make([]ModelSummary, 0, len(models))
	for _, model := range models {
		samples := pooled[model]

		roc, err := evalkit.EmpiricalROC(samples)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", model, err)
		}
		sweep, err := evalkit.Sweep(samples, step)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", model, err)
		}
		m, err := Evaluate(samples, cfg)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", model, err)
		}

		summaries = append(summaries, ModelSummary{
			Model:            model,
			Samples:          len(samples),
			AUC:              evalkit.Area(roc),
			OptimalThreshold: sweep.OptimalThreshold,
			MaxF1:            sweep.MaxF1,
			Metrics:          m,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].AUC > summaries[j].AUC
	})
	return summaries, nil
}

package evalkit

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// EmpiricalROC computes the ROC curve of scored samples, one point per
// distinct probability plus the (0,0) origin, in ascending FPR order so the
// result can be passed straight to Area. Both classes must be present.
func EmpiricalROC(samples []Sample) ([]Point, error) {
	if err := validateSamples(samples); err != nil {
		return nil, err
	}

	y := make([]float64, len(samples))
	classes := make([]bool, len(samples))
	var positives int
	for i, s := range samples {
		y[i] = s.Probability
		classes[i] = s.Label == 1
		if classes[i] {
			positives++
		}
	}
	if positives == 0 || positives == len(samples) {
		return nil, fmt.Errorf("%w: ROC needs both classes, got %d positives of %d", ErrInvalidInput, positives, len(samples))
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)

	points := make([]Point, len(tpr))
	for i := range tpr {
		points[i] = Point{X: fpr[i], Y: tpr[i]}
	}
	return points, nil
}

package evalkit

import (
	"fmt"

	"gopkg.in/guregu/null.v3"
)

// Counts holds the four outcome tallies of a binary classifier at one threshold.
type Counts struct {
	TruePositive  int `json:"truePositive"`
	TrueNegative  int `json:"trueNegative"`
	FalsePositive int `json:"falsePositive"`
	FalseNegative int `json:"falseNegative"`
}

// Total returns the number of classified samples.
func (c Counts) Total() int {
	return c.TruePositive + c.TrueNegative + c.FalsePositive + c.FalseNegative
}

// Validate reports ErrInvalidInput if any count is negative.
func (c Counts) Validate() error {
	if c.TruePositive < 0 || c.TrueNegative < 0 || c.FalsePositive < 0 || c.FalseNegative < 0 {
		return fmt.Errorf("%w: negative count in %+v", ErrInvalidInput, c)
	}
	return nil
}

// FPR returns the false positive rate fp/(fp+tn), undefined when fp+tn is 0.
func (c Counts) FPR() null.Float {
	return ratio(c.FalsePositive, c.FalsePositive+c.TrueNegative)
}

// MetricSet holds the metrics derived from Counts. A field with Valid == false
// is undefined because its denominator was zero.
type MetricSet struct {
	Accuracy    null.Float `json:"accuracy"`
	Precision   null.Float `json:"precision"`
	Recall      null.Float `json:"recall"`
	F1          null.Float `json:"f1"`
	Specificity null.Float `json:"specificity"`
}

// Require returns the named metric ("accuracy", "precision", "recall", "f1"
// or "specificity"), or ErrUndefinedMetric if it is undefined.
func (m MetricSet) Require(name string) (float64, error) {
	var f null.Float
	switch name {
	case "accuracy":
		f = m.Accuracy
	case "precision":
		f = m.Precision
	case "recall":
		f = m.Recall
	case "f1":
		f = m.F1
	case "specificity":
		f = m.Specificity
	default:
		return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, name)
	}
	if !f.Valid {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedMetric, name)
	}
	return f.Float64, nil
}

// ComputeMetrics derives accuracy, precision, recall, F1 and specificity.
// Zero denominators leave the metric undefined; they never produce 0 or NaN.
func ComputeMetrics(c Counts) (MetricSet, error) {
	if err := c.Validate(); err != nil {
		return MetricSet{}, err
	}

	m := MetricSet{
		Accuracy:    ratio(c.TruePositive+c.TrueNegative, c.Total()),
		Precision:   ratio(c.TruePositive, c.TruePositive+c.FalsePositive),
		Recall:      ratio(c.TruePositive, c.TruePositive+c.FalseNegative),
		Specificity: ratio(c.TrueNegative, c.TrueNegative+c.FalsePositive),
	}
	m.F1 = f1(m.Precision, m.Recall)

	return m, nil
}

func ratio(num, denom int) null.Float {
	if denom == 0 {
		return null.Float{}
	}
	return null.FloatFrom(float64(num) / float64(denom))
}

func f1(precision, recall null.Float) null.Float {
	if !precision.Valid || !recall.Valid {
		return null.Float{}
	}
	p, r := precision.Float64, recall.Float64
	if p+r == 0 {
		return null.Float{}
	}
	return null.FloatFrom(2 * p * r / (p + r))
}

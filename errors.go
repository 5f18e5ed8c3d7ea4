package evalkit

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidInput indicates a violated precondition: empty samples,
	// negative counts, a non-positive bin count or a threshold step outside (0, 1].
	ErrInvalidInput = errors.New("evalkit: invalid input")

	// ErrUndefinedMetric indicates a metric whose denominator is zero.
	// ComputeMetrics never returns it; MetricSet.Require does.
	ErrUndefinedMetric = errors.New("evalkit: undefined metric")
)

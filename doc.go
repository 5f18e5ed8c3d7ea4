// Package evalkit provides the numeric core behind a binary-classifier
// evaluation dashboard: ROC and PR curves, trapezoidal area estimates,
// confusion-matrix metrics, threshold sweeps and histogram binning.
//
// # Quick Start
//
//	m, err := evalkit.ComputeMetrics(evalkit.Counts{
//	    TruePositive: 800, FalsePositive: 200,
//	    FalseNegative: 100, TrueNegative: 8900,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if m.Precision.Valid {
//	    fmt.Printf("precision: %.4f\n", m.Precision.Float64)
//	}
//
//	syn := evalkit.NewSynthesizer(evalkit.WithSeed(42))
//	points, _ := syn.ROC(12)
//	fmt.Printf("AUC: %.3f\n", evalkit.Area(points))
//
// # Undefined Metrics
//
// A metric whose denominator is zero is returned as an invalid null.Float
// rather than 0 or NaN. Check Valid before reading the value, or call
// MetricSet.Require to get ErrUndefinedMetric instead.
//
// # Thread Safety
//
// ComputeMetrics, Area, TrapezoidalArea, Sweep, Thresholds, Bin and
// EmpiricalROC are pure and may be called concurrently. Synthesizer is
// safe for concurrent use; it serialises access to its random source.
package evalkit

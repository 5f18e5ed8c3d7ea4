package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	evalkit "github.com/jamesainslie/go-evalkit"
	"github.com/jamesainslie/go-evalkit/internal/plot"
	"github.com/jamesainslie/go-evalkit/internal/report"
	"github.com/jamesainslie/go-evalkit/mock"
)

func main() {
	var (
		mode    = flag.String("mode", "metrics", "Mode: metrics, curve, hist, sweep, imbalance or snapshot")
		seed    = flag.Int64("seed", 0, "Random seed (0 seeds from the clock)")
		verbose = flag.Bool("v", false, "Debug logging")

		tp = flag.Int("tp", 0, "True positives (metrics)")
		fp = flag.Int("fp", 0, "False positives (metrics)")
		fn = flag.Int("fn", 0, "False negatives (metrics)")
		tn = flag.Int("tn", 0, "True negatives (metrics)")

		kind     = flag.String("kind", "roc", "Curve kind: roc or pr (curve)")
		points   = flag.Int("points", 12, "Points per curve (curve)")
		plotPath = flag.String("plot", "", "Write the curve to a .png or .svg file (curve)")

		bins   = flag.Int("bins", 10, "Number of bins (hist)")
		n      = flag.Int("n", 500, "Generated samples when no values are given (hist, sweep)")
		width  = flag.Int("width", 40, "Bar width in characters (hist)")
		marker = flag.String("marker", "", "Report the bin containing this value (hist)")

		step = flag.Float64("step", 0.05, "Threshold step (sweep)")

		method = flag.String("method", mock.SMOTE, "Resampling method (imbalance)")

		summary = flag.Bool("summary", false, "Only headline numbers (snapshot)")
		pretty  = flag.Bool("pretty", true, "Indent JSON output (snapshot)")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	svc := mock.New(mock.WithSeed(*seed), mock.WithPoolSize(1), mock.WithLogger(logger))
	defer func() { _ = svc.Close() }() // Cleanup error ignored in CLI

	ctx := context.Background()

	var err error
	switch *mode {
	case "metrics":
		err = runMetrics(evalkit.Counts{TruePositive: *tp, FalsePositive: *fp, FalseNegative: *fn, TrueNegative: *tn})
	case "curve":
		err = runCurve(*seed, logger, *kind, *points, *plotPath)
	case "hist":
		err = runHist(ctx, svc, flag.Args(), *n, *bins, *width, *marker)
	case "sweep":
		err = runSweep(ctx, svc, *n, *step)
	case "imbalance":
		err = runImbalance(*method)
	case "snapshot":
		err = runSnapshot(ctx, svc, *summary, *pretty)
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMetrics(c evalkit.Counts) error {
	m, err := evalkit.ComputeMetrics(c)
	if err != nil {
		return err
	}

	fmt.Printf("(TP: %d, FP: %d, FN: %d, TN: %d)\n", c.TruePositive, c.FalsePositive, c.FalseNegative, c.TrueNegative)
	fmt.Printf("Accuracy:    %s\n", format(m.Accuracy.Ptr()))
	fmt.Printf("Precision:   %s\n", format(m.Precision.Ptr()))
	fmt.Printf("Recall:      %s\n", format(m.Recall.Ptr()))
	fmt.Printf("F1:          %s\n", format(m.F1.Ptr()))
	fmt.Printf("Specificity: %s\n", format(m.Specificity.Ptr()))
	return nil
}

func format(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", *v)
}

func runCurve(seed int64, logger *slog.Logger, kindName string, n int, plotPath string) error {
	kind, err := evalkit.ParseCurveKind(kindName)
	if err != nil {
		return err
	}

	syn := evalkit.NewSynthesizer(evalkit.WithSeed(seed), evalkit.WithLogger(logger))
	pts, err := syn.Generate(kind, n)
	if err != nil {
		return err
	}

	fmt.Printf("%s curve (%d points)\n", strings.ToUpper(kind.String()), len(pts))
	fmt.Printf("%-8s %-8s\n", "X", "Y")
	for _, p := range pts {
		fmt.Printf("%-8.4f %-8.4f\n", p.X, p.Y)
	}
	fmt.Printf("Area: %.4f\n", evalkit.Area(pts))

	if plotPath == "" {
		return nil
	}

	f, err := os.Create(plotPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := plot.Curves(f, plot.FormatFor(plotPath), plot.CurveOptions(kind), plot.Series{Name: "synthetic", Points: pts}); err != nil {
		return err
	}
	logger.Info("wrote plot", "path", plotPath)
	return f.Close()
}

func runHist(ctx context.Context, svc *mock.Service, args []string, n, bins, width int, marker string) error {
	var h evalkit.HistogramResult
	if len(args) > 0 {
		values := make([]float64, len(args))
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("value %q: %w", a, err)
			}
			values[i] = v
		}

		var err error
		if h, err = evalkit.Bin(values, bins); err != nil {
			return err
		}
	} else {
		d, err := svc.FeatureDistribution(ctx, "var_0", n, bins)
		if err != nil {
			return err
		}
		h = d.Histogram
	}

	if err := plot.FprintHistogram(os.Stdout, h, width); err != nil {
		return err
	}

	s := h.Statistics
	fmt.Printf("Mean: %.4f  Median: %.4f  Std: %.4f  Min: %.4f  Max: %.4f\n", s.Mean, s.Median, s.Std, s.Min, s.Max)

	if marker != "" {
		v, err := strconv.ParseFloat(marker, 64)
		if err != nil {
			return fmt.Errorf("marker %q: %w", marker, err)
		}
		if i, ok := h.MarkerBin(v); ok {
			fmt.Printf("Marker %v falls in bin %d [%.4g, %.4g]\n", v, i, h.Bins[i], h.Bins[i+1])
		} else {
			fmt.Printf("Marker %v is outside the histogram range\n", v)
		}
	}
	return nil
}

func runSweep(ctx context.Context, svc *mock.Service, n int, step float64) error {
	res, err := svc.ThresholdOptimization(ctx, n, step)
	if err != nil {
		return err
	}

	fmt.Printf("Threshold Sweep Results (%d customers)\n", n)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s\n", "Thresh", "Prec", "Rec", "F1")
	for _, p := range res.Points {
		fmt.Printf("%-8.3f %-8.2f %-8.2f %-8.2f\n", p.Threshold, p.Precision, p.Recall, p.F1)
	}
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Optimal: %.3f (F1: %.2f)\n", res.OptimalThreshold, res.MaxF1)
	return nil
}

func runImbalance(method string) error {
	dist, err := mock.Imbalance(method)
	if err != nil {
		return err
	}
	cm, err := mock.ImbalanceConfusionMatrix(method)
	if err != nil {
		return err
	}

	fmt.Printf("%s: negative %d -> %d, positive %d -> %d\n", method,
		dist.Original.Negative, dist.Balanced.Negative, dist.Original.Positive, dist.Balanced.Positive)
	return runMetrics(cm.Counts)
}

func runSnapshot(ctx context.Context, svc *mock.Service, summary, pretty bool) error {
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return err
	}

	var s *structpb.Struct
	if summary {
		s, err = report.Summary(snap)
	} else {
		s, err = report.Struct(snap)
	}
	if err != nil {
		return err
	}

	out, err := report.Marshal(s, pretty)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

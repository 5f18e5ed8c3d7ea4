package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/go-evalkit/internal/bench"
)

func main() {
	var (
		corpusDir = flag.String("corpus", "internal/bench/testdata", "Directory containing prediction CSV files")
		threshold = flag.Float64("threshold", 0.5, "Decision threshold")
		wp        = flag.Float64("wp", 1.0, "Precision weight")
		wr        = flag.Float64("wr", 1.0, "Recall weight")
		sweep     = flag.Bool("sweep", false, "Run threshold sweep")
		sweepMin  = flag.Float64("sweep-min", 0.05, "Sweep minimum threshold")
		sweepMax  = flag.Float64("sweep-max", 1.0, "Sweep maximum threshold")
		sweepStep = flag.Float64("sweep-step", 0.05, "Sweep step size")
		models    = flag.Bool("models", false, "Compare the models named in the corpus")
	)
	flag.Parse()

	runs, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Fprintf(os.Stderr, "error: no .csv files in %s\n", *corpusDir)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d runs from %s\n\n", len(runs), *corpusDir)

	cfg := bench.Config{
		Threshold:       *threshold,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	if *models {
		runModelComparison(runs, cfg, *sweepStep)
	} else if *sweep {
		runSweep(runs, cfg, *sweepMin, *sweepMax, *sweepStep)
	} else {
		runSingle(runs, cfg)
	}
}

func runSingle(runs []*bench.Run, cfg bench.Config) {
	m, err := bench.Evaluate(bench.Pool(runs), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating: %v\n", err)
		os.Exit(1)
	}
	printMetrics(m)
}

func runSweep(runs []*bench.Run, cfg bench.Config, min, max, step float64) {
	thresholds := bench.SweepThresholds(min, max, step)

	fmt.Printf("Threshold Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Prec", "Rec", "F1", "Weighted")

	results, err := bench.Sweep(bench.Pool(runs), cfg, thresholds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	// Print sorted by threshold for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.Threshold == t {
				fmt.Printf("%-8.3f %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.Threshold, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %.3f (Weighted: %.2f)\n", best.Threshold, best.Metrics.WeightedScore)
	}
}

func runModelComparison(runs []*bench.Run, cfg bench.Config, step float64) {
	summaries, err := bench.Compare(runs, cfg, step)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error comparing models: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Model Comparison (threshold=%.2f, wp=%.1f, wr=%.1f)\n", cfg.Threshold, cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("%-24s %-8s %-8s %-8s %-8s %-8s\n", "Model", "Samples", "AUC", "F1", "BestT", "MaxF1")

	for _, s := range summaries {
		fmt.Printf("%-24s %-8d %-8.3f %-8.2f %-8.3f %-8.2f\n",
			s.Model, s.Samples, s.AUC, s.Metrics.F1, s.OptimalThreshold, s.MaxF1)
	}
}

func printMetrics(m bench.Metrics) {
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d, TN: %d)\n",
		m.Counts.TruePositive, m.Counts.FalsePositive, m.Counts.FalseNegative, m.Counts.TrueNegative)
}

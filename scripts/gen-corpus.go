//go:build ignore

// Generate a synthetic prediction corpus for evalkit-bench.
// Writes one CSV file per dashboard model, each with a "# Model:" header.
// Usage: go run ./scripts/gen-corpus.go [-out DIR] [-n ROWS] [-seed SEED]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/jamesainslie/go-evalkit/mock"
)

func main() {
	outDir := flag.String("out", "testdata/models", "Output directory")
	rows := flag.Int("n", 2000, "Rows per model")
	seed := flag.Int64("seed", 1, "Base random seed")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	for i, model := range mock.Models {
		outFile := filepath.Join(*outDir, strings.ToLower(model)+".csv")

		fmt.Printf("Generating %s...\n", model)
		if err := writeModel(outFile, model, *seed+int64(i), *rows); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
			continue
		}
		fmt.Printf("  -> %s (%d rows)\n", outFile, *rows)
	}

	fmt.Printf("\nDone! Corpus files created in %s/\n", *outDir)
}

func writeModel(path, model string, seed int64, rows int) error {
	svc := mock.New(mock.WithSeed(seed), mock.WithPoolSize(1))
	defer func() { _ = svc.Close() }()

	preds, err := svc.CustomerPredictions(context.Background(), rows)
	if err != nil {
		return fmt.Errorf("generating predictions: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "# Model: %s\n# Dataset: synthetic seed %d\n", model, seed); err != nil {
		return err
	}
	if err := gocsv.Marshal(mock.Samples(preds), f); err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}
	return f.Close()
}

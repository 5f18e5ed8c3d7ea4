// Package bench evaluates scored prediction corpora against their labels.
package bench

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	evalkit "github.com/jamesainslie/go-evalkit"
)

// Header contains metadata parsed from the comment lines at the top of a
// prediction file.
type Header struct {
	Model   string
	Dataset string
	Note    string
}

// ParseHeader extracts metadata from leading "# Key: value" comments.
// Returns the header and the CSV body that follows it. All keys are optional.
// CRLF line endings are normalised to LF, including in the returned body.
func ParseHeader(text string) (Header, string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	bodyStart := len(text)
	var lineEnd int

	for scanner.Scan() {
		line := scanner.Text()
		lineEnd += len(line) + 1 // +1 for newline

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineEnd - len(line) - 1
			break
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(line, "Model:"); ok {
			h.Model = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Dataset:"); ok {
			h.Dataset = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Note:"); ok {
			h.Note = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	return h, strings.TrimSpace(text[bodyStart:]), nil
}

// ParseSamples decodes a "probability,label" CSV body and validates every row.
func ParseSamples(body string) ([]evalkit.Sample, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: no samples", evalkit.ErrInvalidInput)
	}

	var samples []evalkit.Sample
	if err := gocsv.UnmarshalString(body, &samples); err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	for i, s := range samples {
		if math.IsNaN(s.Probability) || s.Probability < 0 || s.Probability > 1 || (s.Label != 0 && s.Label != 1) {
			return nil, fmt.Errorf("%w: row %d: probability %v label %d",
				evalkit.ErrInvalidInput, i+1, s.Probability, s.Label)
		}
	}
	return samples, nil
}

// Run is one loaded prediction file.
type Run struct {
	ID      string // filename without extension
	Model   string // from the header, defaults to ID
	Dataset string
	Samples []evalkit.Sample
}

// LoadRun loads and parses a prediction file.
func LoadRun(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	samples, err := ParseSamples(body)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	model := header.Model
	if model == "" {
		model = id
	}

	return &Run{
		ID:      id,
		Model:   model,
		Dataset: header.Dataset,
		Samples: samples,
	}, nil
}

// LoadCorpus loads all .csv prediction files from a directory.
func LoadCorpus(dir string) ([]*Run, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var runs []*Run
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".csv" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		run, err := LoadRun(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// Pool concatenates the samples of every run.
func Pool(runs []*Run) []evalkit.Sample {
	var samples []evalkit.Sample
	for _, r := range runs {
		samples = append(samples, r.Samples...)
	}
	return samples
}

// GroupByModel pools runs that share a model name. Models are returned in
// name order.
func GroupByModel(runs []*Run) (models []string, samples map[string][]evalkit.Sample) {
	samples = make(map[string][]evalkit.Sample)
	for _, r := range runs {
		if _, ok := samples[r.Model]; !ok {
			models = append(models, r.Model)
		}
		samples[r.Model] = append(samples[r.Model], r.Samples...)
	}
	sort.Strings(models)
	return models, samples
}

// Package report renders dashboard data as protobuf Struct JSON.
package report

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/guregu/null.v3"

	"github.com/jamesainslie/go-evalkit/mock"
)

// Struct converts any JSON-serialisable value into a structpb.Struct.
// v must encode as a JSON object.
func Struct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode as object: %w", err)
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return s, nil
}

// Marshal renders s as JSON, indented when pretty is set.
func Marshal(s *structpb.Struct, pretty bool) ([]byte, error) {
	opts := protojson.MarshalOptions{}
	if pretty {
		opts.Multiline = true
		opts.Indent = "  "
	}
	return opts.Marshal(s)
}

// Summary picks the headline numbers of a snapshot. Undefined metrics are
// rendered as JSON null.
func Summary(snap mock.Snapshot) (*structpb.Struct, error) {
	best := ""
	var bestAUC float64
	for _, m := range snap.Models {
		if m.AUC > bestAUC {
			best, bestAUC = m.Model, m.AUC
		}
	}

	cm := snap.Confusion.Metrics
	confusion := map[string]any{
		"accuracy":    nullable(cm.Accuracy),
		"precision":   nullable(cm.Precision),
		"recall":      nullable(cm.Recall),
		"f1":          nullable(cm.F1),
		"specificity": nullable(cm.Specificity),
	}

	return structpb.NewStruct(map[string]any{
		"id":               snap.ID.String(),
		"bestModel":        best,
		"bestModelAuc":     bestAUC,
		"rocAuc":           snap.ROC.Area,
		"averagePrecision": snap.PR.Area,
		"optimalThreshold": snap.Threshold.OptimalThreshold,
		"maxF1":            snap.Threshold.MaxF1,
		"confusion":        confusion,
	})
}

func nullable(f null.Float) any {
	if !f.Valid {
		return nil
	}
	return f.Float64
}

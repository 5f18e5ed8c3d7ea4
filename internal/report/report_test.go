package report

import (
	"context"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/guregu/null.v3"

	evalkit "github.com/jamesainslie/go-evalkit"
	"github.com/jamesainslie/go-evalkit/mock"
)

func snapshot(t *testing.T) mock.Snapshot {
	t.Helper()
	svc := mock.New(mock.WithSeed(1), mock.WithPoolSize(1))
	defer func() { _ = svc.Close() }()

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	return snap
}

func TestStruct(t *testing.T) {
	snap := snapshot(t)

	s, err := Struct(snap)
	if err != nil {
		t.Fatalf("Struct() error = %v", err)
	}

	if got := s.Fields["id"].GetStringValue(); got != snap.ID.String() {
		t.Errorf("id = %q, want %q", got, snap.ID.String())
	}
	if got := len(s.Fields["models"].GetListValue().GetValues()); got != len(mock.Models) {
		t.Errorf("len(models) = %d, want %d", got, len(mock.Models))
	}
	roc := s.Fields["roc"].GetStructValue()
	if got := roc.Fields["area"].GetNumberValue(); got != snap.ROC.Area {
		t.Errorf("roc.area = %v, want %v", got, snap.ROC.Area)
	}
}

func TestStruct_NotObject(t *testing.T) {
	if _, err := Struct([]int{1, 2}); err == nil {
		t.Error("expected error for non-object value")
	}
}

func TestMarshal(t *testing.T) {
	s, err := Struct(evalkit.Counts{TruePositive: 8, TrueNegative: 89, FalsePositive: 2, FalseNegative: 1})
	if err != nil {
		t.Fatalf("Struct() error = %v", err)
	}

	compact, err := Marshal(s, false)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	pretty, err := Marshal(s, true)
	if err != nil {
		t.Fatalf("Marshal(pretty) error = %v", err)
	}
	if !strings.Contains(string(pretty), "\n") {
		t.Error("pretty output has no newlines")
	}

	for _, data := range [][]byte{compact, pretty} {
		var back structpb.Struct
		if err := protojson.Unmarshal(data, &back); err != nil {
			t.Fatalf("protojson.Unmarshal() error = %v", err)
		}
		if !proto.Equal(&back, s) {
			t.Errorf("round trip mismatch: %s", data)
		}
	}
}

func TestSummary(t *testing.T) {
	snap := snapshot(t)
	s, err := Summary(snap)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if got := s.Fields["bestModel"].GetStringValue(); got == "" {
		t.Error("bestModel is empty")
	}
	if got := s.Fields["maxF1"].GetNumberValue(); got != snap.Threshold.MaxF1 {
		t.Errorf("maxF1 = %v, want %v", got, snap.Threshold.MaxF1)
	}
}

func TestSummary_UndefinedMetric(t *testing.T) {
	var snap mock.Snapshot
	snap.Confusion.Metrics.Accuracy = null.FloatFrom(0.9)

	s, err := Summary(snap)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	confusion := s.Fields["confusion"].GetStructValue()
	if _, ok := confusion.Fields["precision"].GetKind().(*structpb.Value_NullValue); !ok {
		t.Errorf("precision = %v, want null", confusion.Fields["precision"])
	}
	if got := confusion.Fields["accuracy"].GetNumberValue(); got != 0.9 {
		t.Errorf("accuracy = %v, want 0.9", got)
	}
}

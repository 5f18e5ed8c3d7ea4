package evalkit

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestBin_EdgeInclusivity(t *testing.T) {
	samples := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got, err := Bin(samples, 10)
	if err != nil {
		t.Fatalf("Bin() error = %v", err)
	}

	if len(got.Bins) != len(got.Frequencies)+1 {
		t.Fatalf("len(Bins) = %d, len(Frequencies) = %d", len(got.Bins), len(got.Frequencies))
	}
	for i := 1; i < len(got.Bins); i++ {
		if got.Bins[i] <= got.Bins[i-1] {
			t.Errorf("Bins not strictly increasing at %d: %v", i, got.Bins)
		}
	}

	want := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 2}
	if !reflect.DeepEqual(got.Frequencies, want) {
		t.Errorf("Frequencies = %v, want %v", got.Frequencies, want)
	}

	sum := 0
	for _, f := range got.Frequencies {
		sum += f
	}
	if sum != len(samples) {
		t.Errorf("sum(Frequencies) = %d, want %d", sum, len(samples))
	}
}

func TestBin_Statistics(t *testing.T) {
	got, err := Bin([]float64{1, 2, 3, 4, 5}, 4)
	if err != nil {
		t.Fatalf("Bin() error = %v", err)
	}

	st := got.Statistics
	if st.Mean != 3 {
		t.Errorf("Mean = %v, want 3", st.Mean)
	}
	if st.Median != 3 {
		t.Errorf("Median = %v, want 3", st.Median)
	}
	if math.Abs(st.Std-math.Sqrt2) > 1e-12 {
		t.Errorf("Std = %v, want sqrt(2)", st.Std)
	}
	if st.Min != 1 || st.Max != 5 {
		t.Errorf("Min, Max = %v, %v, want 1, 5", st.Min, st.Max)
	}
}

func TestBin_EvenMedian(t *testing.T) {
	got, err := Bin([]float64{4, 1, 3, 2}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got.Statistics.Median != 2.5 {
		t.Errorf("Median = %v, want 2.5", got.Statistics.Median)
	}
}

func TestBin_MatchesGonum(t *testing.T) {
	samples := []float64{0.12, -0.4, 0.98, 0.33, 0.33, -0.07, 0.5, 0.81, -0.9, 0.04}

	got, err := Bin(samples, 5)
	if err != nil {
		t.Fatal(err)
	}

	mean, std := stat.PopMeanStdDev(samples, nil)
	if math.Abs(got.Statistics.Mean-mean) > 1e-12 {
		t.Errorf("Mean = %v, gonum = %v", got.Statistics.Mean, mean)
	}
	if math.Abs(got.Statistics.Std-std) > 1e-12 {
		t.Errorf("Std = %v, gonum = %v", got.Statistics.Std, std)
	}
}

func TestBin_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		binCount int
	}{
		{name: "zero single bin", value: 0, binCount: 1},
		{name: "zero odd bins", value: 0, binCount: 5},
		{name: "large value", value: 1e6, binCount: 4},
		{name: "negative value", value: -3.5, binCount: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := []float64{tt.value, tt.value, tt.value}
			got, err := Bin(samples, tt.binCount)
			if err != nil {
				t.Fatalf("Bin() error = %v", err)
			}

			for i := 1; i < len(got.Bins); i++ {
				if got.Bins[i] <= got.Bins[i-1] {
					t.Fatalf("Bins not strictly increasing: %v", got.Bins)
				}
			}
			if got.Bins[0] >= tt.value || got.Bins[len(got.Bins)-1] <= tt.value {
				t.Errorf("range %v..%v does not straddle %v", got.Bins[0], got.Bins[len(got.Bins)-1], tt.value)
			}

			sum := 0
			for _, f := range got.Frequencies {
				sum += f
			}
			if sum != len(samples) {
				t.Errorf("sum(Frequencies) = %d, want %d", sum, len(samples))
			}
			if got.Statistics.Std != 0 {
				t.Errorf("Std = %v, want 0", got.Statistics.Std)
			}
			if got.Statistics.Min != tt.value || got.Statistics.Max != tt.value {
				t.Errorf("Min, Max = %v, %v, want %v", got.Statistics.Min, got.Statistics.Max, tt.value)
			}
		})
	}
}

func TestBin_NarrowAndWideRanges(t *testing.T) {
	tests := []struct {
		name     string
		samples  []float64
		binCount int
		wantFreq []int
	}{
		{name: "a few ulps apart", samples: []float64{1, 1 + 1e-15}, binCount: 10},
		{name: "tiny negative spread", samples: []float64{-2, -2 - 4e-16, -2}, binCount: 8},
		{name: "many bins on one value", samples: []float64{0.5, 0.5}, binCount: 100000},
		{name: "full float range", samples: []float64{-1e308, 1e308}, binCount: 4, wantFreq: []int{1, 0, 0, 1}},
		{name: "near max float", samples: []float64{-math.MaxFloat64, 0, math.MaxFloat64}, binCount: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bin(tt.samples, tt.binCount)
			if err != nil {
				t.Fatalf("Bin() error = %v", err)
			}

			if len(got.Bins) != tt.binCount+1 {
				t.Fatalf("len(Bins) = %d, want %d", len(got.Bins), tt.binCount+1)
			}
			for i, e := range got.Bins {
				if math.IsInf(e, 0) || math.IsNaN(e) {
					t.Fatalf("Bins[%d] = %v, want finite", i, e)
				}
				if i > 0 && e <= got.Bins[i-1] {
					t.Fatalf("Bins not strictly increasing at %d: %v <= %v", i, e, got.Bins[i-1])
				}
			}
			if got.Bins[0] > got.Statistics.Min || got.Bins[tt.binCount] < got.Statistics.Max {
				t.Errorf("range %v..%v does not cover %v..%v", got.Bins[0], got.Bins[tt.binCount], got.Statistics.Min, got.Statistics.Max)
			}

			sum := 0
			for _, f := range got.Frequencies {
				sum += f
			}
			if sum != len(tt.samples) {
				t.Errorf("sum(Frequencies) = %d, want %d", sum, len(tt.samples))
			}
			if tt.wantFreq != nil && !reflect.DeepEqual(got.Frequencies, tt.wantFreq) {
				t.Errorf("Frequencies = %v, want %v", got.Frequencies, tt.wantFreq)
			}
		})
	}
}

func TestBin_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		samples  []float64
		binCount int
	}{
		{name: "empty", samples: nil, binCount: 3},
		{name: "zero bins", samples: []float64{1}, binCount: 0},
		{name: "negative bins", samples: []float64{1}, binCount: -2},
		{name: "nan", samples: []float64{1, math.NaN()}, binCount: 2},
		{name: "inf", samples: []float64{1, math.Inf(1)}, binCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Bin(tt.samples, tt.binCount); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Bin() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestBin_DoesNotReorderInput(t *testing.T) {
	samples := []float64{5, 1, 4, 2, 3}
	if _, err := Bin(samples, 2); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(samples, []float64{5, 1, 4, 2, 3}) {
		t.Errorf("input reordered: %v", samples)
	}
}

func TestHistogramResult_MarkerBin(t *testing.T) {
	h := HistogramResult{Bins: []float64{0, 1, 2, 3}, Frequencies: []int{1, 1, 1}}

	tests := []struct {
		v      float64
		want   int
		wantOK bool
	}{
		{v: 0, want: 0, wantOK: true},
		{v: 0.5, want: 0, wantOK: true},
		{v: 1, want: 0, wantOK: true},
		{v: 2.5, want: 2, wantOK: true},
		{v: 3, want: 2, wantOK: true},
		{v: -0.1, want: 0, wantOK: false},
		{v: 3.1, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := h.MarkerBin(tt.v)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("MarkerBin(%v) = %d, %v, want %d, %v", tt.v, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestHistogramResult_Centers(t *testing.T) {
	h := HistogramResult{Bins: []float64{0, 1, 3}}
	want := []float64{0.5, 2}
	if got := h.Centers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Centers() = %v, want %v", got, want)
	}
}

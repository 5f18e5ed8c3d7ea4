package evalkit

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// degenerateWidth scales the half-width used to widen a zero-width range.
const degenerateWidth = 1e-9

// Statistics summarises a sample. Std is the population standard deviation.
type Statistics struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// HistogramResult holds fixed-width bins. len(Bins) == len(Frequencies)+1 and
// Bins is strictly increasing.
type HistogramResult struct {
	Bins        []float64  `json:"bins"`
	Frequencies []int      `json:"frequencies"`
	Statistics  Statistics `json:"statistics"`
}

// Bin partitions samples into binCount equal-width bins between the sample
// minimum and maximum. Bin i holds Bins[i] <= v < Bins[i+1]; the last bin is
// closed on both ends.
//
// When the range is too narrow for binCount distinct edges, including the
// case where every sample is identical, it is widened symmetrically around
// its midpoint by 1e-9·max(1, |mid|), doubling until the edges are strictly
// increasing. Ranges wider than the largest float64 are split without
// overflow, so the edges are always finite.
func Bin(samples []float64, binCount int) (HistogramResult, error) {
	if len(samples) == 0 {
		return HistogramResult{}, fmt.Errorf("%w: no samples to bin", ErrInvalidInput)
	}
	if binCount < 1 {
		return HistogramResult{}, fmt.Errorf("%w: bin count %d, need at least 1", ErrInvalidInput, binCount)
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return HistogramResult{}, fmt.Errorf("%w: sample %d is %v", ErrInvalidInput, i, v)
		}
	}

	st, err := summarize(samples)
	if err != nil {
		return HistogramResult{}, err
	}

	edges, err := binEdges(st.Min, st.Max, binCount)
	if err != nil {
		return HistogramResult{}, err
	}

	freq := make([]int, binCount)
	for _, v := range samples {
		freq[binIndex(edges, v)]++
	}

	return HistogramResult{
		Bins:        edges,
		Frequencies: freq,
		Statistics:  st,
	}, nil
}

// binEdges returns binCount+1 finite, strictly increasing edges covering
// [lo, hi].
func binEdges(lo, hi float64, binCount int) ([]float64, error) {
	edges := evenEdges(lo, hi, binCount)
	if increasing(edges) {
		return edges, nil
	}

	mid := lo/2 + hi/2
	eps := degenerateWidth * math.Max(1, math.Abs(mid))
	for !math.IsInf(eps, 0) {
		edges = evenEdges(math.Min(lo, mid-eps), math.Max(hi, mid+eps), binCount)
		if increasing(edges) {
			return edges, nil
		}
		eps *= 2
	}
	return nil, fmt.Errorf("%w: cannot split [%v, %v] into %d bins", ErrInvalidInput, lo, hi, binCount)
}

func evenEdges(lo, hi float64, binCount int) []float64 {
	n := float64(binCount)
	width := (hi - lo) / n
	if math.IsInf(width, 0) {
		width = hi/n - lo/n
	}

	edges := make([]float64, binCount+1)
	for i := range edges {
		if span := float64(i) * width; !math.IsInf(span, 0) {
			edges[i] = lo + span
		} else {
			f := float64(i) / n
			edges[i] = lo*(1-f) + hi*f
		}
	}
	edges[binCount] = hi
	return edges
}

func increasing(edges []float64) bool {
	for i, e := range edges {
		if math.IsInf(e, 0) || math.IsNaN(e) {
			return false
		}
		if i > 0 && e <= edges[i-1] {
			return false
		}
	}
	return true
}

// binIndex finds i with edges[i] <= v < edges[i+1], folding v == edges[N]
// into the last bin. v must lie within [edges[0], edges[N]].
func binIndex(edges []float64, v float64) int {
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	if last := len(edges) - 2; i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	return i
}

func summarize(samples []float64) (Statistics, error) {
	data := stats.Float64Data(samples)

	var (
		st  Statistics
		err error
	)
	if st.Mean, err = stats.Mean(data); err != nil {
		return Statistics{}, fmt.Errorf("mean: %w", err)
	}
	if st.Median, err = stats.Median(data); err != nil {
		return Statistics{}, fmt.Errorf("median: %w", err)
	}
	if st.Std, err = stats.StandardDeviationPopulation(data); err != nil {
		return Statistics{}, fmt.Errorf("std: %w", err)
	}
	if st.Min, err = stats.Min(data); err != nil {
		return Statistics{}, fmt.Errorf("min: %w", err)
	}
	if st.Max, err = stats.Max(data); err != nil {
		return Statistics{}, fmt.Errorf("max: %w", err)
	}
	return st, nil
}

// Centers returns the midpoint of each bin.
func (h HistogramResult) Centers() []float64 {
	if len(h.Bins) < 2 {
		return nil
	}
	centers := make([]float64, len(h.Bins)-1)
	for i := range centers {
		centers[i] = (h.Bins[i] + h.Bins[i+1]) / 2
	}
	return centers
}

// MarkerBin locates the bin a marker value (such as the mean or median line)
// should be drawn on. It scans bins in order and returns the first i with
// Bins[i] <= v <= Bins[i+1], so a value on an interior edge belongs to the
// lower bin.
//
// A value outside the histogram range returns (0, false). Whether such a
// value should be pinned to the first or the last bin is left to the caller:
// below-range and above-range values are not distinguished here.
func (h HistogramResult) MarkerBin(v float64) (int, bool) {
	for i := 0; i+1 < len(h.Bins); i++ {
		if v >= h.Bins[i] && v <= h.Bins[i+1] {
			return i, true
		}
	}
	return 0, false
}

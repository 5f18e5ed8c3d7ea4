package plot

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"

	evalkit "github.com/jamesainslie/go-evalkit"
)

// Histogram converts a binned result into the terminal plotter's form.
// Bars scale from zero so empty bins stay visibly empty.
func Histogram(h evalkit.HistogramResult) histogram.Histogram {
	out := histogram.Histogram{
		Buckets: make([]histogram.Bucket, len(h.Frequencies)),
	}
	for i, f := range h.Frequencies {
		out.Buckets[i] = histogram.Bucket{
			Count: f,
			Min:   h.Bins[i],
			Max:   h.Bins[i+1],
		}
		out.Count += f
		if f > out.Max {
			out.Max = f
		}
	}
	return out
}

// FprintHistogram writes h as unicode bars no wider than width.
func FprintHistogram(w io.Writer, h evalkit.HistogramResult, width int) error {
	if len(h.Frequencies) == 0 || len(h.Bins) != len(h.Frequencies)+1 {
		return fmt.Errorf("%w: histogram has %d edges for %d bins",
			evalkit.ErrInvalidInput, len(h.Bins), len(h.Frequencies))
	}
	return histogram.Fprint(w, Histogram(h), histogram.Linear(width))
}

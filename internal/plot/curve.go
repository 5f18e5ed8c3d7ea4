// Package plot renders curves and histograms for the command-line tools.
package plot

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	evalkit "github.com/jamesainslie/go-evalkit"
)

// Format selects the image encoding.
type Format int

const (
	PNG Format = iota
	SVG
)

// FormatFor picks SVG for ".svg" paths and PNG otherwise.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return SVG
	}
	return PNG
}

// Series is one named curve.
type Series struct {
	Name   string
	Points []evalkit.Point
}

// Options describes the chart around the curves.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int

	// Diagonal draws the y = x chance line, useful for ROC curves.
	Diagonal bool
}

// CurveOptions returns axis labels suited to kind.
func CurveOptions(kind evalkit.CurveKind) Options {
	if kind == evalkit.PR {
		return Options{Title: "Precision-Recall", XLabel: "Recall", YLabel: "Precision"}
	}
	return Options{Title: "ROC", XLabel: "False positive rate", YLabel: "True positive rate", Diagonal: true}
}

// Curves draws the series on unit axes and writes the image to w.
func Curves(w io.Writer, format Format, opts Options, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: no series to plot", evalkit.ErrInvalidInput)
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20},
		},
		XAxis: chart.XAxis{
			Name:  opts.XLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		YAxis: chart.YAxis{
			Name:  opts.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
	}

	for _, s := range series {
		if len(s.Points) < 2 {
			return fmt.Errorf("%w: series %q has %d points", evalkit.ErrInvalidInput, s.Name, len(s.Points))
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%s (area %.3f)", s.Name, evalkit.Area(s.Points)),
			XValues: xs,
			YValues: ys,
		})
	}

	if opts.Diagonal {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: "chance",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("999999"),
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
		})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	rp := chart.PNG
	if format == SVG {
		rp = chart.SVG
	}
	if err := graph.Render(rp, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

package evalkit

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
)

// Point is a coordinate on a curve: (FPR, TPR) for ROC, (recall, precision) for PR.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CurveKind selects the curve a Synthesizer produces.
type CurveKind int

const (
	ROC CurveKind = iota
	PR
)

func (k CurveKind) String() string {
	switch k {
	case ROC:
		return "roc"
	case PR:
		return "pr"
	default:
		return fmt.Sprintf("CurveKind(%d)", int(k))
	}
}

// ParseCurveKind maps "roc" or "pr" to a CurveKind.
func ParseCurveKind(s string) (CurveKind, error) {
	switch s {
	case "roc", "ROC":
		return ROC, nil
	case "pr", "PR":
		return PR, nil
	}
	return 0, fmt.Errorf("%w: unknown curve kind %q", ErrInvalidInput, s)
}

// Step ranges for synthetic curves. x advances slower than y so the
// ROC bows above the diagonal.
const (
	minStepX = 0.01
	spanX    = 0.10
	minStepY = 0.05
	spanY    = 0.15

	// prFloor is the precision of the forced recall=1 endpoint.
	prFloor = 0.1
)

// Synthesizer produces plausible ROC and PR point sequences from a random source.
// It is safe for concurrent use.
type Synthesizer struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSynthesizer creates a Synthesizer. Without WithSeed or WithSource the
// output differs between runs.
func NewSynthesizer(opts ...Option) *Synthesizer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Synthesizer{
		rng:    rand.New(cfg.source),
		logger: cfg.logger,
	}
}

// ROC is shorthand for Generate(ROC, pointCount).
func (s *Synthesizer) ROC(pointCount int) ([]Point, error) {
	return s.Generate(ROC, pointCount)
}

// PR is shorthand for Generate(PR, pointCount).
func (s *Synthesizer) PR(pointCount int) ([]Point, error) {
	return s.Generate(PR, pointCount)
}

// Generate returns exactly pointCount points of the requested curve.
//
// ROC curves start at (0,0), end at (1,1) and never decrease in either
// coordinate. PR curves start at (recall 0, precision 1), never decrease in
// recall, never increase in precision and end at recall 1.
func (s *Synthesizer) Generate(kind CurveKind, pointCount int) ([]Point, error) {
	if pointCount < 2 {
		return nil, fmt.Errorf("%w: point count %d, need at least 2", ErrInvalidInput, pointCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var points []Point
	switch kind {
	case ROC:
		points = s.roc(pointCount)
	case PR:
		points = s.pr(pointCount)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, kind)
	}

	s.logger.Debug("synthesized curve", "kind", kind.String(), "points", len(points))
	return points, nil
}

func (s *Synthesizer) roc(n int) []Point {
	points := make([]Point, 0, n)
	points = append(points, Point{X: 0, Y: 0})

	var x, y float64
	for i := 0; i < n-2; i++ {
		x = math.Min(x+minStepX+s.rng.Float64()*spanX, 1)
		y = math.Min(y+minStepY+s.rng.Float64()*spanY, 1)
		points = append(points, Point{X: x, Y: y})
	}

	return append(points, Point{X: 1, Y: 1})
}

func (s *Synthesizer) pr(n int) []Point {
	points := make([]Point, 0, n)
	points = append(points, Point{X: 0, Y: 1})

	recall, precision := 0.0, 1.0
	for i := 0; i < n-2; i++ {
		precision = math.Max(precision-minStepX-s.rng.Float64()*spanX, 0)
		recall = math.Min(recall+minStepY+s.rng.Float64()*spanY, 1)
		points = append(points, Point{X: recall, Y: precision})
	}

	return append(points, Point{X: 1, Y: math.Min(precision, prFloor)})
}

package evalkit

// TrapezoidalArea integrates y over x with the trapezoidal rule. Points must
// be sorted ascending by x. Pairs are summed left to right in input order;
// fewer than two points yield 0.
func TrapezoidalArea[T any](points []T, x, y func(T) float64) float64 {
	if len(points) < 2 {
		return 0
	}

	area := 0.0
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		// Explicit conversion keeps the compiler from fusing the multiply into the add.
		area += float64((y(cur) + y(prev)) * (x(cur) - x(prev)) / 2)
	}
	return area
}

// Area is TrapezoidalArea over Point.X and Point.Y. For a ROC curve this is
// the AUC; for a PR curve (X = recall) it is the average precision.
func Area(points []Point) float64 {
	return TrapezoidalArea(points, pointX, pointY)
}

func pointX(p Point) float64 { return p.X }
func pointY(p Point) float64 { return p.Y }

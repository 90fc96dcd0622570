package domain

import "fmt"

// planePoint is one point of the plane during construction. Finite
// points use coordinates in [0, order); the point at infinity for slope
// m is (m, -1) and the vertical/universal point is (-1, -1).
type planePoint struct {
	x, y int
}

// ConstructPlane builds the finite projective plane of the given prime
// order and returns its lines as point-index sets. Every line has
// order+1 points, there are order²+order+1 lines, and any two lines
// meet in exactly one point.
//
// Point indices are assigned once per call: finite points (x, y) in
// row-major order first, then one infinity point per slope, then the
// universal point closing the range at order²+order.
func ConstructPlane(order int) ([][]int, error) {
	if !IsPrime(order) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}

	n := order
	totalPoints := n*n + n + 1

	points := make([]planePoint, 0, totalPoints)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			points = append(points, planePoint{x, y})
		}
	}
	for m := 0; m < n; m++ {
		points = append(points, planePoint{m, -1})
	}
	points = append(points, planePoint{-1, -1})

	// Reverse lookup built once so line construction never scans.
	index := make(map[planePoint]int, len(points))
	for i, p := range points {
		index[p] = i
	}

	lines := make([][]int, 0, totalPoints)

	// One line per (slope, intercept): y = m·x + b over GF(n), closed by
	// the infinity point of that slope.
	for m := 0; m < n; m++ {
		for b := 0; b < n; b++ {
			line := make([]int, 0, n+1)
			for x := 0; x < n; x++ {
				line = append(line, index[planePoint{x, (m*x + b) % n}])
			}
			line = append(line, index[planePoint{m, -1}])
			lines = append(lines, line)
		}
	}

	// Vertical lines x = c all share the universal point.
	for c := 0; c < n; c++ {
		line := make([]int, 0, n+1)
		for y := 0; y < n; y++ {
			line = append(line, index[planePoint{c, y}])
		}
		line = append(line, index[planePoint{-1, -1}])
		lines = append(lines, line)
	}

	// The line at infinity collects every infinity point.
	atInfinity := make([]int, 0, n+1)
	for m := 0; m < n; m++ {
		atInfinity = append(atInfinity, index[planePoint{m, -1}])
	}
	atInfinity = append(atInfinity, index[planePoint{-1, -1}])
	lines = append(lines, atInfinity)

	// Point/line duality is structural, not incidental.
	if len(lines) != totalPoints {
		return nil, fmt.Errorf("plane of order %d: built %d lines, want %d", n, len(lines), totalPoints)
	}
	if err := VerifyDeck(lines); err != nil {
		return nil, fmt.Errorf("plane of order %d: %w", n, err)
	}

	return lines, nil
}

package pathgraph

import (
	"fmt"
	"math"
)

// CubicBezier is a cubic Bézier curve from P0 to P3 with control points P1 and P2. Straight lines and quadratic Béziers are represented by their degree elevation.
type CubicBezier struct {
	P0, P1, P2, P3 Point
}

// lineToCubicBezier returns the cubic Bézier of a straight line, with its control points at 1/3 and 2/3 of the line.
func lineToCubicBezier(p0, p1 Point) CubicBezier {
	return CubicBezier{p0, p0.Interpolate(p1, 1.0/3.0), p0.Interpolate(p1, 2.0/3.0), p1}
}

func quadraticToCubicBezier(p0, p1, p2 Point) CubicBezier {
	c1 := p0.Interpolate(p1, 2.0/3.0)
	c2 := p2.Interpolate(p1, 2.0/3.0)
	return CubicBezier{p0, c1, c2, p2}
}

// Pos returns the position on the curve at t.
func (c CubicBezier) Pos(t float64) Point {
	p0 := c.P0.Mul(1.0 - 3.0*t + 3.0*t*t - t*t*t)
	p1 := c.P1.Mul(3.0*t - 6.0*t*t + 3.0*t*t*t)
	p2 := c.P2.Mul(3.0*t*t - 3.0*t*t*t)
	p3 := c.P3.Mul(t * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

// Deriv returns the derivative of the curve at t.
func (c CubicBezier) Deriv(t float64) Point {
	p0 := c.P0.Mul(-3.0 + 6.0*t - 3.0*t*t)
	p1 := c.P1.Mul(3.0 - 12.0*t + 9.0*t*t)
	p2 := c.P2.Mul(6.0*t - 9.0*t*t)
	p3 := c.P3.Mul(3.0 * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

// Split subdivides the curve at t using De Casteljau's algorithm, returning the curve before and after t.
func (c CubicBezier) Split(t float64) (CubicBezier, CubicBezier) {
	pm := c.P1.Interpolate(c.P2, t)

	q0 := c.P0
	q1 := c.P0.Interpolate(c.P1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := c.P3
	r2 := c.P2.Interpolate(c.P3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return CubicBezier{q0, q1, q2, q3}, CubicBezier{r0, r1, r2, r3}
}

// Reverse returns the same curve traversed from P3 to P0.
func (c CubicBezier) Reverse() CubicBezier {
	return CubicBezier{c.P3, c.P2, c.P1, c.P0}
}

// ControlPoints returns both control points.
func (c CubicBezier) ControlPoints() (Point, Point) {
	return c.P1, c.P2
}

// FastBounds returns the bounding box of the control polygon, which always contains the curve.
func (c CubicBezier) FastBounds() Rect {
	return RectFromPoints(c.P0, c.P1, c.P2, c.P3)
}

// Bounds returns the tight bounding box of the curve.
func (c CubicBezier) Bounds() Rect {
	r := RectFromPoints(c.P0, c.P3)

	// extrema are where the derivative is zero, per dimension
	a := c.P1.Mul(3.0).Sub(c.P0).Sub(c.P2.Mul(3.0)).Add(c.P3).Mul(3.0)
	b := c.P0.Sub(c.P1.Mul(2.0)).Add(c.P2).Mul(6.0)
	d := c.P1.Sub(c.P0).Mul(3.0)
	tx1, tx2 := solveQuadraticFormula(a.X, b.X, d.X)
	ty1, ty2 := solveQuadraticFormula(a.Y, b.Y, d.Y)
	for _, t := range []float64{tx1, tx2, ty1, ty2} {
		if !math.IsNaN(t) && 0.0 < t && t < 1.0 {
			r = r.Add(RectFromPoints(c.Pos(t)))
		}
	}
	return r
}

// IsLine returns true if the curve is a straight line with its control points at 1/3 and 2/3, so that t is linear along the line.
func (c CubicBezier) IsLine() bool {
	l := lineToCubicBezier(c.P0, c.P3)
	tolerance := math.Max(Epsilon, 1e-9*c.P3.Sub(c.P0).Length())
	return c.P1.IsNear(l.P1, tolerance) && c.P2.IsNear(l.P2, tolerance)
}

func (c CubicBezier) String() string {
	return fmt.Sprintf("%v-%v-%v-%v", c.P0, c.P1, c.P2, c.P3)
}

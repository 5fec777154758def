package pathgraph

import (
	"fmt"
	"math"
	"sort"
)

// see https://www.geometrictools.com/GTE/Mathematics/IntrLine2Line2.h
// see https://www.particleincell.com/2013/cubic-line-intersection/

// Intersections between two curves are returned as pairs of parameters (ta,tb), with ta the position along the first curve and tb the position along the second curve. Curves that touch at their ends intersect. Collinear lines that overlap intersect at the ends of the overlapping part.

// maxClipDepth bounds the recursion of the bounding box clipping, which only reaches this depth for coincident curves.
const maxClipDepth = 32

// rootTolerance is the tolerance on curve parameters found by root finding.
const rootTolerance = 1e-7

func clampT(t float64) float64 {
	return math.Max(0.0, math.Min(1.0, t))
}

func intersectionLineLine(zs [][2]float64, a0, a1, b0, b1 Point) [][2]float64 {
	if a0.Equals(a1) || b0.Equals(b1) {
		return zs // zero-length
	}

	da := a1.Sub(a0)
	db := b1.Sub(b0)
	la, lb := da.Length(), db.Length()
	div := da.PerpDot(db)
	if math.Abs(div) <= Epsilon*la*lb {
		// parallel
		if Epsilon*la < math.Abs(da.PerpDot(b0.Sub(a0))) {
			return zs
		}

		// collinear, find overlapping part along A
		tb0 := b0.Sub(a0).Dot(da) / (la * la)
		tb1 := b1.Sub(a0).Dot(da) / (la * la)
		lo := math.Max(0.0, math.Min(tb0, tb1))
		hi := math.Min(1.0, math.Max(tb0, tb1))
		if hi < lo-rootTolerance {
			return zs
		}
		posB := func(ta float64) float64 {
			return clampT(a0.Add(da.Mul(ta)).Sub(b0).Dot(db) / (lb * lb))
		}
		zs = append(zs, [2]float64{lo, posB(lo)})
		if rootTolerance < hi-lo {
			zs = append(zs, [2]float64{hi, posB(hi)})
		}
		return zs
	}

	ta := b0.Sub(a0).PerpDot(db) / div
	tb := b0.Sub(a0).PerpDot(da) / div
	if -rootTolerance <= ta && ta <= 1.0+rootTolerance && -rootTolerance <= tb && tb <= 1.0+rootTolerance {
		zs = append(zs, [2]float64{clampT(ta), clampT(tb)})
	}
	return zs
}

// cubicRoots returns the parameters in [0,1] where the signed distances s of the control points, seen as a cubic Bézier polynomial, become zero.
func cubicRoots(s0, s1, s2, s3 float64) []float64 {
	a := -s0 + 3.0*s1 - 3.0*s2 + s3
	b := 3.0*s0 - 6.0*s1 + 3.0*s2
	c := -3.0*s0 + 3.0*s1
	d := s0
	if Equal(a, 0.0) && Equal(b, 0.0) && Equal(c, 0.0) && Equal(d, 0.0) {
		return nil // curve lies on the line
	}

	f := func(t float64) float64 {
		return ((a*t+b)*t+c)*t + d
	}
	df := func(t float64) float64 {
		return (3.0*a*t+2.0*b)*t + c
	}

	roots := []float64{}
	r0, r1, r2 := solveCubicFormula(a, b, c, d)
	for _, root := range []float64{r0, r1, r2} {
		if math.IsNaN(root) || root < -rootTolerance || 1.0+rootTolerance < root {
			continue
		}

		// polish with Newton's method
		for i := 0; i < 2; i++ {
			if deriv := df(root); !Equal(deriv, 0.0) {
				if next := root - f(root)/deriv; !math.IsNaN(next) && math.Abs(next-root) < 1e-3 {
					root = next
				}
			}
		}
		root = clampT(root)
		if 0 < len(roots) && math.Abs(roots[len(roots)-1]-root) < rootTolerance {
			continue
		}
		roots = append(roots, root)
	}
	return roots
}

// intersectionLineCubic returns (tl,tc) pairs with tl the position along the line and tc the position along the curve.
func intersectionLineCubic(zs [][2]float64, l0, l1 Point, c CubicBezier) [][2]float64 {
	if l0.Equals(l1) {
		return zs // zero-length
	}

	d := l1.Sub(l0)
	n := Point{-d.Y, d.X}.Div(d.Length())
	for _, tc := range cubicRoots(n.Dot(c.P0.Sub(l0)), n.Dot(c.P1.Sub(l0)), n.Dot(c.P2.Sub(l0)), n.Dot(c.P3.Sub(l0))) {
		tl := c.Pos(tc).Sub(l0).Dot(d) / d.Dot(d)
		if -rootTolerance <= tl && tl <= 1.0+rootTolerance {
			zs = append(zs, [2]float64{clampT(tl), tc})
		}
	}
	return zs
}

// intersectionCubicCubic finds the intersections between two cubic Béziers. Lines are solved exactly, other curves are clipped by recursively subdividing them while their bounding boxes overlap, until both boxes are smaller than accuracy. Each chain of touching boxes is then refined to its intersections by Newton's method.
func intersectionCubicCubic(a, b CubicBezier, accuracy float64) [][2]float64 {
	lineA, lineB := a.IsLine(), b.IsLine()
	if lineA && lineB {
		return intersectionLineLine(nil, a.P0, a.P3, b.P0, b.P3)
	} else if lineA {
		return intersectionLineCubic(nil, a.P0, a.P3, b)
	} else if lineB {
		zs := intersectionLineCubic(nil, b.P0, b.P3, a)
		for i := range zs {
			zs[i][0], zs[i][1] = zs[i][1], zs[i][0]
		}
		return zs
	}

	accuracy = math.Max(accuracy, Epsilon)
	leaves := clipCubicCubic(nil, a, 0.0, 1.0, b, 0.0, 1.0, accuracy, 0)
	if len(leaves) == 0 {
		return nil
	}

	// subdivision finds each intersection in a chain of neighbouring boxes, which for shallow angles extends far along the curves
	group := make([]int, len(leaves))
	for i := range group {
		group[i] = i
	}
	find := func(i int) int {
		for group[i] != i {
			group[i] = group[group[i]]
			i = group[i]
		}
		return i
	}
	for i := range leaves {
		for j := 0; j < i; j++ {
			if leaves[i].touches(leaves[j]) {
				group[find(i)] = find(j)
			}
		}
	}

	roots := cubicCubicRoots{a: a, b: b, accuracy: accuracy}
	for g := range leaves {
		if find(g) != g {
			continue
		}

		// refine from every box, a group may hold more than one intersection
		found := false
		best, bestDist := [2]float64{}, math.Inf(1)
		for i, leaf := range leaves {
			if find(i) != g {
				continue
			}
			ta, tb := leaf.mid()
			if rta, rtb, ok := newtonCubicCubic(a, b, ta, tb); ok {
				roots.add(rta, rtb)
				found = true
			} else if d := a.Pos(ta).Distance(b.Pos(tb)); d < bestDist {
				best, bestDist = [2]float64{ta, tb}, d
			}
		}
		if !found {
			// touching curves, keep the closest match
			roots.add(best[0], best[1])
		}
	}

	sort.Slice(roots.zs, func(i, j int) bool {
		if roots.zs[i][0] == roots.zs[j][0] {
			return roots.zs[i][1] < roots.zs[j][1]
		}
		return roots.zs[i][0] < roots.zs[j][0]
	})
	return roots.zs
}

// clipLeaf is a pair of overlapping parameter intervals on both curves, where both curve pieces are smaller than the accuracy.
type clipLeaf struct {
	ta0, ta1, tb0, tb1 float64
}

func (l clipLeaf) mid() (float64, float64) {
	return (l.ta0 + l.ta1) / 2.0, (l.tb0 + l.tb1) / 2.0
}

func (l clipLeaf) touches(m clipLeaf) bool {
	return l.ta0 <= m.ta1 && m.ta0 <= l.ta1 && l.tb0 <= m.tb1 && m.tb0 <= l.tb1
}

func clipCubicCubic(leaves []clipLeaf, a CubicBezier, ta0, ta1 float64, b CubicBezier, tb0, tb1 float64, accuracy float64, depth int) []clipLeaf {
	ra, rb := a.FastBounds(), b.FastBounds()
	if !ra.Overlaps(rb) {
		return leaves
	}

	sizeA := math.Max(ra.W(), ra.H())
	sizeB := math.Max(rb.W(), rb.H())
	if sizeA <= accuracy && sizeB <= accuracy || maxClipDepth <= depth {
		return append(leaves, clipLeaf{ta0, ta1, tb0, tb1})
	}

	if accuracy < sizeA && accuracy < sizeB {
		a0, a1 := a.Split(0.5)
		b0, b1 := b.Split(0.5)
		tam, tbm := (ta0+ta1)/2.0, (tb0+tb1)/2.0
		leaves = clipCubicCubic(leaves, a0, ta0, tam, b0, tb0, tbm, accuracy, depth+1)
		leaves = clipCubicCubic(leaves, a0, ta0, tam, b1, tbm, tb1, accuracy, depth+1)
		leaves = clipCubicCubic(leaves, a1, tam, ta1, b0, tb0, tbm, accuracy, depth+1)
		leaves = clipCubicCubic(leaves, a1, tam, ta1, b1, tbm, tb1, accuracy, depth+1)
	} else if accuracy < sizeA {
		a0, a1 := a.Split(0.5)
		tam := (ta0 + ta1) / 2.0
		leaves = clipCubicCubic(leaves, a0, ta0, tam, b, tb0, tb1, accuracy, depth+1)
		leaves = clipCubicCubic(leaves, a1, tam, ta1, b, tb0, tb1, accuracy, depth+1)
	} else {
		b0, b1 := b.Split(0.5)
		tbm := (tb0 + tb1) / 2.0
		leaves = clipCubicCubic(leaves, a, ta0, ta1, b0, tb0, tbm, accuracy, depth+1)
		leaves = clipCubicCubic(leaves, a, ta0, ta1, b1, tbm, tb1, accuracy, depth+1)
	}
	return leaves
}

// maxNewtonIterations bounds the refinement of an intersection between two curves.
const maxNewtonIterations = 20

// newtonCubicCubic refines (ta,tb) to where a and b intersect by Newton's method on a(ta)-b(tb). It returns false if it does not converge within [0,1], such as for curves that touch.
func newtonCubicCubic(a, b CubicBezier, ta, tb float64) (float64, float64, bool) {
	converged := false
	for i := 0; i < maxNewtonIterations; i++ {
		f := a.Pos(ta).Sub(b.Pos(tb))
		if f.Length() < rootTolerance {
			converged = true
			break
		}
		da, db := a.Deriv(ta), b.Deriv(tb)
		det := da.PerpDot(db)
		if math.Abs(det) < Epsilon {
			return ta, tb, false
		}
		ta -= f.PerpDot(db) / det
		tb += da.PerpDot(f) / det
	}
	if !converged && rootTolerance <= a.Pos(ta).Distance(b.Pos(tb)) {
		return ta, tb, false
	} else if ta < -rootTolerance || 1.0+rootTolerance < ta || tb < -rootTolerance || 1.0+rootTolerance < tb {
		return ta, tb, false
	}
	return clampT(ta), clampT(tb), true
}

// cubicCubicRoots collects intersections, merging those that lie within accuracy of each other on both curves.
type cubicCubicRoots struct {
	a, b     CubicBezier
	accuracy float64
	zs       [][2]float64
}

func (r *cubicCubicRoots) add(ta, tb float64) {
	pa, pb := r.a.Pos(ta), r.b.Pos(tb)
	for i, z := range r.zs {
		qa, qb := r.a.Pos(z[0]), r.b.Pos(z[1])
		if pa.Distance(qa) < r.accuracy && pb.Distance(qb) < r.accuracy {
			if pa.Distance(pb) < qa.Distance(qb) {
				r.zs[i] = [2]float64{ta, tb}
			}
			return
		}
	}
	r.zs = append(r.zs, [2]float64{ta, tb})
}

////////////////////////////////////////////////////////////////

// Ray is an infinite line through P0 and P1. Positions along the ray are measured from P0 (0) towards P1 (1).
type Ray struct {
	P0, P1 Point
}

// Coefficients returns (a,b,c) of the implicit line equation a*x + b*y + c = 0, normalized so that a*x + b*y + c is the signed distance of (x,y) to the ray.
func (r Ray) Coefficients() (float64, float64, float64) {
	d := r.P1.Sub(r.P0)
	l := d.Length()
	a := -d.Y / l
	b := d.X / l
	c := -(a*r.P0.X + b*r.P0.Y)
	return a, b, c
}

// PosForPoint returns the position along the ray of the projection of p onto the ray.
func (r Ray) PosForPoint(p Point) float64 {
	d := r.P1.Sub(r.P0)
	return p.Sub(r.P0).Dot(d) / d.Dot(d)
}

func (r Ray) String() string {
	return fmt.Sprintf("%v->%v", r.P0, r.P1)
}

type rayHit struct {
	curveT, rayT float64
	pos          Point
}

// intersectionCubicRay returns where the ray crosses or touches the curve.
func intersectionCubicRay(c CubicBezier, ray Ray) []rayHit {
	a, b, k := ray.Coefficients()
	side := func(p Point) float64 {
		return a*p.X + b*p.Y + k
	}

	hits := []rayHit{}
	for _, t := range cubicRoots(side(c.P0), side(c.P1), side(c.P2), side(c.P3)) {
		pos := c.Pos(t)
		hits = append(hits, rayHit{t, ray.PosForPoint(pos), pos})
	}
	return hits
}

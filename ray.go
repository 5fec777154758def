package pathgraph

import (
	"fmt"
	"math"
	"sort"
)

// RayPath is a graph of edges that rays can be cast through, such as a GraphPath or a view restricted to some of its edges.
type RayPath interface {
	NumPoints() int
	PointPos(point int) Point
	NumEdges(point int) int
	EdgeRefs(point int) []EdgeRef
	ReverseEdgeRefs(point int) []EdgeRef
	EdgeCurve(ref EdgeRef) CubicBezier
	EdgeStartIndex(ref EdgeRef) int
	EdgeEndIndex(ref EdgeRef) int

	// NextEdge returns the edge continuing the path after a forward edge.
	NextEdge(ref EdgeRef) (EdgeRef, bool)
}

// RayCollisionKind tells whether a ray collision is at a point where edges branch.
type RayCollisionKind int

// see RayCollisionKind
const (
	SingleEdge RayCollisionKind = iota
	Intersection
)

func (kind RayCollisionKind) String() string {
	switch kind {
	case SingleEdge:
		return "SingleEdge"
	case Intersection:
		return "Intersection"
	}
	return fmt.Sprintf("RayCollisionKind(%d)", int(kind))
}

// RayCollision is where a ray crosses an edge, at position CurveT along the edge and RayT along the ray.
type RayCollision struct {
	Kind   RayCollisionKind
	Edge   EdgeRef
	CurveT float64
	RayT   float64
	Pos    Point
}

func (c RayCollision) String() string {
	return fmt.Sprintf("%v %v t=%v ray=%v %v", c.Kind, c.Edge, num(c.CurveT), num(c.RayT), c.Pos)
}

// rayLine is the implicit equation a*x + b*y + c = 0 of a ray.
type rayLine struct {
	a, b, c float64
}

func newRayLine(ray Ray) rayLine {
	a, b, c := ray.Coefficients()
	return rayLine{a, b, c}
}

// side returns the signed distance of p to the ray.
func (l rayLine) side(p Point) float64 {
	return l.a*p.X + l.b*p.Y + l.c
}

// collinear returns true if all points of the curve lie on the ray.
func (l rayLine) collinear(c CubicBezier) bool {
	return math.Abs(l.side(c.P0)) < SmallDistance && math.Abs(l.side(c.P1)) < SmallDistance && math.Abs(l.side(c.P2)) < SmallDistance && math.Abs(l.side(c.P3)) < SmallDistance
}

// canIntersect returns false if all points of the curve lie strictly on the same side of the ray.
func (l rayLine) canIntersect(c CubicBezier) bool {
	n := sign(l.side(c.P0)) + sign(l.side(c.P1)) + sign(l.side(c.P2)) + sign(l.side(c.P3))
	return -4 < n && n < 4
}

func rayEdges(path RayPath) []EdgeRef {
	refs := []EdgeRef{}
	for i := 0; i < path.NumPoints(); i++ {
		refs = append(refs, path.EdgeRefs(i)...)
	}
	return refs
}

// RayCollisions returns where the ray crosses the edges of the path, ordered by their position along the ray. Collisions where the ray only touches the path are left out, and a crossing through a point or along a section of edges collinear with the ray is reported once.
func RayCollisions(path RayPath, ray Ray) []RayCollision {
	l := newRayLine(ray)
	collisions := collinearRayCollisions(path, ray, l)
	collisions = append(collisions, removeCollisionsBeforeOrAfterCollinearSection(path, l, rawRayCollisions(path, ray, l))...)

	collisions = moveCollisionsAtEndToBeginning(path, collisions)
	collisions = moveCollinearCollisionsToEnd(path, l, collisions)
	collisions = removeGlancingCollisions(path, l, collisions)
	collisions = removeDuplicateCollisionsAtStart(collisions)
	for i, c := range collisions {
		if c.CurveT <= 0.0 && 1 < path.NumEdges(c.Edge.Start) {
			collisions[i].Kind = Intersection
		} else {
			collisions[i].Kind = SingleEdge
		}
	}

	sort.SliceStable(collisions, func(i, j int) bool {
		if collisions[i].RayT != collisions[j].RayT {
			return collisions[i].RayT < collisions[j].RayT
		} else if collisions[i].Edge.Start != collisions[j].Edge.Start {
			return collisions[i].Edge.Start < collisions[j].Edge.Start
		}
		return collisions[i].Edge.Edge < collisions[j].Edge.Edge
	})
	return collisions
}

// RayCollisions returns the collisions of the ray with all edges of the graph.
func (g *GraphPath[L]) RayCollisions(ray Ray) []RayCollision {
	return RayCollisions(g, ray)
}

// rawRayCollisions intersects the ray with every edge that is not collinear with it.
func rawRayCollisions(path RayPath, ray Ray, l rayLine) []RayCollision {
	collisions := []RayCollision{}
	for _, ref := range rayEdges(path) {
		c := path.EdgeCurve(ref)
		if l.collinear(c) || !l.canIntersect(c) {
			continue
		}
		for _, hit := range intersectionCubicRay(c, ray) {
			collisions = append(collisions, RayCollision{
				Edge:   ref,
				CurveT: hit.curveT,
				RayT:   hit.rayT,
				Pos:    hit.pos,
			})
		}
	}
	return collisions
}

// collinearRayCollisions groups the points connected by edges collinear with the ray into sections, and returns a collision for each edge that crosses the ray through a section.
func collinearRayCollisions(path RayPath, ray Ray, l rayLine) []RayCollision {
	section := make([]int, path.NumPoints())
	for i := range section {
		section[i] = -1
	}
	sections := [][]int{}
	for _, ref := range rayEdges(path) {
		if !l.collinear(path.EdgeCurve(ref)) {
			continue
		}

		start, end := path.EdgeStartIndex(ref), path.EdgeEndIndex(ref)
		if section[start] == -1 && section[end] == -1 {
			section[start] = len(sections)
			section[end] = len(sections)
			if start == end {
				sections = append(sections, []int{start})
			} else {
				sections = append(sections, []int{start, end})
			}
		} else if section[start] == -1 {
			section[start] = section[end]
			sections[section[end]] = append(sections[section[end]], start)
		} else if section[end] == -1 {
			section[end] = section[start]
			sections[section[start]] = append(sections[section[start]], end)
		} else if section[start] != section[end] {
			// join both sections
			keep, drop := section[start], section[end]
			for _, point := range sections[drop] {
				section[point] = keep
			}
			sections[keep] = append(sections[keep], sections[drop]...)
			sections[drop] = nil
		}
	}

	collisions := []RayCollision{}
	for _, points := range sections {
		for _, ref := range crossingEdges(path, l, points) {
			pos := path.PointPos(path.EdgeStartIndex(ref))
			collisions = append(collisions, RayCollision{
				Edge:   ref,
				CurveT: 0.0,
				RayT:   ray.PosForPoint(pos),
				Pos:    pos,
			})
		}
	}
	return collisions
}

// crossingEdges returns the edges leaving a collinear section for which the edge that entered the section came from the other side of the ray.
func crossingEdges(path RayPath, l rayLine, points []int) []EdgeRef {
	maxSteps := len(rayEdges(path))
	crossing := []EdgeRef{}
	for _, point := range points {
		for _, incoming := range path.ReverseEdgeRefs(point) {
			incoming = incoming.Reversed()
			in := path.EdgeCurve(incoming)
			if l.collinear(in) {
				continue
			}

			leaving, ok := path.NextEdge(incoming)
			if !ok {
				continue
			}
			out := path.EdgeCurve(leaving)
			for i := 0; l.collinear(out) && i < maxSteps; i++ {
				if leaving, ok = path.NextEdge(leaving); !ok {
					break
				}
				out = path.EdgeCurve(leaving)
				if path.EdgeStartIndex(leaving) == point {
					break // entirely collinear loop
				}
			}
			if !ok || l.collinear(out) {
				continue
			}

			if math.Signbit(l.side(in.P2)) != math.Signbit(l.side(out.P1)) {
				crossing = append(crossing, leaving)
			}
		}
	}
	return crossing
}

// removeCollisionsBeforeOrAfterCollinearSection removes collisions at the end points of edges that continue into a collinear section, since those crossings are found through the section.
func removeCollisionsBeforeOrAfterCollinearSection(path RayPath, l rayLine, collisions []RayCollision) []RayCollision {
	anyCollinear := func(refs []EdgeRef) bool {
		for _, ref := range refs {
			if l.collinear(path.EdgeCurve(ref)) {
				return true
			}
		}
		return false
	}

	kept := collisions[:0]
	for _, c := range collisions {
		if 0.9 < c.CurveT {
			end := path.EdgeEndIndex(c.Edge)
			if c.Pos.IsNear(path.PointPos(end), SmallDistance) && anyCollinear(path.EdgeRefs(end)) {
				continue
			}
		} else if c.CurveT < 0.1 {
			start := path.EdgeStartIndex(c.Edge)
			if c.Pos.IsNear(path.PointPos(start), SmallDistance) && anyCollinear(path.ReverseEdgeRefs(start)) {
				continue
			}
		}
		kept = append(kept, c)
	}
	return kept
}

// moveCollisionsAtEndToBeginning expresses collisions at the end of an edge as collisions at the start of the following edge, and snaps collisions very near the start of an edge to its start.
func moveCollisionsAtEndToBeginning(path RayPath, collisions []RayCollision) []RayCollision {
	for i, c := range collisions {
		if 0.99999 < c.CurveT {
			if path.PointPos(path.EdgeEndIndex(c.Edge)).IsNear(c.Pos, SmallDistance) {
				if next, ok := path.NextEdge(c.Edge); ok {
					collisions[i].Edge = next
					collisions[i].CurveT = 0.0
				}
			}
		} else if c.CurveT < 0.00001 {
			if path.PointPos(path.EdgeStartIndex(c.Edge)).IsNear(c.Pos, SmallDistance) {
				collisions[i].CurveT = 0.0
			}
		}
	}
	return collisions
}

// moveCollinearCollisionsToEnd moves collisions on edges collinear with the ray to the first edge after the collinear run.
func moveCollinearCollisionsToEnd(path RayPath, l rayLine, collisions []RayCollision) []RayCollision {
	maxSteps := len(rayEdges(path))
	for i, c := range collisions {
		if !l.collinear(path.EdgeCurve(c.Edge)) {
			continue
		}

		ref := c.Edge
		for j := 0; j < maxSteps; j++ {
			next, ok := path.NextEdge(ref)
			if !ok {
				break
			}
			ref = next
			if !l.collinear(path.EdgeCurve(ref)) {
				break
			}
		}
		collisions[i].Edge = ref
		collisions[i].CurveT = 0.0
		collisions[i].Pos = path.PointPos(path.EdgeStartIndex(ref))
	}
	return collisions
}

// removeGlancingCollisions removes collisions at the start of an edge where the previous edge arrives from the same side of the ray as the edge leaves to, so that the ray touches the path without crossing it.
func removeGlancingCollisions(path RayPath, l rayLine, collisions []RayCollision) []RayCollision {
	snapSide := func(side float64) int {
		if math.Abs(side) < 0.001 {
			return 0
		}
		return sign(side)
	}

	kept := collisions[:0]
	for _, c := range collisions {
		if c.CurveT <= 0.0 {
			if previous, ok := previousEdge(path, c.Edge); ok {
				in := path.EdgeCurve(previous)
				out := path.EdgeCurve(c.Edge)
				if snapSide(l.side(in.P2)) == snapSide(l.side(out.P1)) {
					continue
				}
			}
		}
		kept = append(kept, c)
	}
	return kept
}

// previousEdge returns the forward edge that is followed by ref.
func previousEdge(path RayPath, ref EdgeRef) (EdgeRef, bool) {
	for _, incoming := range path.ReverseEdgeRefs(ref.Start) {
		incoming = incoming.Reversed()
		if next, ok := path.NextEdge(incoming); ok && next == ref {
			return incoming, true
		}
	}
	return EdgeRef{}, false
}

// removeDuplicateCollisionsAtStart keeps one collision at the start of each edge, as a ray through a point collides with both the edge arriving and the edge leaving.
func removeDuplicateCollisionsAtStart(collisions []RayCollision) []RayCollision {
	visited := map[EdgeRef]bool{}
	kept := collisions[:0]
	for _, c := range collisions {
		if c.CurveT <= 0.0 {
			if visited[c.Edge] {
				continue
			}
			visited[c.Edge] = true
		}
		kept = append(kept, c)
	}
	return kept
}

////////////////////////////////////////////////////////////////

type labelView[L any] struct {
	*GraphPath[L]
	match func(L) bool
}

// LabelView returns the graph restricted to the edges whose label matches. Point and edge indices are those of the graph.
func (g *GraphPath[L]) LabelView(match func(L) bool) RayPath {
	return labelView[L]{g, match}
}

func (v labelView[L]) matches(ref EdgeRef) bool {
	return v.match(v.points[ref.Start].edges[ref.Edge].label)
}

func (v labelView[L]) filter(refs []EdgeRef) []EdgeRef {
	kept := refs[:0]
	for _, ref := range refs {
		if v.matches(ref) {
			kept = append(kept, ref)
		}
	}
	return kept
}

func (v labelView[L]) NumEdges(point int) int {
	return len(v.EdgeRefs(point))
}

func (v labelView[L]) EdgeRefs(point int) []EdgeRef {
	return v.filter(v.GraphPath.EdgeRefs(point))
}

func (v labelView[L]) ReverseEdgeRefs(point int) []EdgeRef {
	return v.filter(v.GraphPath.ReverseEdgeRefs(point))
}

func (v labelView[L]) NextEdge(ref EdgeRef) (EdgeRef, bool) {
	next, ok := v.GraphPath.NextEdge(ref)
	if !ok || !v.matches(next) {
		return EdgeRef{}, false
	}
	return next, true
}

// PointInside returns true if p lies inside the path by the even-odd rule, counting the crossings of a horizontal ray starting at p. Points on the path give an undefined result.
func PointInside(path RayPath, p Point) bool {
	n := 0
	for _, c := range RayCollisions(path, Ray{p, p.Add(Point{1.0, 0.0})}) {
		if Epsilon < c.RayT {
			n++
		}
	}
	return n%2 == 1
}

// PathContainsPoint returns true if p lies inside path by the even-odd rule.
func PathContainsPoint(path *Path, p Point) bool {
	return PointInside(GraphPathFromPath(path, 0), p)
}

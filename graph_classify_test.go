package pathgraph

import (
	"math"
	"testing"

	"github.com/paulmach/orb/planar"
	"github.com/tdewolff/test"
)

func pickFirst[L any](g *GraphPath[L], last GraphEdge[L], candidates []GraphEdge[L]) EdgeRef {
	return candidates[0].Ref()
}

// outsideOthers returns true if the middle of the edge lies outside the edges with a different label.
func outsideOthers(g *GraphPath[int], edge GraphEdge[int]) bool {
	label := edge.Label()
	others := g.LabelView(func(l int) bool { return l != label })
	return !PointInside(others, edge.Curve().Pos(0.5))
}

// pickUnion follows the forward edges that lie outside the other paths, so that the walk keeps the orientation of the paths.
func pickUnion(g *GraphPath[int], last GraphEdge[int], candidates []GraphEdge[int]) EdgeRef {
	for _, candidate := range candidates {
		if !candidate.IsReversed() && outsideOthers(g, candidate) {
			return candidate.Ref()
		}
	}
	return candidates[0].Ref()
}

// classifyUnion starts a walk from every uncategorised edge that lies outside the other paths.
func classifyUnion(g *GraphPath[int]) {
	for i := 0; i < g.NumPoints(); i++ {
		for _, edge := range g.Edges(i) {
			if edge.Kind() == Uncategorised && outsideOthers(g, edge) {
				g.ClassifyExteriorEdges(edge.Ref(), pickUnion)
			}
		}
	}
}

func kinds(g *GraphPath[int]) map[EdgeRef]EdgeKind {
	m := map[EdgeRef]EdgeKind{}
	for _, edge := range g.AllEdges() {
		m[edge.Ref()] = edge.Kind()
	}
	return m
}

func TestClassifySquare(t *testing.T) {
	g := GraphPathFromPath(MustParseSVG("M0 0L2 0L2 2L0 2z"), 0)
	g.ClassifyExteriorEdges(EdgeRef{0, 0, false}, pickFirst[int])
	test.T(t, g.Kinds(), map[EdgeKind]int{Exterior: 4})

	ps := g.ExteriorPaths()
	test.T(t, len(ps), 1)
	test.T(t, ps[0], MustParseSVG("M0 0L2 0L2 2L0 2z"))

	// walking again stops immediately
	g.ClassifyExteriorEdges(EdgeRef{2, 0, false}, pickFirst[int])
	test.T(t, g.Kinds(), map[EdgeKind]int{Exterior: 4})
}

func TestClassifyReversed(t *testing.T) {
	g := GraphPathFromPath(MustParseSVG("M0 0L2 0L2 2L0 2z"), 0)
	g.ClassifyExteriorEdges(EdgeRef{3, 0, true}, pickFirst[int])
	test.T(t, g.Kinds(), map[EdgeKind]int{Exterior: 4})
	test.T(t, len(g.ExteriorPaths()), 1)
}

func TestClassifyCurve(t *testing.T) {
	g := GraphPathFromPath(MustParseSVG("M0 0C0 2 2 2 2 0z"), 0)
	g.ClassifyExteriorEdges(EdgeRef{0, 0, false}, pickFirst[int])
	ps := g.ExteriorPaths()
	test.T(t, len(ps), 1)
	test.T(t, ps[0], MustParseSVG("M0 0C0 2 2 2 2 0z"))
}

func TestClassifyUnion(t *testing.T) {
	g := overlappingSquares()
	g.ClassifyExteriorEdges(EdgeRef{0, 0, false}, pickUnion)
	test.T(t, g.Kinds(), map[EdgeKind]int{Exterior: 8, Interior: 4})

	m := kinds(g)
	for _, ref := range []EdgeRef{{0, 0, false}, {1, 0, false}, {9, 1, false}, {5, 0, false}, {6, 0, false}, {7, 0, false}, {8, 0, false}, {3, 0, false}} {
		test.T(t, m[ref], Exterior, ref)
	}
	for _, ref := range []EdgeRef{{9, 0, false}, {2, 0, false}, {8, 1, false}, {4, 0, false}} {
		test.T(t, m[ref], Interior, ref)
	}

	ps := g.ExteriorPaths()
	test.T(t, len(ps), 1)
	test.T(t, ps[0], MustParseSVG("M0 0L2 0L2 1L3 1L3 3L1 3L1 2L0 2z"))
	test.Float(t, math.Abs(planar.Area(RingFromPath(ps[0]))), 7.0)
}

func TestPickUnion(t *testing.T) {
	g := overlappingSquares()
	last := g.Edge(EdgeRef{1, 0, false})
	inside := g.Edge(EdgeRef{9, 0, false})  // (2,1)->(2,2) inside the second square
	outside := g.Edge(EdgeRef{9, 1, false}) // (2,1)->(3,1) outside the first square
	backwards := g.Edge(EdgeRef{1, 0, true})
	test.That(t, !outsideOthers(g, inside))
	test.That(t, outsideOthers(g, outside))
	test.That(t, outsideOthers(g, backwards))

	test.T(t, pickUnion(g, last, []GraphEdge[int]{inside, outside}), outside.Ref())
	test.T(t, pickUnion(g, last, []GraphEdge[int]{inside, backwards}), inside.Ref())
}

func TestClassifyUnionPlus(t *testing.T) {
	plus := MustParseSVG("M-1 -3L1 -3L1 -1L3 -1L3 1L1 1L1 3L-1 3L-1 1L-3 1L-3 -1L-1 -1z")

	// overlapping
	g := GraphPathFromPath(plus, 0)
	g.Collide(GraphPathFromPath(plus.Copy().Translate(2.5, 1.5), 1), 0.01)
	classifyUnion(g)
	test.T(t, g.Kinds(), map[EdgeKind]int{Exterior: 20, Interior: 8})
	ps := g.ExteriorPaths()
	test.T(t, len(ps), 1)
	_, segs := ps[0].Segments()
	test.T(t, len(segs), 20)
	test.Float(t, math.Abs(planar.Area(RingFromPath(ps[0]))), 33.75)

	// disjoint
	g = GraphPathFromPath(plus, 0)
	g.Collide(GraphPathFromPath(plus.Copy().Translate(10.0, 0.0), 1), 0.01)
	classifyUnion(g)
	test.T(t, g.Kinds(), map[EdgeKind]int{Exterior: 24})
	ps = g.ExteriorPaths()
	test.T(t, len(ps), 2)
	for _, p := range ps {
		test.Float(t, math.Abs(planar.Area(RingFromPath(p))), 20.0)
	}
}

func TestClassifyAnnulus(t *testing.T) {
	g := GraphPathFromPath(MustParseSVG("M0 0L4 0L4 4L0 4zM1 1L3 1L3 3L1 3z"), 0)
	g.ClassifyExteriorEdges(EdgeRef{0, 0, false}, pickFirst[int])
	g.ClassifyExteriorEdges(EdgeRef{4, 0, false}, pickFirst[int])
	test.T(t, g.Kinds(), map[EdgeKind]int{Exterior: 8})

	ps := g.ExteriorPaths()
	test.T(t, len(ps), 2)
	test.T(t, ps[0], MustParseSVG("M0 0L4 0L4 4L0 4z"))
	test.T(t, ps[1], MustParseSVG("M1 1L3 1L3 3L1 3z"))
}

func TestClassifyMarksInterior(t *testing.T) {
	g := overlappingSquares()
	g.ClassifyExteriorEdges(EdgeRef{0, 0, false}, pickFirst[int])

	// every edge is connected to the walk
	test.T(t, g.Kinds()[Uncategorised], 0)
	test.That(t, 0 < g.Kinds()[Interior])
}

func TestRemoveInteriorEdges(t *testing.T) {
	g := overlappingSquares()
	g.ClassifyExteriorEdges(EdgeRef{0, 0, false}, pickUnion)
	g.RemoveInteriorEdges()
	test.T(t, g.NumPoints(), 10)
	test.T(t, g.Kinds(), map[EdgeKind]int{Exterior: 8})
	test.T(t, edgeEnds(g, 9), []int{5})
	test.T(t, edgeEnds(g, 8), []int{3})
	test.T(t, g.NumEdges(2), 0)
	test.T(t, g.NumEdges(4), 0)
	checkReverseConnections(t, g)

	// following edges were removed
	_, ok := g.NextEdge(EdgeRef{1, 0, false})
	test.That(t, !ok)
	_, ok = g.NextEdge(EdgeRef{7, 0, false})
	test.That(t, !ok)
	next, ok := g.NextEdge(EdgeRef{8, 0, false})
	test.That(t, ok)
	test.T(t, next, EdgeRef{3, 0, false})
	next, ok = g.NextEdge(EdgeRef{9, 0, false})
	test.That(t, ok)
	test.T(t, next, EdgeRef{5, 0, false})

	ps := g.ExteriorPaths()
	test.T(t, len(ps), 1)
	test.T(t, ps[0], MustParseSVG("M0 0L2 0L2 1L3 1L3 3L1 3L1 2L0 2z"))
}

func TestExteriorPathsOpen(t *testing.T) {
	g := GraphPathFromPath(MustParseSVG("M0 0L2 0L2 2L0 2z"), 0)
	g.points[0].edges[0].kind = Exterior
	g.points[1].edges[0].kind = Exterior

	// an open run of exterior edges is closed by a line
	ps := g.ExteriorPaths()
	test.T(t, len(ps), 1)
	test.T(t, ps[0], MustParseSVG("M0 0L2 0L2 2z"))
}

package pathgraph

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tdewolff/test"
)

func TestPathFromRing(t *testing.T) {
	ring := orb.Ring{{0.0, 0.0}, {2.0, 0.0}, {2.0, 2.0}, {0.0, 2.0}, {0.0, 0.0}}
	test.T(t, PathFromRing(ring), MustParseSVG("M0 0L2 0L2 2L0 2z"))
	test.That(t, PathFromRing(nil).Empty())

	poly := orb.Polygon{ring, orb.Ring{{0.5, 0.5}, {1.5, 0.5}, {1.5, 1.5}, {0.5, 0.5}}}
	p := PathFromPolygon(poly)
	test.T(t, len(p.Split()), 2)
	test.T(t, GraphPathFromPath(p, 0).NumPoints(), 7)
}

func TestRingFromPath(t *testing.T) {
	ring := RingFromPath(MustParseSVG("M0 0L2 0L2 2L0 2z"))
	test.T(t, len(ring), 5)
	test.That(t, ring.Closed())
	test.Float(t, math.Abs(planar.Area(ring)), 4.0)

	// curves are flattened
	ring = RingFromPath(MustParseSVG("M0 0C0 2 2 2 2 0z"))
	test.T(t, len(ring), 1+flattenSegments+1)
	test.That(t, ring.Closed())
	test.That(t, math.Abs(math.Abs(planar.Area(ring))-2.4) < 0.1, planar.Area(ring))

	// only the first subpath
	ring = RingFromPath(MustParseSVG("M0 0L1 0L1 1zM5 5L6 5L6 6z"))
	test.T(t, len(ring), 4)
}

func TestExteriorRings(t *testing.T) {
	g := overlappingSquares()
	g.ClassifyExteriorEdges(EdgeRef{0, 0, false}, pickUnion)
	rings := g.ExteriorRings()
	test.T(t, len(rings), 1)
	test.Float(t, math.Abs(planar.Area(rings[0])), 7.0)
	test.That(t, planar.RingContains(rings[0], orb.Point{2.5, 2.5}))
	test.That(t, !planar.RingContains(rings[0], orb.Point{2.5, 0.5}))
}

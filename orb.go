package pathgraph

import (
	"github.com/paulmach/orb"
)

// flattenSegments is the number of line segments a curved edge is flattened into.
const flattenSegments = 16

// PathFromRing returns the closed path through the points of the ring.
func PathFromRing(ring orb.Ring) *Path {
	p := &Path{}
	if len(ring) == 0 {
		return p
	}
	p.MoveTo(ring[0][0], ring[0][1])
	for _, point := range ring[1:] {
		p.LineTo(point[0], point[1])
	}
	p.Close()
	return p
}

// PathFromPolygon returns the path with a subpath for every ring of the polygon.
func PathFromPolygon(poly orb.Polygon) *Path {
	p := &Path{}
	for _, ring := range poly {
		p = p.Append(PathFromRing(ring))
	}
	return p
}

// RingFromPath returns the points of the first subpath of p as a closed ring, where curves are flattened into line segments.
func RingFromPath(p *Path) orb.Ring {
	start, segs := p.Segments()
	ring := orb.Ring{orb.Point{start.X, start.Y}}
	prev := start
	for _, seg := range segs {
		c := CubicBezier{prev, seg.CP1, seg.CP2, seg.End}
		if !c.IsLine() {
			for i := 1; i < flattenSegments; i++ {
				pos := c.Pos(float64(i) / flattenSegments)
				ring = append(ring, orb.Point{pos.X, pos.Y})
			}
		}
		ring = append(ring, orb.Point{seg.End.X, seg.End.Y})
		prev = seg.End
	}
	if !prev.Equals(start) {
		ring = append(ring, orb.Point{start.X, start.Y})
	}
	return ring
}

// ExteriorRings returns the loops of exterior edges as closed rings.
func (g *GraphPath[L]) ExteriorRings() []orb.Ring {
	rings := []orb.Ring{}
	for _, p := range g.ExteriorPaths() {
		rings = append(rings, RingFromPath(p))
	}
	return rings
}

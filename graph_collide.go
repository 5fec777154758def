package pathgraph

// tIsZero returns true if t is effectively at the start of a curve.
func tIsZero(t float64) bool {
	return t < 0.01
}

// tIsOne returns true if t is effectively at the end of a curve.
func tIsOne(t float64) bool {
	return 0.99 < t
}

// collisionSide is one of the edges taking part in a collision, with the position along that edge.
type collisionSide struct {
	start, edge int
	t           float64
}

type collision struct {
	src, tgt collisionSide
}

// indexRange is a half-open range of point indices.
type indexRange struct {
	from, to int
}

// edgeSplit describes how join modified the graph, so that pending collisions can be updated.
type edgeSplit struct {
	point int // collision point

	split [2]bool
	start [2]int
	edge  [2]int
	t     [2]float64
	after [2]int // index at the collision point of the part after the split

	unified bool
	old     int // point merged into the collision point
	offset  int // index at the collision point of the first edge moved from old
}

// Collide merges other into g and splits the edges of both graphs where they intersect, so that each intersection becomes a point shared by the edges of both graphs. Accuracy sets how close the intersections of curves are approximated.
func (g *GraphPath[L]) Collide(other *GraphPath[L], accuracy float64) {
	offset := len(g.points)
	g.Merge(other)
	g.detectCollisions(indexRange{0, offset}, indexRange{offset, len(g.points)}, accuracy)
}

// SelfCollide splits the edges of g where they intersect each other. Each pair of edges is considered once.
func (g *GraphPath[L]) SelfCollide(accuracy float64) {
	all := indexRange{0, len(g.points)}
	g.detectCollisions(all, all, accuracy)
}

// detectCollisions finds the intersections between the edges of the points in the from range and those in the to range, and joins the edges at the intersections.
func (g *GraphPath[L]) detectCollisions(from, to indexRange, accuracy float64) {
	self := from == to
	collided := make([]bool, len(g.points))
	collisions := []collision{}
	for srcIdx := from.from; srcIdx < from.to; srcIdx++ {
		for srcEdge := range g.points[srcIdx].edges {
			srcCurve := g.EdgeCurve(EdgeRef{srcIdx, srcEdge, false})
			srcBounds := srcCurve.FastBounds()
			for tgtIdx := to.from; tgtIdx < to.to; tgtIdx++ {
				for tgtEdge := range g.points[tgtIdx].edges {
					if srcIdx == tgtIdx && srcEdge == tgtEdge {
						continue
					} else if self && (tgtIdx < srcIdx || tgtIdx == srcIdx && tgtEdge < srcEdge) {
						continue // pair already considered
					}

					tgtCurve := g.EdgeCurve(EdgeRef{tgtIdx, tgtEdge, false})
					if !srcBounds.Overlaps(tgtCurve.FastBounds()) {
						continue
					}

					for _, z := range intersectionCubicCubic(srcCurve, tgtCurve, accuracy) {
						src := g.collisionSide(srcIdx, srcEdge, z[0])
						tgt := g.collisionSide(tgtIdx, tgtEdge, z[1])
						if src.t == 0.0 && tgt.t == 0.0 && src.start == tgt.start {
							continue // edges are already connected here
						}

						// only one collision exactly on a point
						if src.t == 0.0 {
							if collided[src.start] {
								continue
							}
							collided[src.start] = true
						}
						if tgt.t == 0.0 {
							if collided[tgt.start] {
								continue
							}
							collided[tgt.start] = true
						}
						collisions = append(collisions, collision{src, tgt})
					}
				}
			}
		}
	}
	Logger().Debug("detected collisions", "collisions", len(collisions), "points", len(g.points))

	// apply the collisions one at a time, as each join changes the edges referred to by the remaining collisions
	for 0 < len(collisions) {
		c := collisions[len(collisions)-1]
		collisions = collisions[:len(collisions)-1]

		split, ok := g.joinEdgesAtIntersection(c.src, c.tgt)
		if !ok {
			continue
		}
		for i := range collisions {
			split.update(&collisions[i].src)
			split.update(&collisions[i].tgt)
		}
	}
	g.recalculateReverseConnections()
	Logger().Debug("applied collisions", "points", len(g.points))
}

// collisionSide returns the collision side for position t along an edge. A collision at the end of an edge is expressed at the start of the edge following it.
func (g *GraphPath[L]) collisionSide(start, edge int, t float64) collisionSide {
	if tIsOne(t) {
		e := g.points[start].edges[edge]
		following := e.following
		if following < 0 || len(g.points[e.end].edges) <= following {
			following = 0
		}
		return collisionSide{e.end, following, 0.0}
	} else if tIsZero(t) {
		return collisionSide{start, edge, 0.0}
	}
	return collisionSide{start, edge, t}
}

// update changes a pending collision side that refers to an edge that was split or to a point that was unified.
func (s edgeSplit) update(side *collisionSide) {
	for i := 0; i < 2; i++ {
		if !s.split[i] || side.start != s.start[i] || side.edge != s.edge[i] {
			continue
		}
		if side.t < s.t[i] {
			// before the split, the edge keeps its place
			side.t /= s.t[i]
		} else {
			side.t = (side.t - s.t[i]) / (1.0 - s.t[i])
			side.start = s.point
			side.edge = s.after[i]
		}
		break
	}
	if s.unified && side.start == s.old {
		side.start = s.point
		side.edge += s.offset
	}
}

// joinEdgesAtIntersection splits two edges where they intersect so that they meet at a common point, which is either an end point of the edges or a new point. It returns false if the edges are the same.
func (g *GraphPath[L]) joinEdgesAtIntersection(src, tgt collisionSide) (edgeSplit, bool) {
	if src.start == tgt.start && src.edge == tgt.edge {
		return edgeSplit{}, false
	}

	sides := [2]collisionSide{src, tgt}
	edges := [2]graphEdge[L]{
		g.points[src.start].edges[src.edge],
		g.points[tgt.start].edges[tgt.edge],
	}
	curves := [2]CubicBezier{
		g.EdgeCurve(EdgeRef{src.start, src.edge, false}),
		g.EdgeCurve(EdgeRef{tgt.start, tgt.edge, false}),
	}

	// use an end point of either edge when the collision is at one, otherwise add a new point
	var point int
	if tIsZero(src.t) {
		point = src.start
	} else if tIsOne(src.t) {
		point = edges[0].end
	} else if tIsZero(tgt.t) {
		point = tgt.start
	} else if tIsOne(tgt.t) {
		point = edges[1].end
	} else {
		point = len(g.points)
		g.points = append(g.points, graphPoint[L]{pos: curves[0].Pos(src.t)})
	}

	split := edgeSplit{point: point}
	for i, side := range sides {
		if tIsZero(side.t) || tIsOne(side.t) {
			continue
		} else if side.start == point || edges[i].end == point {
			continue // the edge already starts or ends at the collision point
		}

		before, after := curves[i].Split(side.t)
		split.split[i] = true
		split.start[i] = side.start
		split.edge[i] = side.edge
		split.t[i] = side.t
		split.after[i] = len(g.points[point].edges)

		// the part after the split leaves from the collision point and keeps the kind and label
		g.points[point].edges = append(g.points[point].edges, graphEdge[L]{
			label:     edges[i].label,
			kind:      edges[i].kind,
			cp1:       after.P1,
			cp2:       after.P2,
			end:       edges[i].end,
			following: edges[i].following,
		})

		e := &g.points[side.start].edges[side.edge]
		e.cp1, e.cp2 = before.P1, before.P2
		e.end = point
		e.following = split.after[i]
	}

	// the target edge starts or ends at a point other than the collision point, merge that point into it
	old := -1
	if tIsZero(tgt.t) && tgt.start != point {
		old = tgt.start
	} else if tIsOne(tgt.t) && edges[1].end != point {
		old = edges[1].end
	}
	if old != -1 && !g.adjacent(old, point) {
		split.unified = true
		split.old = old
		split.offset = len(g.points[point].edges)
		for i := range g.points {
			for j := range g.points[i].edges {
				if e := &g.points[i].edges[j]; e.end == old {
					e.end = point
					if 0 <= e.following {
						e.following += split.offset
					}
				}
			}
		}
		g.points[point].edges = append(g.points[point].edges, g.points[old].edges...)
		g.points[old].edges = nil
	}
	return split, true
}

// adjacent returns true if an edge connects points i and j in either direction.
func (g *GraphPath[L]) adjacent(i, j int) bool {
	for _, e := range g.points[i].edges {
		if e.end == j {
			return true
		}
	}
	for _, e := range g.points[j].edges {
		if e.end == i {
			return true
		}
	}
	return false
}

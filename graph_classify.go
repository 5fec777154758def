package pathgraph

// PickEdgeFunc chooses which edge continues the exterior of the shape after the last edge, from the uncategorised edges leaving the end point of the last edge in either direction. It must return the reference of one of the candidates.
type PickEdgeFunc[L any] func(g *GraphPath[L], last GraphEdge[L], candidates []GraphEdge[L]) EdgeRef

// ClassifyExteriorEdges marks edges as exterior by walking from the start edge until it arrives at an edge that is already exterior. Where the walk has a choice of edges, pick decides which edge to follow. Afterwards, all uncategorised edges connected to the walk are marked interior.
func (g *GraphPath[L]) ClassifyExteriorEdges(start EdgeRef, pick PickEdgeFunc[L]) {
	cur := start
	for {
		e := &g.points[cur.Start].edges[cur.Edge]
		if e.kind == Exterior {
			break
		} else if e.kind == Interior {
			Logger().Debug("exterior walk arrived at interior edge", "edge", cur)
			break
		}
		e.setKind(Exterior)

		end := g.EdgeEndIndex(cur)
		reverse := g.ReverseEdgeRefs(end)
		if !cur.Reverse && len(g.points[end].edges) == 1 {
			cur = EdgeRef{end, 0, false}
		} else if cur.Reverse && len(reverse) == 1 {
			cur = reverse[0]
		} else {
			candidates := []GraphEdge[L]{}
			for _, ref := range append(g.EdgeRefs(end), reverse...) {
				if g.points[ref.Start].edges[ref.Edge].kind == Uncategorised {
					candidates = append(candidates, GraphEdge[L]{g, ref})
				}
			}
			if len(candidates) == 0 {
				Logger().Debug("exterior walk has no edges to continue", "point", end)
				break
			}
			cur = pick(g, GraphEdge[L]{g, cur}, candidates)
		}
	}
	g.markConnectedEdgesAsInterior(cur.Start)
}

// markConnectedEdgesAsInterior marks all uncategorised edges reachable from a point as interior.
func (g *GraphPath[L]) markConnectedEdgesAsInterior(start int) {
	visited := make([]bool, len(g.points))
	stack := []int{start}
	for 0 < len(stack) {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[i] {
			continue
		}
		visited[i] = true

		for j := range g.points[i].edges {
			e := &g.points[i].edges[j]
			if e.kind == Uncategorised {
				e.setKind(Interior)
			}
			stack = append(stack, e.end)
		}
	}
}

// RemoveInteriorEdges removes all edges marked as interior. Points are kept so that point indices do not change.
func (g *GraphPath[L]) RemoveInteriorEdges() {
	// new index of every edge, or -1 if removed
	index := make([][]int, len(g.points))
	for i, point := range g.points {
		index[i] = make([]int, len(point.edges))
		n := 0
		for j, edge := range point.edges {
			if edge.kind == Interior {
				index[i][j] = -1
			} else {
				index[i][j] = n
				n++
			}
		}
	}

	for i := range g.points {
		edges := g.points[i].edges[:0]
		for _, edge := range g.points[i].edges {
			if edge.kind == Interior {
				continue
			}
			if 0 <= edge.following {
				edge.following = index[edge.end][edge.following]
			}
			edges = append(edges, edge)
		}
		g.points[i].edges = edges
	}
	g.recalculateReverseConnections()
}

// ExteriorPaths returns the closed paths formed by the exterior edges. Each loop of exterior edges is followed once, continuing in either direction over the exterior edges at each point. A loop that cannot be followed back to its start is closed by a straight line.
func (g *GraphPath[L]) ExteriorPaths() []*Path {
	paths := []*Path{}
	visited := make([]bool, len(g.points))
	for i := range g.points {
		if visited[i] {
			continue
		}

		var cur EdgeRef
		found := false
		for j, edge := range g.points[i].edges {
			if edge.kind == Exterior {
				cur = EdgeRef{i, j, false}
				found = true
				break
			}
		}
		if !found {
			continue
		}

		segs := []PathSegment{}
		closed := false
		for {
			start := g.EdgeStartIndex(cur)
			if visited[start] {
				closed = start == i
				break
			}
			visited[start] = true

			edge := GraphEdge[L]{g, cur}
			cp1, cp2 := edge.ControlPoints()
			segs = append(segs, PathSegment{cp1, cp2, edge.End()})

			next, ok := g.nextExteriorEdge(cur)
			if !ok {
				break
			}
			cur = next
		}
		if !closed {
			Logger().Warn("exterior loop is not closed", "point", i, "segments", len(segs))
		}
		paths = append(paths, PathFromSegments(g.points[i].pos, segs))
	}
	return paths
}

// nextExteriorEdge returns an exterior edge leaving the end point of cur, other than cur itself, preferring forward edges.
func (g *GraphPath[L]) nextExteriorEdge(cur EdgeRef) (EdgeRef, bool) {
	end := g.EdgeEndIndex(cur)
	for _, ref := range append(g.EdgeRefs(end), g.ReverseEdgeRefs(end)...) {
		if ref.Start == cur.Start && ref.Edge == cur.Edge {
			continue
		} else if g.points[ref.Start].edges[ref.Edge].kind == Exterior {
			return ref, true
		}
	}
	return EdgeRef{}, false
}

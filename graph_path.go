package pathgraph

import (
	"fmt"
	"strings"
)

// CloseDistance is the distance below which the end of a path is considered to coincide with its start.
const CloseDistance = 0.01

// SmallDistance is the distance below which points are considered to lie on a ray.
const SmallDistance = 0.001

// EdgeKind is the classification of an edge in a graph path.
type EdgeKind int

// see EdgeKind
const (
	Uncategorised EdgeKind = iota
	Interior
	Exterior
)

func (kind EdgeKind) String() string {
	switch kind {
	case Uncategorised:
		return "Uncategorised"
	case Interior:
		return "Interior"
	case Exterior:
		return "Exterior"
	}
	return fmt.Sprintf("EdgeKind(%d)", int(kind))
}

// EdgeRef references an edge of a graph path by its start point and its index within that point. A reversed reference traverses the same edge from its end point to its start point.
type EdgeRef struct {
	Start, Edge int
	Reverse     bool
}

// Reversed returns the reference traversing the edge in the opposite direction.
func (ref EdgeRef) Reversed() EdgeRef {
	return EdgeRef{ref.Start, ref.Edge, !ref.Reverse}
}

func (ref EdgeRef) String() string {
	if ref.Reverse {
		return fmt.Sprintf("%d.%d'", ref.Start, ref.Edge)
	}
	return fmt.Sprintf("%d.%d", ref.Start, ref.Edge)
}

type graphEdge[L any] struct {
	label    L
	kind     EdgeKind
	cp1, cp2 Point
	end      int

	// index of the edge at the end point that continues the original path, or -1 when it was removed
	following int
}

// setKind changes the edge kind, which may only go from Uncategorised to either Interior or Exterior.
func (e *graphEdge[L]) setKind(kind EdgeKind) {
	if e.kind == kind {
		return
	} else if e.kind != Uncategorised || kind == Uncategorised {
		panic(fmt.Sprintf("bug: edge kind cannot change from %v to %v", e.kind, kind))
	}
	e.kind = kind
}

type graphPoint[L any] struct {
	pos           Point
	edges         []graphEdge[L]
	connectedFrom []int
}

// GraphPath is a planar graph of cubic Bézier edges built from one or more closed paths, where each point can have any number of edges leaving it. Points are stored in an arena and are identified by their index, which never changes once the point is added. Edges carry a label of type L that tells which path they originate from, and a kind that classifies them as interior or exterior to the combined shape.
type GraphPath[L any] struct {
	points []graphPoint[L]
}

// NewGraphPath returns an empty graph path.
func NewGraphPath[L any]() *GraphPath[L] {
	return &GraphPath[L]{}
}

// GraphPathFromPath returns the graph of path p where all edges have the given label. Each subpath is closed, either by joining its last point to its start when they are within CloseDistance, or by adding a straight edge. Subpaths without segments are dropped.
func GraphPathFromPath[L any](p *Path, label L) *GraphPath[L] {
	g := NewGraphPath[L]()
	for _, ps := range p.Split() {
		start, segs := ps.Segments()
		g.Merge(graphPathFromSegments(start, segs, label))
	}
	return g
}

func graphPathFromSegments[L any](start Point, segs []PathSegment, label L) *GraphPath[L] {
	g := NewGraphPath[L]()
	if len(segs) == 0 {
		return g
	}

	g.points = make([]graphPoint[L], 0, len(segs)+1)
	g.points = append(g.points, graphPoint[L]{pos: start})
	for i, seg := range segs {
		g.points = append(g.points, graphPoint[L]{pos: seg.End})
		g.points[i].edges = append(g.points[i].edges, graphEdge[L]{
			label: label,
			cp1:   seg.CP1,
			cp2:   seg.CP2,
			end:   i + 1,
		})
	}

	last := len(g.points) - 1
	if start.Distance(g.points[last].pos) < CloseDistance {
		g.points = g.points[:last]
		g.points[last-1].edges[0].end = 0
	} else {
		c := lineToCubicBezier(g.points[last].pos, start)
		g.points[last].edges = append(g.points[last].edges, graphEdge[L]{
			label: label,
			cp1:   c.P1,
			cp2:   c.P2,
			end:   0,
		})
	}
	g.recalculateReverseConnections()
	return g
}

// LabelledPath is a path with the label given to its edges.
type LabelledPath[L any] struct {
	Path  *Path
	Label L
}

// GraphPathFromMergedPaths returns the graph containing all the given paths without detecting collisions between them.
func GraphPathFromMergedPaths[L any](paths ...LabelledPath[L]) *GraphPath[L] {
	g := NewGraphPath[L]()
	for _, lp := range paths {
		g.Merge(GraphPathFromPath(lp.Path, lp.Label))
	}
	return g
}

// Copy returns a deep copy of the graph.
func (g *GraphPath[L]) Copy() *GraphPath[L] {
	h := &GraphPath[L]{points: make([]graphPoint[L], len(g.points))}
	for i, point := range g.points {
		h.points[i] = graphPoint[L]{
			pos:           point.pos,
			edges:         append([]graphEdge[L]{}, point.edges...),
			connectedFrom: append([]int{}, point.connectedFrom...),
		}
	}
	return h
}

// Merge appends the points and edges of other to g, without detecting collisions. Point indices of other are offset by the number of points in g.
func (g *GraphPath[L]) Merge(other *GraphPath[L]) {
	offset := len(g.points)
	for _, point := range other.points {
		edges := make([]graphEdge[L], len(point.edges))
		for i, edge := range point.edges {
			edge.end += offset
			edges[i] = edge
		}
		g.points = append(g.points, graphPoint[L]{pos: point.pos, edges: edges})
	}
	g.recalculateReverseConnections()
}

// recalculateReverseConnections rebuilds for every point the set of points that have an edge ending at it.
func (g *GraphPath[L]) recalculateReverseConnections() {
	for i := range g.points {
		g.points[i].connectedFrom = g.points[i].connectedFrom[:0]
	}
	for i, point := range g.points {
		for _, edge := range point.edges {
			from := g.points[edge.end].connectedFrom
			if len(from) == 0 || from[len(from)-1] != i {
				g.points[edge.end].connectedFrom = append(from, i)
			}
		}
	}
}

////////////////////////////////////////////////////////////////

// NumPoints returns the number of points. Points are numbered from 0 up to this value.
func (g *GraphPath[L]) NumPoints() int {
	return len(g.points)
}

// NumEdges returns the number of edges leaving a point.
func (g *GraphPath[L]) NumEdges(point int) int {
	return len(g.points[point].edges)
}

// PointPos returns the position of a point.
func (g *GraphPath[L]) PointPos(point int) Point {
	return g.points[point].pos
}

// ConnectedFrom returns the points that have an edge ending at the given point, in increasing order.
func (g *GraphPath[L]) ConnectedFrom(point int) []int {
	return append([]int{}, g.points[point].connectedFrom...)
}

// EdgeRefs returns references to the edges leaving a point.
func (g *GraphPath[L]) EdgeRefs(point int) []EdgeRef {
	refs := make([]EdgeRef, len(g.points[point].edges))
	for i := range g.points[point].edges {
		refs[i] = EdgeRef{point, i, false}
	}
	return refs
}

// ReverseEdgeRefs returns reversed references to the edges arriving at a point, so that they leave from the point.
func (g *GraphPath[L]) ReverseEdgeRefs(point int) []EdgeRef {
	refs := []EdgeRef{}
	for _, from := range g.points[point].connectedFrom {
		for i, edge := range g.points[from].edges {
			if edge.end == point {
				refs = append(refs, EdgeRef{from, i, true})
			}
		}
	}
	return refs
}

// Edge returns the edge for a reference.
func (g *GraphPath[L]) Edge(ref EdgeRef) GraphEdge[L] {
	return GraphEdge[L]{g, ref}
}

// Edges returns the edges leaving a point.
func (g *GraphPath[L]) Edges(point int) []GraphEdge[L] {
	return g.edgesFor(g.EdgeRefs(point))
}

// ReverseEdges returns the edges arriving at a point, reversed.
func (g *GraphPath[L]) ReverseEdges(point int) []GraphEdge[L] {
	return g.edgesFor(g.ReverseEdgeRefs(point))
}

// AllEdges returns all edges in the graph in the order of their start points.
func (g *GraphPath[L]) AllEdges() []GraphEdge[L] {
	edges := []GraphEdge[L]{}
	for i := range g.points {
		edges = append(edges, g.Edges(i)...)
	}
	return edges
}

func (g *GraphPath[L]) edgesFor(refs []EdgeRef) []GraphEdge[L] {
	edges := make([]GraphEdge[L], len(refs))
	for i, ref := range refs {
		edges[i] = GraphEdge[L]{g, ref}
	}
	return edges
}

// EdgeStartIndex returns the index of the point where the referenced edge starts, taking its direction into account.
func (g *GraphPath[L]) EdgeStartIndex(ref EdgeRef) int {
	if ref.Reverse {
		return g.points[ref.Start].edges[ref.Edge].end
	}
	return ref.Start
}

// EdgeEndIndex returns the index of the point where the referenced edge ends, taking its direction into account.
func (g *GraphPath[L]) EdgeEndIndex(ref EdgeRef) int {
	if ref.Reverse {
		return ref.Start
	}
	return g.points[ref.Start].edges[ref.Edge].end
}

// EdgeCurve returns the curve of the referenced edge in the direction of the reference.
func (g *GraphPath[L]) EdgeCurve(ref EdgeRef) CubicBezier {
	e := g.points[ref.Start].edges[ref.Edge]
	c := CubicBezier{g.points[ref.Start].pos, e.cp1, e.cp2, g.points[e.end].pos}
	if ref.Reverse {
		return c.Reverse()
	}
	return c
}

// FollowingEdgeIndex returns the index, at the end point of the (forward) referenced edge, of the edge that continues the path the edge originates from. It returns -1 if that edge has been removed.
func (g *GraphPath[L]) FollowingEdgeIndex(ref EdgeRef) int {
	return g.points[ref.Start].edges[ref.Edge].following
}

// NextEdge returns the edge that continues the path after the (forward) referenced edge.
func (g *GraphPath[L]) NextEdge(ref EdgeRef) (EdgeRef, bool) {
	e := g.points[ref.Start].edges[ref.Edge]
	if e.following < 0 || len(g.points[e.end].edges) <= e.following {
		return EdgeRef{}, false
	}
	return EdgeRef{e.end, e.following, false}, true
}

// Kinds returns the number of edges for each edge kind.
func (g *GraphPath[L]) Kinds() map[EdgeKind]int {
	kinds := map[EdgeKind]int{}
	for _, point := range g.points {
		for _, edge := range point.edges {
			kinds[edge.kind]++
		}
	}
	return kinds
}

func (g *GraphPath[L]) String() string {
	sb := strings.Builder{}
	for i, point := range g.points {
		fmt.Fprintf(&sb, "%d %v:", i, point.pos)
		for j, edge := range point.edges {
			fmt.Fprintf(&sb, " [%d %v->%d %v]", j, edge.kind, edge.end, edge.label)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

////////////////////////////////////////////////////////////////

// GraphEdge is a view on an edge of a graph path in the direction of its reference.
type GraphEdge[L any] struct {
	graph *GraphPath[L]
	ref   EdgeRef
}

func (e GraphEdge[L]) edge() *graphEdge[L] {
	return &e.graph.points[e.ref.Start].edges[e.ref.Edge]
}

// Ref returns the reference to the edge.
func (e GraphEdge[L]) Ref() EdgeRef {
	return e.ref
}

// IsReversed returns true if the edge is traversed from its end to its start.
func (e GraphEdge[L]) IsReversed() bool {
	return e.ref.Reverse
}

// Kind returns the classification of the edge.
func (e GraphEdge[L]) Kind() EdgeKind {
	return e.edge().kind
}

// Label returns the label of the edge.
func (e GraphEdge[L]) Label() L {
	return e.edge().label
}

// StartIndex returns the index of the start point.
func (e GraphEdge[L]) StartIndex() int {
	return e.graph.EdgeStartIndex(e.ref)
}

// EndIndex returns the index of the end point.
func (e GraphEdge[L]) EndIndex() int {
	return e.graph.EdgeEndIndex(e.ref)
}

// Start returns the start point.
func (e GraphEdge[L]) Start() Point {
	return e.graph.points[e.StartIndex()].pos
}

// End returns the end point.
func (e GraphEdge[L]) End() Point {
	return e.graph.points[e.EndIndex()].pos
}

// ControlPoints returns the control points in the direction of the edge.
func (e GraphEdge[L]) ControlPoints() (Point, Point) {
	edge := e.edge()
	if e.ref.Reverse {
		return edge.cp2, edge.cp1
	}
	return edge.cp1, edge.cp2
}

// Curve returns the curve of the edge.
func (e GraphEdge[L]) Curve() CubicBezier {
	return e.graph.EdgeCurve(e.ref)
}

func (e GraphEdge[L]) String() string {
	cp1, cp2 := e.ControlPoints()
	return fmt.Sprintf("%v: %d->%d %v-%v-%v-%v %v", e.ref, e.StartIndex(), e.EndIndex(), e.Start(), cp1, cp2, e.End(), e.Kind())
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/pathgraph"
)

type Collide struct {
	Accuracy float64 `short:"a" default:"0.01" desc:"Accuracy of curve intersections"`
	Verbose  bool    `short:"v" desc:"Log debug information"`
	A        string  `index:"0" desc:"First SVG path"`
	B        string  `index:"1" desc:"Second SVG path"`
}

type Ray struct {
	X0      float64 `desc:"Ray start X"`
	Y0      float64 `desc:"Ray start Y"`
	X1      float64 `default:"1" desc:"Ray direction point X"`
	Y1      float64 `desc:"Ray direction point Y"`
	Verbose bool    `short:"v" desc:"Log debug information"`
	Path    string  `index:"0" desc:"SVG path"`
}

type Exterior struct {
	Verbose bool   `short:"v" desc:"Log debug information"`
	Path    string `index:"0" desc:"SVG path"`
}

type Union struct {
	Accuracy float64 `short:"a" default:"0.01" desc:"Accuracy of curve intersections"`
	Verbose  bool    `short:"v" desc:"Log debug information"`
	A        string  `index:"0" desc:"First SVG path"`
	B        string  `index:"1" desc:"Second SVG path"`
}

func main() {
	root := argp.NewCmd(&Collide{}, "Planar path graph toolkit: collide paths, cast rays, and extract exterior edges")
	root.AddCmd(&Ray{}, "ray", "List the collisions of a ray with a path")
	root.AddCmd(&Exterior{}, "exterior", "Classify all edges of a path as exterior and extract them")
	root.AddCmd(&Union{}, "union", "Union of two paths")
	root.Parse()
	root.PrintHelp()
}

func setVerbose(verbose bool) {
	if verbose {
		pathgraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}

func parsePaths(ss ...string) ([]*pathgraph.Path, error) {
	ps := []*pathgraph.Path{}
	for i, s := range ss {
		p, err := pathgraph.ParseSVG(s)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i+1, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (cmd *Collide) Run() error {
	if cmd.A == "" || cmd.B == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	ps, err := parsePaths(cmd.A, cmd.B)
	if err != nil {
		return err
	}

	g := pathgraph.GraphPathFromPath(ps[0], 0)
	g.Collide(pathgraph.GraphPathFromPath(ps[1], 1), cmd.Accuracy)
	fmt.Println("Points:", g.NumPoints())
	for _, edge := range g.AllEdges() {
		fmt.Println(edge.Label(), edge)
	}
	return nil
}

func (cmd *Ray) Run() error {
	if cmd.Path == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	p, err := pathgraph.ParseSVG(cmd.Path)
	if err != nil {
		return err
	}

	ray := pathgraph.Ray{P0: pathgraph.Point{X: cmd.X0, Y: cmd.Y0}, P1: pathgraph.Point{X: cmd.X1, Y: cmd.Y1}}
	if ray.P0.Equals(ray.P1) {
		return fmt.Errorf("ray start and direction point must differ")
	}

	g := pathgraph.GraphPathFromPath(p, 0)
	collisions := g.RayCollisions(ray)
	fmt.Println("Collisions:", len(collisions))
	for _, c := range collisions {
		fmt.Println(c)
	}
	return nil
}

func (cmd *Exterior) Run() error {
	if cmd.Path == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	p, err := pathgraph.ParseSVG(cmd.Path)
	if err != nil {
		return err
	}

	g := pathgraph.GraphPathFromPath(p, 0)
	for i := 0; i < g.NumPoints(); i++ {
		for _, edge := range g.Edges(i) {
			if edge.Kind() == pathgraph.Uncategorised {
				g.ClassifyExteriorEdges(edge.Ref(), followPath)
			}
		}
	}
	for _, q := range g.ExteriorPaths() {
		fmt.Println(q)
	}
	return nil
}

func (cmd *Union) Run() error {
	if cmd.A == "" || cmd.B == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	ps, err := parsePaths(cmd.A, cmd.B)
	if err != nil {
		return err
	}

	g := pathgraph.GraphPathFromPath(ps[0], 0)
	g.Collide(pathgraph.GraphPathFromPath(ps[1], 1), cmd.Accuracy)
	for i := 0; i < g.NumPoints(); i++ {
		for _, edge := range g.Edges(i) {
			if edge.Kind() == pathgraph.Uncategorised && outsideOthers(g, edge) {
				g.ClassifyExteriorEdges(edge.Ref(), pickUnion)
			}
		}
	}
	for _, q := range g.ExteriorPaths() {
		fmt.Println(q)
	}
	return nil
}

// followPath continues along the original path of the last edge.
func followPath(g *pathgraph.GraphPath[int], last pathgraph.GraphEdge[int], candidates []pathgraph.GraphEdge[int]) pathgraph.EdgeRef {
	for _, candidate := range candidates {
		if !candidate.IsReversed() && candidate.Label() == last.Label() {
			return candidate.Ref()
		}
	}
	return candidates[0].Ref()
}

// outsideOthers returns true if the middle of the edge lies outside the paths of the other labels.
func outsideOthers(g *pathgraph.GraphPath[int], edge pathgraph.GraphEdge[int]) bool {
	label := edge.Label()
	others := g.LabelView(func(l int) bool { return l != label })
	return !pathgraph.PointInside(others, edge.Curve().Pos(0.5))
}

// pickUnion continues along the forward edge that is not inside the other path, so that the walk keeps the orientation of the paths.
func pickUnion(g *pathgraph.GraphPath[int], last pathgraph.GraphEdge[int], candidates []pathgraph.GraphEdge[int]) pathgraph.EdgeRef {
	for _, candidate := range candidates {
		if !candidate.IsReversed() && outsideOthers(g, candidate) {
			return candidate.Ref()
		}
	}
	return candidates[0].Ref()
}

package pathgraph

import (
	"math"
	"strings"
)

// Path commands are stored in the path data at both the start and the end of each segment, which allows iterating forwards and backwards.
const (
	MoveToCmd = 0.0
	LineToCmd = 1.0
	QuadToCmd = 2.0
	CubeToCmd = 3.0
	CloseCmd  = 5.0
)

// cmdLen returns the number of values (including the commands) of the given path command.
func cmdLen(cmd float64) int {
	switch cmd {
	case MoveToCmd, LineToCmd, CloseCmd:
		return 4
	case QuadToCmd:
		return 6
	case CubeToCmd:
		return 8
	}
	panic("unknown path command")
}

// Path defines a vector path in 2D using a series of commands (MoveTo, LineTo, QuadTo, CubeTo, Close). Each command consists of a number of float64 values (depending on the command) that fully define the action. The first value is the command itself (as a float64). The last two values are the end point position of the pen after the action (x,y). QuadTo defines one control point (x,y) in between, and CubeTo defines two control points. Close stores the start position of the subpath as its end point. Every subpath starts with a MoveTo command.
type Path struct {
	d []float64
}

// Empty returns true if p is an empty path or consists of only MoveTos and Closes.
func (p *Path) Empty() bool {
	return p == nil || len(p.d) <= cmdLen(MoveToCmd)
}

// Equals returns true if p and q are equal within tolerance Epsilon.
func (p *Path) Equals(q *Path) bool {
	if len(p.d) != len(q.d) {
		return false
	}
	for i := 0; i < len(p.d); i++ {
		if !Equal(p.d[i], q.d[i]) {
			return false
		}
	}
	return true
}

// Closed returns true if the last subpath of p is a closed path.
func (p *Path) Closed() bool {
	return 0 < len(p.d) && p.d[len(p.d)-1] == CloseCmd
}

// Copy returns a copy of p.
func (p *Path) Copy() *Path {
	q := &Path{d: make([]float64, len(p.d))}
	copy(q.d, p.d)
	return q
}

// Append appends path q to p and returns the extended path p.
func (p *Path) Append(qs ...*Path) *Path {
	if p.Empty() {
		p = &Path{}
	}
	for _, q := range qs {
		if !q.Empty() {
			p.d = append(p.d, q.d...)
		}
	}
	return p
}

// Pos returns the current position of the path, which is the end point of the last command.
func (p *Path) Pos() Point {
	if 0 < len(p.d) {
		return Point{p.d[len(p.d)-3], p.d[len(p.d)-2]}
	}
	return Point{}
}

// StartPos returns the start point of the current subpath, i.e. it returns the position of the last MoveTo command.
func (p *Path) StartPos() Point {
	for i := len(p.d); 0 < i; {
		cmd := p.d[i-1]
		if cmd == MoveToCmd {
			return Point{p.d[i-3], p.d[i-2]}
		}
		i -= cmdLen(cmd)
	}
	return Point{}
}

////////////////////////////////////////////////////////////////

// MoveTo moves the path to (x,y) without connecting the path. It starts a new independent subpath. Multiple subpaths can be useful when negating parts of a previous path by overlapping it with a path in the opposite direction.
func (p *Path) MoveTo(x, y float64) {
	if 0 < len(p.d) && p.d[len(p.d)-1] == MoveToCmd {
		p.d[len(p.d)-3] = x
		p.d[len(p.d)-2] = y
		return
	}
	p.d = append(p.d, MoveToCmd, x, y, MoveToCmd)
}

// LineTo adds a linear path to (x,y).
func (p *Path) LineTo(x, y float64) {
	if len(p.d) == 0 || p.d[len(p.d)-1] == CloseCmd {
		start := p.StartPos()
		p.MoveTo(start.X, start.Y)
	}
	p.d = append(p.d, LineToCmd, x, y, LineToCmd)
}

// QuadTo adds a quadratic Bézier path with control point (cpx,cpy) and end point (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	if len(p.d) == 0 || p.d[len(p.d)-1] == CloseCmd {
		start := p.StartPos()
		p.MoveTo(start.X, start.Y)
	}
	p.d = append(p.d, QuadToCmd, cpx, cpy, x, y, QuadToCmd)
}

// CubeTo adds a cubic Bézier path with control points (cpx1,cpy1) and (cpx2,cpy2) and end point (x,y).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	if len(p.d) == 0 || p.d[len(p.d)-1] == CloseCmd {
		start := p.StartPos()
		p.MoveTo(start.X, start.Y)
	}
	p.d = append(p.d, CubeToCmd, cpx1, cpy1, cpx2, cpy2, x, y, CubeToCmd)
}

// Close closes a (sub)path with a LineTo to the start of the path (the most recent MoveTo command). A final LineTo to the start is replaced by the Close.
func (p *Path) Close() {
	if len(p.d) == 0 || p.d[len(p.d)-1] == CloseCmd {
		return
	} else if p.d[len(p.d)-1] == MoveToCmd {
		p.d = p.d[:len(p.d)-cmdLen(MoveToCmd)]
		return
	}

	start := p.StartPos()
	if p.d[len(p.d)-1] == LineToCmd && Equal(p.d[len(p.d)-3], start.X) && Equal(p.d[len(p.d)-2], start.Y) {
		p.d[len(p.d)-4] = CloseCmd
		p.d[len(p.d)-3] = start.X
		p.d[len(p.d)-2] = start.Y
		p.d[len(p.d)-1] = CloseCmd
		return
	}
	p.d = append(p.d, CloseCmd, start.X, start.Y, CloseCmd)
}

////////////////////////////////////////////////////////////////

// Split splits the path into its independent subpaths.
func (p *Path) Split() []*Path {
	ps := []*Path{}
	var i, j int
	for j < len(p.d) {
		cmd := p.d[j]
		if cmd == MoveToCmd && i < j {
			ps = append(ps, &Path{p.d[i:j:j]})
			i = j
		}
		j += cmdLen(cmd)
	}
	if i < j {
		ps = append(ps, &Path{p.d[i:j:j]})
	}
	return ps
}

// PathSegment is a cubic Bézier segment that starts at the end of the previous segment.
type PathSegment struct {
	CP1, CP2, End Point
}

// Segments returns the start point and the segments of the first subpath of p. All segments are converted to cubic Béziers, and zero-length lines are skipped.
func (p *Path) Segments() (Point, []PathSegment) {
	start := Point{}
	segs := []PathSegment{}
	scanner := p.Scanner()
	for scanner.Scan() {
		cmd := scanner.Cmd()
		if cmd == MoveToCmd {
			if 0 < len(segs) {
				break
			}
			start = scanner.End()
			continue
		}

		var c CubicBezier
		switch cmd {
		case LineToCmd, CloseCmd:
			if scanner.Start().Equals(scanner.End()) {
				continue
			}
			c = lineToCubicBezier(scanner.Start(), scanner.End())
		case QuadToCmd:
			c = quadraticToCubicBezier(scanner.Start(), scanner.CP1(), scanner.End())
		case CubeToCmd:
			c = CubicBezier{scanner.Start(), scanner.CP1(), scanner.CP2(), scanner.End()}
		}
		segs = append(segs, PathSegment{c.P1, c.P2, c.P3})
		if cmd == CloseCmd {
			break
		}
	}
	return start, segs
}

// PathFromSegments returns a closed path starting at start and following segs. Segments that are straight lines are added as LineTo commands.
func PathFromSegments(start Point, segs []PathSegment) *Path {
	p := &Path{}
	p.MoveTo(start.X, start.Y)
	prev := start
	for _, seg := range segs {
		if (CubicBezier{prev, seg.CP1, seg.CP2, seg.End}).IsLine() {
			p.LineTo(seg.End.X, seg.End.Y)
		} else {
			p.CubeTo(seg.CP1.X, seg.CP1.Y, seg.CP2.X, seg.CP2.Y, seg.End.X, seg.End.Y)
		}
		prev = seg.End
	}
	p.Close()
	return p
}

// Translate translates the path by (x,y) in place and returns it.
func (p *Path) Translate(x, y float64) *Path {
	for i := 0; i < len(p.d); {
		n := cmdLen(p.d[i])
		for j := i + 1; j < i+n-1; j += 2 {
			p.d[j] += x
			p.d[j+1] += y
		}
		i += n
	}
	return p
}

// Bounds returns the bounding box of the control points of the path.
func (p *Path) Bounds() Rect {
	if len(p.d) == 0 {
		return Rect{}
	}
	r := Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < len(p.d); {
		n := cmdLen(p.d[i])
		for j := i + 1; j < i+n-1; j += 2 {
			r = r.Add(Rect{p.d[j], p.d[j+1], p.d[j], p.d[j+1]})
		}
		i += n
	}
	return r
}

// String returns a string that represents the path similar to the SVG path data format (but not necessarily valid SVG).
func (p *Path) String() string {
	sb := strings.Builder{}
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		switch cmd {
		case MoveToCmd:
			sb.WriteString("M")
			sb.WriteString(num(p.d[i+1]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+2]).String())
		case LineToCmd:
			sb.WriteString("L")
			sb.WriteString(num(p.d[i+1]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+2]).String())
		case QuadToCmd:
			sb.WriteString("Q")
			sb.WriteString(num(p.d[i+1]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+2]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+3]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+4]).String())
		case CubeToCmd:
			sb.WriteString("C")
			sb.WriteString(num(p.d[i+1]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+2]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+3]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+4]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+5]).String())
			sb.WriteString(" ")
			sb.WriteString(num(p.d[i+6]).String())
		case CloseCmd:
			sb.WriteString("z")
		}
		i += cmdLen(cmd)
	}
	return sb.String()
}

package pathgraph

// Scanner returns a path scanner.
func (p *Path) Scanner() *PathScanner {
	return &PathScanner{p, -1}
}

// PathScanner scans the path segments from start to end.
type PathScanner struct {
	p *Path
	i int
}

// Scan scans a new path segment and should be called before the other methods.
func (s *PathScanner) Scan() bool {
	if s.i+1 < len(s.p.d) {
		s.i += cmdLen(s.p.d[s.i+1])
		return true
	}
	return false
}

// Cmd returns the current path segment command.
func (s *PathScanner) Cmd() float64 {
	return s.p.d[s.i]
}

// Values returns the current path segment values.
func (s *PathScanner) Values() []float64 {
	return s.p.d[s.i-cmdLen(s.p.d[s.i])+2 : s.i]
}

// Start returns the current path segment start position.
func (s *PathScanner) Start() Point {
	i := s.i - cmdLen(s.p.d[s.i])
	if i == -1 {
		return Point{}
	}
	return Point{s.p.d[i-2], s.p.d[i-1]}
}

// CP1 returns the first control point for quadratic and cubic Béziers.
func (s *PathScanner) CP1() Point {
	if s.p.d[s.i] != QuadToCmd && s.p.d[s.i] != CubeToCmd {
		panic("must be quadratic or cubic Bézier")
	}
	i := s.i - cmdLen(s.p.d[s.i]) + 1
	return Point{s.p.d[i+1], s.p.d[i+2]}
}

// CP2 returns the second control point for cubic Béziers.
func (s *PathScanner) CP2() Point {
	if s.p.d[s.i] != CubeToCmd {
		panic("must be cubic Bézier")
	}
	i := s.i - cmdLen(s.p.d[s.i]) + 1
	return Point{s.p.d[i+3], s.p.d[i+4]}
}

// End returns the current path segment end position.
func (s *PathScanner) End() Point {
	return Point{s.p.d[s.i-2], s.p.d[s.i-1]}
}

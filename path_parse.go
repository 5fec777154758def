package pathgraph

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// MustParseSVG parses an SVG path data string and panics if it fails.
func MustParseSVG(s string) *Path {
	p, err := ParseSVG(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseSVG parses an SVG path data string. Elliptical arcs are not supported.
func ParseSVG(s string) (*Path, error) {
	path := []byte(s)
	i := 0

	f := [6]float64{}
	parseNums := func(cmd byte, n int) error {
		for j := 0; j < n; j++ {
			i += skipCommaWhitespace(path[i:])
			v, m := strconv.ParseFloat(path[i:])
			if m == 0 {
				return fmt.Errorf("bad path: expected number for %c at position %d", cmd, i+1)
			}
			f[j] = v
			i += m
		}
		return nil
	}

	p := &Path{}
	var prevCmd byte
	cp := Point{}
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}

		cmd := prevCmd
		repeat := true
		if 'A' <= path[i] {
			cmd = path[i]
			repeat = false
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("bad path: path must start with command")
		}
		if repeat {
			// implicit LineTo after MoveTo
			if cmd == 'M' {
				cmd = 'L'
			} else if cmd == 'm' {
				cmd = 'l'
			} else if cmd == 'Z' || cmd == 'z' {
				return nil, fmt.Errorf("bad path: unexpected number after %c at position %d", cmd, i+1)
			}
		}

		cur := p.Pos()
		switch cmd {
		case 'M', 'm':
			if err := parseNums(cmd, 2); err != nil {
				return nil, err
			}
			end := Point{f[0], f[1]}
			if cmd == 'm' {
				end = end.Add(cur)
			}
			p.MoveTo(end.X, end.Y)
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			if err := parseNums(cmd, 2); err != nil {
				return nil, err
			}
			end := Point{f[0], f[1]}
			if cmd == 'l' {
				end = end.Add(cur)
			}
			p.LineTo(end.X, end.Y)
		case 'H', 'h':
			if err := parseNums(cmd, 1); err != nil {
				return nil, err
			}
			x := f[0]
			if cmd == 'h' {
				x += cur.X
			}
			p.LineTo(x, cur.Y)
		case 'V', 'v':
			if err := parseNums(cmd, 1); err != nil {
				return nil, err
			}
			y := f[0]
			if cmd == 'v' {
				y += cur.Y
			}
			p.LineTo(cur.X, y)
		case 'C', 'c':
			if err := parseNums(cmd, 6); err != nil {
				return nil, err
			}
			cp1 := Point{f[0], f[1]}
			cp2 := Point{f[2], f[3]}
			end := Point{f[4], f[5]}
			if cmd == 'c' {
				cp1 = cp1.Add(cur)
				cp2 = cp2.Add(cur)
				end = end.Add(cur)
			}
			p.CubeTo(cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y)
			cp = cp2
		case 'S', 's':
			if err := parseNums(cmd, 4); err != nil {
				return nil, err
			}
			cp2 := Point{f[0], f[1]}
			end := Point{f[2], f[3]}
			if cmd == 's' {
				cp2 = cp2.Add(cur)
				end = end.Add(cur)
			}
			cp1 := cur
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				cp1 = cur.Mul(2.0).Sub(cp)
			}
			p.CubeTo(cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y)
			cp = cp2
		case 'Q', 'q':
			if err := parseNums(cmd, 4); err != nil {
				return nil, err
			}
			cp1 := Point{f[0], f[1]}
			end := Point{f[2], f[3]}
			if cmd == 'q' {
				cp1 = cp1.Add(cur)
				end = end.Add(cur)
			}
			p.QuadTo(cp1.X, cp1.Y, end.X, end.Y)
			cp = cp1
		case 'T', 't':
			if err := parseNums(cmd, 2); err != nil {
				return nil, err
			}
			end := Point{f[0], f[1]}
			if cmd == 't' {
				end = end.Add(cur)
			}
			cp1 := cur
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				cp1 = cur.Mul(2.0).Sub(cp)
			}
			p.QuadTo(cp1.X, cp1.Y, end.X, end.Y)
			cp = cp1
		case 'A', 'a':
			return nil, fmt.Errorf("bad path: elliptical arcs are not supported at position %d", i)
		default:
			return nil, fmt.Errorf("bad path: unknown command %c at position %d", cmd, i)
		}
		prevCmd = cmd
	}
	return p, nil
}

package pathgraph

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestPathEmpty(t *testing.T) {
	p := &Path{}
	test.That(t, p.Empty())

	p.MoveTo(5, 2)
	test.That(t, p.Empty())

	p.LineTo(6, 2)
	test.That(t, !p.Empty())

	var q *Path
	test.That(t, q.Empty())
}

func TestPathEquals(t *testing.T) {
	test.That(t, !MustParseSVG("M5 0L5 10").Equals(MustParseSVG("M5 0")))
	test.That(t, !MustParseSVG("M5 0L5 10").Equals(MustParseSVG("M5 0M5 10")))
	test.That(t, !MustParseSVG("M5 0L5 10").Equals(MustParseSVG("M5 0L5 9")))
	test.That(t, MustParseSVG("M5 0L5 10").Equals(MustParseSVG("M5 0L5 10")))
}

func TestPathClosed(t *testing.T) {
	test.That(t, !MustParseSVG("M5 0L5 10").Closed())
	test.That(t, MustParseSVG("M5 0L5 10z").Closed())
	test.That(t, !MustParseSVG("M5 0L5 10zM5 10").Closed())
	test.That(t, MustParseSVG("M5 0L5 10zM5 10z").Closed())
}

func TestPathAppend(t *testing.T) {
	test.T(t, MustParseSVG("M5 0L5 10").Append(nil), MustParseSVG("M5 0L5 10"))
	test.T(t, (&Path{}).Append(MustParseSVG("M5 0L5 10")), MustParseSVG("M5 0L5 10"))

	p := MustParseSVG("M5 0L5 10").Append(MustParseSVG("M5 15L10 15"))
	test.T(t, p, MustParseSVG("M5 0L5 10M5 15L10 15"))
}

func TestPathCopy(t *testing.T) {
	p := MustParseSVG("M0 0L2 0L2 2z")
	q := p.Copy()
	q.Translate(1.0, 0.0)
	test.T(t, p, MustParseSVG("M0 0L2 0L2 2z"))
	test.T(t, q, MustParseSVG("M1 0L3 0L3 2z"))
}

func TestPathCommands(t *testing.T) {
	var tts = []struct {
		p        *Path
		expected string
	}{
		{MustParseSVG("M0 0M1 1L2 2"), "M1 1L2 2"},
		{MustParseSVG("M0 0L1 0L1 1z"), "M0 0L1 0L1 1z"},
		{MustParseSVG("M0 0L1 0L0 0z"), "M0 0L1 0z"},
		{MustParseSVG("M0 0z"), ""},
		{MustParseSVG("M0 0L1 0zz"), "M0 0L1 0z"},
		{MustParseSVG("M0 0L1 0zL2 2"), "M0 0L1 0zM0 0L2 2"},
		{MustParseSVG("L1 0"), "M0 0L1 0"},
		{MustParseSVG("M0 0Q1 1 2 0C3 -1 4 1 5 0"), "M0 0Q1 1 2 0C3 -1 4 1 5 0"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, tt.p.String(), tt.expected)
		})
	}
}

func TestPathPos(t *testing.T) {
	p := MustParseSVG("M1 2L3 4")
	test.T(t, p.Pos(), Point{3.0, 4.0})
	test.T(t, p.StartPos(), Point{1.0, 2.0})

	p = MustParseSVG("M1 2L3 4zM5 6L7 8")
	test.T(t, p.StartPos(), Point{5.0, 6.0})

	p = MustParseSVG("M1 2L3 4z")
	test.T(t, p.Pos(), Point{1.0, 2.0})
	test.T(t, (&Path{}).Pos(), Point{})
}

func TestPathSplit(t *testing.T) {
	ps := MustParseSVG("M0 0L1 0zM2 2L3 2zM4 4L5 5").Split()
	test.T(t, len(ps), 3)
	test.T(t, ps[0], MustParseSVG("M0 0L1 0z"))
	test.T(t, ps[1], MustParseSVG("M2 2L3 2z"))
	test.T(t, ps[2], MustParseSVG("M4 4L5 5"))

	// subpaths do not share their backing array
	ps[0].LineTo(9, 9)
	test.T(t, ps[1], MustParseSVG("M2 2L3 2z"))

	test.T(t, len((&Path{}).Split()), 0)
}

func TestPathSegments(t *testing.T) {
	start, segs := MustParseSVG("M0 0L3 0L3 3z").Segments()
	test.T(t, start, Point{0.0, 0.0})
	test.T(t, len(segs), 3)
	test.T(t, segs[0].End, Point{3.0, 0.0})
	test.T(t, segs[0].CP1, Point{1.0, 0.0})
	test.T(t, segs[0].CP2, Point{2.0, 0.0})
	test.T(t, segs[1].End, Point{3.0, 3.0})
	test.T(t, segs[2].End, Point{0.0, 0.0})

	// zero-length segments are skipped
	_, segs = MustParseSVG("M0 0L0 0L1 0L1 0").Segments()
	test.T(t, len(segs), 1)

	// only the first subpath
	start, segs = MustParseSVG("M1 1L2 1zM5 5L6 6").Segments()
	test.T(t, start, Point{1.0, 1.0})
	test.T(t, len(segs), 2)

	// curves are elevated to cubic Béziers
	_, segs = MustParseSVG("M0 0Q3 3 6 0").Segments()
	test.T(t, len(segs), 1)
	test.T(t, segs[0].CP1, Point{2.0, 2.0})
	test.T(t, segs[0].CP2, Point{4.0, 2.0})
	test.T(t, segs[0].End, Point{6.0, 0.0})
}

func TestPathFromSegments(t *testing.T) {
	var tts = []string{
		"M0 0L2 0L2 2L0 2z",
		"M0 0C0 2 2 2 2 0z",
		"M1 1L3 1C4 2 4 3 3 3L1 3z",
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			start, segs := MustParseSVG(tt).Segments()
			test.T(t, PathFromSegments(start, segs), MustParseSVG(tt))
		})
	}

	// open segments are closed
	p := PathFromSegments(Point{0.0, 0.0}, []PathSegment{{Point{1.0, 0.0}, Point{2.0, 0.0}, Point{3.0, 0.0}}})
	test.T(t, p, MustParseSVG("M0 0L3 0z"))
}

func TestPathTranslate(t *testing.T) {
	p := MustParseSVG("M0 0L2 0Q3 1 2 2C1 3 0 3 0 2z").Translate(1.0, -1.0)
	test.T(t, p, MustParseSVG("M1 -1L3 -1Q4 0 3 1C2 2 1 2 1 1z"))
}

func TestPathBounds(t *testing.T) {
	test.T(t, MustParseSVG("M0 0L2 0L2 2z").Bounds(), Rect{0.0, 0.0, 2.0, 2.0})
	test.T(t, MustParseSVG("M0 0C0 3 1 3 1 0z").Bounds(), Rect{0.0, 0.0, 1.0, 3.0})
	test.T(t, (&Path{}).Bounds(), Rect{})
}

func TestPathScanner(t *testing.T) {
	p := MustParseSVG("M0 0L1 0Q2 1 3 0C4 -1 5 1 6 0z")
	cmds := []float64{}
	ends := []Point{}
	for s := p.Scanner(); s.Scan(); {
		cmds = append(cmds, s.Cmd())
		ends = append(ends, s.End())
		if s.Cmd() == CubeToCmd {
			test.T(t, s.Start(), Point{3.0, 0.0})
			test.T(t, s.CP1(), Point{4.0, -1.0})
			test.T(t, s.CP2(), Point{5.0, 1.0})
			test.T(t, s.Values(), []float64{4.0, -1.0, 5.0, 1.0, 6.0, 0.0})
		}
	}
	test.T(t, cmds, []float64{MoveToCmd, LineToCmd, QuadToCmd, CubeToCmd, CloseCmd})
	test.T(t, ends, []Point{{0.0, 0.0}, {1.0, 0.0}, {3.0, 0.0}, {6.0, 0.0}, {0.0, 0.0}})
}

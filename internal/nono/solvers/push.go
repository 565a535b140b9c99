package solvers

import (
	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/line"
)

// pushWS holds the scratch arrays push's Init reuses across lines.
type pushWS struct {
	lpos, lsolid []int
	rpos, rsolid []int
}

// Push is the cheapest placement strategy: it runs the push primitive
// once in each direction purely to test feasibility, and deduces only
// the cells lying outside every possible block span (the region before
// the left-pushed first block and after the right-pushed last block).
// It never resolves an individual block's interior, unlike Fast, which
// intersects both extremes block-by-block.
type Push struct{}

func (Push) Name() string { return "push" }

func (Push) Prep(l Limits) Requirements {
	return Requirements{Ints: l.MaxRule * 4}
}

func (Push) NewWorkspace(l Limits) Workspace { return newPushWS(l.MaxRule) }

func newPushWS(maxRule int) *pushWS {
	return &pushWS{
		lpos: make([]int, maxRule), lsolid: make([]int, maxRule),
		rpos: make([]int, maxRule), rsolid: make([]int, maxRule),
	}
}

func (p Push) Init(ws Workspace, a Args) (Args, bool) {
	w, ok := ws.(*pushWS)
	if !ok || cap(w.lpos) < len(a.Rule) {
		w = newPushWS(len(a.Rule))
	}
	lpos, lsolid := w.lpos[:len(a.Rule)], w.lsolid[:len(a.Rule)]
	rpos, rsolid := w.rpos[:len(a.Rule)], w.rsolid[:len(a.Rule)]

	if !line.Push(a.Line, a.Rule, lpos, lsolid, false) || !line.Push(a.Line, a.Rule, rpos, rsolid, true) {
		a.Fits = 0
		return a, false
	}
	a.Fits = 1

	lo, hi := 0, a.Line.Len
	if len(a.Rule) > 0 {
		lo = lpos[0]
		hi = rpos[len(a.Rule)-1] + a.Rule[len(a.Rule)-1]
	} else {
		hi = 0
	}
	for i := 0; i < a.Line.Len; i++ {
		c := a.Line.At(i)
		switch {
		case c.Known():
			a.Result.Put(i, c)
		case i < lo || i >= hi:
			a.Result.Put(i, core.DOT)
		default:
			a.Result.Put(i, core.BOTH)
		}
	}
	return a, false
}

func (Push) Step(ws Workspace, a Args) (Args, bool) { return a, false }

func (Push) Term(Workspace) {}

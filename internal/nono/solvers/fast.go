package solvers

import (
	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/line"
)

// fastWS holds push's scratch arrays, reused between lines.
type fastWS struct {
	lpos, rpos   []int
	lsolid, rsolid []int
}

// Fast pushes left, pushes right, and for each cell reports the
// intersection of both extreme placements. Single-shot.
type Fast struct{}

func (Fast) Name() string { return "fast" }

func (Fast) Prep(l Limits) Requirements {
	return Requirements{Ints: l.MaxRule * 4}
}

func (Fast) NewWorkspace(l Limits) Workspace { return newFastWS(l.MaxRule) }

func newFastWS(maxRule int) *fastWS {
	return &fastWS{
		lpos: make([]int, maxRule), rpos: make([]int, maxRule),
		lsolid: make([]int, maxRule), rsolid: make([]int, maxRule),
	}
}

func (Fast) Init(ws Workspace, a Args) (Args, bool) {
	w, ok := ws.(*fastWS)
	if !ok || cap(w.lpos) < len(a.Rule) {
		w = newFastWS(len(a.Rule))
	}
	k := len(a.Rule)
	lpos, rpos := w.lpos[:k], w.rpos[:k]
	lsolid, rsolid := w.lsolid[:k], w.rsolid[:k]

	if !line.Push(a.Line, a.Rule, lpos, lsolid, false) {
		a.Fits = 0
		return a, false
	}
	if !line.Push(a.Line, a.Rule, rpos, rsolid, true) {
		a.Fits = 0
		return a, false
	}
	a.Fits = 1

	j := 0
	fill := func(upto int, v core.Cell) {
		for j < upto {
			a.Result.Put(j, v)
			j++
		}
	}
	for i := 0; i < k; i++ {
		fill(lpos[i], core.DOT)
		fill(rpos[i], core.BOTH)
		fill(lpos[i]+a.Rule[i], core.SOLID)
		fill(rpos[i]+a.Rule[i], core.BOTH)
	}
	fill(a.Line.Len, core.DOT)

	for i := 0; i < a.Line.Len; i++ {
		if c := a.Line.At(i); c.Known() {
			a.Result.Put(i, c)
		}
	}
	return a, false
}

func (Fast) Step(ws Workspace, a Args) (Args, bool) { return a, false }

func (Fast) Term(Workspace) {}

package solvers

import (
	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/line"
)

// Olsak: wherever the left- and right-pushed extremes disagree on a
// BLANK cell, it guesses the *contrary* value and retests feasibility
// with push; a still-feasible guess proves nothing (the cell stays
// BLANK and further guessing between two known cells is skipped), an
// infeasible guess forces the opposite value. Single-shot.
type Olsak struct{}

func (Olsak) Name() string { return "olsak" }

func (Olsak) Prep(l Limits) Requirements {
	return Requirements{Ints: l.MaxRule * 4, Cells: l.MaxLine}
}

type olsakWS struct {
	left, right, waste, pushspace []int
	flags                         []core.Cell
}

func (Olsak) NewWorkspace(l Limits) Workspace { return newOlsakWS(l.MaxRule, l.MaxLine) }

func newOlsakWS(maxRule, maxLine int) *olsakWS {
	return &olsakWS{
		left: make([]int, maxRule), right: make([]int, maxRule),
		waste: make([]int, maxRule), pushspace: make([]int, maxRule),
		flags: make([]core.Cell, maxLine),
	}
}

func (Olsak) Init(ws Workspace, a Args) (Args, bool) {
	w, ok := ws.(*olsakWS)
	if !ok || cap(w.left) < len(a.Rule) || cap(w.flags) < a.Line.Len {
		w = newOlsakWS(len(a.Rule), a.Line.Len)
	}
	k := len(a.Rule)

	if k == 0 {
		a.Fits = 1
		for i := 0; i < a.Line.Len; i++ {
			if a.Line.At(i) == core.SOLID {
				a.Fits = 0
				return a, false
			}
			a.Result.Put(i, core.DOT)
		}
		return a, false
	}

	left, right := w.left[:k], w.right[:k]
	waste, pushspace := w.waste[:k], w.pushspace[:k]
	flags := w.flags[:a.Line.Len]

	a.Fits = 0
	if !line.Push(a.Line, a.Rule, left, pushspace, false) {
		return a, false
	}
	if !line.Push(a.Line, a.Rule, right, pushspace, true) {
		return a, false
	}
	a.Fits = 1

	fillFlags(flags, a.Rule, left, a.Line.Len, false)
	fillFlags(flags, a.Rule, right, a.Line.Len, true)

	for i := 0; i < a.Line.Len; i++ {
		a.Result.Put(i, a.Line.At(i))
	}

	searchSection := func(start, end int) {
		skip := false
		if start > end {
			for pos := start; pos > end; pos-- {
				checkCell(a, flags, waste, pushspace, pos-1, &skip)
			}
		} else {
			for pos := start; pos < end; pos++ {
				checkCell(a, flags, waste, pushspace, pos, &skip)
			}
		}
	}

	lastEnd := 0
	for b := 0; b < k; b++ {
		searchSection(lastEnd, right[b])
		lastEnd = right[b] + a.Rule[b]
		searchSection(right[b], lastEnd)
	}
	searchSection(lastEnd, a.Line.Len)

	lastEnd = a.Line.Len
	for b := k; b > 0; b-- {
		blockEnd := right[b-1] + a.Rule[b-1]
		searchSection(lastEnd, blockEnd)
		lastEnd = right[b-1]
		searchSection(blockEnd, lastEnd)
	}
	searchSection(lastEnd, 0)

	for i := 0; i < a.Line.Len; i++ {
		if a.Result.At(i) == core.BLANK {
			a.Result.Put(i, core.BOTH)
		}
	}
	return a, false
}

// fillFlags records, for one extreme placement, DOT/SOLID per cell.
// The second call (right placement) ORs in so flags[pos]==BOTH marks a
// cell where the two extremes disagree.
func fillFlags(flags []core.Cell, rule core.Rule, pos []int, length int, or bool) {
	i := 0
	put := func(upto int, v core.Cell) {
		for i < upto {
			if or {
				flags[i] |= v
			} else {
				flags[i] = v
			}
			i++
		}
	}
	for b := 0; b < len(rule); b++ {
		put(pos[b], core.DOT)
		put(pos[b]+rule[b], core.SOLID)
	}
	put(length, core.DOT)
}

func checkCell(a Args, flags []core.Cell, waste, pushspace []int, pos int, skip *bool) {
	if a.Line.At(pos) != core.BLANK {
		*skip = false
		return
	}
	if *skip {
		return
	}
	if flags[pos] == core.BOTH {
		return
	}

	a.Result.Put(pos, core.BOTH^flags[pos])

	if line.Push(a.Result, a.Rule, waste, pushspace, false) {
		a.Result.Put(pos, core.BLANK)
		*skip = true
		flags[pos] = core.BOTH
	} else {
		a.Result.Put(pos, a.Result.At(pos)^core.BOTH)
	}
}

func (Olsak) Step(ws Workspace, a Args) (Args, bool) { return a, false }

func (Olsak) Term(Workspace) {}

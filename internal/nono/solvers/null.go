package solvers

import "github.com/nonogram/solver/internal/core"

// Null is the no-op validator: it copies known cells through and marks
// every BLANK cell BOTH, contributing no deductions. Useful as an
// "only guess" driver configuration.
type Null struct{}

func (Null) Name() string { return "null" }

func (Null) Prep(Limits) Requirements { return Requirements{} }

func (Null) NewWorkspace(Limits) Workspace { return nil }

func (Null) Init(_ Workspace, a Args) (Args, bool) {
	for i := 0; i < a.Line.Len; i++ {
		c := a.Line.At(i)
		if c.Known() {
			a.Result.Put(i, c)
		} else {
			a.Result.Put(i, core.BOTH)
		}
	}
	a.Fits = 1
	return a, false
}

func (Null) Step(ws Workspace, a Args) (Args, bool) { return a, false }

func (Null) Term(Workspace) {}

// Package solvers implements the six pluggable line-solver strategies
// of push, fast, complete, olsak, fcomp and null.
package solvers

import "github.com/nonogram/solver/internal/core"

// Logger is the opaque trace sink a strategy may write to. Indent/
// Level mirror the reference's nonogram_log.
type Logger interface {
	Printf(indent, level int, format string, args ...any)
}

// NopLogger discards everything; used whenever the caller does not
// want per-cell tracing.
type NopLogger struct{}

func (NopLogger) Printf(int, int, string, ...any) {}

// Limits is the puzzle-wide sizing passed to Prep: the longest line and
// the longest rule the strategy will ever be asked to solve.
type Limits struct {
	MaxLine, MaxRule int
}

// Requirements reports how large a strategy's workspace must be for the
// given Limits (the "prep" contract; the reference reports
// byte/ptrdiff/size/cell arena sizes, here collapsed to integer and cell
// counts since the Go workspace is a typed struct rather than parallel
// untyped arenas). The driver does not consult it: it sizes each
// workspace through the strategy's own NewWorkspace.
type Requirements struct {
	Ints  int
	Cells int
}

// Args bundles one line's solving request: the current line contents,
// its rule, where to write deductions, and the fits counter the driver
// reads to detect contradiction.
type Args struct {
	Line   core.Line
	Rule   core.Rule
	Result core.Line
	Log    Logger
	Indent int
	Level  int
	Fits   int
}

// Strategy is the line-solver contract: Prep sizes a shared workspace,
// Init begins solving one line, Step performs one increment of
// cooperative work, and Term releases any per-line state. Step and
// Term are optional; single-shot strategies simply never return true
// from Init.
type Strategy interface {
	Name() string
	Prep(limits Limits) Requirements
	// NewWorkspace allocates the persistent scratch state Init/Step
	// mutate in place across every line of a solving session. The
	// driver calls this once per configured strategy at load time and
	// passes the same value back on every subsequent Init/Step/Term
	// call; a strategy that never suspends (Step always returns false)
	// may return nil.
	NewWorkspace(limits Limits) Workspace
	// Init starts solving one line into a freshly obtained Workspace.
	// It returns the updated Args (Fits populated when done) and
	// whether Step must be called again.
	Init(ws Workspace, args Args) (Args, bool)
	// Step performs one increment of work. Only called when Init or a
	// prior Step returned true. Returns the updated args and whether
	// another Step call is required.
	Step(ws Workspace, args Args) (Args, bool)
	// Term releases any per-line resources held in ws. Safe to call
	// even for strategies that never suspend.
	Term(ws Workspace)
}

// Workspace is the per-strategy scratch state the driver allocates
// once per configured strategy at Load (through NewWorkspace, sized by
// the puzzle's Limits) and hands to Init/Step/Term for the strategy's
// own use.
// Each strategy defines its own concrete type satisfying this and
// type-asserts it back in Init/Step.
type Workspace interface{}

// Package driver implements the solver session: it holds one puzzle's
// in-progress grid, schedules line solves by a flag/score heuristic,
// redeems their deductions back into the grid, and falls back to a
// minimum-bounding-rectangle-scoped guess and backtrack stack when
// every configured strategy stalls. It is a direct generalization of
// the reference's nonogram_solver, collapsing its pointer/stride
// bookkeeping into the core.Grid/core.Line views the rest of this
// module already uses.
package driver

import (
	"errors"
	"fmt"

	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/solvers"
)

var (
	// ErrContradiction is never returned directly: a contradiction is
	// recorded internally (remCells goes negative) and converted into a
	// backtrack on the following Tick, surfacing as ErrExhausted only
	// once no guess remains to retry.
	ErrContradiction = errors.New("driver: contradiction")
	ErrExhausted      = errors.New("driver: guess stack exhausted, puzzle has no solution under current constraints")
	ErrConfigured     = errors.New("driver: cannot reconfigure solvers or observers while a puzzle is loaded")
	ErrResource       = errors.New("driver: failed to allocate solving resources")
	ErrNotLoaded      = errors.New("driver: no puzzle loaded")
)

// Status reports what a Tick or Run call accomplished.
type Status int

const (
	// Working means the tick made progress; call Tick again.
	Working Status = iota
	// Solved means this tick just presented a complete, consistent
	// grid. The driver immediately treats the solution as a dead end
	// for search purposes: the next Tick backtracks, either surfacing
	// a further solution (ambiguity) or reaching Exhausted once no
	// alternative guess remains.
	Solved
	// Exhausted means the guess stack ran dry: no further solutions
	// exist beyond whatever Solved ticks already reported. Check
	// Driver.Solutions to tell "no solution at all" from "found N, no
	// more."
	Exhausted
)

// Display is the redraw/focus/mark observer. Every method is called
// at most as often as the corresponding event occurs; a nil Display is
// a valid no-op configuration.
type Display interface {
	RedrawArea(r core.Rect)
	RowFocus(line int, active bool)
	ColFocus(line int, active bool)
	RowMark(from, to int)
	ColMark(from, to int)
}

// Client is notified once per complete, consistent grid the driver
// finds ("present()").
type Client interface {
	Present(g *core.Grid)
}

// Log is the opaque trace sink, reused from the solvers package's own
// Logger contract since both describe the same indent/level-tagged
// sink.
type Log = solvers.Logger

// snapshot is pushed before trying a guess, scoped to the minimum
// bounding rectangle of undetermined cells rather than the whole grid:
// cells is row-major within unkarea.
type snapshot struct {
	unkarea  core.Rect
	cells    []core.Cell
	rowAttr  []core.LineAttr
	colAttr  []core.LineAttr
	rowFlag  []int
	colFlag  []int
	remCells int
	x, y     int
	guessed  core.Cell
}

// pendingLine holds a line's freshly solved-but-not-yet-redeemed
// result, separating "solve" and "redeem" into adjacent ticks: a
// WORKING/DONE transition is reported one tick before the redemption
// that actually writes its deductions into the grid.
type pendingLine struct {
	onRow  bool
	lineNo int
	length int
	fits   int
}

// Driver is one solving session. Configure the strategy chain and
// observers before calling Load; reconfiguring after Load returns
// ErrConfigured, matching the reference's "configuration is frozen
// once a puzzle is loaded" rule.
type Driver struct {
	Display Display
	Client  Client
	Log     Log

	slots []solvers.Strategy
	ws    []solvers.Workspace

	puzzle *core.Puzzle
	grid   *core.Grid
	work   []core.Cell

	rowAttr []core.LineAttr
	colAttr []core.LineAttr
	rowFlag []int
	colFlag []int

	remCells int
	unkarea  core.Rect

	stack []snapshot

	pending *pendingLine

	loaded           bool
	pendingBacktrack bool
	solutions        int
}

// New constructs a driver with the given line-solver chain: when a
// line is chosen for solving, every configured slot runs in order,
// escalating to the next only once the prior slot leaves the line
// undetermined (per-slot "prep"/"init"/"step" contract).
func New(slots []solvers.Strategy) *Driver {
	return &Driver{slots: slots}
}

// Configure replaces the strategy chain. Returns ErrConfigured if a
// puzzle is currently loaded.
func (d *Driver) Configure(slots []solvers.Strategy) error {
	if d.loaded {
		return ErrConfigured
	}
	d.slots = slots
	return nil
}

// Load resets the driver onto a fresh puzzle, sizing every strategy's
// workspace once for the puzzle's longest line and longest rule
// (through its NewWorkspace), seeding every line's flag to the number of
// configured strategies, and setting unkarea to the whole grid.
func (d *Driver) Load(p *core.Puzzle) error {
	if p == nil {
		return fmt.Errorf("%w: nil puzzle", ErrResource)
	}

	d.puzzle = p
	d.grid = core.NewGrid(p.Width, p.Height)

	maxLine := p.Width
	if p.Height > maxLine {
		maxLine = p.Height
	}
	maxRule := 0
	for _, r := range p.Row {
		if len(r) > maxRule {
			maxRule = len(r)
		}
	}
	for _, c := range p.Col {
		if len(c) > maxRule {
			maxRule = len(c)
		}
	}
	d.work = make([]core.Cell, maxLine)

	limits := solvers.Limits{MaxLine: maxLine, MaxRule: maxRule}
	d.ws = make([]solvers.Workspace, len(d.slots))
	for i, s := range d.slots {
		d.ws[i] = s.NewWorkspace(limits)
	}

	d.rowAttr = make([]core.LineAttr, p.Height)
	d.rowFlag = make([]int, p.Height)
	for y, r := range p.Row {
		d.rowAttr[y] = core.NewLineAttr(r, p.Width)
		d.rowFlag[y] = len(d.slots)
	}
	d.colAttr = make([]core.LineAttr, p.Width)
	d.colFlag = make([]int, p.Width)
	for x, c := range p.Col {
		d.colAttr[x] = core.NewLineAttr(c, p.Height)
		d.colFlag[x] = len(d.slots)
	}

	d.remCells = p.Width * p.Height
	d.unkarea = core.FullRect(p.Width, p.Height)
	d.stack = d.stack[:0]
	d.pending = nil
	d.loaded = true
	d.pendingBacktrack = false
	d.solutions = 0
	return nil
}

// Grid exposes the in-progress solution grid. Callers must treat it as
// read-only: the driver continues to mutate it between ticks.
func (d *Driver) Grid() *core.Grid { return d.grid }

// RemCells reports how many cells remain undetermined, or a negative
// value while a contradiction is pending backtrack.
func (d *Driver) RemCells() int { return d.remCells }

// Depth reports how many guesses are currently on the backtrack stack.
func (d *Driver) Depth() int { return len(d.stack) }

// Solutions reports how many times Present has fired so far this load.
func (d *Driver) Solutions() int { return d.solutions }

// Tick performs one unit of work: redeeming a previously solved line,
// backtracking from a contradiction, solving the next chosen line,
// presenting a complete grid, or making a guess.
func (d *Driver) Tick() (Status, error) {
	if !d.loaded {
		return Working, ErrNotLoaded
	}

	if d.pendingBacktrack {
		d.pendingBacktrack = false
		return d.backtrack()
	}

	if d.pending != nil {
		p := *d.pending
		d.pending = nil
		d.redeem(p)
		if d.remCells < 0 {
			return d.backtrack()
		}
		return Working, nil
	}

	if d.anyFlagPositive() {
		onRow, lineNo := d.findEasiest()
		d.solveLine(onRow, lineNo)
		return Working, nil
	}

	if d.remCells == 0 {
		d.solutions++
		if d.Client != nil {
			d.Client.Present(d.grid.Clone())
		}
		d.pendingBacktrack = true
		return Solved, nil
	}

	return d.guess()
}

// Run ticks until the first solution is presented, the puzzle proves
// unsatisfiable, or maxCycles is reached (maxCycles<=0 means
// unbounded), mirroring nonogram_runcycles's budgeted loop. Callers
// that need every solution (ambiguity detection) should drive Tick
// directly instead, continuing past a Solved result.
func (d *Driver) Run(maxCycles int) (Status, error) {
	for i := 0; maxCycles <= 0 || i < maxCycles; i++ {
		status, err := d.Tick()
		if err != nil {
			return status, err
		}
		if status != Working {
			return status, nil
		}
	}
	return Working, nil
}

func (d *Driver) anyFlagPositive() bool {
	for _, f := range d.rowFlag {
		if f > 0 {
			return true
		}
	}
	for _, f := range d.colFlag {
		if f > 0 {
			return true
		}
	}
	return false
}

// findEasiest picks the line with the greatest flag, breaking ties on
// the greatest score; rows are scanned first, and a later candidate
// replaces an earlier one only on a strictly greater score once flags
// are equal. Row 0 seeds the initial candidate exactly as the
// reference does, even though the following loop reconsiders it.
func (d *Driver) findEasiest() (onRow bool, lineNo int) {
	level := d.rowFlag[0]
	score := d.rowAttr[0].Score
	onRow, lineNo = true, 0

	for i := 0; i < d.puzzle.Height; i++ {
		if d.rowFlag[i] > level || (level > 0 && d.rowFlag[i] == level && d.rowAttr[i].Score > score) {
			level, score, lineNo, onRow = d.rowFlag[i], d.rowAttr[i].Score, i, true
		}
	}
	for i := 0; i < d.puzzle.Width; i++ {
		if d.colFlag[i] > level || (level > 0 && d.colFlag[i] == level && d.colAttr[i].Score > score) {
			level, score, lineNo, onRow = d.colFlag[i], d.colAttr[i].Score, i, false
		}
	}
	return onRow, lineNo
}

// solveLine runs the configured strategy chain against one line,
// escalating to the next slot only once the previous slot leaves it
// undetermined, and stashes the final result as a pendingLine for the
// next tick to redeem. With no slots configured it falls back to the
// reference's "backup" behaviour: reveal known cells, leave the rest
// BOTH, always fits.
func (d *Driver) solveLine(onRow bool, lineNo int) {
	if d.Display != nil {
		if onRow {
			d.Display.RowFocus(lineNo, true)
		} else {
			d.Display.ColFocus(lineNo, true)
		}
	}

	line, rule, length := d.lineView(onRow, lineNo)
	result := core.SliceLine(d.work[:length])

	fits := 1
	if len(d.slots) == 0 {
		for i := 0; i < length; i++ {
			c := line.At(i)
			if c.Known() {
				result.Put(i, c)
			} else {
				result.Put(i, core.BOTH)
			}
		}
	} else {
		for i, s := range d.slots {
			for j := 0; j < length; j++ {
				result.Put(j, core.BLANK)
			}
			args := solvers.Args{Line: line, Rule: rule, Result: result, Log: d.Log, Level: i + 1}
			args, more := s.Init(d.ws[i], args)
			for more {
				args, more = s.Step(d.ws[i], args)
			}
			s.Term(d.ws[i])
			fits = args.Fits
			if fits == 0 {
				break
			}
			if lineFullyKnown(result, length) {
				break
			}
		}
	}

	if d.Display != nil {
		if onRow {
			d.Display.RowFocus(lineNo, false)
		} else {
			d.Display.ColFocus(lineNo, false)
		}
	}

	d.pending = &pendingLine{onRow: onRow, lineNo: lineNo, length: length, fits: fits}
}

func (d *Driver) lineView(onRow bool, lineNo int) (core.Line, core.Rule, int) {
	if onRow {
		return core.RowLine(d.grid, lineNo), d.puzzle.Row[lineNo], d.puzzle.Width
	}
	return core.ColLine(d.grid, lineNo), d.puzzle.Col[lineNo], d.puzzle.Height
}

func lineFullyKnown(line core.Line, length int) bool {
	for i := 0; i < length; i++ {
		if !line.At(i).Known() {
			return false
		}
	}
	return true
}

// redeem compares a solved line's result buffer against the grid: a
// BLANK cell the result newly determined is written, remCells and both
// lines' attribute counters drop, the perpendicular line's flag is
// revived to the full slot count, and a display redraw/mark is
// emitted. A fits==0 result abandons redemption entirely and flags a
// contradiction via remCells going negative.
func (d *Driver) redeem(p pendingLine) {
	if p.fits == 0 {
		d.remCells = -1
		return
	}

	changed := false
	first, last := -1, -1
	for i := 0; i < p.length; i++ {
		x, y := i, p.lineNo
		if !p.onRow {
			x, y = p.lineNo, i
		}
		if d.grid.At(x, y) != core.BLANK {
			continue
		}
		v := d.work[i]
		if !v.Known() {
			continue
		}
		changed = true
		if first < 0 {
			first = i
		}
		last = i

		d.grid.Set(x, y, v)
		d.remCells--

		if p.onRow {
			decAttr(&d.rowAttr[p.lineNo], v, d.puzzle.Height)
			decAttr(&d.colAttr[x], v, d.puzzle.Width)
			d.colFlag[x] = len(d.slots)
			if d.Display != nil {
				d.Display.ColMark(x, x+1)
			}
		} else {
			decAttr(&d.colAttr[p.lineNo], v, d.puzzle.Width)
			decAttr(&d.rowAttr[y], v, d.puzzle.Height)
			d.rowFlag[y] = len(d.slots)
			if d.Display != nil {
				d.Display.RowMark(y, y+1)
			}
		}
	}

	d.updateOwnFlag(p.onRow, p.lineNo, changed)

	if first < 0 || d.Display == nil {
		return
	}
	var rect core.Rect
	if p.onRow {
		rect = core.Rect{MinX: first, MaxX: last, MinY: p.lineNo, MaxY: p.lineNo}
	} else {
		rect = core.Rect{MinX: p.lineNo, MaxX: p.lineNo, MinY: first, MaxY: last}
	}
	d.Display.RedrawArea(rect)
}

// updateOwnFlag clears the flag of a line whose remaining dot or solid
// count has reached zero, leaves
// a line that made progress alone, and otherwise decrements the flag
// once for a visit that changed nothing.
func (d *Driver) updateOwnFlag(onRow bool, lineNo int, changed bool) {
	var attr core.LineAttr
	var flag *int
	if onRow {
		attr, flag = d.rowAttr[lineNo], &d.rowFlag[lineNo]
	} else {
		attr, flag = d.colAttr[lineNo], &d.colFlag[lineNo]
	}

	switch {
	case attr.Dot == 0 || attr.Solid == 0:
		*flag = 0
	case !changed:
		if *flag > 0 {
			*flag--
		}
	}

	if onRow && d.Display != nil {
		d.Display.RowMark(lineNo, lineNo+1)
	} else if !onRow && d.Display != nil {
		d.Display.ColMark(lineNo, lineNo+1)
	}
}

// setCell commits one cell decision to the grid and both lines'
// attributes. Following the reference exactly, a row whose dot or
// solid count reaches zero has its score reset using the puzzle's
// height rather than its own width, and a column's reset uses width
// rather than height -- the cross dimension, not the line's own
// length.
func (d *Driver) setCell(x, y int, v core.Cell) {
	d.grid.Set(x, y, v)
	d.remCells--
	decAttr(&d.rowAttr[y], v, d.puzzle.Height)
	decAttr(&d.colAttr[x], v, d.puzzle.Width)
}

// decAttr mirrors the reference's per-cell score update: a line's
// score climbs by one for each cell resolved, then jumps to resetTo
// once every remaining cell of the value just resolved is accounted
// for.
func decAttr(a *core.LineAttr, v core.Cell, resetTo int) {
	counter := &a.Solid
	if v == core.DOT {
		counter = &a.Dot
	}
	*counter--
	if *counter == 0 {
		a.Score = resetTo
	} else {
		a.Score++
	}
}

// computeUnkarea narrows prev to the smallest rectangle containing
// every remaining BLANK cell.
func (d *Driver) computeUnkarea(prev core.Rect) core.Rect {
	minY, maxY := -1, -1
	for y := prev.MinY; y <= prev.MaxY; y++ {
		for x := prev.MinX; x <= prev.MaxX; x++ {
			if d.grid.At(x, y) == core.BLANK {
				if minY < 0 {
					minY = y
				}
				maxY = y
				break
			}
		}
	}
	if minY < 0 {
		return core.Rect{MinX: 0, MaxX: -1, MinY: 0, MaxY: -1}
	}
	minX, maxX := prev.MaxX+1, prev.MinX-1
	for y := minY; y <= maxY; y++ {
		for x := prev.MinX; x <= prev.MaxX; x++ {
			if d.grid.At(x, y) == core.BLANK {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	return core.Rect{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

// guess narrows unkarea, picks its first BLANK cell, chooses a colour
// by comparing the cell's row+column remaining dot/solid totals,
// snapshots the rectangle, and commits the guess. Only called with
// remCells>0, so unkarea always contains at least one BLANK cell.
func (d *Driver) guess() (Status, error) {
	area := d.computeUnkarea(d.unkarea)
	x, y, _ := d.firstBlankIn(area)

	dots := d.rowAttr[y].Dot + d.colAttr[x].Dot
	solids := d.rowAttr[y].Solid + d.colAttr[x].Solid
	guessed := core.SOLID
	if dots > solids {
		guessed = core.DOT
	}

	d.stack = append(d.stack, snapshot{
		unkarea:  area,
		cells:    d.snapshotCells(area),
		rowAttr:  append([]core.LineAttr(nil), d.rowAttr[area.MinY:area.MaxY+1]...),
		colAttr:  append([]core.LineAttr(nil), d.colAttr[area.MinX:area.MaxX+1]...),
		rowFlag:  append([]int(nil), d.rowFlag[area.MinY:area.MaxY+1]...),
		colFlag:  append([]int(nil), d.colFlag[area.MinX:area.MaxX+1]...),
		remCells: d.remCells,
		x:        x,
		y:        y,
		guessed:  guessed,
	})

	d.unkarea = area
	d.setCell(x, y, guessed)
	d.rowFlag[y] = len(d.slots)
	d.colFlag[x] = len(d.slots)
	if d.Display != nil {
		d.Display.RedrawArea(core.Rect{MinX: x, MaxX: x, MinY: y, MaxY: y})
		d.Display.RowMark(y, y+1)
		d.Display.ColMark(x, x+1)
	}
	return Working, nil
}

func (d *Driver) firstBlankIn(area core.Rect) (x, y int, ok bool) {
	for yy := area.MinY; yy <= area.MaxY; yy++ {
		for xx := area.MinX; xx <= area.MaxX; xx++ {
			if d.grid.At(xx, yy) == core.BLANK {
				return xx, yy, true
			}
		}
	}
	return 0, 0, false
}

func (d *Driver) snapshotCells(area core.Rect) []core.Cell {
	out := make([]core.Cell, 0, (area.MaxX-area.MinX+1)*(area.MaxY-area.MinY+1))
	for y := area.MinY; y <= area.MaxY; y++ {
		for x := area.MinX; x <= area.MaxX; x++ {
			out = append(out, d.grid.At(x, y))
		}
	}
	return out
}

// backtrack pops the most recent guess, restores driver state within
// its snapshot rectangle, and commits the alternative colour at the
// guess position -- the popped frame is never pushed back, since both
// of a cell's two possible values are now accounted for either way.
// Once the stack runs dry it reports Exhausted: ErrExhausted only when
// no solution was ever presented, since running out of guesses after
// presenting one or more solutions is a normal, successful end of
// search.
func (d *Driver) backtrack() (Status, error) {
	if len(d.stack) == 0 {
		d.remCells = 0
		if d.solutions == 0 {
			return Exhausted, ErrExhausted
		}
		return Exhausted, nil
	}

	s := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]

	i := 0
	for y := s.unkarea.MinY; y <= s.unkarea.MaxY; y++ {
		for x := s.unkarea.MinX; x <= s.unkarea.MaxX; x++ {
			d.grid.Set(x, y, s.cells[i])
			i++
		}
	}
	copy(d.rowAttr[s.unkarea.MinY:s.unkarea.MaxY+1], s.rowAttr)
	copy(d.colAttr[s.unkarea.MinX:s.unkarea.MaxX+1], s.colAttr)
	copy(d.rowFlag[s.unkarea.MinY:s.unkarea.MaxY+1], s.rowFlag)
	copy(d.colFlag[s.unkarea.MinX:s.unkarea.MaxX+1], s.colFlag)
	d.remCells = s.remCells
	d.unkarea = s.unkarea

	alt := s.guessed ^ core.BOTH
	d.setCell(s.x, s.y, alt)
	d.rowFlag[s.y] = len(d.slots)
	d.colFlag[s.x] = len(d.slots)
	if d.Display != nil {
		d.Display.RedrawArea(core.Rect{MinX: s.x, MaxX: s.x, MinY: s.y, MaxY: s.y})
		d.Display.RowMark(s.y, s.y+1)
		d.Display.ColMark(s.x, s.x+1)
	}
	return Working, nil
}

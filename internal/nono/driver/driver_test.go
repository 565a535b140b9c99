package driver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/driver"
	"github.com/nonogram/solver/internal/nono/solvers"
)

type captureClient struct {
	grids []*core.Grid
}

func (c *captureClient) Present(g *core.Grid) { c.grids = append(c.grids, g) }

func mustPuzzle(t *testing.T, width, height int, rows, cols []core.Rule) *core.Puzzle {
	t.Helper()
	p, err := core.New(width, height, rows, cols)
	require.NoError(t, err)
	return p
}

// TestSmallPuzzleEndToEnd covers 5x5 scenario: line
// propagation alone determines every cell, no guess is ever needed,
// and present fires exactly once.
func TestSmallPuzzleEndToEnd(t *testing.T) {
	rows := []core.Rule{{5}, {1, 1}, {5}, {1, 1}, {5}}
	cols := []core.Rule{{5}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {5}}
	p := mustPuzzle(t, 5, 5, rows, cols)

	client := &captureClient{}
	d := driver.New(solvers.Slots(solvers.PresetFastOlsakComplete))
	d.Client = client
	require.NoError(t, d.Load(p))

	status, err := d.Run(0)
	require.NoError(t, err)
	require.Equal(t, driver.Solved, status)
	require.Equal(t, 0, d.Depth(), "line propagation alone should solve this puzzle, no guessing")
	require.Len(t, client.grids, 1)

	want := [][]core.Cell{
		{core.SOLID, core.SOLID, core.SOLID, core.SOLID, core.SOLID},
		{core.SOLID, core.DOT, core.DOT, core.DOT, core.SOLID},
		{core.SOLID, core.SOLID, core.SOLID, core.SOLID, core.SOLID},
		{core.SOLID, core.DOT, core.DOT, core.DOT, core.SOLID},
		{core.SOLID, core.SOLID, core.SOLID, core.SOLID, core.SOLID},
	}
	g := client.grids[0]
	for y, row := range want {
		for x, c := range row {
			require.Equal(t, c, g.At(x, y), "cell (%d,%d)", x, y)
		}
	}
}

// TestContradictionTriggersBacktrack covers 2x2 scenario:
// both diagonal grids satisfy the rules, so after the first solution is
// presented, a further Tick backtracks, flips the guess, finds the
// second solution, and a final Tick reports Exhausted with no error.
func TestContradictionTriggersBacktrack(t *testing.T) {
	rows := []core.Rule{{1}, {1}}
	cols := []core.Rule{{1}, {1}}
	p := mustPuzzle(t, 2, 2, rows, cols)

	client := &captureClient{}
	d := driver.New(solvers.Slots(solvers.PresetFast))
	d.Client = client
	require.NoError(t, d.Load(p))

	var statuses []driver.Status
	for i := 0; i < 64; i++ {
		status, err := d.Tick()
		if status == driver.Exhausted {
			require.NoError(t, err)
			statuses = append(statuses, status)
			break
		}
		require.NoError(t, err)
		statuses = append(statuses, status)
	}

	require.Len(t, client.grids, 2, "both diagonal solutions should have been presented")
	require.Equal(t, 2, d.Solutions())

	diag := func(g *core.Grid) bool {
		return g.At(0, 0) == core.SOLID && g.At(1, 1) == core.SOLID &&
			g.At(1, 0) == core.DOT && g.At(0, 1) == core.DOT
	}
	antiDiag := func(g *core.Grid) bool {
		return g.At(1, 0) == core.SOLID && g.At(0, 1) == core.SOLID &&
			g.At(0, 0) == core.DOT && g.At(1, 1) == core.DOT
	}
	require.True(t, diag(client.grids[0]) || antiDiag(client.grids[0]))
	require.True(t, diag(client.grids[1]) || antiDiag(client.grids[1]))
	require.NotEqual(t, diag(client.grids[0]), diag(client.grids[1]), "the two presented grids must be the two distinct diagonals")

	require.Equal(t, driver.Exhausted, statuses[len(statuses)-1])
}

// TestEmptyRuleSolvesToAllDots covers empty-rule scenario
// at the driver level: a 5x1 grid with no blocks anywhere should solve
// to all-DOT without ever consulting the guess path.
func TestEmptyRuleSolvesToAllDots(t *testing.T) {
	rows := []core.Rule{{}}
	cols := []core.Rule{{}, {}, {}, {}, {}}
	p := mustPuzzle(t, 5, 1, rows, cols)

	client := &captureClient{}
	d := driver.New(solvers.Slots(solvers.PresetFast))
	d.Client = client
	require.NoError(t, d.Load(p))

	status, err := d.Run(0)
	require.NoError(t, err)
	require.Equal(t, driver.Solved, status)
	require.Len(t, client.grids, 1)
	for x := 0; x < 5; x++ {
		require.Equal(t, core.DOT, client.grids[0].At(x, 0))
	}
}

// TestUnsatisfiablePuzzleReportsErrExhausted checks that a puzzle whose
// rules can never agree exhausts the guess stack with zero solutions
// and surfaces ErrExhausted.
func TestUnsatisfiablePuzzleReportsErrExhausted(t *testing.T) {
	p := &core.Puzzle{
		Width: 1, Height: 2,
		Row: []core.Rule{{1}, {1}},
		Col: []core.Rule{{1}},
	}

	d := driver.New(solvers.Slots(solvers.PresetFast))
	require.NoError(t, d.Load(p))

	status, err := d.Run(0)
	require.ErrorIs(t, err, driver.ErrExhausted)
	require.Equal(t, driver.Exhausted, status)
	require.Equal(t, 0, d.Solutions())
}

func TestConfigureRejectsChangeWhileLoaded(t *testing.T) {
	p := mustPuzzle(t, 1, 1, []core.Rule{{1}}, []core.Rule{{1}})
	d := driver.New(solvers.Slots(solvers.PresetFast))
	require.NoError(t, d.Load(p))
	err := d.Configure(solvers.Slots(solvers.PresetComplete))
	require.ErrorIs(t, err, driver.ErrConfigured)
}

func TestTickBeforeLoadReportsErrNotLoaded(t *testing.T) {
	d := driver.New(solvers.Slots(solvers.PresetFast))
	_, err := d.Tick()
	require.ErrorIs(t, err, driver.ErrNotLoaded)
}

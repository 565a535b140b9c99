package solvers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/solvers"
)

// runToCompletion drives a strategy's Init/Step loop to exhaustion,
// returning the final Args. ws must be a workspace obtained from the
// same strategy's NewWorkspace, sized for the line/rule under test:
// Complete and Fcomp suspend mid-line and type-assert their workspace
// back from the interface{} on every Step call, so passing nil would
// panic once Init reports more work remains.
func runToCompletion(t *testing.T, s solvers.Strategy, ws solvers.Workspace, a solvers.Args) solvers.Args {
	t.Helper()
	a, more := s.Init(ws, a)
	for more {
		a, more = s.Step(ws, a)
	}
	s.Term(ws)
	return a
}

func wsFor(s solvers.Strategy, lineLen, maxRule int) solvers.Workspace {
	return s.NewWorkspace(solvers.Limits{MaxLine: lineLen, MaxRule: maxRule})
}

func blankResult(n int) core.Line {
	return core.SliceLine(make([]core.Cell, n))
}

// TestForcedCentreAcrossStrategies runs every placement strategy (all
// but Null) against the forced-centre scenario: rule {5} on a length-7
// blank line. No strategy may rule SOLID out of cells 2..4; Push, which
// never resolves a block's interior, leaves them BOTH, while the others
// pin them SOLID.
func TestForcedCentreAcrossStrategies(t *testing.T) {
	rule := core.Rule{5}
	cases := []solvers.Strategy{
		solvers.Push{}, solvers.Fast{}, solvers.Complete{}, solvers.Olsak{}, solvers.Fcomp{},
	}
	for _, s := range cases {
		t.Run(s.Name(), func(t *testing.T) {
			line := core.SliceLine(make([]core.Cell, 7))
			result := blankResult(7)
			ws := wsFor(s, 7, len(rule))
			a := solvers.Args{Line: line, Rule: rule, Result: result}
			a = runToCompletion(t, s, ws, a)

			require.Equal(t, 1, clampFits(a.Fits), "strategy %s must report the line as feasible", s.Name())
			for i := 2; i <= 4; i++ {
				require.True(t, result.At(i)&core.SOLID != 0, "%s: cell %d must not rule out solid", s.Name(), i)
			}
		})
	}
}

// clampFits normalizes Fits to a 0/1 feasibility flag: fast/push/olsak/
// null report it directly, complete and fcomp accumulate a count.
func clampFits(fits int) int {
	if fits > 0 {
		return 1
	}
	return 0
}

// TestEmptyRuleForcesAllDots covers empty-rule scenario for
// every strategy: a rule with no blocks must resolve a blank line to
// all-DOT.
func TestEmptyRuleForcesAllDots(t *testing.T) {
	cases := []solvers.Strategy{
		solvers.Push{}, solvers.Fast{}, solvers.Complete{},
		solvers.Olsak{}, solvers.Fcomp{}, solvers.Null{},
	}
	for _, s := range cases {
		line := core.SliceLine(make([]core.Cell, 4))
		result := blankResult(4)
		ws := wsFor(s, 4, 0)
		a := solvers.Args{Line: line, Rule: core.Rule{}, Result: result}
		a = runToCompletion(t, s, ws, a)

		if s.Name() == "null" {
			// Null never rules anything out; every cell stays BOTH.
			for i := 0; i < 4; i++ {
				require.Equal(t, core.BOTH, result.At(i), "%s: cell %d", s.Name(), i)
			}
			continue
		}
		require.NotZero(t, a.Fits, "%s should consider the empty rule feasible", s.Name())
		for i := 0; i < 4; i++ {
			require.Equal(t, core.DOT, result.At(i), "%s: cell %d", s.Name(), i)
		}
	}
}

// TestEmptyRuleRejectsSolid ensures an empty rule is infeasible against
// a line already containing a SOLID cell.
func TestEmptyRuleRejectsSolid(t *testing.T) {
	cases := []solvers.Strategy{solvers.Push{}, solvers.Fast{}, solvers.Complete{}, solvers.Olsak{}, solvers.Fcomp{}}
	for _, s := range cases {
		cells := []core.Cell{core.BLANK, core.SOLID, core.BLANK}
		line := core.SliceLine(cells)
		result := blankResult(3)
		ws := wsFor(s, 3, 0)
		a := solvers.Args{Line: line, Rule: core.Rule{}, Result: result}
		a = runToCompletion(t, s, ws, a)
		require.Zero(t, a.Fits, "%s should reject a solid cell against an empty rule", s.Name())
	}
}

// TestFastVsCompleteDiscrepancy checks "___#___" rule {3}
// scenario. Every placement of the length-3 block covering the known
// solid at offset 3 starts at 1, 2 or 3; the only cell all three share
// is offset 3 itself, and offsets 0 and 6 are dot in every one of them,
// so fast's push-derived bounds and complete's exhaustive enumeration
// happen to agree here -- both determine exactly {0:DOT, 3:SOLID,
// 6:DOT} and leave the rest ambiguous. Complete can never know fewer
// cells than fast, which this asserts directly.
func TestFastVsCompleteDiscrepancy(t *testing.T) {
	cells := make([]core.Cell, 7)
	cells[3] = core.SOLID
	line := core.SliceLine(cells)
	rule := core.Rule{3}

	fastResult := blankResult(7)
	fa := solvers.Args{Line: line, Rule: rule, Result: fastResult}
	fa = runToCompletion(t, solvers.Fast{}, wsFor(solvers.Fast{}, 7, 1), fa)
	require.NotZero(t, fa.Fits)

	completeResult := blankResult(7)
	ca := solvers.Args{Line: line, Rule: rule, Result: completeResult}
	ca = runToCompletion(t, solvers.Complete{}, wsFor(solvers.Complete{}, 7, 1), ca)
	require.NotZero(t, ca.Fits)

	// Every valid placement of a length-3 block covering offset 3 starts
	// at one of positions 1,2,3; all of them cover offset 3 itself and
	// leave offsets 0 and 6 dot. Complete should leave no more cells
	// undetermined than fast, i.e. at least as many cells solved.
	fastKnown, completeKnown := 0, 0
	for i := 0; i < 7; i++ {
		if fastResult.At(i).Known() {
			fastKnown++
		}
		if completeResult.At(i).Known() {
			completeKnown++
		}
	}
	require.GreaterOrEqual(t, completeKnown, fastKnown)

	want := []core.Cell{core.DOT, core.BOTH, core.BOTH, core.SOLID, core.BOTH, core.BOTH, core.DOT}
	for i, w := range want {
		require.Equal(t, w, fastResult.At(i), "fast cell %d", i)
		require.Equal(t, w, completeResult.At(i), "complete cell %d", i)
	}
}

// TestOlsakLeavesNoCellBlank runs olsak's contrary-guess logic on rule
// {2,2} over a blank line of 6: both extremes place a solid at cells 1
// and 4, guessing DOT there makes the line infeasible and forces SOLID,
// and every other cell ends up BOTH. The test checks that no cell is
// left BLANK.
func TestOlsakLeavesNoCellBlank(t *testing.T) {
	cells := make([]core.Cell, 6)
	line := core.SliceLine(cells)
	rule := core.Rule{2, 2}

	result := blankResult(6)
	a := solvers.Args{Line: line, Rule: rule, Result: result}
	a = runToCompletion(t, solvers.Olsak{}, wsFor(solvers.Olsak{}, 6, 2), a)
	require.NotZero(t, a.Fits)
	for i := 0; i < 6; i++ {
		require.NotEqual(t, core.BLANK, result.At(i), "olsak should leave no cell BLANK, cell %d", i)
	}
}

func TestPushNameAndPrepSizing(t *testing.T) {
	s := solvers.Push{}
	require.Equal(t, "push", s.Name())
	req := s.Prep(solvers.Limits{MaxLine: 10, MaxRule: 3})
	require.Equal(t, 12, req.Ints)
}

func TestRegistrySlotsKnownPresets(t *testing.T) {
	require.Len(t, solvers.Slots(solvers.PresetFast), 1)
	require.Len(t, solvers.Slots(solvers.PresetHybrid), 2)
	require.Len(t, solvers.Slots(solvers.PresetFastOlsakComplete), 3)
	require.Nil(t, solvers.Slots(solvers.Preset("bogus")))
}

// TestCompleteAndFcompSurviveReuse checks that the workspace returned by
// NewWorkspace can be reused, unmodified in identity, across multiple
// lines in sequence -- the shape the driver relies on to avoid
// reallocating a strategy's scratch state per line.
func TestCompleteAndFcompSurviveReuse(t *testing.T) {
	for _, s := range []solvers.Strategy{solvers.Complete{}, solvers.Fcomp{}} {
		ws := wsFor(s, 7, 1)
		for _, rule := range []core.Rule{{5}, {1}, {7}} {
			line := core.SliceLine(make([]core.Cell, 7))
			result := blankResult(7)
			a := solvers.Args{Line: line, Rule: rule, Result: result}
			a = runToCompletion(t, s, ws, a)
			require.NotZero(t, a.Fits, "%s: rule %v should be feasible on a blank line of 7", s.Name(), rule)
		}
	}
}

// Package batch solves several independent puzzles concurrently, each
// on its own driver.Driver session, bounded by a worker limit. It sits
// outside the single-threaded driver entirely: a worker-pool fan-out
// with a graceful wait, expressed with errgroup rather than a raw
// channel and WaitGroup.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/driver"
	"github.com/nonogram/solver/internal/nono/solvers"
)

// Result is one puzzle's outcome: Grid is nil and Err is non-nil when
// the puzzle could not be solved.
type Result struct {
	Puzzle *core.Puzzle
	Grid   *core.Grid
	Ticks  int
	Err    error
}

// Solve runs every puzzle to its first solution concurrently, limited
// to workers simultaneous drivers (workers<=0 means unbounded). The
// first puzzle's error does not cancel the others: every puzzle gets a
// Result, since one unsolvable puzzle in a batch is routine, not a
// reason to abandon the rest.
func Solve(ctx context.Context, puzzles []*core.Puzzle, slots func() []solvers.Strategy, workers int) ([]Result, error) {
	results := make([]Result, len(puzzles))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, p := range puzzles {
		i, p := i, p
		g.Go(func() error {
			results[i] = solveOne(ctx, p, slots())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func solveOne(ctx context.Context, p *core.Puzzle, strategySlots []solvers.Strategy) Result {
	d := driver.New(strategySlots)
	if err := d.Load(p); err != nil {
		return Result{Puzzle: p, Err: err}
	}

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			return Result{Puzzle: p, Err: ctx.Err()}
		default:
		}

		status, err := d.Tick()
		ticks++
		if err != nil {
			return Result{Puzzle: p, Ticks: ticks, Err: err}
		}
		if status == driver.Solved {
			return Result{Puzzle: p, Grid: d.Grid().Clone(), Ticks: ticks}
		}
		if status == driver.Exhausted {
			return Result{Puzzle: p, Ticks: ticks, Err: driver.ErrExhausted}
		}
	}
}

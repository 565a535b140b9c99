// Command nonosolve solves a single puzzle file and prints its
// solution(s) to stdout: a one-shot CLI that loads a single puzzle,
// runs the solver, and prints a short report of what happened.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/driver"
	"github.com/nonogram/solver/internal/nono/solvers"
	"github.com/nonogram/solver/internal/nono/textio"
)

func main() {
	preset := flag.String("preset", string(solvers.PresetFastOlsakComplete), "solver preset")
	all := flag.Bool("all", false, "find every solution instead of stopping at the first")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: nonosolve [-preset name] [-all] <puzzle-file>")
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "nonosolve:", err)
		os.Exit(1)
	}
	defer f.Close()

	p, err := textio.Parse(f, func(line int, format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, "line %d: %s\n", line, fmt.Sprintf(format, args...))
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "nonosolve:", err)
		os.Exit(1)
	}

	slots := solvers.Slots(solvers.Preset(*preset))
	if slots == nil {
		fmt.Fprintf(os.Stderr, "nonosolve: unknown preset %q\n", *preset)
		os.Exit(1)
	}

	d := driver.New(slots)
	d.Client = printClient{}
	if err := d.Load(p); err != nil {
		fmt.Fprintln(os.Stderr, "nonosolve:", err)
		os.Exit(1)
	}

	ticks, found := 0, 0
	status := driver.Working
	for status == driver.Working {
		status, err = d.Tick()
		ticks++
		if err != nil {
			fmt.Fprintln(os.Stderr, "nonosolve:", err)
			os.Exit(1)
		}
		if status == driver.Solved {
			found++
			if !*all {
				break
			}
			status = driver.Working
		}
	}

	fmt.Fprintf(os.Stderr, "%d solution(s) found in %d ticks (guess depth %d)\n", found, ticks, d.Depth())
	if found == 0 {
		os.Exit(1)
	}
}

type printClient struct{}

func (printClient) Present(g *core.Grid) {
	for y := 0; y < g.Height; y++ {
		var b strings.Builder
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) == core.SOLID {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		fmt.Println(b.String())
	}
	fmt.Println()
}

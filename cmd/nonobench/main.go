// Command nonobench solves a batch of puzzles concurrently and reports
// per-puzzle tick counts and the batch's total time: a worker-pool
// stress test over many puzzles with a pass/fail summary, built around
// internal/batch's errgroup-based fan-out instead of raw channels and
// a WaitGroup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nonogram/solver/internal/batch"
	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/solvers"
	"github.com/nonogram/solver/internal/nono/textio"
)

// suiteFile is the YAML shape nonobench reads: a named list of puzzle
// files to load and solve as one batch.
type suiteFile struct {
	Preset  string   `yaml:"preset"`
	Puzzles []string `yaml:"puzzles"`
}

func main() {
	workers := flag.Int("workers", 8, "maximum concurrent solvers")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: nonobench [-workers N] <suite.yaml>")
		os.Exit(1)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "nonobench:", err)
		os.Exit(1)
	}

	var suite suiteFile
	if err := yaml.Unmarshal(raw, &suite); err != nil {
		fmt.Fprintln(os.Stderr, "nonobench: parsing suite:", err)
		os.Exit(1)
	}
	if suite.Preset == "" {
		suite.Preset = string(solvers.PresetFastOlsakComplete)
	}

	preset := solvers.Preset(suite.Preset)
	if solvers.Slots(preset) == nil {
		fmt.Fprintf(os.Stderr, "nonobench: unknown preset %q\n", suite.Preset)
		os.Exit(1)
	}

	puzzles := make([]*core.Puzzle, 0, len(suite.Puzzles))
	names := make([]string, 0, len(suite.Puzzles))
	for _, path := range suite.Puzzles {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "nonobench:", err)
			os.Exit(1)
		}
		p, err := textio.Parse(f, nil)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "nonobench: %s: %v\n", path, err)
			os.Exit(1)
		}
		puzzles = append(puzzles, p)
		names = append(names, path)
	}

	fmt.Printf("Solving %d puzzles with preset %q, %d workers\n", len(puzzles), preset, *workers)
	start := time.Now()

	results, err := batch.Solve(context.Background(), puzzles, func() []solvers.Strategy {
		return solvers.Slots(preset)
	}, *workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nonobench:", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)

	type row struct {
		name  string
		ticks int
		ok    bool
	}
	rows := make([]row, len(results))
	solved := 0
	for i, r := range results {
		rows[i] = row{name: names[i], ticks: r.Ticks, ok: r.Err == nil}
		if r.Err == nil {
			solved++
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ticks > rows[j].ticks })

	fmt.Println()
	for _, r := range rows {
		status := "ok"
		if !r.ok {
			status = "FAILED"
		}
		fmt.Printf("  %-40s %8d ticks  %s\n", r.name, r.ticks, status)
	}

	fmt.Println()
	fmt.Printf("Solved %d/%d in %v (%.1f puzzles/sec)\n",
		solved, len(puzzles), elapsed, float64(len(puzzles))/elapsed.Seconds())

	if solved != len(puzzles) {
		os.Exit(1)
	}
}

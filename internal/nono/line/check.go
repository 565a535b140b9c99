// Package line implements the line-check and push primitives shared by
// every line-solver strategy.
package line

import "github.com/nonogram/solver/internal/core"

// Check validates a fully-determined line against rule.
//
// Returns 0 if the maximal SOLID runs match rule in order, -1 on any
// mismatch, and 1 if any cell is still BLANK or BOTH.
func Check(rule core.Rule, cells []core.Cell) int {
	blockNo := 0
	run := 0
	inRun := false

	for _, c := range cells {
		if c != core.DOT && c != core.SOLID {
			return 1
		}
		if c == core.SOLID {
			if !inRun {
				inRun = true
				run = 0
				if blockNo >= len(rule) {
					return -1
				}
			}
			run++
			if run > rule[blockNo] {
				return -1
			}
		} else if inRun {
			if run != rule[blockNo] {
				return -1
			}
			blockNo++
			inRun = false
		}
	}
	if inRun {
		if run != rule[blockNo] {
			return -1
		}
		blockNo++
	}
	if blockNo != len(rule) {
		return -1
	}
	return 0
}

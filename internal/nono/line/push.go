package line

import "github.com/nonogram/solver/internal/core"

// Push computes the extreme placement of rule's blocks against line,
// honoring existing DOT/SOLID constraints.
//
// pos and solid must each have length len(rule); on success pos[i] is
// the chosen start of block i and solid[i] is the offset within block
// i of its left-most covered SOLID, or -1 if it covers none. When
// reverse is false the result is the left-push; when true it is the
// right-push, computed by running the same forward algorithm over a
// mirrored view (a reverse flag, not negative strides).
func Push(l core.Line, rule core.Rule, pos, solid []int, reverse bool) bool {
	if !reverse {
		return pushLeft(l, rule, pos, solid)
	}

	k := len(rule)
	rrule := make(core.Rule, k)
	for i, v := range rule {
		rrule[k-1-i] = v
	}
	rpos := make([]int, k)
	rsolid := make([]int, k)
	if !pushLeft(core.Reversed(l), rrule, rpos, rsolid) {
		return false
	}
	L := l.Len
	for i := 0; i < k; i++ {
		j := k - 1 - i
		pos[i] = L - rpos[j] - rule[i]
		if rsolid[j] < 0 {
			solid[i] = -1
		} else {
			solid[i] = rule[i] - 1 - rsolid[j]
		}
	}
	return true
}

// pushLeft is a direct port of the reference nonogram_push: it walks
// blocks left to right, backing up to the earliest block that can be
// repositioned whenever a placement would strand a SOLID outside any
// block.
func pushLeft(l core.Line, rule core.Rule, pos, solid []int) bool {
	linelen := l.Len
	rulelen := len(rule)
	if rulelen == 0 {
		// An empty rule is only feasible against a line with no forced
		// SOLID cell to cover. The reference only reaches rulelen==0
		// via fast.c's own "single zero-length block" sentinel, which
		// never represents a line containing a SOLID; every strategy
		// here instead represents "no blocks" as a zero-length Rule
		// directly, so Push must check for a stray SOLID itself.
		for i := 0; i < linelen; i++ {
			if l.At(i) == core.SOLID {
				return false
			}
		}
		return true
	}
	pos[0] = 0

	block := 0
	for block < rulelen {
		posv := pos[block]
		rulev := rule[block]

		for posv+rulev < linelen && l.At(posv) == core.DOT {
			posv++
		}
		pos[block] = posv

		if posv+rulev > linelen || (posv < linelen && l.At(posv) == core.DOT) {
			return false
		}

		solid[block] = -1
		i := 0
		for i < rulev && l.At(posv+i) != core.DOT {
			if solid[block] < 0 && l.At(posv+i) == core.SOLID {
				solid[block] = i
			}
			i++
		}

		if i < rulev {
			// Ran into a DOT before the block was fully placed.
			if solid[block] >= 0 {
				if !backtrack(rule, pos, solid, &block) {
					return false
				}
				continue
			}
			pos[block] += i
			continue
		}

		// Block fits before the next DOT; check whether a SOLID
		// touches its right edge and must be dragged along.
		posv = pos[block]
		if posv+rulev < linelen && l.At(posv+rulev) == core.SOLID && solid[block] < 0 {
			solid[block] = rulev
		}
		for posv+rulev < linelen && l.At(posv+rulev) == core.SOLID && l.At(posv) != core.SOLID {
			posv++
			solid[block]--
		}
		pos[block] = posv

		if posv+rulev < linelen && l.At(posv+rulev) == core.SOLID {
			if !backtrack(rule, pos, solid, &block) {
				return false
			}
			continue
		}

		// Block is settled; advance, or if it was the last block,
		// verify no trailing SOLID remains uncovered.
		next := pos[block] + 1 + rulev
		if block+1 < rulelen {
			block++
			pos[block] = next
			continue
		}

		trailing := next
		for trailing < linelen && l.At(trailing) != core.SOLID {
			trailing++
		}
		if trailing < linelen {
			if solid[block] >= 0 && trailing-rulev+1 > pos[block]+solid[block] {
				if !backtrack(rule, pos, solid, &block) {
					return false
				}
				continue
			}
			pos[block] = trailing - rulev + 1
			continue
		}
		block++
	}
	return true
}

// backtrack walks block backward to the earliest prior block that can
// be repositioned to cover the solid stranded by block+1, mutating
// *cur and pos/solid in place. Returns false if no such block exists.
func backtrack(rule core.Rule, pos, solid []int, cur *int) bool {
	block := *cur
	for {
		if block == 0 {
			return false
		}
		block--
		if solid[block] < 0 ||
			pos[block+1]+solid[block+1]-rule[block]+1 <= pos[block]+solid[block] {
			break
		}
	}
	pos[block] = pos[block+1] + solid[block+1] - rule[block] + 1
	*cur = block
	return true
}

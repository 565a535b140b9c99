package core

import "fmt"

// Rule is an ordered sequence of strictly positive block lengths for
// one line. An empty Rule is the valid "all dots" line.
type Rule []int

// Sum returns the total number of SOLID cells the rule demands.
func (r Rule) Sum() int {
	s := 0
	for _, v := range r {
		s += v
	}
	return s
}

// MinSpan returns the minimum line length that can hold r: the sum of
// block lengths plus one gap cell between each pair of blocks.
func (r Rule) MinSpan() int {
	if len(r) == 0 {
		return 0
	}
	return r.Sum() + len(r) - 1
}

// Fits reports whether r can be placed at all within a line of length L.
func (r Rule) Fits(L int) bool {
	return r.MinSpan() <= L
}

// Equal compares two rules for exact equality.
func (r Rule) Equal(other Rule) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

func (r Rule) Clone() Rule {
	out := make(Rule, len(r))
	copy(out, r)
	return out
}

// Validate checks that a rule fits its line length and that every
// block length is strictly positive.
func (r Rule) Validate(L int) error {
	for i, v := range r {
		if v <= 0 {
			return fmt.Errorf("rule block %d has non-positive length %d", i, v)
		}
	}
	if !r.Fits(L) {
		return fmt.Errorf("rule %v does not fit in a line of length %d", []int(r), L)
	}
	return nil
}

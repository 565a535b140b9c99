package core

import "testing"

func TestNewValidatesBlockSums(t *testing.T) {
	_, err := New(2, 1, []Rule{{1}}, []Rule{{1}, {}})
	if err != nil {
		t.Fatalf("expected balanced rules to validate, got %v", err)
	}

	_, err = New(2, 1, []Rule{{2}}, []Rule{{1}, {}})
	if err == nil {
		t.Fatal("expected mismatched block totals to fail validation")
	}
}

func TestRuleFits(t *testing.T) {
	tests := []struct {
		rule Rule
		L    int
		want bool
	}{
		{Rule{5}, 7, true},
		{Rule{5}, 5, true},
		{Rule{5}, 4, false},
		{Rule{1, 1, 1}, 5, true},
		{Rule{1, 1, 1}, 4, false},
		{Rule{}, 0, true},
	}
	for _, tt := range tests {
		if got := tt.rule.Fits(tt.L); got != tt.want {
			t.Errorf("Rule(%v).Fits(%d) = %v, want %v", tt.rule, tt.L, got, tt.want)
		}
	}
}

func TestFromGridRoundTrip(t *testing.T) {
	g := NewGrid(5, 1)
	for x := 1; x <= 4; x++ {
		g.Set(x, 0, DOT)
	}
	g.Set(0, 0, DOT)
	p, err := FromGrid(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Row[0]) != 0 {
		t.Errorf("expected empty row rule, got %v", p.Row[0])
	}
}

func TestFromGridRejectsIndeterminate(t *testing.T) {
	g := NewGrid(3, 1)
	g.Set(0, 0, DOT)
	g.Set(1, 0, BLANK)
	g.Set(2, 0, SOLID)
	if _, err := FromGrid(g); err == nil {
		t.Fatal("expected error for indeterminate cell")
	}
}

func TestLineScorePrefersConstrainedLines(t *testing.T) {
	loose := LineScore(Rule{1}, 20)
	tight := LineScore(Rule{5, 5, 5}, 17)
	if tight <= loose {
		t.Errorf("expected a tightly packed rule to score higher: tight=%d loose=%d", tight, loose)
	}
}

func TestLineScoreEmptyRuleIsLength(t *testing.T) {
	if got := LineScore(Rule{}, 9); got != 9 {
		t.Errorf("LineScore(empty, 9) = %d, want 9", got)
	}
}

package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/cache"
)

// TestPuzzleRoundTrip covers encode/decode round-trip
// scenario: a 3x3 puzzle with rows [1],[2],[1] and columns [2],[1],[1].
func TestPuzzleRoundTrip(t *testing.T) {
	rows := []core.Rule{{1}, {2}, {1}}
	cols := []core.Rule{{2}, {1}, {1}}
	p, err := core.New(3, 3, rows, cols)
	require.NoError(t, err)

	s := cache.EncodePuzzle(p)
	require.NotEmpty(t, s)

	got, err := cache.DecodePuzzle(3, 3, s)
	require.NoError(t, err)
	require.True(t, p.Equal(got))
}

func TestPuzzleRoundTripEmptyRules(t *testing.T) {
	rows := []core.Rule{{}, {}}
	cols := []core.Rule{{}, {}}
	p, err := core.New(2, 2, rows, cols)
	require.NoError(t, err)

	s := cache.EncodePuzzle(p)
	got, err := cache.DecodePuzzle(2, 2, s)
	require.NoError(t, err)
	require.True(t, p.Equal(got))
}

// TestPuzzleRoundTripLargeBlocks exercises every encodeLen size tier
// (1, 2, 3 and 4 characters) by round-tripping block lengths that
// straddle each threshold. DecodePuzzle validates through New, so the
// puzzle is a single row just wide enough for the blocks, with one
// column rule per cell.
func TestPuzzleRoundTripLargeBlocks(t *testing.T) {
	var out core.Rule
	for _, v := range []int{10, 40, 128, 1024, 2000} {
		out = append(out, v)
	}
	width := out.MinSpan()
	cols := make([]core.Rule, 0, width)
	for i, v := range out {
		if i > 0 {
			cols = append(cols, core.Rule{})
		}
		for j := 0; j < v; j++ {
			cols = append(cols, core.Rule{1})
		}
	}
	p, err := core.New(width, 1, []core.Rule{out}, cols)
	require.NoError(t, err)
	s := cache.EncodePuzzle(p)
	got, err := cache.DecodePuzzle(width, 1, s)
	require.NoError(t, err)
	require.True(t, out.Equal(got.Row[0]))
}

func TestGridRoundTrip(t *testing.T) {
	g := core.NewGrid(3, 3)
	pattern := []core.Cell{
		core.DOT, core.SOLID, core.DOT,
		core.SOLID, core.SOLID, core.DOT,
		core.DOT, core.SOLID, core.DOT,
	}
	for i, c := range pattern {
		g.Set(i%3, i/3, c)
	}

	s, err := cache.EncodeGrid(g)
	require.NoError(t, err)

	got, err := cache.DecodeGrid(3, 3, s)
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			require.Equal(t, g.At(x, y), got.At(x, y), "cell (%d,%d)", x, y)
		}
	}
}

func TestGridRoundTripOddSizes(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {5, 7}, {11, 11}} {
		w, h := dim[0], dim[1]
		g := core.NewGrid(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if (x+y)%2 == 0 {
					g.Set(x, y, core.SOLID)
				} else {
					g.Set(x, y, core.DOT)
				}
			}
		}
		s, err := cache.EncodeGrid(g)
		require.NoError(t, err)
		got, err := cache.DecodeGrid(w, h, s)
		require.NoError(t, err)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				require.Equal(t, g.At(x, y), got.At(x, y), "%dx%d cell (%d,%d)", w, h, x, y)
			}
		}
	}
}

func TestEncodeGridRejectsUndetermined(t *testing.T) {
	g := core.NewGrid(2, 2)
	g.Set(0, 0, core.BOTH)
	_, err := cache.EncodeGrid(g)
	require.Error(t, err)

	g2 := core.NewGrid(2, 2)
	_, err = cache.EncodeGrid(g2)
	require.Error(t, err, "a BLANK cell should also be rejected")
}

func TestDecodeGridRejectsShortInput(t *testing.T) {
	_, err := cache.DecodeGrid(10, 10, "ab")
	require.Error(t, err)
}

func TestDecodePuzzleRejectsTruncatedInput(t *testing.T) {
	_, err := cache.DecodePuzzle(3, 3, "")
	require.Error(t, err)
}

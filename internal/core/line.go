package core

// Line is a one-dimensional view over a row or a column of a Grid.
//
// The reference implementation expresses a line as a pointer plus a
// byte stride so the same push/line-check code walks rows and columns
// identically; a row-major Go slice cannot express a strided view
// directly, so Line carries accessor closures instead. Row views close
// over a contiguous sub-slice; column views close over the grid and a
// fixed x.
type Line struct {
	Len int
	get func(i int) Cell
	set func(i int, v Cell)
}

func (l Line) At(i int) Cell     { return l.get(i) }
func (l Line) Put(i int, v Cell) { l.set(i, v) }

// Slice materializes the line into a freshly allocated []Cell.
func (l Line) Slice() []Cell {
	out := make([]Cell, l.Len)
	for i := range out {
		out[i] = l.get(i)
	}
	return out
}

// RowLine returns a Line over row y of g.
func RowLine(g *Grid, y int) Line {
	row := g.Row(y)
	return Line{
		Len: g.Width,
		get: func(i int) Cell { return row[i] },
		set: func(i int, v Cell) { row[i] = v },
	}
}

// ColLine returns a Line over column x of g.
func ColLine(g *Grid, x int) Line {
	return Line{
		Len: g.Height,
		get: func(i int) Cell { return g.Cells[i*g.Width+x] },
		set: func(i int, v Cell) { g.Cells[i*g.Width+x] = v },
	}
}

// SliceLine wraps a plain []Cell as a Line, stride 1. Used by strategy
// tests and by the push primitive's own scratch buffers.
func SliceLine(cells []Cell) Line {
	return Line{
		Len: len(cells),
		get: func(i int) Cell { return cells[i] },
		set: func(i int, v Cell) { cells[i] = v },
	}
}

// Reversed returns a Line that walks l back-to-front. Used to obtain a
// right-to-left push from the same forward-only Push implementation: a
// reverse flag, not negative strides.
func Reversed(l Line) Line {
	n := l.Len
	return Line{
		Len: n,
		get: func(i int) Cell { return l.get(n - 1 - i) },
		set: func(i int, v Cell) { l.set(n-1-i, v) },
	}
}

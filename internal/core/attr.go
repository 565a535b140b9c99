package core

// LineAttr tracks the remaining unaccounted solids/dots for one line
// and its heuristic score.
//
// Invariant: Solid+Dot equals the number of BLANK cells on the line at
// all times; the driver maintains this as it redeems line-solver
// output.
type LineAttr struct {
	Solid int
	Dot   int
	Score int
}

// NewLineAttr seeds a line's attribute from its rule and length, before
// any cell has been decided.
func NewLineAttr(r Rule, length int) LineAttr {
	return LineAttr{Solid: r.Sum(), Dot: length - r.Sum(), Score: LineScore(r, length)}
}

// Rect is an axis-aligned, half-open-on-neither-end rectangle of grid
// coordinates: cells with Min.X<=x<=Max.X and Min.Y<=y<=Max.Y.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether the rectangle contains no cells.
func (r Rect) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Contains reports whether (x,y) lies within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// FullRect returns the rectangle covering an entire width x height grid.
func FullRect(width, height int) Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: width - 1, MaxY: height - 1}
}

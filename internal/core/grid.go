package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Row returns the backing slice for row y.
func (g *ByteGrid) Row(y int) []uint8 {
	start := y * g.W
	return g.data[start : start+g.W]
}

// Grow extends the grid so it holds at least the requested number of rows,
// doubling the allocation to keep repeated appends cheap.
func (g *ByteGrid) Grow(rows int) {
	if rows <= g.H {
		return
	}
	h := g.H
	for h < rows {
		h *= 2
	}
	data := make([]uint8, g.W*h)
	copy(data, g.data)
	g.data = data
	g.H = h
}

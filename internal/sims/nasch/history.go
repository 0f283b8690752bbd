package nasch

import "nasch-ca/internal/core"

// History accumulates one row of cell observations per tick in a row-major
// grid: row t holds the post-motion state of tick t+1 and column x is cell
// index x. The initial placement is not recorded; row 0 is the state after
// the first update.
type History struct {
	grid *core.ByteGrid
	rows int
}

// NewHistory preallocates space for the expected number of rows. Append
// grows the grid beyond that when needed.
func NewHistory(roadLength, steps int) *History {
	return &History{grid: core.NewByteGrid(roadLength, steps)}
}

// RoadLength reports the number of cells per row.
func (h *History) RoadLength() int { return h.grid.W }

// Rows reports how many ticks have been recorded.
func (h *History) Rows() int { return h.rows }

// Append copies one post-motion row into the history.
func (h *History) Append(row []uint8) {
	h.grid.Grow(h.rows + 1)
	copy(h.grid.Row(h.rows), row)
	h.rows++
}

// Row exposes the recorded row for tick index t.
func (h *History) Row(t int) []uint8 { return h.grid.Row(t) }

// Cells returns the full tick-major array trimmed to the recorded rows.
// This is the sole interface handed to the image encoder.
func (h *History) Cells() []uint8 {
	return h.grid.Cells()[:h.rows*h.grid.W]
}

// Reset discards all recorded rows. The backing grid is left untouched:
// rows gates every read and Append overwrites a full row at a time.
func (h *History) Reset() {
	h.rows = 0
}

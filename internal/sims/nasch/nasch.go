// Package nasch implements the Nagel-Schreckenberg single-lane traffic
// cellular automaton on a closed ring of cells.
package nasch

import (
	"errors"
	"fmt"
	"slices"

	"nasch-ca/internal/core"
)

// cellEmpty is the tagged byte for an unoccupied cell. An occupied cell
// stores velocity+1, so a stopped vehicle is distinguishable from empty road.
const cellEmpty uint8 = 0

// maxEncodableVelocity is the largest velocity the tagged byte can hold.
const maxEncodableVelocity = 254

// ErrCollision reports two vehicles resolving to the same cell during the
// motion phase. The braking phase makes this unreachable; seeing it means
// the update rule is defective.
var ErrCollision = errors.New("nasch: two vehicles advanced into one cell")

// DecodeCell splits a tagged cell byte into its velocity and occupancy.
func DecodeCell(c uint8) (int, bool) {
	if c == cellEmpty {
		return 0, false
	}
	return int(c) - 1, true
}

// Road is a fixed-size ring of cells, each either empty or occupied by a
// vehicle carrying its velocity. The successor of the last cell is cell 0.
type Road struct {
	cells []uint8
}

// NewRoad allocates an empty ring with the given number of cells.
func NewRoad(length int) *Road {
	if length <= 0 {
		length = 1
	}
	return &Road{cells: make([]uint8, length)}
}

// Len returns the number of cells on the ring.
func (r *Road) Len() int { return len(r.cells) }

// Cells exposes the tagged cell values.
func (r *Road) Cells() []uint8 { return r.cells }

// Velocity reports the vehicle velocity at cell i and whether the cell is
// occupied.
func (r *Road) Velocity(i int) (int, bool) {
	return DecodeCell(r.cells[i])
}

// Gap returns the number of empty cells strictly between cell i and the
// next occupied cell downstream, scanning circularly. A road carrying a
// single vehicle wraps all the way around and reports Len()-1.
func (r *Road) Gap(i int) int {
	n := len(r.cells)
	for d := 1; d < n; d++ {
		if r.cells[(i+d)%n] != cellEmpty {
			return d - 1
		}
	}
	return n - 1
}

func (r *Road) clear() {
	for i := range r.cells {
		r.cells[i] = cellEmpty
	}
}

// move is one vehicle's outcome for a tick. The displacement equals the
// final velocity of the tick.
type move struct {
	from     int
	velocity int
}

// advanceInto writes the post-motion ring into dst, applying every
// displacement simultaneously modulo the ring length and preserving
// velocities.
func (r *Road) advanceInto(dst *Road, moves []move) error {
	dst.clear()
	n := len(r.cells)
	for _, m := range moves {
		to := (m.from + m.velocity) % n
		if dst.cells[to] != cellEmpty {
			return fmt.Errorf("%w: cell %d", ErrCollision, to)
		}
		dst.cells[to] = uint8(m.velocity) + 1
	}
	return nil
}

// Simulator owns one road ring and a seeded random source and applies the
// four-phase Nagel-Schreckenberg update once per Step.
type Simulator struct {
	cfg Config

	cur *Road
	nxt *Road

	history *History
	moves   []move

	rng *core.RNG
}

// New returns a simulator for the given ring size and vehicle count using
// default dynamics. It panics on inconsistent arguments; use NewWithConfig
// to handle validation errors.
func New(length, vehicles int) *Simulator {
	cfg := DefaultConfig()
	cfg.RoadLength = length
	cfg.Vehicles = vehicles
	s, err := NewWithConfig(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithConfig validates the configuration and allocates a simulator.
// Call Reset before stepping.
func NewWithConfig(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:     cfg,
		cur:     NewRoad(cfg.RoadLength),
		nxt:     NewRoad(cfg.RoadLength),
		history: NewHistory(cfg.RoadLength, cfg.Steps),
		moves:   make([]move, 0, cfg.Vehicles),
		rng:     core.NewRNG(cfg.Seed),
	}, nil
}

// Name returns the simulation identifier.
func (s *Simulator) Name() string { return "nasch" }

// Size reports the ring as a one-row grid.
func (s *Simulator) Size() core.Size { return core.Size{W: s.cfg.RoadLength, H: 1} }

// Cells exposes the current ring state.
func (s *Simulator) Cells() []uint8 { return s.cur.cells }

// Config returns the validated configuration the simulator was built from.
func (s *Simulator) Config() Config { return s.cfg }

// History returns the recorded space-time rows.
func (s *Simulator) History() *History { return s.history }

// HistoryRows implements core.HistorySource.
func (s *Simulator) HistoryRows() int { return s.history.Rows() }

// HistoryCells implements core.HistorySource.
func (s *Simulator) HistoryCells() []uint8 { return s.history.Cells() }

// Reset repopulates the ring using deterministic randomness and discards
// the recorded history. A zero seed falls back to the configured one.
func (s *Simulator) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	s.rng = core.NewRNG(effective)
	s.cur.clear()
	s.nxt.clear()
	s.history.Reset()
	s.place()
}

// place seeds the ring with the configured number of vehicles at distinct
// cells. Initial velocities are assigned in ascending cell order so runs
// with the same seed are reproducible.
func (s *Simulator) place() {
	n := s.cfg.Vehicles
	if n == 0 {
		return
	}
	var positions []int
	switch s.cfg.Placement {
	case PlacementUniform:
		positions = make([]int, 0, n)
		for i := 0; i < n; i++ {
			positions = append(positions, i*s.cfg.RoadLength/n)
		}
	default:
		positions = s.rng.Perm(s.cfg.RoadLength)[:n]
		slices.Sort(positions)
	}
	for _, pos := range positions {
		v := 0
		if s.cfg.RandomStartVelocity && s.cfg.MaxVelocity > 0 {
			v = s.rng.IntN(s.cfg.MaxVelocity + 1)
		}
		s.cur.cells[pos] = uint8(v) + 1
	}
}

// Step applies the four update phases once: acceleration, braking against
// the pre-tick gap, random slowdown, and simultaneous motion. Every phase
// reads the pre-tick ring; vehicles are enumerated in ascending cell order
// and consume exactly one random draw each, which keeps runs with the same
// seed bit-identical. The post-motion row is appended to the history.
func (s *Simulator) Step() {
	s.moves = s.moves[:0]
	n := s.cur.Len()
	for i := 0; i < n; i++ {
		v, ok := DecodeCell(s.cur.cells[i])
		if !ok {
			continue
		}
		if v < s.cfg.MaxVelocity {
			v++
		}
		if gap := s.cur.Gap(i); v > gap {
			v = gap
		}
		if s.rng.Float64() < s.cfg.BrakeProb && v > 0 {
			v--
		}
		s.moves = append(s.moves, move{from: i, velocity: v})
	}
	if err := s.cur.advanceInto(s.nxt, s.moves); err != nil {
		// Unreachable after the braking phase; a collision here is a
		// defect in the update rule, not a recoverable condition.
		panic(err)
	}
	s.cur, s.nxt = s.nxt, s.cur
	s.history.Append(s.cur.cells)
}

// Run advances the simulation by the configured number of steps, recording
// one history row per tick, and returns the accumulated history.
func (s *Simulator) Run() *History {
	for t := 0; t < s.cfg.Steps; t++ {
		s.Step()
	}
	return s.history
}

func init() {
	core.Register("nasch", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		sim, err := NewWithConfig(c)
		if err != nil {
			// FromMap clamps every field into range.
			panic(err)
		}
		return sim
	})
}

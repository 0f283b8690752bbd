package nasch

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nasch-ca/internal/core"
)

func mustSim(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	sim, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return sim
}

func TestGapSingleVehicleWrapsAround(t *testing.T) {
	road := NewRoad(10)
	road.cells[3] = 1
	if v, ok := road.Velocity(3); !ok || v != 0 {
		t.Fatalf("Velocity(3) = %d,%v, want 0,true", v, ok)
	}
	if _, ok := road.Velocity(4); ok {
		t.Fatal("cell 4 should be empty")
	}
	if gap := road.Gap(3); gap != 9 {
		t.Fatalf("single-vehicle gap = %d, want 9", gap)
	}
}

func TestGapAdjacentVehicles(t *testing.T) {
	road := NewRoad(10)
	road.cells[2] = 1
	road.cells[3] = 1
	if gap := road.Gap(2); gap != 0 {
		t.Fatalf("adjacent gap = %d, want 0", gap)
	}
	if gap := road.Gap(3); gap != 8 {
		t.Fatalf("wrapping gap = %d, want 8", gap)
	}
}

func TestAdvanceRejectsCollision(t *testing.T) {
	road := NewRoad(10)
	road.cells[0] = 2
	road.cells[2] = 1
	dst := NewRoad(10)
	err := road.advanceInto(dst, []move{{from: 0, velocity: 2}, {from: 2, velocity: 0}})
	if !errors.Is(err, ErrCollision) {
		t.Fatalf("err = %v, want ErrCollision", err)
	}
}

func TestConservationAndVelocityBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoadLength = 100
	cfg.Vehicles = 30
	cfg.MaxVelocity = 5
	cfg.BrakeProb = 0.3
	cfg.Steps = 200
	cfg.Seed = 7

	sim := mustSim(t, cfg)
	sim.Reset(0)
	hist := sim.Run()

	if hist.Rows() != cfg.Steps {
		t.Fatalf("recorded %d rows, want %d", hist.Rows(), cfg.Steps)
	}
	for tick := 0; tick < hist.Rows(); tick++ {
		occupied := 0
		for _, c := range hist.Row(tick) {
			v, ok := DecodeCell(c)
			if !ok {
				continue
			}
			occupied++
			if v < 0 || v > cfg.MaxVelocity {
				t.Fatalf("tick %d: velocity %d out of [0,%d]", tick, v, cfg.MaxVelocity)
			}
		}
		// One occupied cell per vehicle also rules out collisions: a
		// collision would merge two vehicles into one cell.
		if occupied != cfg.Vehicles {
			t.Fatalf("tick %d: %d vehicles, want %d", tick, occupied, cfg.Vehicles)
		}
	}
}

func TestDisplacementNeverExceedsGap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoadLength = 64
	cfg.Vehicles = 20
	cfg.BrakeProb = 0.5
	cfg.Seed = 11

	sim := mustSim(t, cfg)
	sim.Reset(0)

	prev := make([]uint8, cfg.RoadLength)
	for tick := 0; tick < 100; tick++ {
		copy(prev, sim.Cells())
		sim.Step()
		before := &Road{cells: prev}
		for _, m := range sim.moves {
			if gap := before.Gap(m.from); m.velocity > gap {
				t.Fatalf("tick %d: vehicle at %d moved %d with gap %d", tick, m.from, m.velocity, gap)
			}
		}
	}
}

func TestDeterministicHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoadLength = 120
	cfg.Vehicles = 40
	cfg.BrakeProb = 0.35
	cfg.Steps = 150
	cfg.Seed = 42

	a := mustSim(t, cfg)
	a.Reset(0)
	b := mustSim(t, cfg)
	b.Reset(0)

	if diff := cmp.Diff(a.Run().Cells(), b.Run().Cells()); diff != "" {
		t.Fatalf("same seed produced different histories (-a +b):\n%s", diff)
	}

	c := mustSim(t, cfg)
	c.Reset(43)
	if slices.Equal(a.History().Cells(), c.Run().Cells()) {
		t.Fatal("different seeds should produce different histories")
	}
}

func TestResetDeterministicPlacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoadLength = 64
	cfg.Vehicles = 50
	cfg.RandomStartVelocity = true
	cfg.Seed = 99

	sim := mustSim(t, cfg)
	sim.Reset(0)
	initial := append([]uint8(nil), sim.Cells()...)

	occupied := 0
	for _, c := range initial {
		if _, ok := DecodeCell(c); ok {
			occupied++
		}
	}
	if occupied != cfg.Vehicles {
		t.Fatalf("placed %d vehicles, want %d", occupied, cfg.Vehicles)
	}

	sim.Step()
	sim.Reset(0)
	if !slices.Equal(initial, sim.Cells()) {
		t.Fatal("Reset with config seed not deterministic")
	}
}

func TestZeroVehiclesProducesEmptyRows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoadLength = 20
	cfg.Vehicles = 0
	cfg.Steps = 17

	sim := mustSim(t, cfg)
	sim.Reset(0)
	hist := sim.Run()

	if hist.Rows() != 17 {
		t.Fatalf("recorded %d rows, want 17", hist.Rows())
	}
	for _, c := range hist.Cells() {
		if c != cellEmpty {
			t.Fatalf("empty road produced occupied cell %d", c)
		}
	}
}

func TestSingleVehicleAccelerationRamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoadLength = 100
	cfg.Vehicles = 1
	cfg.MaxVelocity = 5
	cfg.BrakeProb = 0
	cfg.Steps = 12
	cfg.Placement = PlacementUniform

	sim := mustSim(t, cfg)
	sim.Reset(0)
	hist := sim.Run()

	for tick := 0; tick < hist.Rows(); tick++ {
		want := tick + 1
		if want > cfg.MaxVelocity {
			want = cfg.MaxVelocity
		}
		found := false
		for _, c := range hist.Row(tick) {
			v, ok := DecodeCell(c)
			if !ok {
				continue
			}
			if found {
				t.Fatalf("tick %d: more than one vehicle", tick)
			}
			found = true
			if v != want {
				t.Fatalf("tick %d: velocity %d, want %d", tick, v, want)
			}
		}
		if !found {
			t.Fatalf("tick %d: vehicle vanished", tick)
		}
	}
}

func TestGoldenSpaceTimeGrid(t *testing.T) {
	cfg := Config{
		RoadLength:  10,
		Vehicles:    3,
		MaxVelocity: 2,
		BrakeProb:   0,
		Steps:       5,
		Seed:        1,
		Placement:   PlacementUniform,
	}

	sim := mustSim(t, cfg)
	sim.Reset(0)
	hist := sim.Run()

	// Vehicles start at cells 0, 3, 6 with velocity 0; with p=0 the run
	// is fully determined by the update rule.
	want := []uint8{
		0, 2, 0, 0, 2, 0, 0, 2, 0, 0, // v=1 at 1,4,7
		0, 0, 0, 3, 0, 0, 3, 0, 0, 3, // v=2 at 3,6,9
		0, 3, 0, 0, 0, 3, 0, 0, 3, 0, // v=2 at 1,5,8
		3, 0, 0, 3, 0, 0, 0, 3, 0, 0, // v=2 at 0,3,7
		0, 0, 3, 0, 0, 3, 0, 0, 0, 3, // v=2 at 2,5,9
	}
	if diff := cmp.Diff(want, hist.Cells()); diff != "" {
		t.Fatalf("space-time grid mismatch (-want +got):\n%s", diff)
	}
}

func TestJammedRingNeverMoves(t *testing.T) {
	sim := New(8, 8)
	sim.Reset(0)
	for i := 0; i < 10; i++ {
		sim.Step()
	}
	hist := sim.History()

	for tick := 0; tick < hist.Rows(); tick++ {
		for x, c := range hist.Row(tick) {
			v, ok := DecodeCell(c)
			if !ok {
				t.Fatalf("tick %d: cell %d emptied on a full ring", tick, x)
			}
			if v != 0 {
				t.Fatalf("tick %d: cell %d has velocity %d on a full ring", tick, x, v)
			}
		}
	}
}

func TestRegistryFactory(t *testing.T) {
	factory, ok := core.Sims()["nasch"]
	if !ok {
		t.Fatal("nasch not registered")
	}
	sim := factory(map[string]string{
		"length":  "32",
		"density": "0.25",
		"vmax":    "3",
		"p":       "0.1",
		"steps":   "8",
	})
	ns, ok := sim.(*Simulator)
	if !ok {
		t.Fatalf("factory returned %T", sim)
	}
	if got := ns.Config().Vehicles; got != 8 {
		t.Fatalf("density 0.25 on 32 cells gave %d vehicles, want 8", got)
	}
	if got := sim.Size().W; got != 32 {
		t.Fatalf("Size().W = %d, want 32", got)
	}

	sim.Reset(5)
	sim.Step()
	hs, ok := sim.(core.HistorySource)
	if !ok {
		t.Fatal("simulator should expose recorded history")
	}
	if hs.HistoryRows() != 1 {
		t.Fatalf("HistoryRows = %d, want 1", hs.HistoryRows())
	}
}

package nasch

import (
	"errors"
	"fmt"
	"strconv"
)

// Placement modes for the initial vehicle distribution.
const (
	// PlacementRandom draws distinct cells from the seeded RNG.
	PlacementRandom = "random"
	// PlacementUniform spaces vehicles evenly around the ring.
	PlacementUniform = "uniform"
)

// ErrInvalidConfig marks configuration rejected at construction time.
var ErrInvalidConfig = errors.New("nasch: invalid configuration")

// Config controls a Nagel-Schreckenberg simulation run.
type Config struct {
	RoadLength  int
	Vehicles    int
	MaxVelocity int
	BrakeProb   float64
	Steps       int

	Seed int64

	Placement           string
	RandomStartVelocity bool
}

// DefaultConfig returns the standard configuration: a 256-cell ring at
// density 0.24 with vmax 5 and braking probability 0.4.
func DefaultConfig() Config {
	return Config{
		RoadLength:  256,
		Vehicles:    61,
		MaxVelocity: 5,
		BrakeProb:   0.4,
		Steps:       256,
		Seed:        1337,
		Placement:   PlacementRandom,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Out-of-range values are ignored. The "density" key derives the vehicle
// count from the road length and wins over an explicit "vehicles" value.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["length"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.RoadLength = parsed
		}
	}
	if v, ok := cfg["vehicles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= c.RoadLength {
			c.Vehicles = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Vehicles = int(parsed * float64(c.RoadLength))
		}
	}
	if c.Vehicles > c.RoadLength {
		c.Vehicles = c.RoadLength
	}
	if v, ok := cfg["vmax"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= maxEncodableVelocity {
			c.MaxVelocity = parsed
		}
	}
	if v, ok := cfg["p"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.BrakeProb = parsed
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Steps = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["placement"]; ok {
		if v == PlacementRandom || v == PlacementUniform {
			c.Placement = v
		}
	}
	if v, ok := cfg["random_speed"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.RandomStartVelocity = parsed
		}
	}
	return c
}

// Validate rejects out-of-range or inconsistent parameters. It runs before
// any randomness is consumed, so a bad configuration never starts a run.
func (c Config) Validate() error {
	if c.RoadLength <= 0 {
		return fmt.Errorf("%w: road length %d, want > 0", ErrInvalidConfig, c.RoadLength)
	}
	if c.Vehicles < 0 || c.Vehicles > c.RoadLength {
		return fmt.Errorf("%w: %d vehicles on %d cells", ErrInvalidConfig, c.Vehicles, c.RoadLength)
	}
	if c.MaxVelocity < 0 || c.MaxVelocity > maxEncodableVelocity {
		return fmt.Errorf("%w: max velocity %d, want 0..%d", ErrInvalidConfig, c.MaxVelocity, maxEncodableVelocity)
	}
	if c.BrakeProb < 0 || c.BrakeProb > 1 {
		return fmt.Errorf("%w: braking probability %g, want [0,1]", ErrInvalidConfig, c.BrakeProb)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps %d, want >= 0", ErrInvalidConfig, c.Steps)
	}
	switch c.Placement {
	case PlacementRandom, PlacementUniform:
	default:
		return fmt.Errorf("%w: unknown placement %q", ErrInvalidConfig, c.Placement)
	}
	return nil
}

// Density reports the configured vehicles per cell.
func (c Config) Density() float64 {
	if c.RoadLength <= 0 {
		return 0
	}
	return float64(c.Vehicles) / float64(c.RoadLength)
}

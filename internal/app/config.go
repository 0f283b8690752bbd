// Package app holds the command-line configuration shared by the nasch
// binaries.
package app

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"nasch-ca/internal/sims/nasch"
)

// Config represents the command-line parameters for a single run.
type Config struct {
	Sim         string
	Length      int
	Vehicles    int
	Density     float64
	VMax        int
	BrakeProb   float64
	Steps       int
	Seed        int64
	Placement   string
	RandomSpeed bool
	Out         string
	StatsOut    string
	Describe    bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:       "nasch",
		Length:    256,
		Vehicles:  -1,
		Density:   0.24,
		VMax:      5,
		BrakeProb: 0.4,
		Steps:     256,
		Placement: nasch.PlacementRandom,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Length, "length", c.Length, "road length in cells")
	fs.IntVar(&c.Vehicles, "vehicles", c.Vehicles, "vehicle count, -1 derives it from -density")
	fs.Float64Var(&c.Density, "density", c.Density, "vehicles per cell, used when -vehicles is -1")
	fs.IntVar(&c.VMax, "vmax", c.VMax, "maximum velocity in cells per tick")
	fs.Float64Var(&c.BrakeProb, "p", c.BrakeProb, "random braking probability")
	fs.IntVar(&c.Steps, "steps", c.Steps, "number of ticks to simulate")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "RNG seed, 0 derives one from the clock")
	fs.StringVar(&c.Placement, "placement", c.Placement, "initial placement: random or uniform")
	fs.BoolVar(&c.RandomSpeed, "random-speed", c.RandomSpeed, "start vehicles at random velocities")
	fs.StringVar(&c.Out, "out", c.Out, "space-time PNG path, derived from parameters when empty")
	fs.StringVar(&c.StatsOut, "stats", c.StatsOut, "optional per-tick statistics chart path")
	fs.BoolVar(&c.Describe, "describe", c.Describe, "print the parameter snapshot and exit")
}

// SimConfig translates the CLI flags into a simulation configuration. An
// unset seed is replaced with the wall clock, making the run
// non-reproducible by choice.
func (c *Config) SimConfig() nasch.Config {
	cfg := nasch.DefaultConfig()
	cfg.RoadLength = c.Length
	cfg.Vehicles = c.Vehicles
	if c.Vehicles < 0 {
		cfg.Vehicles = int(c.Density * float64(c.Length))
	}
	cfg.MaxVelocity = c.VMax
	cfg.BrakeProb = c.BrakeProb
	cfg.Steps = c.Steps
	cfg.Seed = c.Seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Placement = c.Placement
	cfg.RandomStartVelocity = c.RandomSpeed
	return cfg
}

// Options renders a resolved simulation config as the flag-style map a
// registry factory consumes. Feeding the result through nasch.FromMap
// reproduces the config exactly.
func Options(cfg nasch.Config) map[string]string {
	return map[string]string{
		"length":       strconv.Itoa(cfg.RoadLength),
		"vehicles":     strconv.Itoa(cfg.Vehicles),
		"vmax":         strconv.Itoa(cfg.MaxVelocity),
		"p":            strconv.FormatFloat(cfg.BrakeProb, 'g', -1, 64),
		"steps":        strconv.Itoa(cfg.Steps),
		"seed":         strconv.FormatInt(cfg.Seed, 10),
		"placement":    cfg.Placement,
		"random_speed": strconv.FormatBool(cfg.RandomStartVelocity),
	}
}

// OutputPath returns the -out flag, or a filename encoding the run
// parameters when the flag is empty.
func (c *Config) OutputPath(cfg nasch.Config) string {
	if c.Out != "" {
		return c.Out
	}
	return fmt.Sprintf("%dx%d, vmax=%d, p=%.2f, density=%.2f.png",
		cfg.RoadLength, cfg.Steps, cfg.MaxVelocity, cfg.BrakeProb, cfg.Density())
}

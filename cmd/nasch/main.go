package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"nasch-ca/internal/app"
	"nasch-ca/internal/core"
	"nasch-ca/internal/render"
	"nasch-ca/internal/report"
	_ "nasch-ca/internal/sims/nasch"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	simCfg := cfg.SimConfig()
	if err := simCfg.Validate(); err != nil {
		log.Fatal(err)
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}
	sim := factory(app.Options(simCfg))

	if cfg.Describe {
		if pp, ok := sim.(interface{ Parameters() core.ParameterSnapshot }); ok {
			printSnapshot(pp.Parameters())
		}
		return
	}

	sim.Reset(simCfg.Seed)
	for t := 0; t < simCfg.Steps; t++ {
		sim.Step()
	}

	src, ok := sim.(core.HistorySource)
	if !ok {
		log.Fatalf("sim %q records no history", cfg.Sim)
	}
	if src.HistoryRows() == 0 {
		log.Println("no ticks simulated, skipping image output")
		return
	}

	palette := []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	if pal, ok := sim.(interface{ Palette() []color.RGBA }); ok {
		palette = pal.Palette()
	}

	width := sim.Size().W
	out := cfg.OutputPath(simCfg)
	img := render.SpaceTimeImage(src.HistoryCells(), width, src.HistoryRows(), palette)
	if err := render.WritePNG(out, img); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}
	fmt.Printf("wrote %s (%d cells x %d ticks, %d vehicles, density %.3f)\n",
		out, width, src.HistoryRows(), simCfg.Vehicles, simCfg.Density())

	if cfg.StatsOut != "" {
		stats := report.Summarize(src.HistoryCells(), width)
		if err := report.SaveTimeSeries(stats, cfg.StatsOut); err != nil {
			log.Fatalf("write %s: %v", cfg.StatsOut, err)
		}
		fmt.Printf("wrote %s\n", cfg.StatsOut)
	}
}

func printSnapshot(snap core.ParameterSnapshot) {
	for _, g := range snap.Groups {
		fmt.Printf("%s:\n", g.Name)
		for _, p := range g.Params {
			fmt.Printf("  %-14s %-24s %s\n", p.Key, p.Label, p.Value)
		}
		if g.Summary != "" {
			fmt.Printf("  (%s)\n", g.Summary)
		}
	}
}

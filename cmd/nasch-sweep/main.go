package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"nasch-ca/internal/report"
	"nasch-ca/internal/sims/nasch"
)

func main() {
	length := flag.Int("length", 256, "road length in cells")
	vmax := flag.Int("vmax", 5, "maximum velocity in cells per tick")
	brake := flag.Float64("p", 0.4, "random braking probability")
	steps := flag.Int("steps", 512, "ticks to simulate per density")
	warmup := flag.Int("warmup", 128, "ticks to discard before measuring")
	points := flag.Int("points", 25, "number of density points to sample")
	seed := flag.Int64("seed", 1337, "seed used for deterministic simulations")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	out := flag.String("out", "fundamental.png", "fundamental diagram PNG path")
	html := flag.String("html", "", "optional interactive HTML report path")
	flag.Parse()

	base := nasch.DefaultConfig()
	base.RoadLength = *length
	base.MaxVelocity = *vmax
	base.BrakeProb = *brake
	base.Steps = *steps
	base.Seed = *seed

	cfgs, err := candidateConfigs(base, *points)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Sweeping %d densities (%d workers, %d steps, warmup %d)\n",
		len(cfgs), *workers, *steps, *warmup)

	jobs := make(chan nasch.Config)
	results := make(chan report.DensityPoint)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cfg := range jobs {
				results <- runDensity(cfg, *warmup)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, cfg := range cfgs {
			jobs <- cfg
		}
		close(jobs)
	}()

	start := time.Now()
	var all []report.DensityPoint
	for pt := range results {
		all = append(all, pt)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Density < all[j].Density })
	elapsed := time.Since(start)

	fmt.Printf("\n%8s %8s %8s\n", "density", "flow", "speed")
	for _, pt := range all {
		fmt.Printf("%8.3f %8.3f %8.3f\n", pt.Density, pt.Flow, pt.MeanVelocity)
	}
	fmt.Printf("elapsed %s\n", elapsed.Round(time.Millisecond))

	if err := report.SaveFundamental(all, *out); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("wrote %s\n", *out)

	if *html != "" {
		f, err := os.Create(*html)
		if err != nil {
			log.Fatalf("create %s: %v", *html, err)
		}
		if err := report.WriteHTML(f, all); err != nil {
			f.Close()
			log.Fatalf("write %s: %v", *html, err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("close %s: %v", *html, err)
		}
		fmt.Printf("wrote %s\n", *html)
	}
}

// candidateConfigs derives one config per sampled density and validates
// every candidate before any worker starts, so the fan-out never has to
// handle configuration errors.
func candidateConfigs(base nasch.Config, points int) ([]nasch.Config, error) {
	cfgs := make([]nasch.Config, 0, points)
	for i := 1; i <= points; i++ {
		cfg := base
		density := float64(i) / float64(points+1)
		cfg.Vehicles = int(density * float64(cfg.RoadLength))
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

func runDensity(cfg nasch.Config, warmup int) report.DensityPoint {
	sim, err := nasch.NewWithConfig(cfg)
	if err != nil {
		// Every candidate config is validated before the sweep starts.
		panic(err)
	}
	sim.Reset(cfg.Seed)
	hist := sim.Run()
	stats := report.Summarize(hist.Cells(), hist.RoadLength())
	return report.Measure(stats, warmup, cfg.Density())
}

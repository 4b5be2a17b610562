package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"microgrid-env/internal/config"
	"microgrid-env/internal/env"
	"microgrid-env/internal/episode"
	"microgrid-env/internal/report"
	"microgrid-env/internal/series"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "stats":
		cmdStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli run --config examples/config.yaml --mode train --out results/trajectory.csv [--plot results/episode.png]")
	fmt.Println("  cli stats --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - run drives one episode with the configured policy and writes the per-step trajectory CSV")
	fmt.Println("  - stats prints min/max/average-per-day for each split's profiles")
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	modeStr := fs.String("mode", "train", "Split to run: train, validation or test")
	steps := fs.Int("steps", 0, "Optional: limit to first N steps (0=full episode)")
	outPath := fs.String("out", "results/trajectory.csv", "Output CSV path")
	plotPath := fs.String("plot", "", "Optional: output PNG chart path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	mode, err := series.ParseMode(*modeStr)
	if err != nil {
		fatal(err)
	}
	dataset, err := cfg.Data.BuildDataset()
	if err != nil {
		fatal(err)
	}
	pol, err := episode.BuildPolicy(cfg.Policy.Name, cfg.Policy.Params)
	if err != nil {
		fatal(err)
	}

	e, err := env.New(nil, cfg.Environment.ToParams(), cfg.Environment.ToFlags(), dataset)
	if err != nil {
		fatal(err)
	}

	res, err := episode.Run(e, mode, pol, *steps)
	if err != nil {
		fatal(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fatal(err)
	}
	if err := episode.WriteTrajectoryCSV(*outPath, res.Trajectory); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(res.Trajectory), *outPath)

	if *plotPath != "" {
		if err := os.MkdirAll(filepath.Dir(*plotPath), 0o755); err != nil {
			fatal(err)
		}
		if err := report.RenderTrajectory(*plotPath, res.Trajectory, report.DefaultPlotWindow); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote chart to %s\n", *plotPath)
	}

	report.Summarize(os.Stdout, res)
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	dataset, err := cfg.Data.BuildDataset()
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-12s %-12s %-10s %-10s %-10s %-12s\n", "split", "profile", "min", "max", "mean", "avg/day kWh")
	for _, row := range []struct {
		name  string
		split *series.Split
	}{
		{"train", dataset.Train},
		{"validation", dataset.Validation},
		{"test", dataset.Test},
	} {
		cons := series.ComputeProfileStats(row.split.Consumption)
		prod := series.ComputeProfileStats(row.split.Production)
		fmt.Printf("%-12s %-12s %-10.3f %-10.3f %-10.3f %-12.2f\n", row.name, "consumption", cons.Min, cons.Max, cons.Mean, cons.AveragePerDay)
		fmt.Printf("%-12s %-12s %-10.3f %-10.3f %-10.3f %-12.2f\n", row.name, "production", prod.Min, prod.Max, prod.Mean, prod.AveragePerDay)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

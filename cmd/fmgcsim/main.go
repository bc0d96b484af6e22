// cmd/fmgcsim/main.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// fmgcsim runs flight-guidance scenarios from YAML files: each run closes
// the loop between the guidance engine and a point-mass airframe, writes a
// flight-data-recorder file, and prints a one-line summary.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"

	"github.com/aerosim/fmgc/ap"
	"github.com/aerosim/fmgc/log"
	"github.com/aerosim/fmgc/recorder"
	"github.com/aerosim/fmgc/sim"
)

var (
	configFilename = flag.String("config", "", "filename of YAML guidance tunables (default: built-in)")
	outDir         = flag.String("outdir", ".", "directory for flight-data-recorder output")
	noRecord       = flag.Bool("norecord", false, "do not write recorder files")
	lintScenarios  = flag.Bool("lint", false, "check the validity of the scenarios and exit")
	dumpResults    = flag.Bool("dump", false, "dump full run results")
	logLevel       = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir         = flag.String("logdir", "", "log file directory")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] scenario.yaml ...\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	lg := log.New(*logLevel, *logDir)

	cfg := ap.DefaultConfig()
	if *configFilename != "" {
		var err error
		if cfg, err = ap.LoadConfig(*configFilename); err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
	}

	scenarios := make([]sim.Scenario, flag.NArg())
	for i, path := range flag.Args() {
		sc, err := sim.LoadScenario(path)
		if err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		scenarios[i] = sc
	}
	if *lintScenarios {
		fmt.Printf("%d scenarios ok\n", len(scenarios))
		return
	}

	var mu sync.Mutex
	results := make([]sim.Result, len(scenarios))

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, sc := range scenarios {
		eg.Go(func() error {
			res, err := runScenario(sc, cfg, lg)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}

	for _, res := range results {
		fmt.Printf("%-24s %6d ticks  hdg %6.1f  alt %8.0f  vs %6.0f  trk %5.1fnm  %s/%s  reversions %d\n",
			res.Name, res.Ticks, res.FinalHeadingDeg, res.FinalAltitudeFt, res.FinalVsFpm,
			res.TrackNm, res.FinalLateralLaw, res.FinalVerticalLaw, res.Reversions)
	}
	if *dumpResults {
		godump.Dump(results)
	}
}

func runScenario(sc sim.Scenario, cfg ap.Config, lg *log.Logger) (sim.Result, error) {
	s, err := sim.New(sc, cfg, lg)
	if err != nil {
		return sim.Result{}, err
	}

	var record func(ap.EngineOutput) error
	var fdr *recorder.Writer
	if !*noRecord {
		f, err := os.Create(filepath.Join(*outDir, sc.Name+".fdr"))
		if err != nil {
			return sim.Result{}, err
		}
		defer f.Close()

		if fdr, err = recorder.NewWriter(f); err != nil {
			return sim.Result{}, err
		}
		record = fdr.Record
	}

	res, err := s.Run(record)
	if err != nil {
		return res, err
	}
	if fdr != nil {
		if err := fdr.Close(); err != nil {
			return res, fmt.Errorf("%s: %w", sc.Name, err)
		}
	}
	return res, nil
}

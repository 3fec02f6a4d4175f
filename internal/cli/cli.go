package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"trendbench/internal/engine"
	"trendbench/internal/report"
	"trendbench/internal/scheduler"
	"trendbench/internal/suite"
)

type Options struct {
	Spec   *suite.Node
	Engine engine.Engine
	RunID  string

	// OutPath receives the JSON report; empty means stdout (quiet mode)
	// or no file (normal mode).
	OutPath string

	// Quiet suppresses everything except the JSON report, for piping to a
	// parent process.
	Quiet bool
}

// Start drives the suite headlessly: progress line while running, summary
// and JSON report on completion.
func Start(opts Options) error {
	if !opts.Quiet {
		printHeader(opts)
	}

	updates := make(scheduler.UpdateChan, 100)
	delivered := make(chan report.Report, 1)
	d := scheduler.NewDriver(opts.Engine, scheduler.SinkFunc(func(r report.Report) {
		delivered <- r
	}), updates)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx, opts.Spec) }()

	start := time.Now()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	var last scheduler.Snapshot
	for {
		select {
		case s := <-updates:
			last = s

		case err := <-errCh:
			if err != nil {
				return err
			}
			errCh = nil // run loop done, report still in flight

		case rep := <-delivered:
			if !opts.Quiet {
				fmt.Printf("\r%80s\r", "") // clear progress line
				printSummary(rep, last, time.Since(start))
			}
			return writeReport(rep, opts)

		case <-ticker.C:
			if !opts.Quiet {
				fmt.Printf("\r⏳ Steps: %6d | %7.0f steps/s | step p99: %6.2f ms | %s",
					last.Steps, last.StepsPerSec, last.P99StepMs,
					time.Since(start).Round(time.Second))
			}
		}
	}
}

func printHeader(opts Options) {
	fmt.Printf("\n🚀 STARTING TRENDBENCH RUN\n")
	fmt.Printf("======================================================================\n")
	fmt.Printf("Run ID : %s\n", opts.RunID)
	fmt.Printf("Suite  : %s (%d benchmarks)\n", opts.Spec.Name, opts.Spec.CountLeaves())
	fmt.Printf("======================================================================\n\n")
}

func printSummary(rep report.Report, last scheduler.Snapshot, total time.Duration) {
	fmt.Printf("\n📊 BENCHMARK RESULTS\n")
	fmt.Printf("======================================================================\n")
	fmt.Printf("Total Duration : %s\n", total.Round(time.Millisecond))
	fmt.Printf("Engine Steps   : %d\n", last.Steps)
	fmt.Printf("\n")

	maxPath := 0
	for _, r := range rep.Results {
		if l := len(strings.Join(r.Name, ".")); l > maxPath {
			maxPath = l
		}
	}
	for _, r := range rep.Results {
		path := strings.Join(r.Name, ".")
		if r.NsPerRun != nil {
			fmt.Printf("   %-*s %12.2f ns/run\n", maxPath+2, path, *r.NsPerRun)
		} else {
			fmt.Printf("   %-*s %15s\n", maxPath+2, path, "(no estimate)")
		}
	}

	if rep.Warning != nil {
		fmt.Printf("\n⚠️  %s\n", *rep.Warning)
	}
	fmt.Printf("======================================================================\n")
}

func writeReport(rep report.Report, opts Options) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}

	if opts.OutPath != "" {
		if err := os.WriteFile(opts.OutPath, data, 0644); err != nil {
			return err
		}
		if !opts.Quiet {
			fmt.Printf("💾 Report saved to %s\n", opts.OutPath)
		}
		return nil
	}

	if opts.Quiet {
		fmt.Println(string(data))
	}
	return nil
}

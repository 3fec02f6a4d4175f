package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"trendbench/internal/banner"
	"trendbench/internal/cli"
	"trendbench/internal/engine"
	"trendbench/internal/report"
	"trendbench/internal/scheduler"
	"trendbench/internal/sim"
	"trendbench/internal/suite"
	"trendbench/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	cfgFile string

	// CLI Flags
	suitePath string
	steps     int
	seed      int64
	outPath   string
	jsonOnly  bool
	headless  bool
)

var rootCmd = &cobra.Command{
	Use:   "trendbench",
	Short: "TrendBench - Micro-Benchmark Suite Driver",
	Long: `
TrendBench drives a hierarchical micro-benchmark suite to completion one
incremental step at a time, then reduces the fitted trends into a flat JSON
report with a suite-wide interference warning.

The sampling engine is pluggable; the built-in simulated engine lets you
exercise the driver without wiring a real one (see also "trendbench demo").

Modes:
1. TUI Mode (Default): live stepping view, report on completion
2. CLI Mode (--json / --out / --headless): for CI/CD and parent processes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if suitePath == "" {
			return errors.New("--suite required (or try \"trendbench demo\")")
		}
		spec, err := suite.ParseFile(suitePath)
		if err != nil {
			return err
		}
		eng := sim.New(effectiveSteps(cmd), seed)
		eng.StepDelay = time.Millisecond
		return run(spec, eng)
	},
}

func Execute() {
	// Custom Help with Banner
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(demoCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trendbench.yaml)")
	rootCmd.PersistentFlags().IntVar(&steps, "steps", 200, "Simulated engine steps per benchmark leaf")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "Simulated engine random seed")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Write the JSON report to this file (enables CLI mode)")
	rootCmd.PersistentFlags().BoolVar(&jsonOnly, "json", false, "Print only the JSON report to stdout (enables CLI mode)")
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", false, "Run without the TUI")

	rootCmd.Flags().StringVarP(&suitePath, "suite", "s", "", "Suite description file (JSON)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".trendbench")
		}
	}
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// effectiveSteps prefers an explicit flag, then the config file, then the
// flag default.
func effectiveSteps(cmd *cobra.Command) int {
	if !cmd.Flags().Changed("steps") && viper.IsSet("steps") {
		return viper.GetInt("steps")
	}
	return steps
}

// --- Runners ---

func run(spec *suite.Node, eng engine.Engine) error {
	runID := uuid.New().String()[:8]

	if jsonOnly || outPath != "" || headless {
		return cli.Start(cli.Options{
			Spec:    spec,
			Engine:  eng,
			RunID:   runID,
			OutPath: outPath,
			Quiet:   jsonOnly,
		})
	}
	return runTUI(spec, eng, runID)
}

func runTUI(spec *suite.Node, eng engine.Engine, runID string) error {
	updates := make(scheduler.UpdateChan, 100)

	var p *tea.Program
	d := scheduler.NewDriver(eng, scheduler.SinkFunc(func(r report.Report) {
		p.Send(tui.ReportMsg(r))
	}), updates)

	m := tui.NewModel(runID, updates)
	p = tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx, spec)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TrendBench: %w", err)
	}
	return nil
}

// --- Demo Subcommand ---

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Drive a built-in suite through the simulated engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(demoSuite(), demoEngine(effectiveSteps(cmd)))
	},
}

func demoSuite() *suite.Node {
	return suite.NewGroup("demo",
		suite.NewGroup("collections",
			suite.NewSeries("remove", "listRemoveOld", "listRemoveNew"),
			suite.NewSingle("mapInsert"),
		),
		suite.NewSingle("parseInt"),
		suite.NewGroup("strings",
			suite.NewSingle("concat"),
			suite.NewSingle("splitLines"),
		),
	)
}

func demoEngine(stepsPerLeaf int) *sim.Engine {
	eng := sim.New(stepsPerLeaf, seed)
	eng.StepDelay = 2 * time.Millisecond

	// Fixed script for a few leaves so the demo always shows the
	// interesting report shapes: a failed fit and a noisy trend.
	eng.Script[sim.Key("demo", "collections", "remove", "listRemoveOld")] = suite.Fit{
		Trend: suite.Trend{Slope: 561.85, Intercept: 4.2, GoodnessOfFit: 0.998},
	}
	eng.Script[sim.Key("demo", "collections", "remove", "listRemoveNew")] = suite.Fit{
		Trend: suite.Trend{Slope: 573.90, Intercept: 3.1, GoodnessOfFit: 0.997},
	}
	eng.Script[sim.Key("demo", "strings", "splitLines")] = suite.Fit{
		Err: errors.New("degenerate samples"),
	}
	eng.Script[sim.Key("demo", "strings", "concat")] = suite.Fit{
		Trend: suite.Trend{Slope: 88.0, Intercept: 1.0, GoodnessOfFit: 0.91},
	}
	return eng
}

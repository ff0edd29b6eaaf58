package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/edsim/edsim/sim"
	"github.com/edsim/edsim/sim/trace"
)

var (
	// CLI flags for the run
	configPath  string // Scenario YAML file
	envFile     string // Optional KEY=VALUE file loaded before flags are resolved
	logLevel    string // Log verbosity level
	traceLevel  string // "none" or "events"
	resultsPath string // Optional JSON output path

	// CLI flags overriding scenario values
	rooms           int
	patients        int
	interarrival    time.Duration
	triageDuration  time.Duration
	tickInterval    time.Duration
	treatmentWhite  time.Duration
	treatmentYellow time.Duration
	treatmentRed    time.Duration
	timeoutWhite    time.Duration
	timeoutYellow   time.Duration
	timeoutRed      time.Duration
	startClock      string
	endClock        string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "edsim",
	Short: "Discrete-event simulator for emergency department patient flow",
}

// runCmd executes the simulation using parameters from the scenario file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the emergency department simulation",
	Run: func(cmd *cobra.Command, args []string) {
		if err := loadEnvFile(envFile); err != nil {
			logrus.Fatalf("%v", err)
		}
		if !cmd.Flags().Changed("log") {
			if v := os.Getenv(envLogLevel); v != "" {
				logLevel = v
			}
		}
		if !cmd.Flags().Changed("config") {
			if v := os.Getenv(envConfigPath); v != "" {
				configPath = v
			}
		}

		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, events)", traceLevel)
		}

		cfg, err := resolveConfig(cmd, configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting simulation with %d rooms, %d patients every %s, %s-%s",
			cfg.TotalRooms, cfg.NumPatients, cfg.Interarrival, cfg.Start.Format("15:04"), cfg.End.Format("15:04"))

		startTime := time.Now()

		var opts []sim.Option
		var st *trace.SimulationTrace
		if trace.TraceLevel(traceLevel) == trace.TraceLevelEvents {
			st = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
			opts = append(opts, sim.WithObserver(st), sim.WithObserver(sim.ObserverFunc(func(r trace.EventRecord) {
				logrus.Info(r.String())
			})))
		}

		// Initialize and run the simulator
		s, err := sim.NewSimulator(cfg, opts...)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		s.Run()

		s.Metrics.Print()
		if resultsPath != "" {
			if err := s.Metrics.SaveResults(startTime, resultsPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if st != nil {
			printTraceSummary(trace.Summarize(st))
		}

		logrus.Info("Simulation complete.")
	},
}

// resolveConfig layers the scenario file and explicitly set flags over the
// built-in defaults. Flags left at their default never override the file.
func resolveConfig(cmd *cobra.Command, path string) (sim.Config, error) {
	sc, err := loadScenario(path)
	if err != nil {
		return sim.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("rooms") {
		sc.Rooms = rooms
	}
	if flags.Changed("patients") {
		sc.Patients = patients
	}
	if flags.Changed("interarrival") {
		sc.Interarrival = interarrival
	}
	if flags.Changed("triage") {
		sc.Triage = triageDuration
	}
	if flags.Changed("tick") {
		sc.TickInterval = tickInterval
	}
	if flags.Changed("treatment-white") {
		sc.Treatment.White = treatmentWhite
	}
	if flags.Changed("treatment-yellow") {
		sc.Treatment.Yellow = treatmentYellow
	}
	if flags.Changed("treatment-red") {
		sc.Treatment.Red = treatmentRed
	}
	if flags.Changed("timeout-white") {
		sc.Timeout.White = timeoutWhite
	}
	if flags.Changed("timeout-yellow") {
		sc.Timeout.Yellow = timeoutYellow
	}
	if flags.Changed("timeout-red") {
		sc.Timeout.Red = timeoutRed
	}
	if flags.Changed("start") {
		sc.Start = startClock
	}
	if flags.Changed("end") {
		sc.End = endClock
	}
	return sc.Config()
}

func printTraceSummary(ts *trace.TraceSummary) {
	logrus.Infof("Trace: %d events, %d escalations, %d stale timeouts, peak waiting %d, min free rooms %d",
		ts.TotalEvents, ts.Escalations, ts.StaleTimeout, ts.PeakWaiting, ts.MinFreeRooms)
	for kind, n := range ts.KindCounts {
		logrus.Debugf("Trace: %-9s %d", kind, n)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	def := sim.DefaultConfig()

	runCmd.Flags().StringVar(&configPath, "config", "", "Scenario YAML file (defaults to the built-in department)")
	runCmd.Flags().StringVar(&envFile, "env-file", ".env", "Env file with EDSIM_CONFIG / EDSIM_LOG defaults (ignored if missing)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Event trace level (none, events)")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write metrics JSON to this file")

	// Department
	runCmd.Flags().IntVar(&rooms, "rooms", def.TotalRooms, "Number of treatment rooms")
	runCmd.Flags().IntVar(&patients, "patients", def.NumPatients, "Number of patients to generate")
	runCmd.Flags().DurationVar(&interarrival, "interarrival", def.Interarrival, "Time between consecutive arrivals")
	runCmd.Flags().DurationVar(&triageDuration, "triage", def.TriageDuration, "Triage duration")
	runCmd.Flags().DurationVar(&tickInterval, "tick", def.TickInterval, "Periodic room re-check interval")
	runCmd.Flags().StringVar(&startClock, "start", def.Start.Format("15:04"), "Simulation start (HH:MM)")
	runCmd.Flags().StringVar(&endClock, "end", def.End.Format("15:04"), "Last arrival / tick cutoff (HH:MM)")

	// Per-color durations
	runCmd.Flags().DurationVar(&treatmentWhite, "treatment-white", def.Treatment.White, "Treatment duration for WHITE patients")
	runCmd.Flags().DurationVar(&treatmentYellow, "treatment-yellow", def.Treatment.Yellow, "Treatment duration for YELLOW patients")
	runCmd.Flags().DurationVar(&treatmentRed, "treatment-red", def.Treatment.Red, "Treatment duration for RED patients")
	runCmd.Flags().DurationVar(&timeoutWhite, "timeout-white", def.Timeout.White, "Waiting limit for WHITE patients")
	runCmd.Flags().DurationVar(&timeoutYellow, "timeout-yellow", def.Timeout.Yellow, "Waiting limit for YELLOW patients")
	runCmd.Flags().DurationVar(&timeoutRed, "timeout-red", def.Timeout.Red, "Waiting limit for RED patients")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}

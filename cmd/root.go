package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satnet-rfp/satnet-rfp/sim/rfp"
)

var (
	// CLI flags for the scenario and run
	scenarioPath string  // Scenario YAML file
	demo         bool    // Run the built-in demo scenario
	logLevel     string  // Log verbosity level
	engineKind   string  // Event loop implementation
	horizon      float64 // Simulation horizon (in seconds)
	traceLevel   string  // Decision trace verbosity

	// CLI flags for the RFP parameters
	convergenceTime float64 // Tc
	safetyMargin    float64 // dT
	deadInterval    float64 // OSPF dead interval of the reactive baseline
	spfDelay        float64 // SPF delay of the reactive baseline
	reactiveMode    string  // How unpredicted failures are measured

	// CLI flags for the routing daemon and outputs
	vtyshPath      string        // vtysh binary; empty means simulated
	pathspace      string        // Per-node vtysh pathspace prefix
	vtyshTimeout   time.Duration // Timeout of a single vtysh session
	transcriptPath string        // File receiving every vtysh session
	metricsFile    string        // Prometheus text file written at the end of the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "satnet-rfp",
	Short: "Predictive link-failure avoidance for OSPF satellite networks",
}

// runCmd executes a scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an RFP scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		sc, err := loadScenario()
		if err != nil {
			logrus.Fatalf("unable to load scenario; %v", err)
		}
		applyOverrides(cmd, &sc)
		if err := sc.Validate(); err != nil {
			logrus.Fatalf("invalid scenario; %v", err)
		}

		startTime := time.Now()
		_, err = RunScenario(sc, RunOptions{
			Engine:         engineKind,
			Vtysh:          vtyshPath,
			Pathspace:      pathspace,
			VtyshTimeout:   vtyshTimeout,
			TranscriptPath: transcriptPath,
			MetricsFile:    metricsFile,
			TraceLevel:     traceLevel,
		}, os.Stdout)
		if err != nil {
			logrus.Fatalf("simulation failed; %v", err)
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

func loadScenario() (Scenario, error) {
	if scenarioPath == "" || demo {
		return DefaultScenario(), nil
	}
	return LoadScenario(scenarioPath)
}

// applyOverrides lets flags explicitly set on the command line win over the
// scenario file.
func applyOverrides(cmd *cobra.Command, sc *Scenario) {
	flags := cmd.Flags()
	if flags.Changed("horizon") {
		sc.Horizon = horizon
	}
	if flags.Changed("tc") {
		sc.RFP.ConvergenceTime = convergenceTime
	}
	if flags.Changed("dt") {
		sc.RFP.SafetyMargin = safetyMargin
	}
	if flags.Changed("dead-interval") {
		sc.RFP.DeadInterval = deadInterval
	}
	if flags.Changed("spf-delay") {
		sc.RFP.SPFDelay = spfDelay
	}
	if flags.Changed("reactive-mode") {
		sc.RFP.ReactiveMode = rfp.ReactiveMode(reactiveMode)
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
	registerRunFlags(runCmd)

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}

func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (default: built-in demo)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Run the built-in demo scenario")
	cmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&engineKind, "engine", engineHeap, "Event loop (heap, akita)")
	cmd.Flags().Float64Var(&horizon, "horizon", demoHorizon, "Simulation horizon (in seconds)")
	cmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, timeline, detailed)")

	// RFP parameters
	cmd.Flags().Float64Var(&convergenceTime, "tc", rfp.DefaultConvergenceTime, "OSPF convergence time Tc (in seconds)")
	cmd.Flags().Float64Var(&safetyMargin, "dt", rfp.DefaultSafetyMargin, "Safety margin dT around T0 (in seconds)")
	cmd.Flags().Float64Var(&deadInterval, "dead-interval", rfp.DefaultDeadInterval, "OSPF dead interval of unpredicted failures (in seconds)")
	cmd.Flags().Float64Var(&spfDelay, "spf-delay", rfp.DefaultSPFDelay, "SPF delay of unpredicted failures (in seconds)")
	cmd.Flags().StringVar(&reactiveMode, "reactive-mode", string(rfp.ReactiveEstimate), "Unpredicted failure accounting (estimate, timeline)")

	// Routing daemon and outputs
	cmd.Flags().StringVar(&vtyshPath, "vtysh", "", "Path to the vtysh binary (empty: simulated daemon)")
	cmd.Flags().StringVar(&pathspace, "pathspace", "", "vtysh pathspace prefix; node n uses -N <prefix><n>")
	cmd.Flags().DurationVar(&vtyshTimeout, "vtysh-timeout", 5*time.Second, "Timeout of one vtysh session")
	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "File receiving every vtysh session")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Prometheus text file written at the end of the run")
}

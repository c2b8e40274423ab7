package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/experiment"
	"github.com/san-kum/collide/internal/export"
	"github.com/san-kum/collide/internal/logging"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/optim"
	"github.com/san-kum/collide/internal/sim"
	"github.com/san-kum/collide/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	numBodies  int
	gravity    float64
	dt         float64
	policy     string
	integrator string
	maxPasses  int
	duration   float64
	logLevel   string
	theme      string
	numRuns    int
	outFile    string
	svgFile    string
	sceneFile  string
	jsonFile   string
	sweepSpecs []string
	metricName string

	logger *log.Logger
)

// main registers the collide commands and runs the live viewer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "collide",
		Short: "fixed-timestep elastic circle simulation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(os.Stderr, logLevel)
			return err
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed")
	pf.IntVar(&numBodies, "bodies", config.DefaultBodies, "number of random bodies")
	pf.Float64Var(&gravity, "gravity", 0, "downward acceleration; positive values switch to uniform density")
	pf.Float64Var(&dt, "dt", 1/config.DefaultTickRate, "fixed timestep")
	pf.StringVar(&policy, "policy", config.DefaultPolicy, "boundary/pairwise policy (independent, exclusive)")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	pf.IntVar(&maxPasses, "max-passes", 0, "resolution pass cap per tick (0 = automatic)")
	pf.Float64Var(&duration, "time", config.DefaultDuration, "simulated duration in seconds")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report diagnostics",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&svgFile, "svg", "", "also write the energy series as SVG")
	runCmd.Flags().StringVar(&jsonFile, "json", "", "also write a JSON report (- for stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write the scene after --time seconds as SVG",
		RunE:  snapshotScene,
	}
	snapshotCmd.Flags().StringVarP(&sceneFile, "out", "o", "scene.svg", "output path")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search config parameters for the lowest metric",
		RunE:  sweepParams,
	}
	sweepCmd.Flags().StringArrayVar(&sweepSpecs, "param", nil, "parameter grid as name=v1,v2,... ("+strings.Join(optim.Params(), ", ")+")")
	sweepCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimise")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd, snapshotCmd} {
		c.Flags().StringVar(&theme, "theme", "classic", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scene",
		RunE:  compareIntegrators,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of seeded scenes in parallel",
		RunE:  benchEnsemble,
	}
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeded runs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tGRAVITY\tPOLICY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\n", name, p.BodyCount(), p.Gravity, p.Policy)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config",
		Short: "write a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(outFile, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", outFile)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&outFile, "out", "o", "collide.yaml", "output path")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, benchCmd, sweepCmd, snapshotCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("bodies") {
		cfg.Bodies = numBodies
		cfg.Scene = nil
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
		cfg.UniformDensity = gravity > 0
	}
	if flags.Changed("dt") {
		if !(dt > 0) {
			return nil, fmt.Errorf("%w: dt must be positive, got %g", config.ErrInvalidConfig, dt)
		}
		cfg.TickRate = 1 / dt
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("max-passes") {
		cfg.MaxPasses = maxPasses
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(registry, registry.DefaultMetrics(cfg.World())); err != nil {
		return err
	}

	fmt.Printf("running %d bodies for %.1fs (dt=%.4f, %s, %s)...\n",
		len(exp.Bodies()), cfg.Duration, cfg.Dt(), cfg.Integrator, cfg.Policy)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("passes: %d (unconverged ticks: %d)\n", result.Passes, result.Unconverged)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if len(result.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(downsample(result.Energy, 80),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy"),
		))
	}

	if svgFile != "" {
		if err := writeFile(svgFile, func(w io.Writer) error {
			return export.SeriesSVG(w, result.Times, result.Energy, 800, 300, viz.ThemeClassic.Fast.Hex())
		}); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}

	report := export.NewReport(cfg, len(exp.Bodies()), result)
	switch jsonFile {
	case "":
	case "-":
		return export.WriteJSON(os.Stdout, report)
	default:
		if err := writeFile(jsonFile, func(w io.Writer) error { return export.WriteJSON(w, report) }); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonFile)
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func snapshotScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(experiment.NewRegistry(), nil); err != nil {
		return err
	}
	if cmd.Flags().Changed("time") {
		if _, err := exp.Run(cmd.Context()); err != nil {
			return err
		}
	}

	if err := writeFile(sceneFile, func(w io.Writer) error {
		return export.SceneSVG(w, exp.Bodies(), cfg.World(), viz.ThemeByName(theme), 20)
	}); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", sceneFile)
	return nil
}

// parseGrid turns "name=v1,v2" flags into parallel name and value slices.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || list == "" {
			return nil, nil, fmt.Errorf("invalid --param %q, want name=v1,v2,...", spec)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid --param %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(sweepSpecs)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	registry := experiment.NewRegistry()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg, err := optim.Apply(base, params)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(cfg, logger)
		if err := exp.Setup(registry, registry.DefaultMetrics(cfg.World())); err != nil {
			return nil, fmt.Errorf("%v: %w", params, err)
		}
		return exp, nil
	}

	best, val, trials, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), build, metricName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metricName))
	for _, tr := range trials {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[n])
		}
		fmt.Fprintf(w, "%.4e\n", tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.4e at %v\n", metricName, val, best)
	return nil
}

// downsample keeps at most n evenly spaced samples.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*(len(data)-1)/(n-1)]
	}
	return out
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(registry, nil); err != nil {
		return err
	}

	title := "collide"
	if preset != "" {
		title += " · " + preset
	}

	// The viewer owns the terminal; keep log output from tearing the frame.
	logger.SetLevel(log.ErrorLevel)

	m := viz.NewModel(exp.GetSimulator(), exp.Bodies(), title, viz.ThemeByName(theme))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = registry.ListIntegrators()
	}

	fmt.Printf("comparing integrators (dt=%.4f, duration=%.1fs, gravity=%.2f)\n\n", cfg.Dt(), cfg.Duration, cfg.Gravity)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tENERGY_DRIFT\tMAX_DRIFT\tPASSES\tTIME_MS")

	for _, name := range names {
		c := *cfg
		c.Integrator = name

		exp := experiment.New(&c, logger)
		drift := metrics.NewEnergyDrift(c.World())
		if err := exp.Setup(registry, []sim.Metric{drift}); err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(cmd.Context())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%d\t%.2f\n",
			name, result.EnergyDrift, drift.Value(), result.Passes, float64(elapsed.Microseconds())/1000)
	}

	return w.Flush()
}

func benchEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	registry := experiment.NewRegistry()
	if _, err := experiment.NewSimulator(cfg, registry, logger); err != nil {
		return err
	}
	newSim := func() *sim.Simulator {
		s, _ := experiment.NewSimulator(cfg, registry, logger)
		return s
	}

	simCfg := sim.DefaultConfig()
	simCfg.Duration = cfg.Duration
	simCfg.SampleEvery = 10

	fmt.Printf("benchmarking %d runs of %d bodies for %.1fs\n\n", numRuns, cfg.BodyCount(), cfg.Duration)
	start := time.Now()
	results, err := sim.NewEnsemble(newSim, experiment.SceneFunc(cfg), numRuns, cfg.Seed).Run(cmd.Context(), simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tPASSES\tPASSES/TICK\tUNCONVERGED\tDRIFT")

	steps := 0
	for i, r := range results {
		steps += r.StepsTaken
		perTick := 0.0
		if r.StepsTaken > 0 {
			perTick = float64(r.Passes) / float64(r.StepsTaken)
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\t%d\t%.3e\n",
			cfg.Seed+int64(i), r.StepsTaken, r.Passes, perTick, r.Unconverged, r.EnergyDrift)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d steps in %v (%.0f steps/sec)\n", steps, elapsed, float64(steps)/elapsed.Seconds())
	return nil
}

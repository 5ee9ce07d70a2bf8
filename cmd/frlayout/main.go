package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/frlayout/internal/config"
	"github.com/san-kum/frlayout/internal/export"
	"github.com/san-kum/frlayout/internal/gui"
	"github.com/san-kum/frlayout/internal/loader"
	"github.com/san-kum/frlayout/internal/logging"
	"github.com/san-kum/frlayout/internal/metrics"
	"github.com/san-kum/frlayout/internal/placement"
	"github.com/san-kum/frlayout/internal/sim"
	"github.com/san-kum/frlayout/internal/storage"
	"github.com/san-kum/frlayout/internal/stream"
	"github.com/san-kum/frlayout/internal/viz"
)

var (
	dataDir   string
	graphsDir string
	logLevel  string
	log       *slog.Logger

	configFile   string
	preset       string
	seed         int64
	place        string
	iterations   int
	initialTemp  float64
	cooling      float64
	minTemp      float64
	forceConst   float64
	gravity      float64
	stopOnSettle bool
	tickDelay    time.Duration

	noSave     bool
	outFile    string
	format     string
	addr       string
	batchRuns  int
	batchLimit int
	asJSON     bool
)

// main registers the frlayout commands and runs the interactive picker when
// no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "frlayout",
		Short: "force-directed graph layout lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			log = logging.NiceLogger(os.Stderr, level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(graphsDir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".frlayout", "data directory")
	rootCmd.PersistentFlags().StringVar(&graphsDir, "graphs", "graphs", "directory of graph files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [graph]",
		Short: "run a layout headless and print the report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLayout,
	}
	layoutFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "also export the final layout (format from extension)")

	liveCmd := &cobra.Command{
		Use:   "live [graph]",
		Short: "watch a layout anneal in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	layoutFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [graph]",
		Short: "watch a layout anneal in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	layoutFlags(guiCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream layouts over websockets",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	layoutFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "the ip:port to bind to")

	batchCmd := &cobra.Command{
		Use:   "batch [graph]",
		Short: "run several seeds of a layout concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBatch,
	}
	layoutFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchRuns, "runs", 8, "number of seeds")
	batchCmd.Flags().IntVar(&batchLimit, "parallel", 4, "layouts running at once")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a stored run's report",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print the run metadata as JSON")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's temperature trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run's final layout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", fmt.Sprintf("output format %v", export.Formats()))
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (format from extension)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINIT TEMP\tCOOLING\tITERS\tSIZE\tSTOP")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.1f\t%.2f\t%d\t%gx%g\t%t\n",
					name, p.InitialTemperature, p.CoolingFactor, p.MaxIterations, p.Width, p.Height, p.StopOnSettle)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, serveCmd, batchCmd, listCmd, showCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func layoutFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "placement seed")
	cmd.Flags().StringVar(&place, "placement", placement.Uniform, fmt.Sprintf("initial placement %v", placement.Names()))
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultMaxIterations, "iteration cap")
	cmd.Flags().Float64Var(&initialTemp, "initial-temp", config.DefaultInitialTemperature, "initial temperature")
	cmd.Flags().Float64Var(&cooling, "cooling", config.DefaultCoolingFactor, "cooling factor")
	cmd.Flags().Float64Var(&minTemp, "min-temp", config.DefaultMinTemperature, "settle temperature")
	cmd.Flags().Float64Var(&forceConst, "force-constant", config.DefaultForceConstant, "ideal distance constant")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "centering force scale")
	cmd.Flags().BoolVar(&stopOnSettle, "stop-on-settle", false, "stop ticking once cooled")
	cmd.Flags().DurationVar(&tickDelay, "tick-delay", config.DefaultTickDelay, "delay between ticks when paced")
}

// resolveConfig layers the configuration: preset, then config file, then
// flags the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("placement") {
		cfg.Placement = place
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations = iterations
	}
	if flags.Changed("initial-temp") {
		cfg.InitialTemperature = initialTemp
	}
	if flags.Changed("cooling") {
		cfg.CoolingFactor = cooling
	}
	if flags.Changed("min-temp") {
		cfg.MinTemperature = minTemp
	}
	if flags.Changed("force-constant") {
		cfg.ForceConstant = forceConst
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("stop-on-settle") {
		cfg.StopOnSettle = stopOnSettle
	}
	if flags.Changed("tick-delay") {
		cfg.TickDelay = tickDelay
	}
	if len(args) > 0 {
		cfg.Graph = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// prepare resolves the configuration, loads the graph and builds its engine.
func prepare(cmd *cobra.Command, args []string, opts ...sim.Option) (*config.Config, *sim.Engine, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	g, err := loader.LoadFile(cfg.Graph)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("graph loaded", "path", cfg.Graph, "vertices", g.Len(), "edges", g.EdgeCount())

	opts = append(opts, sim.WithLogger(log))
	e, err := cfg.NewEngine(g, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, e, nil
}

func graphName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, e, err := prepare(cmd, args, metrics.Options()...)
	if err != nil {
		return err
	}
	g := e.Graph()
	fmt.Printf("graph has %d vertices and %d edges\n", g.Len(), g.EdgeCount())
	printPositions(os.Stdout, "initial positions:", g.IDs(), g.Positions())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := e.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println()
	printReport(os.Stdout, res, cfg.MaxIterations)
	fmt.Printf("\ncompleted in %v\n", elapsed)
	printMetrics(os.Stdout, res.Metrics)

	if outFile != "" {
		if err := export.WriteFile(outFile, graphName(cfg.Graph), res); err != nil {
			return err
		}
		fmt.Printf("exported %s\n", outFile)
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(graphName(cfg.Graph), cfg, res)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, e, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	m := viz.NewModel(e, graphName(cfg.Graph), cfg.Reseeder(e.Graph().Len()))
	return viz.RunLive(m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, e, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	g := e.Graph()
	fmt.Printf("graph has %d vertices and %d edges\n", g.Len(), g.EdgeCount())
	printPositions(os.Stdout, "initial positions:", g.IDs(), g.Positions())

	app := gui.NewApp(e, graphName(cfg.Graph), cfg.Reseeder(g.Len()))
	app.Log = log
	app.OnDone(func(f sim.Frame) {
		printFrameReport(os.Stdout, f, e.SettledAt(), cfg.MaxIterations)
	})
	gui.Run(app)
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := &http.Server{
		Addr:    addr,
		Handler: stream.NewServer(graphsDir, cfg, log).Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error("shutdown", "err", err)
		}
	}()

	fmt.Printf("serving %s on ws://%s/ws\n", graphsDir, addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if batchRuns < 1 {
		return fmt.Errorf("--runs must be positive")
	}

	ens := sim.NewEnsemble(batchLimit)
	seeds := make([]int64, batchRuns)
	for i := range seeds {
		runCfg := *cfg
		runCfg.Seed = cfg.Seed + int64(i)
		seeds[i] = runCfg.Seed

		g, err := loader.LoadFile(cfg.Graph)
		if err != nil {
			return err
		}
		e, err := runCfg.NewEngine(g, append(metrics.Options(), sim.WithLogger(log.With("seed", runCfg.Seed)))...)
		if err != nil {
			return err
		}
		ens.Add(e)
	}

	start := time.Now()
	results, err := ens.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("ran %d layouts of %s in %v\n\n", len(results), cfg.Graph, time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tREASON\tTICKS\tSETTLED AT\tMEAN EDGE\tSPREAD")
	for i, res := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.3f\t%.3f\n",
			seeds[i], res.Reason, res.Ticks, res.SettledAt,
			res.Metrics[metrics.MeanEdgeLengthName], res.Metrics[metrics.EdgeSpreadName])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGRAPH\tTIME\tV\tE\tREASON\tTICKS\tSETTLED AT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\t%d\n",
			run.ID,
			run.Graph,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Vertices,
			run.Edges,
			run.Reason,
			run.Ticks,
			run.SettledAt,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}
	fmt.Printf("run: %s\ngraph: %s\n", meta.ID, meta.Graph)
	fmt.Printf("graph has %d vertices and %d edges\n\n", meta.Vertices, meta.Edges)
	printPositions(os.Stdout, "initial positions:", res.IDs, res.Initial)
	fmt.Println()
	printReport(os.Stdout, res, meta.Config.MaxIterations)
	printMetrics(os.Stdout, res.Metrics)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("graph: %s\n", meta.Graph)
	fmt.Printf("ticks: %d\n\n", meta.Ticks)

	plot := asciigraph.Plot(trace,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("temperature vs tick"),
	)
	fmt.Println(plot)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return export.WriteFile(outFile, meta.Graph, res)
	}
	return export.Write(os.Stdout, format, meta.Graph, res)
}

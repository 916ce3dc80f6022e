package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/slitsim/internal/analysis"
	"github.com/san-kum/slitsim/internal/automation"
	"github.com/san-kum/slitsim/internal/config"
	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/export"
	"github.com/san-kum/slitsim/internal/gui"
	"github.com/san-kum/slitsim/internal/metrics"
	"github.com/san-kum/slitsim/internal/optim"
	"github.com/san-kum/slitsim/internal/physics"
	"github.com/san-kum/slitsim/internal/sim"
	"github.com/san-kum/slitsim/internal/storage"
	"github.com/san-kum/slitsim/internal/tui"
	"github.com/san-kum/slitsim/internal/viz"
	"github.com/san-kum/slitsim/internal/window"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	// Kernel parameters
	slit1 float64
	slit2 float64
	tVal  float64
	kVal  float64
	// Buffer and loop
	width    int
	height   int
	timeStep float64
	fps      int
	workers  int
	resume   string
	// Row counts; each command keeps its own default
	runTicks   int
	gifTicks   int
	benchTicks int
	// TUI
	theme string
	// Single-row commands
	offset  float64
	logView bool
	// GUI
	withAudio bool
	scale     int
	// export-gif
	every int
	// sweep and tune
	sweepParam    string
	sweepMin      float64
	sweepMax      float64
	sweepSteps    int
	targetSpacing float64
)

// analysisMargin keeps fringe detection away from the regularized peaks at
// the slits.
const analysisMargin = 0.05

func main() {
	rootCmd := &cobra.Command{
		Use:   "slitsim",
		Short: "double-slit interference waterfall",
		RunE:  runGUI,
	}
	addLoopFlags(rootCmd)
	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the newest row")

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset parameters")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "render rows headless and save a snapshot",
		RunE:  runHeadless,
	}
	addLoopFlags(runCmd)
	runCmd.Flags().IntVar(&runTicks, "ticks", config.DefaultHeight, "rows to render")
	runCmd.Flags().Bool("live", false, "draw an ascii waterfall while running")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal waterfall",
		RunE:  runLive,
	}
	addLoopFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(tui.ThemeNames(), ", ")+")")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "raylib window",
		RunE:  runGUI,
	}
	addLoopFlags(guiCmd)
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the newest row")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "ebiten window (build with -tags ebiten)",
		RunE:  runWindow,
	}
	addLoopFlags(windowCmd)
	windowCmd.Flags().IntVar(&scale, "scale", 1, "integer pixel scale")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot a single row",
		RunE:  plotProfile,
	}
	addRowFlags(profileCmd)
	profileCmd.Flags().BoolVar(&logView, "log", false, "plot log10(1+I) instead of normalized gray")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "fringe analysis of a single row",
		RunE:  analyzeRow,
	}
	addRowFlags(analyzeCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [file]",
		Short: "export a single row to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	addRowFlags(exportCSVCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [file]",
		Short: "export a single row profile to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addRowFlags(exportSVGCmd)

	exportGIFCmd := &cobra.Command{
		Use:   "export-gif [file]",
		Short: "record the waterfall as an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  exportGIF,
	}
	addLoopFlags(exportGIFCmd)
	exportGIFCmd.Flags().IntVar(&gifTicks, "ticks", 200, "rows to render")
	exportGIFCmd.Flags().IntVar(&every, "every", 2, "capture at least every n-th row")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [snapshot_id]",
		Short: "print a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSLIT1\tSLIT2\tT\tK")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.0f\n", name, p.Slit1, p.Slit2, p.T, p.K)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark row rendering",
		RunE:  benchRenderer,
	}
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 200, "rows per measurement")

	compareCmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "compare fringe statistics across presets",
		RunE:  comparePresets,
	}
	compareCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "columns")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted sequence of parameter changes and save a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	addLoopFlags(scriptCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "fringe statistics across a range of one parameter",
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "k", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 20, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "search k and t for a target fringe spacing",
		RunE:  runTune,
	}
	addParamFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&targetSpacing, "spacing", 0.1, "target spacing between maxima")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	addLoopFlags(configInitCmd)
	configInitCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(configCmd, runCmd, liveCmd, guiCmd, windowCmd, profileCmd, analyzeCmd,
		exportCSVCmd, exportSVGCmd, exportGIFCmd, listCmd, showCmd, presetsCmd, benchCmd, compareCmd,
		scriptCmd, sweepCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&slit1, "slit1", dynamo.DefaultSlit1, "first slit position [0, 1]")
	cmd.Flags().Float64Var(&slit2, "slit2", dynamo.DefaultSlit2, "second slit position [0, 1]")
	cmd.Flags().Float64Var(&tVal, "t", dynamo.DefaultT, "spread (> 0)")
	cmd.Flags().Float64Var(&kVal, "k", dynamo.DefaultK, "wavenumber")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "columns")
}

func addLoopFlags(cmd *cobra.Command) {
	addParamFlags(cmd)
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "rows")
	cmd.Flags().Float64Var(&timeStep, "step", config.DefaultTimeStep, "time offset added per row")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "rows per second")
	cmd.Flags().IntVar(&workers, "workers", 0, "kernel workers (0 = all cpus)")
	cmd.Flags().StringVar(&resume, "resume", "", "continue a saved snapshot (its parameters, size and offset win)")
}

func addRowFlags(cmd *cobra.Command) {
	addParamFlags(cmd)
	cmd.Flags().Float64Var(&offset, "offset", 0, "time offset added to t")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("slit1") {
		cfg.Params.Slit1 = slit1
	}
	if flags.Changed("slit2") {
		cfg.Params.Slit2 = slit2
	}
	if flags.Changed("t") {
		cfg.Params.T = tVal
	}
	if flags.Changed("k") {
		cfg.Params.K = kVal
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("step") {
		cfg.TimeStep = timeStep
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLoop(cfg *config.Config) (*sim.Loop, error) {
	buf, err := viz.NewHeatmap(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	loop, err := sim.New(viz.NewRenderer(buf, cfg.TimeStep, cfg.Workers), cfg.Params)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default() {
		loop.AddMetric(m)
	}
	if resume != "" {
		if _, err := storage.New(cfg.DataDir).Restore(resume, loop); err != nil {
			return nil, fmt.Errorf("resume %s: %w", resume, err)
		}
	}
	return loop, nil
}

// singleRow evaluates one row at t plus the --offset flag.
func singleRow(cfg *config.Config) dynamo.Row {
	row := make(dynamo.Row, cfg.Width)
	physics.FillRow(row, cfg.Params.WithT(cfg.Params.T+offset), cfg.Workers)
	return row
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	loop, err := newLoop(cfg)
	if err != nil {
		return err
	}
	return gui.Run(loop, gui.Options{
		FPS:   cfg.FPS,
		Audio: withAudio,
		Store: storage.New(cfg.DataDir),
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	loop, err := newLoop(cfg)
	if err != nil {
		return err
	}
	return window.Run(loop, window.Options{
		FPS:   cfg.FPS,
		Scale: scale,
		Store: storage.New(cfg.DataDir),
	})
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	loop, err := newLoop(cfg)
	if err != nil {
		return err
	}
	return tui.RunInteractive(loop, tui.Options{
		FPS:    cfg.FPS,
		Theme:  cfg.Theme,
		Store:  storage.New(cfg.DataDir),
		GIFDir: cfg.DataDir,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	loop, err := newLoop(cfg)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	live, _ := cmd.Flags().GetBool("live")
	runCfg := sim.Config{MaxTicks: runTicks}
	if live {
		lr := tui.NewLiveRenderer(loop, os.Stdout, 30)
		lr.Start()
		defer lr.Stop()
		loop.AddObserver(lr)
		runCfg.FPS = cfg.FPS
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("rendering %d rows at %dx%d (%s)\n", runTicks, cfg.Width, cfg.Height, cfg.Params)

	loop.Play()
	start := time.Now()
	result, err := loop.Run(ctx, runCfg)
	elapsed := time.Since(start)
	if err != nil && ctx.Err() == nil {
		return err
	}

	id, err := st.SaveLoop(loop)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	fmt.Printf("rows: %d  offset: %.2f  elapsed: %v\n", result.Ticks, result.Offset, elapsed.Round(time.Millisecond))
	printMetrics(os.Stdout, result.Metrics)
	fmt.Printf("saved: %s\n", id)
	return nil
}

// writeConfig saves the layered configuration so it can be passed back with
// --config. It refuses to overwrite an existing file.
func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	path := "slitsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func printMetrics(out io.Writer, m map[string]float64) {
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(out, "  %-16s %.6g\n", name, m[name])
	}
}

func plotProfile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	row := singleRow(cfg)

	data := make([]float64, len(row))
	caption := "normalized gray"
	if logView {
		caption = "log10(1+I)"
		for i, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				v = 0
			}
			data[i] = math.Log10(1 + v)
		}
	} else {
		for i, g := range viz.Normalize(row, nil) {
			data[i] = float64(g)
		}
	}

	graph := asciigraph.Plot(viz.DownsampleRow(data, 80),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s  %s", caption, cfg.Params.WithT(cfg.Params.T+offset))))
	fmt.Println(graph)
	return nil
}

func analyzeRow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params.WithT(cfg.Params.T + offset)
	r := analysis.Analyze(singleRow(cfg), p, analysisMargin)

	fmt.Printf("fringe analysis: %s, width %d\n\n", p, r.Width)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "peak intensity\t%.4g\n", r.Peak)
	fmt.Fprintf(w, "peak position\t%.4f\n", r.PeakX)
	fmt.Fprintf(w, "maxima between slits\t%d\n", r.Maxima)
	fmt.Fprintf(w, "mean spacing\t%.4f\n", r.Spacing)
	fmt.Fprintf(w, "expected spacing (pi/k)\t%.4f\n", r.ExpectedSpacing)
	fmt.Fprintf(w, "wavelength (2pi/k)\t%.4f\n", r.Wavelength)
	fmt.Fprintf(w, "dominant period (fft)\t%.4f\n", r.DominantPeriod)
	fmt.Fprintf(w, "finite row\t%v\n", r.Valid)
	return w.Flush()
}

// output returns the named file, or stdout when no name is given.
func output(args []string) (io.WriteCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(args[0])
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	row := singleRow(cfg)

	out, err := output(args)
	if err != nil {
		return err
	}
	defer out.Close()

	return export.RowCSV(out, row, viz.Normalize(row, nil))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	svg := export.ProfileSVG(singleRow(cfg), 800, 300, "#e0e0e0")
	if svg == "" {
		return fmt.Errorf("width %d is too small to plot", cfg.Width)
	}

	out, err := output(args)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.WriteString(out, svg)
	return err
}

func exportGIF(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	loop, err := newLoop(cfg)
	if err != nil {
		return err
	}
	stride, delay := export.FrameStride(cfg.FPS, every)
	rec := export.NewGIFRecorder(delay, 0)
	loop.AddObserver(sim.ObserverFunc(func(_ dynamo.Row, _ []uint8, _ float64) {
		if loop.Ticks()%stride == 0 {
			rec.Capture(loop.Heatmap())
		}
	}))

	loop.Play()
	if _, err := loop.Run(context.Background(), sim.Config{MaxTicks: gifTicks}); err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := rec.Encode(f); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d frames\n", args[0], rec.Len())
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tSLIT1\tSLIT2\tT\tK\tOFFSET\tROWS")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.2f\t%.2f\t%.2f\t%.0f\t%.2f\t%d\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Width, s.Height,
			s.Params.Slit1, s.Params.Slit2, s.Params.T, s.Params.K,
			s.Offset,
			s.Ticks,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	h, err := st.LoadImage(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s  %dx%d  offset %.2f  rows %d\n\n",
		meta.ID, meta.Params, meta.Width, meta.Height, meta.Offset, meta.Ticks)
	for _, row := range viz.Downsample(h, 80, 24) {
		var b strings.Builder
		for _, g := range row {
			b.WriteRune(viz.ShadeRune(g))
		}
		fmt.Println(b.String())
	}
	if len(meta.Metrics) > 0 {
		fmt.Println()
		printMetrics(os.Stdout, meta.Metrics)
	}
	return nil
}

func benchRenderer(cmd *cobra.Command, args []string) error {
	widths := []int{200, 800, 1600}
	workerCounts := []int{1, 0}

	fmt.Printf("benchmarking renderer (%d rows per run)\n\n", benchTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WIDTH\tWORKERS\tTIME\tROWS/SEC")

	for _, wd := range widths {
		for _, n := range workerCounts {
			buf, err := viz.NewHeatmap(wd, config.DefaultHeight)
			if err != nil {
				return err
			}
			r := viz.NewRenderer(buf, 0, n)
			p := dynamo.DefaultParams()

			start := time.Now()
			for i := 0; i < benchTicks; i++ {
				r.Tick(p)
			}
			elapsed := time.Since(start)

			label := fmt.Sprint(n)
			if n == 0 {
				label = "all"
			}
			fmt.Fprintf(w, "%d\t%s\t%v\t%.0f\n", wd, label, elapsed.Round(time.Microsecond), float64(benchTicks)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func comparePresets(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	params := make([]dynamo.Params, 0, len(names))
	for _, name := range names {
		p, ok := config.Presets[name]
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		params = append(params, p)
	}

	rows, err := sim.Sweep(cmd.Context(), params, width)
	if err != nil {
		return err
	}

	fmt.Printf("comparing presets (width=%d)\n\n", width)
	fmt.Printf("%-10s  %-28s  %8s  %8s  %8s  %10s\n", "preset", "params", "maxima", "spacing", "pi/k", "visibility")
	fmt.Println(strings.Repeat("-", 82))

	for i, name := range names {
		r := analysis.Analyze(rows[i], params[i], analysisMargin)
		lo := math.Min(params[i].Slit1, params[i].Slit2) + analysisMargin
		hi := math.Max(params[i].Slit1, params[i].Slit2) - analysisMargin
		vis := metrics.RowVisibility(analysis.Window(rows[i], lo, hi))
		fmt.Printf("%-10s  %-28s  %8d  %8.4f  %8.4f  %10.4f\n",
			name, params[i], r.Maxima, r.Spacing, r.ExpectedSpacing, vis)
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	loop, err := newLoop(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %s\n", scenario.Name, scenario.Description)
	results, err := automation.RunScenario(ctx, scenario, loop, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tROWS\tOFFSET\tPEAK\tVISIBILITY")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.4g\t%.4f\n", r.Label, r.Ticks, r.Offset,
			r.Metrics["peak_intensity"], r.Metrics["visibility"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.SaveLoop(loop)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", id)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg.Params,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Width:     cfg.Width,
		Margin:    analysisMargin,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMAXIMA\tSPACING\tPI/K\tVISIBILITY\n", strings.ToUpper(sweepParam))
	visibility := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%d\t%.4f\t%.4f\t%.4f\n", r.ParamValue, r.Maxima, r.Spacing, r.Expected, r.Visibility)
		visibility = append(visibility, r.Visibility)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(visibility) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(visibility,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("visibility vs "+sweepParam)))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if targetSpacing <= 0 {
		return fmt.Errorf("spacing must be positive, got %g", targetSpacing)
	}

	search := optim.NewGridSearch(
		[]string{"k", "t"},
		[][]float64{optim.Linspace(1, 20, 20), optim.Linspace(0.5, 3, 6)},
	)
	score := func(row dynamo.Row, p dynamo.Params) float64 {
		r := analysis.Analyze(row, p, analysisMargin)
		if r.Maxima < 2 {
			return math.Inf(1)
		}
		return math.Abs(r.Spacing - targetSpacing)
	}

	best, errVal, err := search.Search(cmd.Context(), cfg.Params, cfg.Width, score)
	if err != nil {
		return err
	}
	if math.IsInf(errVal, 1) {
		fmt.Println("no candidate produced two or more fringes between the slits")
		return nil
	}

	fmt.Printf("target spacing %.4f\n", targetSpacing)
	fmt.Printf("best: %s (error %.4f, pi/k %.4f)\n", best, errVal, analysis.ExpectedSpacing(best.K))
	return nil
}

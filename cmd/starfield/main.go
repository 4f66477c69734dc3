package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/starfield/internal/analysis"
	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/display"
	"github.com/san-kum/starfield/internal/starfield"
	"github.com/san-kum/starfield/internal/storage"
	"github.com/san-kum/starfield/internal/viz"
)

var (
	dataDir string
	verbose bool

	width       int
	height      int
	density     float64
	frames      int
	delay       float64
	dx          int
	dy          int
	seed        int64
	displayKind string
	theme       string
	configFile  string
	preset      string

	save  bool
	stats bool
	fit   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "starfield",
		Short:         "text starfield animation",
		Args:          cobra.NoArgs,
		RunE:          runStarfield,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger(verbose)
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".starfield", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addSkyFlags(rootCmd)
	rootCmd.Flags().BoolVar(&save, "save", false, "record the run in the data directory")
	rootCmd.Flags().BoolVar(&stats, "stats", false, "plot visible stars per frame after the run")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "render the starfield in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runStarfield,
	}
	addSkyFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "record the run in the data directory")
	runCmd.Flags().BoolVar(&stats, "stats", false, "plot visible stars per frame after the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive starfield view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSkyFlags(liveCmd)
	liveCmd.Flags().BoolVar(&fit, "fit", false, "resize the grid to the terminal")

	densityCmd := &cobra.Command{
		Use:   "density",
		Short: "place stars once and report how they cover the grid",
		Args:  cobra.NoArgs,
		RunE:  densityReport,
	}
	addSkyFlags(densityCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a recorded run and its final frame",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, densityCmd, presetsCmd, listCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("starfield failed", "err", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func addSkyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&width, "width", config.DefaultWidth, "grid width")
	f.IntVar(&height, "height", config.DefaultHeight, "grid height")
	f.Float64Var(&density, "density", config.DefaultDensity, "fraction of cells holding a star")
	f.IntVar(&frames, "frames", config.DefaultFrames, "frame budget (frames-1 are rendered)")
	f.Float64Var(&delay, "delay", config.DefaultDelay, "seconds between frames")
	f.IntVar(&dx, "dx", config.DefaultDX, "x step per frame")
	f.IntVar(&dy, "dy", config.DefaultDY, "y step per frame (positive is up)")
	f.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	f.StringVar(&displayKind, "display", config.DefaultDisplay, "display surface: ansi, tcell, plain")
	f.StringVar(&theme, "theme", config.DefaultTheme, "star colour theme")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("density") {
		cfg.Density = density
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("delay") {
		cfg.Delay = delay
	}
	if flags.Changed("dx") {
		cfg.Direction.X = dx
	}
	if flags.Changed("dy") {
		cfg.Direction.Y = dy
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("display") {
		cfg.Display = displayKind
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDisplay returns the surface for cfg and a function restoring the
// terminal afterwards. Quit keys on the tcell surface call cancel.
func openDisplay(cfg *config.Config, cancel context.CancelFunc) (starfield.Display, func(), error) {
	th := viz.GetTheme(cfg.Theme)
	switch cfg.Display {
	case "tcell":
		c, err := display.OpenCell()
		if err != nil {
			return nil, nil, fmt.Errorf("open terminal: %w", err)
		}
		c.SetStarColor(string(th.Star))
		c.Watch(cancel)
		return c, c.Close, nil
	case "plain":
		return display.NewPlain(os.Stdout), func() {}, nil
	default:
		term := display.NewTerminal(os.Stdout)
		style := th.StarStyle()
		term.Star = &style
		if err := term.Start(); err != nil {
			return nil, nil, err
		}
		return term, func() { _ = term.Stop() }, nil
	}
}

func runStarfield(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	out, closeDisplay, err := openDisplay(cfg, cancel)
	if err != nil {
		return err
	}

	shown := display.NewRecorder()
	if save {
		out = display.Tee(out, shown)
	}

	opts := append(cfg.Options(), starfield.WithDisplay(out))
	sky, err := starfield.New(opts...)
	if err != nil {
		closeDisplay()
		return err
	}

	tracker := analysis.NewTracker()
	if stats {
		sky.AddObserver(tracker)
	}

	slog.Debug("starting run",
		"width", cfg.Width, "height", cfg.Height, "density", cfg.Density,
		"frames", cfg.Frames, "delay", cfg.Delay, "seed", cfg.Seed,
		"stars", len(sky.Stars()), "display", cfg.Display)

	start := time.Now()
	runErr := sky.Run(ctx)
	closeDisplay()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		slog.Info("run interrupted")
	}
	slog.Debug("run finished", "elapsed", time.Since(start))

	if stats && len(tracker.Visible) > 0 {
		fmt.Println(analysis.Plot(tracker.Visible, "visible stars per frame", 80, 10))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(sky, shown.Last(), preset, cfg.Seed, analysis.Measure(sky).Marked)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		slog.Info("run saved", "id", runID, "dir", dataDir)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sky, err := starfield.New(cfg.Options()...)
	if err != nil {
		return err
	}
	return viz.Run(sky, viz.GetTheme(cfg.Theme), fit)
}

func densityReport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sky, err := starfield.New(cfg.Options()...)
	if err != nil {
		return err
	}
	fmt.Printf("grid: %dx%d  seed: %d\n", sky.Width(), sky.Height(), cfg.Seed)
	fmt.Print(analysis.Report(analysis.Measure(sky)))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tDENSITY\tFRAMES\tDELAY\tDIRECTION\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%dx%d\t%.3f\t%d\t%.2fs\t(%d,%d)\t%s\n",
			name, p.Width, p.Height, p.Density, p.Frames, p.Delay,
			p.Direction.X, p.Direction.Y, p.Theme)
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
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tDENSITY\tFRAMES\tSTARS\tVISIBLE\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.3f\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Density,
			run.Frames,
			run.Stars,
			run.Visible,
			run.Seed,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frame, err := st.LoadFinalFrame(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d  density: %.3f  frames: %d  delay: %.2fs\n",
		meta.Width, meta.Height, meta.Density, meta.Frames, meta.Delay)
	fmt.Printf("direction: (%d,%d)  seed: %d  stars: %d  visible: %d\n\n",
		meta.DirectionX, meta.DirectionY, meta.Seed, meta.Stars, meta.Visible)
	fmt.Print(frame)
	return nil
}

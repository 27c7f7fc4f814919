package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gridwalk/internal/bench"
	"github.com/san-kum/gridwalk/internal/config"
	"github.com/san-kum/gridwalk/internal/export"
	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/playback"
	"github.com/san-kum/gridwalk/internal/search"
	"github.com/san-kum/gridwalk/internal/session"
	"github.com/san-kum/gridwalk/internal/storage"
	"github.com/san-kum/gridwalk/internal/tui"
	"github.com/san-kum/gridwalk/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	layoutFile string
	envFile    string
	theme      string
	speed      int
	rows       int
	cols       int
	verbose    bool
	logFile    string
	// solve / play
	save    bool
	svgFile string
	pathSVG string
	noColor bool
	// config
	configOut string
	// bench
	runs    int
	density float64
	seed    int64
	workers int
)

// main runs the gridwalk CLI, exiting with status 1 if a command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd registers the gridwalk commands. With no subcommand the root
// opens the interactive editor.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gridwalk",
		Short:         "depth-first search visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runEditor,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use a preset board")
	pf.StringVar(&layoutFile, "layout", "", "board layout file (rows of . # S E)")
	pf.StringVar(&envFile, "env", ".env", "dotenv file with GRIDWALK_* overrides")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.IntVar(&speed, "speed", config.DefaultSpeed, fmt.Sprintf("speed slider %d..%d", session.SliderMin, session.SliderMax))
	pf.IntVar(&rows, "rows", config.DefaultRows, "rows of an empty board")
	pf.IntVar(&cols, "cols", config.DefaultCols, "columns of an empty board")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "log file for the interactive editor")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "search the board and print the result",
		Args:  cobra.NoArgs,
		RunE:  solveBoard,
	}
	solveCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	solveCmd.Flags().StringVar(&svgFile, "svg", "", "write the solved board as SVG")
	solveCmd.Flags().StringVar(&pathSVG, "path-svg", "", "write the found path as an SVG polyline")
	solveCmd.Flags().BoolVar(&noColor, "no-color", false, "plain output")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "animate the search in the terminal",
		Args:  cobra.NoArgs,
		RunE:  playBoard,
	}
	playCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	playCmd.Flags().BoolVar(&noColor, "no-color", false, "plain output")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot search stack depth over the run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("available presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %dx%d\n", name, p.Rows, p.Cols)
			}
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "solve random boards and summarise search metrics",
		Args:  cobra.NoArgs,
		RunE:  benchBoards,
	}
	benchCmd.Flags().IntVar(&runs, "runs", 100, "number of boards")
	benchCmd.Flags().Float64Var(&density, "density", 0.3, "wall probability per cell")
	benchCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = all cpus)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVarP(&configOut, "out", "o", "gridwalk.yaml", "output file")

	rootCmd.AddCommand(solveCmd, playCmd, listCmd, showCmd, plotCmd, presetsCmd, benchCmd, configCmd)
	return rootCmd
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, g, err := loadGrid(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sess := session.New(g, session.WithLogger(logger), session.WithSlider(cfg.Speed))
	return viz.Run(sess,
		viz.WithLogger(logger),
		viz.WithStore(st),
		viz.WithTheme(cfg.Theme),
	)
}

// noSleep plays a run back without pausing.
func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func solveBoard(cmd *cobra.Command, args []string) error {
	cfg, g, err := loadGrid(cmd)
	if err != nil {
		return err
	}
	logger := cliLogger()

	player := playback.New(playback.WithSleeper(noSleep), playback.WithLogger(logger))
	sess := session.New(g, session.WithLogger(logger), session.WithSlider(cfg.Speed), session.WithPlayer(player))

	overlay := playback.NewOverlay()
	outcome, err := sess.Solve(cmd.Context(), overlay)
	if err != nil {
		return err
	}
	overlay.Settle()

	fmt.Print(tui.Board(g, overlay, !noColor))
	fmt.Println(outcome.Message())
	run := sess.LastRun()
	if run == nil {
		return nil
	}
	fmt.Printf("visited: %d  events: %d\n", run.Result.Visited, len(run.Result.Events))

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.BoardSVG(g, overlay, 16)), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgFile)
	}
	if pathSVG != "" && outcome.Kind == search.PathFound {
		start, _ := g.Start()
		svg := export.PathSVG(g.Rows(), g.Cols(), start, outcome.Path, 16, "#ffcc00")
		if err := os.WriteFile(pathSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("path svg: %s\n", pathSVG)
	}
	if save {
		return saveRun(cfg, "solve", g, run)
	}
	return nil
}

func playBoard(cmd *cobra.Command, args []string) error {
	cfg, g, err := loadGrid(cmd)
	if err != nil {
		return err
	}
	logger := cliLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	player := playback.New(playback.WithLogger(logger))
	sess := session.New(g, session.WithLogger(logger), session.WithSlider(cfg.Speed), session.WithPlayer(player))

	title := fmt.Sprintf("gridwalk  delay %s", sess.Delay())
	r := tui.NewLiveRenderer(os.Stdout, title, g, 0, !noColor)
	r.Start()
	outcome, err := sess.Solve(ctx, r)
	r.Finish(outcome)
	r.Stop()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if run := sess.LastRun(); save && run != nil {
		return saveRun(cfg, "play", g, run)
	}
	return nil
}

func saveRun(cfg *config.Config, source string, g *grid.Grid, run *session.Run) error {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.NewMetadata(source, g, run.Result, run.Delay), run.Result)
	if err != nil {
		return err
	}
	fmt.Printf("saved run: %s\n", id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSIZE\tOUTCOME\tPATH\tVISITED\tDELAY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%d\t%d\t%dms\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Outcome,
			run.PathLength,
			run.Visited,
			run.DelayMs,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	meta, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}
	if _, err := recordedOutcome(meta); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}

	data := depthSeries(events)
	if len(data) == 0 {
		return fmt.Errorf("no data to plot")
	}

	kind, err := recordedOutcome(meta)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("outcome: %s  path: %d\n", kind, meta.PathLength)
	fmt.Printf("visits: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("stack depth per visit"),
	)
	fmt.Println(graph)
	return nil
}

// recordedOutcome parses the outcome name stored with a run, rejecting
// records written by something other than this program.
func recordedOutcome(meta *storage.RunMetadata) (search.OutcomeKind, error) {
	kind, err := search.ParseOutcomeKind(meta.Outcome)
	if err != nil {
		return 0, fmt.Errorf("run %s: %w", meta.ID, err)
	}
	return kind, nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(configOut, cfg); err != nil {
		return err
	}
	fmt.Printf("config: %s\n", configOut)
	return nil
}

// depthSeries is the stack depth at each Visit event.
func depthSeries(events []search.Event) []float64 {
	data := make([]float64, 0, len(events))
	for _, ev := range events {
		if ev.Kind == search.Visit {
			data = append(data, float64(ev.Depth))
		}
	}
	return data
}

func benchBoards(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ens, err := bench.NewEnsemble(bench.Config{
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		WallDensity: density,
		Runs:        runs,
		Seed:        seed,
		Workers:     workers,
	}, bench.WithLogger(cliLogger()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	trials, err := ens.Run(ctx)
	if err != nil {
		return err
	}
	s := bench.Summarize(trials)

	fmt.Printf("benchmarking %d boards %dx%d, density %.2f, seed %d\n\n", runs, cfg.Rows, cfg.Cols, density, seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FOUND\tVISITED\tPATH\tSEARCH\tWALL")
	fmt.Fprintf(w, "%.1f%%\t%.1f\t%.1f\t%v\t%v\n",
		100*s.FoundRate(), s.MeanVisited, s.MeanPath, s.MeanElapsed, time.Since(start))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN")
	for _, name := range s.MetricNames() {
		fmt.Fprintf(w, "%s\t%.3f\n", name, s.Metrics[name])
	}
	return w.Flush()
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lintrans/internal/config"
	"github.com/san-kum/lintrans/internal/logging"
	"github.com/san-kum/lintrans/internal/pipeline"
	"github.com/san-kum/lintrans/internal/render"
	"github.com/san-kum/lintrans/internal/storage"
	"github.com/san-kum/lintrans/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	steps      int
	frameDir   string
	animOut    string
	assembler  string
	delay      int
	noMarkers  bool
	noRecord   bool
	snapDir    string
	frameRate  int
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lintrans",
		Short: "animate linear transformations of 2D and 3D grids",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	renderCmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "render frames and assemble the animation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderAnimation,
	}
	addConfigFlags(renderCmd)
	renderCmd.Flags().StringVar(&frameDir, "frames", "", "frame directory")
	renderCmd.Flags().StringVar(&animOut, "out", "", "animation output path")
	renderCmd.Flags().StringVar(&assembler, "assembler", config.DefaultAssembler, "animation assembler (gif, convert)")
	renderCmd.Flags().IntVar(&delay, "delay", 10, "frame delay in 1/100 s")
	renderCmd.Flags().BoolVar(&noRecord, "no-record", false, "do not save the run under the data directory")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "write the grid before and after the transformation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshot,
	}
	addConfigFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&snapDir, "dir", "snapshots", "output directory")

	inspectCmd := &cobra.Command{
		Use:   "inspect [preset]",
		Short: "summarize the transformation and plot det and extent over t",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspect,
	}
	addConfigFlags(inspectCmd)
	inspectCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	playCmd := &cobra.Command{
		Use:   "play [preset]",
		Short: "play the transformation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  play,
	}
	addConfigFlags(playCmd)
	playCmd.Flags().IntVar(&frameRate, "fps", 15, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDIM\tSTEPS\tCOLOR\tMARKERS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dD\t%d\t%s\t%s\n", name, cfg.Dimension, cfg.Steps, cfg.Color, markerLabel(cfg.Markers))
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	stepsCmd := &cobra.Command{
		Use:   "steps [run_id]",
		Short: "plot the determinant of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSteps,
	}
	stepsCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [preset]",
		Short: "export the transformed sequence to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	addConfigFlags(exportJSONCmd)

	rootCmd.AddCommand(renderCmd, snapshotCmd, inspectCmd, playCmd, presetsCmd, listCmd, stepsCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "interpolation steps")
	cmd.Flags().BoolVar(&noMarkers, "no-markers", false, "do not draw marker vectors")
}

func newLogger() *slog.Logger {
	if verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelInfo)
}

// loadConfig resolves the preset argument, then the config file, then flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := "rotate"
	if len(args) > 0 {
		name = args[0]
	}

	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", name, strings.Join(config.ListPresets(), ", "))
		}
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("no-markers") && noMarkers {
		cfg.Markers.Basis = false
		cfg.Markers.Eigen = false
	}
	if flags.Changed("frames") {
		cfg.Output.FrameDir = frameDir
	}
	if flags.Changed("out") {
		cfg.Output.Animation = animOut
	}
	if flags.Changed("assembler") {
		cfg.Output.Assembler = assembler
	}
	if flags.Changed("delay") {
		cfg.Output.Delay = delay
	}
	if cmd.Root().PersistentFlags().Changed("data") || cfg.Output.DataDir == "" {
		cfg.Output.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func renderAnimation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := pipeline.New(cfg, newLogger())
	p.Record = !noRecord
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("frames: %d in %s\n", len(result.Frames), cfg.Output.FrameDir)
	if _, err := os.Stat(result.Animation); err == nil {
		fmt.Printf("animation: %s\n", result.Animation)
	} else {
		fmt.Println(viz.Warn.Render("animation was not written"))
	}
	if result.ID != "" {
		fmt.Printf("run: %s\n", result.ID)
	}
	fmt.Printf("elapsed: %s\n", result.Elapsed.Round(time.Millisecond))
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, newLogger())
	plan, err := p.Prepare()
	if err != nil {
		return err
	}
	paths, err := p.Snapshot(plan, snapDir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Println(path)
	}
	return nil
}

func inspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	plan, err := pipeline.New(cfg, newLogger()).Prepare()
	if err != nil {
		return err
	}
	seq := plan.Sequence
	_, n := plan.Points.Dims()

	dets := seq.Determinants()
	extents := make([]float64, seq.Len())
	for i, st := range seq.Steps {
		extents[i] = math.Abs(mat.Max(st.Points))
	}

	summary := viz.KeyValue([][2]string{
		{"preset", cfg.Name},
		{"dimension", fmt.Sprintf("%dD", cfg.Dimension)},
		{"points", fmt.Sprint(n)},
		{"steps", fmt.Sprint(cfg.Steps)},
		{"color", cfg.Color},
		{"markers", markerLabel(cfg.Markers)},
		{"det(A)", fmt.Sprintf("%.4f", dets[len(dets)-1])},
		{"extent", fmt.Sprintf("%.4f", seq.Extent())},
	})
	fmt.Println(viz.Title.Render("transformation"))
	fmt.Println(viz.Panel.Render(summary))
	fmt.Println(mat.Formatted(plan.Target, mat.Prefix("A = "), mat.Squeeze()))
	fmt.Println()

	fmt.Println(asciigraph.Plot(dets,
		asciigraph.Height(plotHeight),
		asciigraph.Width(60),
		asciigraph.Caption("det M(t)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(extents,
		asciigraph.Height(plotHeight),
		asciigraph.Width(60),
		asciigraph.Caption("extent over t"),
	))
	return nil
}

func play(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	plan, err := pipeline.New(cfg, newLogger()).Prepare()
	if err != nil {
		return err
	}
	texts, err := plan.Renderer(render.ModePreview).Texts(plan.Frames())
	if err != nil {
		return err
	}
	return viz.Play(cfg.Name, texts, frameRate)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDIM\tSTEPS\tPOINTS\tDET\tANIMATION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dD\t%d\t%d\t%.3f\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dimension,
			run.Steps,
			run.Points,
			run.Determinant,
			run.Animation,
		)
	}

	return w.Flush()
}

func plotSteps(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no steps recorded for %s", runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("steps: %d\n\n", meta.Steps)

	dets := make([]float64, len(records))
	for i, r := range records {
		dets[i] = r.Determinant
	}
	fmt.Println(asciigraph.Plot(dets,
		asciigraph.Height(plotHeight),
		asciigraph.Width(60),
		asciigraph.Caption("det M(t)"),
	))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	plan, err := pipeline.New(cfg, newLogger()).Prepare()
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, cfg.Name, plan.Sequence, plan.Colors)
}

func markerLabel(m config.MarkerConfig) string {
	var parts []string
	if m.Basis {
		parts = append(parts, "basis")
	}
	if m.Eigen {
		parts = append(parts, "eigen")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}

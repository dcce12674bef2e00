package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravgen/internal/config"
	"github.com/san-kum/gravgen/internal/metrics"
	"github.com/san-kum/gravgen/internal/motion"
	"github.com/san-kum/gravgen/internal/sampler"
	"github.com/san-kum/gravgen/internal/storage"
	"github.com/san-kum/gravgen/internal/task"
	"github.com/san-kum/gravgen/internal/viz"
)

var (
	dataDir string

	// simulation flags
	height      float64
	velocity    float64
	gravity     float64
	duration    float64
	sampleRate  float64
	restitution float64
	friction    float64

	// generate flags
	numSamples int
	outputDir  string
	seed       int64
	workers    int
	noVideo    bool
	videoFPS   int
	format     string

	// plot flags
	plotVelocity bool

	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravgen",
		Short: "gravity physics training-data generator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravgen", "data directory for single runs")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a labeled dataset of bouncing-ball tasks",
		RunE:  runGenerate,
	}
	generateCmd.Flags().IntVarP(&numSamples, "samples", "n", 0, "number of tasks (0 = config default)")
	generateCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "batch seed (0 = time-based)")
	generateCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = default)")
	generateCmd.Flags().BoolVar(&noVideo, "no-video", false, "skip ground-truth videos")
	generateCmd.Flags().IntVar(&videoFPS, "fps", 0, "video frame rate (0 = config default)")
	generateCmd.Flags().StringVar(&format, "format", "", "video format: mp4 or gif")
	generateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	generateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a single simulation and store the trajectory",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&height, "height", 15.0, "initial height (m)")
	runCmd.Flags().Float64Var(&velocity, "velocity", 0.0, "initial velocity (m/s, positive up)")
	runCmd.Flags().Float64Var(&gravity, "gravity", motion.DefaultGravity, "gravity (m/s²)")
	runCmd.Flags().Float64Var(&duration, "time", motion.DefaultDuration, "duration (s)")
	runCmd.Flags().Float64Var(&sampleRate, "rate", motion.DefaultSampleRate, "sample rate (Hz)")
	runCmd.Flags().Float64Var(&restitution, "restitution", motion.DefaultRestitution, "bounce restitution [0,1]")
	runCmd.Flags().Float64Var(&friction, "friction", motion.DefaultFriction, "settling friction [0,1]")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&plotVelocity, "velocity", false, "plot velocity instead of height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a simulation live in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&height, "height", 15.0, "initial height (m)")
	liveCmd.Flags().Float64Var(&velocity, "velocity", 0.0, "initial velocity (m/s)")
	liveCmd.Flags().Float64Var(&gravity, "gravity", motion.DefaultGravity, "gravity (m/s²)")
	liveCmd.Flags().Float64Var(&restitution, "restitution", motion.DefaultRestitution, "bounce restitution [0,1]")
	liveCmd.Flags().Float64Var(&friction, "friction", motion.DefaultFriction, "settling friction [0,1]")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available generation presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, p := range names {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(generateCmd, runCmd, plotCmd, listCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
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

	// CLI flags override config and preset.
	if cmd.Flags().Changed("samples") {
		cfg.NumSamples = numSamples
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if noVideo {
		cfg.GenerateVideos = false
	}
	if cmd.Flags().Changed("fps") {
		cfg.VideoFPS = videoFPS
	}
	if cmd.Flags().Changed("format") {
		cfg.VideoFormat = format
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	gen, err := task.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := gen.Generate(ctx)
	if err != nil {
		return err
	}

	summary := task.Summarize(results)
	if err := task.WriteSummary(cfg.OutputDir, summary); err != nil {
		return err
	}

	fmt.Printf("generated %d tasks in %s (seed %d)\n\n", summary.Count, time.Since(start).Round(time.Millisecond), gen.Seed())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "mean bounces\t%.2f ± %.2f\n", summary.MeanBounces, summary.StdDevBounces)
	fmt.Fprintf(w, "mean impact speed\t%.2f m/s\n", summary.MeanImpactSpeed)
	fmt.Fprintf(w, "mean peak height\t%.2f m\n", summary.MeanPeakHeight)
	fmt.Fprintf(w, "mean gravity\t%.2f ± %.2f m/s²\n", summary.MeanGravity, summary.StdDevGravity)
	fmt.Fprintf(w, "videos\t%d generated, %d skipped\n", summary.VideosGenerated, summary.VideosSkipped)
	w.Flush()

	if summary.VideosSkipped > 0 {
		fmt.Println("\nsome videos were skipped: no encoding backend available")
	}
	return nil
}

func simParams() motion.Params {
	p := motion.DefaultParams()
	p.InitialHeight = height
	p.InitialVelocity = velocity
	p.Gravity = gravity
	p.Duration = duration
	p.SampleRate = sampleRate
	p.Restitution = restitution
	p.Friction = friction
	return p
}

func runSimulation(cmd *cobra.Command, args []string) error {
	params := simParams()

	smp := sampler.New(params)
	smp.AddMetric(metrics.NewBounceCount())
	smp.AddMetric(metrics.NewPeakHeight())
	smp.AddMetric(metrics.NewImpactSpeed())
	smp.AddMetric(metrics.NewEnergyDecay(params.Gravity, params.GroundHeight))

	traj, err := smp.Run()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(params, traj, smp.Metrics())
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d samples over %.2fs\n\n", runID, len(traj), traj.Last().Time)
	fmt.Println(viz.PlotHeight(traj))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	names := make([]string, 0)
	vals := smp.Metrics()
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, vals[name])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if plotVelocity {
		fmt.Println(viz.PlotVelocity(traj))
	} else {
		fmt.Println(viz.PlotHeight(traj))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tHEIGHT\tVELOCITY\tGRAVITY\tBOUNCES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%+.1f\t%.2f\t%.0f\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Params.InitialHeight, r.Params.InitialVelocity, r.Params.Gravity,
			r.Metrics["bounce_count"])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	p := simParams()
	p.Duration = 3600 // live view runs until quit
	return viz.RunLive(p)
}

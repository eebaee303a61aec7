package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ackersim/internal/config"
	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/metrics"
	"github.com/san-kum/ackersim/internal/sim"
	"github.com/san-kum/ackersim/internal/storage"
	"github.com/san-kum/ackersim/internal/vehicle"
	"github.com/san-kum/ackersim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	speed     float64
	lf        float64
	lb        float64
	x0        float64
	y0        float64
	psi0      float64
	df0       float64
	dt        float64
	minSpeed  float64
	maxSpeed  float64
	angleStep float64
	speedStep float64

	frameRate int
	duration  float64
	verbose   bool
	column    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ackersim",
		Short: "Ackermann bicycle-model drive simulator",
		RunE:  runDrive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ackersim", "data directory")

	driveCmd := &cobra.Command{
		Use:   "drive",
		Short: "drive interactively with the keyboard",
		RunE:  runDrive,
	}
	addVehicleFlags(driveCmd)
	driveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate cap")
	addVehicleFlags(rootCmd)
	rootCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate cap")

	runCmd := &cobra.Command{
		Use:   "run [maneuver]",
		Short: "run a scripted maneuver headless and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runManeuver,
	}
	addVehicleFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "print per-tick diagnostics")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "plot a single column (x, y, psi, speed_kmh, steer_deg)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the full trajectory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the full trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	maneuversCmd := &cobra.Command{
		Use:   "maneuvers",
		Short: "list built-in maneuvers",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range sim.ManeuverNames() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list vehicle presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-10s lf=%.1fm lb=%.1fm dt=%.2fs speed=%.0f..%.0f km/h\n",
					name, cfg.Lf, cfg.Lb, cfg.Dt, cfg.MinSpeed, cfg.MaxSpeed)
			}
			return nil
		},
	}

	rootCmd.AddCommand(driveCmd, runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, maneuversCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addVehicleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "vehicle preset name")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial speed set-point, km/h")
	cmd.Flags().Float64Var(&lf, "lf", config.DefaultLf, "front wheelbase, m")
	cmd.Flags().Float64Var(&lb, "lb", config.DefaultLb, "rear wheelbase, m")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial x, m")
	cmd.Flags().Float64Var(&y0, "y0", 0, "initial y, m")
	cmd.Flags().Float64Var(&psi0, "psi0", 0, "initial heading, deg")
	cmd.Flags().Float64Var(&df0, "df0", 0, "initial steer angle, deg")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sample interval, s")
	cmd.Flags().Float64Var(&minSpeed, "min-speed", 0, "minimum speed set-point, km/h")
	cmd.Flags().Float64Var(&maxSpeed, "max-speed", config.DefaultMaxSpeed, "maximum speed set-point, km/h")
	cmd.Flags().Float64Var(&angleStep, "angle-step", config.DefaultAngleStep, "steer increment per tick, deg")
	cmd.Flags().Float64Var(&speedStep, "speed-step", config.DefaultSpeedStep, "speed increment per adjust, km/h")
}

// buildConfig layers defaults, preset, config file, and explicit flags, in
// that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
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
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("lf") {
		cfg.Lf = lf
	}
	if flags.Changed("lb") {
		cfg.Lb = lb
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("y0") {
		cfg.Y0 = y0
	}
	if flags.Changed("psi0") {
		cfg.Psi0 = psi0
	}
	if flags.Changed("df0") {
		cfg.Df0 = df0
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("min-speed") {
		cfg.MinSpeed = minSpeed
	}
	if flags.Changed("max-speed") {
		cfg.MaxSpeed = maxSpeed
	}
	if flags.Changed("angle-step") {
		cfg.AngleStep = angleStep
	}
	if flags.Changed("speed-step") {
		cfg.SpeedStep = speedStep
	}

	return cfg, nil
}

func runDrive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	car, err := vehicle.New(cfg.Vehicle())
	if err != nil {
		return err
	}

	m := viz.NewModel(car, cfg.Mapper(), frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// tickPrinter emits the per-tick diagnostic line for verbose headless runs.
type tickPrinter struct {
	car *vehicle.Car
}

func (p *tickPrinter) OnTick(pose vehicle.Pose, cmd input.Command, t float64) {
	fmt.Printf("t=%6.2f  beta=%.3f  x=%.3f  y=%.3f  psi=%.3f deg\n",
		t, p.car.SlipAngle(), pose.X, pose.Y, pose.Heading*180/math.Pi)
}

func runManeuver(cmd *cobra.Command, args []string) error {
	maneuver := args[0]

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	car, err := vehicle.New(cfg.Vehicle())
	if err != nil {
		return err
	}

	ticks := int(duration / cfg.Dt)
	script, err := sim.Maneuver(maneuver, ticks)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simulator := sim.New(car, cfg.Mapper())
	simulator.AddMetric(metrics.NewDistance())
	simulator.AddMetric(metrics.NewControlEffort())
	simulator.AddMetric(metrics.NewHeadingChange())
	if verbose {
		simulator.AddObserver(&tickPrinter{car: car})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s maneuver...\n", maneuver)
	start := time.Now()

	result, err := simulator.Run(ctx, script)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(maneuver, cfg.Dt, cfg.Lf, cfg.Lb, result)
	if err != nil {
		return err
	}

	final := result.Poses[len(result.Poses)-1]
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Printf("final pose: x=%.3f y=%.3f psi=%.3f deg\n", final.X, final.Y, final.Heading*180/math.Pi)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
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
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMANEUVER\tTIME\tDURATION\tDT\tLF\tLB")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.3fs\t%.1fm\t%.1fm\n",
			run.ID,
			run.Maneuver,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.WheelbaseFront,
			run.WheelbaseRear,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("maneuver: %s\n", meta.Maneuver)
	fmt.Printf("samples: %d\n\n", len(states))

	for idx, name := range storage.StateColumns {
		if column != "" && column != name {
			continue
		}
		data := make([]float64, len(states))
		for i := range states {
			if idx < len(states[i]) {
				data[i] = states[i][idx]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	return storage.ExportMetadata(os.Stdout, meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		Poses:   make([]vehicle.Pose, len(states)),
		Speeds:  make([]float64, len(states)),
		Steers:  make([]float64, len(states)),
		Times:   times,
		Metrics: meta.Metrics,
		Ticks:   len(states) - 1,
	}
	for i, row := range states {
		if len(row) < len(storage.StateColumns) {
			continue
		}
		result.Poses[i] = vehicle.Pose{X: row[0], Y: row[1], Heading: row[2]}
		result.Speeds[i] = row[3]
		result.Steers[i] = row[4]
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, storage.StateColumns...)); err != nil {
		return err
	}
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

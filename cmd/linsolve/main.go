package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/linsolve/internal/config"
	"github.com/san-kum/linsolve/internal/format"
	"github.com/san-kum/linsolve/internal/storage"
	"github.com/san-kum/linsolve/internal/tui"
	"github.com/san-kum/linsolve/internal/workbench"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	// solve flags
	tolerance   float64
	flowMode    bool
	showInverse bool
	showDet     bool
	plot        bool
	save        bool
	preset      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "linsolve",
		Short:         "linear system of equations solver",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return tui.Run(s)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "run history directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	solveCmd := &cobra.Command{
		Use:   "solve [file...]",
		Short: "solve systems read from files or stdin",
		Long: "Reads the coefficient matrix with the constant vector as last column,\n" +
			"one row per line, values separated by whitespace or commas.\n" +
			"With no file, or with -, the system is read from stdin.",
		RunE: runSolve,
	}
	solveCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "relative pivot tolerance")
	solveCmd.Flags().BoolVar(&flowMode, "flow", false, "fill rows from consecutive values, ignoring line breaks")
	solveCmd.Flags().BoolVar(&showInverse, "inverse", false, "print the inverse matrix")
	solveCmd.Flags().BoolVar(&showDet, "det", false, "print the determinant")
	solveCmd.Flags().BoolVar(&plot, "plot", false, "plot the solution vector")
	solveCmd.Flags().BoolVar(&save, "save", false, "record the run in the history directory")
	solveCmd.Flags().StringVar(&preset, "preset", "", "solve a built-in example system")

	examplesCmd := &cobra.Command{
		Use:   "examples",
		Short: "list built-in example systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\n", name, p.Description)
			}
			return w.Flush()
		},
	}

	introCmd := &cobra.Command{
		Use:   "intro",
		Short: "print the input format help",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), format.Intro)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			return st.ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the solution vector of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the default settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("config file already exists: %s", args[0])
			}
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(solveCmd, examplesCmd, introCmd, listCmd, showCmd, exportJSONCmd, plotCmd, initConfigCmd)
	return rootCmd
}

// loadConfig builds the config from defaults, the config file and the
// flags, in increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Lookup("tol") != nil && (flags.Changed("tol") || cfg.Tolerance <= 0) {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("flow") {
		cfg.ParseMode = "strict"
		if flowMode {
			cfg.ParseMode = "flow"
		}
	}
	if flags.Changed("inverse") {
		cfg.ShowInverse = showInverse
	}
	if flags.Changed("det") {
		cfg.ShowDeterminant = showDet
	}
	if flags.Changed("save") {
		cfg.SaveRuns = save
	}
	return cfg, nil
}

// openStore returns the run history the config points at.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func newSession(cmd *cobra.Command) (*workbench.Session, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	opts := []workbench.Option{workbench.WithLogger(logger)}
	if cfg.SaveRuns {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return nil, err
		}
		opts = append(opts, workbench.WithStore(st))
	}
	return workbench.New(cfg, opts...)
}

func runSolve(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	// colour is dropped when out is not a terminal
	errStyle := lipgloss.NewRenderer(out).NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	reports := s.SolveBatch(context.Background(), inputs)

	var failed []string
	for i, rep := range reports {
		if len(reports) > 1 {
			fmt.Fprintf(out, "==> %s <==", inputs[i].Name)
		}
		if rep.Err != nil {
			fmt.Fprint(out, errStyle.Render(s.Render(rep)))
			failed = append(failed, inputs[i].Name)
			continue
		}
		fmt.Fprint(out, s.Render(rep))
		if plot {
			fmt.Fprintln(out)
			fmt.Fprintln(out, plotSolution(rep.Solution))
		}
		if rep.RunID != "" {
			fmt.Fprintf(out, "\nrun id: %s\n", rep.RunID)
		}
		if len(reports) > 1 {
			fmt.Fprintln(out)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d systems failed: %s", len(failed), len(reports), strings.Join(failed, ", "))
	}
	return nil
}

func readInputs(cmd *cobra.Command, args []string) ([]workbench.Input, error) {
	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return []workbench.Input{{Name: preset, Text: p.Text}}, nil
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs := make([]workbench.Input, 0, len(args))
	for _, name := range args {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
			name = "stdin"
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, workbench.Input{Name: name, Text: string(data)})
	}
	return inputs, nil
}

func plotSolution(x []float64) string {
	data := x
	if len(data) == 1 {
		// asciigraph needs two points to draw a line
		data = []float64{x[0], x[0]}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("solution vector x[i]"),
	)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tSTATUS\tDETERMINANT\tRESIDUAL")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%.6g\t%.3g\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Rows, r.Rows+1, r.Status, r.Determinant, r.Residual)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	rec, err := st.LoadRecord(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s (%s)\n", rec.Meta.ID, rec.Meta.Status)
	if rec.System != nil {
		fmt.Fprintln(out)
		for _, row := range rec.System.Data {
			for _, v := range row {
				fmt.Fprintf(out, " % 11.7f", v)
			}
			fmt.Fprintln(out)
		}
	}
	if rec.Meta.Error != "" {
		fmt.Fprintf(out, "\nerror: %s\n", rec.Meta.Error)
	}
	if len(rec.Meta.Pivots) > 0 {
		fmt.Fprint(out, "\npivots:")
		for _, p := range rec.Meta.Pivots {
			fmt.Fprintf(out, " %.7g", p)
		}
		fmt.Fprintf(out, "\ndeterminant: %.7g\n", rec.Meta.Determinant)
	}
	if rec.Solution != nil {
		fmt.Fprint(out, format.SolutionBlock(rec.Solution))
	}
	if rec.Inverse != nil {
		fmt.Fprint(out, format.InverseBlock(rec.Inverse))
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	rec, err := st.LoadRecord(args[0])
	if err != nil {
		return err
	}
	if len(rec.Solution) == 0 {
		return errors.New("run has no solution to plot")
	}
	fmt.Fprintln(cmd.OutOrStdout(), plotSolution(rec.Solution))
	return nil
}

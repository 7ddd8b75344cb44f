package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/aegis/bench"
	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/solver"
)

func newBenchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Batch runs across problem sizes or noise rates",
	}

	scaling := &cobra.Command{
		Use:   "scaling",
		Short: "Solve one seeded instance per size with every method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runScaling(cmd)
		},
	}
	a.benchFlags(scaling)
	scaling.Flags().IntSliceVar(&a.flags.Bench.Sizes, "sizes", a.flags.Bench.Sizes, "problem sizes")

	sweep := &cobra.Command{
		Use:   "noise",
		Short: "Success rate of every method as the noise rate grows",
		Long: `noise solves one instance under the --noise preset at every rate in --rates,
--trials times per method, and reports the mean probability mass on the exact
optimum. The ideal preset is replaced by combined.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runNoiseSweep(cmd)
		},
	}
	a.benchFlags(sweep)
	a.problemFlags(sweep.Flags())
	sweep.Flags().Float64SliceVar(&a.flags.Bench.Rates, "rates", a.flags.Bench.Rates, "error rates in [0,1]")
	sweep.Flags().IntVar(&a.flags.Bench.Trials, "trials", a.flags.Bench.Trials, "seeded repetitions per point")

	cmd.AddCommand(scaling, sweep)

	return cmd
}

func (a *app) benchFlags(cmd *cobra.Command) {
	a.solveFlags(cmd.Flags())
	cmd.Flags().IntVar(&a.flags.Bench.Concurrency, "concurrency", a.flags.Bench.Concurrency, "parallel solver invocations, 0 for GOMAXPROCS")
}

func (a *app) benchOptions() []bench.Option {
	opts := []bench.Option{bench.WithLogger(a.logger), bench.WithSeed(a.cfg.Problem.Seed)}
	if c := a.cfg.Bench.Concurrency; c > 0 {
		opts = append(opts, bench.WithConcurrency(c))
	}

	return opts
}

type scalingReport struct {
	RunID string      `json:"run_id" yaml:"run_id"`
	Rows  []bench.Row `json:"rows" yaml:"rows"`
}

func (a *app) runScaling(cmd *cobra.Command) error {
	solvers, err := buildSolvers(a.cfg, a.logger)
	if err != nil {
		return err
	}

	rows, err := bench.Scaling(cmd.Context(), a.cfg.Bench.Sizes, solvers, a.benchOptions()...)
	if err != nil {
		return err
	}
	if !a.cfg.Solve.History {
		for i := range rows {
			rows[i].Convergence = nil
		}
	}
	report := scalingReport{RunID: a.runID, Rows: rows}

	return render(cmd.OutOrStdout(), a.cfg.Output, report, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "N\tMETHOD\tBITSTRING\tOPTIMAL\tSUCCESS\tENERGY\tELAPSED")
		for _, r := range rows {
			opt := r.Optimal.String()
			if opt == "" {
				opt = "-"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.6f\t%s\n",
				r.N, r.Method, r.Bitstring, opt, yesNo(r.Success), r.Energy, r.Elapsed.Round(time.Microsecond))
		}
	})
}

type sweepReport struct {
	RunID  string        `json:"run_id" yaml:"run_id"`
	N      int           `json:"n" yaml:"n"`
	Preset string        `json:"preset" yaml:"preset"`
	Points []bench.Point `json:"points" yaml:"points"`
}

func (a *app) runNoiseSweep(cmd *cobra.Command) error {
	cfg := a.cfg
	p, err := problemOf(cfg.Problem)
	if err != nil {
		return err
	}

	preset := cfg.Noise.Preset
	if preset == "ideal" {
		preset = "combined"
	}
	contenders := make([]bench.Contender, 0, len(cfg.Solve.Methods))
	for _, m := range cfg.Solve.Methods {
		if _, err := buildSolver(m, cfg.Solve, noise.Ideal(), cfg.Solve.Seed, a.logger); err != nil {
			return err
		}
		contenders = append(contenders, bench.Contender{
			Method: solver.Method(m),
			Build: func(model noise.Model, seed int64) solver.Solver {
				s, _ := buildSolver(m, cfg.Solve, model, seed, a.logger)
				return s
			},
		})
	}

	opts := append(a.benchOptions(),
		bench.WithTrials(cfg.Bench.Trials),
		bench.WithPreset(func(rate float64) (noise.Model, error) { return noiseModel(preset, rate) }),
	)
	points, err := bench.NoiseSweep(cmd.Context(), p, cfg.Bench.Rates, contenders, opts...)
	if err != nil {
		return err
	}
	report := sweepReport{RunID: a.runID, N: p.N(), Preset: preset, Points: points}

	return render(cmd.OutOrStdout(), cfg.Output, report, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "n=%d  preset=%s\n", report.N, preset)
		fmt.Fprintln(tw, "RATE\tMETHOD\tSUCCESS RATE\tTRIALS")
		for _, pt := range points {
			fmt.Fprintf(tw, "%g\t%s\t%.4f\t%d\n", pt.Rate, pt.Method, pt.SuccessRate, pt.Trials)
		}
	})
}

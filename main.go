package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gauss-seidel/internal/solver"
	"gauss-seidel/internal/system"
)

func printVector(w io.Writer, name string, v []float64) {
	fmt.Fprintf(w, "%s:", name)
	for _, val := range v {
		fmt.Fprintf(w, " %f", val)
	}
	fmt.Fprintln(w)
}

func printMatrix(w io.Writer, matrix [][]float64) {
	for i := 0; i < len(matrix); i++ {
		fmt.Fprintf(w, "---------")
	}
	fmt.Fprintln(w)

	for _, row := range matrix {
		fmt.Fprintf(w, "|")

		for i, val := range row {
			if i+1 < len(row) {
				fmt.Fprintf(w, "%7.3f, ", val)
			} else {
				fmt.Fprintf(w, "%7.3f", val)
			}
		}

		fmt.Fprintf(w, "|\n")
	}

	for i := 0; i < len(matrix); i++ {
		fmt.Fprintf(w, "---------")
	}
	fmt.Fprintln(w)
}

func printSolution(w io.Writer, res *solver.Result) {
	for _, v := range res.X {
		fmt.Fprintf(w, "%f\n", v)
	}
	fmt.Fprintf(w, "total number of iterations: %d\n", res.Rounds)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "gsolve [problem file]",
		Short: "Solve a diagonally dominant linear system with partitioned Gauss-Seidel iteration",
		Long: `gsolve reads A, b, an initial guess and a tolerance, checks that A is
diagonally dominant, and iterates on a fixed pool of workers until every
component's relative change is within the tolerance.

Files ending in .yaml/.yml are read as YAML documents, anything else as the
text format: n, tolerance, n initial values, then n rows of n coefficients
each followed by the row's constant.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configPath)
			if err != nil {
				return err
			}
			return runSolve(cmd.Context(), cmd.OutOrStdout(), setupLogger(cfg, cmd.ErrOrStderr()), cfg, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.IntP("workers", "w", 1, "number of workers")
	flags.Int("max-rounds", 0, "stop after this many rounds (0 = until converged)")
	flags.String("backend", "local", "collective backend: "+fmt.Sprint(backendNames()))
	flags.Bool("sequential", false, "run on a single worker")
	flags.Bool("debug", false, "print the system and every round's iterate")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	if err := bindFlags(v, flags); err != nil {
		panic(err)
	}

	cmd.AddCommand(newCheckCmd(), newGenerateCmd())
	return cmd
}

func runSolve(ctx context.Context, out io.Writer, logger *logrus.Logger, cfg config, path string) error {
	p, err := system.Load(path)
	if err != nil {
		return err
	}
	log := logger.WithFields(logrus.Fields{
		"file":    path,
		"n":       p.Size(),
		"backend": cfg.Backend,
	})

	opts := []solver.Option{solver.WithLogger(logger)}
	if cfg.MaxRounds > 0 {
		opts = append(opts, solver.WithMaxRounds(cfg.MaxRounds))
	}
	if cfg.Debug {
		fmt.Fprintln(out, "A:")
		printMatrix(out, p.Rows())
		printVector(out, "x0", p.X0)
		printVector(out, "b", p.B)
		fmt.Fprintf(out, "tolerance: %f\n", p.Tolerance)
		opts = append(opts, solver.WithObserver(func(r solver.Round) {
			fmt.Fprintf(out, "round %d\n", r.Index)
			printVector(out, "  x", r.X)
			printVector(out, "  err", r.RelErr)
		}))
	}

	start := time.Now()
	res, primary, err := backends[cfg.Backend](ctx, p, cfg, opts...)
	if !primary {
		return err
	}
	if err != nil {
		if res != nil && errors.Is(err, solver.ErrRoundLimit) {
			printSolution(out, res)
		}
		return err
	}

	residual, err := system.Residual(p, res.X)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"workers":  res.Workers,
		"rounds":   res.Rounds,
		"residual": residual,
		"elapsed":  time.Since(start),
	}).Info("solved")

	printSolution(out, res)
	return nil
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [problem file]",
		Short: "Run the convergence pre-flight checks without solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := system.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range system.Analyze(p) {
				mark := "weak"
				switch {
				case r.Strict():
					mark = "strict"
				case !r.Weak():
					mark = "FAIL"
				}
				fmt.Fprintf(out, "row %d: |a_ii|=%f sum=%f %s\n", r.Row, r.Diagonal, r.OffDiagonal, mark)
			}
			if err := system.Preflight(p); err != nil {
				return err
			}
			fmt.Fprintln(out, "the matrix will converge")
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		n         int
		tolerance float64
		seed      int64
		asYAML    bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random strictly diagonally dominant problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("n must be >= 1, got %d", n)
			}
			p, err := system.Random(n, tolerance, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if asYAML {
				return system.EncodeYAML(out, p)
			}
			return system.Encode(out, p)
		},
	}

	cmd.Flags().IntVarP(&n, "size", "n", 10, "number of unknowns")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "convergence tolerance")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "write YAML instead of the text format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "gsolve:", err)
		stop()
		os.Exit(1)
	}
}

// Command kenken solves KenKen puzzles read from a text file, either with
// the serial MRV backtracking engine or, when asked for more than one
// worker, the work-stealing parallel driver.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bparr/kenken-solver/internal/grid"
	"github.com/bparr/kenken-solver/internal/kkio"
	"github.com/bparr/kenken-solver/internal/obs"
	"github.com/bparr/kenken-solver/internal/parallel"
	"github.com/bparr/kenken-solver/internal/solver"
)

var (
	workers   int
	showStats bool
	debug     bool
)

// errUsageShown signals that run already printed usage and main should
// exit 0, distinct from a real failure.
var errUsageShown = errors.New("usage shown")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errUsageShown) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kenken <puzzle-file>",
		Short:         "Solve KenKen puzzles by constraint propagation and MRV backtracking",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "number of parallel search workers (0 or 1 runs serial)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print a node-count/elapsed-time line after the solution")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable verbose search logging")
	// Bad-argc usage must print to stdout like --help, not stderr, so point
	// cobra's default UsageFunc (which otherwise writes to OutOrStderr) at
	// stdout explicitly.
	cmd.SetOut(os.Stdout)
	return cmd
}

// parsePositionalWorkers supports the legacy two-argument calling
// convention `kenken <P> <puzzle-file>`, letting a positional argument
// stand in for --workers the way parsePositionalArgsIntoFlags let
// positional args override flag defaults.
func parsePositionalWorkers(args []string) (path string, workerOverride int, ok bool) {
	if len(args) != 2 {
		return "", 0, false
	}
	p, err := strconv.Atoi(args[0])
	if err != nil || p < 1 {
		return "", 0, false
	}
	return args[1], p, true
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return errUsageShown
	}

	path := args[0]
	w := workers
	if file, p, ok := parsePositionalWorkers(args); ok {
		path, w = file, p
	} else if len(args) > 1 {
		_ = cmd.Usage()
		return errUsageShown
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log := obs.New(level, isatty.IsTerminal(os.Stderr.Fd()))

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to read line from input file")
		return err
	}
	defer f.Close()

	spec, err := kkio.Parse(f)
	if err != nil {
		return reportParseError(err)
	}

	g, err := spec.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Malformed constraint in input file")
		return err
	}

	solved, st, ok := solveGrid(cmd.Context(), g, w, log)
	if !ok {
		fmt.Fprintln(os.Stderr, "No solution found")
		return solver.ErrNoSolution
	}

	if err := kkio.WriteSolution(os.Stdout, solved); err != nil {
		return err
	}
	if showStats {
		if err := kkio.WriteStats(os.Stdout, st); err != nil {
			return err
		}
	}
	return nil
}

func solveGrid(ctx context.Context, g *grid.Grid, workers int, log zerolog.Logger) (*grid.Grid, solver.Stats, bool) {
	if workers > 1 {
		d := parallel.NewDriver(g, workers, log)
		return d.Run(ctx)
	}
	ok, st := solver.Solve(g)
	return g, st, ok
}

// reportParseError maps a kkio parse failure onto the exact stderr
// messages and exit behavior demanded of a malformed or oversized input
// file, leaving the underlying error for main's exit-code decision.
func reportParseError(err error) error {
	var sysErr *kkio.SystemError
	if pkgerrors.As(err, &sysErr) {
		fmt.Fprintln(os.Stderr, "Failed to read line from input file")
		return err
	}
	if errors.Is(err, kkio.ErrProblemSizeTooLarge) {
		fmt.Fprintln(os.Stderr, "Problem size too large")
		return err
	}
	fmt.Fprintln(os.Stderr, "Malformed constraint in input file")
	return err
}

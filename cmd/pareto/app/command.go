package app

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	paretov1alpha1 "github.com/mihai-snyk/pareto/apis/pareto/v1alpha1"
	"github.com/mihai-snyk/pareto/pkg/multiobjective"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/benchmarks"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/provider/linear"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/util"
)

// trueFrontPoints is how many points of a known front get plotted.
const trueFrontPoints = 100

// NewParetoCommand creates the root command with its solve and benchmark
// subcommands.
func NewParetoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pareto",
		Short: "Compute Pareto frontiers of multi-objective models",
		Long: `pareto builds a payoff table for a multi-objective model and scalarizes it
with the epsilon-constraint (ecm) or normalized weighted-sum (nwsm) method.
The non-dominated solutions are written as a ParetoFrontier YAML document.`,
		SilenceUsage: true,
	}

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newSolveCommand(), newBenchmarkCommand())
	return cmd
}

func newSolveCommand() *cobra.Command {
	o := NewOptions()
	cmd := &cobra.Command{
		Use:   "solve --problem FILE",
		Short: "Compute the frontier of a linear problem file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.Validate(true); err != nil {
				return err
			}
			problem, err := linear.LoadProblem(o.ProblemFile)
			if err != nil {
				return err
			}
			return run(cmd, o, problem, nil)
		},
	}
	o.AddFlags(cmd.Flags(), true)
	return cmd
}

func newBenchmarkCommand() *cobra.Command {
	o := NewOptions()
	cmd := &cobra.Command{
		Use:   "benchmark NAME",
		Short: "Compute the frontier of a built-in problem with a known front",
		Long:  "Compute the frontier of a built-in problem with a known front. Available: " + benchmarkUsage() + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(false); err != nil {
				return err
			}
			b, err := benchmarks.Get(args[0])
			if err != nil {
				return err
			}
			return run(cmd, o, b.Problem(), b.TrueParetoFront(trueFrontPoints))
		},
	}
	o.AddFlags(cmd.Flags(), false)
	return cmd
}

func run(cmd *cobra.Command, o *Options, problem *linear.Problem, trueFront []framework.ObjectiveSpacePoint) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	logger := klog.FromContext(ctx).WithValues("problem", problem.Name)
	ctx = klog.NewContext(ctx, logger)

	backend, err := linear.New(problem)
	if err != nil {
		return err
	}
	directions := make([]string, len(problem.Objectives))
	for k, obj := range problem.Objectives {
		directions[k] = obj.Direction
	}
	args, err := o.Args(cmd.Flags(), directions)
	if err != nil {
		return err
	}

	m, err := multiobjective.New(ctx, args, backend)
	if err != nil {
		return err
	}
	names := problem.ObjectiveNames()
	spec := m.DocumentSpec(problem.Name, names)

	res, err := m.Run(ctx)
	if err != nil {
		if werr := writeDocument(ctx, cmd.OutOrStdout(), o.Output, multiobjective.FailedDocument(res.RunID, spec, err)); werr != nil {
			logger.Error(werr, "Writing the failed result document")
		}
		return err
	}

	if err := writeDocument(ctx, cmd.OutOrStdout(), o.Output, res.Document(spec)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), summary(res, names))

	plot := util.PlotOptions{
		Title:          fmt.Sprintf("%s frontier of %s", res.Strategy, problem.Name),
		Strategy:       string(res.Strategy),
		ObjectiveNames: names,
		TrueFront:      trueFront,
	}
	if o.PlotHTML != "" {
		if err := util.PlotFrontier(o.PlotHTML, res.Frontier.Points, plot); err != nil {
			return fmt.Errorf("plotting %s: %w", o.PlotHTML, err)
		}
	}
	if o.PlotImage != "" {
		if err := util.SaveFrontierImage(o.PlotImage, res.Frontier.Points, plot); err != nil {
			return fmt.Errorf("plotting %s: %w", o.PlotImage, err)
		}
	}
	return nil
}

func writeDocument(ctx context.Context, stdout io.Writer, path string, doc *paretov1alpha1.ParetoFrontier) error {
	data, err := multiobjective.MarshalDocument(doc)
	if err != nil {
		return err
	}
	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	klog.FromContext(ctx).V(2).Info("Wrote result document", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

func summary(res *multiobjective.Result, names []string) string {
	s := fmt.Sprintf("%s: %s frontier points from %s candidates, %s of %s scalarization solves skipped, took %s",
		res.Strategy,
		humanize.Comma(int64(res.Frontier.Len())),
		humanize.Comma(int64(len(res.Candidates))),
		humanize.Comma(int64(res.Skipped)),
		humanize.Comma(int64(res.Attempted)),
		res.CompletionTime.Sub(res.StartTime).Round(time.Microsecond),
	)
	if len(res.Conflicting) == 0 {
		return s
	}
	pairs := make([]string, len(res.Conflicting))
	for i, p := range res.Conflicting {
		pairs[i] = fmt.Sprintf("%s/%s (%.2f)", names[p[0]], names[p[1]], res.Conflict.At(p[0], p[1]))
	}
	return s + "\nconflicting objectives: " + strings.Join(pairs, ", ")
}

package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/mihai-snyk/pareto/apis/config/v1alpha1"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/benchmarks"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

// Options holds the flags shared by the solve and benchmark commands.
type Options struct {
	// ConfigFile is a MultiObjectiveArgs YAML file. Flags below override it
	// when set explicitly.
	ConfigFile string
	// ProblemFile is a linear problem YAML file; solve only.
	ProblemFile string

	Strategy    string
	Intervals   int
	Seed        uint64
	Parallelism int
	CacheSolves bool

	Output    string
	PlotHTML  string
	PlotImage string
	Timeout   time.Duration
}

func NewOptions() *Options {
	return &Options{
		Strategy:    string(v1alpha1.StrategyEpsilonConstraint),
		Intervals:   v1alpha1.DefaultIntervals,
		Parallelism: v1alpha1.DefaultParallelism,
	}
}

// AddFlags registers the run flags. problem adds --problem.
func (o *Options) AddFlags(fs *pflag.FlagSet, problem bool) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to a MultiObjectiveArgs YAML file.")
	if problem {
		fs.StringVar(&o.ProblemFile, "problem", o.ProblemFile, "Path to the linear problem YAML file.")
	}
	fs.StringVar(&o.Strategy, "strategy", o.Strategy, "Scalarization strategy, ecm or nwsm.")
	fs.IntVar(&o.Intervals, "intervals", o.Intervals, "Grid intervals for ecm, samples minus one for nwsm.")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Seed for nwsm weight sampling. Random when unset.")
	fs.IntVar(&o.Parallelism, "parallelism", o.Parallelism, "Number of solves run at the same time.")
	fs.BoolVar(&o.CacheSolves, "cache-solves", o.CacheSolves, "Memoize identical solves.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Write the result document to this file instead of stdout.")
	fs.StringVar(&o.PlotHTML, "plot-html", o.PlotHTML, "Write an interactive plot of the first two objectives to this HTML file.")
	fs.StringVar(&o.PlotImage, "plot-image", o.PlotImage, "Write a static plot of the first two objectives to this file (png, svg, pdf).")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Abort the run after this long. 0 disables the timeout.")
}

// Validate checks the flag values on their own; the run arguments are
// validated once assembled.
func (o *Options) Validate(problem bool) error {
	var errs []error
	if problem && o.ProblemFile == "" {
		errs = append(errs, fmt.Errorf("--problem is required"))
	}
	if o.Intervals < 1 {
		errs = append(errs, fmt.Errorf("--intervals must be at least 1, got %d", o.Intervals))
	}
	if o.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("--parallelism must be at least 1, got %d", o.Parallelism))
	}
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("--timeout must not be negative"))
	}
	if o.PlotHTML != "" && !strings.EqualFold(filepath.Ext(o.PlotHTML), ".html") {
		errs = append(errs, fmt.Errorf("--plot-html must end in .html, got %q", o.PlotHTML))
	}
	return utilerrors.NewAggregate(errs)
}

// Args assembles the run arguments: the config file if any, then every flag
// the user set explicitly, then directions from the problem when the config
// names none.
func (o *Options) Args(fs *pflag.FlagSet, directions []string) (*v1alpha1.MultiObjectiveArgs, error) {
	args := &v1alpha1.MultiObjectiveArgs{}
	if o.ConfigFile != "" {
		loaded, err := v1alpha1.LoadArgs(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		args = loaded
	}

	override := func(name string) bool {
		return o.ConfigFile == "" || fs.Changed(name)
	}
	if override("strategy") {
		args.Strategy = v1alpha1.ScalarizationStrategy(o.Strategy)
	}
	if override("intervals") {
		args.Intervals = o.Intervals
	}
	if override("parallelism") {
		args.Parallelism = o.Parallelism
	}
	if fs.Changed("seed") {
		seed := o.Seed
		args.Seed = &seed
	}
	if fs.Changed("cache-solves") {
		args.CacheSolves = o.CacheSolves
	}

	if len(args.Directions) == 0 {
		args.Directions = directions
	} else if err := sameDirections(args.Directions, directions); err != nil {
		return nil, err
	}
	v1alpha1.SetDefaults_MultiObjectiveArgs(args)
	return args, nil
}

func sameDirections(config, problem []string) error {
	if len(config) != len(problem) {
		return fmt.Errorf("config has %d directions but the problem has %d objectives", len(config), len(problem))
	}
	for i := range config {
		c, err := framework.ParseDirection(config[i])
		if err != nil {
			return fmt.Errorf("config direction %d: %w", i, err)
		}
		if p, _ := framework.ParseDirection(problem[i]); c != p {
			return fmt.Errorf("config direction %d is %s but the problem says %s", i, c, problem[i])
		}
	}
	return nil
}

// benchmarkUsage lists the benchmarks for the command help.
func benchmarkUsage() string {
	return strings.Join(benchmarks.Names(), ", ")
}

package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/pareto/apis/config/v1alpha1"
	paretov1alpha1 "github.com/mihai-snyk/pareto/apis/pareto/v1alpha1"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

const problemYAML = `
name: plant
variables:
- name: output
  upper: 8
- name: imports
  upper: 9
objectives:
- name: cost
  direction: min
  coefficients: [1, 0]
- name: emissions
  direction: min
  coefficients: [0, 1]
constraints:
- name: demand
  coefficients: [1, 1]
  lower: 10
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewParetoCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func readDocument(t *testing.T, data []byte) *paretov1alpha1.ParetoFrontier {
	t.Helper()
	doc := &paretov1alpha1.ParetoFrontier{}
	require.NoError(t, yaml.Unmarshal(data, doc))
	return doc
}

func TestBenchmarkCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "result.yaml")
	image := filepath.Join(dir, "frontier.png")

	_, stderr, err := execute(t, "benchmark", "biobjective", "--intervals", "7", "--parallelism", "2", "-o", out, "--plot-image", image)
	require.NoError(t, err)
	assert.Contains(t, stderr, "frontier points")
	assert.Contains(t, stderr, "conflicting objectives: f1/f2 (-1.00)")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := readDocument(t, data)
	assert.Equal(t, paretov1alpha1.ParetoFrontierSucceeded, doc.Status.Phase)
	assert.Equal(t, "biobjective", doc.Spec.Problem)
	assert.Equal(t, "ecm", doc.Spec.Strategy)
	assert.GreaterOrEqual(t, doc.Status.FrontierSize, 8)
	assert.Len(t, doc.Status.Points, doc.Status.FrontierSize)
	assert.NotEmpty(t, doc.Name)

	_, err = os.Stat(image)
	assert.NoError(t, err)
}

func TestBenchmarkCommandUnknown(t *testing.T) {
	_, _, err := execute(t, "benchmark", "zdt1")
	assert.Error(t, err)
}

func TestSolveCommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	problem := writeFile(t, dir, "problem.yaml", problemYAML)
	config := writeFile(t, dir, "args.yaml", `
strategy: nwsm
weights: [0.2, 0.8]
saveVariables: true
`)
	html := filepath.Join(dir, "frontier.html")

	stdout, _, err := execute(t, "solve", "--problem", problem, "--config", config, "--plot-html", html)
	require.NoError(t, err)
	doc := readDocument(t, []byte(stdout))
	assert.Equal(t, "nwsm", doc.Spec.Strategy)
	assert.Equal(t, []paretov1alpha1.ObjectiveSpec{
		{Name: "cost", Direction: "minimize"},
		{Name: "emissions", Direction: "minimize"},
	}, doc.Spec.Objectives)
	require.Equal(t, 2, doc.Status.FrontierSize)
	assert.Contains(t, doc.Status.Points[0].Variables, "output")

	_, err = os.Stat(html)
	assert.NoError(t, err)
}

func TestSolveCommandUnsupportedStrategy(t *testing.T) {
	problem := writeFile(t, t.TempDir(), "problem.yaml", problemYAML)
	stdout, _, err := execute(t, "solve", "--problem", problem, "--strategy", "pso")
	require.Error(t, err)
	assert.True(t, errors.Is(err, framework.ErrUnsupportedScalarizationMode), err)
	doc := readDocument(t, []byte(stdout))
	assert.Equal(t, paretov1alpha1.ParetoFrontierFailed, doc.Status.Phase)
	assert.Contains(t, doc.Status.Message, "pso")
	_, idErr := uuid.Parse(doc.Name)
	assert.NoError(t, idErr)
}

func TestSolveCommandRequiresProblem(t *testing.T) {
	_, _, err := execute(t, "solve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--problem")
}

func TestOptionsValidate(t *testing.T) {
	o := NewOptions()
	o.ProblemFile = "p.yaml"
	assert.NoError(t, o.Validate(true))

	o.Intervals = 0
	o.Parallelism = 0
	o.Timeout = -1
	o.PlotHTML = "plot.png"
	err := o.Validate(true)
	require.Error(t, err)
	for _, flag := range []string{"--intervals", "--parallelism", "--timeout", "--plot-html"} {
		assert.Contains(t, err.Error(), flag)
	}
}

func TestOptionsArgs(t *testing.T) {
	config := writeFile(t, t.TempDir(), "args.yaml", `
directions: [minimize, maximize]
strategy: nwsm
intervals: 4
parallelism: 3
`)
	parse := func(flags ...string) (*Options, *pflag.FlagSet) {
		o := NewOptions()
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		o.AddFlags(fs, true)
		require.NoError(t, fs.Parse(flags))
		return o, fs
	}

	o, fs := parse("--config", config, "--intervals", "6")
	args, err := o.Args(fs, []string{"min", "max"})
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.StrategyWeightedSum, args.Strategy)
	assert.Equal(t, 6, args.Intervals)
	assert.Equal(t, 3, args.Parallelism)
	assert.Nil(t, args.Seed)

	o, fs = parse("--seed", "9")
	args, err = o.Args(fs, []string{"min", "max"})
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.StrategyEpsilonConstraint, args.Strategy)
	assert.Equal(t, []string{"min", "max"}, args.Directions)
	assert.Equal(t, uint64(9), *args.Seed)
	assert.Equal(t, v1alpha1.Kind, args.Kind)

	o, fs = parse("--config", config)
	_, err = o.Args(fs, []string{"max", "max"})
	assert.Error(t, err)
	_, err = o.Args(fs, []string{"min", "max", "min"})
	assert.Error(t, err)
}

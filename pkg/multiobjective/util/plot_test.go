package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

var frontier = []framework.ObjectiveSpacePoint{{1, 9}, {4.5, 5.5}, {8, 2}}

func TestPlotFrontier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontier.html")
	err := PlotFrontier(path, frontier, PlotOptions{
		Title:          "biobjective",
		Strategy:       "ecm",
		ObjectiveNames: []string{"cost", "emissions"},
		TrueFront:      []framework.ObjectiveSpacePoint{{1, 9}, {8, 2}},
	})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "ecm frontier"))
	assert.True(t, strings.Contains(string(data), "emissions"))
}

func TestSaveFrontierImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveFrontierImage(filepath.Join(dir, "frontier.png"), frontier, PlotOptions{Strategy: "nwsm"}))
	require.NoError(t, SaveFrontierImage(filepath.Join(dir, "noext"), frontier, PlotOptions{Strategy: "nwsm"}))

	info, err := os.Stat(filepath.Join(dir, "frontier.png"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	_, err = os.Stat(filepath.Join(dir, "noext.png"))
	assert.NoError(t, err)
}

func TestPlotRejectsUnplottable(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, PlotFrontier(filepath.Join(dir, "a.html"), nil, PlotOptions{}))
	assert.Error(t, SaveFrontierImage(filepath.Join(dir, "b.png"), []framework.ObjectiveSpacePoint{{1}}, PlotOptions{}))
}

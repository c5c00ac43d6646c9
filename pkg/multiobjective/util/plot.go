package util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
)

// PlotOptions describes a frontier plot. Only the first two objectives are
// drawn.
type PlotOptions struct {
	Title string
	// Strategy labels the frontier series, e.g. "ecm".
	Strategy string
	// ObjectiveNames label the axes; f1(x) and f2(x) are used when unset.
	ObjectiveNames []string
	// TrueFront, when set, is drawn next to the frontier.
	TrueFront []framework.ObjectiveSpacePoint
}

func (o PlotOptions) axisNames() (string, string) {
	x, y := "f1(x)", "f2(x)"
	if len(o.ObjectiveNames) >= 2 {
		x, y = o.ObjectiveNames[0], o.ObjectiveNames[1]
	}
	return x, y
}

func checkPlottable(points []framework.ObjectiveSpacePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("frontier is empty")
	}
	if len(points[0]) < 2 {
		return fmt.Errorf("need at least 2 objectives to plot, got %d", len(points[0]))
	}
	return nil
}

// PlotFrontier renders an interactive scatter plot of the frontier, and of
// the true Pareto front if known, to an HTML file at path.
func PlotFrontier(path string, points []framework.ObjectiveSpacePoint, o PlotOptions) error {
	if err := checkPlottable(points); err != nil {
		return err
	}
	xName, yName := o.axisNames()

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: o.Title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xName,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: yName,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if len(o.TrueFront) > 0 {
		trueX := make([]opts.ScatterData, len(o.TrueFront))
		for i, p := range o.TrueFront {
			trueX[i] = opts.ScatterData{
				Value:      []float64{p[0], p[1]},
				Symbol:     "circle",
				SymbolSize: 6,
			}
		}
		scatter.AddSeries("True Pareto Front", trueX)
	}

	foundX := make([]opts.ScatterData, len(points))
	for i, p := range points {
		foundX[i] = opts.ScatterData{
			Value:      []float64{p[0], p[1]},
			Symbol:     "triangle",
			SymbolSize: 10,
		}
	}
	scatter.AddSeries(fmt.Sprintf("%s frontier", o.Strategy), foundX).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}

// SaveFrontierImage draws the same plot as PlotFrontier into a static image.
// The format follows the extension of path (png, svg, pdf, ...).
func SaveFrontierImage(path string, points []framework.ObjectiveSpacePoint, o PlotOptions) error {
	if err := checkPlottable(points); err != nil {
		return err
	}
	xName, yName := o.axisNames()

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = xName
	p.Y.Label.Text = yName
	p.Add(plotter.NewGrid())

	if len(o.TrueFront) > 0 {
		s, err := plotter.NewScatter(toXYs(o.TrueFront))
		if err != nil {
			return err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = plotutil.Color(0)
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add("True Pareto Front", s)
	}

	s, err := plotter.NewScatter(toXYs(points))
	if err != nil {
		return err
	}
	s.GlyphStyle.Shape = draw.TriangleGlyph{}
	s.GlyphStyle.Color = plotutil.Color(1)
	s.GlyphStyle.Radius = vg.Points(4)
	p.Add(s)
	p.Legend.Add(fmt.Sprintf("%s frontier", o.Strategy), s)

	if filepath.Ext(path) == "" {
		path += ".png"
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

func toXYs(points []framework.ObjectiveSpacePoint) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i].X = p[0]
		xys[i].Y = p[1]
	}
	return xys
}

package chart

import (
	"context"
	"image/color"
	"os"
	"path/filepath"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/ebse-lab/sevscope/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// topStatusCount bounds how many statuses the status figure compares.
const topStatusCount = 5

// groupSpan is the width every severity group of a grouped bar chart
// occupies; each series bar takes an equal share of it.
const groupSpan = vg.Length(110)

// Renderer draws the analysis figures as PNG files. The severity taxonomy
// fixes the bar order, and levels missing from the data are drawn with
// zero height rather than dropped.
type Renderer struct {
	dir        string
	severities *model.SeverityConfig
	printer    *message.Printer
}

// NewRenderer creates a renderer that writes figures into dir
func NewRenderer(dir string, severities *model.SeverityConfig) *Renderer {
	return &Renderer{
		dir:        dir,
		severities: severities,
		printer:    message.NewPrinter(language.English),
	}
}

// Dir returns the directory figures are written to
func (r *Renderer) Dir() string {
	return r.dir
}

// SeverityDistribution draws the severity frequency bar chart with a count
// label above every bar.
func (r *Renderer) SeverityDistribution(ctx context.Context, dist *model.Distribution) (string, error) {
	p := r.newPlot("Distribution of Bug Severity Levels", "Severity Level", "Number of Issues")

	labels := r.severities.Labels()
	values := make(plotter.Values, len(labels))
	names := make([]string, len(labels))
	for i, label := range labels {
		values[i] = float64(dist.CountFor(label))
		names[i] = string(label)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(80))
	if err != nil {
		return "", goerr.Wrap(err, "failed to build severity bars")
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(yGrid(), bars)
	p.NominalX(names...)

	if err := r.addBarLabels(p, values); err != nil {
		return "", err
	}

	return r.save(ctx, p, 10*vg.Inch, 6*vg.Inch, model.FigureSeverityDistribution)
}

// SeverityByStatus draws severity against the most frequent statuses as
// grouped bars.
func (r *Renderer) SeverityByStatus(ctx context.Context, ct *model.CrossTab) (string, error) {
	p := r.newPlot("Severity Distribution by Status (Top 5 Statuses)", "Severity Level", "Number of Issues")

	if err := r.groupedBars(p, ct.TopColumns(topStatusCount)); err != nil {
		return "", err
	}

	return r.save(ctx, p, 12*vg.Inch, 7*vg.Inch, model.FigureSeverityVsStatus)
}

// SeverityByProject draws severity against the grouped projects, columns
// ordered by descending total with the catch-all bucket last.
func (r *Renderer) SeverityByProject(ctx context.Context, ct *model.CrossTab) (string, error) {
	p := r.newPlot("Severity Distribution by Project (Top 10 Projects)", "Severity Level", "Number of Issues")

	cols := ct.ColumnsByTotal()
	for i, col := range cols {
		if col == model.LabelOther {
			cols = append(append(cols[:i:i], cols[i+1:]...), model.LabelOther)
			break
		}
	}

	if err := r.groupedBars(p, ct.Select(cols)); err != nil {
		return "", err
	}

	return r.save(ctx, p, 12*vg.Inch, 7*vg.Inch, model.FigureSeverityVsProject)
}

// DescLengthBox draws one box per severity level present in the samples
func (r *Renderer) DescLengthBox(ctx context.Context, samples []model.LengthSample) (string, error) {
	p := r.newPlot("Description Length Distribution by Severity Level", "Severity Level", "Description Length (characters)")

	var names []string
	pos := 0.0
	for _, label := range r.severities.Labels() {
		values, ok := sampleFor(samples, label)
		if !ok || len(values) == 0 {
			continue
		}

		box, err := plotter.NewBoxPlot(vg.Points(30), pos, plotter.Values(values))
		if err != nil {
			return "", goerr.Wrap(err, "failed to build boxplot",
				goerr.V("severity", label))
		}
		box.FillColor = plotutil.Color(0)
		p.Add(box)
		names = append(names, string(label))
		pos++
	}
	if len(names) == 0 {
		return "", goerr.New("no length samples to draw")
	}

	p.Add(yGrid())
	p.NominalX(names...)

	return r.save(ctx, p, 10*vg.Inch, 6*vg.Inch, model.FigureDescLength)
}

// newPlot creates a plot with the shared typography of all figures
func (r *Renderer) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	return p
}

// groupedBars adds one bar series per cross-tab column, side by side and
// centered on each severity tick, with a legend entry per column.
func (r *Renderer) groupedBars(p *plot.Plot, ct *model.CrossTab) error {
	labels := r.severities.Labels()
	names := make([]string, len(labels))
	for i, label := range labels {
		names[i] = string(label)
	}

	series := len(ct.ColNames)
	if series == 0 {
		return goerr.New("cross-tabulation has no columns")
	}
	width := groupSpan / vg.Length(series)

	for j, col := range ct.ColNames {
		values := make(plotter.Values, len(labels))
		for i, label := range labels {
			values[i] = float64(ct.Cell(string(label), col))
		}

		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return goerr.Wrap(err, "failed to build bar series",
				goerr.V("column", col))
		}
		bars.Color = plotutil.Color(j)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = width * vg.Length(float64(j)-float64(series-1)/2)

		p.Add(bars)
		p.Legend.Add(col, bars)
	}

	p.Add(yGrid())
	p.NominalX(names...)
	p.Legend.Top = true
	return nil
}

// addBarLabels writes each bar's count above it
func (r *Renderer) addBarLabels(p *plot.Plot, values plotter.Values) error {
	xys := make(plotter.XYs, len(values))
	texts := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		texts[i] = r.printer.Sprintf("%d", int(v))
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return goerr.Wrap(err, "failed to build bar labels")
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YBottom
	}

	p.Add(labels)
	return nil
}

// save writes the plot as a PNG under the figures directory, creating the
// directory on first use and overwriting any previous figure.
func (r *Renderer) save(ctx context.Context, p *plot.Plot, w, h vg.Length, name string) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create figures directory",
			goerr.V("dir", r.dir))
	}

	path := filepath.Join(r.dir, name)
	if err := p.Save(w, h, path); err != nil {
		return "", goerr.Wrap(err, "failed to save figure",
			goerr.V("path", path))
	}

	ctxlog.From(ctx).Debug("Figure rendered", "path", path)
	return path, nil
}

func sampleFor(samples []model.LengthSample, label types.SeverityLabel) ([]float64, bool) {
	for _, s := range samples {
		if s.Label == label {
			return s.Values, true
		}
	}
	return nil, false
}

// yGrid builds a grid with horizontal lines only
func yGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.Gray{Y: 200}
	return grid
}

package bff

import (
	"fmt"
	"math"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// History holds per-metric training curves by name, one value per
// epoch: "loss" and "val_loss", plus any extra metric such as "acc"
// and its "val_acc" counterpart.
type History map[string][]float64

const (
	panelWidth  = 6 * vg.Inch
	panelHeight = 4 * vg.Inch
)

// HistoryPlot renders training curves. The loss panel is always drawn;
// configuring a metric adds a second panel beside it. Training and
// validation curves share a panel, with the final value of each curve
// in its legend label.
type HistoryPlot struct {
	history History
	metric  string
	title   string
}

// NewHistoryPlot creates a plot of the given training history.
func NewHistoryPlot(history History) *HistoryPlot {
	return &HistoryPlot{
		history: history,
		title:   "Model history",
	}
}

// WithMetric adds a second panel for the named metric. The history must
// hold a curve under exactly this name; a "val_"+metric curve is drawn
// with it when present.
func (p *HistoryPlot) WithMetric(metric string) *HistoryPlot {
	p.metric = metric
	return p
}

// WithTitle replaces the default title of single-panel output.
func (p *HistoryPlot) WithTitle(title string) *HistoryPlot {
	p.title = title
	return p
}

// Save renders the plot to path. Single-panel output infers the format
// from the extension; two-panel output is always written as PNG.
func (p *HistoryPlot) Save(path string) error {
	loss, err := p.panel("loss", "Loss")
	if err != nil {
		return err
	}

	if p.metric == "" {
		loss.Title.Text = p.title
		return loss.Save(panelWidth, panelHeight, path)
	}

	metric, err := p.panel(p.metric, p.metric)
	if err != nil {
		return err
	}
	return renderTiles([][]*plot.Plot{{loss, metric}}, path)
}

// panel builds one panel holding the named curve and, when present, its
// "val_" counterpart.
func (p *HistoryPlot) panel(key, label string) (*plot.Plot, error) {
	train, ok := p.history[key]
	if !ok || len(train) == 0 {
		return nil, fmt.Errorf("history has no %q curve", key)
	}

	pl := plot.New()
	pl.Title.Text = "Model " + key
	pl.X.Label.Text = "Epoch"
	pl.Y.Label.Text = label
	pl.Legend.Top = true

	line, err := curveLine(train)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(0)
	pl.Add(line)
	pl.Legend.Add(fmt.Sprintf("Training %s: %.3f", key, train[len(train)-1]), line)

	if val, ok := p.history["val_"+key]; ok && len(val) > 0 {
		valLine, err := curveLine(val)
		if err != nil {
			return nil, err
		}
		valLine.Color = plotutil.Color(1)
		valLine.Dashes = plotutil.Dashes(1)
		pl.Add(valLine)
		pl.Legend.Add(fmt.Sprintf("Validation %s: %.3f", key, val[len(val)-1]), valLine)
	}
	return pl, nil
}

// curveLine plots values against epochs numbered from one.
func curveLine(values []float64) (*plotter.Line, error) {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i].X = float64(i + 1)
		xys[i].Y = v
	}
	return plotter.NewLine(xys)
}

// SeriesPlot renders a time series as a line, optionally marking its
// peaks.
type SeriesPlot struct {
	timestamps []time.Time
	values     []float64
	title      string
	xLabel     string
	yLabel     string
	markPeaks  bool
	peakOrder  int
}

// NewSeriesPlot creates a plot of values over timestamps. Both slices
// must have the same length.
func NewSeriesPlot(timestamps []time.Time, values []float64) *SeriesPlot {
	return &SeriesPlot{
		timestamps: timestamps,
		values:     values,
		title:      "Series",
		xLabel:     "Time",
		yLabel:     "Value",
		peakOrder:  DefaultPeakOrder,
	}
}

// WithTitle replaces the default title.
func (p *SeriesPlot) WithTitle(title string) *SeriesPlot {
	p.title = title
	return p
}

// WithLabels replaces the axis labels.
func (p *SeriesPlot) WithLabels(x, y string) *SeriesPlot {
	p.xLabel = x
	p.yLabel = y
	return p
}

// WithPeaks overlays markers on the local maxima found with the given
// order, as in Peaks.
func (p *SeriesPlot) WithPeaks(order int) *SeriesPlot {
	p.markPeaks = true
	p.peakOrder = order
	return p
}

// Save renders the plot to path, inferring the format from the
// extension.
func (p *SeriesPlot) Save(path string) error {
	if len(p.timestamps) != len(p.values) {
		return fmt.Errorf("timestamps and values must have the same length, got %d and %d", len(p.timestamps), len(p.values))
	}

	pl := plot.New()
	pl.Title.Text = p.title
	pl.X.Label.Text = p.xLabel
	pl.Y.Label.Text = p.yLabel
	pl.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02\n15:04"}

	xys := make(plotter.XYs, len(p.values))
	for i, v := range p.values {
		xys[i].X = float64(p.timestamps[i].Unix())
		xys[i].Y = v
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	pl.Add(line)

	if p.markPeaks {
		peakTimes, peakValues, err := Peaks(p.timestamps, p.values, p.peakOrder)
		if err != nil {
			return err
		}
		if len(peakValues) > 0 {
			marks := make(plotter.XYs, len(peakValues))
			for i, v := range peakValues {
				marks[i].X = float64(peakTimes[i].Unix())
				marks[i].Y = v
			}
			scatter, err := plotter.NewScatter(marks)
			if err != nil {
				return err
			}
			scatter.GlyphStyle.Color = plotutil.Color(1)
			scatter.GlyphStyle.Radius = vg.Points(3)
			pl.Add(scatter)
			pl.Legend.Add("peaks", scatter)
		}
	}

	return pl.Save(panelWidth, panelHeight, path)
}

// SquareGrid returns the smallest square layout holding n panels.
func SquareGrid(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	side := int(math.Ceil(math.Sqrt(float64(n))))
	return side, side
}

// SavePlotGrid lays the plots out on the smallest square grid and
// writes them to path as PNG.
func SavePlotGrid(plots []*plot.Plot, path string) error {
	if len(plots) == 0 {
		return fmt.Errorf("no plots to save")
	}

	rows, cols := SquareGrid(len(plots))
	grid := make([][]*plot.Plot, rows)
	for i := range grid {
		grid[i] = make([]*plot.Plot, cols)
		for j := range grid[i] {
			if idx := i*cols + j; idx < len(plots) {
				grid[i][j] = plots[idx]
			}
		}
	}
	return renderTiles(grid, path)
}

// renderTiles draws a grid of plots onto one PNG canvas.
func renderTiles(grid [][]*plot.Plot, path string) error {
	rows := len(grid)
	cols := 0
	for _, row := range grid {
		cols = max(cols, len(row))
	}

	img := vgimg.New(vg.Length(cols)*panelWidth, vg.Length(rows)*panelHeight)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}

	canvases := plot.Align(grid, tiles, draw.New(img))
	for i, row := range grid {
		for j, pl := range row {
			if pl != nil {
				pl.Draw(canvases[i][j])
			}
		}
	}

	w, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

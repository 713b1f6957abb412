package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/statloom-cli/internal/utils"
)

// Options controls PNG output.
type Options struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
	// Bins is the histogram bin count. If <= 0, 50 is used.
	Bins int
}

// DefaultOptions writes 6x4 inch charts into ./charts.
func DefaultOptions() Options {
	return Options{
		Dir:    "charts",
		Width:  6 * vg.Inch,
		Height: 4 * vg.Inch,
		Bins:   50,
	}
}

// PNG renders every chart to <Dir>/<slug(title)>.png.
type PNG struct {
	opt   Options
	files []string
}

// NewPNG creates the output directory and returns a renderer writing into it.
func NewPNG(opt Options) (*PNG, error) {
	d := DefaultOptions()
	if opt.Dir == "" {
		opt.Dir = d.Dir
	}
	if opt.Width <= 0 {
		opt.Width = d.Width
	}
	if opt.Height <= 0 {
		opt.Height = d.Height
	}
	if opt.Bins <= 0 {
		opt.Bins = d.Bins
	}
	if err := utils.EnsureDir(opt.Dir); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &PNG{opt: opt}, nil
}

// Files lists the charts written so far, in order.
func (r *PNG) Files() []string {
	out := make([]string, len(r.files))
	copy(out, r.files)
	return out
}

func (r *PNG) Histogram(values []float64, title, xLabel string) error {
	if len(values) == 0 {
		return fmt.Errorf("histogram %q: %w", title, ErrNoData)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(values), r.opt.Bins)
	if err != nil {
		return fmt.Errorf("histogram %q: %w", title, err)
	}
	h.FillColor = color.RGBA{R: 66, G: 114, B: 196, A: 255}
	p.Add(h)
	return r.save(p, title)
}

// Scatter pairs x[i] with y[i] up to the shorter of the two sequences.
func (r *PNG) Scatter(x, y []float64, title, xLabel, yLabel string) error {
	n := min(len(x), len(y))
	if n == 0 {
		return fmt.Errorf("scatter %q: %w", title, ErrNoData)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scatter %q: %w", title, err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2)
	s.GlyphStyle.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(s)
	p.Legend.Add(title, s)
	p.Legend.Top = true
	return r.save(p, title)
}

func (r *PNG) LineComparison(title string, a, b Triplet, labels [3]string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Statistic"
	p.Y.Label.Text = "Value"
	p.Legend.Top = true

	for i, t := range []Triplet{a, b} {
		pts := make(plotter.XYs, len(t.Values))
		for j, v := range t.Values {
			pts[j].X = float64(j)
			pts[j].Y = v
		}
		l, s, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("line comparison %q: series %q: %w", title, t.Name, err)
		}
		l.Color = plotutil.Color(i)
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(l, s)
		p.Legend.Add(t.Name, l, s)
	}
	p.NominalX(labels[:]...)
	return r.save(p, title)
}

func (r *PNG) save(p *plot.Plot, title string) error {
	wt, err := p.WriterTo(r.opt.Width, r.opt.Height, "png")
	if err != nil {
		return fmt.Errorf("encode %q: %w", title, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode %q: %w", title, err)
	}
	path := filepath.Join(r.opt.Dir, utils.Slug(title, "chart")+".png")
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	r.files = append(r.files, path)
	return nil
}

package visualize

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/housing/pkg/errors"
	"github.com/YuminosukeSato/housing/pkg/log"
)

// ScatterRenderer draws a Scatter somewhere.
type ScatterRenderer interface {
	Render(s Scatter) error
}

// Default canvas size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

var formats = []string{"png", "svg", "pdf", "jpg", "jpeg", "eps", "tif", "tiff"}

// Format returns the image format implied by the extension of path.
func Format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !slices.Contains(formats, ext) {
		return "", errors.NewValidationError("plot.path", "unsupported image format, want one of "+strings.Join(formats, ", "), path)
	}
	return ext, nil
}

// PlotRenderer renders a Scatter with gonum/plot into an image file whose
// format follows the extension of Path.
type PlotRenderer struct {
	Path   string
	Width  vg.Length // zero means DefaultWidth
	Height vg.Length // zero means DefaultHeight
	Logger log.Logger
}

var _ ScatterRenderer = (*PlotRenderer)(nil)

func (r *PlotRenderer) size() (vg.Length, vg.Length) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Render writes s to r.Path.
func (r *PlotRenderer) Render(s Scatter) error {
	const op = "PlotRenderer.Render"
	start := time.Now()

	if _, err := Format(r.Path); err != nil {
		return err
	}
	p, err := NewPlot(s)
	if err != nil {
		return err
	}
	w, h := r.size()
	if err := errors.SafeExecute(op, func() error {
		return p.Save(w, h, r.Path)
	}); err != nil {
		return errors.Wrapf(err, "%s %s", op, r.Path)
	}

	logger := r.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	logger.Info("plot written",
		log.ComponentKey, "visualize",
		log.OperationKey, log.OperationRender,
		log.PathKey, r.Path,
		log.SamplesKey, s.Len(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// WriteTo renders s in the given format ("png", "svg", ...) to out.
func (r *PlotRenderer) WriteTo(out io.Writer, s Scatter, format string) error {
	const op = "PlotRenderer.WriteTo"

	p, err := NewPlot(s)
	if err != nil {
		return err
	}
	w, h := r.size()
	return errors.SafeExecute(op, func() error {
		wt, err := p.WriterTo(w, h, format)
		if err != nil {
			return errors.Wrapf(err, "%s %s", op, format)
		}
		_, err = wt.WriteTo(out)
		return errors.WithStack(err)
	})
}

// NewPlot builds the plot for s: one scatter series per group, colored with
// plotutil's palette and listed in the legend.
func NewPlot(s Scatter) (p *plot.Plot, err error) {
	defer errors.Recover(&err, "visualize.NewPlot")

	if err := s.Validate(); err != nil {
		return nil, err
	}

	p = plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	byGroup := lo.GroupBy(lo.Range(s.Len()), func(i int) int { return s.Groups[i] })
	groups := lo.Keys(byGroup)
	slices.Sort(groups)

	for i, g := range groups {
		idx := byGroup[g]
		xys := make(plotter.XYs, len(idx))
		for j, k := range idx {
			xys[j].X = s.X[k]
			xys[j].Y = s.Y[k]
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "visualize.NewPlot %s", GroupName(g))
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
		p.Legend.Add(GroupName(g), sc)
	}
	return p, nil
}

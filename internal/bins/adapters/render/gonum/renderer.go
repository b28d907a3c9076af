package gonum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"photon-bins/internal/bins/core/domain"
	"photon-bins/internal/bins/core/ports"
	"photon-bins/internal/bins/core/usecase"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Formats lists the image formats understood by draw.NewFormattedCanvas.
var Formats = []string{"eps", "jpg", "jpeg", "pdf", "png", "svg", "tif", "tiff"}

const (
	defaultWidth     = 28 * vg.Centimeter
	defaultRowHeight = 3 * vg.Centimeter
)

// FormatterFunc builds the bottom-axis label formatter for a layout.
type FormatterFunc func(rows int, rowWidth float64) ports.TickLabelFormatter

func rowOffsetFormatter(rows int, rowWidth float64) ports.TickLabelFormatter {
	return usecase.RowOffsetFormatter{Rows: rows, RowWidth: rowWidth}
}

// Renderer draws a Plot as a stack of aligned panels, one per row.
type Renderer struct {
	format    string
	width     vg.Length
	rowHeight vg.Length
	formatter FormatterFunc
}

type Option func(*Renderer)

func WithSize(width, rowHeight vg.Length) Option {
	return func(r *Renderer) {
		r.width, r.rowHeight = width, rowHeight
	}
}

func WithFormatter(f FormatterFunc) Option {
	return func(r *Renderer) { r.formatter = f }
}

func New(format string, opts ...Option) (*Renderer, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if !Supports(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	r := &Renderer{
		format:    format,
		width:     defaultWidth,
		rowHeight: defaultRowHeight,
		formatter: rowOffsetFormatter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func Supports(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func (r *Renderer) Format() string { return r.format }

func (r *Renderer) Render(ctx context.Context, p *domain.Plot, w io.Writer) error {
	if len(p.Rows) == 0 {
		return errors.New("plot has no rows")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	formatter := r.formatter(len(p.Rows), p.RowWidth)
	panels := make([][]*plot.Plot, len(p.Rows))
	for i, row := range p.Rows {
		panel, err := r.rowPanel(p, row, formatter)
		if err != nil {
			return fmt.Errorf("row %d: %w", row.Index, err)
		}
		panels[i] = []*plot.Plot{panel}
	}

	c, err := draw.NewFormattedCanvas(r.width, r.rowHeight*vg.Length(len(p.Rows)), r.format)
	if err != nil {
		return err
	}
	tiles := draw.Tiles{
		Rows:      len(p.Rows),
		Cols:      1,
		PadTop:    vg.Millimeter,
		PadBottom: vg.Millimeter,
		PadLeft:   vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(panels, tiles, draw.New(c))
	for i := range panels {
		panels[i][0].Draw(canvases[i][0])
	}

	_, err = c.WriteTo(w)
	return err
}

func (r *Renderer) rowPanel(p *domain.Plot, row domain.Row, formatter ports.TickLabelFormatter) (*plot.Plot, error) {
	last := len(p.Rows) - 1
	panel := plot.New()

	switch row.Index {
	case last:
		panel.X.Tick.Marker = offsetTicker{base: plot.DefaultTicks{}, formatter: formatter}
		panel.X.Label.Text = "time (s)  " + formatter.OffsetText()
	default:
		panel.X.Tick.Marker = blankTicker{base: plot.DefaultTicks{}}
	}
	if row.Index == 0 {
		panel.Title.Text = Title(p)
	}
	if row.Index == len(p.Rows)/2 {
		panel.Y.Label.Text = "counts / bin"
	}

	for ci, s := range row.Series {
		style := plotutil.Color(ci)
		for _, seg := range segments(s.Bins, p.BinWidth) {
			pts := make(plotter.XYs, 0, len(seg)+1)
			for _, b := range seg {
				pts = append(pts, plotter.XY{X: domain.Seconds(b.Start, p.Jiffy) - row.Window.Start, Y: float64(b.Count)})
			}
			// Close the final step at the end of its bin.
			end := seg[len(seg)-1]
			pts = append(pts, plotter.XY{X: domain.Seconds(end.Start+p.BinWidth, p.Jiffy) - row.Window.Start, Y: float64(end.Count)})

			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, err
			}
			line.StepStyle = plotter.PostStep
			line.LineStyle.Color = style
			line.LineStyle.Width = vg.Points(0.8)
			panel.Add(line)
		}
		if row.Index == 0 {
			thumb := &plotter.Line{}
			thumb.LineStyle.Color = style
			thumb.LineStyle.Width = vg.Points(2)
			panel.Legend.Add(s.Channel.Label, thumb)
		}
	}
	panel.Legend.Top = true

	// Fixed after Add, which widens the axes to the data; lines are clipped.
	panel.X.Min, panel.X.Max = 0, p.RowWidth
	panel.Y.Min, panel.Y.Max = 0, p.YMax

	return panel, nil
}

// segments splits bins wherever consecutive starts are more than one width
// apart, so no line bridges a hole.
func segments(bins []domain.Bin, width domain.Tick) [][]domain.Bin {
	if len(bins) == 0 {
		return nil
	}
	var out [][]domain.Bin
	start := 0
	for i := 1; i <= len(bins); i++ {
		if i == len(bins) || bins[i].Start-bins[i-1].Start != width {
			out = append(out, bins[start:i])
			start = i
		}
	}
	return out
}

// Title names the source and the bin width in milliseconds.
func Title(p *domain.Plot) string {
	ms := strconv.FormatFloat(p.BinWidthSeconds*1000, 'g', 6, 64)
	return fmt.Sprintf("%s (bin width %s ms)", p.Source, ms)
}

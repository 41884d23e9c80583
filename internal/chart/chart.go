// Package chart draws vesting series as a line chart.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/ArowuTest/rsu-vesting/internal/models"
)

// Supported formats
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Default canvas size, a 10x5 inch figure.
var (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// ContentType returns the MIME type of a chart format.
func ContentType(format string) string {
	if format == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Render draws one line per series with a legend and grid. Award lines use
// the default palette; the total line is black.
func Render(w io.Writer, data *models.ChartData, format string) error {
	if format != FormatSVG && format != FormatPNG {
		return fmt.Errorf("unsupported chart format %q", format)
	}

	p := plot.New()
	p.Title.Text = "RSUs"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Vested"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	palette := 0
	for _, s := range data.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = float64(pt.Date.Unix())
			xys[i].Y = pt.Value
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Width = vg.Points(1.5)
		if s.Total {
			line.Color = color.Black
		} else {
			line.Color = plotutil.Color(palette)
			palette++
		}
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

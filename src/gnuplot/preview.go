package gnuplot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vijay-owncfd/gnuplot-gui/src/datafile"
)

// previewPalette cycles through series colors the same way for every render so
// a series keeps its color across transient refreshes.
var previewPalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorAlternateGray,
	chart.ColorCyan,
}

// previewStyle maps a gnuplot plot style onto a go-chart series style.
func previewStyle(plotStyle string, col drawing.Color, secondary bool) chart.Style {
	st := chart.Style{StrokeColor: col, StrokeWidth: 1.5}
	switch plotStyle {
	case "points", "impulses":
		st = chart.Style{StrokeWidth: 0, DotWidth: 4, DotColor: col}
	case "dots":
		st = chart.Style{StrokeWidth: 0, DotWidth: 2, DotColor: col}
	case "linespoints":
		st = chart.Style{StrokeColor: col, StrokeWidth: 1.5, DotWidth: 3, DotColor: col}
	}
	if secondary {
		st.StrokeDashArray = []float64{4, 3}
	}
	return st
}

// Preview draws the visible datasets with go-chart. It is the fallback path
// for machines without a gnuplot binary: no secondary tics, no margins, no
// aspect lock, but the data itself is shown with the selected scales.
func Preview(datasets []Dataset, opt Options, width, height int) (image.Image, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	var series []chart.Series
	haveY2 := false
	ci := 0
	for _, ds := range datasets {
		if !ds.Visible {
			continue
		}
		xs, ys, err := datafile.ReadColumns(ds.File, ds.XCol, ds.YCol, ds.Clean)
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			continue
		}
		// go-chart requires at least two X values per series
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		secondary := ds.Axis == "y2"
		if secondary {
			haveY2 = true
		}
		cs := chart.ContinuousSeries{
			Name:    ds.Title,
			XValues: xs,
			YValues: ys,
			Style:   previewStyle(ds.Style, previewPalette[ci%len(previewPalette)], secondary),
		}
		if secondary {
			cs.YAxis = chart.YAxisSecondary
		}
		series = append(series, cs)
		ci++
	}
	if len(series) == 0 {
		return nil, ErrNoVisibleDatasets
	}

	if width < 100 {
		width = 100
	}
	if height < 60 {
		height = 60
	}
	ch := chart.Chart{
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: opt.XLabel},
		YAxis:  chart.YAxis{Name: opt.YLabel},
		Series: series,
	}
	if opt.XLog {
		ch.XAxis.Range = &chart.LogarithmicRange{}
	}
	if opt.YLog {
		ch.YAxis.Range = &chart.LogarithmicRange{}
	}
	if haveY2 {
		ch.YAxisSecondary = chart.YAxis{Name: opt.Y2Label}
		if opt.Y2Log {
			ch.YAxisSecondary.Range = &chart.LogarithmicRange{}
		}
	}
	if r, ok := manualRange(opt.XRange); ok {
		ch.XAxis.Range = mergeRange(ch.XAxis.Range, r)
	}
	if r, ok := manualRange(opt.YRange); ok {
		ch.YAxis.Range = mergeRange(ch.YAxis.Range, r)
	}
	if r, ok := manualRange(opt.Y2Range); ok && haveY2 {
		ch.YAxisSecondary.Range = mergeRange(ch.YAxisSecondary.Range, r)
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("preview render: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("preview decode: %w", err)
	}
	return drawBadge(img, "preview – gnuplot not found"), nil
}

// manualRange converts a validated manual AxisRange into chart min/max.
func manualRange(r AxisRange) (*chart.ContinuousRange, bool) {
	if !r.Manual || strings.TrimSpace(r.Min) == "" || strings.TrimSpace(r.Max) == "" {
		return nil, false
	}
	var min, max float64
	if _, err := fmt.Sscanf(strings.TrimSpace(r.Min), "%g", &min); err != nil {
		return nil, false
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(r.Max), "%g", &max); err != nil {
		return nil, false
	}
	return &chart.ContinuousRange{Min: min, Max: max}, true
}

// mergeRange applies manual bounds onto a log range when both are requested.
func mergeRange(existing chart.Range, manual *chart.ContinuousRange) chart.Range {
	if lr, ok := existing.(*chart.LogarithmicRange); ok {
		lr.Min = manual.Min
		lr.Max = manual.Max
		return lr
	}
	return manual
}

// drawBadge stamps a small label near the bottom-left so a fallback preview
// is never mistaken for gnuplot output.
func drawBadge(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 4
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

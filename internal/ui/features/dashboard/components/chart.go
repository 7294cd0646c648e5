package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/present"
	"github.com/leapstack-labs/benchboard/internal/theme"
)

// Chart geometry, in SVG user units.
const (
	chartWidth   = 800
	chartHeight  = 320
	plotLeft     = 48.0
	plotRight    = 780.0
	plotTop      = 10.0
	plotBottom   = 240.0
	maxBarWidth  = 60.0
	legendY      = 300.0
	legendSwatch = 12.0
)

// Chart renders the grouped score bar chart: one group per score category,
// one bar per model. Grid, tick, and legend colors follow the theme in ctx.
func Chart(ds *dataset.Dataset, colors []present.Color) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		style := present.StyleFor(theme.FromContext(ctx).Mode())
		groups := present.Chart(ds, colors)

		w.rawf(`<div id="%s" class="panel chart"><h2>Score Comparison</h2>`, ChartID)
		w.rawf(`<svg viewBox="0 0 %d %d" role="img" aria-label="Score comparison by category">`, chartWidth, chartHeight)

		plotHeight := plotBottom - plotTop
		for pct := 0; pct <= 100; pct += 25 {
			y := plotBottom - float64(pct)/100*plotHeight
			w.rawf(`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke-dasharray="3 3"`, plotLeft, y, plotRight, y)
			w.attr("stroke", style.Grid)
			w.raw("/>")
			w.rawf(`<text x="%g" y="%g" text-anchor="end" font-size="12"`, plotLeft-8, y+4)
			w.attr("fill", style.Tick)
			w.rawf(">%d%%</text>", pct)
		}

		groupWidth := (plotRight - plotLeft) / float64(len(groups))
		for gi, g := range groups {
			left := plotLeft + float64(gi)*groupWidth
			center := left + groupWidth/2
			if n := len(g.Bars); n > 0 {
				barWidth := min(maxBarWidth, groupWidth*0.8/float64(n))
				start := center - barWidth*float64(n)/2
				for bi, b := range g.Bars {
					h := float64(b.Percent) / 100 * plotHeight
					w.rawf(`<rect x="%g" y="%g" width="%g" height="%g" rx="4"`,
						start+float64(bi)*barWidth, plotBottom-h, barWidth-2, h)
					w.attr("fill", b.Color.CSS)
					w.raw("><title>")
					w.text(b.Model)
					w.rawf(": %d%%</title></rect>", b.Percent)
				}
			}
			w.rawf(`<text x="%g" y="%g" text-anchor="middle" font-size="13"`, center, plotBottom+22)
			w.attr("fill", style.Tick)
			w.raw(">")
			w.text(g.Label)
			w.raw("</text>")
		}

		writeLegend(w, ds, colors, style)
		w.raw("</svg></div>")
		return w.err
	})
}

func writeLegend(w *writer, ds *dataset.Dataset, colors []present.Color, style present.ChartStyle) {
	const charWidth, gap = 7.0, 16.0

	widths := make([]float64, len(ds.Models))
	total := 0.0
	for i, m := range ds.Models {
		widths[i] = legendSwatch + 4 + float64(len([]rune(m.Name)))*charWidth
		total += widths[i]
	}
	if len(widths) > 1 {
		total += gap * float64(len(widths)-1)
	}

	x := (chartWidth - total) / 2
	for i, m := range ds.Models {
		w.rawf(`<rect x="%g" y="%g" width="%g" height="%g" rx="2"`, x, legendY-legendSwatch+2, legendSwatch, legendSwatch)
		w.attr("fill", colors[i].CSS)
		w.raw("/>")
		w.rawf(`<text x="%g" y="%g" font-size="13"`, x+legendSwatch+4, legendY)
		w.attr("fill", style.Legend)
		w.raw(">")
		w.text(m.Name)
		w.raw("</text>")
		x += widths[i] + gap
	}
}

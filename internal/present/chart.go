package present

import (
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/theme"
)

// Label returns the display label of a score category, e.g. "Overall".
func Label(c dataset.Category) string {
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(string(c))
}

// Percent converts a fraction to a whole percentage.
func Percent(v float64) int {
	return int(math.Round(v * 100))
}

// Bar is one model's bar within a chart group.
type Bar struct {
	Model   string
	Color   Color
	Percent int
}

// ChartGroup is the bars of one score category.
type ChartGroup struct {
	Category dataset.Category
	Label    string
	Bars     []Bar
}

// Chart returns one group per score category, each with one bar per model
// in dataset order.
func Chart(ds *dataset.Dataset, colors []Color) []ChartGroup {
	groups := make([]ChartGroup, 0, len(dataset.Categories))
	for _, c := range dataset.Categories {
		g := ChartGroup{Category: c, Label: Label(c), Bars: make([]Bar, 0, len(ds.Models))}
		for i, m := range ds.Models {
			g.Bars = append(g.Bars, Bar{
				Model:   m.Name,
				Color:   colors[i],
				Percent: Percent(m.Scores.Get(c)),
			})
		}
		groups = append(groups, g)
	}
	return groups
}

// ChartStyle holds the theme-dependent chart colors.
type ChartStyle struct {
	Grid   string
	Tick   string
	Legend string
}

// StyleFor returns the chart colors for mode.
func StyleFor(mode theme.Mode) ChartStyle {
	if mode == theme.Dark {
		return ChartStyle{Grid: "#374151", Tick: "#6b7280", Legend: "#d1d5db"}
	}
	return ChartStyle{Grid: "#f3f4f6", Tick: "#9ca3af", Legend: "#374151"}
}

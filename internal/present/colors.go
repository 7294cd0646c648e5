// Package present turns a dataset into the view models shared by the web
// dashboard, the terminal views, and the static export: model colors, card
// layout, card summaries, and chart series.
package present

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the fixed color sequence for the first models.
var Palette = []string{
	"#3858e9",
	"#00b9eb",
	"#f59e0b",
	"#10b981",
	"#f43f5e",
	"#8b5cf6",
	"#f97316",
	"#06b6d4",
}

const (
	generatedSaturation = 0.65
	generatedLightness  = 0.55
)

// Color is a model's display color.
type Color struct {
	// CSS is the value used in stylesheets and SVG fills.
	CSS string
	// Hex is the #rrggbb form, used by the terminal renderer.
	Hex string
	// Hue is set for generated colors only.
	Hue       float64
	Generated bool
}

// Colors returns one color per model index for a dataset of n models.
// Indices below len(Palette) take the palette in order. Later indices get
// an evenly spaced hue, i*360/n, at fixed saturation and lightness.
func Colors(n int) []Color {
	if n <= 0 {
		return []Color{}
	}
	out := make([]Color, n)
	for i := range out {
		if i < len(Palette) {
			out[i] = Color{CSS: Palette[i], Hex: Palette[i]}
			continue
		}
		hue := float64(i*360) / float64(n)
		out[i] = Color{
			CSS: fmt.Sprintf("hsl(%s, %d%%, %d%%)",
				strconv.FormatFloat(hue, 'f', -1, 64),
				int(generatedSaturation*100), int(generatedLightness*100)),
			Hex:       colorful.Hsl(hue, generatedSaturation, generatedLightness).Hex(),
			Hue:       hue,
			Generated: true,
		}
	}
	return out
}

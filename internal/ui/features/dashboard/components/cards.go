package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/benchboard/internal/present"
)

// Cards renders the model summary cards in a grid sized by model count.
func Cards(cards []present.Card) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<div")
		w.attr("id", CardsID)
		w.attr("class", present.CardGridClass(len(cards)))
		w.raw(">")

		if len(cards) == 0 {
			w.raw(`<div class="card empty">This dataset has no models.</div>`)
		}
		for _, c := range cards {
			w.raw(`<div class="card"><div class="card-head"><h2>`)
			w.text(c.Name)
			w.raw(`</h2><span class="badge"`)
			w.attr("style", "background-color: "+c.Color.CSS)
			w.raw(">")
			w.text(c.Badge())
			w.raw(`</span></div><p class="subtitle">`)
			w.text(c.Subtitle)
			w.raw("</p>")
			for _, b := range c.Bars {
				w.raw(`<div class="bar-row"><span class="bar-label">`)
				w.text(b.Label)
				w.raw(`</span><div class="bar-track"><div class="bar-fill"`)
				w.attrf("style", "width: %d%%; background-color: %s", b.Percent, c.Color.CSS)
				w.rawf(`></div></div><span class="bar-value">%d%%</span></div>`, b.Percent)
			}
			w.raw("</div>")
		}
		w.raw("</div>")
		return w.err
	})
}

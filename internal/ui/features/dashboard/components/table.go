package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/results"
)

// TableData is the results table view: the rows after filter and sort, the
// query that produced them, and the model names for the filter control.
type TableData struct {
	Rows   []results.Row
	Query  results.Query
	Models []string
	Static bool
}

// ResultsTable renders the results panel with its filters and rows.
func ResultsTable(data TableData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}

		w.rawf(`<div id="%s" class="panel"><div class="panel-head"><h2>Results<span class="row-count">(%d rows)</span></h2>`,
			TableID, len(data.Rows))

		if !data.Static {
			w.raw(`<div class="filters">`)
			typeOptions := []option{{results.All, "All Types"}}
			for _, k := range dataset.Kinds {
				typeOptions = append(typeOptions, option{string(k), kindLabel(k)})
			}
			writeSelect(w, "typeFilter", data.Query.Filter.Kind, typeOptions)

			modelOptions := []option{{results.All, "All Models"}}
			for _, m := range data.Models {
				modelOptions = append(modelOptions, option{m, m})
			}
			writeSelect(w, "modelFilter", data.Query.Filter.Model, modelOptions)
			w.raw("</div>")
		}
		w.raw("</div>")

		w.raw(`<div style="overflow-x: auto"><table class="results"><thead><tr><th>Test ID</th><th>Type</th><th>Model</th>`)
		sortOrder := data.Query.Sort
		if sortOrder == "" {
			sortOrder = results.SortNone
		}
		if data.Static {
			w.raw("<th>Score</th>")
		} else {
			w.raw(`<th class="sortable"`)
			w.attr("data-on:click", "@get('/results/sort')")
			w.raw(">Score ")
			w.text(sortOrder.Glyph())
			w.raw("</th>")
		}
		w.raw("</tr></thead><tbody>")

		if len(data.Rows) == 0 {
			w.raw(`<tr><td colspan="4" class="empty">No results match the current filters.</td></tr>`)
		}
		for _, r := range data.Rows {
			w.raw(`<tr><td class="test-id">`)
			w.text(r.TestID)
			w.raw("</td><td><span")
			w.attr("class", classes("type-pill", string(r.Kind)))
			w.raw(">")
			w.text(string(r.Kind))
			w.raw("</span></td><td>")
			w.text(r.Model)
			w.raw("</td><td><span")
			w.attr("class", classes("verdict", string(results.Classify(r))))
			w.raw(">")
			w.text(results.Badge(r))
			w.raw("</span></td></tr>")
		}
		w.raw("</tbody></table></div></div>")
		return w.err
	})
}

type option struct {
	value, label string
}

func writeSelect(w *writer, signal, selected string, options []option) {
	if selected == "" {
		selected = results.All
	}
	w.raw("<select")
	w.attr("data-bind", signal)
	w.attr("data-on:change", "@get('/results')")
	w.raw(">")
	for _, o := range options {
		w.raw("<option")
		w.attr("value", o.value)
		if o.value == selected {
			w.raw(" selected")
		}
		w.raw(">")
		w.text(o.label)
		w.raw("</option>")
	}
	w.raw("</select>")
}

func kindLabel(k dataset.Kind) string {
	switch k {
	case dataset.KindKnowledge:
		return "Knowledge"
	case dataset.KindExecution:
		return "Execution"
	default:
		return string(k)
	}
}

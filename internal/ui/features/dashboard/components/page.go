package components

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/present"
	"github.com/leapstack-labs/benchboard/internal/results"
	"github.com/leapstack-labs/benchboard/internal/theme"
)

// DatastarScript is the client runtime the interactive page loads.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// PageData is everything the full page renders from.
type PageData struct {
	Title   string
	Dataset *dataset.Dataset
	Cards   []present.Card
	Colors  []present.Color
	Table   TableData

	// Static renders a self-contained document with no client runtime:
	// the stylesheet is inlined and interactive controls are left out.
	Static     bool
	Stylesheet string
}

// Page renders the full dashboard document. The theme State must be in ctx.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		dark := theme.FromContext(ctx).IsDark()

		w.raw("<!doctype html>\n<html lang=\"en\"")
		if dark {
			w.attr("class", "dark")
		}
		w.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		w.raw("<title>")
		w.text(data.Title)
		w.raw("</title>")
		if data.Static {
			w.raw("<style>")
			w.raw(data.Stylesheet)
			w.raw("</style>")
		} else {
			w.raw(`<link rel="stylesheet" href="/static/benchboard.css">`)
			w.raw(`<script type="module"`)
			w.attr("src", DatastarScript)
			w.raw("></script>")
		}
		w.raw("</head><body")
		if !data.Static {
			w.attr("data-signals", initialSignals(data.Table.Query))
			w.attr("data-init", "@get('/updates')")
		}
		w.raw(">")
		if w.err != nil {
			return w.err
		}

		header := Header(data.Title, data.Dataset.Metadata, data.Static)
		if err := header.Render(ctx, out); err != nil {
			return err
		}

		w.raw(`<main class="container">`)
		if w.err != nil {
			return w.err
		}
		parts := []templ.Component{
			Cards(data.Cards),
			Chart(data.Dataset, data.Colors),
			ResultsTable(data.Table),
		}
		for _, c := range parts {
			if err := c.Render(ctx, out); err != nil {
				return err
			}
		}
		w.raw("</main>")
		if !data.Static {
			w.rawf(`<div id="%s"></div>`, RefreshID)
		}
		w.raw("</body></html>\n")
		return w.err
	})
}

func initialSignals(q results.Query) string {
	typeFilter, modelFilter := q.Filter.Kind, q.Filter.Model
	if typeFilter == "" {
		typeFilter = results.All
	}
	if modelFilter == "" {
		modelFilter = results.All
	}
	sort := q.Sort
	if sort == "" {
		sort = results.SortNone
	}
	data, _ := json.Marshal(map[string]string{
		"typeFilter":  typeFilter,
		"modelFilter": modelFilter,
		"sort":        string(sort),
	})
	return string(data)
}

// Header renders the site header with the suite metadata and, unless
// static, the theme toggle.
func Header(title string, md dataset.Metadata, static bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		dark := theme.FromContext(ctx).IsDark()

		w.rawf(`<header id="%s" class="site-header"><div class="inner"><div class="brand">`, HeaderID)
		w.raw(`<svg width="24" height="24" viewBox="0 0 24 24" fill="#3858e9" aria-hidden="true"><path d="M12 2C6.48 2 2 6.48 2 12s4.48 10 10 10 10-4.48 10-10S17.52 2 12 2zm-1 14H9V8h2v8zm4 0h-2V8h2v8z"/></svg>`)
		w.raw("<span>")
		w.text(title)
		w.raw(`</span><span class="suite-badge">`)
		w.text(md.Suite)
		w.raw(`</span></div><div class="meta">`)

		for _, item := range []struct{ label, value string }{
			{"Grader", md.Grader.Kind},
			{"Dataset", md.Dataset.Name},
			{"Split", md.Dataset.Split},
			{"Concurrency", strconv.Itoa(md.Grader.Concurrency)},
		} {
			w.raw(`<span><span class="meta-label">`)
			w.text(item.label)
			w.raw("</span><span>")
			w.text(item.value)
			w.raw("</span></span>")
		}

		if !static {
			w.raw(`<button type="button" class="theme-toggle"`)
			w.attr("aria-label", ToggleLabel(dark))
			w.attr("data-on:click", "@post('/theme/toggle')")
			w.raw(">")
			if dark {
				w.raw(sunIcon)
			} else {
				w.raw(moonIcon)
			}
			w.raw("</button>")
		}
		w.raw("</div></div></header>")
		return w.err
	})
}

// ToggleLabel is the accessible label of the theme toggle.
func ToggleLabel(dark bool) string {
	if dark {
		return "Switch to light mode"
	}
	return "Switch to dark mode"
}

const sunIcon = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="4.22" y1="4.22" x2="5.64" y2="5.64"/><line x1="18.36" y1="18.36" x2="19.78" y2="19.78"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/><line x1="4.22" y1="19.78" x2="5.64" y2="18.36"/><line x1="18.36" y1="5.64" x2="19.78" y2="4.22"/></svg>`

const moonIcon = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/></svg>`

// Refresh renders the element that, once patched into the page, makes the
// client fetch /refresh with its current signals and cookies.
func Refresh(version int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.rawf(`<div id="%s"`, RefreshID)
		w.attr("data-version", strconv.Itoa(version))
		w.attr("data-init", "@get('/refresh')")
		w.raw("></div>")
		return w.err
	})
}

// Package components renders the dashboard markup as templ components.
package components

import (
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Element ids targeted by SSE patches.
const (
	HeaderID  = "site-header"
	CardsID   = "model-cards"
	ChartID   = "score-chart"
	TableID   = "results-table"
	RefreshID = "refresh-trigger"
)

// writer accumulates markup and remembers the first write error.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *writer) rawf(format string, args ...any) {
	w.raw(fmt.Sprintf(format, args...))
}

// text writes s HTML-escaped.
func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (w *writer) attr(name, value string) {
	w.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func classes(names ...string) string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " ")
}

func (w *writer) attrf(name, format string, args ...any) {
	w.attr(name, fmt.Sprintf(format, args...))
}

package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/benchboard/internal/results"
	"github.com/leapstack-labs/benchboard/internal/theme"
	"github.com/leapstack-labs/benchboard/internal/ui/features/dashboard/components"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// DefaultTitle is shown in the header when none is configured.
const DefaultTitle = "AI Benchmarks"

// Options configures the dashboard.
type Options struct {
	Title string
	// Theme forces the mode used when a visitor has no stored preference.
	// Empty follows the browser's client hint.
	Theme  theme.Mode
	Logger *slog.Logger
}

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	source       *source.Source
	sessionStore sessions.Store
	title        string
	forcedTheme  theme.Mode
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(src *source.Source, sessionStore sessions.Store, opts Options) *Handlers {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handlers{
		source:       src,
		sessionStore: sessionStore,
		title:        title,
		forcedTheme:  opts.Theme,
		logger:       logger,
	}
}

// themeContext resolves the visitor's theme and installs it in the request
// context.
func (h *Handlers) themeContext(w http.ResponseWriter, r *http.Request) (context.Context, *theme.State, error) {
	ambient := clientHint(r)
	if h.forcedTheme != "" {
		forced := h.forcedTheme
		ambient = func() (theme.Mode, bool) { return forced, true }
	}
	st, err := theme.New(sessionStore{store: h.sessionStore, w: w, r: r}, ambient)
	if err != nil {
		return nil, nil, err
	}
	return theme.WithState(r.Context(), st), st, nil
}

func (h *Handlers) tableData(snap *source.Snapshot, q results.Query) components.TableData {
	if q.Filter.UnknownModel(snap.Dataset) {
		h.logger.Debug("model filter matches no model", "model", q.Filter.Model)
	}
	return components.TableData{
		Rows:   q.Apply(snap.Rows),
		Query:  q,
		Models: snap.Dataset.ModelNames(),
	}
}

func (h *Handlers) pageData(snap *source.Snapshot, q results.Query) components.PageData {
	return components.PageData{
		Title:   h.title,
		Dataset: snap.Dataset,
		Cards:   snap.Cards,
		Colors:  snap.Colors,
		Table:   h.tableData(snap, q),
	}
}

// Page renders the full dashboard.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	ctx, _, err := h.themeContext(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	snap := h.source.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Page(h.pageData(snap, results.Query{Sort: results.SortNone})).Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates is the long-lived SSE endpoint of the page. It sends nothing
// initially; after each dataset reload it patches in a trigger that makes
// the client call Refresh with its current signals.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.source.Subscribe()
	defer h.source.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			snap := h.source.Snapshot()
			if err := sse.PatchElementTempl(components.Refresh(snap.Version)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// Refresh re-renders every section from the current snapshot, keeping the
// client's filter and sort.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, _, err := h.themeContext(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	snap := h.source.Snapshot()
	data := h.pageData(snap, signals.Query())

	sse := datastar.NewSSE(w, r)
	for _, c := range []templ.Component{
		components.Header(data.Title, snap.Dataset.Metadata, false),
		components.Cards(data.Cards),
		components.Chart(snap.Dataset, snap.Colors),
		components.ResultsTable(data.Table),
	} {
		if err := sse.PatchElementTempl(withContext(ctx, c)); err != nil {
			_ = sse.ConsoleError(err)
			return
		}
	}
}

// Results re-renders the table for the client's current filters.
func (h *Handlers) Results(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap := h.source.Snapshot()
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(components.ResultsTable(h.tableData(snap, signals.Query()))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// SortResults advances the score column's sort order, then patches the new
// order into the client signals and re-renders the table.
func (h *Handlers) SortResults(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := signals.Query()
	q.Sort = q.Sort.Next()

	snap := h.source.Snapshot()
	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(sortSignal{Sort: string(q.Sort)}); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(components.ResultsTable(h.tableData(snap, q))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// ToggleTheme flips and persists the visitor's theme, then patches every
// theme-dependent part of the page.
func (h *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx, st, err := h.themeContext(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// The session cookie is written here, before the SSE stream starts.
	mode, err := st.Toggle()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.logger.Debug("theme toggled", "mode", mode)

	snap := h.source.Snapshot()
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(withContext(ctx, components.Header(h.title, snap.Dataset.Metadata, false))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(withContext(ctx, components.Chart(snap.Dataset, snap.Colors))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	script := fmt.Sprintf("document.documentElement.classList.toggle('dark', %t)", mode == theme.Dark)
	if err := sse.ExecuteScript(script); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// withContext binds c to ctx. The SSE generator renders with the bare
// request context, which lacks the visitor's theme.
func withContext(ctx context.Context, c templ.Component) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return c.Render(ctx, w)
	})
}

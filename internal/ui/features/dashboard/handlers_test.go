package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/benchboard/internal/theme"
	"github.com/leapstack-labs/benchboard/internal/ui/features"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestHandlers(t *testing.T, opts Options) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	opts.Logger = fixture.Logger
	return NewHandlers(fixture.Source, fixture.SessionStore, opts), fixture
}

// =============================================================================
// Page Tests
// =============================================================================

func TestPage(t *testing.T) {
	h, _ := setupTestHandlers(t, Options{Title: "WP AI Benchmarks"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Page(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>WP AI Benchmarks</title>",
		"data-init",
		"/updates",
		`id="site-header"`,
		`id="model-cards"`,
		`id="score-chart"`,
		`id="results-table"`,
		"gpt-4o",
		"claude-sonnet",
		"llama-3",
		"(10 rows)",
	} {
		assert.Contains(t, body, want, "response should contain %q", want)
	}
	assert.NotContains(t, body, `class="dark"`, "light is the default")
}

func TestPage_DefaultTitle(t *testing.T) {
	h, _ := setupTestHandlers(t, Options{})

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rec.Body.String(), "<title>"+DefaultTitle+"</title>")
}

func TestPage_InitialTheme(t *testing.T) {
	tests := []struct {
		name     string
		forced   theme.Mode
		hint     string
		wantDark bool
	}{
		{name: "no hint", wantDark: false},
		{name: "client hint dark", hint: "dark", wantDark: true},
		{name: "client hint garbage", hint: "no-preference", wantDark: false},
		{name: "forced dark overrides hint", forced: theme.Dark, hint: "light", wantDark: true},
		{name: "forced light overrides hint", forced: theme.Light, hint: "dark", wantDark: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t, Options{Theme: tt.forced})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.hint != "" {
				req.Header.Set(ClientHintHeader, tt.hint)
			}
			rec := httptest.NewRecorder()
			h.Page(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			if tt.wantDark {
				assert.Contains(t, rec.Body.String(), `<html lang="en" class="dark">`)
			} else {
				assert.Contains(t, rec.Body.String(), `<html lang="en">`)
			}
		})
	}
}

// =============================================================================
// Theme toggle
// =============================================================================

func TestToggleTheme(t *testing.T) {
	h, _ := setupTestHandlers(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.ToggleTheme(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "site-header")
	assert.Contains(t, body, "Switch to light mode")
	assert.Contains(t, body, "score-chart")
	assert.Contains(t, body, `stroke="#374151"`, "chart should use dark grid color")
	assert.Contains(t, body, "classList.toggle('dark', true)")
	assert.NotEmpty(t, rec.Result().Cookies(), "preference should be persisted in the session cookie")
}

func TestToggleTheme_PersistsAcrossRequests(t *testing.T) {
	h, _ := setupTestHandlers(t, Options{})

	first := httptest.NewRecorder()
	h.ToggleTheme(first, httptest.NewRequest(http.MethodPost, "/theme/toggle", nil))
	require.Equal(t, http.StatusOK, first.Code)

	// Stored preference wins over the client hint on a fresh page load.
	req := features.WithCookies(httptest.NewRequest(http.MethodGet, "/", nil), first)
	req.Header.Set(ClientHintHeader, "light")
	page := httptest.NewRecorder()
	h.Page(page, req)
	assert.Contains(t, page.Body.String(), `<html lang="en" class="dark">`)

	// Toggling again flips back.
	second := httptest.NewRecorder()
	h.ToggleTheme(second, features.WithCookies(httptest.NewRequest(http.MethodPost, "/theme/toggle", nil), first))
	assert.Contains(t, second.Body.String(), "classList.toggle('dark', false)")
	assert.Contains(t, second.Body.String(), "Switch to dark mode")
}

// =============================================================================
// Results table
// =============================================================================

func TestResults_Filter(t *testing.T) {
	tests := []struct {
		name     string
		signals  Signals
		wantRows string
		want     []string
		notWant  []string
	}{
		{
			name:     "all",
			signals:  Signals{TypeFilter: "all", ModelFilter: "all", Sort: "none"},
			wantRows: "(10 rows)",
		},
		{
			name:     "knowledge for one model",
			signals:  Signals{TypeFilter: "knowledge", ModelFilter: "gpt-4o", Sort: "none"},
			wantRows: "(2 rows)",
			want:     []string{"hooks-001", "hooks-002"},
			notWant:  []string{"exec-plugin-001"},
		},
		{
			name:     "unknown model yields empty table",
			signals:  Signals{TypeFilter: "all", ModelFilter: "mistral", Sort: "none"},
			wantRows: "(0 rows)",
			want:     []string{"No results match"},
		},
		{
			name:     "unparseable sort is unsorted",
			signals:  Signals{TypeFilter: "all", ModelFilter: "all", Sort: "sideways"},
			wantRows: "(10 rows)",
			want:     []string{"Score ↕"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t, Options{})

			req := features.SignalsRequest(t, http.MethodGet, "/results", tt.signals)
			rec := httptest.NewRecorder()
			h.Results(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "event:")
			assert.Contains(t, body, "results-table")
			assert.Contains(t, body, tt.wantRows)
			for _, w := range tt.want {
				assert.Contains(t, body, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, body, w)
			}
		})
	}
}

func TestSortResults_Cycles(t *testing.T) {
	tests := []struct {
		current   string
		wantSort  string
		wantGlyph string
	}{
		{current: "none", wantSort: "asc", wantGlyph: "Score ↑"},
		{current: "asc", wantSort: "desc", wantGlyph: "Score ↓"},
		{current: "desc", wantSort: "none", wantGlyph: "Score ↕"},
	}

	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			h, _ := setupTestHandlers(t, Options{})

			req := features.SignalsRequest(t, http.MethodGet, "/results/sort",
				Signals{TypeFilter: "all", ModelFilter: "all", Sort: tt.current})
			rec := httptest.NewRecorder()
			h.SortResults(rec, req)

			body := rec.Body.String()
			assert.Contains(t, body, `"sort":"`+tt.wantSort+`"`)
			assert.Contains(t, body, tt.wantGlyph)
		})
	}
}

func TestSortResults_OrdersScores(t *testing.T) {
	h, _ := setupTestHandlers(t, Options{})

	req := features.SignalsRequest(t, http.MethodGet, "/results/sort",
		Signals{TypeFilter: "execution", ModelFilter: "claude-sonnet", Sort: "none"})
	rec := httptest.NewRecorder()
	h.SortResults(rec, req)

	body := rec.Body.String()
	low := strings.Index(body, "✗ 0.00")
	high := strings.Index(body, "~ 0.75")
	require.Positive(t, low)
	require.Positive(t, high)
	assert.Less(t, low, high, "ascending puts the lower score first")
}

// =============================================================================
// Live updates
// =============================================================================

func TestUpdates_NoInitialState(t *testing.T) {
	h, _ := setupTestHandlers(t, Options{})

	req := features.RequestWithTimeout(t, httptest.NewRequest(http.MethodGet, "/updates", nil), 50*time.Millisecond)
	rec := httptest.NewRecorder()
	h.Updates(rec, req)

	assert.Equal(t, 0, strings.Count(rec.Body.String(), "event:"), "should have no SSE events without a reload")
}

func TestUpdates_SendsRefreshOnReload(t *testing.T) {
	h, fixture := setupTestHandlers(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Updates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	fixture.Source.Replace(fixture.Dataset)

	<-done

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1)
	assert.Contains(t, body, "refresh-trigger")
	assert.Contains(t, body, `data-version="2"`)
}

func TestRefresh_PatchesEverySection(t *testing.T) {
	h, _ := setupTestHandlers(t, Options{})

	req := features.SignalsRequest(t, http.MethodGet, "/refresh",
		Signals{TypeFilter: "execution", ModelFilter: "all", Sort: "desc"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	body := rec.Body.String()
	for _, id := range []string{"site-header", "model-cards", "score-chart", "results-table"} {
		assert.Contains(t, body, id)
	}
	assert.Contains(t, body, "(5 rows)", "filters survive the refresh")
	assert.Contains(t, body, "Score ↓")
}

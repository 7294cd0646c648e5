// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/testutil"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Dataset      *dataset.Dataset
	Source       *source.Source
	SessionStore *sessions.CookieStore
	Logger       *slog.Logger
}

// SetupTestFixture creates a fixture serving the sample dataset, or ds when
// given.
func SetupTestFixture(t *testing.T, ds ...*dataset.Dataset) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	var data *dataset.Dataset
	if len(ds) > 0 {
		data = ds[0]
	} else {
		data = testutil.LoadSample(t)
	}

	return &TestFixture{
		Dataset:      data,
		Source:       source.Static(data, logger),
		SessionStore: NewTestSessionStore(),
		Logger:       logger,
	}
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// SignalsRequest builds a datastar request carrying signals. GET requests
// put them in the datastar query parameter, others in a JSON body.
func SignalsRequest(t *testing.T, method, target string, signals any) *http.Request {
	t.Helper()

	data, err := json.Marshal(signals)
	require.NoError(t, err)

	if method == http.MethodGet {
		req := httptest.NewRequest(method, target+"?datastar="+url.QueryEscape(string(data)), nil)
		req.Header.Set("Datastar-Request", "true")
		return req
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return req
}

// RequestWithTimeout wraps a request with a context timeout that is
// cancelled when the test ends.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	t.Helper()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// WithCookies copies the cookies a response set onto req.
func WithCookies(req *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

package dashboard

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/benchboard/internal/theme"
)

const (
	sessionName     = "benchboard"
	sessionThemeKey = "theme"

	// ClientHintHeader carries the browser's preferred color scheme.
	ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"
)

// sessionStore keeps the theme preference in the visitor's cookie session.
// Save writes the Set-Cookie header, so it must run before the response
// body starts.
type sessionStore struct {
	store sessions.Store
	w     http.ResponseWriter
	r     *http.Request
}

// Load implements theme.Store. An undecodable cookie counts as no
// preference.
func (s sessionStore) Load() (theme.Mode, bool, error) {
	sess, err := s.store.Get(s.r, sessionName)
	if err != nil {
		return "", false, nil //nolint:nilerr // stale or foreign cookie, start fresh
	}
	v, ok := sess.Values[sessionThemeKey].(string)
	if !ok {
		return "", false, nil
	}
	mode, err := theme.ParseMode(v)
	if err != nil {
		return "", false, nil //nolint:nilerr // ignore garbage values
	}
	return mode, true, nil
}

// Save implements theme.Store.
func (s sessionStore) Save(mode theme.Mode) error {
	sess, _ := s.store.Get(s.r, sessionName)
	if sess == nil {
		sess = sessions.NewSession(s.store, sessionName)
	}
	sess.Values[sessionThemeKey] = string(mode)
	return sess.Save(s.r, s.w)
}

// clientHint reads the color scheme client hint.
func clientHint(r *http.Request) theme.Ambient {
	return func() (theme.Mode, bool) {
		mode, err := theme.ParseMode(r.Header.Get(ClientHintHeader))
		if err != nil {
			return "", false
		}
		return mode, true
	}
}

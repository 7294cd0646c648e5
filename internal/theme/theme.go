// Package theme holds the light/dark display preference shared by the
// dashboard header, the score chart, and the terminal renderer.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Mode is a display theme.
type Mode string

// Modes.
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("unknown theme mode")

// ParseMode parses "light" or "dark" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("%w %q (want light or dark)", ErrUnknownMode, s)
	}
}

// Flip returns the opposite mode.
func (m Mode) Flip() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Store persists the preference across sessions.
type Store interface {
	// Load returns the stored mode. ok is false when nothing is stored.
	Load() (mode Mode, ok bool, err error)
	Save(mode Mode) error
}

// Ambient reports the environment's preferred mode, if it has one.
type Ambient func() (Mode, bool)

// NoAmbient never expresses a preference.
func NoAmbient() (Mode, bool) { return "", false }

// State is the current mode of one viewer. It is safe for concurrent use.
type State struct {
	mu    sync.RWMutex
	mode  Mode
	store Store
	subs  map[int]func(Mode)
	next  int
}

// New resolves the initial mode: the stored preference if there is one,
// otherwise the ambient signal, otherwise Light. ambient is not called when
// the store holds a value.
func New(store Store, ambient Ambient) (*State, error) {
	mode, ok, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load theme preference: %w", err)
	}
	if !ok {
		mode = Light
		if ambient != nil {
			if m, found := ambient(); found {
				mode = m
			}
		}
	}
	return &State{
		mode:  mode,
		store: store,
		subs:  make(map[int]func(Mode)),
	}, nil
}

// Mode returns the current mode.
func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// IsDark reports whether the current mode is Dark.
func (s *State) IsDark() bool {
	return s.Mode() == Dark
}

// Toggle flips the mode. The new mode is saved before it becomes current;
// if saving fails the mode is unchanged. Subscribers run synchronously
// before Toggle returns.
func (s *State) Toggle() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.mode.Flip()
	if err := s.store.Save(next); err != nil {
		return s.mode, fmt.Errorf("failed to save theme preference: %w", err)
	}
	s.mode = next
	for _, fn := range s.subs {
		fn(next)
	}
	return next, nil
}

// Subscribe registers fn to run after every successful toggle. fn must not
// call back into s. The returned func removes the subscription.
func (s *State) Subscribe(fn func(Mode)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

type ctxKey struct{}

// WithState returns a copy of ctx carrying s.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the State installed by WithState. It panics if there
// is none: every view that reads the theme runs inside a provider.
func FromContext(ctx context.Context) *State {
	s, ok := ctx.Value(ctxKey{}).(*State)
	if !ok || s == nil {
		panic("theme: no State in context (missing theme.WithState)")
	}
	return s
}

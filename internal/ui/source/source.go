// Package source holds the dataset the web UI serves and reloads it when
// the file changes on disk.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/present"
	"github.com/leapstack-labs/benchboard/internal/results"
)

const debounce = 100 * time.Millisecond

// Snapshot is one loaded dataset together with everything derived from it.
// A snapshot is never modified after creation; handlers render from a
// single snapshot per request.
type Snapshot struct {
	Dataset  *dataset.Dataset
	Rows     []results.Row
	Colors   []present.Color
	Cards    []present.Card
	Version  int
	LoadedAt time.Time
}

// NewSnapshot derives rows, colors, and cards from ds.
func NewSnapshot(ds *dataset.Dataset, version int) *Snapshot {
	colors := present.Colors(len(ds.Models))
	return &Snapshot{
		Dataset:  ds,
		Rows:     results.Project(ds),
		Colors:   colors,
		Cards:    present.Cards(ds, colors),
		Version:  version,
		LoadedAt: time.Now(),
	}
}

// Source holds the current snapshot and notifies listeners when it changes.
type Source struct {
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	snap *Snapshot

	listenersMu sync.RWMutex
	listeners   map[chan struct{}]struct{}
}

// Open loads the dataset at path.
func Open(path string, logger *slog.Logger) (*Source, error) {
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	s := newSource(logger)
	s.path = path
	s.snap = NewSnapshot(ds, 1)
	return s, nil
}

// Static wraps an already loaded dataset. It has no file to watch.
func Static(ds *dataset.Dataset, logger *slog.Logger) *Source {
	s := newSource(logger)
	s.snap = NewSnapshot(ds, 1)
	return s
}

func newSource(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Source{
		logger:    logger,
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Path returns the dataset file, or "" for a static source.
func (s *Source) Path() string {
	return s.path
}

// Snapshot returns the current snapshot.
func (s *Source) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Replace swaps in ds and notifies listeners.
func (s *Source) Replace(ds *dataset.Dataset) {
	s.mu.Lock()
	s.snap = NewSnapshot(ds, s.snap.Version+1)
	s.mu.Unlock()
	s.broadcast()
}

// Reload re-reads the dataset file. On failure the current snapshot stays
// in place and the error is returned.
func (s *Source) Reload() error {
	if s.path == "" {
		return fmt.Errorf("source has no dataset file")
	}
	ds, err := dataset.Load(s.path)
	if err != nil {
		return err
	}
	s.Replace(ds)
	return nil
}

// Subscribe returns a channel that receives a ping after every swap.
// The caller must call Unsubscribe when done.
func (s *Source) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	s.listenersMu.Lock()
	s.listeners[ch] = struct{}{}
	s.listenersMu.Unlock()
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (s *Source) Unsubscribe(ch chan struct{}) {
	s.listenersMu.Lock()
	delete(s.listeners, ch)
	s.listenersMu.Unlock()
	close(ch)
}

// broadcast pings every listener without blocking. A listener that already
// has a pending ping will re-read the latest snapshot anyway.
func (s *Source) broadcast() {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()

	for ch := range s.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Watch reloads the dataset whenever its file changes, until ctx is done.
// The parent directory is watched so that editors which replace the file
// by rename are picked up too.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", s.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	s.logger.Debug("watching dataset", "path", target)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if err := s.Reload(); err != nil {
					s.logger.Error("dataset reload failed, keeping previous version", "path", s.path, "error", err)
					return
				}
				s.logger.Info("dataset reloaded", "path", s.path, "version", s.Snapshot().Version)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

package source

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/benchboard/internal/testutil"
)

func TestOpen_DerivesSnapshot(t *testing.T) {
	src, err := Open(testutil.SamplePath(t), testutil.NewTestLogger(t))
	require.NoError(t, err)

	snap := src.Snapshot()
	assert.Equal(t, 1, snap.Version)
	assert.Len(t, snap.Rows, 10)
	assert.Len(t, snap.Colors, 3)
	require.Len(t, snap.Cards, 3)
	assert.Equal(t, "gpt-4o", snap.Cards[0].Name)
	assert.Equal(t, "#82%", snap.Cards[0].Badge())
}

func TestOpen_InvalidFile(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "bad.json", `{"models": {}}`)
	_, err := Open(path, nil)
	require.Error(t, err)
}

func TestReplace_NotifiesAndBumpsVersion(t *testing.T) {
	ds := testutil.LoadSample(t)
	src := Static(ds, nil)

	ch := src.Subscribe()
	defer src.Unsubscribe(ch)

	smaller := *ds
	smaller.Models = ds.Models[:1]
	src.Replace(&smaller)

	select {
	case <-ch:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("listener did not receive ping")
	}

	snap := src.Snapshot()
	assert.Equal(t, 2, snap.Version)
	assert.Len(t, snap.Cards, 1)
	assert.Len(t, snap.Rows, 4)
}

func TestReload_FailureKeepsSnapshot(t *testing.T) {
	path := testutil.CopySample(t)
	src, err := Open(path, nil)
	require.NoError(t, err)
	before := src.Snapshot()

	require.NoError(t, os.WriteFile(path, []byte(`{"metadata": `), 0o600))
	require.Error(t, src.Reload())
	assert.Same(t, before, src.Snapshot())
}

func TestReload_StaticSource(t *testing.T) {
	src := Static(testutil.LoadSample(t), nil)
	assert.Error(t, src.Reload())
	assert.NoError(t, src.Watch(context.Background()), "static sources have nothing to watch")
}

func TestBroadcast_NonBlocking(t *testing.T) {
	src := Static(testutil.LoadSample(t), nil)
	ch := src.Subscribe()
	defer src.Unsubscribe(ch)

	ch <- struct{}{}

	done := make(chan struct{})
	go func() {
		src.broadcast()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("broadcast blocked on full channel")
	}
}

func TestSubscribe_Concurrent(t *testing.T) {
	src := Static(testutil.LoadSample(t), nil)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := src.Subscribe()
			src.broadcast()
			src.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	src.listenersMu.RLock()
	assert.Empty(t, src.listeners)
	src.listenersMu.RUnlock()
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := testutil.CopySample(t)
	src, err := Open(path, nil)
	require.NoError(t, err)

	ch := src.Subscribe()
	defer src.Unsubscribe(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Watch(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	renamed := strings.Replace(string(data), `"llama-3"`, `"llama-3.1"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(renamed), 0o600))

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("dataset was not reloaded")
	}
	assert.True(t, src.Snapshot().Dataset.HasModel("llama-3.1"))
	assert.GreaterOrEqual(t, src.Snapshot().Version, 2)
}

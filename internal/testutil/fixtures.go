package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/benchboard/internal/dataset"
)

// SamplePath returns the absolute path of testdata/sample.json at the
// repository root, regardless of the test's working directory.
func SamplePath(t testing.TB) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "failed to locate testutil source")
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "sample.json")
}

// LoadSample loads the sample dataset: gpt-4o, claude-sonnet, and llama-3
// with ten results between them.
func LoadSample(t testing.TB) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(SamplePath(t))
	require.NoError(t, err)
	return ds
}

// CopySample copies the sample dataset into a fresh temp dir and returns
// the copy's path, for tests that modify the file.
func CopySample(t testing.TB) string {
	t.Helper()
	data, err := os.ReadFile(SamplePath(t))
	require.NoError(t, err)
	return WriteFile(t, t.TempDir(), "sample.json", string(data))
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

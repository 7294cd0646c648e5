// Package main provides tests for the benchboard CLI.
package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/benchboard/internal/cli"
	"github.com/leapstack-labs/benchboard/internal/cli/config"
	clitest "github.com/leapstack-labs/benchboard/internal/cli/testutil"
	"github.com/leapstack-labs/benchboard/internal/testutil"
)

// run executes the root command in an empty working directory.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	dir := t.TempDir()
	clitest.IsolateUserConfig(t, dir)
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "benchboard v")
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"ui", "show", "results", "browse", "validate", "export", "theme"} {
		assert.Contains(t, out, expected)
	}
}

func TestShowCommand(t *testing.T) {
	out, _, err := run(t, "show", "--dataset", testutil.SamplePath(t))
	require.NoError(t, err)
	assert.Contains(t, out, "wp-core-v1")
	assert.Contains(t, out, "claude-sonnet")
}

func TestResultsCommandJSON(t *testing.T) {
	out, _, err := run(t, "results", "-d", testutil.SamplePath(t), "-o", "json", "--type", "execution")
	require.NoError(t, err)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 5, resp.Count)
}

func TestValidateCommand(t *testing.T) {
	_, _, err := run(t, "validate", "-d", testutil.SamplePath(t))
	require.NoError(t, err)
}

func TestVerboseLogsToStderr(t *testing.T) {
	_, errOut, err := run(t, "show", "-v", "-d", testutil.SamplePath(t), "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"config loaded"`)
}

func TestMissingDataset(t *testing.T) {
	_, _, err := run(t, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset file does not exist")
}

func TestInvalidOutputFlag(t *testing.T) {
	_, _, err := run(t, "show", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "benchboard")
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, "unknown-command")
	require.Error(t, err)
}

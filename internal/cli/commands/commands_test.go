package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/benchboard/internal/cli/config"
	"github.com/leapstack-labs/benchboard/internal/cli/output"
	clitest "github.com/leapstack-labs/benchboard/internal/cli/testutil"
	"github.com/leapstack-labs/benchboard/internal/results"
	"github.com/leapstack-labs/benchboard/internal/testutil"
	"github.com/leapstack-labs/benchboard/internal/theme"
	"github.com/leapstack-labs/benchboard/internal/ui/features/api"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// execute runs cmd with args and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func sampleSnapshot(t *testing.T) *source.Snapshot {
	t.Helper()
	return source.NewSnapshot(testutil.LoadSample(t), 1)
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewVersionCommand("test"), "version", nil},
		{NewUICommand(), "ui", []string{"port", "no-browser", "watch"}},
		{NewShowCommand(), "show", nil},
		{NewResultsCommand(), "results", []string{"type", "model", "sort"}},
		{NewBrowseCommand(), "browse", nil},
		{NewValidateCommand(), "validate", []string{"schema"}},
		{NewExportCommand(), "export", []string{"format", "out", "theme", "type", "model", "sort"}},
		{NewThemeCommand(), "theme", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestUICommand_DevFlag(t *testing.T) {
	flag := NewUICommand().Flags().Lookup("dev")
	require.NotNil(t, flag)
	assert.True(t, flag.Hidden)
	assert.Contains(t, flag.Usage, "hot reload")
}

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{name: "release", version: "0.1.0", wantOut: []string{"benchboard v0.1.0", "dashboard"}},
		{name: "dev", version: "dev", wantOut: []string{"benchboard vdev"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewVersionCommand(tt.version))
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestShow(t *testing.T) {
	t.Run("markdown when piped", func(t *testing.T) {
		clitest.SetupTestProject(t, "")

		out, _, err := execute(t, NewShowCommand())
		require.NoError(t, err)

		assert.Contains(t, out, "# AI Benchmarks")
		assert.Contains(t, out, "- **Suite**: wp-core-v1")
		assert.Contains(t, out, "- **Concurrency**: 4")
		assert.Contains(t, out, "### gpt-4o")
		assert.Contains(t, out, "## Scores by category")
		clitest.AssertNoANSI(t, out)
		clitest.AssertValidMarkdown(t, out)
	})

	t.Run("json", func(t *testing.T) {
		clitest.SetupTestProject(t, "output: json\nui:\n  title: Nightly\n")

		out, _, err := execute(t, NewShowCommand())
		require.NoError(t, err)

		var got output.ShowOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "Nightly", got.Title)
		assert.Equal(t, "wp-core-v1", got.Metadata.Suite)
		assert.Equal(t, 3, got.Columns)
		require.Len(t, got.Models, 3)
		assert.Equal(t, "gpt-4o", got.Models[0].Name)
		assert.Equal(t, 82, got.Models[0].Percent["overall"])
		assert.NotEmpty(t, got.Models[0].Color)
	})

	t.Run("text", func(t *testing.T) {
		tr := clitest.NewTestRendererText()
		require.NoError(t, renderShow(tr.Renderer, "Board", sampleSnapshot(t)))

		out := tr.Output()
		assert.Contains(t, out, "Board")
		assert.Contains(t, out, "llm-judge · wp-bench · test · concurrency 4")
		for _, name := range []string{"gpt-4o", "claude-sonnet", "llama-3"} {
			assert.Contains(t, out, name)
		}
		assert.Contains(t, out, "Scores by category")
	})
}

func TestResults(t *testing.T) {
	decode := func(t *testing.T, out string) api.ResultsResponse {
		t.Helper()
		var resp api.ResultsResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		return resp
	}

	tests := []struct {
		name      string
		args      []string
		wantCount int
		check     func(t *testing.T, rows []api.ResultRow)
	}{
		{name: "all", wantCount: 10},
		{
			name:      "knowledge only",
			args:      []string{"--type", "knowledge"},
			wantCount: 5,
			check: func(t *testing.T, rows []api.ResultRow) {
				for _, r := range rows {
					assert.Equal(t, "knowledge", string(r.Kind))
				}
			},
		},
		{
			name:      "model and type",
			args:      []string{"--type", "execution", "--model", "llama-3"},
			wantCount: 1,
			check: func(t *testing.T, rows []api.ResultRow) {
				assert.Equal(t, "exec-plugin-001", rows[0].TestID)
				assert.Equal(t, results.VerdictPartial, rows[0].Verdict)
			},
		},
		{
			name:      "sorted descending",
			args:      []string{"--model", "gpt-4o", "--sort", "desc"},
			wantCount: 4,
			check: func(t *testing.T, rows []api.ResultRow) {
				ids := []string{rows[0].TestID, rows[1].TestID, rows[2].TestID, rows[3].TestID}
				assert.Equal(t, []string{"hooks-001", "exec-plugin-002", "exec-plugin-001", "hooks-002"}, ids)
			},
		},
		{name: "unknown model", args: []string{"--model", "gpt-5"}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clitest.SetupTestProject(t, "output: json\n")

			out, _, err := execute(t, NewResultsCommand(), tt.args...)
			require.NoError(t, err)

			resp := decode(t, out)
			assert.Equal(t, tt.wantCount, resp.Count)
			require.Len(t, resp.Rows, tt.wantCount)
			if tt.check != nil {
				tt.check(t, resp.Rows)
			}
		})
	}

	t.Run("bad sort", func(t *testing.T) {
		clitest.SetupTestProject(t, "")
		_, _, err := execute(t, NewResultsCommand(), "--sort", "sideways")
		require.ErrorIs(t, err, results.ErrUnknownSortOrder)
	})

	t.Run("markdown", func(t *testing.T) {
		clitest.SetupTestProject(t, "")
		out, _, err := execute(t, NewResultsCommand(), "--model", "claude-sonnet")
		require.NoError(t, err)
		assert.Contains(t, out, "| Test ID")
		assert.Contains(t, out, "✓ 1.00")
		assert.Contains(t, out, "(4 rows)")
		clitest.AssertNoANSI(t, out)
	})
}

func TestRenderResultRows_TextEmpty(t *testing.T) {
	tr := clitest.NewTestRendererText()
	require.NoError(t, renderResultRows(tr.Renderer, results.Query{}, nil))
	assert.Contains(t, tr.Output(), "No results match the current filters.")
	assert.Contains(t, tr.Output(), "(0 rows)")
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		clitest.SetupTestProject(t, "")
		out, _, err := execute(t, NewValidateCommand())
		require.NoError(t, err)
		assert.Contains(t, out, "# Dataset validation")
		assert.Contains(t, out, "- **Status**: valid")
		assert.Contains(t, out, "- **Results**: 10")
	})

	t.Run("invalid", func(t *testing.T) {
		dir := clitest.SetupTestProject(t, "output: json\n")
		testutil.WriteFile(t, dir, "results.json", `{"models": 5}`)

		out, _, err := execute(t, NewValidateCommand())
		require.ErrorIs(t, err, ErrValidationFailed)

		var got output.ValidateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.False(t, got.Valid)
		assert.NotEmpty(t, got.Problems)
		assert.NotEmpty(t, got.Error)
	})

	t.Run("missing file", func(t *testing.T) {
		dir := clitest.SetupTestProject(t, "")
		require.NoError(t, os.Remove(filepath.Join(dir, "results.json")))

		_, _, err := execute(t, NewValidateCommand())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dataset file does not exist")
		assert.NotErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("schema", func(t *testing.T) {
		clitest.SetupTestProject(t, "")
		out, _, err := execute(t, NewValidateCommand(), "--schema")
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(out)))
		assert.Contains(t, out, "models")
	})
}

func TestExport(t *testing.T) {
	t.Run("html", func(t *testing.T) {
		clitest.SetupTestProject(t, "")
		out, _, err := execute(t, NewExportCommand())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
		assert.Contains(t, out, "<style>")
		assert.NotContains(t, out, "<script")
		assert.NotContains(t, out, `class="dark"`)
		assert.Contains(t, out, "claude-sonnet")
	})

	t.Run("html dark to file", func(t *testing.T) {
		dir := clitest.SetupTestProject(t, "")
		path := filepath.Join(dir, "report.html")

		out, _, err := execute(t, NewExportCommand(), "--theme", "dark", "--out", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `class="dark"`)
	})

	t.Run("theme from config", func(t *testing.T) {
		clitest.SetupTestProject(t, "ui:\n  theme: dark\n")
		out, _, err := execute(t, NewExportCommand())
		require.NoError(t, err)
		assert.Contains(t, out, `class="dark"`)
	})

	t.Run("markdown", func(t *testing.T) {
		clitest.SetupTestProject(t, "")
		out, _, err := execute(t, NewExportCommand(), "--format", "markdown", "--type", "knowledge")
		require.NoError(t, err)

		assert.Contains(t, out, "gpt-4o")
		assert.Contains(t, out, "llama-3")
		assert.Contains(t, out, "hooks-001")
		assert.NotContains(t, out, "exec-plugin-001")
		assert.NotContains(t, out, "<div")
	})

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"--format", "pdf"}},
		{name: "bad theme", args: []string{"--theme", "sepia"}},
		{name: "bad sort", args: []string{"--sort", "up"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clitest.SetupTestProject(t, "")
			_, _, err := execute(t, NewExportCommand(), tt.args...)
			require.Error(t, err)
		})
	}
}

func TestTheme(t *testing.T) {
	clitest.SetupTestProject(t, "output: json\n")
	path, err := theme.DefaultFilePath()
	require.NoError(t, err)

	out, _, err := execute(t, NewThemeCommand())
	require.NoError(t, err)
	var got output.ThemeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, output.ThemeOutput{Mode: "light", File: path, Changed: false}, got)
	assert.NoFileExists(t, path)

	out, _, err = execute(t, NewThemeCommand(), "toggle")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, output.ThemeOutput{Mode: "dark", File: path, Changed: true}, got)

	mode, ok, err := theme.FileStore{Path: path}.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, theme.Dark, mode)

	out, _, err = execute(t, NewThemeCommand())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "dark", got.Mode)
}

func TestTheme_ConfigForcesAmbient(t *testing.T) {
	clitest.SetupTestProject(t, "output: json\nui:\n  theme: dark\n")

	out, _, err := execute(t, NewThemeCommand())
	require.NoError(t, err)
	var got output.ThemeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "dark", got.Mode)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModel(t *testing.T) {
	store := theme.NewMemoryStore(theme.Light)
	state, err := theme.New(store, theme.NoAmbient)
	require.NoError(t, err)

	m := newBrowseModel(sampleSnapshot(t), state)
	defer m.Close()

	assert.Len(t, m.rows, 10)
	assert.Contains(t, m.View(), "(10 rows)")
	assert.Contains(t, m.View(), "wp-core-v1")

	m.Update(key("t"))
	assert.Equal(t, "knowledge", m.query.Filter.Kind)
	assert.Len(t, m.rows, 5)

	m.Update(key("m"))
	assert.Equal(t, "gpt-4o", m.query.Filter.Model)
	assert.Len(t, m.rows, 2)
	assert.Contains(t, m.View(), "type: knowledge · model: gpt-4o")

	m.Update(key("s"))
	assert.Equal(t, results.SortAsc, m.query.Sort)
	assert.Equal(t, "hooks-002", m.rows[0].TestID)
	assert.Contains(t, m.View(), string(results.VerdictFail))

	m.Update(key("d"))
	assert.Equal(t, theme.Dark, state.Mode())
	assert.Equal(t, 1, store.Saves())
	assert.Contains(t, m.View(), "d light mode")

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBrowseModel_EmptyFilter(t *testing.T) {
	state, err := theme.New(theme.NewMemoryStore(theme.Light), theme.NoAmbient)
	require.NoError(t, err)

	m := newBrowseModel(sampleSnapshot(t), state)
	defer m.Close()

	// llama-3 has one knowledge and one execution result.
	for range 3 {
		m.Update(key("m"))
	}
	assert.Equal(t, "llama-3", m.query.Filter.Model)
	assert.Len(t, m.rows, 2)
	require.NotNil(t, m.selected())
	assert.Equal(t, "hooks-001", m.selected().TestID)

	m.Update(key("m"))
	assert.Equal(t, results.All, m.query.Filter.Model)
}

func TestNext(t *testing.T) {
	values := []string{"all", "knowledge", "execution"}
	tests := []struct {
		cur  string
		want string
	}{
		{"all", "knowledge"},
		{"execution", "all"},
		{"missing", "all"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, next(values, tt.cur), "next(%q)", tt.cur)
	}
}

func TestDescribeQuery(t *testing.T) {
	assert.Equal(t, "type: all · model: all · sort: none ↕", describeQuery(results.Query{Sort: results.SortNone}))
	assert.Equal(t, "type: execution · model: llama-3 · sort: desc ↓", describeQuery(results.Query{
		Filter: results.Filter{Kind: "execution", Model: "llama-3"},
		Sort:   results.SortDesc,
	}))
}

func TestResolveUISettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		args []string
		want uiSettings
	}{
		{
			name: "defaults",
			want: uiSettings{Port: config.DefaultPort, AutoOpen: true, Watch: true},
		},
		{
			name: "config",
			yaml: "ui:\n  port: 9000\n  auto_open: false\n  watch: true\n  session_secret: s3cret\n",
			want: uiSettings{Port: 9000, AutoOpen: false, Watch: true, Secret: "s3cret"},
		},
		{
			name: "flags override config",
			yaml: "ui:\n  port: 9000\n",
			args: []string{"--port", "7000", "--no-browser", "--watch=false"},
			want: uiSettings{Port: 7000, AutoOpen: false, Watch: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clitest.SetupTestProject(t, tt.yaml)

			cmd := NewUICommand()
			require.NoError(t, cmd.ParseFlags(tt.args))
			opts := &UIOptions{}
			opts.Port, _ = cmd.Flags().GetInt("port")
			opts.NoBrowser, _ = cmd.Flags().GetBool("no-browser")
			opts.Watch, _ = cmd.Flags().GetBool("watch")

			got := resolveUISettings(cmd, config.GetCurrentConfig(), opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

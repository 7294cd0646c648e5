package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/benchboard/internal/theme"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{name: "auto on terminal", mode: ModeAuto, isTTY: true, want: ModeText},
		{name: "auto piped", mode: ModeAuto, isTTY: false, want: ModeMarkdown},
		{name: "empty is auto", mode: "", isTTY: false, want: ModeMarkdown},
		{name: "explicit text piped", mode: ModeText, isTTY: false, want: ModeText},
		{name: "json", mode: ModeJSON, isTTY: true, want: ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_PlainWhenPiped(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)

	r.Header(1, "Summary")
	r.Success("loaded")
	r.Warning("careful")
	r.Muted("quiet")
	r.StatusLine("gpt-4o", "failed", "(2 issues)")
	r.Println(r.Color("#3858e9", "swatch"))
	r.Error("broken")

	assert.Equal(t, "Summary\n✓ loaded\n! careful\nquiet\n✗ gpt-4o (2 issues)\nswatch\n", out.String())
	assert.Equal(t, "✗ broken\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_MarkdownHeader(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeMarkdown)
	r.Header(2, "Models")
	assert.Equal(t, "## Models\n", out.String())
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"models": 3}))
	assert.JSONEq(t, `{"models": 3}`, out.String())
}

func TestRenderer_SetTheme(t *testing.T) {
	r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, ModeText)
	assert.Equal(t, theme.Light, r.Theme())
	r.SetTheme(theme.Dark)
	assert.Equal(t, theme.Dark, r.Theme())
}

func TestAmbient_NotATerminal(t *testing.T) {
	mode, ok := Ambient(&bytes.Buffer{})()
	assert.False(t, ok)
	assert.Empty(t, mode)
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Deep", FormatHeader(3, "Deep"))
	assert.Equal(t, "- **Grader**: llm-judge", FormatKeyValue("Grader", "llm-judge"))

	assert.Equal(t, "░░░░░░░░░░", FormatBar(0, 10))
	assert.Equal(t, "████████░░", FormatBar(82, 10))
	assert.Equal(t, "██████████", FormatBar(100, 10))
	assert.Equal(t, "██████████", FormatBar(140, 10))
	assert.Equal(t, "░░░░", FormatBar(-5, 4))
}

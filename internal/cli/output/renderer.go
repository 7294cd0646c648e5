// Package output renders command results for terminals, markdown consumers
// and JSON tooling.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/leapstack-labs/benchboard/internal/theme"
)

// Mode selects how a command renders.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes styled or plain output depending on mode and terminal.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	lg     *lipgloss.Renderer
	styles *Styles
	theme  theme.Mode
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, IsTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}

	var lg *lipgloss.Renderer
	if isTTY {
		lg = lipgloss.NewRenderer(out)
	} else {
		lg = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	}

	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		lg:     lg,
		theme:  theme.Light,
	}
	r.styles = NewStyles(lg)
	return r
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Ambient returns the terminal's background as a theme preference.
// Writers that are not terminals express none.
func Ambient(w io.Writer) theme.Ambient {
	return func() (theme.Mode, bool) {
		f, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return "", false
		}
		if termenv.NewOutput(f).HasDarkBackground() {
			return theme.Dark, true
		}
		return theme.Light, true
	}
}

// Mode returns the configured mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// EffectiveMode resolves auto: text on a terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// SetTheme adapts colors to a light or dark terminal background.
func (r *Renderer) SetTheme(mode theme.Mode) {
	r.theme = mode
	r.lg.SetHasDarkBackground(mode == theme.Dark)
}

// Theme returns the theme set with SetTheme.
func (r *Renderer) Theme() theme.Mode {
	return r.theme
}

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section header.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		return
	}
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(text))
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.StatusSuccess.String() + " " + msg)
}

// Warning writes a warning line.
func (r *Renderer) Warning(msg string) {
	r.Println(r.styles.Warning.Render("! " + msg))
}

// Error writes an error line to the error output.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// StatusLine writes "<icon> name" with an optional muted detail.
// status is "success", "warning" or "failed".
func (r *Renderer) StatusLine(name, status, detail string) {
	icon := r.styles.StatusSuccess.String()
	switch status {
	case "warning":
		icon = r.styles.StatusPartial.String()
	case "failed":
		icon = r.styles.StatusFailed.String()
	}
	line := icon + " " + name
	if detail != "" {
		line += " " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Color styles text in a model color. Plain outside a terminal.
func (r *Renderer) Color(hex, text string) string {
	return r.lg.NewStyle().Foreground(lipgloss.Color(hex)).Render(text)
}

// Box returns a rounded box style bordered in a model color.
func (r *Renderer) Box(hex string, width int) lipgloss.Style {
	return r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(hex)).
		Padding(0, 1).
		Width(width)
}

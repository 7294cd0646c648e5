package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/benchboard/internal/results"
)

// Styles are the lipgloss styles shared by the text renderers.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Badge   lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusPartial lipgloss.Style
	StatusFailed  lipgloss.Style
}

// Colors follow the dashboard stylesheet, with a dark variant per color.
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#3858e9", Dark: "#7b90ff"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34d399"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	colorError   = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	colorBadgeBg = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
)

// NewStyles creates the styles bound to lg.
func NewStyles(lg *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lg.NewStyle().Bold(true).Foreground(colorAccent),
		Header2: lg.NewStyle().Bold(true),
		Bold:    lg.NewStyle().Bold(true),
		Muted:   lg.NewStyle().Foreground(colorMuted),
		Success: lg.NewStyle().Foreground(colorSuccess),
		Warning: lg.NewStyle().Foreground(colorWarning),
		Error:   lg.NewStyle().Foreground(colorError),
		Info:    lg.NewStyle().Foreground(colorAccent),
		Badge:   lg.NewStyle().Background(colorBadgeBg).Padding(0, 1),

		StatusSuccess: lg.NewStyle().Foreground(colorSuccess).SetString("✓"),
		StatusPartial: lg.NewStyle().Foreground(colorWarning).SetString("~"),
		StatusFailed:  lg.NewStyle().Foreground(colorError).SetString("✗"),
	}
}

// Verdict returns the style of a result badge.
func (s *Styles) Verdict(v results.Verdict) lipgloss.Style {
	switch v {
	case results.VerdictPass:
		return s.Success
	case results.VerdictPartial:
		return s.Warning
	default:
		return s.Error
	}
}

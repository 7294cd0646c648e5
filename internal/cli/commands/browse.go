package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/results"
	"github.com/leapstack-labs/benchboard/internal/theme"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Explore results interactively in the terminal",
		Long: `Open a full-screen results table.

Keys:
  t      cycle the type filter
  m      cycle the model filter
  s      cycle the score sort (none, asc, desc)
  d      toggle light/dark and save the preference
  q      quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			snap, err := cc.LoadSnapshot()
			if err != nil {
				return err
			}
			state, err := cc.ThemeState()
			if err != nil {
				return err
			}

			m := newBrowseModel(snap, state)
			defer m.Close()

			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return m.err
		},
	}
}

const (
	browseChrome    = 7 // header, status, help and table borders
	browseMinHeight = 5
)

type browseStyles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
	verdict map[results.Verdict]lipgloss.Style
	table   table.Styles
}

func newBrowseStyles(mode theme.Mode) browseStyles {
	fg, muted, accent, selBg := lipgloss.Color("#111827"), lipgloss.Color("#6b7280"), lipgloss.Color("#3858e9"), lipgloss.Color("#e5e7eb")
	pass, partial, fail := lipgloss.Color("#047857"), lipgloss.Color("#b45309"), lipgloss.Color("#b91c1c")
	if mode == theme.Dark {
		fg, muted, accent, selBg = lipgloss.Color("#f3f4f6"), lipgloss.Color("#9ca3af"), lipgloss.Color("#7b90ff"), lipgloss.Color("#374151")
		pass, partial, fail = lipgloss.Color("#34d399"), lipgloss.Color("#fbbf24"), lipgloss.Color("#f87171")
	}

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		BorderBottom(true).
		Bold(true)
	ts.Cell = ts.Cell.Foreground(fg)
	ts.Selected = ts.Selected.Foreground(fg).Background(selBg).Bold(false)

	return browseStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		muted:   lipgloss.NewStyle().Foreground(muted),
		errText: lipgloss.NewStyle().Foreground(fail),
		verdict: map[results.Verdict]lipgloss.Style{
			results.VerdictPass:    lipgloss.NewStyle().Foreground(pass),
			results.VerdictPartial: lipgloss.NewStyle().Foreground(partial),
			results.VerdictFail:    lipgloss.NewStyle().Foreground(fail),
		},
		table: ts,
	}
}

// browseModel is the bubbletea model of the browse command.
type browseModel struct {
	snap   *source.Snapshot
	query  results.Query
	kinds  []string
	models []string
	rows   []results.Row

	theme       *theme.State
	unsubscribe func()
	styles      browseStyles

	table  table.Model
	width  int
	height int
	err    error
}

func newBrowseModel(snap *source.Snapshot, state *theme.State) *browseModel {
	kinds := []string{results.All}
	for _, k := range dataset.Kinds {
		kinds = append(kinds, string(k))
	}

	m := &browseModel{
		snap:   snap,
		query:  results.Query{Filter: results.Filter{Kind: results.All, Model: results.All}, Sort: results.SortNone},
		kinds:  kinds,
		models: append([]string{results.All}, snap.Dataset.ModelNames()...),
		theme:  state,
		styles: newBrowseStyles(state.Mode()),
	}
	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Test ID", Width: 24},
			{Title: "Type", Width: 10},
			{Title: "Model", Width: 20},
			{Title: "Score", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(browseMinHeight),
		table.WithStyles(m.styles.table),
	)
	m.unsubscribe = state.Subscribe(func(mode theme.Mode) {
		m.styles = newBrowseStyles(mode)
		m.table.SetStyles(m.styles.table)
	})
	m.refresh()
	return m
}

// Close removes the theme subscription.
func (m *browseModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// refresh re-applies the query. Cells stay unstyled: the table counts
// escape codes toward column width.
func (m *browseModel) refresh() {
	m.rows = m.query.Apply(m.snap.Rows)
	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, table.Row{r.TestID, kindLabel(r.Kind), r.Model, results.Badge(r)})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(browseMinHeight, msg.Height-browseChrome))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.query.Filter.Kind = next(m.kinds, m.query.Filter.Kind)
			m.refresh()
			return m, nil
		case "m":
			m.query.Filter.Model = next(m.models, m.query.Filter.Model)
			m.refresh()
			return m, nil
		case "s":
			m.query.Sort = m.query.Sort.Next()
			m.refresh()
			return m, nil
		case "d":
			if _, err := m.theme.Toggle(); err != nil {
				m.err = err
			} else {
				m.err = nil
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	var b strings.Builder

	md := m.snap.Dataset.Metadata
	b.WriteString(m.styles.title.Render(md.Suite))
	b.WriteString(" ")
	b.WriteString(m.styles.muted.Render(metadataLine(md)))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")

	status := fmt.Sprintf("(%d rows) %s", len(m.rows), describeQuery(m.query))
	if len(m.rows) == 0 {
		status = "No results match the current filters. " + status
	}
	if sel := m.selected(); sel != nil {
		v := results.Classify(*sel)
		status += "  " + m.styles.verdict[v].Render(string(v))
	}
	b.WriteString(m.styles.muted.Render(status))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.errText.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.muted.Render("t type · m model · s sort · d " + string(m.theme.Mode().Flip()) + " mode · q quit"))
	return b.String()
}

func (m *browseModel) selected() *results.Row {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return &m.rows[i]
}

// next returns the value after cur in values, wrapping around.
func next(values []string, cur string) string {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

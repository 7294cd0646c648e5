package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/benchboard/internal/cli/output"
	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/present"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

const (
	cardWidth  = 40
	barWidth   = 12
	labelWidth = 12
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the suite header and per-model cards",
		Long: `Print the dataset's suite metadata, one card per model with its
overall badge and category bars, and a score-by-category table.`,
		Example: `  # Cards for results.json in the terminal
  benchboard show

  # Markdown for a pull request comment
  benchboard show -d nightly.json -o markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			snap, err := cc.LoadSnapshot()
			if err != nil {
				return err
			}
			cc.ApplyTheme()
			return renderShow(cc.Renderer, cc.Cfg.GetUIConfig().Title, snap)
		},
	}
}

func renderShow(r *output.Renderer, title string, snap *source.Snapshot) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return showJSON(r, title, snap)
	case output.ModeMarkdown:
		return showMarkdown(r, title, snap)
	default:
		return showText(r, title, snap)
	}
}

func showText(r *output.Renderer, title string, snap *source.Snapshot) error {
	styles := r.Styles()
	md := snap.Dataset.Metadata

	r.Header(1, title)
	r.Println(styles.Badge.Render(md.Suite) + " " + styles.Muted.Render(metadataLine(md)))
	r.Println("")

	if len(snap.Cards) == 0 {
		r.Muted("This dataset has no models.")
		return nil
	}

	// Lay the cards out in the same column count as the dashboard grid.
	cols := present.CardColumns(len(snap.Cards))
	for start := 0; start < len(snap.Cards); start += cols {
		end := min(start+cols, len(snap.Cards))
		boxes := make([]string, 0, end-start)
		for _, card := range snap.Cards[start:end] {
			boxes = append(boxes, cardBox(r, card))
		}
		r.Println(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	r.Println("")

	r.Header(2, "Scores by category")
	scoreTable(r, snap).Render()
	return nil
}

func cardBox(r *output.Renderer, card present.Card) string {
	styles := r.Styles()
	body := r.Color(card.Color.Hex, "● ") + styles.Bold.Render(card.Name) + "  " + styles.Badge.Render(card.Badge()) + "\n"
	body += styles.Muted.Render(card.Subtitle)
	for _, bar := range card.Bars {
		body += fmt.Sprintf("\n%-*s %s %3d%%", labelWidth, bar.Label,
			r.Color(card.Color.Hex, output.FormatBar(bar.Percent, barWidth)), bar.Percent)
	}
	return r.Box(card.Color.Hex, cardWidth).Render(body)
}

func showMarkdown(r *output.Renderer, title string, snap *source.Snapshot) error {
	md := snap.Dataset.Metadata

	r.Println(output.FormatHeader(1, title))
	r.Println("")
	r.Println(output.FormatKeyValue("Suite", md.Suite))
	r.Println(output.FormatKeyValue("Grader", md.Grader.Kind))
	r.Println(output.FormatKeyValue("Dataset", md.Dataset.Name))
	r.Println(output.FormatKeyValue("Split", md.Dataset.Split))
	r.Println(output.FormatKeyValue("Concurrency", strconv.Itoa(md.Grader.Concurrency)))
	r.Println("")

	if len(snap.Cards) == 0 {
		r.Println("This dataset has no models.")
		return nil
	}

	r.Println(output.FormatHeader(2, "Models"))
	for _, card := range snap.Cards {
		r.Println("")
		r.Println(output.FormatHeader(3, card.Name+" "+card.Badge()))
		r.Println("")
		r.Println(card.Subtitle)
		r.Println("")
		for _, bar := range card.Bars {
			r.Println(output.FormatKeyValue(bar.Label, fmt.Sprintf("%d%%", bar.Percent)))
		}
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Scores by category"))
	r.Println("")
	scoreTable(r, snap).RenderMarkdown()
	return nil
}

func showJSON(r *output.Renderer, title string, snap *source.Snapshot) error {
	out := output.ShowOutput{
		Title:    title,
		Metadata: snap.Dataset.Metadata,
		Columns:  present.CardColumns(len(snap.Cards)),
		Models:   make([]output.ModelSummary, 0, len(snap.Cards)),
	}
	for i, card := range snap.Cards {
		percent := make(map[string]int, len(dataset.Categories))
		for _, c := range dataset.Categories {
			percent[string(c)] = present.Percent(snap.Dataset.Models[i].Scores.Get(c))
		}
		out.Models = append(out.Models, output.ModelSummary{
			Name:     card.Name,
			Color:    card.Color.CSS,
			Badge:    card.Badge(),
			Subtitle: card.Subtitle,
			Percent:  percent,
		})
	}
	return r.JSON(out)
}

// scoreTable is the chart's data as a table: one row per model, one column
// per score category.
func scoreTable(r *output.Renderer, snap *source.Snapshot) table.Writer {
	groups := present.Chart(snap.Dataset, snap.Colors)

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)

	header := table.Row{"Model"}
	for _, g := range groups {
		header = append(header, g.Label)
	}
	t.AppendHeader(header)

	for i, name := range snap.Dataset.ModelNames() {
		row := table.Row{name}
		for _, g := range groups {
			row = append(row, fmt.Sprintf("%d%%", g.Bars[i].Percent))
		}
		t.AppendRow(row)
	}
	return t
}

func metadataLine(md dataset.Metadata) string {
	return fmt.Sprintf("%s · %s · %s · concurrency %d",
		md.Grader.Kind, md.Dataset.Name, md.Dataset.Split, md.Grader.Concurrency)
}

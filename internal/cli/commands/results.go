package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/benchboard/internal/cli/output"
	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/results"
	"github.com/leapstack-labs/benchboard/internal/ui/features/api"
)

// ResultsOptions holds options for the results command.
type ResultsOptions struct {
	Type  string
	Model string
	Sort  string
}

// NewResultsCommand creates the results command.
func NewResultsCommand() *cobra.Command {
	opts := &ResultsOptions{}

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List per-test results as a table",
		Long: `Flatten every model's results into one table with a pass, partial
or fail badge per row.

Filters match exactly; a value that matches nothing yields an empty table.
Sorting orders by score and keeps ties in dataset order.`,
		Example: `  # Every result
  benchboard results

  # Knowledge results of one model, best first
  benchboard results --type knowledge --model gpt-4o --sort desc

  # As JSON for scripting
  benchboard results -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResults(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", results.All, "Result type filter (all|knowledge|execution)")
	cmd.Flags().StringVar(&opts.Model, "model", results.All, "Model filter (all or a model name)")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(results.SortNone), "Score sort order (none|asc|desc)")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{results.All, string(dataset.KindKnowledge), string(dataset.KindExecution)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(results.SortNone), string(results.SortAsc), string(results.SortDesc)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runResults(cmd *cobra.Command, opts *ResultsOptions) error {
	order, err := results.ParseSortOrder(opts.Sort)
	if err != nil {
		return err
	}

	cc := NewCommandContext(cmd)
	snap, err := cc.LoadSnapshot()
	if err != nil {
		return err
	}
	cc.ApplyTheme()

	query := results.Query{
		Filter: results.Filter{Kind: opts.Type, Model: opts.Model},
		Sort:   order,
	}
	if query.Filter.UnknownModel(snap.Dataset) {
		cc.Logger.Warn("model filter matches no model", "model", opts.Model, "models", snap.Dataset.ModelNames())
	}
	if k := dataset.Kind(opts.Type); opts.Type != results.All && opts.Type != "" && !k.Valid() {
		cc.Logger.Warn("type filter matches no result type", "type", opts.Type)
	}

	return renderResultRows(cc.Renderer, query, query.Apply(snap.Rows))
}

func renderResultRows(r *output.Renderer, q results.Query, rows []results.Row) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(api.NewResultsResponse(q, rows))
	case output.ModeMarkdown:
		resultsTable(r, rows, false).RenderMarkdown()
		r.Println("")
		r.Printf("(%d rows)\n", len(rows))
		return nil
	default:
		if len(rows) == 0 {
			r.Muted("No results match the current filters.")
			r.Println("(0 rows)")
			return nil
		}
		resultsTable(r, rows, true).Render()
		r.Printf("(%d rows)\n", len(rows))
		return nil
	}
}

func resultsTable(r *output.Renderer, rows []results.Row, styled bool) table.Writer {
	styles := r.Styles()

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Test ID", "Type", "Model", "Score"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})

	for _, row := range rows {
		badge := results.Badge(row)
		if styled {
			badge = styles.Verdict(results.Classify(row)).Render(badge)
		}
		t.AppendRow(table.Row{row.TestID, kindLabel(row.Kind), row.Model, badge})
	}
	return t
}

func kindLabel(k dataset.Kind) string {
	return cases.Title(language.English).String(string(k))
}

// describeQuery is the one-line summary shown by the browser status bar.
func describeQuery(q results.Query) string {
	kind, model := q.Filter.Kind, q.Filter.Model
	if kind == "" {
		kind = results.All
	}
	if model == "" {
		model = results.All
	}
	return fmt.Sprintf("type: %s · model: %s · sort: %s %s", kind, model, q.Sort, q.Sort.Glyph())
}

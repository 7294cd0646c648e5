package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/a-h/templ"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/benchboard/internal/results"
	"github.com/leapstack-labs/benchboard/internal/theme"
	"github.com/leapstack-labs/benchboard/internal/ui/features/dashboard/components"
	"github.com/leapstack-labs/benchboard/internal/ui/resources"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Format string
	Out    string
	Theme  string
	ResultsOptions
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard as a standalone file",
		Long: `Render the dashboard once into a self-contained file.

html writes a single page with the stylesheet inlined and no scripts, so it
can be attached to CI artifacts or opened offline. markdown converts the
header, cards and results table for pull request comments.`,
		Example: `  # Standalone HTML page
  benchboard export --out report.html

  # Markdown of the failing-first execution results
  benchboard export --format markdown --type execution --sort asc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "html", "Export format (html|markdown)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Page theme (light|dark, default: ui.theme or light)")
	cmd.Flags().StringVar(&opts.Type, "type", results.All, "Result type filter (all|knowledge|execution)")
	cmd.Flags().StringVar(&opts.Model, "model", results.All, "Model filter (all or a model name)")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(results.SortNone), "Score sort order (none|asc|desc)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"html", "markdown"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	if opts.Format != "html" && opts.Format != "markdown" {
		return fmt.Errorf("unknown export format %q (want html or markdown)", opts.Format)
	}
	order, err := results.ParseSortOrder(opts.Sort)
	if err != nil {
		return err
	}

	cc := NewCommandContext(cmd)

	mode := cc.Cfg.ForcedTheme()
	if opts.Theme != "" {
		if mode, err = theme.ParseMode(opts.Theme); err != nil {
			return err
		}
	}
	if mode == "" {
		mode = theme.Light
	}

	snap, err := cc.LoadSnapshot()
	if err != nil {
		return err
	}

	query := results.Query{
		Filter: results.Filter{Kind: opts.Type, Model: opts.Model},
		Sort:   order,
	}
	title := cc.Cfg.GetUIConfig().Title

	var doc string
	switch opts.Format {
	case "markdown":
		doc, err = ExportMarkdown(cmd.Context(), title, snap, query)
	default:
		doc, err = ExportHTML(cmd.Context(), title, snap, query, mode)
	}
	if err != nil {
		return err
	}

	if opts.Out == "" {
		_, err = io.WriteString(cc.Renderer.Writer(), doc)
		return err
	}
	if err := os.WriteFile(opts.Out, []byte(doc), 0o644); err != nil { //nolint:gosec // exported reports are meant to be shared
		return fmt.Errorf("failed to write %s: %w", opts.Out, err)
	}
	cc.Logger.Debug("export written", "path", opts.Out, "format", opts.Format, "bytes", len(doc))
	cc.Renderer.Success(fmt.Sprintf("Wrote %s", opts.Out))
	return nil
}

// ExportHTML renders the full dashboard page with its stylesheet inlined
// and no client runtime.
func ExportHTML(ctx context.Context, title string, snap *source.Snapshot, q results.Query, mode theme.Mode) (string, error) {
	css, err := resources.Stylesheet()
	if err != nil {
		return "", err
	}

	page := components.Page(components.PageData{
		Title:   title,
		Dataset: snap.Dataset,
		Cards:   snap.Cards,
		Colors:  snap.Colors,
		Table: components.TableData{
			Rows:   q.Apply(snap.Rows),
			Query:  q,
			Models: snap.Dataset.ModelNames(),
			Static: true,
		},
		Static:     true,
		Stylesheet: css,
	})

	return renderWithTheme(ctx, mode, page)
}

// ExportMarkdown converts the header, cards and results table to markdown.
// The chart has no useful markdown form and is left out.
func ExportMarkdown(ctx context.Context, title string, snap *source.Snapshot, q results.Query) (string, error) {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parts := []templ.Component{
			components.Header(title, snap.Dataset.Metadata, true),
			components.Cards(snap.Cards),
			components.ResultsTable(components.TableData{
				Rows:   q.Apply(snap.Rows),
				Query:  q,
				Models: snap.Dataset.ModelNames(),
				Static: true,
			}),
		}
		for _, p := range parts {
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})

	html, err := renderWithTheme(ctx, theme.Light, body)
	if err != nil {
		return "", err
	}
	md, err := htmltomarkdown.ConvertString("<html><body>" + html + "</body></html>")
	if err != nil {
		return "", fmt.Errorf("failed to convert export to markdown: %w", err)
	}
	return md + "\n", nil
}

func renderWithTheme(ctx context.Context, mode theme.Mode, c templ.Component) (string, error) {
	state, err := theme.New(theme.NewMemoryStore(mode), theme.NoAmbient)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := c.Render(theme.WithState(ctx, state), &buf); err != nil {
		return "", fmt.Errorf("failed to render export: %w", err)
	}
	return buf.String(), nil
}

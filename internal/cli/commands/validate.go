package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/benchboard/internal/cli/output"
	"github.com/leapstack-labs/benchboard/internal/dataset"
)

// ErrValidationFailed is returned when the dataset is invalid, so the
// process exits non-zero after the problems have been printed.
var ErrValidationFailed = errors.New("dataset validation failed")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset against the schema",
		Long: `Load the dataset and report every schema and consistency problem.

Exits non-zero when the dataset is invalid, for use in CI.`,
		Example: `  # Check results.json
  benchboard validate

  # Print the JSON Schema datasets are checked against
  benchboard validate --schema`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			if printSchema {
				_, err := cc.Renderer.Writer().Write(dataset.SchemaJSON())
				return err
			}
			return runValidate(cc)
		},
	}

	cmd.Flags().BoolVar(&printSchema, "schema", false, "Print the dataset JSON Schema and exit")
	return cmd
}

func runValidate(cc *CommandContext) error {
	r := cc.Renderer
	path := cc.Cfg.Dataset

	if err := cc.Cfg.ValidateDataset(); err != nil {
		return err
	}

	ds, err := dataset.Load(path)
	out := output.ValidateOutput{Path: path, Valid: err == nil}

	var ve *dataset.ValidationError
	switch {
	case err == nil:
		out.Models = len(ds.Models)
		out.Results = ds.ResultCount()
	case errors.As(err, &ve):
		out.Problems = ve.Problems
	default:
		// Not a validation failure: unreadable file and the like.
		return err
	}
	if !out.Valid {
		out.Error = err.Error()
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	case output.ModeMarkdown:
		validateMarkdown(r, out)
	default:
		validateText(r, out)
	}

	if !out.Valid {
		return fmt.Errorf("%w: %d problems in %s", ErrValidationFailed, len(out.Problems), path)
	}
	return nil
}

func validateText(r *output.Renderer, out output.ValidateOutput) {
	if out.Valid {
		r.Success(fmt.Sprintf("%s is valid", out.Path))
		r.Muted(fmt.Sprintf("%d models, %d results", out.Models, out.Results))
		return
	}
	r.StatusLine(out.Path, "failed", fmt.Sprintf("(%d problems)", len(out.Problems)))
	for _, p := range out.Problems {
		r.Println("  " + r.Styles().Bold.Render(p.Path) + " " + p.Message)
	}
}

func validateMarkdown(r *output.Renderer, out output.ValidateOutput) {
	r.Println(output.FormatHeader(1, "Dataset validation"))
	r.Println("")
	r.Println(output.FormatKeyValue("Path", out.Path))
	if out.Valid {
		r.Println(output.FormatKeyValue("Status", "valid"))
		r.Println(output.FormatKeyValue("Models", fmt.Sprintf("%d", out.Models)))
		r.Println(output.FormatKeyValue("Results", fmt.Sprintf("%d", out.Results)))
		return
	}
	r.Println(output.FormatKeyValue("Status", "invalid"))
	r.Println("")
	r.Println(output.FormatHeader(2, "Problems"))
	r.Println("")
	for _, p := range out.Problems {
		r.Printf("- `%s`: %s\n", p.Path, p.Message)
	}
}

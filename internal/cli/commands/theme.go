package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/benchboard/internal/cli/output"
	"github.com/leapstack-labs/benchboard/internal/theme"
)

// NewThemeCommand creates the theme command.
func NewThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the terminal theme preference",
		Long: `Show whether terminal output uses light or dark colors.

Without a saved preference the terminal background decides; ui.theme in
benchboard.yaml overrides the background. "theme toggle" flips and saves the
preference under the user config directory. The web dashboard keeps its own
preference per browser.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTheme(cmd, false)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip and save the terminal theme preference",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTheme(cmd, true)
		},
	})

	return cmd
}

func runTheme(cmd *cobra.Command, toggle bool) error {
	cc := NewCommandContext(cmd)

	state, err := cc.ThemeState()
	if err != nil {
		return err
	}
	path, err := theme.DefaultFilePath()
	if err != nil {
		return err
	}

	mode := state.Mode()
	if toggle {
		if mode, err = state.Toggle(); err != nil {
			return err
		}
		cc.Logger.Debug("theme toggled", "mode", mode, "file", path)
	}
	cc.Renderer.SetTheme(mode)

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.ThemeOutput{Mode: string(mode), File: path, Changed: toggle})
	case output.ModeMarkdown:
		r.Println(output.FormatKeyValue("Theme", string(mode)))
		r.Println(output.FormatKeyValue("File", path))
	default:
		if toggle {
			r.Success("Switched to " + string(mode) + " mode")
		} else {
			r.Println(r.Styles().Bold.Render(string(mode)))
		}
		r.Muted(path)
	}
	return nil
}

package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/benchboard/internal/cli/config"
	"github.com/leapstack-labs/benchboard/internal/cli/output"
	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/theme"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext writing to the command's streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// LoadDataset checks, loads and validates the configured dataset.
func (c *CommandContext) LoadDataset() (*dataset.Dataset, error) {
	if err := c.Cfg.ValidateDataset(); err != nil {
		return nil, err
	}
	ds, err := dataset.Load(c.Cfg.Dataset)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("dataset loaded", "path", c.Cfg.Dataset, "models", len(ds.Models), "results", ds.ResultCount())
	return ds, nil
}

// LoadSnapshot loads the dataset and derives its views.
func (c *CommandContext) LoadSnapshot() (*source.Snapshot, error) {
	ds, err := c.LoadDataset()
	if err != nil {
		return nil, err
	}
	return source.NewSnapshot(ds, 1), nil
}

// ThemeState opens the persisted terminal theme. A theme forced in the
// config wins over the terminal background.
func (c *CommandContext) ThemeState() (*theme.State, error) {
	path, err := theme.DefaultFilePath()
	if err != nil {
		return nil, err
	}

	ambient := output.Ambient(c.Renderer.Writer())
	if forced := c.Cfg.ForcedTheme(); forced != "" {
		ambient = func() (theme.Mode, bool) { return forced, true }
	}

	state, err := theme.New(theme.FileStore{Path: path}, ambient)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme preference: %w", err)
	}
	return state, nil
}

// ApplyTheme sets the renderer colors from the theme preference. A broken
// preference file is logged and ignored.
func (c *CommandContext) ApplyTheme() {
	state, err := c.ThemeState()
	if err != nil {
		c.Logger.Warn("ignoring theme preference", "error", err)
		return
	}
	c.Renderer.SetTheme(state.Mode())
}

// getConfig returns the current configuration, or defaults when the root
// command has not loaded one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Dataset:      config.DefaultDataset,
		OutputFormat: config.DefaultOutput,
		LogLevel:     config.DefaultLogLevel,
		LogFormat:    config.DefaultLogFormat,
		UI:           config.DefaultUIConfig(),
	}
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/benchboard/internal/cli/config"
	"github.com/leapstack-labs/benchboard/internal/ui"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	Dev       bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Serve the benchmark dashboard",
		Long: `Start a local web server showing the benchmark dashboard.

The dashboard provides:
- Per-model summary cards
- A grouped score chart
- A filterable, sortable results table
- A light/dark theme toggle remembered per browser
- Live reload when the dataset file changes`,
		Example: `  # Serve results.json on the default port
  benchboard ui

  # Serve another dataset on a custom port
  benchboard ui -d nightly.yaml --port 3000

  # Start without auto-opening a browser
  benchboard ui --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, fmt.Sprintf("Port to serve on (default: %d)", config.DefaultPort))
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload when the dataset file changes")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable browser hot reload endpoints")
	_ = cmd.Flags().MarkHidden("dev")

	return cmd
}

// uiSettings merges the ui config with the command's flags.
type uiSettings struct {
	Port     int
	AutoOpen bool
	Watch    bool
	Secret   string
}

func resolveUISettings(cmd *cobra.Command, cfg *config.Config, opts *UIOptions) uiSettings {
	uiCfg := cfg.GetUIConfig()

	s := uiSettings{
		Port:     uiCfg.Port,
		AutoOpen: uiCfg.AutoOpen && !opts.NoBrowser,
		Watch:    uiCfg.Watch,
		Secret:   uiCfg.SessionSecret,
	}
	if opts.Port != 0 {
		s.Port = opts.Port
	}
	if cmd.Flags().Changed("watch") {
		s.Watch = opts.Watch
	}
	return s
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cc := NewCommandContext(cmd)
	settings := resolveUISettings(cmd, cc.Cfg, opts)

	if err := cc.Cfg.ValidateDataset(); err != nil {
		return err
	}
	src, err := source.Open(cc.Cfg.Dataset, cc.Logger)
	if err != nil {
		return err
	}

	if settings.Secret == "" {
		// Theme cookies will not survive a restart.
		settings.Secret = uuid.NewString()
		cc.Logger.Debug("no ui.session_secret configured, using a random one")
	}

	server := ui.NewServer(ui.Config{
		Source:        src,
		Port:          settings.Port,
		Watch:         settings.Watch,
		Dev:           opts.Dev,
		Title:         cc.Cfg.GetUIConfig().Title,
		Theme:         cc.Cfg.ForcedTheme(),
		SessionSecret: settings.Secret,
		Logger:        cc.Logger,
	})

	if settings.AutoOpen {
		go openBrowser(server.URL())
	}

	cc.Renderer.Printf("Serving %s on %s\n", cc.Cfg.Dataset, server.URL())
	cc.Renderer.Muted("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(context.Background(), "open", url)
	case "linux":
		cmd = exec.CommandContext(context.Background(), "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(context.Background(), "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}

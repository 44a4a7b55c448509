package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
	"github.com/nsbbezerra/santa-maria-panel/internal/config"
	"github.com/nsbbezerra/santa-maria-panel/internal/panel"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagAPIURL     string
	flagJSON       bool
	flagVerbose    bool
	flagQuiet      bool
)

// resolvedCfg holds the effective configuration loaded by PersistentPreRunE.
// Available to all subcommands after the root pre-run phase completes.
// Config commands handle loading themselves so `config init` works before
// a base URL exists.
var resolvedCfg *config.Resolved

// skipConfigCommands lists commands that do not need a resolved base URL.
// Uses CommandPath() for explicit matching.
var skipConfigCommands = map[string]bool{
	"panel config":      true,
	"panel config init": true,
	"panel config show": true,
}

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "panel",
		Short:   "Santa Maria municipal panel CLI",
		Long:    "Administers the Santa Maria municipal website content: news, videos, documents, secretariats, agenda and banners.",
		Version: version,
		// Silence Cobra's default error/usage printing — we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfigCommands[cmd.CommandPath()] {
				return nil
			}

			return loadConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides config)")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newNewsCmd())
	cmd.AddCommand(newVideosCmd())
	cmd.AddCommand(newBidsCmd())
	cmd.AddCommand(newPublicationsCmd())
	cmd.AddCommand(newInformativesCmd())
	cmd.AddCommand(newOrdinancesCmd())
	cmd.AddCommand(newDecreesCmd())
	cmd.AddCommand(newSecretariesCmd())
	cmd.AddCommand(newDesksCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newBannersCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}

// loadConfig resolves the effective configuration from the override chain
// and stores the result in resolvedCfg for use by subcommands.
func loadConfig() error {
	cli := config.CLIOverrides{
		ConfigPath: flagConfigPath,
		BaseURL:    flagAPIURL,
	}

	resolved, err := config.Resolve(config.ReadEnvOverrides(), cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// buildLogger creates an slog.Logger configured by the resolved config and
// CLI flags. Config-file log level provides the baseline; --verbose and
// --quiet override it because CLI flags always win.
func buildLogger() *slog.Logger {
	level := slog.LevelInfo

	if resolvedCfg != nil {
		switch resolvedCfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newPanelClient wires the transport and typed resource client from the
// resolved configuration.
func newPanelClient() *panel.Client {
	logger := buildLogger()

	httpClient := &http.Client{Timeout: resolvedCfg.Timeout}
	apiClient := api.NewClient(resolvedCfg.BaseURL, httpClient, logger)

	return panel.NewClient(apiClient, logger)
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsbbezerra/santa-maria-panel/internal/config"
)

// newConfigCmd groups configuration management subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage panel configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// newConfigInitCmd writes a starter config file with the given base URL.
func newConfigInitCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter config file",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := flagConfigPath
			if path == "" {
				path = config.DefaultConfigPath()
			}

			if err := config.Write(path, apiURL); err != nil {
				return err
			}

			statusf("Wrote %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL to store")
	_ = cmd.MarkFlagRequired("api-url")

	return cmd
}

// newConfigShowCmd prints the effective configuration after the override
// chain, so the operator can see which base URL a command would hit.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			if flagJSON {
				return printJSON(os.Stdout, resolvedCfg)
			}

			fmt.Printf("config file:    %s\n", resolvedCfg.ConfigPath)
			fmt.Printf("api base url:   %s\n", resolvedCfg.BaseURL)
			fmt.Printf("timeout:        %s\n", resolvedCfg.Timeout)
			fmt.Printf("poll interval:  %s\n", resolvedCfg.PollInterval)
			fmt.Printf("page size:      %d\n", resolvedCfg.PageSize)
			fmt.Printf("log level:      %s\n", resolvedCfg.LogLevel)

			return nil
		},
	}
}

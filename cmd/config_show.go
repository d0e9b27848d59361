// Package cmd provides config show command functionality for prefix-sync CLI
package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigShowCommand represents the config show command.
type ConfigShowCommand struct {
	output string
}

// NewConfigShowCommand creates a new ConfigShowCommand.
func NewConfigShowCommand() *ConfigShowCommand {
	return &ConfigShowCommand{}
}

// GetCobraCommand returns the cobra command for config show operations.
func (c *ConfigShowCommand) GetCobraCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  "Display the effective configuration including defaults, environment overrides and legacy settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := getApp(cmd)
			if app.ConfigErr != nil {
				return app.ConfigErr
			}
			return PrintOutput(cmd.OutOrStdout(), c.output, app.Config)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	showCmd.Flags().StringVarP(&c.output, "output", "o", "yaml", "Output format (yaml, json)")

	return showCmd
}

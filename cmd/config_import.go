// Package cmd provides config import command functionality for prefix-sync CLI
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/trly/prefix-sync/internal/config"
)

// ConfigImportCommand converts a legacy INI settings file.
type ConfigImportCommand struct {
	output string
}

// NewConfigImportCommand creates a new ConfigImportCommand.
func NewConfigImportCommand() *ConfigImportCommand {
	return &ConfigImportCommand{}
}

// GetCobraCommand returns the cobra command for config import operations.
func (c *ConfigImportCommand) GetCobraCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <legacy.conf>",
		Short: "Convert a legacy INI settings file to YAML",
		Long: `Convert a legacy INI settings file to YAML.

The legacy file keeps its values in a [main] section:

[main]
interface=eth0
prefixLength=56
files=/etc/radvd.conf, /etc/dhcp/dhcpd6.conf
units=radvd.service, isc-dhcp-server6.service

Redirect the output to config.yaml to migrate.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			legacy, err := config.LoadLegacy(args[0])
			if err != nil {
				return err
			}
			return PrintOutput(cmd.OutOrStdout(), c.output, legacy)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	importCmd.Flags().StringVarP(&c.output, "output", "o", "yaml", "Output format (yaml, json)")

	return importCmd
}

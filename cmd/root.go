// Package cmd provides the command line interface for prefix-sync
/*
Copyright © 2025 Travis Lyons travis.lyons@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trly/prefix-sync/internal/config"
	"github.com/trly/prefix-sync/internal/log"
)

type contextKey string

const appContextKey contextKey = "app"

// skipConfigAnnotation marks commands that run without loading settings.
const skipConfigAnnotation = "prefix-sync/skip-config"

// RootCommand represents the root command for prefix-sync CLI.
type RootCommand struct {
	// newProvider builds the config provider. Tests replace it.
	newProvider func() config.Provider
	// newApp builds the App from loaded settings. Tests replace it.
	newApp func(log.Logger, config.Provider, error) *App
}

var (
	userMode       bool
	configFilePath string
	verbose        bool
)

// NewRootCommand creates a new RootCommand with production dependencies.
func NewRootCommand() *RootCommand {
	return &RootCommand{
		newProvider: config.NewDefaultConfigProvider,
		newApp:      NewApp,
	}
}

// GetCobraCommand returns the cobra root command for prefix-sync CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	if c.newProvider == nil {
		c.newProvider = config.NewDefaultConfigProvider
	}
	if c.newApp == nil {
		c.newApp = NewApp
	}

	rootCmd := &cobra.Command{
		Use:   "prefix-sync",
		Short: "Prefix-Sync keeps configuration files in step with the delegated IPv6 prefix.",
		Long: `Prefix-Sync keeps configuration files in step with the delegated IPv6 prefix.
It reads the global IPv6 address of an interface, rewrites stale network values in
the configured files and reloads or restarts the configured systemd units when
anything changed.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}

			provider := c.newProvider()
			if configFilePath != "" {
				provider.SetConfigFilePath(configFilePath)
			}

			cfg, err := provider.InitConfig()
			if err != nil {
				cfg = config.NewDefaultSettings()
				provider.SetConfig(cfg)
			}

			if verbose {
				cfg.Verbose = verbose
			}
			if userMode {
				cfg.UserMode = userMode
			}

			log.Init(cfg.Verbose)
			logger := log.GetLogger()
			if cfg.Verbose {
				logger.Debug("Using config", "file", provider.ConfigFileUsed())
			}

			app := c.newApp(logger, provider, err)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appContextKey, app))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&userMode, "user", "u", false, "Use the per-user service manager")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "Path to the configuration file")

	rootCmd.AddCommand(
		NewSyncCommand().GetCobraCommand(),
		NewCheckCommand().GetCobraCommand(),
		NewConfigCommand().GetCobraCommand(),
		NewUpdateCommand().GetCobraCommand(),
		NewVersionCommand().GetCobraCommand(),
	)

	return rootCmd
}

// getApp retrieves the App from the command context.
func getApp(cmd *cobra.Command) *App {
	if ctx := cmd.Context(); ctx != nil {
		if app, ok := ctx.Value(appContextKey).(*App); ok {
			return app
		}
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(NewRootCommand().GetCobraCommand(), os.Args[1:])
}

func execute(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return exitCode(err)
}

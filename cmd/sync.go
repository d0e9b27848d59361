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

	"github.com/spf13/cobra"
	"github.com/trly/prefix-sync/internal/netif"
	"github.com/trly/prefix-sync/internal/patch"
	"github.com/trly/prefix-sync/internal/pipeline"
	"github.com/trly/prefix-sync/internal/status"
	"github.com/trly/prefix-sync/internal/systemd"
	"github.com/trly/prefix-sync/internal/validate"
)

// SyncDeps holds dependencies for the sync command.
type SyncDeps struct {
	PipelineDeps
}

// SyncCommand represents the sync command for prefix-sync CLI.
type SyncCommand struct{}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand() *SyncCommand {
	return &SyncCommand{}
}

// GetCobraCommand returns the cobra command for sync operations.
func (c *SyncCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Rewrite configured files for the current IPv6 network and restart units",
		Long: `Rewrite configured files for the current IPv6 network and restart units.

The first global IPv6 address of the configured interface is masked to the
configured prefix length. Every configured file that carries an older network
with the same leading byte and prefix length is rewritten. When at least one
file changed, every configured unit is reloaded or restarted through systemd.

Runs exactly once and reports progress through sd_notify, so it fits a
Type=notify oneshot service triggered by a network change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func (c *SyncCommand) buildDeps(app *App) SyncDeps {
	return SyncDeps{PipelineDeps: NewPipelineDeps(app)}
}

// Run validates settings, connects to the service manager and runs one pass.
func (c *SyncCommand) Run(ctx context.Context, app *App, deps SyncDeps) error {
	settings := app.Config

	if err := app.RequireConfig(); err != nil {
		deps.Reporter.FatalStopping(fmt.Sprintf("Invalid configuration: %v", err), status.ErrnoNoSys)
		return &ExitError{Code: ExitConfig, Err: err}
	}

	codec, err := patch.NewCodec(settings.FileEncoding)
	if err != nil {
		deps.Reporter.FatalStopping(fmt.Sprintf("Invalid configuration: %v", err), status.ErrnoNoSys)
		return &ExitError{Code: ExitConfig, Err: err}
	}

	for _, finding := range validate.NewValidator(deps.Logger).Settings(settings) {
		deps.Logger.Warn("Check configuration", "subject", finding.Subject, "problem", finding.Message)
	}

	conn, err := deps.ConnectionFactory.NewConnection(ctx, settings.UserMode)
	if err != nil {
		deps.Reporter.FatalStopping(fmt.Sprintf("Unable to connect to service manager: %v", err), status.ErrnoConnRefused)
		return &ExitError{Code: ExitUnavailable, Err: err}
	}
	defer func() {
		if err := conn.Close(); err != nil {
			deps.Logger.Debug("Error closing service manager connection", "error", err)
		}
	}()

	deps.Reporter.Ready()

	runner := pipeline.NewRunner(
		netif.NewResolver(deps.AddressProvider, deps.Logger),
		patch.NewEngine(deps.Opener, codec, deps.Reporter, deps.Logger),
		systemd.NewOrchestrator(conn, systemd.OrchestratorOptions{
			Mode:         app.Identity.UnitMode,
			ReplyTimeout: settings.ReplyTimeout,
			Clock:        deps.Clock,
		}, deps.Reporter, deps.Logger),
		deps.Reporter,
		deps.Logger,
	)

	outcome := runner.Run(ctx, settings)
	deps.Reporter.Stopping()

	c.logOutcome(deps, outcome)
	return nil
}

func (c *SyncCommand) logOutcome(deps SyncDeps, outcome *pipeline.Outcome) {
	switch {
	case outcome.State == pipeline.StateAborted:
		deps.Logger.Warn("Sync stopped without a current network", "error", outcome.Err)
	case outcome.PartialFailure:
		failedFiles := 0
		if outcome.Patch != nil {
			failedFiles = len(outcome.Patch.Errors)
		}
		failedUnits := 0
		if outcome.Restart != nil {
			failedUnits = len(outcome.Restart.Failed())
		}
		deps.Logger.Warn("Sync finished with failures", "network", outcome.Descriptor.String(), "failedFiles", failedFiles, "failedUnits", failedUnits)
	default:
		changed := 0
		if outcome.Patch != nil {
			changed = len(outcome.Patch.Changed)
		}
		deps.Logger.Debug("Sync finished", "network", outcome.Descriptor.String(), "changedFiles", changed, "transitions", outcome.Transitions)
	}
}

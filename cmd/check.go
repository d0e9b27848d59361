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
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"github.com/trly/prefix-sync/internal/netif"
	"github.com/trly/prefix-sync/internal/patch"
	"github.com/trly/prefix-sync/internal/status"
	"github.com/trly/prefix-sync/internal/validate"
)

// CheckDeps holds dependencies for the check command.
type CheckDeps struct {
	PipelineDeps
}

// CheckCommand represents the check command.
type CheckCommand struct{}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// GetCobraCommand returns the cobra command for a dry run.
func (c *CheckCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show what sync would change without writing files or restarting units",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, cmd.OutOrStdout(), deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func (c *CheckCommand) buildDeps(app *App) CheckDeps {
	deps := CheckDeps{PipelineDeps: NewPipelineDeps(app)}
	deps.Reporter = status.Discard
	return deps
}

// Run resolves the current network and prints the state of every configured file.
func (c *CheckCommand) Run(_ context.Context, app *App, out io.Writer, deps CheckDeps) error {
	settings := app.Config
	if err := app.RequireConfig(); err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}

	codec, err := patch.NewCodec(settings.FileEncoding)
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}

	for _, finding := range validate.NewValidator(deps.Logger).Settings(settings) {
		_, _ = fmt.Fprintf(out, "Warning: %s\n", finding)
	}

	descriptor, err := netif.NewResolver(deps.AddressProvider, deps.Logger).Lookup(settings.Interface, settings.PrefixLength)
	if err != nil {
		return fmt.Errorf("unable to get current network: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Current network: %s\n\n", descriptor)

	engine := patch.NewEngine(deps.Opener, codec, deps.Reporter, deps.Logger)
	entries, err := engine.Check(descriptor, settings.Files)
	if err != nil {
		return err
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("File", "State", "Detail")
	tbl.WithWriter(out).WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	stale := 0
	for _, entry := range entries {
		tbl.AddRow(entry.Path, string(entry.State), checkDetail(entry))
		if entry.State == patch.StateStale {
			stale++
		}
	}
	tbl.Print()

	_, _ = fmt.Fprintln(out)
	if stale == 0 {
		_, _ = fmt.Fprintln(out, "No service restarts needed.")
	} else {
		_, _ = fmt.Fprintf(out, "%d file(s) would be updated; units to restart: %s\n", stale, strings.Join(settings.Units, ", "))
	}
	return nil
}

func checkDetail(entry patch.CheckEntry) string {
	switch entry.State {
	case patch.StateStale:
		return strings.Join(entry.Matches, ", ")
	case patch.StateUnreadable:
		return entry.Err.Error()
	default:
		return ""
	}
}

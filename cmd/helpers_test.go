package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
)

// ExecuteCommand runs cmd with args using whatever writers the caller set.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, args []string) error {
	t.Helper()
	cmd.SetArgs(args)
	return cmd.Execute()
}

// ExecuteCommandWithCapture runs cmd with args and returns everything it
// wrote through cobra's stdout and stderr writers.
func ExecuteCommandWithCapture(t *testing.T, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// SetupCommandContext stores app on the command context.
func SetupCommandContext(cmd *cobra.Command, app *App) {
	cmd.SetContext(context.WithValue(context.Background(), appContextKey, app))
}

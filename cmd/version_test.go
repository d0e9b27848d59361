package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVersionCommand_Basic tests version command.
func TestVersionCommand_Basic(t *testing.T) {
	versionCmd := NewVersionCommand()
	cmd := versionCmd.GetCobraCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := ExecuteCommand(t, cmd, []string{})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "prefix-sync version dev")
	assert.Contains(t, out.String(), "commit: none")
	assert.Contains(t, out.String(), "Skipping update check for development build.")
}

func TestVersionCommand_SkipsConfig(t *testing.T) {
	cmd := NewVersionCommand().GetCobraCommand()
	assert.Equal(t, "true", cmd.Annotations[skipConfigAnnotation])
}

package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trly/prefix-sync/internal/config"
	"github.com/trly/prefix-sync/internal/log"
	"github.com/trly/prefix-sync/internal/status"
	"github.com/trly/prefix-sync/internal/testutil"
)

func resetRootFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		userMode = false
		verbose = false
		configFilePath = ""
	})
}

// newTestRoot builds a root command that reads config only from a temp
// directory and wires the App with test doubles.
func newTestRoot(t *testing.T, rec *status.Recorder) *RootCommand {
	t.Helper()
	resetRootFlags(t)

	identity := config.DefaultIdentity()
	identity.ConfigPaths = []string{t.TempDir()}

	return &RootCommand{
		newProvider: func() config.Provider {
			return config.NewConfigProvider(identity)
		},
		newApp: func(_ log.Logger, provider config.Provider, err error) *App {
			return NewAppBuilder(t).
				WithConfig(provider.GetConfig()).
				WithConfigErr(err).
				WithReporter(rec).
				Build(t)
		},
	}
}

// TestRootCommandFlags verifies flag parsing.
func TestRootCommandFlags(t *testing.T) {
	rootCmd := NewRootCommand()
	cmd := rootCmd.GetCobraCommand()

	// Test flag defaults
	userFlag := cmd.PersistentFlags().Lookup("user")
	require.NotNil(t, userFlag)
	assert.Equal(t, "false", userFlag.DefValue)
	assert.Equal(t, "u", userFlag.Shorthand)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "false", verboseFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand().GetCobraCommand()

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"sync", "check", "config", "update", "version"})
}

func TestExecute_ConfigShowFromFile(t *testing.T) {
	path := testutil.WriteFile(t, "config.yaml", "interface: ppp0\nprefixLength: 48\nfiles:\n  - /etc/radvd.conf\n")
	cmd := newTestRoot(t, status.NewRecorder()).GetCobraCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	code := execute(cmd, []string{"config", "show", "--config", path})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "interface: ppp0")
	assert.Contains(t, out.String(), "prefixLength: 48")
}

func TestExecute_UserFlagOverridesConfig(t *testing.T) {
	path := testutil.WriteFile(t, "config.yaml", "interface: ppp0\n")
	cmd := newTestRoot(t, status.NewRecorder()).GetCobraCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	code := execute(cmd, []string{"--user", "config", "show", "--config", path})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "userMode: true")
}

func TestExecute_SyncInvalidPrefixLength(t *testing.T) {
	path := testutil.WriteFile(t, "config.yaml", "interface: ppp0\nprefixLength: 57\n")
	rec := status.NewRecorder()
	cmd := newTestRoot(t, rec).GetCobraCommand()
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)

	code := execute(cmd, []string{"sync", "--config", path})

	assert.Equal(t, ExitConfig, code)
	assert.Contains(t, errOut.String(), "Error:")
	assert.Equal(t, []string{status.KindFatal}, rec.Kinds())
}

func TestExecute_SyncMalformedConfig(t *testing.T) {
	path := testutil.WriteFile(t, "config.yaml", "interface: [unclosed\n")
	rec := status.NewRecorder()
	cmd := newTestRoot(t, rec).GetCobraCommand()
	cmd.SetErr(&bytes.Buffer{})

	code := execute(cmd, []string{"sync", "--config", path})

	assert.Equal(t, ExitConfig, code)
	assert.Equal(t, []string{status.KindFatal}, rec.Kinds())
}

func TestExecute_VersionIgnoresBrokenConfig(t *testing.T) {
	path := testutil.WriteFile(t, "config.yaml", "interface: [unclosed\n")
	cmd := newTestRoot(t, status.NewRecorder()).GetCobraCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	code := execute(cmd, []string{"version", "--config", path})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "prefix-sync version")
}

func TestExecute_UnknownCommand(t *testing.T) {
	cmd := newTestRoot(t, status.NewRecorder()).GetCobraCommand()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})

	assert.Equal(t, ExitFailure, execute(cmd, []string{"frobnicate"}))
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: ExitConfig, Err: config.ErrEmptyInterface}

	assert.Equal(t, config.ErrEmptyInterface.Error(), err.Error())
	assert.ErrorIs(t, err, config.ErrEmptyInterface)
}

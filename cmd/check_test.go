package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trly/prefix-sync/internal/netif"
	"github.com/trly/prefix-sync/internal/patch"
	"github.com/trly/prefix-sync/internal/status"
	"github.com/trly/prefix-sync/internal/systemd"
	"github.com/trly/prefix-sync/internal/testutil"
)

func TestCheckCommand_ReportsFileStates(t *testing.T) {
	current := testutil.WriteFile(t, "current.conf", "prefix 2001:db8:aabb:cc00::/56;\n")
	stale := testutil.WriteFile(t, "stale.conf", "prefix 2001:db8:ab00::/56;\n")
	missing := filepath.Join(t.TempDir(), "missing.conf")
	rec := status.NewRecorder()
	factory := &systemd.MockConnectionFactory{
		NewConnectionFunc: func(context.Context, bool) (systemd.Connection, error) {
			return nil, errors.New("check must not connect")
		},
	}
	app := NewAppBuilder(t).
		WithFiles(current, stale, missing).
		WithUnits("radvd.service").
		WithReporter(rec).
		WithConnectionFactory(factory).
		Build(t)

	c := NewCheckCommand()
	var out bytes.Buffer
	err := c.Run(context.Background(), app, &out, c.buildDeps(app))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Current network: 2001:db8:aabb:cc00::/56")
	assert.Contains(t, text, string(patch.StateCurrent))
	assert.Contains(t, text, string(patch.StateStale))
	assert.Contains(t, text, string(patch.StateUnreadable))
	assert.Contains(t, text, "2001:db8:ab00::/56")
	assert.Contains(t, text, "1 file(s) would be updated; units to restart: radvd.service")

	assert.Equal(t, "prefix 2001:db8:ab00::/56;\n", testutil.ReadFile(t, stale))
	assert.Empty(t, rec.Events)
}

func TestCheckCommand_NothingStale(t *testing.T) {
	current := testutil.WriteFile(t, "current.conf", "prefix 2001:db8:aabb:cc00::/56;\n")
	app := NewAppBuilder(t).WithFiles(current).Build(t)

	c := NewCheckCommand()
	var out bytes.Buffer
	require.NoError(t, c.Run(context.Background(), app, &out, c.buildDeps(app)))
	assert.Contains(t, out.String(), "No service restarts needed.")
}

func TestCheckCommand_NoCurrentNetwork(t *testing.T) {
	app := NewAppBuilder(t).WithAddressProvider(netif.StaticProvider("fe80::1")).Build(t)

	c := NewCheckCommand()
	var out bytes.Buffer
	err := c.Run(context.Background(), app, &out, c.buildDeps(app))

	require.Error(t, err)
	assert.ErrorIs(t, err, netif.ErrNoGlobalAddress)
}

func TestCheckCommand_InvalidConfig(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	app.Config.Interface = ""

	c := NewCheckCommand()
	err := c.Run(context.Background(), app, &bytes.Buffer{}, c.buildDeps(app))

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitConfig, exitErr.Code)
}

func TestCheckCommand_PrintsSettingsWarnings(t *testing.T) {
	current := testutil.WriteFile(t, "current.conf", "prefix 2001:db8:aabb:cc00::/56;\n")
	app := NewAppBuilder(t).WithFiles(current).WithUnits("radvd").Build(t)

	c := NewCheckCommand()
	var out bytes.Buffer
	require.NoError(t, c.Run(context.Background(), app, &out, c.buildDeps(app)))

	assert.Contains(t, out.String(), "Warning: radvd: unit name has no known unit type suffix")
}

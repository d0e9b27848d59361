package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/trly/prefix-sync/internal/config"
	"github.com/trly/prefix-sync/internal/fs"
	"github.com/trly/prefix-sync/internal/log"
	"github.com/trly/prefix-sync/internal/netif"
	"github.com/trly/prefix-sync/internal/status"
	"github.com/trly/prefix-sync/internal/systemd"
	"github.com/trly/prefix-sync/internal/testutil"
)

// AppBuilder provides a fluent interface for building test Apps.
type AppBuilder struct {
	logger            log.Logger
	config            *config.Settings
	configErr         error
	reporter          status.Reporter
	addressProvider   netif.Provider
	connectionFactory systemd.ConnectionFactory
	clock             clock.Clock
}

// NewAppBuilder creates a new AppBuilder with sensible defaults.
func NewAppBuilder(t *testing.T) *AppBuilder {
	cfg := config.NewDefaultSettings()
	cfg.Interface = "wan0"
	return &AppBuilder{
		logger:            testutil.NewTestLogger(t),
		config:            cfg,
		reporter:          status.NewRecorder(),
		addressProvider:   netif.StaticProvider("fe80::1", "2001:0db8:aabb:ccdd::1"),
		connectionFactory: &systemd.MockConnectionFactory{Connection: doneConnection()},
		clock:             clock.NewMock(),
	}
}

func (b *AppBuilder) WithConfig(c *config.Settings) *AppBuilder {
	b.config = c
	return b
}

func (b *AppBuilder) WithConfigErr(err error) *AppBuilder {
	b.configErr = err
	return b
}

func (b *AppBuilder) WithFiles(files ...string) *AppBuilder {
	b.config.Files = files
	return b
}

func (b *AppBuilder) WithUnits(units ...string) *AppBuilder {
	b.config.Units = units
	return b
}

func (b *AppBuilder) WithReporter(r status.Reporter) *AppBuilder {
	b.reporter = r
	return b
}

func (b *AppBuilder) WithAddressProvider(p netif.Provider) *AppBuilder {
	b.addressProvider = p
	return b
}

func (b *AppBuilder) WithConnectionFactory(f systemd.ConnectionFactory) *AppBuilder {
	b.connectionFactory = f
	return b
}

func (b *AppBuilder) Build(t *testing.T) *App {
	provider := testutil.NewMockConfig(t)
	provider.SetConfig(b.config)
	return &App{
		Logger:            b.logger,
		Config:            b.config,
		ConfigProvider:    provider,
		ConfigErr:         b.configErr,
		Identity:          config.DefaultIdentity(),
		Clock:             b.clock,
		Reporter:          b.reporter,
		AddressProvider:   b.addressProvider,
		ConnectionFactory: b.connectionFactory,
		FSService:         fs.NewService(b.logger),
	}
}

// doneConnection returns a connection whose jobs all complete with "done".
func doneConnection() *systemd.MockConnection {
	return &systemd.MockConnection{
		ReloadOrRestartUnitFunc: func(context.Context, string, string) (<-chan string, int, error) {
			return systemd.Reply("done"), 1, nil
		},
	}
}

// failingFactory returns a factory that cannot reach the bus.
func failingFactory() *systemd.MockConnectionFactory {
	return &systemd.MockConnectionFactory{
		NewConnectionFunc: func(_ context.Context, userMode bool) (systemd.Connection, error) {
			return nil, systemd.NewConnectionError(userMode, errors.New("no such file or directory"))
		},
	}
}

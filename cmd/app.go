// Package cmd provides the command line interface for prefix-sync
package cmd

import (
	"github.com/benbjohnson/clock"
	"github.com/trly/prefix-sync/internal/config"
	"github.com/trly/prefix-sync/internal/fs"
	"github.com/trly/prefix-sync/internal/log"
	"github.com/trly/prefix-sync/internal/netif"
	"github.com/trly/prefix-sync/internal/status"
	"github.com/trly/prefix-sync/internal/systemd"
)

// App holds the application dependencies for command line interface.
type App struct {
	Logger            log.Logger
	Config            *config.Settings
	ConfigProvider    config.Provider
	ConfigErr         error
	Identity          config.Identity
	Clock             clock.Clock
	Reporter          status.Reporter
	AddressProvider   netif.Provider
	ConnectionFactory systemd.ConnectionFactory
	FSService         *fs.Service
}

// NewApp creates a new App with all dependencies initialized.
func NewApp(logger log.Logger, configProv config.Provider, configErr error) *App {
	identity := config.DefaultIdentity()

	app := &App{
		Logger:            logger,
		Config:            configProv.GetConfig(),
		ConfigProvider:    configProv,
		ConfigErr:         configErr,
		Identity:          identity,
		Clock:             clock.New(),
		Reporter:          status.NewNotifier(logger),
		ConnectionFactory: systemd.NewConnectionFactory(identity, logger),
		FSService:         fs.NewService(logger),
	}
	app.initPlatformComponents()

	return app
}

// RequireConfig returns an error when settings failed to load or are invalid.
func (a *App) RequireConfig() error {
	if a.ConfigErr != nil {
		return a.ConfigErr
	}
	return a.Config.Validate()
}

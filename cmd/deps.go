package cmd

import (
	"github.com/benbjohnson/clock"
	"github.com/trly/prefix-sync/internal/fs"
	"github.com/trly/prefix-sync/internal/log"
	"github.com/trly/prefix-sync/internal/netif"
	"github.com/trly/prefix-sync/internal/status"
	"github.com/trly/prefix-sync/internal/systemd"
)

// CommonDeps provides dependencies common across commands.
type CommonDeps struct {
	Clock  clock.Clock
	Logger log.Logger
}

// NewCommonDeps creates production common dependencies.
func NewCommonDeps(logger log.Logger) CommonDeps {
	return CommonDeps{
		Clock:  clock.New(),
		Logger: logger,
	}
}

// NewRootDeps creates common root dependencies for all commands.
// This helper reduces duplication in buildDeps methods.
func NewRootDeps(app *App) CommonDeps {
	deps := NewCommonDeps(app.Logger)
	if app.Clock != nil {
		deps.Clock = app.Clock
	}
	return deps
}

// PipelineDeps are the collaborators of a detect and patch pass.
type PipelineDeps struct {
	CommonDeps
	Reporter          status.Reporter
	AddressProvider   netif.Provider
	ConnectionFactory systemd.ConnectionFactory
	Opener            fs.Opener
}

// NewPipelineDeps creates pipeline dependencies from the App.
func NewPipelineDeps(app *App) PipelineDeps {
	return PipelineDeps{
		CommonDeps:        NewRootDeps(app),
		Reporter:          app.Reporter,
		AddressProvider:   app.AddressProvider,
		ConnectionFactory: app.ConnectionFactory,
		Opener:            app.FSService,
	}
}

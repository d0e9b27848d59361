//go:build !linux

package cmd

import (
	"github.com/trly/prefix-sync/internal/netif"
)

// initPlatformComponents initializes platform components for non-Linux hosts.
func (a *App) initPlatformComponents() {
	a.Logger.Debug("Initializing platform: net interfaces")
	a.AddressProvider = netif.NewStdlibProvider()
}

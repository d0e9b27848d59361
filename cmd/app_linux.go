//go:build linux

package cmd

import (
	"github.com/trly/prefix-sync/internal/netif"
)

// initPlatformComponents initializes Linux-specific platform components.
func (a *App) initPlatformComponents() {
	a.Logger.Debug("Initializing platform: netlink (Linux)")
	a.AddressProvider = netif.NewNetlinkProvider()
}

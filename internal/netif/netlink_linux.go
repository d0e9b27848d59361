//go:build linux

package netif

import (
	"fmt"
	"net/netip"

	"github.com/vishvananda/netlink"
)

// Netlinker abstracts the netlink calls the provider makes so they can be
// replaced in tests.
type Netlinker interface {
	LinkByName(name string) (netlink.Link, error)
	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
}

// RealNetlinker uses the netlink package.
type RealNetlinker struct{}

// LinkByName retrieves a link by name.
func (RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return netlink.LinkByName(name)
}

// AddrList lists addresses on a link.
func (RealNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return netlink.AddrList(link, family)
}

// NetlinkProvider lists IPv6 addresses of an interface over rtnetlink.
type NetlinkProvider struct {
	nl Netlinker
}

// NewNetlinkProvider creates a provider backed by the kernel's netlink socket.
func NewNetlinkProvider() *NetlinkProvider {
	return &NetlinkProvider{nl: RealNetlinker{}}
}

// NewNetlinkProviderWith creates a provider with a custom Netlinker.
func NewNetlinkProviderWith(nl Netlinker) *NetlinkProvider {
	return &NetlinkProvider{nl: nl}
}

// Addresses returns the IPv6 addresses assigned to interfaceName in kernel order.
func (p *NetlinkProvider) Addresses(interfaceName string) ([]netip.Addr, error) {
	link, err := p.nl.LinkByName(interfaceName)
	if err != nil {
		return nil, fmt.Errorf("link %s: %w", interfaceName, err)
	}

	list, err := p.nl.AddrList(link, netlink.FAMILY_V6)
	if err != nil {
		return nil, fmt.Errorf("addresses of %s: %w", interfaceName, err)
	}

	addrs := make([]netip.Addr, 0, len(list))
	for _, a := range list {
		if a.IPNet == nil {
			continue
		}
		if addr, ok := netip.AddrFromSlice(a.IP); ok {
			addrs = append(addrs, addr)
		}
	}
	return addrs, nil
}

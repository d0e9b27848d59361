// Package netif resolves the current global IPv6 network of a host interface.
package netif

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/trly/prefix-sync/internal/cidr"
	"github.com/trly/prefix-sync/internal/log"
)

// ErrNoGlobalAddress is returned when an interface carries no global IPv6 address.
var ErrNoGlobalAddress = errors.New("no global IPv6 address assigned")

// Provider lists the addresses currently assigned to a named interface,
// in the order the host reports them.
type Provider interface {
	Addresses(interfaceName string) ([]netip.Addr, error)
}

// Resolver picks the address the managed network is derived from.
type Resolver struct {
	provider Provider
	logger   log.Logger
}

// NewResolver creates a resolver on top of an address provider.
func NewResolver(provider Provider, logger log.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		logger:   logger,
	}
}

// Current returns the descriptor for the first global IPv6 address on
// interfaceName, or an invalid descriptor when there is none.
func (r *Resolver) Current(interfaceName string, prefixLength int) cidr.Descriptor {
	d, err := r.Lookup(interfaceName, prefixLength)
	if err != nil {
		r.logger.Debug("No current network", "interface", interfaceName, "error", err)
	}
	return d
}

// Lookup is Current with the reason for an invalid descriptor.
func (r *Resolver) Lookup(interfaceName string, prefixLength int) (cidr.Descriptor, error) {
	addrs, err := r.provider.Addresses(interfaceName)
	if err != nil {
		return cidr.Descriptor{}, fmt.Errorf("listing addresses of %s: %w", interfaceName, err)
	}

	for _, addr := range addrs {
		if !IsGlobal(addr) {
			r.logger.Debug("Skipping address", "interface", interfaceName, "address", addr)
			continue
		}

		d := cidr.Normalize(addr, prefixLength)
		if !d.Valid() {
			return d, fmt.Errorf("cannot render network for %s/%d", addr, prefixLength)
		}
		r.logger.Debug("Selected address", "interface", interfaceName, "address", addr, "cidr", d)
		return d, nil
	}

	return cidr.Descriptor{}, fmt.Errorf("%s: %w", interfaceName, ErrNoGlobalAddress)
}

// IsGlobal reports whether addr is an IPv6 address routable beyond the local
// segment. Link-local, loopback, multicast, unspecified, unique local and
// IPv4-mapped addresses are not global.
func IsGlobal(addr netip.Addr) bool {
	return addr.Is6() &&
		!addr.Is4In6() &&
		addr.IsGlobalUnicast() &&
		!addr.IsPrivate()
}

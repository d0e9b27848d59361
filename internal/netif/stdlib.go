package netif

import (
	"fmt"
	"net"
	"net/netip"
)

// StdlibProvider lists interface addresses through the net package. It backs
// platforms without netlink.
type StdlibProvider struct {
	interfaceByName func(name string) (*net.Interface, error)
}

// NewStdlibProvider creates a provider using net.InterfaceByName.
func NewStdlibProvider() *StdlibProvider {
	return &StdlibProvider{interfaceByName: net.InterfaceByName}
}

// Addresses returns the IPv6 addresses assigned to interfaceName.
func (p *StdlibProvider) Addresses(interfaceName string) ([]netip.Addr, error) {
	iface, err := p.interfaceByName(interfaceName)
	if err != nil {
		return nil, fmt.Errorf("interface %s: %w", interfaceName, err)
	}

	raw, err := iface.Addrs()
	if err != nil {
		return nil, fmt.Errorf("addresses of %s: %w", interfaceName, err)
	}

	return addrsFromNet(raw), nil
}

func addrsFromNet(raw []net.Addr) []netip.Addr {
	addrs := make([]netip.Addr, 0, len(raw))
	for _, a := range raw {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.To4() != nil {
			continue
		}
		if addr, ok := netip.AddrFromSlice(ipNet.IP); ok {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

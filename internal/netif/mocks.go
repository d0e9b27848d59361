package netif

import (
	"fmt"
	"net/netip"
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	AddressesFunc func(interfaceName string) ([]netip.Addr, error)
	Calls         []string
}

// Addresses returns the configured addresses.
func (m *MockProvider) Addresses(interfaceName string) ([]netip.Addr, error) {
	m.Calls = append(m.Calls, interfaceName)
	if m.AddressesFunc != nil {
		return m.AddressesFunc(interfaceName)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// StaticProvider returns a MockProvider that reports addrs for every interface.
func StaticProvider(addrs ...string) *MockProvider {
	parsed := make([]netip.Addr, 0, len(addrs))
	for _, a := range addrs {
		parsed = append(parsed, netip.MustParseAddr(a))
	}
	return &MockProvider{
		AddressesFunc: func(_ string) ([]netip.Addr, error) {
			return parsed, nil
		},
	}
}

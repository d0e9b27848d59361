// Package cidr computes canonical network descriptors from raw IPv6 addresses.
package cidr

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Descriptor is an address masked to a prefix length, written as address/prefixLength.
// The zero value is an invalid descriptor and carries no address text.
type Descriptor struct {
	address      string
	prefixLength int
	valid        bool
}

// Normalize zeroes every byte of addr at offset prefixLength/8 and beyond and
// renders the result in standard textual form. Masking is byte granular; callers
// are expected to pass prefix lengths that are multiples of 8.
//
// Normalize never fails. Input it cannot render yields an invalid descriptor.
func Normalize(addr netip.Addr, prefixLength int) Descriptor {
	if !addr.Is6() || prefixLength < 0 || prefixLength > 128 {
		return Descriptor{}
	}

	raw := addr.As16()
	for i := prefixLength / 8; i < len(raw); i++ {
		raw[i] = 0
	}

	text := netip.AddrFrom16(raw).String()
	return Descriptor{
		address:      text,
		prefixLength: prefixLength,
		valid:        text != "",
	}
}

// Parse reads a descriptor written as address/prefixLength. The address is
// normalized, so Parse("2001:db8:aabb:ccdd::1/56") yields
// 2001:db8:aabb:cc00::/56.
func Parse(s string) (Descriptor, error) {
	addrText, lengthText, ok := strings.Cut(s, "/")
	if !ok {
		return Descriptor{}, fmt.Errorf("missing prefix length in %q", s)
	}

	addr, err := netip.ParseAddr(addrText)
	if err != nil {
		return Descriptor{}, fmt.Errorf("invalid address in %q: %w", s, err)
	}

	prefixLength, err := strconv.Atoi(lengthText)
	if err != nil {
		return Descriptor{}, fmt.Errorf("invalid prefix length in %q: %w", s, err)
	}

	d := Normalize(addr, prefixLength)
	if !d.Valid() {
		return Descriptor{}, fmt.Errorf("%q is not an IPv6 network", s)
	}
	return d, nil
}

// Valid reports whether the descriptor holds a usable network.
func (d Descriptor) Valid() bool {
	return d.valid
}

// Address returns the masked address text.
func (d Descriptor) Address() string {
	return d.address
}

// PrefixLength returns the prefix length.
func (d Descriptor) PrefixLength() int {
	return d.prefixLength
}

// String returns address/prefixLength, or an empty string for an invalid descriptor.
func (d Descriptor) String() string {
	if !d.valid {
		return ""
	}
	return d.address + "/" + strconv.Itoa(d.prefixLength)
}

// Equal compares the textual address/prefixLength pair only.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.String() == other.String()
}

// LeadingDigits returns the first n characters of the address text.
func (d Descriptor) LeadingDigits(n int) string {
	if n > len(d.address) {
		return d.address
	}
	return d.address[:n]
}

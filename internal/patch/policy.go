package patch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/trly/prefix-sync/internal/cidr"
)

// leadingDigits is the number of address characters a legacy value must share
// with the current network to be considered the same allocation.
const leadingDigits = 2

// Policy decides which stale network values in a file are replaced.
type Policy interface {
	// Current reports whether content already carries the current network.
	Current(content string) bool
	// Rewrite replaces every stale value and returns the new content.
	Rewrite(content string) string
	// Find returns the stale values present in content.
	Find(content string) []string
	// String describes the policy for logging.
	String() string
}

// LegacyNetworkPolicy matches network values that start with the same two hex
// digits as the current network, continue with two more hex digits and a colon,
// and are written with the same prefix length. Values with a different leading
// byte are never matched.
type LegacyNetworkPolicy struct {
	descriptor cidr.Descriptor
	pattern    *regexp.Regexp
}

// NewLegacyNetworkPolicy builds the policy for descriptor.
func NewLegacyNetworkPolicy(descriptor cidr.Descriptor) (*LegacyNetworkPolicy, error) {
	if !descriptor.Valid() {
		return nil, ErrInvalidDescriptor
	}

	expr := `(?i)\b` + regexp.QuoteMeta(descriptor.LeadingDigits(leadingDigits)) +
		`[0-9a-f]{2}:[0-9a-f:]*/` + strconv.Itoa(descriptor.PrefixLength()) + `\b`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling legacy network pattern: %w", err)
	}

	return &LegacyNetworkPolicy{descriptor: descriptor, pattern: pattern}, nil
}

// Pattern returns the compiled matcher.
func (p *LegacyNetworkPolicy) Pattern() *regexp.Regexp {
	return p.pattern
}

// Current reports whether content contains the exact descriptor text.
func (p *LegacyNetworkPolicy) Current(content string) bool {
	return strings.Contains(content, p.descriptor.String())
}

// Find returns every legacy value in content, in order of appearance.
func (p *LegacyNetworkPolicy) Find(content string) []string {
	return p.pattern.FindAllString(content, -1)
}

// Rewrite replaces every legacy value with the descriptor text.
func (p *LegacyNetworkPolicy) Rewrite(content string) string {
	return p.pattern.ReplaceAllLiteralString(content, p.descriptor.String())
}

func (p *LegacyNetworkPolicy) String() string {
	return fmt.Sprintf("replace %s with %s", p.pattern.String(), p.descriptor.String())
}

var _ Policy = (*LegacyNetworkPolicy)(nil)

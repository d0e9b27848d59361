package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
	}{
		{
			name:    "default logging level",
			verbose: false,
		},
		{
			name:    "verbose logging level",
			verbose: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.verbose)
			assert.NotNil(t, GetLogger())
		})
	}
}

func TestNewLoggerWithWriter(t *testing.T) {
	t.Run("debug hidden unless verbose", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerWithWriter(&buf, false)

		logger.Debug("hidden message")
		logger.Info("visible message", "file", "/etc/radvd.conf")

		assert.NotContains(t, buf.String(), "hidden message")
		assert.Contains(t, buf.String(), "visible message")
		assert.Contains(t, buf.String(), "file=/etc/radvd.conf")
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerWithWriter(&buf, true)

		logger.Debug("generated network", "cidr", "2001:db8:aa00::/56")

		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "cidr=2001:db8:aa00::/56")
	})
}

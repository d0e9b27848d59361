package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trly/prefix-sync/internal/config"
)

func TestNewTestLogger(t *testing.T) {
	logger := NewTestLogger(t)
	assert.NotNil(t, logger)

	// Test that we can call logger methods without panic
	logger.Debug("test debug message", "key", "value")
	logger.Info("test info message")
	logger.Warn("test warn message")
	logger.Error("test error message")
}

func TestNewMockConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		provider := NewMockConfig(t)
		require.NotNil(t, provider)

		cfg := provider.GetConfig()
		require.NotNil(t, cfg)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "eth0", cfg.Interface)
		assert.Equal(t, config.DefaultPrefixLength, cfg.PrefixLength)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("with options", func(t *testing.T) {
		provider := NewMockConfig(t,
			WithInterface("wan0"),
			WithPrefixLength(64),
			WithFiles("/etc/radvd.conf"),
			WithUnits("radvd.service"),
			WithVerbose(false),
			WithUserMode(true))

		cfg := provider.GetConfig()
		assert.Equal(t, "wan0", cfg.Interface)
		assert.Equal(t, 64, cfg.PrefixLength)
		assert.Equal(t, []string{"/etc/radvd.conf"}, cfg.Files)
		assert.Equal(t, []string{"radvd.service"}, cfg.Units)
		assert.False(t, cfg.Verbose)
		assert.True(t, cfg.UserMode)
	})
}

func TestWriteAndReadFile(t *testing.T) {
	path := WriteFile(t, "radvd.conf", "prefix 2001:db8::/64 {};\n")

	assert.Equal(t, "radvd.conf", filepath.Base(path))
	assert.Equal(t, "prefix 2001:db8::/64 {};\n", ReadFile(t, path))
}

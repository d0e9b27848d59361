// Package testutil provides common test utilities and helpers to reduce boilerplate in test files.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trly/prefix-sync/internal/config"
	"github.com/trly/prefix-sync/internal/log"
)

// NewTestLogger creates a logger that writes to t.Logf for testing.
// This ensures test output is properly captured by the test framework.
func NewTestLogger(t testing.TB) log.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	handler := &testHandler{t: t, opts: opts}
	return log.NewSlogAdapter(slog.New(handler))
}

// ConfigOption allows customization of test config settings.
type ConfigOption func(*config.Settings)

// WithInterface sets the watched interface.
func WithInterface(name string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Interface = name
	}
}

// WithPrefixLength sets the prefix length.
func WithPrefixLength(prefixLength int) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.PrefixLength = prefixLength
	}
}

// WithFiles sets the managed files.
func WithFiles(files ...string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Files = files
	}
}

// WithUnits sets the units to restart.
func WithUnits(units ...string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Units = units
	}
}

// WithVerbose sets verbose logging.
func WithVerbose(verbose bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Verbose = verbose
	}
}

// WithUserMode sets user mode.
func WithUserMode(userMode bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.UserMode = userMode
	}
}

// NewMockConfig creates a config provider for testing with optional customizations.
// The default settings watch eth0 with the default prefix length.
func NewMockConfig(t testing.TB, opts ...ConfigOption) config.Provider {
	cfg := config.NewDefaultSettings()
	cfg.Interface = "eth0"
	cfg.Verbose = true

	for _, opt := range opts {
		opt(cfg)
	}

	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(cfg)
	return configProvider
}

// WriteFile creates a file named name with content in a per-test directory
// and returns its path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0640))
	return path
}

// ReadFile returns the content of path.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test helper
	require.NoError(t, err)
	return string(data)
}

// testHandler implements slog.Handler to write to testing.TB.
type testHandler struct {
	t     testing.TB
	opts  *slog.HandlerOptions
	attrs []slog.Attr
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(_ context.Context, record slog.Record) error {
	args := make([]any, 0, record.NumAttrs())
	record.Attrs(func(a slog.Attr) bool {
		args = append(args, a.String())
		return true
	})
	h.t.Logf("[%s] %s %v", record.Level.String(), record.Message, args)
	return nil
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts, attrs: append(h.attrs, attrs...)}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts, attrs: h.attrs}
}

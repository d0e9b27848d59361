// Package systemd asks the service manager to reload or restart units.
package systemd

import (
	"context"
)

// Connection wraps systemd D-Bus operations for testability.
type Connection interface {
	// ReloadOrRestartUnit queues a reload-or-restart job for a unit. The
	// returned channel receives the job result once the job completes.
	ReloadOrRestartUnit(ctx context.Context, unitName, mode string) (<-chan string, int, error)

	// Close closes the connection.
	Close() error
}

// ConnectionFactory creates Connection instances.
type ConnectionFactory interface {
	// NewConnection creates a new systemd connection to the system or user bus.
	NewConnection(ctx context.Context, userMode bool) (Connection, error)
}

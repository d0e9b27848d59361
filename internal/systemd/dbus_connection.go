package systemd

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/trly/prefix-sync/internal/config"
	"github.com/trly/prefix-sync/internal/log"
)

// DBusConnection implements Connection interface wrapping systemd D-Bus operations.
type DBusConnection struct {
	conn *dbus.Conn
}

// NewDBusConnection creates a new D-Bus connection wrapper.
func NewDBusConnection(conn *dbus.Conn) *DBusConnection {
	return &DBusConnection{conn: conn}
}

// ReloadOrRestartUnit queues a reload-or-restart job for a unit.
func (d *DBusConnection) ReloadOrRestartUnit(ctx context.Context, unitName, mode string) (<-chan string, int, error) {
	// Buffered: the job result may arrive before anyone reads it.
	ch := make(chan string, 1)
	id, err := d.conn.ReloadOrRestartUnitContext(ctx, unitName, mode, ch)
	if err != nil {
		return nil, 0, fmt.Errorf("error reloading or restarting unit %s: %w", unitName, err)
	}
	return ch, id, nil
}

// Close closes the D-Bus connection.
func (d *DBusConnection) Close() error {
	if d.conn != nil {
		d.conn.Close()
	}
	return nil
}

// DefaultConnectionFactory implements ConnectionFactory interface.
type DefaultConnectionFactory struct {
	identity config.Identity
	logger   log.Logger
}

// NewConnectionFactory creates a new connection factory with injected logger.
func NewConnectionFactory(identity config.Identity, logger log.Logger) *DefaultConnectionFactory {
	return &DefaultConnectionFactory{
		identity: identity,
		logger:   logger,
	}
}

// NewConnection creates a new systemd connection based on configuration.
func (f *DefaultConnectionFactory) NewConnection(ctx context.Context, userMode bool) (Connection, error) {
	var conn *dbus.Conn
	var err error

	if userMode {
		f.logger.Debug("Establishing user connection to systemd", "destination", f.identity.SystemdBusName, "path", f.identity.SystemdObjectPath)
		conn, err = dbus.NewUserConnectionContext(ctx)
	} else {
		f.logger.Debug("Establishing system connection to systemd", "destination", f.identity.SystemdBusName, "path", f.identity.SystemdObjectPath)
		conn, err = dbus.NewSystemConnectionContext(ctx)
	}

	if err != nil {
		return nil, NewConnectionError(userMode, err)
	}

	return NewDBusConnection(conn), nil
}

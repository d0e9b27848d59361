package systemd

import (
	"context"
	"fmt"
	"sync"
)

// MockConnection implements Connection interface for testing.
type MockConnection struct {
	ReloadOrRestartUnitFunc func(ctx context.Context, unitName, mode string) (<-chan string, int, error)
	CloseFunc               func() error

	mu    sync.Mutex
	calls []string
}

// ReloadOrRestartUnit records the call and delegates to ReloadOrRestartUnitFunc.
func (m *MockConnection) ReloadOrRestartUnit(ctx context.Context, unitName, mode string) (<-chan string, int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, unitName)
	m.mu.Unlock()

	if m.ReloadOrRestartUnitFunc != nil {
		return m.ReloadOrRestartUnitFunc(ctx, unitName, mode)
	}
	return nil, 0, fmt.Errorf("mock not implemented")
}

// Calls returns the unit names passed to ReloadOrRestartUnit, in call order.
func (m *MockConnection) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Close closes the connection.
func (m *MockConnection) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Reply returns a channel already holding result.
func Reply(result string) <-chan string {
	ch := make(chan string, 1)
	ch <- result
	return ch
}

// MockConnectionFactory implements ConnectionFactory interface for testing.
type MockConnectionFactory struct {
	NewConnectionFunc func(ctx context.Context, userMode bool) (Connection, error)
	Connection        Connection
}

// NewConnection creates a new systemd connection based on configuration.
func (m *MockConnectionFactory) NewConnection(ctx context.Context, userMode bool) (Connection, error) {
	if m.NewConnectionFunc != nil {
		return m.NewConnectionFunc(ctx, userMode)
	}
	if m.Connection != nil {
		return m.Connection, nil
	}
	return nil, fmt.Errorf("mock not configured")
}

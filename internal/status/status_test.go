package status

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/stretchr/testify/assert"
	"github.com/trly/prefix-sync/internal/testutil"
)

type capture struct {
	states []string
	err    error
}

func (c *capture) notify(_ bool, state string) (bool, error) {
	c.states = append(c.states, state)
	return c.err == nil, c.err
}

func TestNotifier_States(t *testing.T) {
	c := &capture{}
	n := NewNotifierWith(c.notify, testutil.NewTestLogger(t))

	n.Ready()
	n.Status("Reading /etc/radvd.conf")
	n.Failure("Unable to get current network", ErrnoInvalid)
	n.Stopping()

	assert.Equal(t, []string{
		daemon.SdNotifyReady,
		"STATUS=Reading /etc/radvd.conf",
		"STATUS=Unable to get current network\nERRNO=22",
		daemon.SdNotifyStopping,
	}, c.states)
}

func TestNotifier_FatalStopping(t *testing.T) {
	c := &capture{}
	n := NewNotifierWith(c.notify, testutil.NewTestLogger(t))

	n.FatalStopping("Failed to connect to service manager", ErrnoConnRefused)

	assert.Equal(t, []string{"STATUS=Failed to connect to service manager\nERRNO=111\nSTOPPING=1"}, c.states)
}

func TestNotifier_NotifyErrorIsNotFatal(t *testing.T) {
	c := &capture{err: errors.New("socket closed")}
	n := NewNotifierWith(c.notify, testutil.NewTestLogger(t))

	assert.NotPanics(t, func() {
		n.Ready()
		n.Status("still running")
	})
	assert.Len(t, c.states, 2)
}

func TestErrno(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain errno", syscall.ENOENT, int(syscall.ENOENT)},
		{"path error", &fs.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}, int(syscall.EACCES)},
		{"wrapped", fmt.Errorf("reading: %w", &fs.PathError{Op: "read", Path: "/x", Err: syscall.EISDIR}), int(syscall.EISDIR)},
		{"unknown", errors.New("boom"), ErrnoIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Errno(tt.err))
		})
	}
}

func TestErrnoConstants(t *testing.T) {
	assert.Equal(t, 22, ErrnoInvalid)
	assert.Equal(t, 38, ErrnoNoSys)
	assert.Equal(t, 111, ErrnoConnRefused)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Ready()
	r.Status("a")
	r.Failure("b", 5)
	r.FatalStopping("c", 6)
	r.Stopping()

	assert.Equal(t, []string{KindReady, KindStatus, KindFailure, KindFatal, KindStopping}, r.Kinds())
	assert.Equal(t, []string{"a", "b", "c"}, r.Messages())
	assert.Equal(t, 5, r.Events[2].Errno)
}

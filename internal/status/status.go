// Package status publishes pipeline milestones to the supervising init system.
package status

import (
	"errors"
	"fmt"
	"sync"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/trly/prefix-sync/internal/log"
)

// Errno values reported alongside failure statuses, in Linux numbering.
const (
	ErrnoIO          = 5
	ErrnoInvalid     = 22
	ErrnoNoSys       = 38
	ErrnoTimedOut    = 110
	ErrnoConnRefused = 111
)

// Reporter receives pipeline milestones.
type Reporter interface {
	Ready()
	Status(msg string)
	Failure(msg string, errno int)
	Stopping()
	FatalStopping(msg string, errno int)
}

// NotifyFunc sends a state string to the service manager.
type NotifyFunc func(unsetEnvironment bool, state string) (bool, error)

// Notifier reports milestones through sd_notify and mirrors them to the log.
type Notifier struct {
	notify NotifyFunc
	logger log.Logger
}

// NewNotifier creates a Notifier backed by daemon.SdNotify.
func NewNotifier(logger log.Logger) *Notifier {
	return NewNotifierWith(daemon.SdNotify, logger)
}

// NewNotifierWith creates a Notifier with a custom notify function.
func NewNotifierWith(notify NotifyFunc, logger log.Logger) *Notifier {
	return &Notifier{notify: notify, logger: logger}
}

// Ready signals that start-up is complete.
func (n *Notifier) Ready() {
	n.logger.Debug("Notifying readiness")
	n.send(daemon.SdNotifyReady)
}

// Status publishes a free-form status line.
func (n *Notifier) Status(msg string) {
	n.logger.Info(msg)
	n.send("STATUS=" + msg)
}

// Failure publishes a status line with an errno.
func (n *Notifier) Failure(msg string, errno int) {
	n.logger.Error(msg, "errno", errno)
	n.send(fmt.Sprintf("STATUS=%s\nERRNO=%d", msg, errno))
}

// Stopping signals that the process is shutting down.
func (n *Notifier) Stopping() {
	n.logger.Debug("Notifying stop")
	n.send(daemon.SdNotifyStopping)
}

// FatalStopping publishes a failure and the stop signal in one notification.
func (n *Notifier) FatalStopping(msg string, errno int) {
	n.logger.Error(msg, "errno", errno)
	n.send(fmt.Sprintf("STATUS=%s\nERRNO=%d\n%s", msg, errno, daemon.SdNotifyStopping))
}

func (n *Notifier) send(state string) {
	sent, err := n.notify(false, state)
	if err != nil {
		n.logger.Warn("Failed to notify service manager", "error", err)
		return
	}
	if !sent {
		n.logger.Debug("Service manager notification socket not available")
	}
}

// Errno extracts a syscall errno from err, falling back to EIO.
func Errno(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return ErrnoIO
}

// Event is a milestone captured by Recorder.
type Event struct {
	Kind  string
	Msg   string
	Errno int
}

// Event kinds.
const (
	KindReady    = "ready"
	KindStatus   = "status"
	KindFailure  = "failure"
	KindStopping = "stopping"
	KindFatal    = "fatal"
)

// Recorder is an in-memory Reporter for tests.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Ready records readiness.
func (r *Recorder) Ready() { r.add(Event{Kind: KindReady}) }

// Status records a status line.
func (r *Recorder) Status(msg string) { r.add(Event{Kind: KindStatus, Msg: msg}) }

// Failure records a failure.
func (r *Recorder) Failure(msg string, errno int) {
	r.add(Event{Kind: KindFailure, Msg: msg, Errno: errno})
}

// Stopping records the stop signal.
func (r *Recorder) Stopping() { r.add(Event{Kind: KindStopping}) }

// FatalStopping records a fatal stop.
func (r *Recorder) FatalStopping(msg string, errno int) {
	r.add(Event{Kind: KindFatal, Msg: msg, Errno: errno})
}

// Messages returns the recorded status and failure messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.Events {
		if e.Msg != "" {
			out = append(out, e.Msg)
		}
	}
	return out
}

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, e)
}

// Discard is a Reporter that drops every milestone.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Ready()                    {}
func (discard) Status(string)             {}
func (discard) Failure(string, int)       {}
func (discard) Stopping()                 {}
func (discard) FatalStopping(string, int) {}

var (
	_ Reporter = (*Notifier)(nil)
	_ Reporter = (*Recorder)(nil)
)

package systemd

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/trly/prefix-sync/internal/log"
	"github.com/trly/prefix-sync/internal/status"
	"golang.org/x/sync/errgroup"
)

// UnitReply is the outcome of one reload-or-restart request.
type UnitReply struct {
	UnitName string
	JobID    int
	Result   string
	Err      error
}

// RestartResult holds one reply per requested unit, in request order.
type RestartResult struct {
	Replies []UnitReply
}

// Failed returns the replies that carry an error.
func (r *RestartResult) Failed() []UnitReply {
	var failed []UnitReply
	for _, reply := range r.Replies {
		if reply.Err != nil {
			failed = append(failed, reply)
		}
	}
	return failed
}

// HasFailures reports whether any unit failed to reply.
func (r *RestartResult) HasFailures() bool {
	return len(r.Failed()) > 0
}

// OrchestratorOptions configures an Orchestrator.
type OrchestratorOptions struct {
	// Mode is the job mode passed to the service manager.
	Mode string
	// ReplyTimeout bounds the wait for each reply. Zero waits indefinitely.
	ReplyTimeout time.Duration
	Clock        clock.Clock
}

// Orchestrator dispatches reload-or-restart requests and collects the replies.
type Orchestrator struct {
	conn     Connection
	opts     OrchestratorOptions
	reporter status.Reporter
	logger   log.Logger
}

type pendingReply struct {
	unitName string
	jobID    int
	ch       <-chan string
	err      error
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(conn Connection, opts OrchestratorOptions, reporter status.Reporter, logger log.Logger) *Orchestrator {
	if opts.Mode == "" {
		opts.Mode = "replace"
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &Orchestrator{
		conn:     conn,
		opts:     opts,
		reporter: reporter,
		logger:   logger,
	}
}

// RestartUnits asks the service manager to reload or restart every unit.
// All requests are sent before any reply is awaited, then replies are
// collected in request order. A unit that fails does not affect the others.
func (o *Orchestrator) RestartUnits(ctx context.Context, units []string) *RestartResult {
	for _, name := range units {
		o.reporter.Status("Restarting " + name)
	}

	pending := make([]pendingReply, len(units))
	var g errgroup.Group
	for i, name := range units {
		i, name := i, name
		g.Go(func() error {
			ch, id, err := o.conn.ReloadOrRestartUnit(ctx, name, o.opts.Mode)
			pending[i] = pendingReply{unitName: name, jobID: id, ch: ch, err: err}
			return nil
		})
	}
	_ = g.Wait()

	o.reporter.Status("Waiting for replies")

	result := &RestartResult{Replies: make([]UnitReply, 0, len(units))}
	for _, p := range pending {
		reply := UnitReply{UnitName: p.unitName, JobID: p.jobID}

		if p.err != nil {
			reply.Err = NewError("ReloadOrRestartUnit", p.unitName, p.err)
		} else {
			reply.Result, reply.Err = o.await(ctx, p)
		}

		if reply.Err != nil {
			o.reporter.Failure(fmt.Sprintf("No reply for %s: %v", p.unitName, reply.Err), replyErrno(reply.Err))
		} else {
			o.logger.Debug("Job finished", "unit", p.unitName, "job", p.jobID, "result", reply.Result)
			if reply.Result != "done" {
				o.logger.Warn("Job did not complete cleanly", "unit", p.unitName, "job", p.jobID, "result", reply.Result)
			}
			o.reporter.Status(fmt.Sprintf("Received reply for %s: job %d %s", p.unitName, p.jobID, reply.Result))
		}
		result.Replies = append(result.Replies, reply)
	}

	o.reporter.Status("All replies received. Done.")
	return result
}

func (o *Orchestrator) await(ctx context.Context, p pendingReply) (string, error) {
	if p.ch == nil {
		return "", ErrReplyChannelClosed
	}

	select {
	case res, ok := <-p.ch:
		return received(res, ok)
	default:
	}

	var timeout <-chan time.Time
	if o.opts.ReplyTimeout > 0 {
		timeout = o.opts.Clock.After(o.opts.ReplyTimeout)
	}

	select {
	case res, ok := <-p.ch:
		return received(res, ok)
	case <-timeout:
		return "", &ReplyTimeoutError{UnitName: p.unitName, Timeout: o.opts.ReplyTimeout}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func received(result string, ok bool) (string, error) {
	if !ok {
		return "", ErrReplyChannelClosed
	}
	return result, nil
}

func replyErrno(err error) int {
	if IsReplyTimeoutError(err) {
		return status.ErrnoTimedOut
	}
	return status.Errno(err)
}

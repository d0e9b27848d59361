// Package pipeline runs one detect, patch and restart pass.
package pipeline

import (
	"context"
	"fmt"

	"github.com/trly/prefix-sync/internal/cidr"
	"github.com/trly/prefix-sync/internal/config"
	"github.com/trly/prefix-sync/internal/log"
	"github.com/trly/prefix-sync/internal/patch"
	"github.com/trly/prefix-sync/internal/status"
	"github.com/trly/prefix-sync/internal/systemd"
)

// State is a pipeline stage.
type State string

// Pipeline states.
const (
	StateResolving        State = "resolving"
	StatePatching         State = "patching"
	StateNoChangeTerminal State = "no-change"
	StateRestarting       State = "restarting"
	StateDone             State = "done"
	StateAborted          State = "aborted"
)

// Resolver computes the current network descriptor.
type Resolver interface {
	Lookup(interfaceName string, prefixLength int) (cidr.Descriptor, error)
}

// Patcher brings managed files up to date.
type Patcher interface {
	Apply(descriptor cidr.Descriptor, paths []string) (*patch.Result, error)
}

// Restarter reloads or restarts units.
type Restarter interface {
	RestartUnits(ctx context.Context, units []string) *systemd.RestartResult
}

// Outcome describes a finished pass.
type Outcome struct {
	State          State
	Descriptor     cidr.Descriptor
	Patch          *patch.Result
	Restart        *systemd.RestartResult
	PartialFailure bool
	Transitions    []State
	// Err is set when the pass was aborted.
	Err error
}

// Runner executes a single pass.
type Runner struct {
	resolver  Resolver
	patcher   Patcher
	restarter Restarter
	reporter  status.Reporter
	logger    log.Logger
}

// NewRunner creates a Runner.
func NewRunner(resolver Resolver, patcher Patcher, restarter Restarter, reporter status.Reporter, logger log.Logger) *Runner {
	return &Runner{
		resolver:  resolver,
		patcher:   patcher,
		restarter: restarter,
		reporter:  reporter,
		logger:    logger,
	}
}

// Run resolves the current network, patches the configured files and, when
// any file changed, restarts the configured units. Per-file and per-unit
// failures mark the outcome as a partial failure without stopping the pass.
func (r *Runner) Run(ctx context.Context, settings *config.Settings) *Outcome {
	out := &Outcome{}

	r.logger.Debug("Settings",
		"files", settings.Files,
		"interface", settings.Interface,
		"prefixLength", settings.PrefixLength,
		"units", settings.Units)

	out.enter(StateResolving)
	descriptor, err := r.resolver.Lookup(settings.Interface, settings.PrefixLength)
	if err == nil && !descriptor.Valid() {
		err = patch.ErrInvalidDescriptor
	}
	if err != nil {
		r.reporter.Failure(fmt.Sprintf("Unable to get current network: %v", err), status.ErrnoInvalid)
		out.Err = err
		out.enter(StateAborted)
		return out
	}
	out.Descriptor = descriptor
	r.reporter.Status("Current network " + descriptor.String())

	out.enter(StatePatching)
	result, err := r.patcher.Apply(descriptor, settings.Files)
	if err != nil {
		r.reporter.Failure(fmt.Sprintf("Unable to update files: %v", err), status.ErrnoInvalid)
		out.Err = err
		out.enter(StateAborted)
		return out
	}
	out.Patch = result
	if result.HasErrors() {
		out.PartialFailure = true
	}

	if !result.HasChanges() {
		r.reporter.Status("No service restarts needed.")
		out.enter(StateNoChangeTerminal)
		out.enter(StateDone)
		return out
	}

	out.enter(StateRestarting)
	r.reporter.Status("Restarting units")
	out.Restart = r.restarter.RestartUnits(ctx, settings.Units)
	if out.Restart.HasFailures() {
		out.PartialFailure = true
	}

	out.enter(StateDone)
	return out
}

func (o *Outcome) enter(s State) {
	o.State = s
	o.Transitions = append(o.Transitions, s)
}

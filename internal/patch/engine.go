// Package patch rewrites stale network values in managed files.
package patch

import (
	"fmt"

	"github.com/trly/prefix-sync/internal/cidr"
	"github.com/trly/prefix-sync/internal/fs"
	"github.com/trly/prefix-sync/internal/log"
	"github.com/trly/prefix-sync/internal/status"
)

// Result summarizes a patch pass.
type Result struct {
	Changed   []string
	Unchanged []string
	Errors    []*FileError
}

// HasChanges reports whether any file content was rewritten.
func (r *Result) HasChanges() bool {
	return len(r.Changed) > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// FileState is the dry-run verdict for one file.
type FileState string

// File states reported by Check.
const (
	StateCurrent    FileState = "current"
	StateStale      FileState = "stale"
	StateUnmatched  FileState = "unmatched"
	StateUnreadable FileState = "unreadable"
)

// CheckEntry is the dry-run result for one file.
type CheckEntry struct {
	Path    string
	State   FileState
	Matches []string
	Err     error
}

// Engine applies a Policy to a list of files, one at a time.
type Engine struct {
	opener   fs.Opener
	codec    *Codec
	reporter status.Reporter
	logger   log.Logger
}

// NewEngine creates an Engine.
func NewEngine(opener fs.Opener, codec *Codec, reporter status.Reporter, logger log.Logger) *Engine {
	return &Engine{
		opener:   opener,
		codec:    codec,
		reporter: reporter,
		logger:   logger,
	}
}

// Apply brings every file in paths up to date with descriptor.
// Per-file failures are collected in the result and do not stop the pass.
func (e *Engine) Apply(descriptor cidr.Descriptor, paths []string) (*Result, error) {
	policy, err := NewLegacyNetworkPolicy(descriptor)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Using network policy", "policy", policy.String(), "encoding", e.codec.Name())

	result := &Result{}
	for _, path := range paths {
		changed, err := e.applyFile(policy, path)
		switch {
		case err != nil:
			e.reporter.Failure(fmt.Sprintf("Failed to update %s: %v", path, err.Cause), status.Errno(err))
			result.Errors = append(result.Errors, err)
		case changed:
			result.Changed = append(result.Changed, path)
		default:
			result.Unchanged = append(result.Unchanged, path)
		}
	}
	return result, nil
}

func (e *Engine) applyFile(policy Policy, path string) (changed bool, ferr *FileError) {
	e.reporter.Status("Reading " + path)

	f, err := e.opener.OpenExisting(path)
	if err != nil {
		return false, &FileError{Path: path, Op: "open", Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && ferr == nil {
			ferr = &FileError{Path: path, Op: "close", Cause: cerr}
		}
	}()

	text, err := e.codec.Decode(f.Content())
	if err != nil {
		return false, &FileError{Path: path, Op: "decode", Cause: err}
	}

	if policy.Current(text) {
		e.reporter.Status("No changes needed for " + path)
		return false, nil
	}

	updated := policy.Rewrite(text)
	if updated == text {
		e.reporter.Status("No changes needed for " + path)
		return false, nil
	}

	e.reporter.Status("Updating " + path)
	e.logger.Debug("Replacing network values", "path", path, "values", policy.Find(text))

	data, err := e.codec.Encode(updated)
	if err != nil {
		return false, &FileError{Path: path, Op: "encode", Cause: err}
	}
	if err := f.Rewrite(data); err != nil {
		return false, &FileError{Path: path, Op: "write", Cause: err}
	}
	return true, nil
}

// Check reports what Apply would do without writing anything.
func (e *Engine) Check(descriptor cidr.Descriptor, paths []string) ([]CheckEntry, error) {
	policy, err := NewLegacyNetworkPolicy(descriptor)
	if err != nil {
		return nil, err
	}

	entries := make([]CheckEntry, 0, len(paths))
	for _, path := range paths {
		entry := CheckEntry{Path: path}

		data, err := e.opener.ReadExisting(path)
		if err != nil {
			entry.State = StateUnreadable
			entry.Err = err
			entries = append(entries, entry)
			continue
		}

		text, err := e.codec.Decode(data)
		switch {
		case err != nil:
			entry.State = StateUnreadable
			entry.Err = err
		case policy.Current(text):
			entry.State = StateCurrent
		default:
			entry.Matches = policy.Find(text)
			if len(entry.Matches) > 0 {
				entry.State = StateStale
			} else {
				entry.State = StateUnmatched
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

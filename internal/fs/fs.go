// Package fs provides file access for managed configuration files.
package fs

import (
	"crypto/sha1" //nolint:gosec // Not used for security purposes, just content comparison
	"fmt"
	"io"
	"os"

	"github.com/trly/prefix-sync/internal/log"
)

// File is an open managed file.
type File interface {
	Name() string
	Content() []byte
	Rewrite(content []byte) error
	Close() error
}

// Opener opens managed files.
type Opener interface {
	// OpenExisting opens path for reading and writing. The file is never created.
	OpenExisting(path string) (File, error)
	// ReadExisting returns the content of path without opening it for writing.
	ReadExisting(path string) ([]byte, error)
}

// Service opens managed files on the local file system.
type Service struct {
	logger log.Logger
}

// NewService creates a new filesystem service.
func NewService(logger log.Logger) *Service {
	return &Service{logger: logger}
}

// OpenExisting opens path read/write and reads its whole content.
func (s *Service) OpenExisting(path string) (File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0) //nolint:gosec // Paths come from operator configuration
	if err != nil {
		return nil, err
	}

	content, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	s.logger.Debug("Read managed file", "path", path, "bytes", len(content), "sha1", fmt.Sprintf("%x", GetContentHash(content)))
	return &osFile{f: f, content: content, logger: s.logger}, nil
}

// ReadExisting reads path without requiring write access.
func (s *Service) ReadExisting(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // Paths come from operator configuration
}

type osFile struct {
	f       *os.File
	content []byte
	logger  log.Logger
}

func (o *osFile) Name() string    { return o.f.Name() }
func (o *osFile) Content() []byte { return o.content }
func (o *osFile) Close() error    { return o.f.Close() }

// Rewrite replaces the file content in place, keeping the inode, mode and owner.
func (o *osFile) Rewrite(content []byte) error {
	if err := o.f.Truncate(0); err != nil {
		return err
	}
	if _, err := o.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := o.f.Write(content); err != nil {
		return err
	}

	o.logger.Debug("Rewrote managed file", "path", o.f.Name(), "bytes", len(content), "sha1", fmt.Sprintf("%x", GetContentHash(content)))
	o.content = content
	return nil
}

// GetContentHash calculates a SHA1 hash for change tracking in logs.
func GetContentHash(content []byte) []byte {
	hash := sha1.New() //nolint:gosec // Not used for security purposes, just for content tracking
	hash.Write(content)
	return hash.Sum(nil)
}

var _ Opener = (*Service)(nil)

// Package validate checks settings for problems that do not stop a sync but
// usually mean it will not do what the operator expects.
package validate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/trly/prefix-sync/internal/config"
	"github.com/trly/prefix-sync/internal/log"
)

// maxUnitNameLen is the systemd limit on unit names, including the suffix.
const maxUnitNameLen = 255

// unitSuffixes lists the unit types systemd can reload or restart.
var unitSuffixes = []string{
	".service", ".socket", ".target", ".device", ".mount", ".automount",
	".swap", ".timer", ".path", ".slice", ".scope",
}

// Finding is a single warning about the settings.
type Finding struct {
	Subject string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Subject, f.Message)
}

// Validator inspects settings.
type Validator struct {
	logger log.Logger
	stat   func(string) (fs.FileInfo, error)
}

// NewValidator creates a new Validator with the provided logger.
func NewValidator(logger log.Logger) *Validator {
	return &Validator{
		logger: logger,
		stat:   os.Stat,
	}
}

// WithStat sets a custom stat function for testing.
func (v *Validator) WithStat(stat func(string) (fs.FileInfo, error)) *Validator {
	v.stat = stat
	return v
}

// UnitName checks that name looks like a systemd unit name.
func (v *Validator) UnitName(name string) error {
	if name == "" {
		return fmt.Errorf("unit name is empty")
	}
	if len(name) > maxUnitNameLen {
		return fmt.Errorf("unit name longer than %d characters", maxUnitNameLen)
	}
	if strings.ContainsAny(name, "/ \t") {
		return fmt.Errorf("unit name contains a path separator or whitespace")
	}
	for _, suffix := range unitSuffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return nil
		}
	}
	return fmt.Errorf("unit name has no known unit type suffix")
}

// ManagedFile checks that path names an existing regular file.
func (v *Validator) ManagedFile(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path is relative to the working directory")
	}
	info, err := v.stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file")
	}
	return nil
}

// Settings returns every finding for s, files first then units.
func (v *Validator) Settings(s *config.Settings) []Finding {
	var findings []Finding

	for _, path := range s.Files {
		if err := v.ManagedFile(path); err != nil {
			findings = append(findings, Finding{Subject: path, Message: err.Error()})
		}
	}

	for _, name := range s.Units {
		if err := v.UnitName(name); err != nil {
			findings = append(findings, Finding{Subject: name, Message: err.Error()})
		}
	}

	if len(s.Files) > 0 && len(s.Units) == 0 {
		findings = append(findings, Finding{Subject: "units", Message: "no units configured, changed files will not be picked up"})
	}

	for _, f := range findings {
		v.logger.Debug("Settings finding", "subject", f.Subject, "message", f.Message)
	}
	return findings
}

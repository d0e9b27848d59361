package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Keys of the legacy INI settings file.
const (
	legacyKeyFiles        = "files"
	legacyKeyInterface    = "interface"
	legacyKeyPrefixLength = "prefixLength"
	legacyKeyUnits        = "units"
)

// LoadLegacy reads settings from a QSettings INI file as written by
// ipv6-config-update. Values live in the [main] section and lists are
// comma separated.
func LoadLegacy(path string) (*Settings, error) {
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, &LoadError{Source: path, Cause: err}
	}

	return legacyFromFile(file, DefaultIdentity().LegacySection, path)
}

// LoadLegacyData parses legacy INI settings from memory.
func LoadLegacyData(data []byte) (*Settings, error) {
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, &LoadError{Source: "legacy settings", Cause: err}
	}
	return legacyFromFile(file, DefaultIdentity().LegacySection, "legacy settings")
}

func legacyFromFile(file *ini.File, sectionName, source string) (*Settings, error) {
	section, err := file.GetSection(sectionName)
	if err != nil {
		return nil, &LoadError{Source: source, Cause: fmt.Errorf("missing [%s] section", sectionName)}
	}

	cfg := NewDefaultSettings()
	cfg.Interface = strings.TrimSpace(section.Key(legacyKeyInterface).String())
	cfg.Files = splitList(section.Key(legacyKeyFiles).String())
	cfg.Units = splitList(section.Key(legacyKeyUnits).String())

	if section.HasKey(legacyKeyPrefixLength) {
		prefixLength, err := section.Key(legacyKeyPrefixLength).Int()
		if err != nil {
			return nil, &LoadError{Source: source, Cause: fmt.Errorf("invalid %s: %w", legacyKeyPrefixLength, err)}
		}
		cfg.PrefixLength = prefixLength
	}

	return cfg, nil
}

// splitList parses a comma separated QSettings list, dropping blanks and
// surrounding quotes.
func splitList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

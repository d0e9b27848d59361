// Package config provides configuration management for prefix-sync.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/encoding/htmlindex"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig loads the application configuration from file and environment.
	InitConfig() (*Settings, error)
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
	// ConfigFileUsed returns the path of the file the settings were read from.
	ConfigFileUsed() string
}

// Default configuration values for prefix-sync.
const (
	DefaultPrefixLength = 56
	DefaultReplyTimeout = 90 * time.Second
	DefaultFileEncoding = "utf-8"
	DefaultUserMode     = false
	DefaultVerbose      = false
)

// Validation errors returned by Settings.Validate.
var (
	ErrEmptyInterface      = errors.New("interface value is empty")
	ErrInvalidPrefixLength = errors.New("invalid prefix length, must be a multiple of 8 between 8 and 128")
	ErrUnknownEncoding     = errors.New("unknown file encoding")
)

// Settings represents the configuration for prefix-sync.
type Settings struct {
	Interface    string        `yaml:"interface" json:"interface"`
	PrefixLength int           `yaml:"prefixLength" json:"prefixLength"`
	Files        []string      `yaml:"files" json:"files"`
	Units        []string      `yaml:"units" json:"units"`
	UserMode     bool          `yaml:"userMode" json:"userMode"`
	Verbose      bool          `yaml:"verbose" json:"verbose"`
	ReplyTimeout time.Duration `yaml:"replyTimeout" json:"replyTimeout"`
	FileEncoding string        `yaml:"fileEncoding" json:"fileEncoding"`
	LegacyConfig string        `yaml:"legacyConfig,omitempty" json:"legacyConfig,omitempty"`
}

// NewDefaultSettings returns settings populated with default values.
func NewDefaultSettings() *Settings {
	return &Settings{
		PrefixLength: DefaultPrefixLength,
		Files:        []string{},
		Units:        []string{},
		UserMode:     DefaultUserMode,
		Verbose:      DefaultVerbose,
		ReplyTimeout: DefaultReplyTimeout,
		FileEncoding: DefaultFileEncoding,
	}
}

// Validate checks the settings a sync pass cannot run without.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Interface) == "" {
		return ErrEmptyInterface
	}
	// A zero length renders as ::/0, which shares no leading digits with
	// any stale network.
	if s.PrefixLength%8 != 0 || s.PrefixLength < 8 || s.PrefixLength > 128 {
		return fmt.Errorf("%w: %d", ErrInvalidPrefixLength, s.PrefixLength)
	}
	if s.FileEncoding != "" {
		if _, err := htmlindex.Get(s.FileEncoding); err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownEncoding, s.FileEncoding)
		}
	}
	if s.ReplyTimeout < 0 {
		return fmt.Errorf("reply timeout must not be negative: %s", s.ReplyTimeout)
	}
	return nil
}

// IsValidationError reports whether err came from Settings.Validate or config loading.
func IsValidationError(err error) bool {
	var loadErr *LoadError
	return errors.Is(err, ErrEmptyInterface) ||
		errors.Is(err, ErrInvalidPrefixLength) ||
		errors.Is(err, ErrUnknownEncoding) ||
		errors.As(err, &loadErr)
}

// LoadError wraps failures reading or decoding configuration sources.
type LoadError struct {
	Source string
	Cause  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load configuration from %s: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// defaultConfigProvider implements the Provider interface on a private viper instance.
type defaultConfigProvider struct {
	v          *viper.Viper
	identity   Identity
	cfg        *Settings
	configFile string
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return NewConfigProvider(DefaultIdentity())
}

// NewConfigProvider creates a config provider that searches the paths named by identity.
func NewConfigProvider(identity Identity) Provider {
	return &defaultConfigProvider{
		v:        viper.New(),
		identity: identity,
		cfg:      NewDefaultSettings(),
	}
}

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	p.configFile = path
}

func (p *defaultConfigProvider) ConfigFileUsed() string {
	if used := p.v.ConfigFileUsed(); used != "" {
		return used
	}
	return p.configFile
}

func (p *defaultConfigProvider) InitConfig() (*Settings, error) {
	v := p.v
	cfg := NewDefaultSettings()

	v.SetDefault("prefixLength", DefaultPrefixLength)
	v.SetDefault("files", []string{})
	v.SetDefault("units", []string{})
	v.SetDefault("userMode", DefaultUserMode)
	v.SetDefault("verbose", DefaultVerbose)
	v.SetDefault("replyTimeout", DefaultReplyTimeout)
	v.SetDefault("fileEncoding", DefaultFileEncoding)
	// Registered so environment overrides apply to keys without defaults.
	v.SetDefault("interface", "")
	v.SetDefault("legacyConfig", "")

	// SetConfigName clears an explicit file, so search paths are only
	// registered when no file was given.
	v.SetConfigType("yaml")
	if p.configFile != "" {
		v.SetConfigFile(p.configFile)
	} else {
		v.SetConfigName("config")
		for _, path := range p.identity.ConfigPaths {
			v.AddConfigPath(os.ExpandEnv(path))
		}
	}

	v.SetEnvPrefix(p.identity.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &LoadError{Source: v.ConfigFileUsed(), Cause: err}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, &LoadError{Source: v.ConfigFileUsed(), Cause: err}
	}

	if cfg.LegacyConfig != "" {
		legacy, err := LoadLegacy(cfg.LegacyConfig)
		if err != nil {
			return nil, err
		}
		cfg.MergeLegacy(legacy, p.explicitlySet)
	}

	p.cfg = cfg
	return cfg, nil
}

// explicitlySet reports whether key came from the config file or the environment
// rather than from a default.
func (p *defaultConfigProvider) explicitlySet(key string) bool {
	if p.v.InConfig(key) {
		return true
	}
	_, ok := os.LookupEnv(p.identity.EnvPrefix + "_" + strings.ToUpper(key))
	return ok
}

// MergeLegacy fills values from a legacy settings file for every key that was
// not set explicitly.
func (s *Settings) MergeLegacy(legacy *Settings, explicit func(key string) bool) {
	if !explicit("interface") {
		s.Interface = legacy.Interface
	}
	if !explicit("prefixLength") {
		s.PrefixLength = legacy.PrefixLength
	}
	if !explicit("files") {
		s.Files = legacy.Files
	}
	if !explicit("units") {
		s.Units = legacy.Units
	}
}

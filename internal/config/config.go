// Package config resolves the configuration directory, the optional
// config.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "tasktable"

	// SettingsFile is the optional settings filename inside the config dir.
	SettingsFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvFile is the dotenv file read from the working directory.
	EnvFile = ".env"

	// DebugLogFile receives debug logs while the interactive UI owns the terminal.
	DebugLogFile = "debug.log"
)

// Source names.
const (
	SourcePlaceholder = "placeholder"
	SourceGoogle      = "google"
)

// Defaults.
const (
	DefaultEndpoint = "https://jsonplaceholder.typicode.com/todos"
	DefaultPageSize = 20
	DefaultTimeout  = 10 * time.Second
	DefaultNotify   = 5 * time.Second
)

// Settings are the tunable values read from config.yaml and the environment.
type Settings struct {
	Source     string        `yaml:"source"`
	Endpoint   string        `yaml:"endpoint"`
	PageSize   int           `yaml:"page_size"`
	Timeout    time.Duration `yaml:"timeout"`
	Notify     time.Duration `yaml:"notify"`
	GoogleList string        `yaml:"google_list"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Source:   SourcePlaceholder,
		Endpoint: DefaultEndpoint,
		PageSize: DefaultPageSize,
		Timeout:  DefaultTimeout,
		Notify:   DefaultNotify,
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	Settings Settings
}

// New creates a Config for the default or specified config directory with
// built-in settings. Use Load to apply config.yaml and the environment.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktable or $HOME/.config/tasktable.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// Load creates a Config and layers config.yaml, then .env and the process
// environment, over the defaults. A missing config.yaml or .env is not an error.
// The settings are not validated: callers apply their own overrides first
// and then call Settings.Validate.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse %s: %w", EnvFile, err)
	}

	if err := cfg.Settings.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.Settings.normalize()
	return cfg, nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	if err := yaml.Unmarshal(data, &c.Settings); err != nil {
		return fmt.Errorf("failed to parse %s: %w", SettingsFile, err)
	}
	return nil
}

// applyEnv overrides settings from TASKTABLE_* variables.
func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TASKTABLE_SOURCE"); ok && v != "" {
		s.Source = v
	}
	if v, ok := lookup("TASKTABLE_ENDPOINT"); ok && v != "" {
		s.Endpoint = v
	}
	if v, ok := lookup("TASKTABLE_GOOGLE_LIST"); ok {
		s.GoogleList = v
	}
	if v, ok := lookup("TASKTABLE_PAGE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TASKTABLE_PAGE_SIZE: %s", v)
		}
		s.PageSize = n
	}
	if v, ok := lookup("TASKTABLE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TASKTABLE_TIMEOUT: %s", v)
		}
		s.Timeout = d
	}
	if v, ok := lookup("TASKTABLE_NOTIFY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TASKTABLE_NOTIFY: %s", v)
		}
		s.Notify = d
	}
	return nil
}

// Validate normalizes the source name and checks that every setting is usable.
func (s *Settings) Validate() error {
	s.normalize()
	switch s.Source {
	case SourcePlaceholder, SourceGoogle:
	default:
		return fmt.Errorf("unknown source: %s", s.Source)
	}
	if s.Source == SourcePlaceholder && s.Endpoint == "" {
		return errors.New("endpoint required")
	}
	if s.PageSize < 1 {
		return fmt.Errorf("invalid page size: %d", s.PageSize)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", s.Timeout)
	}
	if s.Notify <= 0 {
		return fmt.Errorf("invalid notification duration: %s", s.Notify)
	}
	return nil
}

func (s *Settings) normalize() {
	s.Source = strings.ToLower(strings.TrimSpace(s.Source))
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// DebugLogPath returns the path of the UI debug log.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.Dir, DebugLogFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// Package config provides configuration management for the stats service and tools.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingEventsSource    = errors.New("data.events is required")
	ErrMissingPeopleSource    = errors.New("data.people is required")
	ErrMissingLocationsSource = errors.New("data.locations is required")
	ErrInvalidTimeout         = errors.New("data.timeout_sec must be non-negative")
	ErrInvalidMaxBody         = errors.New("data.max_body_kb must be at least 1")
	ErrMissingListen          = errors.New("server.listen is required")
	ErrInvalidCollation       = errors.New("display.collation is not a valid language tag")
	ErrInvalidLogLevel        = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat       = errors.New("logging.format must be 'text' or 'json'")
)

// Default file names of the three collections, relative to a data base.
const (
	EventsFile    = "mmp.json"
	PeopleFile    = "people.json"
	LocationsFile = "locations.json"

	// DefaultPath is tried when no -config flag is given.
	DefaultPath = "configs/mmpstats.yaml"
)

// Environment overrides.
const (
	EnvDataBase = "MMP_DATA_BASE"
	EnvListen   = "MMP_LISTEN"
	EnvLogLevel = "MMP_LOG_LEVEL"
)

// Config represents the complete configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Server  ServerConfig  `yaml:"server"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the three collections. Each source is an http(s) URL or a file path.
type DataConfig struct {
	Events     string `yaml:"events"`
	People     string `yaml:"people"`
	Locations  string `yaml:"locations"`
	TimeoutSec int    `yaml:"timeout_sec"`
	MaxBodyKb  int    `yaml:"max_body_kb"`
}

// ServerConfig contains HTTP front end settings.
type ServerConfig struct {
	Listen         string `yaml:"listen"`
	MediaRoot      string `yaml:"media_root"`
	CalendarDomain string `yaml:"calendar_domain"`
}

// DisplayConfig controls presentation details.
type DisplayConfig struct {
	Collation string `yaml:"collation"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration reading the collections from ./data.
func Default() *Config {
	cfg := &Config{
		Data: DataConfig{
			TimeoutSec: 30,
			MaxBodyKb:  4096,
		},
		Server: ServerConfig{
			Listen:         ":8080",
			MediaRoot:      "public",
			CalendarDomain: "mmpstats.local",
		},
		Display: DisplayConfig{Collation: "und"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
	cfg.SetDataBase("data")

	return cfg
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load resolves the configuration used by the commands: the given file, else
// DefaultPath when it exists, else Default. Environment overrides (including
// a .env file in the working directory) are applied last.
func Load(configPath string) (*Config, error) {
	var (
		cfg *Config
		err error
	)

	switch {
	case configPath != "":
		cfg, err = LoadConfig(configPath)
	case fileExists(DefaultPath):
		cfg, err = LoadConfig(DefaultPath)
	default:
		cfg = Default()
	}

	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(".env"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv loads envFile if present and applies MMP_* overrides.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" && fileExists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if base := os.Getenv(EnvDataBase); base != "" {
		c.SetDataBase(base)
	}

	if listen := os.Getenv(EnvListen); listen != "" {
		c.Server.Listen = listen
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}

	return c.Validate()
}

// SetDataBase points all three sources at the default file names under base,
// which may be a directory or an http(s) URL.
func (c *Config) SetDataBase(base string) {
	c.Data.Events = joinSource(base, EventsFile)
	c.Data.People = joinSource(base, PeopleFile)
	c.Data.Locations = joinSource(base, LocationsFile)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.Events == "" {
		return ErrMissingEventsSource
	}

	if c.Data.People == "" {
		return ErrMissingPeopleSource
	}

	if c.Data.Locations == "" {
		return ErrMissingLocationsSource
	}

	if c.Data.TimeoutSec < 0 {
		return ErrInvalidTimeout
	}

	if c.Data.MaxBodyKb < 1 {
		return ErrInvalidMaxBody
	}

	if c.Server.Listen == "" {
		return ErrMissingListen
	}

	if _, err := language.Parse(c.Display.Collation); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCollation, c.Display.Collation)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Timeout returns the per-load timeout; zero means none.
func (d *DataConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSec) * time.Second
}

// MaxBodyBytes returns the response size limit for remote sources.
func (d *DataConfig) MaxBodyBytes() int64 {
	return int64(d.MaxBodyKb) * 1024
}

// CollationTag returns the language used to sort names.
func (d *DisplayConfig) CollationTag() language.Tag {
	tag, err := language.Parse(d.Collation)
	if err != nil {
		return language.Und
	}

	return tag
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Events: %s, People: %s, Locations: %s, Listen: %s}",
		c.Data.Events,
		c.Data.People,
		c.Data.Locations,
		c.Server.Listen,
	)
}

func joinSource(base, name string) string {
	if IsRemote(base) {
		u, err := url.Parse(base)
		if err == nil {
			u.Path = path.Join(u.Path, name)

			return u.String()
		}

		return strings.TrimRight(base, "/") + "/" + name
	}

	return filepath.Join(base, name)
}

func fileExists(p string) bool {
	_, err := os.Stat(p)

	return err == nil
}

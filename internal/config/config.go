package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/rshade/virtuallist/internal/window"
)

// Default configuration values.
const (
	DefaultItemHeight      = 1.0
	DefaultContainerHeight = 20.0
	DefaultOutputFormat    = "table"
	DefaultPrecision       = 2
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"

	configFileName = "config.yaml"
	configFilePerm = 0o600
	configDirPerm  = 0o700
)

// outputTypeFile is the logging output used when a log file is configured.
const outputTypeFile = "file"

// SupportedOutputFormats lists the accepted values for output.default_format.
//
//nolint:gochecknoglobals // Read-only lookup table.
var SupportedOutputFormats = []string{"table", "json", "ndjson", "yaml"}

// Config is the virtuallist configuration file.
type Config struct {
	SchemaVersion string        `json:"schema_version" yaml:"schema_version"`
	Window        WindowConfig  `json:"window" yaml:"window"`
	Output        OutputConfig  `json:"output" yaml:"output"`
	Logging       LoggingConfig `json:"logging" yaml:"logging"`

	configPath string
	loadErr    error
}

// WindowConfig holds the default viewport geometry.
type WindowConfig struct {
	ItemHeight      float64 `json:"item_height" yaml:"item_height"`
	ContainerHeight float64 `json:"container_height" yaml:"container_height"`
	Overscan        int     `json:"overscan" yaml:"overscan"`
}

// OutputConfig holds output formatting defaults.
type OutputConfig struct {
	DefaultFormat string `json:"default_format" yaml:"default_format"`
	Precision     int    `json:"precision" yaml:"precision"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Defaults returns a Config populated with built-in defaults only.
func Defaults() *Config {
	return &Config{
		SchemaVersion: CurrentSchemaVersion,
		Window: WindowConfig{
			ItemHeight:      DefaultItemHeight,
			ContainerHeight: DefaultContainerHeight,
			Overscan:        window.DefaultOverscan,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New builds the effective configuration: defaults, then the config file in
// the config directory, then .env and environment overrides. Load failures do
// not abort; they are kept and reported by LoadError so that commands still
// run with defaults.
func New() *Config {
	cfg := Defaults()

	dir, err := GetConfigDir()
	if err != nil {
		cfg.loadErr = err
		return cfg
	}
	cfg.configPath = filepath.Join(dir, configFileName)

	if loadErr := cfg.Load(); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
		cfg.loadErr = loadErr
	}
	if envErr := cfg.ApplyEnv(); envErr != nil {
		cfg.loadErr = errors.Join(cfg.loadErr, envErr)
	}
	return cfg
}

// NewFromFile loads defaults overlaid with the file at path and environment overrides.
// Unlike New, a missing or malformed file is an error.
func NewFromFile(path string) (*Config, error) {
	cfg := Defaults()
	cfg.configPath = path
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the file this config is read from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath overrides the file this config is read from and saved to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// LoadError returns the error encountered while building the config in New, if any.
func (c *Config) LoadError() error {
	return c.loadErr
}

// Load reads the config file and unmarshals it over the current values.
func (c *Config) Load() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}

	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}

	if err = CheckSchemaVersion(c.SchemaVersion); err != nil {
		return fmt.Errorf("config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the config to its config path, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := CheckSchemaVersion(c.SchemaVersion); err != nil {
		return err
	}
	if err := c.Window.Params().Validate(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	if !slices.Contains(SupportedOutputFormats, c.Output.DefaultFormat) {
		return fmt.Errorf("output.default_format must be one of %v, got %q",
			SupportedOutputFormats, c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output.precision must be >= 0, got %d", c.Output.Precision)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'console' or 'json', got %q", c.Logging.Format)
	}
	return nil
}

// Params converts the window section into calculator parameters.
func (w WindowConfig) Params() window.Params {
	return window.Params{
		ItemHeight:      w.ItemHeight,
		ContainerHeight: w.ContainerHeight,
		Overscan:        w.Overscan,
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds environment overrides. Unset variables leave the
// corresponding config value untouched.
type EnvConfig struct {
	// Env: VIRTUALLIST_ITEM_HEIGHT
	ItemHeight *float64 `envconfig:"VIRTUALLIST_ITEM_HEIGHT"`

	// Env: VIRTUALLIST_CONTAINER_HEIGHT
	ContainerHeight *float64 `envconfig:"VIRTUALLIST_CONTAINER_HEIGHT"`

	// Env: VIRTUALLIST_OVERSCAN
	Overscan *int `envconfig:"VIRTUALLIST_OVERSCAN"`

	// Env: VIRTUALLIST_OUTPUT_FORMAT
	OutputFormat string `envconfig:"VIRTUALLIST_OUTPUT_FORMAT"`

	// Env: VIRTUALLIST_LOG_LEVEL
	LogLevel string `envconfig:"VIRTUALLIST_LOG_LEVEL"`

	// Env: VIRTUALLIST_LOG_FORMAT (console or json)
	LogFormat string `envconfig:"VIRTUALLIST_LOG_FORMAT"`

	// Env: VIRTUALLIST_LOG_FILE
	LogFile string `envconfig:"VIRTUALLIST_LOG_FILE"`
}

// LoadDotEnv loads variables from a .env file without overriding variables
// already set. A missing file is not an error. An empty path means ".env".
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv reads EnvConfig from the process environment.
func LoadFromEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process("", &env); err != nil {
		return EnvConfig{}, fmt.Errorf("reading environment: %w", err)
	}
	return env, nil
}

// ApplyEnv loads .env from the working directory and applies environment overrides to c.
func (c *Config) ApplyEnv() error {
	if err := LoadDotEnv(""); err != nil {
		return err
	}
	env, err := LoadFromEnv()
	if err != nil {
		return err
	}
	env.Apply(c)
	return nil
}

// Apply copies the set overrides onto c.
func (e EnvConfig) Apply(c *Config) {
	if e.ItemHeight != nil {
		c.Window.ItemHeight = *e.ItemHeight
	}
	if e.ContainerHeight != nil {
		c.Window.ContainerHeight = *e.ContainerHeight
	}
	if e.Overscan != nil {
		c.Window.Overscan = *e.Overscan
	}
	if e.OutputFormat != "" {
		c.Output.DefaultFormat = e.OutputFormat
	}
	if e.LogLevel != "" {
		c.Logging.Level = e.LogLevel
	}
	if e.LogFormat != "" {
		c.Logging.Format = e.LogFormat
	}
	if e.LogFile != "" {
		c.Logging.File = e.LogFile
	}
}

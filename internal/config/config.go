// Package config resolves CLI configuration.
//
// Precedence, lowest to highest:
//  1. Defaults()
//  2. Config file (--config, or ./evreg.yaml when present)
//  3. Environment variables (EVREG_DATA, EVREG_OUTPUT, EVREG_LOG_LEVEL, ...)
//  4. Explicitly set command-line flags
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/roach88/evreg/internal/logging"
)

// Config is the resolved configuration.
type Config struct {
	// Data is the path of the registry CSV file.
	Data string `mapstructure:"data" yaml:"data" json:"data"`

	// Output is the command output format: "text" or "json".
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log" json:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-" json:"file,omitempty"`
}

// LogConfig controls diagnostic logging (written to stderr).
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// ValidOutputs defines the allowed output formats.
var ValidOutputs = []string{"text", "json"}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"data":       "data",
	"output":     "format",
	"log.level":  "log-level",
	"log.format": "log-format",
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Data:   "ev.csv",
		Output: "text",
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatText,
		},
	}
}

// Load resolves configuration from path (optional), the environment, and
// flags (optional). Only flags the user actually set override other sources.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("data", d.Data)
	v.SetDefault("output", d.Output)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix("EVREG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("evreg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if !isValidOutput(c.Output) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Output, ValidOutputs)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != logging.FormatText && c.Log.Format != logging.FormatJSON {
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}
	if c.Data == "" {
		return errors.New("data path is required")
	}
	return nil
}

// YAML renders the configuration as a config file.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes Defaults() to path, creating parent directories.
func WriteDefault(path string) error {
	data, err := Defaults().YAML()
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func isValidOutput(format string) bool {
	for _, f := range ValidOutputs {
		if f == format {
			return true
		}
	}
	return false
}

// Package config loads the runtime settings of csquid from a config file,
// CSQUID_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/pthm/csquid/internal/lexer"
	"github.com/pthm/csquid/internal/profile"
)

// EnvPrefix prefixes environment overrides, e.g. CSQUID_LOG_LEVEL
const EnvPrefix = "CSQUID"

// Config holds the runtime settings
type Config struct {
	// Profile is a built-in profile name or a profile file path
	Profile string `mapstructure:"profile"`
	// Charset is the encoding of source files
	Charset string `mapstructure:"charset"`
	// Workers bounds the number of files analyzed concurrently
	Workers int `mapstructure:"workers"`
	// Include and Exclude are doublestar globs relative to each root
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
	// Defines are preprocessor symbols defined in every file
	Defines        []string  `mapstructure:"defines"`
	SuppressionTag string    `mapstructure:"suppression_tag"`
	Log            LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance carrying the defaults and environment
// bindings. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("profile", profile.Default)
	v.SetDefault("charset", "UTF-8")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("include", []string{"**/*.cs"})
	v.SetDefault("exclude", []string{"**/bin/**", "**/obj/**"})
	v.SetDefault("defines", []string{})
	v.SetDefault("suppression_tag", "NOSONAR")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and decodes the settings. An empty
// configPath searches for csquid.yaml in the working directory and the
// user config directory.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("csquid")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/csquid")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// File returns the config file in use, or "" when running on defaults
func File(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if len(c.Include) == 0 {
		return errors.New("include must list at least one pattern")
	}
	if err := lexer.SupportedCharset(c.Charset); err != nil {
		return fmt.Errorf("charset %q: %w", c.Charset, err)
	}
	if strings.TrimSpace(c.SuppressionTag) == "" {
		return errors.New("suppression_tag cannot be empty")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be 'console' or 'json')", c.Log.Format)
	}
	return nil
}

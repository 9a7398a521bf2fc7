// Package config loads service configuration from defaults, CALLREPORT_
// environment variables, an optional YAML file and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"

	MatchFold  = "fold"
	MatchExact = "exact"

	// StyleEnvelope reports every data outcome as 200 with a status field.
	StyleEnvelope = "envelope"
	// StyleStatus reports data-empty outcomes as HTTP error statuses.
	StyleStatus = "status"
)

const (
	DefaultAddr        = ":8090"
	DefaultDBPath      = "callreport.db"
	DefaultBaseURL     = "https://ffieccdr.azure-api.us/public"
	DefaultTimeout     = 30 * time.Second
	DefaultRate        = 2.0
	DefaultBurst       = 4
	DefaultMetricCode  = "RCON2200"
)

type FFIECConfig struct {
	BaseURL string        `mapstructure:"base-url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Rate is the sustained number of upstream calls per second.
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

type MetricConfig struct {
	DefaultCode string `mapstructure:"default-code"`
	Match       string `mapstructure:"match"`
}

type ResponseConfig struct {
	Style string `mapstructure:"style"`
}

type Config struct {
	Addr      string         `mapstructure:"addr"`
	LogLevel  string         `mapstructure:"log-level"`
	LogFormat string         `mapstructure:"log-format"`
	// DBPath is the sqlite file for the lookup journal. Empty disables it.
	DBPath   string         `mapstructure:"db-path"`
	FFIEC    FFIECConfig    `mapstructure:"ffiec"`
	Metric   MetricConfig   `mapstructure:"metric"`
	Response ResponseConfig `mapstructure:"response"`

	ConfigFile string `mapstructure:"-"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Addr:      DefaultAddr,
		LogLevel:  LogLevelInfo,
		LogFormat: LogFormatJSON,
		DBPath:    DefaultDBPath,
		FFIEC: FFIECConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
			Rate:    DefaultRate,
			Burst:   DefaultBurst,
		},
		Metric: MetricConfig{
			DefaultCode: DefaultMetricCode,
			Match:       MatchFold,
		},
		Response: ResponseConfig{Style: StyleEnvelope},
	}
}

// Validate checks enum values and ranges.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be one of console, json", c.LogFormat)
	}

	switch c.Metric.Match {
	case MatchFold, MatchExact:
	default:
		return fmt.Errorf("invalid metric match %q: must be one of fold, exact", c.Metric.Match)
	}

	switch c.Response.Style {
	case StyleEnvelope, StyleStatus:
	default:
		return fmt.Errorf("invalid response style %q: must be one of envelope, status", c.Response.Style)
	}

	if strings.TrimSpace(c.Metric.DefaultCode) == "" {
		return errors.New("metric.default-code is required")
	}
	if c.FFIEC.BaseURL == "" {
		return errors.New("ffiec.base-url is required")
	}
	if c.FFIEC.Timeout <= 0 {
		return errors.New("ffiec.timeout must be > 0")
	}
	if c.FFIEC.Rate <= 0 {
		return errors.New("ffiec.rate must be > 0")
	}
	if c.FFIEC.Burst < 1 {
		return errors.New("ffiec.burst must be >= 1")
	}
	if c.Addr == "" {
		return errors.New("addr is required")
	}

	return nil
}

// Load builds a Config from a fresh viper instance so concurrent callers do
// not share state. cmd may be nil.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("db-path", d.DBPath)
	v.SetDefault("ffiec.base-url", d.FFIEC.BaseURL)
	v.SetDefault("ffiec.timeout", d.FFIEC.Timeout)
	v.SetDefault("ffiec.rate", d.FFIEC.Rate)
	v.SetDefault("ffiec.burst", d.FFIEC.Burst)
	v.SetDefault("metric.default-code", d.Metric.DefaultCode)
	v.SetDefault("metric.match", d.Metric.Match)
	v.SetDefault("response.style", d.Response.Style)
}

func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("CALLREPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
}

func configureFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}

		return nil
	}

	v.SetConfigName(".callreport")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "callreport"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}

		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// bindFlags binds cmd's local flags and the persistent flags of every
// ancestor. Flag names match config keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}

	return nil
}

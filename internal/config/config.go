// Package config loads CLI settings from defaults, an optional YAML file,
// BONDS_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BONDS_LOG_LEVEL
const EnvPrefix = "BONDS"

// Config represents the complete application configuration.
type Config struct {
	File       string    `mapstructure:"file"        yaml:"file"`
	Strict     bool      `mapstructure:"strict"      yaml:"strict"`
	Country    string    `mapstructure:"country"     yaml:"country"`
	Coupon     *float64  `mapstructure:"coupon"      yaml:"coupon"` // fraction, e.g. 0.05
	Maturity   string    `mapstructure:"maturity"    yaml:"maturity"`
	Grade      string    `mapstructure:"grade"       yaml:"grade"`
	Sort       string    `mapstructure:"sort"        yaml:"sort"`
	Direction  string    `mapstructure:"direction"   yaml:"direction"`
	Limit      int       `mapstructure:"limit"       yaml:"limit"`
	Output     string    `mapstructure:"output"      yaml:"output"`
	OutputFile string    `mapstructure:"output_file" yaml:"output_file"`
	Amount     float64   `mapstructure:"amount"      yaml:"amount"`
	Log        LogConfig `mapstructure:"log"         yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// New returns a viper instance with defaults and environment overrides set.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// coupon has no default, so AutomaticEnv alone would not surface it on Unmarshal
	_ = v.BindEnv("coupon")

	return v
}

// Load reads the config file, if any, and decodes the merged settings.
// An empty path searches for bonds.yaml in the working directory and
// $HOME/.bonds; a missing file there is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bonds")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bonds")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("file", "")
	v.SetDefault("strict", false)
	v.SetDefault("country", "GB")
	v.SetDefault("maturity", "")
	v.SetDefault("grade", "")
	v.SetDefault("sort", "")
	v.SetDefault("direction", string(domain.Desc))
	v.SetDefault("limit", 0)
	v.SetDefault("output", string(domain.OutputTable))
	v.SetDefault("output_file", "")
	v.SetDefault("amount", 20000.0)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", true)
}

// Validate rejects values no command can act on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return fmt.Errorf("%w: a bonds csv file is required", domain.ErrUsage)
	}
	if c.Maturity != "" {
		if _, err := domain.ParseMaturityBucket(c.Maturity); err != nil {
			return err
		}
	}
	if _, err := domain.ParseGrade(c.Grade); err != nil {
		return err
	}
	if _, err := domain.ParseSortKey(c.Sort); err != nil {
		return err
	}
	if _, err := domain.ParseDirection(c.Direction); err != nil {
		return err
	}
	if _, err := domain.ParseOutputMode(c.Output); err != nil {
		return err
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", domain.ErrUsage)
	}
	if c.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrUsage)
	}
	return nil
}

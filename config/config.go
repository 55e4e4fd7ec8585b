// SPDX-License-Identifier: EPL-2.0

// Package config loads bgmix settings from defaults, an optional YAML file
// and BGMIX_* environment variables, in increasing order of precedence.
// Command line flags bound on top of the returned viper win over all three.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	AppName   = "bgmix"
	EnvPrefix = "BGMIX"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Frame   FrameConfig   `mapstructure:"frame"`
	LowPass LowPassConfig `mapstructure:"lowpass"`
	Track   TrackConfig   `mapstructure:"track"`
	Log     LogConfig     `mapstructure:"log"`
}

type FrameConfig struct {
	// Size is the number of samples per channel in each microphone frame.
	Size int `mapstructure:"size"`
}

type LowPassConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Cutoff  float64 `mapstructure:"cutoff"`
}

type TrackConfig struct {
	Mono bool `mapstructure:"mono"`
	// Resample converts the music to the microphone rate at load time.
	Resample bool `mapstructure:"resample"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("frame.size", 480)
	v.SetDefault("lowpass.enabled", false)
	v.SetDefault("lowpass.cutoff", 100.0)
	v.SetDefault("track.mono", false)
	v.SetDefault("track.resample", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// New builds a viper instance with defaults and environment bindings and
// reads the config file. An explicit file must exist; otherwise bgmix.yaml
// is looked up in the working directory and in $XDG_CONFIG_HOME/bgmix.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		return v, nil
	}

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load is New followed by FromViper.
func Load(file string) (*Config, error) {
	v, err := New(file)
	if err != nil {
		return nil, err
	}

	return FromViper(v)
}

func (c *Config) Validate() error {
	if c.Frame.Size <= 0 {
		return fmt.Errorf("%w: frame.size must be positive, got %d", ErrInvalid, c.Frame.Size)
	}
	if c.LowPass.Cutoff <= 0 {
		return fmt.Errorf("%w: lowpass.cutoff must be positive, got %v", ErrInvalid, c.LowPass.Cutoff)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalid, c.Log.Format)
	}

	return nil
}

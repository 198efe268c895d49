// Package config loads dashboard settings from YAML with defaults for
// anything the file leaves out.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the clauselens configuration file.
const FileName = "config.yaml"

// DirName is the per-user directory holding the configuration file.
const DirName = "clauselens"

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "CLAUSELENS_CONFIG"

// EnvReducedMotion forces reduced motion when set to a truthy value,
// regardless of what the config file says.
const EnvReducedMotion = "CLAUSELENS_REDUCED_MOTION"

// Config holds all clauselens configuration.
type Config struct {
	Motion  MotionConfig  `yaml:"motion"`
	Backend BackendConfig `yaml:"backend"`
	Server  ServerConfig  `yaml:"server"`
}

// MotionConfig holds timing for the animated surfaces.
type MotionConfig struct {
	Reduced   bool `yaml:"reduced"`
	GaugeMS   int  `yaml:"gauge_ms"`
	RevealMS  int  `yaml:"reveal_ms"`
	StaggerMS int  `yaml:"stagger_ms"`
	FPS       int  `yaml:"fps"`
}

// BackendConfig holds connection settings for the analyzer service.
type BackendConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// ServerConfig holds settings for the local dashboard server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// GaugeDuration returns how long a gauge sweep runs.
func (m MotionConfig) GaugeDuration() time.Duration {
	return time.Duration(m.GaugeMS) * time.Millisecond
}

// RevealDuration returns how long a section entrance runs.
func (m MotionConfig) RevealDuration() time.Duration {
	return time.Duration(m.RevealMS) * time.Millisecond
}

// Stagger returns the per-sibling entrance delay.
func (m MotionConfig) Stagger() time.Duration {
	return time.Duration(m.StaggerMS) * time.Millisecond
}

// Timeout returns the backend request timeout.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutMS) * time.Millisecond
}

// Load reads config from the default location, falling back to defaults
// when no file exists. The location is $CLAUSELENS_CONFIG if set,
// otherwise config.yaml under the user config directory.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return applyEnv(Default()), nil
		}
		path = filepath.Join(base, DirName, FileName)
	}
	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path. A missing file yields
// defaults; a present file is decoded strictly, merged with defaults,
// and validated.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(Default()), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	// Unknown keys are config-file typos, not forward compatibility.
	dec.KnownFields(true)
	if err := dec.Decode(loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := applyEnv(Merge(loaded, Default()))
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Validate checks that config values are usable.
func Validate(cfg *Config) error {
	if cfg.Motion.GaugeMS <= 0 {
		return fmt.Errorf("%w: motion.gauge_ms must be positive, got %d",
			ErrInvalidConfig, cfg.Motion.GaugeMS)
	}
	if cfg.Motion.RevealMS <= 0 {
		return fmt.Errorf("%w: motion.reveal_ms must be positive, got %d",
			ErrInvalidConfig, cfg.Motion.RevealMS)
	}
	if cfg.Motion.StaggerMS < 0 {
		return fmt.Errorf("%w: motion.stagger_ms must be non-negative, got %d",
			ErrInvalidConfig, cfg.Motion.StaggerMS)
	}
	if cfg.Motion.FPS <= 0 || cfg.Motion.FPS > 120 {
		return fmt.Errorf("%w: motion.fps must be between 1 and 120, got %d",
			ErrInvalidConfig, cfg.Motion.FPS)
	}
	if cfg.Backend.TimeoutMS <= 0 {
		return fmt.Errorf("%w: backend.timeout_ms must be positive, got %d",
			ErrInvalidConfig, cfg.Backend.TimeoutMS)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalidConfig)
	}
	return nil
}

func applyEnv(cfg *Config) *Config {
	if v := os.Getenv(EnvReducedMotion); v != "" {
		if reduced, err := strconv.ParseBool(v); err == nil {
			cfg.Motion.Reduced = reduced
		}
	}
	return cfg
}

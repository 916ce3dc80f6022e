package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/slitsim/internal/dynamo"
)

const (
	DefaultWidth    = 800
	DefaultHeight   = 400
	DefaultTimeStep = 0.02
	DefaultFPS      = 60
	DefaultTheme    = "mono"
	DefaultDataDir  = ".slitsim"
)

type Config struct {
	Params   dynamo.Params `yaml:",inline"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	TimeStep float64       `yaml:"time_step"`
	FPS      int           `yaml:"fps"`
	Workers  int           `yaml:"workers"`
	Theme    string        `yaml:"theme"`
	DataDir  string        `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:   dynamo.DefaultParams(),
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		TimeStep: DefaultTimeStep,
		FPS:      DefaultFPS,
		Theme:    DefaultTheme,
		DataDir:  DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// base's values. base is modified in place.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the simulation parameters and the buffer geometry.
func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Width < 2 || c.Height < 1 {
		return fmt.Errorf("%dx%d: %w", c.Width, c.Height, dynamo.ErrInvalidDimensions)
	}
	if c.TimeStep < 0 {
		return fmt.Errorf("time_step=%g: %w", c.TimeStep, dynamo.ErrParameterBounds)
	}
	return nil
}

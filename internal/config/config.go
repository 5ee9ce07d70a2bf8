package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/frlayout/internal/placement"
	"github.com/san-kum/frlayout/internal/sim"
)

const (
	DefaultWidth              = 800.0
	DefaultHeight             = 800.0
	DefaultInitialTemperature = 250.0
	DefaultCoolingFactor      = 0.95
	DefaultMinTemperature     = 0.05
	DefaultMaxIterations      = 400
	DefaultForceConstant      = 1.3
	DefaultMargin             = 1.8
	DefaultGravity            = 0.1
	DefaultTickDelay          = 25 * time.Millisecond
	DefaultGraph              = "graphs/k8.txt"
)

type Config struct {
	Graph              string        `yaml:"graph"`
	Width              float64       `yaml:"width"`
	Height             float64       `yaml:"height"`
	InitialTemperature float64       `yaml:"initial_temperature"`
	CoolingFactor      float64       `yaml:"cooling_factor"`
	MinTemperature     float64       `yaml:"min_temperature"`
	MaxIterations      int           `yaml:"max_iterations"`
	ForceConstant      float64       `yaml:"force_constant"`
	Margin             float64       `yaml:"margin"`
	Gravity            float64       `yaml:"gravity"`
	Seed               int64         `yaml:"seed"`
	Placement          string        `yaml:"placement"`
	StopOnSettle       bool          `yaml:"stop_on_settle"`
	TickDelay          time.Duration `yaml:"tick_delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Graph:              DefaultGraph,
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		InitialTemperature: DefaultInitialTemperature,
		CoolingFactor:      DefaultCoolingFactor,
		MinTemperature:     DefaultMinTemperature,
		MaxIterations:      DefaultMaxIterations,
		ForceConstant:      DefaultForceConstant,
		Margin:             DefaultMargin,
		Gravity:            DefaultGravity,
		Placement:          placement.Uniform,
		TickDelay:          DefaultTickDelay,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base. Keys absent from the file
// keep the value from base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.ToSim().Validate(); err != nil {
		return err
	}
	if _, err := placement.ByName(c.Placement); err != nil {
		return err
	}
	return nil
}

func (c *Config) ToSim() sim.Config {
	return sim.Config{
		Width:              c.Width,
		Height:             c.Height,
		InitialTemperature: c.InitialTemperature,
		CoolingFactor:      c.CoolingFactor,
		MinTemperature:     c.MinTemperature,
		MaxIterations:      c.MaxIterations,
		ForceConstant:      c.ForceConstant,
		Margin:             c.Margin,
		Gravity:            c.Gravity,
		StopOnSettle:       c.StopOnSettle,
		TickDelay:          c.TickDelay,
	}
}

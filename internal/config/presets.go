package config

import (
	"sort"
	"time"
)

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

// Presets are named starting points. k8 and gentle differ only in their
// initial temperature.
var Presets = map[string]*Config{
	"k8":     DefaultConfig(),
	"gentle": preset(func(c *Config) { c.InitialTemperature = 100 }),
	"quick": preset(func(c *Config) {
		c.CoolingFactor = 0.85
		c.MaxIterations = 150
		c.StopOnSettle = true
		c.TickDelay = 10 * time.Millisecond
	}),
	"wide": preset(func(c *Config) {
		c.Width = 1600
		c.Height = 1600
		c.ForceConstant = 2.0
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

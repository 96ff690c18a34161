package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/gravity"
)

const (
	DefaultAddr          = ":8080"
	DefaultDt            = 0.1
	DefaultDuration      = 60.0
	DefaultPreset        = "binary"
	DefaultSessionIdle   = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	DefaultDt     float64       `yaml:"default_dt"`
	SessionIdle   time.Duration `yaml:"session_idle"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type SimulationConfig struct {
	Preset   string            `yaml:"preset"`
	Dt       float64           `yaml:"dt"`
	Duration float64           `yaml:"duration"`
	Bodies   []gravity.RawSpec `yaml:"bodies,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          DefaultAddr,
			DefaultDt:     DefaultDt,
			SessionIdle:   DefaultSessionIdle,
			SweepInterval: DefaultSweepInterval,
		},
		Simulation: SimulationConfig{
			Preset:   DefaultPreset,
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Specs resolves the configured body set. Explicit bodies win over the
// preset.
func (c *Config) Specs() ([]gravity.Spec, error) {
	if len(c.Simulation.Bodies) > 0 {
		return gravity.DecodeSpecs(c.Simulation.Bodies)
	}
	if c.Simulation.Preset == "" {
		return nil, fmt.Errorf("config: no bodies and no preset")
	}
	p := GetPreset(c.Simulation.Preset)
	if p == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", c.Simulation.Preset, ListPresets())
	}
	return p.Bodies, nil
}

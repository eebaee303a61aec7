package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

const (
	DefaultSpeed     = 100.0 // km/h
	DefaultLf        = 1.4   // m
	DefaultLb        = 1.2   // m
	DefaultDt        = 0.1   // s
	DefaultMaxSpeed  = 300.0 // km/h
	DefaultAngleStep = 1.2   // deg
	DefaultSpeedStep = 10.0  // km/h
)

// Config is the YAML-facing configuration surface. Angles are degrees here;
// the heading is converted to radians when handed to the vehicle.
type Config struct {
	Speed     float64 `yaml:"speed"`      // km/h
	Lf        float64 `yaml:"lf"`         // m
	Lb        float64 `yaml:"lb"`         // m
	X0        float64 `yaml:"x0"`         // m
	Y0        float64 `yaml:"y0"`         // m
	Psi0      float64 `yaml:"psi0"`       // initial heading, deg
	Df0       float64 `yaml:"df0"`        // initial steer, deg
	Dt        float64 `yaml:"dt"`         // s
	MinSpeed  float64 `yaml:"min_speed"`  // km/h
	MaxSpeed  float64 `yaml:"max_speed"`  // km/h
	AngleStep float64 `yaml:"angle_step"` // deg
	SpeedStep float64 `yaml:"speed_step"` // km/h
}

func DefaultConfig() *Config {
	return &Config{
		Speed:     DefaultSpeed,
		Lf:        DefaultLf,
		Lb:        DefaultLb,
		Dt:        DefaultDt,
		MaxSpeed:  DefaultMaxSpeed,
		AngleStep: DefaultAngleStep,
		SpeedStep: DefaultSpeedStep,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Vehicle maps the file-level config to vehicle construction parameters.
func (c *Config) Vehicle() vehicle.Config {
	return vehicle.Config{
		WheelbaseFront: c.Lf,
		WheelbaseRear:  c.Lb,
		SampleInterval: c.Dt,
		InitialX:       c.X0,
		InitialY:       c.Y0,
		InitialHeading: c.Psi0 * math.Pi / 180,
		InitialSteer:   c.Df0,
		InitialSpeed:   c.Speed,
		MinSpeed:       c.MinSpeed,
		MaxSpeed:       c.MaxSpeed,
	}
}

// Mapper builds the control mapper for this configuration.
func (c *Config) Mapper() *input.Mapper {
	return input.NewMapper(c.AngleStep, c.SpeedStep)
}

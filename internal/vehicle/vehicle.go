package vehicle

import (
	"fmt"
	"math"

	"github.com/san-kum/ackersim/internal/input"
)

// Config holds the construction parameters for a Car. Geometry and sample
// interval are fixed for the lifetime of the vehicle; speeds are km/h,
// distances meters, angles as noted.
type Config struct {
	WheelbaseFront float64 // Lf: center of mass to front axle, m
	WheelbaseRear  float64 // Lb: center of mass to rear axle, m
	SampleInterval float64 // dt, s

	InitialX       float64 // m
	InitialY       float64 // m
	InitialHeading float64 // rad
	InitialSteer   float64 // deg
	InitialSpeed   float64 // km/h

	MinSpeed float64 // km/h
	MaxSpeed float64 // km/h
}

// DefaultConfig mirrors the stock sedan geometry used across presets.
func DefaultConfig() Config {
	return Config{
		WheelbaseFront: 1.4,
		WheelbaseRear:  1.2,
		SampleInterval: 0.1,
		InitialSpeed:   100,
		MinSpeed:       0,
		MaxSpeed:       300,
	}
}

// Pose is the vehicle's world-frame position and orientation.
type Pose struct {
	X       float64 // m
	Y       float64 // m
	Heading float64 // rad, in [0, 2pi)
}

// Car evolves a bicycle-model (Ackermann) kinematic state one sample interval
// at a time. It is owned by a single tick loop and never mutated concurrently.
type Car struct {
	Speed      float64 // km/h set-point, clamped to [MinSpeed, MaxSpeed]
	SteerAngle float64 // deg, current front-wheel command

	x, y    float64
	heading float64

	lf, lb float64
	dt     float64

	minSpeed, maxSpeed float64

	initial Config
}

// New validates the configuration and builds a Car. Validation is the only
// place errors can arise; Step never fails.
func New(cfg Config) (*Car, error) {
	if cfg.WheelbaseFront <= 0 {
		return nil, fmt.Errorf("front wheelbase must be positive, got %g", cfg.WheelbaseFront)
	}
	if cfg.WheelbaseRear <= 0 {
		return nil, fmt.Errorf("rear wheelbase must be positive, got %g", cfg.WheelbaseRear)
	}
	if cfg.SampleInterval <= 0 {
		return nil, fmt.Errorf("sample interval must be positive, got %g", cfg.SampleInterval)
	}
	if cfg.MinSpeed > cfg.MaxSpeed {
		return nil, fmt.Errorf("min speed %g exceeds max speed %g", cfg.MinSpeed, cfg.MaxSpeed)
	}
	if cfg.InitialSpeed < cfg.MinSpeed || cfg.InitialSpeed > cfg.MaxSpeed {
		return nil, fmt.Errorf("initial speed %g outside [%g, %g]", cfg.InitialSpeed, cfg.MinSpeed, cfg.MaxSpeed)
	}

	c := &Car{initial: cfg}
	c.apply(cfg)
	return c, nil
}

func (c *Car) apply(cfg Config) {
	c.Speed = cfg.InitialSpeed
	c.SteerAngle = cfg.InitialSteer
	c.x = cfg.InitialX
	c.y = cfg.InitialY
	c.heading = wrapHeading(cfg.InitialHeading)
	c.lf = cfg.WheelbaseFront
	c.lb = cfg.WheelbaseRear
	c.dt = cfg.SampleInterval
	c.minSpeed = cfg.MinSpeed
	c.maxSpeed = cfg.MaxSpeed
}

// Reset restores the initial state and geometry.
func (c *Car) Reset() { c.apply(c.initial) }

// Step advances the state by one sample interval. The command is applied in
// the same tick it arrives: speed set-point and steer angle are updated first,
// then the pose integrates from those values.
//
//	beta = atan2(Lb * tan(delta), Lf + Lb)
//	x   += v*dt * cos(psi + beta)
//	y   += v*dt * sin(psi + beta)
//	psi += v*dt * cos(beta) * tan(delta) / (Lf + Lb)
//
// v is the stored set-point converted to m/s, negated in reverse and zero
// when no direction is commanded. A stopped vehicle keeps its set-point.
func (c *Car) Step(cmd input.Command) {
	if cmd.SpeedDelta != 0 {
		c.Speed = clamp(c.Speed+cmd.SpeedDelta, c.minSpeed, c.maxSpeed)
	}
	c.SteerAngle = cmd.Steer

	v := c.Speed / 3.6
	switch cmd.Direction {
	case input.DirectionBackward:
		v = -v
	case input.DirectionNone:
		v = 0
	}

	delta := c.SteerAngle * math.Pi / 180
	beta := math.Atan2(c.lb*math.Tan(delta), c.lf+c.lb)

	c.x += v * c.dt * math.Cos(c.heading+beta)
	c.y += v * c.dt * math.Sin(c.heading+beta)
	c.heading = wrapHeading(c.heading + v*c.dt*math.Cos(beta)*math.Tan(delta)/(c.lf+c.lb))
}

// Pose returns the current world-frame pose.
func (c *Car) Pose() Pose {
	return Pose{X: c.x, Y: c.y, Heading: c.heading}
}

// SlipAngle returns beta in radians for the current steer command: the angle
// between the body heading and the velocity vector.
func (c *Car) SlipAngle() float64 {
	delta := c.SteerAngle * math.Pi / 180
	return math.Atan2(c.lb*math.Tan(delta), c.lf+c.lb)
}

// Wheelbase returns Lf and Lb in meters.
func (c *Car) Wheelbase() (lf, lb float64) { return c.lf, c.lb }

// SampleInterval returns dt in seconds.
func (c *Car) SampleInterval() float64 { return c.dt }

// SpeedLimits returns the set-point clamp range in km/h.
func (c *Car) SpeedLimits() (min, max float64) { return c.minSpeed, c.maxSpeed }

func (c *Car) GetParams() map[string]float64 {
	return map[string]float64{
		"wheelbase_front": c.lf,
		"wheelbase_rear":  c.lb,
		"max_speed":       c.maxSpeed,
	}
}

func (c *Car) SetParam(name string, value float64) error {
	switch name {
	case "wheelbase_front":
		if value <= 0 {
			return fmt.Errorf("wheelbase_front must be positive")
		}
		c.lf = value
	case "wheelbase_rear":
		if value <= 0 {
			return fmt.Errorf("wheelbase_rear must be positive")
		}
		c.lb = value
	case "max_speed":
		if value < c.minSpeed {
			return fmt.Errorf("max_speed below min_speed")
		}
		c.maxSpeed = value
		c.Speed = clamp(c.Speed, c.minSpeed, c.maxSpeed)
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

func wrapHeading(psi float64) float64 {
	psi = math.Mod(psi, 2*math.Pi)
	if psi < 0 {
		psi += 2 * math.Pi
	}
	return psi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

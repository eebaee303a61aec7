package sim

import (
	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

// Metric accumulates a scalar over a run, observing the post-step pose and
// the command that produced it each tick.
type Metric interface {
	Name() string
	Observe(p vehicle.Pose, cmd input.Command, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(p vehicle.Pose, cmd input.Command, t float64)
}

// Result holds the recorded trajectory of a headless run. Poses[0] is the
// initial pose at t=0; each subsequent entry is the state after one tick.
type Result struct {
	Poses   []vehicle.Pose
	Speeds  []float64 // km/h set-point after each tick
	Steers  []float64 // deg after each tick
	Times   []float64
	Metrics map[string]float64
	Ticks   int
}

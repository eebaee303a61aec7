package metrics

import (
	"math"

	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

// ControlEffort is the mean absolute steer command in degrees over a run.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort_deg" }

func (c *ControlEffort) Observe(p vehicle.Pose, cmd input.Command, t float64) {
	c.sum += math.Abs(cmd.Steer)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

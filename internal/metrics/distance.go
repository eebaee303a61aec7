package metrics

import (
	"math"

	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

// Distance accumulates path length in meters from consecutive poses.
type Distance struct {
	prev    vehicle.Pose
	started bool
	total   float64
}

func NewDistance() *Distance {
	return &Distance{}
}

func (d *Distance) Name() string { return "distance_m" }

func (d *Distance) Observe(p vehicle.Pose, cmd input.Command, t float64) {
	if d.started {
		d.total += math.Hypot(p.X-d.prev.X, p.Y-d.prev.Y)
	}
	d.prev = p
	d.started = true
}

func (d *Distance) Value() float64 { return d.total }

func (d *Distance) Reset() {
	d.total = 0
	d.started = false
	d.prev = vehicle.Pose{}
}

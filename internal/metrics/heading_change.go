package metrics

import (
	"math"

	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

// HeadingChange sums the absolute per-tick heading delta in radians,
// unwrapped across the 2pi seam.
type HeadingChange struct {
	prev    float64
	started bool
	total   float64
}

func NewHeadingChange() *HeadingChange {
	return &HeadingChange{}
}

func (h *HeadingChange) Name() string { return "heading_change_rad" }

func (h *HeadingChange) Observe(p vehicle.Pose, cmd input.Command, t float64) {
	if h.started {
		d := math.Abs(p.Heading - h.prev)
		if d > math.Pi {
			d = 2*math.Pi - d
		}
		h.total += d
	}
	h.prev = p.Heading
	h.started = true
}

func (h *HeadingChange) Value() float64 { return h.total }

func (h *HeadingChange) Reset() {
	h.total = 0
	h.started = false
	h.prev = 0
}

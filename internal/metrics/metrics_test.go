package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

func TestDistance(t *testing.T) {
	m := NewDistance()

	m.Observe(vehicle.Pose{}, input.Command{}, 0)
	m.Observe(vehicle.Pose{X: 3}, input.Command{}, 0.1)
	m.Observe(vehicle.Pose{X: 3, Y: 4}, input.Command{}, 0.2)

	if got := m.Value(); math.Abs(got-7) > 1e-12 {
		t.Errorf("expected distance 7, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
	m.Observe(vehicle.Pose{X: 10}, input.Command{}, 0)
	if m.Value() != 0 {
		t.Error("first observation after reset must not add distance")
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	if m.Value() != 0 {
		t.Error("expected zero with no samples")
	}

	m.Observe(vehicle.Pose{}, input.Command{Steer: 1.2}, 0)
	m.Observe(vehicle.Pose{}, input.Command{Steer: -1.2}, 0.1)
	m.Observe(vehicle.Pose{}, input.Command{}, 0.2)

	if got := m.Value(); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("expected mean effort 0.8, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestHeadingChange(t *testing.T) {
	m := NewHeadingChange()

	m.Observe(vehicle.Pose{Heading: 0.1}, input.Command{}, 0)
	m.Observe(vehicle.Pose{Heading: 0.3}, input.Command{}, 0.1)

	if got := m.Value(); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("expected 0.2, got %f", got)
	}
}

func TestHeadingChangeWrap(t *testing.T) {
	m := NewHeadingChange()

	// Crossing the 2pi seam counts the short way around.
	m.Observe(vehicle.Pose{Heading: 2*math.Pi - 0.05}, input.Command{}, 0)
	m.Observe(vehicle.Pose{Heading: 0.05}, input.Command{}, 0.1)

	if got := m.Value(); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("expected 0.1 across the seam, got %f", got)
	}
}

package sim

import "testing"

func TestScriptTicks(t *testing.T) {
	s := Script{
		{Ticks: 10},
		{Ticks: 5},
		{Ticks: -3}, // ignored
	}
	if got := s.Ticks(); got != 15 {
		t.Errorf("expected 15 ticks, got %d", got)
	}
}

func TestManeuverTickCounts(t *testing.T) {
	for _, name := range ManeuverNames() {
		for _, ticks := range []int{1, 15, 40, 113} {
			script, err := Maneuver(name, ticks)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if got := script.Ticks(); got != ticks {
				t.Errorf("%s(%d) spans %d ticks", name, ticks, got)
			}
		}
	}
}

func TestManeuverUnknown(t *testing.T) {
	if _, err := Maneuver("donut", 10); err == nil {
		t.Error("expected error for unknown maneuver")
	}
}

func TestManeuverNonPositiveTicks(t *testing.T) {
	if _, err := Maneuver("straight", 0); err == nil {
		t.Error("expected error for zero ticks")
	}
}

package sim

import (
	"fmt"
	"sort"

	"github.com/san-kum/ackersim/internal/input"
)

// Frame holds one set of inputs for a number of consecutive ticks.
type Frame struct {
	Inputs input.Inputs
	Ticks  int
}

// Script is an ordered sequence of input frames, the headless stand-in for a
// keyboard.
type Script []Frame

// Ticks returns the total tick count of the script.
func (s Script) Ticks() int {
	n := 0
	for _, f := range s {
		if f.Ticks > 0 {
			n += f.Ticks
		}
	}
	return n
}

// Straight drives forward with no steering.
func Straight(ticks int) Script {
	return Script{{Inputs: input.Inputs{Forward: true}, Ticks: ticks}}
}

// Circle holds forward-left for the whole run.
func Circle(ticks int) Script {
	return Script{{Inputs: input.Inputs{Forward: true, Left: true}, Ticks: ticks}}
}

// Slalom alternates left and right while driving forward.
func Slalom(ticks int) Script {
	period := 20
	var s Script
	for remaining := ticks; remaining > 0; remaining -= 2 * period {
		left, right := period, period
		if remaining < period {
			left, right = remaining, 0
		} else if remaining < 2*period {
			right = remaining - period
		}
		s = append(s, Frame{Inputs: input.Inputs{Forward: true, Left: true}, Ticks: left})
		if right > 0 {
			s = append(s, Frame{Inputs: input.Inputs{Forward: true, Right: true}, Ticks: right})
		}
	}
	return s
}

// Reverse backs up in a straight line.
func Reverse(ticks int) Script {
	return Script{{Inputs: input.Inputs{Backward: true}, Ticks: ticks}}
}

// ThereAndBack drives forward for half the run, then reverses.
func ThereAndBack(ticks int) Script {
	half := ticks / 2
	return Script{
		{Inputs: input.Inputs{Forward: true}, Ticks: half},
		{Inputs: input.Inputs{Backward: true}, Ticks: ticks - half},
	}
}

// Sprint accelerates while driving straight, exercising the speed set-point.
func Sprint(ticks int) Script {
	return Script{{Inputs: input.Inputs{Forward: true, SpeedUp: true}, Ticks: ticks}}
}

var maneuvers = map[string]func(ticks int) Script{
	"straight":       Straight,
	"circle":         Circle,
	"slalom":         Slalom,
	"reverse":        Reverse,
	"there-and-back": ThereAndBack,
	"sprint":         Sprint,
}

// Maneuver builds a named script spanning the given tick count.
func Maneuver(name string, ticks int) (Script, error) {
	build, ok := maneuvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown maneuver: %s (available: %v)", name, ManeuverNames())
	}
	if ticks <= 0 {
		return nil, fmt.Errorf("maneuver needs a positive tick count, got %d", ticks)
	}
	return build(ticks), nil
}

// ManeuverNames lists the built-in maneuvers in sorted order.
func ManeuverNames() []string {
	names := make([]string, 0, len(maneuvers))
	for name := range maneuvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package input

// Inputs is the set of directional and speed-adjust signals held during one
// tick. Any combination may be true at once; Map resolves conflicts.
type Inputs struct {
	Forward   bool
	Backward  bool
	Left      bool
	Right     bool
	SpeedUp   bool
	SpeedDown bool
}

// Held reports whether any directional input is active.
func (in Inputs) Held() bool {
	return in.Forward || in.Backward || in.Left || in.Right
}

type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// Command is the resolved per-tick control: a steering angle in degrees, a
// speed set-point adjustment in km/h, and the direction of travel.
type Command struct {
	Steer      float64
	SpeedDelta float64
	Direction  Direction
}

// Mapper translates held inputs into a Command. AngleStep and SpeedStep are
// per-instance tuning, not shared state.
type Mapper struct {
	AngleStep float64 // deg applied while a turn key is held
	SpeedStep float64 // km/h per speed-adjust tick
}

const (
	DefaultAngleStep = 1.2
	DefaultSpeedStep = 10.0
)

func NewMapper(angleStep, speedStep float64) *Mapper {
	return &Mapper{AngleStep: angleStep, SpeedStep: speedStep}
}

// Map resolves simultaneously held inputs into a single command.
//
// Forward and backward held together cancel to no direction, as do left and
// right. Steering toward screen-left is positive while driving forward; the
// sign mirrors in reverse. Speed adjustments only apply while at least one
// directional input is held, so a parked vehicle keeps its set-point.
func (m *Mapper) Map(in Inputs) Command {
	var cmd Command

	switch {
	case in.Forward && !in.Backward:
		cmd.Direction = DirectionForward
	case in.Backward && !in.Forward:
		cmd.Direction = DirectionBackward
	default:
		cmd.Direction = DirectionNone
	}

	switch {
	case in.Left && !in.Right:
		cmd.Steer = m.AngleStep
	case in.Right && !in.Left:
		cmd.Steer = -m.AngleStep
	}
	if cmd.Direction == DirectionBackward {
		cmd.Steer = -cmd.Steer
	}

	if in.Held() {
		if in.SpeedUp {
			cmd.SpeedDelta += m.SpeedStep
		}
		if in.SpeedDown {
			cmd.SpeedDelta -= m.SpeedStep
		}
	}

	return cmd
}

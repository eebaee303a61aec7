package input

import "testing"

func TestMapDirections(t *testing.T) {
	m := NewMapper(1.2, 10)

	tests := []struct {
		name string
		in   Inputs
		want Command
	}{
		{"idle", Inputs{}, Command{}},
		{"forward", Inputs{Forward: true}, Command{Direction: DirectionForward}},
		{"forward left", Inputs{Forward: true, Left: true}, Command{Steer: 1.2, Direction: DirectionForward}},
		{"forward right", Inputs{Forward: true, Right: true}, Command{Steer: -1.2, Direction: DirectionForward}},
		{"backward", Inputs{Backward: true}, Command{Direction: DirectionBackward}},
		{"backward left mirrors sign", Inputs{Backward: true, Left: true}, Command{Steer: -1.2, Direction: DirectionBackward}},
		{"backward right mirrors sign", Inputs{Backward: true, Right: true}, Command{Steer: 1.2, Direction: DirectionBackward}},
		{"forward and backward cancel", Inputs{Forward: true, Backward: true}, Command{Direction: DirectionNone}},
		{"left and right cancel", Inputs{Forward: true, Left: true, Right: true}, Command{Direction: DirectionForward}},
		{"turn without direction", Inputs{Left: true}, Command{Steer: 1.2, Direction: DirectionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(tt.in)
			if got != tt.want {
				t.Errorf("Map(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapSpeedAdjust(t *testing.T) {
	m := NewMapper(1.2, 10)

	tests := []struct {
		name string
		in   Inputs
		want float64
	}{
		{"speed up while moving", Inputs{Forward: true, SpeedUp: true}, 10},
		{"speed down while moving", Inputs{Forward: true, SpeedDown: true}, -10},
		{"speed up while parked is ignored", Inputs{SpeedUp: true}, 0},
		{"speed down while parked is ignored", Inputs{SpeedDown: true}, 0},
		{"both adjusts cancel", Inputs{Forward: true, SpeedUp: true, SpeedDown: true}, 0},
		{"turn key satisfies the moving guard", Inputs{Left: true, SpeedUp: true}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Map(tt.in).SpeedDelta; got != tt.want {
				t.Errorf("SpeedDelta = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if DirectionForward.String() != "forward" ||
		DirectionBackward.String() != "backward" ||
		DirectionNone.String() != "none" {
		t.Error("unexpected direction names")
	}
}

package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

// Simulator runs a scripted drive against a single vehicle: one input frame
// sample, one state update, one observation per tick, in strict sequence.
type Simulator struct {
	car       *vehicle.Car
	mapper    *input.Mapper
	metrics   []Metric
	observers []Observer
}

func New(car *vehicle.Car, mapper *input.Mapper) *Simulator {
	return &Simulator{car: car, mapper: mapper}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run executes the script tick by tick. Cancellation is checked between
// ticks, so an in-flight tick always completes before the loop stops; the
// partial result is returned alongside ctx.Err().
func (s *Simulator) Run(ctx context.Context, script Script) (*Result, error) {
	total := script.Ticks()
	if total == 0 {
		return nil, fmt.Errorf("script has no ticks")
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Poses:   make([]vehicle.Pose, 0, total+1),
		Speeds:  make([]float64, 0, total+1),
		Steers:  make([]float64, 0, total+1),
		Times:   make([]float64, 0, total+1),
		Metrics: make(map[string]float64),
	}

	dt := s.car.SampleInterval()
	t := 0.0
	s.record(result, t)

	for _, frame := range script {
		for i := 0; i < frame.Ticks; i++ {
			cmd := s.mapper.Map(frame.Inputs)
			s.car.Step(cmd)
			t += dt
			result.Ticks++
			s.record(result, t)

			pose := s.car.Pose()
			for _, m := range s.metrics {
				m.Observe(pose, cmd, t)
			}
			for _, obs := range s.observers {
				obs.OnTick(pose, cmd, t)
			}

			select {
			case <-ctx.Done():
				s.collect(result)
				return result, ctx.Err()
			default:
			}
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) record(result *Result, t float64) {
	result.Poses = append(result.Poses, s.car.Pose())
	result.Speeds = append(result.Speeds, s.car.Speed)
	result.Steers = append(result.Steers, s.car.SteerAngle)
	result.Times = append(result.Times, t)
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

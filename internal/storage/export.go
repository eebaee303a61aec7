package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/ackersim/internal/sim"
)

type ExportData struct {
	ID             string             `json:"id"`
	Maneuver       string             `json:"maneuver"`
	Dt             float64            `json:"dt"`
	Duration       float64            `json:"duration"`
	WheelbaseFront float64            `json:"wheelbase_front"`
	WheelbaseRear  float64            `json:"wheelbase_rear"`
	Ticks          int                `json:"ticks"`
	Times          []float64          `json:"times"`
	X              []float64          `json:"x"`
	Y              []float64          `json:"y"`
	Heading        []float64          `json:"psi"`
	Speeds         []float64          `json:"speed_kmh"`
	Steers         []float64          `json:"steer_deg"`
	Metrics        map[string]float64 `json:"metrics"`
}

// ExportMetadata writes just the run metadata as indented JSON.
func ExportMetadata(w io.Writer, meta *RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// ExportJSON writes the full recorded trajectory of a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		ID:             meta.ID,
		Maneuver:       meta.Maneuver,
		Dt:             meta.Dt,
		Duration:       meta.Duration,
		WheelbaseFront: meta.WheelbaseFront,
		WheelbaseRear:  meta.WheelbaseRear,
		Ticks:          result.Ticks,
		Times:          result.Times,
		X:              make([]float64, len(result.Poses)),
		Y:              make([]float64, len(result.Poses)),
		Heading:        make([]float64, len(result.Poses)),
		Speeds:         result.Speeds,
		Steers:         result.Steers,
		Metrics:        meta.Metrics,
	}

	for i, p := range result.Poses {
		data.X[i] = p.X
		data.Y[i] = p.Y
		data.Heading[i] = p.Heading
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

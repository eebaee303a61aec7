package config

import "sort"

// Presets bundle vehicle geometry and driving limits for common setups.
var Presets = map[string]*Config{
	"sedan": {
		Speed: 100, Lf: 1.4, Lb: 1.2, Dt: 0.1,
		MaxSpeed: 300, AngleStep: 1.2, SpeedStep: 10,
	},
	"highway": {
		Speed: 120, Lf: 1.4, Lb: 1.2, Dt: 0.05,
		MinSpeed: 60, MaxSpeed: 300, AngleStep: 0.6, SpeedStep: 5,
	},
	"truck": {
		Speed: 60, Lf: 2.8, Lb: 2.2, Dt: 0.1,
		MaxSpeed: 120, AngleStep: 0.8, SpeedStep: 5,
	},
	"kart": {
		Speed: 40, Lf: 0.6, Lb: 0.5, Dt: 0.05,
		MaxSpeed: 80, AngleStep: 2.5, SpeedStep: 5,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

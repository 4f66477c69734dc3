package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Width: 80, Height: 40, Density: 0.01, Frames: 50, Delay: 0.1,
		Direction: DirectionConfig{X: 1, Y: 1}, Display: "ansi", Theme: "mono",
	},
	"dense": {
		Width: 80, Height: 24, Density: 0.08, Frames: 120, Delay: 0.05,
		Direction: DirectionConfig{X: 1, Y: 0}, Display: "ansi", Theme: "nebula",
	},
	"drift": {
		Width: 100, Height: 30, Density: 0.02, Frames: 300, Delay: 0.2,
		Direction: DirectionConfig{X: -1, Y: 0}, Display: "ansi", Theme: "ice",
	},
	"warp": {
		Width: 120, Height: 36, Density: 0.03, Frames: 200, Delay: 0.02,
		Direction: DirectionConfig{X: 3, Y: -1}, Display: "tcell", Theme: "warp",
	},
	"sparse": {
		Width: 60, Height: 20, Density: 0.005, Frames: 80, Delay: 0.15,
		Direction: DirectionConfig{X: 0, Y: 1}, Display: "ansi", Theme: "mono",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

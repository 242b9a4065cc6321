package config

import (
	"sort"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
)

// Preset is a named scenario around Earth.
type Preset struct {
	Description string
	Config      *Config
}

func launch(altitude, speed, angle, duration float64) *Config {
	cfg := DefaultConfig()
	cfg.Launch.Altitude = altitude
	cfg.Launch.Speed = speed
	cfg.Launch.AngleDeg = angle
	cfg.Launch.Duration = duration
	return cfg
}

func circularSpeed(altitude float64) float64 {
	return physics.Earth.CircularSpeed(physics.Earth.R + altitude)
}

func circularPeriod(altitude float64) float64 {
	return physics.Earth.CircularPeriod(physics.Earth.R + altitude)
}

var Presets = map[string]Preset{
	"default": {
		Description: "1000 kg at 400 km, 7800 m/s, 0 deg, one day",
		Config:      DefaultConfig(),
	},
	"iss": {
		Description: "ISS-like circular orbit at 408 km, three revolutions",
		Config:      launch(408e3, circularSpeed(408e3), 90, 3*circularPeriod(408e3)),
	},
	"leo-circular": {
		Description: "circular orbit at 400 km, one period",
		Config:      launch(400e3, circularSpeed(400e3), 90, circularPeriod(400e3)),
	},
	"geo": {
		Description: "geostationary altitude, one sidereal day",
		Config:      launch(35786e3, circularSpeed(35786e3), 90, 86164),
	},
	"molniya-like": {
		Description: "highly eccentric orbit, 500 km perigee, 12 h period",
		Config:      launch(500e3, physics.Earth.VisVivaSpeed(physics.Earth.R+500e3, 26600e3), 90, 43200),
	},
	"suborbital": {
		Description: "45 deg launch at 3 km/s from 100 km",
		Config:      launch(100e3, 3000, 45, 900),
	},
	"radial-fall": {
		Description: "release from rest at 400 km",
		Config:      launch(400e3, 0, 0, 900),
	},
	"escape": {
		Description: "hyperbolic departure at 11.5 km/s",
		Config:      launch(400e3, 11500, 90, 86400),
	},
}

// GetPreset returns a copy of the named scenario, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Config.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

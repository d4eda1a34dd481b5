package config

import "fmt"

// Generation modes.
const (
	ModeCaves   = "caves"
	ModeTerrain = "terrain"
)

// WorldGen holds world generation settings.
type WorldGen struct {
	Seed int64  `yaml:"seed"`
	Mode string `yaml:"mode"`
	// Side is the chunk side length; one of SupportedSides.
	Side int `yaml:"side"`
	// Radius is the half-extent, in chunks, of the generated region.
	Radius int `yaml:"radius"`

	// Cave fill: a cell is solid when |noise(y*s, x*s, z*s)| < Threshold.
	Smoothing float64 `yaml:"smoothing"`
	Threshold float64 `yaml:"threshold"`

	// Terrain fill.
	Scale      float64 `yaml:"scale"`
	BaseHeight int     `yaml:"base_height"`
	Amplitude  float64 `yaml:"amplitude"`

	// Perlin parameters.
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int     `yaml:"octaves"`
}

// SupportedSides are the chunk side lengths the binaries are built for.
var SupportedSides = []int{1, 8, 16, 32}

// DefaultWorldGen returns the default generation settings.
func DefaultWorldGen() WorldGen {
	return WorldGen{
		Seed:       347_510_572,
		Mode:       ModeCaves,
		Side:       16,
		Radius:     1,
		Smoothing:  0.05,
		Threshold:  0.03,
		Scale:      1.0 / 64.0,
		BaseHeight: 8,
		Amplitude:  8,
		Alpha:      2,
		Beta:       2,
		Octaves:    3,
	}
}

// Normalize clamps the numeric settings.
func (w *WorldGen) Normalize() {
	w.Radius = clamp(w.Radius, 0, 8)
	w.Octaves = clamp(w.Octaves, 1, 8)
	if w.Smoothing <= 0 {
		w.Smoothing = 0.05
	}
	if w.Threshold < 0 {
		w.Threshold = 0
	}
	if w.Scale <= 0 {
		w.Scale = 1.0 / 64.0
	}
	if w.Alpha <= 0 {
		w.Alpha = 2
	}
	if w.Beta <= 0 {
		w.Beta = 2
	}
}

// Validate checks the enumerated settings.
func (w *WorldGen) Validate() error {
	switch w.Mode {
	case ModeCaves, ModeTerrain:
	default:
		return fmt.Errorf("config: world.mode %q: want %s or %s", w.Mode, ModeCaves, ModeTerrain)
	}
	for _, s := range SupportedSides {
		if w.Side == s {
			return nil
		}
	}
	return fmt.Errorf("config: world.side %d: want one of %v", w.Side, SupportedSides)
}

package config

import "fmt"

// StageConfig is the root config for stage files. Coordinates are stage
// units with +Y down.
type StageConfig struct {
	ID         string             `json:"id" yaml:"id"`
	Name       string             `json:"name" yaml:"name"`
	Background BackgroundConfig   `json:"background" yaml:"background"`
	Spawns     []PointConfig      `json:"spawns" yaml:"spawns"`
	Platforms  []PlatformConfig   `json:"platforms" yaml:"platforms"`
	Ledges     []LedgeSpawnConfig `json:"ledges" yaml:"ledges"`
}

type BackgroundConfig struct {
	Color string `json:"color" yaml:"color"`
}

// PlatformConfig is a polyline; its winding decides which side is solid.
type PlatformConfig struct {
	Points []PointConfig `json:"points" yaml:"points"`
}

type LedgeSpawnConfig struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Facing int     `json:"facing" yaml:"facing"`
}

// Validate checks the parts a Map would otherwise reject.
func (s *StageConfig) Validate() error {
	if len(s.Spawns) == 0 {
		return fmt.Errorf("%w: stage %q has no spawn point", ErrInvalidConfig, s.ID)
	}
	for i, p := range s.Platforms {
		if len(p.Points) < 2 {
			return fmt.Errorf("%w: stage %q platform %d has %d points", ErrInvalidConfig, s.ID, i, len(p.Points))
		}
		for j := 1; j < len(p.Points); j++ {
			if p.Points[j] == p.Points[j-1] {
				return fmt.Errorf("%w: stage %q platform %d repeats point %d", ErrInvalidConfig, s.ID, i, j)
			}
		}
	}
	for i, l := range s.Ledges {
		if l.Facing != -1 && l.Facing != 1 {
			return fmt.Errorf("%w: stage %q ledge %d facing %d", ErrInvalidConfig, s.ID, i, l.Facing)
		}
	}
	return nil
}

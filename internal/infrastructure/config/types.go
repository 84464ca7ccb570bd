package config

import (
	"errors"
	"fmt"
)

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display DisplayConfig `json:"display" yaml:"display"`
	Ledge   LedgeConfig   `json:"ledge" yaml:"ledge"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int `json:"screenHeight" yaml:"screenHeight"`
	// Scale is pixels per stage unit.
	Scale     float64 `json:"scale" yaml:"scale"`
	Framerate int     `json:"framerate" yaml:"framerate"`
}

// LedgeConfig sizes the ledge catch box and the hang behaviour.
type LedgeConfig struct {
	BoxWidth     float64     `json:"boxWidth" yaml:"boxWidth"`
	BoxHeight    float64     `json:"boxHeight" yaml:"boxHeight"`
	BoxBase      float64     `json:"boxBase" yaml:"boxBase"`
	RegrabFrames int         `json:"regrabFrames" yaml:"regrabFrames"`
	HangOffset   PointConfig `json:"hangOffset" yaml:"hangOffset"`
}

type LoggingConfig struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file" yaml:"file"`
	MaxSizeMB  int    `json:"maxSizeMB" yaml:"maxSizeMB"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays" yaml:"maxAgeDays"`
}

// PointConfig is a 2-D point in stage units.
type PointConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultPhysics returns the values physics.json ships with.
func DefaultPhysics() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			Scale:        100,
			Framerate:    60,
		},
		Ledge: LedgeConfig{
			BoxWidth:     0.1,
			BoxHeight:    0.1,
			BoxBase:      0.2,
			RegrabFrames: 30,
			HangOffset:   PointConfig{X: 0.06, Y: 0.2},
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Validate rejects values the game cannot run with.
func (c *PhysicsConfig) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("%w: display scale %g", ErrInvalidConfig, c.Display.Scale)
	}
	if c.Display.Framerate <= 0 {
		return fmt.Errorf("%w: framerate %d", ErrInvalidConfig, c.Display.Framerate)
	}
	if c.Ledge.BoxWidth <= 0 || c.Ledge.BoxHeight <= 0 {
		return fmt.Errorf("%w: ledge box %gx%g", ErrInvalidConfig, c.Ledge.BoxWidth, c.Ledge.BoxHeight)
	}
	if c.Ledge.RegrabFrames < 0 {
		return fmt.Errorf("%w: ledge regrab frames %d", ErrInvalidConfig, c.Ledge.RegrabFrames)
	}
	return nil
}

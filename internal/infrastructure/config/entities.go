package config

import "fmt"

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Fighters map[string]FighterConfig `json:"fighters" yaml:"fighters"`
}

// FighterConfig holds one character's attributes. Speeds are stage units
// per second, accelerations units per second squared.
type FighterConfig struct {
	Ecb      EcbConfig      `json:"ecb" yaml:"ecb"`
	Movement MovementConfig `json:"movement" yaml:"movement"`
	Jump     JumpConfig     `json:"jump" yaml:"jump"`
	Landing  LandingConfig  `json:"landing" yaml:"landing"`
}

type EcbConfig struct {
	WidthLeft    float64 `json:"widthLeft" yaml:"widthLeft"`
	WidthRight   float64 `json:"widthRight" yaml:"widthRight"`
	HeightTop    float64 `json:"heightTop" yaml:"heightTop"`
	HeightBottom float64 `json:"heightBottom" yaml:"heightBottom"`
}

type MovementConfig struct {
	WalkSpeed        float64 `json:"walkSpeed" yaml:"walkSpeed"`
	Acceleration     float64 `json:"acceleration" yaml:"acceleration"`
	Deceleration     float64 `json:"deceleration" yaml:"deceleration"`
	MaxAirSpeed      float64 `json:"maxAirSpeed" yaml:"maxAirSpeed"`
	AirMobility      float64 `json:"airMobility" yaml:"airMobility"`
	AirFriction      float64 `json:"airFriction" yaml:"airFriction"`
	Gravity          float64 `json:"gravity" yaml:"gravity"`
	TerminalVelocity float64 `json:"terminalVelocity" yaml:"terminalVelocity"`
}

type JumpConfig struct {
	Velocity float64 `json:"velocity" yaml:"velocity"`
	MaxJumps int     `json:"maxJumps" yaml:"maxJumps"`
}

type LandingConfig struct {
	HardLandingSpeed float64 `json:"hardLandingSpeed" yaml:"hardLandingSpeed"`
	LagFrames        int     `json:"lagFrames" yaml:"lagFrames"`
}

// DefaultFighter is the sandbox character.
func DefaultFighter() FighterConfig {
	return FighterConfig{
		Ecb: EcbConfig{WidthLeft: 0.06, WidthRight: 0.06, HeightTop: 0.1, HeightBottom: 0.1},
		Movement: MovementConfig{
			WalkSpeed:        1.2,
			Acceleration:     8,
			Deceleration:     10,
			MaxAirSpeed:      1,
			AirMobility:      4,
			AirFriction:      2,
			Gravity:          6,
			TerminalVelocity: 2.5,
		},
		Jump:    JumpConfig{Velocity: 2.6, MaxJumps: 2},
		Landing: LandingConfig{HardLandingSpeed: 1, LagFrames: 4},
	}
}

// Fighter returns the named fighter.
func (c *EntitiesConfig) Fighter(name string) (FighterConfig, error) {
	f, ok := c.Fighters[name]
	if !ok {
		return FighterConfig{}, fmt.Errorf("%w: unknown fighter %q", ErrInvalidConfig, name)
	}
	return f, nil
}

// Validate checks every fighter.
func (c *EntitiesConfig) Validate() error {
	for name, f := range c.Fighters {
		e := f.Ecb
		if e.WidthLeft < 0 || e.WidthRight < 0 || e.HeightTop < 0 || e.HeightBottom < 0 {
			return fmt.Errorf("%w: fighter %q has a negative ecb extent", ErrInvalidConfig, name)
		}
		if f.Jump.MaxJumps < 0 {
			return fmt.Errorf("%w: fighter %q maxJumps %d", ErrInvalidConfig, name, f.Jump.MaxJumps)
		}
	}
	return nil
}

package entity

import "github.com/younwookim/ecb/internal/domain/geom"

// EntityID is a unique identifier for an entity
type EntityID uint32

// FighterConfig holds the per-character values the collision layer needs.
type FighterConfig struct {
	Ecb Extents

	// HardLandingSpeed is the fall speed above which a landing plays the
	// Landing action instead of going straight to Wait.
	HardLandingSpeed float64
	// LandingLagFrames is how long Landing lasts.
	LandingLagFrames int

	// LedgeRegrabFrames is the cooldown after letting go of a ledge.
	LedgeRegrabFrames int
	// LedgeHangOffset is where the fighter's position sits relative to a
	// grabbed ledge, for a ledge facing +1. X is mirrored for facing -1.
	LedgeHangOffset geom.Vector

	MaxJumps int
}

// DefaultFighterConfig matches the stage units used by the sandbox: one
// unit is a hundred pixels.
func DefaultFighterConfig() FighterConfig {
	return FighterConfig{
		Ecb: Extents{
			WidthLeft:    0.06,
			WidthRight:   0.06,
			HeightTop:    0.1,
			HeightBottom: 0.1,
		},
		HardLandingSpeed:  1,
		LandingLagFrames:  4,
		LedgeRegrabFrames: 30,
		LedgeHangOffset:   geom.Vec(0.06, 0.2),
		MaxJumps:          2,
	}
}

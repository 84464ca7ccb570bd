package system

import (
	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/domain/terrain"
)

// Character is what Map.MovePlayer needs from a moving body.
// *entity.Fighter implements it.
type Character interface {
	Position() geom.Vector
	Facing() int
	IsGrounded() bool
	CanWalkOff() bool
	CanGrabLedge() bool
	CurrentPlatform() *terrain.Platform
	Collision() *entity.PlayerCollision

	Land(p *terrain.Platform)
	FallOffPlatform()
	GrabLedge(l *terrain.Ledge)
	MoveTo(e entity.Ecb)
}

var _ Character = (*entity.Fighter)(nil)

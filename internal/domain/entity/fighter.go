package entity

import (
	"fmt"

	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/domain/terrain"
)

// Facing values.
const (
	FaceLeft  = -1
	FaceRight = 1
)

// Fighter is a character moving against terrain. Its position is the bottom
// vertex of its ECB.
type Fighter struct {
	ID EntityID

	cfg      FighterConfig
	position geom.Vector
	velocity geom.Vector
	face     int

	action      Action
	actionTimer int

	platform *terrain.Platform
	ledge    *terrain.Ledge

	// Previous and Current are swapped at the start of every tick.
	Previous PlayerCollision
	Current  PlayerCollision

	JumpsUsed     int
	ledgeCooldown int
}

// NewFighter creates an airborne fighter at position.
func NewFighter(id EntityID, position geom.Vector, cfg FighterConfig) (*Fighter, error) {
	if err := cfg.Ecb.Validate(); err != nil {
		return nil, fmt.Errorf("fighter %d: %w", id, err)
	}
	f := &Fighter{
		ID:       id,
		cfg:      cfg,
		position: position,
		face:     FaceLeft,
		action:   Fall,
	}
	f.Previous.Reset(position, cfg.Ecb)
	f.Current.Reset(position, cfg.Ecb)
	return f, nil
}

func (f *Fighter) Config() FighterConfig { return f.cfg }

func (f *Fighter) Position() geom.Vector { return f.position }

func (f *Fighter) Velocity() geom.Vector     { return f.velocity }
func (f *Fighter) SetVelocity(v geom.Vector) { f.velocity = v }

// Facing is FaceLeft or FaceRight.
func (f *Fighter) Facing() int { return f.face }

// SetFacing ignores anything but -1 and 1.
func (f *Fighter) SetFacing(face int) {
	if face == FaceLeft || face == FaceRight {
		f.face = face
	}
}

func (f *Fighter) Action() Action { return f.action }

// ActionTimer counts ticks spent in the current action.
func (f *Fighter) ActionTimer() int { return f.actionTimer }

// ChangeAction switches action and restarts the action timer.
func (f *Fighter) ChangeAction(a Action) {
	f.action = a
	f.actionTimer = 0
}

func (f *Fighter) IsGrounded() bool { return f.action.IsGrounded() && f.platform != nil }

// CanWalkOff reports whether sliding past the end of the current platform
// drops the fighter. When false the slide stops at the edge.
func (f *Fighter) CanWalkOff() bool { return f.action.CanWalkOff() }

// CanGrabLedge is false while hanging, grounded or during the regrab cooldown.
func (f *Fighter) CanGrabLedge() bool {
	return f.action.CanGrabLedge() && f.ledge == nil && f.ledgeCooldown == 0
}

func (f *Fighter) CurrentPlatform() *terrain.Platform { return f.platform }

func (f *Fighter) CurrentLedge() *terrain.Ledge { return f.ledge }

// LedgeCooldown is the number of ticks before a ledge can be grabbed again.
func (f *Fighter) LedgeCooldown() int { return f.ledgeCooldown }

// Collision returns the current tick's snapshots.
func (f *Fighter) Collision() *PlayerCollision { return &f.Current }

// BeginTick rotates the collision buffers and advances timers. Call once per
// tick before the fighter moves.
func (f *Fighter) BeginTick() {
	f.Previous, f.Current = f.Current, f.Previous
	f.Current.Reset(f.position, f.cfg.Ecb)

	if f.ledgeCooldown > 0 {
		f.ledgeCooldown--
	}

	f.actionTimer++
	if f.action.State() == ActionLanding && f.actionTimer >= f.cfg.LandingLagFrames {
		f.ChangeAction(Wait)
	}
}

// Land puts the fighter on p. A fast fall plays Landing, otherwise Wait.
func (f *Fighter) Land(p *terrain.Platform) {
	fallSpeed := f.velocity.Y
	f.velocity.Y = 0
	f.platform = p
	f.JumpsUsed = 0

	if fallSpeed > f.cfg.HardLandingSpeed {
		f.ChangeAction(Landing)
	} else {
		f.ChangeAction(Wait)
	}
}

// FallOffPlatform leaves the ground without jumping. Walking off a ledge
// uses up the first jump.
func (f *Fighter) FallOffPlatform() {
	f.platform = nil
	f.ChangeAction(Fall)
	if f.JumpsUsed == 0 {
		f.JumpsUsed = 1
	}
}

// Jump leaves the ground or spends an air jump. It reports whether the
// jump happened.
func (f *Fighter) Jump(speed float64) bool {
	if f.ledge == nil && !f.IsGrounded() && f.JumpsUsed >= f.cfg.MaxJumps {
		return false
	}
	if f.ledge != nil {
		f.releaseLedge()
	}
	f.platform = nil
	f.velocity.Y = -speed
	f.JumpsUsed++
	f.ChangeAction(Jump)
	return true
}

// GrabLedge hangs the fighter from l: motion stops, jumps are restored and
// the position snaps to the hang point.
func (f *Fighter) GrabLedge(l *terrain.Ledge) {
	f.ledge = l
	f.platform = nil
	f.velocity = geom.Vector{}
	f.JumpsUsed = 0
	f.face = -l.Facing
	f.ChangeAction(LedgeHang)

	off := f.cfg.LedgeHangOffset
	f.position = l.Position.Add(geom.Vec(off.X*float64(l.Facing), off.Y))
	f.Current.Reset(f.position, f.cfg.Ecb)
}

// DropLedge lets go and starts the regrab cooldown.
func (f *Fighter) DropLedge() {
	if f.ledge == nil {
		return
	}
	f.releaseLedge()
	f.ChangeAction(Fall)
}

func (f *Fighter) releaseLedge() {
	f.ledge = nil
	f.ledgeCooldown = f.cfg.LedgeRegrabFrames
}

// MoveTo commits a resolved ECB. The position follows its bottom vertex.
func (f *Fighter) MoveTo(e Ecb) {
	f.Current.PlayerModified = e
	f.Current.PostCollision = e
	f.position = e.Bottom()
}

// Teleport places the fighter at position, airborne, with no velocity.
func (f *Fighter) Teleport(position geom.Vector) {
	f.position = position
	f.velocity = geom.Vector{}
	f.platform = nil
	f.ledge = nil
	f.ChangeAction(Fall)
	f.Previous.Reset(position, f.cfg.Ecb)
	f.Current.Reset(position, f.cfg.Ecb)
}

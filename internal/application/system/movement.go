package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/infrastructure/config"
)

// MovementSystem turns input into velocity and moves fighters through a Map
// once per fixed tick.
type MovementSystem struct {
	m   *Map
	dt  float64
	log *zap.Logger
}

// NewMovementSystem creates a movement system stepping dt seconds per tick.
func NewMovementSystem(m *Map, dt float64, log *zap.Logger) *MovementSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &MovementSystem{m: m, dt: dt, log: log}
}

func (s *MovementSystem) Map() *Map { return s.m }

// Update advances f one tick and returns the displacement it asked the Map
// for.
func (s *MovementSystem) Update(f *entity.Fighter, attrs config.FighterConfig, in InputState) geom.Vector {
	f.BeginTick()

	if f.CurrentLedge() != nil {
		switch {
		case in.JumpPressed:
			f.Jump(attrs.Jump.Velocity)
			s.log.Debug("ledge jump", zap.Uint32("fighter", uint32(f.ID)))
		case in.DownPressed:
			f.DropLedge()
			s.log.Debug("ledge drop", zap.Uint32("fighter", uint32(f.ID)))
		default:
			return geom.Vector{}
		}
	} else if in.JumpPressed && f.Jump(attrs.Jump.Velocity) {
		s.log.Debug("jump",
			zap.Uint32("fighter", uint32(f.ID)),
			zap.Int("jumps", f.JumpsUsed))
	}

	dir := in.Direction()
	if dir != 0 {
		f.SetFacing(dir)
	}

	vel := f.Velocity()
	if f.IsGrounded() {
		vel = s.groundVelocity(f, attrs.Movement, vel, dir)
	} else {
		vel = s.airVelocity(f, attrs.Movement, vel, dir)
	}
	f.SetVelocity(vel)

	requested := vel.Scale(s.dt)
	before := f.Position()
	s.m.MovePlayer(f, requested)
	s.afterMove(f, requested, f.Position().Sub(before))

	return requested
}

func (s *MovementSystem) groundVelocity(f *entity.Fighter, mv config.MovementConfig, vel geom.Vector, dir int) geom.Vector {
	if f.Action().State() == entity.ActionLanding {
		dir = 0
	}

	target := float64(dir) * mv.WalkSpeed
	rate := mv.Acceleration
	if dir == 0 {
		rate = mv.Deceleration
	}
	vel.X = approach(vel.X, target, rate*s.dt)
	vel.Y = 0

	switch state := f.Action().State(); {
	case state == entity.ActionWait && vel.X != 0:
		f.ChangeAction(entity.Walk)
	case state == entity.ActionWalk && vel.X == 0:
		f.ChangeAction(entity.Wait)
	}
	return vel
}

func (s *MovementSystem) airVelocity(f *entity.Fighter, mv config.MovementConfig, vel geom.Vector, dir int) geom.Vector {
	if dir != 0 {
		// Air input never speeds a fighter past MaxAirSpeed, but does not
		// slow down one that left the ground faster.
		d := float64(dir)
		if vel.X*d < mv.MaxAirSpeed {
			vel.X = d * math.Min(vel.X*d+mv.AirMobility*s.dt, mv.MaxAirSpeed)
		}
	} else {
		vel.X = approach(vel.X, 0, mv.AirFriction*s.dt)
	}

	vel.Y = math.Min(vel.Y+mv.Gravity*s.dt, mv.TerminalVelocity)

	if f.Action().State() == entity.ActionJump && vel.Y > 0 {
		f.ChangeAction(entity.Fall)
	}
	return vel
}

// afterMove zeroes the velocity components terrain stopped.
func (s *MovementSystem) afterMove(f *entity.Fighter, requested, moved geom.Vector) {
	if f.CurrentLedge() != nil {
		return
	}
	vel := f.Velocity()

	if f.IsGrounded() {
		if moved.Len()+geom.Epsilon < math.Abs(requested.X) {
			vel.X = 0
		}
	} else {
		if math.Abs(moved.X)+geom.Epsilon < math.Abs(requested.X) {
			vel.X = 0
		}
		if requested.Y < 0 && moved.Y > requested.Y+geom.Epsilon {
			vel.Y = 0
		}
	}

	if vel != f.Velocity() {
		s.log.Debug("blocked",
			zap.Uint32("fighter", uint32(f.ID)),
			zap.Stringer("velocity", vel))
		f.SetVelocity(vel)
	}
}

// approach moves v toward target by at most step.
func approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/domain/terrain"
	"github.com/younwookim/ecb/internal/infrastructure/config"
)

const dt = 1.0 / 60

func newMovement(t *testing.T, platforms ...*terrain.Platform) *MovementSystem {
	t.Helper()
	return NewMovementSystem(newMap(t, platforms...), dt, nil)
}

// groundedFighter stands a default fighter on platform 0 at pos.
func groundedFighter(t *testing.T, s *MovementSystem, pos geom.Vector) *entity.Fighter {
	t.Helper()
	f := newFighter(t, pos)
	f.Land(s.Map().Platform(0))
	require.True(t, f.IsGrounded())
	return f
}

func TestMovementSystem_Gravity(t *testing.T) {
	s := newMovement(t)
	f := newFighter(t, v(5, 0))
	attrs := config.DefaultFighter()

	requested := s.Update(f, attrs, InputState{})

	g := attrs.Movement.Gravity
	assert.InDelta(t, g*dt, f.Velocity().Y, tol)
	assertVec(t, v(0, g*dt*dt), requested)
	assertVec(t, v(5, g*dt*dt), f.Position())
	assert.Equal(t, entity.ActionFall, f.Action().State())
}

func TestMovementSystem_TerminalVelocity(t *testing.T) {
	s := newMovement(t)
	f := newFighter(t, v(5, 0))
	f.SetVelocity(v(0, 10))
	attrs := config.DefaultFighter()

	s.Update(f, attrs, InputState{})

	assert.Equal(t, attrs.Movement.TerminalVelocity, f.Velocity().Y)
}

func TestMovementSystem_Walk(t *testing.T) {
	attrs := config.DefaultFighter()

	t.Run("accelerates", func(t *testing.T) {
		s := newMovement(t, terrain.MustPlatform(v(0, 1), v(10, 1)))
		f := groundedFighter(t, s, v(5, 1))

		s.Update(f, attrs, InputState{Right: true})

		vx := attrs.Movement.Acceleration * dt
		assert.InDelta(t, vx, f.Velocity().X, tol)
		assertVec(t, v(5+vx*dt, 1), f.Position())
		assert.Equal(t, entity.ActionWalk, f.Action().State())
		assert.Equal(t, entity.FaceRight, f.Facing())
		assert.True(t, f.IsGrounded())
	})

	t.Run("caps at walk speed", func(t *testing.T) {
		s := newMovement(t, terrain.MustPlatform(v(0, 1), v(10, 1)))
		f := groundedFighter(t, s, v(5, 1))

		for i := 0; i < 30; i++ {
			s.Update(f, attrs, InputState{Left: true})
		}

		assert.Equal(t, -attrs.Movement.WalkSpeed, f.Velocity().X)
		assert.Equal(t, entity.FaceLeft, f.Facing())
		assert.InDelta(t, 1, f.Position().Y, tol)
	})

	t.Run("stops to wait", func(t *testing.T) {
		s := newMovement(t, terrain.MustPlatform(v(0, 1), v(10, 1)))
		f := groundedFighter(t, s, v(5, 1))

		s.Update(f, attrs, InputState{Right: true})
		s.Update(f, attrs, InputState{})

		assert.Equal(t, 0.0, f.Velocity().X)
		assert.Equal(t, entity.ActionWait, f.Action().State())
	})

	t.Run("follows slope", func(t *testing.T) {
		s := newMovement(t, terrain.MustPlatform(v(0, 0), v(10, 10)))
		f := groundedFighter(t, s, v(5, 5))

		for i := 0; i < 10; i++ {
			s.Update(f, attrs, InputState{Right: true})
		}

		pos := f.Position()
		assert.True(t, f.IsGrounded())
		assert.Greater(t, pos.X, 5.0)
		assert.InDelta(t, pos.X, pos.Y, 1e-9)
		assert.NotZero(t, f.Velocity().X, "slope does not count as a wall")
	})
}

func TestMovementSystem_WalkOff(t *testing.T) {
	s := newMovement(t, terrain.MustPlatform(v(0, 1), v(2, 1)))
	f := groundedFighter(t, s, v(1.99, 1))
	f.SetVelocity(v(1.2, 0))

	s.Update(f, config.DefaultFighter(), InputState{Right: true})

	assert.False(t, f.IsGrounded())
	assert.Equal(t, entity.ActionFall, f.Action().State())
	assert.Equal(t, 1, f.JumpsUsed)
	assert.Greater(t, f.Position().X, 2.0)
}

func TestMovementSystem_Jump(t *testing.T) {
	attrs := config.DefaultFighter()
	s := newMovement(t, terrain.MustPlatform(v(0, 1), v(10, 1)))
	f := groundedFighter(t, s, v(5, 1))

	s.Update(f, attrs, InputState{JumpPressed: true})

	assert.False(t, f.IsGrounded())
	assert.Equal(t, entity.ActionJump, f.Action().State())
	assert.Equal(t, 1, f.JumpsUsed)
	assert.InDelta(t, -attrs.Jump.Velocity+attrs.Movement.Gravity*dt, f.Velocity().Y, tol)
	assert.Less(t, f.Position().Y, 1.0)

	s.Update(f, attrs, InputState{JumpPressed: true})
	assert.Equal(t, 2, f.JumpsUsed)

	vy := f.Velocity().Y
	s.Update(f, attrs, InputState{JumpPressed: true})
	assert.Equal(t, 2, f.JumpsUsed, "no third jump")
	assert.InDelta(t, vy+attrs.Movement.Gravity*dt, f.Velocity().Y, tol)
}

func TestMovementSystem_Landing(t *testing.T) {
	attrs := config.DefaultFighter()
	s := newMovement(t, terrain.MustPlatform(v(0, 1), v(10, 1)))
	f := newFighter(t, v(5, 0.99))
	f.SetVelocity(v(0, 2))

	s.Update(f, attrs, InputState{})

	require.True(t, f.IsGrounded())
	assert.Equal(t, entity.ActionLanding, f.Action().State())
	assert.Equal(t, 0.0, f.Velocity().Y)
	assertVec(t, v(5, 1), f.Position())

	// Landing lag ignores walk input.
	s.Update(f, attrs, InputState{Right: true})
	assert.Equal(t, 0.0, f.Velocity().X)

	for i := 0; i < attrs.Landing.LagFrames; i++ {
		s.Update(f, attrs, InputState{})
	}
	assert.Equal(t, entity.ActionWait, f.Action().State())
}

func TestMovementSystem_SoftLanding(t *testing.T) {
	s := newMovement(t, terrain.MustPlatform(v(0, 1), v(10, 1)))
	f := newFighter(t, v(5, 0.995))
	f.SetVelocity(v(0, 0.5))

	s.Update(f, config.DefaultFighter(), InputState{})

	require.True(t, f.IsGrounded())
	assert.Equal(t, entity.ActionWait, f.Action().State())
}

func TestMovementSystem_AirControl(t *testing.T) {
	attrs := config.DefaultFighter()

	t.Run("mobility", func(t *testing.T) {
		s := newMovement(t)
		f := newFighter(t, v(5, 0))

		s.Update(f, attrs, InputState{Right: true})

		assert.InDelta(t, attrs.Movement.AirMobility*dt, f.Velocity().X, tol)
	})

	t.Run("capped", func(t *testing.T) {
		s := newMovement(t)
		f := newFighter(t, v(5, 0))
		f.SetVelocity(v(0.99, 0))

		s.Update(f, attrs, InputState{Right: true})

		assert.Equal(t, attrs.Movement.MaxAirSpeed, f.Velocity().X)
	})

	t.Run("keeps ground speed", func(t *testing.T) {
		s := newMovement(t)
		f := newFighter(t, v(5, 0))
		f.SetVelocity(v(1.2, 0))

		s.Update(f, attrs, InputState{Right: true})

		assert.Equal(t, 1.2, f.Velocity().X)
	})

	t.Run("friction", func(t *testing.T) {
		s := newMovement(t)
		f := newFighter(t, v(5, 0))
		f.SetVelocity(v(-0.5, 0))

		s.Update(f, attrs, InputState{})

		assert.InDelta(t, -0.5+attrs.Movement.AirFriction*dt, f.Velocity().X, tol)
	})
}

func TestMovementSystem_Blocked(t *testing.T) {
	attrs := config.DefaultFighter()

	t.Run("wall", func(t *testing.T) {
		// Drawn upward, so the solid side faces -x.
		s := newMovement(t, terrain.MustPlatform(v(6, 2), v(6, -2)))
		f := newFighter(t, v(5.93, 0.5))
		f.SetVelocity(v(1, 0))

		s.Update(f, attrs, InputState{Right: true})

		assert.Equal(t, 0.0, f.Velocity().X)
		assert.InDelta(t, 6-attrs.Ecb.WidthRight, f.Position().X, tol)
	})

	t.Run("ceiling", func(t *testing.T) {
		// Drawn right to left, so the solid side faces +y.
		s := newMovement(t, terrain.MustPlatform(v(10, 0), v(0, 0)))
		f := newFighter(t, v(5, 0.25))
		f.SetVelocity(v(0, -5))

		s.Update(f, attrs, InputState{})

		assert.Equal(t, 0.0, f.Velocity().Y)
		assert.InDelta(t, attrs.Ecb.HeightTop+attrs.Ecb.HeightBottom, f.Position().Y, tol)
	})
}

func TestMovementSystem_Ledge(t *testing.T) {
	attrs := config.DefaultFighter()
	ledge := &terrain.Ledge{Position: v(1, 1), Facing: 1}

	hanging := func(t *testing.T) (*MovementSystem, *entity.Fighter) {
		s := newMovement(t, terrain.MustPlatform(v(0, 1), v(1, 1)))
		f := newFighter(t, v(1.2, 1.2))
		f.GrabLedge(ledge)
		return s, f
	}

	t.Run("hang", func(t *testing.T) {
		s, f := hanging(t)
		pos := f.Position()

		requested := s.Update(f, attrs, InputState{Left: true})

		assert.True(t, requested.IsZero())
		assert.Equal(t, pos, f.Position())
		assert.Equal(t, entity.ActionLedgeHang, f.Action().State())
	})

	t.Run("drop", func(t *testing.T) {
		s, f := hanging(t)

		s.Update(f, attrs, InputState{DownPressed: true})

		assert.Nil(t, f.CurrentLedge())
		assert.Equal(t, entity.ActionFall, f.Action().State())
		assert.Equal(t, f.Config().LedgeRegrabFrames, f.LedgeCooldown())
		assert.False(t, f.CanGrabLedge())
	})

	t.Run("jump", func(t *testing.T) {
		s, f := hanging(t)

		s.Update(f, attrs, InputState{JumpPressed: true})

		assert.Nil(t, f.CurrentLedge())
		assert.Equal(t, entity.ActionJump, f.Action().State())
		assert.Less(t, f.Velocity().Y, 0.0)
	})
}

func TestApproach(t *testing.T) {
	assert.Equal(t, 1.0, approach(0, 1, 2))
	assert.Equal(t, 0.5, approach(0, 1, 0.5))
	assert.Equal(t, -0.5, approach(0, -1, 0.5))
	assert.Equal(t, 0.0, approach(0.25, 0, 0.5))
	assert.Equal(t, 3.0, approach(3, 3, 1))
}

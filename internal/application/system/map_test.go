package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/domain/terrain"
)

const tol = 1e-9

func v(x, y float64) geom.Vector { return geom.Vec(x, y) }

func assertVec(t *testing.T, want, got geom.Vector, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
}

func newMap(t *testing.T, platforms ...*terrain.Platform) *Map {
	t.Helper()
	m, err := NewMap(platforms, nil)
	require.NoError(t, err)
	return m
}

func newFighter(t *testing.T, pos geom.Vector) *entity.Fighter {
	t.Helper()
	f, err := entity.NewFighter(1, pos, entity.DefaultFighterConfig())
	require.NoError(t, err)
	return f
}

var unitExtents = entity.Extents{WidthLeft: 1, WidthRight: 1, HeightTop: 1, HeightBottom: 1}

// unitBoxFighter places a fighter with a unit diamond ECB.
func unitBoxFighter(t *testing.T, place func(e *entity.Ecb)) *entity.Fighter {
	t.Helper()
	f := newFighter(t, v(10, 0))
	e := entity.Ecb{Extents: unitExtents}
	place(&e)
	f.MoveTo(e)
	return f
}

func post(f *entity.Fighter) entity.Ecb { return f.Collision().PostCollision }

func TestNewMap(t *testing.T) {
	t.Run("assigns platform ids", func(t *testing.T) {
		a := terrain.MustPlatform(v(0, 0), v(1, 0))
		b := terrain.MustPlatform(v(0, 1), v(1, 1))
		m, err := NewMap([]*terrain.Platform{a, b}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Platform(0).ID())
		assert.Equal(t, 1, m.Platform(1).ID())
		assert.Len(t, m.Platforms(), 2)
	})

	t.Run("nil platform", func(t *testing.T) {
		_, err := NewMap([]*terrain.Platform{nil}, nil)
		assert.Error(t, err)
	})

	t.Run("invalid ledge facing", func(t *testing.T) {
		_, err := NewMap(nil, []*terrain.Ledge{{Position: v(0, 0), Facing: 0}})
		assert.ErrorIs(t, err, terrain.ErrInvalidFacing)
	})

	t.Run("ledge box option", func(t *testing.T) {
		box := LedgeBox{Width: 1, Height: 2, Base: 3}
		m, err := NewMap(nil, nil, WithLedgeBox(box), WithLogger(nil))
		require.NoError(t, err)
		assert.Equal(t, box, m.LedgeBox())
	})
}

func TestMap_ClosestCollision(t *testing.T) {
	t.Run("nearest of four walls", func(t *testing.T) {
		m := newMap(t,
			terrain.MustPlatform(v(1, 5), v(1, -5)),
			terrain.MustPlatform(v(2, 5), v(2, -5)),
			terrain.MustPlatform(v(3, 5), v(3, -5)),
			terrain.MustPlatform(v(4, 5), v(4, -5)),
		)

		got, ok := m.ClosestCollision(v(0, 0), v(4, 0), nil)
		require.True(t, ok)
		assert.Equal(t, terrain.WallCollision, got.Type)
		assert.Equal(t, m.Platform(0).Segment(0), got.Segment)
		assertVec(t, v(1, 0), got.Position)
	})

	t.Run("walls facing away", func(t *testing.T) {
		m := newMap(t,
			terrain.MustPlatform(v(1, -5), v(1, 5)),
			terrain.MustPlatform(v(2, -5), v(2, 5)),
			terrain.MustPlatform(v(3, -5), v(3, 5)),
			terrain.MustPlatform(v(4, -5), v(4, 5)),
		)

		_, ok := m.ClosestCollision(v(0, 0), v(10, 0), nil)
		assert.False(t, ok)
	})

	t.Run("ignored platform", func(t *testing.T) {
		m := newMap(t,
			terrain.MustPlatform(v(1, 5), v(1, -5)),
			terrain.MustPlatform(v(2, 5), v(2, -5)),
		)

		got, ok := m.ClosestCollision(v(0, 0), v(4, 0), m.Platform(0))
		require.True(t, ok)
		assert.Same(t, m.Platform(1), got.Segment.Platform())
	})

	t.Run("equal distance prefers the dominant axis", func(t *testing.T) {
		// A wall and a floor from different platforms meet at (10, 10).
		wall := terrain.MustPlatform(v(10, 20), v(10, 10))
		floor := terrain.MustPlatform(v(10, 10), v(20, 10))

		for _, order := range [][]*terrain.Platform{{wall, floor}, {floor, wall}} {
			m := newMap(t, order...)

			got, ok := m.ClosestCollision(v(5, 5), v(15, 15), nil)
			require.True(t, ok)
			assert.Equal(t, terrain.FloorCollision, got.Type, "diagonal motion")

			got, ok = m.ClosestCollision(v(0, 9), v(20, 11), nil)
			require.True(t, ok)
			assert.Equal(t, terrain.WallCollision, got.Type, "horizontal motion")
		}
	})

	t.Run("equal distance and surface falls back to platform id", func(t *testing.T) {
		m := newMap(t,
			terrain.MustPlatform(v(0, 10), v(10, 10)),
			terrain.MustPlatform(v(0, 10), v(10, 10)),
		)
		got, ok := m.ClosestCollision(v(5, 0), v(5, 20), nil)
		require.True(t, ok)
		assert.Equal(t, 0, got.Segment.Platform().ID())
	})
}

func TestMap_ClosestEcbCollision(t *testing.T) {
	m := newMap(t, terrain.MustPlatform(v(15, 20), v(15, -20)))

	start := entity.Ecb{Origin: v(10, 0), Extents: unitExtents}
	end := start.Translate(v(10, 0))

	got, ok := m.ClosestEcbCollision(start, end)
	require.True(t, ok)
	assert.Equal(t, entity.VertexRight, got.Vertex)
	assert.Equal(t, terrain.WallCollision, got.Type)
	assertVec(t, v(14, 0), got.Position, "origin implied by the right vertex on the wall")

	_, ok = m.ClosestEcbCollision(start, start.Translate(v(1, 0)))
	assert.False(t, ok)
}

func TestMap_MovePlayer_Free(t *testing.T) {
	f := newFighter(t, v(10, 10))
	m := newMap(t)

	m.MovePlayer(f, v(5, -2))

	assertVec(t, v(15, 8), f.Position())
	assertVec(t, v(15, 8), post(f).Bottom())
}

func TestMap_MovePlayer_Grounded(t *testing.T) {
	tests := []struct {
		name      string
		platform  []geom.Vector
		start     geom.Vector
		requested geom.Vector
		want      geom.Vector
	}{
		{"flat right", []geom.Vector{v(1, 10), v(20, 10)}, v(10, 10), v(5, 0), v(15, 10)},
		{"flat left", []geom.Vector{v(1, 10), v(20, 10)}, v(10, 10), v(-5, 0), v(5, 10)},
		{"slant down right", []geom.Vector{v(0, -9), v(20, 11)}, v(10, 1), v(5*math.Sqrt2, 0), v(15, 6)},
		{"slant up right", []geom.Vector{v(0, 11), v(20, -9)}, v(10, 1), v(5*math.Sqrt2, 0), v(15, -4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFighter(t, tt.start)
			m := newMap(t, terrain.MustPlatform(tt.platform...))
			f.Land(m.Platform(0))

			m.MovePlayer(f, tt.requested)

			assertVec(t, tt.want, f.Position())
			assert.True(t, f.IsGrounded())
			assert.Same(t, m.Platform(0), f.CurrentPlatform())
		})
	}
}

func TestMap_MovePlayer_GroundedIntoWall(t *testing.T) {
	tests := []struct {
		name      string
		floor     []geom.Vector
		requested geom.Vector
	}{
		{"flat", []geom.Vector{v(0, 10), v(20, 10)}, v(10, 0)},
		{"slant down", []geom.Vector{v(0, 5), v(20, 15)}, v(5*math.Sqrt2, 0)},
		{"slant up", []geom.Vector{v(0, 15), v(20, 5)}, v(5*math.Sqrt2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFighter(t, v(10, 10))
			m := newMap(t,
				terrain.MustPlatform(tt.floor...),
				terrain.MustPlatform(v(15, 20), v(15, -20)),
			)
			f.Land(m.Platform(0))

			m.MovePlayer(f, tt.requested)

			assert.InDelta(t, 15, post(f).Right().X, 1e-6)
			seg := m.Platform(0).Segment(0)
			assert.True(t, geom.OnLine(seg.A(), seg.B(), post(f).Bottom()), "bottom %v stays on the floor", post(f).Bottom())
			assert.True(t, f.IsGrounded())
		})
	}
}

func TestMap_MovePlayer_AirborneIntoWall(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		f := newFighter(t, v(10, 10))
		m := newMap(t, terrain.MustPlatform(v(15, 20), v(15, -20)))
		before := post(f).Origin

		m.MovePlayer(f, v(10, 0))

		assert.InDelta(t, 15, post(f).Right().X, 1e-6)
		assert.InDelta(t, before.Y, post(f).Origin.Y, 1e-6)
	})

	t.Run("slanted contact stops dead", func(t *testing.T) {
		f := newFighter(t, v(10, 10))
		m := newMap(t, terrain.MustPlatform(v(11, 22), v(11, -22)))
		right := post(f).Right()
		frac := (11 - right.X) / 10

		m.MovePlayer(f, v(10, -5))

		assert.InDelta(t, 11, post(f).Right().X, 1e-6)
		assert.InDelta(t, 10-5*frac, f.Position().Y, 1e-6)
	})
}

func TestMap_MovePlayer_Landing(t *testing.T) {
	f := newFighter(t, v(5, 5))
	f.SetVelocity(v(0, 3))
	m := newMap(t, terrain.MustPlatform(v(0, 10), v(20, 10)))

	m.MovePlayer(f, v(0, 10))

	assertVec(t, v(5, 10), f.Position())
	assert.True(t, f.IsGrounded())
	assert.Same(t, m.Platform(0), f.CurrentPlatform())
	assert.Equal(t, entity.ActionLanding, f.Action().State())
}

func TestMap_MovePlayer_PassesThroughFloorFromBelow(t *testing.T) {
	f := newFighter(t, v(5, 15))
	m := newMap(t, terrain.MustPlatform(v(0, 10), v(20, 10)))

	m.MovePlayer(f, v(0, -10))

	assertVec(t, v(5, 5), f.Position())
	assert.False(t, f.IsGrounded())
}

func TestMap_MovePlayer_Ceiling(t *testing.T) {
	f := newFighter(t, v(5, 1))
	m := newMap(t, terrain.MustPlatform(v(20, 0), v(0, 0)))

	m.MovePlayer(f, v(0, -2))

	assertVec(t, v(5, 0), post(f).Top())
	assertVec(t, v(5, 0.2), f.Position())
}

func TestMap_MovePlayer_FallOffPlatform(t *testing.T) {
	f := newFighter(t, v(8, 10))
	m := newMap(t, terrain.MustPlatform(v(0, 10), v(10, 10)))
	f.Land(m.Platform(0))

	m.MovePlayer(f, v(5, 0))

	assertVec(t, v(13, 10), f.Position())
	assert.False(t, f.IsGrounded())
	assert.Nil(t, f.CurrentPlatform())
	assert.Equal(t, entity.ActionFall, f.Action().State())
}

func TestMap_MovePlayer_FallOffIntoRiser(t *testing.T) {
	f := newFighter(t, v(9, 10))
	m := newMap(t, terrain.MustPlatform(v(0, 10), v(10, 10), v(10, 9), v(20, 9)))
	f.Land(m.Platform(0))

	m.MovePlayer(f, v(2, 0))

	assert.False(t, f.IsGrounded(), "the slide ends at the riser")
	assertVec(t, v(10, 9.9), post(f).Right(), "the riser stops the box")
	assertVec(t, v(9.94, 10), f.Position())

	f.BeginTick()
	m.MovePlayer(f, v(0, 0.1))

	require.True(t, f.IsGrounded(), "lands back on the floor it left")
	assert.Same(t, m.Platform(0), f.CurrentPlatform())
	assertVec(t, v(9.94, 10), f.Position())
}

func TestMap_MovePlayer_LandingHeldAtEdge(t *testing.T) {
	f := newFighter(t, v(9, 10))
	f.SetVelocity(v(0, 3))
	m := newMap(t, terrain.MustPlatform(v(0, 10), v(10, 10)))
	f.Land(m.Platform(0))
	require.Equal(t, entity.ActionLanding, f.Action().State())

	m.MovePlayer(f, v(2, 0))

	assertVec(t, v(10, 10), f.Position())
	assert.True(t, f.IsGrounded())
	assert.Same(t, m.Platform(0), f.CurrentPlatform())
	assert.Equal(t, entity.ActionLanding, f.Action().State())
}

func TestMap_MovePlayer_Corners(t *testing.T) {
	tests := []struct {
		name      string
		platform  []geom.Vector
		place     func(e *entity.Ecb)
		requested geom.Vector
		wantRight geom.Vector
		wantTop   *geom.Vector
	}{
		{
			name:      "flat into top-right corner",
			platform:  []geom.Vector{v(10, -0.1), v(11, -0.1)},
			place:     func(e *entity.Ecb) { e.SetRight(v(9, 0)) },
			requested: v(10, 0),
			wantRight: v(10.1, 0),
			wantTop:   vp(9.1, -1),
		},
		{
			name:      "diagonal down, slide to the corner exactly",
			platform:  []geom.Vector{v(9.9, -0.1), v(11, -0.1)},
			place:     func(e *entity.Ecb) { e.SetRight(v(10, 0)) },
			requested: v(10, 0.9),
			wantRight: v(10.9, 0.9),
			wantTop:   vp(9.9, -0.1),
		},
		{
			name:      "diagonal down, slide past the corner",
			platform:  []geom.Vector{v(9.9, -0.1), v(11, -0.1)},
			place:     func(e *entity.Ecb) { e.SetRight(v(10, 0)) },
			requested: v(10, 1.8),
			wantRight: v(15.9, 1.8),
			wantTop:   vp(14.9, 0.8),
		},
		{
			name:      "diagonal down, parallel to the edge",
			platform:  []geom.Vector{v(9.9, -0.1), v(11, -0.1)},
			place:     func(e *entity.Ecb) { e.SetRight(v(10, 0)) },
			requested: v(0.1, 0.1),
			wantRight: v(10.1, 0.1),
			wantTop:   vp(9.1, -0.9),
		},
		{
			name:      "diagonal up, slide to the corner exactly",
			platform:  []geom.Vector{v(9.9, 0.1), v(11, 0.1)},
			place:     func(e *entity.Ecb) { e.SetRight(v(10, 0)) },
			requested: v(10, -0.9),
			wantRight: v(10.9, -0.9),
			wantTop:   vp(9.9, -1.9),
		},
		{
			name:      "diagonal up, slide past the corner",
			platform:  []geom.Vector{v(9.9, 0.1), v(11, 0.1)},
			place:     func(e *entity.Ecb) { e.SetRight(v(10, 0)) },
			requested: v(10, -1.8),
			wantRight: v(15.9, -1.8),
			wantTop:   vp(14.9, -2.8),
		},
		{
			name:      "diagonal up, parallel to the edge",
			platform:  []geom.Vector{v(9.9, 0.1), v(11, 0.1)},
			place:     func(e *entity.Ecb) { e.SetRight(v(10, 0)) },
			requested: v(0.1, -0.1),
			wantRight: v(10.1, -0.1),
			wantTop:   vp(9.1, -1.1),
		},
		{
			name:      "undershoot leaves the corner untouched",
			platform:  []geom.Vector{v(10.5, -0.8), v(12, -0.8)},
			place:     func(e *entity.Ecb) { e.SetRight(v(10, 0)) },
			requested: v(0.2, 0),
			wantRight: v(10.2, 0),
			wantTop:   vp(9.2, -1),
		},
		{
			name:      "straight down past a bottom-right corner",
			platform:  []geom.Vector{v(0.1, 5), v(0.1, 10)},
			place:     func(e *entity.Ecb) { e.SetOrigin(v(0, 0)) },
			requested: v(0, 10),
			wantRight: v(0.1, 10),
		},
		{
			name:      "straight up past a top-right corner",
			platform:  []geom.Vector{v(0.1, -5), v(0.1, -10)},
			place:     func(e *entity.Ecb) { e.SetOrigin(v(0, 0)) },
			requested: v(0, -10),
			wantRight: v(0.1, -10),
		},
		{
			name:      "straight down, corner is the second point",
			platform:  []geom.Vector{v(0.1, 10), v(0.1, 5)},
			place:     func(e *entity.Ecb) { e.SetOrigin(v(0, 0)) },
			requested: v(0, 10),
			wantRight: v(0.1, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMap(t, terrain.MustPlatform(tt.platform...))
			f := unitBoxFighter(t, tt.place)

			m.MovePlayer(f, tt.requested)

			assertVec(t, tt.wantRight, post(f).Right(), "right")
			if tt.wantTop != nil {
				assertVec(t, *tt.wantTop, post(f).Top(), "top")
			}
			assertVec(t, post(f).Bottom(), f.Position(), "position follows the bottom vertex")
		})
	}
}

func vp(x, y float64) *geom.Vector {
	p := v(x, y)
	return &p
}

func TestMap_MovePlayer_LedgeGrab(t *testing.T) {
	ledgeAt := func(t *testing.T, facing int) (*Map, *terrain.Ledge) {
		t.Helper()
		l, err := terrain.NewLedge(v(5, 5), facing)
		require.NoError(t, err)
		m, err := NewMap([]*terrain.Platform{terrain.MustPlatform(v(5, 5), v(10, 5))}, []*terrain.Ledge{l})
		require.NoError(t, err)
		return m, l
	}

	t.Run("grabs a ledge ahead and above", func(t *testing.T) {
		m, l := ledgeAt(t, -1)
		f := newFighter(t, v(4.95, 5.25))
		f.SetFacing(entity.FaceRight)

		m.MovePlayer(f, v(0.5, 0.5))

		assert.Same(t, l, f.CurrentLedge())
		assert.Equal(t, entity.ActionLedgeHang, f.Action().State())
		off := f.Config().LedgeHangOffset
		assertVec(t, v(5-off.X, 5+off.Y), f.Position(), "requested motion is dropped")
	})

	t.Run("facing away", func(t *testing.T) {
		m, _ := ledgeAt(t, -1)
		f := newFighter(t, v(4.95, 5.25))
		f.SetFacing(entity.FaceLeft)

		m.MovePlayer(f, v(0, 0))

		assert.Nil(t, f.CurrentLedge())
	})

	t.Run("ledge facing the same way", func(t *testing.T) {
		m, _ := ledgeAt(t, 1)
		f := newFighter(t, v(4.95, 5.25))
		f.SetFacing(entity.FaceRight)

		m.MovePlayer(f, v(0, 0))

		assert.Nil(t, f.CurrentLedge())
	})

	t.Run("too far below", func(t *testing.T) {
		m, _ := ledgeAt(t, -1)
		f := newFighter(t, v(4.95, 5.5))
		f.SetFacing(entity.FaceRight)

		m.MovePlayer(f, v(0, 0))

		assert.Nil(t, f.CurrentLedge())
	})

	t.Run("cooldown blocks a regrab", func(t *testing.T) {
		m, l := ledgeAt(t, -1)
		f := newFighter(t, v(4.95, 5.25))
		f.SetFacing(entity.FaceRight)
		f.GrabLedge(l)
		f.DropLedge()
		f.Teleport(v(4.95, 5.25))
		f.SetFacing(entity.FaceRight)

		m.MovePlayer(f, v(0, 0))

		assert.Nil(t, f.CurrentLedge())
	})

	t.Run("first ledge in order wins", func(t *testing.T) {
		a, err := terrain.NewLedge(v(5, 5), -1)
		require.NoError(t, err)
		b, err := terrain.NewLedge(v(5.01, 5.01), -1)
		require.NoError(t, err)
		m, err := NewMap(nil, []*terrain.Ledge{a, b})
		require.NoError(t, err)

		f := newFighter(t, v(4.95, 5.25))
		f.SetFacing(entity.FaceRight)
		m.MovePlayer(f, v(0, 0))

		assert.Same(t, a, f.CurrentLedge())
	})
}

func TestMap_MovePlayer_Deterministic(t *testing.T) {
	run := func() geom.Vector {
		m := newMap(t,
			terrain.MustPlatform(v(0, 10), v(10, 10), v(20, 5)),
			terrain.MustPlatform(v(18, 20), v(18, -20)),
		)
		f := newFighter(t, v(2, 3))
		for i := 0; i < 60; i++ {
			f.BeginTick()
			m.MovePlayer(f, v(0.3, 0.4))
		}
		return f.Position()
	}

	assert.Equal(t, run(), run())
}

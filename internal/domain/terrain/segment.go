package terrain

import (
	"fmt"
	"math"

	"github.com/younwookim/ecb/internal/domain/geom"
)

// Surface is the role a segment can play, decided from its slope and
// winding.
type Surface int

const (
	SurfaceFloor Surface = iota
	SurfaceCeiling
	SurfaceWall
)

func (s Surface) String() string {
	switch s {
	case SurfaceFloor:
		return "floor"
	case SurfaceCeiling:
		return "ceiling"
	case SurfaceWall:
		return "wall"
	default:
		return fmt.Sprintf("Surface(%d)", int(s))
	}
}

// CollisionType is the collision a path crossing this surface produces.
func (s Surface) CollisionType() CollisionType {
	switch s {
	case SurfaceFloor:
		return FloorCollision
	case SurfaceCeiling:
		return CeilingCollision
	default:
		return WallCollision
	}
}

// Segment names one edge of a platform. The zero value refers to nothing.
// Two segments are equal when they name the same platform and index.
type Segment struct {
	platform *Platform
	index    int
}

// Platform returns the owning platform, nil for the zero value.
func (s Segment) Platform() *Platform { return s.platform }

// Index is the segment's position in its platform.
func (s Segment) Index() int { return s.index }

// IsZero reports whether the segment refers to nothing.
func (s Segment) IsZero() bool { return s.platform == nil }

// A is the segment's first point.
func (s Segment) A() geom.Vector { return s.platform.points[s.index] }

// B is the segment's second point.
func (s Segment) B() geom.Vector { return s.platform.points[s.index+1] }

// Surface classifies the segment: at most 45 degrees from horizontal it is a
// floor when drawn left to right and a ceiling when drawn right to left;
// anything steeper is a wall.
func (s Segment) Surface() Surface {
	d := s.B().Sub(s.A())
	if math.Abs(d.Y) <= math.Abs(d.X) {
		if d.X > 0 {
			return SurfaceFloor
		}
		return SurfaceCeiling
	}
	return SurfaceWall
}

// Distance from p to the closest point of the segment.
func (s Segment) Distance(p geom.Vector) float64 {
	a, b := s.A(), s.B()
	ab := b.Sub(a)
	l2 := ab.LenSquared()
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := math.Min(math.Max(p.Sub(a).Dot(ab)/l2, 0), 1)
	return p.Sub(a.Add(ab.Scale(t))).Len()
}

func (s Segment) String() string {
	if s.IsZero() {
		return "Segment{}"
	}
	return fmt.Sprintf("Segment{platform=%d index=%d %v->%v}", s.platform.id, s.index, s.A(), s.B())
}

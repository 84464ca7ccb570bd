package terrain

import (
	"fmt"
	"math"

	"github.com/younwookim/ecb/internal/domain/geom"
)

// CollisionType is the kind of surface a path ran into.
type CollisionType int

const (
	NoCollision CollisionType = iota
	FloorCollision
	WallCollision
	CeilingCollision
)

func (t CollisionType) String() string {
	switch t {
	case NoCollision:
		return "none"
	case FloorCollision:
		return "floor"
	case WallCollision:
		return "wall"
	case CeilingCollision:
		return "ceiling"
	default:
		return fmt.Sprintf("CollisionType(%d)", int(t))
	}
}

// CollisionDatum is one contact between a path and a segment.
type CollisionDatum struct {
	Type     CollisionType
	Segment  Segment
	Position geom.Vector
}

func (d CollisionDatum) String() string {
	return fmt.Sprintf("%s at %v on %v", d.Type, d.Position, d.Segment)
}

// CornerContact is an ECB edge touching a platform vertex.
type CornerContact struct {
	Platform *Platform
	Vertex   int
	Point    geom.Vector
	Sweep    geom.SweepResult
}

// Closer orders two contacts for a path leaving start with the given
// motion. The nearer contact wins. At equal distance the surface matching
// the dominant axis of motion wins (floors and ceilings for vertical or
// exactly diagonal motion, walls for horizontal), then the lower platform
// ID, then the lower segment index.
func Closer(a, b CollisionDatum, start, motion geom.Vector) bool {
	da := a.Position.Sub(start).Len()
	db := b.Position.Sub(start).Len()
	if math.Abs(da-db) > geom.Epsilon {
		return da < db
	}

	if pa, pb := preferred(a.Type, motion), preferred(b.Type, motion); pa != pb {
		return pa
	}

	if ia, ib := platformID(a.Segment), platformID(b.Segment); ia != ib {
		return ia < ib
	}
	return a.Segment.Index() < b.Segment.Index()
}

func preferred(t CollisionType, motion geom.Vector) bool {
	vertical := math.Abs(motion.Y) >= math.Abs(motion.X)
	if vertical {
		return t == FloorCollision || t == CeilingCollision
	}
	return t == WallCollision
}

func platformID(s Segment) int {
	if s.IsZero() {
		return -1
	}
	return s.Platform().ID()
}

// Package terrain holds the static stage geometry: polyline platforms, their
// segments, ledges, and the collision records produced against them.
package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/ecb/internal/domain/geom"
)

var (
	// ErrTooFewPoints is returned for a platform with fewer than two points.
	ErrTooFewPoints = errors.New("platform needs at least two points")
	// ErrInvalidPoint is returned for a NaN or infinite coordinate.
	ErrInvalidPoint = errors.New("platform point is not finite")
	// ErrDegenerateSegment is returned when two consecutive points coincide.
	ErrDegenerateSegment = errors.New("platform segment has zero length")
)

// Platform is an open polyline. Segment i joins points i and i+1.
//
// Every segment is one-sided: it only stops motion that crosses it from its
// front. For a floor walked left to right the front is up; a wall listed
// bottom to top faces left.
type Platform struct {
	id     int
	points []geom.Vector
}

// NewPlatform validates and copies the points.
func NewPlatform(points ...geom.Vector) (*Platform, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	for i, pt := range points {
		if !pt.IsFinite() {
			return nil, fmt.Errorf("point %d %v: %w", i, pt, ErrInvalidPoint)
		}
		if i > 0 && pt.Sub(points[i-1]).LenSquared() <= geom.Epsilon*geom.Epsilon {
			return nil, fmt.Errorf("segment %d at %v: %w", i-1, pt, ErrDegenerateSegment)
		}
	}
	cp := make([]geom.Vector, len(points))
	copy(cp, points)
	return &Platform{points: cp}, nil
}

// MustPlatform is NewPlatform that panics on error. Intended for tests and
// literal stage data.
func MustPlatform(points ...geom.Vector) *Platform {
	p, err := NewPlatform(points...)
	if err != nil {
		panic(err)
	}
	return p
}

// ID is the platform's index in the map that owns it.
func (p *Platform) ID() int { return p.id }

// SetID is called by the owning map.
func (p *Platform) SetID(id int) { p.id = id }

// Points returns a copy of the polyline.
func (p *Platform) Points() []geom.Vector {
	cp := make([]geom.Vector, len(p.points))
	copy(cp, p.points)
	return cp
}

// Point returns vertex i.
func (p *Platform) Point(i int) geom.Vector { return p.points[i] }

// SegmentCount is len(points)-1.
func (p *Platform) SegmentCount() int { return len(p.points) - 1 }

// Segment returns segment i. It panics when i is out of range.
func (p *Platform) Segment(i int) Segment {
	if i < 0 || i >= p.SegmentCount() {
		panic(fmt.Sprintf("terrain: segment %d out of range [0,%d)", i, p.SegmentCount()))
	}
	return Segment{platform: p, index: i}
}

// CheckCollision finds the closest segment that the path start->end crosses
// from its front side.
func (p *Platform) CheckCollision(start, end geom.Vector) (CollisionDatum, bool) {
	var best CollisionDatum
	found := false
	motion := end.Sub(start)

	for i := 0; i < p.SegmentCount(); i++ {
		seg := p.Segment(i)
		hit, ok := geom.SegmentIntersection(seg.A(), seg.B(), start, end)
		if !ok || hit.Side <= 0 {
			continue
		}
		d := CollisionDatum{
			Type:     seg.Surface().CollisionType(),
			Segment:  seg,
			Position: hit.Point,
		}
		if !found || Closer(d, best, start, motion) {
			best = d
			found = true
		}
	}
	return best, found
}

// CheckCornerCollision sweeps the edge a1-a2 to b1-b2 against every vertex
// of the platform. Only contacts strictly inside the edge and approaching
// from the edge's outer side (sweep direction < 0) count; the earliest wins.
func (p *Platform) CheckCornerCollision(a1, a2, b1, b2 geom.Vector) (CornerContact, bool) {
	var best CornerContact
	found := false
	if a2.Sub(a1).LenSquared() <= geom.Epsilon*geom.Epsilon {
		return best, false
	}

	for i, pt := range p.points {
		r, ok := geom.Sweep(a1, a2, b1, b2, pt)
		if !ok || r.Dir >= 0 {
			continue
		}
		if r.S <= cornerMargin || r.S >= 1-cornerMargin {
			continue
		}
		if !found || r.T < best.Sweep.T-geom.Epsilon {
			best = CornerContact{Platform: p, Vertex: i, Point: pt, Sweep: r}
			found = true
		}
	}
	return best, found
}

// cornerMargin keeps a vertex that sits on an ECB vertex out of the corner
// pass; the vertex sweeps already handle it.
const cornerMargin = 1e-7

// GroundedMovement slides pos along the platform by the signed arc length
// requested.X, crossing into neighbouring segments while they can be stood
// on. It returns the new position and the displacement the ground did not
// absorb: the remaining arc length as X, and requested.Y when it lifts off.
func (p *Platform) GroundedMovement(pos, requested geom.Vector) (geom.Vector, geom.Vector) {
	var leftover geom.Vector
	if requested.Y < 0 {
		leftover.Y = requested.Y
	}

	dir := geom.Sign(requested.X)
	remaining := math.Abs(requested.X)
	if dir == 0 || remaining == 0 {
		return pos, leftover
	}

	i := p.segmentAt(pos)
	for remaining > 0 {
		seg := p.Segment(i)
		if seg.Surface() != SurfaceFloor {
			break
		}

		target, next := seg.B(), i+1
		if geom.Sign(seg.B().X-seg.A().X) != dir {
			target, next = seg.A(), i-1
		}

		gap := target.Sub(pos)
		l := gap.Len()
		if remaining <= l {
			pos = pos.Add(gap.Scale(remaining / l))
			remaining = 0
			break
		}

		pos = target
		remaining -= l
		if next < 0 || next >= p.SegmentCount() {
			break
		}
		i = next
	}

	leftover.X = float64(dir) * remaining
	return pos, leftover
}

// SurfaceAt returns the height of the platform's floor at x, if any floor
// segment spans it.
func (p *Platform) SurfaceAt(x float64) (float64, bool) {
	for i := 0; i < p.SegmentCount(); i++ {
		seg := p.Segment(i)
		if seg.Surface() != SurfaceFloor {
			continue
		}
		a, b := seg.A(), seg.B()
		if x < a.X-geom.Epsilon || x > b.X+geom.Epsilon {
			continue
		}
		if b.X == a.X {
			return a.Y, true
		}
		return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X), true
	}
	return 0, false
}

// segmentAt returns the segment nearest to pos.
func (p *Platform) segmentAt(pos geom.Vector) int {
	best, bestDist := 0, math.Inf(1)
	for i := 0; i < p.SegmentCount(); i++ {
		seg := p.Segment(i)
		if d := seg.Distance(pos); d < bestDist-geom.Epsilon {
			best, bestDist = i, d
		}
	}
	return best
}

func (p *Platform) String() string {
	return fmt.Sprintf("Platform#%d%v", p.id, p.points)
}

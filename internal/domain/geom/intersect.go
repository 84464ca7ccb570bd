package geom

import (
	"math"
	"sort"
)

// Intersection describes where two finite segments cross.
type Intersection struct {
	Point Vector
	// T is the parameter along the first segment, U along the second.
	T, U float64
	// Side is the orientation sign reported by LineIntersection.
	Side int
}

// LineIntersection intersects the infinite lines through a1-a2 and b1-b2.
//
// side is sign(cross(a2-a1, b2-b1)): swapping the endpoints of either segment
// flips it while the point stays the same. Parallel, collinear or degenerate
// input reports side 0 and a zero point.
func LineIntersection(a1, a2, b1, b2 Vector) (Vector, int) {
	t, _, side := lineParams(a1, a2, b1, b2)
	if side == 0 {
		return Vector{}, 0
	}
	return a1.Add(a2.Sub(a1).Scale(t)), side
}

// SegmentIntersection is LineIntersection restricted to the finite segments.
func SegmentIntersection(a1, a2, b1, b2 Vector) (Intersection, bool) {
	t, u, side := lineParams(a1, a2, b1, b2)
	if side == 0 {
		return Intersection{}, false
	}
	if t < -Epsilon || t > 1+Epsilon || u < -Epsilon || u > 1+Epsilon {
		return Intersection{}, false
	}
	return Intersection{
		Point: a1.Add(a2.Sub(a1).Scale(t)),
		T:     t,
		U:     u,
		Side:  side,
	}, true
}

func lineParams(a1, a2, b1, b2 Vector) (t, u float64, side int) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := da.Cross(db)
	if math.Abs(denom) <= Epsilon*da.Len()*db.Len() || denom == 0 {
		return 0, 0, 0
	}
	ab := b1.Sub(a1)
	return ab.Cross(db) / denom, ab.Cross(da) / denom, Sign(denom)
}

// OnLine reports whether p lies on the finite segment a-b.
func OnLine(a, b, p Vector) bool {
	ab := b.Sub(a)
	ap := p.Sub(a)
	l := ab.Len()
	if l <= Epsilon {
		return ap.Len() <= Epsilon
	}
	if math.Abs(ab.Cross(ap))/l > 1e-7 {
		return false
	}
	s := ap.Dot(ab) / (l * l)
	return s >= -Epsilon && s <= 1+Epsilon
}

// SweepResult is the first contact between a moving segment and a point.
type SweepResult struct {
	// T is the fraction of the sweep at contact, in [0, 1].
	T float64
	// S is where the point sits along the moving segment, 0 at its first
	// endpoint and 1 at its second.
	S float64
	// First and Second are the moving segment's endpoints at contact.
	First, Second Vector
	// Dir is sign(cross(segment, contact velocity)); never 0 for a contact.
	Dir int
}

// Sweep moves the segment a1-a2 to b1-b2 (a1 travels to b1, a2 to b2) and
// finds the earliest moment at which p lies on it.
//
// The moving segment is interpolated on both rails with the same parameter,
// so a contact solves cross(second(t)-first(t), p-first(t)) = 0, a quadratic
// in t. Contacts whose velocity runs along the segment are not reported.
func Sweep(a1, a2, b1, b2, p Vector) (SweepResult, bool) {
	d0 := a2.Sub(a1)
	v := b1.Sub(a1)
	w := b2.Sub(a2)
	dd := w.Sub(v)
	e0 := p.Sub(a1)

	qa := -dd.Cross(v)
	qb := dd.Cross(e0) - d0.Cross(v)
	qc := d0.Cross(e0)

	for _, t := range quadraticRoots(qa, qb, qc) {
		if t < -Epsilon || t > 1+Epsilon {
			continue
		}
		t = math.Min(math.Max(t, 0), 1)

		first := a1.Add(v.Scale(t))
		second := a2.Add(w.Scale(t))
		seg := second.Sub(first)

		var s float64
		if l2 := seg.LenSquared(); l2 <= Epsilon*Epsilon {
			if !p.Near(first, 1e-7) {
				continue
			}
			seg = d0
		} else {
			s = p.Sub(first).Dot(seg) / l2
			if s < -Epsilon || s > 1+Epsilon {
				continue
			}
			s = math.Min(math.Max(s, 0), 1)
		}

		vel := v.Add(dd.Scale(s))
		c := seg.Cross(vel)
		if math.Abs(c) <= Epsilon*seg.Len()*vel.Len() {
			continue
		}

		return SweepResult{T: t, S: s, First: first, Second: second, Dir: Sign(c)}, true
	}
	return SweepResult{}, false
}

// LineSweep is Sweep reduced to the contact endpoints and direction.
// dir is 0 when there is no contact.
func LineSweep(a1, a2, b1, b2, p Vector) (first, second Vector, dir int) {
	r, ok := Sweep(a1, a2, b1, b2, p)
	if !ok {
		return Vector{}, Vector{}, 0
	}
	return r.First, r.Second, r.Dir
}

// quadraticRoots returns the real roots of a*t^2 + b*t + c in ascending
// order. An identically zero polynomial has no isolated roots.
func quadraticRoots(a, b, c float64) []float64 {
	m := math.Max(math.Abs(a), math.Max(math.Abs(b), math.Abs(c)))
	if m == 0 {
		return nil
	}
	a, b, c = a/m, b/m, c/m

	if math.Abs(a) <= Epsilon {
		if math.Abs(b) <= Epsilon {
			return nil
		}
		return []float64{-c / b}
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		if disc < -Epsilon {
			return nil
		}
		disc = 0
	}
	r := math.Sqrt(disc)

	q := -0.5 * (b + r)
	if b < 0 {
		q = -0.5 * (b - r)
	}
	if q == 0 {
		return []float64{0}
	}

	roots := []float64{q / a, c / q}
	sort.Float64s(roots)
	return roots
}

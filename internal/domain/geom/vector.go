// Package geom provides the 2-D vector type and the swept-segment primitives
// used by terrain collision.
//
// Coordinates are in screen space: +X is right, +Y is down.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by every comparison in the collision core.
const Epsilon = 1e-9

// Vector is an immutable 2-D pair.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }

// Scale returns v * f.
func (v Vector) Scale(f float64) Vector { return Vector{v.X * f, v.Y * f} }

// Dot returns the dot product.
func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3-D cross product.
// In screen space a positive value means o turns clockwise from v.
func (v Vector) Cross(o Vector) float64 { return v.X*o.Y - v.Y*o.X }

// Len returns the Euclidean length.
func (v Vector) Len() float64 { return math.Hypot(v.X, v.Y) }

// LenSquared returns the squared Euclidean length.
func (v Vector) LenSquared() float64 { return v.X*v.X + v.Y*v.Y }

// IsZero reports whether both components are exactly zero.
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Near reports whether v and o differ by at most tol on each axis.
func (v Vector) Near(o Vector, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Sign returns -1, 0 or 1.
func Sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

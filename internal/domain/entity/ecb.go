package entity

import (
	"errors"
	"fmt"

	"github.com/younwookim/ecb/internal/domain/geom"
)

// ErrNegativeExtent is returned for an ECB with a negative width or height.
var ErrNegativeExtent = errors.New("ecb extent must not be negative")

// Extents are the distances from an ECB's origin to its four vertices.
type Extents struct {
	WidthLeft    float64
	WidthRight   float64
	HeightTop    float64
	HeightBottom float64
}

// Validate rejects negative extents.
func (e Extents) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"widthLeft", e.WidthLeft},
		{"widthRight", e.WidthRight},
		{"heightTop", e.HeightTop},
		{"heightBottom", e.HeightBottom},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("%s %g: %w", f.name, f.v, ErrNegativeExtent)
		}
	}
	return nil
}

// Ecb is the environmental collision box: a diamond around Origin whose four
// vertices sit WidthLeft left, WidthRight right, HeightTop above and
// HeightBottom below it. Screen space, so "above" is -Y.
type Ecb struct {
	Origin geom.Vector
	Extents
}

// NewEcb validates the extents.
func NewEcb(origin geom.Vector, ext Extents) (Ecb, error) {
	if err := ext.Validate(); err != nil {
		return Ecb{}, err
	}
	return Ecb{Origin: origin, Extents: ext}, nil
}

// EcbAt places an ECB so that its bottom vertex is at bottom.
func EcbAt(bottom geom.Vector, ext Extents) Ecb {
	return Ecb{Origin: bottom.Add(geom.Vec(0, -ext.HeightBottom)), Extents: ext}
}

func (e Ecb) Left() geom.Vector   { return e.Origin.Add(geom.Vec(-e.WidthLeft, 0)) }
func (e Ecb) Right() geom.Vector  { return e.Origin.Add(geom.Vec(e.WidthRight, 0)) }
func (e Ecb) Top() geom.Vector    { return e.Origin.Add(geom.Vec(0, -e.HeightTop)) }
func (e Ecb) Bottom() geom.Vector { return e.Origin.Add(geom.Vec(0, e.HeightBottom)) }

// SetOrigin moves the whole box.
func (e *Ecb) SetOrigin(p geom.Vector) { e.Origin = p }

// SetLeft moves the whole box so its left vertex lands on p.
func (e *Ecb) SetLeft(p geom.Vector) { e.Origin = p.Add(geom.Vec(e.WidthLeft, 0)) }

// SetRight moves the whole box so its right vertex lands on p.
func (e *Ecb) SetRight(p geom.Vector) { e.Origin = p.Sub(geom.Vec(e.WidthRight, 0)) }

// SetTop moves the whole box so its top vertex lands on p.
func (e *Ecb) SetTop(p geom.Vector) { e.Origin = p.Add(geom.Vec(0, e.HeightTop)) }

// SetBottom moves the whole box so its bottom vertex lands on p.
func (e *Ecb) SetBottom(p geom.Vector) { e.Origin = p.Sub(geom.Vec(0, e.HeightBottom)) }

// Translate returns the box moved by d.
func (e Ecb) Translate(d geom.Vector) Ecb {
	e.Origin = e.Origin.Add(d)
	return e
}

// Vertex identifies one of the diamond's points.
type Vertex int

const (
	VertexTop Vertex = iota
	VertexRight
	VertexBottom
	VertexLeft
)

func (v Vertex) String() string {
	switch v {
	case VertexTop:
		return "top"
	case VertexRight:
		return "right"
	case VertexBottom:
		return "bottom"
	case VertexLeft:
		return "left"
	default:
		return fmt.Sprintf("Vertex(%d)", int(v))
	}
}

// Vertex returns the position of v.
func (e Ecb) Vertex(v Vertex) geom.Vector {
	switch v {
	case VertexTop:
		return e.Top()
	case VertexRight:
		return e.Right()
	case VertexBottom:
		return e.Bottom()
	default:
		return e.Left()
	}
}

// SetVertex moves the whole box so that v lands on p.
func (e *Ecb) SetVertex(v Vertex, p geom.Vector) {
	switch v {
	case VertexTop:
		e.SetTop(p)
	case VertexRight:
		e.SetRight(p)
	case VertexBottom:
		e.SetBottom(p)
	default:
		e.SetLeft(p)
	}
}

// Edge is one side of the diamond, running clockwise from From to To.
type Edge struct {
	From, To Vertex
}

// Edges lists the diamond's sides clockwise, starting top-right.
var Edges = [4]Edge{
	{VertexTop, VertexRight},
	{VertexRight, VertexBottom},
	{VertexBottom, VertexLeft},
	{VertexLeft, VertexTop},
}

func (ed Edge) String() string { return ed.From.String() + "-" + ed.To.String() }

// Points returns the edge's endpoints on e.
func (ed Edge) Points(e Ecb) (a, b geom.Vector) {
	return e.Vertex(ed.From), e.Vertex(ed.To)
}

// Normal is the edge's outward normal on e, not normalised.
func (ed Edge) Normal(e Ecb) geom.Vector {
	a, b := ed.Points(e)
	d := b.Sub(a)
	return geom.Vec(d.Y, -d.X)
}

func (e Ecb) String() string {
	return fmt.Sprintf("Ecb{origin=%v l=%g r=%g t=%g b=%g}",
		e.Origin, e.WidthLeft, e.WidthRight, e.HeightTop, e.HeightBottom)
}

// PlayerCollision is one tick's ECB snapshots: Root as the tick started,
// PlayerModified after the character's own adjustments, PostCollision after
// terrain resolution.
type PlayerCollision struct {
	Root           Ecb
	PlayerModified Ecb
	PostCollision  Ecb
}

// Reset places all three snapshots with their bottom vertex at position.
func (pc *PlayerCollision) Reset(position geom.Vector, ext Extents) {
	e := EcbAt(position, ext)
	pc.Root = e
	pc.PlayerModified = e
	pc.PostCollision = e
}

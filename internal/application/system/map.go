package system

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/domain/terrain"
)

// maxResolvePasses bounds how many times a move that slid off a corner is
// re-resolved.
const maxResolvePasses = 4

// LedgeBox is the catch area above a character's position: a ledge is
// grabbed when it lies less than Width ahead and within Height above the
// point Base above the character's feet.
type LedgeBox struct {
	Width  float64
	Height float64
	Base   float64
}

// DefaultLedgeBox matches the default fighter ECB.
func DefaultLedgeBox() LedgeBox {
	return LedgeBox{Width: 0.1, Height: 0.1, Base: 0.2}
}

// Map is the stage terrain and the resolver that moves characters through it.
type Map struct {
	platforms []*terrain.Platform
	ledges    []*terrain.Ledge
	ledgeBox  LedgeBox
	log       *zap.Logger
}

// MapOption configures a Map.
type MapOption func(*Map)

// WithLogger sets the logger used for per-move debug events.
func WithLogger(l *zap.Logger) MapOption {
	return func(m *Map) {
		if l != nil {
			m.log = l
		}
	}
}

// WithLedgeBox overrides the ledge catch area.
func WithLedgeBox(b LedgeBox) MapOption {
	return func(m *Map) { m.ledgeBox = b }
}

// NewMap takes ownership of the platforms and assigns their IDs in order.
func NewMap(platforms []*terrain.Platform, ledges []*terrain.Ledge, opts ...MapOption) (*Map, error) {
	m := &Map{
		platforms: make([]*terrain.Platform, len(platforms)),
		ledges:    make([]*terrain.Ledge, len(ledges)),
		ledgeBox:  DefaultLedgeBox(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for i, p := range platforms {
		if p == nil {
			return nil, fmt.Errorf("platform %d: %w", i, errNilPlatform)
		}
		p.SetID(i)
		m.platforms[i] = p
	}
	for i, l := range ledges {
		if l == nil {
			return nil, fmt.Errorf("ledge %d: %w", i, errNilLedge)
		}
		if l.Facing != -1 && l.Facing != 1 {
			return nil, fmt.Errorf("ledge %d: %w", i, terrain.ErrInvalidFacing)
		}
		m.ledges[i] = l
	}
	return m, nil
}

var (
	errNilPlatform = errors.New("nil platform")
	errNilLedge    = errors.New("nil ledge")
)

// Platform returns platform i. It panics when i is out of range.
func (m *Map) Platform(i int) *terrain.Platform { return m.platforms[i] }

func (m *Map) Platforms() []*terrain.Platform { return m.platforms }

func (m *Map) Ledges() []*terrain.Ledge { return m.ledges }

func (m *Map) LedgeBox() LedgeBox { return m.ledgeBox }

// ClosestCollision finds the nearest contact along start->end over every
// platform except ignored.
func (m *Map) ClosestCollision(start, end geom.Vector, ignored *terrain.Platform) (terrain.CollisionDatum, bool) {
	var best terrain.CollisionDatum
	found := false
	motion := end.Sub(start)

	for _, p := range m.platforms {
		if p == ignored {
			continue
		}
		d, ok := p.CheckCollision(start, end)
		if !ok {
			continue
		}
		if !found || terrain.Closer(d, best, start, motion) {
			best = d
			found = true
		}
	}
	return best, found
}

// EcbCollision is a contact of one ECB vertex. Position is the ECB origin
// implied by that vertex resting on the contact point.
type EcbCollision struct {
	terrain.CollisionDatum
	Vertex entity.Vertex
}

// ClosestEcbCollision sweeps each vertex of start to the same vertex of end
// and returns the contact nearest to its own vertex.
func (m *Map) ClosestEcbCollision(start, end entity.Ecb) (EcbCollision, bool) {
	var best EcbCollision
	var bestRel terrain.CollisionDatum
	found := false
	motion := end.Origin.Sub(start.Origin)

	for _, v := range []entity.Vertex{entity.VertexLeft, entity.VertexRight, entity.VertexTop, entity.VertexBottom} {
		from := start.Vertex(v)
		d, ok := m.ClosestCollision(from, end.Vertex(v), nil)
		if !ok {
			continue
		}

		rel := d
		rel.Position = d.Position.Sub(from)
		if found && !terrain.Closer(rel, bestRel, geom.Vector{}, motion) {
			continue
		}

		offset := from.Sub(start.Origin)
		d.Position = d.Position.Sub(offset)
		best = EcbCollision{CollisionDatum: d, Vertex: v}
		bestRel = rel
		found = true
	}
	return best, found
}

// MovePlayer moves c by requested against the terrain and commits the
// result with c.MoveTo. A ledge grab ends the move before any motion.
func (m *Map) MovePlayer(c Character, requested geom.Vector) {
	m.log.Debug("move player",
		zap.Stringer("position", c.Position()),
		zap.Stringer("requested", requested))

	if m.grabLedges(c) {
		return
	}

	projected := c.Position().Add(requested)
	if standing := c.CurrentPlatform(); c.IsGrounded() && standing != nil {
		pos, leftover := standing.GroundedMovement(c.Position(), requested)
		switch {
		case leftover.LenSquared() == 0:
		case leftover.Y == 0 && !c.CanWalkOff():
			m.log.Debug("held at platform edge",
				zap.Int("platform", standing.ID()),
				zap.Stringer("leftover", leftover))
			leftover = geom.Vector{}
		default:
			m.log.Debug("fell off platform",
				zap.Int("platform", standing.ID()),
				zap.Stringer("leftover", leftover))
			c.FallOffPlatform()
		}
		projected = pos.Add(leftover)
	}

	m.log.Debug("projected position", zap.Stringer("position", projected))

	start := c.Collision().PlayerModified
	end := start
	end.SetBottom(projected)

	// Read after the slide: a fighter that just fell off collides with the
	// rest of the platform it left.
	end = m.resolve(c, start, end, c.CurrentPlatform(), 1)
	c.MoveTo(end)
}

// resolve runs the vertex sweeps and then the corner pass for the box
// moving from start to end, returning the resolved box.
func (m *Map) resolve(c Character, start, end entity.Ecb, ignored *terrain.Platform, pass int) entity.Ecb {
	if hit, ok := m.ClosestCollision(start.Bottom(), end.Bottom(), ignored); ok && hit.Type == terrain.FloorCollision {
		m.log.Debug("landing",
			zap.Int("platform", hit.Segment.Platform().ID()),
			zap.Stringer("at", hit.Position))
		c.Land(hit.Segment.Platform())
		end.SetBottom(hit.Position)
	}

	d := end.Origin.Sub(start.Origin)

	if side, ok := leadingSide(d.X); ok {
		if hit, ok := m.ClosestCollision(start.Vertex(side), end.Vertex(side), ignored); ok && hit.Type == terrain.WallCollision {
			m.log.Debug("wall contact",
				zap.Stringer("vertex", side),
				zap.Int("platform", hit.Segment.Platform().ID()),
				zap.Stringer("at", hit.Position))
			// Airborne contact stops dead; sliding along the wall is not
			// implemented.
			end.SetVertex(side, hit.Position)
			m.reseat(c, &end)
		}
	}

	if d.Y < 0 {
		if hit, ok := m.ClosestCollision(start.Top(), end.Top(), ignored); ok && hit.Type == terrain.CeilingCollision {
			m.log.Debug("ceiling contact",
				zap.Int("platform", hit.Segment.Platform().ID()),
				zap.Stringer("at", hit.Position))
			end.SetTop(hit.Position)
		}
	}

	return m.resolveCorners(c, start, end, ignored, pass)
}

func leadingSide(dx float64) (entity.Vertex, bool) {
	switch {
	case dx > 0:
		return entity.VertexRight, true
	case dx < 0:
		return entity.VertexLeft, true
	default:
		return 0, false
	}
}

// reseat keeps a grounded character's bottom vertex on its platform after a
// wall pushed it back.
func (m *Map) reseat(c Character, end *entity.Ecb) {
	p := c.CurrentPlatform()
	if !c.IsGrounded() || p == nil {
		return
	}
	x := end.Bottom().X
	if y, ok := p.SurfaceAt(x); ok {
		end.SetBottom(geom.Vec(x, y))
	}
}

type cornerHit struct {
	edge    entity.Edge
	contact terrain.CornerContact
}

// resolveCorners handles the box's edges running into terrain vertices that
// no vertex sweep can see. The box slides along the struck edge, keeping
// the vertical part of the remaining motion, until the terrain vertex
// reaches one of the box's own vertices; any motion left after that is
// resolved again from there.
func (m *Map) resolveCorners(c Character, start, end entity.Ecb, ignored *terrain.Platform, pass int) entity.Ecb {
	d := end.Origin.Sub(start.Origin)
	if d.LenSquared() <= geom.Epsilon*geom.Epsilon {
		return end
	}

	hit, ok := m.firstCornerHit(start, end, ignored)
	if !ok {
		return end
	}

	t0, s0 := hit.contact.Sweep.T, hit.contact.Sweep.S
	n := hit.edge.Normal(start)
	a, b := hit.edge.Points(start)
	e := b.Sub(a)

	m.log.Debug("corner contact",
		zap.Stringer("edge", hit.edge),
		zap.Int("platform", hit.contact.Platform.ID()),
		zap.Stringer("corner", hit.contact.Point),
		zap.Float64("t", t0))

	contact := start.Translate(d.Scale(t0))
	if math.Abs(n.X) < geom.Epsilon {
		return contact
	}

	r := d.Scale(1 - t0)
	slide := geom.Vec(-r.Y*n.Y/n.X, r.Y)

	f := 1.0
	if ds := slide.Scale(-1).Dot(e) / e.LenSquared(); ds != 0 {
		room := 1 - s0
		if ds < 0 {
			room = s0
		}
		f = math.Min(1, room/math.Abs(ds))
	}

	box := contact.Translate(slide.Scale(f))
	if f >= 1 || pass >= maxResolvePasses {
		return box
	}

	rest := d.Scale((1 - t0) * (1 - f))
	m.log.Debug("slipped off corner", zap.Stringer("remaining", rest))
	return m.resolve(c, box, box.Translate(rest), ignored, pass+1)
}

func (m *Map) firstCornerHit(start, end entity.Ecb, ignored *terrain.Platform) (cornerHit, bool) {
	var best cornerHit
	found := false
	d := end.Origin.Sub(start.Origin)

	for _, edge := range entity.Edges {
		if d.Dot(edge.Normal(start)) <= 0 {
			continue
		}
		a1, a2 := edge.Points(start)
		b1, b2 := edge.Points(end)

		for _, p := range m.platforms {
			if p == ignored {
				continue
			}
			cc, ok := p.CheckCornerCollision(a1, a2, b1, b2)
			if !ok {
				continue
			}
			if !found || cc.Sweep.T < best.contact.Sweep.T-geom.Epsilon {
				best = cornerHit{edge: edge, contact: cc}
				found = true
			}
		}
	}
	return best, found
}

// grabLedges hangs c from the first ledge inside its catch box.
func (m *Map) grabLedges(c Character) bool {
	if !c.CanGrabLedge() {
		return false
	}

	face := c.Facing()
	box := c.Position().Add(geom.Vec(0, -m.ledgeBox.Base))
	for _, l := range m.ledges {
		diff := l.Position.Sub(box)
		if geom.Sign(diff.X) == face && face != l.Facing &&
			math.Abs(diff.X) < m.ledgeBox.Width &&
			diff.Y > -m.ledgeBox.Height && diff.Y < 0 {
			m.log.Debug("ledge grab", zap.Stringer("ledge", l.Position), zap.Int("facing", l.Facing))
			c.GrabLedge(l)
			return true
		}
	}
	return false
}

package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/domain/terrain"
)

// Colors for rendering
var (
	colorFloor       = color.RGBA{120, 200, 120, 255}
	colorWall        = color.RGBA{200, 160, 80, 255}
	colorCeiling     = color.RGBA{200, 90, 90, 255}
	colorLedge       = color.RGBA{255, 215, 0, 255}
	colorEcb         = color.RGBA{100, 160, 255, 255}
	colorEcbPrevious = color.RGBA{100, 160, 255, 90}
	colorPosition    = color.RGBA{255, 255, 255, 255}
)

// Renderer draws the collision view of a stage: terrain segments colored
// by surface, ledges, and each fighter's previous and current ECB.
type Renderer struct {
	scale float64
}

// NewRenderer draws scale pixels per stage unit.
func NewRenderer(scale float64) *Renderer {
	return &Renderer{scale: scale}
}

// ToScreen converts a stage point to screen pixels.
func (r *Renderer) ToScreen(p geom.Vector) (float32, float32) {
	return float32(p.X * r.scale), float32(p.Y * r.scale)
}

// SurfaceColor is the color a segment is drawn with.
func SurfaceColor(s terrain.Surface) color.RGBA {
	switch s {
	case terrain.SurfaceFloor:
		return colorFloor
	case terrain.SurfaceCeiling:
		return colorCeiling
	default:
		return colorWall
	}
}

// DrawMap draws every platform segment and ledge.
func (r *Renderer) DrawMap(screen *ebiten.Image, m *Map) {
	for _, p := range m.Platforms() {
		for i := 0; i < p.SegmentCount(); i++ {
			seg := p.Segment(i)
			r.line(screen, seg.A(), seg.B(), 2, SurfaceColor(seg.Surface()))
		}
	}

	for _, l := range m.Ledges() {
		x, y := r.ToScreen(l.Position)
		vector.DrawFilledRect(screen, x-3, y-3, 6, 6, colorLedge, false)
		// Tick toward the open side.
		r.line(screen, l.Position, l.Position.Add(geom.Vec(float64(l.Facing)*8/r.scale, 0)), 1, colorLedge)
	}
}

// DrawFighter draws the ECB from the previous and current tick and the
// fighter's position.
func (r *Renderer) DrawFighter(screen *ebiten.Image, f *entity.Fighter) {
	r.ecb(screen, f.Previous.PostCollision, colorEcbPrevious)
	r.ecb(screen, f.Current.PostCollision, colorEcb)

	x, y := r.ToScreen(f.Position())
	vector.DrawFilledCircle(screen, x, y, 2, colorPosition, true)
}

// DrawStatus prints a fighter's state at the top left.
func (r *Renderer) DrawStatus(screen *ebiten.Image, f *entity.Fighter, line int) {
	msg := fmt.Sprintf("P%d %s pos=%v vel=%v jumps=%d",
		f.ID, f.Action().State(), f.Position(), f.Velocity(), f.JumpsUsed)
	ebitenutil.DebugPrintAt(screen, msg, 4, 4+line*16)
}

func (r *Renderer) ecb(screen *ebiten.Image, e entity.Ecb, c color.Color) {
	for _, edge := range entity.Edges {
		a, b := edge.Points(e)
		r.line(screen, a, b, 1, c)
	}
}

func (r *Renderer) line(screen *ebiten.Image, a, b geom.Vector, width float32, c color.Color) {
	x0, y0 := r.ToScreen(a)
	x1, y1 := r.ToScreen(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, width, c, true)
}

package replay

import "github.com/younwookim/ecb/internal/domain/geom"

// Version is written into every recording.
const Version = "2.0"

// FrameInput records the input of a single frame and what the Map made of
// it.
type FrameInput struct {
	F   int  `json:"f"`             // Frame number
	L   bool `json:"l,omitempty"`   // Left
	R   bool `json:"r,omitempty"`   // Right
	JP  bool `json:"jp,omitempty"`  // JumpPressed
	DP  bool `json:"dp,omitempty"`  // DownPressed
	Rst bool `json:"rst,omitempty"` // Reset

	// Requested is the displacement handed to the Map, Position the
	// resolved position afterwards.
	Requested Point `json:"req"`
	Position  Point `json:"pos"`
}

// Point is a JSON-friendly vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func pointOf(v geom.Vector) Point { return Point{X: v.X, Y: v.Y} }

// Vector converts back to a geom.Vector.
func (p Point) Vector() geom.Vector { return geom.Vec(p.X, p.Y) }

// ReplayData contains all data needed to replay a sandbox session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	Fighter   string       `json:"fighter"`
	Framerate int          `json:"framerate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

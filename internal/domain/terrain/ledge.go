package terrain

import (
	"errors"
	"fmt"

	"github.com/younwookim/ecb/internal/domain/geom"
)

// ErrInvalidFacing is returned for a ledge facing other than -1 or 1.
var ErrInvalidFacing = errors.New("ledge facing must be -1 or 1")

// Ledge is a grab point. Facing is the direction its open side points: -1
// for the left end of a stage, 1 for the right. A fighter can only grab a
// ledge it faces, so the fighter's facing is the opposite of the ledge's.
type Ledge struct {
	Position geom.Vector
	Facing   int
}

// NewLedge validates facing.
func NewLedge(pos geom.Vector, facing int) (*Ledge, error) {
	if facing != -1 && facing != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFacing, facing)
	}
	if !pos.IsFinite() {
		return nil, fmt.Errorf("ledge %v: %w", pos, ErrInvalidPoint)
	}
	return &Ledge{Position: pos, Facing: facing}, nil
}

func (l *Ledge) String() string {
	return fmt.Sprintf("Ledge{%v facing=%d}", l.Position, l.Facing)
}

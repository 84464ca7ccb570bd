package replay

import (
	"fmt"

	"github.com/younwookim/ecb/internal/application/system"
	"github.com/younwookim/ecb/internal/domain/geom"
)

// StepFunc advances a simulation one tick with in and reports the requested
// displacement and resolved position of the recorded fighter.
type StepFunc func(in system.InputState) (requested, position geom.Vector)

// Divergence describes the first frame a re-run disagreed with a recording.
type Divergence struct {
	Frame         int
	WantRequested geom.Vector
	GotRequested  geom.Vector
	WantPosition  geom.Vector
	GotPosition   geom.Vector
}

func (d *Divergence) Error() string {
	return fmt.Sprintf("replay diverged at frame %d: requested %v want %v, position %v want %v",
		d.Frame, d.GotRequested, d.WantRequested, d.GotPosition, d.WantPosition)
}

// Check compares a re-run of the frame against the recording.
func (fi FrameInput) Check(requested, position geom.Vector) error {
	want := fi.Requested.Vector()
	wantPos := fi.Position.Vector()
	if requested == want && position == wantPos {
		return nil
	}
	return &Divergence{
		Frame:         fi.F,
		WantRequested: want,
		GotRequested:  requested,
		WantPosition:  wantPos,
		GotPosition:   position,
	}
}

// Verify feeds every recorded input to step and compares the results. It
// returns the number of frames that matched and a *Divergence for the first
// mismatch. Resolution is deterministic, so any difference is a regression.
func Verify(data ReplayData, step StepFunc) (int, error) {
	for i, fi := range data.Frames {
		if err := fi.Check(step(fi.Input())); err != nil {
			return i, err
		}
	}
	return len(data.Frames), nil
}

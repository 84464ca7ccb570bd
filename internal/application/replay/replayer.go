package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/ecb/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	fi, ok := r.Next()
	if !ok {
		return system.InputState{}, false
	}
	return fi.Input(), true
}

// Next returns the whole recorded frame and advances.
func (r *Replayer) Next() (FrameInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return FrameInput{}, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi, true
}

// Input is the recorded input of the frame.
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Left:        fi.L,
		Right:       fi.R,
		JumpPressed: fi.JP,
		DownPressed: fi.DP,
		Reset:       fi.Rst,
	}
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data with idle input.
func CreateTestReplayData(frames int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Stage:     "test",
		Fighter:   "default",
		Framerate: 60,
		Frames:    make([]FrameInput, frames),
	}
	for i := range data.Frames {
		data.Frames[i].F = i
	}
	return data
}

package state

// GameState represents the current state of the sandbox
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	// StateReplaying feeds recorded input instead of the keyboard.
	StateReplaying
	StateReplayDone
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// AcceptsInput reports whether keyboard input drives the fighters.
func (s GameState) AcceptsInput() bool {
	return s == StatePlaying
}

// Advances reports whether the simulation ticks in this state.
func (s GameState) Advances() bool {
	return s == StatePlaying || s == StateReplaying
}

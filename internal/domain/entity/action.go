package entity

import "fmt"

// ActionState names what a fighter is doing.
type ActionState int

const (
	ActionWait ActionState = iota
	ActionWalk
	ActionLanding
	ActionJump
	ActionFall
	ActionLedgeHang
)

var actionStateNames = map[ActionState]string{
	ActionWait:      "WAIT",
	ActionWalk:      "WALK",
	ActionLanding:   "LANDING",
	ActionJump:      "JUMP",
	ActionFall:      "FALL",
	ActionLedgeHang: "LEDGE_HANG",
}

func (s ActionState) String() string {
	if n, ok := actionStateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("ActionState(%d)", int(s))
}

// Action is the capability set the collision resolver asks about.
type Action interface {
	State() ActionState
	IsGrounded() bool
	CanGrabLedge() bool
	// CanWalkOff reports whether walking past a platform's end drops the
	// fighter instead of stopping it.
	CanWalkOff() bool
}

type groundAction struct {
	state   ActionState
	walkOff bool
}

func (a groundAction) State() ActionState { return a.state }
func (groundAction) IsGrounded() bool     { return true }
func (groundAction) CanGrabLedge() bool   { return false }
func (a groundAction) CanWalkOff() bool   { return a.walkOff }

type airAction struct{ state ActionState }

func (a airAction) State() ActionState { return a.state }
func (airAction) IsGrounded() bool     { return false }
func (airAction) CanGrabLedge() bool   { return true }
func (airAction) CanWalkOff() bool     { return false }

type ledgeAction struct{}

func (ledgeAction) State() ActionState { return ActionLedgeHang }
func (ledgeAction) IsGrounded() bool   { return false }
func (ledgeAction) CanGrabLedge() bool { return false }
func (ledgeAction) CanWalkOff() bool   { return false }

var (
	Wait Action = groundAction{ActionWait, true}
	Walk Action = groundAction{ActionWalk, true}
	// Landing lag holds the fighter at a platform's end.
	Landing Action = groundAction{ActionLanding, false}

	Jump      Action = airAction{ActionJump}
	Fall      Action = airAction{ActionFall}
	LedgeHang Action = ledgeAction{}
)

// ActionFor returns the action for s, Fall for unknown states.
func ActionFor(s ActionState) Action {
	switch s {
	case ActionWait:
		return Wait
	case ActionWalk:
		return Walk
	case ActionLanding:
		return Landing
	case ActionJump:
		return Jump
	case ActionLedgeHang:
		return LedgeHang
	default:
		return Fall
	}
}

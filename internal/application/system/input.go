package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState holds one tick of player input.
type InputState struct {
	Left  bool
	Right bool
	// JumpPressed and DownPressed are edges, true only on the tick the key
	// went down.
	JumpPressed bool
	DownPressed bool
	Reset       bool
}

// Direction is -1, 0 or 1. Holding both sides cancels out.
func (in InputState) Direction() int {
	d := 0
	if in.Left {
		d--
	}
	if in.Right {
		d++
	}
	return d
}

// KeyBindings maps actions to keys. Any key in a list triggers the action.
type KeyBindings struct {
	Left  []ebiten.Key
	Right []ebiten.Key
	Jump  []ebiten.Key
	Down  []ebiten.Key
	Reset []ebiten.Key
}

// DefaultKeyBindings binds WASD and the arrow keys.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Jump:  []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace},
		Down:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Reset: []ebiten.Key{ebiten.KeyR},
	}
}

// InputSystem handles player input
type InputSystem struct {
	keys KeyBindings
}

// NewInputSystem creates a new input system
func NewInputSystem(keys KeyBindings) *InputSystem {
	return &InputSystem{keys: keys}
}

// GetInput reads the current keyboard state.
func (s *InputSystem) GetInput() InputState {
	return s.read(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)
}

func (s *InputSystem) read(pressed, justPressed func(ebiten.Key) bool) InputState {
	return InputState{
		Left:        anyKey(s.keys.Left, pressed),
		Right:       anyKey(s.keys.Right, pressed),
		JumpPressed: anyKey(s.keys.Jump, justPressed),
		DownPressed: anyKey(s.keys.Down, justPressed),
		Reset:       anyKey(s.keys.Reset, justPressed),
	}
}

func anyKey(keys []ebiten.Key, fn func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if fn(k) {
			return true
		}
	}
	return false
}

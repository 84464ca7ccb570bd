// Package scene defines the Scene interface for sandbox screens.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the sandbox. The game loop delegates Update and
// Draw to the current scene; returning a non-nil Scene from Update switches
// to it.
type Scene interface {
	// Name identifies the scene in logs.
	Name() string

	// Update advances the scene by dt seconds. Returning an error ends the
	// game; ebiten.Termination ends it cleanly.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	OnEnter()
	// OnExit runs when the scene is replaced or the game ends.
	OnExit()
}

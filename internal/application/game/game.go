// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/ecb/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	ticks   int
	log     *zap.Logger
}

// New creates a new Game with the given initial scene, ticking framerate
// times a second. The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH, framerate int, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	if framerate <= 0 {
		framerate = 60
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
		log:     log,
	}
	g.log.Info("enter scene", zap.String("scene", g.current.Name()))
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	g.ticks++
	next, err := g.current.Update(g.dt)
	if err != nil {
		if errors.Is(err, ebiten.Termination) {
			g.log.Info("game terminated", zap.String("scene", g.current.Name()), zap.Int("ticks", g.ticks))
		} else {
			g.log.Error("scene update failed", zap.String("scene", g.current.Name()), zap.Error(err))
		}
		g.current.OnExit()
		return err
	}

	if next != nil {
		g.log.Info("switch scene",
			zap.String("from", g.current.Name()),
			zap.String("to", next.Name()))
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Ticks is the number of Update calls so far.
func (g *Game) Ticks() int { return g.ticks }

// DT is the fixed tick length in seconds.
func (g *Game) DT() float64 { return g.dt }

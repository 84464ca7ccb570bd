package sandbox

import (
	"errors"

	"go.uber.org/zap"

	"github.com/younwookim/ecb/internal/application/system"
	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/ecs"
	"github.com/younwookim/ecb/internal/infrastructure/config"
)

// ErrNoFighters is returned when a session is started without fighters.
var ErrNoFighters = errors.New("sandbox needs at least one fighter")

// FighterSpec names a fighter and carries its attributes.
type FighterSpec struct {
	Name       string
	Attributes config.FighterConfig
	Body       entity.FighterConfig
}

// Session is the simulation behind the sandbox: a stage, the fighters on it
// and the movement system stepping them. The first fighter is the player.
type Session struct {
	Stage    *system.Stage
	World    *ecs.World
	Movement *system.MovementSystem
	player   ecs.EntityID
}

// NewSession spawns fighters on the stage's spawn points in order.
func NewSession(stage *system.Stage, dt float64, log *zap.Logger, fighters ...FighterSpec) (*Session, error) {
	if len(fighters) == 0 {
		return nil, ErrNoFighters
	}

	w := ecs.NewWorld()
	var player ecs.EntityID
	for i, spec := range fighters {
		id, err := w.CreateFighter(spec.Name, stage.Spawn(i), spec.Body, spec.Attributes)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			player = id
		}
	}

	return &Session{
		Stage:    stage,
		World:    w,
		Movement: system.NewMovementSystem(stage.Map, dt, log),
		player:   player,
	}, nil
}

// Player is the fighter driven by the keyboard or a replay.
func (s *Session) Player() *entity.Fighter {
	return s.World.Fighter[s.player]
}

// Fighters returns every fighter in step order.
func (s *Session) Fighters() []*entity.Fighter {
	ids := s.World.FighterIDs()
	out := make([]*entity.Fighter, len(ids))
	for i, id := range ids {
		out[i] = s.World.Fighter[id]
	}
	return out
}

// Step advances one tick with in driving the player and returns the
// player's requested displacement and resolved position.
func (s *Session) Step(in system.InputState) (geom.Vector, geom.Vector) {
	ecs.SetInput(s.World, s.player, in)
	for _, r := range ecs.StepFighters(s.World, s.Movement) {
		if r.ID == s.player {
			return r.Requested, r.Position
		}
	}
	return geom.Vector{}, s.Player().Position()
}

package ecs

import (
	"github.com/younwookim/ecb/internal/application/system"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/infrastructure/config"
)

// Controller holds what drives a fighter: its entities.json entry and the
// input for the coming tick.
type Controller struct {
	Name       string
	Attributes config.FighterConfig
	Input      system.InputState
}

// Spawn is where a fighter returns to on reset.
type Spawn struct {
	Position geom.Vector
}

// StepResult is one fighter's outcome for a tick.
type StepResult struct {
	ID        EntityID
	Requested geom.Vector
	Position  geom.Vector
}

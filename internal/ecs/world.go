package ecs

import (
	"fmt"
	"sort"

	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/infrastructure/config"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID = entity.EntityID

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Fighter    map[EntityID]*entity.Fighter
	Controller map[EntityID]*Controller
	Spawn      map[EntityID]Spawn
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Fighter:    make(map[EntityID]*entity.Fighter),
		Controller: make(map[EntityID]*Controller),
		Spawn:      make(map[EntityID]Spawn),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// CreateFighter spawns a fighter at spawn. body holds the collision-layer
// attributes, attrs the movement ones.
func (w *World) CreateFighter(name string, spawn geom.Vector, body entity.FighterConfig, attrs config.FighterConfig) (EntityID, error) {
	if err := body.Ecb.Validate(); err != nil {
		return 0, fmt.Errorf("create fighter %q: %w", name, err)
	}
	id := w.NewEntity()
	f, err := entity.NewFighter(id, spawn, body)
	if err != nil {
		return 0, fmt.Errorf("create fighter %q: %w", name, err)
	}

	w.Fighter[id] = f
	w.Controller[id] = &Controller{Name: name, Attributes: attrs}
	w.Spawn[id] = Spawn{Position: spawn}
	return id, nil
}

// FighterIDs returns every fighter in ascending ID order.
func (w *World) FighterIDs() []EntityID {
	ids := make([]EntityID, 0, len(w.Fighter))
	for id := range w.Fighter {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CountFighters returns the number of fighters.
func (w *World) CountFighters() int {
	return len(w.Fighter)
}

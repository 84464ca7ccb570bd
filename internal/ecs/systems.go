package ecs

import (
	"github.com/younwookim/ecb/internal/application/system"
)

// SetInput stores the input id acts on next tick. Unknown IDs are ignored.
func SetInput(w *World, id EntityID, in system.InputState) {
	if c, ok := w.Controller[id]; ok {
		c.Input = in
	}
}

// StepFighters advances every fighter one tick in ascending ID order and
// returns their results in that order. Fighters do not collide with each
// other, but the order keeps logs and replays stable.
func StepFighters(w *World, ms *system.MovementSystem) []StepResult {
	ids := w.FighterIDs()
	results := make([]StepResult, 0, len(ids))

	for _, id := range ids {
		f := w.Fighter[id]
		c := w.Controller[id]

		if c.Input.Reset {
			ResetFighter(w, id)
		}

		requested := ms.Update(f, c.Attributes, c.Input)
		results = append(results, StepResult{
			ID:        id,
			Requested: requested,
			Position:  f.Position(),
		})
	}
	return results
}

// ResetFighter puts a fighter back on its spawn point, airborne and still.
func ResetFighter(w *World, id EntityID) {
	f, ok := w.Fighter[id]
	if !ok {
		return
	}
	f.Teleport(w.Spawn[id].Position)
}

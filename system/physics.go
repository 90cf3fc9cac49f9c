package system

import "github.com/milk9111/asteroidminer/game"

// PhysicsSystem advances the physics world one fixed step. Contact handlers
// run inside it.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *game.World) {
	if w == nil {
		return
	}
	w.Physics().Step(w.Dt())
}

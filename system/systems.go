// Package system holds the per-tick game systems.
package system

import "github.com/milk9111/asteroidminer/game"

// DefaultSystems returns the systems in update order. Cleanup runs last so
// objects removed by contacts disappear in the tick they were removed.
func DefaultSystems() []game.System {
	return []game.System{
		NewControlSystem(),
		NewPhysicsSystem(),
		NewUpdateSystem(),
		NewWrapSystem(),
		NewScoreSystem(),
		NewAsteroidSpawnSystem(),
		NewCleanupSystem(),
	}
}

// Install adds DefaultSystems to w.
func Install(w *game.World) {
	for _, s := range DefaultSystems() {
		w.AddSystem(s)
	}
}

package system

import (
	"github.com/milk9111/asteroidminer/ecs"
	"github.com/milk9111/asteroidminer/entity"
	"github.com/milk9111/asteroidminer/game"
)

// CleanupSystem destroys the bodies of removed objects and forgets them. It
// must run after the physics step.
type CleanupSystem struct{}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

func (s *CleanupSystem) Update(w *game.World) {
	if w == nil {
		return
	}
	w.Each(func(e ecs.Entity, o entity.Object) {
		if !o.IsRemoved() {
			return
		}
		if err := w.Forget(e); err != nil {
			panic("cleanup system: forget entity: " + err.Error())
		}
	})
}

package system

import (
	"github.com/milk9111/asteroidminer/ecs"
	"github.com/milk9111/asteroidminer/entity"
	"github.com/milk9111/asteroidminer/game"
)

// UpdateSystem runs each live object's per-tick hook.
type UpdateSystem struct{}

func NewUpdateSystem() *UpdateSystem {
	return &UpdateSystem{}
}

func (s *UpdateSystem) Update(w *game.World) {
	if w == nil {
		return
	}
	dt := w.Dt()
	w.Each(func(_ ecs.Entity, o entity.Object) {
		if o.IsRemoved() {
			return
		}
		o.Update(dt)
	})
}

package system

import (
	"github.com/milk9111/asteroidminer/ecs"
	"github.com/milk9111/asteroidminer/entity"
	"github.com/milk9111/asteroidminer/game"
)

// WrapSystem moves objects that drift past the world edge to the opposite
// edge. Lasers are left alone; they expire past the edge instead.
type WrapSystem struct{}

func NewWrapSystem() *WrapSystem {
	return &WrapSystem{}
}

func (s *WrapSystem) Update(w *game.World) {
	if w == nil {
		return
	}
	size := w.Tuning().World.Size
	w.Each(func(_ ecs.Entity, o entity.Object) {
		if o.Type() == entity.TypeLaser || o.IsRemoved() {
			return
		}
		pos := o.Body().Position()
		wrapped := pos
		wrapped.X = wrapAxis(pos.X, size)
		wrapped.Y = wrapAxis(pos.Y, size)
		if wrapped != pos {
			o.Body().SetPosition(wrapped)
		}
	})
}

func wrapAxis(v, size float64) float64 {
	switch {
	case v > size:
		return -size
	case v < -size:
		return size
	default:
		return v
	}
}

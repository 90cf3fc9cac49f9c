package system

import "github.com/milk9111/asteroidminer/game"

// ControlSystem steers the player's ship and fires its lasers.
type ControlSystem struct{}

func NewControlSystem() *ControlSystem {
	return &ControlSystem{}
}

func (s *ControlSystem) Update(w *game.World) {
	if w == nil || w.Player() == nil {
		return
	}
	ship := w.Player().SpaceShip()
	if ship == nil || ship.IsRemoved() {
		return
	}

	ship.Steer()
	if !ship.Controls().Fire || !ship.CanFire() {
		return
	}
	laser, err := ship.Fire(w.Physics(), w.Tuning())
	if err != nil {
		panic("control system: fire laser: " + err.Error())
	}
	w.Spawn(laser)
}

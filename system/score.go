package system

import "github.com/milk9111/asteroidminer/game"

// asteroidPoints is awarded per asteroid the player destroys.
const asteroidPoints = 100

// ScoreSystem drains gameplay events and credits the player.
type ScoreSystem struct{}

func NewScoreSystem() *ScoreSystem {
	return &ScoreSystem{}
}

func (s *ScoreSystem) Update(w *game.World) {
	if w == nil {
		return
	}
	player := w.Player()
	for _, evt := range w.Events().Drain() {
		if player == nil || evt.Ship == nil || evt.Ship != player.SpaceShip() {
			continue
		}
		switch evt.Kind {
		case game.EventAsteroidDestroyed:
			player.CreditAsteroid(asteroidPoints)
			w.Logger().Debug("asteroid destroyed", "score", player.Score())
		case game.EventPowerUpPicked:
			player.CreditPickUp()
		case game.EventShipDestroyed:
			w.Logger().Info("ship destroyed", "score", player.Score(), "asteroids", player.AsteroidsDestroyed())
		}
	}
}

package game

import (
	"github.com/milk9111/asteroidminer/entity"
	"github.com/milk9111/asteroidminer/physics"
)

type typePair struct {
	a, b entity.Type
}

type contactHandler func(w *World, a, b entity.Object)

// contactHandlers is keyed by ordered type pairs; BeginContact tries both
// orders. Pairs missing here, including a laser touching any ship, do nothing.
var contactHandlers = map[typePair]contactHandler{
	{entity.TypeLaser, entity.TypeAsteroid}:     laserHitsAsteroid,
	{entity.TypeSpaceShip, entity.TypePowerUp}:  shipCollectsPowerUp,
	{entity.TypeSpaceShip, entity.TypeAsteroid}: asteroidHitsShip,
}

// BeginContact runs inside the physics step. Handlers must not create or
// destroy bodies; spawning goes through the scheduler.
func (w *World) BeginContact(c physics.Contact) {
	a, okA := w.Lookup(c.A)
	b, okB := w.Lookup(c.B)
	if !okA || !okB || a.IsRemoved() || b.IsRemoved() {
		return
	}
	if h, ok := contactHandlers[typePair{a.Type(), b.Type()}]; ok {
		h(w, a, b)
		return
	}
	if h, ok := contactHandlers[typePair{b.Type(), a.Type()}]; ok {
		h(w, b, a)
	}
}

func (w *World) EndContact(c physics.Contact) {}

func laserHitsAsteroid(w *World, a, b entity.Object) {
	laser, ok := a.(*entity.Laser)
	if !ok {
		return
	}
	target, ok := b.(entity.Damageable)
	if !ok {
		return
	}
	laser.Remove()

	damage := w.tuning.Laser.Damage
	target.Damage(damage)
	w.events.Push(Event{Kind: EventAsteroidHit, Target: target, Ship: laser.Shooter(), Amount: damage})
	if target.Health() == 0 {
		w.events.Push(Event{Kind: EventAsteroidDestroyed, Target: target, Ship: laser.Shooter()})
	}
}

func shipCollectsPowerUp(w *World, a, b entity.Object) {
	ship, ok := a.(*entity.SpaceShip)
	if !ok {
		return
	}
	p, ok := b.(entity.PowerUp)
	if !ok {
		return
	}
	player := w.player
	if player == nil || player.SpaceShip() != ship {
		player = entity.NewPlayer(ship)
	}
	if err := p.OnPickUp(player); err != nil {
		w.logger.Error("power-up pickup failed", "power_up", p.Name(), "error", err)
	}
	p.Remove()
	w.logger.Debug("power-up picked", "power_up", p.Name(), "shield", ship.Shield(), "health", ship.Health())
	w.events.Push(Event{Kind: EventPowerUpPicked, Target: p, Ship: ship})
}

func asteroidHitsShip(w *World, a, b entity.Object) {
	ship, ok := a.(*entity.SpaceShip)
	if !ok {
		return
	}
	damage := w.tuning.Asteroid.ContactDamage
	ship.Hit(damage)
	w.events.Push(Event{Kind: EventShipHit, Target: b, Ship: ship, Amount: damage})
	if ship.IsRemoved() {
		w.events.Push(Event{Kind: EventShipDestroyed, Target: ship, Ship: ship})
	}
}

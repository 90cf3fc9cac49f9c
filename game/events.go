package game

import "github.com/milk9111/asteroidminer/entity"

type EventKind int

const (
	EventAsteroidHit EventKind = iota
	EventAsteroidDestroyed
	EventPowerUpPicked
	EventShipHit
	EventShipDestroyed
)

func (k EventKind) String() string {
	switch k {
	case EventAsteroidHit:
		return "asteroid_hit"
	case EventAsteroidDestroyed:
		return "asteroid_destroyed"
	case EventPowerUpPicked:
		return "powerup_picked"
	case EventShipHit:
		return "ship_hit"
	case EventShipDestroyed:
		return "ship_destroyed"
	default:
		return "unknown"
	}
}

// Event records a gameplay outcome of a contact.
type Event struct {
	Kind EventKind
	// Target is the asteroid, power-up or ship the event is about.
	Target entity.Object
	// Ship is the shooter for asteroid events and the ship for the rest. It
	// may be nil.
	Ship   *entity.SpaceShip
	Amount int
}

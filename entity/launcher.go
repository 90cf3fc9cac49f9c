package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/asteroidminer/physics"
)

// launchSpeed is how fast a dropped power-up drifts away from the wreck.
const launchSpeed = 2.0

// PowerUpLauncher is a deferred task that places exactly one power-up from a
// catalog. Asteroids enqueue it because bodies cannot be created while the
// physics world is stepping.
type PowerUpLauncher struct {
	world    physics.World
	location physics.Vec
	catalog  *Catalog
	rand     Rand
	spawner  Spawner
}

func NewPowerUpLauncher(world physics.World, location physics.Vec, catalog *Catalog, rand Rand, spawner Spawner) *PowerUpLauncher {
	return &PowerUpLauncher{
		world:    world,
		location: location,
		catalog:  catalog,
		rand:     rand,
		spawner:  spawner,
	}
}

func (l *PowerUpLauncher) Location() physics.Vec { return l.location }

func (l *PowerUpLauncher) Run() error {
	v, err := l.catalog.Select(l.rand)
	if err != nil {
		return fmt.Errorf("entity: launch power-up: %w", err)
	}
	heading := l.rand.Float64() * 2 * math.Pi
	p, err := v.Build(l.world, l.location, physics.Forward(heading).Scale(launchSpeed))
	if err != nil {
		return fmt.Errorf("entity: launch power-up %q: %w", v.Name, err)
	}
	if l.spawner != nil {
		l.spawner.Spawn(p)
	}
	return nil
}

package system

import (
	"math"

	"github.com/milk9111/asteroidminer/entity"
	"github.com/milk9111/asteroidminer/game"
	"github.com/milk9111/asteroidminer/physics"
)

// spawnRing places new asteroids just inside the world edge.
const spawnRing = 0.9

// AsteroidSpawnSystem keeps the asteroid field populated.
type AsteroidSpawnSystem struct {
	ticks int
}

func NewAsteroidSpawnSystem() *AsteroidSpawnSystem {
	return &AsteroidSpawnSystem{}
}

func (s *AsteroidSpawnSystem) Update(w *game.World) {
	if w == nil {
		return
	}
	cfg := w.Tuning().Asteroid
	s.ticks++
	if s.ticks < cfg.SpawnIntervalTicks {
		return
	}
	s.ticks = 0
	if w.Count(entity.TypeAsteroid) >= cfg.MaxCount {
		return
	}

	rng := w.Rand()
	size := w.Tuning().World.Size * spawnRing
	at := physics.Forward(rng.Float64() * 2 * math.Pi).Scale(size)
	velocity := physics.Forward(rng.Float64() * 2 * math.Pi).Scale(rng.Float64() * cfg.SpeedMax)
	radius := cfg.RadiusMin + rng.Float64()*(cfg.RadiusMax-cfg.RadiusMin)

	a, err := entity.NewIceAsteroid(w.Physics(), w.Tuning(), w.Env(), at, velocity, radius)
	if err != nil {
		panic("asteroid spawn system: new asteroid: " + err.Error())
	}
	w.Spawn(a)
}

package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/asteroidminer/ecs"
	"github.com/milk9111/asteroidminer/entity"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/physics/physicstest"
	"github.com/milk9111/asteroidminer/prefabs"
	"github.com/milk9111/asteroidminer/render"
)

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }

func newTestWorld(t *testing.T, mutate func(*prefabs.Tuning)) (*World, *physicstest.World) {
	t.Helper()
	tuning, err := prefabs.LoadTuning(prefabs.DefaultTuning)
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	if mutate != nil {
		mutate(tuning)
	}
	pw := physicstest.NewWorld()
	w, err := NewWorld(pw, tuning, Options{Seed: 1, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w, pw
}

func spawnAsteroid(t *testing.T, w *World, at physics.Vec) *entity.IceAsteroid {
	t.Helper()
	a, err := entity.NewIceAsteroid(w.Physics(), w.Tuning(), w.Env(), at, physics.Vec{}, 2)
	if err != nil {
		t.Fatalf("new asteroid: %v", err)
	}
	w.Spawn(a)
	return a
}

func spawnLaser(t *testing.T, w *World) (*entity.Laser, *entity.SpaceShip) {
	t.Helper()
	player := w.Player()
	if player == nil {
		var err error
		if player, err = w.SpawnPlayer(physics.Vec{}); err != nil {
			t.Fatalf("spawn player: %v", err)
		}
	}
	l, err := player.SpaceShip().Fire(w.Physics(), w.Tuning())
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	w.Spawn(l)
	return l, player.SpaceShip()
}

func TestSpawnAndLookup(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	a := spawnAsteroid(t, w, physics.Vec{X: 3})

	got, ok := w.Lookup(a.Body().ID())
	if !ok || got != entity.Object(a) {
		t.Fatalf("lookup returned %v %v", got, ok)
	}
	if _, ok := w.Lookup(a.Body().ID() + 100); ok {
		t.Fatal("unknown body resolved")
	}
	if w.Count(entity.TypeAsteroid) != 1 || w.Len() != 1 {
		t.Fatalf("count %d len %d", w.Count(entity.TypeAsteroid), w.Len())
	}
}

func TestLaserAsteroidContact(t *testing.T) {
	cases := []struct {
		name     string
		reversed bool
	}{
		{"laser_first", false},
		{"asteroid_first", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, pw := newTestWorld(t, nil)
			a := spawnAsteroid(t, w, physics.Vec{Y: 10})
			l, ship := spawnLaser(t, w)

			if c.reversed {
				pw.Emit(a.Body(), l.Body())
			} else {
				pw.Emit(l.Body(), a.Body())
			}

			want := a.MaxHealth() - w.Tuning().Laser.Damage
			if a.Health() != want {
				t.Fatalf("asteroid health %d, want %d", a.Health(), want)
			}
			if !l.IsRemoved() {
				t.Fatal("laser survived the hit")
			}
			events := w.Events().Drain()
			if len(events) != 1 || events[0].Kind != EventAsteroidHit || events[0].Ship != ship {
				t.Fatalf("unexpected events %+v", events)
			}
		})
	}
}

func TestRemovedLaserHitsOnce(t *testing.T) {
	w, pw := newTestWorld(t, nil)
	a := spawnAsteroid(t, w, physics.Vec{Y: 10})
	b := spawnAsteroid(t, w, physics.Vec{Y: 12})
	l, _ := spawnLaser(t, w)

	pw.Emit(l.Body(), a.Body())
	pw.Emit(l.Body(), b.Body())
	if b.Health() != b.MaxHealth() {
		t.Fatalf("removed laser damaged a second asteroid: %d", b.Health())
	}
}

func TestLaserIgnoresShips(t *testing.T) {
	w, pw := newTestWorld(t, nil)
	l, ship := spawnLaser(t, w)
	pw.Emit(l.Body(), ship.Body())
	if l.IsRemoved() || ship.Health() != ship.MaxHealth() {
		t.Fatal("laser interacted with its shooter")
	}
	if w.Events().Len() != 0 {
		t.Fatal("unexpected event")
	}
}

func TestAsteroidKillDefersPowerUp(t *testing.T) {
	w, pw := newTestWorld(t, func(t *prefabs.Tuning) { t.Asteroid.PowerUpSpawnChance = 1 })
	a := spawnAsteroid(t, w, physics.Vec{X: -4, Y: 6})
	a.SetHealth(w.Tuning().Laser.Damage)
	l, ship := spawnLaser(t, w)

	pw.Emit(l.Body(), a.Body())
	if a.Health() != 0 || !a.IsRemoved() {
		t.Fatalf("asteroid not destroyed: %d", a.Health())
	}
	if w.Count(entity.TypePowerUp) != 0 {
		t.Fatal("power-up created inside the contact callback")
	}
	if w.Scheduler().Pending() != 1 {
		t.Fatalf("expected one pending launcher, got %d", w.Scheduler().Pending())
	}
	events := w.Events().Drain()
	if len(events) != 2 || events[1].Kind != EventAsteroidDestroyed || events[1].Ship != ship {
		t.Fatalf("unexpected events %+v", events)
	}

	bodies := pw.BodyCount()
	w.Update()
	if w.Count(entity.TypePowerUp) != 1 {
		t.Fatalf("expected exactly one power-up after the next tick, got %d", w.Count(entity.TypePowerUp))
	}
	if pw.BodyCount() != bodies+1 {
		t.Fatalf("body count %d -> %d", bodies, pw.BodyCount())
	}
	if errs := w.TaskErrors(); len(errs) != 0 {
		t.Fatalf("task errors: %v", errs)
	}
}

func TestShipCollectsPowerUp(t *testing.T) {
	w, pw := newTestWorld(t, nil)
	player, err := w.SpawnPlayer(physics.Vec{})
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	spec := w.Tuning().PowerUps[0]
	p, err := entity.NewShieldPowerUp(pw, w.Tuning(), spec, physics.Vec{X: 1}, physics.Vec{})
	if err != nil {
		t.Fatalf("new power-up: %v", err)
	}
	w.Spawn(p)

	pw.Emit(p.Body(), player.SpaceShip().Body())
	if player.SpaceShip().Shield() != spec.Amount {
		t.Fatalf("shield %d, want %d", player.SpaceShip().Shield(), spec.Amount)
	}
	if !p.IsRemoved() {
		t.Fatal("power-up not removed after pickup")
	}
	pw.Emit(p.Body(), player.SpaceShip().Body())
	if events := w.Events().Drain(); len(events) != 1 || events[0].Kind != EventPowerUpPicked {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestAsteroidHitsShip(t *testing.T) {
	w, pw := newTestWorld(t, nil)
	player, err := w.SpawnPlayer(physics.Vec{})
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	ship := player.SpaceShip()
	ship.SetShield(5)
	a := spawnAsteroid(t, w, physics.Vec{X: 3})

	pw.Emit(a.Body(), ship.Body())
	dmg := w.Tuning().Asteroid.ContactDamage
	if ship.Shield() != 0 || ship.Health() != ship.MaxHealth()-(dmg-5) {
		t.Fatalf("shield/health %d/%d", ship.Shield(), ship.Health())
	}
	if a.Health() != a.MaxHealth() {
		t.Fatal("ship contact damaged the asteroid")
	}
}

func TestUpdateRunsTasksBeforeSystems(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	var order []string
	w.AddSystem(systemFunc(func(w *World) { order = append(order, "first") }))
	w.AddSystem(systemFunc(func(w *World) { order = append(order, "second") }))
	w.Scheduler().RunTask(ecs.TaskFunc(func() error {
		order = append(order, "task")
		return nil
	}))

	w.Update()
	want := []string{"task", "first", "second"}
	if len(order) != len(want) {
		t.Fatalf("order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order %v, want %v", order, want)
		}
	}
	if w.Ticks() != 1 {
		t.Fatalf("ticks %d, want 1", w.Ticks())
	}
}

func TestTaskErrorsReported(t *testing.T) {
	tuning, err := prefabs.LoadTuning(prefabs.DefaultTuning)
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	var observed []error
	w, err := NewWorld(physicstest.NewWorld(), tuning, Options{
		Logger:      log.New(io.Discard),
		OnTaskError: func(err error) { observed = append(observed, err) },
	})
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	boom := errors.New("boom")
	ran := false
	w.Scheduler().RunTask(ecs.TaskFunc(func() error { return boom }))
	w.Scheduler().RunTask(ecs.TaskFunc(func() error { panic("bad task") }))
	w.Scheduler().RunTask(ecs.TaskFunc(func() error {
		ran = true
		return nil
	}))

	w.Update()
	if !ran {
		t.Fatal("failing tasks blocked a later task")
	}
	errs := w.TaskErrors()
	if len(errs) != 2 || !errors.Is(errs[0], boom) || !errors.Is(errs[1], ecs.ErrTaskPanic) {
		t.Fatalf("unexpected task errors %v", errs)
	}
	if len(observed) != 2 {
		t.Fatalf("observer saw %d errors", len(observed))
	}
	if len(w.TaskErrors()) != 0 {
		t.Fatal("TaskErrors did not clear")
	}
}

func TestRenderSkipsRemoved(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	spawnAsteroid(t, w, physics.Vec{})
	l, _ := spawnLaser(t, w)
	l.Remove()

	rec := &render.Recorder{}
	w.Render(rec)
	if rec.Count(render.SpriteLaser) != 0 {
		t.Fatal("removed laser rendered")
	}
	if rec.Count(render.SpriteAsteroid) != 1 || rec.Count(render.SpriteSpaceship) != 1 {
		t.Fatalf("unexpected sprites %+v", rec.Sprites)
	}
}

func TestForgetDestroysBody(t *testing.T) {
	w, pw := newTestWorld(t, nil)
	a := spawnAsteroid(t, w, physics.Vec{})
	var handle ecs.Entity
	w.Each(func(e ecs.Entity, o entity.Object) { handle = e })

	if err := w.Forget(handle); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if pw.BodyCount() != 0 || w.Len() != 0 {
		t.Fatalf("body count %d, objects %d", pw.BodyCount(), w.Len())
	}
	if _, ok := w.Lookup(a.Body().ID()); ok {
		t.Fatal("forgotten object still resolvable")
	}
	if err := w.Forget(handle); err != nil {
		t.Fatalf("forgetting a stale handle: %v", err)
	}
}

func TestSetTuning(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	bad := *w.Tuning()
	bad.Laser.Speed = 0
	if err := w.SetTuning(&bad); !errors.Is(err, prefabs.ErrInvalidTuning) {
		t.Fatalf("expected ErrInvalidTuning, got %v", err)
	}

	next := *w.Tuning()
	next.Laser.Damage = 1
	if err := w.SetTuning(&next); err != nil {
		t.Fatalf("set tuning: %v", err)
	}
	if w.Tuning().Laser.Damage != 1 {
		t.Fatal("tuning not applied")
	}
}

func TestNewWorldValidates(t *testing.T) {
	if _, err := NewWorld(nil, nil, Options{}); err == nil {
		t.Fatal("expected error for nil physics world")
	}
	if _, err := NewWorld(physicstest.NewWorld(), &prefabs.Tuning{}, Options{}); !errors.Is(err, prefabs.ErrInvalidTuning) {
		t.Fatalf("expected ErrInvalidTuning, got %v", err)
	}
}

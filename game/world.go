// Package game ties the physics world, the live objects and the deferred-task
// scheduler into one frame-stepped simulation.
package game

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/milk9111/asteroidminer/ecs"
	"github.com/milk9111/asteroidminer/entity"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/prefabs"
	"github.com/milk9111/asteroidminer/render"
)

// System updates the world once per tick.
type System interface {
	Update(w *World)
}

type Options struct {
	Logger *log.Logger
	// Rand overrides Seed when set.
	Rand *rand.Rand
	Seed int64
	// Queue replaces the scheduler's FIFO queue.
	Queue ecs.TaskQueue
	// OnTaskError observes deferred-task failures after they are logged.
	OnTaskError func(err error)
}

type World struct {
	physics   physics.World
	tuning    *prefabs.Tuning
	catalog   *entity.Catalog
	objects   *ecs.Registry[entity.Object]
	scheduler *ecs.Scheduler
	events    ecs.EventQueue[Event]
	rng       *rand.Rand
	logger    *log.Logger
	systems   []System
	player    *entity.Player

	onTaskError func(err error)
	taskErrors  []error
	ticks       uint64
}

// NewWorld wraps pw and becomes its contact listener.
func NewWorld(pw physics.World, t *prefabs.Tuning, opts Options) (*World, error) {
	if pw == nil {
		return nil, fmt.Errorf("game: new world: nil physics world")
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("game: new world: %w", err)
	}
	catalog, err := entity.NewCatalogFromTuning(t)
	if err != nil {
		return nil, fmt.Errorf("game: new world: %w", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := &World{
		physics:     pw,
		tuning:      t,
		catalog:     catalog,
		objects:     ecs.NewRegistry[entity.Object](),
		rng:         rng,
		logger:      logger,
		onTaskError: opts.OnTaskError,
	}
	w.scheduler = ecs.NewScheduler(opts.Queue, w.reportTaskError)
	pw.SetContactListener(w)
	return w, nil
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs one tick: deferred tasks first, then every system in order.
// Events nobody drained are dropped at the end of the tick.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.ticks++
	w.scheduler.Tick()
	for _, s := range w.systems {
		s.Update(w)
	}
	w.events.Drain()
}

// Render draws every object that is still live.
func (w *World) Render(b render.Batch) {
	w.objects.Each(func(_ ecs.Entity, o entity.Object) {
		if o.IsRemoved() {
			return
		}
		o.Render(b)
	})
}

// Spawn registers a constructed object. Its body must already be in the
// physics world.
func (w *World) Spawn(o entity.Object) {
	if o == nil || o.Body() == nil {
		return
	}
	e := w.objects.Create(o, o.Body().ID())
	w.logger.Debug("spawn", "entity", e, "type", o.Type())
}

// Forget destroys the object's body and drops it from the live set.
func (w *World) Forget(e ecs.Entity) error {
	o, ok := w.objects.Get(e)
	if !ok {
		return nil
	}
	if err := w.physics.DestroyBody(o.Body()); err != nil {
		return fmt.Errorf("game: forget %s: %w", e, err)
	}
	w.objects.Destroy(e)
	return nil
}

// Lookup maps a physics body back to the object that owns it.
func (w *World) Lookup(id physics.BodyID) (entity.Object, bool) {
	_, o, ok := w.objects.Lookup(id)
	return o, ok
}

// Each visits the objects alive when it was called.
func (w *World) Each(fn func(e ecs.Entity, o entity.Object)) {
	w.objects.Each(fn)
}

func (w *World) Len() int { return w.objects.Len() }

// Count returns how many live objects have type t.
func (w *World) Count(t entity.Type) int {
	n := 0
	w.objects.Each(func(_ ecs.Entity, o entity.Object) {
		if o.Type() == t && !o.IsRemoved() {
			n++
		}
	})
	return n
}

// SpawnPlayer creates the player's ship at location.
func (w *World) SpawnPlayer(location physics.Vec) (*entity.Player, error) {
	ship, err := entity.NewSpaceShip(w.physics, w.tuning, location)
	if err != nil {
		return nil, fmt.Errorf("game: spawn player: %w", err)
	}
	w.Spawn(ship)
	if w.player == nil {
		w.player = entity.NewPlayer(ship)
	} else {
		w.player.SetSpaceShip(ship)
	}
	return w.player, nil
}

func (w *World) Player() *entity.Player { return w.player }

// Env is handed to objects that spawn follow-up work.
func (w *World) Env() entity.Env {
	return entity.Env{
		Tasks:   w.scheduler,
		Spawner: w,
		Rand:    w.rng,
		Catalog: w.catalog,
	}
}

// SetTuning swaps the tuning used by future spawns.
func (w *World) SetTuning(t *prefabs.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("game: set tuning: %w", err)
	}
	catalog, err := entity.NewCatalogFromTuning(t)
	if err != nil {
		return fmt.Errorf("game: set tuning: %w", err)
	}
	w.tuning = t
	w.catalog = catalog
	w.logger.Info("tuning reloaded", "power_ups", catalog.Len())
	return nil
}

func (w *World) Tuning() *prefabs.Tuning { return w.tuning }

func (w *World) Physics() physics.World { return w.physics }

func (w *World) Scheduler() *ecs.Scheduler { return w.scheduler }

func (w *World) Events() *ecs.EventQueue[Event] { return &w.events }

func (w *World) Rand() *rand.Rand { return w.rng }

func (w *World) Logger() *log.Logger { return w.logger }

// Ticks returns how many times Update has run.
func (w *World) Ticks() uint64 { return w.ticks }

// Dt is the fixed step length in seconds.
func (w *World) Dt() float64 {
	return 1 / float64(w.tuning.World.TickRate)
}

// TaskErrors returns and clears the deferred-task failures seen so far.
func (w *World) TaskErrors() []error {
	out := w.taskErrors
	w.taskErrors = nil
	return out
}

func (w *World) reportTaskError(err error) {
	w.logger.Error("deferred task failed", "error", err)
	w.taskErrors = append(w.taskErrors, err)
	if w.onTaskError != nil {
		w.onTaskError(err)
	}
}

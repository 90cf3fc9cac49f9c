// Package physicstest provides a deterministic in-memory physics.World. Bodies
// integrate velocity only; contacts are injected by tests with Emit.
package physicstest

import (
	"fmt"

	"github.com/milk9111/asteroidminer/physics"
)

type World struct {
	Gravity physics.Vec

	nextID   physics.BodyID
	bodies   map[physics.BodyID]*Body
	order    []physics.BodyID
	listener physics.ContactListener
	locked   bool

	Created   int
	Destroyed int
}

func NewWorld() *World {
	return &World{bodies: make(map[physics.BodyID]*Body)}
}

func (w *World) CreateBody(def physics.BodyDef, fixtures ...physics.FixtureDef) (physics.Body, error) {
	if w.locked {
		return nil, physics.ErrWorldLocked
	}
	if err := physics.ValidateFixtures(fixtures); err != nil {
		return nil, fmt.Errorf("physicstest: create body: %w", err)
	}
	w.nextID++
	b := &Body{
		world: w,
		id:    w.nextID,
		def:   def,
		pos:   def.Position,
		angle: def.Angle,
		vel:   def.LinearVelocity,
	}
	for _, fd := range fixtures {
		b.fixtures = append(b.fixtures, &Fixture{body: b, def: fd})
	}
	b.ResetMassData()
	w.bodies[b.id] = b
	w.order = append(w.order, b.id)
	w.Created++
	return b, nil
}

func (w *World) DestroyBody(pb physics.Body) error {
	if w.locked {
		return physics.ErrWorldLocked
	}
	if pb == nil {
		return physics.ErrUnknownBody
	}
	if _, ok := w.bodies[pb.ID()]; !ok {
		return physics.ErrUnknownBody
	}
	delete(w.bodies, pb.ID())
	for i, id := range w.order {
		if id == pb.ID() {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.Destroyed++
	return nil
}

// Step advances dynamic and kinematic bodies by their velocity.
func (w *World) Step(dt float64) {
	w.locked = true
	defer func() { w.locked = false }()
	for _, id := range w.order {
		b := w.bodies[id]
		switch b.def.Type {
		case physics.DynamicBody:
			b.vel = b.vel.Add(w.Gravity.Scale(b.def.GravityScale * dt))
			if b.mass > 0 {
				b.vel = b.vel.Add(b.force.Scale(dt / b.mass))
			}
			b.pos = b.pos.Add(b.vel.Scale(dt))
		case physics.KinematicBody:
			b.pos = b.pos.Add(b.vel.Scale(dt))
		}
		b.angle += b.angVel * dt
		b.force = physics.Vec{}
	}
}

func (w *World) SetContactListener(l physics.ContactListener) {
	w.listener = l
}

func (w *World) Locked() bool {
	return w.locked
}

func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Body returns the live body with the given id.
func (w *World) Body(id physics.BodyID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Emit delivers a begin contact between two bodies to the listener while the
// world is locked, the way an engine does from inside Step.
func (w *World) Emit(a, b physics.Body) {
	w.dispatch(a, b, true)
}

// EmitEnd delivers an end contact.
func (w *World) EmitEnd(a, b physics.Body) {
	w.dispatch(a, b, false)
}

func (w *World) dispatch(a, b physics.Body, begin bool) {
	if w.listener == nil {
		return
	}
	c := physics.Contact{A: a.ID(), B: b.ID(), SensorA: anySensor(a), SensorB: anySensor(b)}
	prev := w.locked
	w.locked = true
	defer func() { w.locked = prev }()
	if begin {
		w.listener.BeginContact(c)
	} else {
		w.listener.EndContact(c)
	}
}

func anySensor(b physics.Body) bool {
	for _, f := range b.Fixtures() {
		if f.Sensor() {
			return true
		}
	}
	return false
}

type Body struct {
	world    *World
	id       physics.BodyID
	def      physics.BodyDef
	pos      physics.Vec
	angle    float64
	vel      physics.Vec
	angVel   float64
	force    physics.Vec
	mass     float64
	fixtures []*Fixture

	// MassResets counts ResetMassData calls.
	MassResets int
}

func (b *Body) ID() physics.BodyID { return b.id }
func (b *Body) Type() physics.BodyType { return b.def.Type }
func (b *Body) Def() physics.BodyDef { return b.def }
func (b *Body) Position() physics.Vec { return b.pos }
func (b *Body) SetPosition(p physics.Vec) { b.pos = p }
func (b *Body) Angle() float64 { return b.angle }
func (b *Body) SetAngle(a float64) { b.angle = a }
func (b *Body) LinearVelocity() physics.Vec { return b.vel }
func (b *Body) SetLinearVelocity(v physics.Vec) { b.vel = v }
func (b *Body) SetAngularVelocity(w float64) { b.angVel = w }
func (b *Body) ApplyForce(f physics.Vec) { b.force = b.force.Add(f) }
func (b *Body) Mass() float64 { return b.mass }
func (b *Body) World() physics.World { return b.world }

func (b *Body) Fixtures() []physics.Fixture {
	out := make([]physics.Fixture, 0, len(b.fixtures))
	for _, f := range b.fixtures {
		out = append(out, f)
	}
	return out
}

func (b *Body) ResetMassData() {
	b.MassResets++
	if b.def.Type != physics.DynamicBody {
		b.mass = 0
		return
	}
	m := 0.0
	for _, f := range b.fixtures {
		m += f.def.Density * f.def.Shape.Area()
	}
	b.mass = m
}

type Fixture struct {
	body *Body
	def  physics.FixtureDef
}

func (f *Fixture) Kind() physics.ShapeKind { return f.def.Shape.Kind }
func (f *Fixture) Sensor() bool { return f.def.Sensor }
func (f *Fixture) Density() float64 { return f.def.Density }
func (f *Fixture) Def() physics.FixtureDef { return f.def }

func (f *Fixture) Radius() float64 {
	if f.def.Shape.Kind != physics.ShapeCircle {
		return 0
	}
	return f.def.Shape.Radius
}

func (f *Fixture) SetRadius(r float64) error {
	if f.def.Shape.Kind != physics.ShapeCircle {
		return fmt.Errorf("%w: set radius on box", physics.ErrInvalidShape)
	}
	if err := physics.Circle(r).Validate(); err != nil {
		return err
	}
	f.def.Shape.Radius = r
	return nil
}

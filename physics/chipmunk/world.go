// Package chipmunk implements physics.World on top of Chipmunk2D
// (github.com/jakecoffman/cp).
package chipmunk

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/asteroidminer/physics"
)

// Every shape shares one collision type so a single handler sees all pairs.
const collisionTypeEntity cp.CollisionType = 1

const defaultIterations = 10

type Options struct {
	Gravity    physics.Vec
	Iterations int
}

// World owns the Chipmunk space and maps shapes back to body handles.
type World struct {
	space    *cp.Space
	nextID   physics.BodyID
	bodies   map[physics.BodyID]*Body
	shapes   map[*cp.Shape]*Fixture
	listener physics.ContactListener
	stepping bool
}

func NewWorld(opts Options) *World {
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}
	space := cp.NewSpace()
	space.Iterations = uint(iterations)
	space.SetGravity(toVector(opts.Gravity))

	w := &World{
		space:  space,
		bodies: make(map[physics.BodyID]*Body),
		shapes: make(map[*cp.Shape]*Fixture),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) CreateBody(def physics.BodyDef, fixtures ...physics.FixtureDef) (physics.Body, error) {
	if w.stepping {
		return nil, physics.ErrWorldLocked
	}
	if err := physics.ValidateFixtures(fixtures); err != nil {
		return nil, fmt.Errorf("chipmunk: create body: %w", err)
	}
	if def.Type == physics.DynamicBody && fixtureMass(fixtures) <= 0 {
		return nil, fmt.Errorf("chipmunk: create body: %w: dynamic body without mass", physics.ErrInvalidShape)
	}

	var cb *cp.Body
	switch def.Type {
	case physics.StaticBody:
		cb = cp.NewStaticBody()
	case physics.KinematicBody:
		cb = cp.NewKinematicBody()
	default:
		cb = cp.NewBody(0, 0)
	}
	cb.SetPosition(toVector(def.Position))
	cb.SetAngle(def.Angle)
	if def.Type != physics.StaticBody {
		cb.SetVelocityVector(toVector(def.LinearVelocity))
	}
	if def.Type == physics.DynamicBody && def.GravityScale != 1 {
		scale := def.GravityScale
		cb.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, gravity.Mult(scale), damping, dt)
		})
	}

	w.space.AddBody(cb)

	w.nextID++
	b := &Body{world: w, id: w.nextID, def: def, body: cb}
	cb.UserData = b.id

	for _, fd := range fixtures {
		var shape *cp.Shape
		switch fd.Shape.Kind {
		case physics.ShapeCircle:
			shape = cp.NewCircle(cb, fd.Shape.Radius, cp.Vector{})
		default:
			shape = cp.NewBox(cb, fd.Shape.HalfWidth*2, fd.Shape.HalfHeight*2, 0)
		}
		shape.SetFriction(fd.Friction)
		shape.SetElasticity(fd.Restitution)
		shape.SetSensor(fd.Sensor)
		shape.SetCollisionType(collisionTypeEntity)
		w.space.AddShape(shape)

		f := &Fixture{body: b, shape: shape, def: fd}
		b.fixtures = append(b.fixtures, f)
		w.shapes[shape] = f
	}
	b.ResetMassData()

	w.bodies[b.id] = b
	return b, nil
}

func (w *World) DestroyBody(pb physics.Body) error {
	if w.stepping {
		return physics.ErrWorldLocked
	}
	if pb == nil {
		return physics.ErrUnknownBody
	}
	b, ok := w.bodies[pb.ID()]
	if !ok {
		return physics.ErrUnknownBody
	}
	for _, f := range b.fixtures {
		w.space.RemoveShape(f.shape)
		delete(w.shapes, f.shape)
	}
	w.space.RemoveBody(b.body)
	delete(w.bodies, b.id)
	return nil
}

// Step advances the simulation. Contact callbacks run inside this call.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.stepping = true
	defer func() { w.stepping = false }()
	w.space.Step(dt)
}

func (w *World) SetContactListener(l physics.ContactListener) {
	w.listener = l
}

func (w *World) Locked() bool {
	return w.stepping
}

func (w *World) BodyCount() int {
	return len(w.bodies)
}

func (w *World) setupHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeEntity, collisionTypeEntity)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		if c, ok := world.contact(arb); ok && world.listener != nil {
			world.listener.BeginContact(c)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		if c, ok := world.contact(arb); ok && world.listener != nil {
			world.listener.EndContact(c)
		}
	}
}

func (w *World) contact(arb *cp.Arbiter) (physics.Contact, bool) {
	shapeA, shapeB := arb.Shapes()
	fa, okA := w.shapes[shapeA]
	fb, okB := w.shapes[shapeB]
	if !okA || !okB {
		return physics.Contact{}, false
	}
	return physics.Contact{
		A:       fa.body.id,
		B:       fb.body.id,
		SensorA: fa.def.Sensor,
		SensorB: fb.def.Sensor,
	}, true
}

func fixtureMass(fixtures []physics.FixtureDef) float64 {
	m := 0.0
	for _, f := range fixtures {
		m += f.Density * f.Shape.Area()
	}
	return m
}

type Body struct {
	world    *World
	id       physics.BodyID
	def      physics.BodyDef
	body     *cp.Body
	fixtures []*Fixture
}

func (b *Body) ID() physics.BodyID { return b.id }

func (b *Body) Type() physics.BodyType { return b.def.Type }

func (b *Body) Position() physics.Vec { return fromVector(b.body.Position()) }

func (b *Body) SetPosition(p physics.Vec) { b.body.SetPosition(toVector(p)) }

func (b *Body) Angle() float64 { return b.body.Angle() }

func (b *Body) LinearVelocity() physics.Vec { return fromVector(b.body.Velocity()) }

func (b *Body) SetLinearVelocity(v physics.Vec) { b.body.SetVelocityVector(toVector(v)) }

func (b *Body) SetAngularVelocity(w float64) { b.body.SetAngularVelocity(w) }

func (b *Body) ApplyForce(f physics.Vec) {
	b.body.ApplyForceAtWorldPoint(toVector(f), b.body.Position())
}

func (b *Body) Mass() float64 {
	if b.def.Type != physics.DynamicBody {
		return 0
	}
	return b.body.Mass()
}

func (b *Body) World() physics.World { return b.world }

// CP exposes the Chipmunk body.
func (b *Body) CP() *cp.Body { return b.body }

func (b *Body) Fixtures() []physics.Fixture {
	out := make([]physics.Fixture, 0, len(b.fixtures))
	for _, f := range b.fixtures {
		out = append(out, f)
	}
	return out
}

// ResetMassData sets every fixture's mass from density times current area and
// lets Chipmunk accumulate body mass and moment from them.
func (b *Body) ResetMassData() {
	if b.def.Type != physics.DynamicBody {
		return
	}
	for _, f := range b.fixtures {
		if f.def.Density <= 0 {
			continue
		}
		f.shape.SetMass(f.def.Density * f.def.Shape.Area())
	}
	b.body.AccumulateMassFromShapes()
	if b.def.FixedRotation {
		b.body.SetMoment(math.Inf(1))
	}
}

type Fixture struct {
	body  *Body
	shape *cp.Shape
	def   physics.FixtureDef
}

func (f *Fixture) Kind() physics.ShapeKind { return f.def.Shape.Kind }

func (f *Fixture) Sensor() bool { return f.def.Sensor }

func (f *Fixture) Density() float64 { return f.def.Density }

func (f *Fixture) Radius() float64 {
	circle, ok := f.shape.Class.(*cp.Circle)
	if !ok {
		return 0
	}
	return circle.Radius()
}

// SetRadius resizes a circle fixture in place. Body mass is left alone until
// ResetMassData.
func (f *Fixture) SetRadius(r float64) error {
	circle, ok := f.shape.Class.(*cp.Circle)
	if !ok {
		return fmt.Errorf("%w: set radius on non-circle", physics.ErrInvalidShape)
	}
	if err := physics.Circle(r).Validate(); err != nil {
		return err
	}
	circle.SetRadius(r)
	f.def.Shape.Radius = r
	return nil
}

func toVector(v physics.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVector(v cp.Vector) physics.Vec {
	return physics.Vec{X: v.X, Y: v.Y}
}

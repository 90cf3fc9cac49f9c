package chipmunk

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/asteroidminer/physics"
)

const step = 1.0 / 60.0

type recordingListener struct {
	world     *World
	begins    []physics.Contact
	ends      []physics.Contact
	createErr error
}

func (l *recordingListener) BeginContact(c physics.Contact) {
	l.begins = append(l.begins, c)
	if l.world != nil {
		_, l.createErr = l.world.CreateBody(
			physics.BodyDef{Type: physics.KinematicBody},
			physics.FixtureDef{Shape: physics.Circle(1), Sensor: true},
		)
	}
}

func (l *recordingListener) EndContact(c physics.Contact) {
	l.ends = append(l.ends, c)
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestKinematicBodyIgnoresGravity(t *testing.T) {
	w := NewWorld(Options{Gravity: physics.Vec{Y: -10}})
	b, err := w.CreateBody(
		physics.BodyDef{Type: physics.KinematicBody, LinearVelocity: physics.Vec{Y: 5}, FixedRotation: true},
		physics.FixtureDef{Shape: physics.Box(0.2, 0.8), Sensor: true},
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 60; i++ {
		w.Step(step)
	}
	pos := b.Position()
	if !near(pos.X, 0) || !near(pos.Y, 5) {
		t.Fatalf("expected kinematic body at (0,5), got %+v", pos)
	}
	if v := b.LinearVelocity(); !near(v.Y, 5) {
		t.Fatalf("velocity changed to %+v", v)
	}
}

func TestGravityScale(t *testing.T) {
	cases := []struct {
		name  string
		scale float64
		falls bool
	}{
		{"disabled", 0, false},
		{"scaled", 0.1, true},
		{"full", 1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(Options{Gravity: physics.Vec{Y: -10}})
			b, err := w.CreateBody(
				physics.BodyDef{Type: physics.DynamicBody, GravityScale: c.scale},
				physics.FixtureDef{Shape: physics.Circle(1), Density: 1},
			)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			for i := 0; i < 30; i++ {
				w.Step(step)
			}
			fell := b.Position().Y < -1e-9
			if fell != c.falls {
				t.Fatalf("scale %v: fell=%v, want %v (y=%v)", c.scale, fell, c.falls, b.Position().Y)
			}
		})
	}
}

func TestCircleRadiusAndMassReset(t *testing.T) {
	w := NewWorld(Options{})
	b, err := w.CreateBody(
		physics.BodyDef{Type: physics.DynamicBody},
		physics.FixtureDef{Shape: physics.Circle(2), Density: 1},
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !near(b.Mass(), 4*math.Pi) {
		t.Fatalf("initial mass %v, want %v", b.Mass(), 4*math.Pi)
	}

	f := b.Fixtures()[0]
	if err := f.SetRadius(1); err != nil {
		t.Fatalf("set radius: %v", err)
	}
	if f.Radius() != 1 {
		t.Fatalf("radius %v, want 1", f.Radius())
	}
	b.ResetMassData()
	if !near(b.Mass(), math.Pi) {
		t.Fatalf("mass after reset %v, want %v", b.Mass(), math.Pi)
	}

	if err := f.SetRadius(0); !errors.Is(err, physics.ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape for zero radius, got %v", err)
	}
	if f.Radius() != 1 {
		t.Fatalf("rejected radius changed shape to %v", f.Radius())
	}
}

func TestCreateBodyRejectsInvalidShapes(t *testing.T) {
	cases := []struct {
		name string
		def  physics.BodyDef
		fix  []physics.FixtureDef
		want error
	}{
		{"no_fixtures", physics.BodyDef{Type: physics.DynamicBody}, nil, physics.ErrNoFixtures},
		{"zero_radius", physics.BodyDef{Type: physics.DynamicBody}, []physics.FixtureDef{{Shape: physics.Circle(0), Density: 1}}, physics.ErrInvalidShape},
		{"negative_radius", physics.BodyDef{Type: physics.KinematicBody}, []physics.FixtureDef{{Shape: physics.Circle(-1)}}, physics.ErrInvalidShape},
		{"flat_box", physics.BodyDef{Type: physics.KinematicBody}, []physics.FixtureDef{{Shape: physics.Box(1, 0)}}, physics.ErrInvalidShape},
		{"massless_dynamic", physics.BodyDef{Type: physics.DynamicBody}, []physics.FixtureDef{{Shape: physics.Circle(1)}}, physics.ErrInvalidShape},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(Options{})
			_, err := w.CreateBody(c.def, c.fix...)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if w.BodyCount() != 0 {
				t.Fatalf("failed create left %d bodies", w.BodyCount())
			}
		})
	}
}

func TestContactsAndLockedWorld(t *testing.T) {
	w := NewWorld(Options{})
	l := &recordingListener{world: w}
	w.SetContactListener(l)

	rock, err := w.CreateBody(
		physics.BodyDef{Type: physics.DynamicBody, GravityScale: 0},
		physics.FixtureDef{Shape: physics.Circle(1), Density: 1},
	)
	if err != nil {
		t.Fatalf("create rock: %v", err)
	}
	beam, err := w.CreateBody(
		physics.BodyDef{Type: physics.KinematicBody, Position: physics.Vec{Y: 0.5}},
		physics.FixtureDef{Shape: physics.Box(0.2, 0.5), Sensor: true},
	)
	if err != nil {
		t.Fatalf("create beam: %v", err)
	}

	w.Step(step)

	if len(l.begins) == 0 {
		t.Fatal("expected a begin contact")
	}
	c := l.begins[0]
	ids := map[physics.BodyID]bool{c.A: true, c.B: true}
	if !ids[rock.ID()] || !ids[beam.ID()] {
		t.Fatalf("contact %+v does not reference both bodies", c)
	}
	if c.SensorA == c.SensorB {
		t.Fatalf("exactly one side should be a sensor: %+v", c)
	}
	if !errors.Is(l.createErr, physics.ErrWorldLocked) {
		t.Fatalf("create inside callback: expected ErrWorldLocked, got %v", l.createErr)
	}
	if w.Locked() {
		t.Fatal("world still locked after Step")
	}
	if w.BodyCount() != 2 {
		t.Fatalf("expected 2 bodies, got %d", w.BodyCount())
	}
}

func TestDestroyBody(t *testing.T) {
	w := NewWorld(Options{})
	b, err := w.CreateBody(
		physics.BodyDef{Type: physics.KinematicBody},
		physics.FixtureDef{Shape: physics.Circle(1), Sensor: true},
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := w.DestroyBody(b); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if w.BodyCount() != 0 {
		t.Fatalf("expected empty world, got %d", w.BodyCount())
	}
	if err := w.DestroyBody(b); !errors.Is(err, physics.ErrUnknownBody) {
		t.Fatalf("double destroy: expected ErrUnknownBody, got %v", err)
	}
}

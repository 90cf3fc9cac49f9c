package entity

import (
	"testing"

	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/physics/physicstest"
	"github.com/milk9111/asteroidminer/render"
)

func TestSpaceShipSetShieldClamps(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{40, 40},
		{100, 100},
		{250, 100},
	}
	for _, c := range cases {
		ship := newTestShip(t, physicstest.NewWorld(), physics.Vec{})
		ship.SetShield(c.in)
		if ship.Shield() != c.want {
			t.Fatalf("SetShield(%d) = %d, want %d", c.in, ship.Shield(), c.want)
		}
	}
}

func TestSpaceShipHit(t *testing.T) {
	cases := []struct {
		name       string
		shield     int
		damage     int
		wantShield int
		wantHealth int
	}{
		{"no_shield", 0, 30, 0, 70},
		{"shield_absorbs", 50, 30, 20, 100},
		{"shield_breaks", 20, 30, 0, 90},
		{"lethal", 0, 500, 0, 0},
		{"negative_ignored", 10, -5, 10, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ship := newTestShip(t, physicstest.NewWorld(), physics.Vec{})
			ship.SetShield(c.shield)
			ship.Hit(c.damage)
			if ship.Shield() != c.wantShield || ship.Health() != c.wantHealth {
				t.Fatalf("shield/health %d/%d, want %d/%d", ship.Shield(), ship.Health(), c.wantShield, c.wantHealth)
			}
			if ship.IsRemoved() != (c.wantHealth == 0) {
				t.Fatalf("IsRemoved %v at health %d", ship.IsRemoved(), ship.Health())
			}
		})
	}
}

func TestSpaceShipFireCooldown(t *testing.T) {
	tuning := loadTuning(t)
	w := physicstest.NewWorld()
	ship := newTestShip(t, w, physics.Vec{})

	if !ship.CanFire() {
		t.Fatal("fresh ship cannot fire")
	}
	if _, err := ship.Fire(w, tuning); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if ship.CanFire() {
		t.Fatal("ship can fire during cooldown")
	}
	for i := 0; i < tuning.Laser.CooldownTicks; i++ {
		ship.Update(1.0 / 60)
	}
	if !ship.CanFire() {
		t.Fatal("cooldown did not expire")
	}
}

func TestSpaceShipSteer(t *testing.T) {
	tuning := loadTuning(t)
	w := physicstest.NewWorld()
	ship := newTestShip(t, w, physics.Vec{})
	ship.SetControls(Controls{Thrust: 5, Turn: -3})

	if c := ship.Controls(); c.Thrust != 1 || c.Turn != -1 {
		t.Fatalf("controls not clamped: %+v", c)
	}
	ship.Steer()
	w.Step(1)

	body, _ := w.Body(ship.Body().ID())
	if body.Angle() != -tuning.Ship.TurnRate {
		t.Fatalf("angle %v, want %v", body.Angle(), -tuning.Ship.TurnRate)
	}
	if v := body.LinearVelocity(); v.Y <= 0 || v.X != 0 {
		t.Fatalf("thrust at angle 0 should push along +y, got %+v", v)
	}
}

func TestSpaceShipRender(t *testing.T) {
	ship := newTestShip(t, physicstest.NewWorld(), physics.Vec{})
	rec := &render.Recorder{}
	ship.Render(rec)
	if rec.Count(render.SpriteSpaceship) != 1 {
		t.Fatalf("expected ship sprite, got %+v", rec.Sprites)
	}
	if len(rec.Rects) != 1 {
		t.Fatalf("expected only the health bar without shield, got %d rects", len(rec.Rects))
	}
	ship.SetShield(10)
	rec.Reset()
	ship.Render(rec)
	if len(rec.Rects) != 2 {
		t.Fatalf("expected shield and health bars, got %d rects", len(rec.Rects))
	}
}

func TestPlayerStats(t *testing.T) {
	ship := newTestShip(t, physicstest.NewWorld(), physics.Vec{})
	p := NewPlayer(ship)
	p.CreditAsteroid(10)
	p.CreditAsteroid(5)
	p.CreditPickUp()
	if p.Score() != 15 || p.AsteroidsDestroyed() != 2 || p.PickUps() != 1 {
		t.Fatalf("stats %d/%d/%d", p.Score(), p.AsteroidsDestroyed(), p.PickUps())
	}
	if !p.Alive() {
		t.Fatal("player with live ship reported dead")
	}
	ship.Hit(1000)
	if p.Alive() {
		t.Fatal("player with destroyed ship reported alive")
	}
}

package entity

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/prefabs"
)

// Script is a compiled pickup effect. It reads and writes the globals
// shield, max_shield, health and max_health.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

func CompileScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("shield", 0)
	_ = script.Add("max_shield", 0)
	_ = script.Add("health", 0)
	_ = script.Add("max_health", 0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("entity: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

// Apply runs the script against ship and writes the results back, clamped.
func (s *Script) Apply(ship *SpaceShip) error {
	if ship == nil {
		return nil
	}
	c := s.compiled.Clone()
	vars := map[string]int{
		"shield":     ship.Shield(),
		"max_shield": ship.MaxShield(),
		"health":     ship.Health(),
		"max_health": ship.MaxHealth(),
	}
	for name, v := range vars {
		if err := c.Set(name, v); err != nil {
			return fmt.Errorf("entity: script %s: set %s: %w", s.name, name, err)
		}
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("entity: script %s: %w", s.name, err)
	}
	ship.SetHealth(c.Get("health").Int())
	ship.SetShield(c.Get("shield").Int())
	return nil
}

// ScriptedPowerUp applies a tengo script to the collecting ship.
type ScriptedPowerUp struct {
	powerUp
	script *Script
}

func NewScriptedPowerUp(world physics.World, t *prefabs.Tuning, spec prefabs.PowerUpSpec, script *Script, at, velocity physics.Vec) (*ScriptedPowerUp, error) {
	if script == nil {
		return nil, fmt.Errorf("entity: new scripted power-up %q: nil script", spec.Name)
	}
	p, err := newPowerUp(world, spec, t.Sprite(spec.Sprite), at, velocity)
	if err != nil {
		return nil, err
	}
	return &ScriptedPowerUp{powerUp: p, script: script}, nil
}

func (s *ScriptedPowerUp) OnPickUp(p *Player) error {
	if p == nil {
		return nil
	}
	return s.script.Apply(p.SpaceShip())
}

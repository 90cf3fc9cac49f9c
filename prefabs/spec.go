package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// DefaultTuning is the tuning file shipped with the game.
const DefaultTuning = "tuning.yaml"

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

const (
	PowerUpShield = "shield"
	PowerUpScript = "script"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Tuning holds every gameplay constant that is not part of the rules
// themselves.
type Tuning struct {
	World    WorldSpec             `yaml:"world"`
	Sprites  map[string]SpriteSpec `yaml:"sprites"`
	Asteroid AsteroidSpec          `yaml:"asteroid"`
	Laser    LaserSpec             `yaml:"laser"`
	Ship     ShipSpec              `yaml:"ship"`
	PowerUps []PowerUpSpec         `yaml:"power_ups"`
}

type WorldSpec struct {
	// Size is the half extent of the playfield in physics units.
	Size         float64 `yaml:"size"`
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	GravityX     float64 `yaml:"gravity_x"`
	GravityY     float64 `yaml:"gravity_y"`
	TickRate     int     `yaml:"tick_rate"`
	Iterations   int     `yaml:"iterations"`
}

// SpriteSpec sizes are in pixels.
type SpriteSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

type AsteroidSpec struct {
	MaxHealth          int     `yaml:"max_health"`
	MinRadius          float64 `yaml:"min_radius"`
	PowerUpSpawnChance float64 `yaml:"power_up_spawn_chance"`
	Density            float64 `yaml:"density"`
	Restitution        float64 `yaml:"restitution"`
	GravityScale       float64 `yaml:"gravity_scale"`
	SpawnIntervalTicks int     `yaml:"spawn_interval_ticks"`
	MaxCount           int     `yaml:"max_count"`
	RadiusMin          float64 `yaml:"radius_min"`
	RadiusMax          float64 `yaml:"radius_max"`
	SpeedMax           float64 `yaml:"speed_max"`
	ContactDamage      int     `yaml:"contact_damage"`
}

type LaserSpec struct {
	Speed         float64 `yaml:"speed"`
	Damage        int     `yaml:"damage"`
	CooldownTicks int     `yaml:"cooldown_ticks"`
}

type ShipSpec struct {
	MaxHealth int     `yaml:"max_health"`
	MaxShield int     `yaml:"max_shield"`
	Thrust    float64 `yaml:"thrust"`
	TurnRate  float64 `yaml:"turn_rate"`
	Density   float64 `yaml:"density"`
	Radius    float64 `yaml:"radius"`
}

type PowerUpSpec struct {
	Name          string  `yaml:"name"`
	Kind          string  `yaml:"kind"`
	DropFrequency float64 `yaml:"drop_frequency"`
	Amount        int     `yaml:"amount"`
	Script        string  `yaml:"script"`
	Sprite        string  `yaml:"sprite"`
}

// LoadTuning reads and validates a tuning file.
func LoadTuning(name string) (*Tuning, error) {
	if name == "" {
		name = DefaultTuning
	}
	spec, err := LoadSpec[Tuning](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// Sprite returns the named sprite, or a zero spec when it is missing.
func (t *Tuning) Sprite(name string) SpriteSpec {
	if t == nil {
		return SpriteSpec{}
	}
	return t.Sprites[name]
}

func (t *Tuning) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil tuning", ErrInvalidTuning)
	}
	w := t.World
	if w.Size <= 0 || w.ScreenWidth <= 0 || w.ScreenHeight <= 0 || w.TickRate <= 0 {
		return fmt.Errorf("%w: world sizes and tick rate must be positive", ErrInvalidTuning)
	}
	for name, s := range t.Sprites {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: sprite %q has non-positive size", ErrInvalidTuning, name)
		}
	}

	a := t.Asteroid
	switch {
	case a.MaxHealth <= 0:
		return fmt.Errorf("%w: asteroid max_health %d", ErrInvalidTuning, a.MaxHealth)
	case a.MinRadius <= 0:
		return fmt.Errorf("%w: asteroid min_radius %v", ErrInvalidTuning, a.MinRadius)
	case a.PowerUpSpawnChance < 0 || a.PowerUpSpawnChance > 1:
		return fmt.Errorf("%w: asteroid power_up_spawn_chance %v outside [0,1]", ErrInvalidTuning, a.PowerUpSpawnChance)
	case a.Density <= 0:
		return fmt.Errorf("%w: asteroid density %v", ErrInvalidTuning, a.Density)
	case a.RadiusMin <= 0 || a.RadiusMax < a.RadiusMin:
		return fmt.Errorf("%w: asteroid radius range [%v,%v]", ErrInvalidTuning, a.RadiusMin, a.RadiusMax)
	case a.MaxCount < 0 || a.SpawnIntervalTicks < 0:
		return fmt.Errorf("%w: asteroid spawn settings", ErrInvalidTuning)
	}

	if t.Laser.Speed <= 0 {
		return fmt.Errorf("%w: laser speed %v", ErrInvalidTuning, t.Laser.Speed)
	}

	s := t.Ship
	if s.MaxHealth <= 0 || s.MaxShield < 0 || s.Density <= 0 || s.Radius <= 0 {
		return fmt.Errorf("%w: ship health, density and radius must be positive", ErrInvalidTuning)
	}

	for _, p := range t.PowerUps {
		if p.DropFrequency < 0 {
			return fmt.Errorf("%w: power-up %q has negative drop_frequency", ErrInvalidTuning, p.Name)
		}
		if _, ok := t.Sprites[p.Sprite]; !ok {
			return fmt.Errorf("%w: power-up %q uses unknown sprite %q", ErrInvalidTuning, p.Name, p.Sprite)
		}
		switch p.Kind {
		case PowerUpShield:
		case PowerUpScript:
			if p.Script == "" {
				return fmt.Errorf("%w: power-up %q needs a script", ErrInvalidTuning, p.Name)
			}
		default:
			return fmt.Errorf("%w: power-up %q has unknown kind %q", ErrInvalidTuning, p.Name, p.Kind)
		}
	}
	return nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if !strings.HasPrefix(value.Value, "#") {
		named, ok := colornames.Map[strings.ToLower(value.Value)]
		if !ok {
			return fmt.Errorf("unknown color name: %s", value.Value)
		}
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

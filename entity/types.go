package entity

// Type tags every object so collision dispatch can switch on it.
type Type int

const (
	TypeLaser Type = iota
	TypeAsteroid
	TypePowerUp
	TypeSpaceShip
)

func (t Type) String() string {
	switch t {
	case TypeLaser:
		return "laser"
	case TypeAsteroid:
		return "asteroid"
	case TypePowerUp:
		return "powerup"
	case TypeSpaceShip:
		return "spaceship"
	default:
		return "unknown"
	}
}

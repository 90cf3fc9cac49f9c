package entity

// Player owns the controlled ship and the run's statistics.
type Player struct {
	ship *SpaceShip

	score     int
	destroyed int
	pickups   int
}

func NewPlayer(ship *SpaceShip) *Player {
	return &Player{ship: ship}
}

func (p *Player) SpaceShip() *SpaceShip { return p.ship }

func (p *Player) SetSpaceShip(s *SpaceShip) { p.ship = s }

func (p *Player) Score() int { return p.score }

func (p *Player) AsteroidsDestroyed() int { return p.destroyed }

func (p *Player) PickUps() int { return p.pickups }

// CreditAsteroid records a destroyed asteroid worth points.
func (p *Player) CreditAsteroid(points int) {
	p.destroyed++
	p.score += points
}

func (p *Player) CreditPickUp() {
	p.pickups++
}

// Alive reports whether the player still has a ship.
func (p *Player) Alive() bool {
	return p.ship != nil && !p.ship.IsRemoved()
}

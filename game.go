package main

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/asteroidminer/common"
	"github.com/milk9111/asteroidminer/entity"
	"github.com/milk9111/asteroidminer/game"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/physics/chipmunk"
	"github.com/milk9111/asteroidminer/prefabs"
	"github.com/milk9111/asteroidminer/render/ebitenbatch"
	"github.com/milk9111/asteroidminer/system"
	"golang.org/x/image/colornames"
)

type GameOptions struct {
	Seed   int64
	Tuning string
	Watch  bool
	Debug  bool
	Logger *log.Logger
}

// Game adapts a game.World to ebiten.
type Game struct {
	opts    GameOptions
	logger  *log.Logger
	tuning  *prefabs.Tuning
	atlas   *ebitenbatch.Atlas
	world   *game.World
	space   *chipmunk.World
	watcher *prefabs.Watcher
	session int64
}

func NewGame(opts GameOptions) (*Game, error) {
	tuning, err := prefabs.LoadTuning(opts.Tuning)
	if err != nil {
		return nil, err
	}
	g := &Game{
		opts:   opts,
		logger: opts.Logger,
		tuning: tuning,
		atlas:  ebitenbatch.NewAtlas(tuning.Sprites),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", prefabs.DefaultDebounce)
		if err != nil {
			g.logger.Warn("hot reload disabled", "error", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// restart builds a fresh world. Each restart uses the next seed so runs stay
// reproducible from the starting seed.
func (g *Game) restart() error {
	pw := chipmunk.NewWorld(chipmunk.Options{
		Gravity:    physics.Vec{X: g.tuning.World.GravityX, Y: g.tuning.World.GravityY},
		Iterations: g.tuning.World.Iterations,
	})
	w, err := game.NewWorld(pw, g.tuning, game.Options{
		Seed:   g.opts.Seed + g.session,
		Logger: g.logger,
	})
	if err != nil {
		return err
	}
	system.Install(w)
	if _, err := w.SpawnPlayer(physics.Vec{}); err != nil {
		return err
	}
	g.session++
	g.world = w
	g.space = pw
	return nil
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) ScreenSize() (int, int) {
	return g.tuning.World.ScreenWidth, g.tuning.World.ScreenHeight
}

func (g *Game) TickRate() int {
	return g.tuning.World.TickRate
}

func (g *Game) Update() error {
	g.pollReload()

	player := g.world.Player()
	if !player.Alive() {
		if restartPressed() {
			return g.restart()
		}
	} else {
		player.SpaceShip().SetControls(readControls())
	}

	g.world.Update()
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watch error", "error", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	tuning, err := prefabs.LoadTuning(g.opts.Tuning)
	if err != nil {
		g.logger.Error("reload failed", "file", change.Path, "error", err)
		return
	}
	if err := g.world.SetTuning(tuning); err != nil {
		g.logger.Error("reload failed", "file", change.Path, "error", err)
		return
	}
	g.tuning = tuning
	g.atlas = ebitenbatch.NewAtlas(tuning.Sprites)
	g.logger.Info("reloaded", "file", change.Path, "kind", change.Kind)
}

func (g *Game) Draw(screen *ebiten.Image) {
	batch := ebitenbatch.New(screen, g.atlas)
	player := g.world.Player()
	if player.SpaceShip() != nil {
		pos := player.SpaceShip().Body().Position()
		batch.CamX, batch.CamY = common.ToPixels(pos.X), common.ToPixels(pos.Y)
	}
	g.world.Render(batch)
	if g.opts.Debug {
		batch.DrawPhysics(g.space.Space(), g.debugColor)
	}

	ship := player.SpaceShip()
	hud := fmt.Sprintf("Score: %d    Asteroids: %d    Pickups: %d\nHull: %d/%d    Shield: %d/%d",
		player.Score(), player.AsteroidsDestroyed(), player.PickUps(),
		ship.Health(), ship.MaxHealth(), ship.Shield(), ship.MaxShield())
	if !player.Alive() {
		hud += "\n\nSHIP DESTROYED - press R to restart"
	}
	if g.opts.Debug {
		hud += fmt.Sprintf("\n\nTPS: %.1f  FPS: %.1f  objects: %d  bodies: %d  pending tasks: %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), g.world.Len(), g.world.Physics().BodyCount(), g.world.Scheduler().Pending())
	}
	ebitenutil.DebugPrint(screen, hud)
}

// debugColor tints physics outlines by the type of object that owns the shape.
func (g *Game) debugColor(shape *cp.Shape) color.Color {
	id, ok := shape.Body().UserData.(physics.BodyID)
	if !ok {
		return nil
	}
	o, ok := g.world.Lookup(id)
	if !ok {
		return nil
	}
	switch o.Type() {
	case entity.TypeLaser:
		return colornames.Orangered
	case entity.TypePowerUp:
		return colornames.Gold
	case entity.TypeSpaceShip:
		return colornames.Deepskyblue
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

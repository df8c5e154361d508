package env

import (
	"fmt"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/sprite"
)

// Planet is the camera-following environment: the ship snaps to face the
// mouse, the view stays centered on it, and a planet spins in place.
type Planet struct {
	*scene

	cam    *camera.Camera
	planet *sprite.Object
}

// NewPlanet creates the planet environment.
func NewPlanet(cfg *config.Config, deps Deps) (*Planet, error) {
	sc, err := newScene(NamePlanet, cfg, deps, sprite.HeadingSnap)
	if err != nil {
		return nil, err
	}

	pc := cfg.Planet
	planet, err := sprite.NewObject(deps.Assets, pc.X, pc.Y, pc.Sprite, sprite.ObjectOptions{
		Scale: pc.Scale,
		Angle: pc.Angle,
	})
	if err != nil {
		return nil, fmt.Errorf("creating planet: %w", err)
	}
	sc.addSpinner(planet, pc.SpinRate)

	p := &Planet{
		scene:  sc,
		cam:    camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height)),
		planet: planet,
	}
	p.follow()
	return p, nil
}

// Camera returns the view that follows the ship.
func (p *Planet) Camera() *camera.Camera { return p.cam }

// Planet returns the spinning planet object.
func (p *Planet) Planet() *sprite.Object { return p.planet }

func (p *Planet) follow() {
	p.cam.Follow(p.ship.Rect.Center())
}

// OnTick runs the ship against the offset the last frame was drawn with,
// then recenters the camera on where the ship ended up.
func (p *Planet) OnTick(dt float64) {
	offX, offY := p.cam.Offset()
	p.step(dt, offX, offY)
	p.follow()
}

// OnDraw draws the world shifted so the ship sits mid-screen.
func (p *Planet) OnDraw() {
	p.draw(p.cam.Offset())
}

// OnResize keeps the ship centered in the new window size.
func (p *Planet) OnResize(w, h int) {
	p.scene.OnResize(w, h)
	p.cam.Resize(float64(w), float64(h))
}

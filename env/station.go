package env

import (
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/sprite"
)

// Station is the fixed-camera environment: the ship turns toward the mouse
// a few degrees per frame and the view never moves.
type Station struct {
	*scene
}

// NewStation creates the station environment.
func NewStation(cfg *config.Config, deps Deps) (*Station, error) {
	sc, err := newScene(NameStation, cfg, deps, sprite.HeadingIncremental)
	if err != nil {
		return nil, err
	}
	return &Station{scene: sc}, nil
}

// OnTick runs the ship with no camera offset.
func (st *Station) OnTick(dt float64) {
	st.step(dt, 0, 0)
}

// OnDraw draws the world untranslated.
func (st *Station) OnDraw() {
	st.draw(0, 0)
}

// Package env builds the playable environments: a ship plus scenery objects
// kept in an ECS world, wired to the loop's frame callbacks.
package env

import (
	"errors"
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/sprite"
	"github.com/pthm-cable/drift/telemetry"
)

// Environment names accepted in config and on the command line.
const (
	NameStation = "station"
	NamePlanet  = "planet"
)

// ErrUnknownEnvironment is returned by New for a name it cannot build.
var ErrUnknownEnvironment = errors.New("unknown environment")

// Body is a scenery object drawn and updated by the environment.
type Body struct {
	Obj *sprite.Object
}

// Spin turns a body by Rate degrees every frame.
type Spin struct {
	Rate float64
}

// Status is the per-frame state shown by an Overlay.
type Status struct {
	Environment  string
	X, Y         float64
	Vel          float64
	Angle        float64
	Disabled     bool
	Health       int
	MaxHealth    int
	SelectedSlot int
	HotbarSlots  int
	DeltaTime    float64
	Width        int
	Height       int
}

// Overlay draws on top of the environment. Draw returns true when the user
// asked to disable the ship.
type Overlay interface {
	Draw(s Status) bool
	ToggleDebug()
}

// Deps are the capabilities an environment runs on.
type Deps struct {
	Assets  sprite.Source
	Input   sprite.Input
	Canvas  sprite.Canvas
	Clock   sprite.Clock // nil uses the system clock
	Overlay Overlay      // optional
}

// Environment is a playable scene driven by game.Loop.
type Environment interface {
	game.FrameCallbacks
	Name() string
	Ship() *sprite.Ship
	Summary() telemetry.RunSummary
}

// New builds the named environment from cfg.
func New(name string, cfg *config.Config, deps Deps) (Environment, error) {
	var (
		e   Environment
		err error
	)
	switch name {
	case NameStation:
		e, err = NewStation(cfg, deps)
	case NamePlanet:
		e, err = NewPlanet(cfg, deps)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ShipParams converts the configured ship tuning for the given heading policy.
func ShipParams(cfg *config.Config, heading sprite.HeadingPolicy) sprite.ShipParams {
	sc := cfg.Ship
	return sprite.ShipParams{
		Speed:                sc.Speed,
		Acceleration:         sc.Acceleration,
		DisabledAcceleration: sc.DisabledAcceleration,
		Decay:                sc.Decay,
		DisabledDecay:        sc.DisabledDecay,
		DisabledTime:         cfg.Derived.DisabledTime,
		RotationSpeed:        sc.RotationSpeed,
		Heading:              heading,
		Health:               sc.Health,
		HotbarSlots:          sc.HotbarSlots,
	}
}

// scene is the state shared by every environment: the ship, the ECS world
// holding scenery, and run bookkeeping for the summary.
type scene struct {
	game.NopCallbacks

	name    string
	ship    *sprite.Ship
	input   sprite.Input
	canvas  sprite.Canvas
	overlay Overlay

	world      *ecs.World
	spinMapper *ecs.Map2[Body, Spin]
	bodies     *ecs.Filter1[Body]
	spinners   *ecs.Filter2[Body, Spin]

	width, height int
	frames        int64
	distance      float64
	deltaTime     float64
}

func newScene(name string, cfg *config.Config, deps Deps, heading sprite.HeadingPolicy) (*scene, error) {
	ship, err := sprite.NewShip(
		deps.Assets,
		cfg.Ship.X, cfg.Ship.Y,
		cfg.Ship.Sprite,
		cfg.Ship.CorrectionAngle,
		ShipParams(cfg, heading),
		deps.Clock,
	)
	if err != nil {
		return nil, fmt.Errorf("creating ship: %w", err)
	}

	world := ecs.NewWorld()
	return &scene{
		name:       name,
		ship:       ship,
		input:      deps.Input,
		canvas:     deps.Canvas,
		overlay:    deps.Overlay,
		world:      world,
		spinMapper: ecs.NewMap2[Body, Spin](world),
		bodies:     ecs.NewFilter1[Body](world),
		spinners:   ecs.NewFilter2[Body, Spin](world),
		width:      cfg.Screen.Width,
		height:     cfg.Screen.Height,
	}, nil
}

// addSpinner places a scenery object that turns every frame.
func (s *scene) addSpinner(obj *sprite.Object, rate float64) ecs.Entity {
	return s.spinMapper.NewEntity(&Body{Obj: obj}, &Spin{Rate: rate})
}

func (s *scene) Name() string { return s.name }

func (s *scene) Ship() *sprite.Ship { return s.ship }

// Objects returns every scenery object in the world.
func (s *scene) Objects() []*sprite.Object {
	var objs []*sprite.Object
	query := s.bodies.Query()
	for query.Next() {
		body := query.Get()
		objs = append(objs, body.Obj)
	}
	return objs
}

// step runs the ship script and the scenery systems for one frame.
func (s *scene) step(dt, offX, offY float64) {
	s.deltaTime = dt
	s.ship.Script(s.input, offX, offY)
	s.distance += math.Hypot(s.ship.HrtVel, s.ship.VrtVel)
	s.spin()
	s.frames++
}

// spin advances every spinning body and re-derives its rotation.
func (s *scene) spin() {
	query := s.spinners.Query()
	for query.Next() {
		body, spin := query.Get()
		body.Obj.Angle += spin.Rate
		body.Obj.Rotate()
	}
}

// draw blits scenery then the ship, all shifted by the camera offset.
func (s *scene) draw(offX, offY float64) {
	query := s.bodies.Query()
	for query.Next() {
		body := query.Get()
		body.Obj.Display(s.canvas, offX, offY)
	}
	s.ship.Display(s.canvas, offX, offY)

	if s.overlay != nil && s.overlay.Draw(s.status()) {
		s.ship.Disable()
	}
}

func (s *scene) status() Status {
	return Status{
		Environment:  s.name,
		X:            s.ship.Rect.X,
		Y:            s.ship.Rect.Y,
		Vel:          s.ship.Vel,
		Angle:        s.ship.Angle,
		Disabled:     s.ship.Disabled(),
		Health:       s.ship.Health,
		MaxHealth:    s.ship.MaxHealth,
		SelectedSlot: s.ship.SelectedSlot,
		HotbarSlots:  s.ship.Params().HotbarSlots,
		DeltaTime:    s.deltaTime,
		Width:        s.width,
		Height:       s.height,
	}
}

// OnEvent selects hotbar slots from the digit keys and the mouse wheel.
func (s *scene) OnEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventKeyDown:
		if d, ok := ev.Key.Digit(); ok && d > 0 {
			s.ship.SelectSlot(d - 1)
		}
	case game.EventMouseWheel:
		if ev.Wheel > 0 {
			s.ship.CycleSlot(-1)
		} else if ev.Wheel < 0 {
			s.ship.CycleSlot(1)
		}
	}
}

// OnDebug toggles the overlay's debug panel.
func (s *scene) OnDebug() {
	if s.overlay != nil {
		s.overlay.ToggleDebug()
	}
}

func (s *scene) OnResize(w, h int) {
	s.width, s.height = w, h
}

// Summary reports the run so far.
func (s *scene) Summary() telemetry.RunSummary {
	return telemetry.RunSummary{
		Environment: s.name,
		Frames:      s.frames,
		Distance:    s.distance,
		FinalX:      s.ship.Rect.X,
		FinalY:      s.ship.Rect.Y,
		FinalVel:    s.ship.Vel,
		FinalAngle:  s.ship.Angle,
		Slot:        s.ship.SelectedSlot,
	}
}

// OnQuit releases the scenery's derived bitmaps and returns the run summary.
func (s *scene) OnQuit() any {
	query := s.bodies.Query()
	for query.Next() {
		body := query.Get()
		body.Obj.Pack()
	}
	return s.Summary()
}

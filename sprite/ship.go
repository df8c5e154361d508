package sprite

import (
	"math"
	"time"
)

// HeadingPolicy selects how the ship turns toward the mouse.
type HeadingPolicy int

const (
	// HeadingIncremental turns at most RotationSpeed degrees per frame.
	HeadingIncremental HeadingPolicy = iota
	// HeadingSnap faces the mouse immediately.
	HeadingSnap
)

// String returns the policy name used in config files.
func (p HeadingPolicy) String() string {
	switch p {
	case HeadingIncremental:
		return "incremental"
	case HeadingSnap:
		return "snap"
	default:
		return "unknown"
	}
}

// headingBasis turns the atan2 angle (0 = right) into the sprite's frame
// (0 = up).
const headingBasis = 90

// ShipParams holds the per-ship tuning. Every ship gets its own copy.
type ShipParams struct {
	Speed                float64       // Velocity cap in both directions
	Acceleration         float64       // Added per thrust frame
	DisabledAcceleration float64       // Added per thrust frame while disabled
	Decay                float64       // Removed per frame toward zero
	DisabledDecay        float64       // Removed per frame while disabled
	DisabledTime         time.Duration // How long Disable lasts
	RotationSpeed        float64       // Degrees per frame (incremental policy)
	Heading              HeadingPolicy
	Health               int
	HotbarSlots          int
}

// DefaultShipParams returns the stock ship tuning.
func DefaultShipParams() ShipParams {
	return ShipParams{
		Speed:                10,
		Acceleration:         1,
		DisabledAcceleration: 0.3,
		Decay:                0.5,
		DisabledDecay:        0.1,
		DisabledTime:         500 * time.Millisecond,
		RotationSpeed:        5,
		Heading:              HeadingIncremental,
		Health:               200,
		HotbarSlots:          9,
	}
}

// Ship is a mouse-steered sprite with thrust, velocity decay and a timed
// disabled state.
type Ship struct {
	*Object

	// CorrectionAngle rotates the asset so that angle 0 faces up.
	CorrectionAngle float64

	Vel    float64 // Signed speed along the heading
	HrtVel float64 // Last horizontal component of Vel
	VrtVel float64 // Last vertical component of Vel

	Health       int
	MaxHealth    int
	SelectedSlot int

	params     ShipParams
	clock      Clock
	disabled   bool
	disabledAt time.Time
}

// NewShip creates a ship at (x, y) using the named sprite. A nil clock uses
// the system clock.
func NewShip(src Source, x, y float64, name string, correctionAngle float64, params ShipParams, clock Clock) (*Ship, error) {
	obj, err := NewObject(src, x, y, name, ObjectOptions{})
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if params.HotbarSlots < 1 {
		params.HotbarSlots = 1
	}
	return &Ship{
		Object:          obj,
		CorrectionAngle: correctionAngle,
		Health:          params.Health,
		MaxHealth:       params.Health,
		params:          params,
		clock:           clock,
	}, nil
}

// Params returns the ship's tuning.
func (s *Ship) Params() ShipParams { return s.params }

// SetHeadingPolicy switches how the ship turns toward the mouse.
func (s *Ship) SetHeadingPolicy(p HeadingPolicy) { s.params.Heading = p }

// Script runs one frame of ship control. offX, offY is the camera offset
// added to the mouse position to get world coordinates.
func (s *Ship) Script(in Input, offX, offY float64) {
	// Face the mouse
	mx, my := in.MousePosition()
	s.steer(s.DesiredHeading(mx+offX, my+offY))

	disabled := s.Disabled()
	if in.ThrustPressed() {
		if disabled {
			s.Vel += s.params.DisabledAcceleration
		} else {
			s.Vel += s.params.Acceleration
		}
	}

	s.expireDisabled()

	s.Move()
	s.decay(disabled)
	s.Vel = clampFloat(s.Vel, -s.params.Speed, s.params.Speed)
}

// DesiredHeading returns the heading, in degrees, that points the ship's
// nose at world point (x, y).
func (s *Ship) DesiredHeading(x, y float64) float64 {
	cx, cy := s.Rect.Center()
	dx, dy := x-cx, cy-y
	return math.Atan2(dy, dx)*180/math.Pi - s.CorrectionAngle - headingBasis
}

func (s *Ship) steer(target float64) {
	switch s.params.Heading {
	case HeadingSnap:
		if target != s.Angle {
			s.Angle = target
			s.Rotate()
		}
	default:
		step := s.params.RotationSpeed
		if target > s.Angle+step {
			s.Angle += step
			s.Rotate()
		} else if target < s.Angle-step {
			s.Angle -= step
			s.Rotate()
		}
	}
}

// Move applies Vel along the heading. Screen y grows downward, so heading 0
// moves up.
func (s *Ship) Move() {
	sin, cos := math.Sincos(s.Angle * math.Pi / 180)
	s.HrtVel = sin * s.Vel
	s.VrtVel = cos * s.Vel
	s.Rect.X -= s.HrtVel
	s.Rect.Y -= s.VrtVel
}

func (s *Ship) decay(disabled bool) {
	d := s.params.Decay
	if disabled {
		d = s.params.DisabledDecay
	}
	if s.Vel > 0 {
		s.Vel = math.Max(s.Vel-d, 0)
	} else if s.Vel < 0 {
		s.Vel = math.Min(s.Vel+d, 0)
	}
}

// Disable puts the ship into reduced control for DisabledTime.
func (s *Ship) Disable() {
	s.disabled = true
	s.disabledAt = s.clock.Now()
}

// Disabled reports whether the ship is in reduced control. The state ends on
// its own once more than DisabledTime has elapsed since Disable.
func (s *Ship) Disabled() bool {
	return s.disabled && s.clock.Now().Sub(s.disabledAt) <= s.params.DisabledTime
}

func (s *Ship) expireDisabled() {
	if s.disabled && !s.Disabled() {
		s.disabled = false
	}
}

// Damage removes health, never below zero, and disables the ship.
func (s *Ship) Damage(amount int) {
	s.Health = max(s.Health-amount, 0)
	s.Disable()
}

// SelectSlot picks a hotbar slot, wrapping out-of-range indices.
func (s *Ship) SelectSlot(i int) {
	n := s.params.HotbarSlots
	s.SelectedSlot = ((i % n) + n) % n
}

// CycleSlot moves the hotbar selection by delta slots.
func (s *Ship) CycleSlot(delta int) {
	s.SelectSlot(s.SelectedSlot + delta)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package platform provides loop backends that need no graphics stack.
package platform

import (
	"image"
	"image/color"
	"time"

	"github.com/pthm-cable/drift/game"
)

// Headless runs the loop without a window. Frames are paced by sleeping,
// nothing is drawn and the ship input is a fixed autopilot.
type Headless struct {
	// Autopilot input
	MouseX, MouseY float64
	Thrust         bool

	// Unpaced skips the frame rate cap and reports a nominal frame time.
	Unpaced bool

	last  time.Time
	blits int
}

// Open does nothing; there is no window.
func (h *Headless) Open(game.Options) error { return nil }

// Close does nothing.
func (h *Headless) Close() {}

// PollEvents never has input.
func (h *Headless) PollEvents() []game.Event { return nil }

// Tick sleeps out the rest of the frame and returns the frame duration.
func (h *Headless) Tick(fps int) time.Duration {
	frame := time.Second / time.Duration(max(fps, 1))
	if h.Unpaced {
		return frame
	}
	now := time.Now()
	if h.last.IsZero() {
		h.last = now
		return frame
	}
	if elapsed := now.Sub(h.last); elapsed < frame {
		time.Sleep(frame - elapsed)
		now = time.Now()
	}
	elapsed := now.Sub(h.last)
	h.last = now
	return elapsed
}

// Clear does nothing.
func (h *Headless) Clear(color.RGBA) {}

// Present does nothing.
func (h *Headless) Present() {}

// Blit counts the draw call.
func (h *Headless) Blit(*image.RGBA, float64, float64) { h.blits++ }

// Blits returns the number of draw calls received.
func (h *Headless) Blits() int { return h.blits }

// MousePosition returns the autopilot aim point.
func (h *Headless) MousePosition() (float64, float64) { return h.MouseX, h.MouseY }

// ThrustPressed returns the autopilot thrust.
func (h *Headless) ThrustPressed() bool { return h.Thrust }

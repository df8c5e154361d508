package platform

import (
	"testing"
	"time"

	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/sprite"
)

var (
	_ game.Backend  = (*Headless)(nil)
	_ sprite.Canvas = (*Headless)(nil)
	_ sprite.Input  = (*Headless)(nil)
)

func TestHeadlessPacesFrames(t *testing.T) {
	h := &Headless{}
	h.Tick(100) // establishes the baseline

	start := time.Now()
	d := h.Tick(100)
	if d < 10*time.Millisecond {
		t.Errorf("expected at least one 10ms frame, got %v", d)
	}
	if time.Since(start) < 9*time.Millisecond {
		t.Error("expected Tick to sleep out the frame")
	}
}

func TestHeadlessUnpaced(t *testing.T) {
	h := &Headless{Unpaced: true}
	if d := h.Tick(50); d != 20*time.Millisecond {
		t.Errorf("expected nominal 20ms, got %v", d)
	}
}

func TestHeadlessLoopRunsToStop(t *testing.T) {
	h := &Headless{Unpaced: true}
	l := game.New(h, game.Options{FPS: 60})
	l.AfterFrame(func(l *game.Loop) {
		if l.Frame() == 5 {
			l.Stop()
		}
	})
	l.Run(game.NopCallbacks{})
	if l.Frame() != 5 {
		t.Errorf("expected 5 frames, got %d", l.Frame())
	}
	// 1/60s over a 16ms divisor
	if dt := l.DeltaTime(); dt < 1.04 || dt > 1.05 {
		t.Errorf("unexpected delta time %v", dt)
	}
}

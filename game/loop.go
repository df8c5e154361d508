// Package game provides the frame loop shell: it owns the window backend,
// the clock and the run flag, and drives a FrameCallbacks implementation once
// per frame.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/pthm-cable/drift/telemetry"
)

// Loop defaults
const (
	DefaultFPS             = 60
	DefaultDeltaDivisor    = 16 * time.Millisecond
	DefaultLowFPSThreshold = 1.2
)

// Options configures the window and loop pacing.
type Options struct {
	Width, Height int
	Title         string
	FPS           int
	Background    color.RGBA
	DebugKey      Key

	// DeltaDivisor normalizes frame time: delta time is elapsed / DeltaDivisor,
	// so 1.0 is a 16ms frame.
	DeltaDivisor time.Duration

	// LowFPSThreshold is the delta time above which a frame is logged as slow.
	LowFPSThreshold float64

	// PerfWindow is the number of frames the perf collector averages over.
	PerfWindow int
}

// Backend is the window, input and presentation layer the loop runs on.
type Backend interface {
	Open(opts Options) error
	// PollEvents returns every event pending since the last call.
	PollEvents() []Event
	// Tick waits as needed to cap the frame rate at fps and returns the time
	// elapsed since the previous Tick.
	Tick(fps int) time.Duration
	Clear(bg color.RGBA)
	Present()
	Close()
}

// FrameCallbacks are the per-frame hooks a game supplies to the loop.
type FrameCallbacks interface {
	// OnTick advances the simulation by one frame.
	OnTick(dt float64)
	// OnDraw draws the frame after the background has been cleared.
	OnDraw()
	// OnEvent receives every polled event, after the loop's own handling.
	OnEvent(ev Event)
	// OnDebug runs when the debug key is pressed.
	OnDebug()
	// OnResize runs after the window size changes.
	OnResize(w, h int)
	// OnQuit runs once after the loop exits; its result is returned by Run.
	OnQuit() any
}

// NopCallbacks implements every FrameCallbacks hook as a no-op. Embed it
// and override the hooks you need.
type NopCallbacks struct{}

func (NopCallbacks) OnTick(float64) {}
func (NopCallbacks) OnDraw() {}
func (NopCallbacks) OnEvent(Event) {}
func (NopCallbacks) OnDebug() {}
func (NopCallbacks) OnResize(int, int) {}
func (NopCallbacks) OnQuit() any { return nil }

// Loop runs frames until its run flag is cleared.
type Loop struct {
	opts    Options
	backend Backend
	perf    *telemetry.PerfCollector
	logger  *slog.Logger

	width, height int
	running       bool
	deltaTime     float64
	frame         int64

	afterFrame []func(*Loop)
}

// New creates a loop on the given backend, filling unset options with defaults.
func New(backend Backend, opts Options) *Loop {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.DeltaDivisor <= 0 {
		opts.DeltaDivisor = DefaultDeltaDivisor
	}
	if opts.LowFPSThreshold <= 0 {
		opts.LowFPSThreshold = DefaultLowFPSThreshold
	}
	if opts.DebugKey == KeyNull {
		opts.DebugKey = KeyF3
	}
	return &Loop{
		opts:    opts,
		backend: backend,
		perf:    telemetry.NewPerfCollector(opts.PerfWindow),
		logger:  slog.Default().With("component", "loop"),
		width:   opts.Width,
		height:  opts.Height,
	}
}

// Open creates the window.
func (l *Loop) Open() error {
	if err := l.backend.Open(l.opts); err != nil {
		return fmt.Errorf("opening %q window: %w", l.opts.Title, err)
	}
	return nil
}

// Close releases the window.
func (l *Loop) Close() {
	l.backend.Close()
}

// SetLogger replaces the loop's logger.
func (l *Loop) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// AfterFrame registers fn to run after every presented frame.
func (l *Loop) AfterFrame(fn func(*Loop)) {
	l.afterFrame = append(l.afterFrame, fn)
}

// Run drives cb until a quit event or Stop, then returns cb.OnQuit().
//
// Each frame: poll events (quit clears the run flag, resize updates the size,
// the debug key logs delta time), advance the clock, tick, clear, draw,
// present. The frame in which quit arrives is still completed.
func (l *Loop) Run(cb FrameCallbacks) any {
	l.running = true
	for l.running {
		l.perf.StartFrame()

		l.perf.StartPhase(telemetry.PhaseEvents)
		for _, ev := range l.backend.PollEvents() {
			l.handleEvent(cb, ev)
		}

		elapsed := l.backend.Tick(l.opts.FPS)
		l.deltaTime = float64(elapsed) / float64(l.opts.DeltaDivisor)
		low := l.deltaTime > l.opts.LowFPSThreshold
		if low {
			l.logger.Warn("low fps", "delta_time", l.deltaTime, "frame", l.frame)
		}

		l.perf.StartPhase(telemetry.PhaseTick)
		cb.OnTick(l.deltaTime)

		l.perf.StartPhase(telemetry.PhaseDraw)
		l.backend.Clear(l.opts.Background)
		cb.OnDraw()

		l.perf.StartPhase(telemetry.PhasePresent)
		l.backend.Present()

		l.perf.EndFrame(l.deltaTime, low)
		l.frame++

		for _, fn := range l.afterFrame {
			fn(l)
		}
	}

	return cb.OnQuit()
}

func (l *Loop) handleEvent(cb FrameCallbacks, ev Event) {
	switch ev.Kind {
	case EventQuit:
		l.running = false
	case EventResize:
		l.width, l.height = ev.Width, ev.Height
		cb.OnResize(ev.Width, ev.Height)
	case EventKeyDown:
		if ev.Key == l.opts.DebugKey {
			l.logger.Info("delta time", "delta_time", l.deltaTime)
			cb.OnDebug()
		}
	}
	cb.OnEvent(ev)
}

// Stop clears the run flag; the current frame still completes.
func (l *Loop) Stop() { l.running = false }

// Running reports the run flag.
func (l *Loop) Running() bool { return l.running }

// DeltaTime returns the last frame's normalized delta time.
func (l *Loop) DeltaTime() float64 { return l.deltaTime }

// Frame returns the number of completed frames.
func (l *Loop) Frame() int64 { return l.frame }

// Size returns the current window size.
func (l *Loop) Size() (w, h int) { return l.width, l.height }

// Options returns the loop's effective options.
func (l *Loop) Options() Options { return l.opts }

// Perf returns the frame timing collector.
func (l *Loop) Perf() *telemetry.PerfCollector { return l.perf }

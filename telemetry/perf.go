// Package telemetry records frame timing and writes run output files.
package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame of the game loop.
const (
	PhaseEvents  = "events"
	PhaseTick    = "tick"
	PhaseDraw    = "draw"
	PhasePresent = "present"
)

// Phases lists the frame phases in loop order.
var Phases = []string{PhaseEvents, PhaseTick, PhaseDraw, PhasePresent}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	DeltaTime     float64
	Phases        map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window of frames.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
	lowFrames     int
	now           func() time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
// deltaTime is the loop's normalized delta; low marks a low frame rate frame.
func (p *PerfCollector) EndFrame(deltaTime float64, low bool) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		DeltaTime:     deltaTime,
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	if low {
		p.lowFrames++
	}
}

// LowFrames returns how many frames were flagged as low frame rate in total.
func (p *PerfCollector) LowFrames() int { return p.lowFrames }

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame work timing
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration
	StdFrameUS       float64
	P95FrameUS       float64

	// Normalized delta time
	AvgDeltaTime float64

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	LowFrames int
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:  make(map[string]time.Duration),
			PhasePct:  make(map[string]float64),
			LowFrames: p.lowFrames,
		}
	}

	frameUS := make([]float64, p.sampleCount)
	deltas := make([]float64, p.sampleCount)
	var minFrame, maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		frameUS[i] = float64(s.FrameDuration) / float64(time.Microsecond)
		deltas[i] = s.DeltaTime

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	mean, std := stat.MeanStdDev(frameUS, nil)
	if p.sampleCount < 2 {
		std = 0
	}
	sorted := append([]float64(nil), frameUS...)
	sort.Float64s(sorted)
	p95 := stat.Quantile(0.95, stat.Empirical, sorted, nil)

	avgFrame := time.Duration(mean * float64(time.Microsecond))

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	var total time.Duration
	for _, sum := range phaseSum {
		total += sum
	}
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if total > 0 {
			phasePct[phase] = float64(sum) / float64(total) * 100
		}
	}

	return PerfStats{
		AvgFrameDuration: avgFrame,
		MinFrameDuration: minFrame,
		MaxFrameDuration: maxFrame,
		StdFrameUS:       std,
		P95FrameUS:       p95,
		AvgDeltaTime:     stat.Mean(deltas, nil),
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		LowFrames:        p.lowFrames,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("p95_frame_us", s.P95FrameUS),
		slog.Float64("avg_delta_time", s.AvgDeltaTime),
		slog.Int("low_frames", s.LowFrames),
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	StdFrameUS   float64 `csv:"std_frame_us"`
	P95FrameUS   float64 `csv:"p95_frame_us"`
	AvgDeltaTime float64 `csv:"avg_delta_time"`
	LowFrames    int     `csv:"low_frames"`
	EventsPct    float64 `csv:"events_pct"`
	TickPct      float64 `csv:"tick_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	PresentPct   float64 `csv:"present_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgFrameUS:   s.AvgFrameDuration.Microseconds(),
		MinFrameUS:   s.MinFrameDuration.Microseconds(),
		MaxFrameUS:   s.MaxFrameDuration.Microseconds(),
		StdFrameUS:   s.StdFrameUS,
		P95FrameUS:   s.P95FrameUS,
		AvgDeltaTime: s.AvgDeltaTime,
		LowFrames:    s.LowFrames,
		EventsPct:    s.PhasePct[PhaseEvents],
		TickPct:      s.PhasePct[PhaseTick],
		DrawPct:      s.PhasePct[PhaseDraw],
		PresentPct:   s.PhasePct[PhasePresent],
	}
}

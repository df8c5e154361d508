package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/assets"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/env"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/platform"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/sprite"
	"github.com/pthm-cable/drift/storage"
	"github.com/pthm-cable/drift/telemetry"
	"github.com/pthm-cable/drift/ui"
)

// backend is a loop backend that also draws sprites and reads ship input.
type backend interface {
	game.Backend
	sprite.Canvas
	sprite.Input
}

// hudOverlay adapts the raylib HUD to the environment's overlay hook.
type hudOverlay struct {
	hud      *ui.HUD
	loop     *game.Loop
	controls string
}

func (o hudOverlay) Draw(s env.Status) bool {
	o.hud.DrawControls(int32(s.Height), o.controls)
	return o.hud.Draw(ui.HUDData{
		Environment:  s.Environment,
		Vel:          s.Vel,
		Angle:        s.Angle,
		X:            s.X,
		Y:            s.Y,
		Disabled:     s.Disabled,
		Health:       s.Health,
		MaxHealth:    s.MaxHealth,
		SelectedSlot: s.SelectedSlot,
		HotbarSlots:  s.HotbarSlots,
		DeltaTime:    o.loop.DeltaTime(),
		FPS:          rl.GetFPS(),
		ScreenWidth:  int32(s.Width),
		ScreenHeight: int32(s.Height),
	})
}

func (o hudOverlay) ToggleDebug() { o.hud.ToggleDebug() }

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	envName := flag.String("env", "", "Environment to run: station or planet (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	historyPath := flag.String("history", "", "SQLite run history file (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *envName != "" {
		cfg.Environment = *envName
	}
	if *historyPath != "" {
		cfg.Telemetry.HistoryDB = *historyPath
	}

	table, err := assets.Load(os.DirFS(cfg.Assets.Dir), assetSpecs(cfg), cfg.AssetScale())
	if err != nil {
		slog.Error("failed to load assets", "dir", cfg.Assets.Dir, "error", err)
		os.Exit(1)
	}

	thrustKey, err := game.ParseKey(cfg.Ship.ThrustKey)
	if err != nil {
		slog.Error("bad thrust key", "error", err)
		os.Exit(1)
	}
	debugKey, err := game.ParseKey(cfg.Loop.DebugKey)
	if err != nil {
		slog.Error("bad debug key", "error", err)
		os.Exit(1)
	}

	var be backend
	var autopilot *platform.Headless
	if *headless {
		autopilot = &platform.Headless{Thrust: true}
		be = autopilot
	} else {
		be = renderer.NewWindow(thrustKey)
	}

	loop := game.New(be, game.Options{
		Width:           cfg.Screen.Width,
		Height:          cfg.Screen.Height,
		Title:           cfg.Screen.Title,
		FPS:             cfg.Screen.TargetFPS,
		Background:      cfg.Derived.Background,
		DebugKey:        debugKey,
		DeltaDivisor:    cfg.Derived.DeltaDivisor,
		LowFPSThreshold: cfg.Loop.LowFPSThreshold,
		PerfWindow:      cfg.Telemetry.PerfWindow,
	})

	deps := env.Deps{Assets: table, Input: be, Canvas: be}
	if !*headless {
		deps.Overlay = hudOverlay{
			hud:      ui.NewHUD(),
			loop:     loop,
			controls: fmt.Sprintf("%s thrust | %s debug | 1-9/wheel slots", cfg.Ship.ThrustKey, cfg.Loop.DebugKey),
		}
	}
	scene, err := env.New(cfg.Environment, cfg, deps)
	if err != nil {
		slog.Error("failed to build environment", "env", cfg.Environment, "error", err)
		os.Exit(1)
	}
	if autopilot != nil {
		// Aim at the top edge straight above the ship as it appears on screen
		autopilot.MouseX, _ = scene.Ship().Rect.Center()
		if scene.Name() == env.NamePlanet {
			autopilot.MouseX = float64(cfg.Screen.Width) / 2
		}
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	window := int64(cfg.Telemetry.PerfWindow)
	logEvery := int64(cfg.Telemetry.LogInterval)
	loop.AfterFrame(func(l *game.Loop) {
		frame := l.Frame()
		if frame%window == 0 {
			if err := output.WritePerf(l.Perf().Stats(), frame); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}
		if *logStats && logEvery > 0 && frame%logEvery == 0 {
			slog.Info("perf", "frame", frame, "stats", l.Perf().Stats())
		}
		if *maxFrames > 0 && frame >= *maxFrames {
			slog.Info("max frames reached", "frame", frame)
			l.Stop()
		}
	})

	if err := loop.Open(); err != nil {
		slog.Error("failed to open window", "error", err)
		os.Exit(1)
	}
	defer loop.Close()

	slog.Info("starting",
		"env", scene.Name(),
		"headless", *headless,
		"assets", table.Names(),
		"max_frames", *maxFrames,
	)

	summary, _ := loop.Run(scene).(telemetry.RunSummary)
	summary.LowFrames = loop.Perf().LowFrames()

	slog.Info("finished",
		"frames", summary.Frames,
		"distance", summary.Distance,
		"final_vel", summary.FinalVel,
		"low_frames", summary.LowFrames,
	)
	if err := output.WriteSummary(summary); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
	if cfg.Telemetry.HistoryDB != "" {
		recordHistory(cfg.Telemetry.HistoryDB, summary)
	}
}

// recordHistory stores the run and logs the longest flight so far.
func recordHistory(path string, summary telemetry.RunSummary) {
	history, err := storage.Open(path)
	if err != nil {
		slog.Error("failed to open history", "path", path, "error", err)
		return
	}
	defer history.Close()

	id, err := history.Save(summary, time.Now())
	if err != nil {
		slog.Error("failed to save run", "error", err)
		return
	}
	best, err := history.Longest(summary.Environment, 1)
	if err != nil {
		slog.Error("failed to query history", "error", err)
		return
	}
	if len(best) > 0 {
		slog.Info("history",
			"run_id", id,
			"best_run_id", best[0].ID,
			"best_distance", best[0].Distance,
			"new_best", best[0].ID == id,
		)
	}
}

func assetSpecs(cfg *config.Config) []assets.Spec {
	specs := make([]assets.Spec, 0, len(cfg.Assets.Sprites))
	for _, s := range cfg.Assets.Sprites {
		specs = append(specs, assets.Spec{Name: s.Name, Path: s.Path})
	}
	return specs
}

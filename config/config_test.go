package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Screen.Width != 900 || cfg.Screen.Height != 500 {
		t.Errorf("expected 900x500, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Ship.Speed != 10 || cfg.Ship.Acceleration != 1 {
		t.Errorf("unexpected ship defaults: speed %v accel %v", cfg.Ship.Speed, cfg.Ship.Acceleration)
	}
	if cfg.Derived.Background != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected white background, got %v", cfg.Derived.Background)
	}
	if cfg.Derived.DeltaDivisor != 16*time.Millisecond {
		t.Errorf("expected 16ms divisor, got %v", cfg.Derived.DeltaDivisor)
	}
	if cfg.Derived.DisabledTime != 500*time.Millisecond {
		t.Errorf("expected 500ms disabled time, got %v", cfg.Derived.DisabledTime)
	}
	if len(cfg.Assets.Sprites) != 2 {
		t.Errorf("expected 2 sprites, got %d", len(cfg.Assets.Sprites))
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	data := []byte("environment: planet\nship:\n  speed: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Ship.Speed != 4 {
		t.Errorf("expected overridden speed 4, got %v", cfg.Ship.Speed)
	}
	// Untouched fields keep their defaults
	if cfg.Ship.Acceleration != 1 {
		t.Errorf("expected default acceleration 1, got %v", cfg.Ship.Acceleration)
	}
	if cfg.AssetScale() != 0.5 {
		t.Errorf("expected planet asset scale 0.5, got %v", cfg.AssetScale())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "screen:\n  width: 0\n"},
		{"zero fps", "screen:\n  target_fps: 0\n"},
		{"unknown environment", "environment: moon\n"},
		{"no hotbar", "ship:\n  hotbar_slots: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Ship.RotationSpeed = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Ship.RotationSpeed != 7 {
		t.Errorf("expected rotation speed 7, got %v", loaded.Ship.RotationSpeed)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}

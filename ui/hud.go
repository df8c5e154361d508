// Package ui draws the in-game overlays on top of the environment.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the HUD and debug panel.
type HUDData struct {
	Environment  string
	Vel          float64
	Angle        float64
	X, Y         float64
	Disabled     bool
	Health       int
	MaxHealth    int
	SelectedSlot int
	HotbarSlots  int
	DeltaTime    float64
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the hotbar and health bar every frame, and the debug panel
// while it is toggled on.
type HUD struct {
	showDebug bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// ToggleDebug shows or hides the debug panel.
func (h *HUD) ToggleDebug() { h.showDebug = !h.showDebug }

// Draw renders the HUD. It returns true when the debug panel's disable
// button was clicked this frame.
func (h *HUD) Draw(data HUDData) bool {
	h.drawHealth(data)
	h.drawHotbar(data)
	if !h.showDebug {
		return false
	}
	return h.drawDebug(data)
}

func (h *HUD) drawHealth(data HUDData) {
	const w, ht = 160, 12
	x, y := int32(10), data.ScreenHeight-int32(ht)-10

	frac := float32(0)
	if data.MaxHealth > 0 {
		frac = float32(data.Health) / float32(data.MaxHealth)
	}
	barColor := rl.Green
	if frac < 0.3 {
		barColor = rl.Red
	} else if frac < 0.6 {
		barColor = rl.Orange
	}

	rl.DrawRectangle(x, y, w, ht, rl.Fade(rl.DarkGray, 0.6))
	rl.DrawRectangle(x, y, int32(float32(w)*frac), ht, barColor)
	rl.DrawRectangleLines(x, y, w, ht, rl.Black)
	rl.DrawText(fmt.Sprintf("%d/%d", data.Health, data.MaxHealth), x+w+8, y, 12, rl.DarkGray)
}

func (h *HUD) drawHotbar(data HUDData) {
	if data.HotbarSlots <= 0 {
		return
	}
	const size, gap = 32, 4
	total := int32(data.HotbarSlots*(size+gap) - gap)
	x := (data.ScreenWidth - total) / 2
	y := data.ScreenHeight - size - 10

	for i := 0; i < data.HotbarSlots; i++ {
		sx := x + int32(i*(size+gap))
		rl.DrawRectangle(sx, y, size, size, rl.Fade(rl.LightGray, 0.7))
		border := rl.DarkGray
		if i == data.SelectedSlot {
			border = rl.Gold
			rl.DrawRectangleLines(sx-1, y-1, size+2, size+2, border)
		}
		rl.DrawRectangleLines(sx, y, size, size, border)
		rl.DrawText(fmt.Sprintf("%d", i+1), sx+3, y+2, 10, rl.DarkGray)
	}
}

func (h *HUD) drawDebug(data HUDData) bool {
	const panelW, panelH = 220, 190
	px := float32(data.ScreenWidth - panelW - 10)
	py := float32(10)

	gui.Panel(rl.Rectangle{X: px, Y: py, Width: panelW, Height: panelH}, "Debug")

	lines := []string{
		fmt.Sprintf("Env: %s", data.Environment),
		fmt.Sprintf("Pos: %.1f, %.1f", data.X, data.Y),
		fmt.Sprintf("Vel: %.2f", data.Vel),
		fmt.Sprintf("Angle: %.1f", data.Angle),
		fmt.Sprintf("Disabled: %t", data.Disabled),
		fmt.Sprintf("Delta time: %.3f | FPS: %d", data.DeltaTime, data.FPS),
	}
	y := py + 30
	for _, line := range lines {
		gui.Label(rl.Rectangle{X: px + 10, Y: y, Width: panelW - 20, Height: 16}, line)
		y += 20
	}

	return gui.Button(rl.Rectangle{X: px + 10, Y: y + 4, Width: panelW - 20, Height: 24}, "Disable ship")
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-62, 14, rl.Gray)
}

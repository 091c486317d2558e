package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Lines       int
	Visible     int
	Points      int
	MaxTime     float32
	LongestSeed int
	LongestArc  float32
	FPS         int32
}

// HUD renders the main heads-up display.
type HUD struct {
	theme Theme
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{theme: DefaultTheme()}
}

// Lines returns the HUD text, one entry per row.
func (h *HUD) Lines(data HUDData) []string {
	rows := []string{
		data.Title,
		fmt.Sprintf("Lines: %d | Visible: %d | Points: %d", data.Lines, data.Visible, data.Points),
		fmt.Sprintf("Max time: %.3f | FPS: %d", data.MaxTime, data.FPS),
	}
	if data.LongestSeed >= 0 {
		rows = append(rows, fmt.Sprintf("Longest: seed %d (%.3f)", data.LongestSeed, data.LongestArc))
	}
	return rows
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	y := h.theme.Padding
	for i, row := range h.Lines(data) {
		size, color := h.theme.FontSize, h.theme.LabelColor
		if i == 0 {
			size, color = h.theme.HeaderFontSize+4, rl.White
		}
		rl.DrawText(row, h.theme.Padding, y, size, color)
		y += size + 6
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, h.theme.Padding, screenHeight-25, h.theme.FontSize, rl.Gray)
}

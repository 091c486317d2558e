package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/streamlines/scene"
)

// ControlsState holds the values edited by the controls panel.
type ControlsState struct {
	Filter      scene.Filter
	ColorByTime bool
	ShowBounds  bool
}

// ControlsPanel renders the right-side panel of raygui sliders.
type ControlsPanel struct {
	theme   Theme
	x, y    int32
	width   int32
	visible bool

	maxPoints int
	maxTime   float32
}

// NewControlsPanel creates a new controls panel. maxPoints and maxTime bound
// the slider ranges.
func NewControlsPanel(x, y, width int32, maxPoints int, maxTime float32) *ControlsPanel {
	return &ControlsPanel{
		theme:     DefaultTheme(),
		x:         x,
		y:         y,
		width:     width,
		visible:   true,
		maxPoints: max(maxPoints, 2),
		maxTime:   maxTime,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and reports whether the filter changed.
func (c *ControlsPanel) Draw(st *ControlsState) bool {
	if !c.visible {
		return false
	}

	pad := float32(c.theme.Padding)
	x := float32(c.x)
	y := float32(c.y)
	w := float32(c.width)
	sliderW := w - 2*pad - 60

	rl.DrawRectangle(c.x, c.y, c.width, 220, c.theme.PanelBg)
	rl.DrawRectangleLines(c.x, c.y, c.width, 220, c.theme.PanelBorder)

	rl.DrawText("Streamlines", int32(x+pad), int32(y+pad), c.theme.HeaderFontSize, c.theme.SectionHeader)
	y += pad + 28

	before := st.Filter

	rl.DrawText("Min points", int32(x+pad), int32(y), c.theme.FontSize, c.theme.LabelColor)
	y += 16
	minPoints := gui.SliderBar(rl.Rectangle{X: x + pad, Y: y, Width: sliderW, Height: 16},
		"", fmt.Sprintf("%d", st.Filter.MinPoints),
		float32(st.Filter.MinPoints), 0, float32(c.maxPoints))
	st.Filter.MinPoints = int(minPoints)
	y += 26

	rl.DrawText("Max time", int32(x+pad), int32(y), c.theme.FontSize, c.theme.LabelColor)
	y += 16
	st.Filter.MaxTime = gui.SliderBar(rl.Rectangle{X: x + pad, Y: y, Width: sliderW, Height: 16},
		"", fmt.Sprintf("%.2f", st.Filter.MaxTime),
		st.Filter.MaxTime, 0, c.maxTime)
	y += 26

	rl.DrawText("Line stride", int32(x+pad), int32(y), c.theme.FontSize, c.theme.LabelColor)
	y += 16
	stride := gui.SliderBar(rl.Rectangle{X: x + pad, Y: y, Width: sliderW, Height: 16},
		"", fmt.Sprintf("%d", max(st.Filter.Stride, 1)),
		float32(max(st.Filter.Stride, 1)), 1, 64)
	st.Filter.Stride = int(stride)
	y += 30

	st.ColorByTime = gui.CheckBox(rl.Rectangle{X: x + pad, Y: y, Width: 16, Height: 16}, "Color by time", st.ColorByTime)
	y += 24
	st.ShowBounds = gui.CheckBox(rl.Rectangle{X: x + pad, Y: y, Width: 16, Height: 16}, "Show bounds", st.ShowBounds)

	return st.Filter != before
}

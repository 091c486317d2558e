// Streamline viewer - orbits a .vtp file written by the tracer.
//
// Usage: go run ./cmd/streamview -in test.vtp
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/streamlines/camera"
	"github.com/pthm-cable/streamlines/config"
	"github.com/pthm-cable/streamlines/renderer"
	"github.com/pthm-cable/streamlines/scene"
	"github.com/pthm-cable/streamlines/ui"
	"github.com/pthm-cable/streamlines/vtp"
)

const (
	panelWidth   = 260
	orbitSpeed   = 0.005
	panSpeed     = 0.002
	zoomPerNotch = 1.1
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	in := flag.String("in", "test.vtp", "Streamlines to view")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg().Viewer

	pl, err := vtp.ReadFile(*in)
	if err != nil {
		slog.Error("failed to read streamlines", "path", *in, "error", err)
		os.Exit(1)
	}
	sc := scene.New(pl)
	slog.Info("loaded streamlines", "path", *in, "lines", pl.NumLines, "points", pl.NumPoints)

	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "Streamlines")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	lo, hi := sc.Bounds()
	cam := camera.New(lo.Add(hi).Scale(0.5), float32(cfg.Distance))
	cam.Fit(lo, hi)

	longest, longestArc := sc.Longest()
	maxPoints := 0
	for i := 0; i < pl.NumLines; i++ {
		s, e := pl.Line(i)
		maxPoints = max(maxPoints, e-s)
	}

	hud := ui.NewHUD()
	panel := ui.NewControlsPanel(int32(cfg.Width)-panelWidth-10, 10, panelWidth, maxPoints, sc.MaxTime())
	lines := renderer.NewStreamlineRenderer()
	state := ui.ControlsState{ColorByTime: true, ShowBounds: true}

	for !rl.WindowShouldClose() {
		handleInput(cam, panel)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 14, B: 18, A: 255})

		rl.BeginMode3D(toCamera3D(cam))
		lines.ColorByTime = state.ColorByTime
		lines.Draw(sc)
		if state.ShowBounds {
			renderer.DrawBounds(lo, hi, rl.DarkGray)
		}
		rl.EndMode3D()

		hud.Draw(ui.HUDData{
			Title:       fmt.Sprintf("Streamlines - %s", *in),
			Lines:       sc.NumLines(),
			Visible:     sc.Visible(),
			Points:      pl.NumPoints,
			MaxTime:     sc.MaxTime(),
			LongestSeed: longest,
			LongestArc:  longestArc,
			FPS:         rl.GetFPS(),
		})
		hud.DrawControls(int32(cfg.Height), "LMB: orbit | RMB: pan | Wheel: zoom | R: reset | Tab: panel")
		if panel.Draw(&state) {
			sc.Apply(state.Filter)
		}

		rl.EndDrawing()
	}
}

// handleInput maps mouse and keyboard to camera moves.
func handleInput(cam *camera.Camera, panel *ui.ControlsPanel) {
	delta := rl.GetMouseDelta()
	mouse := rl.GetMousePosition()
	overPanel := mouse.X > float32(rl.GetScreenWidth()-panelWidth-10)

	if rl.IsMouseButtonDown(rl.MouseLeftButton) && !overPanel {
		cam.Rotate(-delta.X*orbitSpeed, delta.Y*orbitSpeed)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		scale := panSpeed * cam.Distance
		cam.Pan(-delta.X*scale, delta.Y*scale)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if wheel > 0 {
			cam.ZoomBy(zoomPerNotch)
		} else {
			cam.ZoomBy(1 / zoomPerNotch)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		cam.Reset()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		panel.Toggle()
	}
}

func toCamera3D(cam *camera.Camera) rl.Camera3D {
	p := cam.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: p.X, Y: p.Y, Z: p.Z},
		Target:     rl.Vector3{X: cam.Target.X, Y: cam.Target.Y, Z: cam.Target.Z},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

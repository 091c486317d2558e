// Synthetic field preview tool - interactive slice view with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/streamlines/config"
	"github.com/pthm-cable/streamlines/device"
	"github.com/pthm-cable/streamlines/field"
	"github.com/pthm-cable/streamlines/vecmath"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	sliceSize    = 128
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	if err := config.Init(""); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	syn := cfg.Field.Synthetic
	v := cfg.Derived.Velocity

	defaults := field.SynthParams{
		Kind:       field.KindJet,
		Dims:       field.Dims{NX: syn.Dims[0], NY: syn.Dims[1], NZ: syn.Dims[2]},
		Velocity:   vecmath.V3(v[0], v[1], v[2]),
		Radius:     float32(syn.Radius),
		Swirl:      float32(syn.Swirl),
		Turbulence: float32(syn.Turbulence),
		NoiseScale: float32(syn.NoiseScale),
		Seed:       syn.Seed,
	}
	params := defaults

	dev := device.New(0, 0)
	defer dev.Close()

	rl.InitWindow(windowWidth, windowHeight, "Field Slice Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	slice := make([]float32, sliceSize*sliceSize)
	img := rl.GenImageColor(sliceSize, sliceSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var f *field.Field
	height := float32(0.5)
	needsRegen := true
	needsSlice := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			var err error
			if f, err = field.SynthesizeField(dev, params); err != nil {
				slog.Error("failed to synthesize field", "error", err)
				os.Exit(1)
			}
			needsRegen = false
			needsSlice = true
		}
		if needsSlice {
			sampleSlice(slice, sliceSize, f, height)
			updateTexture(texture, slice)
			needsSlice = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: sliceSize, Height: sliceSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		valid, maxSpeed := sliceStats(slice)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Valid: %.1f%%  Max speed: %.3f", valid*100, maxSpeed), 15, statsY, 16, rl.DarkGray)
		rl.DrawText("Masked samples are drawn black", 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Jet Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, format string, value, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			out := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
				value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return out
		}

		if h := slider("Slice height (y)", "%.2f", height, 0, 1); h != height {
			height = h
			needsSlice = true
		}
		if r := slider("Radius (valid cylinder)", "%.2f", params.Radius, 0.05, 0.5); r != params.Radius {
			params.Radius = r
			needsRegen = true
		}
		if s := slider("Swirl (angular velocity)", "%.1f", params.Swirl, 0, 10); s != params.Swirl {
			params.Swirl = s
			needsRegen = true
		}
		if t := slider("Turbulence (noise amplitude)", "%.2f", params.Turbulence, 0, 1); t != params.Turbulence {
			params.Turbulence = t
			needsRegen = true
		}
		if n := slider("Noise scale (frequency)", "%.1f", params.NoiseScale, 0.5, 16); n != params.NoiseScale {
			params.NoiseScale = n
			needsRegen = true
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			height = 0.5
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := yamlSnippet(params)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// sampleSlice fills out with the speed at height y across the x-z plane,
// or -1 where the field is invalid.
func sampleSlice(out []float32, size int, f field.VectorField, y float32) {
	for j := 0; j < size; j++ {
		z := (float32(j) + 0.5) / float32(size)
		for i := 0; i < size; i++ {
			x := (float32(i) + 0.5) / float32(size)
			v, ok := f.Get(vecmath.V3(x, y, z))
			if !ok {
				out[j*size+i] = -1
				continue
			}
			out[j*size+i] = v.Len()
		}
	}
}

// sliceStats returns the valid fraction and the largest speed.
func sliceStats(slice []float32) (valid, maxSpeed float32) {
	n := 0
	for _, s := range slice {
		if s < 0 {
			continue
		}
		n++
		maxSpeed = max(maxSpeed, s)
	}
	if len(slice) > 0 {
		valid = float32(n) / float32(len(slice))
	}
	return valid, maxSpeed
}

func yamlSnippet(p field.SynthParams) string {
	return fmt.Sprintf(`field:
  synthetic:
    kind: %s
    radius: %.2f
    swirl: %.1f
    turbulence: %.2f
    noise_scale: %.1f
    seed: %d`, p.Kind, p.Radius, p.Swirl, p.Turbulence, p.NoiseScale, p.Seed)
}

// updateTexture updates the GPU texture from the slice speeds.
func updateTexture(texture rl.Texture2D, slice []float32) {
	_, maxSpeed := sliceStats(slice)
	pixels := make([]color.RGBA, len(slice))
	for i, s := range slice {
		if s < 0 {
			pixels[i] = color.RGBA{A: 255}
			continue
		}
		v := float32(0)
		if maxSpeed > 0 {
			v = s / maxSpeed
		}
		// Dark blue -> cyan -> yellow
		var r, g, b uint8
		if v < 0.5 {
			t := v / 0.5
			r = uint8(10 + t*50)
			g = uint8(20 + t*180)
			b = uint8(80 + t*120)
		} else {
			t := (v - 0.5) / 0.5
			r = uint8(60 + t*195)
			g = uint8(200 + t*40)
			b = uint8(200 - t*150)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

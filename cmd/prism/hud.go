package main

import (
	"fmt"
	"image/color"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

var (
	hudFg = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	hudBg = color.RGBA{R: 20, G: 20, B: 28, A: 255}
)

// hud draws a one-line status bar over the bottom row of the screen.
type hud struct {
	name      string
	triangles int
	mode      string
	wireframe bool
	show      bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(name string) *hud {
	return &hud{name: name, show: true, fpsTime: time.Now()}
}

// tick counts one frame and updates the rate about once a second.
func (h *hud) tick(now time.Time) {
	h.fpsFrames++
	if elapsed := now.Sub(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

func (h *hud) String() string {
	wire := ""
	if h.wireframe {
		wire = " | wireframe"
	}
	return fmt.Sprintf(" %s | %d tris | %s%s | %.0f fps ", h.name, h.triangles, h.mode, wire, h.fps)
}

// Draw implements uv.Drawable.
func (h *hud) Draw(scr uv.Screen, area uv.Rectangle) {
	if !h.show || area.Dy() == 0 {
		return
	}
	row := area.Max.Y - 1
	style := uv.Style{Fg: hudFg, Bg: hudBg}
	text := []rune(h.String())
	for col := area.Min.X; col < area.Max.X; col++ {
		content := " "
		if i := col - area.Min.X; i < len(text) {
			content = string(text[i])
		}
		scr.SetCell(col, row, &uv.Cell{Content: content, Width: 1, Style: style})
	}
}

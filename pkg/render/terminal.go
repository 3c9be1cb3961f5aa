package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// FramebufferForCells creates a framebuffer covering cols x rows terminal
// cells. Each cell holds two vertically stacked pixels.
func FramebufferForCells(cols, rows int) *Framebuffer {
	return NewFramebuffer(cols, rows*2)
}

// Draw paints the framebuffer onto scr inside area, so a Framebuffer can be
// passed to uv.Terminal.Draw. Each cell is an upper half block with the top
// pixel as foreground and the bottom pixel as background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, topY+1)),
				},
			})
		}
	}
}

// cellColor maps fully transparent pixels to the terminal default.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

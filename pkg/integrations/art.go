package integrations

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const upperHalfBlock = "▀"

// RenderArt draws img with half-block characters, two pixel rows per
// terminal line, at most width columns wide.
func RenderArt(img image.Image, width int) string {
	img = Trim(img)
	bounds := img.Bounds()
	if bounds.Empty() || width <= 0 {
		return ""
	}

	if bounds.Dx() != width {
		height := max(1, bounds.Dy()*width/bounds.Dx())
		img = Resize(img, width, height)
		bounds = img.Bounds()
	}

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top, topOK := hexColor(img, x, y)
			bottom, bottomOK := hexColor(img, x, y+1)
			if y+1 >= bounds.Max.Y {
				bottomOK = false
			}

			style := lipgloss.NewStyle()
			switch {
			case topOK && bottomOK:
				style = style.Foreground(top).Background(bottom)
				b.WriteString(style.Render(upperHalfBlock))
			case topOK:
				b.WriteString(style.Foreground(top).Render(upperHalfBlock))
			case bottomOK:
				b.WriteString(style.Foreground(bottom).Render("▄"))
			default:
				b.WriteByte(' ')
			}
		}
		if y+2 < bounds.Max.Y {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// hexColor reports the pixel colour, or false when it is mostly transparent.
func hexColor(img image.Image, x, y int) (lipgloss.Color, bool) {
	r, g, bl, a := img.At(x, y).RGBA()
	if a < 0x8000 {
		return "", false
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8)), true
}

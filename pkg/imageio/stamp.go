package imageio

import (
	"image"

	"github.com/fogleman/gg"
)

const stampPadding = 4.0

// Stamp returns a copy of img with the given lines drawn as a caption on a
// translucent band along the bottom edge
func Stamp(img image.Image, lines ...string) image.Image {
	if len(lines) == 0 {
		return img
	}

	dc := gg.NewContextForImage(img)
	width := float64(dc.Width())
	height := float64(dc.Height())

	lineHeight := dc.FontHeight() * 1.3
	bandHeight := lineHeight*float64(len(lines)) + 2*stampPadding

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, height-bandHeight, width, bandHeight)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for i, line := range lines {
		y := height - bandHeight + stampPadding + lineHeight*float64(i) + dc.FontHeight()
		dc.DrawString(line, stampPadding, y)
	}

	return dc.Image()
}

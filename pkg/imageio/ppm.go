package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// DefaultMaxValue is the channel maximum written to the PPM header
const DefaultMaxValue = 255

// WritePPM writes a frame as plain-text P3 PPM: the header, then one
// "R G B" line per pixel in row-major order starting from the top row
func WritePPM(w io.Writer, frame *renderer.Frame, maxValue int, gamma bool) error {
	if maxValue <= 0 || maxValue > 65535 {
		return fmt.Errorf("invalid PPM max value %d", maxValue)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", frame.Width, frame.Height, maxValue); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b := frame.PixelValues(x, y, maxValue, gamma)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("failed to write pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}

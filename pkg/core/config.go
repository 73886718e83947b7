package core

import "fmt"

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Merge returns c with every positive field of override applied on top.
// Zero means unset for every field, MaxDepth included, so an override
// cannot lower the depth to 0; set MaxDepth on the result for that.
func (c SamplingConfig) Merge(override SamplingConfig) SamplingConfig {
	if override.Width > 0 {
		c.Width = override.Width
	}
	if override.Height > 0 {
		c.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		c.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		c.MaxDepth = override.MaxDepth
	}
	return c
}

// Validate reports an error for configurations that cannot be rendered
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

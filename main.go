package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/imageio"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// uploader publishes encoded images
type uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

var newUploader = func(c imageio.S3Config) (uploader, error) {
	return imageio.NewS3Uploader(c)
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		printHelp(os.Stdout)
		return
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Sphere Tracer")
	config.Usage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
}

// run renders the configured scene and writes every requested output.
// PPM written to "-" goes to stdout; log output goes to stderr.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	s, err := scene.Create(cfg.Scene)
	if err != nil {
		return err
	}

	sampling := samplingConfig(s.SamplingConfig, cfg)
	if err := sampling.Validate(); err != nil {
		return fmt.Errorf("invalid sampling configuration: %w", err)
	}

	integ, err := createIntegrator(cfg.Integrator, sampling.MaxDepth)
	if err != nil {
		return err
	}

	log.Printf("Rendering %s scene (%d spheres) at %dx%d, %d samples, max depth %d, seed %d",
		cfg.Scene, len(s.GetShapes()), sampling.Width, sampling.Height, sampling.SamplesPerPixel,
		sampling.MaxDepth, cfg.Seed)

	frame, stats := renderer.NewRaytracer(s, sampling, integ, cfg.Seed).Render()
	log.Printf("Render completed: %s", stats)
	if stats.DroppedSamples > 0 {
		log.Printf("Warning: dropped %d non-finite samples", stats.DroppedSamples)
	}

	return writeOutputs(ctx, cfg, frame, stats, stdout)
}

// samplingConfig applies the command-line overrides to a scene's defaults.
// Merge ignores a zero depth, so an explicit depth of 0 is set afterwards.
func samplingConfig(defaults core.SamplingConfig, cfg *config.Config) core.SamplingConfig {
	sampling := defaults.Merge(core.SamplingConfig{
		Width:           cfg.Width,
		Height:          cfg.Height,
		SamplesPerPixel: cfg.SamplesPerPixel,
	})
	if cfg.MaxDepth >= 0 {
		sampling.MaxDepth = cfg.MaxDepth
	}
	return sampling
}

func createIntegrator(name string, maxDepth int) (integrator.Integrator, error) {
	switch name {
	case "path-tracing":
		return integrator.NewPathTracingIntegrator(maxDepth), nil
	case "normal":
		return integrator.NewNormalIntegrator(), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", name)
	}
}

func writeOutputs(ctx context.Context, cfg *config.Config, frame *renderer.Frame, stats renderer.RenderStats, stdout io.Writer) error {
	var img image.Image = frame.ToRGBA(cfg.Gamma)
	if cfg.Stamp {
		img = imageio.Stamp(img, caption(cfg, frame), stats.String())
	}

	if imageio.IsPPM(cfg.Output) {
		if err := writePPMOutput(cfg, frame, stdout); err != nil {
			return err
		}
	} else {
		if err := ensureDir(cfg.Output); err != nil {
			return err
		}
		if err := imageio.Save(cfg.Output, img); err != nil {
			return err
		}
		log.Printf("Saved %s", cfg.Output)
	}

	if cfg.Thumbnail {
		path := thumbnailPath(cfg.Output)
		if err := imageio.Save(path, imageio.Thumbnail(img, cfg.ThumbnailWidth)); err != nil {
			return err
		}
		log.Printf("Saved thumbnail %s", path)
	}

	if cfg.UploadKey != "" {
		if err := upload(ctx, cfg, frame, img); err != nil {
			return err
		}
	}
	return nil
}

func writePPMOutput(cfg *config.Config, frame *renderer.Frame, stdout io.Writer) error {
	if cfg.Output == "-" {
		return imageio.WritePPM(stdout, frame, imageio.DefaultMaxValue, cfg.Gamma)
	}

	if err := ensureDir(cfg.Output); err != nil {
		return err
	}
	file, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", cfg.Output, err)
	}
	defer file.Close()

	if err := imageio.WritePPM(file, frame, imageio.DefaultMaxValue, cfg.Gamma); err != nil {
		return err
	}
	log.Printf("Saved %s", cfg.Output)
	return file.Close()
}

// upload encodes the render according to the key's extension and publishes it
func upload(ctx context.Context, cfg *config.Config, frame *renderer.Frame, img image.Image) error {
	client, err := newUploader(cfg.S3)
	if err != nil {
		return err
	}

	var data []byte
	var contentType string
	if imageio.IsPPM(cfg.UploadKey) {
		var buf bytes.Buffer
		if err := imageio.WritePPM(&buf, frame, imageio.DefaultMaxValue, cfg.Gamma); err != nil {
			return err
		}
		data, contentType = buf.Bytes(), "image/x-portable-pixmap"
	} else {
		data, contentType, err = imageio.Encode(cfg.UploadKey, img)
		if err != nil {
			return err
		}
	}

	return client.Upload(ctx, cfg.UploadKey, data, contentType)
}

func caption(cfg *config.Config, frame *renderer.Frame) string {
	return fmt.Sprintf("%s %dx%d %s seed %d", cfg.Scene, frame.Width, frame.Height, cfg.Integrator, cfg.Seed)
}

// thumbnailPath picks an encodable file name for the thumbnail
func thumbnailPath(output string) string {
	if output == "-" {
		return "thumbnail.png"
	}
	if imageio.IsPPM(output) {
		return strings.TrimSuffix(output, filepath.Ext(output)) + "_thumb.png"
	}
	return imageio.ThumbnailPath(output)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

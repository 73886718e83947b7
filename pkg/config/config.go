package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-tracer/pkg/imageio"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "RAYTRACER_"

// Integrators accepted by the -integrator flag
var Integrators = []string{"path-tracing", "normal"}

// Config holds the settings for a single render
type Config struct {
	Scene           string
	Integrator      string
	Width           int // 0 means the scene's default
	Height          int // 0 means the scene's default
	SamplesPerPixel int // 0 means the scene's default
	MaxDepth        int // -1 means the scene's default
	Seed            int64
	Output          string // "-" writes PPM to standard output
	Gamma           bool
	Thumbnail       bool
	ThumbnailWidth  int
	Stamp           bool
	S3              imageio.S3Config
	UploadKey       string // Object key for the upload; empty disables uploading
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Scene:          "default",
		Integrator:     "path-tracing",
		MaxDepth:       -1,
		Seed:           42,
		Output:         "-",
		ThumbnailWidth: 160,
	}
}

// Load builds a configuration from, in increasing priority: built-in
// defaults, a .env file, RAYTRACER_* environment variables and the
// command-line args (without the program name)
func Load(args []string) (*Config, error) {
	envFile := getEnv(EnvPrefix+"ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	flags := cfg.flagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) flagSet() *flag.FlagSet {
	flags := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringVar(&c.Scene, "scene", c.Scene, "Scene to render: default, materials, spheregrid, glass-cavity")
	flags.StringVar(&c.Integrator, "integrator", c.Integrator, "Integrator: path-tracing or normal")
	flags.IntVar(&c.Width, "width", c.Width, "Image width in pixels (0 = scene default)")
	flags.IntVar(&c.Height, "height", c.Height, "Image height in pixels (0 = scene default)")
	flags.IntVar(&c.SamplesPerPixel, "samples", c.SamplesPerPixel, "Samples per pixel (0 = scene default)")
	flags.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "Maximum scatter depth (-1 = scene default)")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "Random seed")
	flags.StringVar(&c.Output, "output", c.Output, "Output file; .ppm or - for PPM, other extensions are encoded by type")
	flags.BoolVar(&c.Gamma, "gamma", c.Gamma, "Apply square-root gamma before quantizing")
	flags.BoolVar(&c.Thumbnail, "thumbnail", c.Thumbnail, "Also write a downscaled thumbnail")
	flags.IntVar(&c.ThumbnailWidth, "thumbnail-width", c.ThumbnailWidth, "Thumbnail width in pixels")
	flags.BoolVar(&c.Stamp, "stamp", c.Stamp, "Draw render statistics onto encoded images")
	flags.StringVar(&c.UploadKey, "upload-key", c.UploadKey, "Upload the encoded image to S3 under this key")
	flags.StringVar(&c.S3.Bucket, "s3-bucket", c.S3.Bucket, "S3 bucket for uploads")
	flags.StringVar(&c.S3.Endpoint, "s3-endpoint", c.S3.Endpoint, "S3-compatible endpoint URL")
	flags.StringVar(&c.S3.Region, "s3-region", c.S3.Region, "S3 region")

	return flags
}

// Usage writes the flag documentation
func Usage(w io.Writer) {
	flags := Default().flagSet()
	flags.SetOutput(w)
	fmt.Fprintln(w, "Usage: raytracer [flags]")
	flags.PrintDefaults()
}

func (c *Config) applyEnv() error {
	c.Scene = getEnv(EnvPrefix+"SCENE", c.Scene)
	c.Integrator = getEnv(EnvPrefix+"INTEGRATOR", c.Integrator)
	c.Output = getEnv(EnvPrefix+"OUTPUT", c.Output)
	c.UploadKey = getEnv(EnvPrefix+"UPLOAD_KEY", c.UploadKey)

	c.S3 = imageio.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
		ACL:       os.Getenv("S3_ACL"),
	}

	ints := []struct {
		key   string
		value *int
	}{
		{"WIDTH", &c.Width},
		{"HEIGHT", &c.Height},
		{"SAMPLES", &c.SamplesPerPixel},
		{"MAX_DEPTH", &c.MaxDepth},
		{"THUMBNAIL_WIDTH", &c.ThumbnailWidth},
	}
	for _, entry := range ints {
		if err := envInt(EnvPrefix+entry.key, entry.value); err != nil {
			return err
		}
	}

	if raw, ok := os.LookupEnv(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSEED %q: %w", EnvPrefix, raw, err)
		}
		c.Seed = seed
	}

	bools := []struct {
		key   string
		value *bool
	}{
		{"GAMMA", &c.Gamma},
		{"THUMBNAIL", &c.Thumbnail},
		{"STAMP", &c.Stamp},
	}
	for _, entry := range bools {
		if raw, ok := os.LookupEnv(EnvPrefix + entry.key); ok {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, entry.key, raw, err)
			}
			*entry.value = parsed
		}
	}

	return nil
}

// Validate checks the configuration for values that cannot be rendered
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("image size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel < 0 {
		return fmt.Errorf("samples per pixel must not be negative, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < -1 {
		return fmt.Errorf("max depth must be -1 or more, got %d", c.MaxDepth)
	}
	if !slices.Contains(Integrators, c.Integrator) {
		return fmt.Errorf("unknown integrator %q (available: %s)", c.Integrator, strings.Join(Integrators, ", "))
	}
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if c.Thumbnail && c.ThumbnailWidth <= 0 {
		return fmt.Errorf("thumbnail width must be positive, got %d", c.ThumbnailWidth)
	}
	if c.UploadKey != "" && !c.S3.Enabled() {
		return fmt.Errorf("upload key %q set but no S3 bucket configured", c.UploadKey)
	}
	return nil
}

// getEnv returns the value of key, or fallback when it is unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, target *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	*target = value
	return nil
}

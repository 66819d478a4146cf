package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// EnvPrefix namespaces the environment variables. Each variable can also be set
// without the prefix (SAMPLES as well as PATHTRACER_SAMPLES).
const EnvPrefix = "PATHTRACER"

// Config holds the render settings shared by the CLI and the web server
type Config struct {
	Scene       string      `envconfig:"SCENE" default:"random"`
	Width       int         `envconfig:"WIDTH" default:"400"`
	AspectRatio AspectRatio `envconfig:"ASPECT_RATIO" default:"16:9"`
	Samples     int         `envconfig:"SAMPLES" default:"10"`
	MaxDepth    int         `envconfig:"MAX_DEPTH" default:"50"`
	Seed        int64       `envconfig:"SEED" default:"42"`
	Workers     int         `envconfig:"WORKERS" default:"0"` // 0 = use CPU count
	TileSize    int         `envconfig:"TILE_SIZE" default:"32"`
	Output      string      `envconfig:"OUTPUT"` // Empty = PPM on stdout
	Port        int         `envconfig:"PORT" default:"8080"`
}

// Load reads the configuration from the environment. It does not validate:
// callers apply their flag overrides first and then call Validate.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// Height derives the image height from the width and aspect ratio
func (c Config) Height() int {
	return int(float64(c.Width) / float64(c.AspectRatio))
}

// Validate rejects settings the renderer cannot handle
func (c Config) Validate() error {
	var errs []error

	if !slices.Contains(scene.Names(), c.Scene) {
		errs = append(errs, fmt.Errorf("%w %q (available: %s)", scene.ErrUnknownScene, c.Scene, strings.Join(scene.Names(), ", ")))
	}
	if c.AspectRatio <= 0 {
		errs = append(errs, fmt.Errorf("aspect ratio must be positive, got %g", float64(c.AspectRatio)))
	} else if c.Width < 2 || c.Height() < 2 {
		// The pixel loop divides by width-1 and height-1
		errs = append(errs, fmt.Errorf("image must be at least 2x2 pixels, got %dx%d", c.Width, c.Height()))
	}
	if c.Samples <= 0 {
		errs = append(errs, fmt.Errorf("samples must be positive, got %d", c.Samples))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max depth must be positive, got %d", c.MaxDepth))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers cannot be negative, got %d", c.Workers))
	}
	if c.TileSize < 0 {
		errs = append(errs, fmt.Errorf("tile size cannot be negative, got %d", c.TileSize))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SceneOptions returns the scene overrides this config asks for
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		Seed:        c.Seed,
		Width:       c.Width,
		AspectRatio: float64(c.AspectRatio),
		Samples:     c.Samples,
		MaxDepth:    c.MaxDepth,
	}
}

// RenderOptions returns the work distribution settings
func (c Config) RenderOptions() renderer.RenderOptions {
	return renderer.RenderOptions{
		TileSize:   c.TileSize,
		NumWorkers: c.Workers,
		Seed:       c.Seed,
	}
}

// AspectRatio is width / height. It parses "1.5", "16:9" or "16/9" and can be
// used both as an envconfig field and as a flag.Value.
type AspectRatio float64

var _ envconfig.Decoder = (*AspectRatio)(nil)

// Decode implements envconfig.Decoder
func (a *AspectRatio) Decode(value string) error {
	return a.Set(value)
}

// Set implements flag.Value
func (a *AspectRatio) Set(value string) error {
	value = strings.TrimSpace(value)

	if i := strings.IndexAny(value, ":/"); i >= 0 {
		w, errW := strconv.ParseFloat(strings.TrimSpace(value[:i]), 64)
		h, errH := strconv.ParseFloat(strings.TrimSpace(value[i+1:]), 64)
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return fmt.Errorf("invalid aspect ratio %q", value)
		}
		*a = AspectRatio(w / h)
		return nil
	}

	ratio, err := strconv.ParseFloat(value, 64)
	if err != nil || ratio <= 0 {
		return fmt.Errorf("invalid aspect ratio %q", value)
	}
	*a = AspectRatio(ratio)
	return nil
}

// String implements flag.Value
func (a *AspectRatio) String() string {
	if a == nil {
		return ""
	}
	return strconv.FormatFloat(float64(*a), 'g', -1, 64)
}

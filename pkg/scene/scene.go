package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Scene contains all the elements needed for rendering. It is read-only once
// construction completes.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.HittableList // Objects in the scene
	Background     integrator.Background  // Sky seen by escaping rays
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Validate reports sampling configurations the pixel loop cannot handle
func (c SamplingConfig) Validate() error {
	// Pixel coordinates are divided by (width-1) and (height-1)
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("image must be at least 2x2 pixels, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// Options override a preset's defaults. Zero values keep the preset's choice.
type Options struct {
	Seed        int64                 // Seed for procedurally placed objects
	Width       int                   // Image width in pixels
	AspectRatio float64               // Width / height
	Samples     int                   // Samples per pixel
	MaxDepth    int                   // Maximum ray bounce depth
	Camera      geometry.CameraConfig // Camera fields to override
}

// newScene builds an empty scene from a preset's camera and sampling defaults
// with opts applied on top. The merged camera config is validated before the
// camera is built, since a degenerate basis cannot be constructed.
func newScene(cameraConfig geometry.CameraConfig, sampling SamplingConfig, opts Options) (*Scene, error) {
	cameraConfig = geometry.MergeCameraConfig(cameraConfig, opts.Camera)
	if opts.AspectRatio != 0 {
		cameraConfig.AspectRatio = opts.AspectRatio
	}

	if opts.Width != 0 {
		sampling.Width = opts.Width
	}
	sampling.Height = int(float64(sampling.Width) / cameraConfig.AspectRatio)
	if opts.Samples != 0 {
		sampling.SamplesPerPixel = opts.Samples
	}
	if opts.MaxDepth != 0 {
		sampling.MaxDepth = opts.MaxDepth
	}

	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: sampling,
	}, nil
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.World.Add(shapes...)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("invalid camera: %w", err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid sampling config: %w", err)
	}
	return nil
}

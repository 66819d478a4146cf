package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewSingleSphereScene creates one diffuse sphere in front of a pinhole camera
// at the origin looking down -z
func NewSingleSphereScene(opts Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          90.0,
		Aperture:      0.0,
		FocusDistance: 1.0,
	}

	samplingConfig := SamplingConfig{
		Width:           400,
		SamplesPerPixel: 10,
		MaxDepth:        50,
	}

	s, err := newScene(cameraConfig, samplingConfig, opts)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	return s, nil
}

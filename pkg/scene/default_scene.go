package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(opts Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),    // Standard up direction
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0, // Narrower field of view for focus effect
		Aperture:      0.05, // Mild depth of field blur
		FocusDistance: 0.0,  // Auto-calculate focus distance
	}

	samplingConfig := SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s, err := newScene(cameraConfig, samplingConfig, opts)
	if err != nil {
		return nil, err
	}

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	// Ground sphere whose top touches y=0
	ground := geometry.NewSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)

	sphereCenter := geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	sphereRight := geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	solidGlassSphere := geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass)

	// Hollow glass bubble: the negative radius flips the inner wall's normals
	hollowGlassOuter := geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, materialGlass)
	hollowGlassInner := geometry.NewSphere(core.NewVec3(-1, 0.5, -1), -0.45, materialGlass)
	hollowGlassCenter := geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.2, lambertianBlue)

	s.Add(ground, sphereCenter, sphereRight, solidGlassSphere,
		hollowGlassOuter, hollowGlassInner, hollowGlassCenter)

	return s, nil
}

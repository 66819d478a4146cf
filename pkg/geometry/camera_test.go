package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// constantSampler returns the same value for every draw
type constantSampler float64

func (c constantSampler) Get1D() float64 { return float64(c) }
func (c constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(float64(c), float64(c))
}

func pinholeConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   2.0,
		FocusDistance: 1.0,
	}
}

func TestCamera_PinholeRays(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	sampler := core.NewSeededSampler(42)

	// vfov 90 -> viewport 2 high, 4 wide at distance 1
	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"right edge", 1, 0.5, core.NewVec3(2, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !ray.Origin.Equals(core.Vec3{}) {
				t.Errorf("Pinhole ray should start at the camera center, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_AutoFocusDistance(t *testing.T) {
	config := pinholeConfig()
	config.Center = core.NewVec3(3, 3, 2)
	config.FocusDistance = 0
	camera := NewCamera(config)

	expected := config.Center.Subtract(config.LookAt).Length()
	if got := camera.Config().FocusDistance; math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected focus distance %f, got %f", expected, got)
	}
}

func TestCamera_DepthOfField(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 0.5
	config.FocusDistance = 4
	camera := NewCamera(config)

	if camera.LensRadius() != 0.25 {
		t.Errorf("Expected lens radius 0.25, got %f", camera.LensRadius())
	}

	sampler := core.NewSeededSampler(42)
	focalPoint := core.NewVec3(0, 0, -4)
	spread := false

	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		if ray.Origin.Length() >= 0.25 {
			t.Fatalf("Ray origin %v lies outside the lens disk", ray.Origin)
		}
		if ray.Origin.Z != 0 {
			t.Fatalf("Lens offset should lie in the camera plane, got %v", ray.Origin)
		}
		if ray.Origin.Length() > 1e-6 {
			spread = true
		}

		// Rays through the same pixel converge on the focal plane
		if p := ray.At(1); p.Subtract(focalPoint).Length() > 1e-9 {
			t.Fatalf("Ray from %v misses the focal point, reaches %v", ray.Origin, p)
		}
	}

	if !spread {
		t.Error("Expected lens sampling to move the ray origin")
	}
}

func TestCamera_CenterRayWithConstantSampler(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 1
	camera := NewCamera(config)

	// 0.5 maps to the disk center, so even a wide aperture yields the pinhole ray
	ray := camera.GetRay(0.5, 0.5, constantSampler(0.5))
	if !ray.Origin.Equals(core.Vec3{}) {
		t.Errorf("Expected origin at the lens center, got %v", ray.Origin)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*CameraConfig)
		wantErr bool
	}{
		{"valid", func(c *CameraConfig) {}, false},
		{"coincident look-from and look-at", func(c *CameraConfig) { c.LookAt = c.Center }, true},
		{"zero up", func(c *CameraConfig) { c.Up = core.Vec3{} }, true},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }, true},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }, true},
		{"fov of 180", func(c *CameraConfig) { c.VFov = 180 }, true},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }, true},
		{"negative aperture", func(c *CameraConfig) { c.Aperture = -0.1 }, true},
		{"negative focus", func(c *CameraConfig) { c.FocusDistance = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := pinholeConfig()
			tt.modify(&config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := pinholeConfig()
	override := CameraConfig{
		Center:      core.NewVec3(1, 2, 3),
		AspectRatio: 1.5,
	}

	merged := MergeCameraConfig(base, override)

	if !merged.Center.Equals(override.Center) {
		t.Errorf("Expected center override %v, got %v", override.Center, merged.Center)
	}
	if merged.AspectRatio != 1.5 {
		t.Errorf("Expected aspect ratio 1.5, got %f", merged.AspectRatio)
	}
	if merged.VFov != base.VFov || !merged.LookAt.Equals(base.LookAt) || !merged.Up.Equals(base.Up) {
		t.Errorf("Unset fields should keep base values, got %+v", merged)
	}
}

package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// centerSampler places every draw at the middle of its range, so the
// inspected ray goes through the pixel center and the lens center
type centerSampler struct{}

func (centerSampler) Get1D() float64 { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo adds the shape's own parameters to properties
func (s *Server) extractGeometryInfo(shape geometry.Shape, properties map[string]interface{}) string {
	switch g := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(g.Center)
		properties["radius"] = g.Radius
		return "sphere"
	default:
		return "unknown"
	}
}

// inspectPixel traces the center ray of pixel (x, y), with y counted from the
// top of the image, and reports the nearest surface it hits
func (s *Server) inspectPixel(sceneObj *scene.Scene, x, y int) InspectResponse {
	config := sceneObj.SamplingConfig
	j := config.Height - 1 - y
	u := (float64(x) + 0.5) / float64(config.Width-1)
	v := (float64(j) + 0.5) / float64(config.Height-1)
	ray := sceneObj.Camera.GetRay(u, v, centerSampler{})

	closestShape, closestHit, isHit := sceneObj.World.HitShape(ray, integrator.ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return InspectResponse{Hit: false}
	}

	materialType, properties := s.extractMaterialInfo(closestHit.Material)
	geometryType := s.extractGeometryInfo(closestShape, properties)

	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        toArray(closestHit.Point),
		Normal:       toArray(closestHit.Normal),
		Distance:     closestHit.T,
		FrontFace:    closestHit.FrontFace,
		Properties:   properties,
	}
}

// handleInspect reports what the camera sees at one pixel of a scene
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = s.defaults.Scene
	}

	width, err := parseIntParam(query, "width", s.defaults.Width, minWidth, maxWidth)
	if err != nil {
		writeError(w, err)
		return
	}
	aspect, err := parseFloatParam(query, "aspect", float64(s.defaults.AspectRatio), minAspect, maxAspect)
	if err != nil {
		writeError(w, err)
		return
	}

	sceneObj, err := s.createScene(sceneName, scene.Options{
		Seed:        s.defaults.Seed,
		Width:       width,
		AspectRatio: aspect,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	config := sceneObj.SamplingConfig
	x, err := parseIntParam(query, "x", -1, 0, config.Width-1)
	if err != nil {
		writeError(w, err)
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, config.Height-1)
	if err != nil {
		writeError(w, err)
		return
	}
	if x < 0 || y < 0 {
		writeError(w, fmt.Errorf("%w: x and y are required", errBadRequest))
		return
	}

	writeJSON(w, http.StatusOK, s.inspectPixel(sceneObj, x, y))
}

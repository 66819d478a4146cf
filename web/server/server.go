package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Parameter limits for render and inspect requests
const (
	minWidth, maxWidth     = 2, 2000
	minSamples, maxSamples = 1, 10000
	minDepth, maxDepth     = 1, 1000
	minAspect, maxAspect   = 0.1, 10.0
)

// Server handles web requests for the path tracer
type Server struct {
	port     int
	defaults config.Config // Values used when a request omits a parameter
}

// NewServer creates a new web server
func NewServer(cfg config.Config) *Server {
	return &Server{port: cfg.Port, defaults: cfg}
}

// Handler returns the router for all API endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Starting web server on http://localhost%s", addr)
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = s.defaults.Scene
	}

	// Zero options keep every preset default
	sceneObj, err := scene.Create(sceneName, scene.Options{})
	if err != nil {
		writeError(w, err)
		return
	}

	config := sceneObj.SamplingConfig
	camera := sceneObj.Camera.Config()
	response := map[string]interface{}{
		"scene": sceneName,
		"camera": map[string]interface{}{
			"center":        toArray(camera.Center),
			"lookAt":        toArray(camera.LookAt),
			"vfov":          camera.VFov,
			"aperture":      camera.Aperture,
			"lensRadius":    sceneObj.Camera.LensRadius(),
			"focusDistance": camera.FocusDistance,
		},
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"aspectRatio":     sceneObj.CameraConfig.AspectRatio,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minWidth, "max": maxWidth},
			"samples": map[string]int{"min": minSamples, "max": maxSamples},
			"depth":   map[string]int{"min": minDepth, "max": maxDepth},
			"aspect":  map[string]float64{"min": minAspect, "max": maxAspect},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// createScene builds the named scene for a request
func (s *Server) createScene(name string, opts scene.Options) (*scene.Scene, error) {
	sceneObj, err := scene.Create(name, opts)
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return sceneObj, nil
}

// errBadRequest marks errors caused by request parameters
var errBadRequest = errors.New("invalid request")

// writeError maps err to a status code: unknown scenes are 404, bad
// parameters 400, everything else 500
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid %s: %s", errBadRequest, key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%w: %s must be between %d and %d, got: %d", errBadRequest, key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid %s: %s", errBadRequest, key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%w: %s must be between %g and %g, got: %g", errBadRequest, key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string  `json:"scene"`       // Scene name (e.g., "random")
	Width       int     `json:"width"`       // Image width
	AspectRatio float64 `json:"aspectRatio"` // Width / height
	Samples     int     `json:"samples"`     // Samples per pixel
	MaxDepth    int     `json:"maxDepth"`    // Maximum bounce depth
	Seed        int64   `json:"seed"`        // Random seed
	Format      string  `json:"format"`      // Output format for /api/render
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	TotalSamples    int64 `json:"totalSamples"`
	SamplesPerPixel int   `json:"samplesPerPixel"`
	TotalTiles      int   `json:"totalTiles"`
	NumWorkers      int   `json:"numWorkers"`
	ElapsedMs       int64   `json:"elapsedMs"`
	AvgLuminance    float64 `json:"avgLuminance"`
}

// CompleteEvent is the final event of a streamed render
type CompleteEvent struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

var renderCounter atomic.Int64

func nextRenderID() string {
	return fmt.Sprintf("render-%d", renderCounter.Add(1))
}

// handleRender renders the requested scene and responds with the finished image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	contentType, err := output.ContentType(req.Format)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	sceneObj, err := s.createScene(req.Scene, req.sceneOptions())
	if err != nil {
		writeError(w, err)
		return
	}

	logger := NewWebLogger(nextRenderID(), nil)
	img, stats, err := s.render(r.Context(), sceneObj, req, logger)
	if err != nil {
		if r.Context().Err() != nil {
			// Client went away; nobody is left to answer
			log.Printf("Render cancelled: %v", err)
			return
		}
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := output.EncodeImage(&buf, img, req.Format); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Duration", renderer.FormatDuration(stats.Duration))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Luminance", strconv.FormatFloat(stats.AvgLuminance, 'f', 4, 64))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write image: %v", err)
	}
}

// handleRenderStream renders the requested scene, streaming render log lines
// as SSE "console" events and finishing with a "complete" event that carries
// the image as a base64 PNG
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sceneObj, err := s.createScene(req.Scene, req.sceneOptions())
	if err != nil {
		writeError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, fmt.Errorf("streaming not supported"))
		return
	}

	s.setSSEHeaders(w)

	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(nextRenderID(), consoleChan)

	type renderResult struct {
		img   *image.RGBA
		stats renderer.RenderStats
		err   error
	}
	done := make(chan renderResult, 1)
	go func() {
		img, stats, err := s.render(r.Context(), sceneObj, req, logger)
		done <- renderResult{img: img, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)
		case result := <-done:
			// The logger never writes after Render returns
			s.drainConsole(w, flusher, consoleChan)
			if result.err != nil {
				s.sendSSEEvent(w, flusher, "error", result.err.Error())
				return
			}

			imageData, err := imageToBase64PNG(result.img)
			if err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("failed to encode image: %v", err))
				return
			}
			s.sendSSEJSON(w, flusher, "complete", CompleteEvent{
				ImageData: imageData,
				Width:     result.img.Bounds().Dx(),
				Height:    result.img.Bounds().Dy(),
				Stats:     toStats(result.stats),
			})
			return
		}
	}
}

func (s *Server) render(ctx context.Context, sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	options := s.defaults.RenderOptions()
	options.Seed = req.Seed
	return renderer.NewRaytracer(sceneObj, options, logger).Render(ctx)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:  s.defaults.Scene,
		Format: "png",
	}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}
	if format := query.Get("format"); format != "" {
		req.Format = format
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", s.defaults.Width, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.AspectRatio, err = parseFloatParam(query, "aspect", float64(s.defaults.AspectRatio), minAspect, maxAspect); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", s.defaults.Samples, minSamples, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", s.defaults.MaxDepth, minDepth, maxDepth); err != nil {
		return nil, err
	}

	req.Seed = s.defaults.Seed
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: invalid seed: %s", errBadRequest, value)
		}
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

func (req *RenderRequest) sceneOptions() scene.Options {
	return scene.Options{
		Seed:        req.Seed,
		Width:       req.Width,
		AspectRatio: req.AspectRatio,
		Samples:     req.Samples,
		MaxDepth:    req.MaxDepth,
	}
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		TotalSamples:    int64(stats.TotalSamples),
		SamplesPerPixel: stats.SamplesPerPixel,
		TotalTiles:      stats.TotalTiles,
		NumWorkers:      stats.NumWorkers,
		ElapsedMs:       stats.Duration.Milliseconds(),
		AvgLuminance:    stats.AvgLuminance,
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.EncodeImage(&buf, img, "png"); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)
		default:
			return
		}
	}
}

// sendSSEJSON sends v as the JSON data of an SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

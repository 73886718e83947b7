package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/imageio"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Server renders built-in scenes on request
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`
	Integrator string `json:"integrator"` // "path-tracing" or "normal"
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Samples    int    `json:"samples"`  // Samples per pixel
	MaxDepth   int    `json:"maxDepth"` // Maximum scatter depth
	Seed       int64  `json:"seed"`
	Format     string `json:"format"` // "png", "jpg" or "ppm"
	Gamma      bool   `json:"gamma"`
	Stamp      bool   `json:"stamp"`
}

// SceneConfig is the default configuration reported for a scene
type SceneConfig struct {
	scene.SceneInfo
	Width    int `json:"width"`
	Height   int `json:"height"`
	Samples  int `json:"samples"`
	MaxDepth int `json:"maxDepth"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, scene.ListScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scene")))
	sc, err := scene.Create(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var info scene.SceneInfo
	for _, candidate := range scene.ListScenes() {
		if candidate.ID == name {
			info = candidate
		}
	}

	writeJSON(w, SceneConfig{
		SceneInfo: info,
		Width:     sc.SamplingConfig.Width,
		Height:    sc.SamplingConfig.Height,
		Samples:   sc.SamplingConfig.SamplesPerPixel,
		MaxDepth:  sc.SamplingConfig.MaxDepth,
	})
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sc, err := scene.Create(queryDefault(r.URL.Query(), "scene", "default"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	req, err := parseRenderRequest(r.URL.Query(), sc.SamplingConfig)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	var integ integrator.Integrator
	switch req.Integrator {
	case "path-tracing":
		integ = integrator.NewPathTracingIntegrator(req.MaxDepth)
	case "normal":
		integ = integrator.NewNormalIntegrator()
	default:
		http.Error(w, "Unknown integrator: "+req.Integrator, http.StatusBadRequest)
		return
	}

	config := core.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.MaxDepth,
	}
	frame, stats := renderer.NewRaytracer(sc, config, integ, req.Seed).Render()
	log.Printf("Rendered %s %dx%d in %v", req.Scene, req.Width, req.Height, stats.Elapsed)

	data, contentType, err := encodeFrame(req, frame, stats)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Render-Time", stats.Elapsed.Round(time.Millisecond).String())
	w.Write(data)
}

func encodeFrame(req *RenderRequest, frame *renderer.Frame, stats renderer.RenderStats) ([]byte, string, error) {
	if req.Format == "ppm" {
		var buf bytes.Buffer
		if err := imageio.WritePPM(&buf, frame, imageio.DefaultMaxValue, req.Gamma); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/x-portable-pixmap", nil
	}

	img := frame.ToRGBA(req.Gamma)
	if req.Stamp {
		return imageio.Encode("render."+req.Format, imageio.Stamp(img, req.Scene, stats.String()))
	}
	return imageio.Encode("render."+req.Format, img)
}

// parseRenderRequest parses request parameters, falling back to the scene's defaults
func parseRenderRequest(values url.Values, defaults core.SamplingConfig) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:      queryDefault(values, "scene", "default"),
		Integrator: queryDefault(values, "integrator", "path-tracing"),
		Format:     queryDefault(values, "format", "png"),
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaults.Width, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", defaults.SamplesPerPixel, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", defaults.MaxDepth, 0, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	if req.Gamma, err = parseBoolParam(values, "gamma", true); err != nil {
		return nil, err
	}
	if req.Stamp, err = parseBoolParam(values, "stamp", false); err != nil {
		return nil, err
	}

	switch req.Format {
	case "png", "jpg", "ppm":
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

func queryDefault(values url.Values, key, defaultValue string) string {
	if value := values.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

package config

import (
	"errors"
	"flag"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scene != "random" || cfg.Width != 400 || cfg.Samples != 10 || cfg.MaxDepth != 50 || cfg.Seed != 42 {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if math.Abs(float64(cfg.AspectRatio)-16.0/9.0) > 1e-12 {
		t.Errorf("Expected 16:9 aspect ratio, got %v", cfg.AspectRatio)
	}
	if cfg.Height() != 225 {
		t.Errorf("Expected height 225, got %d", cfg.Height())
	}
	if cfg.Output != "" {
		t.Errorf("Expected empty output, got %q", cfg.Output)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SAMPLES", "100")
	t.Setenv("PATHTRACER_WIDTH", "320")
	t.Setenv("ASPECT_RATIO", "4/3")
	t.Setenv("SCENE", "single")
	t.Setenv("OUTPUT", "out.png")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Samples != 100 {
		t.Errorf("Expected samples 100, got %d", cfg.Samples)
	}
	if cfg.Width != 320 || cfg.Height() != 240 {
		t.Errorf("Expected 320x240, got %dx%d", cfg.Width, cfg.Height())
	}
	if cfg.Scene != "single" || cfg.Output != "out.png" {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestLoad_PrefixedTakesPrecedence(t *testing.T) {
	t.Setenv("SAMPLES", "5")
	t.Setenv("PATHTRACER_SAMPLES", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Samples != 7 {
		t.Errorf("Expected prefixed variable to win, got %d", cfg.Samples)
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"not a number", "SAMPLES", "many"},
		{"bad aspect", "ASPECT_RATIO", "wide"},
		{"bad seed", "SEED", "0x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_DefersValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero samples", "SAMPLES", "0"},
		{"unknown scene", "SCENE", "cornell"},
		{"tiny width", "WIDTH", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load should only parse, got %v", err)
			}
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected Validate to reject %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Scene: "default", Width: 400, AspectRatio: 2, Samples: 1, MaxDepth: 1}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"height rounds to 1", func(c *Config) { c.Width = 3 }, true},
		{"negative aspect", func(c *Config) { c.AspectRatio = -1 }, true},
		{"no depth", func(c *Config) { c.MaxDepth = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -2 }, true},
		{"negative tile size", func(c *Config) { c.TileSize = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UnknownSceneIsWrapped(t *testing.T) {
	cfg := Config{Scene: "nope", Width: 400, AspectRatio: 2, Samples: 1, MaxDepth: 1}
	if err := cfg.Validate(); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestAspectRatio_Set(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"1.5", 1.5, false},
		{"16:9", 16.0 / 9.0, false},
		{"4/3", 4.0 / 3.0, false},
		{" 2 : 1 ", 2, false},
		{"0", 0, true},
		{"16:0", 0, true},
		{"wide", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var a AspectRatio
			err := a.Set(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %t", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(float64(a)-tt.expected) > 1e-12 {
				t.Errorf("Set(%q) = %v, want %v", tt.input, float64(a), tt.expected)
			}
		})
	}
}

func TestAspectRatio_Flag(t *testing.T) {
	ratio := AspectRatio(1)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&ratio, "aspect", "aspect ratio")

	if err := fs.Parse([]string{"-aspect", "21:9"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if math.Abs(float64(ratio)-21.0/9.0) > 1e-12 {
		t.Errorf("Expected 21:9, got %v", float64(ratio))
	}
	if ratio.String() != "2.3333333333333335" {
		t.Errorf("Unexpected String() %q", ratio.String())
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{Scene: "single", Width: 100, AspectRatio: 2, Samples: 3, MaxDepth: 4, Seed: 9, Workers: 2, TileSize: 16}

	opts := cfg.SceneOptions()
	if opts.Width != 100 || opts.AspectRatio != 2 || opts.Samples != 3 || opts.MaxDepth != 4 || opts.Seed != 9 {
		t.Errorf("Unexpected scene options %+v", opts)
	}

	render := cfg.RenderOptions()
	if render.NumWorkers != 2 || render.TileSize != 16 || render.Seed != 9 {
		t.Errorf("Unexpected render options %+v", render)
	}
}

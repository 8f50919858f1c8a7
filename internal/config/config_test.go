package config

import (
	"testing"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	want := Window{Title: "Template", Width: 800, Height: 600}
	if cfg.Window != want {
		t.Errorf("Window = %+v, want %+v", cfg.Window, want)
	}
	if cfg.Platform != PlatformSDL {
		t.Errorf("Platform = %q, want %q", cfg.Platform, PlatformSDL)
	}
	if cfg.Backend != BackendOpenGL {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendOpenGL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("backend: vulkan\nwindow:\n  width: 1024\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Backend != BackendVulkan {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendVulkan)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 600 {
		t.Errorf("Window = %dx%d, want 1024x600", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Template" {
		t.Errorf("Title = %q, want default", cfg.Window.Title)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvPlatform:   " GLFW ",
		EnvBackend:    "Vulkan",
		EnvValidation: "true",
		EnvLogLevel:   "debug",
		EnvShaderDir:  "/opt/shaders",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg, err := load(lookup)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.Platform != PlatformGLFW {
		t.Errorf("Platform = %q, want %q", cfg.Platform, PlatformGLFW)
	}
	if cfg.Backend != BackendVulkan {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendVulkan)
	}
	if !cfg.Validation {
		t.Error("Validation = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ShaderDir != "/opt/shaders" {
		t.Errorf("ShaderDir = %q", cfg.ShaderDir)
	}
}

func TestLoadRejectsBadValidationFlag(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key == EnvValidation {
			return "sometimes", true
		}
		return "", false
	}

	if _, err := load(lookup); err == nil {
		t.Fatal("load() accepted a non-boolean validation flag")
	}
}

func TestValidate(t *testing.T) {
	base, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"unknown platform", func(c *Config) { c.Platform = "x11" }},
		{"unknown backend", func(c *Config) { c.Backend = "metal" }},
		{"empty shader dir", func(c *Config) { c.ShaderDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

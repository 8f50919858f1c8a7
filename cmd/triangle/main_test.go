package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vkngwrapper/triangle/internal/config"
	"github.com/vkngwrapper/triangle/internal/platform"
	"github.com/vkngwrapper/triangle/internal/render"
)

func TestNewFactory(t *testing.T) {
	for _, name := range []string{config.PlatformSDL, config.PlatformGLFW} {
		factory, err := newFactory(name)
		if err != nil {
			t.Fatalf("newFactory(%q) error = %v", name, err)
		}
		if factory.Name() != name {
			t.Errorf("newFactory(%q).Name() = %q", name, factory.Name())
		}
	}

	if _, err := newFactory("wayland"); err == nil {
		t.Error("newFactory accepted an unknown platform")
	}
}

func TestNewBackend(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		backend string
		api     platform.API
	}{
		{config.BackendOpenGL, platform.APIOpenGL},
		{config.BackendVulkan, platform.APIVulkan},
	}

	for _, tt := range tests {
		cfg.Backend = tt.backend
		backend, err := newBackend(cfg)
		if err != nil {
			t.Fatalf("newBackend(%q) error = %v", tt.backend, err)
		}
		if backend.Name() != tt.backend || backend.API() != tt.api {
			t.Errorf("newBackend(%q) = %s/%s", tt.backend, backend.Name(), backend.API())
		}
	}

	cfg.Backend = "metal"
	if _, err := newBackend(cfg); err == nil {
		t.Error("newBackend accepted an unknown backend")
	}
}

func TestDefaultShadersShipWithSource(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	backend, err := newBackend(cfg)
	if err != nil {
		t.Fatal(err)
	}

	vert, frag := backend.ShaderPaths()
	dir := filepath.Join("..", "..", cfg.ShaderDir)
	if _, err := render.LoadShaders(os.DirFS(dir), vert, frag); err != nil {
		t.Errorf("default %s backend cannot load its shaders from %s: %v", backend.Name(), dir, err)
	}
}

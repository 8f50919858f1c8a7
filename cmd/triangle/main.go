package main

import (
	"log"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/triangle/internal/config"
	"github.com/vkngwrapper/triangle/internal/input"
	"github.com/vkngwrapper/triangle/internal/logging"
	"github.com/vkngwrapper/triangle/internal/opengl"
	"github.com/vkngwrapper/triangle/internal/platform"
	"github.com/vkngwrapper/triangle/internal/platform/glfw"
	"github.com/vkngwrapper/triangle/internal/platform/sdl"
	"github.com/vkngwrapper/triangle/internal/render"
	"github.com/vkngwrapper/triangle/internal/timing"
	"github.com/vkngwrapper/triangle/internal/vulkan"
)

func newFactory(name string) (platform.Factory, error) {
	switch name {
	case config.PlatformSDL:
		return sdl.Factory{}, nil
	case config.PlatformGLFW:
		return glfw.Factory{}, nil
	}
	return nil, errors.Errorf("unknown platform %q", name)
}

func newBackend(cfg config.Config) (render.Backend, error) {
	switch cfg.Backend {
	case config.BackendOpenGL:
		return opengl.NewBackend(), nil
	case config.BackendVulkan:
		return vulkan.NewBackend(vulkan.Options{
			ApplicationName: cfg.Window.Title,
			Validation:      cfg.Validation,
		}), nil
	}
	return nil, errors.Errorf("unknown backend %q", cfg.Backend)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	logging.SetLogger(logger)

	factory, err := newFactory(cfg.Platform)
	if err != nil {
		return err
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	vertexPath, fragmentPath := backend.ShaderPaths()
	shaders, err := render.LoadShaders(os.DirFS(cfg.ShaderDir), vertexPath, fragmentPath)
	if err != nil {
		return err
	}

	logger.Info("starting", "platform", factory.Name(), "backend", backend.Name())

	manager := platform.NewManager()
	err = manager.Init(factory, platform.WindowConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		API:    backend.API(),
	})
	if err != nil {
		return err
	}
	defer func() {
		manager.Shutdown()
		manager.Release()
	}()

	err = backend.Init(manager.Window(), shaders, render.Triangle)
	defer backend.Destroy()
	if err != nil {
		return err
	}

	loop := render.NewLoop(manager, timing.New(), input.New(input.DefaultTable()), backend, cfg.AnimationSpeed)
	return loop.Run()
}

func main() {
	runtime.LockOSThread()

	err := run()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}

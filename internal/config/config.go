// Package config loads the compiled-in launch configuration.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Platform names accepted in Config.Platform.
const (
	PlatformSDL  = "sdl"
	PlatformGLFW = "glfw"
)

// Backend names accepted in Config.Backend.
const (
	BackendOpenGL = "opengl"
	BackendVulkan = "vulkan"
)

// Environment variables consulted by Load.
const (
	EnvPlatform   = "TRIANGLE_PLATFORM"
	EnvBackend    = "TRIANGLE_BACKEND"
	EnvValidation = "TRIANGLE_VALIDATION"
	EnvLogLevel   = "TRIANGLE_LOG_LEVEL"
	EnvShaderDir  = "TRIANGLE_SHADER_DIR"
)

// Window is the title and initial size of the single application window.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Config is the full launch configuration.
type Config struct {
	Window     Window `yaml:"window"`
	Platform   string `yaml:"platform"`
	Backend    string `yaml:"backend"`
	Validation bool   `yaml:"validation"` // Vulkan validation layer + debug messenger
	ShaderDir  string `yaml:"shader_dir"`
	// AnimationSpeed is the rotation rate of the triangle in radians per second.
	AnimationSpeed float64 `yaml:"animation_speed"`
	LogLevel       string  `yaml:"log_level"`
}

// Default returns the compiled-in configuration.
func Default() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing compiled-in defaults")
	}
	return cfg, nil
}

// Parse overlays data on top of the compiled-in defaults and validates the
// result.
func Parse(data []byte) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}

	return cfg, cfg.Validate()
}

// Load returns the compiled-in configuration with environment overrides
// applied.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if v, ok := lookup(EnvPlatform); ok {
		cfg.Platform = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvBackend); ok {
		cfg.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvValidation); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "%s", EnvValidation)
		}
		cfg.Validation = enabled
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvShaderDir); ok {
		cfg.ShaderDir = v
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	switch c.Platform {
	case PlatformSDL, PlatformGLFW:
	default:
		return errors.Errorf("unknown platform %q", c.Platform)
	}

	switch c.Backend {
	case BackendOpenGL, BackendVulkan:
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}

	if c.ShaderDir == "" {
		return errors.New("shader_dir must not be empty")
	}

	return nil
}

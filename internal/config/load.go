package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the frame loop cannot recover from.
// Bad startup modes are fatal here rather than at frame time.
func (c *Config) Validate() error {
	switch c.Startup.RenderMode {
	case "filled", "wireframe", "points":
	default:
		return fmt.Errorf("unknown render_mode %q", c.Startup.RenderMode)
	}
	switch c.Startup.MotionMode {
	case "orbital", "bobbing", "figure_eight", "none":
	default:
		return fmt.Errorf("unknown motion_mode %q", c.Startup.MotionMode)
	}
	switch c.Startup.ColoringMode {
	case "solid", "region", "angle", "mixed", "animated":
	default:
		return fmt.Errorf("unknown coloring_mode %q", c.Startup.ColoringMode)
	}
	switch c.Startup.ColorScheme {
	case "starfleet", "battle", "exploration":
	default:
		return fmt.Errorf("unknown color_scheme %q", c.Startup.ColorScheme)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid camera planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return fmt.Errorf("invalid fov_degrees %g", c.Camera.FOVDegrees)
	}
	if c.Segment.PylonMinX >= c.Segment.PylonMaxX {
		return fmt.Errorf("segment pylon_min_x %g must be below pylon_max_x %g",
			c.Segment.PylonMinX, c.Segment.PylonMaxX)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./shipview.yaml",
		filepath.Join(ConfigDir(), "shipview.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Shipview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Shipview")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "shipview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shipview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

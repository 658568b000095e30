// Package config resolves viewer settings from defaults, an optional YAML
// file, BATTLEPATH_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	MinCellSize = 4
	MaxCellSize = 60

	DefaultPlannerURL = "http://127.0.0.1:5000/api"
)

// Config is the resolved viewer configuration.
type Config struct {
	PlannerURL     string        `yaml:"planner_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CellSize       int           `yaml:"cell_size"`
	DefaultRadius  float64       `yaml:"default_radius"`
	DragMode       bool          `yaml:"drag_mode"`
	RiskOverlay    bool          `yaml:"risk_overlay"`
	Modes          []string      `yaml:"modes"`
	ExportDir      string        `yaml:"export_dir"`
	LogLevel       string        `yaml:"log_level"`
	// DeviceScale overrides the monitor's pixel density when > 0.
	DeviceScale  float64 `yaml:"device_scale"`
	WindowWidth  int     `yaml:"window_width"`
	WindowHeight int     `yaml:"window_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PlannerURL:     DefaultPlannerURL,
		RequestTimeout: 10 * time.Second,
		CellSize:       24,
		DefaultRadius:  4,
		DragMode:       true,
		RiskOverlay:    true,
		Modes:          []string{"SAFEST", "FASTEST"},
		ExportDir:      ".",
		LogLevel:       "info",
		WindowWidth:    1280,
		WindowHeight:   820,
	}
}

// ClampCellSize limits a zoom level to [MinCellSize, MaxCellSize].
func ClampCellSize(n int) int {
	if n < MinCellSize {
		return MinCellSize
	}
	if n > MaxCellSize {
		return MaxCellSize
	}
	return n
}

// Load builds a Config for the named command from args. A -config flag (or
// BATTLEPATH_CONFIG) names a YAML file applied before the environment.
func Load(name string, args []string) (*Config, error) {
	cfg := Default()
	fl := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", getEnv("BATTLEPATH_CONFIG", ""), "optional YAML config file")
	fs.StringVar(&fl.PlannerURL, "planner", fl.PlannerURL, "planner base URL")
	fs.DurationVar(&fl.RequestTimeout, "timeout", fl.RequestTimeout, "planner request timeout")
	fs.IntVar(&fl.CellSize, "cell", fl.CellSize, "initial cell size in pixels")
	fs.Float64Var(&fl.DefaultRadius, "radius", fl.DefaultRadius, "influence radius for new threats")
	fs.BoolVar(&fl.DragMode, "drag", fl.DragMode, "start in drag mode")
	fs.BoolVar(&fl.RiskOverlay, "overlay", fl.RiskOverlay, "show the risk overlay")
	modes := fs.String("modes", strings.Join(fl.Modes, ","), "comma-separated planner modes")
	fs.StringVar(&fl.ExportDir, "export-dir", fl.ExportDir, "directory for exported files")
	fs.StringVar(&fl.LogLevel, "log-level", fl.LogLevel, "debug, info, warn, error or none")
	fs.Float64Var(&fl.DeviceScale, "scale", fl.DeviceScale, "device pixel density override (0 = monitor)")
	fs.IntVar(&fl.WindowWidth, "width", fl.WindowWidth, "window width")
	fs.IntVar(&fl.WindowHeight, "height", fl.WindowHeight, "window height")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *path != "" {
		if err := cfg.LoadFile(*path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "planner":
			cfg.PlannerURL = fl.PlannerURL
		case "timeout":
			cfg.RequestTimeout = fl.RequestTimeout
		case "cell":
			cfg.CellSize = fl.CellSize
		case "radius":
			cfg.DefaultRadius = fl.DefaultRadius
		case "drag":
			cfg.DragMode = fl.DragMode
		case "overlay":
			cfg.RiskOverlay = fl.RiskOverlay
		case "modes":
			cfg.Modes = splitList(*modes)
		case "export-dir":
			cfg.ExportDir = fl.ExportDir
		case "log-level":
			cfg.LogLevel = fl.LogLevel
		case "scale":
			cfg.DeviceScale = fl.DeviceScale
		case "width":
			cfg.WindowWidth = fl.WindowWidth
		case "height":
			cfg.WindowHeight = fl.WindowHeight
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the keys present in a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays BATTLEPATH_* variables. Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	c.PlannerURL = getEnv("BATTLEPATH_PLANNER_URL", c.PlannerURL)
	c.RequestTimeout = getEnvAsDuration("BATTLEPATH_TIMEOUT", c.RequestTimeout)
	c.CellSize = getEnvAsInt("BATTLEPATH_CELL_SIZE", c.CellSize)
	c.DefaultRadius = getEnvAsFloat("BATTLEPATH_RADIUS", c.DefaultRadius)
	c.DragMode = getEnvAsBool("BATTLEPATH_DRAG_MODE", c.DragMode)
	c.RiskOverlay = getEnvAsBool("BATTLEPATH_OVERLAY", c.RiskOverlay)
	if v := getEnv("BATTLEPATH_MODES", ""); v != "" {
		c.Modes = splitList(v)
	}
	c.ExportDir = getEnv("BATTLEPATH_EXPORT_DIR", c.ExportDir)
	c.LogLevel = getEnv("BATTLEPATH_LOG_LEVEL", c.LogLevel)
	c.DeviceScale = getEnvAsFloat("BATTLEPATH_DEVICE_SCALE", c.DeviceScale)
}

// Validate normalises ranges and rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	c.PlannerURL = strings.TrimRight(strings.TrimSpace(c.PlannerURL), "/")
	if c.PlannerURL == "" {
		return errors.New("config: planner URL is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request timeout must be > 0, got %v", c.RequestTimeout)
	}
	if len(c.Modes) == 0 {
		return errors.New("config: at least one planner mode is required")
	}
	if c.DeviceScale < 0 {
		return fmt.Errorf("config: device scale must be >= 0, got %v", c.DeviceScale)
	}
	c.CellSize = ClampCellSize(c.CellSize)
	if c.DefaultRadius < 1 {
		c.DefaultRadius = 1
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = Default().WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = Default().WindowHeight
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

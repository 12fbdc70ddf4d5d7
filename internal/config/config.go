// Package config handles monowire configuration loading and management.
package config

import (
	"time"

	"github.com/taigrr/monowire/pkg/screen"
)

// Config holds all settings.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Model    ModelConfig    `yaml:"model"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Display  DisplayConfig  `yaml:"display"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RenderConfig holds canvas and text output settings.
type RenderConfig struct {
	Width   int         `yaml:"width"`
	Height  int         `yaml:"height"`
	Invert  bool        `yaml:"invert"`
	Mirror  bool        `yaml:"mirror"`
	OnChar  string      `yaml:"on_char"`
	OffChar string      `yaml:"off_char"`
	Clip    *ClipConfig `yaml:"clip,omitempty"` // Emit only this sub-rectangle
	PNG     string      `yaml:"png"`            // Snapshot written on exit
}

// ClipConfig is a rectangle in canvas pixels.
type ClipConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Vec3Config is a point in world units.
type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// RotationConfig holds angles in radians.
type RotationConfig struct {
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
	Roll  float64 `yaml:"roll"`
}

// CameraConfig holds projection settings.
type CameraConfig struct {
	Offset     Vec3Config `yaml:"offset"`     // Model position relative to the camera
	Projection string     `yaml:"projection"` // exponential or linear
	ScaleX     float64    `yaml:"scale_x"`    // Pixels per world unit; 0 derives from resolution
	ScaleY     float64    `yaml:"scale_y"`
	BaseUnit   float64    `yaml:"base_unit"`
	Drift      float64    `yaml:"drift"`
}

// ModelConfig holds mesh settings.
type ModelConfig struct {
	Path            string         `yaml:"path"`
	MaxSize         float64        `yaml:"max_size"`
	InitialRotation RotationConfig `yaml:"initial_rotation"`
	RotationPerTick RotationConfig `yaml:"rotation_per_tick"`
	SpinUp          bool           `yaml:"spin_up"`
	MaxLines        int            `yaml:"max_lines"`
}

// ScheduleConfig holds tick budget settings. Zero tick counts are derived
// from the work budget.
type ScheduleConfig struct {
	WorkBudget   int           `yaml:"work_budget"`
	LoadTicks    int           `yaml:"load_ticks"`
	DrawTicks    int           `yaml:"draw_ticks"`
	FlushTicks   int           `yaml:"flush_ticks"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Display backends.
const (
	BackendTerminal = "terminal"
	BackendTcell    = "tcell"
	BackendStdout   = "stdout"
)

// DisplayConfig selects where frames are shown.
type DisplayConfig struct {
	Backend string `yaml:"backend"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:   64,
			Height:  48,
			OnChar:  string(screen.DefaultOn),
			OffChar: string(screen.DefaultOff),
		},
		Camera: CameraConfig{
			Offset:     Vec3Config{Z: 4},
			Projection: "exponential",
			BaseUnit:   1,
		},
		Model: ModelConfig{
			MaxSize:         2,
			RotationPerTick: RotationConfig{Yaw: 0.03, Pitch: 0.01},
			SpinUp:          true,
			MaxLines:        200000,
		},
		Schedule: ScheduleConfig{
			WorkBudget:   4000,
			TickInterval: 10 * time.Millisecond,
		},
		Display: DisplayConfig{
			Backend: BackendTerminal,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"image"
	"time"
	"unicode/utf8"

	"github.com/taigrr/monowire/internal/logger"
	"github.com/taigrr/monowire/pkg/math3d"
	"github.com/taigrr/monowire/pkg/render"
	"github.com/taigrr/monowire/pkg/scene"
	"github.com/taigrr/monowire/pkg/scheduler"
	"github.com/taigrr/monowire/pkg/screen"
)

// Validate reports every invalid setting. Each problem wraps
// scheduler.ErrConfiguration.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", scheduler.ErrConfiguration, fmt.Sprintf(format, args...)))
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		bad("resolution %dx%d", c.Render.Width, c.Render.Height)
	}
	if utf8.RuneCountInString(c.Render.OnChar) != 1 {
		bad("render.on_char %q must be one character", c.Render.OnChar)
	}
	if utf8.RuneCountInString(c.Render.OffChar) != 1 {
		bad("render.off_char %q must be one character", c.Render.OffChar)
	}
	if clip := c.Render.Clip; clip != nil {
		r := c.clipRect()
		if clip.W <= 0 || clip.H <= 0 || r.Intersect(image.Rect(0, 0, c.Render.Width, c.Render.Height)).Empty() {
			bad("render.clip %+v outside canvas", *clip)
		}
	}

	if _, err := render.ParseProjection(c.Camera.Projection); err != nil {
		bad("camera.projection: %v", err)
	}
	if c.Camera.ScaleX < 0 || c.Camera.ScaleY < 0 {
		bad("camera scale must not be negative")
	}
	if c.Camera.BaseUnit <= 0 {
		bad("camera.base_unit %v must be positive", c.Camera.BaseUnit)
	}

	if c.Model.MaxSize < 0 {
		bad("model.max_size %v must not be negative", c.Model.MaxSize)
	}
	if c.Model.MaxLines < 0 {
		bad("model.max_lines %d must not be negative", c.Model.MaxLines)
	}

	s := c.Schedule
	if s.WorkBudget < 0 || s.LoadTicks < 0 || s.DrawTicks < 0 || s.FlushTicks < 0 {
		bad("schedule values must not be negative")
	}
	if s.TickInterval <= 0 {
		bad("schedule.tick_interval %v must be positive", s.TickInterval)
	}

	switch c.Display.Backend {
	case BackendTerminal, BackendTcell, BackendStdout:
	default:
		bad("display.backend %q", c.Display.Backend)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		bad("logging.level: %v", err)
	}

	return errors.Join(errs...)
}

func (c *Config) clipRect() image.Rectangle {
	clip := c.Render.Clip
	if clip == nil {
		return image.Rectangle{}
	}
	return image.Rect(clip.X, clip.Y, clip.X+clip.W, clip.Y+clip.H)
}

// Projector builds the projector described by the camera section.
func (c *Config) Projector() (*render.Projector, error) {
	mode, err := render.ParseProjection(c.Camera.Projection)
	if err != nil {
		return nil, err
	}
	p := render.NewProjector(c.Render.Width, c.Render.Height)
	p.Mode = mode
	p.BaseUnit = c.Camera.BaseUnit
	p.Drift = c.Camera.Drift
	if c.Camera.ScaleX > 0 {
		p.ScaleX = c.Camera.ScaleX
	}
	if c.Camera.ScaleY > 0 {
		p.ScaleY = c.Camera.ScaleY
	}
	return p, nil
}

// Spinner builds the per-tick model rotation. fps tunes spin-up easing.
func (c *Config) Spinner(fps int) *scene.Spinner {
	r := c.Model.RotationPerTick
	return scene.NewSpinner(scene.Rotation{Yaw: r.Yaw, Pitch: r.Pitch, Roll: r.Roll}, fps, c.Model.SpinUp)
}

// Flusher builds a flusher for the render section writing to s.
func (c *Config) Flusher(s screen.Surface) *screen.Flusher {
	f := screen.NewFlusher(s)
	if r, _ := utf8.DecodeRuneInString(c.Render.OnChar); r != utf8.RuneError {
		f.On = r
	}
	if r, _ := utf8.DecodeRuneInString(c.Render.OffChar); r != utf8.RuneError {
		f.Off = r
	}
	f.Mirror = c.Render.Mirror
	f.Clip = c.clipRect()
	return f
}

// SchedulerConfig returns the scheduler parameters. name labels the mesh.
func (c *Config) SchedulerConfig(name string) scheduler.Config {
	start := c.Model.InitialRotation
	off := c.Camera.Offset
	return scheduler.Config{
		WorkBudget:      c.Schedule.WorkBudget,
		LoadTicks:       c.Schedule.LoadTicks,
		DrawTicks:       c.Schedule.DrawTicks,
		FlushTicks:      c.Schedule.FlushTicks,
		MaxLines:        c.Model.MaxLines,
		MaxSize:         c.Model.MaxSize,
		Name:            name,
		Offset:          math3d.V3(off.X, off.Y, off.Z),
		InitialRotation: scene.Rotation{Yaw: start.Yaw, Pitch: start.Pitch, Roll: start.Roll},
		Invert:          c.Render.Invert,
	}
}

// FPS returns the tick rate implied by the tick interval.
func (c *Config) FPS() int {
	if c.Schedule.TickInterval <= 0 {
		return 1
	}
	return max(1, int(time.Second/c.Schedule.TickInterval))
}

// monowire - Monochrome wireframe model viewer
// Spins an OBJ or GLB model as a 1-bit wireframe in a character grid, doing a
// bounded amount of work per scheduler tick.
//
// Controls (terminal and tcell displays):
//
//	Space     - Apply random impulse
//	R         - Reset spin
//	Q / Esc   - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/taigrr/monowire/internal/config"
	"github.com/taigrr/monowire/internal/logger"
	"github.com/taigrr/monowire/pkg/models"
	"github.com/taigrr/monowire/pkg/render"
	"github.com/taigrr/monowire/pkg/scene"
	"github.com/taigrr/monowire/pkg/scheduler"
)

var saveConfig = flag.String("save-config", "", "Write the effective config to this path and exit")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "monowire - Monochrome wireframe model viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: monowire [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Space     - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R         - Reset spin\n")
		fmt.Fprintf(os.Stderr, "  Q / Esc   - Quit\n")
	}
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.Model.Path = flag.Arg(0)
	}
	if *saveConfig != "" {
		if err := cfg.SaveTo(*saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if cfg.Model.Path == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Console logs would scribble over full-screen displays
	var console io.Writer
	if cfg.Display.Backend == config.BackendStdout {
		console = os.Stderr
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, console); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	name := filepath.Base(cfg.Model.Path)
	lines, opts, err := loadModel(cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	projector, err := cfg.Projector()
	if err != nil {
		return err
	}
	canvas := render.NewCanvas(cfg.Render.Width, cfg.Render.Height)
	spinner := cfg.Spinner(cfg.FPS())
	view := scene.NewModelView(nil, projector, canvas, spinner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	disp, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	defer disp.close()

	flusher := cfg.Flusher(disp.surface)
	opts = append(opts, scheduler.WithLogger(logger.Log.Named("scheduler")))
	sched, err := scheduler.New(cfg.SchedulerConfig(name), lines, view, flusher, opts...)
	if err != nil {
		return err
	}

	disp.listen(controls{
		quit: cancel,
		nudge: func() {
			sched.Post(func() {
				yaw, pitch, roll := randomImpulse()
				spinner.ApplyImpulse(scene.Rotation{Yaw: yaw, Pitch: pitch, Roll: roll})
			})
		},
		restart: func() {
			sched.Post(spinner.Reset)
		},
	})

	logger.Log.Info("starting",
		zap.String("model", name),
		zap.Int("width", canvas.Width),
		zap.Int("height", canvas.Height),
		zap.Stringer("projection", projector.Mode),
		zap.String("display", cfg.Display.Backend),
		zap.Duration("tick", cfg.Schedule.TickInterval),
	)

	if err := sched.Run(ctx, cfg.Schedule.TickInterval); err != nil {
		return err
	}

	// Show the last complete frame
	if err := flusher.Sync(); err != nil {
		logger.Log.Warn("final frame", zap.Error(err))
	}

	st := sched.Stats()
	logger.Log.Info("stopped",
		zap.Uint64("ticks", st.Ticks),
		zap.Uint64("frames", st.Frames),
		zap.Int("max_work", st.MaxWork),
	)

	if cfg.Render.PNG != "" {
		if err := canvas.SavePNG(cfg.Render.PNG); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	return nil
}

// loadModel reads an OBJ file as text for tick-by-tick parsing, or loads a
// GLB file up front into a builder.
func loadModel(path string) ([]string, []scheduler.Option, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		lines, err := models.ReadLines(f)
		if err != nil {
			return nil, nil, err
		}
		return lines, nil, nil
	case ".glb", ".gltf":
		b, err := models.LoadGLB(path)
		if err != nil {
			return nil, nil, err
		}
		return nil, []scheduler.Option{scheduler.WithBuilder(b)}, nil
	default:
		return nil, nil, errors.New("unsupported format " + ext + " (use .obj or .glb)")
	}
}

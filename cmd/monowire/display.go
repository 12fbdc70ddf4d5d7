package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/taigrr/monowire/internal/config"
	"github.com/taigrr/monowire/internal/logger"
	"github.com/taigrr/monowire/pkg/screen"
)

// controls are the actions keyboard input can trigger.
type controls struct {
	quit    func()
	nudge   func() // Random spin impulse
	restart func() // Drop impulses
}

// display is an open output device.
type display struct {
	surface screen.Surface
	close   func()

	// listen starts key handling on its own goroutine.
	listen func(ctl controls)
}

// openDisplay starts the configured backend.
func openDisplay(cfg *config.Config) (*display, error) {
	switch cfg.Display.Backend {
	case config.BackendTerminal:
		return openTerminal(cfg)
	case config.BackendTcell:
		return openTcell(cfg)
	case config.BackendStdout:
		fmt.Fprint(os.Stdout, "\x1b[2J")
		return &display{
			surface: &screen.WriterSurface{W: os.Stdout, Home: true},
			close:   func() {},
			listen:  func(controls) {},
		}, nil
	default:
		return nil, fmt.Errorf("unknown display backend %q", cfg.Display.Backend)
	}
}

func openTerminal(cfg *config.Config) (*display, error) {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	warnIfSmall(cfg, width, height)

	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	listen := func(ctl controls) {
		go func() {
			for ev := range term.Events() {
				ev, ok := ev.(uv.KeyPressEvent)
				if !ok {
					continue
				}
				switch {
				case ev.MatchString("escape", "ctrl+c", "q"):
					ctl.quit()
					return
				case ev.MatchString("space"):
					ctl.nudge()
				case ev.MatchString("r"):
					ctl.restart()
				}
			}
		}()
	}

	return &display{
		surface: screen.NewTerminalSurface(term),
		listen:  listen,
		close: func() {
			term.ExitAltScreen()
			term.ShowCursor()
			term.Shutdown(context.Background())
		},
	}, nil
}

func openTcell(cfg *config.Config) (*display, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create tcell screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("init tcell screen: %w", err)
	}
	scr.HideCursor()
	scr.Clear()

	width, height := scr.Size()
	warnIfSmall(cfg, width, height)

	listen := func(ctl controls) {
		go func() {
			for {
				ev := scr.PollEvent()
				if ev == nil {
					return
				}
				key, ok := ev.(*tcell.EventKey)
				if !ok {
					continue
				}
				switch {
				case key.Key() == tcell.KeyEscape, key.Key() == tcell.KeyCtrlC, key.Rune() == 'q':
					ctl.quit()
					return
				case key.Rune() == ' ':
					ctl.nudge()
				case key.Rune() == 'r':
					ctl.restart()
				}
			}
		}()
	}

	return &display{
		surface: screen.NewTcellSurface(scr),
		listen:  listen,
		close:   scr.Fini,
	}, nil
}

func warnIfSmall(cfg *config.Config, width, height int) {
	if cfg.Render.Width > width || cfg.Render.Height > height {
		logger.Log.Warn("canvas larger than terminal, output is cropped",
			zap.Int("canvas_width", cfg.Render.Width),
			zap.Int("canvas_height", cfg.Render.Height),
			zap.Int("terminal_width", width),
			zap.Int("terminal_height", height),
		)
	}
}

// randomImpulse returns a small random rotation per axis.
func randomImpulse() (yaw, pitch, roll float64) {
	return (rand.Float64() - 0.5) * 0.2,
		(rand.Float64() - 0.5) * 0.2,
		(rand.Float64() - 0.5) * 0.2
}

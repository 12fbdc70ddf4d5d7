package config

import (
	"flag"
	"time"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Canvas width in pixels")
	flagHeight  = flag.Int("height", 0, "Canvas height in pixels")
	flagInvert  = flag.Bool("invert", false, "Swap on and off glyphs")
	flagMirror  = flag.Bool("mirror", false, "Mirror output horizontally")
	flagDisplay = flag.String("display", "", "Display backend: terminal, tcell or stdout")
	flagPNG     = flag.String("png", "", "Write a PNG snapshot of the last frame on exit")
	flagFPS     = flag.Int("fps", 0, "Scheduler ticks per second")
	flagBudget  = flag.Int("budget", -1, "Work units per tick (0 = unlimited)")
	flagLogFile = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagInvert {
		cfg.Render.Invert = true
	}
	if *flagMirror {
		cfg.Render.Mirror = true
	}
	if *flagDisplay != "" {
		cfg.Display.Backend = *flagDisplay
	}
	if *flagPNG != "" {
		cfg.Render.PNG = *flagPNG
	}
	if *flagFPS > 0 {
		cfg.Schedule.TickInterval = time.Second / time.Duration(*flagFPS)
	}
	if *flagBudget >= 0 {
		cfg.Schedule.WorkBudget = *flagBudget
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}

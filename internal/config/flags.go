package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagPages      = flag.Int("pages", 0, "Number of pages")
	flagPhotos     = flag.String("photos", "", "Directory of page photos")
	flagStep       = flag.Float64("step", 0, "Page rotation per frame, radians")
	flagMute       = flag.Bool("mute", false, "Disable page-turn sounds")
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
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagPages > 0 {
		cfg.Book.PageCount = *flagPages
	}
	if *flagPhotos != "" {
		cfg.Book.PhotoDir = *flagPhotos
	}
	if *flagStep > 0 {
		cfg.Animation.StepSize = float32(*flagStep)
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}

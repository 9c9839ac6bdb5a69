// Package config handles flip book configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// Config holds all settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Scene     SceneConfig     `yaml:"scene"`
	Audio     AudioConfig     `yaml:"audio"`
	Book      BookConfig      `yaml:"book"`
	Animation AnimationConfig `yaml:"animation"`
	Input     InputConfig     `yaml:"input"`
	Capture   CaptureConfig   `yaml:"capture"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SceneConfig holds colors, lighting and camera placement.
type SceneConfig struct {
	Background    string     `yaml:"background"`
	CoverColor    string     `yaml:"cover_color"`
	PageColor     string     `yaml:"page_color"`
	LightPosition [3]float32 `yaml:"light_position"`
	Ambient       float32    `yaml:"ambient"`
	CameraPos     [3]float32 `yaml:"camera_position"`
	FOV           float32    `yaml:"fov"` // degrees
}

// AudioConfig holds page-turn sound settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	// FlipSound and CoverSound are optional WAV files; a synthesized rustle
	// is used when empty.
	FlipSound  string `yaml:"flip_sound"`
	CoverSound string `yaml:"cover_sound"`
}

// PageConfig is the optional content of one page.
type PageConfig struct {
	Photo   string `yaml:"photo"`
	Caption string `yaml:"caption"`
}

// BookConfig holds the book dimensions and page content.
type BookConfig struct {
	Width          float32 `yaml:"width"`
	Height         float32 `yaml:"height"`
	PageCount      int     `yaml:"page_count"`
	CoverThickness float32 `yaml:"cover_thickness"`
	PageThickness  float32 `yaml:"page_thickness"`
	Segments       int     `yaml:"segments"`
	// PhotoDir fills pages without an explicit photo, in file name order.
	PhotoDir string       `yaml:"photo_dir"`
	Pages    []PageConfig `yaml:"pages"`
}

// AnimationConfig holds the flip animator parameters.
type AnimationConfig struct {
	StepSize       float32 `yaml:"step_size"`
	CoverStep      float32 `yaml:"cover_step"`
	Direction      int     `yaml:"direction"`
	CoverTarget    float32 `yaml:"cover_target"` // radians
	BendConstant   float32 `yaml:"bend_constant"`
	SettleConstant float32 `yaml:"settle_constant"`
	Terminal       string  `yaml:"terminal"` // "settle" or "reset"
	PageSpacing    float32 `yaml:"page_spacing"`
	TiltStep       float32 `yaml:"tilt_step"`
}

// InputConfig holds pointer settings.
type InputConfig struct {
	// RequireHit only accepts clicks that land on the book.
	RequireHit bool `yaml:"require_hit"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			Background:    "#f0e6d2",
			CoverColor:    "#8b5e3b",
			PageColor:     "#ffffff",
			LightPosition: [3]float32{10, 20, 10},
			Ambient:       0.8,
			CameraPos:     [3]float32{10, 10, 20},
			FOV:           45,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SFXVolume:    0.8,
		},
		Book: BookConfig{
			Width:          6,
			Height:         8,
			PageCount:      12,
			CoverThickness: 0.2,
			PageThickness:  0.02,
			Segments:       20,
		},
		Animation: AnimationConfig{
			StepSize:       0.05,
			CoverStep:      0.05,
			Direction:      -1,
			CoverTarget:    math.Pi,
			BendConstant:   0.5,
			SettleConstant: 0.1,
			Terminal:       "settle",
			PageSpacing:    0.02,
			TiltStep:       0.002,
		},
		Input: InputConfig{
			RequireHit: false,
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "flipbook",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the book cannot be built from.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Book.PageCount < 0 {
		errs = append(errs, fmt.Errorf("book: page_count must not be negative, got %d", c.Book.PageCount))
	}
	if c.Book.Width <= 0 || c.Book.Height <= 0 {
		errs = append(errs, fmt.Errorf("book: size must be positive, got %vx%v", c.Book.Width, c.Book.Height))
	}
	if _, err := c.Animation.Flip(); err != nil {
		errs = append(errs, fmt.Errorf("animation: %w", err))
	}
	for name, hex := range map[string]string{
		"background":  c.Scene.Background,
		"cover_color": c.Scene.CoverColor,
		"page_color":  c.Scene.PageColor,
	} {
		if _, err := ParseColor(hex); err != nil {
			errs = append(errs, fmt.Errorf("scene: %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint8
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// RGB returns a parsed color as normalized floats, or fallback on error.
func RGB(s string, fallback [3]float32) [3]float32 {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

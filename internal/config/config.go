// Package config reads the application settings from the process environment.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel       = "IMGPROC_LOG_LEVEL"
	EnvJSONLogs       = "IMGPROC_JSON_LOGS"
	EnvLogFile        = "IMGPROC_LOG_FILE"
	EnvCameraIndex    = "IMGPROC_CAMERA_INDEX"
	EnvHighlightColor = "IMGPROC_HIGHLIGHT"
	EnvMaxDisplay     = "IMGPROC_MAX_DISPLAY"

	DefaultHighlight  = "#ff0000"
	DefaultMaxDisplay = 1600
)

// Config holds every tunable the application reads at startup.
type Config struct {
	LogLevel    zerolog.Level
	JSONLogs    bool
	LogFile     string
	CameraIndex int
	// Highlight is the fill colour used for the circle overlay.
	Highlight color.RGBA
	// MaxDisplaySize bounds the longest side of an image handed to the display.
	MaxDisplaySize int
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func Default() Config {
	highlight, _ := ParseColor(DefaultHighlight)
	return Config{
		LogLevel:       zerolog.InfoLevel,
		CameraIndex:    0,
		Highlight:      highlight,
		MaxDisplaySize: DefaultMaxDisplay,
	}
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source, starting from Default.
func FromLookup(lookup LookupFunc) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v, ok := lookup(EnvJSONLogs); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvJSONLogs, err)
		}
		cfg.JSONLogs = b
	}

	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvCameraIndex); ok && v != "" {
		idx, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCameraIndex, err)
		}
		if idx < 0 {
			return cfg, fmt.Errorf("%s: camera index must not be negative, got %d", EnvCameraIndex, idx)
		}
		cfg.CameraIndex = idx
	}

	if v, ok := lookup(EnvHighlightColor); ok && v != "" {
		c, err := ParseColor(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvHighlightColor, err)
		}
		cfg.Highlight = c
	}

	if v, ok := lookup(EnvMaxDisplay); ok && v != "" {
		size, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvMaxDisplay, err)
		}
		if size < 64 {
			return cfg, fmt.Errorf("%s: display size %d is below the minimum of 64", EnvMaxDisplay, size)
		}
		cfg.MaxDisplaySize = size
	}

	return cfg, nil
}

// ParseColor accepts "#rrggbb" or "#rgb" and returns an opaque colour.
func ParseColor(hex string) (color.RGBA, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

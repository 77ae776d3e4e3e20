package config

import (
	"image/color"
	"testing"

	"github.com/rs/zerolog"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("FromLookup() error = %v", err)
	}

	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.JSONLogs {
		t.Error("JSONLogs should default to false")
	}
	if cfg.CameraIndex != 0 {
		t.Errorf("CameraIndex = %d, want 0", cfg.CameraIndex)
	}
	if cfg.Highlight != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Highlight = %v, want opaque red", cfg.Highlight)
	}
	if cfg.MaxDisplaySize != DefaultMaxDisplay {
		t.Errorf("MaxDisplaySize = %d, want %d", cfg.MaxDisplaySize, DefaultMaxDisplay)
	}
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		EnvLogLevel:       "DEBUG",
		EnvJSONLogs:       "true",
		EnvLogFile:        " /tmp/imgproc.log ",
		EnvCameraIndex:    "2",
		EnvHighlightColor: "00ff00",
		EnvMaxDisplay:     "800",
	}))
	if err != nil {
		t.Fatalf("FromLookup() error = %v", err)
	}

	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if !cfg.JSONLogs {
		t.Error("JSONLogs = false, want true")
	}
	if cfg.LogFile != "/tmp/imgproc.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.CameraIndex != 2 {
		t.Errorf("CameraIndex = %d, want 2", cfg.CameraIndex)
	}
	if cfg.Highlight != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("Highlight = %v, want opaque green", cfg.Highlight)
	}
	if cfg.MaxDisplaySize != 800 {
		t.Errorf("MaxDisplaySize = %d, want 800", cfg.MaxDisplaySize)
	}
}

func TestFromLookup_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad level", map[string]string{EnvLogLevel: "loud"}},
		{"bad bool", map[string]string{EnvJSONLogs: "maybe"}},
		{"bad camera", map[string]string{EnvCameraIndex: "front"}},
		{"negative camera", map[string]string{EnvCameraIndex: "-1"}},
		{"bad colour", map[string]string{EnvHighlightColor: "#zzzzzz"}},
		{"tiny display", map[string]string{EnvMaxDisplay: "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromLookup(lookupFrom(tt.env)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"0000ff", color.RGBA{B: 255, A: 255}},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

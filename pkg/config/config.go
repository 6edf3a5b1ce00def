// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/user/timeshifter/pkg/framepath"
	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/timeshifter"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration file of timeshifter.
// Counts and directories come from the command line.
type Config struct {
	// Frame naming
	FramePattern string `yaml:"frame_pattern"`

	// Logging
	LogLevel string `yaml:"log_level"`
	Quiet    bool   `yaml:"quiet"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Summary is the path of a markdown run summary; empty disables it.
	Summary string `yaml:"summary"`

	Theme        ThemeConfig        `yaml:"theme"`
	ContactSheet ContactSheetConfig `yaml:"contact_sheet"`
}

// ThemeConfig represents the colors of the schedule chart.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	GridColor       string `yaml:"grid_color"`
	TextColor       string `yaml:"text_color"`
}

// ContactSheetConfig represents the debug contact sheet settings.
type ContactSheetConfig struct {
	ThumbHeight int `yaml:"thumb_height"`
	Quality     int `yaml:"quality"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		FramePattern: framepath.DefaultPattern,
		LogLevel:     "info",
		DebugDir:     "./debug",
		Theme: ThemeConfig{
			BackgroundColor: "#fafafa",
			GridColor:       "#b4b4b4",
			TextColor:       "#282828",
		},
		ContactSheet: ContactSheetConfig{
			ThumbHeight: 120,
			Quality:     85,
		},
	}
}

// LoadFromFile loads configuration from a YAML file.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the values that cannot be corrected silently.
func (c Config) Validate() error {
	if err := framepath.ValidatePattern(c.FramePattern); err != nil {
		return err
	}
	if c.ContactSheet.ThumbHeight < 0 {
		return fmt.Errorf("contact_sheet.thumb_height must not be negative (is %d)", c.ContactSheet.ThumbHeight)
	}
	if q := c.ContactSheet.Quality; q < 0 || q > 100 {
		return fmt.Errorf("contact_sheet.quality must be between 0 and 100 (is %d)", q)
	}
	return nil
}

// ParseColor parses a hex color string ("#rrggbb" or "rrggbb") to color.Color.
// Malformed input yields black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.Black
	}

	channel := func(i int) uint8 {
		return hexValue(hex[i])<<4 | hexValue(hex[i+1])
	}
	return color.RGBA{R: channel(0), G: channel(2), B: channel(4), A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToBuilder returns a timeshifter.ConfigBuilder for one run, seeded with
// the file's settings. Debug output is enabled when Debug is set.
func (c Config) ToBuilder(sourceDir, outputDir string, frameCount, sliceCount int) *timeshifter.ConfigBuilder {
	b := timeshifter.NewConfigBuilder(sourceDir, outputDir, frameCount, sliceCount).
		WithFramePattern(c.FramePattern).
		WithTheme(ports.ChartTheme{
			Background: ParseColor(c.Theme.BackgroundColor),
			Grid:       ParseColor(c.Theme.GridColor),
			Text:       ParseColor(c.Theme.TextColor),
		}).
		WithContactSheet(c.ContactSheet.ThumbHeight, c.ContactSheet.Quality)
	if c.Debug {
		b.WithDebugDir(c.DebugDir)
	}
	return b
}

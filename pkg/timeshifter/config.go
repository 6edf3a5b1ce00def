package timeshifter

import (
	"image/png"

	"github.com/user/timeshifter/pkg/adapters/filesink"
	"github.com/user/timeshifter/pkg/adapters/ggrenderer"
	"github.com/user/timeshifter/pkg/framepath"
	"github.com/user/timeshifter/pkg/orchestrator"
	"github.com/user/timeshifter/pkg/ports"
)

// Config represents the configuration of one time-shift run.
type Config struct {
	SourceDir  string // Directory of the source frames
	OutputDir  string // Directory of the placeholder frames, overwritten in place
	FrameCount int    // Number of frames in both sequences
	SliceCount int    // Number of horizontal bands per frame

	FramePattern string // File name of frame i, a fmt pattern (default: %03d.png)

	// Compression is the zlib level of the written PNG files.
	Compression png.CompressionLevel

	// Debug output; an empty DebugDir disables it
	DebugDir     string
	Theme        ports.ChartTheme
	ThumbHeight  int // Contact sheet thumbnail height in pixels
	SheetQuality int // Contact sheet JPEG quality (1-100)
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with default settings.
func NewConfigBuilder(sourceDir, outputDir string, frameCount, sliceCount int) *ConfigBuilder {
	return &ConfigBuilder{
		config: Config{
			SourceDir:    sourceDir,
			OutputDir:    outputDir,
			FrameCount:   frameCount,
			SliceCount:   sliceCount,
			FramePattern: framepath.DefaultPattern,
			Compression:  png.DefaultCompression,
			Theme:        orchestrator.DefaultTheme(),
			ThumbHeight:  ggrenderer.DefaultThumbHeight,
			SheetQuality: filesink.DefaultQuality,
		},
	}
}

// Build returns the constructed Config.
func (b *ConfigBuilder) Build() Config {
	return b.config
}

// WithFramePattern sets the frame file name pattern. Empty keeps the default.
func (b *ConfigBuilder) WithFramePattern(pattern string) *ConfigBuilder {
	if pattern != "" {
		b.config.FramePattern = pattern
	}
	return b
}

// WithCompression sets the PNG compression level of the written frames.
func (b *ConfigBuilder) WithCompression(level png.CompressionLevel) *ConfigBuilder {
	b.config.Compression = level
	return b
}

// WithDebugDir enables debug output into dir.
func (b *ConfigBuilder) WithDebugDir(dir string) *ConfigBuilder {
	b.config.DebugDir = dir
	return b
}

// WithTheme sets the schedule chart colors. Nil colors keep the default.
func (b *ConfigBuilder) WithTheme(theme ports.ChartTheme) *ConfigBuilder {
	if theme.Background != nil {
		b.config.Theme.Background = theme.Background
	}
	if theme.Grid != nil {
		b.config.Theme.Grid = theme.Grid
	}
	if theme.Text != nil {
		b.config.Theme.Text = theme.Text
	}
	return b
}

// WithContactSheet sets the contact sheet thumbnail height and JPEG quality.
// Non-positive values keep the defaults.
func (b *ConfigBuilder) WithContactSheet(thumbHeight, quality int) *ConfigBuilder {
	if thumbHeight > 0 {
		b.config.ThumbHeight = thumbHeight
	}
	if quality > 0 {
		b.config.SheetQuality = quality
	}
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		SourceDir:    c.SourceDir,
		OutputDir:    c.OutputDir,
		FramePattern: c.FramePattern,
		FrameCount:   c.FrameCount,
		SliceCount:   c.SliceCount,
		Theme:        c.Theme,
		ThumbHeight:  c.ThumbHeight,
	}
}

// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/timeshifter/pkg/ports"
)

// DefaultQuality is the JPEG quality of the contact sheet.
const DefaultQuality = 85

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	quality  int
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
		quality:  DefaultQuality,
	}
}

// WithQuality sets the JPEG quality of the contact sheet.
func (s *Sink) WithQuality(quality int) *Sink {
	if quality > 0 && quality <= 100 {
		s.quality = quality
	}
	return s
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveScheduleJSON saves the last-writer ledger as JSON.
func (s *Sink) SaveScheduleJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "schedule.json")
	return s.fs.WriteFile(path, data)
}

// SaveRoutesJSON saves the routes of one source frame.
func (s *Sink) SaveRoutesJSON(frame int, data []byte) error {
	dir := filepath.Join(s.baseDir, "routes")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.json", frame))
	return s.fs.WriteFile(path, data)
}

// SaveScheduleChart saves the routing grid chart.
func (s *Sink) SaveScheduleChart(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode schedule chart: %w", err)
	}
	path := filepath.Join(s.baseDir, "schedule.png")
	return s.fs.WriteFile(path, data)
}

// SaveContactSheet saves thumbnails of the output frames.
func (s *Sink) SaveContactSheet(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatJPEG, s.quality)
	if err != nil {
		return fmt.Errorf("encode contact sheet: %w", err)
	}
	path := filepath.Join(s.baseDir, "contact-sheet.jpg")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

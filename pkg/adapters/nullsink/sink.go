// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/timeshifter/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveScheduleJSON does nothing.
func (s *Sink) SaveScheduleJSON(data []byte) error {
	return nil
}

// SaveRoutesJSON does nothing.
func (s *Sink) SaveRoutesJSON(frame int, data []byte) error {
	return nil
}

// SaveScheduleChart does nothing.
func (s *Sink) SaveScheduleChart(img image.Image) error {
	return nil
}

// SaveContactSheet does nothing.
func (s *Sink) SaveContactSheet(img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

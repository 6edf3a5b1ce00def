package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveScheduleJSON saves the final last-writer ledger as JSON.
	SaveScheduleJSON(data []byte) error

	// SaveRoutesJSON saves the routes applied for one source frame.
	SaveRoutesJSON(frame int, data []byte) error

	// SaveScheduleChart saves the rendered routing grid.
	SaveScheduleChart(img image.Image) error

	// SaveContactSheet saves thumbnails of every output slot.
	SaveContactSheet(img image.Image) error
}

package pipeline

import (
	"github.com/user/timeshifter/pkg/framepath"
	"github.com/user/timeshifter/pkg/raster"
	"github.com/user/timeshifter/pkg/shift"
)

// =============================================================================
// Probe Stage Types
// =============================================================================

// ProbeInput names the sequences and counts of a run.
type ProbeInput struct {
	Source     framepath.Sequence
	Output     framepath.Sequence
	FrameCount int
	SliceCount int
}

// ProbeResult holds the validated geometry and the resident buffers.
// The caller owns First and every FrameSet buffer.
type ProbeResult struct {
	Params   shift.Params
	Shape    raster.Shape
	First    *raster.Buffer
	FrameSet []*raster.Buffer
}

// =============================================================================
// Shift Stage Types
// =============================================================================

// ShiftInput carries the first source frame and the frame set into the loop.
// The stage takes ownership of First and releases it.
type ShiftInput struct {
	Source   framepath.Sequence
	Params   shift.Params
	First    *raster.Buffer
	FrameSet []*raster.Buffer
}

// ShiftResult reports what the loop wrote.
type ShiftResult struct {
	FramesProcessed int
	Ledger          *shift.Ledger
}

// =============================================================================
// Persist Stage Types
// =============================================================================

// PersistInput carries the frame set to write. The stage releases every buffer.
type PersistInput struct {
	Output   framepath.Sequence
	FrameSet []*raster.Buffer
}

// PersistResult lists the files written, in slot order.
type PersistResult struct {
	Written []string
}

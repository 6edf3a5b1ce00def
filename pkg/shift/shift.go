// Package shift routes the bands of each source frame to the output slots
// of a time-shifted sequence.
//
// Slice k of source frame f is written to output slot (k+f) mod F, at the
// same rows it occupied in the source. As f advances from 0 to F-1 each
// band position cycles through the output slots.
package shift

import (
	"errors"
	"fmt"

	"github.com/user/timeshifter/pkg/bands"
	"github.com/user/timeshifter/pkg/raster"
)

var (
	// ErrNoFrames is returned when the frame count is below one.
	ErrNoFrames = errors.New("frame count must be at least 1")

	// ErrNoSlices is returned when the slice count is below one.
	ErrNoSlices = errors.New("slice count must be at least 1")

	// ErrTooManySlices is returned when there are more slices than rows.
	ErrTooManySlices = errors.New("slices can't be larger than height")

	// ErrFrameOutOfRange is returned when a frame index is outside [0, frameCount).
	ErrFrameOutOfRange = errors.New("frame index out of range")

	// ErrFrameSetSize is returned when the frame set does not hold one buffer per slot.
	ErrFrameSetSize = errors.New("frame set size does not match frame count")
)

// Params fixes the geometry of one run.
type Params struct {
	FrameCount  int          `json:"frame_count"`
	SliceCount  int          `json:"slice_count"`
	SliceHeight int          `json:"slice_height"`
	Height      int          `json:"height"`
	Dropped     int          `json:"dropped_rows"`
	Bands       []bands.Band `json:"bands"`
}

// NewParams validates the counts against the frame height and computes the slice height.
func NewParams(frameCount, sliceCount, height int) (Params, error) {
	if frameCount < 1 {
		return Params{}, fmt.Errorf("%w (is %d)", ErrNoFrames, frameCount)
	}
	if sliceCount < 1 {
		return Params{}, fmt.Errorf("%w (is %d)", ErrNoSlices, sliceCount)
	}
	if sliceCount > height {
		return Params{}, fmt.Errorf("%w (%d slices, %d rows)", ErrTooManySlices, sliceCount, height)
	}

	partition, dropped, err := bands.Partition(height, sliceCount)
	if err != nil {
		return Params{}, err
	}
	return Params{
		FrameCount:  frameCount,
		SliceCount:  sliceCount,
		SliceHeight: partition[0].Height,
		Height:      height,
		Dropped:     dropped,
		Bands:       partition,
	}, nil
}

// Band returns the row range of slice k.
func (p Params) Band(k int) bands.Band {
	return p.Bands[k]
}

// DroppedRows returns the number of bottom rows no slice covers.
func (p Params) DroppedRows() int {
	return p.Dropped
}

// Slot returns the output slot that receives slice k of frame f.
func Slot(slice, frame, frameCount int) int {
	return (slice + frame) % frameCount
}

// Route is one band copy: slice Slice of source frame Frame into output slot Slot.
type Route struct {
	Frame int        `json:"frame"`
	Slice int        `json:"slice"`
	Slot  int        `json:"slot"`
	Band  bands.Band `json:"band"`
}

// Routes returns the routes of frame f in slice order.
func Routes(p Params, frame int) []Route {
	routes := make([]Route, len(p.Bands))
	for k, band := range p.Bands {
		routes[k] = Route{
			Frame: frame,
			Slice: k,
			Slot:  Slot(k, frame, p.FrameCount),
			Band:  band,
		}
	}
	return routes
}

// Scheduler applies the routes of each source frame to a frame set.
type Scheduler struct {
	params Params
	ledger *Ledger
}

// NewScheduler creates a Scheduler with an empty ledger.
func NewScheduler(p Params) *Scheduler {
	return &Scheduler{
		params: p,
		ledger: NewLedger(p.FrameCount, p.SliceCount),
	}
}

// Params returns the scheduler's geometry.
func (s *Scheduler) Params() Params {
	return s.params
}

// Ledger returns the record of the writes applied so far.
func (s *Scheduler) Ledger() *Ledger {
	return s.ledger
}

// Apply copies every slice of source frame into its slot of frameSet.
// frameSet is indexed by output slot and is mutated in place.
func (s *Scheduler) Apply(source *raster.Buffer, frameSet []*raster.Buffer, frame int) ([]Route, error) {
	if frame < 0 || frame >= s.params.FrameCount {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrFrameOutOfRange, frame, s.params.FrameCount)
	}
	if len(frameSet) != s.params.FrameCount {
		return nil, fmt.Errorf("%w: %d buffers for %d frames", ErrFrameSetSize, len(frameSet), s.params.FrameCount)
	}

	routes := Routes(s.params, frame)
	for _, r := range routes {
		if err := bands.CopyBand(source, frameSet[r.Slot], r.Band); err != nil {
			return nil, fmt.Errorf("copy slice %d of frame %d to slot %d: %w", r.Slice, r.Frame, r.Slot, err)
		}
		s.ledger.Record(r)
	}
	return routes, nil
}

// Package probe implements the stage that validates the first source frame
// and loads the output frame set.
package probe

import (
	"context"
	"fmt"

	"github.com/user/timeshifter/pkg/pipeline"
	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/raster"
	"github.com/user/timeshifter/pkg/shift"
)

// Stage decodes frame 0, derives the run geometry from it and decodes every
// output placeholder.
type Stage struct {
	codec  ports.ImageCodec
	logger ports.Logger
}

// New creates a new probe stage.
func New(codec ports.ImageCodec, logger ports.Logger) *Stage {
	return &Stage{
		codec:  codec,
		logger: logger.WithComponent("probe"),
	}
}

// Execute validates the inputs. On failure every buffer it decoded has been
// released and nothing has been written.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	result := pipeline.ProbeResult{}

	firstPath := input.Source.Path(0)
	s.logger.Debug("Reading first source frame %s", firstPath)
	first, err := s.codec.Decode(firstPath)
	if err != nil {
		return result, err
	}

	params, err := shift.NewParams(input.FrameCount, input.SliceCount, first.Height)
	if err != nil {
		raster.ReleaseAll(first)
		return result, pipeline.ValidationError("slice_png", firstPath, err)
	}

	if err := CheckLayout(first); err != nil {
		raster.ReleaseAll(first)
		return result, pipeline.ValidationError("process_file", firstPath, err)
	}

	shape := first.Shape()
	s.logger.Debug("Frame geometry: %s, %d slices of %d rows, %d rows dropped",
		shape, params.SliceCount, params.SliceHeight, params.DroppedRows())

	// The frame count is not bounded by anything on disk yet, so the set
	// grows as placeholders are found.
	var frameSet []*raster.Buffer
	fail := func(err error) (pipeline.ProbeResult, error) {
		raster.ReleaseAll(first)
		raster.ReleaseAll(frameSet...)
		return pipeline.ProbeResult{}, err
	}

	for slot := 0; slot < params.FrameCount; slot++ {
		path := input.Output.Path(slot)
		select {
		case <-ctx.Done():
			return fail(ctx.Err())
		default:
		}

		buf, err := s.codec.Decode(path)
		if err != nil {
			return fail(err)
		}
		if buf.Shape() != shape {
			got := buf.Shape()
			raster.ReleaseAll(buf)
			return fail(pipeline.ValidationError("load_frame_set", path,
				fmt.Errorf("%w: %s, expected %s", pipeline.ErrShapeMismatch, got, shape)))
		}
		frameSet = append(frameSet, buf)
	}
	s.logger.Debug("Loaded %d output frames", len(frameSet))

	result.Params = params
	result.Shape = shape
	result.First = first
	result.FrameSet = frameSet
	return result, nil
}

// CheckLayout rejects buffers that are not RGBA. Truecolor without alpha
// gets its own error.
func CheckLayout(buf *raster.Buffer) error {
	switch buf.Layout {
	case raster.LayoutRGBA:
		return nil
	case raster.LayoutRGB:
		return pipeline.ErrRGBWithoutAlpha
	default:
		return fmt.Errorf("%w (is %s)", pipeline.ErrNotRGBA, buf.Layout)
	}
}

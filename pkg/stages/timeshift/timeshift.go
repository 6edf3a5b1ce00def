// Package timeshift implements the stage that routes the slices of every
// source frame into the output frame set.
package timeshift

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/timeshifter/pkg/pipeline"
	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/raster"
	"github.com/user/timeshifter/pkg/shift"
)

// Stage walks the source sequence one frame at a time. Only one source
// frame is resident at any point.
type Stage struct {
	codec  ports.ImageCodec
	sink   ports.DebugSink
	logger ports.Logger
}

// New creates a new timeshift stage.
func New(codec ports.ImageCodec, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		codec:  codec,
		sink:   sink,
		logger: logger.WithComponent("timeshift"),
	}
}

// Execute applies the scheduler to frames 0 through FrameCount-1 in order.
// It takes ownership of input.First; the frame set stays with the caller.
// The context is checked between frames.
func (s *Stage) Execute(ctx context.Context, input pipeline.ShiftInput) (pipeline.ShiftResult, error) {
	scheduler := shift.NewScheduler(input.Params)
	result := pipeline.ShiftResult{Ledger: scheduler.Ledger()}

	source := input.First
	defer func() {
		raster.ReleaseAll(source)
	}()
	if source == nil {
		return result, fmt.Errorf("no source frame loaded")
	}
	shape := source.Shape()

	for frame := 0; frame < input.Params.FrameCount; frame++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		path := input.Source.Path(frame)
		routes, err := scheduler.Apply(source, input.FrameSet, frame)
		if err != nil {
			return result, pipeline.ValidationError("process_file", path, err)
		}
		s.logger.Debug("Frame %d: %d slices routed", frame, len(routes))
		s.saveRoutes(frame, routes)

		if err := source.Release(); err != nil {
			return result, fmt.Errorf("release frame %d: %w", frame, err)
		}
		source = nil
		result.FramesProcessed++

		if frame+1 == input.Params.FrameCount {
			break
		}

		next := input.Source.Path(frame + 1)
		buf, err := s.codec.Decode(next)
		if err != nil {
			return result, err
		}
		if buf.Shape() != shape {
			got := buf.Shape()
			raster.ReleaseAll(buf)
			return result, pipeline.ValidationError("process_file", next,
				fmt.Errorf("%w: %s, expected %s", pipeline.ErrShapeMismatch, got, shape))
		}
		source = buf
	}

	return result, nil
}

func (s *Stage) saveRoutes(frame int, routes []shift.Route) {
	if !s.sink.Enabled() {
		return
	}
	data, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		s.logger.Warn("Failed to save debug output: %s", err)
		return
	}
	if err := s.sink.SaveRoutesJSON(frame, data); err != nil {
		s.logger.Warn("Failed to save debug output: %s", err)
	}
}

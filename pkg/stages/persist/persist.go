// Package persist implements the stage that writes the output frame set.
package persist

import (
	"context"
	"fmt"

	"github.com/user/timeshifter/pkg/pipeline"
	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/raster"
)

// Stage encodes every output buffer to its slot's file and releases it.
type Stage struct {
	codec  ports.ImageCodec
	logger ports.Logger
}

// New creates a new persist stage.
func New(codec ports.ImageCodec, logger ports.Logger) *Stage {
	return &Stage{
		codec:  codec,
		logger: logger.WithComponent("persist"),
	}
}

// Execute writes the frame set in slot order. Files written before a failure
// are left in place; every buffer is released either way.
func (s *Stage) Execute(ctx context.Context, input pipeline.PersistInput) (pipeline.PersistResult, error) {
	result := pipeline.PersistResult{
		Written: make([]string, 0, len(input.FrameSet)),
	}
	defer raster.ReleaseAll(input.FrameSet...)

	for slot, buf := range input.FrameSet {
		path := input.Output.Path(slot)
		if err := s.codec.Encode(buf, path); err != nil {
			return result, err
		}
		if err := buf.Release(); err != nil {
			return result, fmt.Errorf("release %s: %w", path, err)
		}
		s.logger.Debug("Wrote %s", path)
		result.Written = append(result.Written, path)
	}

	return result, nil
}

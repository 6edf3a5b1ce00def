// Package timeshifter wires the adapters, stages and orchestrator into a
// single entry point for time-shifting a frame sequence.
package timeshifter

import (
	"context"
	"fmt"
	"os"

	"github.com/user/timeshifter/pkg/adapters/filesink"
	"github.com/user/timeshifter/pkg/adapters/ggrenderer"
	"github.com/user/timeshifter/pkg/adapters/logger"
	"github.com/user/timeshifter/pkg/adapters/nullsink"
	"github.com/user/timeshifter/pkg/adapters/osfilesystem"
	"github.com/user/timeshifter/pkg/adapters/pngcodec"
	"github.com/user/timeshifter/pkg/framepath"
	"github.com/user/timeshifter/pkg/orchestrator"
	"github.com/user/timeshifter/pkg/pipeline"
	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/stages/persist"
	"github.com/user/timeshifter/pkg/stages/probe"
	"github.com/user/timeshifter/pkg/stages/timeshift"
)

// Run time-shifts the frames described by cfg on the local file system.
// The output frames are overwritten in place once every input has been
// validated and loaded.
func Run(ctx context.Context, cfg Config, log ports.Logger) (orchestrator.RunResult, error) {
	if log == nil {
		log = logger.NewNoop()
	}

	if err := framepath.ValidatePattern(cfg.FramePattern); err != nil {
		return orchestrator.RunResult{}, pipeline.UsageError("parse_args", "", err)
	}

	fs := osfilesystem.New()
	for _, dir := range []string{cfg.SourceDir, cfg.OutputDir} {
		if err := checkDir(fs, dir); err != nil {
			return orchestrator.RunResult{}, err
		}
	}

	renderer := ggrenderer.New()
	codec := pngcodec.New(fs).WithCompression(cfg.Compression)

	var sink ports.DebugSink
	if cfg.DebugDir != "" {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return orchestrator.RunResult{}, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer).WithQuality(cfg.SheetQuality)
	} else {
		sink = nullsink.New()
	}

	orch := orchestrator.New(
		probe.New(codec, log),
		timeshift.New(codec, sink, log),
		persist.New(codec, log),
		renderer,
		sink,
		log,
	)

	return orch.Run(ctx, cfg.ToOrchestratorConfig())
}

// checkDir reports a missing frame directory as an I/O failure and a
// regular file in its place as a usage error.
func checkDir(fs ports.FileSystem, dir string) error {
	exists, err := fs.Exists(dir)
	if err != nil {
		return pipeline.IOError("process_file", dir, err)
	}
	if !exists {
		return pipeline.IOError("process_file", dir, fmt.Errorf("directory does not exist: %w", os.ErrNotExist))
	}
	isDir, err := fs.IsDir(dir)
	if err != nil {
		return pipeline.IOError("process_file", dir, err)
	}
	if !isDir {
		return pipeline.UsageError("process_file", dir, pipeline.ErrNotDirectory)
	}
	return nil
}

// Shift time-shifts frameCount frames from sourceDir into the placeholder
// frames of outputDir using sliceCount bands and default settings.
func Shift(ctx context.Context, sourceDir, outputDir string, frameCount, sliceCount int) error {
	cfg := NewConfigBuilder(sourceDir, outputDir, frameCount, sliceCount).Build()
	_, err := Run(ctx, cfg, nil)
	return err
}

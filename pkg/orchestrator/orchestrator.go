// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/user/timeshifter/pkg/framepath"
	"github.com/user/timeshifter/pkg/pipeline"
	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/raster"
	"github.com/user/timeshifter/pkg/shift"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input and output
	SourceDir    string
	OutputDir    string
	FramePattern string

	// Geometry
	FrameCount int
	SliceCount int

	// Debug output
	Theme       ports.ChartTheme
	ThumbHeight int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FramePattern: framepath.DefaultPattern,
		Theme:        DefaultTheme(),
		ThumbHeight:  120,
	}
}

// DefaultTheme returns the colors used for debug charts.
func DefaultTheme() ports.ChartTheme {
	return ports.ChartTheme{
		Background: color.RGBA{R: 250, G: 250, B: 250, A: 255},
		Grid:       color.RGBA{R: 180, G: 180, B: 180, A: 255},
		Text:       color.RGBA{R: 40, G: 40, B: 40, A: 255},
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	probeStage     pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult]
	timeshiftStage pipeline.Stage[pipeline.ShiftInput, pipeline.ShiftResult]
	persistStage   pipeline.Stage[pipeline.PersistInput, pipeline.PersistResult]
	renderer       ports.Renderer
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult],
	timeshiftStage pipeline.Stage[pipeline.ShiftInput, pipeline.ShiftResult],
	persistStage pipeline.Stage[pipeline.PersistInput, pipeline.PersistResult],
	renderer ports.Renderer,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		probeStage:     probeStage,
		timeshiftStage: timeshiftStage,
		persistStage:   persistStage,
		renderer:       renderer,
		sink:           sink,
		logger:         logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	start := time.Now()
	source := framepath.New(config.SourceDir, config.FramePattern)
	output := framepath.New(config.OutputDir, config.FramePattern)

	o.logger.Info("Time-shifting %d frames of %s into %s with %d slices",
		config.FrameCount, config.SourceDir, config.OutputDir, config.SliceCount)

	// 1. Validate inputs and load the frame set
	probe, err := o.probeStage.Execute(ctx, pipeline.ProbeInput{
		Source:     source,
		Output:     output,
		FrameCount: config.FrameCount,
		SliceCount: config.SliceCount,
	})
	if err != nil {
		o.logger.Error("Failed to load frames: %s", err)
		return RunResult{}, fmt.Errorf("probe stage: %w", err)
	}
	o.logger.Info("Frames are %s, slice height %d", probe.Shape, probe.Params.SliceHeight)
	if dropped := probe.Params.DroppedRows(); dropped > 0 {
		o.logger.Warn("%d bottom rows are not covered by any slice and keep their placeholder content", dropped)
	}

	// 2. Route every slice of every source frame
	shifted, err := o.timeshiftStage.Execute(ctx, pipeline.ShiftInput{
		Source:   source,
		Params:   probe.Params,
		First:    probe.First,
		FrameSet: probe.FrameSet,
	})
	if err != nil {
		raster.ReleaseAll(probe.FrameSet...)
		o.logger.Error("Failed to shift frames: %s", err)
		return RunResult{}, fmt.Errorf("timeshift stage: %w", err)
	}
	o.logger.Info("Processed %d frames, %d slice copies", shifted.FramesProcessed, shifted.Ledger.Writes())

	// Debug output has to be taken before persisting releases the buffers
	if o.sink.Enabled() {
		o.saveDebug(config, probe, shifted.Ledger)
	}

	// 3. Write the frame set
	o.logger.Info("Saving Timeshifted Frames...")
	persisted, err := o.persistStage.Execute(ctx, pipeline.PersistInput{
		Output:   output,
		FrameSet: probe.FrameSet,
	})
	if err != nil {
		o.logger.Error("Failed to write output: %s", err)
		return RunResult{}, fmt.Errorf("persist stage: %w", err)
	}

	o.logger.Info("Pipeline completed successfully")

	result := RunResult{
		SourceDir:       config.SourceDir,
		OutputDir:       config.OutputDir,
		Width:           probe.Shape.Width,
		Height:          probe.Shape.Height,
		Layout:          probe.Shape.Layout.String(),
		BitDepth:        probe.Shape.BitDepth,
		BytesPerPixel:   probe.Shape.BytesPerPixel(),
		FrameCount:      probe.Params.FrameCount,
		SliceCount:      probe.Params.SliceCount,
		SliceHeight:     probe.Params.SliceHeight,
		DroppedRows:     probe.Params.DroppedRows(),
		FramesProcessed: shifted.FramesProcessed,
		SliceCopies:     shifted.Ledger.Writes(),
		Written:         persisted.Written,
		Grid:            shifted.Ledger.Grid(),
		DurationMs:      int(time.Since(start).Milliseconds()),
	}

	return result, nil
}

// scheduleDoc is the layout of schedule.json.
type scheduleDoc struct {
	Params shift.Params  `json:"params"`
	Shape  string        `json:"shape"`
	Cells  []shift.Entry `json:"cells"`
}

func (o *Orchestrator) saveDebug(config Config, probe pipeline.ProbeResult, ledger *shift.Ledger) {
	doc := scheduleDoc{
		Params: probe.Params,
		Shape:  probe.Shape.String(),
		Cells:  ledger.Snapshot(),
	}
	if data, err := json.MarshalIndent(doc, "", "  "); err == nil {
		if err := o.sink.SaveScheduleJSON(data); err != nil {
			o.logger.Warn("Failed to save debug output: %s", err)
		}
	}

	chart := o.renderer.RenderSchedule(ports.ScheduleGrid{
		Frames: probe.Params.FrameCount,
		Cells:  ledger.Grid(),
	}, config.Theme)
	if err := o.sink.SaveScheduleChart(chart); err != nil {
		o.logger.Warn("Failed to save debug output: %s", err)
	}

	frames := make([]image.Image, 0, len(probe.FrameSet))
	for _, buf := range probe.FrameSet {
		img, err := buf.ToImage()
		if err != nil {
			o.logger.Warn("Failed to save debug output: %s", err)
			return
		}
		frames = append(frames, img)
	}
	sheet := o.renderer.ContactSheet(frames, config.ThumbHeight, config.Theme.Background)
	if err := o.sink.SaveContactSheet(sheet); err != nil {
		o.logger.Warn("Failed to save debug output: %s", err)
	}
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	SourceDir string
	OutputDir string

	// Frame geometry
	Width         int
	Height        int
	Layout        string
	BitDepth      int
	BytesPerPixel int

	// Slicing
	FrameCount  int
	SliceCount  int
	SliceHeight int
	DroppedRows int

	// Work done
	FramesProcessed int
	SliceCopies     int
	Written         []string

	// Grid holds the source frame that last wrote each [slot][band], -1 if none.
	Grid [][]int

	DurationMs int
}

// Package summarizer provides summary generation for time-shift runs.
package summarizer

import "time"

// Summary contains all data collected during a run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Input   InputInfo
	Frames  FrameInfo
	Slicing SlicingInfo
	Result  ResultInfo

	// Schedule holds the source frame that last wrote each [slot][band], -1 if none.
	Schedule [][]int
}

// InputInfo names the sequences of the run.
type InputInfo struct {
	SourceDir    string
	OutputDir    string
	FramePattern string
}

// FrameInfo describes the shared shape of every frame.
type FrameInfo struct {
	Width         int
	Height        int
	Layout        string
	BitDepth      int
	BytesPerPixel int
}

// FrameBytes returns the decoded size of one frame.
func (f FrameInfo) FrameBytes() int64 {
	return int64(f.Width) * int64(f.Height) * int64(f.BytesPerPixel)
}

// SlicingInfo contains the geometry of the run.
type SlicingInfo struct {
	FrameCount  int
	SliceCount  int
	SliceHeight int
	DroppedRows int
}

// ResultInfo contains what the run did.
type ResultInfo struct {
	FramesProcessed int
	SliceCopies     int
	Written         []string
	DurationMs      int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets the source and output sequences.
func (b *Builder) WithInput(sourceDir, outputDir, pattern string) *Builder {
	b.summary.Input = InputInfo{
		SourceDir:    sourceDir,
		OutputDir:    outputDir,
		FramePattern: pattern,
	}
	return b
}

// WithFrames sets the frame shape.
func (b *Builder) WithFrames(frames FrameInfo) *Builder {
	b.summary.Frames = frames
	return b
}

// WithSlicing sets the run geometry.
func (b *Builder) WithSlicing(slicing SlicingInfo) *Builder {
	b.summary.Slicing = slicing
	return b
}

// WithResult sets the work done.
func (b *Builder) WithResult(result ResultInfo) *Builder {
	b.summary.Result = result
	return b
}

// WithSchedule sets the last-writer grid.
func (b *Builder) WithSchedule(grid [][]int) *Builder {
	b.summary.Schedule = grid
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

package ports

import (
	"image"
	"image/color"
)

// Renderer draws the debug visualizations of a run.
type Renderer interface {
	// RenderSchedule draws the routing grid: one row per output slot, one
	// column per band, each cell labelled with the frame that last wrote it.
	RenderSchedule(grid ScheduleGrid, theme ChartTheme) image.Image

	// ContactSheet lays the frames out left to right, scaled to thumbHeight.
	ContactSheet(frames []image.Image, thumbHeight int, bg color.Color) image.Image

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)
}

// ScheduleGrid is the last-writer table of a run, as [slot][band].
// Cells hold the source frame index, or -1 where no band was written.
type ScheduleGrid struct {
	Frames int
	Cells  [][]int
}

// ChartTheme holds the colors of the schedule chart.
type ChartTheme struct {
	Background color.Color
	Grid       color.Color
	Text       color.Color
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)

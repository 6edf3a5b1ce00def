package mocks

import (
	"image"
	"image/color"

	"github.com/user/timeshifter/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	RenderScheduleFunc func(grid ports.ScheduleGrid, theme ports.ChartTheme) image.Image
	ContactSheetFunc   func(frames []image.Image, thumbHeight int, bg color.Color) image.Image
	EncodeImageFunc    func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	ScheduleGrids []ports.ScheduleGrid
}

func (m *Renderer) RenderSchedule(grid ports.ScheduleGrid, theme ports.ChartTheme) image.Image {
	m.ScheduleGrids = append(m.ScheduleGrids, grid)
	if m.RenderScheduleFunc != nil {
		return m.RenderScheduleFunc(grid, theme)
	}
	return image.NewRGBA(image.Rect(0, 0, 10, 10))
}

func (m *Renderer) ContactSheet(frames []image.Image, thumbHeight int, bg color.Color) image.Image {
	if m.ContactSheetFunc != nil {
		return m.ContactSheetFunc(frames, thumbHeight, bg)
	}
	return image.NewRGBA(image.Rect(0, 0, len(frames)*thumbHeight, thumbHeight))
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

var _ ports.Renderer = (*Renderer)(nil)

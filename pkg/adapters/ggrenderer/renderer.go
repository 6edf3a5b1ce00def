// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"

	"github.com/user/timeshifter/pkg/ports"
)

// Chart geometry in pixels.
const (
	cellSize     = 28
	labelWidth   = 64
	headerHeight = 24
	chartPadding = 8
	sheetGap     = 8
)

// DefaultThumbHeight is used when a contact sheet is requested without a height.
const DefaultThumbHeight = 120

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderSchedule draws one row per output slot and one column per band.
// Each written cell is filled with the color of its source frame and
// labelled with the frame index.
func (r *Renderer) RenderSchedule(grid ports.ScheduleGrid, theme ports.ChartTheme) image.Image {
	bandCount := 0
	for _, row := range grid.Cells {
		if len(row) > bandCount {
			bandCount = len(row)
		}
	}

	width := labelWidth + bandCount*cellSize + chartPadding
	height := headerHeight + len(grid.Cells)*cellSize + chartPadding

	dc := gg.NewContext(width, height)
	dc.SetColor(theme.Background)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(theme.Text)
	for k := 0; k < bandCount; k++ {
		x := float64(labelWidth + k*cellSize + cellSize/2)
		dc.DrawStringAnchored(fmt.Sprintf("b%d", k), x, headerHeight/2, 0.5, 0.5)
	}

	for slot, row := range grid.Cells {
		y := headerHeight + slot*cellSize

		dc.SetColor(theme.Text)
		dc.DrawStringAnchored(fmt.Sprintf("slot %d", slot), chartPadding, float64(y+cellSize/2), 0, 0.5)

		for k, frame := range row {
			x := labelWidth + k*cellSize
			if frame >= 0 {
				dc.SetColor(FrameColor(frame, grid.Frames))
				dc.DrawRectangle(float64(x), float64(y), cellSize, cellSize)
				dc.Fill()

				dc.SetColor(theme.Text)
				dc.DrawStringAnchored(fmt.Sprintf("%d", frame), float64(x+cellSize/2), float64(y+cellSize/2), 0.5, 0.5)
			}

			dc.SetColor(theme.Grid)
			dc.SetLineWidth(1)
			dc.DrawRectangle(float64(x)+0.5, float64(y)+0.5, cellSize-1, cellSize-1)
			dc.Stroke()
		}
	}

	return dc.Image()
}

// FrameColor spreads frame indices evenly around the hue circle.
func FrameColor(frame, frames int) color.RGBA {
	if frames < 1 {
		frames = 1
	}
	hue := 360 * float64(frame%frames) / float64(frames)
	return hsv(hue, 0.45, 0.95)
}

func hsv(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// ContactSheet lays out frames left to right, each scaled to thumbHeight.
func (r *Renderer) ContactSheet(frames []image.Image, thumbHeight int, bg color.Color) image.Image {
	if thumbHeight <= 0 {
		thumbHeight = DefaultThumbHeight
	}

	thumbs := make([]image.Image, 0, len(frames))
	width := sheetGap
	for _, frame := range frames {
		b := frame.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			continue
		}
		w := int(math.Round(float64(b.Dx()) * float64(thumbHeight) / float64(b.Dy())))
		if w < 1 {
			w = 1
		}
		thumbs = append(thumbs, r.ResizeImage(frame, w, thumbHeight))
		width += w + sheetGap
	}

	dc := gg.NewContext(width, thumbHeight+2*sheetGap)
	dc.SetColor(bg)
	dc.Clear()

	x := sheetGap
	for _, thumb := range thumbs {
		dc.DrawImage(thumb, x, sheetGap)
		x += thumb.Bounds().Dx() + sheetGap
	}

	return dc.Image()
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

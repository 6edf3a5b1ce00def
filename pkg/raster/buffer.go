// Package raster provides the decoded pixel buffer shared by the codec,
// the slice copier and the shift scheduler.
package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrReleased is returned when a released buffer is accessed or released again.
	ErrReleased = errors.New("raster: buffer already released")

	// ErrRowOutOfRange is returned when a row index falls outside the buffer.
	ErrRowOutOfRange = errors.New("raster: row out of range")

	// ErrInvalidDimensions is returned when a buffer would have a non-positive size.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrUnsupportedLayout is returned when a conversion does not support the layout.
	ErrUnsupportedLayout = errors.New("raster: unsupported channel layout")
)

// Layout is the per-pixel channel layout of a buffer.
// Values follow the PNG color types.
type Layout int

const (
	LayoutGray      Layout = 0
	LayoutRGB       Layout = 2
	LayoutPaletted  Layout = 3
	LayoutGrayAlpha Layout = 4
	LayoutRGBA      Layout = 6
)

// String returns the string representation of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutGray:
		return "gray"
	case LayoutRGB:
		return "rgb"
	case LayoutPaletted:
		return "paletted"
	case LayoutGrayAlpha:
		return "gray+alpha"
	case LayoutRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// Channels returns the number of samples per pixel.
func (l Layout) Channels() int {
	switch l {
	case LayoutGray, LayoutPaletted:
		return 1
	case LayoutGrayAlpha:
		return 2
	case LayoutRGB:
		return 3
	case LayoutRGBA:
		return 4
	default:
		return 0
	}
}

// Buffer is a decoded image held as row-major bytes.
// The buffer owns its rows until Release is called.
type Buffer struct {
	Width    int
	Height   int
	Layout   Layout
	BitDepth int

	rows     [][]byte
	released bool
}

// New allocates a zeroed buffer.
func New(width, height int, layout Layout, bitDepth int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if layout.Channels() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLayout, layout)
	}

	b := &Buffer{
		Width:    width,
		Height:   height,
		Layout:   layout,
		BitDepth: bitDepth,
	}
	stride := b.RowBytes()
	pix := make([]byte, stride*height)
	b.rows = make([][]byte, height)
	for y := range b.rows {
		b.rows[y] = pix[y*stride : (y+1)*stride : (y+1)*stride]
	}
	return b, nil
}

// BytesPerPixel returns the storage size of one pixel.
// Depths below 8 bits are stored expanded to one byte per sample.
func (b *Buffer) BytesPerPixel() int {
	return b.Shape().BytesPerPixel()
}

// RowBytes returns the length of one row in bytes.
func (b *Buffer) RowBytes() int {
	return b.Width * b.BytesPerPixel()
}

// Row returns the storage of row y. The slice aliases the buffer.
func (b *Buffer) Row(y int) ([]byte, error) {
	if b.released {
		return nil, ErrReleased
	}
	if y < 0 || y >= b.Height {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrRowOutOfRange, y, b.Height)
	}
	return b.rows[y], nil
}

// Released reports whether the row storage has been dropped.
func (b *Buffer) Released() bool {
	return b.released
}

// Release drops the row storage. It may be called once.
func (b *Buffer) Release() error {
	if b.released {
		return ErrReleased
	}
	b.rows = nil
	b.released = true
	return nil
}

// Shape describes the dimensions and pixel format of a buffer.
type Shape struct {
	Width    int
	Height   int
	Layout   Layout
	BitDepth int
}

// String returns e.g. "640x480 rgba/8".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d %s/%d", s.Width, s.Height, s.Layout, s.BitDepth)
}

// BytesPerPixel returns the storage size of one pixel of this shape.
func (s Shape) BytesPerPixel() int {
	sampleBytes := 1
	if s.BitDepth > 8 {
		sampleBytes = 2
	}
	return s.Layout.Channels() * sampleBytes
}

// Shape returns the buffer's shape.
func (b *Buffer) Shape() Shape {
	return Shape{Width: b.Width, Height: b.Height, Layout: b.Layout, BitDepth: b.BitDepth}
}

// ReleaseAll releases every buffer that is not nil and not yet released.
func ReleaseAll(bufs ...*Buffer) {
	for _, b := range bufs {
		if b != nil && !b.released {
			b.Release()
		}
	}
}

package raster

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage copies img into a new buffer with the given layout and bit depth.
// The layout and depth describe how the image was stored (for PNG, the IHDR
// color type and bit depth); samples are taken from the decoded image.
func FromImage(img image.Image, layout Layout, bitDepth int) (*Buffer, error) {
	bounds := img.Bounds()
	b, err := New(bounds.Dx(), bounds.Dy(), layout, bitDepth)
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.NRGBA:
		if layout == LayoutRGBA && bitDepth <= 8 {
			copyPix(b, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y))
			return b, nil
		}
	case *image.NRGBA64:
		if layout == LayoutRGBA && bitDepth == 16 {
			copyPix(b, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y))
			return b, nil
		}
	case *image.Paletted:
		if layout == LayoutPaletted {
			for y := 0; y < b.Height; y++ {
				row := b.rows[y]
				for x := 0; x < b.Width; x++ {
					row[x] = src.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)
				}
			}
			return b, nil
		}
	}

	if layout == LayoutPaletted {
		return nil, fmt.Errorf("%w: paletted layout from %T", ErrUnsupportedLayout, img)
	}
	pack(b, img)
	return b, nil
}

func copyPix(b *Buffer, pix []byte, stride, offset int) {
	n := b.RowBytes()
	for y := 0; y < b.Height; y++ {
		start := offset + y*stride
		copy(b.rows[y], pix[start:start+n])
	}
}

// pack writes every pixel of img as non-premultiplied samples in b's layout.
func pack(b *Buffer, img image.Image) {
	bounds := img.Bounds()
	wide := b.BitDepth > 8
	for y := 0; y < b.Height; y++ {
		row := b.rows[y]
		i := 0
		for x := 0; x < b.Width; x++ {
			c := color.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			var samples []uint16
			switch b.Layout {
			case LayoutGray:
				samples = []uint16{c.R}
			case LayoutGrayAlpha:
				samples = []uint16{c.R, c.A}
			case LayoutRGB:
				samples = []uint16{c.R, c.G, c.B}
			default:
				samples = []uint16{c.R, c.G, c.B, c.A}
			}
			for _, s := range samples {
				if wide {
					row[i] = uint8(s >> 8)
					row[i+1] = uint8(s)
					i += 2
				} else {
					row[i] = uint8(s >> 8)
					i++
				}
			}
		}
	}
}

// ToImage returns a copy of an RGBA buffer as *image.NRGBA (8-bit) or
// *image.NRGBA64 (16-bit).
func (b *Buffer) ToImage() (image.Image, error) {
	if b.released {
		return nil, ErrReleased
	}
	if b.Layout != LayoutRGBA {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLayout, b.Layout)
	}

	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.BitDepth == 16 {
		img := image.NewNRGBA64(rect)
		for y := 0; y < b.Height; y++ {
			copy(img.Pix[y*img.Stride:], b.rows[y])
		}
		return img, nil
	}

	img := image.NewNRGBA(rect)
	for y := 0; y < b.Height; y++ {
		copy(img.Pix[y*img.Stride:], b.rows[y])
	}
	return img, nil
}

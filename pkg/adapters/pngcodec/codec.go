// Package pngcodec reads and writes frames as PNG files.
package pngcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/user/timeshifter/pkg/pipeline"
	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/raster"
)

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ErrMissingHeader is returned when the IHDR chunk does not follow the signature.
var ErrMissingHeader = errors.New("missing IHDR chunk")

// Header is the image header stored in the IHDR chunk.
type Header struct {
	Width    int
	Height   int
	BitDepth int
	Layout   raster.Layout
}

// ReadHeader checks the PNG signature and parses the IHDR chunk.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < len(signature) || !bytes.Equal(data[:len(signature)], signature) {
		return Header{}, pipeline.ErrNotPNG
	}
	// signature(8) length(4) type(4) width(4) height(4) depth(1) color(1)
	// compression(1) filter(1) interlace(1)
	if len(data) < 29 || string(data[12:16]) != "IHDR" {
		return Header{}, ErrMissingHeader
	}
	return Header{
		Width:    int(binary.BigEndian.Uint32(data[16:20])),
		Height:   int(binary.BigEndian.Uint32(data[20:24])),
		BitDepth: int(data[24]),
		Layout:   raster.Layout(data[25]),
	}, nil
}

// image/png writes opaque images without the alpha channel. Output frames
// must stay RGBA so they can be read back as placeholders.
type nrgbaImage struct{ *image.NRGBA }

func (nrgbaImage) Opaque() bool { return false }

type nrgba64Image struct{ *image.NRGBA64 }

func (nrgba64Image) Opaque() bool { return false }

// withAlpha wraps img so the encoder always keeps the alpha channel.
func withAlpha(img image.Image) image.Image {
	switch m := img.(type) {
	case *image.NRGBA:
		return nrgbaImage{m}
	case *image.NRGBA64:
		return nrgba64Image{m}
	}
	return img
}

// Codec implements ports.ImageCodec for PNG files.
type Codec struct {
	fs    ports.FileSystem
	level png.CompressionLevel
}

// New creates a Codec reading and writing through fs.
func New(fs ports.FileSystem) *Codec {
	return &Codec{fs: fs, level: png.DefaultCompression}
}

// WithCompression returns a Codec that encodes at the given level.
func (c *Codec) WithCompression(level png.CompressionLevel) *Codec {
	return &Codec{fs: c.fs, level: level}
}

// Decode reads the PNG at path. The buffer keeps the file's channel layout
// and bit depth; validating them is up to the caller.
func (c *Codec) Decode(path string) (*raster.Buffer, error) {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, pipeline.IOError("read_png_file", path, fmt.Errorf("could not be opened for reading: %w", err))
	}

	hdr, err := ReadHeader(data)
	if err != nil {
		return nil, pipeline.FormatError("read_png_file", path, err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, pipeline.FormatError("read_png_file", path, fmt.Errorf("error during read_image: %w", err))
	}

	buf, err := raster.FromImage(img, hdr.Layout, hdr.BitDepth)
	if err != nil {
		return nil, pipeline.FormatError("read_png_file", path, err)
	}
	return buf, nil
}

// Encode writes buf to path as PNG. Only RGBA buffers can be written, and
// they are written as RGBA even when every pixel is opaque.
func (c *Codec) Encode(buf *raster.Buffer, path string) error {
	img, err := buf.ToImage()
	if errors.Is(err, raster.ErrReleased) {
		return fmt.Errorf("write_png_file %s: %w", path, err)
	}
	if err != nil {
		return pipeline.ValidationError("write_png_file", path, err)
	}

	var out bytes.Buffer
	enc := png.Encoder{CompressionLevel: c.level}
	if err := enc.Encode(&out, withAlpha(img)); err != nil {
		return pipeline.FormatError("write_png_file", path, fmt.Errorf("error during writing bytes: %w", err))
	}

	if err := c.fs.WriteFile(path, out.Bytes()); err != nil {
		return pipeline.IOError("write_png_file", path, fmt.Errorf("could not be opened for writing: %w", err))
	}
	return nil
}

var _ ports.ImageCodec = (*Codec)(nil)

package pngcodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/timeshifter/pkg/mocks"
	"github.com/user/timeshifter/pkg/pipeline"
	"github.com/user/timeshifter/pkg/raster"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func translucent(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 77, A: 200})
		}
	}
	return img
}

func TestReadHeader(t *testing.T) {
	data := encodePNG(t, translucent(7, 3))

	hdr, err := ReadHeader(data)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if hdr.Width != 7 || hdr.Height != 3 {
		t.Errorf("expected 7x3, got %dx%d", hdr.Width, hdr.Height)
	}
	if hdr.Layout != raster.LayoutRGBA || hdr.BitDepth != 8 {
		t.Errorf("expected rgba/8, got %s/%d", hdr.Layout, hdr.BitDepth)
	}
}

func TestReadHeader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty", data: nil, wantErr: pipeline.ErrNotPNG},
		{name: "jpeg", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0, 0, 0}, wantErr: pipeline.ErrNotPNG},
		{name: "truncated", data: append(append([]byte{}, signature...), 0, 0, 0, 13), wantErr: ErrMissingHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadHeader(tt.data); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCodec_DecodeRGBA(t *testing.T) {
	fs := mocks.NewFileSystem()
	src := translucent(4, 2)
	fs.AddFile("src/000.png", encodePNG(t, src))

	buf, err := New(fs).Decode("src/000.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if buf.Shape() != (raster.Shape{Width: 4, Height: 2, Layout: raster.LayoutRGBA, BitDepth: 8}) {
		t.Fatalf("unexpected shape %s", buf.Shape())
	}
	for y := 0; y < 2; y++ {
		row, _ := buf.Row(y)
		if !bytes.Equal(row, src.Pix[y*src.Stride:y*src.Stride+16]) {
			t.Errorf("row %d: expected %v, got %v", y, src.Pix[y*src.Stride:y*src.Stride+16], row)
		}
	}
}

func TestCodec_DecodeKeepsOtherLayouts(t *testing.T) {
	tests := []struct {
		name   string
		img    image.Image
		layout raster.Layout
	}{
		{name: "opaque truecolor", img: image.NewRGBA(image.Rect(0, 0, 2, 2)), layout: raster.LayoutRGB},
		{name: "gray", img: image.NewGray(image.Rect(0, 0, 2, 2)), layout: raster.LayoutGray},
		{name: "paletted", img: image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White}), layout: raster.LayoutPaletted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rgba, ok := tt.img.(*image.RGBA); ok {
				for i := range rgba.Pix {
					rgba.Pix[i] = 0xFF
				}
			}
			fs := mocks.NewFileSystem()
			fs.AddFile("in.png", encodePNG(t, tt.img))

			buf, err := New(fs).Decode("in.png")
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if buf.Layout != tt.layout {
				t.Errorf("expected layout %s, got %s", tt.layout, buf.Layout)
			}
		})
	}
}

func TestCodec_DecodeErrors(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("bad.png", []byte("definitely not a png"))
	corrupt := encodePNG(t, translucent(4, 4))
	fs.AddFile("corrupt.png", corrupt[:len(corrupt)-20])
	codec := New(fs)

	tests := []struct {
		path     string
		wantKind pipeline.ErrorKind
	}{
		{path: "missing.png", wantKind: pipeline.KindIO},
		{path: "bad.png", wantKind: pipeline.KindFormat},
		{path: "corrupt.png", wantKind: pipeline.KindFormat},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := codec.Decode(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			kind, ok := pipeline.KindOf(err)
			if !ok || kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s (%v)", tt.wantKind, kind, err)
			}
		})
	}

	_, err := codec.Decode("bad.png")
	if !errors.Is(err, pipeline.ErrNotPNG) {
		t.Errorf("expected ErrNotPNG, got %v", err)
	}
}

func TestCodec_EncodeRoundTrip(t *testing.T) {
	fs := mocks.NewFileSystem()
	codec := New(fs)
	src := translucent(5, 3)

	buf, err := raster.FromImage(src, raster.LayoutRGBA, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := codec.Encode(buf, "out/001.png"); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	data, ok := fs.GetFile("out/001.png")
	if !ok {
		t.Fatal("expected file to be written")
	}
	hdr, err := ReadHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Layout != raster.LayoutRGBA {
		t.Errorf("expected translucent frame to be written as rgba, got %s", hdr.Layout)
	}

	again, err := codec.Decode("out/001.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for y := 0; y < 3; y++ {
		a, _ := buf.Row(y)
		b, _ := again.Row(y)
		if !bytes.Equal(a, b) {
			t.Errorf("row %d differs after round trip", y)
		}
	}
}

func TestCodec_EncodeErrors(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("permission denied")
	}
	codec := New(fs)

	buf, _ := raster.New(2, 2, raster.LayoutRGBA, 8)
	err := codec.Encode(buf, "out/000.png")
	if kind, _ := pipeline.KindOf(err); kind != pipeline.KindIO {
		t.Errorf("expected io error, got %v", err)
	}

	rgb, _ := raster.New(2, 2, raster.LayoutRGB, 8)
	err = codec.Encode(rgb, "out/000.png")
	if !errors.Is(err, raster.ErrUnsupportedLayout) {
		t.Errorf("expected ErrUnsupportedLayout, got %v", err)
	}
}

func TestCodec_EncodeSixteenBit(t *testing.T) {
	fs := mocks.NewFileSystem()
	codec := New(fs).WithCompression(png.BestSpeed)

	src := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	src.SetNRGBA64(0, 0, color.NRGBA64{R: 0x0102, G: 0x0304, B: 0x0506, A: 0x8000})
	buf, _ := raster.FromImage(src, raster.LayoutRGBA, 16)

	if err := codec.Encode(buf, "deep.png"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := codec.Decode("deep.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if again.BitDepth != 16 || again.BytesPerPixel() != 8 {
		t.Fatalf("expected rgba/16, got %s", again.Shape())
	}
	row, _ := again.Row(0)
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x80, 0x00}
	if !bytes.Equal(row[:8], want) {
		t.Errorf("expected %v, got %v", want, row[:8])
	}
}

func TestCodec_EncodeOpaqueKeepsAlpha(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		img   image.Image
	}{
		{name: "8-bit", depth: 8, img: func() image.Image {
			img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
			for i := range img.Pix {
				img.Pix[i] = 0xFF
			}
			return img
		}()},
		{name: "16-bit", depth: 16, img: func() image.Image {
			img := image.NewNRGBA64(image.Rect(0, 0, 3, 2))
			for i := range img.Pix {
				img.Pix[i] = 0xFF
			}
			return img
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewFileSystem()
			codec := New(fs)

			buf, err := raster.FromImage(tt.img, raster.LayoutRGBA, tt.depth)
			if err != nil {
				t.Fatal(err)
			}
			if err := codec.Encode(buf, "out/000.png"); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			data, _ := fs.GetFile("out/000.png")
			hdr, err := ReadHeader(data)
			if err != nil {
				t.Fatal(err)
			}
			if hdr.Layout != raster.LayoutRGBA || hdr.BitDepth != tt.depth {
				t.Fatalf("expected rgba/%d, got %s/%d", tt.depth, hdr.Layout, hdr.BitDepth)
			}

			again, err := codec.Decode("out/000.png")
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if again.Shape() != buf.Shape() {
				t.Errorf("expected shape %s, got %s", buf.Shape(), again.Shape())
			}
		})
	}
}

func TestCodec_EncodeReleasedBuffer(t *testing.T) {
	fs := mocks.NewFileSystem()
	buf, _ := raster.New(2, 2, raster.LayoutRGBA, 8)
	buf.Release()

	err := New(fs).Encode(buf, "out/000.png")
	if !errors.Is(err, raster.ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
	if kind, ok := pipeline.KindOf(err); ok {
		t.Errorf("expected a programming error outside the run error kinds, got %s", kind)
	}
	if _, ok := fs.GetFile("out/000.png"); ok {
		t.Error("expected nothing to be written")
	}
}

package bands

import (
	"errors"
	"testing"

	"github.com/user/timeshifter/pkg/raster"
)

func filled(t *testing.T, width, height int, depth int, value byte) *raster.Buffer {
	t.Helper()
	b, err := raster.New(width, height, raster.LayoutRGBA, depth)
	if err != nil {
		t.Fatalf("raster.New: %v", err)
	}
	for y := 0; y < height; y++ {
		row, _ := b.Row(y)
		for i := range row {
			row[i] = value
		}
	}
	return b
}

func rowValue(t *testing.T, b *raster.Buffer, y int) byte {
	t.Helper()
	row, err := b.Row(y)
	if err != nil {
		t.Fatalf("Row(%d): %v", y, err)
	}
	for i := 1; i < len(row); i++ {
		if row[i] != row[0] {
			t.Fatalf("row %d is not uniform: %v", y, row)
		}
	}
	return row[0]
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name          string
		height, count int
		bandHeight    int
		remainder     int
	}{
		{name: "even split", height: 8, count: 4, bandHeight: 2, remainder: 0},
		{name: "remainder dropped", height: 10, count: 3, bandHeight: 3, remainder: 1},
		{name: "one band per row", height: 5, count: 5, bandHeight: 1, remainder: 0},
		{name: "single band", height: 7, count: 1, bandHeight: 7, remainder: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rem, err := Partition(tt.height, tt.count)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("expected %d bands, got %d", tt.count, len(got))
			}
			if rem != tt.remainder {
				t.Errorf("remainder: expected %d, got %d", tt.remainder, rem)
			}
			for i, b := range got {
				if b.Start != i*tt.bandHeight || b.Height != tt.bandHeight {
					t.Errorf("band %d: got %+v", i, b)
				}
			}
		})
	}
}

func TestPartition_Invalid(t *testing.T) {
	for _, c := range [][2]int{{4, 0}, {4, -1}, {4, 5}} {
		if _, _, err := Partition(c[0], c[1]); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("Partition(%d, %d): expected ErrInvalidCount, got %v", c[0], c[1], err)
		}
	}
}

func TestBand_End(t *testing.T) {
	if end := (Band{Start: 2, Height: 3}).End(); end != 5 {
		t.Errorf("expected end 5, got %d", end)
	}
}

func TestCopy(t *testing.T) {
	src := filled(t, 3, 6, 8, 0xAA)
	dst := filled(t, 3, 6, 8, 0x11)

	if err := Copy(src, dst, 2, 3); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	want := []byte{0x11, 0x11, 0xAA, 0xAA, 0xAA, 0x11}
	for y, v := range want {
		if got := rowValue(t, dst, y); got != v {
			t.Errorf("row %d: expected %#x, got %#x", y, v, got)
		}
	}
	if rowValue(t, src, 0) != 0xAA {
		t.Error("source must not be modified")
	}
}

func TestCopy_SixteenBit(t *testing.T) {
	src := filled(t, 2, 2, 16, 0x7F)
	dst := filled(t, 2, 2, 16, 0x00)

	if err := CopyBand(src, dst, Band{Start: 1, Height: 1}); err != nil {
		t.Fatalf("CopyBand: %v", err)
	}
	row, _ := dst.Row(1)
	if len(row) != 16 {
		t.Fatalf("expected 16 bytes per row, got %d", len(row))
	}
	if rowValue(t, dst, 1) != 0x7F || rowValue(t, dst, 0) != 0x00 {
		t.Error("expected only row 1 to be copied, all 8 bytes per pixel")
	}
}

func TestCopy_Rejects(t *testing.T) {
	rgb, _ := raster.New(3, 4, raster.LayoutRGB, 8)
	released := filled(t, 3, 4, 8, 1)
	released.Release()

	tests := []struct {
		name     string
		src, dst *raster.Buffer
		start    int
		count    int
		wantErr  error
	}{
		{name: "width mismatch", src: filled(t, 3, 4, 8, 1), dst: filled(t, 2, 4, 8, 0), start: 0, count: 1, wantErr: ErrLayoutMismatch},
		{name: "depth mismatch", src: filled(t, 3, 4, 8, 1), dst: filled(t, 3, 4, 16, 0), start: 0, count: 1, wantErr: ErrLayoutMismatch},
		{name: "non-rgba", src: rgb, dst: filled(t, 3, 4, 8, 0), start: 0, count: 1, wantErr: ErrNotRGBA},
		{name: "past end", src: filled(t, 3, 4, 8, 1), dst: filled(t, 3, 4, 8, 0), start: 3, count: 2, wantErr: ErrOutOfBounds},
		{name: "negative start", src: filled(t, 3, 4, 8, 1), dst: filled(t, 3, 4, 8, 0), start: -1, count: 1, wantErr: ErrOutOfBounds},
		{name: "released source", src: released, dst: filled(t, 3, 4, 8, 0), start: 0, count: 1, wantErr: raster.ErrReleased},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Copy(tt.src, tt.dst, tt.start, tt.count)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !tt.dst.Released() && tt.dst.Layout == raster.LayoutRGBA {
				for y := 0; y < tt.dst.Height; y++ {
					if rowValue(t, tt.dst, y) != 0 {
						t.Fatalf("row %d was modified on rejected copy", y)
					}
				}
			}
		})
	}
}

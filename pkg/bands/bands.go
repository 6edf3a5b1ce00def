// Package bands partitions frames into horizontal bands and copies bands
// between pixel buffers.
package bands

import (
	"errors"
	"fmt"

	"github.com/user/timeshifter/pkg/raster"
)

var (
	// ErrLayoutMismatch is returned when source and destination pixel formats differ.
	ErrLayoutMismatch = errors.New("bands: source and destination layouts differ")

	// ErrNotRGBA is returned when a copy is requested on a non-RGBA buffer.
	ErrNotRGBA = errors.New("bands: buffers must be rgba")

	// ErrOutOfBounds is returned when a row range exceeds a buffer.
	ErrOutOfBounds = errors.New("bands: row range out of bounds")

	// ErrInvalidCount is returned when a partition is requested with a bad band count.
	ErrInvalidCount = errors.New("bands: invalid band count")
)

// Band is the half-open row range [Start, Start+Height) of a frame.
type Band struct {
	Start  int `json:"start"`
	Height int `json:"height"`
}

// End returns the first row after the band.
func (b Band) End() int {
	return b.Start + b.Height
}

// Partition splits height rows into count bands of height/count rows.
// The remainder rows at the bottom belong to no band; their number is returned.
func Partition(height, count int) ([]Band, int, error) {
	if count < 1 || count > height {
		return nil, 0, fmt.Errorf("%w: %d bands for %d rows", ErrInvalidCount, count, height)
	}
	bandHeight := height / count
	out := make([]Band, count)
	for i := range out {
		out[i] = Band{Start: i * bandHeight, Height: bandHeight}
	}
	return out, height - count*bandHeight, nil
}

// Copy copies rows [rowStart, rowStart+rowCount) from src to the same rows
// of dst, byte for byte. Nothing is written unless every check passes.
func Copy(src, dst *raster.Buffer, rowStart, rowCount int) error {
	if src.Released() || dst.Released() {
		return raster.ErrReleased
	}
	if src.Layout != raster.LayoutRGBA || dst.Layout != raster.LayoutRGBA {
		return fmt.Errorf("%w: %s -> %s", ErrNotRGBA, src.Layout, dst.Layout)
	}
	if src.Width != dst.Width || src.BitDepth != dst.BitDepth {
		return fmt.Errorf("%w: %s -> %s", ErrLayoutMismatch, src.Shape(), dst.Shape())
	}
	end := rowStart + rowCount
	if rowStart < 0 || rowCount < 0 || end > src.Height || end > dst.Height {
		return fmt.Errorf("%w: rows [%d,%d) of %d/%d", ErrOutOfBounds, rowStart, end, src.Height, dst.Height)
	}

	for y := rowStart; y < end; y++ {
		from, err := src.Row(y)
		if err != nil {
			return err
		}
		to, err := dst.Row(y)
		if err != nil {
			return err
		}
		copy(to, from)
	}
	return nil
}

// CopyBand copies band b from src to dst.
func CopyBand(src, dst *raster.Buffer, b Band) error {
	return Copy(src, dst, b.Start, b.Height)
}

// Package ports defines interfaces for external dependencies.
package ports

import "github.com/user/timeshifter/pkg/raster"

// ImageCodec reads and writes frame files as pixel buffers.
type ImageCodec interface {
	// Decode reads the image at path into a new buffer owned by the caller.
	Decode(path string) (*raster.Buffer, error)

	// Encode writes buf to path, replacing any existing file.
	Encode(buf *raster.Buffer, path string) error
}

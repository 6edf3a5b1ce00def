package mocks

import (
	"fmt"
	"sync"

	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/raster"
)

// Codec is an in-memory implementation of ports.ImageCodec.
// Decode hands out a fresh copy of the stored buffer so callers may
// mutate and release it freely.
type Codec struct {
	mu     sync.Mutex
	images map[string]*raster.Buffer

	DecodeFunc func(path string) (*raster.Buffer, error)
	EncodeFunc func(buf *raster.Buffer, path string) error

	Decoded []string
	Encoded []string

	handed []*raster.Buffer
}

// NewCodec creates a new mock Codec.
func NewCodec() *Codec {
	return &Codec{images: make(map[string]*raster.Buffer)}
}

// Put stores buf under path (for test setup).
func (m *Codec) Put(path string, buf *raster.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[path] = buf
}

// Get returns the buffer stored under path (for test verification).
func (m *Codec) Get(path string) (*raster.Buffer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.images[path]
	return buf, ok
}

func (m *Codec) Decode(path string) (*raster.Buffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decoded = append(m.Decoded, path)
	if m.DecodeFunc != nil {
		return m.DecodeFunc(path)
	}
	src, ok := m.images[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	buf, err := Clone(src)
	if err != nil {
		return nil, err
	}
	m.handed = append(m.handed, buf)
	return buf, nil
}

func (m *Codec) Encode(buf *raster.Buffer, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Encoded = append(m.Encoded, path)
	if m.EncodeFunc != nil {
		return m.EncodeFunc(buf, path)
	}
	out, err := Clone(buf)
	if err != nil {
		return err
	}
	m.images[path] = out
	return nil
}

// Unreleased returns how many decoded buffers have not been released.
func (m *Codec) Unreleased() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.handed {
		if !b.Released() {
			n++
		}
	}
	return n
}

// Clone copies a buffer's shape and rows.
func Clone(src *raster.Buffer) (*raster.Buffer, error) {
	dst, err := raster.New(src.Width, src.Height, src.Layout, src.BitDepth)
	if err != nil {
		return nil, err
	}
	for y := 0; y < src.Height; y++ {
		from, err := src.Row(y)
		if err != nil {
			return nil, err
		}
		to, _ := dst.Row(y)
		copy(to, from)
	}
	return dst, nil
}

var _ ports.ImageCodec = (*Codec)(nil)

// Solid returns an 8-bit RGBA buffer with every byte set to value.
func Solid(width, height int, value byte) *raster.Buffer {
	buf, err := raster.New(width, height, raster.LayoutRGBA, 8)
	if err != nil {
		panic(err)
	}
	for y := 0; y < height; y++ {
		row, _ := buf.Row(y)
		for i := range row {
			row[i] = value
		}
	}
	return buf
}

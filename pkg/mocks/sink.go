package mocks

import (
	"image"
	"sync"

	"github.com/user/timeshifter/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	ScheduleJSON  []byte
	Routes        map[int][]byte
	ScheduleChart image.Image
	ContactSheet  image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Routes:  make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveScheduleJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScheduleJSON = data
	return nil
}

func (m *DebugSink) SaveRoutesJSON(frame int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Routes[frame] = data
	return nil
}

func (m *DebugSink) SaveScheduleChart(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScheduleChart = img
	return nil
}

func (m *DebugSink) SaveContactSheet(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContactSheet = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

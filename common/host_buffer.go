package common

import (
	"fmt"
	"sync"

	"GPU_vertex_layout/layout"
)

// HostBuffer is plain host memory with the same contract as a mapped device
// buffer. It stands in for unified memory when no Vulkan device is used.
type HostBuffer struct {
	mu  sync.Mutex
	mem []byte
}

func NewHostBuffer(size uint64) *HostBuffer {
	layout.Logger().Debug("host buffer allocated", "bytes", size)
	return &HostBuffer{mem: make([]byte, size)}
}

func (b *HostBuffer) Size() uint64 {
	return uint64(len(b.mem))
}

// Write copies a full buffer worth of payload starting at offset 0.
func (b *HostBuffer) Write(payload []byte) error {
	if len(payload) != len(b.mem) {
		return fmt.Errorf("host buffer is %d bytes, payload %d", len(b.mem), len(payload))
	}
	b.mu.Lock()
	copy(b.mem, payload)
	b.mu.Unlock()
	return nil
}

// Read returns a copy of the buffer contents.
func (b *HostBuffer) Read() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.mem))
	copy(out, b.mem)
	return out, nil
}

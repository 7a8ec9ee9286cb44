package model

import (
	"errors"
	"fmt"

	"GPU_vertex_layout/layout"
)

var ErrSizeMismatch = errors.New("buffer and payload not of equal size")

// DeviceMemory is accelerator-visible memory the host can write and read
// back. Writes always cover the whole allocation starting at offset 0.
type DeviceMemory interface {
	Size() uint64
	Write(payload []byte) error
	Read() ([]byte, error)
}

// Upload copies the vertex image into dst. dst must be exactly
// VertexBufferSize bytes.
func (m *Model) Upload(dst DeviceMemory) error {
	payload := m.VertexBytes()
	if dst.Size() != uint64(len(payload)) {
		return fmt.Errorf("upload %s: %w: buffer %d, payload %d", m.Name, ErrSizeMismatch, dst.Size(), len(payload))
	}
	if err := dst.Write(payload); err != nil {
		return fmt.Errorf("upload %s: %w", m.Name, err)
	}
	layout.Logger().Debug("vertices uploaded", "model", m.Name, "vertices", len(m.Mesh.Vertices), "bytes", len(payload))
	return nil
}

// ReadBack reads src and decodes it with the layout the shader compiler
// assigns to Vertex, i.e. the way a shader would see the buffer.
func ReadBack(src DeviceMemory) ([]layout.Vertex, error) {
	b, err := src.Read()
	if err != nil {
		return nil, fmt.Errorf("read back vertices: %w", err)
	}
	l, err := layout.ShaderLayout()
	if err != nil {
		return nil, err
	}
	return layout.DecodeWith(l, b)
}

// Mismatches compares two vertex lists bit for bit and returns the indices
// that differ. A length difference is reported as every index past the
// shorter list.
func Mismatches(want, got []layout.Vertex) []int {
	var bad []int
	for i := 0; i < max(len(want), len(got)); i++ {
		if i >= len(want) || i >= len(got) {
			bad = append(bad, i)
			continue
		}
		if !want[i].Pos.Vec3.Bits(got[i].Pos.Vec3) || !want[i].Color.Vec3.Bits(got[i].Color.Vec3) {
			bad = append(bad, i)
		}
	}
	return bad
}

package model

import (
	"encoding/binary"

	"GPU_vertex_layout/layout"
	vm "GPU_vertex_layout/vector_math"
)

type Model struct {
	Mesh      *Mesh
	Name      string
	Wireframe bool
}

// NewModel builds one of the built-in shapes with an identity model matrix.
func NewModel(s Shape) *Model {
	var vertices []layout.Vertex
	var indices []uint16
	switch s {
	case Cube:
		vertices, indices = cubeMesh()
	default:
		vertices, indices = triangleMesh()
	}
	return NewMeshModel(s.String(), vertices, indices)
}

// NewMeshModel wraps caller-provided geometry. The slices are not copied.
func NewMeshModel(name string, vertices []layout.Vertex, indices []uint16) *Model {
	return &Model{
		Name: name,
		Mesh: NewMesh(vertices, indices),
	}
}

// Count is the number of indices drawn for this model.
func (m *Model) Count() int {
	return len(m.Mesh.Indices)
}

// SetScale replaces the model matrix with a uniform scale. Translation and
// rotation are not applied.
func (m *Model) SetScale(s float32) {
	m.Mesh.ModelMat = vm.NewTransformation(vm.Vec3{}, 0, 0, 0, s)
}

// VertexBufferSize returns the size required for keeping the vertices in
// device memory.
func (m *Model) VertexBufferSize() int {
	return len(m.Mesh.Vertices) * layout.Stride
}

// VertexBytes returns the vertices in the shared layout, ready to be copied
// into a vertex buffer.
func (m *Model) VertexBytes() []byte {
	return layout.Encode(m.Mesh.Vertices)
}

// IndexBufferSize returns the size of the uint16 index buffer.
func (m *Model) IndexBufferSize() int {
	return 2 * len(m.Mesh.Indices)
}

// IndexBytes returns the indices as little-endian uint16.
func (m *Model) IndexBytes() []byte {
	b := make([]byte, 0, m.IndexBufferSize())
	for _, i := range m.Mesh.Indices {
		b = binary.LittleEndian.AppendUint16(b, i)
	}
	return b
}

// Uniforms returns the per-model record passed to the shaders.
func (m *Model) Uniforms() Uniforms {
	return Uniforms{
		Model:     m.Mesh.ModelMat,
		Wireframe: m.Wireframe,
	}
}

package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"GPU_vertex_layout/layout"
	vm "GPU_vertex_layout/vector_math"
)

// UniformsDeclaration is the shader-side declaration of Uniforms. The matrix
// is column-major and the struct is padded to a multiple of 16 bytes.
const UniformsDeclaration = `
struct Uniforms {
    model: mat4x4<f32>,
    wireframe: u32,
}
`

const (
	UniformsModelOffset     = 0
	UniformsWireframeOffset = 64
	UniformsSize            = 80
)

// Uniforms holds per-model values shared with the vertex and fragment
// stages. Wireframe is carried here rather than as pipeline fill-mode state
// so one pipeline can draw both styles; the fragment stage reads it.
type Uniforms struct {
	Model     vm.Mat
	Wireframe bool
}

// UniformsLayout reports the layout the shader compiler assigns to
// UniformsDeclaration.
func UniformsLayout() (layout.StructLayout, error) {
	return layout.ParseShaderLayout(UniformsDeclaration, "Uniforms")
}

// Bytes encodes u in the shader layout. The model matrix must be 4x4; a
// zero-value Uniforms is rejected.
func (u *Uniforms) Bytes() ([]byte, error) {
	if len(u.Model) != 4 {
		return nil, fmt.Errorf("uniform model matrix must be 4x4, got %d rows", len(u.Model))
	}
	for i, row := range u.Model {
		if len(row) != 4 {
			return nil, fmt.Errorf("uniform model matrix must be 4x4, row %d has %d columns", i, len(row))
		}
	}
	b := make([]byte, UniformsSize)
	for i, f := range u.Model.Unroll() {
		binary.LittleEndian.PutUint32(b[UniformsModelOffset+4*i:], math.Float32bits(f))
	}
	if u.Wireframe {
		binary.LittleEndian.PutUint32(b[UniformsWireframeOffset:], 1)
	}
	return b, nil
}

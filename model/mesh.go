package model

import (
	"GPU_vertex_layout/layout"
	vm "GPU_vertex_layout/vector_math"
)

type Mesh struct {
	Vertices []layout.Vertex
	Indices  []uint16
	ModelMat vm.Mat
}

func NewMesh(v []layout.Vertex, id []uint16) *Mesh {
	return &Mesh{
		Vertices: v,
		Indices:  id,
		ModelMat: vm.NewUnitMat(4),
	}
}

package model

import (
	"fmt"
	"strings"

	"GPU_vertex_layout/layout"
	vm "GPU_vertex_layout/vector_math"
)

// Shape selects one of the built-in meshes.
type Shape int

const (
	Triangle Shape = iota
	Cube
)

var shapeNames = [...]string{
	Triangle: "triangle",
	Cube:     "cube",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape accepts a shape name in any case.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q, expected one of %s", name, strings.Join(shapeNames[:], ", "))
}

func v(x, y, z, r, g, b float32) layout.Vertex {
	return layout.NewVertex(vm.Vec3{X: x, Y: y, Z: z}, vm.Vec3{X: r, Y: g, Z: b})
}

// Each vertex gets a different colour. Triangles are wound clockwise.
func triangleMesh() ([]layout.Vertex, []uint16) {
	vertices := []layout.Vertex{
		v(0, 1, 0, 1, 0, 0),   // top middle
		v(1, -1, 0, 0, 1, 0),  // bottom right
		v(-1, -1, 0, 0, 0, 1), // bottom left
	}
	return vertices, []uint16{0, 1, 2}
}

func cubeMesh() ([]layout.Vertex, []uint16) {
	vertices := []layout.Vertex{
		v(-1, 1, 0, 1, 0, 0),
		v(1, 1, 0, 0, 1, 0),
		v(1, -1, 0, 0, 0, 1),
		v(-1, -1, 0, 1, 1, 1),
		v(-1, 1, 1, 1, 0, 0),
		v(1, 1, 1, 0, 1, 0),
		v(1, -1, 1, 0, 0, 1),
		v(-1, -1, 1, 1, 1, 1),
	}
	indices := []uint16{
		0, 1, 4, 1, 2, 3, // front
		1, 5, 2, 5, 6, 2, // right
		5, 4, 6, 4, 7, 6, // rear
		4, 0, 7, 0, 3, 7, // left
		4, 1, 0, 4, 5, 1, // top
		3, 7, 2, 7, 6, 2, // bottom
	}
	return vertices, indices
}

package layout

import (
	"structs"
	"unsafe"

	vm "GPU_vertex_layout/vector_math"
)

// Byte layout of one Vertex. Both members use the shading-language vec3
// layout (16-byte aligned, 12 bytes of data, one unused lane), so color
// starts on the next 16-byte boundary and an array of vertices has a 32 byte
// stride. Metal float3, WGSL vec3<f32> and a Vulkan R32G32B32_SFLOAT
// attribute with this stride all agree on it.
const (
	PositionOffset = 0
	ColorOffset    = 16
	Stride         = 32

	// ComponentSize is the number of data bytes in one vec3 member.
	ComponentSize = 12
)

// Member names as they appear in the shader declaration.
const (
	PositionName = "position"
	ColorName    = "color"
)

// Vertex is one point of a mesh as it is shared with shader code. A []Vertex
// can be handed to the accelerator without conversion.
type Vertex struct {
	_     structs.HostLayout
	Pos   vm.Vec3A
	Color vm.Vec3A
}

// The build fails if the Go layout drifts from the constants above.
var (
	_ = [1]struct{}{}[unsafe.Offsetof(Vertex{}.Pos)-PositionOffset]
	_ = [1]struct{}{}[unsafe.Offsetof(Vertex{}.Color)-ColorOffset]
	_ = [1]struct{}{}[unsafe.Sizeof(Vertex{})-Stride]
	_ = [1]struct{}{}[unsafe.Sizeof(vm.Vec3{})-ComponentSize]
)

// NewVertex builds a vertex with zeroed padding lanes.
func NewVertex(pos vm.Vec3, col vm.Vec3) Vertex {
	return Vertex{
		Pos:   vm.NewVec3A(pos),
		Color: vm.NewVec3A(col),
	}
}

// Floats returns the six data components in memory order: x, y, z, r, g, b.
func (v Vertex) Floats() [6]float32 {
	return [6]float32{
		v.Pos.X, v.Pos.Y, v.Pos.Z,
		v.Color.X, v.Color.Y, v.Color.Z,
	}
}

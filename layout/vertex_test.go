package layout

import (
	"math"
	"math/rand/v2"
	"testing"
	"unsafe"

	vm "GPU_vertex_layout/vector_math"
)

func TestVertexOffsets(t *testing.T) {
	var v Vertex
	if got := unsafe.Offsetof(v.Pos); got != PositionOffset {
		t.Errorf("position offset = %d, want %d", got, PositionOffset)
	}
	if got := unsafe.Offsetof(v.Color); got != ColorOffset {
		t.Errorf("color offset = %d, want %d", got, ColorOffset)
	}
	if got := unsafe.Sizeof(v); got != Stride {
		t.Errorf("vertex size = %d, want %d", got, Stride)
	}
	arr := make([]Vertex, 2)
	step := uintptr(unsafe.Pointer(&arr[1])) - uintptr(unsafe.Pointer(&arr[0]))
	if step != Stride {
		t.Errorf("array stride = %d, want %d", step, Stride)
	}
}

func specialFloats() []float32 {
	return []float32{
		0,
		float32(math.Copysign(0, -1)),
		1, -1, 0.5,
		math.MaxFloat32,
		-math.MaxFloat32,
		math.SmallestNonzeroFloat32,
		float32(math.Inf(1)),
		float32(math.Inf(-1)),
		math.Float32frombits(0x7fc00001), // quiet NaN with payload
		math.Float32frombits(0x7f800001), // signalling NaN
		math.Float32frombits(0x00000001), // smallest denormal
	}
}

func TestVertexFieldRoundTrip(t *testing.T) {
	vals := specialFloats()
	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		vals = append(vals, math.Float32frombits(r.Uint32()))
	}

	for i := 0; i+5 < len(vals); i++ {
		pos := vm.Vec3{X: vals[i], Y: vals[i+1], Z: vals[i+2]}
		col := vm.Vec3{X: vals[i+3], Y: vals[i+4], Z: vals[i+5]}
		v := NewVertex(pos, col)
		if !v.Pos.Vec3.Bits(pos) {
			t.Errorf("position %v read back as %v", pos, v.Pos.Vec3)
		}
		if !v.Color.Vec3.Bits(col) {
			t.Errorf("color %v read back as %v", col, v.Color.Vec3)
		}
	}
}

func TestVertexFieldsIndependent(t *testing.T) {
	v := NewVertex(vm.Vec3{X: 1, Y: 2, Z: 3}, vm.Vec3{X: 4, Y: 5, Z: 6})
	v.Pos.Y = 20
	v.Color.Z = 60
	want := [6]float32{1, 20, 3, 4, 5, 60}
	if v.Floats() != want {
		t.Errorf("floats = %v, want %v", v.Floats(), want)
	}
}

func TestVertexPaddingZero(t *testing.T) {
	vs := []Vertex{NewVertex(vm.Vec3{X: 1, Y: 1, Z: 1}, vm.Vec3{X: 1, Y: 1, Z: 1})}
	b := Bytes(vs)
	for _, off := range []int{PositionOffset + ComponentSize, ColorOffset + ComponentSize} {
		for _, x := range b[off : off+4] {
			if x != 0 {
				t.Fatalf("padding lane at %d not zero: % x", off, b[off:off+4])
			}
		}
	}
}

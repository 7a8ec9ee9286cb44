package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unsafe"

	vm "GPU_vertex_layout/vector_math"
)

var (
	ErrShortBuffer    = errors.New("buffer length is not a multiple of the vertex stride")
	ErrLayoutMismatch = errors.New("vertex layout mismatch")
)

// Bytes returns the memory of vs as bytes without copying. The result aliases
// vs and is only valid while vs is. Padding lanes hold zero for vertices built
// with NewVertex or composite literals. Vertex is 4-byte aligned in Go, so the
// view is not guaranteed to start on a 16-byte boundary; copy it into device
// memory rather than binding it in place.
func Bytes(vs []Vertex) []byte {
	if len(vs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vs[0])), len(vs)*Stride)
}

// Encode writes vs in the shared layout, little-endian, padding lanes zeroed.
// On little-endian hosts the result equals Bytes(vs).
func Encode(vs []Vertex) []byte {
	buf := make([]byte, len(vs)*Stride)
	for i := range vs {
		b := buf[i*Stride : (i+1)*Stride]
		putVec3(b[PositionOffset:], vs[i].Pos.Vec3)
		putVec3(b[ColorOffset:], vs[i].Color.Vec3)
	}
	return buf
}

// Decode reads vertices from b using the host layout.
func Decode(b []byte) ([]Vertex, error) {
	return DecodeWith(HostLayout(), b)
}

// DecodeWith reads vertices from b using the member offsets and stride of l,
// typically the layout reported by the shader compiler.
func DecodeWith(l StructLayout, b []byte) ([]Vertex, error) {
	pos, ok := l.Field(PositionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q member", ErrLayoutMismatch, l.Name, PositionName)
	}
	col, ok := l.Field(ColorName)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q member", ErrLayoutMismatch, l.Name, ColorName)
	}
	if pos.Size != ComponentSize || col.Size != ComponentSize {
		return nil, fmt.Errorf("%w: %s members are not 3 x float32", ErrLayoutMismatch, l.Name)
	}
	stride := int(l.Size)
	if stride == 0 || int(pos.Offset)+ComponentSize > stride || int(col.Offset)+ComponentSize > stride {
		return nil, fmt.Errorf("%w: %s members do not fit in stride %d", ErrLayoutMismatch, l.Name, stride)
	}
	if len(b)%stride != 0 {
		return nil, fmt.Errorf("%w: %d bytes, stride %d", ErrShortBuffer, len(b), stride)
	}

	vs := make([]Vertex, len(b)/stride)
	for i := range vs {
		rec := b[i*stride : (i+1)*stride]
		vs[i] = NewVertex(getVec3(rec[pos.Offset:]), getVec3(rec[col.Offset:]))
	}
	return vs, nil
}

func putVec3(b []byte, v vm.Vec3) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(v.Z))
}

func getVec3(b []byte) vm.Vec3 {
	return vm.Vec3{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
	}
}

package vector_math

import (
	"math"
	"structs"
)

// Vec3 is a tightly packed triple of float32 (12 bytes).
type Vec3 struct {
	X, Y, Z float32
}

// Vec3A is a Vec3 laid out the way shading languages store a 3-component float
// vector inside a struct: x, y, z followed by one unused 32-bit lane, 16 bytes
// in total. The trailing lane is always zero for values built in Go.
type Vec3A struct {
	_ structs.HostLayout
	Vec3
	_ float32
}

// NewVec3A pads v to the shader vector layout.
func NewVec3A(v Vec3) Vec3A {
	return Vec3A{Vec3: v}
}

func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64((v.X * v.X) + (v.Y * v.Y) + (v.Z * v.Z))))
}

func (v Vec3) Norm() Vec3 {
	l := v.Len()
	return Vec3{
		X: v.X / l,
		Y: v.Y / l,
		Z: v.Z / l,
	}
}

// Bits reports whether v and w hold the same IEEE-754 bit patterns. Unlike ==
// it treats NaN payloads and the sign of zero as significant.
func (v Vec3) Bits(w Vec3) bool {
	return math.Float32bits(v.X) == math.Float32bits(w.X) &&
		math.Float32bits(v.Y) == math.Float32bits(w.Y) &&
		math.Float32bits(v.Z) == math.Float32bits(w.Z)
}

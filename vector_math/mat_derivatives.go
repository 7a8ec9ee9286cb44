package vector_math

import "math"

func NewUnitMat(s uint) Mat {
	um, _ := NewMat(s, s)
	for i := range um {
		um[i][i] = 1
	}
	return um
}

func NewScale(s Vec3) Mat {
	sm := NewUnitMat(4)
	sm[0][0] = s.X
	sm[1][1] = s.Y
	sm[2][2] = s.Z
	return sm
}

// NewUniformScale scales all three axes by the same factor.
func NewUniformScale(s float32) Mat {
	return NewScale(Vec3{X: s, Y: s, Z: s})
}

func NewTranslation(t Vec3) Mat {
	tm := NewUnitMat(4)
	tm[0][3] = t.X
	tm[1][3] = t.Y
	tm[2][3] = t.Z
	return tm
}

func NewRotation(rad float64, axis Vec3) Mat {
	ux := axis.X
	uy := axis.Y
	uz := axis.Z
	if (ux*ux)+(uy*uy)+(uz*uz) != 1 {
		norm := axis.Norm()
		ux = norm.X
		uy = norm.Y
		uz = norm.Z
	}
	cosT := float32(math.Cos(rad))
	sinT := float32(math.Sin(rad))
	rm := NewUnitMat(4)
	rm[0][0] = cosT + ((ux * ux) * (1 - cosT))
	rm[0][1] = (ux*uy)*(1-cosT) - (uz * sinT)
	rm[0][2] = (ux*uz)*(1-cosT) + (uy * sinT)

	rm[1][0] = (uy*ux)*(1-cosT) + (uz * sinT)
	rm[1][1] = cosT + (uy*uy)*(1-cosT)
	rm[1][2] = (uy*uz)*(1-cosT) - (ux * sinT)

	rm[2][0] = (uz*ux)*(1-cosT) - (uy * sinT)
	rm[2][1] = (uz*uy)*(1-cosT) + (ux * sinT)
	rm[2][2] = cosT + (uz*uz)*(1-cosT)

	return rm
}

// NewTransformation builds translation * rotation(rx, ry, rz) * scale. Angles
// are in degrees.
func NewTransformation(translation Vec3, rx, ry, rz float64, scale float32) Mat {
	m := NewTranslation(translation)
	for _, r := range []struct {
		deg  float64
		axis Vec3
	}{{rx, Vec3{X: 1}}, {ry, Vec3{Y: 1}}, {rz, Vec3{Z: 1}}} {
		if r.deg == 0 {
			continue
		}
		rot := NewRotation(ToRad(r.deg), r.axis)
		m, _ = m.Mult(&rot)
	}
	s := NewUniformScale(scale)
	m, _ = m.Mult(&s)
	return m
}

package frame

import (
	"github.com/go-gl/mathgl/mgl64"
)

// homogRotate returns the 4x4 homogeneous rotation about ax.
func homogRotate(ax Axis, angle float64) mgl64.Mat4 {
	switch ax {
	case X:
		return mgl64.HomogRotate3DX(angle)
	case Y:
		return mgl64.HomogRotate3DY(angle)
	}
	return mgl64.HomogRotate3DZ(angle)
}

// Operator returns the homogeneous 4x4 operator of the action,
// Trans(d) * Rot(axis, theta). The action is not validated.
func (a Action) Operator() mgl64.Mat4 {
	d := a.translation3()
	return mgl64.Translate3D(d[0], d[1], d[2]).Mul4(homogRotate(a.Axis, float64(a.Angle)))
}

// PlanarOperator returns the homogeneous 3x3 operator of a planar
// action. Only the first two translation components and the angle
// are used; the axis is assumed to be Z.
func (a Action) PlanarOperator() mgl64.Mat3 {
	d := a.translation3()
	return mgl64.Translate2D(d[0], d[1]).Mul3(mgl64.HomogRotate2D(float64(a.Angle)))
}

// Compose multiplies the operators of the actions, in order, onto
// the identity.
func Compose(actions ...Action) mgl64.Mat4 {
	m := mgl64.Ident4()
	for _, a := range actions {
		m = m.Mul4(a.Operator())
	}
	return m
}

// ComposePlanar is the planar form of Compose.
func ComposePlanar(actions ...Action) mgl64.Mat3 {
	m := mgl64.Ident3()
	for _, a := range actions {
		m = m.Mul3(a.PlanarOperator())
	}
	return m
}

// Mat4 returns the homogeneous 4x4 matrix of the frame. Planar
// frames lie in the z=0 plane.
func (f Frame) Mat4() mgl64.Mat4 {
	var h mgl64.Mat4
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			h.Set(r, c, f.m[3*r+c])
		}
		h.Set(r, 3, f.v[r])
	}
	h.Set(3, 3, 1)
	return h
}

// Mat3 returns the homogeneous 3x3 matrix of the frame projected to
// the XY plane. It is exact for planar frames.
func (f Frame) Mat3() mgl64.Mat3 {
	var h mgl64.Mat3
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			h.Set(r, c, f.m[3*r+c])
		}
		h.Set(r, 2, f.v[r])
	}
	h.Set(2, 2, 1)
	return h
}

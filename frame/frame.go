// Package frame builds chains of rigid frames in 2D and 3D.
//
// A chain starts at a fixed base frame with the identity pose. Each
// joint Action extends the chain by one frame computed relative to
// the previous one: translate first, then rotate, both expressed in
// the previous frame's own axes. In homogeneous form
//
//	T(i) = T(i-1) * Trans(d) * Rot(axis, theta)
//
// Planar chains only rotate about Z and never leave the z=0 plane, so
// the same 3D arithmetic serves both dimensions. Frames and chains
// are values: extending a chain yields a new chain and leaves the
// original untouched.
package frame

import (
	"fmt"
	"math"
	"strings"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/math/geom"
)

// ErrDimension indicates an input that does not fit the dimension
// of the chain it is applied to.
var ErrDimension = fmt.Errorf("%w: dimension mismatch", linkage.ErrInvalidParameter)

// ErrEmptyChain indicates use of a Chain that was never given its
// base frame (the zero value).
var ErrEmptyChain = fmt.Errorf("%w: chain has no base frame", linkage.ErrInvalidParameter)

// Axis names one of the principal axes of a frame.
type Axis int

// The zero Axis is Z, the only rotation axis a planar chain admits.
const (
	Z Axis = iota
	X
	Y
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis converts "x", "y" or "z" (any case) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z", "":
		return Z, nil
	}
	return Z, fmt.Errorf("%w: unknown axis %q", linkage.ErrInvalidParameter, s)
}

// Rotation returns the elementary rotation matrix by angle a
// (anticlockwise) about the principal axis ax.
func Rotation(ax Axis, a geom.Angle) geom.Matrix {
	switch ax {
	case X:
		return geom.RX(a)
	case Y:
		return geom.RY(a)
	}
	return geom.RZ(a)
}

// Frame is a rigid pose: an origin and an orthonormal orientation.
type Frame struct {
	dim int
	m   geom.Matrix
	v   geom.Vector
}

// Base returns the identity frame of a 2D or 3D space.
func Base(dim int) (Frame, error) {
	if dim != 2 && dim != 3 {
		return Frame{}, fmt.Errorf("%w: %d is not 2 or 3", ErrDimension, dim)
	}
	return Frame{
		dim: dim,
		m:   geom.M(geom.I...),
		v:   geom.V(0, 0, 0),
	}, nil
}

// Dim returns 2 for a planar frame and 3 for a spatial one.
func (f Frame) Dim() int {
	return f.dim
}

// Origin returns a copy of the frame origin with Dim() components.
func (f Frame) Origin() geom.Vector {
	return append(geom.Vector(nil), f.v[:f.dim]...)
}

// Rotation returns a copy of the 3x3 orientation matrix (row
// major). For planar frames the upper left 2x2 block is the planar
// rotation and the Z axis is fixed.
func (f Frame) Rotation() geom.Matrix {
	return geom.M(f.m...)
}

// Column returns the direction of principal axis ax of the frame in
// base coordinates, with Dim() components.
func (f Frame) Column(ax Axis) geom.Vector {
	return f.column(ax)[:f.dim]
}

func (f Frame) column(ax Axis) geom.Vector {
	switch ax {
	case X:
		return f.m.X()
	case Y:
		return f.m.Y()
	}
	return f.m.Z()
}

// apply returns the frame obtained by translating then rotating
// relative to f. The action must already be validated.
func (f Frame) apply(a Action) Frame {
	d := a.translation3()
	return Frame{
		dim: f.dim,
		m:   f.m.XM(Rotation(a.Axis, a.Angle)),
		v:   f.v.Add(f.m.XV(d)),
	}
}

// Valid confirms the orientation is a proper rotation: orthonormal
// columns and a determinant of +1.
func (f Frame) Valid() bool {
	if len(f.m) != 9 || len(f.v) != 3 {
		return false
	}
	return linkage.NearAll(f.m.Transpose().XM(f.m), geom.I, 1e-9) &&
		math.Abs(f.m.Det()-1) <= 1e-9
}

// Equal reports whether two frames share dimension and agree in pose
// to within linkage.Tolerance.
func (f Frame) Equal(g Frame) bool {
	return f.dim == g.dim &&
		linkage.NearAll(f.m, g.m, linkage.Tolerance) &&
		linkage.NearAll(f.v, g.v, linkage.Tolerance)
}

// Rows returns the homogeneous matrix of the frame row by row, 3x3
// for planar frames and 4x4 for spatial ones.
func (f Frame) Rows() [][]float64 {
	if f.dim == 2 {
		return [][]float64{
			{f.m[0], f.m[1], f.v[0]},
			{f.m[3], f.m[4], f.v[1]},
			{0, 0, 1},
		}
	}
	return [][]float64{
		{f.m[0], f.m[1], f.m[2], f.v[0]},
		{f.m[3], f.m[4], f.m[5], f.v[1]},
		{f.m[6], f.m[7], f.m[8], f.v[2]},
		{0, 0, 0, 1},
	}
}

// String renders Rows to four decimal places.
func (f Frame) String() string {
	return FormatRows(f.Rows())
}

// FormatRows renders a matrix one bracketed row per line with each
// entry printed %9.4f. Values that round to zero print as 0.0000.
func FormatRows(rows [][]float64) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("[ ")
		for j, x := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			if math.Abs(x) < 5e-5 {
				x = 0
			}
			fmt.Fprintf(&b, "%9.4f", x)
		}
		b.WriteString(" ]")
	}
	return b.String()
}

// Segment is a line segment from one point to another.
type Segment struct {
	Axis     Axis
	From, To geom.Vector
}

// Axes returns the orientation triad of f: for each principal axis
// (X and Y, plus Z in 3D) the segment from the frame origin to the
// origin displaced by length along that axis.
func Axes(f Frame, length float64) ([]Segment, error) {
	if f.dim == 0 {
		return nil, ErrEmptyChain
	}
	if err := linkage.Finite("frame.Axes", "length", length); err != nil {
		return nil, err
	}
	axes := []Axis{X, Y, Z}[:f.dim]
	segs := make([]Segment, 0, len(axes))
	for _, ax := range axes {
		to := f.v.AddS(f.column(ax), length)
		segs = append(segs, Segment{Axis: ax, From: f.Origin(), To: to[:f.dim]})
	}
	return segs, nil
}

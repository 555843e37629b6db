package frame

import (
	"fmt"
	"math"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/math/geom"
)

// Action is one joint action: a translation followed by a rotation
// about one principal axis, both relative to the frame it extends.
type Action struct {
	// Translate has either no components (no translation) or as
	// many components as the chain dimension.
	Translate geom.Vector
	Angle     geom.Angle
	Axis      Axis
}

// translation3 returns the translation padded to three components.
func (a Action) translation3() geom.Vector {
	d := geom.V(0, 0, 0)
	copy(d, a.Translate)
	return d
}

// validate checks a is usable to extend a frame of dimension dim.
func (a Action) validate(dim int) error {
	const op = "frame.Extend"
	if n := len(a.Translate); n != 0 && n != dim {
		return fmt.Errorf("%w: translation has %d components for a %dD chain", ErrDimension, n, dim)
	}
	if err := linkage.Finite(op, "translate", a.Translate...); err != nil {
		return err
	}
	if err := linkage.Finite(op, "angle", float64(a.Angle)); err != nil {
		return err
	}
	switch a.Axis {
	case X, Y:
		if dim == 2 {
			return fmt.Errorf("%w: planar chains only rotate about z, not %v", ErrDimension, a.Axis)
		}
	case Z:
	default:
		return fmt.Errorf("%w: %v", linkage.ErrInvalidParameter, a.Axis)
	}
	return nil
}

// Chain is an ordered sequence of frames. Frame 0 is the base (the
// identity pose) and frame i is frame i-1 extended by the i-th
// action. The zero Chain has no base and is unusable; use New or
// Build.
type Chain struct {
	frames []Frame
}

// New returns a chain holding only the base frame of a 2D or 3D
// space.
func New(dim int) (Chain, error) {
	b, err := Base(dim)
	if err != nil {
		return Chain{}, err
	}
	return Chain{frames: []Frame{b}}, nil
}

// Build returns the chain obtained by extending the base frame of a
// dim dimensional space with each of the actions in turn.
func Build(dim int, actions ...Action) (Chain, error) {
	c, err := New(dim)
	if err != nil {
		return Chain{}, err
	}
	for i, a := range actions {
		if c, err = c.Extend(a); err != nil {
			return Chain{}, fmt.Errorf("action %d: %w", i, err)
		}
	}
	return c, nil
}

// Dim returns the dimension of the chain, or 0 for the zero Chain.
func (c Chain) Dim() int {
	if len(c.frames) == 0 {
		return 0
	}
	return c.frames[0].dim
}

// Len returns the number of frames, base included.
func (c Chain) Len() int {
	return len(c.frames)
}

// Frame returns frame i of the chain. It panics if i is out of
// range, as slice indexing does.
func (c Chain) Frame(i int) Frame {
	return c.frames[i]
}

// Last returns the most recently appended frame.
func (c Chain) Last() Frame {
	return c.frames[len(c.frames)-1]
}

// Frames returns the frames of the chain in order. The slice is a
// copy.
func (c Chain) Frames() []Frame {
	return append([]Frame(nil), c.frames...)
}

// Extend returns a new chain with one more frame than c, computed by
// translating then rotating relative to the last frame of c. The
// frames of c are not modified.
func (c Chain) Extend(a Action) (Chain, error) {
	if len(c.frames) == 0 {
		return Chain{}, ErrEmptyChain
	}
	last := c.Last()
	if err := a.validate(last.dim); err != nil {
		return Chain{}, err
	}
	frames := make([]Frame, len(c.frames), len(c.frames)+1)
	copy(frames, c.frames)
	return Chain{frames: append(frames, last.apply(a))}, nil
}

// Origins returns the origin of every frame in chain order.
func (c Chain) Origins() []geom.Vector {
	pts := make([]geom.Vector, len(c.frames))
	for i, f := range c.frames {
		pts[i] = f.Origin()
	}
	return pts
}

// extent returns the componentwise minimum and maximum of the chain
// origins.
func (c Chain) extent() (lo, hi []float64) {
	dim := c.Dim()
	lo = make([]float64, dim)
	hi = make([]float64, dim)
	for i := range lo {
		lo[i], hi[i] = math.Inf(1), math.Inf(-1)
	}
	for _, f := range c.frames {
		for i := 0; i < dim; i++ {
			lo[i] = math.Min(lo[i], f.v[i])
			hi[i] = math.Max(hi[i], f.v[i])
		}
	}
	return lo, hi
}

// View returns a square (cube in 3D) box that contains every origin
// of the chain with a margin of 0.5 on each side, centered on the
// origins' bounding box.
func (c Chain) View() (lo, hi geom.Vector, err error) {
	if len(c.frames) == 0 {
		return nil, nil, ErrEmptyChain
	}
	mins, maxs := c.extent()
	span := 0.0
	for i := range mins {
		mins[i] -= 0.5
		maxs[i] += 0.5
		span = math.Max(span, maxs[i]-mins[i])
	}
	lo = make(geom.Vector, len(mins))
	hi = make(geom.Vector, len(mins))
	for i := range mins {
		center := 0.5 * (mins[i] + maxs[i])
		lo[i] = center - 0.5*span
		hi[i] = center + 0.5*span
	}
	return lo, hi, nil
}

// AxisLength suggests a length for drawing frame triads: a fraction
// of the diagonal of the origins' bounding box, never shorter than
// 0.2. Planar chains use 18% and spatial chains 12%.
func (c Chain) AxisLength() float64 {
	if len(c.frames) < 2 {
		return math.Max(0.2, c.axisFraction())
	}
	lo, hi := c.extent()
	sq := 0.0
	for i := range lo {
		d := hi[i] - lo[i]
		sq += d * d
	}
	return math.Max(0.2, c.axisFraction()*math.Sqrt(sq))
}

func (c Chain) axisFraction() float64 {
	if c.Dim() == 3 {
		return 0.12
	}
	return 0.18
}

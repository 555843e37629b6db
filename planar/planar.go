// Package planar does forward and inverse kinematics for planar arms
// made of revolute joints joined by rigid links.
//
// The arm base is at the origin with joint 1 rotating the first link
// anticlockwise from the positive X axis. Each later joint angle is
// measured relative to the previous link:
//
//	L1..Ln    link lengths, all > 0
//	θ1        angle of link 1 from the X axis
//	θi (i>1)  angle of link i from link i-1
//
// Forward kinematics works for any number of links. The closed form
// inverse kinematics covers the 2-link arm.
package planar

import (
	"fmt"
	"math"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/kinematics/linkage/frame"
	"zappem.net/pub/math/geom"
)

// LinkSet holds the link lengths of a planar arm, base first.
type LinkSet []float64

// NewLinkSet validates and copies a set of link lengths.
func NewLinkSet(lengths ...float64) (LinkSet, error) {
	ls := LinkSet(append([]float64(nil), lengths...))
	if err := ls.validate("planar.NewLinkSet"); err != nil {
		return nil, err
	}
	return ls, nil
}

func (ls LinkSet) validate(op string) error {
	if len(ls) == 0 {
		return fmt.Errorf("%w: %s: no links", linkage.ErrInvalidParameter, op)
	}
	for i, l := range ls {
		if err := linkage.Positive(op, fmt.Sprintf("L%d", i+1), l); err != nil {
			return err
		}
	}
	return nil
}

// Reach returns the radii of the annulus the end effector can
// reach. The outer radius is the total length of the links. The
// inner radius is how far the longest link overhangs the others
// when they fold back over it.
func (ls LinkSet) Reach() (min, max float64) {
	longest := 0.0
	for _, l := range ls {
		max += l
		longest = math.Max(longest, l)
	}
	return math.Max(0, 2*longest-max), max
}

// Chain returns the frame chain of the arm posed at the given joint
// angles. Frame 1 sits at the base rotated by θ1; frame i+1 sits at
// the end of link i rotated by θ(i+1); the last frame sits at the
// end effector aligned with the last link.
func (ls LinkSet) Chain(angles ...geom.Angle) (frame.Chain, error) {
	const op = "planar.Forward"
	if err := ls.validate(op); err != nil {
		return frame.Chain{}, err
	}
	if len(angles) != len(ls) {
		return frame.Chain{}, fmt.Errorf("%w: %s: %d angles for %d links", linkage.ErrInvalidParameter, op, len(angles), len(ls))
	}
	actions := make([]frame.Action, 0, len(ls)+1)
	actions = append(actions, frame.Action{Angle: angles[0]})
	for i, l := range ls {
		a := frame.Action{Translate: geom.Vector{l, 0}}
		if i+1 < len(angles) {
			a.Angle = angles[i+1]
		}
		actions = append(actions, a)
	}
	return frame.Build(2, actions...)
}

// Forward returns the base, each intermediate joint and the end
// effector of the arm posed at the given joint angles.
func (ls LinkSet) Forward(angles ...geom.Angle) ([]geom.Vector, error) {
	c, err := ls.Chain(angles...)
	if err != nil {
		return nil, err
	}
	// Frame 0 and frame 1 share the base origin.
	return c.Origins()[1:], nil
}

// Inverse solves a 2-link arm for the target (x, y). See Inverse.
func (ls LinkSet) Inverse(x, y float64) ([]Solution, error) {
	if len(ls) != 2 {
		return nil, fmt.Errorf("%w: closed form inverse needs 2 links, not %d", linkage.ErrInvalidParameter, len(ls))
	}
	return Inverse(ls[0], ls[1], x, y)
}

// Pose holds the three points of a posed 2-link arm.
type Pose struct {
	Base, Joint, End geom.Vector
}

// Forward evaluates the forward kinematics of a 2-link arm.
func Forward(l1, l2 float64, t1, t2 geom.Angle) (Pose, error) {
	pts, err := LinkSet{l1, l2}.Forward(t1, t2)
	if err != nil {
		return Pose{}, err
	}
	return Pose{Base: pts[0], Joint: pts[1], End: pts[2]}, nil
}

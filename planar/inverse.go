package planar

import (
	"errors"
	"fmt"
	"math"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/math/geom"
)

// ErrNoSolution is returned by Closest when there is nothing to
// choose from.
var ErrNoSolution = errors.New("no inverse kinematics solution")

// Branch labels the two elbow configurations of a 2-link arm.
type Branch int

const (
	// ElbowDown has θ2 >= 0.
	ElbowDown Branch = iota
	// ElbowUp has θ2 <= 0.
	ElbowUp
)

func (b Branch) String() string {
	switch b {
	case ElbowDown:
		return "elbow-down"
	case ElbowUp:
		return "elbow-up"
	}
	return fmt.Sprintf("Branch(%d)", int(b))
}

// Solution is one set of joint angles for a 2-link arm.
type Solution struct {
	Theta1, Theta2 geom.Angle
	Branch         Branch
}

// Angles returns the joint angles in joint order.
func (s Solution) Angles() []geom.Angle {
	return []geom.Angle{s.Theta1, s.Theta2}
}

// Reach classifies a target relative to the reachable annulus.
type Reach int

const (
	Reachable Reach = iota
	TooFar
	TooClose
)

func (r Reach) String() string {
	switch r {
	case Reachable:
		return "reachable"
	case TooFar:
		return "too far"
	case TooClose:
		return "too close"
	}
	return fmt.Sprintf("Reach(%d)", int(r))
}

func check2(op string, l1, l2, x, y float64) error {
	if err := linkage.Positive(op, "L1", l1); err != nil {
		return err
	}
	if err := linkage.Positive(op, "L2", l2); err != nil {
		return err
	}
	if err := linkage.Finite(op, "x", x); err != nil {
		return err
	}
	return linkage.Finite(op, "y", y)
}

func classify(l1, l2, r2 float64) Reach {
	outer := (l1 + l2) * (l1 + l2)
	inner := (l1 - l2) * (l1 - l2)
	switch {
	case r2 > outer+linkage.Epsilon:
		return TooFar
	case r2 < inner-linkage.Epsilon:
		return TooClose
	}
	return Reachable
}

// Classify reports whether a 2-link arm can reach (x, y). Squared
// distances within linkage.Epsilon of the annulus count as reachable.
// The widening is absolute, so it is only negligible for links much
// longer than sqrt(linkage.Epsilon).
func Classify(l1, l2, x, y float64) (Reach, error) {
	if err := check2("planar.Classify", l1, l2, x, y); err != nil {
		return Reachable, err
	}
	return classify(l1, l2, x*x+y*y), nil
}

// Inverse computes every pair of joint angles that places the end
// effector of a 2-link arm with links l1 and l2 at (x, y).
//
// An unreachable target yields no solutions and no error. Otherwise
// the elbow-down solution comes first and the elbow-up solution
// second. When the two coincide (the arm is fully extended or fully
// folded) only the elbow-down one is returned. Targets accepted only
// through the linkage.Epsilon widening of Classify get the boundary
// pose nearest to them.
func Inverse(l1, l2, x, y float64) ([]Solution, error) {
	if err := check2("planar.Inverse", l1, l2, x, y); err != nil {
		return nil, err
	}
	r2 := x*x + y*y
	if classify(l1, l2, r2) != Reachable {
		return nil, nil
	}

	raw := (r2 - l1*l1 - l2*l2) / (2 * l1 * l2)
	c2 := linkage.Clamp(raw, -1, 1)
	t2 := geom.Angle(math.Acos(c2))

	base := math.Atan2(y, x)
	theta1 := func(t2 geom.Angle) geom.Angle {
		return geom.Angle(base - math.Atan2(l2*t2.S(), l1+l2*t2.C()))
	}

	sols := []Solution{{Theta1: theta1(t2), Theta2: t2, Branch: ElbowDown}}
	// The branches mirror each other about the base-target line and
	// meet where sin θ2 vanishes.
	if c2 != raw || geom.Zeroish(t2.S()) {
		return sols, nil
	}
	up := t2.LikeCos()
	return append(sols, Solution{Theta1: theta1(up), Theta2: up, Branch: ElbowUp}), nil
}

// Closest picks the solution nearest to the reference joint angles,
// typically the arm's current pose. Joint differences are wrapped
// to (-pi, pi] and all joints weigh equally.
func Closest(ref Solution, sols []Solution) (int, error) {
	best := -1
	var bestD float64
	for i, s := range sols {
		d1 := float64(linkage.Wrap(s.Theta1 - ref.Theta1))
		d2 := float64(linkage.Wrap(s.Theta2 - ref.Theta2))
		d := d1*d1 + d2*d2
		if best == -1 || d < bestD {
			best, bestD = i, d
		}
	}
	if best == -1 {
		return best, ErrNoSolution
	}
	return best, nil
}

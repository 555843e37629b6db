// Package linkage holds the numeric conventions shared by the
// kinematics packages of this module.
//
// The frame package composes rigid transforms into chains of frames
// (forward kinematics in 2D and 3D). The planar package solves the
// closed form inverse kinematics of a 2-link planar arm and evaluates
// the forward kinematics of planar arms with any number of links. The
// sweep package runs either of these over batches of parameters.
//
// All angles are geom.Angle values in radians. Degrees only appear at
// the edges (config files and the command line).
package linkage

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"zappem.net/pub/math/geom"
)

const (
	// Epsilon widens the reachable annulus of an arm to absorb
	// floating point error in the squared target distance.
	Epsilon = 1e-9

	// Tolerance is the absolute error accepted when comparing
	// computed coordinates or matrix entries.
	Tolerance = 1e-9
)

// ErrInvalidParameter is the error kind for non-finite numeric input
// and for non-physical geometry (such as a link length <= 0).
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError describes a rejected input value. It unwraps to
// ErrInvalidParameter.
type ParamError struct {
	Op     string
	Param  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", e.Op, e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// Invalid returns a *ParamError for the named parameter.
func Invalid(op, param string, value float64, reason string) error {
	return &ParamError{Op: op, Param: param, Value: value, Reason: reason}
}

// Finite confirms every value is a finite real number. The first
// offending value is reported as param[i].
func Finite(op, param string, vs ...float64) error {
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			name := param
			if len(vs) > 1 {
				name = fmt.Sprintf("%s[%d]", param, i)
			}
			return Invalid(op, name, v, "not finite")
		}
	}
	return nil
}

// Positive confirms v is finite and strictly greater than zero.
func Positive(op, param string, v float64) error {
	if err := Finite(op, param, v); err != nil {
		return err
	}
	if v <= 0 {
		return Invalid(op, param, v, "must be positive")
	}
	return nil
}

// Clamp bounds x into [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Near reports whether a and b agree to within Tolerance.
func Near(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Tolerance)
}

// NearAll reports whether two coordinate slices have the same length
// and agree element-wise to within tol, absolute or relative.
func NearAll(a, b []float64, tol float64) bool {
	return floats.EqualApprox(a, b, tol)
}

// Wrap returns the angle equivalent to a in the range (-pi, pi].
func Wrap(a geom.Angle) geom.Angle {
	r := math.Remainder(float64(a), 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return geom.Angle(r)
}

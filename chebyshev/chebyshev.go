// Copyright 2023 Astrodyne
// License: MIT

// Chebyshev: evaluation of truncated Chebyshev series and their
// derivatives.
//
// Ephemeris files store each coordinate as a Chebyshev series on a data
// interval [a,b].  Evaluation happens on the canonical domain [−1,1]
// using the Clenshaw recurrence, which is numerically stable over the
// whole domain.  The series follows the common half-weight convention:
// the value is c[0]/2 + Σ c[i]·T_i(x) for i ≥ 1.
package chebyshev

import "errors"

// ErrEmptyCoefficients is returned when a series has no coefficients.
var ErrEmptyCoefficients = errors.New("chebyshev: empty coefficient array")

// ErrOutOfInterval is returned for a value outside the interval it is
// to be normalized over, or a normalized value outside [−1,1].
var ErrOutOfInterval = errors.New("chebyshev: value outside interval")

// Evaluate computes the series value at x by the Clenshaw recurrence.
//
// The recurrence runs down to j = 0 and finishes with (b₀ − b₂)/2,
// which folds in the half weight of c[0].
func Evaluate(x float64, c []float64) (float64, error) {
	if len(c) == 0 {
		return 0, ErrEmptyCoefficients
	}
	x2 := x * 2
	var bj, bjp1, bjp2 float64
	for j := len(c) - 1; j >= 0; j-- {
		bjp2 = bjp1
		bjp1 = bj
		bj = x2*bjp1 - bjp2 + c[j]
	}
	return (bj - bjp2) * .5, nil
}

// EvaluateDerivative computes the series derivative at x with respect
// to x, by a modified Clenshaw recurrence over the scaled coefficients
// c[j]·2j.
//
// A constant series has derivative 0.
func EvaluateDerivative(x float64, c []float64) (float64, error) {
	if len(c) == 0 {
		return 0, ErrEmptyCoefficients
	}
	x2 := x * 2
	var bj, bjp1, bjp2, bf float64
	var xj, xjp1, xjp2 float64
	for j := len(c) - 1; j >= 1; j-- {
		xj = c[j]*float64(j+j) + xjp2
		bj = x2*bjp1 - bjp2 + xj
		bf = bjp2
		bjp2 = bjp1
		bjp1 = bj
		xjp2 = xjp1
		xjp1 = xj
	}
	return (bj - bf) * .5, nil
}

// EvaluateBoth returns the series value and derivative at x.
//
// The results are exactly those of Evaluate and EvaluateDerivative.
func EvaluateBoth(x float64, c []float64) (val, deriv float64, err error) {
	if val, err = Evaluate(x, c); err != nil {
		return 0, 0, err
	}
	deriv, _ = EvaluateDerivative(x, c)
	return val, deriv, nil
}

// Normalize maps v from the interval [a,b] onto [−1,1].
//
// Requires b > a and a ≤ v ≤ b; violations return ErrOutOfInterval.
func Normalize(v, a, b float64) (float64, error) {
	if b <= a || v < a || v > b {
		return 0, ErrOutOfInterval
	}
	return 2*(v-a)/(b-a) - 1, nil
}

// Denormalize maps x from [−1,1] back onto the interval [a,b].
//
// Requires b > a and −1 ≤ x ≤ 1; violations return ErrOutOfInterval.
func Denormalize(x, a, b float64) (float64, error) {
	if b <= a || x < -1 || x > 1 {
		return 0, ErrOutOfInterval
	}
	return a + (x+1)*(b-a)*.5, nil
}

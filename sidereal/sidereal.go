// Copyright 2023 Astrodyne
// License: MIT

// Sidereal: sidereal time at Greenwich and locally.
//
// Mean sidereal time follows the IAU 2006 expressions.  Apparent
// sidereal time adds the equation of the equinoxes in its short form,
// Δψ·cos ε with the principal nutation term only, which is good to a few
// hundredths of a second of time.
package sidereal

import (
	"math"

	"github.com/astrodyne/sweph/base"
	"github.com/astrodyne/sweph/deltat"
	"github.com/soniakeys/unit"
)

// gmst0 holds the IAU 2006 coefficients of the quadratic and higher
// terms of mean sidereal time at 0h UT, in seconds of time per century
// of TT.  The constant and the linear terms appear separately in mean:
// the linear rate multiplies UT centuries, with a small cross term in
// (T_t − T_u).
var gmst0 = []float64{0.092772110, -0.0000002926, -0.00000199708,
	-0.000000002454}

// rate holds the coefficients of the mean-sidereal-day excess over
// 86400 s, in seconds per century of TT.
var rate = []float64{8640184.79447825, 0.185544220,
	-0.0000008778, -0.00000798832, -0.000000012270}

// Mean returns mean sidereal time at Greenwich for a given JD(UT).
//
// The result is in the range [0,86400).
func Mean(jdUT float64) unit.Time {
	return mean(jdUT).Mod1()
}

func mean(jdUT float64) unit.Time {
	jd0, secs := splitDay(jdUT)
	tu := (jd0 - base.J2000) / base.JulianCentury
	tt := (jd0 + deltat.DeltaT(jd0).Day() - base.J2000) / base.JulianCentury
	s := 24110.5493771 +
		8640184.79447825*tu +
		307.4771013*(tt-tu) +
		base.Horner(tt, gmst0...)*tt*tt
	msday := 1 + base.Horner(tt, rate...)/(base.JulianCentury*86400)
	return unit.Time(s + msday*secs)
}

// splitDay splits a JD at the preceding 0h UT, returning the JD of that
// midnight and the seconds elapsed since.
func splitDay(jd float64) (jd0, secs float64) {
	jd0 = math.Floor(jd-.5) + .5
	return jd0, (jd - jd0) * 86400
}

// EquationOfEquinoxes returns GAST − GMST for a given JD(UT), from the
// principal nutation term.
func EquationOfEquinoxes(jdUT float64) unit.Time {
	Ω := unit.AngleFromDeg(125.04 - 0.052954*(jdUT-base.J2000))
	Δψ := unit.AngleFromSec(-17.20 * Ω.Sin())
	ε := unit.AngleFromDeg(base.Horner(base.J2000Century(jdUT),
		23.439291, -0.0130042))
	return unit.HourAngle(Δψ.Rad() * ε.Cos()).Time()
}

// Apparent returns apparent sidereal time at Greenwich for a given
// JD(UT).
//
// The result is in the range [0,86400).
func Apparent(jdUT float64) unit.Time {
	return (mean(jdUT) + EquationOfEquinoxes(jdUT)).Mod1()
}

// Local returns local mean sidereal time for an observer at the given
// east longitude.
//
// The result is in the range [0,86400).
func Local(jdUT float64, lon unit.Angle) unit.Time {
	return (mean(jdUT) + lonTime(lon)).Mod1()
}

// LocalApparent returns local apparent sidereal time for an observer at
// the given east longitude.
//
// The result is in the range [0,86400).
func LocalApparent(jdUT float64, lon unit.Angle) unit.Time {
	return (mean(jdUT) + EquationOfEquinoxes(jdUT) + lonTime(lon)).Mod1()
}

// lonTime converts an east longitude to sidereal seconds, 15° per hour.
func lonTime(lon unit.Angle) unit.Time {
	return unit.TimeFromDay(lon.Rad() / (2 * math.Pi))
}

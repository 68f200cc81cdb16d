// Copyright 2023 Astrodyne
// License: MIT

// Solar: geometric position of the Sun from the reduced VSOP87 series.
//
// The series carries the mean longitude, the mean anomaly and a
// three-term equation of centre, which is good to about 0.01° over the
// engine's supported era.  It serves as the fallback when no binary
// ephemeris covers the requested instant.
package solar

import (
	"github.com/astrodyne/sweph/base"
	"github.com/soniakeys/unit"
)

// LongitudeRate is the mean daily motion of the Sun in longitude.
var LongitudeRate = unit.AngleFromDeg(0.9856474)

// True returns true geometric longitude and anomaly of the Sun
// referenced to the mean equinox of date.
//
// Argument T is the number of Julian centuries since J2000.
// See base.J2000Century.
func True(T float64) (s, ν unit.Angle) {
	L0 := unit.AngleFromDeg(base.Horner(T, 280.46646, 36000.76983, 0.0003032))
	M := MeanAnomaly(T)
	C := unit.AngleFromDeg(base.Horner(T, 1.914602, -0.004817, -.000014)*
		M.Sin() +
		(0.019993-.000101*T)*M.Mul(2).Sin() +
		0.000289*M.Mul(3).Sin())
	return (L0 + C).Mod1(), (M + C).Mod1()
}

// MeanAnomaly returns the mean anomaly of Earth at the given T.
//
// Result is not normalized to the range 0..2π.
func MeanAnomaly(T float64) unit.Angle {
	return unit.AngleFromDeg(base.Horner(T, 357.52911, 35999.05029, -0.0001537))
}

// Eccentricity returns eccentricity of the Earth's orbit around the Sun.
func Eccentricity(T float64) float64 {
	return base.Horner(T, 0.016708634, -0.000042037, -0.0000001267)
}

// Radius returns the Sun-Earth distance in AU.
func Radius(T float64) float64 {
	_, ν := True(T)
	e := Eccentricity(T)
	return 1.000001018 * (1 - e*e) / (1 + e*ν.Cos())
}

// Position returns the geocentric ecliptic position of the Sun at a
// given JD(TT).
//
// Latitude is identically zero in this reduced theory; distance is in
// AU.
func Position(jd float64) (λ unit.Angle, r float64) {
	T := base.J2000Century(jd)
	s, ν := True(T)
	e := Eccentricity(T)
	return s, 1.000001018 * (1 - e*e) / (1 + e*ν.Cos())
}

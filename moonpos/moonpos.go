// Copyright 2023 Astrodyne
// License: MIT

// Moonpos: geocentric position of the Moon from the reduced ELP2000
// series, and the lunar nodes.
//
// Only the principal periodic terms are carried: ten in longitude, seven
// in latitude and nine in distance.  That keeps the fallback within
// about 0.2° in longitude, which is the accuracy class of the analytic
// path; the binary ephemerides carry the full precision.
package moonpos

import (
	"math"

	"github.com/astrodyne/sweph/base"
	"github.com/soniakeys/unit"
)

// LongitudeRate is the mean daily motion of the Moon in longitude.
var LongitudeRate = unit.AngleFromDeg(13.176358)

// NodeRate is the mean daily motion of the lunar node in longitude.
var NodeRate = unit.AngleFromDeg(-0.0529539)

const p = math.Pi / 180

// fundamental arguments, in radians
func arguments(T float64) (Lʹ, D, M, Mʹ, F float64) {
	Lʹ = base.Horner(T, 218.3164477*p, 481267.88123421*p,
		-.0015786*p, p/538841, -p/65194000)
	D = base.Horner(T, 297.8501921*p, 445267.1114034*p,
		-.0018819*p, p/545868, -p/113065000)
	M = base.Horner(T, 357.5291092*p, 35999.0502909*p,
		-.0001536*p, p/24490000)
	Mʹ = base.Horner(T, 134.9633964*p, 477198.8675055*p,
		.0087414*p, p/69699, -p/14712000)
	F = base.Horner(T, 93.272095*p, 483202.0175233*p,
		-.0036539*p, -p/3526000, p/863310000)
	return
}

type term struct{ d, m, mʹ, f, c float64 }

// principal longitude terms, coefficients in 1e-6 degrees
var tl = []term{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
}

// principal latitude terms, coefficients in 1e-6 degrees
var tb = []term{
	{0, 0, 0, 1, 5128122},
	{0, 0, 1, 1, 280602},
	{0, 0, 1, -1, 277693},
	{2, 0, 0, -1, 173237},
	{2, 0, -1, 1, 55413},
	{2, 0, -1, -1, 46271},
	{2, 0, 0, 1, 32573},
}

// principal distance terms, coefficients in 1e-3 km
var tr = []term{
	{0, 0, 1, 0, -20905355},
	{2, 0, -1, 0, -3699111},
	{2, 0, 0, 0, -2955968},
	{0, 0, 2, 0, -569925},
	{2, 0, -2, 0, 246158},
	{2, -1, 0, 0, -204586},
	{2, 0, 1, 0, -170733},
	{2, -1, -1, 0, -152138},
	{0, 1, -1, 0, -129620},
}

// Position returns the geocentric ecliptic position of the Moon at a
// given JD(TT).
//
// Results are referenced to the mean equinox of date.  Distance is in
// AU.
func Position(jd float64) (λ, β unit.Angle, r float64) {
	T := base.J2000Century(jd)
	Lʹ, D, M, Mʹ, F := arguments(T)
	// eccentricity damping for terms carrying the solar anomaly
	E := base.Horner(T, 1, -.002516, -.0000074)
	var Σl, Σb, Σr float64
	for _, t := range tl {
		Σl += t.c * e(t.m, E) * math.Sin(D*t.d+M*t.m+Mʹ*t.mʹ+F*t.f)
	}
	for _, t := range tb {
		Σb += t.c * e(t.m, E) * math.Sin(D*t.d+M*t.m+Mʹ*t.mʹ+F*t.f)
	}
	for _, t := range tr {
		Σr += t.c * e(t.m, E) * math.Cos(D*t.d+M*t.m+Mʹ*t.mʹ+F*t.f)
	}
	λ = (unit.Angle(Lʹ) + unit.AngleFromDeg(Σl*1e-6)).Mod1()
	β = unit.AngleFromDeg(Σb * 1e-6)
	r = (385000.56 + Σr*1e-3) / base.AU
	return
}

func e(m, E float64) float64 {
	switch m {
	case 1, -1:
		return E
	case 2, -2:
		return E * E
	}
	return 1
}

// Node returns the longitude of the mean ascending node of the lunar
// orbit at a given JD(TT).
func Node(jd float64) unit.Angle {
	return unit.AngleFromDeg(base.Horner(base.J2000Century(jd),
		125.0445479, -1934.1362891, 0.0020754, 1/467441., -1/60616000.)).Mod1()
}

// TrueNode returns the longitude of the true (osculating) ascending
// node at a given JD(TT).
//
// The mean node is corrected by the five principal periodic terms.
func TrueNode(jd float64) unit.Angle {
	T := base.J2000Century(jd)
	_, D, M, Mʹ, F := arguments(T)
	Δ := -1.4979*math.Sin(2*(D-F)) -
		0.1500*math.Sin(M) -
		0.1226*math.Sin(2*D) +
		0.1176*math.Sin(2*F) -
		0.0801*math.Sin(2*(Mʹ-F))
	return (Node(jd) + unit.AngleFromDeg(Δ)).Mod1()
}

// MeanDistance is the mean Earth-Moon distance in AU, reported for the
// nodes, which have no radial coordinate of their own.
const MeanDistance = 385000.56 / base.AU

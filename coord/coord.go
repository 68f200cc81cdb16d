// Copyright 2023 Astrodyne
// License: MIT

// Coord: transformations between coordinate frames.
//
// Transforms are pure functions over cartesian, ecliptic, equatorial and
// horizontal coordinates.  A number of functions take sine and cosine of
// the obliquity of the ecliptic; computing them once and reusing the
// Obliquity value is cheaper than passing the angle when several
// coordinates share an epoch.
package coord

import (
	"math"

	"github.com/astrodyne/sweph/base"
	"github.com/soniakeys/unit"
)

// ObliquityJ2000 is the mean obliquity of the ecliptic at J2000.
var ObliquityJ2000 = unit.AngleFromDeg(23.439281)

// MeanObliquity returns the mean obliquity of the ecliptic of date.
//
// The linear rate is adequate over the engine's supported era; the
// nutation in obliquity is not applied.
func MeanObliquity(jd float64) unit.Angle {
	return unit.AngleFromDeg(base.Horner(base.J2000Century(jd),
		23.439291, -0.0130042))
}

// Obliquity caches sine and cosine of the obliquity of the ecliptic.
type Obliquity struct {
	S, C float64
}

// NewObliquity constructs an Obliquity from the angle ε.
func NewObliquity(ε unit.Angle) *Obliquity {
	r := &Obliquity{}
	r.S, r.C = ε.Sincos()
	return r
}

// Cartesian is a rectangular position, in whatever frame and unit the
// producer documents.
type Cartesian struct {
	X, Y, Z float64
}

// Ecliptic coordinates are referenced to the plane of the ecliptic.
type Ecliptic struct {
	Lon unit.Angle // longitude (λ)
	Lat unit.Angle // latitude (β)
	R   float64    // distance, same unit as the source cartesian
}

// Equatorial coordinates are referenced to the Earth's rotational axis.
type Equatorial struct {
	RA  unit.RA    // right ascension (α)
	Dec unit.Angle // declination (δ)
	R   float64    // distance
}

// Horizontal coordinates are referenced to the local horizon.
//
// Azimuth is measured from north through east.
type Horizontal struct {
	Az  unit.Angle // azimuth (A)
	Alt unit.Angle // altitude (h)
}

// CartToEcl converts a cartesian vector in the ecliptic frame to
// spherical ecliptic coordinates.
//
// The zero vector maps to zero longitude, latitude and distance.
func CartToEcl(c Cartesian) Ecliptic {
	lon, lat, r := cartToSph(c)
	return Ecliptic{Lon: lon, Lat: lat, R: r}
}

// EclToCart converts spherical ecliptic coordinates to a cartesian
// vector in the ecliptic frame.
func EclToCart(e Ecliptic) Cartesian {
	return sphToCart(e.Lon, e.Lat, e.R)
}

// CartToEq converts a cartesian vector in the equatorial frame to
// spherical equatorial coordinates.  Right ascension is returned as a
// time-like unit.RA.
func CartToEq(c Cartesian) Equatorial {
	lon, lat, r := cartToSph(c)
	return Equatorial{RA: unit.RAFromRad(lon.Rad()), Dec: lat, R: r}
}

// EqToCart converts spherical equatorial coordinates to a cartesian
// vector in the equatorial frame.
func EqToCart(eq Equatorial) Cartesian {
	return sphToCart(unit.Angle(eq.RA.Rad()), eq.Dec, eq.R)
}

func cartToSph(c Cartesian) (lon, lat unit.Angle, r float64) {
	rxy := c.X*c.X + c.Y*c.Y
	r = math.Sqrt(rxy + c.Z*c.Z)
	if r == 0 {
		return 0, 0, 0
	}
	lon = unit.Angle(math.Atan2(c.Y, c.X)).Mod1()
	lat = unit.Angle(math.Asin(c.Z / r))
	return
}

func sphToCart(lon, lat unit.Angle, r float64) Cartesian {
	sλ, cλ := lon.Sincos()
	sβ, cβ := lat.Sincos()
	return Cartesian{
		X: r * cβ * cλ,
		Y: r * cβ * sλ,
		Z: r * sβ,
	}
}

// EclToEq converts ecliptic coordinates to equatorial coordinates.
func EclToEq(e Ecliptic, obl *Obliquity) Equatorial {
	sλ, cλ := e.Lon.Sincos()
	sβ, cβ := e.Lat.Sincos()
	α := math.Atan2(sλ*obl.C-(sβ/cβ)*obl.S, cλ)
	δ := math.Asin(sβ*obl.C + cβ*obl.S*sλ)
	return Equatorial{RA: unit.RAFromRad(α), Dec: unit.Angle(δ), R: e.R}
}

// EqToEcl converts equatorial coordinates to ecliptic coordinates.
func EqToEcl(eq Equatorial, obl *Obliquity) Ecliptic {
	sα, cα := math.Sincos(eq.RA.Rad())
	sδ, cδ := eq.Dec.Sincos()
	λ := unit.Angle(math.Atan2(sα*obl.C+(sδ/cδ)*obl.S, cα)).Mod1()
	β := unit.Angle(math.Asin(sδ*obl.C - cδ*obl.S*sα))
	return Ecliptic{Lon: λ, Lat: β, R: eq.R}
}

// EqToHz converts equatorial coordinates to horizontal coordinates for
// an observer at latitude φ with local sidereal time lst.
//
// Azimuth is measured from north through east; altitude is unrefracted.
func EqToHz(eq Equatorial, φ unit.Angle, lst unit.Time) Horizontal {
	H := lst.Angle() - unit.Angle(eq.RA.Rad())
	sH, cH := H.Sincos()
	sφ, cφ := φ.Sincos()
	sδ, cδ := eq.Dec.Sincos()
	alt := math.Asin(sφ*sδ + cφ*cδ*cH)
	az := math.Atan2(sH, cH*sφ-(sδ/cδ)*cφ) + math.Pi
	return Horizontal{
		Az:  unit.Angle(az).Mod1(),
		Alt: unit.Angle(alt),
	}
}

// HzToEq converts horizontal coordinates back to equatorial coordinates
// for the same observer.
func HzToEq(hz Horizontal, φ unit.Angle, lst unit.Time) Equatorial {
	sA, cA := (hz.Az - unit.AngleFromDeg(180)).Sincos()
	sh, ch := hz.Alt.Sincos()
	sφ, cφ := φ.Sincos()
	H := math.Atan2(sA, cA*sφ+(sh/ch)*cφ)
	δ := math.Asin(sφ*sh - cφ*ch*cA)
	α := lst.Angle().Rad() - H
	return Equatorial{RA: unit.RAFromRad(α), Dec: unit.Angle(δ)}
}

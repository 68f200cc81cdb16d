// Copyright 2023 Astrodyne
// License: MIT

package ephem

import (
	"math"

	"github.com/astrodyne/sweph/coord"
	"github.com/soniakeys/unit"
)

// Position is a computed body position: pure data, owned by the
// caller.
//
// The cartesian vector is in AU, velocity in AU/day, expressed in the
// frame and origin recorded on the value.  Projections to other shapes
// are performed on demand and do not mutate the value.
type Position struct {
	Body        Body
	JD          float64 // TT
	X, Y, Z     float64 // AU
	VX, VY, VZ  float64 // AU/day, zero unless HasVelocity
	HasVelocity bool
	Frame       Frame
	Coordinate  CoordinateType
}

// Cartesian returns the position vector.
func (p *Position) Cartesian() coord.Cartesian {
	return coord.Cartesian{X: p.X, Y: p.Y, Z: p.Z}
}

// Ecliptic projects the position to spherical coordinates in its own
// frame.
//
// For a Frame of Ecliptic the result is ecliptic longitude, latitude
// and distance; for an equatorial frame the longitude slot carries
// right ascension as an angle.
func (p *Position) Ecliptic() coord.Ecliptic {
	return coord.CartToEcl(p.Cartesian())
}

// LongitudeSpeed returns the rate of change of the spherical longitude
// in the position's own frame, in degrees per day.
//
// Without velocity data the result is zero.
func (p *Position) LongitudeSpeed() unit.Angle {
	if !p.HasVelocity {
		return 0
	}
	rxy2 := p.X*p.X + p.Y*p.Y
	if rxy2 == 0 {
		return 0
	}
	return unit.Angle((p.X*p.VY - p.Y*p.VX) / rxy2)
}

// sphPosVel converts spherical coordinates and their daily rates to a
// cartesian position and velocity.
func sphPosVel(λ, β unit.Angle, r float64, λd, βd unit.Angle, rd float64) (x, y, z, vx, vy, vz float64) {
	sλ, cλ := λ.Sincos()
	sβ, cβ := β.Sincos()
	x = r * cβ * cλ
	y = r * cβ * sλ
	z = r * sβ
	// chain rule over the spherical projection
	vx = rd*cβ*cλ - r*sβ*cλ*βd.Rad() - r*cβ*sλ*λd.Rad()
	vy = rd*cβ*sλ - r*sβ*sλ*βd.Rad() + r*cβ*cλ*λd.Rad()
	vz = rd*sβ + r*cβ*βd.Rad()
	return
}

// Distance returns the length of the position vector in AU.
func (p *Position) Distance() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

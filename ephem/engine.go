// Copyright 2023 Astrodyne
// License: MIT

// Ephem: the position engine.
//
// An Engine maps (body, JD) to a Position with optional velocity.  It
// consults its configured binary sources first — a JPL DE reader, then
// per-body SE1 files — and falls back to the analytic Sun and Moon
// series when no file covers the instant.  Results are expressed in the
// source's native frame: ICRF cartesian for JPL, ecliptic of date for
// SE1 and the analytic series.  Downstream consumers project on demand.
//
// An Engine is cheap; hold one per goroutine.  The JPL reader keeps a
// one-record cache and the SE1 source a table of opened files, both
// private mutable state.
package ephem

import (
	"github.com/astrodyne/sweph/chebyshev"
	"github.com/astrodyne/sweph/jplde"
	"github.com/astrodyne/sweph/moonpos"
	"github.com/astrodyne/sweph/solar"
	"github.com/pkg/errors"
)

// ErrBodyUnsupported is returned when neither binary data nor an
// analytic model covers the body.
var ErrBodyUnsupported = errors.New("ephem: body unsupported")

// jplTriple maps a Body to its slot in the DE index table.
var jplTriple = map[Body]int{
	Mercury: 0,
	Venus:   1,
	Mars:    3,
	Jupiter: 4,
	Saturn:  5,
	Uranus:  6,
	Neptune: 7,
	Pluto:   8,
	Moon:    9,
	Sun:     10,
}

// embTriple is the Earth-Moon barycenter slot.
const embTriple = 2

// Engine computes body positions from the configured sources.
type Engine struct {
	JPL *jplde.Reader // optional
	SE1 *SE1Source    // optional
}

// Calculate returns the geocentric position of a body at a JD on the
// TT scale.
//
// The velocity fields are filled only when wantVelocity is set; the
// position is identical either way.
func (e *Engine) Calculate(b Body, jdTT float64, wantVelocity bool) (*Position, error) {
	switch {
	case b == Earth:
		// geocentric Earth is the zero vector by definition
		return &Position{Body: b, JD: jdTT, HasVelocity: wantVelocity,
			Frame: Ecliptic, Coordinate: Geocentric}, nil
	case b.Node():
		return nodePosition(b, jdTT, wantVelocity), nil
	}

	if e.JPL != nil {
		p, err := e.jplPosition(b, jdTT, wantVelocity)
		switch {
		case err == nil:
			return p, nil
		case !errors.Is(err, jplde.ErrJDOutOfRange) &&
			!errors.Is(err, jplde.ErrBodyUnavailable):
			return nil, err
		}
	}
	if e.SE1 != nil {
		p, err := e.SE1.Position(b, jdTT, wantVelocity)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, errSE1Uncovered) {
			return nil, err
		}
	}
	return fallbackPosition(b, jdTT, wantVelocity)
}

// jplPosition evaluates a geocentric cartesian ICRF position from the
// DE file.
func (e *Engine) jplPosition(b Body, jd float64, wantVelocity bool) (*Position, error) {
	triple, ok := jplTriple[b]
	if !ok {
		return nil, errors.Wrapf(jplde.ErrBodyUnavailable, "%v", b)
	}
	au := e.JPL.Header.AUKm

	var pos, vel [3]float64
	if b == Moon {
		// the lunar slot is geocentric already
		if err := e.evalTriple(triple, jd, &pos, &vel); err != nil {
			return nil, err
		}
	} else {
		var emb, moon, body [3]float64
		var embV, moonV, bodyV [3]float64
		if err := e.evalTriple(embTriple, jd, &emb, &embV); err != nil {
			return nil, err
		}
		if err := e.evalTriple(jplTriple[Moon], jd, &moon, &moonV); err != nil {
			return nil, err
		}
		if err := e.evalTriple(triple, jd, &body, &bodyV); err != nil {
			return nil, err
		}
		f := 1 / (1 + e.JPL.Header.EarthMoonRatio)
		for i := 0; i < 3; i++ {
			earth := emb[i] - moon[i]*f
			earthV := embV[i] - moonV[i]*f
			pos[i] = body[i] - earth
			vel[i] = bodyV[i] - earthV
		}
	}
	p := &Position{
		Body: b, JD: jd,
		X: pos[0] / au, Y: pos[1] / au, Z: pos[2] / au,
		HasVelocity: wantVelocity,
		Frame:       ICRF,
		Coordinate:  Geocentric,
	}
	if wantVelocity {
		p.VX, p.VY, p.VZ = vel[0]/au, vel[1]/au, vel[2]/au
	}
	return p, nil
}

// evalTriple interpolates one index-table slot at jd.  Positions come
// out in the file's length unit (km), velocities in km/day.
func (e *Engine) evalTriple(triple int, jd float64, pos, vel *[3]float64) error {
	c, err := e.JPL.Coefficients(triple, jd)
	if err != nil {
		return err
	}
	x, err := chebyshev.Normalize(jd, c.SubStartJD, c.SubEndJD)
	if err != nil {
		return err
	}
	scale := 2 / (c.SubEndJD - c.SubStartJD)
	for i, s := range c.Series {
		if i >= 3 {
			break
		}
		v, d, err := chebyshev.EvaluateBoth(x, s)
		if err != nil {
			return err
		}
		pos[i] = v
		vel[i] = d * scale
	}
	return nil
}

// nodePosition builds the analytic position of a lunar node.
func nodePosition(b Body, jd float64, wantVelocity bool) *Position {
	Ω := moonpos.Node(jd)
	if b == TrueNode {
		Ω = moonpos.TrueNode(jd)
	}
	p := &Position{Body: b, JD: jd, Frame: Ecliptic, Coordinate: Geocentric,
		HasVelocity: wantVelocity}
	if wantVelocity {
		p.X, p.Y, p.Z, p.VX, p.VY, p.VZ =
			sphPosVel(Ω, 0, moonpos.MeanDistance, moonpos.NodeRate, 0, 0)
	} else {
		p.X, p.Y, p.Z, _, _, _ =
			sphPosVel(Ω, 0, moonpos.MeanDistance, 0, 0, 0)
	}
	return p
}

// fallbackPosition serves Sun and Moon from the analytic series.
func fallbackPosition(b Body, jd float64, wantVelocity bool) (*Position, error) {
	p := &Position{Body: b, JD: jd, Frame: Ecliptic, Coordinate: Geocentric,
		HasVelocity: wantVelocity}
	switch b {
	case Sun:
		λ, r := solar.Position(jd)
		λd := solar.LongitudeRate
		if !wantVelocity {
			λd = 0
		}
		p.X, p.Y, p.Z, p.VX, p.VY, p.VZ = sphPosVel(λ, 0, r, λd, 0, 0)
	case Moon:
		λ, β, r := moonpos.Position(jd)
		λd := moonpos.LongitudeRate
		if !wantVelocity {
			λd = 0
		}
		p.X, p.Y, p.Z, p.VX, p.VY, p.VZ = sphPosVel(λ, β, r, λd, 0, 0)
	default:
		return nil, errors.Wrapf(ErrBodyUnsupported, "%v", b)
	}
	return p, nil
}

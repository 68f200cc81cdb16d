// Copyright 2023 Astrodyne
// License: MIT

package ephem

import (
	"github.com/astrodyne/sweph/chebyshev"
	"github.com/astrodyne/sweph/ephepath"
	"github.com/astrodyne/sweph/julian"
	"github.com/astrodyne/sweph/se1"
	"github.com/pkg/errors"
	"github.com/soniakeys/unit"
)

// errSE1Uncovered marks conditions that let the engine fall through to
// the analytic series: no file found, or a file that does not cover
// the instant.
var errSE1Uncovered = errors.New("ephem: no se1 coverage")

// SE1Source locates and reads SE1 files through a search path.
//
// Opened readers are cached by file name.  The cache is private
// mutable state; use one SE1Source per goroutine.
type SE1Source struct {
	Config  ephepath.Config
	readers map[string]*se1.Reader
}

// NewSE1Source builds a source over a search-path configuration.
func NewSE1Source(cfg ephepath.Config) *SE1Source {
	return &SE1Source{Config: cfg, readers: map[string]*se1.Reader{}}
}

// prefix returns the file-name class for a body.
func prefix(b Body) string {
	if b == Moon {
		return "semo"
	}
	return "sepl"
}

// reader opens (or recalls) the file covering (body, jd), trying the
// century of jd first and then its neighbors.
func (s *SE1Source) reader(b Body, jd float64) (*se1.Reader, error) {
	y, _, _ := julian.JDToCalendar(jd)
	for _, year := range []int{y, y - 100, y + 100} {
		r, err := s.open(se1.FileName(prefix(b), year))
		if err != nil {
			if errors.Is(err, ephepath.ErrFileNotFound) ||
				errors.Is(err, ephepath.ErrConfigurationInvalid) {
				continue
			}
			return nil, err
		}
		if jd >= r.Header.StartJD && jd < r.Header.EndJD {
			return r, nil
		}
	}
	return nil, errors.Wrapf(errSE1Uncovered, "%v at jd %g", b, jd)
}

func (s *SE1Source) open(name string) (*se1.Reader, error) {
	if r, ok := s.readers[name]; ok {
		return r, nil
	}
	path, err := s.Config.Find(name)
	if err != nil {
		return nil, err
	}
	r, err := se1.Open(path)
	if err != nil {
		return nil, err
	}
	if s.readers == nil {
		s.readers = map[string]*se1.Reader{}
	}
	s.readers[name] = r
	return r, nil
}

// Position evaluates the ecliptic-of-date position of a body from its
// SE1 segment covering jd.
func (s *SE1Source) Position(b Body, jd float64, wantVelocity bool) (*Position, error) {
	r, err := s.reader(b, jd)
	if err != nil {
		return nil, err
	}
	rec, err := r.FindRecord(jd)
	if err != nil {
		if errors.Is(err, se1.ErrJDOutOfRange) {
			return nil, errors.Wrapf(errSE1Uncovered, "%v at jd %g", b, jd)
		}
		return nil, err
	}
	x, err := chebyshev.Normalize(jd, rec.StartJD, rec.EndJD)
	if err != nil {
		return nil, err
	}
	scale := 2 / (rec.EndJD - rec.StartJD)
	eval := func(c []float64) (v, d float64, err error) {
		if c == nil {
			// identically zero coordinate
			return 0, 0, nil
		}
		v, d, err = chebyshev.EvaluateBoth(x, c)
		return v, d * scale, err
	}
	lv, ld, err := eval(rec.Long)
	if err != nil {
		return nil, err
	}
	bv, bd, err := eval(rec.Lat)
	if err != nil {
		return nil, err
	}
	rv, rd, err := eval(rec.Dist)
	if err != nil {
		return nil, err
	}
	rv *= r.Header.RMax
	rd *= r.Header.RMax

	p := &Position{Body: b, JD: jd, Frame: Ecliptic, Coordinate: Geocentric,
		HasVelocity: wantVelocity}
	λ, β := unit.AngleFromDeg(lv), unit.AngleFromDeg(bv)
	λd, βd := unit.AngleFromDeg(ld), unit.AngleFromDeg(bd)
	if !wantVelocity {
		λd, βd, rd = 0, 0, 0
	}
	p.X, p.Y, p.Z, p.VX, p.VY, p.VZ = sphPosVel(λ, β, rv, λd, βd, rd)
	return p, nil
}

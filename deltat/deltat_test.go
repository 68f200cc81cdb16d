// Copyright 2023 Astrodyne
// License: MIT

package deltat_test

import (
	"errors"
	"math"
	"testing"

	"github.com/astrodyne/sweph/base"
	"github.com/astrodyne/sweph/deltat"
	"github.com/astrodyne/sweph/julian"
)

func TestDeltaTJ2000(t *testing.T) {
	// TAI−UTC was 32 s through 2000, so ΔT = 64.184 s.
	got := deltat.DeltaT(base.J2000).Sec()
	if math.Abs(got-63.83) > 1 {
		t.Fatal("ΔT(J2000):", got)
	}
}

func TestDeltaT2017(t *testing.T) {
	jd, err := julian.DateToJD(2017, 1, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := deltat.DeltaT(jd).Sec()
	if math.Abs(got-69.184) > 1e-9 {
		t.Fatal("ΔT(2017):", got)
	}
}

func TestLeapTable(t *testing.T) {
	for _, tp := range []struct {
		y, m, d int
		tai     float64
	}{
		{1972, 1, 1, 10},
		{1972, 6, 30, 10},
		{1972, 7, 1, 11},
		{1999, 1, 1, 32},
		{2005, 12, 31, 32},
		{2006, 1, 1, 33},
		{2017, 1, 1, 37},
		{2020, 1, 1, 37},
	} {
		jd, err := julian.DateToJD(tp.y, tp.m, tp.d, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got := deltat.TAIMinusUTC(jd).Sec(); got != tp.tai {
			t.Errorf("TAI−UTC at %d-%02d-%02d = %g, want %g",
				tp.y, tp.m, tp.d, got, tp.tai)
		}
	}
}

// Adjacent polynomial bands must join smoothly.  The modern bands agree
// to better than 0.1 s; the fits before 1800 are only good to a few
// tenths at the seams.
func TestBandContinuity(t *testing.T) {
	tol := func(y int) float64 {
		if y >= 1900 {
			return .1
		}
		return .5
	}
	for _, y := range []int{1700, 1800, 1860, 1900, 1920, 1941, 1961} {
		before, err := julian.DateToJD(y-1, 12, 31, 23.9)
		if err != nil {
			t.Fatal(err)
		}
		after, err := julian.DateToJD(y, 1, 1, 0.1)
		if err != nil {
			t.Fatal(err)
		}
		d := deltat.DeltaT(after).Sec() - deltat.DeltaT(before).Sec()
		if math.Abs(d) > tol(y) {
			t.Errorf("ΔT discontinuity %.3f s at year %d", d, y)
		}
	}
}

func TestUTTTRoundTrip(t *testing.T) {
	// Invariant: ut_to_tt;tt_to_ut identity within 1e-8 d for 1600..2100.
	for y := 1600; y <= 2100; y += 25 {
		jd, err := julian.DateToJD(y, 6, 1, 7.25)
		if err != nil {
			t.Fatal(err)
		}
		tt, err := deltat.UTToTT(jd)
		if err != nil {
			t.Fatal(err)
		}
		ut, err := deltat.TTToUT(tt)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(ut-jd) > 1e-8 {
			t.Errorf("year %d: round trip error %g d", y, ut-jd)
		}
	}
}

func TestTDBRoundTrip(t *testing.T) {
	for _, jd := range []float64{base.J2000, 2441317.5, 2457754.5, 990574.25} {
		tdb, err := deltat.TTToTDB(jd)
		if err != nil {
			t.Fatal(err)
		}
		tt, err := deltat.TDBToTT(tdb)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(tt-jd) > 1e-10 {
			t.Errorf("TDB round trip at %g: %g d", jd, tt-jd)
		}
		// the correction itself stays below 2 ms
		if d := math.Abs(tdb-jd) * 86400; d > .002 {
			t.Errorf("TDB offset at %g: %g s", jd, d)
		}
	}
}

func TestAbsurdJD(t *testing.T) {
	for _, jd := range []float64{-3e6, 2e8} {
		if _, err := deltat.UTToTT(jd); !errors.Is(err, deltat.ErrJDOutOfRange) {
			t.Errorf("UTToTT(%g): want ErrJDOutOfRange, got %v", jd, err)
		}
	}
}

func TestTAI(t *testing.T) {
	jd := base.J2000
	tai, err := deltat.UTToTAI(jd)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs((tai-jd)*86400-32) > 1e-9 {
		t.Fatal("TAI−UTC at J2000:", (tai-jd)*86400)
	}
	tt, err := deltat.TAIToTT(tai)
	if err != nil {
		t.Fatal(err)
	}
	ut, err := deltat.UTToTT(jd)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(tt-ut) > 1e-9 {
		t.Fatal("TAI chain:", tt-ut)
	}
}

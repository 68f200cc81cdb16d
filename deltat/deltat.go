// Copyright 2023 Astrodyne
// License: MIT

// Deltat: ΔT and conversions between time scales.
//
// ΔT = TT − UT, the accumulated difference between uniform terrestrial
// time and the time scale tied to the Earth's rotation.  From 1972 on it
// is known exactly from the IERS leap-second announcements; earlier
// epochs use the Espenak & Meeus (2006) polynomial fits, and epochs
// before 1600 the long-term parabola of Morrison & Stephenson.
//
// The package also converts Julian days between UT, UTC, TT, TDB and
// TAI.  UT1 − UTC never exceeds 0.9 s, which is below the precision
// floor of this engine, so UT and UTC are treated as identical.
package deltat

import (
	"errors"
	"math"

	"github.com/astrodyne/sweph/base"
	"github.com/astrodyne/sweph/julian"
	"github.com/soniakeys/unit"
)

// ErrJDOutOfRange is returned for physically absurd Julian days.
var ErrJDOutOfRange = errors.New("deltat: julian day out of range")

// TTMinusTAI is the fixed offset TT − TAI in seconds.
const TTMinusTAI = 32.184

// jdMin, jdMax bound the JDs the engine accepts.
const (
	jdMin = -2e6
	jdMax = 1e8
)

// leapSeconds lists the IERS leap-second thresholds from 1972-01-01
// through 2017-01-01 as pairs of JD(UTC) and the running TAI−UTC count
// in effect from that instant.
var leapSeconds = []struct {
	jd  float64
	tai float64
}{
	{2441317.5, 10}, // 1972 Jan 1
	{2441499.5, 11}, // 1972 Jul 1
	{2441683.5, 12}, // 1973 Jan 1
	{2442048.5, 13}, // 1974 Jan 1
	{2442413.5, 14}, // 1975 Jan 1
	{2442778.5, 15}, // 1976 Jan 1
	{2443144.5, 16}, // 1977 Jan 1
	{2443509.5, 17}, // 1978 Jan 1
	{2443874.5, 18}, // 1979 Jan 1
	{2444239.5, 19}, // 1980 Jan 1
	{2444786.5, 20}, // 1981 Jul 1
	{2445151.5, 21}, // 1982 Jul 1
	{2445516.5, 22}, // 1983 Jul 1
	{2446247.5, 23}, // 1985 Jul 1
	{2447161.5, 24}, // 1988 Jan 1
	{2447892.5, 25}, // 1990 Jan 1
	{2448257.5, 26}, // 1991 Jan 1
	{2448804.5, 27}, // 1992 Jul 1
	{2449169.5, 28}, // 1993 Jul 1
	{2449534.5, 29}, // 1994 Jul 1
	{2450083.5, 30}, // 1996 Jan 1
	{2450630.5, 31}, // 1997 Jul 1
	{2451179.5, 32}, // 1999 Jan 1
	{2453736.5, 33}, // 2006 Jan 1
	{2454832.5, 34}, // 2009 Jan 1
	{2456109.5, 35}, // 2012 Jul 1
	{2457204.5, 36}, // 2015 Jul 1
	{2457754.5, 37}, // 2017 Jan 1
}

// TAIMinusUTC returns the leap-second count TAI − UTC in effect at the
// given JD(UTC).  For dates before 1972 it returns the initial count.
func TAIMinusUTC(jd float64) unit.Time {
	n := leapSeconds[0].tai
	for _, ls := range leapSeconds {
		if jd < ls.jd {
			break
		}
		n = ls.tai
	}
	return unit.Time(n)
}

// DeltaT returns ΔT = TT − UT for the given JD(UT).
func DeltaT(jdUT float64) unit.Time {
	if jdUT >= leapSeconds[0].jd {
		return TAIMinusUTC(jdUT) + TTMinusTAI
	}
	y := julian.DecimalYear(jdUT)
	return unit.Time(deltaTSeconds(y))
}

// deltaTSeconds evaluates the pre-1972 polynomial bands at a decimal
// calendar year.  Band pivots follow Espenak & Meeus (2006); the seams
// from 1800 on agree to better than 0.1 s.  The 1700 seam differs by
// about 0.16 s, and the parabola before 1600 meets the 1600 band with a
// jump of about 15 s.
func deltaTSeconds(y float64) float64 {
	switch {
	case y >= 1961:
		u := y - 1975
		return base.Horner(u, 45.45, 1.067, -1/260., -1/718.)
	case y >= 1941:
		u := y - 1950
		return base.Horner(u, 29.07, 0.407, -1/233., 1/2547.)
	case y >= 1920:
		u := y - 1920
		return base.Horner(u, 21.20, 0.84493, -0.076100, 0.0020936)
	case y >= 1900:
		u := y - 1900
		return base.Horner(u, -2.79, 1.494119, -0.0598939, 0.0061966, -0.000197)
	case y >= 1860:
		u := y - 1860
		return base.Horner(u, 7.62, 0.5737, -0.251754, 0.01680668,
			-0.0004473624, 1/233174.)
	case y >= 1800:
		u := y - 1800
		return base.Horner(u, 13.72, -0.332447, 0.0068612, 0.0041116,
			-0.00037436, 0.0000121272, -0.0000001699, 0.000000000875)
	case y >= 1700:
		u := y - 1700
		return base.Horner(u, 8.83, 0.1603, -0.0059285, 0.00013336, -1/1174000.)
	case y >= 1600:
		u := y - 1600
		return base.Horner(u, 120, -0.9808, -0.01532, 1/7129.)
	}
	// long-term parabola, Morrison & Stephenson
	u := (y - 1820) / 100
	return -20 + 32*u*u
}

func checkJD(jd float64) error {
	if jd < jdMin || jd > jdMax || math.IsNaN(jd) {
		return ErrJDOutOfRange
	}
	return nil
}

// UTToTT converts a JD on the UT scale to the TT scale.
func UTToTT(jdUT float64) (float64, error) {
	if err := checkJD(jdUT); err != nil {
		return 0, err
	}
	return jdUT + DeltaT(jdUT).Day(), nil
}

// TTToUT converts a JD on the TT scale to the UT scale.
//
// ΔT is a function of UT, so the inverse is found by fixed-point
// iteration.  Convergence to 1e-8 days is reached in one or two steps
// everywhere; the loop gives up after five.
func TTToUT(jdTT float64) (float64, error) {
	if err := checkJD(jdTT); err != nil {
		return 0, err
	}
	u := jdTT - DeltaT(jdTT).Day()
	for i := 0; i < 5; i++ {
		u1 := jdTT - DeltaT(u).Day()
		if math.Abs(u1-u) < 1e-8 {
			return u1, nil
		}
		u = u1
	}
	return u, nil
}

// UTToUTC is the identity: UT1 − UTC is below the engine's precision
// floor.
func UTToUTC(jdUT float64) float64 { return jdUT }

// UTCToTT converts a JD on the UTC scale to the TT scale.
func UTCToTT(jdUTC float64) (float64, error) { return UTToTT(jdUTC) }

// TTToTDB converts a JD on the TT scale to the TDB scale.
//
// The periodic correction peaks at 1.7 ms; terms below 1 μs are
// dropped.
func TTToTDB(jdTT float64) (float64, error) {
	if err := checkJD(jdTT); err != nil {
		return 0, err
	}
	return jdTT + tdbOffset(jdTT).Day(), nil
}

// TDBToTT converts a JD on the TDB scale to the TT scale.
//
// The correction is orders of magnitude below ΔT's uncertainty, so the
// same formula is applied with the sign flipped rather than iterated.
func TDBToTT(jdTDB float64) (float64, error) {
	if err := checkJD(jdTDB); err != nil {
		return 0, err
	}
	return jdTDB - tdbOffset(jdTDB).Day(), nil
}

func tdbOffset(jd float64) unit.Time {
	g := unit.AngleFromDeg(base.PMod(357.53+0.98560028*(jd-base.J2000), 360))
	return unit.Time(0.001658*g.Sin() + 0.000014*g.Mul(2).Sin())
}

// UTToTAI converts a JD on the UT scale to the TAI scale.
//
// Before 1972 the leap-second count is not defined; the conversion
// extrapolates with ΔT − (TT − TAI), which joins the table smoothly.
func UTToTAI(jdUT float64) (float64, error) {
	if err := checkJD(jdUT); err != nil {
		return 0, err
	}
	if jdUT >= leapSeconds[0].jd {
		return jdUT + TAIMinusUTC(jdUT).Day(), nil
	}
	return jdUT + (DeltaT(jdUT) - TTMinusTAI).Day(), nil
}

// TAIToUT converts a JD on the TAI scale to the UT scale.
func TAIToUT(jdTAI float64) (float64, error) {
	if err := checkJD(jdTAI); err != nil {
		return 0, err
	}
	u := jdTAI - TAIMinusUTC(jdTAI).Day()
	return jdTAI - TAIMinusUTC(u).Day(), nil
}

// TTToTAI converts a JD on the TT scale to the TAI scale.
func TTToTAI(jdTT float64) (float64, error) {
	if err := checkJD(jdTT); err != nil {
		return 0, err
	}
	return jdTT - unit.Time(TTMinusTAI).Day(), nil
}

// TAIToTT converts a JD on the TAI scale to the TT scale.
func TAIToTT(jdTAI float64) (float64, error) {
	if err := checkJD(jdTAI); err != nil {
		return 0, err
	}
	return jdTAI + unit.Time(TTMinusTAI).Day(), nil
}

// Copyright 2023 Astrodyne
// License: MIT

// Julian: conversions between the proleptic Gregorian calendar and
// Julian day numbers.
//
// A Julian day names an instant as a real number of days; the time scale
// it is measured on (UT, TT, TDB) is carried by the caller, not by the
// value.  All conversions here are proleptic Gregorian with no calendar
// cutover: dates before 1582 are interpreted by the same leap-year rules
// as modern dates.
package julian

import (
	"errors"
	"math"

	"github.com/astrodyne/sweph/base"
)

// ErrInvalidDate is returned for an out-of-range month, day or hour, or
// for an impossible date such as February 29 of a non-leap year.
var ErrInvalidDate = errors.New("julian: invalid calendar date")

// CalendarGregorianToJD converts a Gregorian year, month, and day of month
// to Julian day.
//
// Negative years are valid, back to JD 0.  The result is not valid for
// dates before JD 0.  The day may carry a fraction.  Arguments are not
// validated; see DateToJD for the checked form.
func CalendarGregorianToJD(y, m int, d float64) float64 {
	switch m {
	case 1, 2:
		y--
		m += 12
	}
	a := base.FloorDiv(y, 100)
	b := 2 - a + base.FloorDiv(a, 4)
	return float64(base.FloorDiv64(36525*(int64(y+4716)), 100)) +
		float64(base.FloorDiv(306*(m+1), 10)+b) + d - 1524.5
}

// DateToJD converts a validated Gregorian date and decimal hour to a
// Julian day.
//
// Year is the signed astronomical year (0 = 1 BCE).  Month must be in
// [1,12], day valid for that month under proleptic Gregorian rules, and
// hour in [0,24).  Violations return ErrInvalidDate.
func DateToJD(y, m, d int, hour float64) (float64, error) {
	if m < 1 || m > 12 {
		return 0, ErrInvalidDate
	}
	if d < 1 || d > lastDayOfMonth(y, m) {
		return 0, ErrInvalidDate
	}
	if hour < 0 || hour >= 24 || math.IsNaN(hour) {
		return 0, ErrInvalidDate
	}
	return CalendarGregorianToJD(y, m, float64(d)+hour/24), nil
}

func lastDayOfMonth(y, m int) int {
	switch m {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if LeapYearGregorian(y) {
			return 29
		}
		return 28
	}
	return 31
}

// LeapYearGregorian returns true if year y in the Gregorian calendar is
// a leap year.
func LeapYearGregorian(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}

// JDToCalendar returns the proleptic Gregorian calendar date for the
// given jd.
//
// It returns a Gregorian date even for dates before the historical start
// of the Gregorian calendar.
func JDToCalendar(jd float64) (year, month int, day float64) {
	zf, f := math.Modf(jd + .5)
	z := int64(zf)
	α := base.FloorDiv64(z*100-186721625, 3652425)
	a := z + 1 + α - base.FloorDiv64(α, 4)
	b := a + 1524
	c := base.FloorDiv64(b*100-12210, 36525)
	d := base.FloorDiv64(36525*c, 100)
	e := int(base.FloorDiv64((b-d)*1e4, 306001))
	day = float64(int(b-d)-base.FloorDiv(306001*e, 1e4)) + f
	switch e {
	default:
		month = e - 1
	case 14, 15:
		month = e - 13
	}
	switch month {
	default:
		year = int(c) - 4716
	case 1, 2:
		year = int(c) - 4715
	}
	return
}

// JDToDate returns the Gregorian date of jd with the day fraction
// separated out as a decimal hour.
func JDToDate(jd float64) (year, month, day int, hour float64) {
	y, m, d := JDToCalendar(jd)
	di, df := math.Modf(d)
	return y, m, int(di), df * 24
}

// DayOfYearGregorian computes the day number within the year of the
// Gregorian calendar.
func DayOfYearGregorian(y, m, d int) int {
	return DayOfYear(y, m, d, LeapYearGregorian(y))
}

// DayOfYear computes the day number within the year.
//
// This form of the function is not specific to a calendar, but you must
// tell it whether the year is a leap year.
func DayOfYear(y, m, d int, leap bool) int {
	k := 2
	if leap {
		k--
	}
	return 275*m/9 - k*((m+9)/12) - 30 + d
}

// DecimalYear returns the Gregorian calendar year of jd with the elapsed
// fraction of the year as a decimal.
func DecimalYear(jd float64) float64 {
	y, m, d := JDToCalendar(jd)
	yl := 365.
	if LeapYearGregorian(y) {
		yl++
	}
	return float64(y) + (float64(DayOfYearGregorian(y, m, int(d)))-1+
		(d-math.Trunc(d)))/yl
}

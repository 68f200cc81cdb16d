// Copyright 2023 Astrodyne
// License: MIT

package julian_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/astrodyne/sweph/julian"
)

func ExampleCalendarGregorianToJD() {
	jd := julian.CalendarGregorianToJD(1957, 10, 4.81)
	fmt.Printf("%.2f\n", jd)
	// Output:
	// 2436116.31
}

func TestGreg(t *testing.T) {
	for _, tp := range []struct {
		y, m  int
		d, jd float64
	}{
		{2000, 1, 1.5, 2451545},
		{1999, 1, 1, 2451179.5},
		{1987, 1, 27, 2446822.5},
		{1987, 6, 19.5, 2446966},
		{1988, 1, 27, 2447187.5},
		{1988, 6, 19.5, 2447332},
		{1900, 1, 1, 2415020.5},
		{1600, 1, 1, 2305447.5},
		{1600, 12, 31, 2305812.5},
	} {
		dt := julian.CalendarGregorianToJD(tp.y, tp.m, tp.d) - tp.jd
		if math.Abs(dt) > .1 {
			t.Logf("%#v", tp)
			t.Fatal("dt:", dt)
		}
	}
}

func TestDateToJD(t *testing.T) {
	for _, tp := range []struct {
		y, m, d int
		hour    float64
		jd      float64
	}{
		{2000, 1, 1, 12, 2451545.0},
		{1974, 8, 15, 23.5, 2442275.479167},
		{2014, 4, 26, 16 + 53./60 + 24./3600, 2456774.20375},
	} {
		jd, err := julian.DateToJD(tp.y, tp.m, tp.d, tp.hour)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(jd-tp.jd) > 1e-6 {
			t.Errorf("DateToJD(%d,%d,%d,%g) = %.6f, want %.6f",
				tp.y, tp.m, tp.d, tp.hour, jd, tp.jd)
		}
	}
}

func TestDateToJDInvalid(t *testing.T) {
	for _, tp := range []struct {
		y, m, d int
		hour    float64
	}{
		{2000, 0, 1, 0},
		{2000, 13, 1, 0},
		{2000, 1, 0, 0},
		{2000, 1, 32, 0},
		{1900, 2, 29, 0}, // 1900 is not a Gregorian leap year
		{2001, 2, 29, 0},
		{2000, 4, 31, 0},
		{2000, 1, 1, 24},
		{2000, 1, 1, -1},
	} {
		if _, err := julian.DateToJD(tp.y, tp.m, tp.d, tp.hour); !errors.Is(err, julian.ErrInvalidDate) {
			t.Errorf("DateToJD(%d,%d,%d,%g): want ErrInvalidDate, got %v",
				tp.y, tp.m, tp.d, tp.hour, err)
		}
	}
	// Feb 29 is valid in century years divisible by 400.
	if _, err := julian.DateToJD(2000, 2, 29, 0); err != nil {
		t.Fatal(err)
	}
}

func TestRoundTrip(t *testing.T) {
	// Invariant: JDToDate(DateToJD(date)) = date over a wide year range.
	for _, y := range []int{-4700, -1000, 0, 1, 900, 1582, 1900, 2000, 2024, 16299} {
		for _, tp := range []struct {
			m, d int
			hour float64
		}{
			{1, 1, 0},
			{3, 31, 12},
			{6, 19, 23.25},
			{12, 31, 6.5},
		} {
			jd, err := julian.DateToJD(y, tp.m, tp.d, tp.hour)
			if err != nil {
				t.Fatal(err)
			}
			y2, m2, d2, h2 := julian.JDToDate(jd)
			if y2 != y || m2 != tp.m || d2 != tp.d {
				t.Fatalf("round trip %d-%d-%d: got %d-%d-%d",
					y, tp.m, tp.d, y2, m2, d2)
			}
			// 1 ms on the hour
			if math.Abs(h2-tp.hour) > 1./3600e3 {
				t.Fatalf("round trip %d-%d-%d %g: hour %g", y, tp.m, tp.d, tp.hour, h2)
			}
		}
	}
}

func TestDecimalYear(t *testing.T) {
	jd := julian.CalendarGregorianToJD(1987, 4, 10)
	y := julian.DecimalYear(jd)
	if math.Abs(y-1987.27) > .01 {
		t.Fatal("DecimalYear:", y)
	}
}

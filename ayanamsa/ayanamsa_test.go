// Copyright 2023 Astrodyne
// License: MIT

package ayanamsa_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/astrodyne/sweph/ayanamsa"
	"github.com/astrodyne/sweph/base"
	"github.com/soniakeys/unit"
)

func ExampleNakshatra() {
	λ := unit.AngleFromDeg(0)
	fmt.Println(ayanamsa.NakshatraName(ayanamsa.Nakshatra(λ)),
		"pada", ayanamsa.NakshatraPada(λ))
	// Output:
	// Ashwini pada 1
}

func TestDegreesJ2000(t *testing.T) {
	for _, tp := range []struct {
		sys  ayanamsa.System
		want float64
		tol  float64
	}{
		{ayanamsa.FaganBradley, 24.04, .01},
		{ayanamsa.Lahiri, 23.60, .01},
		{ayanamsa.Raman, 22.20, .01},
		{ayanamsa.Krishnamurti, 23.50, .01},
	} {
		got := ayanamsa.Degrees(base.J2000, tp.sys).Deg()
		if math.Abs(got-tp.want) > tp.tol {
			t.Errorf("%v at J2000: %g, want %g", tp.sys, got, tp.want)
		}
	}
	// unknown systems fall back to Lahiri
	got := ayanamsa.Degrees(base.J2000, ayanamsa.System(99)).Deg()
	want := ayanamsa.Degrees(base.J2000, ayanamsa.Lahiri).Deg()
	if got != want {
		t.Fatal("unknown system fallback:", got)
	}
}

func TestRate(t *testing.T) {
	// the sidereal zodiac drifts by about 50″ per year
	century := ayanamsa.Degrees(base.J2000+36525, ayanamsa.Lahiri).Deg() -
		ayanamsa.Degrees(base.J2000, ayanamsa.Lahiri).Deg()
	if math.Abs(century-1.389) > .01 {
		t.Fatal("drift per century:", century)
	}
}

func TestRoundTrip(t *testing.T) {
	λ := unit.AngleFromDeg(123.456)
	s := ayanamsa.TropicalToSidereal(λ, base.J2000, ayanamsa.Lahiri)
	back := ayanamsa.SiderealToTropical(s, base.J2000, ayanamsa.Lahiri)
	if d := math.Abs(back.Deg() - λ.Deg()); d > 1e-9 {
		t.Fatal("round trip:", d)
	}
}

func TestNakshatra(t *testing.T) {
	for _, tp := range []struct {
		λ            float64
		mansion, pada int
	}{
		{0, 0, 1}, // Ashwini, first pada
		{3.34, 0, 2},
		{13.34, 1, 1},
		{359.9, 26, 4},
		{133.33, 9, 4},
		{360.0, 0, 1},
	} {
		λ := unit.AngleFromDeg(tp.λ)
		if got := ayanamsa.Nakshatra(λ); got != tp.mansion {
			t.Errorf("Nakshatra(%g) = %d, want %d", tp.λ, got, tp.mansion)
		}
		if got := ayanamsa.NakshatraPada(λ); got != tp.pada {
			t.Errorf("NakshatraPada(%g) = %d, want %d", tp.λ, got, tp.pada)
		}
	}
	if ayanamsa.NakshatraName(0) != "Ashwini" {
		t.Fatal("name 0")
	}
	if ayanamsa.NakshatraName(26) != "Revati" {
		t.Fatal("name 26")
	}
}

func TestSign(t *testing.T) {
	if ayanamsa.Sign(unit.AngleFromDeg(29.99)) != 0 {
		t.Fatal("sign of 29.99")
	}
	if ayanamsa.Sign(unit.AngleFromDeg(212)) != 7 {
		t.Fatal("sign of 212")
	}
}

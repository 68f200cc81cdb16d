// Copyright 2023 Astrodyne
// License: MIT

package moonpos_test

import (
	"math"
	"testing"

	"github.com/astrodyne/sweph/base"
	"github.com/astrodyne/sweph/julian"
	"github.com/astrodyne/sweph/moonpos"
)

// Example 47.a, p. 342 of Meeus.  The full series gives λ = 133.162655,
// β = −3.229126, Δ = 368409.7 km; the reduced series must stay within
// its stated accuracy class.
func TestPosition(t *testing.T) {
	jd := julian.CalendarGregorianToJD(1992, 4, 12)
	λ, β, r := moonpos.Position(jd)
	if math.Abs(λ.Deg()-133.162655) > .3 {
		t.Fatal("λ:", λ.Deg())
	}
	if math.Abs(β.Deg()-(-3.229126)) > .1 {
		t.Fatal("β:", β.Deg())
	}
	if math.Abs(r*base.AU-368409.7) > 1000 {
		t.Fatal("Δ km:", r*base.AU)
	}
}

func TestLongitudeSpeed(t *testing.T) {
	// finite difference at J2000 must land in the 11..15 °/day window
	λ1, _, _ := moonpos.Position(base.J2000)
	λ2, _, _ := moonpos.Position(base.J2000 + 1)
	d := math.Mod((λ2-λ1).Deg()+360, 360)
	if d < 11 || d > 15 {
		t.Fatal("dλ/dt:", d)
	}
}

func TestNode(t *testing.T) {
	// At J2000 the mean node is near 125°.04.
	Ω := moonpos.Node(base.J2000)
	if math.Abs(Ω.Deg()-125.0445479) > 1e-6 {
		t.Fatal("Ω at J2000:", Ω.Deg())
	}
	// Regression over a year ≈ −19.34°.
	Ω2 := moonpos.Node(base.J2000 + 365.25)
	d := math.Mod((Ω2-Ω).Deg()-360, 360)
	if math.Abs(d+19.34) > .01 {
		t.Fatal("node regression:", d)
	}
}

func TestTrueNode(t *testing.T) {
	// the osculating node stays within ~1.7° of the mean node
	for jd := base.J2000; jd < base.J2000+7000; jd += 310.75 {
		d := (moonpos.TrueNode(jd) - moonpos.Node(jd)).Deg()
		d = math.Mod(d+540, 360) - 180
		if math.Abs(d) > 1.8 {
			t.Fatalf("true−mean node at %g: %g", jd, d)
		}
	}
}

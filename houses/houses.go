// Copyright 2023 Astrodyne
// License: MIT

// Houses: astrological house cusps and chart angles.
//
// All systems start from the same three quantities: the right ascension
// of the meridian (ARMC, the local sidereal time as an angle), the
// obliquity of the ecliptic, and the geographic latitude.  The MC and
// Ascendant follow from the classical formulas; each system then fills
// the intermediate cusps by its own division rule.  Quadrant systems
// that lose meaning beyond the polar circle either substitute the
// Porphyry division (Placidus, Koch, Topocentric) or fail
// (Alcabitius); the choice is fixed per system and callers may depend
// on it.
package houses

import (
	"math"

	"github.com/astrodyne/sweph/base"
	"github.com/astrodyne/sweph/coord"
	"github.com/astrodyne/sweph/sidereal"
	"github.com/pkg/errors"
	"github.com/soniakeys/unit"
)

// ErrHouseSystemUndefined is returned when a system has no defined
// result for the requested latitude, or the system code is unknown.
var ErrHouseSystemUndefined = errors.New("houses: house system undefined")

// System identifies a house system by its conventional letter code.
type System byte

const (
	Placidus      System = 'P'
	Koch          System = 'K'
	Porphyry      System = 'O'
	Regiomontanus System = 'R'
	Campanus      System = 'C'
	Alcabitius    System = 'B'
	Morinus       System = 'M'
	Meridian      System = 'X'
	Azimuthal     System = 'H'
	Topocentric   System = 'T'
	Equal         System = 'A'
	EqualAlt      System = 'E' // accepted alias for Equal
	EqualMC       System = 'D'
	Vehlow        System = 'V'
	WholeSign     System = 'W'
	Gauquelin     System = 'G'
)

var systemNames = map[System]string{
	Placidus:      "Placidus",
	Koch:          "Koch",
	Porphyry:      "Porphyry",
	Regiomontanus: "Regiomontanus",
	Campanus:      "Campanus",
	Alcabitius:    "Alcabitius",
	Morinus:       "Morinus",
	Meridian:      "Meridian",
	Azimuthal:     "Azimuthal",
	Topocentric:   "Topocentric",
	Equal:         "Equal",
	EqualMC:       "Equal (MC)",
	Vehlow:        "Vehlow",
	WholeSign:     "Whole Sign",
	Gauquelin:     "Gauquelin sectors",
}

func (s System) String() string {
	if n, ok := systemNames[s]; ok {
		return n
	}
	return "System(" + string(rune(s)) + ")"
}

// Location is a geographic observer position.
type Location struct {
	Lat unit.Angle // geographic latitude, north positive
	Lon unit.Angle // geographic longitude, east positive
}

// Cusps holds the computed cusps and the angle set.
//
// Cusp is indexed 1..12, or 1..36 for Gauquelin sectors; index 0 is
// unused.  All longitudes are ecliptic of date.
type Cusps struct {
	System System
	Cusp   []unit.Angle

	Asc           unit.Angle
	MC            unit.Angle
	ARMC          unit.Angle
	Vertex        unit.Angle
	EquatorialAsc unit.Angle
	CoAscKoch     unit.Angle
	CoAscMunkasey unit.Angle
	PolarAsc      unit.Angle
}

// Descendant returns Asc + 180°.
func (c *Cusps) Descendant() unit.Angle {
	return (c.Asc + unit.AngleFromDeg(180)).Mod1()
}

// IC returns MC + 180°.
func (c *Cusps) IC() unit.Angle {
	return (c.MC + unit.AngleFromDeg(180)).Mod1()
}

// Calculate computes cusps and angles for an instant and place.
//
// jdUT is on the UT scale; the local apparent sidereal time it implies
// fixes the ARMC.
func Calculate(jdUT float64, loc Location, sys System) (*Cusps, error) {
	lst := sidereal.LocalApparent(jdUT, loc.Lon)
	armcDeg := lst.Sec() / 240 // 240 sidereal seconds per degree
	ε := coord.MeanObliquity(jdUT)
	return CalculateARMC(unit.AngleFromDeg(armcDeg), loc.Lat, ε, sys)
}

// CalculateARMC computes cusps and angles directly from ARMC, latitude
// and obliquity, for callers that carry their own sidereal time.
func CalculateARMC(armc, φ, ε unit.Angle, sys System) (*Cusps, error) {
	h := &chart{
		armc: armc.Deg(),
		φ:    φ.Deg(),
	}
	h.sε, h.cε = ε.Sincos()
	h.εdeg = ε.Deg()

	h.mc = h.raToEcl(h.armc)
	h.asc = h.fitEast(h.asc1(h.armc+90, h.φ))

	c := &Cusps{System: sys}
	var err error
	switch sys {
	case Equal, EqualAlt:
		h.equalFrom(h.asc)
	case EqualMC:
		h.equalFrom(base.PMod(h.mc-270, 360))
	case Vehlow:
		h.equalFrom(base.PMod(h.asc-15, 360))
	case WholeSign:
		h.equalFrom(30 * math.Floor(h.asc/30))
	case Porphyry:
		h.porphyry()
	case Placidus:
		if h.polar() {
			h.porphyry()
		} else {
			h.placidus()
		}
	case Koch:
		if h.polar() {
			h.porphyry()
		} else {
			h.koch()
		}
	case Topocentric:
		if h.polar() {
			h.porphyry()
		} else {
			h.topocentric()
		}
	case Alcabitius:
		if h.polar() {
			return nil, errors.Wrapf(ErrHouseSystemUndefined,
				"Alcabitius at latitude %.4g", h.φ)
		}
		h.alcabitius()
	case Regiomontanus:
		h.regiomontanus()
	case Campanus:
		h.campanus()
	case Morinus:
		h.morinus()
	case Meridian:
		h.meridian()
	case Azimuthal:
		h.azimuthal()
	case Gauquelin:
		err = h.gauquelin(c)
	default:
		return nil, errors.Wrapf(ErrHouseSystemUndefined, "code %q", rune(sys))
	}
	if err != nil {
		return nil, err
	}

	if sys != Gauquelin {
		c.Cusp = make([]unit.Angle, 13)
		for i := 1; i <= 12; i++ {
			c.Cusp[i] = unit.AngleFromDeg(h.cusp[i])
		}
	}
	h.angles(c)
	return c, nil
}

// chart carries the per-computation state, all in degrees.
type chart struct {
	armc, φ  float64
	sε, cε   float64
	εdeg     float64
	mc, asc  float64
	cusp     [13]float64
}

const degRad = math.Pi / 180

// polar reports whether the latitude is beyond the circle where the
// ecliptic can fail to rise.
func (h *chart) polar() bool {
	return math.Abs(h.φ) >= 90-h.εdeg
}

// raToEcl returns the ecliptic longitude of the ecliptic point with
// right ascension ra (projection along the hour circle).
func (h *chart) raToEcl(ra float64) float64 {
	s, c := math.Sincos(ra * degRad)
	return base.PMod(math.Atan2(s, c*h.cε)/degRad, 360)
}

// eclToRA returns the right ascension of the ecliptic point at
// longitude λ.
func (h *chart) eclToRA(λ float64) float64 {
	s, c := math.Sincos(λ * degRad)
	return base.PMod(math.Atan2(s*h.cε, c)/degRad, 360)
}

// asc1 intersects the ecliptic with the house circle crossing the
// equator at right ascension x under pole elevation p.  The ascendant
// itself is asc1(armc+90, φ).
func (h *chart) asc1(x, p float64) float64 {
	sx, cx := math.Sincos((x - 90) * degRad)
	λ := math.Atan2(-cx, sx*h.cε+math.Tan(p*degRad)*h.sε)
	return base.PMod(λ/degRad, 360)
}

// fitEast resolves the 180° ambiguity of the ascendant formula: the
// ascendant lies in the half circle following the MC.
func (h *chart) fitEast(a float64) float64 {
	if d := base.PMod(a-h.mc, 360); d == 0 || d > 180 {
		return base.PMod(a+180, 360)
	}
	return a
}

// fitArc forces cusp c into the forward arc from lo spanning width
// degrees, resolving the two-intersection ambiguity of house circles.
func fitArc(c, lo, width float64) float64 {
	if base.PMod(c-lo, 360) > width {
		return base.PMod(c+180, 360)
	}
	return c
}

// fill completes cusps 4..9 from their opposites and stores the
// primary six.
func (h *chart) fill(c11, c12, c2, c3 float64) {
	h.cusp[1] = h.asc
	h.cusp[10] = h.mc
	h.cusp[11] = c11
	h.cusp[12] = c12
	h.cusp[2] = c2
	h.cusp[3] = c3
	for i := 4; i <= 9; i++ {
		h.cusp[i] = base.PMod(h.cusp[(i+5)%12+1]+180, 360)
	}
}

// equalFrom lays twelve 30° houses from a first-cusp longitude.
func (h *chart) equalFrom(c1 float64) {
	for i := 1; i <= 12; i++ {
		h.cusp[i] = base.PMod(c1+float64(i-1)*30, 360)
	}
	h.cusp[1] = base.PMod(c1, 360)
}

// porphyry trisects the ecliptic arcs of the four quadrants.
func (h *chart) porphyry() {
	d := base.PMod(h.asc-h.mc, 360) // MC → ASC
	e := 180 - d                    // ASC → IC
	h.fill(
		base.PMod(h.mc+d/3, 360),
		base.PMod(h.mc+2*d/3, 360),
		base.PMod(h.asc+e/3, 360),
		base.PMod(h.asc+2*e/3, 360),
	)
}

// declOnEcl returns the declination of the ecliptic point with right
// ascension ra: tan δ = tan ε · sin α.
func (h *chart) declOnEcl(ra float64) float64 {
	return math.Atan(h.sε / h.cε * math.Sin(ra*degRad))
}

// placidus iterates the semi-arc condition for the four intermediate
// cusps.
func (h *chart) placidus() {
	tφ := math.Tan(h.φ * degRad)
	iterate := func(offset, f float64, diurnal bool) float64 {
		ra := h.armc + offset
		for i := 0; i < 20; i++ {
			δ := h.declOnEcl(ra)
			ad := math.Asin(tφ*math.Tan(δ)) / degRad
			var next float64
			if diurnal {
				next = h.armc + (90+ad)*f
			} else {
				next = h.armc + 180 - (90-ad)*f
			}
			if math.Abs(base.PMod(next-ra+180, 360)-180) < 1e-9 {
				ra = next
				break
			}
			ra = next
		}
		return h.raToEcl(ra)
	}
	h.fill(
		iterate(30, 1./3, true),
		iterate(60, 2./3, true),
		iterate(120, 2./3, false),
		iterate(150, 1./3, false),
	)
}

// ascAt returns the ascendant for a shifted sidereal time, resolved
// east of that time's own meridian.
func (h *chart) ascAt(armc float64) float64 {
	a := h.asc1(armc+90, h.φ)
	mc := h.raToEcl(armc)
	if d := base.PMod(a-mc, 360); d == 0 || d > 180 {
		return base.PMod(a+180, 360)
	}
	return a
}

// koch divides the diurnal semi-arc of the MC degree: each cusp is the
// ascendant of a sidereal time shifted by a third of that arc.
func (h *chart) koch() {
	δ := h.declOnEcl(h.armc)
	ad := math.Asin(math.Tan(h.φ*degRad)*math.Tan(δ)) / degRad
	dsa := 90 + ad
	h.fill(
		h.ascAt(h.armc-2*dsa/3),
		h.ascAt(h.armc-dsa/3),
		h.ascAt(h.armc+dsa/3),
		h.ascAt(h.armc+2*dsa/3),
	)
}

// topocentric applies the Polich-Page pole scheme: thirds of the
// latitude tangent.
func (h *chart) topocentric() {
	tφ := math.Tan(h.φ * degRad)
	p1 := math.Atan(tφ/3) / degRad
	p2 := math.Atan(2*tφ/3) / degRad
	d := base.PMod(h.asc-h.mc, 360)
	h.fill(
		fitArc(h.asc1(h.armc+30, p1), h.mc, d),
		fitArc(h.asc1(h.armc+60, p2), h.mc, d),
		fitArc(h.asc1(h.armc+120, p2), h.asc, 180-d),
		fitArc(h.asc1(h.armc+150, p1), h.asc, 180-d),
	)
}

// alcabitius divides the diurnal and nocturnal semi-arcs of the
// ascendant degree along hour circles.
func (h *chart) alcabitius() {
	δ := math.Asin(h.sε*math.Sin(h.asc*degRad)) / degRad
	ad := math.Asin(math.Tan(h.φ*degRad)*math.Tan(δ*degRad)) / degRad
	dsa := 90 + ad
	nsa := 90 - ad
	h.fill(
		h.raToEcl(h.armc+dsa/3),
		h.raToEcl(h.armc+2*dsa/3),
		h.raToEcl(h.armc+180-2*nsa/3),
		h.raToEcl(h.armc+180-nsa/3),
	)
}

// regiomontanus trisects the celestial equator from the meridian; the
// house poles follow tan p = tan φ · sin D.
func (h *chart) regiomontanus() {
	tφ := math.Tan(h.φ * degRad)
	p30 := math.Atan(tφ*math.Sin(30*degRad)) / degRad
	p60 := math.Atan(tφ*math.Sin(60*degRad)) / degRad
	d := base.PMod(h.asc-h.mc, 360)
	h.fill(
		fitArc(h.asc1(h.armc+30, p30), h.mc, d),
		fitArc(h.asc1(h.armc+60, p60), h.mc, d),
		fitArc(h.asc1(h.armc+120, p60), h.asc, 180-d),
		fitArc(h.asc1(h.armc+150, p30), h.asc, 180-d),
	)
}

// campanus trisects the prime vertical; poles follow
// sin p = sin φ · sin D, equator crossings tan H = tan D · cos φ.
func (h *chart) campanus() {
	sφ, cφ := math.Sincos(h.φ * degRad)
	pole := func(D float64) float64 {
		return math.Asin(sφ*math.Sin(D*degRad)) / degRad
	}
	cross := func(D float64) float64 {
		s, c := math.Sincos(D * degRad)
		return base.PMod(math.Atan2(s*cφ, c)/degRad, 360)
	}
	d := base.PMod(h.asc-h.mc, 360)
	h.fill(
		fitArc(h.asc1(h.armc+cross(30), pole(30)), h.mc, d),
		fitArc(h.asc1(h.armc+cross(60), pole(60)), h.mc, d),
		fitArc(h.asc1(h.armc+180-cross(60), pole(60)), h.asc, 180-d),
		fitArc(h.asc1(h.armc+180-cross(30), pole(30)), h.asc, 180-d),
	)
}

// morinus projects equal equator divisions onto the ecliptic by the
// simple obliquity rotation, ignoring latitude.
func (h *chart) morinus() {
	for i := 1; i <= 12; i++ {
		ra := h.armc + 90 + 30*float64(i-1)
		s, c := math.Sincos(ra * degRad)
		h.cusp[i] = base.PMod(math.Atan2(s*h.cε, c)/degRad, 360)
	}
}

// meridian maps equal equator divisions along hour circles; latitude
// plays no part.
func (h *chart) meridian() {
	for i := 1; i <= 12; i++ {
		h.cusp[i] = h.raToEcl(h.armc + 90 + 30*float64(i-1))
	}
}

// azimuthal divides the horizon into equal azimuth arcs; each cusp is
// the ecliptic intersection of a vertical circle.
func (h *chart) azimuthal() {
	d := base.PMod(h.asc-h.mc, 360)
	c11 := fitArc(h.vertical(150), h.mc, d)
	c12 := fitArc(h.vertical(120), h.mc, d)
	c2 := fitArc(h.vertical(60), h.asc, 180-d)
	c3 := fitArc(h.vertical(30), h.asc, 180-d)
	h.fill(c11, c12, c2, c3)
	// the first cusp is the east-vertical intersection, not the
	// ascendant; exactly at the equator that circle is the celestial
	// equator and the cusp is an equinox point
	h.cusp[1] = fitArc(h.vertical(90), h.mc, 180)
	h.cusp[7] = base.PMod(h.cusp[1]+180, 360)
}

// vertical returns the ecliptic intersection of the vertical circle at
// azimuth A (north = 0, east = 90).
func (h *chart) vertical(A float64) float64 {
	sφ, cφ := math.Sincos(h.φ * degRad)
	sA, cA := math.Sincos(A * degRad)
	// pole of the circle: the horizon point at azimuth A−90
	δp := math.Asin(cφ * sA)
	Hp := math.Atan2(cA, -sA*sφ) / degRad
	αp := h.armc - Hp
	s, c := math.Sincos(αp * degRad)
	λ := math.Atan2(-c, s*h.cε+math.Tan(δp)*h.sε)
	return base.PMod(λ/degRad, 360)
}

// gauquelin lays 36 sectors by ninefold quadrant division, sector 1 at
// the ascendant, proceeding in the direction of diurnal motion.
func (h *chart) gauquelin(c *Cusps) error {
	d := base.PMod(h.asc-h.mc, 360)
	e := 180 - d
	c.Cusp = make([]unit.Angle, 37)
	set := func(i int, v float64) {
		c.Cusp[i] = unit.AngleFromDeg(base.PMod(v, 360))
	}
	for j := 0; j < 9; j++ {
		set(1+j, h.asc-float64(j)*d/9)     // ASC → MC
		set(10+j, h.mc-float64(j)*e/9)     // MC → DSC
		set(19+j, h.asc+180-float64(j)*d/9) // DSC → IC
		set(28+j, h.mc+180-float64(j)*e/9)  // IC → ASC
	}
	return nil
}

// angles fills the angle set.
func (h *chart) angles(c *Cusps) {
	c.ARMC = unit.AngleFromDeg(h.armc).Mod1()
	c.MC = unit.AngleFromDeg(h.mc)
	c.Asc = unit.AngleFromDeg(h.asc)
	c.EquatorialAsc = unit.AngleFromDeg(
		h.fitEast(h.asc1(h.armc+90, 0)))
	c.CoAscKoch = unit.AngleFromDeg(h.asc1(h.armc-90, 90-h.φ))
	c.CoAscMunkasey = unit.AngleFromDeg(h.asc1(h.armc+90, -h.φ))
	c.PolarAsc = unit.AngleFromDeg(h.asc1(h.armc-90, h.φ))
	c.Vertex = unit.AngleFromDeg(h.vertexDeg())
}

// vertexDeg intersects the ecliptic with the prime vertical and picks
// the western branch.
func (h *chart) vertexDeg() float64 {
	v := h.asc1(h.armc-90, 90-math.Abs(h.φ))
	if h.φ < 0 {
		v = base.PMod(v+180, 360)
	}
	// the vertex sets in the west: its hour angle must be positive
	ra := h.eclToRA(v)
	if hh := base.PMod(h.armc-ra+180, 360) - 180; hh < 0 {
		v = base.PMod(v+180, 360)
	}
	return v
}

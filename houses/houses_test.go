// Copyright 2023 Astrodyne
// License: MIT

package houses_test

import (
	"math"
	"testing"

	"github.com/astrodyne/sweph/base"
	"github.com/astrodyne/sweph/houses"
	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deg(d float64) unit.Angle { return unit.AngleFromDeg(d) }

// arc returns the forward arc from a to b in degrees.
func arc(a, b unit.Angle) float64 {
	return base.PMod(b.Deg()-a.Deg(), 360)
}

var quadrantSystems = []houses.System{
	houses.Placidus, houses.Koch, houses.Porphyry, houses.Regiomontanus,
	houses.Campanus, houses.Alcabitius, houses.Topocentric,
}

var allTwelve = append(append([]houses.System{}, quadrantSystems...),
	houses.Morinus, houses.Meridian, houses.Azimuthal,
	houses.Equal, houses.EqualMC, houses.Vehlow, houses.WholeSign)

func TestEqualSpacing(t *testing.T) {
	// equal houses at J2000 over Greenwich
	c, err := houses.Calculate(base.J2000, houses.Location{}, houses.Equal)
	require.NoError(t, err)
	require.Len(t, c.Cusp, 13)
	for i := 1; i <= 12; i++ {
		next := c.Cusp[i%12+1]
		assert.InDelta(t, 30, arc(c.Cusp[i], next), .01, "cusp %d", i)
	}
	assert.InDelta(t, c.Asc.Deg(), c.Cusp[1].Deg(), 1e-9)
}

func TestWholeSign(t *testing.T) {
	c, err := houses.Calculate(base.J2000,
		houses.Location{Lat: deg(51.5)}, houses.WholeSign)
	require.NoError(t, err)
	for i := 1; i <= 12; i++ {
		m := math.Mod(c.Cusp[i].Deg(), 30)
		if m > 15 {
			m -= 30
		}
		assert.InDelta(t, 0, m, .01, "cusp %d", i)
	}
	// the ascendant falls inside the first house
	assert.Less(t, arc(c.Cusp[1], c.Asc), 30.)
}

func TestVehlow(t *testing.T) {
	c, err := houses.Calculate(base.J2000,
		houses.Location{Lat: deg(48.2)}, houses.Vehlow)
	require.NoError(t, err)
	// the ascendant sits 15° into the first house
	assert.InDelta(t, 15, arc(c.Cusp[1], c.Asc), 1e-6)
}

func TestEqualMC(t *testing.T) {
	c, err := houses.Calculate(base.J2000,
		houses.Location{Lat: deg(40)}, houses.EqualMC)
	require.NoError(t, err)
	assert.InDelta(t, c.MC.Deg(), c.Cusp[10].Deg(), 1e-9)
}

func TestAnglesDerived(t *testing.T) {
	c, err := houses.Calculate(2448976.2, houses.Location{
		Lat: deg(38.92), Lon: deg(-77.07)}, houses.Placidus)
	require.NoError(t, err)
	assert.Equal(t, base.PMod(c.Asc.Deg()+180, 360), c.Descendant().Deg())
	assert.Equal(t, base.PMod(c.MC.Deg()+180, 360), c.IC().Deg())
	// the ascendant lies in the eastern half circle after the MC
	d := arc(c.MC, c.Asc)
	assert.Greater(t, d, 0.)
	assert.Less(t, d, 180.)
}

// At the equator every quadrant system degenerates to equal divisions
// of the equator projected along hour circles, identical to the
// Meridian system.
func TestEquatorDegeneracy(t *testing.T) {
	ref, err := houses.Calculate(base.J2000, houses.Location{}, houses.Meridian)
	require.NoError(t, err)
	for _, sys := range quadrantSystems {
		c, err := houses.Calculate(base.J2000, houses.Location{}, sys)
		require.NoError(t, err, "%v", sys)
		for i := 1; i <= 12; i++ {
			d := math.Abs(base.PMod(c.Cusp[i].Deg()-ref.Cusp[i].Deg()+180, 360) - 180)
			assert.InDelta(t, 0, d, 1e-6, "%v cusp %d", sys, i)
		}
	}
}

// Cusps of every system must proceed in zodiacal order with each house
// spanning less than a half circle.
func TestCuspOrdering(t *testing.T) {
	for _, sys := range allTwelve {
		for _, lat := range []float64{-55.9, -23.5, 0, 35.68, 51.48, 60.17} {
			if sys == houses.Azimuthal && lat == 0 {
				// at the equator the east vertical degenerates into
				// the celestial equator; the first cusp is an equinox
				continue
			}
			c, err := houses.Calculate(2456774.20375,
				houses.Location{Lat: deg(lat), Lon: deg(13.4)}, sys)
			require.NoError(t, err, "%v lat %g", sys, lat)
			for i := 1; i <= 12; i++ {
				d := arc(c.Cusp[i], c.Cusp[i%12+1])
				assert.Greater(t, d, 0., "%v lat %g cusp %d", sys, lat, i)
				assert.Less(t, d, 180., "%v lat %g cusp %d", sys, lat, i)
			}
		}
	}
}

func TestQuadrantAngles(t *testing.T) {
	for _, sys := range quadrantSystems {
		c, err := houses.Calculate(2442275.479167,
			houses.Location{Lat: deg(52.22), Lon: deg(21.01)}, sys)
		require.NoError(t, err)
		assert.InDelta(t, c.Asc.Deg(), c.Cusp[1].Deg(), 1e-9, "%v", sys)
		assert.InDelta(t, c.MC.Deg(), c.Cusp[10].Deg(), 1e-9, "%v", sys)
	}
}

func TestPolarFallback(t *testing.T) {
	loc := houses.Location{Lat: deg(71.2), Lon: deg(25.78)}
	porphyry, err := houses.Calculate(base.J2000, loc, houses.Porphyry)
	require.NoError(t, err)
	for _, sys := range []houses.System{houses.Placidus, houses.Koch,
		houses.Topocentric} {
		c, err := houses.Calculate(base.J2000, loc, sys)
		require.NoError(t, err, "%v", sys)
		for i := 1; i <= 12; i++ {
			assert.InDelta(t, porphyry.Cusp[i].Deg(), c.Cusp[i].Deg(),
				1e-9, "%v cusp %d", sys, i)
		}
	}
	_, err = houses.Calculate(base.J2000, loc, houses.Alcabitius)
	assert.ErrorIs(t, err, houses.ErrHouseSystemUndefined)
}

func TestUnknownSystem(t *testing.T) {
	_, err := houses.Calculate(base.J2000, houses.Location{}, houses.System('Z'))
	assert.ErrorIs(t, err, houses.ErrHouseSystemUndefined)
}

func TestGauquelin(t *testing.T) {
	c, err := houses.Calculate(base.J2000,
		houses.Location{Lat: deg(48.87), Lon: deg(2.33)}, houses.Gauquelin)
	require.NoError(t, err)
	require.Len(t, c.Cusp, 37)
	assert.InDelta(t, c.Asc.Deg(), c.Cusp[1].Deg(), 1e-9)
	assert.InDelta(t, c.MC.Deg(), c.Cusp[10].Deg(), 1e-9)
	assert.InDelta(t, c.Descendant().Deg(), c.Cusp[19].Deg(), 1e-9)
	assert.InDelta(t, c.IC().Deg(), c.Cusp[28].Deg(), 1e-9)
	// sectors proceed in the direction of diurnal motion: backward
	// through the zodiac
	for i := 1; i <= 36; i++ {
		d := arc(c.Cusp[i%36+1], c.Cusp[i])
		assert.Greater(t, d, 0., "sector %d", i)
		assert.Less(t, d, 180., "sector %d", i)
	}
}

func TestVertexWestern(t *testing.T) {
	c, err := houses.Calculate(2451544.5,
		houses.Location{Lat: deg(47.37), Lon: deg(8.55)}, houses.Placidus)
	require.NoError(t, err)
	// the vertex belongs to the western half: between descendant-side
	// quadrants, i.e. in the arc IC → MC going through the descendant
	d := arc(c.IC(), c.Vertex)
	assert.Less(t, d, 180.)
}

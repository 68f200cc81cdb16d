// Copyright 2023 Astrodyne
// License: MIT

// Sweph computes positions of solar-system bodies, house cusps and
// sidereal-zodiac quantities over a ~30,000-year window.
//
// The library is organized as small packages, one per concern:
//
//	base       fundamental epochs and arithmetic helpers
//	julian     proleptic Gregorian calendar ↔ Julian day
//	deltat     ΔT and the UT/UTC/TT/TDB/TAI time scales
//	chebyshev  Clenshaw evaluation of Chebyshev series
//	se1        the segmented SE1 binary ephemeris format
//	jplde      the JPL DE binary ephemeris format
//	ephem      the position engine with its analytic fallback
//	solar      reduced VSOP87 Sun
//	moonpos    reduced ELP2000 Moon and the lunar nodes
//	sidereal   sidereal time at Greenwich and locally
//	coord      coordinate-frame transformations
//	houses     astrological house systems
//	ayanamsa   tropical ↔ sidereal zodiac
//	ephepath   ephemeris file discovery
//
// A typical position request converts civil time to TT with deltat,
// asks ephem for a Position, and projects it with coord.  The command
// cmd/swephcalc shows the full pipeline.
package sweph

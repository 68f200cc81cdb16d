// Copyright 2023 Astrodyne
// License: MIT

// Swephcalc prints body positions and house cusps for an instant.
//
// Usage:
//
//	swephcalc -date 2000-01-01T12:00 -body sun
//	swephcalc -jd 2451545 -body moon -sidereal
//	swephcalc -date 1974-08-15T23:30 -houses P -lat 52.22 -lon 21.01
//
// Ephemeris files are located through the SE_EPHE_PATH search path;
// without files the analytic fallback serves the Sun and Moon.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/astrodyne/sweph/ayanamsa"
	"github.com/astrodyne/sweph/deltat"
	"github.com/astrodyne/sweph/ephem"
	"github.com/astrodyne/sweph/ephepath"
	"github.com/astrodyne/sweph/houses"
	"github.com/astrodyne/sweph/jplde"
	"github.com/astrodyne/sweph/julian"
	"github.com/rs/zerolog"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

var bodies = map[string]ephem.Body{
	"sun": ephem.Sun, "moon": ephem.Moon, "mercury": ephem.Mercury,
	"venus": ephem.Venus, "mars": ephem.Mars, "jupiter": ephem.Jupiter,
	"saturn": ephem.Saturn, "uranus": ephem.Uranus,
	"neptune": ephem.Neptune, "pluto": ephem.Pluto,
	"meannode": ephem.MeanNode, "truenode": ephem.TrueNode,
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	var (
		dateStr  = flag.String("date", "", "UT date, 2006-01-02T15:04 form")
		jdFlag   = flag.Float64("jd", 0, "julian day (UT), overrides -date")
		bodyStr  = flag.String("body", "", "body to compute")
		houseSys = flag.String("houses", "", "house system letter code")
		lat      = flag.Float64("lat", 0, "geographic latitude, degrees north")
		lon      = flag.Float64("lon", 0, "geographic longitude, degrees east")
		sid      = flag.Bool("sidereal", false, "report Lahiri sidereal longitude")
	)
	flag.Parse()

	jdUT := *jdFlag
	if jdUT == 0 {
		if *dateStr == "" {
			flag.Usage()
			os.Exit(2)
		}
		t, err := time.Parse("2006-01-02T15:04", *dateStr)
		if err != nil {
			log.Fatal().Err(err).Str("date", *dateStr).Msg("unparseable date")
		}
		h := float64(t.Hour()) + float64(t.Minute())/60
		jdUT, err = julian.DateToJD(t.Year(), int(t.Month()), t.Day(), h)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid date")
		}
	}

	if *houseSys != "" {
		c, err := houses.Calculate(jdUT, houses.Location{
			Lat: unit.AngleFromDeg(*lat),
			Lon: unit.AngleFromDeg(*lon),
		}, houses.System((*houseSys)[0]))
		if err != nil {
			log.Fatal().Err(err).Msg("house calculation failed")
		}
		fmt.Printf("%-12s %v\n", "ASC", sexa.FmtAngle(c.Asc))
		fmt.Printf("%-12s %v\n", "MC", sexa.FmtAngle(c.MC))
		fmt.Printf("%-12s %v\n", "Vertex", sexa.FmtAngle(c.Vertex))
		for i := 1; i < len(c.Cusp); i++ {
			fmt.Printf("house %-6d %v\n", i, sexa.FmtAngle(c.Cusp[i]))
		}
		return
	}

	b, ok := bodies[strings.ToLower(*bodyStr)]
	if !ok {
		log.Fatal().Str("body", *bodyStr).Msg("unknown body")
	}
	jdTT, err := deltat.UTToTT(jdUT)
	if err != nil {
		log.Fatal().Err(err).Float64("jd", jdUT).Msg("time conversion failed")
	}

	cfg := ephepath.FromEnvironment()
	e := &ephem.Engine{SE1: ephem.NewSE1Source(cfg)}
	if path, err := cfg.Find(jplde.FileName(405)); err == nil {
		if r, err := jplde.Open(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("ignoring JPL file")
		} else {
			e.JPL = r
			defer r.Close()
		}
	}

	p, err := e.Calculate(b, jdTT, true)
	if err != nil {
		log.Fatal().Err(err).Stringer("body", b).Msg("calculation failed")
	}
	ecl := p.Ecliptic()
	λ := ecl.Lon
	if *sid {
		λ = ayanamsa.TropicalToSidereal(λ, jdTT, ayanamsa.Lahiri)
	}
	fmt.Printf("%-10v λ %v  β %v  r %.9f AU  dλ/dt %8.5f°/d\n",
		b, sexa.FmtAngle(λ), sexa.FmtAngle(ecl.Lat), ecl.R,
		p.LongitudeSpeed().Deg())
	if *sid {
		n := ayanamsa.Nakshatra(λ)
		fmt.Printf("%-10s %s pada %d\n", "nakshatra",
			ayanamsa.NakshatraName(n), ayanamsa.NakshatraPada(λ))
	}
}

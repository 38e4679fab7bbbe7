// Copyright (C) 2026 the kpfsched authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package plot renders the diagnostic plots: sky maps, magnitude
// histograms and airmass curves.
package plot

import (
	"math"
	"time"
)

// A Site is an observer location. Longitude is east-positive degrees.
type Site struct {
	Name   string
	LatDeg float64
	LonDeg float64
}

// Keck Observatory, Maunakea.
var Keck=Site{Name: "Keck", LatDeg: 19.8283, LonDeg: -155.4783}

const degPerHour=15

// Julian date of a moment.
func julianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/86400000+2440587.5
}

// Greenwich mean sidereal time in hours, from the USNO linear
// approximation; good to a fraction of a second over decades, far below
// the resolution of an airmass plot.
func gmstHours(t time.Time) float64 {
	d:=julianDay(t)-2451545.0
	gmst:=math.Mod(18.697374558+24.06570982441908*d, 24)
	if gmst<0 { gmst+=24 }
	return gmst
}

// Local sidereal time in hours at the site.
func (s *Site) lstHours(t time.Time) float64 {
	lst:=math.Mod(gmstHours(t)+s.LonDeg/degPerHour, 24)
	if lst<0 { lst+=24 }
	return lst
}

// Altitude of a J2000 position above the site horizon, in degrees.
// Precession and refraction are ignored, as in a planning plot.
func (s *Site) AltitudeDeg(raDeg, decDeg float64, t time.Time) float64 {
	haRad:=(s.lstHours(t)*degPerHour-raDeg)*math.Pi/180
	latRad:=s.LatDeg*math.Pi/180
	decRad:=decDeg*math.Pi/180
	sinAlt:=math.Sin(latRad)*math.Sin(decRad)+math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
	return math.Asin(sinAlt)*180/math.Pi
}

// Relative airmass for an altitude in degrees, Pickering (2002).
// Returns +Inf at and below the horizon.
func Airmass(altDeg float64) float64 {
	if altDeg<=0 { return math.Inf(1) }
	h:=altDeg
	return 1/math.Sin((h+244/(165+47*math.Pow(h, 1.1)))*math.Pi/180)
}

// Airmass of a target at a moment.
func (s *Site) Airmass(raDeg, decDeg float64, t time.Time) float64 {
	return Airmass(s.AltitudeDeg(raDeg, decDeg, t))
}

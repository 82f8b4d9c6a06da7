/*
Copyright © 2020 the cryoconite authors.
This file is part of cryoconite.

cryoconite is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

cryoconite is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with cryoconite.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package solar calculates the position of the sun in the sky, so the solar
// zenith angle at a field site can be found from the time of a measurement.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// j2000 is the Julian day of the J2000.0 epoch.
const j2000 = 2451545.0

// Position is the apparent position of the sun, in degrees.
type Position struct {
	// Zenith is the angle between the sun and the local vertical.
	Zenith float64

	// Elevation is 90 - Zenith.
	Elevation float64

	// Azimuth is measured clockwise from north.
	Azimuth float64

	// Declination of the sun.
	Declination float64

	// EquationOfTime is the difference between apparent and mean solar
	// time [minutes].
	EquationOfTime float64
}

// Daylight reports whether the sun is above the horizon.
func (p Position) Daylight() bool { return p.Elevation > 0 }

// At returns the position of the sun at time t as seen from latitude lat and
// longitude lon [degrees, east positive].
func At(t time.Time, lat, lon float64) Position {
	t = t.UTC()
	T := (julian.TimeToJD(t) - j2000) / 36525. // Julian centuries.

	// Geometric mean longitude and anomaly of the sun and the eccentricity
	// of the earth's orbit.
	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)

	center := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	omega := 125.04 - 1934.136*T
	lambda := L0 + center - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	obliquity := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	decl := math.Asin(math.Sin(degToRad(obliquity)) * math.Sin(degToRad(lambda)))

	y := math.Pow(math.Tan(degToRad(obliquity)/2), 2)
	eot := 4 * radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M)))

	minutes := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
	hourAngle := (minutes+4*lon+eot)/4 - 180

	φ := degToRad(lat)
	cosZen := math.Sin(φ)*math.Sin(decl) + math.Cos(φ)*math.Cos(decl)*math.Cos(degToRad(hourAngle))
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zen := math.Acos(cosZen)

	p := Position{
		Zenith:         radToDeg(zen),
		Elevation:      90 - radToDeg(zen),
		Declination:    radToDeg(decl),
		EquationOfTime: eot,
	}
	if den := math.Cos(φ) * math.Sin(zen); den != 0 {
		cosAz := (math.Sin(decl) - math.Sin(φ)*cosZen) / den
		p.Azimuth = radToDeg(math.Acos(math.Max(-1, math.Min(1, cosAz))))
		if fixAngle(hourAngle+180) > 180 {
			p.Azimuth = 360 - p.Azimuth
		}
	}
	return p
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

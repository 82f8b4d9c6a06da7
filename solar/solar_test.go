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

package solar

import (
	"math"
	"testing"
	"time"
)

func TestAt(t *testing.T) {
	tests := []struct {
		name     string
		t        time.Time
		lat, lon float64
		zenith   float64
		tol      float64
	}{
		{
			name:   "equinox equator",
			t:      time.Date(2024, time.March, 20, 12, 7, 0, 0, time.UTC),
			zenith: 0,
			tol:    2,
		},
		{
			name:   "greenland summer noon",
			t:      time.Date(2024, time.July, 15, 15, 29, 0, 0, time.UTC),
			lat:    67.0,
			lon:    -50.7,
			zenith: 67.0 - 21.6,
			tol:    1,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := At(test.t, test.lat, test.lon)
			if math.Abs(p.Zenith-test.zenith) > test.tol {
				t.Errorf("zenith: have %g, want %g±%g", p.Zenith, test.zenith, test.tol)
			}
			if math.Abs(p.Zenith+p.Elevation-90) > 1.e-10 {
				t.Errorf("zenith %g and elevation %g should sum to 90", p.Zenith, p.Elevation)
			}
			if !p.Daylight() {
				t.Error("sun should be up")
			}
		})
	}
}

func TestPolarNight(t *testing.T) {
	p := At(time.Date(2023, time.December, 21, 12, 0, 0, 0, time.UTC), 80, 0)
	if p.Daylight() {
		t.Errorf("sun should be below the horizon but elevation is %g", p.Elevation)
	}
	if math.Abs(p.Declination+23.44) > 0.1 {
		t.Errorf("declination: have %g, want -23.44", p.Declination)
	}
}

func TestAzimuth(t *testing.T) {
	day := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	morning := At(day.Add(8*time.Hour), 45, 0)
	afternoon := At(day.Add(16*time.Hour), 45, 0)
	if !(morning.Azimuth > 0 && morning.Azimuth < 180) {
		t.Errorf("morning sun should be in the east but azimuth is %g", morning.Azimuth)
	}
	if !(afternoon.Azimuth > 180 && afternoon.Azimuth < 360) {
		t.Errorf("afternoon sun should be in the west but azimuth is %g", afternoon.Azimuth)
	}
}

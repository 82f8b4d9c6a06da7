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

package cryoconite

import "math"

// MaxSolarZenith is the largest solar zenith angle [degrees] for which
// the beam geometry is evaluated.
const MaxSolarZenith = 85.

// Hole describes a cylindrical cryoconite hole. All lengths are in cm.
type Hole struct {
	// Depth is the distance from the ice surface to the hole floor.
	Depth float64
	// Width is the diameter of the hole.
	Width float64
	// WaterDepth is the depth of the water column above the floor.
	WaterDepth float64
	// Point is the horizontal distance from the sunward wall to the
	// location on the floor being evaluated.
	Point float64
}

// Validate checks the hole geometry and the solar zenith angle [degrees].
func (h Hole) Validate(solarZenith float64) error {
	switch {
	case !(h.Depth > 0):
		return &ValidationError{Field: "Depth", Value: h.Depth, Reason: "hole depth must be >0"}
	case !(h.Width > 0):
		return &ValidationError{Field: "Width", Value: h.Width, Reason: "hole width must be >0"}
	case !(h.WaterDepth >= 0):
		return &ValidationError{Field: "WaterDepth", Value: h.WaterDepth, Reason: "water depth must be >=0"}
	case h.WaterDepth > h.Depth:
		return &ValidationError{Field: "WaterDepth", Value: h.WaterDepth,
			Reason: "water depth must not exceed the hole depth"}
	case !(h.Point >= 0) || h.Point > h.Width:
		return &ValidationError{Field: "Point", Value: h.Point,
			Reason: "sample point must lie on the hole floor (0 <= Point <= Width)"}
	case !(solarZenith > 0) || solarZenith > MaxSolarZenith:
		return &ValidationError{Field: "SolarZenith", Value: solarZenith,
			Reason: "solar zenith must be in (0, 85] degrees"}
	}
	return nil
}

// Area returns the area of the hole aperture [m²].
func (h Hole) Area() float64 {
	r := h.Width / 2 * cmToM
	return math.Pi * r * r
}

// CriticalAngle returns the minimum beam elevation [degrees above the
// horizontal] at which the point on the floor is lit directly by a beam
// that has not reflected off of the hole walls. The angle increases as the
// point moves away from the sunward wall.
func CriticalAngle(depth, width, point float64) float64 {
	return radToDeg(math.Atan2(depth, width-point))
}

// directlyLit reports whether a beam with transmitted elevation tTheta
// reaches the floor point without reflection. A beam exactly at the
// critical angle grazes the aperture edge and is treated as reflected.
func directlyLit(tTheta, angCrit float64) bool { return tTheta > angCrit }

const cmToM = 0.01

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

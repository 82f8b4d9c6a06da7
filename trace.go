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

// BeamTrace describes the route taken by a beam that does not light the
// floor point directly, as it reflects between the hole walls on its way
// to the floor.
type BeamTrace struct {
	// AirReflections is the number of wall reflections above the water.
	AirReflections int

	// WaterReflections is the number of wall reflections below the water.
	WaterReflections int

	// SurfaceStrike is the horizontal distance [cm] from the sunward wall
	// to where the beam enters the water.
	SurfaceStrike float64

	// FirstRun is the horizontal distance [cm] the beam travels in the
	// water before it first reaches a wall.
	FirstRun float64

	// HitsWall is true when the beam strikes a wall before reaching the
	// water surface.
	HitsWall bool

	// Reversed is true when an odd number of reflections above the water
	// has turned the beam back toward the sunward wall.
	Reversed bool
}

// Reflections returns the total number of wall reflections.
func (b BeamTrace) Reflections() int { return b.AirReflections + b.WaterReflections }

// TraceReflections calculates how many times a beam reflects off of the
// hole walls before striking the floor, first in air and then in water.
// theta is the elevation of the incoming beam and tTheta is its elevation
// after refraction at the water surface, both in degrees.
func TraceReflections(h Hole, theta, tTheta float64) BeamTrace {
	hitsWall, strike, surfToWat := wallStrikeAboveWater(theta, h.Depth, h.WaterDepth, h.Width)
	nAir, residual := airReflections(theta, h.Width, surfToWat, hitsWall)
	strike, reversed := surfaceStrike(nAir, theta, h.Width, strike, residual)
	run := h.Width - strike
	if reversed {
		run = strike
	}
	return BeamTrace{
		AirReflections:   nAir,
		WaterReflections: waterReflections(tTheta, h.Width, h.WaterDepth, run),
		SurfaceStrike:    strike,
		FirstRun:         run,
		HitsWall:         hitsWall,
		Reversed:         reversed,
	}
}

// wallStrikeAboveWater checks whether a beam at elevation theta that
// enters at the sunward edge of the hole strikes the far wall before
// reaching the water. It returns the horizontal distance travelled before
// reaching the water level and the vertical distance from the ice surface
// to the water. A strike exactly at the wall counts as hitting the wall.
func wallStrikeAboveWater(theta, depth, waterDepth, width float64) (hitsWall bool, strike, surfToWat float64) {
	surfToWat = depth - waterDepth
	strike = surfToWat / math.Tan(degToRad(theta))
	return strike >= width, strike, surfToWat
}

// airReflections returns the number of reflections between the walls
// above the water and the vertical distance remaining between the last
// reflection and the water surface. Each crossing of the hole
// descends width·tan(theta).
func airReflections(theta, width, surfToWat float64, hitsWall bool) (n int, residual float64) {
	if !hitsWall {
		return 0, 0
	}
	step := width * math.Tan(degToRad(theta))
	n = int(math.Floor(surfToWat / step))
	return n, surfToWat - float64(n)*step
}

// surfaceStrike returns the horizontal distance from the sunward wall at
// which a beam that has reflected n times above the water enters the
// water, and whether the beam has been turned back toward the sunward wall.
func surfaceStrike(n int, theta, width, strike, residual float64) (float64, bool) {
	if n == 0 {
		return strike, false
	}
	adj := residual / math.Tan(degToRad(theta))
	if n%2 != 0 {
		return width - adj, true
	}
	return adj, false
}

// waterReflections counts the reflections between the walls below the
// water for a beam with transmitted elevation tTheta that travels run
// horizontally before its first wall contact. Each full crossing of the
// hole descends width/tan(90°-tTheta).
func waterReflections(tTheta, width, waterDepth, run float64) int {
	if !(waterDepth > 0) {
		return 0
	}
	tanT := math.Tan(degToRad(tTheta))
	if waterDepth/tanT <= run { // Reaches the floor before any wall.
		return 0
	}
	step := width / math.Tan(degToRad(90-tTheta))
	depth := tanT * run
	n := 0
	for depth < waterDepth {
		depth += step
		n++
	}
	return n
}

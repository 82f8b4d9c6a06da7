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

// PathLength returns the distance [cm] travelled through the water by a
// beam with transmitted elevation tTheta [degrees] on its way from the
// water surface to the floor. direct indicates that the beam lights the
// floor point without reflecting, and trace is the route of a reflected
// beam (it is ignored when direct is true).
//
// A reflected beam is followed from the surface strike to its first wall
// contact, across the hole once for each additional wall reflection, and
// then down to the floor. The total equals the length of a straight
// segment at the same angle spanning the water column, so the path length
// is continuous where the beam switches between direct and reflected
// arrival.
func PathLength(h Hole, tTheta float64, direct bool, trace BeamTrace) float64 {
	if !(h.WaterDepth > 0) {
		return 0
	}
	if direct || trace.WaterReflections == 0 {
		return straightSegment(h.WaterDepth, tTheta)
	}
	θ := degToRad(tTheta)
	tanT, cosT := math.Tan(θ), math.Cos(θ)

	first := trace.FirstRun / cosT
	// WaterReflections counts wall contacts, the first of which ends FirstRun.
	full := float64(trace.WaterReflections-1) * h.Width / cosT

	remaining := h.WaterDepth - tanT*trace.FirstRun -
		float64(trace.WaterReflections-1)*h.Width*tanT
	return first + full + straightSegment(math.Max(remaining, 0), tTheta)
}

// straightSegment is the length of a segment at elevation tTheta [degrees]
// that descends the vertical distance depth.
func straightSegment(depth, tTheta float64) float64 {
	return depth / math.Sin(degToRad(tTheta))
}

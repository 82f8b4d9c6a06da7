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

// Fresnel returns the unpolarized Fresnel reflectance at the boundary between
// a medium with complex refractive index n1 + ik1 and one with index
// n2 + ik2, for a beam arriving at angle theta [degrees].
// The transmitted angle is calculated assuming n1 = 1
// (http://www.oceanopticsbook.info/view/surfaces/the_level_sea_surface).
//
// At theta = 90 the degenerate ratio ((n1-1)² + k1²) / ((n2-1)² + k2²) is
// returned. A *DomainError is returned if sin(theta)/n2 > 1.
func Fresnel(n1, k1, n2, k2, theta float64) (float64, error) {
	if theta == 90 {
		return ((n1-1)*(n1-1) + k1*k1) / ((n2-1)*(n2-1) + k2*k2), nil
	}
	if theta == 0 { // Limit of the expression below at normal incidence.
		r := (n2 - 1) / (n2 + 1)
		return r * r, nil
	}
	θ := degToRad(theta)
	arg := math.Sin(θ) / n2
	if arg > 1 {
		return math.NaN(), &DomainError{Op: "fresnel", Band: -1, Arg: arg}
	}
	θ2 := math.Asin(arg)
	rs := math.Sin(θ-θ2) / math.Sin(θ+θ2)
	rp := math.Tan(θ-θ2) / math.Tan(θ+θ2)
	return 0.5 * (rs*rs + rp*rp), nil
}

// transmittedAngle applies Snell's law to a beam at angle theta [degrees]
// passing from a medium with real index n1 into one with index n2.
func transmittedAngle(theta, n1, n2 float64) (float64, error) {
	arg := n1 * math.Sin(degToRad(theta)) / n2
	if arg > 1 {
		return math.NaN(), &DomainError{Op: "snell", Band: -1, Arg: arg}
	}
	return radToDeg(math.Asin(arg)), nil
}

// TransmittedAngles returns the elevation [degrees above the horizontal] of
// a beam at elevation theta after it is refracted passing from a medium with
// real refractive indices nInc into a medium with indices nTrans, for each
// band. A *DomainError identifying the first offending band is returned if
// the beam cannot be refracted at that angle.
func TransmittedAngles(theta float64, nInc, nTrans []float64) ([]float64, error) {
	out := make([]float64, len(nInc))
	for i := range nInc {
		t, err := transmittedAngle(theta, nInc[i], nTrans[i])
		if err != nil {
			err.(*DomainError).Band = i
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// totalInternalReflectance is substituted for the reflectance at angles
// beyond the critical angle for total internal reflection.
const totalInternalReflectance = 0.9999999999

// DiffuseFresnel returns the reflectance of the water surface to diffuse
// upwelling light inside the water, calculated as the mean unpolarized
// Fresnel reflectance for incidence angles of 1° through 89°.
// Angles at which the beam is totally internally reflected contribute
// a reflectance of 0.9999999999.
func DiffuseFresnel(nWater, nAir float64) float64 {
	const first, last = 1, 89
	var sum float64
	for a := first; a <= last; a++ {
		sum += internalReflectance(float64(a), nWater, nAir)
	}
	return sum / float64(last-first+1)
}

// internalReflectance is the unpolarized Fresnel reflectance for light
// inside a medium with index n1 striking a boundary with a medium with
// index n2 at angle theta [degrees from the normal].
func internalReflectance(theta, n1, n2 float64) float64 {
	θ := degToRad(theta)
	sinT := n1 / n2 * math.Sin(θ)
	if sinT >= 1 {
		return totalInternalReflectance
	}
	cosI := math.Cos(θ)
	cosT := math.Sqrt(1 - sinT*sinT)
	rs := (n1*cosI - n2*cosT) / (n1*cosI + n2*cosT)
	rp := (n1*cosT - n2*cosI) / (n1*cosT + n2*cosI)
	r := 0.5 * (rs*rs + rp*rp)
	if r > 1 {
		return 0.99999
	}
	return r
}

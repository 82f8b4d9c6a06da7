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

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultMaxIterations is the internal reflection iteration limit used when
// none is specified.
const DefaultMaxIterations = 10000

// InternalReflector models light that bounces repeatedly between the
// cryoconite on the hole floor and the underside of the water surface.
// Light leaving the floor is treated as diffuse, so it crosses the whole
// water column on each pass.
type InternalReflector struct {
	// WaterDepth is the depth of the water column [cm].
	WaterDepth float64

	// Wavelengths is the wavelength grid [μm].
	Wavelengths Spectrum

	// KWater is the imaginary refractive index of water in each band.
	KWater []float64

	// SurfaceReflectance is the diffuse reflectance of the underside of the
	// water surface in each band (see DiffuseFresnel).
	SurfaceReflectance []float64

	// Albedo is the albedo of the cryoconite in each band.
	Albedo []float64

	// Tolerance is the broadband upwelling flux [W m⁻²] below which the
	// iteration stops. It must be greater than zero.
	Tolerance float64

	// MaxIterations limits the number of iterations. If it is zero,
	// DefaultMaxIterations is used.
	MaxIterations int
}

// InternalReflectionResult holds the outcome of the internal reflection
// iteration. Escaped + Loss equals the energy arriving at the floor.
type InternalReflectionResult struct {
	// Escaped is the arriving energy minus all accumulated losses.
	Escaped FluxVector

	// Loss is the total of all losses accumulated during the iteration.
	Loss FluxVector

	// FloorAbsorbed is the part of Loss absorbed by the cryoconite.
	FloorAbsorbed FluxVector

	// WaterAbsorbed is the part of Loss absorbed by the water column.
	WaterAbsorbed FluxVector

	// SurfaceTransmitted is the part of Loss transmitted upward through
	// the water surface.
	SurfaceTransmitted FluxVector

	// Iterations is the number of iterations performed.
	Iterations int

	// Converged is false if the iteration limit was reached before the
	// upwelling flux fell below the tolerance.
	Converged bool
}

// Solve iterates until the broadband upwelling flux falls to the tolerance,
// starting from the energy arriving at the floor in each band.
// If the iteration limit is reached first, the partial result is returned
// along with a *ConvergenceError.
func (r *InternalReflector) Solve(arriving FluxVector) (*InternalReflectionResult, error) {
	if !(r.Tolerance > 0) {
		return nil, &ValidationError{Field: "Tolerance", Value: r.Tolerance,
			Reason: "internal reflection tolerance must be >0"}
	}
	maxIter := r.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	n := len(arriving)

	// Fraction of the flux absorbed on one pass through the water column.
	absorbed := make([]float64, n)
	if r.WaterDepth > 0 {
		for i := range absorbed {
			absorbed[i] = math.Min(1, opticalDepth(r.KWater[i], r.Wavelengths[i], r.WaterDepth))
		}
	}

	res := &InternalReflectionResult{
		Loss:               NewFluxVector(n),
		FloorAbsorbed:      NewFluxVector(n),
		WaterAbsorbed:      NewFluxVector(n),
		SurfaceTransmitted: NewFluxVector(n),
	}
	up := arriving.Clone()
	for floats.Sum(up) > r.Tolerance {
		if res.Iterations >= maxIter {
			res.Escaped = escaped(arriving, res.Loss)
			return res, &ConvergenceError{Iterations: res.Iterations,
				Residual: floats.Sum(up), Tolerance: r.Tolerance}
		}
		for i, u := range up {
			lossUp := u * absorbed[i]
			boundary := (u - lossUp) * (1 - r.surfaceReflectance(i))
			down := u - lossUp - boundary
			lossDown := down * absorbed[i]
			floor := (down - lossDown) * (1 - r.Albedo[i])

			total := lossUp + boundary + lossDown + floor
			res.Loss[i] += total
			res.FloorAbsorbed[i] += floor
			res.WaterAbsorbed[i] += lossUp + lossDown
			res.SurfaceTransmitted[i] += boundary
			up[i] = math.Max(0, u-total)
		}
		res.Iterations++
	}
	res.Escaped = escaped(arriving, res.Loss)
	res.Converged = true
	return res, nil
}

// surfaceReflectance returns the reflectance of the water surface in band
// i. Without water there is no surface to reflect from.
func (r *InternalReflector) surfaceReflectance(i int) float64 {
	if !(r.WaterDepth > 0) {
		return 0
	}
	return r.SurfaceReflectance[i]
}

func escaped(arriving, loss FluxVector) FluxVector {
	e := arriving.Clone()
	floats.Sub(e, loss)
	for i, v := range e {
		e[i] = nonNegative(v)
	}
	return e
}

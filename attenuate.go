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

	"github.com/ctessum/unit"
)

const micronToM = 1.e-6

// AbsorptionCoefficient returns the Beer-Lambert absorption coefficient
// α = 4πk/λ [m⁻¹] of a medium with imaginary refractive index k at
// wavelength wl [μm].
func AbsorptionCoefficient(k, wl float64) *unit.Unit {
	return unit.Div(unit.New(4*math.Pi*k, unit.Dimless), unit.New(wl*micronToM, unit.Meter))
}

// opticalDepth returns α·L for a path of length path [cm].
func opticalDepth(k, wl, path float64) float64 {
	tau := unit.Mul(AbsorptionCoefficient(k, wl), unit.New(path*cmToM, unit.Meter))
	if err := tau.Check(unit.Dimless); err != nil {
		panic(err)
	}
	return tau.Value()
}

// Attenuate removes the energy absorbed along a path of length path [cm]
// through a medium with imaginary refractive indices k from energy, one
// value per band of wl. The first-order Beer-Lambert loss energy·α·L is
// removed and results are clamped at zero. energy is not modified.
func Attenuate(path float64, k []float64, wl Spectrum, energy FluxVector) FluxVector {
	out := energy.Clone()
	if path == 0 {
		return out
	}
	for i, e := range energy {
		out[i] = math.Max(0, e-e*opticalDepth(k[i], wl[i], path))
	}
	return out
}

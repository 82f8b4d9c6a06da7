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

// Package bulkice provides a simple diffuse flux model in which light is
// absorbed as it passes through a stack of homogeneous ice layers. Scattering
// by ice grains and absorption by impurities are not represented, so the
// model is intended as a stand-in for a full multilayer two-stream solver.
package bulkice

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/cryoconite"
)

const (
	// iceDensity is the density of pure ice [kg m⁻³].
	iceDensity = 917.

	// diffusivity converts the vertical optical depth into the effective
	// optical depth for isotropic diffuse light.
	diffusivity = 1.66
)

// Model is a bulk ice diffuse flux model.
type Model struct {
	// Ice is the refractive index of pure ice on the wavelength grid.
	Ice cryoconite.OpticalTable

	// SurfaceAlbedo is the broadband albedo of the ice surface. The
	// remaining light enters the ice.
	SurfaceAlbedo float64
}

// DiffuseFlux implements cryoconite.DiffuseFluxer. Only the density and
// thickness of each layer are used.
func (m *Model) DiffuseFlux(l *cryoconite.LayerConfig, wl cryoconite.Spectrum,
	incoming cryoconite.FluxVector) (*cryoconite.DiffuseResult, error) {
	if err := m.check(l, wl, incoming); err != nil {
		return nil, err
	}
	floor := cryoconite.NewFluxVector(len(wl))
	for i, w := range wl {
		alpha := cryoconite.AbsorptionCoefficient(m.Ice.K[i], w)
		var tau float64
		for j, dz := range l.Thickness {
			t := unit.Mul(alpha, unit.New(dz*l.Density[j]/iceDensity, unit.Meter))
			if err := t.Check(unit.Dimless); err != nil {
				return nil, fmt.Errorf("bulkice: %v", err)
			}
			tau += t.Value()
		}
		floor[i] = incoming[i] * (1 - m.SurfaceAlbedo) * math.Exp(-diffusivity*tau)
	}
	return &cryoconite.DiffuseResult{Floor: floor, Albedo: m.SurfaceAlbedo}, nil
}

func (m *Model) check(l *cryoconite.LayerConfig, wl cryoconite.Spectrum, incoming cryoconite.FluxVector) error {
	if l == nil || len(l.Thickness) == 0 {
		return fmt.Errorf("bulkice: at least one layer is required")
	}
	if len(l.Density) != len(l.Thickness) {
		return fmt.Errorf("bulkice: there are %d layer densities but %d layer thicknesses",
			len(l.Density), len(l.Thickness))
	}
	for j := range l.Thickness {
		if !(l.Density[j] > 0) || l.Density[j] > iceDensity {
			return fmt.Errorf("bulkice: layer %d density %g must be in (0, %g] kg/m³", j, l.Density[j], iceDensity)
		}
		if !(l.Thickness[j] >= 0) {
			return fmt.Errorf("bulkice: layer %d thickness %g must be >=0", j, l.Thickness[j])
		}
	}
	if !(m.SurfaceAlbedo >= 0 && m.SurfaceAlbedo <= 1) {
		return fmt.Errorf("bulkice: surface albedo %g must be between 0 and 1", m.SurfaceAlbedo)
	}
	if len(m.Ice.K) != len(wl) || len(incoming) != len(wl) {
		return fmt.Errorf("bulkice: ice table has %d values and incoming has %d but the spectrum has %d bands",
			len(m.Ice.K), len(incoming), len(wl))
	}
	return nil
}

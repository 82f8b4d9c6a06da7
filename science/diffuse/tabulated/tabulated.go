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

// Package tabulated provides a diffuse flux model that replays the output
// of an external multilayer two-stream radiative transfer calculation.
package tabulated

import (
	"fmt"

	"github.com/spatialmodel/cryoconite"
)

// Diffuse holds the net flux at the bottom of an ice column and the
// broadband surface albedo calculated by an external model.
type Diffuse struct {
	// Floor is the net downward flux at the bottom of the column in each
	// band [W m⁻²].
	Floor cryoconite.FluxVector

	// Reference is the incoming irradiance used in the external
	// calculation. If it is set, Floor is scaled by the ratio of the
	// incoming irradiance to Reference in each band.
	Reference cryoconite.FluxVector

	// Albedo is the broadband albedo of the ice surface.
	Albedo float64
}

// DiffuseFlux implements cryoconite.DiffuseFluxer. The layer configuration
// is not used because it is fixed by the external calculation.
func (d *Diffuse) DiffuseFlux(_ *cryoconite.LayerConfig, wl cryoconite.Spectrum,
	incoming cryoconite.FluxVector) (*cryoconite.DiffuseResult, error) {
	if len(d.Floor) != len(wl) {
		return nil, fmt.Errorf("tabulated: floor flux has %d values but the spectrum has %d bands",
			len(d.Floor), len(wl))
	}
	floor := d.Floor.Clone()
	if d.Reference != nil {
		if len(d.Reference) != len(wl) || len(incoming) != len(wl) {
			return nil, fmt.Errorf("tabulated: reference irradiance has %d values and incoming has %d "+
				"but the spectrum has %d bands", len(d.Reference), len(incoming), len(wl))
		}
		for i, r := range d.Reference {
			if r > 0 {
				floor[i] *= incoming[i] / r
			} else {
				floor[i] = 0
			}
		}
	}
	for i, f := range floor {
		if f < 0 {
			floor[i] = 0
		}
	}
	return &cryoconite.DiffuseResult{Floor: floor, Albedo: d.Albedo}, nil
}

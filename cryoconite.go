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

// Package cryoconite estimates the solar energy that reaches, and is absorbed by,
// sediment lying on the floor of a water-filled cylindrical melt hole in glacier ice.
//
// The direct solar beam is traced specularly: it is refracted at the water
// surface, reflected between the vertical hole walls above and below the water
// line, attenuated by absorption in the water column, and finally bounced
// between the sediment and the water surface until the remaining flux is
// negligible. The diffuse flux reaching the floor is supplied by an external
// radiative transfer model through the DiffuseFluxer interface.
//
// All lengths describing a hole are in centimeters and all wavelengths are in
// micrometers. Fluxes are spectral irradiances in W m⁻², one value per band.
package cryoconite

// Version gives the version number.
const Version = "0.3.1"

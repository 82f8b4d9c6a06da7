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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Spectrum is an ordered wavelength grid [μm]. Every per-band array used
// in a simulation shares its indexing.
type Spectrum []float64

// NewSpectrum creates a grid starting at start and increasing by step
// up to, but not including, end.
func NewSpectrum(start, end, step float64) (Spectrum, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("cryoconite: wavelength step must be >0 but is %g", step)
	}
	if !(start > 0) || !(end > start) {
		return nil, fmt.Errorf("cryoconite: invalid wavelength range [%g, %g)", start, end)
	}
	n := int(math.Ceil((end-start)/step - 1.e-9))
	s := make(Spectrum, n)
	for i := range s {
		s[i] = start + float64(i)*step
	}
	return s, nil
}

// Len returns the number of bands.
func (s Spectrum) Len() int { return len(s) }

// FluxVector holds one non-negative energy value per band [W m⁻²].
type FluxVector []float64

// NewFluxVector returns a zeroed FluxVector with n bands.
func NewFluxVector(n int) FluxVector { return make(FluxVector, n) }

// Sum returns the broadband (band-summed) value.
func (f FluxVector) Sum() float64 { return floats.Sum(f) }

// Clone returns a copy of f.
func (f FluxVector) Clone() FluxVector {
	o := make(FluxVector, len(f))
	copy(o, f)
	return o
}

// Medium identifies an optical medium.
type Medium int

// The media a beam passes through on its way to the hole floor.
const (
	Air Medium = iota
	Water
	Ice
)

func (m Medium) String() string {
	switch m {
	case Air:
		return "air"
	case Water:
		return "water"
	case Ice:
		return "ice"
	default:
		return fmt.Sprintf("Medium(%d)", int(m))
	}
}

// OpticalTable holds the real (N) and imaginary (K) parts of the complex
// refractive index of a medium, one value per band.
type OpticalTable struct {
	N, K []float64
}

// Len returns the number of bands in the table.
func (t OpticalTable) Len() int { return len(t.N) }

// check makes sure the table matches a grid with n bands.
func (t OpticalTable) check(m Medium, n int) error {
	if len(t.N) != n || len(t.K) != n {
		return fmt.Errorf("cryoconite: %s optical table has %d real and %d imaginary values "+
			"but the spectrum has %d bands", m, len(t.N), len(t.K), n)
	}
	return nil
}

// clampN returns a copy of t where values of N below min are replaced with
// min. It keeps Snell's law defined for the few bands where tabulated ice
// indices fall slightly below one.
func (t OpticalTable) clampN(min float64) OpticalTable {
	o := OpticalTable{N: make([]float64, len(t.N)), K: make([]float64, len(t.K))}
	copy(o.K, t.K)
	for i, n := range t.N {
		o.N[i] = math.Max(n, min)
	}
	return o
}

// OpticalProvider supplies refractive index tables aligned to a wavelength grid.
type OpticalProvider interface {
	Load(m Medium, wl Spectrum) (OpticalTable, error)
}

// Media holds the optical tables of all media in a hole.
type Media struct {
	Air, Water, Ice OpticalTable
}

// LoadMedia loads the optical tables for air, water, and ice from p and
// checks that they are aligned with wl.
func LoadMedia(p OpticalProvider, wl Spectrum) (Media, error) {
	var md Media
	for _, m := range []struct {
		medium Medium
		dst    *OpticalTable
	}{{Air, &md.Air}, {Water, &md.Water}, {Ice, &md.Ice}} {
		t, err := p.Load(m.medium, wl)
		if err != nil {
			return md, fmt.Errorf("cryoconite: loading %s optical data: %v", m.medium, err)
		}
		*m.dst = t
	}
	return md.normalize(len(wl))
}

// normalize checks the tables against the number of bands and clamps the
// real indices to be at least one.
func (md Media) normalize(n int) (Media, error) {
	for _, t := range []struct {
		m Medium
		t OpticalTable
	}{{Air, md.Air}, {Water, md.Water}, {Ice, md.Ice}} {
		if err := t.t.check(t.m, n); err != nil {
			return md, err
		}
	}
	return Media{
		Air:   md.Air.clampN(1),
		Water: md.Water.clampN(1),
		Ice:   md.Ice.clampN(1),
	}, nil
}

// LayerConfig describes the ice column surrounding a hole, as required by
// an external two-stream radiative transfer model.
type LayerConfig struct {
	// Density is the density of each layer [kg m⁻³].
	Density []float64
	// GrainRadius is the effective grain radius of each layer [μm].
	GrainRadius []float64
	// Thickness is the thickness of each layer [m].
	Thickness []float64
	// LayerType is 0 for granular snow and 1 for solid ice.
	LayerType []int
	// Algae is the glacier algae loading of each layer [ppb].
	Algae []float64
	// SolarZenith is the solar zenith angle [degrees].
	SolarZenith float64
}

// DiffuseResult is the output of a DiffuseFluxer.
type DiffuseResult struct {
	// Floor is the net downward flux at the bottom boundary of the layer
	// column, which is taken to be the diffuse flux reaching the hole floor.
	Floor FluxVector
	// Albedo is the broadband albedo of the ice surface.
	Albedo float64
}

// DiffuseFluxer calculates the diffuse flux reaching the bottom of an ice
// column given its layers and the incoming spectral irradiance.
type DiffuseFluxer interface {
	DiffuseFlux(l *LayerConfig, wl Spectrum, incoming FluxVector) (*DiffuseResult, error)
}

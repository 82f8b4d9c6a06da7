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
	"errors"
	"math"
	"runtime"
	"sync"
)

// Beam holds the state of the direct solar beam in one wavelength band as
// it travels from the ice surface to the hole floor.
type Beam struct {
	// Band is the index of the band in the spectrum.
	Band int

	// Wavelength is the center of the band [μm].
	Wavelength float64

	// Theta is the elevation of the incoming beam [degrees].
	Theta float64

	// TTheta is the elevation of the beam after it is refracted into the
	// water [degrees]. It equals Theta if there is no water.
	TTheta float64

	// Reflectances at the air-water surface, the air-ice walls and the
	// water-ice walls.
	RAirWater, RAirIce, RWaterIce float64

	// Direct is true if the beam lights the floor point without reflecting
	// off of the walls.
	Direct bool

	// Trace is the route of a beam that is not Direct.
	Trace BeamTrace

	// PathLength is the distance travelled through the water [cm].
	PathLength float64

	// Energy is the direct beam energy [W m⁻²]. It starts as the incoming
	// irradiance and ends as the energy arriving at the floor.
	Energy float64

	// SurfaceReflected is the energy reflected away by the water surface.
	SurfaceReflected float64

	// Blocked is true if the beam could not be refracted into the water and
	// has been treated as fully reflected.
	Blocked bool
}

// BeamManipulator is a function that performs one step of the transport of
// a beam.
type BeamManipulator func(b *Beam) error

// NewBeams creates one beam for each band of wl, carrying the incoming
// irradiance at solar elevation theta [degrees].
func NewBeams(wl Spectrum, incoming FluxVector, theta float64) []*Beam {
	beams := make([]*Beam, len(wl))
	for i, w := range wl {
		beams[i] = &Beam{
			Band:       i,
			Wavelength: w,
			Theta:      theta,
			TTheta:     theta,
			Energy:     incoming[i],
		}
	}
	return beams
}

// Calculations concurrently runs a series of calculations on all of the
// beams. Beams in different bands are independent, so each one is only ever
// handled by a single goroutine. If any calculation fails, the error from
// the lowest-numbered band is returned.
func Calculations(beams []*Beam, calculators ...BeamManipulator) error {
	nprocs := runtime.GOMAXPROCS(0) // number of processors
	errs := make([]error, len(beams))
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for ii := pp; ii < len(beams); ii += nprocs {
				for _, f := range calculators {
					if err := f(beams[ii]); err != nil {
						errs[ii] = err
						break
					}
				}
			}
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Refract calculates the elevation of the beam after it enters the water.
// If the beam cannot be refracted and policy is ReflectOnDomainError, the
// beam is marked as blocked instead of returning an error.
func Refract(md Media, water bool, policy DomainPolicy) BeamManipulator {
	return func(b *Beam) error {
		if !water {
			b.TTheta = b.Theta
			return nil
		}
		t, err := transmittedAngle(b.Theta, md.Air.N[b.Band], md.Water.N[b.Band])
		if err != nil {
			if policy == ReflectOnDomainError {
				b.Blocked = true
				return nil
			}
			return bandError(err, b.Band)
		}
		b.TTheta = t
		return nil
	}
}

// BoundaryReflectances calculates the Fresnel reflectance of the
// water surface and of the hole walls above and below the water.
func BoundaryReflectances(md Media) BeamManipulator {
	return func(b *Beam) error {
		if b.Blocked {
			return nil
		}
		i := b.Band
		var err error
		if b.RAirWater, err = Fresnel(md.Air.N[i], md.Air.K[i], md.Water.N[i], md.Water.K[i], b.Theta); err != nil {
			return bandError(err, i)
		}
		if b.RAirIce, err = Fresnel(md.Air.N[i], md.Air.K[i], md.Ice.N[i], md.Ice.K[i], b.Theta); err != nil {
			return bandError(err, i)
		}
		if b.RWaterIce, err = Fresnel(md.Water.N[i], md.Water.K[i], md.Ice.N[i], md.Ice.K[i], b.TTheta); err != nil {
			return bandError(err, i)
		}
		return nil
	}
}

// Illuminate determines whether the beam lights the floor point directly
// and, if not, traces its reflections off of the hole walls.
func Illuminate(h Hole) BeamManipulator {
	angCrit := CriticalAngle(h.Depth, h.Width, h.Point)
	return func(b *Beam) error {
		if b.Blocked {
			return nil
		}
		b.Direct = directlyLit(b.TTheta, angCrit)
		if !b.Direct {
			b.Trace = TraceReflections(h, b.Theta, b.TTheta)
		}
		return nil
	}
}

// BoundaryLosses removes the energy lost at the water surface and at each
// reflection off of the walls. A direct beam keeps the fraction transmitted
// into the water. A reflected beam keeps the air-water reflectance once for
// each reflection above the water plus once for the crossing at the water
// surface, and the water-ice reflectance once for each reflection below it.
// SurfaceReflected is the part of the incoming beam reflected by the water
// surface, whichever route the beam takes.
func BoundaryLosses(water bool) BeamManipulator {
	return func(b *Beam) error {
		if b.Blocked {
			b.Energy = 0
			return nil
		}
		if water {
			b.SurfaceReflected = b.Energy * b.RAirWater
		}
		if b.Direct {
			if water {
				b.Energy -= b.SurfaceReflected
			}
			return nil
		}
		b.Energy *= math.Pow(b.RAirWater, float64(b.Trace.AirReflections+1))
		b.Energy *= math.Pow(b.RWaterIce, float64(b.Trace.WaterReflections))
		return nil
	}
}

// WaterAbsorption calculates the path length of the beam through the water
// and removes the energy absorbed along it.
func WaterAbsorption(h Hole, kWater []float64) BeamManipulator {
	return func(b *Beam) error {
		if b.Blocked {
			return nil
		}
		b.PathLength = PathLength(h, b.TTheta, b.Direct, b.Trace)
		if b.PathLength > 0 {
			b.Energy = math.Max(0, b.Energy-b.Energy*opticalDepth(kWater[b.Band], b.Wavelength, b.PathLength))
		}
		return nil
	}
}

// bandError attaches the band index to a *DomainError.
func bandError(err error, band int) error {
	var de *DomainError
	if errors.As(err, &de) {
		de.Band = band
	}
	return err
}

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
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// HoleClass is a group of identical holes in a study area.
type HoleClass struct {
	// Name identifies the class.
	Name string

	// Hole is the geometry of the holes in the class. Point is ignored;
	// results are averaged over the whole floor.
	Hole Hole

	// Count is the number of holes in the class.
	Count int
}

// DiffuseFloorFunc returns the diffuse flux reaching the floor of hole h.
type DiffuseFloorFunc func(h Hole) (FluxVector, error)

// HoleDiffuse returns a DiffuseFloorFunc that runs f on an ice column as
// deep as each hole, using layers as a template.
func HoleDiffuse(f DiffuseFluxer, layers LayerConfig, wl Spectrum, incoming FluxVector) DiffuseFloorFunc {
	return func(h Hole) (FluxVector, error) {
		l := layers
		l.Thickness = []float64{h.Depth * cmToM}
		for _, v := range []*[]float64{&l.Density, &l.GrainRadius, &l.Algae} {
			if len(*v) > 1 {
				*v = (*v)[:1]
			}
		}
		if len(l.LayerType) > 1 {
			l.LayerType = l.LayerType[:1]
		}
		r, err := f.DiffuseFlux(&l, wl, incoming)
		if err != nil {
			return nil, err
		}
		return r.Floor, nil
	}
}

// Site is an area of the ice surface containing cryoconite holes.
type Site struct {
	// StudyArea is the total area of the site [m²].
	StudyArea float64

	// Classes are the groups of holes in the site.
	Classes []HoleClass

	// SurfaceUpwelling is the upwelling flux from the ice surface between
	// the holes in each band [W m⁻²].
	SurfaceUpwelling FluxVector

	// FloorPoints is the number of points sampled across each hole floor.
	// If it is zero, points are spaced 1 cm apart.
	FloorPoints int
}

// ClassResult holds the results for one class of holes.
type ClassResult struct {
	Class HoleClass

	// Profile holds the results at each point on the floor.
	Profile *FloorProfile

	// Absorbed is the floor-averaged energy absorbed by the cryoconite in
	// each band [W m⁻²].
	Absorbed FluxVector

	// Area is the combined aperture area of all holes in the class [m²].
	Area float64

	// AbsorbedPower is the broadband power absorbed by all holes in the
	// class [W].
	AbsorbedPower float64
}

// SiteResult holds the energy balance of a site.
type SiteResult struct {
	Classes []ClassResult

	// HoleArea is the combined aperture area of all holes [m²].
	HoleArea float64

	// IncomingPower is the broadband power incident on the site [W].
	IncomingPower float64

	// AbsorbedPower is the broadband power absorbed by all of the
	// cryoconite in the site [W].
	AbsorbedPower float64

	// FractionAbsorbed is AbsorbedPower / IncomingPower.
	FractionAbsorbed float64

	// Upwelling is the power leaving the site in each band [W]: the
	// upwelling from the open ice plus the light reflected by the water
	// surfaces and transmitted upward out of the holes.
	Upwelling FluxVector

	// Albedo is the spectral albedo of the site.
	Albedo FluxVector
}

// minSiteAlbedo replaces non-positive or undefined spectral albedo values.
const minSiteAlbedo = 1.e-4

func (s *Site) validate(n int) error {
	if !(s.StudyArea > 0) {
		return &ValidationError{Field: "StudyArea", Value: s.StudyArea, Reason: "study area must be >0"}
	}
	if len(s.Classes) == 0 {
		return fmt.Errorf("cryoconite: site has no hole classes")
	}
	var area float64
	for _, c := range s.Classes {
		if c.Count < 0 {
			return &ValidationError{Field: c.Name + ".Count", Value: float64(c.Count),
				Reason: "number of holes must not be negative"}
		}
		area += c.Hole.Area() * float64(c.Count)
	}
	if area > s.StudyArea {
		return &ValidationError{Field: "StudyArea", Value: s.StudyArea,
			Reason: fmt.Sprintf("the holes cover %g m², more than the study area", area)}
	}
	if len(s.SurfaceUpwelling) != n {
		return fmt.Errorf("cryoconite: surface upwelling has %d values but the spectrum has %d bands",
			len(s.SurfaceUpwelling), n)
	}
	return nil
}

// Run calculates the energy balance of every class of holes in the site
// using base for all inputs other than the hole geometry and the diffuse
// floor flux, which is calculated for each class by diffuse. If diffuse is
// nil, base.DiffuseFloor is used for every class.
// Convergence failures are handled as in Model.FloorProfile.
func (s *Site) Run(base *Model, diffuse DiffuseFloorFunc) (*SiteResult, error) {
	n := len(base.Wavelengths)
	if err := s.validate(n); err != nil {
		return nil, err
	}
	res := &SiteResult{
		Classes:       make([]ClassResult, len(s.Classes)),
		IncomingPower: base.Incoming.Sum() * s.StudyArea,
	}
	holeLight := NewFluxVector(n) // W leaving the holes.
	var convergenceErr error
	for i, c := range s.Classes {
		m := *base
		m.Hole = c.Hole
		m.Hole.Point = 0
		if diffuse != nil {
			d, err := diffuse(c.Hole)
			if err != nil {
				return nil, fmt.Errorf("cryoconite: diffuse flux for hole class %q: %v", c.Name, err)
			}
			m.DiffuseFloor = d
		}
		p, err := m.FloorProfile(FloorPoints(c.Hole.Width, s.FloorPoints))
		if err != nil {
			var ce *ConvergenceError
			if !errors.As(err, &ce) {
				return nil, fmt.Errorf("cryoconite: hole class %q: %v", c.Name, err)
			}
			convergenceErr = err
		}
		cr := ClassResult{
			Class:    c,
			Profile:  p,
			Absorbed: p.Mean((*FluxResult).Absorbed),
			Area:     c.Hole.Area() * float64(c.Count),
		}
		cr.AbsorbedPower = cr.Absorbed.Sum() * cr.Area
		res.Classes[i] = cr
		res.HoleArea += cr.Area
		res.AbsorbedPower += cr.AbsorbedPower

		out := p.Mean(func(r *FluxResult) FluxVector { return r.SurfaceReflected })
		floats.Add(out, p.Mean(func(r *FluxResult) FluxVector { return r.SurfaceTransmitted }))
		floats.AddScaled(holeLight, cr.Area, out)
	}
	if res.IncomingPower > 0 {
		res.FractionAbsorbed = res.AbsorbedPower / res.IncomingPower
	}

	res.Upwelling = s.SurfaceUpwelling.Clone()
	floats.Scale(s.StudyArea-res.HoleArea, res.Upwelling)
	floats.Add(res.Upwelling, holeLight)

	res.Albedo = NewFluxVector(n)
	for i, up := range res.Upwelling {
		var a float64
		if base.Incoming[i] > 0 {
			a = up / (base.Incoming[i] * s.StudyArea)
		}
		if !(a > 0) {
			a = minSiteAlbedo
		}
		res.Albedo[i] = a
	}
	return res, convergenceErr
}

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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FloorPoints returns n sample points [cm] spaced evenly across a floor of
// the given width, starting at the sunward wall. If n <= 0, points are
// spaced 1 cm apart.
func FloorPoints(width float64, n int) []float64 {
	if n <= 0 {
		n = int(math.Max(1, math.Floor(width)))
	}
	p := make([]float64, n)
	for i := range p {
		p[i] = float64(i) * width / float64(n)
	}
	return p
}

// FloorProfile holds the results of calculations at several points across
// the floor of a hole.
type FloorProfile struct {
	Points  []float64
	Results []*FluxResult
}

// FloorProfile runs the model at each of the given points on the hole
// floor. If the internal reflection iteration fails to converge at any
// point, the profile is completed and the last *ConvergenceError is
// returned along with it.
func (m *Model) FloorProfile(points []float64) (*FloorProfile, error) {
	p := &FloorProfile{
		Points:  points,
		Results: make([]*FluxResult, len(points)),
	}
	var convergenceErr error
	for i, pt := range points {
		mm := *m
		mm.Hole.Point = pt
		r, err := mm.Run()
		if err != nil {
			var ce *ConvergenceError
			if !errors.As(err, &ce) {
				return nil, err
			}
			convergenceErr = err
		}
		p.Results[i] = r
	}
	return p, convergenceErr
}

// Mean returns the mean over all points of the spectral quantity selected by f.
func (p *FloorProfile) Mean(f func(*FluxResult) FluxVector) FluxVector {
	if len(p.Results) == 0 {
		return nil
	}
	n := len(f(p.Results[0]))
	o := NewFluxVector(n)
	v := make([]float64, len(p.Results))
	for i := 0; i < n; i++ {
		for j, r := range p.Results {
			v[j] = f(r)[i]
		}
		o[i] = stat.Mean(v, nil)
	}
	return o
}

// Broadband returns the band-summed value of the quantity selected by f
// at each point.
func (p *FloorProfile) Broadband(f func(*FluxResult) FluxVector) []float64 {
	o := make([]float64, len(p.Results))
	for i, r := range p.Results {
		o[i] = floats.Sum(f(r))
	}
	return o
}

// Converged reports whether the internal reflection iteration converged at
// every point.
func (p *FloorProfile) Converged() bool {
	for _, r := range p.Results {
		if !r.Converged {
			return false
		}
	}
	return true
}

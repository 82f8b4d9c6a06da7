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

package tabulated_test

import (
	"testing"

	"github.com/spatialmodel/cryoconite"
	"github.com/spatialmodel/cryoconite/science/diffuse/tabulated"
)

func TestDiffuseFlux(t *testing.T) {
	wl := cryoconite.Spectrum{0.4, 0.5, 0.6}
	d := &tabulated.Diffuse{
		Floor:  cryoconite.FluxVector{1, -2, 3},
		Albedo: 0.6,
	}
	r, err := d.DiffuseFlux(nil, wl, cryoconite.FluxVector{5, 5, 5})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 0, 3}
	for i, v := range r.Floor {
		if v != want[i] {
			t.Errorf("band %d: have %g, want %g", i, v, want[i])
		}
	}
	if r.Albedo != 0.6 {
		t.Errorf("albedo: have %g, want 0.6", r.Albedo)
	}
	if d.Floor[1] != -2 {
		t.Error("input floor flux was modified")
	}
}

func TestDiffuseFluxScaled(t *testing.T) {
	wl := cryoconite.Spectrum{0.4, 0.5}
	d := &tabulated.Diffuse{
		Floor:     cryoconite.FluxVector{1, 2},
		Reference: cryoconite.FluxVector{10, 0},
	}
	r, err := d.DiffuseFlux(nil, wl, cryoconite.FluxVector{20, 5})
	if err != nil {
		t.Fatal(err)
	}
	if r.Floor[0] != 2 || r.Floor[1] != 0 {
		t.Errorf("have %v, want [2 0]", r.Floor)
	}
}

func TestDiffuseFluxLength(t *testing.T) {
	d := &tabulated.Diffuse{Floor: cryoconite.FluxVector{1}}
	if _, err := d.DiffuseFlux(nil, cryoconite.Spectrum{0.4, 0.5}, nil); err == nil {
		t.Error("expected an error for mismatched lengths")
	}
}

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
	"testing"

	"github.com/ctessum/unit"
)

func TestAbsorptionCoefficient(t *testing.T) {
	α := AbsorptionCoefficient(1.e-9, 0.5)
	if err := α.Check(unit.Dimensions{unit.LengthDim: -1}); err != nil {
		t.Fatal(err)
	}
	if different(α.Value(), 4*math.Pi*1.e-9/0.5e-6, 1.e-12) {
		t.Errorf("have %g, want %g", α.Value(), 4*math.Pi*1.e-9/0.5e-6)
	}
}

func TestAttenuate(t *testing.T) {
	wl := Spectrum{0.5, 1.0, 2.0}
	k := []float64{1.e-9, 1.e-8, 1.e-2}
	e := FluxVector{10, 10, 10}

	same := Attenuate(0, k, wl, e)
	for i := range e {
		if same[i] != e[i] {
			t.Errorf("band %d: zero path length should not attenuate: have %g, want %g", i, same[i], e[i])
		}
	}

	out := Attenuate(100, k, wl, e)
	want0 := 10 - 10*4*math.Pi*1.e-9/0.5e-6*1
	if different(out[0], want0, 1.e-12) {
		t.Errorf("band 0: have %g, want %g", out[0], want0)
	}
	if !(out[1] < out[0]) {
		t.Errorf("more absorbing band should be attenuated more: %v", out)
	}
	if out[2] != 0 {
		t.Errorf("strongly absorbing band should be clamped to zero but is %g", out[2])
	}
	if e[0] != 10 {
		t.Error("input energy was modified")
	}
}

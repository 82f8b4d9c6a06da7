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
	"testing"
)

func TestNewSpectrum(t *testing.T) {
	s, err := NewSpectrum(0.3, 5.0, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 470 {
		t.Errorf("have %d bands, want 470", s.Len())
	}
	if s[0] != 0.3 || different(s[469], 4.99, 1.e-12) {
		t.Errorf("range: have [%g, %g], want [0.3, 4.99]", s[0], s[469])
	}
	for _, args := range [][3]float64{{0.3, 5, 0}, {0, 5, 0.01}, {5, 0.3, 0.01}} {
		if _, err := NewSpectrum(args[0], args[1], args[2]); err == nil {
			t.Errorf("NewSpectrum%v: expected an error", args)
		}
	}
}

type mapProvider map[Medium]OpticalTable

func (p mapProvider) Load(m Medium, wl Spectrum) (OpticalTable, error) {
	t, ok := p[m]
	if !ok {
		return OpticalTable{}, fmt.Errorf("no table")
	}
	return t, nil
}

func TestLoadMedia(t *testing.T) {
	wl := Spectrum{0.5, 2.5}
	p := mapProvider{
		Air:   {N: []float64{1, 1}, K: []float64{0, 0}},
		Water: {N: []float64{1.33, 1.25}, K: []float64{1.e-9, 1.e-3}},
		Ice:   {N: []float64{1.31, 0.98}, K: []float64{1.e-9, 1.e-4}},
	}
	md, err := LoadMedia(p, wl)
	if err != nil {
		t.Fatal(err)
	}
	if md.Ice.N[1] != 1 {
		t.Errorf("ice index should be clamped to 1 but is %g", md.Ice.N[1])
	}
	if p[Ice].N[1] != 0.98 {
		t.Error("provider tables should not be modified")
	}
	if md.Water.K[1] != 1.e-3 || md.Water.Len() != 2 {
		t.Errorf("water table: %+v", md.Water)
	}

	delete(p, Water)
	if _, err := LoadMedia(p, wl); err == nil {
		t.Error("expected an error for missing water data")
	}
	p[Water] = OpticalTable{N: []float64{1.33}, K: []float64{0}}
	if _, err := LoadMedia(p, wl); err == nil {
		t.Error("expected an error for a misaligned table")
	}
}

func TestFluxVector(t *testing.T) {
	f := FluxVector{1, 2, 3}
	c := f.Clone()
	c[0] = 10
	if f[0] != 1 || f.Sum() != 6 || c.Sum() != 15 {
		t.Errorf("unexpected values %v, %v", f, c)
	}
	if Water.String() != "water" {
		t.Errorf("have %s", Water)
	}
}

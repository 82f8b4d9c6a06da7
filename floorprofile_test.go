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
	"testing"
)

func TestFloorPoints(t *testing.T) {
	tests := []struct {
		width float64
		n     int
		want  []float64
	}{
		{30, 3, []float64{0, 10, 20}},
		{2.5, 0, []float64{0, 1.25}},
		{0.5, 0, []float64{0}},
		{4, -1, []float64{0, 1, 2, 3}},
	}
	for _, test := range tests {
		have := FloorPoints(test.width, test.n)
		if len(have) != len(test.want) {
			t.Errorf("FloorPoints(%g, %d): have %v, want %v", test.width, test.n, have, test.want)
			continue
		}
		for i := range have {
			if absDifferent(have[i], test.want[i], 1.e-12) {
				t.Errorf("FloorPoints(%g, %d): have %v, want %v", test.width, test.n, have, test.want)
			}
		}
	}
}

func TestFloorProfile(t *testing.T) {
	m := testModel()
	p, err := m.FloorProfile([]float64{0, 15, 29})
	if err != nil {
		t.Fatal(err)
	}
	if !p.Converged() {
		t.Error("profile should have converged")
	}
	if len(p.Results) != 3 {
		t.Fatalf("have %d results, want 3", len(p.Results))
	}
	if different(p.Results[1].DirectAtFloor[0], 2.643647897702323e-07, 1.e-8) {
		t.Errorf("example point: have %g", p.Results[1].DirectAtFloor[0])
	}
	if m.Hole.Point != 15 {
		t.Errorf("the model should not be modified but its point is now %g", m.Hole.Point)
	}

	direct := func(r *FluxResult) FluxVector { return r.DirectAtFloor }
	bb := p.Broadband(direct)
	mean := p.Mean(direct)
	want := (bb[0] + bb[1] + bb[2]) / 3
	if different(mean[0], want, 1.e-12) {
		t.Errorf("mean: have %g, want %g", mean[0], want)
	}

	if _, err := m.FloorProfile([]float64{0, 31}); err == nil {
		t.Error("expected an error for a point beyond the far wall")
	} else {
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "Point" {
			t.Errorf("unexpected error %v", err)
		}
	}
}

func TestFloorProfileConvergence(t *testing.T) {
	m := testModel()
	m.MaxIterations = 1
	m.Tolerance = 1.e-30
	p, err := m.FloorProfile([]float64{0, 10})
	var ce *ConvergenceError
	if !errors.As(err, &ce) {
		t.Fatalf("expected a *ConvergenceError but got %v", err)
	}
	if p == nil || len(p.Results) != 2 || p.Results[1] == nil {
		t.Fatal("a partial profile should be returned")
	}
	if p.Converged() {
		t.Error("profile should not be marked as converged")
	}
}

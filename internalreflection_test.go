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
	"testing"
)

func testReflector(waterDepth, albedo, tolerance float64) *InternalReflector {
	wl := Spectrum{0.4, 0.7, 1.0, 1.5}
	return &InternalReflector{
		WaterDepth:         waterDepth,
		Wavelengths:        wl,
		KWater:             []float64{1.e-9, 3.e-8, 3.e-7, 1.e-4},
		SurfaceReflectance: []float64{0.48, 0.48, 0.47, 0.47},
		Albedo:             []float64{albedo, albedo, albedo, albedo},
		Tolerance:          tolerance,
	}
}

func TestInternalReflectionConservation(t *testing.T) {
	arriving := FluxVector{100, 50, 20, 5}
	for _, wd := range []float64{0, 1, 10, 40, 200} {
		for _, albedo := range []float64{0, 0.2, 0.9, 1} {
			for _, tol := range []float64{1.e-10, 1.e-3, 1} {
				t.Run(fmt.Sprintf("wd=%g_a=%g_tol=%g", wd, albedo, tol), func(t *testing.T) {
					r, err := testReflector(wd, albedo, tol).Solve(arriving)
					if err != nil {
						t.Fatal(err)
					}
					if !r.Converged {
						t.Error("should have converged")
					}
					for i := range arriving {
						if absDifferent(r.Escaped[i]+r.Loss[i], arriving[i], 1.e-9) {
							t.Errorf("band %d: escaped %g + loss %g != arriving %g",
								i, r.Escaped[i], r.Loss[i], arriving[i])
						}
						parts := r.FloorAbsorbed[i] + r.WaterAbsorbed[i] + r.SurfaceTransmitted[i]
						if absDifferent(parts, r.Loss[i], 1.e-9) {
							t.Errorf("band %d: loss components sum to %g but loss is %g", i, parts, r.Loss[i])
						}
						for _, v := range []float64{r.Escaped[i], r.Loss[i], r.FloorAbsorbed[i],
							r.WaterAbsorbed[i], r.SurfaceTransmitted[i]} {
							if v < 0 {
								t.Errorf("band %d: negative energy %g", i, v)
							}
						}
					}
					if r.Escaped.Sum() > tol+1.e-9 {
						t.Errorf("unresolved energy %g exceeds the tolerance", r.Escaped.Sum())
					}
				})
			}
		}
	}
}

// The total loss is not monotonic in water depth, because the iteration
// stops once the upwelling flux falls below the tolerance and the
// unresolved remainder differs between depths. The energy absorbed by the
// water column does increase with depth.
func TestInternalReflectionWaterDepth(t *testing.T) {
	arriving := FluxVector{100, 50, 20, 5}
	prev := FluxVector{0, 0, 0, 0}
	for _, wd := range []float64{0, 0.5, 1, 5, 10, 20, 40, 80, 160} {
		r, err := testReflector(wd, 0.2, 1.e-12).Solve(arriving)
		if err != nil {
			t.Fatal(err)
		}
		for i, w := range r.WaterAbsorbed {
			if w < prev[i]-1.e-9 {
				t.Errorf("water depth %g band %d: water absorption %g decreased from %g", wd, i, w, prev[i])
			}
		}
		prev = r.WaterAbsorbed
	}
}

func TestInternalReflectionNoWater(t *testing.T) {
	arriving := FluxVector{100, 50, 20, 5}
	r, err := testReflector(0, 0.2, 1.e-10).Solve(arriving)
	if err != nil {
		t.Fatal(err)
	}
	if r.Iterations != 1 {
		t.Errorf("without water all upwelling light should leave in one iteration, not %d", r.Iterations)
	}
	for i := range arriving {
		if r.SurfaceTransmitted[i] != arriving[i] || r.WaterAbsorbed[i] != 0 || r.FloorAbsorbed[i] != 0 {
			t.Errorf("band %d: transmitted %g, water %g, floor %g", i,
				r.SurfaceTransmitted[i], r.WaterAbsorbed[i], r.FloorAbsorbed[i])
		}
	}
}

func TestInternalReflectionIterationLimit(t *testing.T) {
	ir := testReflector(10, 1, 1.e-300)
	ir.SurfaceReflectance = []float64{totalInternalReflectance, totalInternalReflectance,
		totalInternalReflectance, totalInternalReflectance}
	ir.KWater = []float64{0, 0, 0, 0}
	ir.MaxIterations = 5
	arriving := FluxVector{1, 1, 1, 1}
	r, err := ir.Solve(arriving)
	var ce *ConvergenceError
	if !errors.As(err, &ce) {
		t.Fatalf("expected a *ConvergenceError but got %v", err)
	}
	if ce.Iterations != 5 || r.Iterations != 5 {
		t.Errorf("iterations: have %d and %d, want 5", ce.Iterations, r.Iterations)
	}
	if r.Converged {
		t.Error("result should not be marked as converged")
	}
	for i := range arriving {
		if absDifferent(r.Escaped[i]+r.Loss[i], arriving[i], 1.e-12) {
			t.Errorf("band %d: partial result does not conserve energy", i)
		}
	}
}

func TestInternalReflectionTolerance(t *testing.T) {
	for _, tol := range []float64{0, -1} {
		_, err := testReflector(10, 0.2, tol).Solve(FluxVector{1, 1, 1, 1})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("tolerance %g: expected a *ValidationError but got %v", tol, err)
		}
	}
}

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
)

// exampleHole is a hole 60 cm deep and 30 cm wide holding 40 cm of water,
// sampled at the center of the floor.
var exampleHole = Hole{Depth: 60, Width: 30, WaterDepth: 40, Point: 15}

func TestTraceReflectionsExample(t *testing.T) {
	const theta = 30.
	tTheta, err := transmittedAngle(theta, 1, 1.33)
	if err != nil {
		t.Fatal(err)
	}
	if different(tTheta, 22.082413194472252, 1.e-12) {
		t.Errorf("transmitted angle: have %g, want 22.0824", tTheta)
	}
	if directlyLit(tTheta, CriticalAngle(exampleHole.Depth, exampleHole.Width, exampleHole.Point)) {
		t.Fatal("the beam should not light the point directly")
	}
	b := TraceReflections(exampleHole, theta, tTheta)
	if !b.HitsWall {
		t.Error("the beam should hit the wall above the water")
	}
	if b.AirReflections != 1 {
		t.Errorf("air reflections: have %d, want 1", b.AirReflections)
	}
	if !b.Reversed {
		t.Error("one air reflection should reverse the beam")
	}
	// 30 - (20 - 30·tan30°)/tan30°
	if different(b.SurfaceStrike, 25.35898384862245, 1.e-10) {
		t.Errorf("surface strike: have %g, want 25.359", b.SurfaceStrike)
	}
	if b.FirstRun != b.SurfaceStrike {
		t.Errorf("a reversed beam should run %g to the sunward wall but runs %g", b.SurfaceStrike, b.FirstRun)
	}
	if b.WaterReflections != 3 {
		t.Errorf("water reflections: have %d, want 3", b.WaterReflections)
	}
	if b.Reflections() != 4 {
		t.Errorf("total reflections: have %d, want 4", b.Reflections())
	}
}

func TestReflectionParity(t *testing.T) {
	h := Hole{Depth: 100, Width: 10}
	tests := []struct {
		theta    float64
		hitsWall bool
		n        int
	}{
		{theta: 60, hitsWall: true, n: 5},
		{theta: 70, hitsWall: true, n: 3},
		{theta: 75, hitsWall: true, n: 2},
		{theta: 80, hitsWall: true, n: 1},
		{theta: 85, hitsWall: false, n: 0},
	}
	for _, test := range tests {
		b := TraceReflections(h, test.theta, test.theta)
		if b.HitsWall != test.hitsWall {
			t.Errorf("θ=%g: hits wall: have %v, want %v", test.theta, b.HitsWall, test.hitsWall)
		}
		if b.AirReflections != test.n {
			t.Errorf("θ=%g: air reflections: have %d, want %d", test.theta, b.AirReflections, test.n)
		}
		if b.Reversed != (test.n%2 == 1) {
			t.Errorf("θ=%g: reversed should be %v with %d reflections", test.theta, test.n%2 == 1, test.n)
		}
		if b.WaterReflections != 0 {
			t.Errorf("θ=%g: a dry hole should have no water reflections but has %d", test.theta, b.WaterReflections)
		}
		if b.SurfaceStrike < 0 || b.SurfaceStrike > h.Width+1.e-9 {
			t.Errorf("θ=%g: surface strike %g is outside of the hole", test.theta, b.SurfaceStrike)
		}
	}
}

func TestJustBelowCritical(t *testing.T) {
	h := Hole{Depth: 60, Width: 30}
	a := CriticalAngle(h.Depth, h.Width, h.Point)
	theta := a - 0.01
	if directlyLit(theta, a) {
		t.Fatal("beam should not be direct")
	}
	b := TraceReflections(h, theta, theta)
	if b.Reflections() < 1 {
		t.Errorf("a beam just below the critical angle should reflect at least once")
	}
	if !b.Reversed {
		t.Errorf("a single reflection should reverse the beam")
	}
}

func TestWallStrikeBoundary(t *testing.T) {
	const theta, depth, waterDepth = 37., 50., 10.
	strike := (depth - waterDepth) / math.Tan(degToRad(theta))
	hits, s, surfToWat := wallStrikeAboveWater(theta, depth, waterDepth, strike)
	if !hits {
		t.Error("a strike exactly at the wall should count as hitting the wall")
	}
	if s != strike || surfToWat != depth-waterDepth {
		t.Errorf("have strike=%g, surfToWat=%g", s, surfToWat)
	}
	if hits, _, _ := wallStrikeAboveWater(theta, depth, waterDepth, math.Nextafter(strike, math.Inf(1))); hits {
		t.Error("a strike short of the wall should not count as hitting the wall")
	}
}

func TestWaterReflections(t *testing.T) {
	if n := waterReflections(20, 30, 0, 5); n != 0 {
		t.Errorf("no water: have %d reflections, want 0", n)
	}
	// Reaches the floor before the first wall.
	if n := waterReflections(80, 30, 10, 20); n != 0 {
		t.Errorf("steep beam: have %d reflections, want 0", n)
	}
	// Beam at 45° starting 5 cm from the wall in a 10 cm wide, 40 cm deep
	// water column: wall contacts at depths of 5, 15, 25, and 35 cm.
	if n := waterReflections(45, 10, 40, 5); n != 4 {
		t.Errorf("45°: have %d reflections, want 4", n)
	}
}

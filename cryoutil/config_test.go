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

package cryoutil

import (
	"math"
	"os"
	"testing"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/cryoconite"
)

func TestCheckLogFile(t *testing.T) {
	if have := checkLogFile("", "out/result.csv"); have != "out/result.log" {
		t.Errorf("have %s, want out/result.log", have)
	}
	os.Setenv("CRYOCONITE_TEST_DIR", "tmp")
	defer os.Unsetenv("CRYOCONITE_TEST_DIR")
	if have := checkLogFile("${CRYOCONITE_TEST_DIR}/run.log", "result.csv"); have != "tmp/run.log" {
		t.Errorf("have %s, want tmp/run.log", have)
	}
}

func TestCheckOutputFile(t *testing.T) {
	if _, err := checkOutputFile(""); err == nil {
		t.Error("expected an error for an empty path")
	}
	if _, err := checkOutputFile("not_a_directory/out.csv"); err == nil {
		t.Error("expected an error for a missing directory")
	}
	if f, err := checkOutputFile("testdata/out.csv"); err != nil || f != "testdata/out.csv" {
		t.Errorf("have %s, %v", f, err)
	}
}

func TestCheckDomainPolicy(t *testing.T) {
	p, err := checkDomainPolicy("reflect")
	if err != nil || p != cryoconite.ReflectOnDomainError {
		t.Errorf("have %v, %v", p, err)
	}
	if _, err := checkDomainPolicy("skip"); err == nil {
		t.Error("expected an error")
	}
}

func TestCheckDiffuseModel(t *testing.T) {
	for _, m := range []string{"tabulated", "BulkIce"} {
		if _, err := checkDiffuseModel(m); err != nil {
			t.Errorf("%s: %v", m, err)
		}
	}
	if _, err := checkDiffuseModel("twostream"); err == nil {
		t.Error("expected an error")
	}
}

func TestSolarZenith(t *testing.T) {
	cfg := viper.New()
	cfg.Set("SolarZenith", 35.0)
	z, err := solarZenith(cfg)
	if err != nil || z != 35 {
		t.Errorf("have %g, %v; want 35", z, err)
	}

	cfg.Set("Time", "2016-07-21 14:00:00")
	cfg.Set("Latitude", 67.04)
	cfg.Set("Longitude", -49.49)
	z, err = solarZenith(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(z-48.6) > 1 {
		t.Errorf("have zenith %g, want about 48.6", z)
	}

	cfg.Set("Time", "2016-12-21 14:00:00")
	if _, err = solarZenith(cfg); err == nil {
		t.Error("expected an error during the polar night")
	}
	cfg.Set("Time", "yesterday")
	if _, err = solarZenith(cfg); err == nil {
		t.Error("expected an error for an invalid time")
	}
}

func TestReadSiteConfig(t *testing.T) {
	c, err := ReadSiteConfig("testdata/site.toml")
	if err != nil {
		t.Fatal(err)
	}
	if c.StudyArea != 50 || c.FloorPoints != 3 || len(c.Class) != 2 {
		t.Fatalf("unexpected configuration %+v", c)
	}
	want := ClassConfig{Name: "large", Depth: 40, Width: 30, WaterDepth: 30, Count: 10}
	if c.Class[1] != want {
		t.Errorf("have %+v, want %+v", c.Class[1], want)
	}

	s, err := c.Site(cryoconite.Spectrum{0.5, 0.6}, cryoconite.FluxVector{10, 20})
	if err != nil {
		t.Fatal(err)
	}
	if s.SurfaceUpwelling[0] != 6 || s.SurfaceUpwelling[1] != 12 {
		t.Errorf("surface upwelling: have %v, want [6 12]", s.SurfaceUpwelling)
	}
	if s.Classes[0].Name != "small" || s.Classes[0].Hole.Width != 8 || s.Classes[0].Count != 200 {
		t.Errorf("unexpected class %+v", s.Classes[0])
	}

	if _, err := ReadSiteConfig("testdata/missing.toml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestModelConfig(t *testing.T) {
	cfg := viper.New()
	cfg.SetConfigFile("testdata/config.toml")
	if err := cfg.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	cfg.Set("Diffuse.Model", "bulkice")
	cfg.Set("Diffuse.SurfaceAlbedo", 0.6)
	cfg.Set("Diffuse.Density", 917.0)
	m, diffuse, err := ModelConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Wavelengths) != 470 || len(m.Incoming) != 470 || m.Media.Ice.Len() != 470 {
		t.Fatalf("inputs are not on the wavelength grid")
	}
	if m.SolarZenith != 50 || m.DomainPolicy != cryoconite.ReflectOnDomainError || m.CryoconiteAlbedo[100] != 0.2 {
		t.Errorf("unexpected model settings %v, %v, %v", m.SolarZenith, m.DomainPolicy, m.CryoconiteAlbedo[100])
	}
	for i, n := range m.Media.Ice.N {
		if n < 1 {
			t.Errorf("band %d: ice index %g should be clamped to 1", i, n)
		}
	}
	shallow, err := diffuse(cryoconite.Hole{Depth: 10, Width: 10})
	if err != nil {
		t.Fatal(err)
	}
	deep, err := diffuse(cryoconite.Hole{Depth: 100, Width: 10})
	if err != nil {
		t.Fatal(err)
	}
	if !(shallow.Sum() > deep.Sum()) || !(shallow.Sum() < 0.4*m.Incoming.Sum()) {
		t.Errorf("diffuse flux: shallow %g, deep %g, incoming %g", shallow.Sum(), deep.Sum(), m.Incoming.Sum())
	}

	if h := HoleConfig(cfg); h != (cryoconite.Hole{Depth: 60, Width: 30, WaterDepth: 40, Point: 15}) {
		t.Errorf("unexpected hole %+v", h)
	}
}

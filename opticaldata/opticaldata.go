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

// Package opticaldata reads refractive index tables and spectra from CSV
// files and interpolates them onto a model wavelength grid.
package opticaldata

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/spatialmodel/cryoconite"
	"gonum.org/v1/gonum/interp"
)

// Column names used in input files.
const (
	WavelengthCol = "wavelength"
	NCol          = "n"
	KCol          = "k"
	ValueCol      = "value"
)

// Source provides the refractive index of a medium on a wavelength grid.
type Source interface {
	Table(wl cryoconite.Spectrum) (cryoconite.OpticalTable, error)
}

// Constant is a medium with the same refractive index at all wavelengths.
type Constant struct {
	N, K float64
}

// Air is the refractive index used for air.
var Air = Constant{N: 1, K: 1.e-8}

// Table implements Source.
func (c Constant) Table(wl cryoconite.Spectrum) (cryoconite.OpticalTable, error) {
	t := cryoconite.OpticalTable{N: make([]float64, len(wl)), K: make([]float64, len(wl))}
	for i := range wl {
		t.N[i] = c.N
		t.K[i] = c.K
	}
	return t, nil
}

// Table is a refractive index table on its native wavelength grid.
type Table struct {
	// Wavelength is in μm and must be strictly increasing.
	Wavelength []float64
	N, K       []float64
}

// ReadTable reads a refractive index table from CSV data with the
// columns "wavelength" [μm], "n", and "k".
func ReadTable(r io.Reader) (*Table, error) {
	df, err := readCSV(r, WavelengthCol, NCol, KCol)
	if err != nil {
		return nil, err
	}
	return &Table{
		Wavelength: df.Col(WavelengthCol).Float(),
		N:          df.Col(NCol).Float(),
		K:          df.Col(KCol).Float(),
	}, nil
}

// ReadTableFile reads a refractive index table from the named file.
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("opticaldata: %v", err)
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("opticaldata: reading %s: %v", path, err)
	}
	return t, nil
}

// Table implements Source by linearly interpolating t onto wl. Values
// outside of the range of the table take the value at the nearest end.
func (t *Table) Table(wl cryoconite.Spectrum) (cryoconite.OpticalTable, error) {
	n, err := Interpolate(t.Wavelength, t.N, wl)
	if err != nil {
		return cryoconite.OpticalTable{}, fmt.Errorf("opticaldata: real index: %v", err)
	}
	k, err := Interpolate(t.Wavelength, t.K, wl)
	if err != nil {
		return cryoconite.OpticalTable{}, fmt.Errorf("opticaldata: imaginary index: %v", err)
	}
	return cryoconite.OpticalTable{N: n, K: k}, nil
}

// Interpolate linearly interpolates the values y, tabulated at
// wavelengths x, onto wl.
func Interpolate(x, y []float64, wl cryoconite.Spectrum) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%d wavelengths but %d values", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("no values to interpolate")
	}
	out := make([]float64, len(wl))
	if len(x) == 1 {
		for i := range out {
			out[i] = y[0]
		}
		return out, nil
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("wavelengths must be strictly increasing but %g follows %g", x[i], x[i-1])
		}
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(x, y); err != nil {
		return nil, err
	}
	for i, w := range wl {
		out[i] = pl.Predict(w)
	}
	return out, nil
}

// Provider implements cryoconite.OpticalProvider.
type Provider struct {
	Air, Water, Ice Source
}

// NewFileProvider returns a Provider that uses constant properties for air
// and reads water and ice properties from the named files.
func NewFileProvider(waterFile, iceFile string) (*Provider, error) {
	w, err := ReadTableFile(waterFile)
	if err != nil {
		return nil, err
	}
	i, err := ReadTableFile(iceFile)
	if err != nil {
		return nil, err
	}
	return &Provider{Air: Air, Water: w, Ice: i}, nil
}

// Load implements cryoconite.OpticalProvider.
func (p *Provider) Load(m cryoconite.Medium, wl cryoconite.Spectrum) (cryoconite.OpticalTable, error) {
	var s Source
	switch m {
	case cryoconite.Air:
		s = p.Air
	case cryoconite.Water:
		s = p.Water
	case cryoconite.Ice:
		s = p.Ice
	}
	if s == nil {
		return cryoconite.OpticalTable{}, fmt.Errorf("opticaldata: no data for %s", m)
	}
	return s.Table(wl)
}

// readCSV reads CSV data with a header row and checks that it contains the
// required numeric columns.
func readCSV(r io.Reader, cols ...string) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r, dataframe.WithDelimiter(','), dataframe.HasHeader(true))
	if df.Err != nil {
		return df, df.Err
	}
	if df.Nrow() == 0 {
		return df, fmt.Errorf("no data rows")
	}
	have := make(map[string]bool)
	for _, n := range df.Names() {
		have[n] = true
	}
	for _, c := range cols {
		if !have[c] {
			return df, fmt.Errorf("missing column %q", c)
		}
	}
	return df, nil
}

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

package opticaldata

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/spatialmodel/cryoconite"
)

// minIncoming replaces non-positive incoming irradiance values.
const minIncoming = 1.e-30

// ReadSpectrum reads CSV data with the columns "wavelength" [μm] and
// "value" and interpolates the values onto wl.
func ReadSpectrum(r io.Reader, wl cryoconite.Spectrum) (cryoconite.FluxVector, error) {
	df, err := readCSV(r, WavelengthCol, ValueCol)
	if err != nil {
		return nil, err
	}
	v, err := Interpolate(df.Col(WavelengthCol).Float(), df.Col(ValueCol).Float(), wl)
	if err != nil {
		return nil, err
	}
	return cryoconite.FluxVector(v), nil
}

// ReadSpectrumFile reads a spectrum from the named file.
func ReadSpectrumFile(path string, wl cryoconite.Spectrum) (cryoconite.FluxVector, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("opticaldata: %v", err)
	}
	defer f.Close()
	s, err := ReadSpectrum(f, wl)
	if err != nil {
		return nil, fmt.Errorf("opticaldata: reading %s: %v", path, err)
	}
	return s, nil
}

// ReadIncomingFile reads an incoming irradiance spectrum from the named
// file. Values that are not positive are replaced with 1e-30.
func ReadIncomingFile(path string, wl cryoconite.Spectrum) (cryoconite.FluxVector, error) {
	s, err := ReadSpectrumFile(path, wl)
	if err != nil {
		return nil, err
	}
	for i, v := range s {
		if !(v > 0) {
			s[i] = minIncoming
		}
	}
	return s, nil
}

// WriteSpectra writes spectra sharing the grid wl to w as CSV, with the
// wavelengths in the first column.
func WriteSpectra(w io.Writer, wl cryoconite.Spectrum, names []string, values ...[]float64) error {
	if len(names) != len(values) {
		return fmt.Errorf("opticaldata: %d names for %d spectra", len(names), len(values))
	}
	cols := []series.Series{series.New([]float64(wl), series.Float, WavelengthCol)}
	for i, v := range values {
		if len(v) != len(wl) {
			return fmt.Errorf("opticaldata: spectrum %s has %d values but the grid has %d bands",
				names[i], len(v), len(wl))
		}
		cols = append(cols, series.New(v, series.Float, names[i]))
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

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

// Package fieldcheck compares modeled irradiance at cryoconite hole floors
// with pyranometer measurements made in the field.
package fieldcheck

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/spatialmodel/cryoconite"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Column names in measurement files.
const (
	DepthCol = "HoleDepth(mm)"
	WidthCol = "HoleWidth(mm)"
	RatioCol = "Ratio"
)

// Measurement is one field measurement.
type Measurement struct {
	// HoleDepth and HoleWidth are in mm.
	HoleDepth, HoleWidth float64

	// Ratio is the measured ratio of the irradiance at the hole floor to
	// the incoming irradiance.
	Ratio float64
}

// ReadMeasurements reads measurements from CSV data with the columns
// "HoleDepth(mm)", "HoleWidth(mm)", and "Ratio".
func ReadMeasurements(r io.Reader) ([]Measurement, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, fmt.Errorf("fieldcheck: %v", df.Err)
	}
	have := make(map[string]bool)
	for _, n := range df.Names() {
		have[n] = true
	}
	for _, c := range []string{DepthCol, WidthCol, RatioCol} {
		if !have[c] {
			return nil, fmt.Errorf("fieldcheck: missing column %q", c)
		}
	}
	d, w, ratio := df.Col(DepthCol).Float(), df.Col(WidthCol).Float(), df.Col(RatioCol).Float()
	ms := make([]Measurement, df.Nrow())
	for i := range ms {
		ms[i] = Measurement{HoleDepth: d[i], HoleWidth: w[i], Ratio: ratio[i]}
	}
	return ms, nil
}

// ReadMeasurementsFile reads measurements from the named file.
func ReadMeasurementsFile(path string) ([]Measurement, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("fieldcheck: %v", err)
	}
	defer f.Close()
	return ReadMeasurements(f)
}

// Config specifies how measurements are converted into model holes.
type Config struct {
	// SensorHeight is the height of the pyranometer above the hole floor [cm].
	SensorHeight float64

	// WaterFraction is the fraction of the modeled hole that is filled with
	// water. The water depth is rounded to the nearest cm.
	WaterFraction float64

	// Bands is the number of bands, starting with the shortest wavelength,
	// that the pyranometer is sensitive to.
	Bands int
}

// DefaultConfig holds the settings used for the standard field campaign.
var DefaultConfig = Config{SensorHeight: 5, WaterFraction: 0.7, Bands: 40}

// Hole returns the modeled hole for measurement m, with the sample point
// at the center of the floor.
func (c Config) Hole(m Measurement) (cryoconite.Hole, error) {
	d := m.HoleDepth/10 - c.SensorHeight
	w := m.HoleWidth / 10
	if !(d > 0) {
		return cryoconite.Hole{}, fmt.Errorf("fieldcheck: hole depth %g mm is not greater than the sensor height", m.HoleDepth)
	}
	return cryoconite.Hole{
		Depth:      d,
		Width:      w,
		WaterDepth: math.Round(d * c.WaterFraction),
		Point:      w / 2,
	}, nil
}

// FloorRatio returns the ratio of the direct plus diffuse irradiance
// reaching the floor in the first n bands to the total incoming irradiance.
func FloorRatio(r *cryoconite.FluxResult, n int) float64 {
	if n > len(r.DirectAtFloor) || n <= 0 {
		n = len(r.DirectAtFloor)
	}
	if r.TotalIncoming == 0 {
		return 0
	}
	return (floats.Sum(r.DirectAtFloor[:n]) + floats.Sum(r.DiffuseAtFloor[:n])) / r.TotalIncoming
}

// Comparison holds the results of comparing the model with measurements.
type Comparison struct {
	Model, Field []float64

	// AbsError is |Model - Field| for each measurement.
	AbsError []float64

	// Mean and Std are the mean and population standard deviation of AbsError.
	Mean, Std float64
}

// Compare compares modeled and measured ratios.
func Compare(model, field []float64) (*Comparison, error) {
	if len(model) != len(field) || len(model) == 0 {
		return nil, fmt.Errorf("fieldcheck: %d modeled and %d measured values", len(model), len(field))
	}
	c := &Comparison{Model: model, Field: field, AbsError: make([]float64, len(model))}
	for i := range model {
		c.AbsError[i] = math.Abs(model[i] - field[i])
	}
	c.Mean, c.Std = stat.PopMeanStdDev(c.AbsError, nil)
	return c, nil
}

// Run models each measurement using base for everything other than the
// hole geometry and the diffuse floor flux, which is calculated by diffuse
// (if it is not nil), and compares the results with the measurements.
func (c Config) Run(base *cryoconite.Model, diffuse cryoconite.DiffuseFloorFunc, ms []Measurement) (*Comparison, error) {
	model := make([]float64, len(ms))
	field := make([]float64, len(ms))
	for i, meas := range ms {
		h, err := c.Hole(meas)
		if err != nil {
			return nil, err
		}
		m := *base
		m.Hole = h
		if diffuse != nil {
			if m.DiffuseFloor, err = diffuse(h); err != nil {
				return nil, fmt.Errorf("fieldcheck: measurement %d: %v", i, err)
			}
		}
		r, err := m.Run()
		if r == nil {
			return nil, fmt.Errorf("fieldcheck: measurement %d: %v", i, err)
		}
		model[i] = FloorRatio(r, c.Bands)
		field[i] = meas.Ratio
	}
	return Compare(model, field)
}

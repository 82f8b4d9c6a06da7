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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/cryoconite"
	"github.com/spatialmodel/cryoconite/fieldcheck"
	"github.com/spatialmodel/cryoconite/internal/hash"
	"github.com/spatialmodel/cryoconite/opticaldata"
	"github.com/spf13/cobra"
)

// newLogger returns a logger that writes to the output of cmd and to
// logFile. The returned function closes the log file.
func newLogger(cmd *cobra.Command, logFile string) (*logrus.Logger, func(), error) {
	f, err := os.Create(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cryoconite: problem creating log file: %v", err)
	}
	var stdout io.Writer = os.Stdout
	if cmd != nil {
		stdout = cmd.OutOrStdout()
	}
	log := logrus.New()
	log.SetOutput(io.MultiWriter(stdout, f))
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return log, func() { f.Close() }, nil
}

// start sets up logging for a calculation with model m and returns the
// logger to use for it.
func start(cmd *cobra.Command, logFile string, m *cryoconite.Model, kind string) (*logrus.Entry, func(), error) {
	log, closeLog, err := newLogger(cmd, logFile)
	if err != nil {
		return nil, nil, err
	}
	// The run identifier only depends on the model inputs.
	m.Log = nil
	entry := log.WithField("run", hash.Key(m))
	m.Log = entry
	entry.WithFields(logrus.Fields{
		"version":     cryoconite.Version,
		"calculation": kind,
		"zenith":      m.SolarZenith,
		"bands":       len(m.Wavelengths),
	}).Info("cryoconite: starting calculation")
	return entry, closeLog, nil
}

// Run calculates the energy balance at one point on the floor of the hole
// in m, writing spectral results to OutputFile and log messages to LogFile
// and the output of CobraCommand. If the internal reflection calculation
// does not converge, the results are still written and the
// *cryoconite.ConvergenceError is returned.
func Run(CobraCommand *cobra.Command, LogFile, OutputFile string, m *cryoconite.Model) error {
	log, closeLog, err := start(CobraCommand, LogFile, m, "point")
	if err != nil {
		return err
	}
	defer closeLog()
	startTime := time.Now()

	r, err := m.Run()
	if r == nil {
		return err
	}
	if werr := writeResult(OutputFile, m, r); werr != nil {
		return werr
	}
	log.WithFields(logrus.Fields{
		"incoming":          r.TotalIncoming,
		"absorbed":          r.Absorbed().Sum(),
		"surface_reflected": r.SurfaceReflected.Sum(),
		"iterations":        r.Iterations,
		"duration":          time.Since(startTime),
	}).Info("cryoconite: calculation complete")
	return err
}

// resultColumns are the names of the spectral output columns.
var resultColumns = []string{
	"incoming", "direct_at_floor", "diffuse_at_floor", "direct_absorbed",
	"diffuse_absorbed", "internal_absorbed", "absorbed", "water_absorbed",
	"surface_reflected", "surface_transmitted", "escaped",
}

func writeResult(path string, m *cryoconite.Model, r *cryoconite.FluxResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cryoconite: problem creating output file: %v", err)
	}
	defer f.Close()
	return opticaldata.WriteSpectra(f, m.Wavelengths, resultColumns,
		m.Incoming, r.DirectAtFloor, r.DiffuseAtFloor, r.DirectAbsorbed,
		r.DiffuseAbsorbed, r.InternalAbsorbed, r.Absorbed(), r.WaterAbsorbed,
		r.SurfaceReflected, r.SurfaceTransmitted, r.Escaped)
}

// RunProfile calculates the energy balance at each of the given points
// across the floor of the hole in m and writes the broadband results at
// each point to OutputFile.
func RunProfile(CobraCommand *cobra.Command, LogFile, OutputFile string, m *cryoconite.Model, points []float64) error {
	log, closeLog, err := start(CobraCommand, LogFile, m, "profile")
	if err != nil {
		return err
	}
	defer closeLog()

	p, err := m.FloorProfile(points)
	if p == nil {
		return err
	}
	absorbed := p.Broadband((*cryoconite.FluxResult).Absorbed)
	if werr := writeTable(OutputFile,
		[]string{"point", "direct_at_floor", "direct_absorbed", "diffuse_absorbed", "internal_absorbed", "absorbed"},
		points,
		p.Broadband(func(r *cryoconite.FluxResult) cryoconite.FluxVector { return r.DirectAtFloor }),
		p.Broadband(func(r *cryoconite.FluxResult) cryoconite.FluxVector { return r.DirectAbsorbed }),
		p.Broadband(func(r *cryoconite.FluxResult) cryoconite.FluxVector { return r.DiffuseAbsorbed }),
		p.Broadband(func(r *cryoconite.FluxResult) cryoconite.FluxVector { return r.InternalAbsorbed }),
		absorbed,
	); werr != nil {
		return werr
	}
	log.WithFields(logrus.Fields{
		"points":        len(points),
		"mean_absorbed": p.Mean((*cryoconite.FluxResult).Absorbed).Sum(),
		"converged":     p.Converged(),
	}).Info("cryoconite: floor profile complete")
	return err
}

// RunSite calculates the energy balance of site, using m for everything
// other than the hole geometry and diffuse for the diffuse flux at the
// floor of each class of holes, and writes the spectral results to
// OutputFile.
func RunSite(CobraCommand *cobra.Command, LogFile, OutputFile string, m *cryoconite.Model,
	diffuse cryoconite.DiffuseFloorFunc, site *cryoconite.Site) error {
	log, closeLog, err := start(CobraCommand, LogFile, m, "site")
	if err != nil {
		return err
	}
	defer closeLog()

	r, err := site.Run(m, diffuse)
	if r == nil {
		return err
	}
	names := []string{"upwelling", "albedo"}
	values := [][]float64{r.Upwelling, r.Albedo}
	for _, c := range r.Classes {
		names = append(names, "absorbed_"+c.Class.Name)
		values = append(values, c.Absorbed)
		log.WithFields(logrus.Fields{
			"class":          c.Class.Name,
			"count":          c.Class.Count,
			"area":           c.Area,
			"absorbed_power": c.AbsorbedPower,
		}).Info("cryoconite: hole class complete")
	}
	f, ferr := os.Create(OutputFile)
	if ferr != nil {
		return fmt.Errorf("cryoconite: problem creating output file: %v", ferr)
	}
	defer f.Close()
	if werr := opticaldata.WriteSpectra(f, m.Wavelengths, names, values...); werr != nil {
		return werr
	}
	log.WithFields(logrus.Fields{
		"hole_area":         r.HoleArea,
		"incoming_power":    r.IncomingPower,
		"absorbed_power":    r.AbsorbedPower,
		"fraction_absorbed": r.FractionAbsorbed,
	}).Info("cryoconite: site calculation complete")
	return err
}

// RunFieldCheck models each of the field measurements ms using m for
// everything other than the hole geometry and compares the results with
// the measurements, writing the comparison for each hole to OutputFile.
func RunFieldCheck(CobraCommand *cobra.Command, LogFile, OutputFile string, m *cryoconite.Model,
	diffuse cryoconite.DiffuseFloorFunc, c fieldcheck.Config, ms []fieldcheck.Measurement) error {
	log, closeLog, err := start(CobraCommand, LogFile, m, "fieldcheck")
	if err != nil {
		return err
	}
	defer closeLog()

	cmp, err := c.Run(m, diffuse, ms)
	if err != nil {
		return err
	}
	depth := make([]float64, len(ms))
	width := make([]float64, len(ms))
	for i, meas := range ms {
		depth[i] = meas.HoleDepth
		width[i] = meas.HoleWidth
	}
	if err := writeTable(OutputFile,
		[]string{fieldcheck.DepthCol, fieldcheck.WidthCol, "model", "field", "abs_error"},
		depth, width, cmp.Model, cmp.Field, cmp.AbsError); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"holes":          len(ms),
		"mean_abs_error": cmp.Mean,
		"std_abs_error":  cmp.Std,
	}).Info("cryoconite: field comparison complete")
	return nil
}

// writeTable writes columns of equal length to a CSV file.
func writeTable(path string, names []string, cols ...[]float64) error {
	s := make([]series.Series, len(cols))
	for i, c := range cols {
		s[i] = series.New(c, series.Float, names[i])
	}
	df := dataframe.New(s...)
	if df.Err != nil {
		return fmt.Errorf("cryoconite: preparing output: %v", df.Err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cryoconite: problem creating output file: %v", err)
	}
	defer f.Close()
	return df.WriteCSV(f)
}

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
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/cryoconite"
	"github.com/spatialmodel/cryoconite/opticaldata"
	"github.com/spatialmodel/cryoconite/science/diffuse/bulkice"
	"github.com/spatialmodel/cryoconite/science/diffuse/tabulated"
	"github.com/spatialmodel/cryoconite/solar"
	"github.com/spf13/cast"
)

// Diffuse flux models.
const (
	tabulatedDiffuse = "tabulated"
	bulkIceDiffuse   = "bulkice"
)

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expand any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="output.csv")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("cryoconite: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}

// checkDomainPolicy makes sure that an acceptable domain policy was specified.
func checkDomainPolicy(p string) (cryoconite.DomainPolicy, error) {
	dp, err := cryoconite.ParseDomainPolicy(os.ExpandEnv(p))
	if err != nil {
		return dp, fmt.Errorf("the DomainPolicy variable in the configuration file "+
			"needs to be set to either 'abort' or 'reflect', but is currently set to `%s`", p)
	}
	return dp, nil
}

// checkDiffuseModel expands any environment variables in the diffuse model
// name and ensures that an acceptable value was specified.
func checkDiffuseModel(m string) (string, error) {
	m = strings.ToLower(os.ExpandEnv(m))
	if m != tabulatedDiffuse && m != bulkIceDiffuse {
		return m, fmt.Errorf("the Diffuse.Model variable in the configuration file "+
			"needs to be set to either '%s' or '%s', but is currently set to `%s`",
			tabulatedDiffuse, bulkIceDiffuse, m)
	}
	return m, nil
}

// HoleConfig returns the hole geometry specified in cfg.
func HoleConfig(cfg *viper.Viper) cryoconite.Hole {
	return cryoconite.Hole{
		Depth:      cfg.GetFloat64("Hole.Depth"),
		Width:      cfg.GetFloat64("Hole.Width"),
		WaterDepth: cfg.GetFloat64("Hole.WaterDepth"),
		Point:      cfg.GetFloat64("Hole.Point"),
	}
}

// solarPosition returns the position of the sun at the time and location
// specified in cfg.
func solarPosition(cfg *viper.Viper) (solar.Position, error) {
	t := cfg.Get("Time")
	if cast.ToString(t) == "" {
		return solar.Position{}, fmt.Errorf("cryoconite: the Time configuration variable is not set")
	}
	tt, err := cast.ToTimeE(t)
	if err != nil {
		return solar.Position{}, fmt.Errorf("cryoconite: invalid Time `%v`: %v", t, err)
	}
	return solar.At(tt.UTC(), cfg.GetFloat64("Latitude"), cfg.GetFloat64("Longitude")), nil
}

// solarZenith returns the solar zenith angle specified in cfg, calculating
// it from the time and location if a time is specified.
func solarZenith(cfg *viper.Viper) (float64, error) {
	if cast.ToString(cfg.Get("Time")) == "" {
		return cfg.GetFloat64("SolarZenith"), nil
	}
	p, err := solarPosition(cfg)
	if err != nil {
		return 0, err
	}
	if !p.Daylight() {
		return 0, fmt.Errorf("cryoconite: the sun is below the horizon at %v (zenith %.2f°)",
			cfg.Get("Time"), p.Zenith)
	}
	return p.Zenith, nil
}

// spectrumConfig returns the wavelength grid specified in cfg.
func spectrumConfig(cfg *viper.Viper) (cryoconite.Spectrum, error) {
	return cryoconite.NewSpectrum(
		cfg.GetFloat64("Wavelength.Start"),
		cfg.GetFloat64("Wavelength.End"),
		cfg.GetFloat64("Wavelength.Step"),
	)
}

// ModelConfig reads the model inputs specified in cfg. The hole geometry
// and the diffuse flux at the floor are not set; the returned function
// calculates the diffuse flux for any hole.
func ModelConfig(cfg *viper.Viper) (*cryoconite.Model, cryoconite.DiffuseFloorFunc, error) {
	wl, err := spectrumConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	zenith, err := solarZenith(cfg)
	if err != nil {
		return nil, nil, err
	}
	policy, err := checkDomainPolicy(cfg.GetString("DomainPolicy"))
	if err != nil {
		return nil, nil, err
	}
	diffuseModel, err := checkDiffuseModel(cfg.GetString("Diffuse.Model"))
	if err != nil {
		return nil, nil, err
	}

	p, err := opticaldata.NewFileProvider(cfg.GetString("OpticalData.Water"), cfg.GetString("OpticalData.Ice"))
	if err != nil {
		return nil, nil, err
	}
	md, err := cryoconite.LoadMedia(p, wl)
	if err != nil {
		return nil, nil, err
	}
	incoming, err := opticaldata.ReadIncomingFile(cfg.GetString("IncomingFile"), wl)
	if err != nil {
		return nil, nil, err
	}
	albedo, err := cryoconiteAlbedo(cfg, wl)
	if err != nil {
		return nil, nil, err
	}

	var f cryoconite.DiffuseFluxer
	switch diffuseModel {
	case tabulatedDiffuse:
		d := &tabulated.Diffuse{Albedo: cfg.GetFloat64("Diffuse.SurfaceAlbedo")}
		if d.Floor, err = opticaldata.ReadSpectrumFile(cfg.GetString("Diffuse.File"), wl); err != nil {
			return nil, nil, err
		}
		if ref := cfg.GetString("Diffuse.ReferenceFile"); ref != "" {
			if d.Reference, err = opticaldata.ReadSpectrumFile(ref, wl); err != nil {
				return nil, nil, err
			}
		}
		f = d
	case bulkIceDiffuse:
		f = &bulkice.Model{Ice: md.Ice, SurfaceAlbedo: cfg.GetFloat64("Diffuse.SurfaceAlbedo")}
	}
	layers := cryoconite.LayerConfig{
		Density:     []float64{cfg.GetFloat64("Diffuse.Density")},
		GrainRadius: []float64{cfg.GetFloat64("Diffuse.GrainRadius")},
		LayerType:   []int{1},
		Algae:       []float64{0},
		SolarZenith: zenith,
	}

	m := &cryoconite.Model{
		SolarZenith:      zenith,
		Wavelengths:      wl,
		Incoming:         incoming,
		CryoconiteAlbedo: albedo,
		Media:            md,
		Tolerance:        cfg.GetFloat64("Tolerance"),
		MaxIterations:    cfg.GetInt("MaxIterations"),
		DomainPolicy:     policy,
	}
	return m, cryoconite.HoleDiffuse(f, layers, wl, incoming), nil
}

// cryoconiteAlbedo returns the spectral albedo of the cryoconite, either
// read from CryoconiteAlbedoFile or constant at CryoconiteAlbedo.
func cryoconiteAlbedo(cfg *viper.Viper, wl cryoconite.Spectrum) ([]float64, error) {
	if f := cfg.GetString("CryoconiteAlbedoFile"); f != "" {
		return opticaldata.ReadSpectrumFile(f, wl)
	}
	a := cfg.GetFloat64("CryoconiteAlbedo")
	o := make([]float64, len(wl))
	for i := range o {
		o[i] = a
	}
	return o, nil
}

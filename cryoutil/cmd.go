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

// Package cryoutil contains the command-line interface for the cryoconite
// hole energy balance model.
package cryoutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/cryoconite"
	"github.com/spatialmodel/cryoconite/fieldcheck"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

const testdata = "${GOPATH}/src/github.com/spatialmodel/cryoconite/cryoutil/testdata/"

func init() {
	holeSets := []*pflag.FlagSet{runCmd.Flags(), profileCmd.Flags()}
	outputSets := []*pflag.FlagSet{runCmd.Flags(), profileCmd.Flags(), siteCmd.Flags(), fieldCheckCmd.Flags()}

	// Options are the configuration options available to the model.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Hole.Depth",
			usage: `
              Hole.Depth is the distance from the ice surface to the hole floor [cm].`,
			defaultVal: 60.0,
			flagsets:   holeSets,
		},
		{
			name: "Hole.Width",
			usage: `
              Hole.Width is the diameter of the hole [cm].`,
			defaultVal: 30.0,
			flagsets:   holeSets,
		},
		{
			name: "Hole.WaterDepth",
			usage: `
              Hole.WaterDepth is the depth of the water above the hole floor [cm].`,
			defaultVal: 40.0,
			flagsets:   holeSets,
		},
		{
			name: "Hole.Point",
			usage: `
              Hole.Point is the horizontal distance from the sunward wall to the
              point on the floor where the energy balance is calculated [cm].`,
			defaultVal: 15.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SolarZenith",
			usage: `
              SolarZenith is the solar zenith angle [degrees]. It is ignored
              if Time is specified.`,
			shorthand:  "z",
			defaultVal: 60.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Time",
			usage: `
              Time is the time of the simulation, for example "2016-07-21 14:00:00"
              (UTC). If it is specified, the solar zenith angle is calculated from
              Time, Latitude, and Longitude.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Latitude",
			usage: `
              Latitude is the latitude of the site [degrees north].`,
			defaultVal: 67.04,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Longitude",
			usage: `
              Longitude is the longitude of the site [degrees east].`,
			defaultVal: -49.49,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "CryoconiteAlbedo",
			usage: `
              CryoconiteAlbedo is the albedo of the cryoconite on the hole floor
              at all wavelengths. It is ignored if CryoconiteAlbedoFile is specified.`,
			defaultVal: 0.2,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "CryoconiteAlbedoFile",
			usage: `
              CryoconiteAlbedoFile is the path to a CSV file with columns "wavelength"
              and "value" holding the spectral albedo of the cryoconite. It can include
              environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Tolerance",
			usage: `
              Tolerance is the broadband upwelling flux [W m⁻²] below which the
              internal reflection calculation stops. It must be greater than zero.`,
			defaultVal: 1.e-10,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "MaxIterations",
			usage: `
              MaxIterations is the maximum number of internal reflection iterations.
              If it is 0, the default of 10000 is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "DomainPolicy",
			usage: `
              DomainPolicy specifies what happens when the direct beam cannot be
              refracted into the water. Valid options are "abort" and "reflect".`,
			defaultVal: "abort",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Wavelength.Start",
			usage: `
              Wavelength.Start is the first wavelength in the spectrum [μm].`,
			defaultVal: 0.3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Wavelength.End",
			usage: `
              Wavelength.End is the end of the spectrum (exclusive) [μm].`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Wavelength.Step",
			usage: `
              Wavelength.Step is the width of each band [μm].`,
			defaultVal: 0.01,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OpticalData.Water",
			usage: `
              OpticalData.Water is the path to a CSV file with columns "wavelength",
              "n", and "k" holding the complex refractive index of water.
              It can include environment variables.`,
			defaultVal: testdata + "water.csv",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OpticalData.Ice",
			usage: `
              OpticalData.Ice is the path to a CSV file with columns "wavelength",
              "n", and "k" holding the complex refractive index of ice.
              It can include environment variables.`,
			defaultVal: testdata + "ice.csv",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "IncomingFile",
			usage: `
              IncomingFile is the path to a CSV file with columns "wavelength" and
              "value" holding the incoming spectral irradiance [W m⁻²] in each band.
              It can include environment variables.`,
			defaultVal: testdata + "incoming.csv",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Diffuse.Model",
			usage: `
              Diffuse.Model specifies how the diffuse flux reaching the hole floor
              is calculated. Valid options are "tabulated", which reads the flux from
              Diffuse.File, and "bulkice", which attenuates the incoming flux through
              a column of ice as deep as the hole.`,
			defaultVal: "bulkice",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Diffuse.File",
			usage: `
              Diffuse.File is the path to a CSV file with columns "wavelength" and
              "value" holding the diffuse flux reaching the hole floor [W m⁻²],
              for example as calculated by a two-stream radiative transfer model.
              It is only used when Diffuse.Model is "tabulated".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Diffuse.ReferenceFile",
			usage: `
              Diffuse.ReferenceFile is the path to a CSV file holding the incoming
              irradiance that Diffuse.File was calculated for. If it is specified,
              the tabulated flux is scaled to the incoming irradiance.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Diffuse.Density",
			usage: `
              Diffuse.Density is the density of the ice surrounding the hole [kg m⁻³].`,
			defaultVal: 850.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Diffuse.GrainRadius",
			usage: `
              Diffuse.GrainRadius is the effective grain radius of the ice
              surrounding the hole [μm].`,
			defaultVal: 1500.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Diffuse.SurfaceAlbedo",
			usage: `
              Diffuse.SurfaceAlbedo is the broadband albedo of the ice surface.`,
			defaultVal: 0.6,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "FloorPoints",
			usage: `
              FloorPoints is the number of points across the hole floor where the
              energy balance is calculated. If it is 0, points are spaced 1 cm apart.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{profileCmd.Flags()},
		},
		{
			name: "SiteFile",
			usage: `
              SiteFile is the path to a TOML file describing the classes of holes
              in a study area. It can include environment variables.`,
			defaultVal: testdata + "site.toml",
			flagsets:   []*pflag.FlagSet{siteCmd.Flags()},
		},
		{
			name: "FieldFile",
			usage: `
              FieldFile is the path to a CSV file of field measurements with the
              columns "HoleDepth(mm)", "HoleWidth(mm)", and "Ratio".`,
			defaultVal: testdata + "field.csv",
			flagsets:   []*pflag.FlagSet{fieldCheckCmd.Flags()},
		},
		{
			name: "FieldCheck.SensorHeight",
			usage: `
              FieldCheck.SensorHeight is the height of the sensor above the
              hole floor [cm].`,
			defaultVal: fieldcheck.DefaultConfig.SensorHeight,
			flagsets:   []*pflag.FlagSet{fieldCheckCmd.Flags()},
		},
		{
			name: "FieldCheck.WaterFraction",
			usage: `
              FieldCheck.WaterFraction is the fraction of the hole depth that is
              assumed to be filled with water.`,
			defaultVal: fieldcheck.DefaultConfig.WaterFraction,
			flagsets:   []*pflag.FlagSet{fieldCheckCmd.Flags()},
		},
		{
			name: "FieldCheck.Bands",
			usage: `
              FieldCheck.Bands is the number of bands, starting at the shortest
              wavelength, that the field sensor measures.`,
			defaultVal: fieldcheck.DefaultConfig.Bands,
			flagsets:   []*pflag.FlagSet{fieldCheckCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the desired output CSV file location. It can
              include environment variables.`,
			shorthand:  "o",
			defaultVal: "cryoconite_output.csv",
			flagsets:   outputSets,
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can include
              environment variables. If LogFile is left blank, the logfile will be saved in
              the same location as the OutputFile.`,
			defaultVal: "",
			flagsets:   outputSets,
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CRYOCONITE")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(profileCmd)
	Root.AddCommand(siteCmd)
	Root.AddCommand(zenithCmd)
	Root.AddCommand(fieldCheckCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("cryoconite: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "cryoconite",
	Short: "An energy balance model for cryoconite holes.",
	Long: `cryoconite calculates how much of the direct and diffuse solar energy
entering a cryoconite hole is absorbed by the sediment on the hole floor,
accounting for reflections off of the hole walls, absorption by the water
column, and repeated internal reflection between the floor and the water surface.
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'CRYOCONITE_var' where 'var' is the
name of the variable to be set, with any periods replaced by underscores.
Paths are additionally allowed to contain environment variables within them.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of cryoconite.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("cryoconite v%s\n", cryoconite.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd calculates the energy balance at one point on the floor of a hole.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Calculate the energy balance at one point on a hole floor.",
	Long: `run calculates the spectral energy absorbed by the cryoconite at the point
Hole.Point on the floor of a hole and writes the results for each band to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		m, diffuse, err := ModelConfig(Cfg)
		if err != nil {
			return err
		}
		m.Hole = HoleConfig(Cfg)
		if m.DiffuseFloor, err = diffuse(m.Hole); err != nil {
			return err
		}
		return Run(cmd, checkLogFile(Cfg.GetString("LogFile"), outputFile), outputFile, m)
	},
	DisableAutoGenTag: true,
}

// profileCmd calculates the energy balance across the floor of a hole.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Calculate the energy balance across a hole floor.",
	Long: `profile calculates the energy absorbed by the cryoconite at FloorPoints
points spaced evenly across the floor of a hole and writes the broadband
results at each point to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		m, diffuse, err := ModelConfig(Cfg)
		if err != nil {
			return err
		}
		m.Hole = HoleConfig(Cfg)
		if m.DiffuseFloor, err = diffuse(m.Hole); err != nil {
			return err
		}
		points := cryoconite.FloorPoints(m.Hole.Width, Cfg.GetInt("FloorPoints"))
		return RunProfile(cmd, checkLogFile(Cfg.GetString("LogFile"), outputFile), outputFile, m, points)
	},
	DisableAutoGenTag: true,
}

// siteCmd calculates the energy balance of a study area.
var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Calculate the energy balance of an area containing many holes.",
	Long: `site calculates the energy absorbed by all of the holes described in SiteFile
and the resulting spectral albedo of the study area, and writes the spectral
results to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		m, diffuse, err := ModelConfig(Cfg)
		if err != nil {
			return err
		}
		sc, err := ReadSiteConfig(Cfg.GetString("SiteFile"))
		if err != nil {
			return err
		}
		site, err := sc.Site(m.Wavelengths, m.Incoming)
		if err != nil {
			return err
		}
		return RunSite(cmd, checkLogFile(Cfg.GetString("LogFile"), outputFile), outputFile, m, diffuse, site)
	},
	DisableAutoGenTag: true,
}

// zenithCmd prints the position of the sun.
var zenithCmd = &cobra.Command{
	Use:   "zenith",
	Short: "Print the position of the sun.",
	Long: `zenith prints the solar zenith angle, elevation, and azimuth at Time,
Latitude, and Longitude.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := solarPosition(Cfg)
		if err != nil {
			return err
		}
		cmd.Printf("zenith: %.4f°\nelevation: %.4f°\nazimuth: %.4f°\n", p.Zenith, p.Elevation, p.Azimuth)
		return nil
	},
	DisableAutoGenTag: true,
}

// fieldCheckCmd compares the model with field measurements.
var fieldCheckCmd = &cobra.Command{
	Use:   "fieldcheck",
	Short: "Compare modeled and measured floor irradiance.",
	Long: `fieldcheck models each of the holes in FieldFile and compares the modeled
ratio of the energy reaching the floor to the incoming energy with the measured
ratio. The results for each hole are written to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		m, diffuse, err := ModelConfig(Cfg)
		if err != nil {
			return err
		}
		ms, err := fieldcheck.ReadMeasurementsFile(Cfg.GetString("FieldFile"))
		if err != nil {
			return err
		}
		fc := fieldcheck.Config{
			SensorHeight:  Cfg.GetFloat64("FieldCheck.SensorHeight"),
			WaterFraction: Cfg.GetFloat64("FieldCheck.WaterFraction"),
			Bands:         Cfg.GetInt("FieldCheck.Bands"),
		}
		return RunFieldCheck(cmd, checkLogFile(Cfg.GetString("LogFile"), outputFile), outputFile, m, diffuse, fc, ms)
	},
	DisableAutoGenTag: true,
}

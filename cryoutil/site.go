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

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/cryoconite"
	"github.com/spatialmodel/cryoconite/opticaldata"
)

// SiteConfig describes a study area containing cryoconite holes.
type SiteConfig struct {
	// StudyArea is the area of the site [m²].
	StudyArea float64

	// FloorPoints is the number of points sampled across each hole floor.
	FloorPoints int

	// SurfaceUpwellingFile is the path to a CSV file holding the upwelling
	// flux from the ice surface between the holes [W m⁻²]. If it is empty,
	// the upwelling flux is SurfaceAlbedo times the incoming irradiance.
	SurfaceUpwellingFile string

	// SurfaceAlbedo is the albedo of the ice surface between the holes.
	SurfaceAlbedo float64

	// Class holds the classes of holes in the site.
	Class []ClassConfig
}

// ClassConfig describes a class of identical holes. Lengths are in cm.
type ClassConfig struct {
	Name                     string
	Depth, Width, WaterDepth float64
	Count                    int
}

// ReadSiteConfig reads a site configuration from the named TOML file.
func ReadSiteConfig(path string) (*SiteConfig, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("cryoconite: problem opening site file: %v", err)
	}
	defer f.Close()
	c := new(SiteConfig)
	if _, err = toml.DecodeReader(f, c); err != nil {
		return nil, fmt.Errorf("cryoconite: problem reading site file %s: %v", path, err)
	}
	return c, nil
}

// Site returns the site described by c on the wavelength grid wl.
func (c *SiteConfig) Site(wl cryoconite.Spectrum, incoming cryoconite.FluxVector) (*cryoconite.Site, error) {
	s := &cryoconite.Site{
		StudyArea:   c.StudyArea,
		FloorPoints: c.FloorPoints,
	}
	if c.SurfaceUpwellingFile != "" {
		up, err := opticaldata.ReadSpectrumFile(c.SurfaceUpwellingFile, wl)
		if err != nil {
			return nil, err
		}
		s.SurfaceUpwelling = up
	} else {
		if !(c.SurfaceAlbedo >= 0 && c.SurfaceAlbedo <= 1) {
			return nil, fmt.Errorf("cryoconite: site surface albedo must be between 0 and 1 but is %g", c.SurfaceAlbedo)
		}
		s.SurfaceUpwelling = incoming.Clone()
		for i := range s.SurfaceUpwelling {
			s.SurfaceUpwelling[i] *= c.SurfaceAlbedo
		}
	}
	for i, cc := range c.Class {
		name := cc.Name
		if name == "" {
			name = fmt.Sprintf("class%d", i)
		}
		s.Classes = append(s.Classes, cryoconite.HoleClass{
			Name:  name,
			Hole:  cryoconite.Hole{Depth: cc.Depth, Width: cc.Width, WaterDepth: cc.WaterDepth},
			Count: cc.Count,
		})
	}
	return s, nil
}

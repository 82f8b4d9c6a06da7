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
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// DomainPolicy specifies what happens when the direct beam cannot be
// refracted into the water in a band.
type DomainPolicy int

const (
	// AbortOnDomainError causes the calculation to fail with a *DomainError.
	AbortOnDomainError DomainPolicy = iota

	// ReflectOnDomainError treats the affected band as fully reflected, so
	// no direct energy reaches the floor in that band.
	ReflectOnDomainError
)

func (p DomainPolicy) String() string {
	switch p {
	case AbortOnDomainError:
		return "abort"
	case ReflectOnDomainError:
		return "reflect"
	default:
		return fmt.Sprintf("DomainPolicy(%d)", int(p))
	}
}

// ParseDomainPolicy returns the policy with the given name ("abort" or
// "reflect").
func ParseDomainPolicy(s string) (DomainPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abort", "":
		return AbortOnDomainError, nil
	case "reflect":
		return ReflectOnDomainError, nil
	}
	return 0, fmt.Errorf("cryoconite: invalid domain policy %q; valid options are 'abort' and 'reflect'", s)
}

// Model holds the inputs for a calculation of the energy balance at one
// point on the floor of a cryoconite hole.
type Model struct {
	// Hole is the hole geometry.
	Hole Hole

	// SolarZenith is the solar zenith angle [degrees].
	SolarZenith float64

	// Wavelengths is the wavelength grid shared by all of the per-band inputs.
	Wavelengths Spectrum

	// Incoming is the incoming direct irradiance in each band [W m⁻²].
	Incoming FluxVector

	// CryoconiteAlbedo is the albedo of the cryoconite in each band.
	CryoconiteAlbedo []float64

	// DiffuseFloor is the diffuse flux reaching the hole floor in each band
	// [W m⁻²], as calculated by a DiffuseFluxer.
	DiffuseFloor FluxVector

	// Media holds the optical properties of air, water, and ice.
	Media Media

	// Tolerance is the convergence threshold for the internal reflection
	// iteration [W m⁻²].
	Tolerance float64

	// MaxIterations limits the internal reflection iteration. If it is
	// zero, DefaultMaxIterations is used.
	MaxIterations int

	// DomainPolicy specifies how bands where the beam cannot be refracted
	// are handled.
	DomainPolicy DomainPolicy

	// Log receives information about the calculation. If it is nil,
	// the logrus standard logger is used.
	Log logrus.FieldLogger
}

// FluxResult holds the partitioning of energy in a cryoconite hole. All
// spectral values are in W m⁻² per band.
type FluxResult struct {
	// DirectAbsorbed and DiffuseAbsorbed are the direct and diffuse energy
	// absorbed by the cryoconite when they first strike the floor.
	DirectAbsorbed, DiffuseAbsorbed FluxVector

	// TotalIncoming is the broadband incoming irradiance.
	TotalIncoming float64

	// DirectAtFloor and DiffuseAtFloor are the direct and diffuse energy
	// arriving at the floor.
	DirectAtFloor, DiffuseAtFloor FluxVector

	// SurfaceReflected is the incoming direct energy reflected by the water surface.
	SurfaceReflected FluxVector

	// Escaped is the energy arriving at the floor minus InternalLoss.
	Escaped FluxVector

	// InternalLoss is the total energy removed during internal reflection.
	InternalLoss FluxVector

	// InternalAbsorbed is the energy absorbed by the cryoconite during
	// internal reflection.
	InternalAbsorbed FluxVector

	// WaterAbsorbed is the energy absorbed by the water column during
	// internal reflection.
	WaterAbsorbed FluxVector

	// SurfaceTransmitted is the upwelling energy that leaves the hole
	// through the water surface during internal reflection.
	SurfaceTransmitted FluxVector

	// Beams hold the per-band details of the direct beam transport.
	Beams []*Beam

	// Iterations is the number of internal reflection iterations.
	Iterations int

	// Converged is false if the internal reflection iteration stopped at
	// its limit.
	Converged bool
}

// Absorbed returns the total energy absorbed by the cryoconite in each band.
func (r *FluxResult) Absorbed() FluxVector {
	o := r.DirectAbsorbed.Clone()
	floats.Add(o, r.DiffuseAbsorbed)
	floats.Add(o, r.InternalAbsorbed)
	return o
}

// CalculateFluxes calculates the partitioning of direct and diffuse energy
// at point h.Point on the floor of hole h, aborting on domain errors.
func CalculateFluxes(h Hole, wl Spectrum, solarZenith float64, incoming FluxVector,
	cryoconiteAlbedo []float64, diffuseFloor FluxVector, md Media, tolerance float64) (*FluxResult, error) {
	m := &Model{
		Hole:             h,
		SolarZenith:      solarZenith,
		Wavelengths:      wl,
		Incoming:         incoming,
		CryoconiteAlbedo: cryoconiteAlbedo,
		DiffuseFloor:     diffuseFloor,
		Media:            md,
		Tolerance:        tolerance,
	}
	return m.Run()
}

// Run performs the calculation. If the internal reflection iteration does
// not converge, the best-effort result is returned along with a
// *ConvergenceError.
func (m *Model) Run() (*FluxResult, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	log := m.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	md, err := m.Media.normalize(len(m.Wavelengths))
	if err != nil {
		return nil, err
	}
	water := m.Hole.WaterDepth > 0

	beams := NewBeams(m.Wavelengths, m.Incoming, 90-m.SolarZenith)
	if err := Calculations(beams,
		Refract(md, water, m.DomainPolicy),
		BoundaryReflectances(md),
		Illuminate(m.Hole),
		BoundaryLosses(water),
		WaterAbsorption(m.Hole, md.Water.K),
	); err != nil {
		return nil, err
	}

	n := len(m.Wavelengths)
	r := &FluxResult{
		DirectAtFloor:    NewFluxVector(n),
		DiffuseAtFloor:   NewFluxVector(n),
		DirectAbsorbed:   NewFluxVector(n),
		DiffuseAbsorbed:  NewFluxVector(n),
		SurfaceReflected: NewFluxVector(n),
		TotalIncoming:    m.Incoming.Sum(),
		Beams:            beams,
	}
	surfaceR := make([]float64, n)
	for i, b := range beams {
		if b.Blocked {
			log.WithFields(logrus.Fields{
				"band":       i,
				"wavelength": b.Wavelength,
			}).Warn("cryoconite: direct beam cannot enter the water; treating it as reflected")
		}
		r.DirectAtFloor[i] = b.Energy
		r.SurfaceReflected[i] = b.SurfaceReflected
		r.DiffuseAtFloor[i] = nonNegative(m.DiffuseFloor[i])
		r.DirectAbsorbed[i] = r.DirectAtFloor[i] * (1 - m.CryoconiteAlbedo[i])
		r.DiffuseAbsorbed[i] = r.DiffuseAtFloor[i] * (1 - m.CryoconiteAlbedo[i])
		surfaceR[i] = DiffuseFresnel(md.Water.N[i], md.Air.N[i])
	}

	arriving := r.DirectAtFloor.Clone()
	floats.Add(arriving, r.DiffuseAtFloor)
	ir := &InternalReflector{
		WaterDepth:         m.Hole.WaterDepth,
		Wavelengths:        m.Wavelengths,
		KWater:             md.Water.K,
		SurfaceReflectance: surfaceR,
		Albedo:             m.CryoconiteAlbedo,
		Tolerance:          m.Tolerance,
		MaxIterations:      m.MaxIterations,
	}
	irr, err := ir.Solve(arriving)
	var ce *ConvergenceError
	if err != nil && !errors.As(err, &ce) {
		return nil, err
	}
	r.Escaped = irr.Escaped
	r.InternalLoss = irr.Loss
	r.InternalAbsorbed = irr.FloorAbsorbed
	r.WaterAbsorbed = irr.WaterAbsorbed
	r.SurfaceTransmitted = irr.SurfaceTransmitted
	r.Iterations = irr.Iterations
	r.Converged = irr.Converged
	if ce != nil {
		log.WithFields(logrus.Fields{
			"iterations": ce.Iterations,
			"residual":   ce.Residual,
		}).Warn("cryoconite: internal reflection did not converge")
		return r, err
	}
	return r, nil
}

// validate checks the model inputs before any calculations are performed.
func (m *Model) validate() error {
	if err := m.Hole.Validate(m.SolarZenith); err != nil {
		return err
	}
	if !(m.Tolerance > 0) {
		return &ValidationError{Field: "Tolerance", Value: m.Tolerance,
			Reason: "internal reflection tolerance must be >0"}
	}
	if m.MaxIterations < 0 {
		return &ValidationError{Field: "MaxIterations", Value: float64(m.MaxIterations),
			Reason: "iteration limit must not be negative"}
	}
	n := len(m.Wavelengths)
	if n == 0 {
		return fmt.Errorf("cryoconite: the wavelength grid is empty")
	}
	for _, v := range []struct {
		name string
		len  int
	}{
		{"incoming irradiance", len(m.Incoming)},
		{"cryoconite albedo", len(m.CryoconiteAlbedo)},
		{"diffuse floor flux", len(m.DiffuseFloor)},
	} {
		if v.len != n {
			return fmt.Errorf("cryoconite: %s has %d values but the spectrum has %d bands", v.name, v.len, n)
		}
	}
	for i, a := range m.CryoconiteAlbedo {
		if !(a >= 0 && a <= 1) {
			return &ValidationError{Field: fmt.Sprintf("CryoconiteAlbedo[%d]", i), Value: a,
				Reason: "albedo must be between 0 and 1"}
		}
	}
	for i, e := range m.Incoming {
		if !(e >= 0) {
			return &ValidationError{Field: fmt.Sprintf("Incoming[%d]", i), Value: e,
				Reason: "incoming irradiance must not be negative"}
		}
	}
	return nil
}

func nonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

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

import "fmt"

// ValidationError is returned when the hole geometry, the solar angle, or
// another caller-supplied setting is invalid. It is raised before any
// computation takes place.
type ValidationError struct {
	// Field is the name of the offending input.
	Field string
	// Value is the offending value.
	Value float64
	// Reason explains what the value should have been.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cryoconite: invalid %s=%g: %s", e.Field, e.Value, e.Reason)
}

// DomainError is returned when a trigonometric argument falls outside of its
// domain for a particular wavelength, for example when Snell's law
// would require the sine of the transmitted angle to exceed one. Unlike
// ValidationError it depends on the optical data, not only on the geometry.
type DomainError struct {
	// Op is the operation that failed.
	Op string
	// Band is the index of the wavelength in the spectrum, or -1 if the
	// calculation was not associated with a band.
	Band int
	// Arg is the out-of-range argument.
	Arg float64
}

func (e *DomainError) Error() string {
	if e.Band < 0 {
		return fmt.Sprintf("cryoconite: %s: asin argument %g is out of range", e.Op, e.Arg)
	}
	return fmt.Sprintf("cryoconite: %s: asin argument %g is out of range in band %d",
		e.Op, e.Arg, e.Band)
}

// ConvergenceError is returned when the internal reflection iteration reaches
// its iteration limit before the upwelling flux falls below the tolerance.
// Results returned alongside a ConvergenceError are best-effort.
type ConvergenceError struct {
	Iterations int
	// Residual is the upwelling flux remaining when iteration stopped.
	Residual  float64
	Tolerance float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("cryoconite: internal reflection did not converge after %d iterations "+
		"(residual=%g, tolerance=%g)", e.Iterations, e.Residual, e.Tolerance)
}

/*
Copyright © 2026 the HEMCO authors.
This file is part of HEMCO.

HEMCO is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HEMCO is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HEMCO.  If not, see <http://www.gnu.org/licenses/>.
*/

package hemco

import (
	"github.com/ctessum/sparse"
)

// Version gives this version of HEMCO.
const Version = "0.1.0"

// IodineExtensionName is the canonical name of the inorganic iodine
// extension in host configuration files.
const IodineExtensionName = "Inorg_Iodine"

// Names of the boolean extension options read from the host configuration.
const (
	OptEmitHOI = "Emit HOI"
	OptEmitI2  = "Emit I2"
)

// An OptionReader supplies named extension options from the host
// configuration.
type OptionReader interface {
	// Bool returns the value of the named boolean option, or false if
	// the option is not set.
	Bool(name string) (bool, error)
}

// A SpeciesResolver maps the species an extension emits to the ids the
// host tracks them under.
type SpeciesResolver interface {
	// SpeciesIDs returns the host species ids assigned to the named
	// extension, in the order they appear in the host configuration.
	// An id ≤ 0 means the species is not tracked.
	SpeciesIDs(extension string) ([]int, error)
}

// A FieldRequirer registers an extension's meteorological field
// dependencies with the host's upstream data pipeline so that the fields
// are guaranteed to be populated before any Run call.
type FieldRequirer interface {
	Require(extNum int, fields ...string) error
}

// A FluxCollector accumulates a computed emission flux field
// [kg m⁻² s⁻¹] into the host's emission totals for one species.
type FluxCollector interface {
	AddEmission(flux *sparse.DenseArray, extNum, speciesID int) error
}

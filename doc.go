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

// Package hemco implements the inorganic iodine ocean-surface emission
// extension for atmospheric chemistry simulations.
//
// The extension computes sea-to-air mass emission fluxes of HOI and I2
// [kg m⁻² s⁻¹] from gridded meteorological and ocean-surface fields,
// following the empirical parameterization of sea-surface iodide oxidation
// by ozone deposition (Carpenter et al., Nature Geoscience, 2013;
// MacDonald et al., Atmos. Chem. Phys., 2014).
//
// A host simulation driver uses the extension through three operations:
// IodineInit activates a configured instance once per simulation,
// IodineRun computes and submits fluxes once per timestep, and
// IodineFinal deactivates the instance at teardown. Several independently
// configured instances may be active at once; they are tracked by a
// Registry and identified by small integer ids.
//
// The host's grid geometry, configuration parsing, species bookkeeping,
// and flux accumulation are reached through the narrow collaborator
// interfaces declared in this package.
package hemco

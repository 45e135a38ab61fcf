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
	"fmt"

	"github.com/ctessum/sparse"
)

// Names of the meteorological fields the iodine extension depends on,
// using the GEOS-FP/MERRA-2 collection naming convention.
const (
	VarLandFrac    = "FRLAND"   // land fraction
	VarLandIceFrac = "FRLANDIC" // land ice fraction
	VarOceanFrac   = "FROCEAN"  // ocean fraction
	VarSeaIceFrac  = "FRSEAICE" // sea ice fraction
	VarLakeFrac    = "FRLAKE"   // lake fraction
	VarSkinTemp    = "TS"       // surface skin temperature [K]
	VarU10         = "U10M"     // 10-m eastward wind [m/s]
	VarV10         = "V10M"     // 10-m northward wind [m/s]
	VarO3          = "O3"       // surface ozone mass mixing ratio [kg/kg]
	VarAirMass     = "AIR"      // grid cell dry air mass [kg]

	// VarArea is the grid cell surface area [m²]. It is a property of
	// the host grid rather than a time-dependent field.
	VarArea = "AREA"
)

// RequiredFields lists the ten time-dependent fields the iodine extension
// registers with the host data pipeline at initialization.
func RequiredFields() []string {
	return []string{
		VarLandFrac, VarLandIceFrac, VarOceanFrac, VarSeaIceFrac,
		VarLakeFrac, VarSkinTemp, VarU10, VarV10, VarO3, VarAirMass,
	}
}

// MetFields is a read-only snapshot of the gridded input fields for one
// timestep. The host creates a fresh snapshot for every Run call; the
// engine never retains one between timesteps. All arrays share the same
// 2-D (y, x) shape.
type MetFields struct {
	LandFrac    *sparse.DenseArray // land fraction
	LandIceFrac *sparse.DenseArray // land ice fraction
	OceanFrac   *sparse.DenseArray // ocean fraction
	SeaIceFrac  *sparse.DenseArray // sea ice fraction
	LakeFrac    *sparse.DenseArray // lake fraction
	SkinTemp    *sparse.DenseArray // surface skin temperature [K]
	U10         *sparse.DenseArray // 10-m eastward wind [m/s]
	V10         *sparse.DenseArray // 10-m northward wind [m/s]
	O3          *sparse.DenseArray // ozone mass mixing ratio [kg/kg]
	AirMass     *sparse.DenseArray // grid cell dry air mass [kg]
	Area        *sparse.DenseArray // grid cell surface area [m²]
}

// Check verifies that every field is present and that all fields share
// the same two-dimensional shape.
func (m *MetFields) Check() error {
	fields := []struct {
		name string
		data *sparse.DenseArray
	}{
		{VarLandFrac, m.LandFrac},
		{VarLandIceFrac, m.LandIceFrac},
		{VarOceanFrac, m.OceanFrac},
		{VarSeaIceFrac, m.SeaIceFrac},
		{VarLakeFrac, m.LakeFrac},
		{VarSkinTemp, m.SkinTemp},
		{VarU10, m.U10},
		{VarV10, m.V10},
		{VarO3, m.O3},
		{VarAirMass, m.AirMass},
		{VarArea, m.Area},
	}
	for _, f := range fields {
		if f.data == nil {
			return fmt.Errorf("hemco: met field %s is missing", f.name)
		}
		if len(f.data.Shape) != 2 {
			return fmt.Errorf("hemco: met field %s has %d dimensions; want 2",
				f.name, len(f.data.Shape))
		}
		if f.data.Shape[0] != m.SkinTemp.Shape[0] || f.data.Shape[1] != m.SkinTemp.Shape[1] {
			return fmt.Errorf("hemco: met field %s has shape %v; want %v",
				f.name, f.data.Shape, m.SkinTemp.Shape)
		}
	}
	return nil
}

// dims returns the (y, x) grid dimensions.
func (m *MetFields) dims() (ny, nx int) {
	return m.SkinTemp.Shape[0], m.SkinTemp.Shape[1]
}

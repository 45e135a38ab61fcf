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

// A SurfaceType is the categorical surface classification of one grid
// cell, derived from its fractional land-cover values.
type SurfaceType int

const (
	SurfaceOcean SurfaceType = iota
	SurfaceLand
	SurfaceIce
	SurfaceLake
)

func (s SurfaceType) String() string {
	switch s {
	case SurfaceOcean:
		return "ocean"
	case SurfaceLand:
		return "land"
	case SurfaceIce:
		return "ice"
	case SurfaceLake:
		return "lake"
	default:
		return "unknown"
	}
}

// Classify returns the surface type for a grid cell given its fractional
// coverages of land, land ice, ocean, sea ice, and lake, following the
// GEOS surface-type convention: ice takes precedence over open water,
// and a cell counts as open ocean when its ice-free ocean fraction is at
// least 0.36.
func Classify(landFrac, landIceFrac, oceanFrac, seaIceFrac, lakeFrac float64) SurfaceType {
	switch {
	case landIceFrac > 0.5 || seaIceFrac > 0.5:
		return SurfaceIce
	case oceanFrac-seaIceFrac >= 0.36:
		return SurfaceOcean
	case lakeFrac > 0.5:
		return SurfaceLake
	default:
		return SurfaceLand
	}
}

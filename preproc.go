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
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// A MetFile reads GEOS-style meteorological fields from a NetCDF classic
// file. Time-dependent variables are dimensioned (time, y, x); the cell
// area is dimensioned (y, x).
type MetFile struct {
	f  *os.File
	ff *cdf.File
}

// OpenMetFile opens the named NetCDF meteorology file.
func OpenMetFile(filename string) (*MetFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("hemco: opening met file: %v", err)
	}
	ff, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("hemco: reading met file header: %v", err)
	}
	return &MetFile{f: f, ff: ff}, nil
}

// Close closes the underlying file.
func (m *MetFile) Close() error { return m.f.Close() }

// Records returns the number of time records in the file, taken from the
// leading dimension of the skin temperature variable.
func (m *MetFile) Records() (int, error) {
	dims := m.ff.Header.Lengths(VarSkinTemp)
	if len(dims) != 3 {
		return 0, fmt.Errorf("hemco: met variable %s has %d dimensions; want 3",
			VarSkinTemp, len(dims))
	}
	if dims[0] > 0 {
		return dims[0], nil
	}
	// Record dimension; the count comes from the file size.
	fi, err := m.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("hemco: met file: %v", err)
	}
	return int(m.ff.Header.NumRecs(fi.Size())), nil
}

// Read materializes the met-field snapshot for one time record.
func (m *MetFile) Read(record int) (*MetFields, error) {
	met := new(MetFields)
	for _, v := range []struct {
		name string
		dst  **sparse.DenseArray
	}{
		{VarLandFrac, &met.LandFrac},
		{VarLandIceFrac, &met.LandIceFrac},
		{VarOceanFrac, &met.OceanFrac},
		{VarSeaIceFrac, &met.SeaIceFrac},
		{VarLakeFrac, &met.LakeFrac},
		{VarSkinTemp, &met.SkinTemp},
		{VarU10, &met.U10},
		{VarV10, &met.V10},
		{VarO3, &met.O3},
		{VarAirMass, &met.AirMass},
		{VarArea, &met.Area},
	} {
		data, err := m.readVar(v.name, record)
		if err != nil {
			return nil, err
		}
		*v.dst = data
	}
	if err := met.Check(); err != nil {
		return nil, err
	}
	return met, nil
}

// readVar reads one 2-D slab of variable v. Variables with a leading
// time dimension are sliced at the given record; 2-D variables are read
// whole.
func (m *MetFile) readVar(v string, record int) (*sparse.DenseArray, error) {
	dims := m.ff.Header.Lengths(v)
	if len(dims) == 0 {
		return nil, fmt.Errorf("hemco: met variable %v not in file", v)
	}
	var begin, end []int
	switch len(dims) {
	case 2:
		// Time-invariant grid property.
	case 3:
		begin = []int{record, 0, 0}
		end = []int{record + 1, dims[1], dims[2]}
		dims = dims[1:]
	default:
		return nil, fmt.Errorf("hemco: met variable %v has %d dimensions; want 2 or 3",
			v, len(dims))
	}
	nread := dims[0] * dims[1]
	r := m.ff.Reader(v, begin, end)
	buf := r.Zero(nread)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("hemco: reading met variable %s: %v", v, err)
	}
	data := sparse.ZerosDense(dims...)
	switch b := buf.(type) {
	case []float32:
		for i, val := range b {
			data.Elements[i] = float64(val)
		}
	case []float64:
		copy(data.Elements, b)
	default:
		return nil, fmt.Errorf("hemco: met variable %s is not floating point", v)
	}
	return data, nil
}

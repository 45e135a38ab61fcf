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

// WriteFluxNCF writes the HOI and I2 emission flux fields and the grid
// cell areas to w as a NetCDF classic file.
func WriteFluxNCF(w *os.File, hoi, i2, area *sparse.DenseArray) error {
	for _, a := range []*sparse.DenseArray{hoi, i2, area} {
		if len(a.Shape) != 2 || a.Shape[0] != hoi.Shape[0] || a.Shape[1] != hoi.Shape[1] {
			return fmt.Errorf("hemco: writing flux file: inconsistent array shapes")
		}
	}
	ny, nx := hoi.Shape[0], hoi.Shape[1]
	h := cdf.NewHeader([]string{"y", "x"}, []int{ny, nx})
	h.AddAttribute("", "comment", "HEMCO inorganic iodine ocean emission fluxes")
	h.AddAttribute("", "data_version", Version)

	h.AddVariable("HOI", []string{"y", "x"}, []float32{0})
	h.AddAttribute("HOI", "description", "hypoiodous acid emission flux")
	h.AddAttribute("HOI", "units", "kg m-2 s-1")

	h.AddVariable("I2", []string{"y", "x"}, []float32{0})
	h.AddAttribute("I2", "description", "molecular iodine emission flux")
	h.AddAttribute("I2", "units", "kg m-2 s-1")

	h.AddVariable(VarArea, []string{"y", "x"}, []float32{0})
	h.AddAttribute(VarArea, "description", "grid cell surface area")
	h.AddAttribute(VarArea, "units", "m2")

	h.Define()
	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return fmt.Errorf("hemco: writing flux file header: %v", err)
	}
	for _, v := range []struct {
		name string
		data *sparse.DenseArray
	}{
		{"HOI", hoi}, {"I2", i2}, {VarArea, area},
	} {
		if err := writeNCF(f, v.name, v.data); err != nil {
			return fmt.Errorf("hemco: writing variable %s to flux file: %v", v.name, err)
		}
	}
	return nil
}

func writeNCF(f *cdf.File, Var string, data *sparse.DenseArray) error {
	// Check that data matches dimensions.
	n := 1
	for _, v := range data.Shape {
		n *= v
	}
	if len(data.Elements) != n {
		return fmt.Errorf("dims are %d but array length is %d", n, len(data.Elements))
	}

	data32 := make([]float32, len(data.Elements))
	for i, e := range data.Elements {
		data32[i] = float32(e)
	}
	end := f.Header.Lengths(Var)
	start := make([]int, len(end))
	w := f.Writer(Var, start, end)
	if _, err := w.Write(data32); err != nil {
		return err
	}
	return nil
}

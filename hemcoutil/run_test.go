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

package hemcoutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	hemco "github.com/kaysuselj/HEMCO-adjoint"
	"github.com/lnashier/viper"
)

const testSpeciesTable = `
[[Species]]
Name = "HOI"
ID = 101

[[Species]]
Name = "I2"
ID = 102
`

func writeTestSpeciesTable(t *testing.T, dir string) string {
	t.Helper()
	filename := filepath.Join(dir, "species.toml")
	if err := os.WriteFile(filename, []byte(testSpeciesTable), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

// writeTestMet creates a 2×2 all-ocean meteorology file with two time
// records: skin temperature 298 K, wind (3,4), ozone mixing ratio 3e-8.
func writeTestMet(t *testing.T, dir string) string {
	t.Helper()
	const nt, ny, nx = 2, 2, 2
	filename := filepath.Join(dir, "met.ncf")

	h := cdf.NewHeader([]string{"time", "y", "x"}, []int{nt, ny, nx})
	for _, v := range hemco.RequiredFields() {
		h.AddVariable(v, []string{"time", "y", "x"}, []float32{0})
	}
	h.AddVariable(hemco.VarArea, []string{"y", "x"}, []float32{0})
	h.Define()

	w, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	f, err := cdf.Create(w, h)
	if err != nil {
		t.Fatal(err)
	}
	uniform := map[string]float32{
		hemco.VarLandFrac:    0,
		hemco.VarLandIceFrac: 0,
		hemco.VarOceanFrac:   1,
		hemco.VarSeaIceFrac:  0,
		hemco.VarLakeFrac:    0,
		hemco.VarSkinTemp:    298,
		hemco.VarU10:         3,
		hemco.VarV10:         4,
		hemco.VarO3:          3.e-8,
		hemco.VarAirMass:     1.e9,
	}
	data := make([]float32, nt*ny*nx)
	for v, val := range uniform {
		for i := range data {
			data[i] = val
		}
		wr := f.Writer(v, []int{0, 0, 0}, []int{nt, ny, nx})
		if _, err := wr.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	area := make([]float32, ny*nx)
	for i := range area {
		area[i] = 1.e10
	}
	wr := f.Writer(hemco.VarArea, []int{0, 0}, []int{ny, nx})
	if _, err := wr.Write(area); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestOptionReader(t *testing.T) {
	v := viper.New()
	v.Set("EmitHOI", true)
	v.Set("EmitI2", false)
	o := optionReader{v}
	if b, err := o.Bool(hemco.OptEmitHOI); err != nil || !b {
		t.Errorf("%s: have (%v,%v), want (true,nil)", hemco.OptEmitHOI, b, err)
	}
	if b, err := o.Bool(hemco.OptEmitI2); err != nil || b {
		t.Errorf("%s: have (%v,%v), want (false,nil)", hemco.OptEmitI2, b, err)
	}
}

func TestSpeciesTable(t *testing.T) {
	filename := writeTestSpeciesTable(t, t.TempDir())
	table, err := readSpeciesTable(filename)
	if err != nil {
		t.Fatal(err)
	}
	ids, err := table.SpeciesIDs(hemco.IodineExtensionName)
	if err != nil {
		t.Fatal(err)
	}
	// HOI must come first; the extension assigns ids by position.
	if len(ids) != 2 || ids[0] != 101 || ids[1] != 102 {
		t.Errorf("species ids: have %v, want [101 102]", ids)
	}
	if name := table.name(102); name != "I2" {
		t.Errorf("species 102 name: have %q, want I2", name)
	}
}

func TestSpeciesTableMissing(t *testing.T) {
	if _, err := readSpeciesTable(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing species table")
	}
}

func TestRunEndToEnd(t *testing.T) {
	const testTolerance = 1.e-6

	dir := t.TempDir()
	outFile := filepath.Join(dir, "flux.ncf")

	cfg := viper.New()
	cfg.Set("MetFile", writeTestMet(t, dir))
	cfg.Set("SpeciesTable", writeTestSpeciesTable(t, dir))
	cfg.Set("OutputFile", outFile)
	cfg.Set("EmitHOI", true)
	cfg.Set("EmitI2", true)
	cfg.Set("NumTimesteps", 0)
	cfg.Set("ExtensionNumber", 1)

	if err := Run(cfg); err != nil {
		t.Fatal(err)
	}

	r, err := os.Open(outFile)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	ff, err := cdf.Open(r)
	if err != nil {
		t.Fatal(err)
	}

	// Expected fluxes for 298 K, wind magnitude 5 (at the floor), and
	// 3e-8 kg/kg ozone.
	iodide := 1.46e6 * math.Exp(-9134.0/298.0)
	o3 := 3.e-8 * (28.97 / 48.0) * 1.e9
	wantI2 := o3 * math.Pow(iodide, 1.3) * (1.74e9 - 6.54e8*math.Log(5.0)) /
		86400.0 / 1.e9 * 0.254
	wantHOI := o3 * (4.15e5*math.Sqrt(iodide)/5.0 - 20.6/5.0 -
		2.36e4*math.Sqrt(iodide)) / 86400.0 / 1.e9 * 0.144

	for _, test := range []struct {
		name string
		want float64
	}{
		{"HOI", wantHOI},
		{"I2", wantI2},
	} {
		rd := ff.Reader(test.name, nil, nil)
		buf := rd.Zero(4)
		if _, err := rd.Read(buf); err != nil {
			t.Fatal(err)
		}
		for i, v := range buf.([]float32) {
			if math.Abs(float64(v)-test.want) > testTolerance*test.want {
				t.Errorf("%s element %d: have %g, want %g", test.name, i, v, test.want)
			}
		}
	}
}

func TestRunNoMetFile(t *testing.T) {
	cfg := viper.New()
	cfg.Set("SpeciesTable", writeTestSpeciesTable(t, t.TempDir()))
	if err := Run(cfg); err == nil {
		t.Fatal("expected error when no meteorology file is given")
	}
}

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
	"math"
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
)

// Physical constants of the iodine parameterization.
const (
	// Molar masses [grams per mole]
	mwAir = 28.97
	mwO3  = 48.0

	// Molecular weights of the emitted species [kg per mole]
	mwtHOI = 0.144
	mwtI2  = 0.254

	// minWindSpeed is the lower bound [m/s] applied to the 10-m wind
	// magnitude; the parameterization is only fitted above it.
	minWindSpeed = 5.0

	secondsPerDay = 86400.0
)

// rowChunk is the number of grid rows handed to a worker at a time. The
// ocean mask makes per-cell work highly uneven, so chunks are kept small.
const rowChunk = 4

// IodineInit activates one instance of the inorganic iodine extension and
// returns its registry id. It reads the "Emit HOI" and "Emit I2" options
// from the host configuration, resolves host species ids, and registers
// the extension's met-field dependencies with the host data pipeline.
//
// Species ids are assigned positionally: the first id returned by the
// resolver always belongs to HOI and the second to I2, regardless of
// which options are enabled. Host configurations must therefore list HOI
// before I2. An enabled option is downgraded to disabled if its species
// id did not resolve to a positive id.
func IodineInit(reg *Registry, extNum int, opts OptionReader, species SpeciesResolver, fields FieldRequirer) (int, error) {
	calcHOI, err := opts.Bool(OptEmitHOI)
	if err != nil {
		return 0, &UpstreamError{Op: "reading option " + OptEmitHOI, Err: err}
	}
	calcI2, err := opts.Bool(OptEmitI2)
	if err != nil {
		return 0, &UpstreamError{Op: "reading option " + OptEmitI2, Err: err}
	}

	ids, err := species.SpeciesIDs(IodineExtensionName)
	if err != nil {
		return 0, &UpstreamError{Op: "resolving species ids", Err: err}
	}
	nEnabled := 0
	if calcHOI {
		nEnabled++
	}
	if calcI2 {
		nEnabled++
	}
	if len(ids) < nEnabled {
		return 0, &ConfigurationError{
			Extension: IodineExtensionName,
			Reason: fmt.Sprintf("%d species enabled but only %d resolvable",
				nEnabled, len(ids)),
		}
	}
	hoiID, i2ID := -1, -1
	if len(ids) > 0 {
		hoiID = ids[0]
	}
	if len(ids) > 1 {
		i2ID = ids[1]
	}
	if calcHOI && hoiID <= 0 {
		calcHOI = false
	}
	if calcI2 && i2ID <= 0 {
		calcI2 = false
	}

	if err := fields.Require(extNum, RequiredFields()...); err != nil {
		return 0, &UpstreamError{Op: "registering field dependencies", Err: err}
	}

	id := reg.Create(extNum)
	inst, err := reg.Lookup(id)
	if err != nil {
		return 0, err
	}
	inst.HOIID = hoiID
	inst.I2ID = i2ID
	inst.CalcHOI = calcHOI
	inst.CalcI2 = calcI2
	return id, nil
}

// IodineRun computes the HOI and I2 emission flux fields for one timestep
// and submits them to the host's flux accumulator, HOI first. A failed
// accumulation call aborts the remainder of the timestep. Running an id
// that is not live yields an InstanceNotFoundError.
func IodineRun(reg *Registry, id int, met *MetFields, acc FluxCollector) error {
	inst, err := reg.Lookup(id)
	if err != nil {
		return err
	}
	if err := met.Check(); err != nil {
		return &UpstreamError{Op: "validating met fields", Err: err}
	}
	hoi, i2 := iodineFluxes(inst, met)
	if inst.CalcHOI {
		if err := acc.AddEmission(hoi, inst.ExtNum, inst.HOIID); err != nil {
			return &UpstreamError{Op: "accumulating HOI flux", Err: err}
		}
	}
	if inst.CalcI2 {
		if err := acc.AddEmission(i2, inst.ExtNum, inst.I2ID); err != nil {
			return &UpstreamError{Op: "accumulating I2 flux", Err: err}
		}
	}
	return nil
}

// IodineFinal deactivates instance id. An id that is not live is
// silently ignored.
func IodineFinal(reg *Registry, id int) {
	reg.Remove(id)
}

// iodineFluxes runs the grid pass, returning freshly zeroed HOI and I2
// flux fields [kg m⁻² s⁻¹]. Cells are independent, so the pass is
// distributed over GOMAXPROCS workers in row chunks; each cell writes
// only its own output elements, making the result identical for any
// worker count or chunk order. The accumulation calls in IodineRun happen
// strictly after this function returns.
func iodineFluxes(inst *Instance, met *MetFields) (hoi, i2 *sparse.DenseArray) {
	ny, nx := met.dims()
	hoi = sparse.ZerosDense(ny, nx)
	i2 = sparse.ZerosDense(ny, nx)

	nprocs := runtime.GOMAXPROCS(0)
	rows := make(chan int)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for p := 0; p < nprocs; p++ {
		go func() {
			defer wg.Done()
			for j0 := range rows {
				jEnd := j0 + rowChunk
				if jEnd > ny {
					jEnd = ny
				}
				for j := j0; j < jEnd; j++ {
					for i := 0; i < nx; i++ {
						fHOI, fI2 := cellFlux(inst, met, j, i)
						hoi.Set(fHOI, j, i)
						i2.Set(fI2, j, i)
					}
				}
			}
		}()
	}
	for j := 0; j < ny; j += rowChunk {
		rows <- j
	}
	close(rows)
	wg.Wait()
	return hoi, i2
}

// cellFlux computes the HOI and I2 emission fluxes [kg m⁻² s⁻¹] for one
// grid cell. Cells that do not classify as open ocean emit nothing.
func cellFlux(inst *Instance, met *MetFields, j, i int) (hoi, i2 float64) {
	class := Classify(met.LandFrac.Get(j, i), met.LandIceFrac.Get(j, i),
		met.OceanFrac.Get(j, i), met.SeaIceFrac.Get(j, i), met.LakeFrac.Get(j, i))
	if class != SurfaceOcean {
		return 0, 0
	}

	u := met.U10.Get(j, i)
	v := met.V10.Get(j, i)
	windSpeed := math.Sqrt(u*u + v*v)
	if windSpeed < minWindSpeed {
		windSpeed = minWindSpeed
	}

	// Sea-surface iodide concentration from skin temperature
	// (MacDonald et al., 2014).
	iodide := 1.46e6 * math.Exp(-9134.0/met.SkinTemp.Get(j, i))

	// Surface ozone concentration [nmol/mol].
	o3 := met.O3.Get(j, i) * (mwAir / mwO3) * 1.e9

	if inst.CalcI2 {
		f := o3 * math.Pow(iodide, 1.3) *
			(1.74e9 - 6.54e8*math.Log(windSpeed)) /
			secondsPerDay / 1.e9 * mwtI2
		// The fit goes negative above its wind speed range.
		if f > 0 {
			i2 = f
		}
	}
	if inst.CalcHOI {
		f := o3 * (4.15e5*math.Sqrt(iodide)/windSpeed -
			20.6/windSpeed - 2.36e4*math.Sqrt(iodide)) /
			secondsPerDay / 1.e9 * mwtHOI
		if f > 0 {
			hoi = f
		}
	}
	return hoi, i2
}

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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
	hemco "github.com/kaysuselj/HEMCO-adjoint"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// optionReader adapts the viper configuration to the extension's
// OptionReader collaborator. Extension option names contain spaces
// ("Emit HOI"); the configuration stores them without spaces.
type optionReader struct {
	v *viper.Viper
}

func (o optionReader) Bool(name string) (bool, error) {
	return o.v.GetBool(strings.Replace(name, " ", "", -1)), nil
}

// A speciesTable is the TOML-decoded mapping from emitted species names
// to host species ids. Order is significant: the iodine extension assigns
// the first id to HOI and the second to I2.
type speciesTable struct {
	Species []speciesEntry
}

type speciesEntry struct {
	Name string
	ID   int
}

func readSpeciesTable(filename string) (*speciesTable, error) {
	t := new(speciesTable)
	if _, err := toml.DecodeFile(filename, t); err != nil {
		return nil, fmt.Errorf("hemco: reading species table: %v", err)
	}
	if len(t.Species) == 0 {
		return nil, fmt.Errorf("hemco: species table %s lists no species", filename)
	}
	return t, nil
}

// SpeciesIDs implements hemco.SpeciesResolver.
func (t *speciesTable) SpeciesIDs(extension string) ([]int, error) {
	ids := make([]int, len(t.Species))
	for i, s := range t.Species {
		ids[i] = s.ID
	}
	return ids, nil
}

// name returns the species name for a host id, for log output.
func (t *speciesTable) name(id int) string {
	for _, s := range t.Species {
		if s.ID == id {
			return s.Name
		}
	}
	return fmt.Sprintf("species %d", id)
}

// fieldPipeline records the met fields an extension declares as
// dependencies. The driver reads every declared field from the
// meteorology file each timestep, so registration only needs to be
// remembered and logged.
type fieldPipeline struct {
	required []string
}

func (p *fieldPipeline) Require(extNum int, fields ...string) error {
	p.required = append(p.required, fields...)
	logrus.WithFields(logrus.Fields{
		"extension": extNum,
		"fields":    strings.Join(fields, ","),
	}).Debug("registered met field dependencies")
	return nil
}

// An accumulator implements hemco.FluxCollector, integrating each
// submitted flux field over the grid cell areas and keeping the most
// recent field per species for output.
type accumulator struct {
	table *speciesTable
	area  *sparse.DenseArray

	// Flux holds the most recently submitted flux field per species id.
	Flux map[int]*sparse.DenseArray
	// rateSum accumulates grid-total emission rates [kg/s] per species id.
	rateSum map[int]*unit.Unit
	steps   map[int]int
}

func newAccumulator(table *speciesTable) *accumulator {
	return &accumulator{
		table:   table,
		Flux:    make(map[int]*sparse.DenseArray),
		rateSum: make(map[int]*unit.Unit),
		steps:   make(map[int]int),
	}
}

var kgPerSecond = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -1}

func (a *accumulator) AddEmission(flux *sparse.DenseArray, extNum, speciesID int) error {
	if a.area == nil || len(flux.Elements) != len(a.area.Elements) {
		return fmt.Errorf("hemco: accumulating flux for species %d: shape mismatch with grid area", speciesID)
	}
	rate := unit.New(floats.Dot(flux.Elements, a.area.Elements), kgPerSecond)
	if sum, ok := a.rateSum[speciesID]; ok {
		sum.Add(rate)
	} else {
		a.rateSum[speciesID] = rate
	}
	a.steps[speciesID]++
	a.Flux[speciesID] = flux
	logrus.WithFields(logrus.Fields{
		"extension": extNum,
		"species":   a.table.name(speciesID),
		"rate":      fmt.Sprintf("%.6g", rate.Value()),
	}).Debug("accumulated emission flux")
	return nil
}

// meanRate returns the mean grid-total emission rate [kg/s] for a species
// over the processed timesteps.
func (a *accumulator) meanRate(speciesID int) *unit.Unit {
	sum, ok := a.rateSum[speciesID]
	if !ok {
		return unit.New(0, kgPerSecond)
	}
	return unit.Div(sum, unit.New(float64(a.steps[speciesID]), unit.Dimless))
}

// Run processes the configured meteorology records through the iodine
// extension and writes the resulting flux fields.
func Run(cfg *viper.Viper) error {
	metPath := os.ExpandEnv(cfg.GetString("MetFile"))
	if metPath == "" {
		return fmt.Errorf("hemco: no meteorology file specified")
	}
	table, err := readSpeciesTable(os.ExpandEnv(cfg.GetString("SpeciesTable")))
	if err != nil {
		return err
	}

	met, err := hemco.OpenMetFile(metPath)
	if err != nil {
		return err
	}
	defer met.Close()
	records, err := met.Records()
	if err != nil {
		return err
	}
	numSteps := cfg.GetInt("NumTimesteps")
	if numSteps < 1 || numSteps > records {
		numSteps = records
	}
	if numSteps == 0 {
		return fmt.Errorf("hemco: meteorology file %s holds no records", metPath)
	}

	reg := hemco.NewRegistry()
	pipeline := new(fieldPipeline)
	id, err := hemco.IodineInit(reg, cfg.GetInt("ExtensionNumber"),
		optionReader{cfg}, table, pipeline)
	if err != nil {
		return err
	}
	defer hemco.IodineFinal(reg, id)

	acc := newAccumulator(table)
	startTime := time.Now()
	timeStepTime := time.Now()
	for t := 0; t < numSteps; t++ {
		fields, err := met.Read(t)
		if err != nil {
			return err
		}
		acc.area = fields.Area
		if err := hemco.IodineRun(reg, id, fields, acc); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"iteration": t + 1,
			"walltime":  fmt.Sprintf("%.3gs", time.Since(startTime).Seconds()),
			"Δwalltime": fmt.Sprintf("%.3gs", time.Since(timeStepTime).Seconds()),
		}).Info("timestep complete")
		timeStepTime = time.Now()
	}

	ids, err := table.SpeciesIDs(hemco.IodineExtensionName)
	if err != nil {
		return err
	}
	hoi, i2 := sparse.ZerosDense(acc.area.Shape...), sparse.ZerosDense(acc.area.Shape...)
	if len(ids) > 0 && acc.Flux[ids[0]] != nil {
		hoi = acc.Flux[ids[0]]
	}
	if len(ids) > 1 && acc.Flux[ids[1]] != nil {
		i2 = acc.Flux[ids[1]]
	}
	for spcID := range acc.rateSum {
		logrus.WithFields(logrus.Fields{
			"species":  table.name(spcID),
			"meanRate": fmt.Sprintf("%.6g kg/s", acc.meanRate(spcID).Value()),
		}).Info("emission summary")
	}

	outPath := os.ExpandEnv(cfg.GetString("OutputFile"))
	w, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("hemco: creating output file: %v", err)
	}
	defer w.Close()
	if err := hemco.WriteFluxNCF(w, hoi, i2, acc.area); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"file": outPath}).Info("wrote emission fluxes")
	return nil
}

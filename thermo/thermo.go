/*
 * thermo.go, part of nspost.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package thermo assigns a temperature to every configuration of a merged
//nested-sampling trajectory, by inverting the tabulated
//temperature/mean-energy relation that the external partition-function
//engine writes out.
package thermo

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/interp"
	ns "nspost"
)

//Columns of the analyse.dat table we consume.
const (
	tempCol   = 0
	energyCol = 3
)

//PartitionTable is the tabulated (temperature, mean energy) relation
//produced by the external partition-function engine, in file order.
type PartitionTable struct {
	Temps    []float64
	Energies []float64
}

//Len returns the number of tabulated points.
func (t *PartitionTable) Len() int {
	return len(t.Temps)
}

//ReadPartitionTable reads the whitespace table written by the
//partition-function engine. Lines starting with '#' are header lines and
//are skipped; every other line must carry at least 4 columns, with the
//temperature in column 0 and the mean energy in column 3.
func ReadPartitionTable(name string) (*PartitionTable, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, ns.NewFileError(ns.UnableToOpen+": "+err.Error(), name, "ReadPartitionTable")
	}
	defer f.Close()
	t := &PartitionTable{Temps: make([]float64, 0, 100), Energies: make([]float64, 0, 100)}
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) <= energyCol {
			return nil, Error{fmt.Sprintf("%s: line %d has %d columns, need at least %d", MalformedTable, lineno, len(fields), energyCol+1), name, []string{"ReadPartitionTable"}}
		}
		temp, err := strconv.ParseFloat(fields[tempCol], 64)
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: line %d: %s", MalformedTable, lineno, err.Error()), name, []string{"ReadPartitionTable"}}
		}
		en, err := strconv.ParseFloat(fields[energyCol], 64)
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: line %d: %s", MalformedTable, lineno, err.Error()), name, []string{"ReadPartitionTable"}}
		}
		t.Temps = append(t.Temps, temp)
		t.Energies = append(t.Energies, en)
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{MalformedTable + ": " + err.Error(), name, []string{"ReadPartitionTable"}}
	}
	return t, nil
}

//Mapper maps a nested-sampling energy to a temperature. It holds a linear
//interpolant over the inverted partition table, with the energy as the
//independent variable.
type Mapper struct {
	energies []float64 //ascending
	temps    []float64
	pl       interp.PiecewiseLinear
}

//invTable sorts the inverted (energy, temperature) pairs by energy, as the
//engine tabulates them by temperature. It implements sort.Interface.
type invTable struct {
	energies []float64
	temps    []float64
}

func (t *invTable) Len() int { return len(t.energies) }
func (t *invTable) Swap(i, j int) {
	t.energies[i], t.energies[j] = t.energies[j], t.energies[i]
	t.temps[i], t.temps[j] = t.temps[j], t.temps[i]
}
func (t *invTable) Less(i, j int) bool { return t.energies[i] < t.energies[j] }

//NewMapper builds a Mapper from the given partition table. The table must
//have at least two points and, once inverted, strictly increasing energies;
//duplicate energy values make the relation non-invertible and are an error,
//never patched over.
func NewMapper(t *PartitionTable) (*Mapper, error) {
	if t.Len() < 2 {
		return nil, Error{fmt.Sprintf("%s: got %d points", TooFewPoints, t.Len()), "", []string{"NewMapper"}}
	}
	if len(t.Temps) != len(t.Energies) {
		return nil, Error{MalformedTable + ": column lengths differ", "", []string{"NewMapper"}}
	}
	m := new(Mapper)
	m.energies = append([]float64{}, t.Energies...)
	m.temps = append([]float64{}, t.Temps...)
	sort.Stable(&invTable{m.energies, m.temps})
	for i := 1; i < len(m.energies); i++ {
		if m.energies[i] == m.energies[i-1] {
			return nil, Error{fmt.Sprintf("%s: energy %g appears more than once", NonInvertible, m.energies[i]), "", []string{"NewMapper"}}
		}
	}
	//the checks above are exactly the conditions under which Fit would panic
	if err := m.pl.Fit(m.energies, m.temps); err != nil {
		return nil, Error{MalformedTable + ": " + err.Error(), "", []string{"NewMapper"}}
	}
	return m, nil
}

//Temperature returns the temperature for the given energy. Between
//tabulated points the value is linearly interpolated; outside the tabulated
//range it is linearly extrapolated from the nearest segment, an approximate
//answer being preferred over refusing boundary configurations.
func (m *Mapper) Temperature(energy float64) float64 {
	n := len(m.energies)
	if energy < m.energies[0] {
		slope := (m.temps[1] - m.temps[0]) / (m.energies[1] - m.energies[0])
		return m.temps[0] + slope*(energy-m.energies[0])
	}
	if energy > m.energies[n-1] {
		slope := (m.temps[n-1] - m.temps[n-2]) / (m.energies[n-1] - m.energies[n-2])
		return m.temps[n-1] + slope*(energy-m.energies[n-1])
	}
	return m.pl.Predict(energy)
}

//Temperatures maps every configuration of the merged sequence to a
//temperature through its stored energy, preserving order.
func (m *Mapper) Temperatures(merged []*ns.Config) []float64 {
	ret := make([]float64, len(merged))
	for i, conf := range merged {
		ret[i] = m.Temperature(conf.Energy())
	}
	return ret
}

//Errors

//Sentinel messages for thermo errors.
const (
	TooFewPoints   = "Table needs at least two points to interpolate"
	NonInvertible  = "Table is not invertible as a function of energy"
	MalformedTable = "Malformed partition table"
)

// Error is the type for invalid partition tables. It fulfills ns.Error.
type Error struct {
	message  string
	filename string //the table file, or empty string if none.
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return "nspost thermo error: " + err.message
	}
	return fmt.Sprintf("nspost thermo error in %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the table file associated to the error, if any.
func (err Error) FileName() string { return err.filename }

/*
 * assemble.go, part of nspost.
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

package ns

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//QWHeaderLines is the number of header lines at the top of the tables
//written by the external bond-order engine.
const QWHeaderLines = 1

//QWRow holds the bond-order parameters of one configuration for a single
//angular-momentum order l: the rotationally invariant ql and its third-order
//companion wl.
type QWRow struct {
	Q float64
	W float64
}

//ReadQW reads a table written by the external bond-order engine: a fixed
//number of header lines, then one row per configuration with q in the first
//column and w in the second.
func ReadQW(name string) ([]QWRow, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, FileError{UnableToOpen + ": " + err.Error(), name, []string{"ReadQW"}}
	}
	defer f.Close()
	rows := make([]QWRow, 0, 1000)
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		if lineno <= QWHeaderLines {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, FileError{fmt.Sprintf("%s: line %d has %d columns, need 2", UnreadableTable, lineno, len(fields)), name, []string{"ReadQW"}}
		}
		q, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, FileError{fmt.Sprintf("%s: line %d: %s", UnreadableTable, lineno, err.Error()), name, []string{"ReadQW"}}
		}
		w, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, FileError{fmt.Sprintf("%s: line %d: %s", UnreadableTable, lineno, err.Error()), name, []string{"ReadQW"}}
		}
		rows = append(rows, QWRow{Q: q, W: w})
	}
	if err := scanner.Err(); err != nil {
		return nil, FileError{UnreadableTable + ": " + err.Error(), name, []string{"ReadQW"}}
	}
	return rows, nil
}

//Record is one row of the final output table: the fields carried by a merged
//configuration joined with its derived temperature and bond-order values.
type Record struct {
	Iter          int
	Energy        float64
	KineticEnergy float64
	Volume        float64
	Temperature   float64
	Q4, W4        float64
	Q6, W6        float64
}

//Assemble joins, index for index, the merged configurations with their
//temperatures and the two bond-order tables. All four inputs must have the
//same length; the merged sequence sets the expected length and any other
//input deviating from it is reported in the returned AssemblyError.
func Assemble(merged []*Config, temperatures []float64, qw4, qw6 []QWRow) ([]Record, error) {
	n := len(merged)
	if len(temperatures) != n {
		return nil, AssemblyError{"temperatures", len(temperatures), n, []string{"Assemble"}}
	}
	if len(qw4) != n {
		return nil, AssemblyError{"qw4 table", len(qw4), n, []string{"Assemble"}}
	}
	if len(qw6) != n {
		return nil, AssemblyError{"qw6 table", len(qw6), n, []string{"Assemble"}}
	}
	records := make([]Record, n)
	for i, conf := range merged {
		vol, _ := conf.Volume() //zero when the ensemble carries no volume
		records[i] = Record{
			Iter:          conf.Iter(),
			Energy:        conf.Energy(),
			KineticEnergy: conf.KineticEnergy(),
			Volume:        vol,
			Temperature:   temperatures[i],
			Q4:            qw4[i].Q,
			W4:            qw4[i].W,
			Q6:            qw6[i].Q,
			W6:            qw6[i].W,
		}
	}
	return records, nil
}

//WriteRecords appends the given records to the file name, one
//whitespace-delimited row per record, in order. The file is created if it
//does not exist.
func WriteRecords(name string, records []Record) error {
	out, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return FileError{UnableToOpen + ": " + err.Error(), name, []string{"WriteRecords"}}
	}
	defer out.Close()
	buf := bufio.NewWriter(out)
	for _, r := range records {
		_, err = fmt.Fprintf(buf, "%d %.8g %.8g %.8g %.8g %.8g %.8g %.8g %.8g\n",
			r.Iter, r.Energy, r.KineticEnergy, r.Volume, r.Temperature, r.Q4, r.W4, r.Q6, r.W6)
		if err != nil {
			return FileError{"Can't write record: " + err.Error(), name, []string{"WriteRecords"}}
		}
	}
	if err := buf.Flush(); err != nil {
		return FileError{"Can't write records: " + err.Error(), name, []string{"WriteRecords"}}
	}
	return nil
}

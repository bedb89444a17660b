/*
 * assemble_test.go, part of nspost.
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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeMerged(n int) []*Config {
	ret := make([]*Config, n)
	for i := range ret {
		ret[i] = &Config{iter: i, energy: -float64(i), kinetic: 0.1, volume: 1.0, hasvol: true}
	}
	return ret
}

func fakeQW(n int) []QWRow {
	ret := make([]QWRow, n)
	for i := range ret {
		ret[i] = QWRow{Q: 0.1 * float64(i), W: -0.01 * float64(i)}
	}
	return ret
}

func TestAssemble(Te *testing.T) {
	merged := fakeMerged(10)
	temps := make([]float64, 10)
	records, err := Assemble(merged, temps, fakeQW(10), fakeQW(10))
	if err != nil {
		Te.Fatal(err)
	}
	if len(records) != 10 {
		Te.Fatalf("assembled %d records, want 10", len(records))
	}
	if records[3].Iter != 3 || records[3].Energy != -3.0 || records[3].Q4 != 0.3 {
		Te.Errorf("record 3 has wrong fields: %+v", records[3])
	}
}

//TestAssembleMismatch checks that the short input is reported by name.
func TestAssembleMismatch(Te *testing.T) {
	merged := fakeMerged(10)
	temps := make([]float64, 10)
	_, err := Assemble(merged, temps, fakeQW(9), fakeQW(10))
	if err == nil {
		Te.Fatal("expected an error for the length mismatch")
	}
	aerr, ok := err.(AssemblyError)
	if !ok {
		Te.Fatalf("expected an AssemblyError, got %T", err)
	}
	if aerr.Source() != "qw4 table" {
		Te.Errorf("wrong source named: %s", aerr.Source())
	}
	if !strings.Contains(aerr.Error(), "9") {
		Te.Errorf("error does not state the offending length: %s", aerr.Error())
	}
}

func TestReadQW(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "run_ordered.qw4")
	content := "# q4 w4\n0.1 -0.01\n0.2 -0.02\n0.3 -0.03\n"
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		Te.Fatal(err)
	}
	rows, err := ReadQW(name)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rows) != 3 {
		Te.Fatalf("read %d rows, want 3 (header skipped)", len(rows))
	}
	if rows[1].Q != 0.2 || rows[1].W != -0.02 {
		Te.Errorf("row 1 read wrong: %+v", rows[1])
	}
}

//TestWriteRecords checks the append semantics of the final table.
func TestWriteRecords(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "run.data")
	records := []Record{
		{Iter: 0, Energy: -1.5, Temperature: 120.0, Q4: 0.1},
		{Iter: 1, Energy: -1.0, Temperature: 150.0, Q4: 0.2},
	}
	if err := WriteRecords(name, records); err != nil {
		Te.Fatal(err)
	}
	if err := WriteRecords(name, records[:1]); err != nil {
		Te.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		Te.Fatalf("file has %d rows after two writes, want 3", len(lines))
	}
	fields := strings.Fields(lines[0])
	if len(fields) != 9 {
		Te.Fatalf("row has %d columns, want 9", len(fields))
	}
	if fields[0] != "0" || fields[1] != "-1.5" {
		Te.Errorf("first row starts with %s %s", fields[0], fields[1])
	}
}

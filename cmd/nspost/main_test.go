/*
 * main_test.go, part of nspost.
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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHCFlags(Te *testing.T) {
	//none of the three flags given: valid, analysis off
	have, err := hcFlags(false, false, false)
	if err != nil {
		Te.Fatal(err)
	}
	if have {
		Te.Error("heat-capacity analysis requested with no flags given")
	}
	//all three given: valid, analysis on
	have, err = hcFlags(true, true, true)
	if err != nil {
		Te.Fatal(err)
	}
	if !have {
		Te.Error("heat-capacity analysis not requested with all flags given")
	}
	//any partial combination is an error
	partial := [][3]bool{
		{true, false, false},
		{false, true, false},
		{false, false, true},
		{true, true, false},
		{true, false, true},
		{false, true, true},
	}
	for _, p := range partial {
		if _, err := hcFlags(p[0], p[1], p[2]); err == nil {
			Te.Errorf("partial flag combination %v accepted", p)
		}
	}
}

func TestFindEnergies(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "run.energies")
	if err := os.WriteFile(name, []byte("640 0.01\n-1.0 1.0\n"), 0644); err != nil {
		Te.Fatal(err)
	}
	prefix, points, err := findEnergies(dir)
	if err != nil {
		Te.Fatal(err)
	}
	if prefix != filepath.Join(dir, "run") {
		Te.Errorf("wrong run prefix %s", prefix)
	}
	if points != 640 {
		Te.Errorf("read %d live points, want 640", points)
	}
	fmt.Println("energies file found:", prefix, points)
}

func TestFindEnergiesNone(Te *testing.T) {
	_, _, err := findEnergies(Te.TempDir())
	if err == nil {
		Te.Fatal("expected an error for a directory with no .energies file")
	}
}

func TestFindEnergiesMultiple(Te *testing.T) {
	dir := Te.TempDir()
	for _, n := range []string{"a.energies", "b.energies"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("100\n"), 0644); err != nil {
			Te.Fatal(err)
		}
	}
	_, _, err := findEnergies(dir)
	if err == nil {
		Te.Fatal("expected an error for a directory with two .energies files")
	}
	if !strings.Contains(err.Error(), "multiple") {
		Te.Errorf("error does not report the ambiguity: %s", err.Error())
	}
}

//TestFindEnergiesBadHeader covers the first line not starting with the
//live-point count.
func TestFindEnergiesBadHeader(Te *testing.T) {
	dir := Te.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "run.energies"), []byte("notanumber 0.01\n"), 0644); err != nil {
		Te.Fatal(err)
	}
	if _, _, err := findEnergies(dir); err == nil {
		Te.Error("expected an error for a non-numeric live-point count")
	}
	if err := os.WriteFile(filepath.Join(dir, "run.energies"), []byte(""), 0644); err != nil {
		Te.Fatal(err)
	}
	if _, _, err := findEnergies(dir); err == nil {
		Te.Error("expected an error for an empty .energies file")
	}
}

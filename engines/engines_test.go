/*
 * engines_test.go, part of nspost.
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

package engines

import (
	"reflect"
	"testing"
)

//The engines themselves are external programs, so these tests only cover
//the command lines handed to them.

func TestNSAnalyseArgs(Te *testing.T) {
	run := NewNSAnalyse()
	args := run.Args("run.energies", 100.0, 10, 5.0)
	want := []string{"run.energies", "-M", "100", "-n", "10", "-D", "5", "-k", "8.6173324e-05"}
	if !reflect.DeepEqual(args, want) {
		Te.Errorf("ns_analyse args:\n got %v\nwant %v", args, want)
	}
	run.SetBoltzmann(1.0)
	args = run.Args("run.energies", 100.0, 10, 5.0)
	if args[8] != "1" {
		Te.Errorf("Boltzmann constant not forwarded: %v", args)
	}
}

func TestRDFArgs(Te *testing.T) {
	run := NewRDF()
	args := run.Args("run.traj.ordered.extxyz", "1", "1", 10.0, 0.1)
	want := []string{"run.traj.ordered.extxyz", "1", "1", "10", "0.1"}
	if !reflect.DeepEqual(args, want) {
		Te.Errorf("rdf args:\n got %v\nwant %v", args, want)
	}
}

func TestQWArgs(Te *testing.T) {
	run := NewQW()
	args := run.Args("run.traj.ordered.extxyz", 3.2, 4)
	want := []string{"run.traj.ordered.extxyz", "3.2", "4", "T"}
	if !reflect.DeepEqual(args, want) {
		Te.Errorf("qw args:\n got %v\nwant %v", args, want)
	}
	run.Averaged(false)
	args = run.Args("run.traj.ordered.extxyz", 3.2, 6)
	if args[2] != "6" || args[3] != "F" {
		Te.Errorf("order or averaging flag not forwarded: %v", args)
	}
}

func TestQWName(Te *testing.T) {
	if got := QWName("run", 4); got != "run_ordered.qw4" {
		Te.Errorf("QWName = %s", got)
	}
	if got := QWName("run", 6); got != "run_ordered.qw6" {
		Te.Errorf("QWName = %s", got)
	}
}

/*
 * merge.go, part of nspost.
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
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

//TrajName returns the name of the per-walker trajectory file i for the given
//run prefix.
func TrajName(prefix string, i int) string {
	return fmt.Sprintf("%s.traj.%d.extxyz", prefix, i)
}

//OrderedName returns the name of the globally ordered trajectory file for
//the given run prefix.
func OrderedName(prefix string) string {
	return prefix + ".traj.ordered.extxyz"
}

//NumTrajectories scans the directory dir for per-walker trajectory files of
//the given prefix and returns the highest index found plus one, or zero if
//there are none. Gaps below the highest index are not detected here; Merge
//fails on the first absent index instead.
func NumTrajectories(dir, prefix string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, FileError{UnableToOpen + ": " + err.Error(), dir, []string{"NumTrajectories"}}
	}
	max := -1
	head := prefix + ".traj."
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".gz")
		if !strings.HasPrefix(name, head) || !strings.HasSuffix(name, ".extxyz") {
			continue
		}
		numstr := strings.TrimSuffix(strings.TrimPrefix(name, head), ".extxyz")
		i, err := strconv.Atoi(numstr)
		if err != nil {
			continue //some other artifact sharing the prefix, like the ordered file
		}
		if i > max {
			max = i
		}
	}
	return max + 1, nil
}

//Merge reads the ntraj per-walker trajectory files of the given prefix and
//returns all their configurations in one sequence, sorted by non-decreasing
//nested-sampling iteration. The sort is stable: configurations sharing an
//iteration keep the order in which they were encountered, walker by walker.
//Every index in [0, ntraj) must be readable; a missing file is an error, not
//a skip. ntraj == 0 is valid and yields an empty sequence.
func Merge(prefix string, ntraj int) ([]*Config, error) {
	merged := make([]*Config, 0, 1000)
	for i := 0; i < ntraj; i++ {
		name := TrajName(prefix, i)
		if _, err := os.Stat(name); err != nil {
			if _, err2 := os.Stat(name + ".gz"); err2 != nil {
				return nil, FileError{fmt.Sprintf("%s: index %d", MissingInRange, i), name, []string{"Merge"}}
			}
		}
		configs, err := XYZSeqRead(name)
		if err != nil {
			if err2, ok := err.(Error); ok {
				err2.Decorate(fmt.Sprintf("Merge: trajectory index %d", i))
				return nil, err2
			}
			return nil, err
		}
		merged = append(merged, configs...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].iter < merged[j].iter
	})
	return merged, nil
}

//MergeAndWrite merges the per-walker trajectories of prefix and persists the
//result as the ordered trajectory file, which the later pipeline stages and
//the external bond-order engine consume. It returns the merged sequence.
func MergeAndWrite(prefix string, ntraj int) ([]*Config, error) {
	merged, err := Merge(prefix, ntraj)
	if err != nil {
		return nil, err
	}
	if err := XYZSeqWrite(OrderedName(prefix), merged); err != nil {
		return nil, err
	}
	return merged, nil
}

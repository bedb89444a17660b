/*
 * shell.go, part of nspost.
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

//Package shell locates the gap between the first and second coordination
//shells in a radial distribution function, and derives from it the cutoff
//radius handed to the external bond-order engine when the user does not
//supply one explicitly.
package shell

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	ns "nspost"
)

//RDFCurve is the tabulated (radius, density) curve written by the external
//radial-distribution engine, in file order.
type RDFCurve struct {
	Radii     []float64
	Densities []float64
}

//Len returns the number of tabulated points.
func (c *RDFCurve) Len() int {
	return len(c.Radii)
}

//ReadRDF reads the whitespace table written by the radial-distribution
//engine: radius in column 0, density in column 1. Lines starting with '#'
//are skipped.
func ReadRDF(name string) (*RDFCurve, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, ns.NewFileError(ns.UnableToOpen+": "+err.Error(), name, "ReadRDF")
	}
	defer f.Close()
	c := &RDFCurve{Radii: make([]float64, 0, 100), Densities: make([]float64, 0, 100)}
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, ns.NewFileError(fmt.Sprintf("%s: line %d has %d columns, need 2", ns.UnreadableTable, lineno, len(fields)), name, "ReadRDF")
		}
		r, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, ns.NewFileError(fmt.Sprintf("%s: line %d: %s", ns.UnreadableTable, lineno, err.Error()), name, "ReadRDF")
		}
		d, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, ns.NewFileError(fmt.Sprintf("%s: line %d: %s", ns.UnreadableTable, lineno, err.Error()), name, "ReadRDF")
		}
		c.Radii = append(c.Radii, r)
		c.Densities = append(c.Densities, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, ns.NewFileError(ns.UnreadableTable+": "+err.Error(), name, "ReadRDF")
	}
	return c, nil
}

//Options holds the parameters of the boundary search.
type Options struct {
	tol float64
}

//DefaultOptions returns an Options with the default search parameters.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.tol = 0
	return ret
}

//Tolerance returns the density tolerance below which a tabulated value is
//taken as zero, and sets it, if a value is given. The default is 0, i.e.
//exact comparison: tabulated densities that are merely close to zero from
//numerical noise do not end a shell. That matches how the curves produced
//by the RDF engine are binned, where empty bins are written as exact zeros.
func (o *Options) Tolerance(tol ...float64) float64 {
	ret := o.tol
	if len(tol) > 0 && tol[0] >= 0 {
		o.tol = tol[0]
	}
	return ret
}

func (o *Options) zero(d float64) bool {
	return math.Abs(d) <= o.tol
}

//FindCutoff scans the curve for the end of the first coordination shell (the
//first point with zero density following a nonzero one) and the start of the
//second (the first later point where the density becomes nonzero again), and
//returns the radius at the index midway between the two, with the midpoint
//rounded to the nearest index. If either boundary is not found there is no
//fallback; the returned Error is a hard stop for the caller.
func FindCutoff(curve *RDFCurve, options ...*Options) (float64, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if curve.Len() != len(curve.Densities) {
		return 0, Error{"radius and density columns differ in length", []string{"FindCutoff"}}
	}
	end := -1 //end of the first shell
	for i := 1; i < curve.Len(); i++ {
		if o.zero(curve.Densities[i]) && !o.zero(curve.Densities[i-1]) {
			end = i
			break
		}
	}
	if end < 0 {
		return 0, Error{NoFirstShellEnd, []string{"FindCutoff"}}
	}
	start := -1 //start of the second shell
	for i := end + 1; i < curve.Len(); i++ {
		if !o.zero(curve.Densities[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, Error{NoSecondShellStart, []string{"FindCutoff"}}
	}
	mid := end + int(math.Round(float64(start-end)/2))
	return curve.Radii[mid], nil
}

//Errors

//Sentinel messages for shell errors.
const (
	NoFirstShellEnd    = "Density never falls to zero: can't find the end of the first shell"
	NoSecondShellStart = "Density never becomes nonzero again: can't find the start of the second shell"
)

// Error is the type for failures of the shell-boundary search. It fulfills
// ns.Error.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string {
	return "nspost shell error: " + err.message
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

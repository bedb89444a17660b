/*
 * engines.go, part of nspost.
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

//Package engines invokes the external analysis programs of the
//nested-sampling toolchain: the partition-function/heat-capacity engine, the
//radial-distribution engine and the bond-order engine. The physics lives in
//those programs; this package only builds their command lines, redirects
//their output to the artifacts the rest of the pipeline consumes, and turns
//a nonzero exit into an error carrying the exit code. The engines are
//assumed deterministic, so nothing is ever retried.
package engines

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

//DefaultBoltzmann is the Boltzmann constant passed to the partition-function
//engine, in eV/K.
const DefaultBoltzmann = 8.6173324e-05

//Artifacts the engines write.
const (
	AnalyseOut = "analyse.dat"
	RDFOut     = "allrdf.out"
)

//QWName returns the name of the bond-order table the QW engine writes for
//the given run prefix and angular-momentum order l.
func QWName(prefix string, l int) string {
	return fmt.Sprintf("%s_ordered.qw%d", prefix, l)
}

//runEngine runs command with the given arguments, sending its standard
//output to stdout. If the command is not on the PATH, a binary of the same
//name in the working directory is tried before giving up.
func runEngine(command string, args []string, stdout io.Writer) error {
	log.Printf("running: %s %s", command, strings.Join(args, " "))
	cmd := exec.Command(command, args...)
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err != nil && errors.Is(err, exec.ErrNotFound) && !strings.HasPrefix(command, "./") {
		cmd = exec.Command("./"+command, args...)
		cmd.Stdout = stdout
		cmd.Stderr = os.Stderr
		err = cmd.Run()
	}
	if err == nil {
		return nil
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return Error{ErrNonZeroExit, command, []string{"runEngine"}, exit.ExitCode()}
	}
	return Error{ErrNotRunning + ": " + err.Error(), command, []string{"runEngine"}, -1}
}

//NSAnalyse invokes the partition-function/heat-capacity engine over the
//energies log of a run, capturing its output table as analyse.dat.
type NSAnalyse struct {
	command   string
	boltzmann float64
}

func NewNSAnalyse() *NSAnalyse {
	run := new(NSAnalyse)
	run.SetDefaults()
	return run
}

func (O *NSAnalyse) SetDefaults() {
	O.command = "ns_analyse"
	O.boltzmann = DefaultBoltzmann
}

func (O *NSAnalyse) SetCommand(name string) {
	O.command = name
}

//SetBoltzmann sets the Boltzmann constant handed to the engine, for runs in
//units other than eV/K.
func (O *NSAnalyse) SetBoltzmann(k float64) {
	O.boltzmann = k
}

//Args builds the engine's command line for the given energies file, minimum
//temperature, number of temperature steps and temperature step.
func (O *NSAnalyse) Args(energiesFile string, minTemp float64, steps int, tempStep float64) []string {
	return []string{
		energiesFile,
		"-M", strconv.FormatFloat(minTemp, 'g', -1, 64),
		"-n", strconv.Itoa(steps),
		"-D", strconv.FormatFloat(tempStep, 'g', -1, 64),
		"-k", strconv.FormatFloat(O.boltzmann, 'g', -1, 64),
	}
}

//Run runs the engine and leaves its table in analyse.dat.
func (O *NSAnalyse) Run(energiesFile string, minTemp float64, steps int, tempStep float64) error {
	out, err := os.Create(AnalyseOut)
	if err != nil {
		return Error{"Can't create " + AnalyseOut + ": " + err.Error(), O.command, []string{"Run"}, -1}
	}
	defer out.Close()
	return runEngine(O.command, O.Args(energiesFile, minTemp, steps, tempStep), out)
}

//RDF invokes the radial-distribution engine over a configuration file,
//producing the allrdf.out curve consumed by the shell-boundary detection.
type RDF struct {
	command string
}

func NewRDF() *RDF {
	run := new(RDF)
	run.SetDefaults()
	return run
}

func (O *RDF) SetDefaults() {
	O.command = "ns_rdf"
}

func (O *RDF) SetCommand(name string) {
	O.command = name
}

//Args builds the engine's command line: the configuration file, the two
//species masks, the maximum radius and the bin width.
func (O *RDF) Args(trajFile, maskA, maskB string, cutoff, binWidth float64) []string {
	return []string{
		trajFile,
		maskA, maskB,
		strconv.FormatFloat(cutoff, 'g', -1, 64),
		strconv.FormatFloat(binWidth, 'g', -1, 64),
	}
}

//Run runs the engine; the curve ends up in allrdf.out.
func (O *RDF) Run(trajFile, maskA, maskB string, cutoff, binWidth float64) error {
	return runEngine(O.command, O.Args(trajFile, maskA, maskB, cutoff, binWidth), os.Stdout)
}

//QW invokes the bond-order engine over the ordered trajectory, once per
//angular-momentum order. For a run prefixed p and order l the engine writes
//its table to p_ordered.qwl.
type QW struct {
	command  string
	averaged bool
}

func NewQW() *QW {
	run := new(QW)
	run.SetDefaults()
	return run
}

func (O *QW) SetDefaults() {
	O.command = "ns_qw"
	O.averaged = true
}

func (O *QW) SetCommand(name string) {
	O.command = name
}

//Averaged returns whether the engine is asked for neighbor-averaged bond
//order parameters, and sets it, if a value is given.
func (O *QW) Averaged(av ...bool) bool {
	ret := O.averaged
	if len(av) > 0 {
		O.averaged = av[0]
	}
	return ret
}

//Args builds the engine's command line: the ordered trajectory, the cutoff
//radius, the angular-momentum order and the averaging flag.
func (O *QW) Args(trajFile string, cutoff float64, l int) []string {
	av := "F"
	if O.averaged {
		av = "T"
	}
	return []string{
		trajFile,
		strconv.FormatFloat(cutoff, 'g', -1, 64),
		strconv.Itoa(l),
		av,
	}
}

//Run runs the engine for one angular-momentum order.
func (O *QW) Run(trajFile string, cutoff float64, l int) error {
	return runEngine(O.command, O.Args(trajFile, cutoff, l), os.Stdout)
}

//Errors

//Sentinel messages for engine errors.
const (
	ErrNotRunning  = "Couldn't run the external engine"
	ErrNonZeroExit = "External engine exited with a nonzero status"
)

// Error is the type for failures of the external engines. It fulfills
// ns.Error and carries the engine's exit code, which the caller is expected
// to propagate as its own.
type Error struct {
	message  string
	engine   string //the command that failed
	deco     []string
	exitCode int //-1 when the engine could not be started at all
}

func (err Error) Error() string {
	return fmt.Sprintf("nspost engine %s error: %s (exit %d)", err.engine, err.message, err.exitCode)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Engine returns the command associated to the error.
func (err Error) Engine() string { return err.engine }

//ExitCode returns the exit status of the failed engine, or -1 if it never
//ran.
func (err Error) ExitCode() int { return err.exitCode }

/*
 * main.go, part of nspost.
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

//The nspost command drives the whole post-analysis pipeline over the output
//of a nested-sampling run found in the working directory.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	ns "nspost"
	"nspost/engines"
	"nspost/shell"
	"nspost/thermo"
)

var rootCmd = &cobra.Command{
	Use:   "nspost",
	Short: "nspost post-processes the output of a nested-sampling run",
	Long: `nspost merges the per-walker trajectories of a nested-sampling run into one
iteration-ordered trajectory, assigns each configuration a temperature by
inverting the heat-capacity table of ns_analyse, derives a bond-order cutoff
from the radial distribution function, and joins everything with the
bond-order parameters into a single per-configuration table.

It expects to be run in the directory holding the run output, with exactly
one .energies file from which the run prefix and the number of live points
are taken.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPost(cmd)
	},
}

func init() {
	rootCmd.Flags().Bool("qw", false, "enable the bond-order (QW) calculation")
	rootCmd.Flags().Bool("rdf", false, "enable the radial-distribution calculation")
	rootCmd.Flags().Float64P("min-temp", "M", 0, "heat capacity: minimum temperature")
	rootCmd.Flags().IntP("num-temps", "n", 0, "heat capacity: number of temperature steps")
	rootCmd.Flags().Float64P("temp-step", "D", 0, "heat capacity: temperature step")
	rootCmd.Flags().Float64("cutoff", 0, "bond-order cutoff radius; derived from the RDF when not given")
	rootCmd.Flags().Float64("rmax", 10.0, "maximum radius for the RDF calculation")
	rootCmd.Flags().Float64("bin", 0.1, "bin width for the RDF calculation")
	rootCmd.Flags().String("mask1", "1", "first species mask for the RDF calculation")
	rootCmd.Flags().String("mask2", "1", "second species mask for the RDF calculation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		//an engine failure is propagated as the engine's own exit code
		var eng engines.Error
		if errors.As(err, &eng) && eng.ExitCode() > 0 {
			os.Exit(eng.ExitCode())
		}
		os.Exit(1)
	}
}

//hcFlags validates the coupling of the three heat-capacity flags, which only
//make sense together. It returns whether heat-capacity analysis was requested.
func hcFlags(minSet, numSet, stepSet bool) (bool, error) {
	set := 0
	for _, s := range []bool{minSet, numSet, stepSet} {
		if s {
			set++
		}
	}
	if set != 0 && set != 3 {
		return false, fmt.Errorf("the -M, -n and -D flags must be set together")
	}
	return set == 3, nil
}

//findEnergies locates the single .energies file of the run in the given
//directory and returns the run prefix and the live-point count read from the
//first token of its first line.
func findEnergies(dir string) (string, int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.energies"))
	if err != nil {
		return "", 0, err
	}
	if len(matches) == 0 {
		return "", 0, fmt.Errorf("no .energies file found")
	}
	if len(matches) > 1 {
		return "", 0, fmt.Errorf("multiple .energies files found (%s): please ensure only one exists", strings.Join(matches, ", "))
	}
	name := matches[0]
	f, err := os.Open(name)
	if err != nil {
		return "", 0, ns.NewFileError(ns.UnableToOpen+": "+err.Error(), name, "findEnergies")
	}
	defer f.Close()
	line, _ := bufio.NewReader(f).ReadString('\n') //a missing newline at EOF is fine
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, ns.NewFileError(ns.WrongFormat+": can't read the live-point count", name, "findEnergies")
	}
	points, err := strconv.Atoi(fields[0])
	if err != nil {
		return "", 0, ns.NewFileError(ns.WrongFormat+": bad live-point count "+fields[0], name, "findEnergies")
	}
	return strings.TrimSuffix(name, ".energies"), points, nil
}

func runPost(cmd *cobra.Command) error {
	flags := cmd.Flags()
	doQW, _ := flags.GetBool("qw")
	doRDF, _ := flags.GetBool("rdf")
	minTemp, _ := flags.GetFloat64("min-temp")
	numTemps, _ := flags.GetInt("num-temps")
	tempStep, _ := flags.GetFloat64("temp-step")
	cutoff, _ := flags.GetFloat64("cutoff")
	rmax, _ := flags.GetFloat64("rmax")
	bin, _ := flags.GetFloat64("bin")
	mask1, _ := flags.GetString("mask1")
	mask2, _ := flags.GetString("mask2")

	haveHC, err := hcFlags(flags.Changed("min-temp"), flags.Changed("num-temps"), flags.Changed("temp-step"))
	if err != nil {
		return err
	}

	prefix, livePoints, err := findEnergies(".")
	if err != nil {
		return err
	}
	fmt.Printf("run prefix %s, %d live points\n", prefix, livePoints)

	//Stage 1: merge the per-walker trajectories into the ordered one.
	ntraj, err := ns.NumTrajectories(".", prefix)
	if err != nil {
		return err
	}
	merged, err := ns.MergeAndWrite(prefix, ntraj)
	if err != nil {
		return err
	}
	fmt.Printf("merged %d configurations from %d trajectories into %s\n", len(merged), ntraj, ns.OrderedName(prefix))
	if len(merged) > 0 {
		energies := make([]float64, len(merged))
		for i, c := range merged {
			energies[i] = c.Energy()
		}
		fmt.Printf("energy range: %g to %g\n", floats.Min(energies), floats.Max(energies))
	}

	//Stage 2: the partition-function table and the temperature of every
	//configuration. An analyse.dat already present is reused as-is.
	if haveHC {
		if err := engines.NewNSAnalyse().Run(prefix+".energies", minTemp, numTemps, tempStep); err != nil {
			return err
		}
	} else if _, err := os.Stat(engines.AnalyseOut); err != nil {
		return fmt.Errorf("no %s present: run with -M, -n and -D to produce it", engines.AnalyseOut)
	}
	table, err := thermo.ReadPartitionTable(engines.AnalyseOut)
	if err != nil {
		return err
	}
	mapper, err := thermo.NewMapper(table)
	if err != nil {
		return err
	}
	temperatures := mapper.Temperatures(merged)

	//Stage 3: the bond-order cutoff, from the flag or from the RDF.
	if doRDF {
		if err := engines.NewRDF().Run(ns.OrderedName(prefix), mask1, mask2, rmax, bin); err != nil {
			return err
		}
	}
	if doQW && !flags.Changed("cutoff") {
		if !doRDF {
			return fmt.Errorf("--qw needs either --cutoff or --rdf to derive one")
		}
		curve, err := shell.ReadRDF(engines.RDFOut)
		if err != nil {
			return err
		}
		cutoff, err = shell.FindCutoff(curve)
		if err != nil {
			return err
		}
		fmt.Printf("bond-order cutoff from the RDF: %g\n", cutoff)
	}

	//Stage 4: bond order and the final table.
	if !doQW {
		return nil
	}
	qwEngine := engines.NewQW()
	for _, l := range []int{4, 6} {
		if err := qwEngine.Run(ns.OrderedName(prefix), cutoff, l); err != nil {
			return err
		}
	}
	qw4, err := ns.ReadQW(engines.QWName(prefix, 4))
	if err != nil {
		return err
	}
	qw6, err := ns.ReadQW(engines.QWName(prefix, 6))
	if err != nil {
		return err
	}
	records, err := ns.Assemble(merged, temperatures, qw4, qw6)
	if err != nil {
		return err
	}
	if err := ns.WriteRecords(prefix+".data", records); err != nil {
		return err
	}
	fmt.Printf("appended %d records to %s.data\n", len(records), prefix)
	return nil
}

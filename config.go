/*
 * config.go, part of nspost.
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

//Config is one configuration (snapshot) taken from a nested-sampling
//trajectory. The atomic payload (species and positions) is kept verbatim, as
//this pipeline never interprets it numerically; the per-configuration
//metadata parsed from the extended-XYZ comment line is exposed through the
//accessor methods. A Config is not modified after it has been read.
type Config struct {
	natoms  int
	comment string   //comment line, verbatim, without the trailing newline
	atoms   []string //raw atom lines, verbatim
	info    map[string]string
	iter    int
	energy  float64
	kinetic float64
	volume  float64
	hasvol  bool
}

//NAtoms returns the number of atoms in the configuration.
func (C *Config) NAtoms() int {
	return C.natoms
}

//Iter returns the nested-sampling iteration that produced the configuration.
func (C *Config) Iter() int {
	return C.iter
}

//Energy returns the nested-sampling energy (the ns_energy field) of the
//configuration.
func (C *Config) Energy() float64 {
	return C.energy
}

//KineticEnergy returns the kinetic energy (the ns_KE field) of the
//configuration.
func (C *Config) KineticEnergy() float64 {
	return C.kinetic
}

//Volume returns the cell volume of the configuration and whether the field
//was present at all. It is absent in constant-volume ensembles.
func (C *Config) Volume() (float64, bool) {
	return C.volume, C.hasvol
}

//Info returns the value of the comment-line field key, or the empty string
//if the configuration carries no such field.
func (C *Config) Info(key string) string {
	return C.info[key]
}

//Comment returns the comment line of the configuration, verbatim.
func (C *Config) Comment() string {
	return C.comment
}

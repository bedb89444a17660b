/*
 * doc.go, part of nspost.
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

/*Package ns is the main package of the nspost library. It post-processes the
output of a nested-sampling run: the per-walker extended-XYZ trajectory files
and the energies log that the sampler leaves behind.

	**nspost capabilities**

    Reads/writes extended-XYZ configuration sequences, plain or gzipped.

    Merges the per-walker trajectories of a run into a single sequence,
	globally ordered by the nested-sampling iteration that produced each
	configuration.

    Assembles the final per-configuration table (iteration, energies,
	volume, temperature and bond-order parameters) from the merged
	trajectory and the tables written by the external analysis engines.

The temperature assignment and the coordination-shell cutoff detection live in
the thermo and shell subpackages. Invocation of the external engines
(partition function, radial distribution and bond order) lives in the engines
subpackage. The nspost command under cmd/ drives the whole pipeline.

All packages in this library return errors satisfying the ns.Error interface,
which allows information to be attached to an error as it travels up the call
stack without wrapping it into another type.
*/
package ns

/*
 * errors.go, part of nspost.
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

import "fmt"

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// Each call returns the current "decoration" slice of strings; if passed an
// empty string it just returns the current value without adding anything.
// The decoration slice should contain a list of the functions in the calling
// stack plus, for each function, any relevant information, in the format
// "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

//Sentinel messages for FileError.
const (
	UnableToOpen    = "Unable to open file"
	WrongFormat     = "Wrong format in file"
	MissingInRange  = "Trajectory file missing within the expected index range"
	UnreadableTable = "Unable to read table"
)

// FileError is returned when a required artifact of the pipeline is missing
// or unreadable. It fulfills ns.Error.
type FileError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
}

//NewFileError builds a FileError for the file filename, so subpackages can
//report missing or unreadable artifacts with the same type the root package
//uses.
func NewFileError(message, filename, caller string) FileError {
	return FileError{message, filename, []string{caller}}
}

func (err FileError) Error() string {
	return fmt.Sprintf("nspost file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err FileError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries
	//to alter the receiver, it should work, since err.deco is a slice, and
	//hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing operation was associated.
func (err FileError) FileName() string { return err.filename }

// AssemblyError is returned when the sources to be joined into the final
// per-configuration table do not have matching lengths. The source field
// names the offending input. It fulfills ns.Error.
type AssemblyError struct {
	source   string //which of the joined inputs has the wrong length
	got      int
	expected int
	deco     []string
}

func (err AssemblyError) Error() string {
	return fmt.Sprintf("nspost assembly error: source %s has %d rows, expected %d", err.source, err.got, err.expected)
}

//Decorate adds new information to the error.
func (err AssemblyError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Source returns the name of the input whose length did not match the others.
func (err AssemblyError) Source() string { return err.source }

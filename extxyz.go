/*
 * extxyz.go, part of nspost.
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

/**********
This reads and writes extended-XYZ configuration sequences, as written by the
nested-sampling code.

Each frame has 3 parts. The first line contains the number of atoms. The
second, "comment" line contains a set of key=value pairs separated by spaces,
where a value may be surrounded by double quotes and contain spaces (the
Lattice and Properties fields are like that). The per-configuration metadata
nspost cares about lives here: iter, ns_energy, ns_KE and volume. Then follow
as many atom lines as the first line announced.

The atom lines and the comment line are kept verbatim in the Config, so a
sequence can be written back without any loss; only the metadata fields are
actually parsed.
***********/

package ns

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//Fields of the comment line read into a Config.
const (
	iterField   = "iter"
	energyField = "ns_energy"
	keField     = "ns_KE"
	volumeField = "volume"
)

//openSeq opens an extended-XYZ sequence for reading, transparently undoing
//gzip compression when the file carries a .gz suffix. If name itself is not
//there but name.gz is, the compressed file is used.
func openSeq(name string) (io.ReadCloser, error) {
	gzname := name
	if !strings.HasSuffix(name, ".gz") {
		if _, err := os.Stat(name); err == nil {
			f, err := os.Open(name)
			if err != nil {
				return nil, FileError{UnableToOpen + ": " + err.Error(), name, []string{"openSeq"}}
			}
			return f, nil
		}
		gzname = name + ".gz"
	}
	f, err := os.Open(gzname)
	if err != nil {
		return nil, FileError{UnableToOpen + ": " + err.Error(), name, []string{"openSeq"}}
	}
	g, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, FileError{WrongFormat + ": " + err.Error(), gzname, []string{"openSeq"}}
	}
	return &gzSeq{g, f}, nil
}

//gzSeq ties the lifetime of the underlying file to that of the gzip reader.
type gzSeq struct {
	*gzip.Reader
	f *os.File
}

func (g *gzSeq) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

//XYZSeqRead reads every configuration in the extended-XYZ file name, which
//may be gzipped, and returns them in file order.
func XYZSeqRead(name string) ([]*Config, error) {
	r, err := openSeq(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	configs := make([]*Config, 0, 100)
	buf := bufio.NewReader(r)
	for {
		conf, err := readFrame(buf, name)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		configs = append(configs, conf)
	}
	return configs, nil
}

//readFrame reads one configuration. It returns io.EOF, and no error, if the
//sequence ended cleanly before the frame started.
func readFrame(buf *bufio.Reader, name string) (*Config, error) {
	line, err := buf.ReadString('\n')
	if err == io.EOF && strings.TrimSpace(line) == "" {
		return nil, io.EOF
	}
	if err != nil && err != io.EOF {
		return nil, FileError{WrongFormat + ": " + err.Error(), name, []string{"readFrame"}}
	}
	natoms, err2 := strconv.Atoi(strings.TrimSpace(line))
	if err2 != nil {
		return nil, FileError{WrongFormat + ": can't read the atom number: " + err2.Error(), name, []string{"readFrame"}}
	}
	comment, err := buf.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, FileError{WrongFormat + ": " + err.Error(), name, []string{"readFrame"}}
	}
	comment = strings.TrimRight(comment, "\n")
	conf := &Config{natoms: natoms, comment: comment, atoms: make([]string, 0, natoms)}
	conf.info = parseComment(comment)
	if err := conf.parseMeta(name); err != nil {
		return nil, err
	}
	for i := 0; i < natoms; i++ {
		line, err := buf.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			return nil, FileError{fmt.Sprintf("%s: frame truncated at atom %d", WrongFormat, i), name, []string{"readFrame"}}
		}
		conf.atoms = append(conf.atoms, strings.TrimRight(line, "\n"))
	}
	return conf, nil
}

//parseMeta extracts the typed metadata fields from the already-parsed
//comment fields of the configuration. iter and ns_energy must be present,
//ns_KE and volume may be absent.
func (C *Config) parseMeta(name string) error {
	it, ok := C.info[iterField]
	if !ok {
		return FileError{WrongFormat + ": comment line lacks the iter field", name, []string{"parseMeta"}}
	}
	var err error
	C.iter, err = strconv.Atoi(it)
	if err != nil || C.iter < 0 {
		return FileError{WrongFormat + ": bad iter field: " + it, name, []string{"parseMeta"}}
	}
	en, ok := C.info[energyField]
	if !ok {
		return FileError{WrongFormat + ": comment line lacks the ns_energy field", name, []string{"parseMeta"}}
	}
	C.energy, err = strconv.ParseFloat(en, 64)
	if err != nil {
		return FileError{WrongFormat + ": bad ns_energy field: " + en, name, []string{"parseMeta"}}
	}
	if ke, ok := C.info[keField]; ok {
		C.kinetic, err = strconv.ParseFloat(ke, 64)
		if err != nil {
			return FileError{WrongFormat + ": bad ns_KE field: " + ke, name, []string{"parseMeta"}}
		}
	}
	if vol, ok := C.info[volumeField]; ok {
		C.volume, err = strconv.ParseFloat(vol, 64)
		if err != nil {
			return FileError{WrongFormat + ": bad volume field: " + vol, name, []string{"parseMeta"}}
		}
		C.hasvol = true
	}
	return nil
}

//parseComment splits an extended-XYZ comment line into its key=value pairs.
//Values may be surrounded by double quotes and contain spaces, as in the
//Lattice and Properties fields. A bare key without '=' is stored with the
//value "T", following the extended-XYZ convention for boolean flags.
func parseComment(line string) map[string]string {
	ret := make(map[string]string)
	fields := quotedFields(line)
	for _, f := range fields {
		kv := strings.SplitN(f, "=", 2)
		if len(kv) == 1 {
			ret[kv[0]] = "T"
			continue
		}
		ret[kv[0]] = strings.Trim(kv[1], "\"")
	}
	return ret
}

//quotedFields splits on spaces, except for spaces enclosed in double quotes.
func quotedFields(line string) []string {
	ret := make([]string, 0, 10)
	var cur strings.Builder
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && !quoted:
			if cur.Len() > 0 {
				ret = append(ret, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		ret = append(ret, cur.String())
	}
	return ret
}

//XYZSeqWrite writes the given configurations, in order, to an extended-XYZ
//file with name name, which will be created. If the file exists it will be
//overwritten. The comment and atom lines of each configuration are emitted
//verbatim, so reading the file back yields the same metadata values.
func XYZSeqWrite(name string, configs []*Config) error {
	out, err := os.Create(name)
	if err != nil {
		return FileError{UnableToOpen + ": " + err.Error(), name, []string{"XYZSeqWrite"}}
	}
	defer out.Close()
	buf := bufio.NewWriter(out)
	for _, conf := range configs {
		fmt.Fprintf(buf, "%d\n", conf.natoms)
		fmt.Fprintf(buf, "%s\n", conf.comment)
		for _, a := range conf.atoms {
			fmt.Fprintf(buf, "%s\n", a)
		}
	}
	if err := buf.Flush(); err != nil {
		return FileError{"Can't write sequence: " + err.Error(), name, []string{"XYZSeqWrite"}}
	}
	return nil
}

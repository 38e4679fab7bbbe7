// Copyright (C) 2026 the kpfsched authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package target

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Header names as they appear in the sheet export. Unknown columns are
// ignored on read and omitted on write.
var csvColumns=[]string{
	"ticid", "ra", "dec", "v_mag", "tess_mag", "t_sec_kpf", "expmeter_kpf",
	"observe_kpf", "observe_neid", "planet_radius", "period", "epoch",
	"stellar_teff", "stellar_distance",
}

// Reads a catalog from CSV. The column order is taken from the header
// row; extra columns and blank numeric cells (read as NaN) are tolerated.
func ReadCSV(r io.Reader) (ts []Target, err error) {
	cr:=csv.NewReader(r)
	cr.TrimLeadingSpace=true

	header, err:=cr.Read()
	if err!=nil { return nil, fmt.Errorf("target csv: reading header: %w", err) }
	col:=map[string]int{}
	for i, name:=range header {
		col[strings.TrimSpace(strings.ToLower(name))]=i
	}
	if _, ok:=col["ra"]; !ok { return nil, fmt.Errorf("target csv: no 'ra' column in header %v", header) }

	field:=func(rec []string, name string) string {
		i, ok:=col[name]
		if !ok || i>=len(rec) { return "" }
		return strings.TrimSpace(rec[i])
	}

	for line:=2; ; line++ {
		rec, err:=cr.Read()
		if err==io.EOF { break }
		if err!=nil { return nil, fmt.Errorf("target csv: line %d: %w", line, err) }

		var t Target
		t.TICID     =parseInt  (field(rec, "ticid"))
		t.RA        =parseFloat(field(rec, "ra"))
		t.Dec       =parseFloat(field(rec, "dec"))
		t.VMag      =parseFloat(field(rec, "v_mag"))
		t.TESSMag   =parseFloat(field(rec, "tess_mag"))
		t.ExpTimeSec=parseFloat(field(rec, "t_sec_kpf"))
		t.ExpMeter  =parseFloat(field(rec, "expmeter_kpf"))
		t.ObserveKPF =parseBool(field(rec, "observe_kpf"))
		t.ObserveNEID=parseBool(field(rec, "observe_neid"))
		t.PlanetRadiusRE=parseFloat(field(rec, "planet_radius"))
		t.PeriodDays    =parseFloat(field(rec, "period"))
		t.EpochBJD      =parseFloat(field(rec, "epoch"))
		t.StellarTeff   =parseFloat(field(rec, "stellar_teff"))
		t.StellarDistPC =parseFloat(field(rec, "stellar_distance"))
		ts=append(ts, t)
	}
	return ts, nil
}

// Reads a catalog from a CSV file.
func ReadCSVFile(fileName string) (ts []Target, err error) {
	f, err:=os.Open(fileName)
	if err!=nil { return nil, err }
	defer f.Close()
	return ReadCSV(f)
}

// Writes a catalog as CSV with the canonical column set. NaNs become
// empty cells so a round trip preserves missing values.
func WriteCSV(w io.Writer, ts []Target) error {
	cw:=csv.NewWriter(w)
	if err:=cw.Write(csvColumns); err!=nil { return err }
	for i:=range ts {
		t:=&ts[i]
		rec:=[]string{
			strconv.FormatInt(t.TICID, 10),
			formatFloat(t.RA), formatFloat(t.Dec),
			formatFloat(t.VMag), formatFloat(t.TESSMag),
			formatFloat(t.ExpTimeSec), formatFloat(t.ExpMeter),
			formatBool(t.ObserveKPF), formatBool(t.ObserveNEID),
			formatFloat(t.PlanetRadiusRE), formatFloat(t.PeriodDays),
			formatFloat(t.EpochBJD),
			formatFloat(t.StellarTeff), formatFloat(t.StellarDistPC),
		}
		if err:=cw.Write(rec); err!=nil { return err }
	}
	cw.Flush()
	return cw.Error()
}

// Writes a catalog to a CSV file.
func WriteCSVFile(fileName string, ts []Target) error {
	f, err:=os.Create(fileName)
	if err!=nil { return err }
	if err:=WriteCSV(f, ts); err!=nil { f.Close(); return err }
	return f.Close()
}

func parseFloat(s string) float64 {
	if s=="" { return math.NaN() }
	v, err:=strconv.ParseFloat(s, 64)
	if err!=nil { return math.NaN() }
	return v
}

func parseInt(s string) int64 {
	v, err:=strconv.ParseInt(s, 10, 64)
	if err!=nil {
		// sheet sometimes exports integer IDs with a decimal point
		f, err:=strconv.ParseFloat(s, 64)
		if err!=nil { return 0 }
		return int64(f)
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "1", "1.0":
		return true
	}
	return false
}

func formatFloat(v float64) string {
	if math.IsNaN(v) { return "" }
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatBool(b bool) string {
	if b { return "True" }
	return "False"
}

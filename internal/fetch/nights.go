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

package fetch

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Query form of the Keck telescope schedule.
const DefaultScheduleURL="https://www2.keck.hawaii.edu/observing/keckSchedule/queryForm.php"

// A ScheduleQuery selects the allocation rows to download.
type ScheduleQuery struct {
	Instrument string `json:"instrument"` // e.g. "KPF-CC"
	Semester   string `json:"semester"`   // e.g. "2025B"
	StartDate  string `json:"startDate"`  // "YYYY-MM-DD"
	EndDate    string `json:"endDate"`    // "YYYY-MM-DD"
}

// A Night is one allocated (fraction of a) night on the schedule.
type Night struct {
	Date       string  `json:"date"`
	Instrument string  `json:"instrument"`
	Principal  string  `json:"principal"`
	Fraction   float64 `json:"fraction"` // of the night, 1 = full night
}

// Downloads the night-allocation schedule as CSV, saves the raw response
// to outFile when non-empty, and parses it. The endpoint answers a
// single parameterized GET; responses that are not CSV fail the parse.
func NightAllocation(ctx context.Context, url string, q ScheduleQuery, outFile string) (nights []Night, err error) {
	buf, err:=get(ctx, url, map[string]string{
		"doQuery": "1",
		"table":   "schedule",
		"inst":    q.Instrument,
		"sem":     q.Semester,
		"start":   q.StartDate,
		"end":     q.EndDate,
		"output":  "csv",
	})
	if err!=nil { return nil, fmt.Errorf("downloading night allocation: %w", err) }

	nights, err=ParseNights(bytes.NewReader(buf))
	if err!=nil { return nil, fmt.Errorf("night allocation response: %w", err) }

	if outFile!="" {
		if err:=os.WriteFile(outFile, buf, 0666); err!=nil { return nil, err }
	}
	return nights, nil
}

// Parses a night-allocation CSV. Column order comes from the header;
// beyond Date the columns are optional since the schedule export has
// changed shape over the semesters.
func ParseNights(r io.Reader) (nights []Night, err error) {
	cr:=csv.NewReader(r)
	cr.TrimLeadingSpace=true
	cr.FieldsPerRecord=-1

	header, err:=cr.Read()
	if err!=nil { return nil, fmt.Errorf("reading header: %w", err) }
	col:=map[string]int{}
	for i, name:=range header {
		col[strings.TrimSpace(strings.ToLower(name))]=i
	}
	if _, ok:=col["date"]; !ok { return nil, fmt.Errorf("no 'Date' column in header %v", header) }

	field:=func(rec []string, names ...string) string {
		for _, n:=range names {
			if i, ok:=col[n]; ok && i<len(rec) { return strings.TrimSpace(rec[i]) }
		}
		return ""
	}

	for {
		rec, err:=cr.Read()
		if err==io.EOF { break }
		if err!=nil { return nil, err }

		n:=Night{
			Date      : field(rec, "date"),
			Instrument: field(rec, "instrument", "instr"),
			Principal : field(rec, "principal", "pi"),
			Fraction  : 1,
		}
		if f:=field(rec, "fractionofnight", "fraction"); f!="" {
			if v, err:=strconv.ParseFloat(f, 64); err==nil { n.Fraction=v }
		}
		nights=append(nights, n)
	}
	return nights, nil
}

// Total allocated time in nights.
func TotalNights(nights []Night) (sum float64) {
	for _, n:=range nights { sum+=n.Fraction }
	return sum
}

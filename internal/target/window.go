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

import "fmt"

// A Window is one calendar slot of the observing strategy: targets whose
// RA falls in [RAMin,RAMax] are observable during [Start,End] UT.
type Window struct {
	Name     string  `json:"name"`     // short key, e.g. "nov"
	FullName string  `json:"fullName"` // e.g. "November"
	RAMin    float64 `json:"raMin"`    // degrees
	RAMax    float64 `json:"raMax"`    // degrees
	Start    string  `json:"start"`    // "YYYY-MM-DDTHH:MM" UT
	End      string  `json:"end"`      // "YYYY-MM-DDTHH:MM" UT
}

// Applies the window's RA cut to a catalog.
func (w *Window) Filter(ts []Target) []Target {
	return FilterRARange(ts, w.RAMin, w.RAMax)
}

// Observing strategy for the 2025B semester: one window per month,
// 60 degrees of RA each, November through January.
func Windows2025B() []Window {
	return []Window{
		{Name: "nov", FullName: "November", RAMin: 300, RAMax: 360,
			Start: "2025-11-01T12:00", End: "2025-12-01T12:00"},
		{Name: "dec", FullName: "December", RAMin: 0, RAMax: 60,
			Start: "2025-12-01T12:00", End: "2026-01-01T12:00"},
		{Name: "jan", FullName: "January", RAMin: 60, RAMax: 120,
			Start: "2026-01-01T12:00", End: "2026-02-01T12:00"},
	}
}

// Observing strategy for the 2026B semester: two-month windows covering
// RA 120 to 300 degrees, February through July.
func Windows2026B() []Window {
	return []Window{
		{Name: "febmar", FullName: "February/March", RAMin: 120, RAMax: 180,
			Start: "2026-02-01T12:00", End: "2026-04-01T12:00"},
		{Name: "aprmay", FullName: "April/May", RAMin: 180, RAMax: 240,
			Start: "2026-04-01T12:00", End: "2026-06-01T12:00"},
		{Name: "junjul", FullName: "June/July", RAMin: 240, RAMax: 300,
			Start: "2026-06-01T12:00", End: "2026-08-01T12:00"},
	}
}

// Returns the window set for a semester key like "2025B" or "2026B".
func WindowsForSemester(semester string) ([]Window, error) {
	switch semester {
	case "2025B":
		return Windows2025B(), nil
	case "2026B":
		return Windows2026B(), nil
	}
	return nil, fmt.Errorf("no observing strategy defined for semester %q", semester)
}

// Finds a window by short name within a set.
func FindWindow(ws []Window, name string) (*Window, error) {
	for i:=range ws {
		if ws[i].Name==name { return &ws[i], nil }
	}
	return nil, fmt.Errorf("unknown observing window %q", name)
}

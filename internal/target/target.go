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

// Package target holds the candidate-target catalog: the per-star record,
// CSV codec, threshold filters and summary statistics.
package target

import (
	"math"
	"sort"
)

// A Target is one candidate star from the ARIEL sheet. Coordinates are
// J2000 degrees. Numeric fields missing from the sheet are NaN.
type Target struct {
	TICID          int64   `json:"ticid"`
	RA             float64 `json:"ra"`
	Dec            float64 `json:"dec"`
	VMag           float64 `json:"vMag"`
	TESSMag        float64 `json:"tessMag"`
	ExpTimeSec     float64 `json:"tSecKPF"`     // single-shot exposure time for KPF
	ExpMeter       float64 `json:"expMeterKPF"` // exposure meter threshold
	ObserveKPF     bool    `json:"observeKPF"`
	ObserveNEID    bool    `json:"observeNEID"`
	PlanetRadiusRE float64 `json:"planetRadius"` // Earth radii
	PeriodDays     float64 `json:"period"`
	EpochBJD       float64 `json:"epoch"` // time of inferior conjunction
	StellarTeff    float64 `json:"stellarTeff"`
	StellarDistPC  float64 `json:"stellarDistance"`
}

// Sorts targets in place by V magnitude ascending, i.e. brightest first.
// Stable, so sheet order breaks magnitude ties.
func SortByVMag(ts []Target) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].VMag<ts[j].VMag })
}

// Sorts targets in place by right ascension ascending. Stable.
func SortByRA(ts []Target) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].RA<ts[j].RA })
}

// A Range is a [Min,Max] interval over the finite values of one column.
// Valid is false when every value was missing.
type Range struct {
	Min, Max float64
	N        int
	Valid    bool
}

func rangeOf(ts []Target, get func(*Target) float64) (r Range) {
	r.Min, r.Max = math.Inf(1), math.Inf(-1)
	for i:=range ts {
		v:=get(&ts[i])
		if math.IsNaN(v) { continue }
		if v<r.Min { r.Min=v }
		if v>r.Max { r.Max=v }
		r.N++
	}
	r.Valid=r.N>0
	return r
}

// A Summary reports the value ranges of a catalog subset, skipping NaNs,
// mirroring the per-column ranges printed after filtering the sheet.
type Summary struct {
	Count                  int
	RA, Dec                Range
	VMag, TESSMag          Range
	PlanetRadius, Period   Range
	StellarTeff, StellarDist Range
}

func Summarize(ts []Target) Summary {
	return Summary{
		Count       : len(ts),
		RA          : rangeOf(ts, func(t *Target) float64 { return t.RA }),
		Dec         : rangeOf(ts, func(t *Target) float64 { return t.Dec }),
		VMag        : rangeOf(ts, func(t *Target) float64 { return t.VMag }),
		TESSMag     : rangeOf(ts, func(t *Target) float64 { return t.TESSMag }),
		PlanetRadius: rangeOf(ts, func(t *Target) float64 { return t.PlanetRadiusRE }),
		Period      : rangeOf(ts, func(t *Target) float64 { return t.PeriodDays }),
		StellarTeff : rangeOf(ts, func(t *Target) float64 { return t.StellarTeff }),
		StellarDist : rangeOf(ts, func(t *Target) float64 { return t.StellarDistPC }),
	}
}

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

package split

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/arielkpf/kpfsched/internal/target"
)

// Group holds the statistics of one half of a split scope.
type Group struct {
	Count    int     `json:"count"`
	VMagMin  float64 `json:"vMagMin"`
	VMagMax  float64 `json:"vMagMax"`
	Hours    float64 `json:"hours"`
}

// A Scope is one splittable subset: the full semester or one month
// window. Empty scopes carry counts only.
type Scope struct {
	Name       string  `json:"name"`
	FullName   string  `json:"fullName"`
	RAMin      float64 `json:"raMin"`
	RAMax      float64 `json:"raMax"`
	Count      int     `json:"count"`
	TotalHours float64 `json:"totalHours"`
	Empty      bool    `json:"empty"`

	CutIndex      int     `json:"cutIndex"`
	CutoffVMag    float64 `json:"cutoffVMag"`
	CutoffTESSMag float64 `json:"cutoffTESSMag"`
	Upper         Group   `json:"upper"`
	Lower         Group   `json:"lower"`
}

// Difference in observing hours between the two halves.
func (s *Scope) DiffHours() float64 { return s.Upper.Hours-s.Lower.Hours }

// A Report aggregates the semester-wide split and the independent
// per-window splits.
type Report struct {
	Semester    string  `json:"semester"`
	OverheadSec float64 `json:"overheadSec"`
	Cadence     float64 `json:"cadence"`
	Skipped     int     `json:"skipped"` // targets dropped for missing magnitude or exposure time
	Total       Scope   `json:"total"`
	Windows     []Scope `json:"windows"`
}

// Cost of one target over the semester: single-shot exposure time plus
// per-visit overhead, times the visit cadence.
func visitCost(t *target.Target, overheadSec, cadence float64) float64 {
	return (t.ExpTimeSec+overheadSec)*cadence
}

// Splits a semester's targets into two groups of equal observing time,
// by magnitude, for the full semester and independently for each month
// window. The catalog is restricted to the union of the window RA
// ranges; targets without a finite magnitude or exposure time are
// dropped up front rather than poisoning the cumulative sums. Windows
// bin half-open [RAMin,RAMax) so a boundary target lands in one window
// only; the semester cut keeps its upper bound inclusive.
func Semester(ts []target.Target, semester string, windows []target.Window, overheadSec, cadence float64) (rep *Report, err error) {
	if len(windows)==0 { return nil, fmt.Errorf("semester %s: no observing windows", semester) }

	raMin, raMax:=windows[0].RAMin, windows[0].RAMax
	for _, w:=range windows[1:] {
		if w.RAMin<raMin { raMin=w.RAMin }
		if w.RAMax>raMax { raMax=w.RAMax }
	}

	sem:=target.FilterRARange(ts, raMin, raMax)
	kept:=sem[:0]
	skipped:=0
	for _, t:=range sem {
		if math.IsNaN(t.VMag) || math.IsNaN(t.ExpTimeSec) || t.ExpTimeSec<=0 {
			skipped++
			continue
		}
		kept=append(kept, t)
	}
	sem=kept
	target.SortByVMag(sem)

	rep=&Report{Semester: semester, OverheadSec: overheadSec, Cadence: cadence, Skipped: skipped}

	rep.Total, err=splitScope("total", "Full Semester", raMin, raMax, sem, overheadSec, cadence)
	if err!=nil { return nil, err }

	for _, w:=range windows {
		// half-open RA bin; sem is already magnitude-sorted, and Filter
		// is order-preserving, so the subset stays rank-ordered
		ws:=target.Filter(sem, func(t *target.Target) bool { return t.RA>=w.RAMin && t.RA<w.RAMax })
		sc, err:=splitScope(w.Name, w.FullName, w.RAMin, w.RAMax, ws, overheadSec, cadence)
		if err!=nil { return nil, err }
		rep.Windows=append(rep.Windows, sc)
	}
	return rep, nil
}

// Splits one scope. An empty window yields an empty scope, not an
// error.
func splitScope(name, fullName string, raMin, raMax float64, ts []target.Target, overheadSec, cadence float64) (sc Scope, err error) {
	sc=Scope{Name: name, FullName: fullName, RAMin: raMin, RAMax: raMax, Count: len(ts)}
	if len(ts)==0 {
		sc.Empty=true
		return sc, nil
	}

	items:=make([]Item, len(ts))
	total:=0.0
	for i:=range ts {
		items[i]=Item{Cost: visitCost(&ts[i], overheadSec, cadence), Rank: ts[i].VMag}
		total+=items[i].Cost
	}
	sc.TotalHours=total/3600

	r, err:=Split(items)
	if err!=nil { return Scope{}, fmt.Errorf("splitting %s: %w", fullName, err) }

	sc.CutIndex     =r.CutIndex
	sc.CutoffVMag   =r.CutoffRank
	sc.CutoffTESSMag=ts[r.CutIndex].TESSMag
	sc.Upper=groupStats(ts[:r.CutIndex+1], r.UpperCost)
	sc.Lower=groupStats(ts[r.CutIndex+1:], r.LowerCost)
	return sc, nil
}

func groupStats(ts []target.Target, cost float64) Group {
	g:=Group{Count: len(ts), Hours: cost/3600, VMagMin: math.NaN(), VMagMax: math.NaN()}
	if len(ts)>0 {
		// magnitude-sorted slice: first is brightest, last is faintest
		g.VMagMin, g.VMagMax = ts[0].VMag, ts[len(ts)-1].VMag
	}
	return g
}

const hrule="================================================================================"
const hrulethin="--------------------------------------------------------------------------------"

// Renders the combined report as the familiar text block.
func (rep *Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s semester targets, split by magnitude (%d targets)\n", rep.Semester, rep.Total.Count)
	fmt.Fprintf(&b, "+%.0f seconds overhead, x%.0f cadence\n", rep.OverheadSec, rep.Cadence)
	if rep.Skipped>0 {
		fmt.Fprintf(&b, "%d targets skipped for missing magnitude or exposure time\n", rep.Skipped)
	}
	fmt.Fprintln(&b, hrule)
	writeScope(&b, &rep.Total)
	for i:=range rep.Windows {
		fmt.Fprintln(&b, hrulethin)
		writeScope(&b, &rep.Windows[i])
	}
	fmt.Fprintln(&b, hrule)

	n, err:=io.WriteString(w, b.String())
	return int64(n), err
}

func writeScope(w io.Writer, sc *Scope) {
	fmt.Fprintf(w, "%s: %d targets (RA %.0f to %.0f)\n", sc.FullName, sc.Count, sc.RAMin, sc.RAMax)
	if sc.Empty {
		fmt.Fprintf(w, "  no targets in window\n")
		return
	}
	fmt.Fprintf(w, "  Total time: %.2f hours\n", sc.TotalHours)
	fmt.Fprintf(w, "  Cutoff V magnitude: %.2f\n", sc.CutoffVMag)
	fmt.Fprintf(w, "  Cutoff TESS magnitude: %.2f\n", sc.CutoffTESSMag)
	fmt.Fprintf(w, "  Brighter half: %d targets, V %.3f to %.3f, %.3f hours\n",
		sc.Upper.Count, sc.Upper.VMagMin, sc.Upper.VMagMax, sc.Upper.Hours)
	fmt.Fprintf(w, "  Fainter half:  %d targets, V %.3f to %.3f, %.3f hours\n",
		sc.Lower.Count, sc.Lower.VMagMin, sc.Lower.VMagMax, sc.Lower.Hours)
	fmt.Fprintf(w, "  Difference: %.3f hours\n", sc.DiffHours())
}

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

// Package split divides a magnitude-ordered list of costed targets into
// two contiguous groups of near-equal total observing time.
package split

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// An Item is one schedulable unit: Cost is the observing time in seconds,
// Rank the sort key (V magnitude, lower = brighter). The caller sorts
// ascending by Rank before splitting; ties keep input order.
type Item struct {
	Cost float64 `json:"cost"`
	Rank float64 `json:"rank"`
}

// A Result describes one balanced split. Items [0,CutIndex] form the
// upper (brighter) group, items [CutIndex+1,n) the lower group.
type Result struct {
	CutIndex   int     `json:"cutIndex"`
	CutoffRank float64 `json:"cutoffRank"`
	UpperCost  float64 `json:"upperCost"`
	LowerCost  float64 `json:"lowerCost"`
}

// ErrEmptyInput is returned by Split for a zero-length sequence.
var ErrEmptyInput = errors.New("split: empty input sequence")

// An InvalidCostError reports an item whose cost is non-positive or
// non-finite, which would break the monotonicity of the cumulative sum.
type InvalidCostError struct {
	Index int
	Cost  float64
}

func (e *InvalidCostError) Error() string {
	return fmt.Sprintf("split: invalid cost %g at index %d", e.Cost, e.Index)
}

// Splits a rank-ordered sequence at the index that makes the two group
// cost totals as equal as possible. Pure function, deterministic:
// cumulative-sums the costs, bisects for the half-total, then compares
// the two adjacent candidate cuts, ties favoring the earlier index.
func Split(items []Item) (r Result, err error) {
	if len(items)==0 { return Result{}, ErrEmptyInput }

	costs:=make([]float64, len(items))
	for i, it:=range items {
		if it.Cost<=0 || math.IsNaN(it.Cost) || math.IsInf(it.Cost, 0) {
			return Result{}, &InvalidCostError{Index: i, Cost: it.Cost}
		}
		costs[i]=it.Cost
	}

	cum:=make([]float64, len(costs))
	floats.CumSum(cum, costs)
	half:=cum[len(cum)-1]/2

	// smallest pos with cum[pos]>=half; costs>0 makes cum strictly increasing
	pos:=sort.SearchFloat64s(cum, half)

	cut:=pos
	switch {
	case pos==0:
		cut=0
	case pos>=len(items):
		cut=len(items)-1
	default:
		if half-cum[pos-1] <= cum[pos]-half { cut=pos-1 }
	}

	// group totals summed directly over the partition, not read back from
	// the cumulative array, so rounding in cum cannot leak into the report
	return Result{
		CutIndex  : cut,
		CutoffRank: items[cut].Rank,
		UpperCost : floats.Sum(costs[:cut+1]),
		LowerCost : floats.Sum(costs[cut+1:]),
	}, nil
}

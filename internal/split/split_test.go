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
	"errors"
	"math"
	"testing"

	"github.com/valyala/fastrand"
)

func itemsFromCosts(costs []float64) []Item {
	items:=make([]Item, len(costs))
	for i, c:=range costs {
		items[i]=Item{Cost: c, Rank: float64(i+1)}
	}
	return items
}

func TestSplitEmpty(t *testing.T) {
	_, err:=Split(nil)
	if !errors.Is(err, ErrEmptyInput) { t.Errorf("err=%v; want ErrEmptyInput", err) }
	_, err=Split([]Item{})
	if !errors.Is(err, ErrEmptyInput) { t.Errorf("err=%v; want ErrEmptyInput", err) }
}

func TestSplitInvalidCost(t *testing.T) {
	for _, bad:=range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		items:=itemsFromCosts([]float64{10, 20, 30})
		items[1].Cost=bad
		_, err:=Split(items)
		var ice *InvalidCostError
		if !errors.As(err, &ice) { t.Errorf("cost %g: err=%v; want InvalidCostError", bad, err); continue }
		if ice.Index!=1 { t.Errorf("cost %g: index=%d; want 1", bad, ice.Index) }
	}
}

func TestSplitSingle(t *testing.T) {
	r, err:=Split([]Item{{Cost: 42, Rank: 9.5}})
	if err!=nil { t.Fatalf("err=%v", err) }
	if r.CutIndex!=0 { t.Errorf("cutIndex=%d; want 0", r.CutIndex) }
	if r.CutoffRank!=9.5 { t.Errorf("cutoffRank=%g; want 9.5", r.CutoffRank) }
	if r.UpperCost!=42 { t.Errorf("upperCost=%g; want 42", r.UpperCost) }
	if r.LowerCost!=0 { t.Errorf("lowerCost=%g; want 0", r.LowerCost) }
}

// Five equal costs: half=25 falls exactly between cum[1]=20 and cum[2]=30,
// the tie goes to the earlier index.
func TestSplitEqualCostsTieBreak(t *testing.T) {
	r, err:=Split(itemsFromCosts([]float64{10, 10, 10, 10, 10}))
	if err!=nil { t.Fatalf("err=%v", err) }
	if r.CutIndex!=1 { t.Errorf("cutIndex=%d; want 1", r.CutIndex) }
	if r.CutoffRank!=2 { t.Errorf("cutoffRank=%g; want 2", r.CutoffRank) }
	if r.UpperCost!=20 { t.Errorf("upperCost=%g; want 20", r.UpperCost) }
	if r.LowerCost!=30 { t.Errorf("lowerCost=%g; want 30", r.LowerCost) }
}

// For n equal costs the cut sits at the midpoint by count.
func TestSplitEqualCostsMidpoint(t *testing.T) {
	for n:=1; n<=12; n++ {
		costs:=make([]float64, n)
		for i:=range costs { costs[i]=7 }
		r, err:=Split(itemsFromCosts(costs))
		if err!=nil { t.Fatalf("n=%d: err=%v", n, err) }
		lo, hi:=n/2-1, n/2
		if lo<0 { lo=0 }
		if r.CutIndex!=lo && r.CutIndex!=hi { t.Errorf("n=%d: cutIndex=%d; want %d or %d", n, r.CutIndex, lo, hi) }
	}
}

// A first item heavier than everything else: the left clamp applies.
func TestSplitHeavyHead(t *testing.T) {
	r, err:=Split(itemsFromCosts([]float64{100, 1, 1, 1, 1}))
	if err!=nil { t.Fatalf("err=%v", err) }
	if r.CutIndex!=0 { t.Errorf("cutIndex=%d; want 0", r.CutIndex) }
	if r.UpperCost!=100 { t.Errorf("upperCost=%g; want 100", r.UpperCost) }
	if r.LowerCost!=4 { t.Errorf("lowerCost=%g; want 4", r.LowerCost) }
}

func TestSplitHeavyTail(t *testing.T) {
	r, err:=Split(itemsFromCosts([]float64{1, 1, 1, 1, 100}))
	if err!=nil { t.Fatalf("err=%v", err) }
	if r.CutIndex!=3 { t.Errorf("cutIndex=%d; want 3", r.CutIndex) }
	if r.UpperCost!=4 { t.Errorf("upperCost=%g; want 4", r.UpperCost) }
	if r.LowerCost!=100 { t.Errorf("lowerCost=%g; want 100", r.LowerCost) }
}

// Exhaustive comparison against brute force on random sequences:
// conservation, index validity, near-balance and determinism.
func TestSplitRandomProperties(t *testing.T) {
	rng:=fastrand.RNG{}
	for seq:=0; seq<200; seq++ {
		n:=int(rng.Uint32n(40))+1
		costs:=make([]float64, n)
		total:=0.0
		for i:=range costs {
			costs[i]=float64(rng.Uint32n(10000)+1)/100 // (0, 100]
			total+=costs[i]
		}
		items:=itemsFromCosts(costs)

		r, err:=Split(items)
		if err!=nil { t.Fatalf("n=%d: err=%v", n, err) }

		if r.CutIndex<0 || r.CutIndex>=n { t.Errorf("n=%d: cutIndex=%d out of range", n, r.CutIndex) }

		if sum:=r.UpperCost+r.LowerCost; math.Abs(sum-total)>1e-9*total {
			t.Errorf("n=%d: upper+lower=%g; want %g", n, sum, total)
		}

		// brute force the minimal group imbalance over all cut positions
		best:=math.Inf(1)
		upper:=0.0
		for k:=0; k<n; k++ {
			upper+=costs[k]
			if d:=math.Abs(upper-(total-upper)); d<best { best=d }
		}
		if d:=math.Abs(r.UpperCost-r.LowerCost); d>best+1e-9 {
			t.Errorf("n=%d: imbalance %g; brute force found %g", n, d, best)
		}

		r2, err:=Split(items)
		if err!=nil || r2!=r { t.Errorf("n=%d: repeated split gave %+v, %v; want %+v", n, r2, err, r) }
	}
}

func TestSplitAssumesSortedInput(t *testing.T) {
	// ranks are reported, not re-sorted: the cutoff is whatever rank sits
	// at the cut index
	items:=[]Item{{Cost: 10, Rank: 3}, {Cost: 10, Rank: 1}, {Cost: 10, Rank: 2}}
	r, err:=Split(items)
	if err!=nil { t.Fatalf("err=%v", err) }
	if r.CutoffRank!=items[r.CutIndex].Rank { t.Errorf("cutoffRank=%g; want %g", r.CutoffRank, items[r.CutIndex].Rank) }
}

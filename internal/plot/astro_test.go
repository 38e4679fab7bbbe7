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

package plot

import (
	"math"
	"testing"
	"time"

	"github.com/arielkpf/kpfsched/internal/target"
)

func TestJulianDay(t *testing.T) {
	// J2000.0 epoch
	jd:=julianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(jd-2451545.0)>1e-9 { t.Errorf("jd=%f; want 2451545.0", jd) }
}

func TestGMSTAtJ2000(t *testing.T) {
	g:=gmstHours(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(g-18.697374558)>1e-6 { t.Errorf("gmst=%f; want 18.697375", g) }
}

func TestGMSTAdvancesSidereally(t *testing.T) {
	t0:=time.Date(2025, 11, 3, 6, 0, 0, 0, time.UTC)
	g0:=gmstHours(t0)
	g1:=gmstHours(t0.Add(time.Hour))
	dg:=math.Mod(g1-g0+24, 24)
	// a solar hour is ~1.0027 sidereal hours
	if math.Abs(dg-1.002738)>1e-4 { t.Errorf("dg=%f; want ~1.0027", dg) }
}

func TestAltitudeAtZenith(t *testing.T) {
	at:=time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	ra:=Keck.lstHours(at)*degPerHour
	alt:=Keck.AltitudeDeg(ra, Keck.LatDeg, at)
	if math.Abs(alt-90)>1e-6 { t.Errorf("alt=%f; want 90", alt) }

	// and the antipode sits at the nadir
	alt=Keck.AltitudeDeg(ra+180, -Keck.LatDeg, at)
	if math.Abs(alt+90)>1e-6 { t.Errorf("alt=%f; want -90", alt) }
}

func TestAirmass(t *testing.T) {
	if x:=Airmass(90); math.Abs(x-1)>1e-3 { t.Errorf("X(90)=%f; want ~1", x) }
	if x:=Airmass(30); math.Abs(x-1.993)>0.01 { t.Errorf("X(30)=%f; want ~1.993", x) }
	if x:=Airmass(0); !math.IsInf(x, 1) { t.Errorf("X(0)=%f; want +Inf", x) }
	if x:=Airmass(-10); !math.IsInf(x, 1) { t.Errorf("X(-10)=%f; want +Inf", x) }
	// monotone through the practical range
	prev:=Airmass(90)
	for h:=89.0; h>=5; h-- {
		x:=Airmass(h)
		if x<prev { t.Errorf("X(%g)=%f < X(%g)=%f; want monotone", h, x, h+1, prev) }
		prev=x
	}
}

func TestSubsample(t *testing.T) {
	ts:=make([]target.Target, 10)
	for i:=range ts { ts[i].TICID=int64(i) }

	if got:=subsample(ts, 20); len(got)!=10 { t.Errorf("len=%d; want all 10", len(got)) }
	if got:=subsample(ts, 0); len(got)!=10 { t.Errorf("n=0: len=%d; want all 10", len(got)) }

	got:=subsample(ts, 4)
	if len(got)!=4 { t.Fatalf("len=%d; want 4", len(got)) }
	for i:=1; i<len(got); i++ {
		if got[i].TICID<=got[i-1].TICID { t.Errorf("order not preserved: %v", got) }
	}
}

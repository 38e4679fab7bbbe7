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
	"fmt"
	"time"

	"github.com/arielkpf/kpfsched/internal/target"
	"github.com/valyala/fastrand"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Airmass above which a curve is clipped; beyond ~3 a target is not
// usefully observable anyway.
const airmassClip=3.0

// UT hours of a Maunakea night, evening to morning twilight, generous.
const nightStartUT=4.0
const nightEndUT=17.0

const airmassStepMin=5

// Renders airmass curves over one night at the site for up to
// maxPerWindow targets from each window. Windows holding more targets
// are subsampled at random so the plot stays readable. The night is the
// UT date of the window start (or of `date` when non-zero).
func AirmassCurves(ts []target.Target, windows []target.Window, site *Site, date time.Time, maxPerWindow int, fileName string) error {
	p:=plot.New()
	p.Title.Text=fmt.Sprintf("Airmass at %s", site.Name)
	p.X.Label.Text="UT hour"
	p.Y.Label.Text="Airmass"
	// airmass grows downward from 1, like the astroplan plots
	p.Y.Scale=plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Y.Min, p.Y.Max = 1, airmassClip
	p.Add(plotter.NewGrid())

	curves:=0
	for wi:=range windows {
		w:=&windows[wi]
		sel:=subsample(w.Filter(ts), maxPerWindow)

		night:=date
		if night.IsZero() {
			var err error
			night, err=time.Parse("2006-01-02T15:04", w.Start)
			if err!=nil { return fmt.Errorf("window %s: bad start %q: %w", w.Name, w.Start, err) }
		}
		night=time.Date(night.Year(), night.Month(), night.Day(), 0, 0, 0, 0, time.UTC)

		for i:=range sel {
			xys:=airmassTrack(&sel[i], site, night)
			if len(xys)<2 { continue }
			l, err:=plotter.NewLine(xys)
			if err!=nil { return err }
			l.LineStyle.Color=windowColor(wi)
			l.LineStyle.Width=vg.Points(0.75)
			p.Add(l)
			if curves==0 || i==0 {
				p.Legend.Add(fmt.Sprintf("%s: TIC%d", w.FullName, sel[i].TICID), l)
			}
			curves++
		}
	}
	if curves==0 { return fmt.Errorf("airmass plot: no observable targets in any window") }

	return p.Save(10*vg.Inch, 6*vg.Inch, fileName)
}

// Samples the airmass of one target through the night, dropping the
// segments beyond the clip threshold.
func airmassTrack(t *target.Target, site *Site, night time.Time) (xys plotter.XYs) {
	for m:=nightStartUT*60; m<=nightEndUT*60; m+=airmassStepMin {
		at:=night.Add(time.Duration(m)*time.Minute)
		x:=site.Airmass(t.RA, t.Dec, at)
		if x>airmassClip { continue }
		xys=append(xys, plotter.XY{X: float64(m)/60, Y: x})
	}
	return xys
}

// Keeps at most n targets, chosen at random when the input is larger.
// Selection order is preserved.
func subsample(ts []target.Target, n int) []target.Target {
	if n<=0 || len(ts)<=n { return ts }
	rng:=fastrand.RNG{}
	keep:=make(map[int]bool, n)
	for len(keep)<n {
		keep[int(rng.Uint32n(uint32(len(ts))))]=true
	}
	out:=make([]target.Target, 0, n)
	for i:=range ts {
		if keep[i] { out=append(out, ts[i]) }
	}
	return out
}

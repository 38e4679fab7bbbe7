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
	"image/color"
	"math"

	"github.com/arielkpf/kpfsched/internal/target"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Renders the sky map: all targets as RA/Dec points colored by V
// magnitude, window RA ranges shaded in the window color, targets
// outside every window in gray. The RA axis runs right to left per the
// astronomical convention.
func SkyMap(ts []target.Target, windows []target.Window, title, fileName string) error {
	p:=plot.New()
	p.Title.Text=title
	p.X.Label.Text="Right Ascension (degrees)"
	p.Y.Label.Text="Declination (degrees)"
	p.X.Scale=plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.X.Min, p.X.Max = 0, 360
	p.Add(plotter.NewGrid())

	decMin, decMax:=decRange(ts)

	// shaded RA bands behind the points
	for i, w:=range windows {
		poly, err:=plotter.NewPolygon(plotter.XYs{
			{X: w.RAMin, Y: decMin}, {X: w.RAMax, Y: decMin},
			{X: w.RAMax, Y: decMax}, {X: w.RAMin, Y: decMax},
		})
		if err!=nil { return err }
		poly.Color=translucent(windowColor(i), 32)
		poly.LineStyle.Width=0
		p.Add(poly)
	}

	ramp:=magRampFor(ts)

	scheduled:=func(t *target.Target) bool {
		for _, w:=range windows {
			if t.RA>=w.RAMin && t.RA<=w.RAMax { return true }
		}
		return false
	}

	var inside, outside plotter.XYs
	var insideMags []float64
	for i:=range ts {
		xy:=plotter.XY{X: ts[i].RA, Y: ts[i].Dec}
		if scheduled(&ts[i]) {
			inside=append(inside, xy)
			insideMags=append(insideMags, ts[i].VMag)
		} else {
			outside=append(outside, xy)
		}
	}

	if len(outside)>0 {
		s, err:=plotter.NewScatter(outside)
		if err!=nil { return err }
		s.GlyphStyle=draw.GlyphStyle{Color: color.Gray{Y: 0xb0}, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
		p.Add(s)
		p.Legend.Add("not scheduled", s)
	}

	if len(inside)>0 {
		s, err:=plotter.NewScatter(inside)
		if err!=nil { return err }
		s.GlyphStyleFunc=func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: ramp.At(insideMags[i]), Radius: vg.Points(2.5), Shape: draw.CircleGlyph{}}
		}
		p.Add(s)
	}

	for i, w:=range windows {
		lbl, err:=plotter.NewScatter(plotter.XYs{})
		if err!=nil { return err }
		lbl.GlyphStyle=draw.GlyphStyle{Color: windowColor(i), Radius: vg.Points(3), Shape: draw.BoxGlyph{}}
		p.Legend.Add(fmt.Sprintf("%s (RA %.1f-%.1fh)", w.FullName, w.RAMin/degPerHour, w.RAMax/degPerHour), lbl)
	}
	p.Legend.Top=true

	return p.Save(10*vg.Inch, 6*vg.Inch, fileName)
}

func decRange(ts []target.Target) (min, max float64) {
	min, max = -30, 90
	for i:=range ts {
		d:=ts[i].Dec
		if math.IsNaN(d) { continue }
		if d<min { min=d }
		if d>max { max=d }
	}
	return min, max
}

func magRampFor(ts []target.Target) *Ramp {
	lo, hi:=math.Inf(1), math.Inf(-1)
	for i:=range ts {
		v:=ts[i].VMag
		if math.IsNaN(v) { continue }
		if v<lo { lo=v }
		if v>hi { hi=v }
	}
	if lo>hi { lo, hi = 0, 1 }
	return NewMagRamp(lo, hi)
}

func translucent(c color.Color, alpha uint8) color.Color {
	r, g, b, _:=c.RGBA()
	return color.NRGBA{R: uint8(r>>8), G: uint8(g>>8), B: uint8(b>>8), A: alpha}
}

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
)

const histBins=30

// Renders one magnitude histogram. get selects the magnitude column,
// NaNs are skipped; an error is returned when no finite values remain.
func MagHistogram(ts []target.Target, get func(*target.Target) float64, label, fileName string) error {
	var vals plotter.Values
	for i:=range ts {
		if v:=get(&ts[i]); !math.IsNaN(v) { vals=append(vals, v) }
	}
	if len(vals)==0 { return fmt.Errorf("magnitude histogram %s: no finite values", label) }

	p:=plot.New()
	p.Title.Text=fmt.Sprintf("%s Distribution (%d targets)", label, len(vals))
	p.X.Label.Text=label
	p.Y.Label.Text="Number of Targets"

	h, err:=plotter.NewHist(vals, histBins)
	if err!=nil { return err }
	h.FillColor=color.NRGBA{R: 31, G: 119, B: 180, A: 200}
	p.Add(h, plotter.NewGrid())

	return p.Save(8*vg.Inch, 5*vg.Inch, fileName)
}

// Renders the V and TESS magnitude histograms to the two given files.
func MagHistograms(ts []target.Target, vFile, tessFile string) error {
	if err:=MagHistogram(ts, func(t *target.Target) float64 { return t.VMag }, "V magnitude", vFile); err!=nil {
		return err
	}
	return MagHistogram(ts, func(t *target.Target) float64 { return t.TESSMag }, "TESS magnitude", tessFile)
}

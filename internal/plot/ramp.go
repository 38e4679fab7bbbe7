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
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colors assigned to month windows, in window order.
var windowColors=[]color.Color{
	color.RGBA{R: 214, G: 39, B: 40, A: 255},  // red
	color.RGBA{R: 31, G: 119, B: 180, A: 255}, // blue
	color.RGBA{R: 44, G: 160, B: 44, A: 255},  // green
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
}

func windowColor(i int) color.Color { return windowColors[i%len(windowColors)] }

// A Ramp maps a scalar range onto a perceptual color gradient.
type Ramp struct {
	Min, Max float64
	from, to colorful.Color
}

// Magnitude ramp from bright gold to faint violet-blue.
func NewMagRamp(min, max float64) *Ramp {
	return &Ramp{
		Min : min, Max: max,
		from: colorful.Color{R: 0.99, G: 0.75, B: 0.07},
		to  : colorful.Color{R: 0.27, G: 0.0, B: 0.43},
	}
}

// Color for a value; values outside [Min,Max] clamp to the ends.
func (r *Ramp) At(v float64) color.Color {
	t:=0.5
	if r.Max>r.Min { t=(v-r.Min)/(r.Max-r.Min) }
	if t<0 { t=0 }
	if t>1 { t=1 }
	return r.from.BlendLuv(r.to, t).Clamped()
}

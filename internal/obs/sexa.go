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

package obs

import (
	"fmt"
	"math"
)

// Decomposes a non-negative value in hours or degrees into zero-padded
// sexagesimal with two fractional second digits. Rounding happens on the
// hundredths of seconds so 59.999 carries instead of printing 60.00.
func sexagesimal(v float64) (whole, min int, sec float64) {
	cs:=int64(math.Round(v*360000)) // hundredths of (arc)seconds
	whole=int(cs/360000)
	rem:=cs%360000
	min=int(rem/6000)
	sec=float64(rem%6000)/100
	return whole, min, sec
}

// Formats a right ascension in degrees as HH:MM:SS.SS.
func FormatRA(raDeg float64) string {
	raDeg=math.Mod(raDeg, 360)
	if raDeg<0 { raDeg+=360 }
	h, m, s:=sexagesimal(raDeg/15)
	h%=24 // 359.9999... rounds up to 24h
	return fmt.Sprintf("%02d:%02d:%05.2f", h, m, s)
}

// Formats a declination in degrees as [-]DD:MM:SS.SS, the sign only for
// southern targets as in the sheet's coordinate strings.
func FormatDec(decDeg float64) string {
	sign:=""
	if math.Signbit(decDeg) { sign="-" }
	d, m, s:=sexagesimal(math.Abs(decDeg))
	return fmt.Sprintf("%s%02d:%02d:%05.2f", sign, d, m, s)
}

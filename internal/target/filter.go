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

package target

// Keeps the targets flagged for KPF observation.
func FilterKPF(ts []Target) (out []Target) {
	for _, t:=range ts {
		if t.ObserveKPF { out=append(out, t) }
	}
	return out
}

// Keeps the targets flagged for NEID observation.
func FilterNEID(ts []Target) (out []Target) {
	for _, t:=range ts {
		if t.ObserveNEID { out=append(out, t) }
	}
	return out
}

// Keeps targets with raMin <= RA <= raMax, bounds inclusive as in the
// sheet-filtering scripts. Degrees; no wrap handling, callers split a
// range crossing 0h into two windows.
func FilterRARange(ts []Target, raMin, raMax float64) (out []Target) {
	for _, t:=range ts {
		if t.RA>=raMin && t.RA<=raMax { out=append(out, t) }
	}
	return out
}

// Keeps targets satisfying an arbitrary predicate.
func Filter(ts []Target, keep func(*Target) bool) (out []Target) {
	for i:=range ts {
		if keep(&ts[i]) { out=append(out, ts[i]) }
	}
	return out
}

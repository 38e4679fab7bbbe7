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
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arielkpf/kpfsched/internal/target"
)

// A Block is one observing-block descriptor with its free-form sections
// (target, observation, schedule, metadata).
type Block map[string]interface{}

func (b Block) section(name string) map[string]interface{} {
	if s, ok:=b[name].(map[string]interface{}); ok { return s }
	s:=map[string]interface{}{}
	b[name]=s
	return s
}

// Slowdown factor applied to the nominal exposure time when requesting
// an OB, to cover up to 4x seeing losses.
const expTimeSlowdown=4

// Instantiates the template for one target within an observing window.
func (tpl *Template) ForTarget(t *target.Target, w *target.Window) (Block, error) {
	b, err:=tpl.NewBlock()
	if err!=nil { return nil, err }

	name:=fmt.Sprintf("TIC%d", t.TICID)

	tgt:=b.section("target")
	tgt["TargetName"]=name
	tgt["tic_id"]=strconv.FormatInt(t.TICID, 10)
	tgt["RA"]=FormatRA(t.RA)
	tgt["DEC"]=FormatDec(t.Dec)
	tgt["ra_deg"]=t.RA
	tgt["dec_deg"]=t.Dec

	o:=b.section("observation")
	o["Object"]=name
	if !math.IsNaN(t.ExpTimeSec) {
		o["ExpTime"]=strconv.Itoa(int(t.ExpTimeSec*expTimeSlowdown))
	}
	if !math.IsNaN(t.ExpMeter) {
		o["ExpMeterThreshold"]=t.ExpMeter
	}

	s:=b.section("schedule")
	s["custom_time_constraints"]=[]map[string]string{
		{"start_datetime": w.Start, "end_datetime": w.End},
	}
	// these are filled in by the queue webpage, stale template values
	// would conflict with it
	delete(s, "total_observations_requested")
	delete(s, "total_time_for_target")
	delete(s, "total_time_for_target_hours")

	b.section("metadata")
	return b, nil
}

// Generates the blocks for one observing window: RA-filters the catalog
// (bounds inclusive), sorts by RA, and instantiates the template per
// target. The catalog is expected to be pre-filtered to the instrument.
func Generate(ts []target.Target, tpl *Template, w *target.Window) (blocks []Block, err error) {
	sel:=w.Filter(ts)
	target.SortByRA(sel)
	for i:=range sel {
		b, err:=tpl.ForTarget(&sel[i], w)
		if err!=nil { return nil, fmt.Errorf("OB for TIC%d: %w", sel[i].TICID, err) }
		blocks=append(blocks, b)
	}
	return blocks, nil
}

// Writes the full block list plus a short test file with the first
// testN blocks, named obs_<window>_<year>.json after the window start.
func WriteFiles(blocks []Block, dir string, w *target.Window, testN int) (full, test string, err error) {
	year:="0000"
	if len(w.Start)>=4 { year=w.Start[:4] }

	full=filepath.Join(dir, fmt.Sprintf("obs_%s_%s.json", w.Name, year))
	if err:=writeJSON(full, blocks); err!=nil { return "", "", err }

	if testN>len(blocks) { testN=len(blocks) }
	test=filepath.Join(dir, fmt.Sprintf("obs_%s_%s_test.json", w.Name, year))
	if err:=writeJSON(test, blocks[:testN]); err!=nil { return "", "", err }
	return full, test, nil
}

func writeJSON(fileName string, blocks []Block) error {
	buf, err:=json.MarshalIndent(blocks, "", "  ")
	if err!=nil { return err }
	return os.WriteFile(fileName, append(buf, '\n'), 0666)
}

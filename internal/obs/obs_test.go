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
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/arielkpf/kpfsched/internal/target"
)

const templateJSON=`[
  {                                  # one observing block
    "target": {
      "TargetName": "",              # filled per target
      "RA": "00:00:00.00",
      "DEC": "00:00:00.00"
    },
    "observation": {
      "Object": "",
      "ExpTime": "0",
      "nExp": "1"
    },
    "schedule": {
      "total_observations_requested": 4,
      "total_time_for_target": 0,
      "total_time_for_target_hours": 0
    }
  }
]`

func TestParseTemplateStripsComments(t *testing.T) {
	tpl, err:=ParseTemplate([]byte(templateJSON))
	if err!=nil { t.Fatalf("err=%v", err) }
	b, err:=tpl.NewBlock()
	if err!=nil { t.Fatalf("err=%v", err) }
	if b.section("observation")["nExp"]!="1" { t.Errorf("nExp=%v; want \"1\"", b.section("observation")["nExp"]) }
}

func TestParseTemplateEmpty(t *testing.T) {
	if _, err:=ParseTemplate([]byte("[]")); err==nil { t.Errorf("err=nil; want error for empty array") }
	if _, err:=ParseTemplate([]byte("not json")); err==nil { t.Errorf("err=nil; want decode error") }
}

func TestForTarget(t *testing.T) {
	tpl, err:=ParseTemplate([]byte(templateJSON))
	if err!=nil { t.Fatalf("err=%v", err) }

	tgt:=target.Target{TICID: 12345, RA: 315.5, Dec: -12.25, ExpTimeSec: 120.7, ExpMeter: 1e5}
	w:=target.Windows2025B()[0]
	b, err:=tpl.ForTarget(&tgt, &w)
	if err!=nil { t.Fatalf("err=%v", err) }

	ts:=b.section("target")
	if ts["TargetName"]!="TIC12345" { t.Errorf("TargetName=%v; want TIC12345", ts["TargetName"]) }
	if ts["tic_id"]!="12345" { t.Errorf("tic_id=%v; want 12345", ts["tic_id"]) }
	if ts["RA"]!="21:02:00.00" { t.Errorf("RA=%v; want 21:02:00.00", ts["RA"]) }
	if ts["DEC"]!="-12:15:00.00" { t.Errorf("DEC=%v; want -12:15:00.00", ts["DEC"]) }
	if ts["ra_deg"]!=315.5 { t.Errorf("ra_deg=%v; want 315.5", ts["ra_deg"]) }

	o:=b.section("observation")
	if o["Object"]!="TIC12345" { t.Errorf("Object=%v; want TIC12345", o["Object"]) }
	if o["ExpTime"]!="482" { t.Errorf("ExpTime=%v; want 482", o["ExpTime"]) } // int(120.7*4)

	s:=b.section("schedule")
	if _, ok:=s["total_observations_requested"]; ok { t.Errorf("total_observations_requested not deleted") }
	cons, ok:=s["custom_time_constraints"].([]map[string]string)
	if !ok || len(cons)!=1 { t.Fatalf("custom_time_constraints=%v", s["custom_time_constraints"]) }
	if cons[0]["start_datetime"]!=w.Start || cons[0]["end_datetime"]!=w.End {
		t.Errorf("constraints=%v; want %s to %s", cons[0], w.Start, w.End)
	}
	if _, ok:=b["metadata"]; !ok { t.Errorf("metadata section missing") }

	// a second instantiation starts from a clean template copy
	b2, err:=tpl.NewBlock()
	if err!=nil { t.Fatalf("err=%v", err) }
	if b2.section("target")["TargetName"]!="" { t.Errorf("template mutated by ForTarget") }
}

func TestForTargetMissingExposure(t *testing.T) {
	tpl, err:=ParseTemplate([]byte(templateJSON))
	if err!=nil { t.Fatalf("err=%v", err) }
	tgt:=target.Target{TICID: 7, RA: 10, Dec: 10, ExpTimeSec: math.NaN(), ExpMeter: math.NaN()}
	w:=target.Windows2025B()[1]
	b, err:=tpl.ForTarget(&tgt, &w)
	if err!=nil { t.Fatalf("err=%v", err) }
	if got:=b.section("observation")["ExpTime"]; got!="0" { t.Errorf("ExpTime=%v; want template value 0", got) }
	if _, ok:=b.section("observation")["ExpMeterThreshold"]; ok { t.Errorf("ExpMeterThreshold set from NaN") }
}

func TestGenerateSortsAndFilters(t *testing.T) {
	tpl, err:=ParseTemplate([]byte(templateJSON))
	if err!=nil { t.Fatalf("err=%v", err) }
	ts:=[]target.Target{
		{TICID: 1, RA: 350, Dec: 0},
		{TICID: 2, RA: 305, Dec: 0},
		{TICID: 3, RA: 100, Dec: 0}, // outside November window
	}
	w:=target.Windows2025B()[0] // RA 300..360
	blocks, err:=Generate(ts, tpl, &w)
	if err!=nil { t.Fatalf("err=%v", err) }
	if len(blocks)!=2 { t.Fatalf("len(blocks)=%d; want 2", len(blocks)) }
	if blocks[0].section("target")["TargetName"]!="TIC2" { t.Errorf("blocks[0]=%v; want TIC2 first (RA sort)", blocks[0].section("target")["TargetName"]) }
	if blocks[1].section("target")["TargetName"]!="TIC1" { t.Errorf("blocks[1]=%v; want TIC1", blocks[1].section("target")["TargetName"]) }
}

func TestWriteFiles(t *testing.T) {
	tpl, err:=ParseTemplate([]byte(templateJSON))
	if err!=nil { t.Fatalf("err=%v", err) }
	ts:=[]target.Target{{TICID: 1, RA: 310, Dec: 0}, {TICID: 2, RA: 320, Dec: 0}, {TICID: 3, RA: 330, Dec: 0}}
	w:=target.Windows2025B()[0]
	blocks, err:=Generate(ts, tpl, &w)
	if err!=nil { t.Fatalf("err=%v", err) }

	dir:=t.TempDir()
	full, test, err:=WriteFiles(blocks, dir, &w, 2)
	if err!=nil { t.Fatalf("err=%v", err) }
	if filepath.Base(full)!="obs_nov_2025.json" { t.Errorf("full=%s; want obs_nov_2025.json", full) }
	if filepath.Base(test)!="obs_nov_2025_test.json" { t.Errorf("test=%s; want obs_nov_2025_test.json", test) }

	buf, err:=os.ReadFile(test)
	if err!=nil { t.Fatalf("err=%v", err) }
	var got []Block
	if err:=json.Unmarshal(buf, &got); err!=nil { t.Fatalf("err=%v", err) }
	if len(got)!=2 { t.Errorf("test file has %d blocks; want 2", len(got)) }
}

func TestFormatRA(t *testing.T) {
	cases:=[]struct{ deg float64; want string }{
		{0, "00:00:00.00"},
		{15, "01:00:00.00"},
		{15.375, "01:01:30.00"},
		{180, "12:00:00.00"},
		{359.9999999, "00:00:00.00"}, // rounds up past 24h and wraps
		{-15, "23:00:00.00"},
	}
	for _, c:=range cases {
		if got:=FormatRA(c.deg); got!=c.want { t.Errorf("FormatRA(%g)=%s; want %s", c.deg, got, c.want) }
	}
}

func TestFormatDec(t *testing.T) {
	cases:=[]struct{ deg float64; want string }{
		{0, "00:00:00.00"},
		{-5.1025, "-05:06:09.00"},
		{19.826, "19:49:33.60"},
		{-0.5, "-00:30:00.00"},
		{29.9999999, "30:00:00.00"},
	}
	for _, c:=range cases {
		if got:=FormatDec(c.deg); got!=c.want { t.Errorf("FormatDec(%g)=%s; want %s", c.deg, got, c.want) }
	}
}

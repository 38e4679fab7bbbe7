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

package planet

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arielkpf/kpfsched/internal/target"
)

func TestRender(t *testing.T) {
	tgt:=target.Target{TICID: 12345, PeriodDays: 3.25, EpochBJD: 2459333.5}
	buf, err:=Render(DefaultTemplate(), &tgt)
	if err!=nil { t.Fatalf("err=%v", err) }
	out:=string(buf)

	for _, want:=range []string{
		"starname = 'TIC12345'",
		"['per1'] = radvel.Parameter(value=3.25)",
		"['tc1'] = radvel.Parameter(value=2459333.5)",
		"['k1'] = radvel.Parameter(value=50)",
	} {
		if !strings.Contains(out, want) { t.Errorf("rendered file lacks %q", want) }
	}
}

func TestWriteFiles(t *testing.T) {
	ts:=[]target.Target{
		{TICID: 1, PeriodDays: 3, EpochBJD: 2459000},
		{TICID: 2, PeriodDays: math.NaN(), EpochBJD: 2459001},
		{TICID: 3, PeriodDays: 5, EpochBJD: math.NaN()},
		{TICID: 4, PeriodDays: 7, EpochBJD: 2459002},
	}
	dir:=t.TempDir()
	written, skipped, err:=WriteFiles(ts, DefaultTemplate(), dir)
	if err!=nil { t.Fatalf("err=%v", err) }
	if written!=2 || skipped!=2 { t.Errorf("written=%d skipped=%d; want 2, 2", written, skipped) }

	for _, name:=range []string{"tic1.py", "tic4.py"} {
		if _, err:=os.Stat(filepath.Join(dir, name)); err!=nil { t.Errorf("missing %s: %v", name, err) }
	}
	if _, err:=os.Stat(filepath.Join(dir, "tic2.py")); err==nil { t.Errorf("tic2.py written despite NaN period") }
}

func TestLoadTemplate(t *testing.T) {
	fileName:=filepath.Join(t.TempDir(), "planet-template.py.tmpl")
	if err:=os.WriteFile(fileName, []byte("star TIC{{.TICID}} p={{.Per1}}\n"), 0666); err!=nil { t.Fatal(err) }

	tpl, err:=LoadTemplate(fileName)
	if err!=nil { t.Fatalf("err=%v", err) }
	buf, err:=Render(tpl, &target.Target{TICID: 9, PeriodDays: 2.5, EpochBJD: 1})
	if err!=nil { t.Fatalf("err=%v", err) }
	if string(buf)!="star TIC9 p=2.5\n" { t.Errorf("rendered=%q", string(buf)) }

	if _, err:=LoadTemplate(filepath.Join(t.TempDir(), "absent.tmpl")); err==nil {
		t.Errorf("err=nil; want error for missing template file")
	}
}

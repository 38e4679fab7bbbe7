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

// Package planet renders per-target RadVel setup files from a text
// template, one tic<id>.py per catalog row.
package planet

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/template"

	"github.com/arielkpf/kpfsched/internal/target"
)

// Initial guess for the RV semi-amplitude in m/s, used for every target
// since the sheet carries no per-target estimate.
const DefaultKAmp=50

// Template parameters for one target. The names follow RadVel's
// single-planet basis: per1 is the orbital period in days, tc1 the time
// of inferior conjunction (BJD), k1 the semi-amplitude guess.
type Params struct {
	TICID int64
	Per1  float64
	Tc1   float64
	K1    float64
}

// The built-in RadVel setup-file template, used when no template file
// is present next to the output directory.
const defaultTemplate=`# RadVel setup file for TIC{{.TICID}}
import numpy as np
import pandas as pd
import radvel

starname = 'TIC{{.TICID}}'
nplanets = 1
instnames = ['kpf']
ntels = len(instnames)
fitting_basis = 'per tc secosw sesinw k'
bjd0 = 0.

anybasis_params = radvel.Parameters(nplanets, basis='per tc e w k')
anybasis_params['per1'] = radvel.Parameter(value={{printf "%g" .Per1}})
anybasis_params['tc1'] = radvel.Parameter(value={{printf "%g" .Tc1}})
anybasis_params['e1'] = radvel.Parameter(value=0.0)
anybasis_params['w1'] = radvel.Parameter(value=np.pi/2.)
anybasis_params['k1'] = radvel.Parameter(value={{printf "%g" .K1}})

anybasis_params['dvdt'] = radvel.Parameter(value=0.0)
anybasis_params['curv'] = radvel.Parameter(value=0.0)
anybasis_params['gamma_kpf'] = radvel.Parameter(value=0.0)
anybasis_params['jit_kpf'] = radvel.Parameter(value=2.0)

params = anybasis_params.basis.to_any_basis(anybasis_params, fitting_basis)

params['per1'].vary = False
params['tc1'].vary = False
params['secosw1'].vary = False
params['sesinw1'].vary = False
params['dvdt'].vary = False
params['curv'].vary = False

priors = [
    radvel.prior.PositiveKPrior(nplanets),
    radvel.prior.HardBounds('jit_kpf', 0.0, 10.0),
]
`

// Loads a RadVel setup template from a file.
func LoadTemplate(fileName string) (*template.Template, error) {
	buf, err:=os.ReadFile(fileName)
	if err!=nil { return nil, fmt.Errorf("planet template: %w", err) }
	tpl, err:=template.New(filepath.Base(fileName)).Parse(string(buf))
	if err!=nil { return nil, fmt.Errorf("planet template: %w", err) }
	return tpl, nil
}

// Returns the built-in RadVel setup template.
func DefaultTemplate() *template.Template {
	return template.Must(template.New("planet").Parse(defaultTemplate))
}

// Renders the setup file for one target.
func Render(tpl *template.Template, t *target.Target) ([]byte, error) {
	var buf bytes.Buffer
	p:=Params{TICID: t.TICID, Per1: t.PeriodDays, Tc1: t.EpochBJD, K1: DefaultKAmp}
	if err:=tpl.Execute(&buf, p); err!=nil {
		return nil, fmt.Errorf("rendering TIC%d: %w", t.TICID, err)
	}
	return buf.Bytes(), nil
}

// Renders one tic<id>.py per target into dir. Targets without a finite
// period and epoch cannot seed a RadVel fit and are skipped. Returns the
// number of files written and the number skipped.
func WriteFiles(ts []target.Target, tpl *template.Template, dir string) (written, skipped int, err error) {
	for i:=range ts {
		t:=&ts[i]
		if math.IsNaN(t.PeriodDays) || math.IsNaN(t.EpochBJD) {
			skipped++
			continue
		}
		buf, err:=Render(tpl, t)
		if err!=nil { return written, skipped, err }
		fileName:=filepath.Join(dir, fmt.Sprintf("tic%d.py", t.TICID))
		if err:=os.WriteFile(fileName, buf, 0666); err!=nil { return written, skipped, err }
		written++
	}
	return written, skipped, nil
}

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

// Package pipe carries the shared execution context of the batch
// pipeline: logging, resolved data directories and campaign settings.
package pipe

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pbnjay/memory"
)

// An execution context for pipeline stages
type Context struct {
	Log         io.Writer
	TargetsDir  string  // downloaded and filtered catalogs
	ObsDir      string  // observing-block JSON and the template
	PlotsDir    string  // rendered PNGs
	PlanetsDir  string  // rendered RadVel setup files
	OverheadSec float64 // per-visit acquisition overhead
	Cadence     float64 // visits per semester
	MemoryMB    int     // memory.TotalMemory()/1024/1024
	MaxThreads  int
}

// Default campaign settings: 3 minutes of acquisition overhead per
// visit, four visits per semester.
const DefaultOverheadSec=180
const DefaultCadence=4

// Creates a context rooted at baseDir, creating the data directories.
func NewContext(log io.Writer, baseDir string) (c *Context, err error) {
	c=&Context{
		Log        : log,
		TargetsDir : filepath.Join(baseDir, "targets"),
		ObsDir     : filepath.Join(baseDir, "obs"),
		PlotsDir   : filepath.Join(baseDir, "plots"),
		PlanetsDir : filepath.Join(baseDir, "planets"),
		OverheadSec: DefaultOverheadSec,
		Cadence    : DefaultCadence,
		MemoryMB   : int(memory.TotalMemory()/1024/1024),
		MaxThreads : runtime.GOMAXPROCS(0),
	}
	for _, dir:=range []string{c.TargetsDir, c.ObsDir, c.PlotsDir, c.PlanetsDir} {
		if err:=os.MkdirAll(dir, 0777); err!=nil { return nil, err }
	}
	return c, nil
}

// Path of the observing-block template within the obs directory.
func (c *Context) TemplateFile() string { return filepath.Join(c.ObsDir, "ob-template.json") }

// Path of the optional RadVel setup template within the planets
// directory; a built-in template is used when the file is absent.
func (c *Context) PlanetTemplateFile() string { return filepath.Join(c.PlanetsDir, "planet-template.py.tmpl") }

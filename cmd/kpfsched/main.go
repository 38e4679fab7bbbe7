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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/arielkpf/kpfsched/internal/fetch"
	"github.com/arielkpf/kpfsched/internal/obs"
	"github.com/arielkpf/kpfsched/internal/pipe"
	"github.com/arielkpf/kpfsched/internal/planet"
	"github.com/arielkpf/kpfsched/internal/plot"
	"github.com/arielkpf/kpfsched/internal/rest"
	"github.com/arielkpf/kpfsched/internal/split"
	"github.com/arielkpf/kpfsched/internal/target"
)

const version="0.3.1"

var cpuprofile=flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile=flag.String("memprofile", "", "write memory profile to `file`")

var dir     =flag.String("dir", ".", "base data directory holding targets/, obs/ and plots/")
var logF    =flag.String("log", "", "also write log output to `file`")
var url     =flag.String("url", fetch.DefaultTargetsURL, "CSV export `url` of the candidate-target sheet")

var semester=flag.String("semester", "", "observing semester, 2025B or 2026B. Defaults per command")
var month   =flag.String("month", "", "observing window for OB generation, e.g. nov, dec, jan")
var testN   =flag.Int("testTargets", 2, "number of targets in the OB test file")

var overhead=flag.Float64("overhead", pipe.DefaultOverheadSec, "per-visit acquisition overhead in seconds")
var cadence =flag.Float64("cadence", pipe.DefaultCadence, "observations per target and semester")

var maxCurves=flag.Int("maxCurves", 8, "airmass curves per observing window")

var schedURL  =flag.String("scheduleURL", fetch.DefaultScheduleURL, "night allocation query `url`")
var instrument=flag.String("instrument", "KPF-CC", "instrument name for the night allocation query")
var nightsFrom=flag.String("nightsFrom", "2025-08-01", "night allocation start date (YYYY-MM-DD)")
var nightsTo  =flag.String("nightsTo", "2026-01-31", "night allocation end date (YYYY-MM-DD)")

var addr  =flag.String("addr", ":8080", "listen address for serve mode")
var chroot=flag.String("chroot", "", "serve mode: chroot into `dir` (requires root)")
var setuid=flag.Int("setuid", -1, "serve mode: drop to this user id after chroot")

func main() {
	logWriter:=io.Writer(os.Stdout)
	start:=time.Now()
	flag.Usage=func() {
		fmt.Fprintf(logWriter, `kpfsched - target scheduling helper for the ARIEL-KPF campaign

Usage: %s [-flag value] (fetch|targets|obs|magsort|planets|plot|nights|serve|version) [file.csv]

Commands:
  fetch    Download the candidate-target sheet and save a timestamped CSV
  targets  Filter the newest (or given) sheet CSV to KPF targets and summarize
  obs      Generate observing-block JSON for one month window (-month)
  magsort  Split the semester targets into two equal-time groups by magnitude
  planets  Render one RadVel setup file per KPF target
  plot     Render sky map, magnitude histograms and airmass curves as PNG
  nights   Download and summarize the night allocation schedule
  serve    Serve the pipeline via REST
  version  Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *logF!="" {
		if err:=pipe.LogAlsoToFile(*logF); err!=nil { pipe.LogFatalf("Unable to open logfile '%s'\n", *logF) }
		logWriter=pipe.Writer()
	}

	// Enable CPU profiling if flagged
	if *cpuprofile!="" {
		f, err:=os.Create(*cpuprofile)
		if err!=nil { pipe.LogFatalf("Could not create CPU profile: %s\n", err.Error()) }
		defer f.Close()
		if err:=pprof.StartCPUProfile(f); err!=nil { pipe.LogFatalf("Could not start CPU profile: %s\n", err.Error()) }
		defer pprof.StopCPUProfile()
	}

	args:=flag.Args()
	if len(args)<1 {
		flag.Usage()
		return
	}

	// set defaults per command
	switch args[0] {
	case "obs", "plot", "nights":
		if *semester=="" { *semester="2025B" }
	case "magsort":
		if *semester=="" { *semester="2026B" }
	}

	c, err:=pipe.NewContext(logWriter, *dir)
	if err!=nil { pipe.LogFatalf("Error preparing data directories: %s\n", err.Error()) }
	c.OverheadSec=*overhead
	c.Cadence=*cadence
	fmt.Fprintf(logWriter, "kpfsched %s on %d threads with %d MB memory, data in %s\n", version, c.MaxThreads, c.MemoryMB, *dir)

	switch args[0] {
	case "fetch":
		err=cmdFetch(c)

	case "targets":
		err=cmdTargets(c, args[1:])

	case "obs":
		err=cmdObs(c, args[1:])

	case "magsort":
		err=cmdMagsort(c, args[1:])

	case "planets":
		err=cmdPlanets(c, args[1:])

	case "plot":
		err=cmdPlot(c, args[1:])

	case "nights":
		err=cmdNights(c)

	case "serve":
		if err:=rest.MakeSandbox(logWriter, *chroot, *setuid); err!=nil {
			pipe.LogFatalf("Error entering sandbox: %s\n", err.Error())
		}
		err=rest.Serve(*addr)

	case "version":
		fmt.Fprintf(logWriter, "Version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	elapsed:=time.Since(start)
	fmt.Fprintf(logWriter, "\nDone after %v\n", elapsed)

	// Store memory profile if flagged
	if *memprofile!="" {
		f, err:=os.Create(*memprofile)
		if err!=nil { pipe.LogFatalf("Could not create memory profile: %s\n", err.Error()) }
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err:=pprof.Lookup("allocs").WriteTo(f, 0); err!=nil {
			pipe.LogFatalf("Could not write allocation profile: %s\n", err.Error())
		}
	}

	pipe.LogSync()
	if err!=nil {
		fmt.Fprintf(logWriter, "Error: %s\n", err.Error())
		os.Exit(-1)
	}
}

// Downloads the full candidate sheet and summarizes it.
func cmdFetch(c *pipe.Context) error {
	fmt.Fprintf(c.Log, "Downloading candidate targets from sheet...\n")
	fileName, ts, err:=fetch.Targets(context.Background(), *url, c.TargetsDir, "ariel_targets")
	if err!=nil { return err }
	fmt.Fprintf(c.Log, "Saved %d targets to %s\n", len(ts), fileName)
	fmt.Fprintf(c.Log, "KPF targets: %d, NEID targets: %d\n", len(target.FilterKPF(ts)), len(target.FilterNEID(ts)))
	printSummary(c.Log, target.Summarize(ts))
	return nil
}

// Filters the sheet to KPF targets, writes the subset and summarizes it.
func cmdTargets(c *pipe.Context, args []string) error {
	ts, _, err:=loadCatalog(c, args, "ariel_targets")
	if err!=nil { return err }

	kpf:=target.FilterKPF(ts)
	fmt.Fprintf(c.Log, "Full catalog: %d targets, KPF subset: %d targets\n", len(ts), len(kpf))

	fileName:=filepath.Join(c.TargetsDir, fmt.Sprintf("ariel_kpf_targets_%s.csv", time.Now().Format("20060102_150405")))
	if err:=target.WriteCSVFile(fileName, kpf); err!=nil { return err }
	fmt.Fprintf(c.Log, "KPF targets saved to %s\n", fileName)
	printSummary(c.Log, target.Summarize(kpf))
	return nil
}

// Generates observing-block JSON for one month window.
func cmdObs(c *pipe.Context, args []string) error {
	if *month=="" { return fmt.Errorf("obs requires -month (e.g. -month nov)") }

	windows, err:=target.WindowsForSemester(*semester)
	if err!=nil { return err }
	w, err:=target.FindWindow(windows, *month)
	if err!=nil { return err }

	tpl, err:=obs.LoadTemplate(c.TemplateFile())
	if err!=nil { return err }

	ts, _, err:=loadCatalog(c, args, "ariel_kpf_targets")
	if err!=nil { return err }
	kpf:=target.FilterKPF(ts)

	fmt.Fprintf(c.Log, "Generating %s %s observing blocks (RA %.0f to %.0f)...\n", w.FullName, *semester, w.RAMin, w.RAMax)
	blocks, err:=obs.Generate(kpf, tpl, w)
	if err!=nil { return err }
	if len(blocks)==0 { return fmt.Errorf("no targets in the %s window", w.FullName) }

	full, test, err:=obs.WriteFiles(blocks, c.ObsDir, w, *testN)
	if err!=nil { return err }
	fmt.Fprintf(c.Log, "Saved %d OBs to %s\n", len(blocks), full)
	fmt.Fprintf(c.Log, "Saved test OBs to %s\n", test)
	return nil
}

// Splits the semester targets into two equal-time groups by magnitude.
func cmdMagsort(c *pipe.Context, args []string) error {
	windows, err:=target.WindowsForSemester(*semester)
	if err!=nil { return err }

	ts, fileName, err:=loadCatalog(c, args, "ariel_kpf_targets")
	if err!=nil { return err }
	fmt.Fprintf(c.Log, "Splitting %d targets from %s...\n", len(ts), fileName)

	rep, err:=split.Semester(target.FilterKPF(ts), *semester, windows, c.OverheadSec, c.Cadence)
	if err!=nil { return err }
	_, err=rep.WriteTo(c.Log)
	return err
}

// Renders one RadVel setup file per KPF target.
func cmdPlanets(c *pipe.Context, args []string) error {
	tpl:=planet.DefaultTemplate()
	if _, err:=os.Stat(c.PlanetTemplateFile()); err==nil {
		var err error
		tpl, err=planet.LoadTemplate(c.PlanetTemplateFile())
		if err!=nil { return err }
		fmt.Fprintf(c.Log, "Using template %s\n", c.PlanetTemplateFile())
	}

	ts, fileName, err:=loadCatalog(c, args, "ariel_kpf_targets")
	if err!=nil { return err }
	kpf:=target.FilterKPF(ts)
	fmt.Fprintf(c.Log, "Rendering RadVel setup files for %d targets from %s...\n", len(kpf), fileName)

	written, skipped, err:=planet.WriteFiles(kpf, tpl, c.PlanetsDir)
	if err!=nil { return err }
	fmt.Fprintf(c.Log, "Saved %d setup files to %s", written, c.PlanetsDir)
	if skipped>0 { fmt.Fprintf(c.Log, " (%d targets without period and epoch skipped)", skipped) }
	fmt.Fprintf(c.Log, "\n")
	return nil
}

// Renders the diagnostic plots.
func cmdPlot(c *pipe.Context, args []string) error {
	windows, err:=target.WindowsForSemester(*semester)
	if err!=nil { return err }

	ts, _, err:=loadCatalog(c, args, "ariel_kpf_targets")
	if err!=nil { return err }
	kpf:=target.FilterKPF(ts)
	if len(kpf)==0 { return fmt.Errorf("no KPF targets to plot") }

	sky:=filepath.Join(c.PlotsDir, fmt.Sprintf("%s_sky.png", *semester))
	title:=fmt.Sprintf("ARIEL-KPF Target Distribution, %s (%d targets)", *semester, len(kpf))
	if err:=plot.SkyMap(kpf, windows, title, sky); err!=nil { return err }
	fmt.Fprintf(c.Log, "Sky map saved to %s\n", sky)

	vHist:=filepath.Join(c.PlotsDir, fmt.Sprintf("%s_vmag_hist.png", *semester))
	tHist:=filepath.Join(c.PlotsDir, fmt.Sprintf("%s_tessmag_hist.png", *semester))
	if err:=plot.MagHistograms(kpf, vHist, tHist); err!=nil { return err }
	fmt.Fprintf(c.Log, "Magnitude histograms saved to %s, %s\n", vHist, tHist)

	air:=filepath.Join(c.PlotsDir, fmt.Sprintf("%s_airmass.png", *semester))
	if err:=plot.AirmassCurves(kpf, windows, &plot.Keck, time.Time{}, *maxCurves, air); err!=nil { return err }
	fmt.Fprintf(c.Log, "Airmass curves saved to %s\n", air)
	return nil
}

// Downloads and summarizes the night allocation schedule.
func cmdNights(c *pipe.Context) error {
	q:=fetch.ScheduleQuery{Instrument: *instrument, Semester: *semester, StartDate: *nightsFrom, EndDate: *nightsTo}
	outFile:=filepath.Join(c.TargetsDir, "keck_night_allocation.csv")
	fmt.Fprintf(c.Log, "Downloading %s night allocation %s to %s...\n", q.Instrument, q.StartDate, q.EndDate)

	nights, err:=fetch.NightAllocation(context.Background(), *schedURL, q, outFile)
	if err!=nil { return err }
	fmt.Fprintf(c.Log, "Saved %d schedule rows to %s\n", len(nights), outFile)
	fmt.Fprintf(c.Log, "Total allocation: %.2f nights\n", fetch.TotalNights(nights))
	return nil
}

// Loads the catalog named by args[0], or the newest <prefix>_*.csv in
// the targets directory.
func loadCatalog(c *pipe.Context, args []string, prefix string) (ts []target.Target, fileName string, err error) {
	if len(args)>0 {
		fileName=args[0]
	} else {
		fileName, err=fetch.LatestTargetsFile(c.TargetsDir, prefix)
		if err!=nil { return nil, "", err }
	}
	ts, err=target.ReadCSVFile(fileName)
	if err!=nil { return nil, "", err }
	return ts, fileName, nil
}

func printSummary(w io.Writer, s target.Summary) {
	printRange:=func(label, unit string, r target.Range, digits int) {
		if !r.Valid { return }
		fmt.Fprintf(w, "  %s: %.*f to %.*f%s\n", label, digits, r.Min, digits, r.Max, unit)
	}
	fmt.Fprintf(w, "Summary of %d targets:\n", s.Count)
	printRange("RA", " deg", s.RA, 3)
	printRange("Dec", " deg", s.Dec, 3)
	printRange("V magnitude", "", s.VMag, 2)
	printRange("TESS magnitude", "", s.TESSMag, 2)
	printRange("Planet radius", " Re", s.PlanetRadius, 2)
	printRange("Period", " days", s.Period, 3)
	printRange("Stellar Teff", " K", s.StellarTeff, 0)
	printRange("Stellar distance", " pc", s.StellarDist, 1)
}

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

// Package rest serves the scheduling pipeline over HTTP.
package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arielkpf/kpfsched/internal/obs"
	"github.com/arielkpf/kpfsched/internal/split"
	"github.com/arielkpf/kpfsched/internal/target"
	"github.com/arielkpf/kpfsched/web"
)

// Builds the API router.
func Router() *gin.Engine {
	r:=gin.Default()
	r.GET("/", getIndex)
	api:=r.Group("/api")
	{
		v1:=api.Group("/v1")
		{
			v1.GET ("/ping",    getPing)
			v1.POST("/magsort", postMagsort)
			v1.POST("/obs",     postObs)
		}
	}
	return r
}

// Listens and serves on addr, e.g. ":8080".
func Serve(addr string) error {
	return Router().Run(addr)
}

func getIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

func printArgs(logWriter io.Writer, prefix, suffix string, args interface{}) error {
	m, err:=json.MarshalIndent(args, "", "  ")
	if err!=nil { return err }
	fmt.Fprintf(logWriter, "%s%s%s", prefix, string(m), suffix)
	return nil
}

// Overhead and Cadence are pointers so an explicit zero stays
// distinguishable from an absent field.
type postMagsortArgs struct {
	CSVPath  string   `json:"csvPath"`
	Semester string   `json:"semester"`
	Overhead *float64 `json:"overhead"`
	Cadence  *float64 `json:"cadence"`
	JSON     bool     `json:"json"` // structured report instead of text
}

func postMagsort(c *gin.Context) {
	var args postMagsortArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if args.Semester=="" { args.Semester="2026B" }
	overhead, cadence:=180.0, 4.0
	if args.Overhead!=nil { overhead=*args.Overhead }
	if args.Cadence!=nil { cadence=*args.Cadence }

	windows, err:=target.WindowsForSemester(args.Semester)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ts, err:=target.ReadCSVFile(args.CSVPath)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err:=split.Semester(target.FilterKPF(ts), args.Semester, windows, overhead, cadence)
	if err!=nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if args.JSON {
		c.JSON(http.StatusOK, rep)
		return
	}

	logWriter:=c.Writer
	logWriter.Header().Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)
	if err:=printArgs(logWriter, "Arguments:\n", "\n", args); err!=nil {
		fmt.Fprintf(logWriter, "Error printing arguments: %s\n", err.Error())
		return
	}
	rep.WriteTo(logWriter)
}

type postObsArgs struct {
	CSVPath      string `json:"csvPath"`
	TemplatePath string `json:"templatePath"`
	Semester     string `json:"semester"`
	Month        string `json:"month"`
	TestTargets  int    `json:"testTargets"` // when >0, return only the first N blocks
}

func postObs(c *gin.Context) {
	var args postObsArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if args.Semester=="" { args.Semester="2025B" }

	windows, err:=target.WindowsForSemester(args.Semester)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err:=target.FindWindow(windows, args.Month)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl, err:=obs.LoadTemplate(args.TemplatePath)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ts, err:=target.ReadCSVFile(args.CSVPath)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blocks, err:=obs.Generate(target.FilterKPF(ts), tpl, w)
	if err!=nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if args.TestTargets>0 && args.TestTargets<len(blocks) { blocks=blocks[:args.TestTargets] }
	c.JSON(http.StatusOK, blocks)
}

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

// Package fetch downloads the candidate-target sheet and the observatory
// night-allocation schedule as CSV.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/arielkpf/kpfsched/internal/target"
)

// CSV export URL of the shared candidate-target sheet.
const DefaultTargetsURL="https://docs.google.com/spreadsheets/d/1gAAznK9h4rC-JTsTA1V8eBtJKIj53AjrTiyIJVjrGuE/export?format=csv"

var client=&http.Client{Timeout: 60*time.Second}

// Timestamp layout used in downloaded file names.
const stampLayout="20060102_150405"

// Downloads the target sheet CSV, verifies it parses as a catalog, and
// saves it under dir as <prefix>_<stamp>.csv. Returns the saved path and
// the parsed catalog.
func Targets(ctx context.Context, url, dir, prefix string) (fileName string, ts []target.Target, err error) {
	buf, err:=get(ctx, url, nil)
	if err!=nil { return "", nil, fmt.Errorf("downloading targets: %w", err) }

	ts, err=target.ReadCSV(bytes.NewReader(buf))
	if err!=nil { return "", nil, fmt.Errorf("downloaded targets: %w", err) }

	if err:=os.MkdirAll(dir, 0777); err!=nil { return "", nil, err }
	fileName=filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format(stampLayout)))
	if err:=os.WriteFile(fileName, buf, 0666); err!=nil { return "", nil, err }
	return fileName, ts, nil
}

// Returns the newest <prefix>_*.csv under dir by modification time,
// or an error when none exists. Callers pass the resolved path onward
// instead of every stage re-globbing on its own.
func LatestTargetsFile(dir, prefix string) (fileName string, err error) {
	matches, err:=filepath.Glob(filepath.Join(dir, prefix+"_*.csv"))
	if err!=nil { return "", err }
	if len(matches)==0 { return "", fmt.Errorf("no %s_*.csv files in %s", prefix, dir) }

	var newest time.Time
	for _, m:=range matches {
		fi, err:=os.Stat(m)
		if err!=nil { continue }
		if fileName=="" || fi.ModTime().After(newest) {
			fileName, newest = m, fi.ModTime()
		}
	}
	if fileName=="" { return "", fmt.Errorf("no readable %s_*.csv files in %s", prefix, dir) }
	return fileName, nil
}

func get(ctx context.Context, url string, query map[string]string) (buf []byte, err error) {
	req, err:=http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err!=nil { return nil, err }
	if len(query)>0 {
		q:=req.URL.Query()
		for k, v:=range query { q.Set(k, v) }
		req.URL.RawQuery=q.Encode()
	}

	resp, err:=client.Do(req)
	if err!=nil { return nil, err }
	defer resp.Body.Close()
	if resp.StatusCode!=http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", req.URL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

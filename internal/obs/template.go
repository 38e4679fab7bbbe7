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

// Package obs renders per-target observing-block JSON descriptors from
// an annotated template file.
package obs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// A Template is the raw JSON of one observing block, kept as bytes so
// every instantiation starts from a fresh deep copy.
type Template struct {
	raw []byte
}

// Loads the observing-block template. The template file is JSON carrying
// '#' end-of-line annotations for the observer; everything from the
// first '#' of a line onward is stripped before decoding. The file holds
// an array with a single block, which becomes the template.
func LoadTemplate(fileName string) (tpl *Template, err error) {
	buf, err:=os.ReadFile(fileName)
	if err!=nil { return nil, fmt.Errorf("ob template: %w", err) }
	return ParseTemplate(buf)
}

// Parses template JSON that may carry '#' comments.
func ParseTemplate(buf []byte) (tpl *Template, err error) {
	cleaned:=StripComments(string(buf))

	var blocks []map[string]interface{}
	if err:=json.Unmarshal([]byte(cleaned), &blocks); err!=nil {
		return nil, fmt.Errorf("ob template: decoding: %w", err)
	}
	if len(blocks)==0 { return nil, fmt.Errorf("ob template: empty block array") }

	raw, err:=json.Marshal(blocks[0])
	if err!=nil { return nil, err }
	return &Template{raw: raw}, nil
}

// Removes '#' end-of-line comments. The template never places '#'
// inside a string value, so a plain per-line cut is sufficient.
func StripComments(s string) string {
	lines:=strings.Split(s, "\n")
	for i, line:=range lines {
		if j:=strings.IndexByte(line, '#'); j>=0 {
			lines[i]=strings.TrimRight(line[:j], " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// Instantiates a fresh deep copy of the template block.
func (tpl *Template) NewBlock() (Block, error) {
	var b Block
	if err:=json.Unmarshal(tpl.raw, &b); err!=nil { return nil, err }
	return b, nil
}

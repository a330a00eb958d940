// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"strconv"
	"strings"
)

// Colour is one of the eight standard terminal colours.
type Colour uint8

// Standard colours, in SGR order.
const (
	Black Colour = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// Style is a set of SGR attributes applied to a piece of text.  The zero value
// applies nothing.
type Style struct {
	codes []int
}

// Bold returns a bold style.
func Bold() Style {
	return Style{[]int{1}}
}

// Fg returns a copy of this style with a given foreground colour.
func (s Style) Fg(c Colour) Style {
	return Style{append(s.codes[:len(s.codes):len(s.codes)], 30+int(c))}
}

// IsPlain determines whether this style applies nothing.
func (s Style) IsPlain() bool {
	return len(s.codes) == 0
}

// Sequence returns the escape sequence which enables this style, or "" for the
// plain style.
func (s Style) Sequence() string {
	if s.IsPlain() {
		return ""
	}
	//
	var codes = make([]string, len(s.codes))
	//
	for i, c := range s.codes {
		codes[i] = strconv.Itoa(c)
	}
	//
	return "\033[" + strings.Join(codes, ";") + "m"
}

// Reset is the escape sequence which clears all attributes.
const Reset = "\033[0m"

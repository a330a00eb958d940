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
	"os"

	"golang.org/x/term"
)

// DefaultWidth is assumed when the width of the output cannot be determined
// (e.g. because it is not a terminal).
const DefaultWidth = uint(120)

// Output describes a destination for printed text, and whether it is capable of
// displaying ANSI escapes.
type Output struct {
	file *os.File
	fd   int
	tty  bool
}

// NewOutput inspects a given file to determine whether it is a terminal.
func NewOutput(file *os.File) Output {
	fd := int(file.Fd())
	//
	return Output{file, fd, term.IsTerminal(fd)}
}

// File returns the file being written to.
func (o Output) File() *os.File {
	return o.file
}

// IsTerminal determines whether this output is an interactive terminal.  ANSI
// escapes should only be used when it is.
func (o Output) IsTerminal() bool {
	return o.tty
}

// Width returns the number of columns available, or DefaultWidth if this is not
// a terminal.
func (o Output) Width() uint {
	if !o.tty {
		return DefaultWidth
	}
	//
	w, _, err := term.GetSize(o.fd)
	// Sanity check
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	//
	return uint(w)
}

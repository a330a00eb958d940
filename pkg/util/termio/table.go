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
	"fmt"
	"io"
	"unicode/utf8"
)

// TablePrinter is useful for printing tables to the terminal.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a new table with a given number of columns.  Rows
// are added with AddRow.
func NewTablePrinter(columns uint) *TablePrinter {
	return &TablePrinter{make([]uint, columns), nil, nil, true}
}

// AddRow appends a row to this table, returning its index.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i := 0; i < len(p.widths); i++ {
		p.widths[i] = max(p.widths[i], uint(utf8.RuneCountInString(vals[i])))
	}
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]string, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the height of this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetStyle sets the style used when printing the contents of a given cell.
func (p *TablePrinter) SetStyle(col uint, row uint, style Style) {
	p.escapes[row][col] = style.Sequence()
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Disabling escapes is useful in environments that don't support
// escapes as, otherwise, you get a lot of visible excape characters being
// printed.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// FitWidth shrinks the widest columns until the table (including separators)
// fits within a given total width.  Columns never shrink below 4 characters.
func (p *TablePrinter) FitWidth(total uint) {
	for p.width() > total {
		widest := 0
		//
		for i, w := range p.widths {
			if w > p.widths[widest] {
				widest = i
			}
		}
		//
		if p.widths[widest] <= 4 {
			return
		}
		//
		p.widths[widest]--
	}
}

// Total printed width of one row.
func (p *TablePrinter) width() uint {
	var w uint
	//
	for _, c := range p.widths {
		w += c + 3
	}
	//
	return w
}

// Print the table.
func (p *TablePrinter) Print(out io.Writer) {
	//
	for i := 0; i < len(p.rows); i++ {
		row := p.rows[i]
		escapes := p.escapes[i]
		//
		for j, col := range row {
			jth := col
			jthWidth := p.widths[j]
			jthEscape := escapes[j]
			// Print colour (if applicable)
			if p.enableEscapes && jthEscape != "" {
				fmt.Fprint(out, jthEscape)
			}
			// Truncate (if applicable)
			if uint(utf8.RuneCountInString(col)) > jthWidth {
				jth = string([]rune(col)[:jthWidth-2]) + ".."
			}
			// Print data (width counts runes)
			fmt.Fprintf(out, " %-*s", int(jthWidth), jth)
			// Cancel colour (if applicable)
			if p.enableEscapes && jthEscape != "" {
				fmt.Fprint(out, Reset)
			}

			fmt.Fprint(out, " |")
		}

		fmt.Fprintln(out)
	}
}

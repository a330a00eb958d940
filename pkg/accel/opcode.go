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
package accel

import "fmt"

// Opcode identifies an accelerator entry point.  The set of opcodes is closed:
// the only valid values are those declared in this package, and the zero value
// is invalid.  This prevents callers from dispatching arbitrary identifiers.
type Opcode struct {
	id uint32
}

var (
	// ScalarMul is the in-place multiplication entry point (p *= q).
	ScalarMul = Opcode{scalarMulID}
	// ScalarMac is the in-place multiply-accumulate entry point.
	ScalarMac = Opcode{scalarMacID}
	// ScalarMulAdd is the multiply-add entry point.
	ScalarMulAdd = Opcode{scalarMulAddID}
)

// Opcodes returns every valid opcode, in table order.
func Opcodes() []Opcode {
	var codes = make([]Opcode, len(opcodeTable))
	//
	for i, info := range opcodeTable {
		codes[i] = Opcode{info.id}
	}
	//
	return codes
}

// ID returns the numeric identifier of this opcode, as seen by the accelerator.
func (o Opcode) ID() uint32 {
	return o.id
}

// Valid determines whether this is one of the declared opcodes.
func (o Opcode) Valid() bool {
	_, ok := o.info()
	return ok
}

// Name returns the symbolic name of this opcode.
func (o Opcode) Name() string {
	if info, ok := o.info(); ok {
		return info.name
	}
	//
	return fmt.Sprintf("UNKNOWN_0x%08x", o.id)
}

// Summary returns a short human-readable description of this opcode.
func (o Opcode) Summary() string {
	if info, ok := o.info(); ok {
		return info.summary
	}
	//
	return ""
}

func (o Opcode) String() string {
	return fmt.Sprintf("%s(0x%08x)", o.Name(), o.id)
}

func (o Opcode) info() (opcodeInfo, bool) {
	for _, info := range opcodeTable {
		if info.id == o.id {
			return info, true
		}
	}
	//
	return opcodeInfo{}, false
}

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

// Package accel defines the boundary between host code and a fixed-function
// scalar field accelerator.  An accelerator is invoked with an opcode and an
// ordered list of operand addresses.  It completes synchronously, and its only
// observable effect is the mutation of the result buffer(s) designated by the
// opcode's calling convention.  There is no status returned across this
// boundary: an accelerator fault is fatal to the caller.
package accel

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// ErrFault signals that an accelerator rejected an invocation outright (e.g.
// an unknown opcode, or the wrong number of operands).  Accelerators raise it
// by panicking, since there is no recovery path at this boundary.
var ErrFault = errors.New("accelerator fault")

// Invocation is the record transmitted across the accelerator boundary for a
// single call.  It exists only for the duration of that call and must not be
// retained by an accelerator once Invoke returns.
type Invocation struct {
	// Entry point being invoked.
	Op Opcode
	// Operand addresses, in the order fixed by the calling convention of Op.
	Operands []unsafe.Pointer
}

// Pair is an indirect operand holding two addresses.  Some entry points group
// two of their inputs behind a single operand, in which case the operand is
// the address of a Pair.
type Pair [2]unsafe.Pointer

// Accelerator represents an execution facility for scalar field operations.
// Invoke blocks until the operation has completed.  Implementations are
// free to assume that the invocation is well-formed for its opcode (correct
// arity, non-overlapping aligned buffers, etc); a malformed invocation may
// fault (panic) or corrupt the designated buffers.
type Accelerator interface {
	// Name of the backend implementing this accelerator.
	Name() string
	// Invoke performs a single operation.
	Invoke(inv Invocation)
}

// Fault constructs the value with which an accelerator panics when it rejects
// an invocation.
func Fault(inv Invocation, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", inv.Op, fmt.Sprintf(format, args...), ErrFault)
}

func (inv Invocation) String() string {
	var builder strings.Builder
	//
	builder.WriteString(inv.Op.String())
	builder.WriteString("[")
	//
	for i, ptr := range inv.Operands {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("%p", ptr))
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

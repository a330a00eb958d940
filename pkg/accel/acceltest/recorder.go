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

// Package acceltest provides a mock accelerator for testing code which
// dispatches to an accelerator.
package acceltest

import (
	"slices"
	"sync"
	"unsafe"

	"github.com/consensys/zkaccel/pkg/accel"
	"github.com/consensys/zkaccel/pkg/operand"
)

// Recorder is a mock accelerator which records every invocation it receives.
// Optionally, each invocation can be inspected (whilst its operands are still
// live) and/or forwarded to another accelerator.
type Recorder struct {
	mu    sync.Mutex
	calls []accel.Invocation
	// Inspect (if non-nil) is called with each invocation before it is
	// forwarded.  Operand buffers are only valid for the duration of this call.
	Inspect func(accel.Invocation)
	// Forward (if non-nil) receives each invocation after it is recorded.
	Forward accel.Accelerator
}

// NewRecorder constructs a recorder which does nothing except record.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Name implementation for the Accelerator interface.
func (p *Recorder) Name() string {
	return "recorder"
}

// Invoke implementation for the Accelerator interface.
func (p *Recorder) Invoke(inv accel.Invocation) {
	p.mu.Lock()
	p.calls = append(p.calls, accel.Invocation{Op: inv.Op, Operands: slices.Clone(inv.Operands)})
	p.mu.Unlock()
	//
	if p.Inspect != nil {
		p.Inspect(inv)
	}
	//
	if p.Forward != nil {
		p.Forward.Invoke(inv)
	}
}

// Calls returns the invocations recorded so far.  Operand addresses may no
// longer be valid and must only be compared, never dereferenced.
func (p *Recorder) Calls() []accel.Invocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	return slices.Clone(p.calls)
}

// Last returns the most recent invocation, or panics if there was none.
func (p *Recorder) Last() accel.Invocation {
	calls := p.Calls()
	//
	if len(calls) == 0 {
		panic("no invocations recorded")
	}
	//
	return calls[len(calls)-1]
}

// Reset discards all recorded invocations.
func (p *Recorder) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	p.calls = nil
}

// Addr returns the address the accelerator sees for a given scalar.
func Addr(s *operand.Scalar) unsafe.Pointer {
	return unsafe.Pointer(s)
}

// ScalarAt reinterprets an operand address as a scalar.  This is only valid
// whilst the invocation is in progress (e.g. within Inspect).
func ScalarAt(ptr unsafe.Pointer) *operand.Scalar {
	return (*operand.Scalar)(ptr)
}

// WideAt reinterprets an operand address as a double-width buffer.  This is
// only valid whilst the invocation is in progress (e.g. within Inspect).
func WideAt(ptr unsafe.Pointer) *operand.Wide {
	return (*operand.Wide)(ptr)
}

// PairAt reinterprets an operand address as an indirect pair of addresses.
// This is only valid whilst the invocation is in progress (e.g. within
// Inspect).
func PairAt(ptr unsafe.Pointer) *accel.Pair {
	return (*accel.Pair)(ptr)
}

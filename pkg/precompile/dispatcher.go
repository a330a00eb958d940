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

// Package precompile marshals BN254 scalar field operands into the calling
// conventions expected by the accelerator, and dispatches them.  No field
// arithmetic happens here: each operation lays out its operands, issues a
// single invocation, and returns once the accelerator has written the result
// in place.
//
// All operations are unchecked by default.  The caller must ensure that every
// buffer is valid for its access mode throughout the call, and that no two
// buffers of a single operation overlap.  Violating this is undefined
// behaviour.  Enabling Checked in the configuration turns these obligations
// into assertions which panic before anything is dispatched.
//
// Operations are synchronous and hold no state between calls.  Concurrent
// calls are safe provided they share no buffers.
package precompile

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/consensys/zkaccel/pkg/accel"
	"github.com/consensys/zkaccel/pkg/operand"
)

// ErrABIMismatch is raised when an operation requires a multiply-add calling
// convention other than the one the dispatcher is configured for.
var ErrABIMismatch = errors.New("multiply-add abi mismatch")

// Dispatcher issues scalar field operations to a given accelerator.
type Dispatcher struct {
	acc     accel.Accelerator
	abi     accel.ABI
	checked bool
}

// New constructs a dispatcher for a given accelerator.  The configuration's
// backend name is ignored.  An unknown multiply-add ABI is rejected here,
// rather than on first dispatch.
func New(acc accel.Accelerator, config accel.Config) (*Dispatcher, error) {
	abi, err := accel.ResolveABI(config.MulAddABI)
	if err != nil {
		return nil, err
	}
	//
	return &Dispatcher{acc, abi, config.Checked}, nil
}

// Open constructs an accelerator from the registry, and a dispatcher for it.
func Open(config accel.Config) (*Dispatcher, error) {
	abi, err := accel.ResolveABI(config.MulAddABI)
	if err != nil {
		return nil, err
	}
	// Backends see the canonical name.
	config.MulAddABI = abi
	//
	acc, err := accel.New(config)
	if err != nil {
		return nil, err
	}
	//
	return New(acc, config)
}

// Accelerator returns the accelerator to which operations are dispatched.
func (d *Dispatcher) Accelerator() accel.Accelerator {
	return d.acc
}

// ABI returns the multiply-add calling convention in force.
func (d *Dispatcher) ABI() accel.ABI {
	return d.abi
}

// Checked determines whether debug assertions are enabled.
func (d *Dispatcher) Checked() bool {
	return d.checked
}

// Mul computes p *= q in place.  On return, p holds the product of its
// original value and q, whilst q is unchanged.
func (d *Dispatcher) Mul(p operand.InOut, q operand.In) {
	d.assert(accel.ScalarMul, p.Region(), q.Region())
	//
	d.invoke(accel.ScalarMul, p.Pointer(), q.Pointer())
}

// Mac accumulates a and b into ret in place (ret += a*b).  The two inputs are
// passed to the accelerator indirectly, as the address of a pair of
// addresses.  On return, a and b are unchanged.
func (d *Dispatcher) Mac(ret operand.InOut, a operand.In, b operand.In) {
	d.assert(accel.ScalarMac, ret.Region(), a.Region(), b.Region())
	//
	pair := accel.Pair{a.Pointer(), b.Pointer()}
	//
	d.invoke(accel.ScalarMac, ret.Pointer(), unsafe.Pointer(&pair))
}

// MulAdd computes ret = a*b + c.  Under the flat convention, the four operands
// are dispatched directly as [ret, a, b, c].  Under the (deprecated) packed
// convention, the operands are marshaled as for MulAddPacked.
func (d *Dispatcher) MulAdd(ret operand.Out, a operand.In, b operand.In, c operand.In) {
	switch d.abi {
	case accel.FlatABI:
		d.assert(accel.ScalarMulAdd, ret.Region(), a.Region(), b.Region(), c.Region())
		//
		d.invoke(accel.ScalarMulAdd, ret.Pointer(), a.Pointer(), b.Pointer(), c.Pointer())
	case accel.PackedABI:
		d.mulAddPacked(ret, a, b, c)
	default:
		panic(fmt.Errorf("%s: %w", d.abi, accel.ErrUnknownABI))
	}
}

// invoke is the single point at which invocations cross the accelerator
// boundary.
func (d *Dispatcher) invoke(op accel.Opcode, operands ...unsafe.Pointer) {
	if d.checked && !op.Valid() {
		panic(accel.Fault(accel.Invocation{Op: op}, "invalid opcode"))
	}
	//
	d.acc.Invoke(accel.Invocation{Op: op, Operands: operands})
}

// assert checks the preconditions of an operation when debug assertions are
// enabled.  A violation panics, rather than corrupting memory.
func (d *Dispatcher) assert(op accel.Opcode, regions ...operand.Region) {
	if !d.checked {
		return
	}
	//
	if err := operand.Disjoint(regions...); err != nil {
		panic(fmt.Errorf("%s: %w", op.Name(), err))
	}
}

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
package precompile

import (
	"fmt"
	"unsafe"

	"github.com/consensys/zkaccel/pkg/accel"
	"github.com/consensys/zkaccel/pkg/operand"
)

// MulAddPacked computes result = x*y + z using the packed multiply-add
// convention.  The multiplicands x and y are copied back-to-back into a
// call-local double-width buffer, and z is copied into result (which the
// accelerator then updates in place).  The accelerator receives [result,
// scratch].  Nothing is read from result before it is seeded, so its prior
// contents are irrelevant.
//
// This panics with ErrABIMismatch unless the dispatcher is configured for
// the packed convention, since issuing it to a flat accelerator would corrupt
// memory.
//
// Deprecated: the packed convention is inconsistent (the second operand is
// tagged as a single element, but addresses two).  Use MulAdd under the flat
// convention.
func (d *Dispatcher) MulAddPacked(result operand.Out, x operand.In, y operand.In, z operand.In) {
	if d.abi != accel.PackedABI {
		panic(fmt.Errorf("packed multiply-add issued under %s convention: %w", d.abi, ErrABIMismatch))
	}
	//
	d.mulAddPacked(result, x, y, z)
}

func (d *Dispatcher) mulAddPacked(result operand.Out, x operand.In, y operand.In, z operand.In) {
	// Never retained beyond this call.
	var scratch operand.Wide
	//
	d.assert(accel.ScalarMulAdd, result.Region(), x.Region(), y.Region(), z.Region(), operand.WideRegion(&scratch))
	//
	pack(&scratch, result, x, y, z)
	//
	d.invoke(accel.ScalarMulAdd, result.Pointer(), unsafe.Pointer(&scratch))
}

// pack lays out the operands of a packed multiply-add.  The scratch buffer
// receives x in its low half, and y in its high half.  The result buffer is
// seeded with z, since the accelerator accumulates into its first operand.
// Exactly 16 words of scratch and 8 words of result are written.
func pack(scratch *operand.Wide, result operand.Out, x operand.In, y operand.In, z operand.In) {
	*scratch.Lo() = x.Load()
	*scratch.Hi() = y.Load()
	//
	seed := z.Load()
	result.Store(&seed)
}

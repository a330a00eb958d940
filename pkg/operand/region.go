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
package operand

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrOverlap is returned when two operands of a single invocation share memory.
var ErrOverlap = errors.New("operand buffers overlap")

// Region describes a contiguous block of memory handed to the accelerator,
// along with the manner in which the accelerator may access it.
type Region struct {
	// Base address of the region.
	Base unsafe.Pointer
	// Size of the region in bytes.
	Size uintptr
	// Permitted access.
	Mode Mode
}

// WideRegion returns the (read-only) region covered by a double-width buffer.
func WideRegion(w *Wide) Region {
	return Region{unsafe.Pointer(w), 2 * Bytes, ReadOnly}
}

// Start returns the first address covered by this region.
func (r Region) Start() uintptr {
	return uintptr(r.Base)
}

// End returns the first address after this region.
func (r Region) End() uintptr {
	return uintptr(r.Base) + r.Size
}

// Overlaps determines whether two regions share one or more bytes.
func (r Region) Overlaps(o Region) bool {
	return r.Start() < o.End() && o.Start() < r.End()
}

func (r Region) String() string {
	return fmt.Sprintf("%#x+%d(%s)", r.Start(), r.Size, r.Mode)
}

// Check that a region is suitable for handing to the accelerator.  That is, it
// is non-nil and aligned.
func (r Region) Check() error {
	if r.Base == nil {
		return ErrNilBuffer
	} else if !IsAligned(r.Base) {
		return fmt.Errorf("region %s: %w", r, ErrMisaligned)
	}
	//
	return nil
}

// Disjoint checks that every region is valid and that no two regions overlap.
// The accelerator requires all operands of a single invocation to be disjoint,
// irrespective of their access modes.
func Disjoint(regions ...Region) error {
	for i, ith := range regions {
		if err := ith.Check(); err != nil {
			return fmt.Errorf("operand %d: %w", i, err)
		}
		//
		for j := i + 1; j < len(regions); j++ {
			if ith.Overlaps(regions[j]) {
				return fmt.Errorf("operands %d (%s) and %d (%s): %w", i, ith, j, regions[j], ErrOverlap)
			}
		}
	}
	//
	return nil
}

// Regions collects the regions of zero or more views.
func Regions(views ...View) []Region {
	var regions = make([]Region, len(views))
	//
	for i, v := range views {
		regions[i] = v.Region()
	}
	//
	return regions
}

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

// ErrNilBuffer is returned when a view is requested over a missing buffer.
var ErrNilBuffer = errors.New("nil operand buffer")

// ErrShortBuffer is returned when a view is requested over a buffer which is
// too small to hold a scalar.
var ErrShortBuffer = errors.New("operand buffer too short")

// ErrMisaligned is returned when a view is requested over a buffer which does
// not meet the accelerator's alignment requirement.
var ErrMisaligned = errors.New("operand buffer misaligned")

// Mode identifies how the accelerator is permitted to access an operand.
type Mode uint8

const (
	// ReadOnly operands are read by the accelerator, but never written.
	ReadOnly Mode = iota
	// Write operands are written by the accelerator, but never read.
	Write
	// ReadWrite operands are read by the accelerator before being overwritten
	// with the result.
	ReadWrite
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "r"
	case Write:
		return "w"
	case ReadWrite:
		return "rw"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// View is implemented by all operand views, and exposes the memory region a
// view covers.
type View interface {
	// Region returns the memory region covered by this view.
	Region() Region
}

// In is a read-only view of a scalar.  The accelerator reads the scalar but
// never writes it.
type In struct {
	ptr *Scalar
}

// Out is a write-only view of a scalar.  The accelerator overwrites the scalar
// without reading its previous contents.
type Out struct {
	ptr *Scalar
}

// InOut is a read-write view of a scalar, as used by in-place operations.  The
// accelerator reads the scalar before overwriting it with the result, so the
// underlying buffer must remain valid for both throughout the call.
type InOut struct {
	ptr *Scalar
}

// ReadOnlyOf constructs a read-only view of a scalar.  This is unchecked: the
// pointer must be non-nil.
func ReadOnlyOf(s *Scalar) In {
	return In{s}
}

// WriteOnlyOf constructs a write-only view of a scalar.  This is unchecked: the
// pointer must be non-nil.
func WriteOnlyOf(s *Scalar) Out {
	return Out{s}
}

// ReadWriteOf constructs a read-write view of a scalar.  This is unchecked: the
// pointer must be non-nil.
func ReadWriteOf(s *Scalar) InOut {
	return InOut{s}
}

// Pointer returns the address handed to the accelerator for this operand.
func (v In) Pointer() unsafe.Pointer { return unsafe.Pointer(v.ptr) }

// Pointer returns the address handed to the accelerator for this operand.
func (v Out) Pointer() unsafe.Pointer { return unsafe.Pointer(v.ptr) }

// Pointer returns the address handed to the accelerator for this operand.
func (v InOut) Pointer() unsafe.Pointer { return unsafe.Pointer(v.ptr) }

// Load returns a copy of the viewed scalar.
func (v In) Load() Scalar { return *v.ptr }

// Load returns a copy of the viewed scalar.
func (v InOut) Load() Scalar { return *v.ptr }

// Store overwrites the viewed scalar.
func (v Out) Store(s *Scalar) { *v.ptr = *s }

// Store overwrites the viewed scalar.
func (v InOut) Store(s *Scalar) { *v.ptr = *s }

// Region implementation for View interface.
func (v In) Region() Region { return Region{unsafe.Pointer(v.ptr), Bytes, ReadOnly} }

// Region implementation for View interface.
func (v Out) Region() Region { return Region{unsafe.Pointer(v.ptr), Bytes, Write} }

// Region implementation for View interface.
func (v InOut) Region() Region { return Region{unsafe.Pointer(v.ptr), Bytes, ReadWrite} }

// InFromBytes constructs a validated read-only view over the first Bytes bytes
// of a byte buffer.
func InFromBytes(buf []byte) (In, error) {
	ptr, err := viewBytes(buf)
	return In{ptr}, err
}

// OutFromBytes constructs a validated write-only view over the first Bytes
// bytes of a byte buffer.
func OutFromBytes(buf []byte) (Out, error) {
	ptr, err := viewBytes(buf)
	return Out{ptr}, err
}

// InOutFromBytes constructs a validated read-write view over the first Bytes
// bytes of a byte buffer.
func InOutFromBytes(buf []byte) (InOut, error) {
	ptr, err := viewBytes(buf)
	return InOut{ptr}, err
}

// InFromWords constructs a validated read-only view over the first Words words
// of a word buffer.
func InFromWords(buf []uint32) (In, error) {
	ptr, err := viewWords(buf)
	return In{ptr}, err
}

// OutFromWords constructs a validated write-only view over the first Words
// words of a word buffer.
func OutFromWords(buf []uint32) (Out, error) {
	ptr, err := viewWords(buf)
	return Out{ptr}, err
}

// InOutFromWords constructs a validated read-write view over the first Words
// words of a word buffer.
func InOutFromWords(buf []uint32) (InOut, error) {
	ptr, err := viewWords(buf)
	return InOut{ptr}, err
}

func viewWords(buf []uint32) (*Scalar, error) {
	switch {
	case buf == nil:
		return nil, ErrNilBuffer
	case len(buf) < Words:
		return nil, fmt.Errorf("expected %d words, found %d: %w", Words, len(buf), ErrShortBuffer)
	}
	// A []uint32 is always word aligned.
	return (*Scalar)(buf[:Words]), nil
}

func viewBytes(buf []byte) (*Scalar, error) {
	switch {
	case buf == nil:
		return nil, ErrNilBuffer
	case len(buf) < Bytes:
		return nil, fmt.Errorf("expected %d bytes, found %d: %w", Bytes, len(buf), ErrShortBuffer)
	}
	//
	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	//
	if !IsAligned(ptr) {
		return nil, fmt.Errorf("address %p: %w", ptr, ErrMisaligned)
	}
	//
	return (*Scalar)(ptr), nil
}

// IsAligned checks whether a given address meets the accelerator's alignment
// requirement.
func IsAligned(ptr unsafe.Pointer) bool {
	return uintptr(ptr)%Alignment == 0
}

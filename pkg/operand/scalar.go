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
	"encoding/binary"
	"fmt"
	"strings"
)

// Words is the number of 32bit words making up a single scalar field element.
const Words = 8

// Bytes is the number of bytes making up a single scalar field element.
const Bytes = 4 * Words

// Alignment is the minimum alignment (in bytes) required of any buffer handed
// to the accelerator.
const Alignment = 4

// Scalar is the raw representation of a 256bit scalar field element, as
// expected by the accelerator.  Words are held least significant first, and
// each word is little-endian.  This layer attaches no meaning to the contents
// of a scalar.  In particular, it does not require the value to be reduced.
type Scalar [Words]uint32

// Wide is a double-width buffer holding two scalars back-to-back.  This is the
// layout used by accelerator entry points which accept two operands as a
// single concatenated argument.
type Wide [2 * Words]uint32

// FromUint64 constructs a scalar holding the given value.
func FromUint64(val uint64) Scalar {
	return Scalar{uint32(val), uint32(val >> 32)}
}

// FromLittleEndian constructs a scalar from exactly Bytes little-endian bytes.
func FromLittleEndian(bytes []byte) (Scalar, error) {
	var s Scalar
	//
	if len(bytes) != Bytes {
		return s, fmt.Errorf("expected %d bytes, found %d: %w", Bytes, len(bytes), ErrShortBuffer)
	}
	//
	for i := range Words {
		s[i] = binary.LittleEndian.Uint32(bytes[4*i:])
	}
	//
	return s, nil
}

// LittleEndian returns the little-endian byte encoding of this scalar.
func (s *Scalar) LittleEndian() [Bytes]byte {
	var bytes [Bytes]byte
	//
	for i, w := range s {
		binary.LittleEndian.PutUint32(bytes[4*i:], w)
	}
	//
	return bytes
}

// IsZero checks whether every word of this scalar is zero.
func (s *Scalar) IsZero() bool {
	return *s == Scalar{}
}

// String returns the words of this scalar, least significant first.
func (s Scalar) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, w := range s {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%d", w))
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// Lo returns the first scalar held in this buffer.
func (w *Wide) Lo() *Scalar {
	return (*Scalar)(w[:Words])
}

// Hi returns the second scalar held in this buffer.
func (w *Wide) Hi() *Scalar {
	return (*Scalar)(w[Words:])
}

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
package bn254

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/zkaccel/pkg/operand"
	"github.com/holiman/uint256"
)

var modulus = uint256.MustFromBig(fr.Modulus())

// Element wraps a gnark-crypto BN254 scalar field element, providing
// conversions to and from the raw word layout used by the accelerator.
type Element struct {
	fr.Element
}

// Modulus returns the order of the BN254 scalar field.
func Modulus() *big.Int {
	return fr.Modulus()
}

// Uint64 constructs an element holding a given value.
func Uint64(val uint64) Element {
	return Element{fr.NewElement(val)}
}

// Parse an element from a decimal, or 0x-prefixed hexadecimal, string.  Values
// which are negative, or not less than the modulus, are rejected.
func Parse(str string) (Element, error) {
	var (
		val uint256.Int
		err error
		res Element
	)
	//
	if hex, ok := strings.CutPrefix(str, "0x"); ok {
		// Leading zeros are not accepted by uint256.
		if hex = strings.TrimLeft(hex, "0"); hex == "" {
			hex = "0"
		}
		//
		err = val.SetFromHex("0x" + hex)
	} else {
		err = val.SetFromDecimal(str)
	}
	//
	if err != nil {
		return res, fmt.Errorf("invalid scalar \"%s\" (%w)", str, err)
	} else if !val.Lt(modulus) {
		return res, fmt.Errorf("scalar \"%s\" out of range", str)
	}
	//
	return FromUint256(&val), nil
}

// FromUint256 constructs an element from a 256-bit integer, reducing it modulo
// the field order.
func FromUint256(val *uint256.Int) Element {
	var (
		elem  fr.Element
		bytes = val.Bytes32()
	)
	//
	elem.SetBytes(bytes[:])
	//
	return Element{elem}
}

// Uint256 returns the canonical value of this element as a 256-bit integer.
func (x Element) Uint256() *uint256.Int {
	var bytes = x.Element.Bytes()
	//
	return new(uint256.Int).SetBytes32(bytes[:])
}

// FromScalar converts the raw accelerator representation of an element into a
// field element.  Unreduced values are reduced modulo the field order.
func FromScalar(s *operand.Scalar) Element {
	var (
		elem  fr.Element
		bytes = s.LittleEndian()
	)
	// SetBytes expects big-endian.
	slices.Reverse(bytes[:])
	elem.SetBytes(bytes[:])
	//
	return Element{elem}
}

// Scalar returns the raw accelerator representation of this element.
func (x Element) Scalar() operand.Scalar {
	var bytes = x.Element.Bytes()
	//
	slices.Reverse(bytes[:])
	// Cannot fail, since the length is fixed.
	s, _ := operand.FromLittleEndian(bytes[:])
	//
	return s
}

// Add x + y
func (x Element) Add(y Element) Element {
	var res fr.Element
	//
	res.Add(&x.Element, &y.Element)
	//
	return Element{res}
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	var elem fr.Element
	//
	elem.Sub(&x.Element, &y.Element)
	//
	return Element{elem}
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	var elem fr.Element
	//
	elem.Mul(&x.Element, &y.Element)
	//
	return Element{elem}
}

// Inverse x⁻¹, or 0 if x = 0.
func (x Element) Inverse() Element {
	var elem fr.Element
	//
	elem.Inverse(&x.Element)
	//
	return Element{elem}
}

// Equals determines whether two elements hold the same value.
func (x Element) Equals(y Element) bool {
	return x.Element.Equal(&y.Element)
}

// IsZero checks whether this is the additive identity.
func (x Element) IsZero() bool {
	return x.Element.IsZero()
}

// IsOne checks whether this is the multiplicative identity.
func (x Element) IsOne() bool {
	return x.Element.IsOne()
}

func (x Element) String() string {
	return x.Element.String()
}

// Text returns the numerical value of x in the given base.
func (x Element) Text(base int) string {
	return x.Element.Text(base)
}

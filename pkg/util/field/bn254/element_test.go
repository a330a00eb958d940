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
	"math/big"
	"strings"
	"testing"

	"github.com/consensys/zkaccel/pkg/operand"
	"github.com/consensys/zkaccel/pkg/util/assert"
	"github.com/holiman/uint256"
)

func Test_Element_01(t *testing.T) {
	s := operand.FromUint64(0xdeadbeef)
	x := FromScalar(&s)
	//
	assert.Equal(t, "3735928559", x.Text(10))
	assert.Equal(t, s, x.Scalar())
}

func Test_Element_02(t *testing.T) {
	// Most significant word lands at the top of the integer.
	s := operand.Scalar{0, 0, 0, 0, 0, 0, 0, 1}
	x := FromScalar(&s)
	expected := new(big.Int).Lsh(big.NewInt(1), 224)
	//
	assert.Equal(t, expected.Text(16), x.Text(16))
	assert.Equal(t, s, x.Scalar())
}

func Test_Element_03(t *testing.T) {
	// The all-ones pattern exceeds the modulus and is reduced.
	s := operand.Scalar{^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0)}
	x := FromScalar(&s)
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	expected := max.Mod(max, Modulus())
	//
	assert.Equal(t, expected.Text(10), x.Text(10))
}

func Test_Element_04(t *testing.T) {
	x, err := Parse("0x10")
	assert.NoError(t, err)
	assert.True(t, x.Equals(Uint64(16)))
	//
	y, err := Parse("3")
	assert.NoError(t, err)
	assert.Equal(t, "48", x.Mul(y).Text(10))
	assert.Equal(t, "19", x.Add(y).Text(10))
	assert.Equal(t, "13", x.Sub(y).Text(10))
	assert.True(t, x.Mul(x.Inverse()).IsOne())
}

func Test_Element_05(t *testing.T) {
	_, err := Parse("-1")
	assert.True(t, err != nil)
	//
	_, err = Parse(Modulus().String())
	assert.True(t, err != nil)
	//
	_, err = Parse("0xzz")
	assert.True(t, err != nil)
}

func Test_Element_06(t *testing.T) {
	x, err := Parse("0x000f")
	assert.NoError(t, err)
	assert.True(t, x.Equals(Uint64(15)))
	//
	z, err := Parse("0x00")
	assert.NoError(t, err)
	assert.True(t, z.IsZero())
	// Largest valid value.
	max := new(big.Int).Sub(Modulus(), big.NewInt(1))
	y, err := Parse("0x" + max.Text(16))
	assert.NoError(t, err)
	assert.Equal(t, max.Text(10), y.Text(10))
	assert.Equal(t, max.Text(10), y.Uint256().Dec())
}

func Test_Element_07(t *testing.T) {
	// 2^256 does not fit.
	_, err := Parse("0x1" + strings.Repeat("0", 64))
	assert.True(t, err != nil)
	// Values are reduced on construction.
	m := uint256.MustFromBig(Modulus())
	x := FromUint256(m.AddUint64(m, 5))
	//
	assert.True(t, x.Equals(Uint64(5)))
}

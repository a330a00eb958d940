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

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"unsafe"

	"github.com/consensys/zkaccel/pkg/operand"
	"github.com/consensys/zkaccel/pkg/util/assert"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func Test_Opcode_01(t *testing.T) {
	assert.Equal(t, uint32(0x00010180), ScalarMul.ID())
	assert.Equal(t, uint32(0x00010181), ScalarMac.ID())
	assert.Equal(t, uint32(0x0001011F), ScalarMulAdd.ID())
	assert.Equal(t, []Opcode{ScalarMul, ScalarMac, ScalarMulAdd}, Opcodes())
	assert.Equal(t, "BN254_SCALAR_MULADD(0x0001011f)", ScalarMulAdd.String())
	//
	for _, op := range Opcodes() {
		assert.True(t, op.Valid())
		assert.True(t, op.Summary() != "")
	}
	// Zero value is not an opcode.
	var zero Opcode
	assert.False(t, zero.Valid())
	assert.Equal(t, "UNKNOWN_0x00000000", zero.Name())
}

func Test_ABI_01(t *testing.T) {
	abi, err := ParseABI("FLAT")
	assert.NoError(t, err)
	assert.Equal(t, FlatABI, abi)
	//
	abi, err = ParseABI("packed")
	assert.NoError(t, err)
	assert.Equal(t, PackedABI, abi)
	//
	_, err = ParseABI("wide")
	assert.ErrorIs(t, err, ErrUnknownABI)
}

func Test_Registry_01(t *testing.T) {
	t.Setenv(BackendEnv, "")
	//
	acc, err := New(DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, SoftwareBackend, acc.Name())
	assert.True(t, slices.Contains(Available(), SoftwareBackend))
}

func Test_Registry_02(t *testing.T) {
	t.Setenv(BackendEnv, "SOFTWARE")
	//
	acc, err := New(DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, SoftwareBackend, acc.Name())
	//
	t.Setenv(BackendEnv, "fpga")
	_, err = New(DefaultConfig())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func Test_Registry_03(t *testing.T) {
	config := DefaultConfig()
	config.Backend = SoftwareBackend
	config.Trace = true
	//
	acc, err := New(config)
	assert.NoError(t, err)
	//
	traced, ok := acc.(*Traced)
	assert.True(t, ok)
	//
	_, ok = traced.Unwrap().(*Software)
	assert.True(t, ok)
}

func Test_Software_01(t *testing.T) {
	acc := newSoftware(t, FlatABI)
	p, q := operand.FromUint64(6), operand.FromUint64(7)
	//
	acc.Invoke(Invocation{ScalarMul, []unsafe.Pointer{unsafe.Pointer(&p), unsafe.Pointer(&q)}})
	//
	assert.Equal(t, operand.FromUint64(42), p)
	assert.Equal(t, operand.FromUint64(7), q)
}

func Test_Software_02(t *testing.T) {
	acc := newSoftware(t, FlatABI)
	ret, a, b := operand.FromUint64(5), operand.FromUint64(6), operand.FromUint64(7)
	pair := Pair{unsafe.Pointer(&a), unsafe.Pointer(&b)}
	//
	acc.Invoke(Invocation{ScalarMac, []unsafe.Pointer{unsafe.Pointer(&ret), unsafe.Pointer(&pair)}})
	//
	assert.Equal(t, operand.FromUint64(47), ret)
}

func Test_Software_03(t *testing.T) {
	acc := newSoftware(t, PackedABI)
	ret := operand.FromUint64(1)
	xy := operand.Wide{2, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, 0, 0, 0, 0}
	//
	acc.Invoke(Invocation{ScalarMulAdd, []unsafe.Pointer{unsafe.Pointer(&ret), unsafe.Pointer(&xy)}})
	//
	assert.Equal(t, operand.FromUint64(7), ret)
	assert.Equal(t, PackedABI, acc.ABI())
}

func Test_Software_04(t *testing.T) {
	acc := newSoftware(t, FlatABI)
	// 2^256 - 1 is not reduced; result is canonical.
	p := operand.Scalar{^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0)}
	one := operand.FromUint64(1)
	//
	acc.Invoke(Invocation{ScalarMul, []unsafe.Pointer{unsafe.Pointer(&p), unsafe.Pointer(&one)}})
	// Most significant word of a canonical BN254 scalar is below 0x30644e73.
	assert.True(t, p[7] < 0x30644e73)
}

func Test_Software_05(t *testing.T) {
	acc := newSoftware(t, FlatABI)
	p, q := operand.FromUint64(1), operand.FromUint64(2)
	//
	cases := []Invocation{
		// Unknown opcode
		{Opcode{}, []unsafe.Pointer{unsafe.Pointer(&p), unsafe.Pointer(&q)}},
		// Wrong arity
		{ScalarMul, []unsafe.Pointer{unsafe.Pointer(&p)}},
		{ScalarMulAdd, []unsafe.Pointer{unsafe.Pointer(&p), unsafe.Pointer(&q)}},
		// Nil operand
		{ScalarMul, []unsafe.Pointer{unsafe.Pointer(&p), nil}},
		{ScalarMac, []unsafe.Pointer{unsafe.Pointer(&p), unsafe.Pointer(&Pair{unsafe.Pointer(&q), nil})}},
	}
	//
	for _, inv := range cases {
		r := assert.Panics(t, func() { acc.Invoke(inv) }, "%s", inv)
		assert.True(t, errors.Is(r.(error), ErrFault), "%s", inv)
	}
	// Nothing was written.
	assert.Equal(t, operand.FromUint64(1), p)
}

func Test_Software_06(t *testing.T) {
	_, err := NewSoftware(Config{MulAddABI: "wide"})
	assert.ErrorIs(t, err, ErrUnknownABI)
	//
	acc, err := NewSoftware(Config{})
	assert.NoError(t, err)
	assert.Equal(t, FlatABI, acc.ABI())
	assert.True(t, strings.HasPrefix(acc.Device(), "cpu"))
	// Names are stored in canonical form.
	acc, err = NewSoftware(Config{MulAddABI: "Packed"})
	assert.NoError(t, err)
	assert.Equal(t, PackedABI, acc.ABI())
	//
	abi, err := ResolveABI("")
	assert.NoError(t, err)
	assert.Equal(t, FlatABI, abi)
}

func Test_Traced_01(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	acc := NewTracedWith(newSoftware(t, FlatABI), logger)
	p, q := operand.FromUint64(2), operand.FromUint64(3)
	//
	acc.Invoke(Invocation{ScalarMul, []unsafe.Pointer{unsafe.Pointer(&p), unsafe.Pointer(&q)}})
	//
	assert.Equal(t, operand.FromUint64(6), p)
	assert.Equal(t, 1, len(hook.AllEntries()))
	//
	entry := hook.LastEntry()
	assert.Equal(t, log.DebugLevel, entry.Level)
	assert.Equal(t, "BN254_SCALAR_MUL", entry.Data["opcode"])
	assert.Equal(t, 2, entry.Data["operands"])
	assert.Equal(t, SoftwareBackend, entry.Data["backend"])
}

func Test_Metered_01(t *testing.T) {
	reg := prometheus.NewRegistry()
	acc, err := NewMetered(newSoftware(t, FlatABI), reg)
	assert.NoError(t, err)
	//
	p, q := operand.FromUint64(2), operand.FromUint64(3)
	for range 3 {
		acc.Invoke(Invocation{ScalarMul, []unsafe.Pointer{unsafe.Pointer(&p), unsafe.Pointer(&q)}})
	}
	//
	assert.Equal(t, operand.FromUint64(2*3*3*3), p)
	assert.Equal(t, 3.0, testutil.ToFloat64(acc.Calls(ScalarMul)))
	assert.Equal(t, 0.0, testutil.ToFloat64(acc.Calls(ScalarMac)))
	// Registering twice fails.
	_, err = NewMetered(newSoftware(t, FlatABI), reg)
	assert.True(t, err != nil)
}

func newSoftware(t *testing.T, abi ABI) *Software {
	acc, err := NewSoftware(Config{MulAddABI: abi})
	assert.NoError(t, err)
	//
	return acc
}

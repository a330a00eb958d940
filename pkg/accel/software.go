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
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/consensys/zkaccel/pkg/operand"
	"github.com/consensys/zkaccel/pkg/util/field/bn254"
)

// SoftwareBackend is the registry name of the software accelerator.
const SoftwareBackend = "software"

func init() {
	Register(SoftwareBackend, 0, func(config Config) (Accelerator, error) {
		return NewSoftware(config)
	})
}

// Software emulates the accelerator on the host, using gnark-crypto for the
// underlying field arithmetic.  It decodes each invocation exactly as the
// accelerator would, reading operands through their addresses and writing the
// result in place.  Operands are reduced modulo the field order on load, and
// results are always written in canonical form.
type Software struct {
	abi ABI
}

// NewSoftware constructs a software accelerator for the given configuration.
func NewSoftware(config Config) (*Software, error) {
	abi, err := ResolveABI(config.MulAddABI)
	if err != nil {
		return nil, err
	}
	//
	return &Software{abi}, nil
}

// Name implementation for the Accelerator interface.
func (p *Software) Name() string {
	return SoftwareBackend
}

// Device describes the host on which this accelerator executes.
func (p *Software) Device() string {
	var features = hostFeatures()
	//
	if len(features) == 0 {
		return fmt.Sprintf("cpu (%s/%s)", runtime.GOOS, runtime.GOARCH)
	}
	//
	return fmt.Sprintf("cpu (%s/%s; %s)", runtime.GOOS, runtime.GOARCH, strings.Join(features, ","))
}

// ABI returns the multiply-add calling convention implemented by this
// accelerator.
func (p *Software) ABI() ABI {
	return p.abi
}

// Invoke implementation for the Accelerator interface.
func (p *Software) Invoke(inv Invocation) {
	switch inv.Op {
	case ScalarMul:
		// p = p * q
		ret, q := operands2(inv)
		store(ret, load(ret).Mul(load(q)))
	case ScalarMac:
		// ret = ret + a * b
		ret, pair := operands2(inv)
		a, b := indirect(inv, pair)
		store(ret, load(ret).Add(load(a).Mul(load(b))))
	case ScalarMulAdd:
		p.mulAdd(inv)
	default:
		panic(Fault(inv, "unknown opcode"))
	}
}

func (p *Software) mulAdd(inv Invocation) {
	switch p.abi {
	case FlatABI:
		// ret = a * b + c
		checkArity(inv, 4)
		ret, a, b, c := inv.Operands[0], inv.Operands[1], inv.Operands[2], inv.Operands[3]
		store(ret, load(a).Mul(load(b)).Add(load(c)))
	case PackedABI:
		// ret = x * y + ret, where xy holds x followed by y.
		ret, xy := operands2(inv)
		wide := (*operand.Wide)(xy)
		x, y := bn254.FromScalar(wide.Lo()), bn254.FromScalar(wide.Hi())
		store(ret, x.Mul(y).Add(load(ret)))
	default:
		panic(Fault(inv, "unsupported abi %q", p.abi))
	}
}

func operands2(inv Invocation) (unsafe.Pointer, unsafe.Pointer) {
	checkArity(inv, 2)
	//
	return inv.Operands[0], inv.Operands[1]
}

func indirect(inv Invocation, ptr unsafe.Pointer) (unsafe.Pointer, unsafe.Pointer) {
	var pair = (*Pair)(ptr)
	//
	if pair[0] == nil || pair[1] == nil {
		panic(Fault(inv, "nil operand in pair"))
	}
	//
	return pair[0], pair[1]
}

func checkArity(inv Invocation, n int) {
	if len(inv.Operands) != n {
		panic(Fault(inv, "expected %d operands, found %d", n, len(inv.Operands)))
	}
	//
	for i, ptr := range inv.Operands {
		if ptr == nil {
			panic(Fault(inv, "nil operand %d", i))
		}
	}
}

func load(ptr unsafe.Pointer) bn254.Element {
	return bn254.FromScalar((*operand.Scalar)(ptr))
}

func store(ptr unsafe.Pointer, val bn254.Element) {
	*(*operand.Scalar)(ptr) = val.Scalar()
}

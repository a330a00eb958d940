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
	"fmt"
	"strings"
)

// ErrUnknownABI is returned when an ABI name cannot be resolved.
var ErrUnknownABI = errors.New("unknown multiply-add ABI")

// ABI selects the calling convention used for the multiply-add entry point.
// Two mutually exclusive conventions exist for the same opcode, and exactly
// one is in force for any given accelerator.
type ABI string

const (
	// FlatABI passes four flat operands [ret, a, b, c] and computes
	// ret = a*b + c.
	FlatABI ABI = "flat"
	// PackedABI passes two operands [ret, xy], where ret is pre-seeded with the
	// addend and xy addresses the two multiplicands back-to-back.
	//
	// Deprecated: the packed convention tags its second operand as a single
	// element whilst addressing two.  It is retained only for accelerators
	// known to implement it; FlatABI is the authoritative convention.
	PackedABI ABI = "packed"
)

// ParseABI resolves an ABI by (case insensitive) name.
func ParseABI(name string) (ABI, error) {
	switch abi := ABI(strings.ToLower(name)); abi {
	case FlatABI, PackedABI:
		return abi, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownABI)
	}
}

// ResolveABI returns the canonical form of a configured ABI.  The empty ABI
// resolves to FlatABI.
func ResolveABI(abi ABI) (ABI, error) {
	if abi == "" {
		return FlatABI, nil
	}
	//
	return ParseABI(string(abi))
}

// Config determines which accelerator backend is constructed, and how the
// dispatch layer drives it.
type Config struct {
	// Backend to construct.  Empty selects the highest priority backend,
	// subject to the BackendEnv override.
	Backend string `json:"backend"`
	// MulAddABI is the calling convention for the multiply-add entry point.
	MulAddABI ABI `json:"mulAddAbi"`
	// Checked enables debug assertions (alignment, non-overlap) on every
	// dispatch.  Violations panic rather than corrupting memory.
	Checked bool `json:"checked"`
	// Trace wraps the backend so that every invocation is logged.
	Trace bool `json:"trace"`
}

// DefaultConfig returns the default accelerator configuration.
func DefaultConfig() Config {
	return Config{
		MulAddABI: FlatABI,
	}
}

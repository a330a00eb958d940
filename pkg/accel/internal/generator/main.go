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
package main

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "Consensys Software Inc."

// opcodeSpec describes a single accelerator entry point.
type opcodeSpec struct {
	// Go identifier (lower camel case) used for the id constant.
	Ident string
	// Symbolic name of the entry point.
	Name string
	// Numeric identifier as seen by the accelerator.
	ID uint32
	// Short description of the operation.
	Summary string
}

type tableConfig struct {
	Opcodes []opcodeSpec
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "zkaccel")
	// Ordered by operation, not by id.
	cfg := tableConfig{
		Opcodes: []opcodeSpec{
			{Ident: "scalarMul", Name: "BN254_SCALAR_MUL", ID: 0x00_01_01_80, Summary: "p = p * q"},
			{Ident: "scalarMac", Name: "BN254_SCALAR_MAC", ID: 0x00_01_01_81, Summary: "ret = ret + a * b"},
			{Ident: "scalarMulAdd", Name: "BN254_SCALAR_MULADD", ID: 0x00_01_01_1F, Summary: "ret = a * b + c"},
		},
	}
	//
	assertNoError(checkDistinct(cfg.Opcodes), "opcode table")
	//
	assertNoError(bgen.Generate(cfg, "accel", "templates",
		bavard.Entry{
			File:      "../../opcode_table.go",
			Templates: []string{"opcode_table.go.tmpl"},
		},
	), "opcode table")
	// run gofmt on generated file
	runCmd("gofmt", "-w", "../../opcode_table.go")
}

// Sanity check that no two entry points share a name or identifier.
func checkDistinct(opcodes []opcodeSpec) error {
	for i, ith := range opcodes {
		for _, jth := range opcodes[i+1:] {
			if ith.ID == jth.ID {
				return fmt.Errorf("%s and %s share id 0x%08x", ith.Name, jth.Name, ith.ID)
			} else if ith.Name == jth.Name {
				return fmt.Errorf("duplicate name %s", ith.Name)
			}
		}
	}
	//
	return nil
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "")
}

func assertNoError(err error, contextAndArgs ...any) {
	if err != nil {
		msg := err.Error()

		if len(contextAndArgs) > 0 && contextAndArgs[0] != "" {
			allArgs := append(slices.Clone(contextAndArgs[1:]), err)
			msg = fmt.Sprintf(contextAndArgs[0].(string)+": %v", allArgs...)
		}

		fmt.Println(msg)
		os.Exit(1)
	}
}

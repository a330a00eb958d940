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
package cmd

import (
	"fmt"

	"github.com/consensys/zkaccel/pkg/operand"
	"github.com/consensys/zkaccel/pkg/precompile"
	"github.com/spf13/cobra"
)

// Operation describes a single dispatchable operation, as exposed on the
// command line and in batch files.
type Operation struct {
	// Name of the operation
	Name string
	// Number of operands
	Arity int
	// Usage string for the operands
	Usage string
	// Description of the operation
	Summary string
	// Apply the operation to a set of operands, returning the result.  Operands
	// are owned by the caller, and are copied into fresh buffers.
	Apply func(d *precompile.Dispatcher, args []operand.Scalar) operand.Scalar
}

// Operations lists every operation which can be dispatched.
var Operations = []Operation{
	{"mul", 2, "P Q", "compute P * Q", applyMul},
	{"mac", 3, "RET A B", "compute RET + A * B", applyMac},
	{"muladd", 3, "A B C", "compute A * B + C", applyMulAdd},
}

// FindOperation looks up an operation by name.
func FindOperation(name string) (Operation, bool) {
	for _, op := range Operations {
		if op.Name == name {
			return op, true
		}
	}
	//
	return Operation{}, false
}

func applyMul(d *precompile.Dispatcher, args []operand.Scalar) operand.Scalar {
	p, q := args[0], args[1]
	//
	d.Mul(operand.ReadWriteOf(&p), operand.ReadOnlyOf(&q))
	//
	return p
}

func applyMac(d *precompile.Dispatcher, args []operand.Scalar) operand.Scalar {
	ret, a, b := args[0], args[1], args[2]
	//
	d.Mac(operand.ReadWriteOf(&ret), operand.ReadOnlyOf(&a), operand.ReadOnlyOf(&b))
	//
	return ret
}

func applyMulAdd(d *precompile.Dispatcher, args []operand.Scalar) operand.Scalar {
	var (
		ret     operand.Scalar
		a, b, c = args[0], args[1], args[2]
	)
	//
	d.MulAdd(operand.WriteOnlyOf(&ret), operand.ReadOnlyOf(&a), operand.ReadOnlyOf(&b), operand.ReadOnlyOf(&c))
	//
	return ret
}

// Construct a command for a given operation.
func newOperationCmd(op Operation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [flags] %s", op.Name, op.Usage),
		Short: fmt.Sprintf("Dispatch a single operation to %s.", op.Summary),
		Long: fmt.Sprintf(`Dispatch a single operation to %s.  Operands are given in decimal or
as 0x-prefixed hexadecimal, and must be less than the field modulus.`, op.Summary),
		Args: cobra.ExactArgs(op.Arity),
		Run: func(cmd *cobra.Command, args []string) {
			var (
				words    = getFlag(cmd, "words")
				d        = openDispatcher(cmd)
				operands = parseOperands(args)
			)
			//
			result := op.Apply(d, operands)
			//
			printScalar(&result, words)
		},
	}
	//
	cmd.Flags().Bool("words", false, "print result as raw words (least significant first)")
	//
	return cmd
}

func init() {
	for _, op := range Operations {
		rootCmd.AddCommand(newOperationCmd(op))
	}
}

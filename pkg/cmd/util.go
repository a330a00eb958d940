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
	"os"

	"github.com/consensys/zkaccel/pkg/accel"
	"github.com/consensys/zkaccel/pkg/operand"
	"github.com/consensys/zkaccel/pkg/precompile"
	"github.com/consensys/zkaccel/pkg/util/field/bn254"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned flag, or exit if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Construct the accelerator configuration determined by the persistent flags.
func readConfig(cmd *cobra.Command) (accel.Config, error) {
	var config = accel.DefaultConfig()
	//
	abi, err := accel.ParseABI(getString(cmd, "abi"))
	if err != nil {
		return config, err
	}
	//
	config.Backend = getString(cmd, "backend")
	config.MulAddABI = abi
	config.Checked = getFlag(cmd, "checked")
	config.Trace = getFlag(cmd, "trace")
	//
	return config, nil
}

// Open a dispatcher as determined by the persistent flags, or exit if this is
// not possible.
func openDispatcher(cmd *cobra.Command) *precompile.Dispatcher {
	config, err := readConfig(cmd)
	//
	if err == nil {
		var d *precompile.Dispatcher
		//
		if d, err = precompile.Open(config); err == nil {
			return d
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Parse a sequence of scalar operands, or exit if any is malformed.
func parseOperands(args []string) []operand.Scalar {
	scalars, err := parseScalars(args)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return scalars
}

func parseScalars(args []string) ([]operand.Scalar, error) {
	var scalars = make([]operand.Scalar, len(args))
	//
	for i, arg := range args {
		elem, err := bn254.Parse(arg)
		if err != nil {
			return nil, err
		}
		//
		scalars[i] = elem.Scalar()
	}
	//
	return scalars, nil
}

// Print a scalar either as a hexadecimal value, or as its raw words.
func printScalar(s *operand.Scalar, words bool) {
	fmt.Println(formatScalar(s, words))
}

func formatScalar(s *operand.Scalar, words bool) string {
	if words {
		return s.String()
	}
	//
	return "0x" + bn254.FromScalar(s).Text(16)
}

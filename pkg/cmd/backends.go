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
	"github.com/consensys/zkaccel/pkg/util/termio"
	"github.com/spf13/cobra"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available accelerator backends.",
	Long:  `List available accelerator backends, highest priority first.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			out   = termio.NewOutput(os.Stdout)
			table = termio.NewTablePrinter(3)
		)
		//
		table.AddRow("BACKEND", "ABI", "DEVICE")
		//
		for _, name := range accel.Available() {
			config, err := readConfig(cmd)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			config.Backend = name
			acc, err := accel.New(config)
			//
			if err != nil {
				row := table.AddRow(name, "-", err.Error())
				table.SetStyle(2, row, termio.Style{}.Fg(termio.Red))
			} else {
				row := table.AddRow(name, string(config.MulAddABI), describe(acc))
				table.SetStyle(0, row, termio.Style{}.Fg(termio.Green))
				// Deprecated convention
				if config.MulAddABI == accel.PackedABI {
					table.SetStyle(1, row, termio.Style{}.Fg(termio.Yellow))
				}
			}
		}
		//
		table.SetStyle(0, 0, termio.Bold())
		table.AnsiEscapes(out.IsTerminal())
		table.FitWidth(out.Width())
		table.Print(out.File())
	},
}

var opcodesCmd = &cobra.Command{
	Use:   "opcodes",
	Short: "List accelerator entry points.",
	Long:  `List the accelerator entry points, with their numeric identifiers.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			out   = termio.NewOutput(os.Stdout)
			table = termio.NewTablePrinter(3)
		)
		//
		table.AddRow("NAME", "ID", "OPERATION")
		//
		for _, op := range accel.Opcodes() {
			row := table.AddRow(op.Name(), fmt.Sprintf("0x%08x", op.ID()), op.Summary())
			table.SetStyle(1, row, termio.Style{}.Fg(termio.Cyan))
		}
		//
		table.SetStyle(0, 0, termio.Bold())
		table.AnsiEscapes(out.IsTerminal())
		table.FitWidth(out.Width())
		table.Print(out.File())
	},
}

// Describe the device behind an accelerator, if it reports one.
func describe(acc accel.Accelerator) string {
	type device interface{ Device() string }
	// Look through any decorators
	for {
		if d, ok := acc.(device); ok {
			return d.Device()
		} else if w, ok := acc.(interface{ Unwrap() accel.Accelerator }); ok {
			acc = w.Unwrap()
		} else {
			return "-"
		}
	}
}

func init() {
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(opcodesCmd)
}

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
	"runtime/debug"

	"github.com/consensys/zkaccel/pkg/accel"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set via -ldflags for release builds, but *not* when installing via
// "go install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zkaccel",
	Short: "Dispatch BN254 scalar field operations to an accelerator.",
	Long: `Marshal BN254 scalar field operands into the calling conventions of a
fixed-function accelerator, and dispatch them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Print("zkaccel ")
			if Version != "" {
				// Release build
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		} else {
			_ = cmd.Help()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("backend", "b", "",
		fmt.Sprintf("accelerator backend to use (default highest priority, or $%s)", accel.BackendEnv))
	rootCmd.PersistentFlags().String("abi", string(accel.FlatABI), "multiply-add calling convention (flat or packed)")
	rootCmd.PersistentFlags().Bool("checked", false, "check alignment and aliasing before every dispatch")
	rootCmd.PersistentFlags().Bool("trace", false, "log every accelerator invocation (requires --verbose)")
}

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

//go:build amd64

package accel

import "golang.org/x/sys/cpu"

// hostFeatures reports the instruction set extensions which gnark-crypto's
// field multiplication makes use of on this host.
func hostFeatures() []string {
	var features []string
	//
	if cpu.X86.HasADX {
		features = append(features, "adx")
	}
	//
	if cpu.X86.HasBMI2 {
		features = append(features, "bmi2")
	}
	//
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512IFMA {
		features = append(features, "avx512ifma")
	}
	//
	return features
}

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
	"path/filepath"
	"testing"

	"github.com/consensys/zkaccel/pkg/accel"
	"github.com/consensys/zkaccel/pkg/operand"
	"github.com/consensys/zkaccel/pkg/precompile"
	"github.com/consensys/zkaccel/pkg/util/assert"
	"github.com/klauspost/compress/zstd"
)

const batchJSON = `[{"op": "mul", "args": ["3", "5"]}, {"op": "muladd", "args": ["2", "3", "0x4"]}]`

func Test_Batch_01(t *testing.T) {
	entries := []BatchEntry{
		{"mul", []string{"3", "5"}},
		{"mac", []string{"1", "2", "0x3"}},
		{"muladd", []string{"2", "3", "4"}},
	}
	//
	for _, abi := range []accel.ABI{accel.FlatABI, accel.PackedABI} {
		results, err := RunBatch(newDispatcher(t, abi), entries, 2)
		//
		assert.NoError(t, err)
		assert.Equal(t, []operand.Scalar{operand.FromUint64(15), operand.FromUint64(7), operand.FromUint64(10)}, results)
	}
}

func Test_Batch_02(t *testing.T) {
	var entries []BatchEntry
	// Enough entries to keep every worker busy.
	for i := range 256 {
		entries = append(entries, BatchEntry{"mul", []string{fmt.Sprint(i), "2"}})
	}
	//
	results, err := RunBatch(newDispatcher(t, accel.FlatABI), entries, 0)
	assert.NoError(t, err)
	//
	for i, r := range results {
		assert.Equal(t, operand.FromUint64(uint64(2*i)), r)
	}
}

func Test_Batch_03(t *testing.T) {
	d := newDispatcher(t, accel.FlatABI)
	//
	_, err := RunBatch(d, []BatchEntry{{"div", []string{"1", "2"}}}, 1)
	assert.True(t, err != nil)
	//
	_, err = RunBatch(d, []BatchEntry{{"mul", []string{"1"}}}, 1)
	assert.True(t, err != nil)
	//
	_, err = RunBatch(d, []BatchEntry{{"mul", []string{"1", "-2"}}}, 1)
	assert.True(t, err != nil)
}

func Test_Operation_01(t *testing.T) {
	op, ok := FindOperation("mac")
	//
	assert.True(t, ok)
	assert.Equal(t, 3, op.Arity)
	// Operands are not modified by application.
	args := []operand.Scalar{operand.FromUint64(1), operand.FromUint64(2), operand.FromUint64(3)}
	result := op.Apply(newDispatcher(t, accel.FlatABI), args)
	//
	assert.Equal(t, operand.FromUint64(7), result)
	assert.Equal(t, operand.FromUint64(1), args[0])
	//
	_, ok = FindOperation("div")
	assert.False(t, ok)
}

func Test_BatchFile_01(t *testing.T) {
	var (
		dir   = t.TempDir()
		plain = filepath.Join(dir, "ops.json")
		zst   = filepath.Join(dir, "ops.json.zst")
	)
	//
	encoder, err := zstd.NewWriter(nil)
	assert.NoError(t, err)
	//
	assert.NoError(t, os.WriteFile(plain, []byte(batchJSON), 0o644))
	assert.NoError(t, os.WriteFile(zst, encoder.EncodeAll([]byte(batchJSON), nil), 0o644))
	//
	for _, name := range []string{plain, zst} {
		entries, err := ReadBatchFile(name)
		//
		assert.NoError(t, err)
		assert.Equal(t, []BatchEntry{{"mul", []string{"3", "5"}}, {"muladd", []string{"2", "3", "0x4"}}}, entries)
	}
}

func Test_BatchFile_02(t *testing.T) {
	var (
		dir  = t.TempDir()
		txt  = filepath.Join(dir, "ops.txt")
		bad  = filepath.Join(dir, "ops.json")
		fake = filepath.Join(dir, "ops.json.zst")
	)
	//
	assert.NoError(t, os.WriteFile(txt, []byte(batchJSON), 0o644))
	assert.NoError(t, os.WriteFile(bad, []byte("[{"), 0o644))
	assert.NoError(t, os.WriteFile(fake, []byte(batchJSON), 0o644))
	//
	for _, name := range []string{txt, bad, fake, filepath.Join(dir, "missing.json")} {
		_, err := ReadBatchFile(name)
		assert.True(t, err != nil, name)
	}
}

func Test_BatchFile_03(t *testing.T) {
	var (
		output  = filepath.Join(t.TempDir(), "results.txt")
		results = []operand.Scalar{operand.FromUint64(255), operand.FromUint64(1)}
	)
	//
	assert.NoError(t, WriteResults(output, results, false))
	bytes, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "0xff\n0x1\n", string(bytes))
	// Existing files are replaced.
	assert.NoError(t, WriteResults(output, results[1:], true))
	bytes, err = os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "[1,0,0,0,0,0,0,0]\n", string(bytes))
}

func newDispatcher(t *testing.T, abi accel.ABI) *precompile.Dispatcher {
	config := accel.DefaultConfig()
	config.MulAddABI = abi
	//
	acc, err := accel.NewSoftware(config)
	assert.NoError(t, err)
	//
	d, err := precompile.New(acc, config)
	assert.NoError(t, err)
	//
	return d
}

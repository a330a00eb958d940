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
	"encoding/json"
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/consensys/zkaccel/pkg/accel"
	"github.com/consensys/zkaccel/pkg/operand"
	"github.com/consensys/zkaccel/pkg/precompile"
	"github.com/consensys/zkaccel/pkg/util"
	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Upper bound on the decompressed size of a batch file.
const maxBatchFileSize = 1 << 30

var batchCmd = &cobra.Command{
	Use:   "batch [flags] ops.json",
	Short: "Dispatch a batch of operations.",
	Long: `Dispatch a batch of independent operations read from a JSON file.  The
file holds an array of entries of the form {"op": "mul", "args": ["3", "0x5"]},
and may be zstd compressed (.json.zst).  Entries are dispatched concurrently,
each with its own buffers, and results are printed (or written) in order.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			jobs   = getUint(cmd, "jobs")
			words  = getFlag(cmd, "words")
			stats  = getFlag(cmd, "stats")
			output = getString(cmd, "output")
			reg    = prometheus.NewRegistry()
		)
		//
		entries, err := ReadBatchFile(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		config, err := readConfig(cmd)
		// Construct a metered dispatcher
		var d *precompile.Dispatcher
		//
		if err == nil {
			var acc accel.Accelerator
			//
			if acc, err = accel.New(config); err == nil {
				var metered *accel.Metered
				//
				if metered, err = accel.NewMetered(acc, reg); err == nil {
					d, err = precompile.New(metered, config)
				}
			}
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		results, err := RunBatch(d, entries, jobs)
		if err != nil {
			log.Error(err)
			os.Exit(4)
		}
		//
		if output != "" {
			err = WriteResults(output, results, words)
		} else {
			for i := range results {
				printScalar(&results[i], words)
			}
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		if stats {
			printStats(reg)
		}
	},
}

// BatchEntry is a single operation within a batch file.
type BatchEntry struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
}

// RunBatch dispatches a batch of operations using at most n concurrent
// workers (or one per CPU if n is 0).  Every entry is validated before
// anything is dispatched.  Results are returned in the order of the entries.
func RunBatch(d *precompile.Dispatcher, entries []BatchEntry, n uint) ([]operand.Scalar, error) {
	var (
		ops      = make([]Operation, len(entries))
		operands = make([][]operand.Scalar, len(entries))
		results  = make([]operand.Scalar, len(entries))
		group    errgroup.Group
		stats    *util.PerfStats
	)
	// Validate all entries upfront
	for i, e := range entries {
		var (
			ok  bool
			err error
		)
		//
		if ops[i], ok = FindOperation(e.Op); !ok {
			return nil, fmt.Errorf("entry %d: unknown operation \"%s\"", i, e.Op)
		} else if len(e.Args) != ops[i].Arity {
			return nil, fmt.Errorf("entry %d: %s expects %d operands, found %d", i, e.Op, ops[i].Arity, len(e.Args))
		} else if operands[i], err = parseScalars(e.Args); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	//
	if n == 0 {
		n = uint(runtime.NumCPU())
	}
	//
	group.SetLimit(int(n))
	//
	stats = util.NewPerfStats()
	//
	for i := range entries {
		group.Go(func() error {
			// Each application works on copies of its operands.
			results[i] = ops[i].Apply(d, operands[i])
			return nil
		})
	}
	//
	if err := group.Wait(); err != nil {
		return nil, err
	}
	//
	stats.Log(fmt.Sprintf("dispatch (%d workers)", n), len(entries))
	//
	return results, nil
}

// ReadBatchFile reads and parses a batch file, which is either plain JSON or
// zstd compressed JSON.
func ReadBatchFile(filename string) ([]BatchEntry, error) {
	var entries []BatchEntry
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	switch ext := path.Ext(filename); ext {
	case ".zst":
		if !strings.HasSuffix(filename, ".json.zst") {
			return nil, fmt.Errorf("unknown batch file format: %s", filename)
		} else if bytes, err = decompress(bytes); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	case ".json":
	default:
		return nil, fmt.Errorf("unknown batch file format: %s", ext)
	}
	//
	if err = json.Unmarshal(bytes, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return entries, nil
}

func decompress(bytes []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxBatchFileSize))
	if err != nil {
		return nil, err
	}
	//
	defer decoder.Close()
	//
	return decoder.DecodeAll(bytes, nil)
}

// WriteResults writes a set of results to a given file, one per line, replacing
// any existing file atomically.
func WriteResults(filename string, results []operand.Scalar, words bool) error {
	var builder strings.Builder
	//
	for i := range results {
		builder.WriteString(formatScalar(&results[i], words))
		builder.WriteByte('\n')
	}
	//
	return renameio.WriteFile(filename, []byte(builder.String()), 0o644)
}

// Print invocation counts gathered during a batch.
func printStats(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Error(err)
		return
	}
	//
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			var labels string
			//
			for _, l := range metric.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", l.GetName(), l.GetValue())
			}
			//
			if c := metric.GetCounter(); c != nil {
				fmt.Printf("%s%s %.0f\n", family.GetName(), labels, c.GetValue())
			} else if h := metric.GetHistogram(); h != nil {
				fmt.Printf("%s%s count=%d sum=%gs\n", family.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().UintP("jobs", "j", 0, "maximum number of concurrent dispatches (0 = one per cpu)")
	batchCmd.Flags().Bool("words", false, "print results as raw words (least significant first)")
	batchCmd.Flags().Bool("stats", false, "print invocation statistics")
	batchCmd.Flags().StringP("output", "o", "", "write results to a file rather than stdout")
}

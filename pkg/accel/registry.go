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
	"os"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// BackendEnv names the environment variable which, when set, forces the
// backend used when the configuration does not name one.
const BackendEnv = "ZKACCEL_BACKEND"

var (
	// ErrNoBackend is returned when no backend has been registered.
	ErrNoBackend = errors.New("no accelerator backend registered")
	// ErrUnknownBackend is returned when a requested backend is not registered.
	ErrUnknownBackend = errors.New("unknown accelerator backend")
)

// Constructor builds an accelerator for a given configuration.
type Constructor func(Config) (Accelerator, error)

type backend struct {
	name     string
	priority int
	ctor     Constructor
}

var (
	backends   []backend
	backendsMu sync.RWMutex
)

// Register adds a backend constructor with the given priority.  Higher
// priority backends are preferred.  Typically called from init().
func Register(name string, priority int, ctor Constructor) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	//
	backends = append(backends, backend{strings.ToLower(name), priority, ctor})
}

// Available returns the names of all registered backends, highest priority
// first.
func Available() []string {
	var sorted = sortedBackends()
	//
	names := make([]string, len(sorted))
	for i, b := range sorted {
		names[i] = b.name
	}
	//
	return names
}

// New constructs an accelerator for the given configuration.  The backend is
// chosen by name from the configuration, otherwise from the BackendEnv
// environment variable, otherwise the highest priority backend is used.  If
// tracing is enabled, the backend is wrapped so that every invocation is
// logged.
func New(config Config) (Accelerator, error) {
	var (
		sorted = sortedBackends()
		name   = strings.ToLower(config.Backend)
		acc    Accelerator
		err    error
	)
	//
	if len(sorted) == 0 {
		return nil, ErrNoBackend
	} else if name == "" {
		name = strings.ToLower(os.Getenv(BackendEnv))
	}
	//
	if name == "" {
		acc, err = sorted[0].ctor(config)
	} else if b, ok := findBackend(sorted, name); ok {
		acc, err = b.ctor(config)
	} else {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBackend)
	}
	//
	if err != nil {
		return nil, err
	}
	//
	log.Debugf("using accelerator backend %s (abi %s, checked %t)", acc.Name(), config.MulAddABI, config.Checked)
	//
	if config.Trace {
		acc = NewTraced(acc)
	}
	//
	return acc, nil
}

func findBackend(sorted []backend, name string) (backend, bool) {
	for _, b := range sorted {
		if b.name == name {
			return b, true
		}
	}
	//
	return backend{}, false
}

func sortedBackends() []backend {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	//
	sorted := make([]backend, len(backends))
	copy(sorted, backends)
	// Stable so that equal priorities retain registration order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].priority > sorted[j].priority
	})
	//
	return sorted
}
